/*
 * Sable - A static analyzer for PHP
 *
 * Copyright Sable Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/sable-analyzer/sable/format"
)

// TypeExpr

type TypeExpr interface {
	HasPosition
	fmt.Stringer
	Doc() prettier.Doc
	isTypeExpr()
}

// NominalExpr represents a named type, e.g. `int` or `\Foo\Bar`

type NominalExpr struct {
	Identifier        Identifier
	NestedIdentifiers []Identifier `json:",omitempty"`
	// Rooted is true when the name begins with a backslash
	Rooted   bool
	StartPos Position `json:"-"`
}

var _ TypeExpr = &NominalExpr{}

func (*NominalExpr) isTypeExpr() {}

func (t *NominalExpr) String() string {
	var sb strings.Builder
	if t.Rooted {
		sb.WriteByte('\\')
	}
	sb.WriteString(t.Identifier.String())
	for _, identifier := range t.NestedIdentifiers {
		sb.WriteByte('\\')
		sb.WriteString(identifier.String())
	}
	return sb.String()
}

func (t *NominalExpr) StartPosition() Position {
	return t.StartPos
}

func (t *NominalExpr) EndPosition() Position {
	nestedCount := len(t.NestedIdentifiers)
	if nestedCount == 0 {
		return t.Identifier.EndPosition()
	}
	lastIdentifier := t.NestedIdentifiers[nestedCount-1]
	return lastIdentifier.EndPosition()
}

func (t *NominalExpr) Doc() prettier.Doc {
	return prettier.Text(t.String())
}

func (t *NominalExpr) MarshalJSON() ([]byte, error) {
	type Alias NominalExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "NominalExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// NullableExpr represents a nullable variant of another type, e.g. `?int`

type NullableExpr struct {
	Type     TypeExpr
	StartPos Position `json:"-"`
}

var _ TypeExpr = &NullableExpr{}

func (*NullableExpr) isTypeExpr() {}

func (t *NullableExpr) String() string {
	return fmt.Sprintf("?%s", t.Type)
}

func (t *NullableExpr) StartPosition() Position {
	return t.StartPos
}

func (t *NullableExpr) EndPosition() Position {
	return t.Type.EndPosition()
}

func (t *NullableExpr) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text("?"),
		t.Type.Doc(),
	}
}

func (t *NullableExpr) MarshalJSON() ([]byte, error) {
	type Alias NullableExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "NullableExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// UnionExpr represents an alternation of types, e.g. `int|string`

type UnionExpr struct {
	Types []TypeExpr
}

var _ TypeExpr = &UnionExpr{}

func (*UnionExpr) isTypeExpr() {}

func (t *UnionExpr) String() string {
	var sb strings.Builder
	for i, ty := range t.Types {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(ty.String())
	}
	return sb.String()
}

func (t *UnionExpr) StartPosition() Position {
	return t.Types[0].StartPosition()
}

func (t *UnionExpr) EndPosition() Position {
	return t.Types[len(t.Types)-1].EndPosition()
}

var unionExpressionSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text("|"),
	prettier.SoftLine{},
}

func (t *UnionExpr) Doc() prettier.Doc {
	memberDocs := make([]prettier.Doc, len(t.Types))
	for i, ty := range t.Types {
		memberDocs[i] = ty.Doc()
	}
	return prettier.Group{
		Doc: prettier.Join(unionExpressionSeparatorDoc, memberDocs...),
	}
}

func (t *UnionExpr) MarshalJSON() ([]byte, error) {
	type Alias UnionExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "UnionExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ParenExpr represents a parenthesized type, e.g. `(int|string)`

type ParenExpr struct {
	Type TypeExpr
	Range
}

var _ TypeExpr = &ParenExpr{}

func (*ParenExpr) isTypeExpr() {}

func (t *ParenExpr) String() string {
	return fmt.Sprintf("(%s)", t.Type)
}

func (t *ParenExpr) Doc() prettier.Doc {
	return prettier.WrapParentheses(
		t.Type.Doc(),
		prettier.SoftLine{},
	)
}

func (t *ParenExpr) MarshalJSON() ([]byte, error) {
	type Alias ParenExpr
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "ParenExpr",
		Alias: (*Alias)(t),
	})
}

// GenericExpr represents an instantiation of a named type, e.g. `array<int, string>`

type GenericExpr struct {
	Base          *NominalExpr
	TypeArguments []TypeExpr
	EndPos        Position `json:"-"`
}

var _ TypeExpr = &GenericExpr{}

func (*GenericExpr) isTypeExpr() {}

func (t *GenericExpr) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	sb.WriteByte('<')
	for i, argument := range t.TypeArguments {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(argument.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *GenericExpr) StartPosition() Position {
	return t.Base.StartPosition()
}

func (t *GenericExpr) EndPosition() Position {
	return t.EndPos
}

var typeArgumentSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (t *GenericExpr) Doc() prettier.Doc {
	argumentDocs := make([]prettier.Doc, len(t.TypeArguments))
	for i, argument := range t.TypeArguments {
		argumentDocs[i] = argument.Doc()
	}
	return prettier.Concat{
		t.Base.Doc(),
		prettier.Group{
			Doc: prettier.Wrap(
				prettier.Text("<"),
				prettier.Join(typeArgumentSeparatorDoc, argumentDocs...),
				prettier.Text(">"),
				prettier.SoftLine{},
			),
		},
	}
}

func (t *GenericExpr) MarshalJSON() ([]byte, error) {
	type Alias GenericExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "GenericExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ArrayExpr represents the `[]` suffix form of an array type, e.g. `int[]`

type ArrayExpr struct {
	Element TypeExpr
	EndPos  Position `json:"-"`
}

var _ TypeExpr = &ArrayExpr{}

func (*ArrayExpr) isTypeExpr() {}

func (t *ArrayExpr) String() string {
	switch t.Element.(type) {
	case *UnionExpr, *NullableExpr:
		return fmt.Sprintf("(%s)[]", t.Element)
	default:
		return fmt.Sprintf("%s[]", t.Element)
	}
}

func (t *ArrayExpr) StartPosition() Position {
	return t.Element.StartPosition()
}

func (t *ArrayExpr) EndPosition() Position {
	return t.EndPos
}

func (t *ArrayExpr) Doc() prettier.Doc {
	elementDoc := t.Element.Doc()
	switch t.Element.(type) {
	case *UnionExpr, *NullableExpr:
		elementDoc = prettier.WrapParentheses(elementDoc, prettier.SoftLine{})
	}
	return prettier.Concat{
		elementDoc,
		prettier.Text("[]"),
	}
}

func (t *ArrayExpr) MarshalJSON() ([]byte, error) {
	type Alias ArrayExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "ArrayExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ShapeExpr represents an array shape, e.g. `array{name:string,age?:int}`

type ShapeExpr struct {
	Base   *NominalExpr
	Fields []*ShapeFieldExpr
	EndPos Position `json:"-"`
}

var _ TypeExpr = &ShapeExpr{}

func (*ShapeExpr) isTypeExpr() {}

func (t *ShapeExpr) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	sb.WriteByte('{')
	for i, field := range t.Fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(field.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (t *ShapeExpr) StartPosition() Position {
	return t.Base.StartPosition()
}

func (t *ShapeExpr) EndPosition() Position {
	return t.EndPos
}

var shapeFieldSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (t *ShapeExpr) Doc() prettier.Doc {
	fieldDocs := make([]prettier.Doc, len(t.Fields))
	for i, field := range t.Fields {
		fieldDocs[i] = field.Doc()
	}
	return prettier.Concat{
		t.Base.Doc(),
		prettier.Group{
			Doc: prettier.WrapBraces(
				prettier.Join(shapeFieldSeparatorDoc, fieldDocs...),
				prettier.SoftLine{},
			),
		},
	}
}

func (t *ShapeExpr) MarshalJSON() ([]byte, error) {
	type Alias ShapeExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "ShapeExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ShapeFieldExpr is a single `key: type` entry of a ShapeExpr.
// Optional marks a `?` after the key,
// HasDefault a trailing `=` after the type.
// Either one means the field may be absent.

type ShapeFieldExpr struct {
	Key        ShapeKeyExpr
	Value      TypeExpr
	Optional   bool
	HasDefault bool
	EndPos     Position `json:"-"`
}

func (f *ShapeFieldExpr) String() string {
	var sb strings.Builder
	sb.WriteString(f.Key.String())
	if f.Optional {
		sb.WriteByte('?')
	}
	sb.WriteByte(':')
	sb.WriteString(f.Value.String())
	if f.HasDefault {
		sb.WriteByte('=')
	}
	return sb.String()
}

func (f *ShapeFieldExpr) StartPosition() Position {
	return f.Key.Pos
}

func (f *ShapeFieldExpr) EndPosition() Position {
	return f.EndPos
}

func (f *ShapeFieldExpr) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(f.Key.String()),
	}
	if f.Optional {
		doc = append(doc, prettier.Text("?"))
	}
	doc = append(doc,
		prettier.Text(":"),
		prettier.Space,
		f.Value.Doc(),
	)
	if f.HasDefault {
		doc = append(doc, prettier.Text("="))
	}
	return doc
}

func (f *ShapeFieldExpr) MarshalJSON() ([]byte, error) {
	type Alias ShapeFieldExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "ShapeFieldExpr",
		Range: NewRangeFromPositioned(f),
		Alias: (*Alias)(f),
	})
}

// ShapeKeyExpr is the key of a shape field:
// either an integer, or a (possibly quoted) string.

type ShapeKeyExpr struct {
	IsInt bool
	Int   int64
	Name  string
	// Quoted is true when the key was written as a quoted string literal
	Quoted bool
	Pos    Position `json:"-"`
}

func (k ShapeKeyExpr) String() string {
	if k.IsInt {
		return strconv.FormatInt(k.Int, 10)
	}
	if k.Quoted {
		return format.QuotedString(k.Name)
	}
	return k.Name
}

// SignatureExpr represents a callable type with a declared signature,
// e.g. `Closure(int,string=):bool`

type SignatureExpr struct {
	Base       *NominalExpr
	Parameters []*ParamExpr `json:",omitempty"`
	// ReturnType is nil when the signature declares no return type
	ReturnType TypeExpr `json:",omitempty"`
	EndPos     Position `json:"-"`
}

var _ TypeExpr = &SignatureExpr{}

func (*SignatureExpr) isTypeExpr() {}

func (t *SignatureExpr) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	sb.WriteByte('(')
	for i, parameter := range t.Parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(parameter.String())
	}
	sb.WriteByte(')')
	if t.ReturnType != nil {
		sb.WriteByte(':')
		sb.WriteString(t.ReturnType.String())
	}
	return sb.String()
}

func (t *SignatureExpr) StartPosition() Position {
	return t.Base.StartPosition()
}

func (t *SignatureExpr) EndPosition() Position {
	return t.EndPos
}

var parameterSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func (t *SignatureExpr) Doc() prettier.Doc {
	parameterDocs := make([]prettier.Doc, len(t.Parameters))
	for i, parameter := range t.Parameters {
		parameterDocs[i] = parameter.Doc()
	}
	doc := prettier.Concat{
		t.Base.Doc(),
		prettier.Group{
			Doc: prettier.WrapParentheses(
				prettier.Join(parameterSeparatorDoc, parameterDocs...),
				prettier.SoftLine{},
			),
		},
	}
	if t.ReturnType != nil {
		doc = append(doc,
			prettier.Text(":"),
			prettier.Space,
			t.ReturnType.Doc(),
		)
	}
	return doc
}

func (t *SignatureExpr) MarshalJSON() ([]byte, error) {
	type Alias SignatureExpr
	return json.Marshal(&struct {
		Type string
		Range
		*Alias
	}{
		Type:  "SignatureExpr",
		Range: NewRangeFromPositioned(t),
		Alias: (*Alias)(t),
	})
}

// ParamExpr is a single parameter of a SignatureExpr

type ParamExpr struct {
	// TypeAnnotation is nil when the parameter declares no type
	TypeAnnotation TypeExpr `json:",omitempty"`
	Name           string   `json:",omitempty"`
	ByReference    bool
	Variadic       bool
	HasDefault     bool
	// DefaultIsNull is true when the declared default is the literal `null`
	DefaultIsNull bool
	Range
}

func (p *ParamExpr) String() string {
	var sb strings.Builder
	if p.TypeAnnotation != nil {
		sb.WriteString(p.TypeAnnotation.String())
	}
	if p.ByReference {
		sb.WriteByte('&')
	}
	if p.Variadic {
		sb.WriteString("...")
	}
	if p.Name != "" {
		sb.WriteByte('$')
		sb.WriteString(p.Name)
	}
	if p.HasDefault {
		sb.WriteByte('=')
	}
	return sb.String()
}

func (p *ParamExpr) Doc() prettier.Doc {
	var doc prettier.Concat
	if p.TypeAnnotation != nil {
		doc = append(doc, p.TypeAnnotation.Doc())
	}
	if p.ByReference {
		doc = append(doc, prettier.Text("&"))
	}
	if p.Variadic {
		doc = append(doc, prettier.Text("..."))
	}
	if p.Name != "" {
		doc = append(doc, prettier.Text("$"+p.Name))
	}
	if p.HasDefault {
		doc = append(doc, prettier.Text("="))
	}
	return doc
}

func (p *ParamExpr) MarshalJSON() ([]byte, error) {
	type Alias ParamExpr
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "ParamExpr",
		Alias: (*Alias)(p),
	})
}

// LiteralIntExpr represents an integer literal type, e.g. `42` or `-1`

type LiteralIntExpr struct {
	Value int64
	Range
}

var _ TypeExpr = &LiteralIntExpr{}

func (*LiteralIntExpr) isTypeExpr() {}

func (t *LiteralIntExpr) String() string {
	return strconv.FormatInt(t.Value, 10)
}

func (t *LiteralIntExpr) Doc() prettier.Doc {
	return prettier.Text(t.String())
}

func (t *LiteralIntExpr) MarshalJSON() ([]byte, error) {
	type Alias LiteralIntExpr
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "LiteralIntExpr",
		Alias: (*Alias)(t),
	})
}

// LiteralStringExpr represents a single-quoted string literal type, e.g. `'up'`

type LiteralStringExpr struct {
	Value string
	Range
}

var _ TypeExpr = &LiteralStringExpr{}

func (*LiteralStringExpr) isTypeExpr() {}

func (t *LiteralStringExpr) String() string {
	return format.QuotedString(t.Value)
}

func (t *LiteralStringExpr) Doc() prettier.Doc {
	return prettier.Text(t.String())
}

func (t *LiteralStringExpr) MarshalJSON() ([]byte, error) {
	type Alias LiteralStringExpr
	return json.Marshal(&struct {
		Type string
		*Alias
	}{
		Type:  "LiteralStringExpr",
		Alias: (*Alias)(t),
	})
}
