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

package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sable-analyzer/sable/common"
	"github.com/sable-analyzer/sable/errors"
	"github.com/sable-analyzer/sable/format"
)

// Type is one canonical type instance.
//
// Types are interned: the registry guarantees exactly one live instance
// per canonical key, so equality is pointer equality. All instances are
// immutable after interning; derived variants (nullable toggles,
// substituted generic arguments) are separate interned instances.
type Type struct {
	registry *Registry

	kind     Kind
	nullable bool

	// namespace is `\`-rooted for class references
	// and empty for native kinds
	namespace string
	// name preserves the spelling of the first interning
	name string

	// typeArgs are the generic arguments, in declaration order:
	// the element union for generic arrays,
	// the key and value unions for generic iterables,
	// the class-declared arguments for class references
	typeArgs []UnionType

	// arrayKey is the key category of a generic array
	arrayKey common.ArrayKey

	literalInt    int64
	literalString string

	shape     *ShapeFieldOrderedMap
	signature *Signature

	// key is the canonical key, str the canonical rendering,
	// both computed once at interning
	key          string
	str          string
	hasTemplates bool
}

var _ common.Equatable[*Type] = &Type{}

func (t *Type) Kind() Kind {
	return t.kind
}

func (t *Type) IsNullable() bool {
	return t.nullable
}

// Namespace returns the `\`-rooted namespace of a class reference,
// and the empty string for every other kind.
func (t *Type) Namespace() string {
	return t.namespace
}

// Name returns the base name: the native kind name, the class name
// without its namespace, or the template-parameter name.
func (t *Type) Name() string {
	return t.name
}

// TypeArgs returns the generic arguments in declaration order.
// The returned slice must not be modified.
func (t *Type) TypeArgs() []UnionType {
	return t.typeArgs
}

func (t *Type) HasTypeArgs() bool {
	return len(t.typeArgs) > 0
}

// ArrayKeyKind returns the key category of a generic array.
// Meaningful only for generic-array kinds.
func (t *Type) ArrayKeyKind() common.ArrayKey {
	return t.arrayKey
}

// ElementUnion returns the element union of a generic array,
// or the value union of a generic iterable.
func (t *Type) ElementUnion() UnionType {
	switch t.kind {
	case KindGenericArray, KindGenericMultiArray:
		return t.typeArgs[0]
	case KindGenericIterable:
		return t.typeArgs[1]
	default:
		return UnionType{}
	}
}

// KeyUnion returns the key union of a generic iterable.
func (t *Type) KeyUnion() UnionType {
	if t.kind != KindGenericIterable {
		return UnionType{}
	}
	return t.typeArgs[0]
}

// LiteralIntValue returns the exact value of an integer literal type.
// Meaningful only for the literal-int kind.
func (t *Type) LiteralIntValue() int64 {
	return t.literalInt
}

// LiteralStringValue returns the exact value of a string literal type.
// Meaningful only for the literal-string kind.
func (t *Type) LiteralStringValue() string {
	return t.literalString
}

// ShapeFields returns the field map of an array-shape type,
// or nil for every other kind. The returned map must not be modified.
func (t *Type) ShapeFields() *ShapeFieldOrderedMap {
	return t.shape
}

// Signature returns the declared signature of a closure or callable
// type, or nil if none was declared.
func (t *Type) Signature() *Signature {
	return t.signature
}

// Key returns the canonical key identifying this instance
// in the registry.
func (t *Type) Key() string {
	return t.key
}

// Equal reports whether the other type is the same canonical instance.
func (t *Type) Equal(other *Type) bool {
	return t == other
}

func (t *Type) IsNative() bool {
	return t.kind.IsNative()
}

func (t *Type) IsClassReference() bool {
	return t.kind == KindClass
}

func (t *Type) IsArrayLike() bool {
	return t.kind.IsArrayLike()
}

func (t *Type) IsIterable() bool {
	return t.kind.IsIterable()
}

func (t *Type) IsCallableKind() bool {
	return t.kind.IsCallable()
}

func (t *Type) IsScalar() bool {
	return t.kind.IsScalar()
}

func (t *Type) IsTemplate() bool {
	return t.kind == KindTemplate
}

// HasTemplates reports whether the type contains a template placeholder,
// at any nesting depth.
func (t *Type) HasTemplates() bool {
	return t.hasTemplates
}

// FQSEN returns the fully qualified name of a class reference,
// e.g. `\Foo\Bar`, and the base name for every other kind.
func (t *Type) FQSEN() string {
	if t.kind != KindClass {
		return t.name
	}
	return qualifiedName(t.namespace, t.name)
}

// WithNullable returns the canonical instance with the nullable marker
// set accordingly. The null and mixed kinds admit null already and are
// returned unchanged.
func (t *Type) WithNullable(nullable bool) *Type {
	if t.nullable == nullable {
		return t
	}
	switch t.kind {
	case KindNull, KindMixed:
		return t
	}
	variant := *t
	variant.nullable = nullable
	return t.registry.intern(&variant)
}

// WithTypeArgs returns the canonical class-reference instance
// with the given generic arguments.
func (t *Type) WithTypeArgs(args []UnionType) *Type {
	if t.kind != KindClass {
		panic(errors.NewUnexpectedError(
			"cannot attach generic arguments to %s",
			t.kind,
		))
	}
	variant := *t
	variant.typeArgs = args
	return t.registry.intern(&variant)
}

// SubstituteTemplates returns the type with every template placeholder
// bound in the map replaced by its binding. A placeholder bound to a
// multi-member union widens the result to that union, so the result is
// a union rather than a single type.
func (t *Type) SubstituteTemplates(m TemplateMap) UnionType {
	if len(m) == 0 || !t.hasTemplates {
		return NewUnion(t)
	}

	r := t.registry

	switch t.kind {
	case KindTemplate:
		bound, ok := m[t.name]
		if !ok || bound.IsEmpty() {
			return NewUnion(t)
		}
		if t.nullable {
			bound = bound.WithNullable(true)
		}
		return bound

	case KindClass:
		args := make([]UnionType, len(t.typeArgs))
		for i, arg := range t.typeArgs {
			args[i] = arg.SubstituteTemplates(m)
		}
		return NewUnion(t.WithTypeArgs(args))

	case KindGenericArray, KindGenericMultiArray:
		element := t.typeArgs[0].SubstituteTemplates(m)
		return NewUnion(
			r.GenericArray(t.arrayKey, element).WithNullable(t.nullable),
		)

	case KindGenericIterable:
		key := t.typeArgs[0].SubstituteTemplates(m)
		value := t.typeArgs[1].SubstituteTemplates(m)
		return NewUnion(
			r.GenericIterable(key, value).WithNullable(t.nullable),
		)

	case KindArrayShape:
		fields := NewShapeFields(t.shape.Len())
		t.shape.Foreach(func(key ShapeKey, field ShapeField) {
			fields.Set(key, ShapeField{
				Type:     field.Type.SubstituteTemplates(m),
				Optional: field.Optional,
			})
		})
		return NewUnion(
			r.ArrayShape(fields).WithNullable(t.nullable),
		)

	case KindClosure, KindCallable:
		if t.signature == nil {
			return NewUnion(t)
		}
		params := make([]Param, len(t.signature.Params))
		for i, param := range t.signature.Params {
			params[i] = param
			params[i].Type = param.Type.SubstituteTemplates(m)
		}
		signature := &Signature{
			Params:      params,
			Return:      t.signature.Return.SubstituteTemplates(m),
			DeclContext: t.signature.DeclContext,
		}
		return NewUnion(
			r.SignatureType(t.kind, signature).WithNullable(t.nullable),
		)

	default:
		return NewUnion(t)
	}
}

// String returns the canonical rendering. For every non-template type
// the rendering re-parses to the same canonical instance.
func (t *Type) String() string {
	return t.str
}

func (t *Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Type string `json:"type"`
	}{
		Kind: t.kind.String(),
		Type: t.str,
	})
}

// qualifiedName joins a `\`-rooted namespace and a base name.
func qualifiedName(namespace, name string) string {
	if namespace == "" || namespace == "\\" {
		return "\\" + name
	}
	return namespace + "\\" + name
}

// splitQualifiedName splits a fully qualified name into
// its namespace and base name.
func splitQualifiedName(qualified string) (namespace, name string) {
	i := strings.LastIndexByte(qualified, '\\')
	if i < 0 {
		return "\\", qualified
	}
	namespace = qualified[:i]
	if namespace == "" {
		namespace = "\\"
	}
	return namespace, qualified[i+1:]
}

func (t *Type) buildString() string {
	var sb strings.Builder

	if t.nullable {
		sb.WriteByte('?')
	}

	switch t.kind {
	case KindClass:
		sb.WriteString(qualifiedName(t.namespace, t.name))
		t.writeTypeArgs(&sb)

	case KindTemplate:
		sb.WriteString(t.name)

	case KindLiteralInt:
		sb.WriteString(strconv.FormatInt(t.literalInt, 10))

	case KindLiteralString:
		sb.WriteString(format.QuotedString(t.literalString))

	case KindGenericArray, KindGenericMultiArray:
		element := t.typeArgs[0]
		if t.arrayKey == common.ArrayKeyMixed {
			if arrayElementNeedsParens(element) {
				sb.WriteByte('(')
				sb.WriteString(element.String())
				sb.WriteByte(')')
			} else {
				sb.WriteString(element.String())
			}
			sb.WriteString("[]")
		} else {
			sb.WriteString(NameArray)
			sb.WriteByte('<')
			sb.WriteString(t.arrayKey.Name())
			sb.WriteByte(',')
			sb.WriteString(element.String())
			sb.WriteByte('>')
		}

	case KindGenericIterable:
		key := t.typeArgs[0]
		value := t.typeArgs[1]
		sb.WriteString(NameIterable)
		sb.WriteByte('<')
		if !isMixedUnion(key) {
			sb.WriteString(key.String())
			sb.WriteByte(',')
		}
		sb.WriteString(value.String())
		sb.WriteByte('>')

	case KindArrayShape:
		sb.WriteString(NameArray)
		sb.WriteByte('{')
		first := true
		t.shape.Foreach(func(key ShapeKey, field ShapeField) {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(key.String())
			if field.Optional {
				sb.WriteByte('?')
			}
			sb.WriteByte(':')
			sb.WriteString(field.Type.String())
		})
		sb.WriteByte('}')

	case KindClosure, KindCallable:
		sb.WriteString(t.kind.Name())
		if t.signature != nil {
			sb.WriteString(t.signature.String())
		}

	default:
		sb.WriteString(t.kind.Name())
	}

	return sb.String()
}

func (t *Type) writeTypeArgs(sb *strings.Builder) {
	if len(t.typeArgs) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, arg := range t.typeArgs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte('>')
}

// arrayElementNeedsParens reports whether the element of a suffix-form
// array rendering, `T[]`, must be parenthesized to re-parse as the same
// element. Unions, nullable elements, and signature-carrying elements
// would otherwise bind the suffix differently.
func arrayElementNeedsParens(element UnionType) bool {
	single, ok := element.Single()
	if !ok {
		return true
	}
	return single.nullable || single.signature != nil
}

func isMixedUnion(u UnionType) bool {
	single, ok := u.Single()
	return ok && single.kind == KindMixed && !single.nullable
}

func (t *Type) buildKey() string {
	var sb strings.Builder

	if t.nullable {
		sb.WriteByte('?')
	}
	sb.WriteString(strconv.Itoa(int(t.kind)))
	sb.WriteByte(':')

	switch t.kind {
	case KindClass:
		sb.WriteString(strings.ToLower(qualifiedName(t.namespace, t.name)))
	case KindTemplate:
		// template names are case-sensitive
		sb.WriteString(t.name)
	case KindLiteralInt:
		sb.WriteString(strconv.FormatInt(t.literalInt, 10))
	case KindLiteralString:
		// literal values are case-sensitive
		sb.WriteString(t.literalString)
	}

	switch t.kind {
	case KindGenericArray, KindGenericMultiArray:
		sb.WriteByte(',')
		sb.WriteString(t.arrayKey.Name())
	}

	if len(t.typeArgs) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.typeArgs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(arg.key())
		}
		sb.WriteByte('>')
	}

	if t.shape != nil {
		sb.WriteByte('{')
		t.shape.Foreach(func(key ShapeKey, field ShapeField) {
			sb.WriteString(key.String())
			if field.Optional {
				sb.WriteByte('?')
			}
			sb.WriteByte(':')
			sb.WriteString(field.Type.key())
			sb.WriteByte(';')
		})
		sb.WriteByte('}')
	}

	if t.signature != nil {
		sb.WriteByte('(')
		for _, param := range t.signature.Params {
			sb.WriteString(param.Type.key())
			if param.ByReference {
				sb.WriteByte('&')
			}
			if param.Variadic {
				sb.WriteString("...")
			}
			if param.HasDefault {
				sb.WriteByte('=')
			}
			sb.WriteByte(';')
		}
		sb.WriteString("):")
		sb.WriteString(t.signature.Return.key())
	}

	return sb.String()
}

func (t *Type) computeHasTemplates() bool {
	if t.kind == KindTemplate {
		return true
	}
	for _, arg := range t.typeArgs {
		if arg.HasTemplates() {
			return true
		}
	}
	if t.shape != nil {
		found := false
		t.shape.Foreach(func(_ ShapeKey, field ShapeField) {
			if field.Type.HasTemplates() {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return t.signature != nil && t.signature.hasTemplates()
}
