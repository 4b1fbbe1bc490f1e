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

package parser

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/common"
	"github.com/sable-analyzer/sable/errors"
	"github.com/sable-analyzer/sable/types"
)

// typeParseCacheSize bounds the memoized parse results
const typeParseCacheSize = 16384

// TypeParser converts type annotations into canonical types.
//
// Annotations are parsed with the grammar in this package,
// and the resulting names are resolved against a Context:
// template bindings, documentation alias spellings, class-scope names,
// imports, native names, and finally class references qualified against
// the current namespace, in that order.
type TypeParser struct {
	registry *types.Registry
	store    types.SymbolStore
	cache    *lru.Cache[parseCacheKey, types.UnionType]
}

// parseCacheKey identifies one context-free parse result.
// Only parses against the empty context are cached:
// a contextful result depends on the context's imports, namespace,
// and enclosing class, which have no stable cache identity.
type parseCacheKey struct {
	input      string
	provenance types.Provenance
}

// NewTypeParser creates a parser producing types in the given registry.
// The store may be nil, in which case `parent` degrades to `mixed`.
func NewTypeParser(registry *types.Registry, store types.SymbolStore) *TypeParser {
	cache, err := lru.New[parseCacheKey, types.UnionType](typeParseCacheSize)
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return &TypeParser{
		registry: registry,
		store:    store,
		cache:    cache,
	}
}

// InvalidateCache drops all memoized parse results.
// Must be called, together with Expander.Invalidate,
// after class ancestry changes
func (p *TypeParser) InvalidateCache() {
	p.cache.Purge()
}

// ParseUnion parses a whole type annotation into a union of canonical types.
//
// A parse failure is not fatal:
// the whole input degrades to a bare class-reference name,
// unless the input is empty or the name would be empty or contain `|`,
// which fail with a MalformedTypeError.
func (p *TypeParser) ParseUnion(
	input string,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	if ctx == nil {
		ctx = types.EmptyContext{}
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return types.UnionType{}, &types.MalformedTypeError{
			Input:  input,
			Detail: "type is empty",
		}
	}

	_, cacheable := ctx.(types.EmptyContext)

	cacheKey := parseCacheKey{
		input:      trimmed,
		provenance: provenance,
	}

	if cacheable {
		if cached, ok := p.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	expr, err := ParseTypeExpr([]byte(trimmed))

	var result types.UnionType
	if err != nil {
		// Liberal fallback:
		// an annotation the grammar rejects is read as a bare class name
		result, err = p.classRefFallback(trimmed, ctx)
	} else {
		result, err = p.convertTypeExpr(expr, ctx, provenance)
	}
	if err != nil {
		return types.UnionType{}, err
	}

	if cacheable {
		p.cache.Add(cacheKey, result)
	}

	return result, nil
}

func (p *TypeParser) classRefFallback(
	name string,
	ctx types.Context,
) (types.UnionType, error) {

	if strings.ContainsRune(name, '|') {
		return types.UnionType{}, &types.MalformedTypeError{
			Input:  name,
			Detail: "name contains '|'",
		}
	}

	if strings.HasSuffix(name, "\\") {
		return types.UnionType{}, &types.MalformedTypeError{
			Input:  name,
			Detail: "name is empty",
		}
	}

	return types.NewUnion(p.classRefNamed(ctx, name)), nil
}

// classRefNamed builds a class reference for a name,
// qualifying unrooted names against the context's namespace
func (p *TypeParser) classRefNamed(ctx types.Context, name string) *types.Type {
	if strings.HasPrefix(name, "\\") {
		return p.registry.QualifiedClassRef(name)
	}
	return p.registry.QualifiedClassRef(
		qualifyName(ctx.Namespace(), name),
	)
}

func qualifyName(namespace, name string) string {
	if namespace == "" || namespace == "\\" {
		return "\\" + name
	}
	return namespace + "\\" + name
}

func (p *TypeParser) convertTypeExpr(
	expr ast.TypeExpr,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	switch expr := expr.(type) {
	case *ast.UnionExpr:
		var result types.UnionType
		for _, member := range expr.Types {
			memberUnion, err := p.convertTypeExpr(member, ctx, provenance)
			if err != nil {
				return types.UnionType{}, err
			}
			result = result.WithUnion(memberUnion)
		}
		return result, nil

	case *ast.ParenExpr:
		return p.convertTypeExpr(expr.Type, ctx, provenance)

	case *ast.NullableExpr:
		inner, err := p.convertTypeExpr(expr.Type, ctx, provenance)
		if err != nil {
			return types.UnionType{}, err
		}
		return inner.WithNullable(true), nil

	case *ast.ArrayExpr:
		element, err := p.convertTypeExpr(expr.Element, ctx, provenance)
		if err != nil {
			return types.UnionType{}, err
		}
		return types.NewUnion(
			p.registry.GenericArray(common.ArrayKeyMixed, element),
		), nil

	case *ast.LiteralIntExpr:
		return types.NewUnion(p.registry.LiteralInt(expr.Value)), nil

	case *ast.LiteralStringExpr:
		return types.NewUnion(p.registry.LiteralString(expr.Value)), nil

	case *ast.NominalExpr:
		return p.convertNominalExpr(expr, ctx, provenance)

	case *ast.GenericExpr:
		return p.convertGenericExpr(expr, ctx, provenance)

	case *ast.ShapeExpr:
		return p.convertShapeExpr(expr, ctx, provenance)

	case *ast.SignatureExpr:
		return p.convertSignatureExpr(expr, ctx, provenance)

	default:
		panic(errors.NewUnreachableError())
	}
}

func (p *TypeParser) convertNominalExpr(
	expr *ast.NominalExpr,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	name := expr.Identifier.Identifier

	if expr.Rooted {
		// Native names resolve from the root namespace too
		if len(expr.NestedIdentifiers) == 0 {
			if kind, ok := types.NativeKindForName(name); ok {
				return types.NewUnion(p.registry.Native(kind)), nil
			}
		}

		return types.NewUnion(
			p.registry.QualifiedClassRef(expr.String()),
		), nil
	}

	if len(expr.NestedIdentifiers) == 0 {
		return p.convertSingleName(name, ctx, provenance)
	}

	// Qualified name: resolve the first segment through the imports
	if mapped, ok := ctx.ResolveImport(name); ok {
		var sb strings.Builder
		sb.WriteString(mapped)
		for _, identifier := range expr.NestedIdentifiers {
			sb.WriteByte('\\')
			sb.WriteString(identifier.Identifier)
		}
		return types.NewUnion(
			p.registry.QualifiedClassRef(sb.String()),
		), nil
	}

	return types.NewUnion(
		p.classRefNamed(ctx, expr.String()),
	), nil
}

// convertSingleName resolves an unqualified, unrooted name
func (p *TypeParser) convertSingleName(
	name string,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	if provenance == types.FromDoc {
		// A template parameter bound to this exact name takes priority
		// over every other resolution
		if binding, ok := ctx.TemplateBinding(name); ok {
			return binding, nil
		}

		// Documentation annotations use a few alias spellings
		name = types.FoldDocAlias(name)
	}

	if types.IsClassScopeName(name) {
		return p.convertClassScopeName(name, ctx)
	}

	if mapped, ok := ctx.ResolveImport(name); ok {
		return types.NewUnion(
			p.registry.QualifiedClassRef(mapped),
		), nil
	}

	if kind, ok := types.NativeKindForName(name); ok {
		return types.NewUnion(p.registry.Native(kind)), nil
	}

	return types.NewUnion(
		p.classRefNamed(ctx, name),
	), nil
}

// convertClassScopeName resolves `self`, `parent`, `static`, and `$this`.
// Outside a class scope, `static` and `$this` keep their late-bound
// native kind, and `self` and `parent` degrade to `mixed`
func (p *TypeParser) convertClassScopeName(
	name string,
	ctx types.Context,
) (types.UnionType, error) {

	currentClass, inClass := ctx.CurrentClass()

	switch strings.ToLower(name) {
	case types.NameSelf:
		if !inClass {
			return types.NewUnion(p.registry.Mixed()), nil
		}
		return types.NewUnion(
			p.registry.QualifiedClassRef(currentClass),
		), nil

	case types.NameParent:
		if !inClass || p.store == nil {
			// Without a class scope and a store
			// the parent cannot be resolved
			return types.NewUnion(p.registry.Mixed()), nil
		}
		ancestor, ok := p.store.Ancestor(currentClass)
		if !ok {
			return types.UnionType{},
				types.NewUnresolvedReferenceError(currentClass, p.store)
		}
		return types.NewUnion(
			p.registry.QualifiedClassRef(ancestor),
		), nil

	case types.NameStatic, types.NameThis:
		if !inClass {
			return types.NewUnion(p.registry.Native(types.KindStatic)), nil
		}
		return types.NewUnion(
			p.registry.QualifiedClassRef(currentClass),
		), nil

	default:
		panic(errors.NewUnreachableError())
	}
}

func (p *TypeParser) convertGenericExpr(
	expr *ast.GenericExpr,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	args := make([]types.UnionType, 0, len(expr.TypeArguments))
	for _, argument := range expr.TypeArguments {
		arg, err := p.convertTypeExpr(argument, ctx, provenance)
		if err != nil {
			return types.UnionType{}, err
		}
		args = append(args, arg)
	}

	base := expr.Base

	if len(base.NestedIdentifiers) == 0 {
		name := base.Identifier.Identifier

		switch {
		case strings.EqualFold(name, types.NameArray):
			key, value := keyValueArgs(args)
			return types.NewUnion(
				p.registry.GenericArray(arrayKeyFromUnion(key), value),
			), nil

		case strings.EqualFold(name, types.NameIterable):
			key, value := keyValueArgs(args)
			return types.NewUnion(
				p.registry.GenericIterable(key, value),
			), nil
		}
	}

	baseUnion, err := p.convertNominalExpr(base, ctx, provenance)
	if err != nil {
		return types.UnionType{}, err
	}

	var result types.UnionType
	for _, member := range baseUnion.Members() {
		// Arguments attach to class references.
		// On any other kind they carry no meaning and are dropped
		if member.Kind() == types.KindClass {
			member = member.WithTypeArgs(args)
		}
		result = result.WithType(member)
	}

	return result, nil
}

// keyValueArgs splits a type argument list into key and value:
// one argument is the value, two are key and value.
// Extra arguments are dropped
func keyValueArgs(args []types.UnionType) (key, value types.UnionType) {
	if len(args) >= 2 {
		return args[0], args[1]
	}
	if len(args) == 1 {
		return types.UnionType{}, args[0]
	}
	return types.UnionType{}, types.UnionType{}
}

// arrayKeyFromUnion maps a declared key union to the key categories
// arrays distinguish
func arrayKeyFromUnion(key types.UnionType) common.ArrayKey {
	single, ok := key.Single()
	if !ok {
		return common.ArrayKeyMixed
	}
	switch single.Kind() {
	case types.KindInt, types.KindLiteralInt:
		return common.ArrayKeyInt
	case types.KindString, types.KindLiteralString:
		return common.ArrayKeyString
	default:
		return common.ArrayKeyMixed
	}
}

func (p *TypeParser) convertShapeExpr(
	expr *ast.ShapeExpr,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	fields := types.NewShapeFields(len(expr.Fields))

	for _, field := range expr.Fields {
		value, err := p.convertTypeExpr(field.Value, ctx, provenance)
		if err != nil {
			return types.UnionType{}, err
		}

		var key types.ShapeKey
		if field.Key.IsInt {
			key = types.IntShapeKey(field.Key.Int)
		} else {
			key = types.StringShapeKey(field.Key.Name)
		}

		// A later field under the same key replaces the earlier one
		fields.Set(key, types.ShapeField{
			Type:     value,
			Optional: field.Optional || field.HasDefault,
		})
	}

	return types.NewUnion(p.registry.ArrayShape(fields)), nil
}

func (p *TypeParser) convertSignatureExpr(
	expr *ast.SignatureExpr,
	ctx types.Context,
	provenance types.Provenance,
) (types.UnionType, error) {

	params := make([]types.Param, 0, len(expr.Parameters))

	for _, parameter := range expr.Parameters {
		var paramType types.UnionType
		if parameter.TypeAnnotation != nil {
			var err error
			paramType, err = p.convertTypeExpr(parameter.TypeAnnotation, ctx, provenance)
			if err != nil {
				return types.UnionType{}, err
			}
		}

		// A declared default of `null` makes the parameter nullable
		if parameter.DefaultIsNull {
			paramType = paramType.WithNullable(true)
		}

		params = append(params, types.Param{
			Type:        paramType,
			ByReference: parameter.ByReference,
			Variadic:    parameter.Variadic,
			HasDefault:  parameter.HasDefault,
		})
	}

	var returnType types.UnionType
	if expr.ReturnType != nil {
		var err error
		returnType, err = p.convertTypeExpr(expr.ReturnType, ctx, provenance)
		if err != nil {
			return types.UnionType{}, err
		}
	} else {
		// An undeclared return type defaults to void
		returnType = types.NewUnion(p.registry.Native(types.KindVoid))
	}

	kind := types.KindClosure
	if strings.EqualFold(expr.Base.Identifier.Identifier, types.NameCallable) {
		kind = types.KindCallable
	}

	signature := &types.Signature{
		Params:      params,
		Return:      returnType,
		DeclContext: ctx,
	}

	return types.NewUnion(p.registry.SignatureType(kind, signature)), nil
}
