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
	"strings"

	"github.com/SaveTheRbtz/mph"

	"github.com/sable-analyzer/sable/common"
	"github.com/sable-analyzer/sable/errors"
)

// CastPolicy configures how lenient the casting engine is.
// The zero value is the strict default policy.
type CastPolicy struct {
	// NullCastsAsAnyType forgives the null part of any nullable source
	// against a non-nullable target
	NullCastsAsAnyType bool
	// NullCastsAsArray forgives the null part of a nullable source
	// against a non-nullable array-like target
	NullCastsAsArray bool
	// CheckGenerics enables member-wise covariant checking of generic
	// arguments between references to the same class.
	// Without it, such casts fail unless the target declares
	// no arguments.
	CheckGenerics bool
}

// CanCastTo reports whether a value of this type can be used where the
// target type is expected.
//
// The check is a pure predicate: no side effects, and the policy is the
// only input besides the two types. Class hierarchies are not consulted;
// callers that need subtyping through ancestry expand the source first.
func (t *Type) CanCastTo(target *Type, policy CastPolicy) bool {
	if t == target {
		return true
	}
	if target.kind == KindMixed || t.kind == KindMixed {
		return true
	}

	if t.kind == KindNull && targetAcceptsNull(target) {
		return true
	}

	if sourceIsNullish(t) && !targetAcceptsNull(target) {
		switch {
		case policy.NullCastsAsAnyType:
		case policy.NullCastsAsArray && target.IsArrayLike():
		default:
			return false
		}
		stripped := t.WithNullable(false)
		if stripped == t {
			// pure null source, forgiven by the policy
			return true
		}
		return stripped.CanCastTo(target, policy)
	}

	if target.nullable {
		target = target.WithNullable(false)
		if t == target {
			return true
		}
	}

	return t.canCastToNonNullable(target, policy)
}

func sourceIsNullish(t *Type) bool {
	return t.nullable || t.kind == KindNull
}

func targetAcceptsNull(target *Type) bool {
	return target.nullable ||
		target.kind == KindNull ||
		target.kind == KindMixed
}

// canCastToNonNullable is the kind-specific core of the cast check.
// The target's nullable marker has been stripped; the source keeps its
// own marker, which the kind dispatch ignores.
func (t *Type) canCastToNonNullable(target *Type, policy CastPolicy) bool {
	switch t.kind {
	case KindInt:
		return target.kind == KindFloat ||
			target.kind == KindScalar

	case KindFloat, KindString, KindBool:
		return target.kind == KindScalar

	case KindTrue, KindFalse:
		return target.kind == KindBool ||
			target.kind == KindScalar

	case KindLiteralInt:
		switch target.kind {
		case KindInt, KindFloat, KindScalar:
			return true
		}
		return false

	case KindLiteralString:
		switch target.kind {
		case KindString, KindScalar:
			return true
		}
		return false

	case KindNull:
		// non-null targets are handled by the nullability rule
		return false

	case KindScalar,
		KindVoid,
		KindResource,
		KindObject,
		KindIterable,
		KindTemplate,
		KindUnknown:
		return false

	case KindStatic:
		return target.kind == KindObject

	case KindArray:
		switch target.kind {
		case KindIterable,
			KindGenericIterable,
			KindGenericArray,
			KindGenericMultiArray,
			KindArrayShape:
			// a plain array's contents are unknown,
			// structured array targets are accepted leniently
			return true
		}
		return false

	case KindGenericArray, KindGenericMultiArray:
		return t.canCastGenericArrayTo(target, policy)

	case KindGenericIterable:
		return t.canCastGenericIterableTo(target, policy)

	case KindArrayShape:
		return t.canCastShapeTo(target, policy)

	case KindCallable, KindClosure:
		return t.canCastCallableTo(target, policy)

	case KindClass:
		return t.canCastClassTo(target, policy)

	default:
		panic(errors.NewUnreachableError())
	}
}

func (t *Type) canCastGenericArrayTo(target *Type, policy CastPolicy) bool {
	element := t.typeArgs[0]

	switch target.kind {
	case KindArray, KindIterable:
		return true

	case KindGenericArray, KindGenericMultiArray:
		if !target.arrayKey.Accepts(t.arrayKey) {
			return false
		}
		return element.CanCastToUnion(target.typeArgs[0], policy)

	case KindGenericIterable:
		keyUnion := arrayKeyUnion(t.registry, t.arrayKey)
		return keyUnion.CanCastToUnion(target.typeArgs[0], policy) &&
			element.CanCastToUnion(target.typeArgs[1], policy)
	}

	return false
}

func (t *Type) canCastGenericIterableTo(target *Type, policy CastPolicy) bool {
	switch target.kind {
	case KindIterable:
		return true

	case KindGenericIterable:
		return t.typeArgs[0].CanCastToUnion(target.typeArgs[0], policy) &&
			t.typeArgs[1].CanCastToUnion(target.typeArgs[1], policy)
	}

	return false
}

func (t *Type) canCastShapeTo(target *Type, policy CastPolicy) bool {
	switch target.kind {
	case KindArray, KindIterable:
		return true

	case KindGenericArray, KindGenericMultiArray:
		return t.canCastShapeToGenericTargets([]*Type{target}, policy)

	case KindGenericIterable:
		keyUnion := arrayKeyUnion(t.registry, t.arrayKey)
		if !keyUnion.CanCastToUnion(target.typeArgs[0], policy) {
			return false
		}
		ok := true
		t.shape.Foreach(func(_ ShapeKey, field ShapeField) {
			if !ok {
				return
			}
			if !field.Type.CanCastToUnion(target.typeArgs[1], policy) {
				ok = false
			}
		})
		return ok

	case KindArrayShape:
		return t.canCastShapeToShape(target, policy)
	}

	return false
}

// canCastShapeToShape checks member-wise shape covariance: every field
// the target declares must be present (or optional) and covariant.
// Extra source fields are allowed.
func (t *Type) canCastShapeToShape(target *Type, policy CastPolicy) bool {
	ok := true
	target.shape.Foreach(func(key ShapeKey, targetField ShapeField) {
		if !ok {
			return
		}
		sourceField, present := t.shape.Get(key)
		if !present {
			if !targetField.Optional {
				ok = false
			}
			return
		}
		if sourceField.Optional && !targetField.Optional {
			ok = false
			return
		}
		if !sourceField.Type.CanCastToUnion(targetField.Type, policy) {
			ok = false
		}
	})
	return ok
}

// canCastShapeToGenericTargets widens a shape against generic-array
// targets: the cast succeeds when every field's type casts into the
// combined element union of the key-compatible targets.
func (t *Type) canCastShapeToGenericTargets(targets []*Type, policy CastPolicy) bool {
	var combined UnionType
	anyArrayTarget := false
	for _, target := range targets {
		switch target.kind {
		case KindGenericArray, KindGenericMultiArray:
			if !target.arrayKey.Accepts(t.arrayKey) {
				continue
			}
			anyArrayTarget = true
			combined = combined.WithUnion(target.typeArgs[0])
		}
	}
	if !anyArrayTarget {
		return false
	}

	ok := true
	t.shape.Foreach(func(_ ShapeKey, field ShapeField) {
		if !ok {
			return
		}
		if !field.Type.CanCastToUnion(combined, policy) {
			ok = false
		}
	})
	return ok
}

func (t *Type) canCastCallableTo(target *Type, policy CastPolicy) bool {
	switch target.kind {
	case KindCallable:

	case KindClosure:
		if t.kind == KindCallable {
			// a callable value need not be a closure
			return false
		}

	case KindObject:
		// closures are objects, callable strings and arrays are not
		return t.kind == KindClosure

	default:
		return false
	}

	if target.signature == nil {
		return true
	}
	if t.signature == nil {
		// unknown signature, accepted leniently
		return true
	}
	return signaturesCompatible(t.signature, target.signature, policy)
}

// signaturesCompatible reports whether a function with the source
// signature can be used where the target signature is expected:
// parameters are checked contravariantly, returns covariantly.
func signaturesCompatible(source, target *Signature, policy CastPolicy) bool {
	if source.requiredParamCount() > len(target.Params) {
		return false
	}

	for i, targetParam := range target.Params {
		sourceParam, ok := paramAt(source, i)
		if !ok {
			return false
		}
		if sourceParam.ByReference != targetParam.ByReference {
			return false
		}
		if sourceParam.Type.IsEmpty() || targetParam.Type.IsEmpty() {
			// an untyped parameter accepts anything
			continue
		}
		if !targetParam.Type.CanCastToUnion(sourceParam.Type, policy) {
			return false
		}
	}

	if hasVariadicTail(target) && !hasVariadicTail(source) {
		return false
	}

	return source.Return.CanCastToUnion(target.Return, policy)
}

// paramAt returns the parameter covering position i,
// with a trailing variadic parameter absorbing all later positions.
func paramAt(s *Signature, i int) (Param, bool) {
	if i < len(s.Params) {
		return s.Params[i], true
	}
	if hasVariadicTail(s) {
		return s.Params[len(s.Params)-1], true
	}
	return Param{}, false
}

func hasVariadicTail(s *Signature) bool {
	n := len(s.Params)
	return n > 0 && s.Params[n-1].Variadic
}

// Class-like names in the root namespace that are iterable
// by language definition.
var traversableClassNames = []string{
	"traversable",
	"iterator",
	"iteratoraggregate",
	"generator",
}

var traversableClassNamesTable = mph.Build(traversableClassNames)

const generatorClassName = "Generator"

func isTraversableClass(t *Type) bool {
	if t.namespace != "\\" {
		return false
	}
	_, ok := traversableClassNamesTable.Lookup(strings.ToLower(t.name))
	return ok
}

func isClosureClass(t *Type) bool {
	return t.namespace == "\\" &&
		strings.EqualFold(t.name, NameClosure)
}

func (t *Type) canCastClassTo(target *Type, policy CastPolicy) bool {
	switch target.kind {
	case KindObject:
		return true

	case KindIterable:
		return isTraversableClass(t)

	case KindGenericIterable:
		if !isTraversableClass(t) {
			return false
		}
		if len(t.typeArgs) == 0 {
			// no declared element types, accepted leniently
			return true
		}
		key, value := t.traversableKeyValue()
		if !value.IsEmpty() &&
			!value.CanCastToUnion(target.typeArgs[1], policy) {
			return false
		}
		if !key.IsEmpty() &&
			!key.CanCastToUnion(target.typeArgs[0], policy) {
			return false
		}
		return true

	case KindCallable, KindClosure:
		return isClosureClass(t)

	case KindClass:
		if !sameClass(t, target) {
			return false
		}
		if len(target.typeArgs) == 0 {
			return true
		}
		if !policy.CheckGenerics {
			return false
		}
		if len(t.typeArgs) != len(target.typeArgs) {
			return false
		}
		for i := range t.typeArgs {
			if !t.typeArgs[i].CanCastToUnion(target.typeArgs[i], policy) {
				return false
			}
		}
		return true
	}

	return false
}

func sameClass(a, b *Type) bool {
	return strings.EqualFold(a.namespace, b.namespace) &&
		strings.EqualFold(a.name, b.name)
}

// traversableKeyValue extracts the key and value unions a traversable
// class reference declares. The last one or two generic arguments are
// (key,) value, except for Generator, whose first argument is the key
// and second the value, with the send and return slots ignored.
func (t *Type) traversableKeyValue() (key, value UnionType) {
	args := t.typeArgs

	if strings.EqualFold(t.name, generatorClassName) {
		switch {
		case len(args) >= 2:
			return args[0], args[1]
		case len(args) == 1:
			return UnionType{}, args[0]
		}
		return
	}

	switch {
	case len(args) >= 2:
		return args[len(args)-2], args[len(args)-1]
	case len(args) == 1:
		return UnionType{}, args[0]
	}
	return
}

func arrayKeyUnion(r *Registry, key common.ArrayKey) UnionType {
	switch key {
	case common.ArrayKeyInt:
		return NewUnion(r.Native(KindInt))
	case common.ArrayKeyString:
		return NewUnion(r.Native(KindString))
	default:
		return NewUnion(r.Mixed())
	}
}

// CanCastToAnyOf reports whether the cast succeeds against at least one
// member of the target union. An empty target union accepts anything.
// Array shapes additionally widen against the union's generic-array
// members taken together.
func (t *Type) CanCastToAnyOf(targets UnionType, policy CastPolicy) bool {
	if targets.IsEmpty() {
		return true
	}
	if t.kind == KindArrayShape &&
		t.canCastShapeToGenericTargets(targets.Members(), policy) {
		return true
	}
	for _, target := range targets.Members() {
		if t.CanCastTo(target, policy) {
			return true
		}
	}
	return false
}

// CanCastToUnion reports whether every member of the union casts into
// the target union. The empty union is the bottom type: it casts to
// anything, and anything casts to it as a target.
func (u UnionType) CanCastToUnion(target UnionType, policy CastPolicy) bool {
	if u.IsEmpty() || target.IsEmpty() {
		return true
	}
	for _, t := range u.members {
		if !t.CanCastToAnyOf(target, policy) {
			return false
		}
	}
	return true
}
