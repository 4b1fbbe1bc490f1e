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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-analyzer/sable/common"
)

func TestRegistryInterning(t *testing.T) {

	t.Parallel()

	t.Run("natives are singletons", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		require.Same(t, registry.Native(KindInt), registry.Native(KindInt))
		require.Same(t, registry.Mixed(), registry.Native(KindMixed))
		require.Same(t, registry.Null(), registry.Native(KindNull))
	})

	t.Run("class references are case-insensitive", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		first := registry.ClassRef("\\Foo", "BAR")
		second := registry.ClassRef("\\foo", "bar")

		require.Same(t, first, second)
		// the spelling of the first interning is preserved
		assert.Equal(t, "\\Foo\\BAR", second.String())
	})

	t.Run("literals intern by value", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		require.Same(t, registry.LiteralInt(1), registry.LiteralInt(1))
		require.NotSame(t, registry.LiteralInt(1), registry.LiteralInt(2))

		require.Same(t, registry.LiteralString("a"), registry.LiteralString("a"))
		// literal string values are case-sensitive
		require.NotSame(t, registry.LiteralString("a"), registry.LiteralString("A"))
	})

	t.Run("template names are case-sensitive", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		require.Same(t, registry.Template("T"), registry.Template("T"))
		require.NotSame(t, registry.Template("T"), registry.Template("t"))
	})

	t.Run("union member order does not affect identity", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		intType := registry.Native(KindInt)
		stringType := registry.Native(KindString)

		first := registry.GenericArray(
			common.ArrayKeyMixed,
			NewUnion(intType, stringType),
		)
		second := registry.GenericArray(
			common.ArrayKeyMixed,
			NewUnion(stringType, intType),
		)

		require.Same(t, first, second)
		assert.Equal(t, "(int|string)[]", second.String())
	})

	t.Run("distinct registries produce distinct instances", func(t *testing.T) {
		t.Parallel()

		first := NewRegistry().Native(KindInt)
		second := NewRegistry().Native(KindInt)

		require.NotSame(t, first, second)
	})
}

func TestRegistryNative(t *testing.T) {

	t.Parallel()

	registry := NewRegistry()

	require.Panics(t, func() {
		registry.Native(KindClass)
	})
	require.Panics(t, func() {
		registry.Native(KindLiteralInt)
	})
	require.Panics(t, func() {
		registry.Native(KindTemplate)
	})
}

func TestRegistryQualifiedClassRef(t *testing.T) {

	t.Parallel()

	registry := NewRegistry()

	t.Run("namespaced", func(t *testing.T) {
		t.Parallel()

		ref := registry.QualifiedClassRef("\\Foo\\Bar")
		require.Same(t, registry.ClassRef("\\Foo", "Bar"), ref)
		assert.Equal(t, "\\Foo", ref.Namespace())
		assert.Equal(t, "Bar", ref.Name())
	})

	t.Run("root namespace", func(t *testing.T) {
		t.Parallel()

		ref := registry.QualifiedClassRef("\\DateTime")
		require.Same(t, registry.ClassRef("\\", "DateTime"), ref)
		assert.Equal(t, "\\", ref.Namespace())
	})

	t.Run("unrooted name", func(t *testing.T) {
		t.Parallel()

		ref := registry.QualifiedClassRef("DateTime")
		require.Same(t, registry.ClassRef("", "DateTime"), ref)
	})
}

func TestRegistryGenericArray(t *testing.T) {

	t.Parallel()

	t.Run("empty element union degrades to array", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		array := registry.GenericArray(common.ArrayKeyInt, UnionType{})
		require.Same(t, registry.Native(KindArray), array)
	})

	t.Run("single element", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		array := registry.GenericArray(
			common.ArrayKeyMixed,
			NewUnion(registry.Native(KindInt)),
		)
		assert.Equal(t, KindGenericArray, array.Kind())
	})

	t.Run("multiple elements", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		array := registry.GenericArray(
			common.ArrayKeyMixed,
			NewUnion(
				registry.Native(KindInt),
				registry.Native(KindString),
			),
		)
		assert.Equal(t, KindGenericMultiArray, array.Kind())
	})
}

func TestRegistryGenericIterable(t *testing.T) {

	t.Parallel()

	t.Run("both unions empty degrades to iterable", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		iterable := registry.GenericIterable(UnionType{}, UnionType{})
		require.Same(t, registry.Native(KindIterable), iterable)
	})

	t.Run("empty key defaults to mixed", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		iterable := registry.GenericIterable(
			UnionType{},
			NewUnion(registry.Native(KindInt)),
		)

		key, ok := iterable.KeyUnion().Single()
		require.True(t, ok)
		require.Same(t, registry.Mixed(), key)
	})

	t.Run("empty value defaults to mixed", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		iterable := registry.GenericIterable(
			NewUnion(registry.Native(KindInt)),
			UnionType{},
		)

		value, ok := iterable.ElementUnion().Single()
		require.True(t, ok)
		require.Same(t, registry.Mixed(), value)
	})
}

func TestRegistryArrayShape(t *testing.T) {

	t.Parallel()

	t.Run("nil fields", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		shape := registry.ArrayShape(nil)
		assert.Equal(t, KindArrayShape, shape.Kind())
		assert.Equal(t, "array{}", shape.String())
	})

	t.Run("field order is part of identity", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		intUnion := NewUnion(registry.Native(KindInt))

		first := NewShapeFields(2)
		first.Set(StringShapeKey("a"), ShapeField{Type: intUnion})
		first.Set(StringShapeKey("b"), ShapeField{Type: intUnion})

		second := NewShapeFields(2)
		second.Set(StringShapeKey("b"), ShapeField{Type: intUnion})
		second.Set(StringShapeKey("a"), ShapeField{Type: intUnion})

		require.NotSame(t, registry.ArrayShape(first), registry.ArrayShape(second))
	})

	t.Run("key category", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		intUnion := NewUnion(registry.Native(KindInt))

		stringKeyed := NewShapeFields(1)
		stringKeyed.Set(StringShapeKey("a"), ShapeField{Type: intUnion})
		assert.Equal(t,
			common.ArrayKeyString,
			registry.ArrayShape(stringKeyed).ArrayKeyKind(),
		)

		intKeyed := NewShapeFields(1)
		intKeyed.Set(IntShapeKey(0), ShapeField{Type: intUnion})
		assert.Equal(t,
			common.ArrayKeyInt,
			registry.ArrayShape(intKeyed).ArrayKeyKind(),
		)

		mixedKeyed := NewShapeFields(2)
		mixedKeyed.Set(IntShapeKey(0), ShapeField{Type: intUnion})
		mixedKeyed.Set(StringShapeKey("a"), ShapeField{Type: intUnion})
		assert.Equal(t,
			common.ArrayKeyMixed,
			registry.ArrayShape(mixedKeyed).ArrayKeyKind(),
		)
	})
}

func TestRegistrySignatureType(t *testing.T) {

	t.Parallel()

	t.Run("nil signature returns the bare singleton", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		require.Same(t,
			registry.Native(KindClosure),
			registry.SignatureType(KindClosure, nil),
		)
		require.Same(t,
			registry.Native(KindCallable),
			registry.SignatureType(KindCallable, nil),
		)
	})

	t.Run("non-callable kind", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		require.Panics(t, func() {
			registry.SignatureType(KindInt, &Signature{})
		})
	})

	t.Run("equivalent signatures intern to one instance", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()
		voidUnion := NewUnion(registry.Native(KindVoid))

		first := registry.SignatureType(
			KindClosure,
			&Signature{Return: voidUnion},
		)
		second := registry.SignatureType(
			KindClosure,
			&Signature{Return: voidUnion},
		)

		require.Same(t, first, second)
	})
}

func TestRegistryReset(t *testing.T) {

	t.Parallel()

	registry := NewRegistry()

	before := registry.Native(KindInt)
	require.NotZero(t, registry.Len())

	registry.Reset()
	require.Zero(t, registry.Len())

	after := registry.Native(KindInt)
	require.NotSame(t, before, after)
	assert.Equal(t, before.String(), after.String())
}

func TestRegistryTypeFromValue(t *testing.T) {

	t.Parallel()

	registry := NewRegistry()

	assert.Same(t, registry.Null(), registry.TypeFromValue(nil))
	assert.Same(t, registry.Native(KindTrue), registry.TypeFromValue(true))
	assert.Same(t, registry.Native(KindFalse), registry.TypeFromValue(false))
	assert.Same(t, registry.LiteralInt(42), registry.TypeFromValue(42))
	assert.Same(t, registry.LiteralInt(-1), registry.TypeFromValue(int64(-1)))
	assert.Same(t, registry.Native(KindFloat), registry.TypeFromValue(3.5))
	assert.Same(t, registry.LiteralString("up"), registry.TypeFromValue("up"))

	// values with no annotation counterpart widen to mixed
	assert.Same(t, registry.Mixed(), registry.TypeFromValue(struct{}{}))
}
