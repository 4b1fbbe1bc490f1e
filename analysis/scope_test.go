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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-analyzer/sable/types"
)

func TestScopeNamespace(t *testing.T) {

	t.Parallel()

	t.Run("empty is the root namespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "\\", NewScope("").Namespace())
	})

	t.Run("missing leading separator is tolerated", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "\\App", NewScope("App").Namespace())
	})

	t.Run("trailing separator is dropped", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `\App\Models`, NewScope(`\App\Models\`).Namespace())
	})

	t.Run("separator-only is the root namespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "\\", NewScope("\\").Namespace())
	})
}

func TestScopeCurrentClass(t *testing.T) {

	t.Parallel()

	t.Run("without a class", func(t *testing.T) {
		t.Parallel()

		_, ok := NewScope("App").CurrentClass()
		require.False(t, ok)
	})

	t.Run("with a class", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithClass(`App\Foo`)

		currentClass, ok := scope.CurrentClass()
		require.True(t, ok)
		assert.Equal(t, `\App\Foo`, currentClass)
	})

	t.Run("empty class name clears the class", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithClass(`App\Foo`).WithClass("")

		_, ok := scope.CurrentClass()
		require.False(t, ok)
	})
}

func TestScopeImports(t *testing.T) {

	t.Parallel()

	t.Run("explicit alias", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithImport("Shorty", `Vendor\Collection`)

		target, ok := scope.ResolveImport("Shorty")
		require.True(t, ok)
		assert.Equal(t, `\Vendor\Collection`, target)
	})

	t.Run("aliases are case-insensitive", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithImport("Shorty", `Vendor\Collection`)

		target, ok := scope.ResolveImport("SHORTY")
		require.True(t, ok)
		assert.Equal(t, `\Vendor\Collection`, target)
	})

	t.Run("implicit alias is the last segment", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithImport("", `\Vendor\Collection`)

		target, ok := scope.ResolveImport("Collection")
		require.True(t, ok)
		assert.Equal(t, `\Vendor\Collection`, target)
	})

	t.Run("implicit alias of a single-segment name", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithImport("", "Countable")

		target, ok := scope.ResolveImport("countable")
		require.True(t, ok)
		assert.Equal(t, `\Countable`, target)
	})

	t.Run("empty target is ignored", func(t *testing.T) {
		t.Parallel()

		scope := NewScope("App").WithImport("Shorty", "")

		_, ok := scope.ResolveImport("Shorty")
		require.False(t, ok)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, ok := NewScope("App").ResolveImport("Missing")
		require.False(t, ok)
	})
}

func TestScopeTemplates(t *testing.T) {

	t.Parallel()

	registry := types.NewRegistry()
	binding := types.NewUnion(registry.Native(types.KindString))

	scope := NewScope("App").WithTemplate("T", binding)

	t.Run("bound name", func(t *testing.T) {
		t.Parallel()

		result, ok := scope.TemplateBinding("T")
		require.True(t, ok)
		require.True(t, result.Equal(binding))
	})

	t.Run("template names are case-sensitive", func(t *testing.T) {
		t.Parallel()

		_, ok := scope.TemplateBinding("t")
		require.False(t, ok)
	})

	t.Run("unbound name", func(t *testing.T) {
		t.Parallel()

		_, ok := scope.TemplateBinding("U")
		require.False(t, ok)
	})
}
