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

// Provenance is the surface a type annotation originated from.
// It affects name normalization: alias spellings and template-parameter
// names are only folded for documentation-sourced annotations.
type Provenance uint8

const (
	// FromSyntax is a type written in a concrete declaration,
	// e.g. a parameter or property type
	FromSyntax Provenance = iota
	// FromType is a type re-rendered from an existing Type instance
	FromType
	// FromDoc is a type written in a documentation comment annotation
	FromDoc
)

func (p Provenance) String() string {
	switch p {
	case FromSyntax:
		return "syntax"
	case FromType:
		return "type"
	case FromDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// Context is the resolution context an annotation is parsed in.
// It supplies everything name resolution needs that is not part of
// the annotation string itself.
type Context interface {
	// Namespace returns the current namespace, e.g. `\Foo\Bar`.
	// The root namespace is `\`.
	Namespace() string
	// ResolveImport resolves the first segment of a relative name
	// against the `use` imports in scope.
	// The second return value indicates whether an import matched.
	ResolveImport(name string) (string, bool)
	// CurrentClass returns the fully qualified name of the enclosing
	// class-like declaration, if any.
	CurrentClass() (string, bool)
	// TemplateBinding returns the union bound to a template-parameter
	// name in scope, if any.
	TemplateBinding(name string) (UnionType, bool)
}

// EmptyContext is a Context with the root namespace, no imports,
// no enclosing class, and no template bindings.
type EmptyContext struct{}

var _ Context = EmptyContext{}

func (EmptyContext) Namespace() string {
	return "\\"
}

func (EmptyContext) ResolveImport(_ string) (string, bool) {
	return "", false
}

func (EmptyContext) CurrentClass() (string, bool) {
	return "", false
}

func (EmptyContext) TemplateBinding(_ string) (UnionType, bool) {
	return UnionType{}, false
}
