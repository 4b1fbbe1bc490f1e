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
	"strings"

	"github.com/sable-analyzer/sable/types"
)

// Scope is the resolution context of one declaration site:
// the namespace it lives in, the `use` imports visible to it,
// the enclosing class, and the template parameters in scope.
//
// The zero value is not usable, construct scopes with NewScope.
type Scope struct {
	namespace    string
	imports      map[string]string
	currentClass string
	templates    map[string]types.UnionType
}

var _ types.Context = &Scope{}

// NewScope returns a scope for the given namespace.
// An empty namespace is the root namespace.
func NewScope(namespace string) *Scope {
	return &Scope{
		namespace: normalizeNamespace(namespace),
	}
}

func normalizeNamespace(namespace string) string {
	namespace = strings.Trim(namespace, "\\")
	return "\\" + namespace
}

// normalizeClassName brings a fully qualified class name into its
// canonical rooted spelling, e.g. `Foo\Bar` -> `\Foo\Bar`.
// An empty or separator-only name normalizes to the empty string.
func normalizeClassName(name string) string {
	name = strings.Trim(name, "\\")
	if name == "" {
		return ""
	}
	return "\\" + name
}

// WithClass records the enclosing class-like declaration
// and returns the scope itself, for chaining.
func (s *Scope) WithClass(name string) *Scope {
	s.currentClass = normalizeClassName(name)
	return s
}

// WithImport records a `use` import and returns the scope itself,
// for chaining. An empty alias stands for the usual implicit one,
// the last segment of the imported name.
func (s *Scope) WithImport(alias string, target string) *Scope {
	target = normalizeClassName(target)
	if target == "" {
		return s
	}
	if alias == "" {
		alias = target[strings.LastIndex(target, "\\")+1:]
	}
	if s.imports == nil {
		s.imports = map[string]string{}
	}
	s.imports[strings.ToLower(alias)] = target
	return s
}

// WithTemplate binds a template-parameter name to a union
// and returns the scope itself, for chaining.
func (s *Scope) WithTemplate(name string, binding types.UnionType) *Scope {
	if s.templates == nil {
		s.templates = map[string]types.UnionType{}
	}
	s.templates[name] = binding
	return s
}

func (s *Scope) Namespace() string {
	return s.namespace
}

// ResolveImport looks the name up in the `use` imports.
// Import aliases are case-insensitive.
func (s *Scope) ResolveImport(name string) (string, bool) {
	target, ok := s.imports[strings.ToLower(name)]
	return target, ok
}

func (s *Scope) CurrentClass() (string, bool) {
	return s.currentClass, s.currentClass != ""
}

// TemplateBinding looks the name up in the template parameters in scope.
// Template-parameter names are case-sensitive.
func (s *Scope) TemplateBinding(name string) (types.UnionType, bool) {
	binding, ok := s.templates[name]
	return binding, ok
}
