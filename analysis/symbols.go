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
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v2"

	"github.com/sable-analyzer/sable/common"
	"github.com/sable-analyzer/sable/types"
)

// ClassDecl is one discovered class-like declaration.
// All names are fully qualified; a missing leading `\` is tolerated.
type ClassDecl struct {
	// Name is the fully qualified name the symbol is declared under
	Name string
	Kind common.ClassKind
	// Parent is the fully qualified name of the extended class, if any
	Parent string
	// Interfaces are the fully qualified names
	// of the implemented interfaces
	Interfaces []string
	// TemplateParams are the declared generic-parameter names,
	// in declaration order
	TemplateParams []string
	// Aliases are the other fully qualified names the symbol is known
	// under, e.g. from alias declarations
	Aliases []string
	// AdditionalTypes are types attached to the symbol beyond its
	// declared ancestry, e.g. from union declarations.
	// Template placeholders in them are substituted during expansion
	AdditionalTypes types.UnionType
}

type classEntry struct {
	decl ClassDecl
	// union is the declared parent and interfaces, as class references
	union types.UnionType
}

// Symbols is an in-memory symbol store, populated declaration by
// declaration during the discovery phase. Lookups are case-insensitive.
//
// Symbols is not safe for concurrent mutation. The surrounding
// lifecycle is sequential: discovery populates the store, analysis
// reads it.
type Symbols struct {
	registry *types.Registry
	classes  map[string]*classEntry
}

var _ types.SymbolStore = &Symbols{}
var _ types.ClassNamer = &Symbols{}

func NewSymbols(registry *types.Registry) *Symbols {
	return &Symbols{
		registry: registry,
		classes:  map[string]*classEntry{},
	}
}

// AddClass declares a class-like symbol.
// Redeclaring a name replaces the earlier declaration.
func (s *Symbols) AddClass(decl ClassDecl) error {
	name := normalizeClassName(decl.Name)
	if name == "" {
		return &types.MalformedTypeError{
			Input:  decl.Name,
			Detail: "class name is empty",
		}
	}
	decl.Name = name
	decl.Parent = normalizeClassName(decl.Parent)
	decl.Interfaces = normalizeClassNames(decl.Interfaces)
	decl.Aliases = normalizeClassNames(decl.Aliases)

	union := types.NewUnion()
	if decl.Parent != "" {
		union = union.WithType(s.registry.QualifiedClassRef(decl.Parent))
	}
	for _, interfaceName := range decl.Interfaces {
		union = union.WithType(s.registry.QualifiedClassRef(interfaceName))
	}

	s.classes[strings.ToLower(name)] = &classEntry{
		decl:  decl,
		union: union,
	}
	return nil
}

// normalizeClassNames normalizes every name,
// dropping empty names and case-insensitive duplicates.
func normalizeClassNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := set.New[string](len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		name = normalizeClassName(name)
		if name == "" {
			continue
		}
		if !seen.Insert(strings.ToLower(name)) {
			continue
		}
		normalized = append(normalized, name)
	}
	return normalized
}

func (s *Symbols) lookup(name string) (*classEntry, bool) {
	entry, ok := s.classes[strings.ToLower(normalizeClassName(name))]
	return entry, ok
}

func (s *Symbols) Len() int {
	return len(s.classes)
}

func (s *Symbols) HasClass(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

func (s *Symbols) ClassUnion(name string) (types.UnionType, bool) {
	entry, ok := s.lookup(name)
	if !ok {
		return types.UnionType{}, false
	}
	return entry.union, true
}

func (s *Symbols) ClassAdditionalUnion(name string) (types.UnionType, bool) {
	entry, ok := s.lookup(name)
	if !ok {
		return types.UnionType{}, false
	}
	return entry.decl.AdditionalTypes, true
}

func (s *Symbols) ClassTemplateParams(name string) []string {
	entry, ok := s.lookup(name)
	if !ok {
		return nil
	}
	return entry.decl.TemplateParams
}

func (s *Symbols) ClassAliases(name string) []string {
	entry, ok := s.lookup(name)
	if !ok {
		return nil
	}
	return entry.decl.Aliases
}

func (s *Symbols) Ancestor(name string) (string, bool) {
	entry, ok := s.lookup(name)
	if !ok || entry.decl.Parent == "" {
		return "", false
	}
	return entry.decl.Parent, true
}

// ClassKind returns the declared kind of the symbol, if it is declared.
func (s *Symbols) ClassKind(name string) (common.ClassKind, bool) {
	entry, ok := s.lookup(name)
	if !ok {
		return common.ClassKindClass, false
	}
	return entry.decl.Kind, true
}

// ClassNames returns the fully qualified names of every declared
// symbol, in their declared spelling, sorted.
func (s *Symbols) ClassNames() []string {
	names := make([]string, 0, len(s.classes))
	for _, entry := range s.classes {
		names = append(names, entry.decl.Name)
	}
	sort.Strings(names)
	return names
}
