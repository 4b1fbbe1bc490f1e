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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sable-analyzer/sable/errors"
)

// expansionRecursionLimit bounds the expansion depth.
// Ancestry data deeper than this is treated as malformed or cyclic.
const expansionRecursionLimit = 20

const expansionCacheSize = 8192

// Expander computes the transitive union of a class-like type with all
// its ancestors, interfaces, and aliases, against one symbol store.
//
// Expansion results depend on the store's current ancestry and are
// cached; Invalidate must be called after any change to class ancestry
// and before the next expansion query.
type Expander struct {
	registry *Registry
	store    SymbolStore
	cache    *lru.Cache[expansionCacheKey, UnionType]
}

type expansionCacheKey struct {
	typeKey           string
	preserveTemplates bool
}

// NewExpander returns an expander over the given store.
// A nil store expands every type to itself.
func NewExpander(registry *Registry, store SymbolStore) *Expander {
	cache, err := lru.New[expansionCacheKey, UnionType](expansionCacheSize)
	if err != nil {
		panic(errors.NewUnexpectedErrorFromCause(err))
	}
	return &Expander{
		registry: registry,
		store:    store,
		cache:    cache,
	}
}

// Invalidate drops every cached expansion.
func (e *Expander) Invalidate() {
	e.cache.Purge()
}

// Expand returns the union of the type with all its ancestors,
// interfaces, and aliases, template arguments substituted away.
// A type without a class-reference form, or a class the store does not
// know, expands to itself.
func (e *Expander) Expand(t *Type) (UnionType, error) {
	return e.expand(t, 0, false)
}

// ExpandPreservingTemplates expands like Expand, but keeps template
// placeholders un-substituted, for callers that need to report types
// back in terms of the original generics.
func (e *Expander) ExpandPreservingTemplates(t *Type) (UnionType, error) {
	return e.expand(t, 0, true)
}

// ExpandStrict expands like Expand, but a class reference the store
// does not declare is an error instead of expanding to itself.
func (e *Expander) ExpandStrict(t *Type) (UnionType, error) {
	if t.kind == KindClass &&
		e.store != nil &&
		!e.store.HasClass(t.FQSEN()) {

		return UnionType{}, NewUnresolvedReferenceError(t.FQSEN(), e.store)
	}
	return e.expand(t, 0, false)
}

// ExpandUnion expands every member and unions the results.
func (e *Expander) ExpandUnion(u UnionType) (UnionType, error) {
	result := NewUnion()
	for _, t := range u.Members() {
		expanded, err := e.Expand(t)
		if err != nil {
			return UnionType{}, err
		}
		result = result.WithUnion(expanded)
	}
	return result, nil
}

func (e *Expander) expand(t *Type, depth int, preserveTemplates bool) (UnionType, error) {
	if depth >= expansionRecursionLimit {
		return UnionType{}, &RecursionLimitError{
			TypeName: t.String(),
			Depth:    depth,
		}
	}

	base := NewUnion(t)
	if t.kind != KindClass || e.store == nil {
		return base, nil
	}

	name := t.FQSEN()
	if !e.store.HasClass(name) {
		return base, nil
	}

	cacheKey := expansionCacheKey{
		typeKey:           t.key,
		preserveTemplates: preserveTemplates,
	}
	if cached, ok := e.cache.Get(cacheKey); ok {
		return cached, nil
	}

	classUnion, _ := e.store.ClassUnion(name)
	additional, _ := e.store.ClassAdditionalUnion(name)

	if t.HasTypeArgs() && !preserveTemplates {
		bindings := e.templateBindings(name, t.typeArgs)
		classUnion = classUnion.SubstituteTemplates(bindings)
		additional = additional.SubstituteTemplates(bindings)
	}

	result := base.WithUnion(classUnion).WithUnion(additional)

	// Recursively expand every member except the type itself:
	// a member identical to the type is kept as-is, breaking
	// self-referential ancestry.
	for _, member := range result.Members() {
		if member == t {
			continue
		}
		sub, err := e.expand(member, depth+1, preserveTemplates)
		if err != nil {
			return UnionType{}, err
		}
		result = result.WithUnion(sub)
	}

	for _, alias := range e.store.ClassAliases(name) {
		result = result.WithType(e.registry.QualifiedClassRef(alias))
	}

	e.cache.Add(cacheKey, result)
	return result, nil
}

// templateBindings maps the class's declared generic-parameter names
// to the concrete arguments a reference carries, by position.
// Excess parameters stay unbound, excess arguments are dropped.
func (e *Expander) templateBindings(name string, args []UnionType) TemplateMap {
	params := e.store.ClassTemplateParams(name)
	if len(params) == 0 {
		return nil
	}
	bindings := make(TemplateMap, len(params))
	for i, param := range params {
		if i >= len(args) {
			break
		}
		bindings[param] = args[i]
	}
	return bindings
}
