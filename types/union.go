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
	"sort"
	"strings"

	"github.com/sable-analyzer/sable/common"
)

// UnionType is an unordered, duplicate-free set of types.
// The zero value is the empty union, the bottom type:
// it casts to anything and accepts anything.
//
// Unions are immutable. All combining operations return a new union
// and leave the receiver unchanged.
type UnionType struct {
	members []*Type
}

var _ common.Equatable[UnionType] = UnionType{}

// NewUnion returns the union of the given types, duplicates dropped.
func NewUnion(types ...*Type) UnionType {
	if len(types) == 0 {
		return UnionType{}
	}
	members := make([]*Type, 0, len(types))
	u := UnionType{members: members}
	for _, t := range types {
		if t == nil || u.Contains(t) {
			continue
		}
		u.members = append(u.members, t)
	}
	return u
}

// Members returns the member types in insertion order.
// The returned slice must not be modified.
func (u UnionType) Members() []*Type {
	return u.members
}

func (u UnionType) Len() int {
	return len(u.members)
}

func (u UnionType) IsEmpty() bool {
	return len(u.members) == 0
}

// Single returns the only member of a one-member union.
func (u UnionType) Single() (*Type, bool) {
	if len(u.members) != 1 {
		return nil, false
	}
	return u.members[0], true
}

// Contains reports whether the exact canonical instance is a member.
func (u UnionType) Contains(t *Type) bool {
	for _, member := range u.members {
		if member == t {
			return true
		}
	}
	return false
}

// WithType returns the union with the given type added.
func (u UnionType) WithType(t *Type) UnionType {
	if t == nil || u.Contains(t) {
		return u
	}
	members := make([]*Type, len(u.members), len(u.members)+1)
	copy(members, u.members)
	return UnionType{
		members: append(members, t),
	}
}

// WithUnion returns the union of the receiver and the other union.
func (u UnionType) WithUnion(other UnionType) UnionType {
	result := u
	for _, t := range other.members {
		result = result.WithType(t)
	}
	return result
}

// WithNullable returns the union with every member's
// nullable marker set accordingly.
func (u UnionType) WithNullable(nullable bool) UnionType {
	result := NewUnion()
	for _, t := range u.members {
		result = result.WithType(t.WithNullable(nullable))
	}
	return result
}

// IsNullable reports whether the union admits null,
// i.e. any member is nullable or is the null type.
func (u UnionType) IsNullable() bool {
	for _, t := range u.members {
		if t.IsNullable() || t.kind == KindNull {
			return true
		}
	}
	return false
}

// Equal reports set equality, regardless of member order.
func (u UnionType) Equal(other UnionType) bool {
	if len(u.members) != len(other.members) {
		return false
	}
	for _, t := range u.members {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// HasTemplates reports whether any member contains
// a template placeholder.
func (u UnionType) HasTemplates() bool {
	for _, t := range u.members {
		if t.HasTemplates() {
			return true
		}
	}
	return false
}

// TemplateMap binds template-parameter names to concrete unions.
type TemplateMap map[string]UnionType

// SubstituteTemplates returns the union with every template placeholder
// bound in the map replaced by its binding.
func (u UnionType) SubstituteTemplates(m TemplateMap) UnionType {
	if len(m) == 0 || !u.HasTemplates() {
		return u
	}
	result := NewUnion()
	for _, t := range u.members {
		result = result.WithUnion(t.SubstituteTemplates(m))
	}
	return result
}

// String renders the union in insertion order, members joined by `|`.
// The empty union renders as the empty string.
func (u UnionType) String() string {
	switch len(u.members) {
	case 0:
		return ""
	case 1:
		return u.members[0].String()
	}
	var sb strings.Builder
	for i, t := range u.members {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// key renders the union's canonical key: member keys sorted and joined,
// so that member order does not affect a containing type's identity.
func (u UnionType) key() string {
	switch len(u.members) {
	case 0:
		return ""
	case 1:
		return u.members[0].key
	}
	keys := make([]string, len(u.members))
	for i, t := range u.members {
		keys[i] = t.key
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

func (u UnionType) MarshalJSON() ([]byte, error) {
	members := u.members
	if members == nil {
		members = []*Type{}
	}
	return json.Marshal(members)
}
