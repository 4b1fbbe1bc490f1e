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
	"strconv"

	"github.com/sable-analyzer/sable/common/orderedmap"
	"github.com/sable-analyzer/sable/format"
)

// ShapeKey is one key of an array-shape type.
// Keys are either integers or strings, like PHP array keys,
// and string keys are case-sensitive.
type ShapeKey struct {
	Name  string
	Int   int64
	IsInt bool
}

// IntShapeKey returns the shape key for an integer array key.
func IntShapeKey(value int64) ShapeKey {
	return ShapeKey{
		Int:   value,
		IsInt: true,
	}
}

// StringShapeKey returns the shape key for a string array key.
func StringShapeKey(name string) ShapeKey {
	return ShapeKey{
		Name: name,
	}
}

func (k ShapeKey) String() string {
	if k.IsInt {
		return strconv.FormatInt(k.Int, 10)
	}
	if isBareShapeKey(k.Name) {
		return k.Name
	}
	return format.QuotedString(k.Name)
}

// isBareShapeKey reports whether the name renders without quoting,
// i.e. re-parses as the same string key rather than as an integer key
// or a quoted literal.
func isBareShapeKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c == '_',
			c >= 0x80:
			continue
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
			continue
		default:
			return false
		}
	}
	return true
}

// ShapeField is one slot of an array-shape type.
type ShapeField struct {
	Type UnionType
	// Optional marks the field as possibly absent
	Optional bool
}

type ShapeFieldOrderedMap = orderedmap.OrderedMap[ShapeKey, ShapeField]

// NewShapeFields returns an empty shape-field map of the given size.
func NewShapeFields(size int) *ShapeFieldOrderedMap {
	return orderedmap.New[ShapeFieldOrderedMap](size)
}
