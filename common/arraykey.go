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

package common

import (
	"github.com/sable-analyzer/sable/errors"
)

// ArrayKey is the key category of an array-like type:
// the key part of `array<K, V>`, or the keys observed in an `array{...}` shape.
type ArrayKey uint8

const (
	ArrayKeyMixed ArrayKey = iota
	ArrayKeyInt
	ArrayKeyString
)

func (k ArrayKey) Name() string {
	switch k {
	case ArrayKeyMixed:
		return "mixed"
	case ArrayKeyInt:
		return "int"
	case ArrayKeyString:
		return "string"
	}

	panic(errors.NewUnreachableError())
}

func (k ArrayKey) String() string {
	return k.Name()
}

// Union returns the key category covering both k and other.
func (k ArrayKey) Union(other ArrayKey) ArrayKey {
	if k == other {
		return k
	}
	return ArrayKeyMixed
}

// Accepts reports whether an array keyed by other can be used
// where an array keyed by k is expected.
// A mixed key accepts any key.
func (k ArrayKey) Accepts(other ArrayKey) bool {
	return k == ArrayKeyMixed ||
		other == ArrayKeyMixed ||
		k == other
}
