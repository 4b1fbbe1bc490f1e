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

// KindSet is a set of kinds, represented as a bitmask.
// The zero value is the empty set.
type KindSet uint64

func init() {
	if KindMax > 64 {
		panic("KindSet: too many kinds for a single mask")
	}
}

// NewKindSet returns the set containing exactly the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// ContainsKind reports whether the set contains the given kind.
func (s KindSet) ContainsKind(k Kind) bool {
	return s&(1<<k) != 0
}

// With returns the union of the set and the given kinds.
func (s KindSet) With(kinds ...Kind) KindSet {
	return s | NewKindSet(kinds...)
}

// Intersects reports whether the two sets share any kind.
func (s KindSet) Intersects(other KindSet) bool {
	return s&other != 0
}

var scalarKinds = NewKindSet(
	KindInt,
	KindFloat,
	KindString,
	KindBool,
	KindTrue,
	KindFalse,
	KindScalar,
	KindLiteralInt,
	KindLiteralString,
)

var arrayLikeKinds = NewKindSet(
	KindArray,
	KindGenericArray,
	KindGenericMultiArray,
	KindArrayShape,
)

var iterableKinds = arrayLikeKinds.With(
	KindIterable,
	KindGenericIterable,
)

var callableKinds = NewKindSet(
	KindCallable,
	KindClosure,
)

var nativeKinds = NewKindSet(
	KindInt,
	KindFloat,
	KindString,
	KindBool,
	KindTrue,
	KindFalse,
	KindNull,
	KindVoid,
	KindMixed,
	KindScalar,
	KindResource,
	KindObject,
	KindStatic,
	KindIterable,
	KindArray,
	KindCallable,
	KindClosure,
)
