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

// ClassKind is the declaration kind of a class-like symbol.
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindTrait
	ClassKindEnum
)

func (k ClassKind) Name() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindTrait:
		return "trait"
	case ClassKindEnum:
		return "enum"
	}

	panic(errors.NewUnreachableError())
}

func (k ClassKind) String() string {
	return k.Name()
}

func (k ClassKind) IsInstantiable() bool {
	switch k {
	case ClassKindClass, ClassKindEnum:
		return true
	default:
		return false
	}
}
