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
	"strings"

	"github.com/SaveTheRbtz/mph"

	"github.com/sable-analyzer/sable/errors"
)

// Kind is the closed set of type kinds the engine distinguishes.
// Every Type has exactly one kind; behavior differences between kinds
// are exhaustive switches in the casting and expansion engines.
type Kind uint8

const (
	KindUnknown Kind = iota

	// native scalar kinds

	KindInt
	KindFloat
	KindString
	KindBool
	KindTrue
	KindFalse
	KindNull

	// native compound and special kinds

	KindVoid
	KindMixed
	KindScalar
	KindResource
	KindObject
	// KindStatic is the late static binding type, `static` or `$this`,
	// outside any class scope
	KindStatic
	KindIterable
	KindArray

	// callable kinds, optionally carrying a declared signature

	KindCallable
	KindClosure

	// KindClass is a reference to a class-like symbol by qualified name

	KindClass

	// array kinds with structure

	// KindGenericArray is `array<K, V>` or `V[]` with a single element type
	KindGenericArray
	// KindGenericMultiArray is a generic array whose element union
	// has more than one member, e.g. `array<int|string>`
	KindGenericMultiArray
	// KindGenericIterable is `iterable<K, V>`
	KindGenericIterable
	// KindArrayShape is `array{key:T, ...}`
	KindArrayShape

	// literal kinds, carrying an exact value

	KindLiteralInt
	KindLiteralString

	// KindTemplate is a generic-parameter placeholder bound in a class scope

	KindTemplate

	// NOTE: not an actual kind, must be last item
	KindMax
)

func init() {
	// ensure all kinds have their name
	for k := KindUnknown + 1; k < KindMax; k++ {
		_ = k.Name()
	}
}

// Name returns the rendered base name of the kind.
// Kinds without a fixed name (class references, literals, templates)
// return the empty string.
func (k Kind) Name() string {
	switch k {
	case KindInt:
		return NameInt
	case KindFloat:
		return NameFloat
	case KindString:
		return NameString
	case KindBool:
		return NameBool
	case KindTrue:
		return NameTrue
	case KindFalse:
		return NameFalse
	case KindNull:
		return NameNull
	case KindVoid:
		return NameVoid
	case KindMixed:
		return NameMixed
	case KindScalar:
		return NameScalar
	case KindResource:
		return NameResource
	case KindObject:
		return NameObject
	case KindStatic:
		return NameStatic
	case KindIterable, KindGenericIterable:
		return NameIterable
	case KindArray, KindGenericArray, KindGenericMultiArray, KindArrayShape:
		return NameArray
	case KindCallable:
		return NameCallable
	case KindClosure:
		return NameClosure
	case KindClass, KindLiteralInt, KindLiteralString, KindTemplate, KindUnknown:
		return ""
	default:
		panic(errors.NewUnreachableError())
	}
}

func (k Kind) String() string {
	name := k.Name()
	if name != "" {
		return name
	}
	switch k {
	case KindUnknown:
		return "unknown"
	case KindClass:
		return "class"
	case KindLiteralInt:
		return "literal int"
	case KindLiteralString:
		return "literal string"
	case KindTemplate:
		return "template"
	default:
		panic(errors.NewUnreachableError())
	}
}

// IsNative reports whether the kind is one of the fixed native kinds,
// i.e. neither a class reference, a literal, nor a template placeholder.
func (k Kind) IsNative() bool {
	return nativeKinds.ContainsKind(k)
}

// IsScalar reports whether values of the kind are scalar.
func (k Kind) IsScalar() bool {
	return scalarKinds.ContainsKind(k)
}

// IsArrayLike reports whether the kind is an array kind,
// with or without structure.
func (k Kind) IsArrayLike() bool {
	return arrayLikeKinds.ContainsKind(k)
}

// IsIterable reports whether values of the kind can be iterated.
func (k Kind) IsIterable() bool {
	return iterableKinds.ContainsKind(k)
}

// IsCallable reports whether values of the kind can be invoked.
func (k Kind) IsCallable() bool {
	return callableKinds.ContainsKind(k)
}

// IsNullableByDefault reports whether the kind admits null
// without a nullable marker.
func (k Kind) IsNullableByDefault() bool {
	switch k {
	case KindNull, KindMixed:
		return true
	default:
		return false
	}
}

// IsAlwaysTruthy reports whether every value of the kind is truthy.
func (k Kind) IsAlwaysTruthy() bool {
	switch k {
	case KindTrue:
		return true
	default:
		return false
	}
}

// IsAlwaysFalsey reports whether every value of the kind is falsey.
func (k Kind) IsAlwaysFalsey() bool {
	switch k {
	case KindNull, KindFalse, KindVoid:
		return true
	default:
		return false
	}
}

// HasLiteralValue reports whether the kind carries an exact value payload.
func (k Kind) HasLiteralValue() bool {
	switch k {
	case KindLiteralInt, KindLiteralString:
		return true
	default:
		return false
	}
}

// The fixed native-kind names of the annotation grammar.
// NOTE: ensure to update allNativeNames when adding a name
const (
	NameInt      = "int"
	NameFloat    = "float"
	NameString   = "string"
	NameBool     = "bool"
	NameTrue     = "true"
	NameFalse    = "false"
	NameNull     = "null"
	NameVoid     = "void"
	NameMixed    = "mixed"
	NameScalar   = "scalar"
	NameResource = "resource"
	NameObject   = "object"
	NameStatic   = "static"
	NameIterable = "iterable"
	NameArray    = "array"
	NameCallable = "callable"
	NameClosure  = "Closure"
	NameThis     = "$this"

	// alias spellings folded for documentation-sourced names

	NameBoolean  = "boolean"
	NameDouble   = "double"
	NameInteger  = "integer"
	NameCallback = "callback"

	// class-scope names resolved by the parser, not kinds of their own

	NameSelf   = "self"
	NameParent = "parent"
	// NOTE: ensure to update allNativeNames when adding a name
)

var allNativeNames = []string{
	NameInt,
	NameFloat,
	NameString,
	NameBool,
	NameTrue,
	NameFalse,
	NameNull,
	NameVoid,
	NameMixed,
	NameScalar,
	NameResource,
	NameObject,
	NameStatic,
	NameIterable,
	NameArray,
	NameCallable,
	strings.ToLower(NameClosure),
	NameThis,
}

var nativeNamesTable = mph.Build(allNativeNames)

// Names that resolve against the enclosing class scope before anything else.
var classScopeNames = []string{
	NameSelf,
	NameParent,
	NameStatic,
	NameThis,
}

var classScopeNamesTable = mph.Build(classScopeNames)

// Documentation alias spellings, folded to their canonical native name
// only for un-namespaced documentation-sourced names.
var docAliasNames = []string{
	NameBoolean,
	NameDouble,
	NameInteger,
	NameCallback,
}

var docAliasNamesTable = mph.Build(docAliasNames)

// IsNativeName reports whether the given un-namespaced name
// spells a native kind. The check is case-insensitive.
func IsNativeName(name string) bool {
	_, ok := nativeNamesTable.Lookup(strings.ToLower(name))
	return ok
}

// IsClassScopeName reports whether the given name resolves against
// the enclosing class scope (`self`, `parent`, `static`, `$this`).
func IsClassScopeName(name string) bool {
	_, ok := classScopeNamesTable.Lookup(strings.ToLower(name))
	return ok
}

// FoldDocAlias folds the documentation alias spellings
// (`boolean`, `double`, `integer`, `callback`) to their canonical names.
// All other names are returned unchanged.
func FoldDocAlias(name string) string {
	lower := strings.ToLower(name)
	if _, ok := docAliasNamesTable.Lookup(lower); !ok {
		return name
	}
	switch lower {
	case NameBoolean:
		return NameBool
	case NameDouble:
		return NameFloat
	case NameInteger:
		return NameInt
	case NameCallback:
		return NameCallable
	default:
		panic(errors.NewUnreachableError())
	}
}

// NativeKindForName returns the kind for a native name, case-insensitively.
// Returns KindUnknown and false for anything that is not a native name.
func NativeKindForName(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case NameInt:
		return KindInt, true
	case NameFloat:
		return KindFloat, true
	case NameString:
		return KindString, true
	case NameBool:
		return KindBool, true
	case NameTrue:
		return KindTrue, true
	case NameFalse:
		return KindFalse, true
	case NameNull:
		return KindNull, true
	case NameVoid:
		return KindVoid, true
	case NameMixed:
		return KindMixed, true
	case NameScalar:
		return KindScalar, true
	case NameResource:
		return KindResource, true
	case NameObject:
		return KindObject, true
	case NameStatic, NameThis:
		return KindStatic, true
	case NameIterable:
		return KindIterable, true
	case NameArray:
		return KindArray, true
	case NameCallable:
		return KindCallable, true
	case strings.ToLower(NameClosure):
		return KindClosure, true
	default:
		return KindUnknown, false
	}
}
