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
	"github.com/sable-analyzer/sable/common"
	"github.com/sable-analyzer/sable/errors"
)

// Registry interns canonical type instances: one live instance per
// canonical key. All Type construction goes through a Registry.
//
// A Registry is not safe for concurrent use. The engine runs as
// ordinary sequential computation; analysis workers each hold
// their own copy of the registry's memory.
type Registry struct {
	types map[string]*Type
}

func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Type, 128),
	}
}

// Len returns the number of interned instances.
func (r *Registry) Len() int {
	return len(r.types)
}

// Reset drops every interned instance. Tests that take canonicity
// as an input must reset the registry between cases.
//
// Types interned before a reset are no longer canonical and must not
// be compared against types interned after it.
func (r *Registry) Reset() {
	r.types = make(map[string]*Type, 128)
}

// intern returns the canonical instance for the prototype,
// interning the prototype itself if its key is new.
//
// The prototype's unions, shape fields, and signature must not be
// modified after the call.
func (r *Registry) intern(proto *Type) *Type {
	key := proto.buildKey()
	if existing, ok := r.types[key]; ok {
		return existing
	}
	proto.registry = r
	proto.key = key
	proto.hasTemplates = proto.computeHasTemplates()
	proto.str = proto.buildString()
	r.types[key] = proto
	return proto
}

// Native returns the singleton for a native kind.
func (r *Registry) Native(kind Kind) *Type {
	if !kind.IsNative() {
		panic(errors.NewUnexpectedError("not a native kind: %s", kind))
	}
	return r.intern(&Type{
		kind: kind,
		name: kind.Name(),
	})
}

// Mixed returns the universal type singleton.
func (r *Registry) Mixed() *Type {
	return r.Native(KindMixed)
}

// Null returns the null type singleton.
func (r *Registry) Null() *Type {
	return r.Native(KindNull)
}

// ClassRef returns the class-reference instance for a namespace
// and base name. The empty namespace means the root namespace.
//
// The spelling of the first interning is preserved for rendering;
// later internings under a differently-cased spelling return the
// first instance.
func (r *Registry) ClassRef(namespace, name string) *Type {
	if namespace == "" {
		namespace = "\\"
	}
	return r.intern(&Type{
		kind:      KindClass,
		namespace: namespace,
		name:      name,
	})
}

// QualifiedClassRef returns the class-reference instance
// for a fully qualified name, e.g. `\Foo\Bar`.
func (r *Registry) QualifiedClassRef(qualified string) *Type {
	namespace, name := splitQualifiedName(qualified)
	return r.ClassRef(namespace, name)
}

// LiteralInt returns the literal type for an exact integer value.
func (r *Registry) LiteralInt(value int64) *Type {
	return r.intern(&Type{
		kind:       KindLiteralInt,
		name:       NameInt,
		literalInt: value,
	})
}

// LiteralString returns the literal type for an exact string value.
func (r *Registry) LiteralString(value string) *Type {
	return r.intern(&Type{
		kind:          KindLiteralString,
		name:          NameString,
		literalString: value,
	})
}

// GenericArray returns the generic-array instance for a key category
// and element union. A multi-member element union produces the
// multiple-element-types kind. An empty element union degrades to the
// plain array type.
func (r *Registry) GenericArray(key common.ArrayKey, element UnionType) *Type {
	if element.IsEmpty() {
		return r.Native(KindArray)
	}
	kind := KindGenericArray
	if element.Len() > 1 {
		kind = KindGenericMultiArray
	}
	return r.intern(&Type{
		kind:     kind,
		name:     NameArray,
		arrayKey: key,
		typeArgs: []UnionType{element},
	})
}

// GenericIterable returns the generic-iterable instance for a key union
// and value union. Empty unions default to mixed; if both are empty the
// plain iterable type is returned.
func (r *Registry) GenericIterable(key, value UnionType) *Type {
	if key.IsEmpty() && value.IsEmpty() {
		return r.Native(KindIterable)
	}
	if key.IsEmpty() {
		key = NewUnion(r.Mixed())
	}
	if value.IsEmpty() {
		value = NewUnion(r.Mixed())
	}
	return r.intern(&Type{
		kind:     KindGenericIterable,
		name:     NameIterable,
		typeArgs: []UnionType{key, value},
	})
}

// ArrayShape returns the array-shape instance for the given fields.
// The field map must not be modified after the call.
// Field order is part of the shape's identity.
func (r *Registry) ArrayShape(fields *ShapeFieldOrderedMap) *Type {
	if fields == nil {
		fields = NewShapeFields(0)
	}
	return r.intern(&Type{
		kind:     KindArrayShape,
		name:     NameArray,
		arrayKey: shapeKeyCategory(fields),
		shape:    fields,
	})
}

// shapeKeyCategory derives the key category a shape's keys fall into.
func shapeKeyCategory(fields *ShapeFieldOrderedMap) common.ArrayKey {
	category := common.ArrayKeyMixed
	first := true
	fields.Foreach(func(key ShapeKey, _ ShapeField) {
		keyCategory := common.ArrayKeyString
		if key.IsInt {
			keyCategory = common.ArrayKeyInt
		}
		if first {
			category = keyCategory
			first = false
			return
		}
		category = category.Union(keyCategory)
	})
	return category
}

// SignatureType returns the closure or callable instance carrying the
// given declared signature. A nil signature returns the bare singleton.
// The signature must not be modified after the call.
func (r *Registry) SignatureType(kind Kind, signature *Signature) *Type {
	switch kind {
	case KindClosure, KindCallable:
	default:
		panic(errors.NewUnexpectedError("not a callable kind: %s", kind))
	}
	if signature == nil {
		return r.Native(kind)
	}
	return r.intern(&Type{
		kind:      kind,
		name:      kind.Name(),
		signature: signature,
	})
}

// Template returns the template-placeholder instance for a
// generic-parameter name. Template names are case-sensitive.
func (r *Registry) Template(name string) *Type {
	return r.intern(&Type{
		kind: KindTemplate,
		name: name,
	})
}

// TypeFromValue returns the type of a concrete runtime value,
// e.g. a constant initializer or a parameter default.
// Booleans, integers, and strings keep their exact value as a literal
// type; floats have no literal kind and widen to the native float.
func (r *Registry) TypeFromValue(value any) *Type {
	switch v := value.(type) {
	case nil:
		return r.Null()
	case bool:
		if v {
			return r.Native(KindTrue)
		}
		return r.Native(KindFalse)
	case int:
		return r.LiteralInt(int64(v))
	case int64:
		return r.LiteralInt(v)
	case float64:
		return r.Native(KindFloat)
	case string:
		return r.LiteralString(v)
	default:
		return r.Mixed()
	}
}
