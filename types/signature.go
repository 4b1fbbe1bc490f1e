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
)

// Param is one parameter of a closure or callable signature.
// Parameter names are not part of a type's identity and are dropped
// when a declaration is converted to a Type.
type Param struct {
	// Type is the declared parameter type.
	// The empty union means the parameter is untyped.
	Type        UnionType
	ByReference bool
	Variadic    bool
	// HasDefault marks the parameter as optional at the call site
	HasDefault bool
}

func (p Param) String() string {
	var sb strings.Builder
	sb.WriteString(p.Type.String())
	if p.ByReference {
		sb.WriteByte('&')
	}
	if p.Variadic {
		sb.WriteString("...")
	}
	if p.HasDefault {
		sb.WriteByte('=')
	}
	return sb.String()
}

// Signature is the declared signature of a closure or callable type.
type Signature struct {
	Params []Param
	// Return is the declared return type. Defaults to void.
	Return UnionType
	// DeclContext is the resolution context the signature was declared
	// in. It is informational: two signatures that differ only in their
	// declaring context intern to the same instance, and the first
	// interning wins.
	DeclContext Context
}

func (s *Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, param := range s.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(param.String())
	}
	sb.WriteByte(')')
	sb.WriteByte(':')
	// a bare `|` after the return type would end the signature
	// and start a union
	if s.Return.Len() > 1 {
		sb.WriteByte('(')
		sb.WriteString(s.Return.String())
		sb.WriteByte(')')
	} else {
		sb.WriteString(s.Return.String())
	}
	return sb.String()
}

// requiredParamCount returns the number of parameters a caller
// must provide a value for.
func (s *Signature) requiredParamCount() int {
	count := 0
	for _, param := range s.Params {
		if param.HasDefault || param.Variadic {
			continue
		}
		count++
	}
	return count
}

func (s *Signature) hasTemplates() bool {
	for _, param := range s.Params {
		if param.Type.HasTemplates() {
			return true
		}
	}
	return s.Return.HasTemplates()
}
