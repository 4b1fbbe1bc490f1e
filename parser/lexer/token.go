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

package lexer

import (
	"github.com/sable-analyzer/sable/ast"
)

type Token struct {
	// SpaceOrError holds the Space value for a space token,
	// or the error for an error token
	SpaceOrError any
	ast.Range
	Type TokenType
}

func (t Token) Is(ty TokenType) bool {
	return t.Type == ty
}

// Source returns the bytes of the token in the given input
func (t Token) Source(input []byte) []byte {
	return t.Range.Source(input)
}
