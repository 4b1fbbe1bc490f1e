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

package parser

import (
	"strconv"
	"strings"

	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/errors"
	"github.com/sable-analyzer/sable/format"
)

// parseIntegerLiteral parses the value of a decimal integer literal token.
// The lexer only produces digit runs, so the only invalid case is overflow
func parseIntegerLiteral(literal []byte, negative bool, pos ast.Position) (int64, error) {

	s := string(literal)
	if negative {
		s = "-" + s
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, NewSyntaxError(
			pos,
			"invalid integer literal `%s`: value out of range",
			s,
		)
	}

	return value, nil
}

// parseStringLiteral decodes a single-quoted string literal token,
// including its quotes.
// The allowed escape sequences are \' and \\ and \xNN with exactly
// two hexadecimal digits.
// All other bytes must be printable
func parseStringLiteral(literal []byte, pos ast.Position) (string, error) {

	length := len(literal)

	if length == 0 || literal[0] != '\'' {
		// The lexer only emits string tokens starting with a quote
		panic(errors.NewUnreachableError())
	}

	if length < 2 || literal[length-1] != '\'' {
		return "", NewSyntaxError(
			pos,
			"invalid end of string literal: missing '",
		)
	}

	content := literal[1 : length-1]

	var sb strings.Builder
	sb.Grow(len(content))

	for i := 0; i < len(content); i++ {
		b := content[i]

		if b == '\\' {
			i++
			if i >= len(content) {
				return "", NewSyntaxError(
					pos,
					"incomplete escape sequence in string literal",
				)
			}

			switch content[i] {
			case '\'':
				sb.WriteByte('\'')

			case '\\':
				sb.WriteByte('\\')

			case 'x':
				if i+2 >= len(content) {
					return "", NewSyntaxError(
						pos,
						"incomplete hexadecimal escape sequence in string literal",
					)
				}

				value, err := strconv.ParseUint(string(content[i+1:i+3]), 16, 8)
				if err != nil {
					return "", NewSyntaxError(
						pos,
						"invalid hexadecimal escape sequence in string literal: \\x%s",
						content[i+1:i+3],
					)
				}

				sb.WriteByte(byte(value))
				i += 2

			default:
				return "", NewSyntaxError(
					pos,
					"invalid escape sequence in string literal: \\%c",
					content[i],
				)
			}

			continue
		}

		if !format.IsPrintableLiteralByte(b) {
			return "", NewSyntaxError(
				pos,
				"non-printable byte in string literal: %#x",
				b,
			)
		}

		sb.WriteByte(b)
	}

	return sb.String(), nil
}
