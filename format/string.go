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

package format

import (
	"strings"
)

// QuotedString returns the single-quoted annotation form of the given string,
// e.g. `'it\'s'` for `it's`.
//
// Quotes, backslashes, and non-printable bytes are escaped,
// so that re-lexing the result yields the original value.
func QuotedString(s string) string {
	var builder strings.Builder
	builder.Grow(len(s) + 2)
	builder.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			builder.WriteString(`\'`)
		case c == '\\':
			builder.WriteString(`\\`)
		case IsPrintableLiteralByte(c):
			builder.WriteByte(c)
		default:
			builder.WriteString(`\x`)
			builder.WriteByte(hexDigits[c>>4])
			builder.WriteByte(hexDigits[c&0xf])
		}
	}
	builder.WriteByte('\'')
	return builder.String()
}

const hexDigits = "0123456789abcdef"

// IsPrintableLiteralByte reports whether the byte may appear unescaped
// inside a single-quoted annotation literal.
// Printable ASCII and all high bytes (multi-byte text) qualify,
// control bytes do not.
func IsPrintableLiteralByte(c byte) bool {
	return c >= 0x20 && c != 0x7f
}
