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
	"fmt"
)

// stateFn uses the input lexer to read bytes and emit tokens.
//
// It either returns nil when reaching the end of the input,
// or returns another stateFn for more scanning work.
type stateFn func(*lexer) stateFn

// rootState returns a stateFn that scans the input and emits tokens until
// reaching the end of the input.
func rootState(l *lexer) stateFn {

	for {
		var ty TokenType

		r := l.next()
		switch r {
		case EOF:
			return nil
		case '?':
			ty = TokenQuestionMark
		case '(':
			ty = TokenParenOpen
		case ')':
			ty = TokenParenClose
		case '{':
			ty = TokenBraceOpen
		case '}':
			ty = TokenBraceClose
		case '[':
			ty = TokenBracketOpen
		case ']':
			ty = TokenBracketClose
		case '<':
			ty = TokenLess
		case '>':
			ty = TokenGreater
		case ',':
			ty = TokenComma
		case ':':
			ty = TokenColon
		case '=':
			ty = TokenEqual
		case '-':
			ty = TokenMinus
		case '&':
			ty = TokenAmpersand
		case '|':
			ty = TokenVerticalBar
		case '\\':
			ty = TokenBackslash
		case '$':
			ty = TokenDollar
		case '.':
			if l.acceptOne('.') {
				if l.acceptOne('.') {
					ty = TokenEllipsis
				} else {
					return l.error(fmt.Errorf("expected '...'"))
				}
			} else {
				ty = TokenDot
			}
		case ' ', '\t', '\r':
			return spaceState(false)
		case '\n':
			return spaceState(true)
		case '\'':
			return stringState
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return numberState
		case '_':
			return identifierState
		default:
			switch {
			case r >= 'a' && r <= 'z' ||
				r >= 'A' && r <= 'Z' ||
				r >= 0x80:

				return identifierState

			default:
				return l.error(fmt.Errorf("unrecognized character: %#U", r))
			}
		}

		l.emitType(ty)
	}
}

func (l *lexer) error(err error) stateFn {
	l.emitError(err)
	return nil
}

type Space struct {
	ContainsNewline bool
}

func spaceState(startIsNewline bool) stateFn {
	return func(l *lexer) stateFn {
		containsNewline := l.scanSpace()
		containsNewline = containsNewline || startIsNewline

		l.emit(
			TokenSpace,
			Space{
				ContainsNewline: containsNewline,
			},
		)

		return rootState
	}
}

func identifierState(l *lexer) stateFn {
	l.scanIdentifier()
	return l.emitTokenAndReturnRootState(TokenIdentifier)
}

func numberState(l *lexer) stateFn {
	l.scanIntegerLiteral()
	return l.emitTokenAndReturnRootState(TokenIntegerLiteral)
}

func stringState(l *lexer) stateFn {
	l.scanString('\'')
	return l.emitTokenAndReturnRootState(TokenStringLiteral)
}

func (l *lexer) emitTokenAndReturnRootState(token TokenType) stateFn {
	l.emitType(token)
	return rootState
}
