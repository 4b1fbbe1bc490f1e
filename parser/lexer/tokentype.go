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
	"github.com/sable-analyzer/sable/errors"
)

type TokenType uint8

const EOF rune = -1

const (
	TokenError TokenType = iota
	TokenEOF
	TokenSpace
	TokenIdentifier
	TokenIntegerLiteral
	TokenStringLiteral
	TokenQuestionMark
	TokenParenOpen
	TokenParenClose
	TokenBraceOpen
	TokenBraceClose
	TokenBracketOpen
	TokenBracketClose
	TokenLess
	TokenGreater
	TokenComma
	TokenColon
	TokenDot
	TokenEllipsis
	TokenEqual
	TokenMinus
	TokenAmpersand
	TokenVerticalBar
	TokenBackslash
	TokenDollar
	// NOTE: not an actual token, must be last item
	TokenMax
)

func init() {
	// ensure all tokens have its string format
	for t := TokenType(0); t < TokenMax; t++ {
		_ = t.String()
	}
}

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "error"
	case TokenEOF:
		return "EOF"
	case TokenSpace:
		return "space"
	case TokenIdentifier:
		return "identifier"
	case TokenIntegerLiteral:
		return "integer"
	case TokenStringLiteral:
		return "string"
	case TokenQuestionMark:
		return `'?'`
	case TokenParenOpen:
		return `'('`
	case TokenParenClose:
		return `')'`
	case TokenBraceOpen:
		return `'{'`
	case TokenBraceClose:
		return `'}'`
	case TokenBracketOpen:
		return `'['`
	case TokenBracketClose:
		return `']'`
	case TokenLess:
		return `'<'`
	case TokenGreater:
		return `'>'`
	case TokenComma:
		return `','`
	case TokenColon:
		return `':'`
	case TokenDot:
		return `'.'`
	case TokenEllipsis:
		return `'...'`
	case TokenEqual:
		return `'='`
	case TokenMinus:
		return `'-'`
	case TokenAmpersand:
		return `'&'`
	case TokenVerticalBar:
		return `'|'`
	case TokenBackslash:
		return `'\'`
	case TokenDollar:
		return `'$'`
	default:
		panic(errors.NewUnreachableError())
	}
}
