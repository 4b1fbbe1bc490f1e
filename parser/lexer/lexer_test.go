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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/internal/testutils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func withTokens(tokenStream TokenStream, fn func([]Token)) {
	tokens := make([]Token, 0)
	for {
		token := tokenStream.Next()
		tokens = append(tokens, token)
		if token.Is(TokenEOF) {
			fn(tokens)
			return
		}
	}
}

func testLex(t *testing.T, input string, expected []Token) {

	t.Parallel()

	withTokens(Lex([]byte(input)), func(tokens []Token) {
		testutils.AssertEqualWithDiff(t, expected, tokens)
	})
}

func TestLexBasic(t *testing.T) {

	t.Parallel()

	t.Run("nullable native", func(t *testing.T) {
		testLex(t,
			"?int",
			[]Token{
				{
					Type: TokenQuestionMark,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
			},
		)
	})

	t.Run("qualified name", func(t *testing.T) {
		testLex(t,
			`Foo\Bar`,
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type: TokenBackslash,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 6, Offset: 6},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 7, Offset: 7},
						EndPos:   ast.Position{Line: 1, Column: 7, Offset: 7},
					},
				},
			},
		)
	})

	t.Run("union with spaces", func(t *testing.T) {
		testLex(t,
			"int | string",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenVerticalBar,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 6, Offset: 6},
						EndPos:   ast.Position{Line: 1, Column: 11, Offset: 11},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 12, Offset: 12},
						EndPos:   ast.Position{Line: 1, Column: 12, Offset: 12},
					},
				},
			},
		)
	})

	t.Run("generic array", func(t *testing.T) {
		testLex(t,
			"array<int,string>",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenLess,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 6, Offset: 6},
						EndPos:   ast.Position{Line: 1, Column: 8, Offset: 8},
					},
				},
				{
					Type: TokenComma,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 9, Offset: 9},
						EndPos:   ast.Position{Line: 1, Column: 9, Offset: 9},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 10, Offset: 10},
						EndPos:   ast.Position{Line: 1, Column: 15, Offset: 15},
					},
				},
				{
					Type: TokenGreater,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 16, Offset: 16},
						EndPos:   ast.Position{Line: 1, Column: 16, Offset: 16},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 17, Offset: 17},
						EndPos:   ast.Position{Line: 1, Column: 17, Offset: 17},
					},
				},
			},
		)
	})

	t.Run("array suffix", func(t *testing.T) {
		testLex(t,
			"int[]",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type: TokenBracketOpen,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenBracketClose,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
			},
		)
	})

	t.Run("shape braces", func(t *testing.T) {
		testLex(t,
			"array{name:string}",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenBraceOpen,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 6, Offset: 6},
						EndPos:   ast.Position{Line: 1, Column: 9, Offset: 9},
					},
				},
				{
					Type: TokenColon,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 10, Offset: 10},
						EndPos:   ast.Position{Line: 1, Column: 10, Offset: 10},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 11, Offset: 11},
						EndPos:   ast.Position{Line: 1, Column: 16, Offset: 16},
					},
				},
				{
					Type: TokenBraceClose,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 17, Offset: 17},
						EndPos:   ast.Position{Line: 1, Column: 17, Offset: 17},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 18, Offset: 18},
						EndPos:   ast.Position{Line: 1, Column: 18, Offset: 18},
					},
				},
			},
		)
	})

	t.Run("this variable", func(t *testing.T) {
		testLex(t,
			"$this",
			[]Token{
				{
					Type: TokenDollar,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
			},
		)
	})

	t.Run("signature punctuation", func(t *testing.T) {
		testLex(t,
			"Closure(int&,string...=):void",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 6, Offset: 6},
					},
				},
				{
					Type: TokenParenOpen,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 7, Offset: 7},
						EndPos:   ast.Position{Line: 1, Column: 7, Offset: 7},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 8, Offset: 8},
						EndPos:   ast.Position{Line: 1, Column: 10, Offset: 10},
					},
				},
				{
					Type: TokenAmpersand,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 11, Offset: 11},
						EndPos:   ast.Position{Line: 1, Column: 11, Offset: 11},
					},
				},
				{
					Type: TokenComma,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 12, Offset: 12},
						EndPos:   ast.Position{Line: 1, Column: 12, Offset: 12},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 13, Offset: 13},
						EndPos:   ast.Position{Line: 1, Column: 18, Offset: 18},
					},
				},
				{
					Type: TokenEllipsis,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 19, Offset: 19},
						EndPos:   ast.Position{Line: 1, Column: 21, Offset: 21},
					},
				},
				{
					Type: TokenEqual,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 22, Offset: 22},
						EndPos:   ast.Position{Line: 1, Column: 22, Offset: 22},
					},
				},
				{
					Type: TokenParenClose,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 23, Offset: 23},
						EndPos:   ast.Position{Line: 1, Column: 23, Offset: 23},
					},
				},
				{
					Type: TokenColon,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 24, Offset: 24},
						EndPos:   ast.Position{Line: 1, Column: 24, Offset: 24},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 25, Offset: 25},
						EndPos:   ast.Position{Line: 1, Column: 28, Offset: 28},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 29, Offset: 29},
						EndPos:   ast.Position{Line: 1, Column: 29, Offset: 29},
					},
				},
			},
		)
	})
}

func TestLexSpace(t *testing.T) {

	t.Parallel()

	t.Run("newline separates union members", func(t *testing.T) {
		testLex(t,
			"int |\nstring",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenVerticalBar,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: true},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 0, Offset: 6},
						EndPos:   ast.Position{Line: 2, Column: 5, Offset: 11},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 6, Offset: 12},
						EndPos:   ast.Position{Line: 2, Column: 6, Offset: 12},
					},
				},
			},
		)
	})

	t.Run("newline inside space run", func(t *testing.T) {
		testLex(t,
			"a \n b",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: true},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 2, Column: 0, Offset: 3},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 1, Offset: 4},
						EndPos:   ast.Position{Line: 2, Column: 1, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 2, Offset: 5},
						EndPos:   ast.Position{Line: 2, Column: 2, Offset: 5},
					},
				},
			},
		)
	})

	t.Run("tabs and carriage returns", func(t *testing.T) {
		testLex(t,
			"int\t\r ",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: false},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 6, Offset: 6},
						EndPos:   ast.Position{Line: 1, Column: 6, Offset: 6},
					},
				},
			},
		)
	})
}

func TestLexIdentifiers(t *testing.T) {

	t.Parallel()

	t.Run("leading underscore", func(t *testing.T) {
		testLex(t,
			"_private",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 7, Offset: 7},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 8, Offset: 8},
						EndPos:   ast.Position{Line: 1, Column: 8, Offset: 8},
					},
				},
			},
		)
	})

	t.Run("inner digits", func(t *testing.T) {
		testLex(t,
			"utf8_decode",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 10, Offset: 10},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 11, Offset: 11},
						EndPos:   ast.Position{Line: 1, Column: 11, Offset: 11},
					},
				},
			},
		)
	})

	t.Run("high bytes", func(t *testing.T) {
		// `é` encodes as two bytes, columns count bytes
		testLex(t,
			"café",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
			},
		)
	})

	t.Run("leading digit starts an integer", func(t *testing.T) {
		testLex(t,
			"9lives",
			[]Token{
				{
					Type: TokenIntegerLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 6, Offset: 6},
						EndPos:   ast.Position{Line: 1, Column: 6, Offset: 6},
					},
				},
			},
		)
	})
}

func TestLexIntegerLiterals(t *testing.T) {

	t.Parallel()

	t.Run("single digit", func(t *testing.T) {
		testLex(t,
			"7",
			[]Token{
				{
					Type: TokenIntegerLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
					},
				},
			},
		)
	})

	t.Run("multiple digits", func(t *testing.T) {
		testLex(t,
			"12345",
			[]Token{
				{
					Type: TokenIntegerLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
			},
		)
	})

	t.Run("negative is minus then digits", func(t *testing.T) {
		testLex(t,
			"-42",
			[]Token{
				{
					Type: TokenMinus,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenIntegerLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
			},
		)
	})
}

func TestLexStringLiterals(t *testing.T) {

	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		testLex(t,
			`'up'`,
			[]Token{
				{
					Type: TokenStringLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
			},
		)
	})

	t.Run("escaped quote", func(t *testing.T) {
		testLex(t,
			`'it\'s'`,
			[]Token{
				{
					Type: TokenStringLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 6, Offset: 6},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 7, Offset: 7},
						EndPos:   ast.Position{Line: 1, Column: 7, Offset: 7},
					},
				},
			},
		)
	})

	t.Run("unterminated ends at end of input", func(t *testing.T) {
		testLex(t,
			`'abc`,
			[]Token{
				{
					Type: TokenStringLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
			},
		)
	})

	t.Run("unterminated ends at newline", func(t *testing.T) {
		testLex(t,
			"'abc\ndef",
			[]Token{
				{
					Type: TokenStringLiteral,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: true},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 0, Offset: 5},
						EndPos:   ast.Position{Line: 2, Column: 2, Offset: 7},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 3, Offset: 8},
						EndPos:   ast.Position{Line: 2, Column: 3, Offset: 8},
					},
				},
			},
		)
	})
}

func TestLexDots(t *testing.T) {

	t.Parallel()

	t.Run("ellipsis", func(t *testing.T) {
		testLex(t,
			"...",
			[]Token{
				{
					Type: TokenEllipsis,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
			},
		)
	})

	t.Run("single dot", func(t *testing.T) {
		testLex(t,
			".",
			[]Token{
				{
					Type: TokenDot,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
					},
				},
			},
		)
	})

	t.Run("two dots", func(t *testing.T) {
		testLex(t,
			"..",
			[]Token{
				{
					Type:         TokenError,
					SpaceOrError: errors.New("expected '...'"),
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
			},
		)
	})
}

func TestLexUnrecognized(t *testing.T) {

	t.Parallel()

	t.Run("at sign", func(t *testing.T) {
		testLex(t,
			"@",
			[]Token{
				{
					Type:         TokenError,
					SpaceOrError: errors.New(`unrecognized character: U+0040 '@'`),
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
					},
				},
			},
		)
	})

	t.Run("asterisk", func(t *testing.T) {
		testLex(t,
			"int*",
			[]Token{
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				{
					Type:         TokenError,
					SpaceOrError: errors.New(`unrecognized character: U+002A '*'`),
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
						EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
						EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
					},
				},
			},
		)
	})
}

func TestTokenSource(t *testing.T) {

	t.Parallel()

	input := []byte("array<int>")
	tokenStream := Lex(input)

	assert.Equal(t, input, tokenStream.Input())

	token := tokenStream.Next()
	require.True(t, token.Is(TokenIdentifier))
	assert.Equal(t, []byte("array"), token.Source(input))
}

func TestRevert(t *testing.T) {

	t.Parallel()

	tokenStream := Lex([]byte("1 2 3"))

	// Assert all tokens

	assert.Equal(t,
		Token{
			Type: TokenIntegerLiteral,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
				EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type:         TokenSpace,
			SpaceOrError: Space{ContainsNewline: false},
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
				EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
			},
		},
		tokenStream.Next(),
	)

	twoCursor := tokenStream.Cursor()

	assert.Equal(t,
		Token{
			Type: TokenIntegerLiteral,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
				EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type:         TokenSpace,
			SpaceOrError: Space{ContainsNewline: false},
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
				EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type: TokenIntegerLiteral,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
				EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
			},
		},
		tokenStream.Next(),
	)

	// Assert EOF keeps on being returned for Next()
	// at the end of the stream

	assert.Equal(t,
		Token{
			Type: TokenEOF,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
				EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type: TokenEOF,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
				EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
			},
		},
		tokenStream.Next(),
	)

	// Revert back to token '2'

	tokenStream.Revert(twoCursor)

	// Re-assert tokens

	assert.Equal(t,
		Token{
			Type: TokenIntegerLiteral,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
				EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type:         TokenSpace,
			SpaceOrError: Space{ContainsNewline: false},
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
				EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type: TokenIntegerLiteral,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
				EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
			},
		},
		tokenStream.Next(),
	)

	// Re-assert EOF keeps on being returned for Next()
	// at the end of the stream

	assert.Equal(t,
		Token{
			Type: TokenEOF,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
				EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type: TokenEOF,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
				EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
			},
		},
		tokenStream.Next(),
	)
}

func TestEOFsAfterError(t *testing.T) {

	t.Parallel()

	tokenStream := Lex([]byte("int @"))

	// Assert all tokens

	assert.Equal(t,
		Token{
			Type: TokenIdentifier,
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
				EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type:         TokenSpace,
			SpaceOrError: Space{ContainsNewline: false},
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 3, Offset: 3},
				EndPos:   ast.Position{Line: 1, Column: 3, Offset: 3},
			},
		},
		tokenStream.Next(),
	)

	assert.Equal(t,
		Token{
			Type:         TokenError,
			SpaceOrError: errors.New(`unrecognized character: U+0040 '@'`),
			Range: ast.Range{
				StartPos: ast.Position{Line: 1, Column: 4, Offset: 4},
				EndPos:   ast.Position{Line: 1, Column: 4, Offset: 4},
			},
		},
		tokenStream.Next(),
	)

	// Assert EOFs keep on being returned for Next()
	// at the end of the stream

	for i := 0; i < 10; i++ {

		require.Equal(t,
			Token{
				Type: TokenEOF,
				Range: ast.Range{
					StartPos: ast.Position{Line: 1, Column: 5, Offset: 5},
					EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
				},
			},
			tokenStream.Next(),
		)
	}
}

func TestEOFsAfterEmptyInput(t *testing.T) {

	t.Parallel()

	tokenStream := Lex(nil)

	// Assert EOFs keep on being returned for Next()
	// at the end of the stream

	for i := 0; i < 10; i++ {

		require.Equal(t,
			Token{
				Type: TokenEOF,
				Range: ast.Range{
					StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
					EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
				},
			},
			tokenStream.Next(),
		)
	}
}
