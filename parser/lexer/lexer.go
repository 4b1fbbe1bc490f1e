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
	"github.com/sable-analyzer/sable/errors"
)

// TokenStream is a stream of tokens produced by Lex.
// The stream can be rewound to an earlier cursor position.
type TokenStream interface {
	// Next returns the next token, or an EOF token once the input is exhausted
	Next() Token
	// Input returns the whole input the stream was lexed from
	Input() []byte
	// Cursor returns the current position in the stream
	Cursor() int
	// Revert rewinds the stream to the given cursor position
	Revert(cursor int)
}

// position is a line/column pair, without a byte offset
type position struct {
	line   int
	column int
}

type lexer struct {
	// input specifies the annotation string being lexed
	input []byte
	// startOffset is the byte offset of the current token's first byte
	startOffset int
	// endOffset is the byte offset after the current token's last byte
	endOffset int
	// prevEndOffset is endOffset before the last call to next
	prevEndOffset int
	// current is the most recently read byte
	current rune
	// prev is current before the last call to next
	prev rune
	// canBackup indicates whether backupOne may be called
	canBackup bool
	// startPos is the position of the current token's first byte
	startPos position
	// tokens are the tokens emitted so far
	tokens []Token
	// cursor is the stream's position in tokens
	cursor int
}

var _ TokenStream = &lexer{}

// Lex lexes the whole input and returns a stream of the resulting tokens
func Lex(input []byte) TokenStream {
	l := &lexer{
		input:    input,
		startPos: position{line: 1},
	}
	l.run(rootState)
	return l
}

func (l *lexer) Next() Token {
	if l.cursor >= len(l.tokens) {
		endPos := ast.Position{
			Line:   l.startPos.line,
			Column: l.startPos.column,
			Offset: l.endOffset,
		}
		return Token{
			Type: TokenEOF,
			Range: ast.Range{
				StartPos: endPos,
				EndPos:   endPos,
			},
		}
	}
	token := l.tokens[l.cursor]
	l.cursor++
	return token
}

func (l *lexer) Input() []byte {
	return l.input
}

func (l *lexer) Cursor() int {
	return l.cursor
}

func (l *lexer) Revert(cursor int) {
	l.cursor = cursor
}

func (l *lexer) run(state stateFn) {
	for state != nil {
		state = state(l)
	}
}

// next decodes the next byte of the input and returns it.
// Returns EOF when the input is exhausted.
func (l *lexer) next() rune {
	l.canBackup = true

	endOffset := l.endOffset
	l.prevEndOffset = endOffset
	l.prev = l.current

	r := EOF
	if endOffset < len(l.input) {
		r = rune(l.input[endOffset])
		l.endOffset++
	}

	l.current = r
	return r
}

// backupOne steps back one byte.
// Can be called only once per call of next.
func (l *lexer) backupOne() {
	if !l.canBackup {
		panic(errors.NewUnreachableError())
	}
	l.canBackup = false

	l.endOffset = l.prevEndOffset
	l.current = l.prev
}

// acceptOne reads one byte and returns true if it matches the given byte,
// otherwise steps back and returns false
func (l *lexer) acceptOne(r rune) bool {
	if l.next() == r {
		return true
	}
	l.backupOne()
	return false
}

// word returns the bytes of the current token
func (l *lexer) word() []byte {
	return l.input[l.startOffset:l.endOffset]
}

// advancePosition steps pos over the given bytes
func advancePosition(pos position, bytes []byte) position {
	for _, b := range bytes {
		if b == '\n' {
			pos.line++
			pos.column = 0
		} else {
			pos.column++
		}
	}
	return pos
}

// emit adds a token with the given type and payload,
// spanning the bytes scanned since the last emit,
// and consumes them
func (l *lexer) emit(ty TokenType, spaceOrError any) {
	word := l.word()

	startPos := ast.Position{
		Line:   l.startPos.line,
		Column: l.startPos.column,
		Offset: l.startOffset,
	}

	var endPos ast.Position
	if len(word) == 0 {
		endPos = startPos
	} else {
		pos := advancePosition(l.startPos, word[:len(word)-1])
		endPos = ast.Position{
			Line:   pos.line,
			Column: pos.column,
			Offset: l.endOffset - 1,
		}
	}

	l.tokens = append(l.tokens, Token{
		Type:         ty,
		SpaceOrError: spaceOrError,
		Range: ast.Range{
			StartPos: startPos,
			EndPos:   endPos,
		},
	})

	l.startPos = advancePosition(l.startPos, word)
	l.startOffset = l.endOffset
}

func (l *lexer) emitType(ty TokenType) {
	l.emit(ty, nil)
}

func (l *lexer) emitError(err error) {
	l.emit(TokenError, err)
}

// scanSpace consumes a contiguous run of space bytes
// and reports whether it contained a newline
func (l *lexer) scanSpace() (containsNewline bool) {
	// lookahead is already lexed.
	// parse more, if any
	for {
		switch l.next() {
		case '\n':
			containsNewline = true
		case ' ', '\t', '\r':
			continue
		case EOF:
			return
		default:
			l.backupOne()
			return
		}
	}
}

// scanIdentifier consumes the remainder of an identifier.
// Identifiers follow the host language's rules:
// ASCII letters, digits, underscore, and all high bytes.
func (l *lexer) scanIdentifier() {
	// lookahead is already lexed.
	// parse more, if any
	for {
		r := l.next()
		if r >= 'a' && r <= 'z' ||
			r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' ||
			r == '_' ||
			r >= 0x80 {

			continue
		}
		if r != EOF {
			l.backupOne()
		}
		return
	}
}

// scanIntegerLiteral consumes the remainder of a decimal integer
func (l *lexer) scanIntegerLiteral() {
	// lookahead is already lexed.
	// parse more, if any
	for {
		r := l.next()
		if r >= '0' && r <= '9' {
			continue
		}
		if r != EOF {
			l.backupOne()
		}
		return
	}
}

// scanString consumes the remainder of a quoted string literal,
// including the closing quote.
// An unterminated literal ends at the end of the line or input,
// the parser reports it when decoding.
func (l *lexer) scanString(quote rune) {
	r := l.next()
	for r != quote {
		switch r {
		case '\n':
			l.backupOne()
			return
		case EOF:
			return
		case '\\':
			r = l.next()
			switch r {
			case '\n':
				l.backupOne()
				return
			case EOF:
				return
			}
		}
		r = l.next()
	}
}
