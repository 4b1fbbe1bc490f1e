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
	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/parser/lexer"
)

// typeDepthLimit is the maximum nesting depth of a type annotation
const typeDepthLimit = 50

type parser struct {
	// tokens is the stream of tokens produced from the annotation
	tokens lexer.TokenStream
	// current is the current token being parsed
	current lexer.Token
	// errors are the parse errors encountered so far
	errors []error
	// typeDepth is the current type nesting depth
	typeDepth int
}

func newParser(input []byte) *parser {
	p := &parser{
		tokens: lexer.Lex(input),
	}
	p.next()
	return p
}

// next advances to the next token.
// Lexer errors are reported and their tokens skipped.
func (p *parser) next() {
	for {
		token := p.tokens.Next()

		if token.Is(lexer.TokenError) {
			err, _ := token.SpaceOrError.(error)
			message := "unknown lexer error"
			if err != nil {
				message = err.Error()
			}
			p.report(NewSyntaxError(token.StartPos, "%s", message))
			continue
		}

		p.current = token
		return
	}
}

// nextSemanticToken advances and then skips over any space.
func (p *parser) nextSemanticToken() {
	p.next()
	p.skipSpace()
}

func (p *parser) skipSpace() {
	for p.current.Is(lexer.TokenSpace) {
		p.next()
	}
}

func (p *parser) currentTokenSource() []byte {
	return p.current.Source(p.tokens.Input())
}

func (p *parser) tokenSource(token lexer.Token) []byte {
	return token.Source(p.tokens.Input())
}

func (p *parser) report(errs ...error) {
	p.errors = append(p.errors, errs...)
}

func (p *parser) tokenToIdentifier(token lexer.Token) ast.Identifier {
	return ast.Identifier{
		Identifier: string(p.tokenSource(token)),
		Pos:        token.StartPos,
	}
}

func (p *parser) syntaxError(message string, params ...any) *SyntaxError {
	return NewSyntaxError(p.current.StartPos, message, params...)
}

// mustOne consumes the current token if it has the given type,
// and errors otherwise.
func (p *parser) mustOne(tokenType lexer.TokenType) (lexer.Token, error) {
	token := p.current
	if !token.Is(tokenType) {
		return lexer.Token{}, p.syntaxError(
			"expected token %s, got %s",
			tokenType,
			token.Type,
		)
	}
	p.next()
	return token, nil
}

// parseProgress guards parsing loops against failing to make progress.
type parseProgress struct {
	lastCursor int
}

func (p *parser) newProgress() parseProgress {
	return parseProgress{
		lastCursor: -1,
	}
}

// checkProgress returns false if the token cursor has not advanced
// since the last check, indicating a loop that is stuck.
func (p *parser) checkProgress(progress *parseProgress) bool {
	cursor := p.tokens.Cursor()
	if cursor == progress.lastCursor {
		return false
	}
	progress.lastCursor = cursor
	return true
}

// skipItem consumes tokens up to, but not including, the next comma
// or the given closing token at the current bracketing depth.
// Used to drop a malformed shape field or signature parameter
// and resume at the item list's structure.
func (p *parser) skipItem(closing lexer.TokenType) {
	depth := 0
	for {
		switch p.current.Type {
		case lexer.TokenEOF:
			return

		case lexer.TokenComma:
			if depth == 0 {
				return
			}

		case lexer.TokenParenOpen,
			lexer.TokenBracketOpen,
			lexer.TokenBraceOpen:
			depth++

		case lexer.TokenParenClose,
			lexer.TokenBracketClose,
			lexer.TokenBraceClose:
			if depth == 0 {
				if p.current.Is(closing) {
					return
				}
			} else {
				depth--
			}
		}

		p.next()
	}
}

// ParseTypeExpr parses a whole annotation string into its syntax tree.
// Any error fails the whole parse; callers decide whether to fall back
// to interpreting the input as a bare class-reference name.
func ParseTypeExpr(input []byte) (ast.TypeExpr, error) {
	p := newParser(input)
	p.skipSpace()

	expr, err := parseUnionTypeExpr(p)
	if err != nil {
		p.report(err)
	} else {
		p.skipSpace()
		if !p.current.Is(lexer.TokenEOF) {
			p.report(p.syntaxError(
				"unexpected token at end of type: %s",
				p.current.Type,
			))
		}
	}

	if len(p.errors) > 0 {
		return nil, Error{
			Input:  input,
			Errors: p.errors,
		}
	}

	return expr, nil
}
