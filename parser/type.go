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
	"strings"

	"github.com/sable-analyzer/sable/ast"
	"github.com/sable-analyzer/sable/errors"
	"github.com/sable-analyzer/sable/parser/lexer"
)

// parseUnionTypeExpr parses one or more single types separated by `|`
func parseUnionTypeExpr(p *parser) (ast.TypeExpr, error) {

	first, err := parseSingleTypeExpr(p)
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.current.Is(lexer.TokenVerticalBar) {
		return first, nil
	}

	types := []ast.TypeExpr{first}

	for p.current.Is(lexer.TokenVerticalBar) {
		// Skip the `|`
		p.nextSemanticToken()

		ty, err := parseSingleTypeExpr(p)
		if err != nil {
			return nil, err
		}

		types = append(types, ty)

		p.skipSpace()
	}

	return &ast.UnionExpr{
		Types: types,
	}, nil
}

// parseSingleTypeExpr parses a single type:
// an optionally nullable atom followed by any number of `[]` suffixes.
// The `?` applies to the whole type, including the suffixes:
// `?int[]` is a nullable array of integers
func parseSingleTypeExpr(p *parser) (ast.TypeExpr, error) {

	if p.typeDepth == typeDepthLimit {
		return nil, TypeDepthLimitReachedError{
			Pos: p.current.StartPos,
		}
	}

	p.typeDepth++
	defer func() {
		p.typeDepth--
	}()

	p.skipSpace()

	var nullable bool
	var questionMarkPos ast.Position

	if p.current.Is(lexer.TokenQuestionMark) {
		nullable = true
		questionMarkPos = p.current.StartPos

		// Skip the `?`
		p.nextSemanticToken()
	}

	result, err := parseAtomTypeExpr(p)
	if err != nil {
		return nil, err
	}

	// Parse `[]` suffixes
	for {
		p.skipSpace()

		if !p.current.Is(lexer.TokenBracketOpen) {
			break
		}

		// Skip the `[`
		p.nextSemanticToken()

		endToken, err := p.mustOne(lexer.TokenBracketClose)
		if err != nil {
			return nil, err
		}

		result = &ast.ArrayExpr{
			Element: result,
			EndPos:  endToken.EndPos,
		}
	}

	if nullable {
		result = &ast.NullableExpr{
			Type:     result,
			StartPos: questionMarkPos,
		}
	}

	return result, nil
}

func parseAtomTypeExpr(p *parser) (ast.TypeExpr, error) {

	switch p.current.Type {
	case lexer.TokenParenOpen:
		return parseParenTypeExpr(p)

	case lexer.TokenIntegerLiteral, lexer.TokenMinus:
		return parseLiteralIntTypeExpr(p)

	case lexer.TokenStringLiteral:
		return parseLiteralStringTypeExpr(p)

	case lexer.TokenIdentifier, lexer.TokenBackslash, lexer.TokenDollar:
		nominal, err := parseNominalTypeExpr(p)
		if err != nil {
			return nil, err
		}
		return parseNominalSuffixTypeExpr(p, nominal)

	case lexer.TokenEOF:
		return nil, p.syntaxError("invalid end of input, expected type")

	default:
		return nil, p.syntaxError(
			"unexpected token in type: %s",
			p.current.Type,
		)
	}
}

func parseParenTypeExpr(p *parser) (ast.TypeExpr, error) {

	startPos := p.current.StartPos

	// Skip the `(`
	p.nextSemanticToken()

	innerType, err := parseUnionTypeExpr(p)
	if err != nil {
		return nil, err
	}

	endToken, err := p.mustOne(lexer.TokenParenClose)
	if err != nil {
		return nil, err
	}

	return &ast.ParenExpr{
		Type: innerType,
		Range: ast.Range{
			StartPos: startPos,
			EndPos:   endToken.EndPos,
		},
	}, nil
}

func parseLiteralIntTypeExpr(p *parser) (ast.TypeExpr, error) {

	startToken := p.current

	negative := startToken.Is(lexer.TokenMinus)
	if negative {
		// Skip the `-`.
		// The minus sign must directly precede the digits,
		// so do not skip space
		p.next()

		if !p.current.Is(lexer.TokenIntegerLiteral) {
			return nil, p.syntaxError("expected integer literal after '-'")
		}
	}

	literalToken := p.current
	literal := p.currentTokenSource()

	// Skip the integer literal
	p.next()

	value, err := parseIntegerLiteral(literal, negative, literalToken.StartPos)
	if err != nil {
		return nil, err
	}

	return &ast.LiteralIntExpr{
		Value: value,
		Range: ast.Range{
			StartPos: startToken.StartPos,
			EndPos:   literalToken.EndPos,
		},
	}, nil
}

func parseLiteralStringTypeExpr(p *parser) (ast.TypeExpr, error) {

	token := p.current
	literal := p.currentTokenSource()

	// Skip the string literal
	p.next()

	value, err := parseStringLiteral(literal, token.StartPos)
	if err != nil {
		return nil, err
	}

	return &ast.LiteralStringExpr{
		Value: value,
		Range: token.Range,
	}, nil
}

// parseNominalTypeExpr parses a possibly backslash-qualified name,
// e.g. `int`, `Foo\Bar`, `\Foo`, or the special name `$this`.
// Name segments must directly follow their backslashes,
// space ends the name
func parseNominalTypeExpr(p *parser) (*ast.NominalExpr, error) {

	startPos := p.current.StartPos

	var rooted bool

	switch p.current.Type {
	case lexer.TokenDollar:
		// The only variable usable as a type is `$this`
		p.next()

		if !p.current.Is(lexer.TokenIdentifier) ||
			!strings.EqualFold(string(p.currentTokenSource()), KeywordThis) {

			return nil, p.syntaxError("expected `this` after '$'")
		}

		identifier := ast.Identifier{
			Identifier: "$" + string(p.currentTokenSource()),
			Pos:        startPos,
		}

		// Skip the identifier
		p.next()

		return &ast.NominalExpr{
			Identifier: identifier,
			StartPos:   startPos,
		}, nil

	case lexer.TokenBackslash:
		rooted = true

		// Skip the `\`
		p.next()

		if !p.current.Is(lexer.TokenIdentifier) {
			return nil, p.syntaxError("expected identifier after '\\'")
		}
	}

	identifier := p.tokenToIdentifier(p.current)

	// Skip the identifier
	p.next()

	var nestedIdentifiers []ast.Identifier

	for p.current.Is(lexer.TokenBackslash) {
		backslashToken := p.current
		cursor := p.tokens.Cursor()

		// Skip the `\`
		p.next()

		if !p.current.Is(lexer.TokenIdentifier) {
			// The backslash is not part of the name.
			// Put it back and stop
			p.tokens.Revert(cursor)
			p.current = backslashToken
			break
		}

		nestedIdentifiers = append(
			nestedIdentifiers,
			p.tokenToIdentifier(p.current),
		)

		// Skip the identifier
		p.next()
	}

	return &ast.NominalExpr{
		Identifier:        identifier,
		NestedIdentifiers: nestedIdentifiers,
		Rooted:            rooted,
		StartPos:          startPos,
	}, nil
}

// parseNominalSuffixTypeExpr parses the type argument list, array shape,
// or callable signature that may follow a named type
func parseNominalSuffixTypeExpr(p *parser, nominal *ast.NominalExpr) (ast.TypeExpr, error) {

	p.skipSpace()

	switch p.current.Type {
	case lexer.TokenLess:
		return parseTypeArguments(p, nominal)

	case lexer.TokenBraceOpen:
		if isShapeBaseName(nominal) {
			return parseShapeTypeExpr(p, nominal)
		}

	case lexer.TokenParenOpen:
		if isSignatureBaseName(nominal) {
			return parseSignatureTypeExpr(p, nominal)
		}
	}

	return nominal, nil
}

// isShapeBaseName returns true if the name can begin an array shape
func isShapeBaseName(nominal *ast.NominalExpr) bool {
	return len(nominal.NestedIdentifiers) == 0 &&
		strings.EqualFold(nominal.Identifier.Identifier, KeywordArray)
}

// isSignatureBaseName returns true if the name can begin a callable signature
func isSignatureBaseName(nominal *ast.NominalExpr) bool {
	if len(nominal.NestedIdentifiers) != 0 {
		return false
	}
	name := nominal.Identifier.Identifier
	return strings.EqualFold(name, KeywordClosure) ||
		strings.EqualFold(name, KeywordCallable)
}

// parseTypeArguments parses the `<...>` type argument list of an instantiation.
// The list must contain at least one argument
func parseTypeArguments(p *parser, base *ast.NominalExpr) (*ast.GenericExpr, error) {

	// Skip the `<`
	p.nextSemanticToken()

	if p.current.Is(lexer.TokenGreater) {
		return nil, p.syntaxError("missing type argument in type instantiation")
	}

	var typeArguments []ast.TypeExpr

	progress := p.newProgress()

	for p.checkProgress(&progress) {

		typeArgument, err := parseUnionTypeExpr(p)
		if err != nil {
			return nil, err
		}

		typeArguments = append(typeArguments, typeArgument)

		switch p.current.Type {
		case lexer.TokenComma:
			// Skip the `,`
			p.nextSemanticToken()

		case lexer.TokenGreater:
			endPos := p.current.EndPos

			// Skip the `>`
			p.next()

			return &ast.GenericExpr{
				Base:          base,
				TypeArguments: typeArguments,
				EndPos:        endPos,
			}, nil

		case lexer.TokenEOF:
			return nil, p.syntaxError("missing '>' at end of type instantiation")

		default:
			return nil, p.syntaxError(
				"unexpected token in type argument list: %s",
				p.current.Type,
			)
		}
	}

	panic(errors.NewUnreachableError())
}

// parseShapeTypeExpr parses the field list of an array shape.
// A malformed field is dropped and parsing resumes at the next comma,
// the remaining fields are kept
func parseShapeTypeExpr(p *parser, base *ast.NominalExpr) (*ast.ShapeExpr, error) {

	// Skip the `{`
	p.nextSemanticToken()

	var fields []*ast.ShapeFieldExpr

	progress := p.newProgress()

	for p.checkProgress(&progress) {

		switch p.current.Type {
		case lexer.TokenBraceClose:
			endPos := p.current.EndPos

			// Skip the `}`
			p.next()

			return &ast.ShapeExpr{
				Base:   base,
				Fields: fields,
				EndPos: endPos,
			}, nil

		case lexer.TokenEOF:
			return nil, p.syntaxError("missing '}' at end of array shape")

		case lexer.TokenComma:
			// Skip the `,`
			p.nextSemanticToken()

		default:
			field, err := parseShapeFieldExpr(p)
			if err == nil {
				p.skipSpace()

				switch p.current.Type {
				case lexer.TokenComma,
					lexer.TokenBraceClose,
					lexer.TokenEOF:
					// The field ends where a field may end

				default:
					err = p.syntaxError(
						"unexpected token after array shape field: %s",
						p.current.Type,
					)
				}
			}

			if err != nil {
				// Drop the malformed field and resume at the next one
				p.skipItem(lexer.TokenBraceClose)
				continue
			}

			fields = append(fields, field)
		}
	}

	panic(errors.NewUnreachableError())
}

func parseShapeFieldExpr(p *parser) (*ast.ShapeFieldExpr, error) {

	key, err := parseShapeKeyExpr(p)
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	var optional bool
	if p.current.Is(lexer.TokenQuestionMark) {
		optional = true

		// Skip the `?`
		p.nextSemanticToken()
	}

	_, err = p.mustOne(lexer.TokenColon)
	if err != nil {
		return nil, err
	}

	value, err := parseUnionTypeExpr(p)
	if err != nil {
		return nil, err
	}

	endPos := value.EndPosition()

	var hasDefault bool
	if p.current.Is(lexer.TokenEqual) {
		hasDefault = true
		endPos = p.current.EndPos

		// Skip the `=`
		p.next()
	}

	return &ast.ShapeFieldExpr{
		Key:        key,
		Value:      value,
		Optional:   optional,
		HasDefault: hasDefault,
		EndPos:     endPos,
	}, nil
}

func parseShapeKeyExpr(p *parser) (ast.ShapeKeyExpr, error) {

	pos := p.current.StartPos

	switch p.current.Type {
	case lexer.TokenIntegerLiteral, lexer.TokenMinus:
		negative := p.current.Is(lexer.TokenMinus)
		if negative {
			// Skip the `-`.
			// The minus sign must directly precede the digits,
			// so do not skip space
			p.next()

			if !p.current.Is(lexer.TokenIntegerLiteral) {
				return ast.ShapeKeyExpr{}, p.syntaxError("expected integer literal after '-'")
			}
		}

		literal := p.currentTokenSource()
		literalPos := p.current.StartPos

		// Skip the integer literal
		p.next()

		value, err := parseIntegerLiteral(literal, negative, literalPos)
		if err != nil {
			return ast.ShapeKeyExpr{}, err
		}

		return ast.ShapeKeyExpr{
			IsInt: true,
			Int:   value,
			Pos:   pos,
		}, nil

	case lexer.TokenStringLiteral:
		literal := p.currentTokenSource()

		// Skip the string literal
		p.next()

		name, err := parseStringLiteral(literal, pos)
		if err != nil {
			return ast.ShapeKeyExpr{}, err
		}

		return ast.ShapeKeyExpr{
			Name:   name,
			Quoted: true,
			Pos:    pos,
		}, nil

	case lexer.TokenIdentifier:
		name := string(p.currentTokenSource())

		// Skip the identifier
		p.next()

		return ast.ShapeKeyExpr{
			Name: name,
			Pos:  pos,
		}, nil

	default:
		return ast.ShapeKeyExpr{}, p.syntaxError(
			"unexpected token in array shape key: %s",
			p.current.Type,
		)
	}
}

// parseSignatureTypeExpr parses the parameter list and optional return type
// of a callable signature.
// A malformed parameter is dropped and parsing resumes at the next comma.
// The return type is a single type:
// a `|` after it ends the signature and continues the enclosing union
func parseSignatureTypeExpr(p *parser, base *ast.NominalExpr) (*ast.SignatureExpr, error) {

	// Skip the `(`
	p.nextSemanticToken()

	var parameters []*ast.ParamExpr
	var endPos ast.Position

	progress := p.newProgress()

	var atEnd bool
	for !atEnd && p.checkProgress(&progress) {

		switch p.current.Type {
		case lexer.TokenParenClose:
			endPos = p.current.EndPos

			// Skip the `)`
			p.next()

			atEnd = true

		case lexer.TokenEOF:
			return nil, p.syntaxError("missing ')' at end of parameter list")

		case lexer.TokenComma:
			// Skip the `,`
			p.nextSemanticToken()

		default:
			parameter, err := parseParamExpr(p)
			if err == nil {
				p.skipSpace()

				switch p.current.Type {
				case lexer.TokenComma,
					lexer.TokenParenClose,
					lexer.TokenEOF:
					// The parameter ends where a parameter may end

				default:
					err = p.syntaxError(
						"unexpected token after parameter: %s",
						p.current.Type,
					)
				}
			}

			if err != nil {
				// Drop the malformed parameter and resume at the next one
				p.skipItem(lexer.TokenParenClose)
				continue
			}

			parameters = append(parameters, parameter)
		}
	}

	if !atEnd {
		panic(errors.NewUnreachableError())
	}

	var returnType ast.TypeExpr

	p.skipSpace()

	if p.current.Is(lexer.TokenColon) {
		// Skip the `:`
		p.nextSemanticToken()

		var err error
		returnType, err = parseSingleTypeExpr(p)
		if err != nil {
			return nil, err
		}

		endPos = returnType.EndPosition()
	}

	return &ast.SignatureExpr{
		Base:       base,
		Parameters: parameters,
		ReturnType: returnType,
		EndPos:     endPos,
	}, nil
}

// parseParamExpr parses a single parameter of a callable signature.
// Every part is optional:
// a bare type, a bare `$name`, and a lone `...` are all valid parameters
func parseParamExpr(p *parser) (*ast.ParamExpr, error) {

	startPos := p.current.StartPos
	endPos := p.current.EndPos

	var typeAnnotation ast.TypeExpr

	switch p.current.Type {
	case lexer.TokenAmpersand,
		lexer.TokenEllipsis,
		lexer.TokenDollar,
		lexer.TokenEqual:
		// The parameter declares no type

	default:
		var err error
		typeAnnotation, err = parseUnionTypeExpr(p)
		if err != nil {
			return nil, err
		}

		endPos = typeAnnotation.EndPosition()
	}

	var byReference bool
	if p.current.Is(lexer.TokenAmpersand) {
		byReference = true
		endPos = p.current.EndPos

		// Skip the `&`
		p.nextSemanticToken()
	}

	var variadic bool
	if p.current.Is(lexer.TokenEllipsis) {
		variadic = true
		endPos = p.current.EndPos

		// Skip the `...`
		p.nextSemanticToken()
	}

	var name string
	if p.current.Is(lexer.TokenDollar) {
		// Skip the `$`.
		// The name must directly follow, so do not skip space
		p.next()

		if !p.current.Is(lexer.TokenIdentifier) {
			return nil, p.syntaxError("expected identifier after '$'")
		}

		name = string(p.currentTokenSource())
		endPos = p.current.EndPos

		// Skip the identifier
		p.nextSemanticToken()
	}

	var hasDefault, defaultIsNull bool
	if p.current.Is(lexer.TokenEqual) {
		hasDefault = true
		endPos = p.current.EndPos

		// Skip the `=`
		p.nextSemanticToken()

		defaultIsNull, endPos = skipDefaultValue(p, endPos)
	}

	return &ast.ParamExpr{
		TypeAnnotation: typeAnnotation,
		Name:           name,
		ByReference:    byReference,
		Variadic:       variadic,
		HasDefault:     hasDefault,
		DefaultIsNull:  defaultIsNull,
		Range: ast.Range{
			StartPos: startPos,
			EndPos:   endPos,
		},
	}, nil
}

// skipDefaultValue consumes a parameter's default value expression,
// up to the next comma or the closing parenthesis.
// Default values are not represented,
// only a default of the literal `null` is significant:
// it makes the parameter's type nullable
func skipDefaultValue(p *parser, endPos ast.Position) (isNull bool, _ ast.Position) {

	var tokenCount int

	depth := 0
	for {
		switch p.current.Type {
		case lexer.TokenEOF:
			return isNull, endPos

		case lexer.TokenSpace:
			p.next()
			continue

		case lexer.TokenComma:
			if depth == 0 {
				return isNull, endPos
			}

		case lexer.TokenParenOpen,
			lexer.TokenBracketOpen,
			lexer.TokenBraceOpen:
			depth++

		case lexer.TokenParenClose:
			if depth == 0 {
				return isNull, endPos
			}
			depth--

		case lexer.TokenBracketClose,
			lexer.TokenBraceClose:
			if depth > 0 {
				depth--
			}
		}

		tokenCount++
		isNull = tokenCount == 1 &&
			p.current.Is(lexer.TokenIdentifier) &&
			strings.EqualFold(string(p.currentTokenSource()), KeywordNull)

		endPos = p.current.EndPos
		p.next()
	}
}
