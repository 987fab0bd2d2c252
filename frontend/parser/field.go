package parser

import (
	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

// parseField parses `name: <literal>` and validates the literal against T.
// want is the name of T used in messages. isInstance says whether the field
// takes a value or a bare type.
func parseField[T datatype.DataType](p *Parser, name, want string, isInstance, enforceTrailingComma bool) (T, bool) {
	var zero T

	if !p.expectNext(token.Identifier) {
		return zero, false
	}
	if p.curToken.Lexeme != name {
		p.errorf(p.curToken.Line, "Expected field '%s', instead got '%s'.", name, p.curToken.Lexeme)
		return zero, false
	}

	if !p.expectNext(token.Colon) {
		return zero, false
	}

	p.nextToken()
	tok := p.curToken

	if !tok.Type.IsDataType() {
		p.errorf(tok.Line, "Expected field '%s' to be %s, instead got '%s'.", name, want, tok.Type)
		return zero, false
	}
	// The lexer already reported why.
	if tok.Literal == nil {
		p.errorf(tok.Line, "Field '%s' has a malformed literal '%s'.", name, tok.Lexeme)
		return zero, false
	}

	v, ok := datatype.As[T](tok.Literal)
	if !ok {
		p.errorf(tok.Line, "Expected field '%s' to be %s, instead got '%s'.", name, want, tok.Literal.Name())
		return zero, false
	}

	if v.IsInstance() != isInstance {
		if isInstance {
			p.errorf(tok.Line, "Expected field '%s' to be an instance, not a type.", name)
		} else {
			p.errorf(tok.Line, "Expected field '%s' to be a type, not an instance.", name)
		}
		return zero, false
	}

	if enforceTrailingComma && !p.expectNext(token.Comma) {
		return zero, false
	}

	return v, true
}

// skipComma consumes an optional comma.
func (p *Parser) skipComma() {
	if p.peekToken.Type == token.Comma {
		p.nextToken()
	}
}
