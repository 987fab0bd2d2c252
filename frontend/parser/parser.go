// Package parser turns a token sequence into DBIR statements.
//
// Parsing is resilient at the top level and fail-fast inside a statement: a
// malformed statement records an error and yields nothing, and the parser
// moves on one token at a time.
package parser

import (
	"slices"
	"strings"

	"github.com/thisisjab/dbir/fault"
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/token"
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []error
}

// New creates a parser over tokens. An Eof is appended when the sequence
// does not already end with one.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.Eof {
		var line uint = 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(slices.Clip(tokens), token.Token{Type: token.Eof, Line: line})
	}

	p := &Parser{tokens: tokens}

	p.nextToken()
	p.nextToken()

	return p
}

// nextToken is a no-op for peekToken once the last token has been reached.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	}
}

// Parse returns every statement that parsed successfully, in source order.
func (p *Parser) Parse() []ast.Statement {
	var statements []ast.Statement

	for p.peekToken.Type != token.Eof {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}

		p.nextToken()
	}

	return statements
}

// Errors returns the message of every recorded error.
func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.errors))
	for i, err := range p.errors {
		msgs[i] = err.Error()
	}
	return msgs
}

// Faults returns the recorded errors as fault.Fault values.
func (p *Parser) Faults() []error {
	return p.errors
}

type statementParser func(p *Parser) ast.Statement

var dispatch = map[token.TokenType]map[token.TokenType]statementParser{
	token.Add: {
		token.Column:     (*Parser).parseAddColumn,
		token.Constraint: (*Parser).parseAddConstraint,
	},
	token.Delete: {
		token.Column:     (*Parser).parseDeleteColumn,
		token.Constraint: (*Parser).parseDeleteConstraint,
		token.Database:   (*Parser).parseDeleteDatabase,
		token.Table:      (*Parser).parseDeleteTable,
	},
	token.Edit: {
		token.Column: (*Parser).parseEditColumn,
	},
	token.New: {
		token.Database: (*Parser).parseNewDatabase,
		token.Table:    (*Parser).parseNewTable,
	},
	token.Rename: {
		token.Column: (*Parser).parseRenameColumn,
		token.Table:  (*Parser).parseRenameTable,
	},
}

// parseStatement returns nil both for a failed statement and for a token
// pair that does not start one. Only the former records an error.
func (p *Parser) parseStatement() ast.Statement {
	fn, ok := dispatch[p.curToken.Type][p.peekToken.Type]
	if !ok {
		return nil
	}
	return fn(p)
}

func (p *Parser) expectNext(t token.TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}

	p.errorf(p.peekToken.Line, "Expected next token to be '%s', instead got '%s'.", t, p.peekToken.Type)
	return false
}

// parseIdentifier parses ( ident ('.' ident)* ) into a single identifier.
// The identifier takes the given line rather than its own.
func (p *Parser) parseIdentifier(line uint) (ast.Identifier, bool) {
	if !p.expectNext(token.LeftParen) || !p.expectNext(token.Identifier) {
		return ast.Identifier{}, false
	}

	parts := []string{p.curToken.Lexeme}
	for p.peekToken.Type == token.Dot {
		p.nextToken()
		if !p.expectNext(token.Identifier) {
			return ast.Identifier{}, false
		}
		parts = append(parts, p.curToken.Lexeme)
	}

	if !p.expectNext(token.RightParen) {
		return ast.Identifier{}, false
	}

	return ast.NewIdentifier(strings.Join(parts, "."), line), true
}

// parseTarget parses `Verb Noun (path)` with curToken on the verb.
func (p *Parser) parseTarget(noun token.TokenType) (ast.Identifier, uint, bool) {
	line := p.curToken.Line
	if !p.expectNext(noun) {
		return ast.Identifier{}, line, false
	}

	name, ok := p.parseIdentifier(line)
	return name, line, ok
}

// parseRename parses `Verb Noun (old), (new)`. A missing comma is recorded
// but does not abort the statement.
func (p *Parser) parseRename(noun token.TokenType) (old, renamed ast.Identifier, line uint, ok bool) {
	old, line, ok = p.parseTarget(noun)
	if !ok {
		return
	}

	p.expectNext(token.Comma)

	renamed, ok = p.parseIdentifier(line)
	return
}

func (p *Parser) unsupported(marker token.TokenType) ast.Statement {
	p.errors = append(p.errors, fault.Newf(fault.UnsupportedCode,
		"Unsupported statement '%s': no grammar is defined yet.", marker).AtLine(p.curToken.Line))
	return nil
}

func (p *Parser) errorf(line uint, format string, args ...any) {
	p.errors = append(p.errors, fault.Newf(fault.BadInputCode, format, args...).AtLine(line))
}
