package parser

import (
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

// parseDeleteDatabase takes a single flat identifier, never a dotted path.
func (p *Parser) parseDeleteDatabase() ast.Statement {
	line := p.curToken.Line
	if !p.expectNext(token.Database) || !p.expectNext(token.LeftParen) || !p.expectNext(token.Identifier) {
		return nil
	}

	name := ast.NewIdentifier(p.curToken.Lexeme, line)

	if !p.expectNext(token.RightParen) {
		return nil
	}

	return ast.DeleteDatabase{Tok: token.Marker(token.DeleteDatabase, line), Name: name}
}

// parseNewDatabase parses
//
//	New Database(path) {
//		password: CharField[..],
//		encryption: Boolean[..],
//		character_set: CharField[..],
//		timezone: CharField[..],
//		copy_from: CharField[..]
//	}
//
// An empty copy_from means the database starts empty.
func (p *Parser) parseNewDatabase() ast.Statement {
	name, line, ok := p.parseTarget(token.Database)
	if !ok || !p.expectNext(token.LeftBrace) {
		return nil
	}

	var def ast.DatabaseDefinition

	if def.Password, ok = parseField[datatype.CharField](p, "password", "CharField", true, true); !ok {
		return nil
	}
	if def.Encryption, ok = parseField[datatype.Boolean](p, "encryption", "Boolean", true, true); !ok {
		return nil
	}
	if def.CharacterSet, ok = parseField[datatype.CharField](p, "character_set", "CharField", true, true); !ok {
		return nil
	}
	if def.Timezone, ok = parseField[datatype.CharField](p, "timezone", "CharField", true, true); !ok {
		return nil
	}

	copyFrom, ok := parseField[datatype.CharField](p, "copy_from", "CharField", true, false)
	if !ok {
		return nil
	}
	if len(copyFrom.Value) > 0 {
		id := ast.NewIdentifier(copyFrom.Text(), line)
		def.CopyFrom = &id
	}

	p.skipComma()

	if !p.expectNext(token.RightBrace) {
		return nil
	}

	return ast.NewDatabase{Tok: token.Marker(token.NewDatabase, line), Name: name, Definition: def}
}
