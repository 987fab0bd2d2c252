package parser

import (
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

func (p *Parser) parseAddColumn() ast.Statement {
	name, line, ok := p.parseTarget(token.Column)
	if !ok {
		return nil
	}

	def, ok := p.parseColumnDefinition()
	if !ok {
		return nil
	}

	return ast.AddColumn{Tok: token.Marker(token.AddColumn, line), Name: name, Definition: def}
}

func (p *Parser) parseEditColumn() ast.Statement {
	name, line, ok := p.parseTarget(token.Column)
	if !ok {
		return nil
	}

	def, ok := p.parseColumnDefinition()
	if !ok {
		return nil
	}

	return ast.EditColumn{Tok: token.Marker(token.EditColumn, line), Name: name, Definition: def}
}

func (p *Parser) parseDeleteColumn() ast.Statement {
	name, line, ok := p.parseTarget(token.Column)
	if !ok {
		return nil
	}

	return ast.DeleteColumn{Tok: token.Marker(token.DeleteColumn, line), Name: name}
}

func (p *Parser) parseRenameColumn() ast.Statement {
	old, renamed, line, ok := p.parseRename(token.Column)
	if !ok {
		return nil
	}

	return ast.RenameColumn{Tok: token.Marker(token.RenameColumn, line), Old: old, New: renamed}
}

// parseColumnDefinition parses
//
//	{ data_type: <Type>, visible: <Boolean> }
//
// visible may be left out together with the comma before it, and defaults to
// Boolean[true]. A comma after the last field is accepted.
func (p *Parser) parseColumnDefinition() (ast.ColumnDefinition, bool) {
	if !p.expectNext(token.LeftBrace) {
		return ast.ColumnDefinition{}, false
	}

	typ, ok := parseField[datatype.DataType](p, "data_type", "a data type", false, false)
	if !ok {
		return ast.ColumnDefinition{}, false
	}

	def := ast.ColumnDefinition{Type: typ, Visible: datatype.NewBoolean(true)}

	if p.peekToken.Type == token.Comma {
		p.nextToken()

		if p.peekToken.Type == token.Identifier {
			visible, ok := parseField[datatype.Boolean](p, "visible", "Boolean", true, false)
			if !ok {
				return ast.ColumnDefinition{}, false
			}
			def.Visible = visible
			p.skipComma()
		}
	}

	if !p.expectNext(token.RightBrace) {
		return ast.ColumnDefinition{}, false
	}

	return def, true
}
