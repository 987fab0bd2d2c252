package parser

import (
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/token"
)

func (p *Parser) parseDeleteTable() ast.Statement {
	name, line, ok := p.parseTarget(token.Table)
	if !ok {
		return nil
	}

	return ast.DeleteTable{Tok: token.Marker(token.DeleteTable, line), Name: name}
}

func (p *Parser) parseRenameTable() ast.Statement {
	old, renamed, line, ok := p.parseRename(token.Table)
	if !ok {
		return nil
	}

	return ast.RenameTable{Tok: token.Marker(token.RenameTable, line), Old: old, New: renamed}
}

// TODO: parse the column map into ast.TableDefinition once its grammar is settled.
func (p *Parser) parseNewTable() ast.Statement {
	return p.unsupported(token.NewTable)
}
