package parser

import (
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/token"
)

func (p *Parser) parseDeleteConstraint() ast.Statement {
	name, line, ok := p.parseTarget(token.Constraint)
	if !ok {
		return nil
	}

	return ast.DeleteConstraint{Tok: token.Marker(token.DeleteConstraint, line), Name: name}
}

func (p *Parser) parseAddConstraint() ast.Statement {
	return p.unsupported(token.AddConstraint)
}
