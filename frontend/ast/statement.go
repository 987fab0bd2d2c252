package ast

import (
	"fmt"

	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

type AddColumn struct {
	Tok        token.Token
	Name       Identifier
	Definition ColumnDefinition
}

func (AddColumn) statementNode()         {}
func (s AddColumn) Token() token.Token   { return s.Tok }
func (s AddColumn) TokenLiteral() string { return s.Tok.Lexeme }
func (s AddColumn) String() string       { return "Add Column(" + s.Name.String() + ") " + s.Definition.String() }

type DeleteColumn struct {
	Tok  token.Token
	Name Identifier
}

func (DeleteColumn) statementNode()         {}
func (s DeleteColumn) Token() token.Token   { return s.Tok }
func (s DeleteColumn) TokenLiteral() string { return s.Tok.Lexeme }
func (s DeleteColumn) String() string       { return "Delete Column(" + s.Name.String() + ")" }

type EditColumn struct {
	Tok        token.Token
	Name       Identifier
	Definition ColumnDefinition
}

func (EditColumn) statementNode()         {}
func (s EditColumn) Token() token.Token   { return s.Tok }
func (s EditColumn) TokenLiteral() string { return s.Tok.Lexeme }
func (s EditColumn) String() string       { return "Edit Column(" + s.Name.String() + ") " + s.Definition.String() }

type RenameColumn struct {
	Tok token.Token
	Old Identifier
	New Identifier
}

func (RenameColumn) statementNode()         {}
func (s RenameColumn) Token() token.Token   { return s.Tok }
func (s RenameColumn) TokenLiteral() string { return s.Tok.Lexeme }
func (s RenameColumn) String() string {
	return "Rename Column(" + s.Old.String() + "), (" + s.New.String() + ")"
}

type AddConstraint struct {
	Tok        token.Token
	Name       Identifier
	Definition ConstraintDefinition
}

func (AddConstraint) statementNode()         {}
func (s AddConstraint) Token() token.Token   { return s.Tok }
func (s AddConstraint) TokenLiteral() string { return s.Tok.Lexeme }
func (s AddConstraint) String() string       { return "Add Constraint(" + s.Name.String() + ")" }

type DeleteConstraint struct {
	Tok  token.Token
	Name Identifier
}

func (DeleteConstraint) statementNode()         {}
func (s DeleteConstraint) Token() token.Token   { return s.Tok }
func (s DeleteConstraint) TokenLiteral() string { return s.Tok.Lexeme }
func (s DeleteConstraint) String() string       { return "Delete Constraint(" + s.Name.String() + ")" }

type DeleteDatabase struct {
	Tok  token.Token
	Name Identifier
}

func (DeleteDatabase) statementNode()         {}
func (s DeleteDatabase) Token() token.Token   { return s.Tok }
func (s DeleteDatabase) TokenLiteral() string { return s.Tok.Lexeme }
func (s DeleteDatabase) String() string       { return "Delete Database(" + s.Name.String() + ")" }

type NewDatabase struct {
	Tok        token.Token
	Name       Identifier
	Definition DatabaseDefinition
}

func (NewDatabase) statementNode()         {}
func (s NewDatabase) Token() token.Token   { return s.Tok }
func (s NewDatabase) TokenLiteral() string { return s.Tok.Lexeme }
func (s NewDatabase) String() string       { return "New Database(" + s.Name.String() + ") " + s.Definition.String() }

type DeleteTable struct {
	Tok  token.Token
	Name Identifier
}

func (DeleteTable) statementNode()         {}
func (s DeleteTable) Token() token.Token   { return s.Tok }
func (s DeleteTable) TokenLiteral() string { return s.Tok.Lexeme }
func (s DeleteTable) String() string       { return "Delete Table(" + s.Name.String() + ")" }

type NewTable struct {
	Tok        token.Token
	Name       Identifier
	Definition TableDefinition
}

func (NewTable) statementNode()         {}
func (s NewTable) Token() token.Token   { return s.Tok }
func (s NewTable) TokenLiteral() string { return s.Tok.Lexeme }
func (s NewTable) String() string       { return "New Table(" + s.Name.String() + ")" }

type RenameTable struct {
	Tok token.Token
	Old Identifier
	New Identifier
}

func (RenameTable) statementNode()         {}
func (s RenameTable) Token() token.Token   { return s.Tok }
func (s RenameTable) TokenLiteral() string { return s.Tok.Lexeme }
func (s RenameTable) String() string {
	return "Rename Table(" + s.Old.String() + "), (" + s.New.String() + ")"
}

func (d ColumnDefinition) String() string {
	return fmt.Sprintf("{ data_type: %s, visible: %s }", d.Type, d.Visible)
}

func (d DatabaseDefinition) String() string {
	copyFrom := datatype.NewCharField("", false)
	if d.CopyFrom != nil {
		copyFrom = datatype.NewCharField(d.CopyFrom.String(), false)
	}
	return fmt.Sprintf("{ password: %s, encryption: %s, character_set: %s, timezone: %s, copy_from: %s }",
		d.Password, d.Encryption, d.CharacterSet, d.Timezone, copyFrom)
}
