package ast

import (
	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

// Node is implemented by every expression and statement.
// String renders the node back to DBIR source.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression uses a private marker method so that only types in this
// package can be expressions.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a fully parsed DBIR operation. Token returns the statement
// marker token synthesized by the parser.
type Statement interface {
	Node
	Token() token.Token
	statementNode()
}

// Identifier is a dot-joined path such as "schema.table.column".
type Identifier struct {
	Tok token.Token
}

func NewIdentifier(path string, line uint) Identifier {
	return Identifier{Tok: token.Token{Type: token.Identifier, Lexeme: path, Line: line}}
}

func (Identifier) expressionNode() {}

func (i Identifier) TokenLiteral() string { return i.Tok.Lexeme }

func (i Identifier) String() string { return i.Tok.Lexeme }

// ColumnDefinition describes a column. Type is a bare type and Visible an instance.
type ColumnDefinition struct {
	Type    datatype.DataType
	Visible datatype.Boolean
}

// DatabaseDefinition describes a new database. Every field is an instance.
// CopyFrom is nil when the database starts empty.
type DatabaseDefinition struct {
	Password     datatype.CharField
	Encryption   datatype.Boolean
	CharacterSet datatype.CharField
	Timezone     datatype.CharField
	CopyFrom     *Identifier
}

// ConstraintDefinition is the operand of AddConstraint. Its grammar is not defined yet.
type ConstraintDefinition struct {
	Columns []Identifier
}

// TableDefinition is the operand of NewTable. Its grammar is not defined yet.
type TableDefinition struct {
	Columns map[string]ColumnDefinition
}
