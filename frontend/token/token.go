package token

import (
	"fmt"

	"github.com/thisisjab/dbir/frontend/datatype"
)

const (
	// Single-character tokens
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Minus
	Plus
	Colon
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Set operations
	Except
	ExceptAll
	Intersect
	IntersectAll
	Union
	UnionAll

	// Nouns
	Column
	Table
	Tables
	Constraint
	Database
	Records

	// Verbs
	Add
	Delete
	Edit
	Update
	Rename
	New
	Insert
	Select
	Join

	// Statement markers. Only the parser creates these.
	AddColumn
	DeleteColumn
	EditColumn
	RenameColumn
	AddConstraint
	DeleteConstraint
	DeleteDatabase
	NewDatabase
	DeleteTable
	NewTable
	RenameTable

	// Data types
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Decimal
	Boolean
	BitField
	ByteField
	CharField
	Date
	Time
	DateTime
	Interval
	Json
	Pointer
	Option
	Some
	None

	Identifier
	Eof
)

type TokenType int

var names = [...]string{
	LeftParen:        "LeftParen",
	RightParen:       "RightParen",
	LeftBrace:        "LeftBrace",
	RightBrace:       "RightBrace",
	LeftBracket:      "LeftBracket",
	RightBracket:     "RightBracket",
	Comma:            "Comma",
	Dot:              "Dot",
	Minus:            "Minus",
	Plus:             "Plus",
	Colon:            "Colon",
	Semicolon:        "Semicolon",
	Slash:            "Slash",
	Star:             "Star",
	Bang:             "Bang",
	BangEqual:        "BangEqual",
	Equal:            "Equal",
	EqualEqual:       "EqualEqual",
	Greater:          "Greater",
	GreaterEqual:     "GreaterEqual",
	Less:             "Less",
	LessEqual:        "LessEqual",
	Except:           "Except",
	ExceptAll:        "ExceptAll",
	Intersect:        "Intersect",
	IntersectAll:     "IntersectAll",
	Union:            "Union",
	UnionAll:         "UnionAll",
	Column:           "Column",
	Table:            "Table",
	Tables:           "Tables",
	Constraint:       "Constraint",
	Database:         "Database",
	Records:          "Records",
	Add:              "Add",
	Delete:           "Delete",
	Edit:             "Edit",
	Update:           "Update",
	Rename:           "Rename",
	New:              "New",
	Insert:           "Insert",
	Select:           "Select",
	Join:             "Join",
	AddColumn:        "AddColumn",
	DeleteColumn:     "DeleteColumn",
	EditColumn:       "EditColumn",
	RenameColumn:     "RenameColumn",
	AddConstraint:    "AddConstraint",
	DeleteConstraint: "DeleteConstraint",
	DeleteDatabase:   "DeleteDatabase",
	NewDatabase:      "NewDatabase",
	DeleteTable:      "DeleteTable",
	NewTable:         "NewTable",
	RenameTable:      "RenameTable",
	Int8:             "Int8",
	Int16:            "Int16",
	Int32:            "Int32",
	Int64:            "Int64",
	UInt8:            "UInt8",
	UInt16:           "UInt16",
	UInt32:           "UInt32",
	UInt64:           "UInt64",
	Float32:          "Float32",
	Float64:          "Float64",
	Decimal:          "Decimal",
	Boolean:          "Boolean",
	BitField:         "BitField",
	ByteField:        "ByteField",
	CharField:        "CharField",
	Date:             "Date",
	Time:             "Time",
	DateTime:         "DateTime",
	Interval:         "Interval",
	Json:             "Json",
	Pointer:          "Pointer",
	Option:           "Option",
	Some:             "Some",
	None:             "None",
	Identifier:       "Identifier",
	Eof:              "Eof",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsDataType reports whether t names a data type and so carries a literal.
func (t TokenType) IsDataType() bool {
	return t >= Int8 && t <= None
}

// IsStatementMarker reports whether t is one of the parser's synthesized statement kinds.
func (t TokenType) IsStatementMarker() bool {
	return t >= AddColumn && t <= RenameTable
}

type Token struct {
	Type   TokenType
	Lexeme string
	// Literal is set for data-type tokens whose value resolved successfully.
	Literal datatype.DataType
	Line    uint
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	if t.Lexeme == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
}

// Marker creates a statement marker token. Its lexeme is the marker's name.
func Marker(t TokenType, line uint) Token {
	return Token{Type: t, Lexeme: t.String(), Line: line}
}
