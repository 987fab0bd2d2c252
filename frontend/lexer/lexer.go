package lexer

import (
	"github.com/thisisjab/dbir/fault"
	"github.com/thisisjab/dbir/frontend/diagnostic"
	"github.com/thisisjab/dbir/frontend/token"
)

type Lexer struct {
	input   []rune
	start   int  // first character of the token being scanned
	current int  // next character to be read
	line    uint // line of the character at current
	depth   int  // brackets opened by the literal being resolved

	tokens   []token.Token
	scanned  bool
	reporter diagnostic.Reporter
}

var keywords = map[string]token.TokenType{
	"except":        token.Except,
	"except_all":    token.ExceptAll,
	"intersect":     token.Intersect,
	"intersect_all": token.IntersectAll,
	"union":         token.Union,
	"union_all":     token.UnionAll,

	"Column":     token.Column,
	"Table":      token.Table,
	"Tables":     token.Tables,
	"Constraint": token.Constraint,
	"Database":   token.Database,
	"Records":    token.Records,

	"Add":    token.Add,
	"Delete": token.Delete,
	"Edit":   token.Edit,
	"Update": token.Update,
	"Rename": token.Rename,
	"New":    token.New,
	"Insert": token.Insert,
	"Select": token.Select,
	"Join":   token.Join,

	"Int8":      token.Int8,
	"Int16":     token.Int16,
	"Int32":     token.Int32,
	"Int64":     token.Int64,
	"UInt8":     token.UInt8,
	"UInt16":    token.UInt16,
	"UInt32":    token.UInt32,
	"UInt64":    token.UInt64,
	"Float32":   token.Float32,
	"Float64":   token.Float64,
	"Decimal":   token.Decimal,
	"Boolean":   token.Boolean,
	"BitField":  token.BitField,
	"ByteField": token.ByteField,
	"CharField": token.CharField,
	"Date":      token.Date,
	"Time":      token.Time,
	"DateTime":  token.DateTime,
	"Interval":  token.Interval,
	"Json":      token.Json,
	"Pointer":   token.Pointer,
	"Option":    token.Option,
	"Some":      token.Some,
	"None":      token.None,
}

// New creates a lexer over input. Diagnostics go to reporter; a nil
// reporter discards them.
func New(input string, reporter diagnostic.Reporter) *Lexer {
	if reporter == nil {
		reporter = diagnostic.NewCollector()
	}
	return &Lexer{input: []rune(input), line: 1, reporter: reporter}
}

// Scan tokenizes the whole input. The result always ends with exactly one
// Eof token. Calling Scan again returns the same tokens.
func (l *Lexer) Scan() []token.Token {
	if l.scanned {
		return l.tokens
	}

	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, token.Token{Type: token.Eof, Line: l.line})
	l.scanned = true

	return l.tokens
}

func (l *Lexer) scanToken() {
	c := l.advance()

	switch c {
	case '(':
		l.addToken(token.LeftParen)
	case ')':
		l.addToken(token.RightParen)
	case '{':
		l.addToken(token.LeftBrace)
	case '}':
		l.addToken(token.RightBrace)
	case '[':
		l.addToken(token.LeftBracket)
	case ']':
		l.addToken(token.RightBracket)
	case ',':
		l.addToken(token.Comma)
	case '.':
		l.addToken(token.Dot)
	case '-':
		l.addToken(token.Minus)
	case '+':
		l.addToken(token.Plus)
	case ':':
		l.addToken(token.Colon)
	case ';':
		l.addToken(token.Semicolon)
	case '/':
		l.addToken(token.Slash)
	case '*':
		l.addToken(token.Star)
	case '!':
		l.addToken(l.either('=', token.BangEqual, token.Bang))
	case '=':
		l.addToken(l.either('=', token.EqualEqual, token.Equal))
	case '>':
		l.addToken(l.either('=', token.GreaterEqual, token.Greater))
	case '<':
		l.addToken(l.either('=', token.LessEqual, token.Less))
	case ' ', '\t', '\r':
	case '\n':
		l.line++
	default:
		if isAlphaNumeric(c) {
			l.readIdentifier()
			return
		}
		l.report(l.failf("Unexpected character '%c'.", c))
	}
}

func (l *Lexer) readIdentifier() {
	line := l.line

	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	typ := lookupIdent(string(l.input[l.start:l.current]))
	if !typ.IsDataType() {
		l.addToken(typ)
		return
	}

	literal, err := l.resolveLiteral(typ)
	if err != nil {
		l.report(err)
		l.skipLiteral()
	}

	l.tokens = append(l.tokens, token.Token{
		Type:    typ,
		Lexeme:  string(l.input[l.start:l.current]),
		Literal: literal,
		Line:    line,
	})
}

func lookupIdent(ident string) token.TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return token.Identifier
}

func (l *Lexer) addToken(typ token.TokenType) {
	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Lexeme: string(l.input[l.start:l.current]),
		Line:   l.line,
	})
}

// either consumes next and returns matched when it is the following character.
func (l *Lexer) either(next rune, matched, otherwise token.TokenType) token.TokenType {
	if l.peek() == next {
		l.advance()
		return matched
	}
	return otherwise
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.input)
}

func (l *Lexer) advance() rune {
	c := l.input[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.input[l.current]
}

func (l *Lexer) report(err error) {
	l.reporter.Report(diagnostic.Diagnostic{Line: l.line, Severity: diagnostic.SeverityError, Err: err})
}

func (l *Lexer) warn(err error) {
	l.reporter.Report(diagnostic.Diagnostic{Line: l.line, Severity: diagnostic.SeverityWarning, Err: err})
}

func (l *Lexer) failf(format string, args ...any) error {
	return fault.Newf(fault.BadInputCode, format, args...).AtLine(l.line)
}

func isAlphaNumeric(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
