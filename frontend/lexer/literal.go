package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thisisjab/dbir/fault"
	"github.com/thisisjab/dbir/frontend/datatype"
	"github.com/thisisjab/dbir/frontend/token"
)

var widths = map[token.TokenType]datatype.Width{
	token.Int8:    datatype.Bits8,
	token.Int16:   datatype.Bits16,
	token.Int32:   datatype.Bits32,
	token.Int64:   datatype.Bits64,
	token.UInt8:   datatype.Bits8,
	token.UInt16:  datatype.Bits16,
	token.UInt32:  datatype.Bits32,
	token.UInt64:  datatype.Bits64,
	token.Float32: datatype.Bits32,
	token.Float64: datatype.Bits64,
}

// resolveLiteral is called right after a data-type keyword. When no '['
// follows, the bare type is returned. Otherwise the bracketed body is
// consumed and an instance is built from it.
func (l *Lexer) resolveLiteral(typ token.TokenType) (datatype.DataType, error) {
	switch typ {
	case token.Int8, token.Int16, token.Int32, token.Int64:
		return l.resolveInt(widths[typ])
	case token.UInt8, token.UInt16, token.UInt32, token.UInt64:
		return l.resolveUInt(widths[typ])
	case token.Float32, token.Float64:
		return l.resolveFloat(widths[typ])
	case token.Decimal:
		return l.resolveDecimal()
	case token.Boolean:
		return l.resolveBoolean()
	case token.BitField:
		return l.resolveBitField()
	case token.ByteField:
		return l.resolveByteField()
	case token.CharField:
		return l.resolveCharField()
	case token.Date:
		return l.resolveDate()
	case token.Time:
		return l.resolveTime()
	case token.DateTime:
		return l.resolveDateTime()
	case token.Interval:
		return l.resolveInterval()
	case token.None:
		return datatype.None{}, nil
	case token.Json:
		return l.resolveUnsupported(datatype.Json{})
	case token.Pointer:
		return l.resolveUnsupported(datatype.Pointer{})
	case token.Option:
		return l.resolveUnsupported(datatype.Option{})
	case token.Some:
		if !l.openBracket() {
			return nil, l.failf("Some requires a value.")
		}
		return nil, fault.New(fault.UnsupportedCode, "Some literals are not supported yet.").AtLine(l.line)
	default:
		return nil, fmt.Errorf("lexer: no literal resolver for %s", typ)
	}
}

func (l *Lexer) resolveInt(w datatype.Width) (datatype.DataType, error) {
	bare := datatype.Int{Storage: w}
	if !l.openBracket() {
		return bare, nil
	}

	v, err := l.readInt(bare.Name(), int(w))
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(bare.Name()); err != nil {
		return nil, err
	}

	return datatype.NewInt(w, v), nil
}

func (l *Lexer) resolveUInt(w datatype.Width) (datatype.DataType, error) {
	bare := datatype.UInt{Storage: w}
	if !l.openBracket() {
		return bare, nil
	}

	v, err := l.readUint(bare.Name(), int(w))
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(bare.Name()); err != nil {
		return nil, err
	}

	return datatype.NewUInt(w, v), nil
}

func (l *Lexer) resolveFloat(w datatype.Width) (datatype.DataType, error) {
	bare := datatype.Float{Storage: w}
	if !l.openBracket() {
		return bare, nil
	}

	text := l.readField()
	v, err := strconv.ParseFloat(text, int(w))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, l.parseError(text, bare.Name())
	}
	if err := l.closeBracket(bare.Name()); err != nil {
		return nil, err
	}

	return datatype.NewFloat(w, v), nil
}

// resolveDecimal reads Decimal[value, precision, scale].
func (l *Lexer) resolveDecimal() (datatype.DataType, error) {
	const name = "Decimal"
	if !l.openBracket() {
		return datatype.Decimal{}, nil
	}

	text := l.readField()
	number, err := decimal.NewFromString(text)
	if err != nil {
		return nil, l.parseError(text, name)
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}
	precision, err := l.readUint(name+" precision", 31)
	if err != nil {
		return nil, err
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}
	scale, err := l.readUint(name+" scale", 31)
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	d := datatype.NewDecimal(number, uint(precision), uint(scale))
	if d.Value.Overflows() {
		l.warn(fault.Newf(fault.BadInputCode, "Decimal value %s does not fit precision %d and scale %d.", text, precision, scale).AtLine(l.line))
	}

	return d, nil
}

func (l *Lexer) resolveBoolean() (datatype.DataType, error) {
	const name = "Boolean"
	if !l.openBracket() {
		return datatype.Boolean{}, nil
	}

	v, err := l.readBool(name)
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	return datatype.NewBoolean(v), nil
}

func (l *Lexer) resolveBitField() (datatype.DataType, error) {
	const name = "BitField"
	if !l.openBracket() {
		return datatype.BitField{}, nil
	}

	bits := []bool{}
	err := l.readElements(name, func(text string) error {
		switch text {
		case "0":
			bits = append(bits, false)
		case "1":
			bits = append(bits, true)
		default:
			return l.parseError(text, "bit")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resizable, err := l.readResizable(name)
	if err != nil {
		return nil, err
	}

	return datatype.BitField{Value: bits, Resizable: resizable}, nil
}

func (l *Lexer) resolveByteField() (datatype.DataType, error) {
	const name = "ByteField"
	if !l.openBracket() {
		return datatype.ByteField{}, nil
	}

	bytes := []byte{}
	err := l.readElements(name, func(text string) error {
		b, err := strconv.ParseUint(text, 0, 8)
		if err != nil {
			return l.parseError(text, "byte")
		}
		bytes = append(bytes, byte(b))
		return nil
	})
	if err != nil {
		return nil, err
	}

	resizable, err := l.readResizable(name)
	if err != nil {
		return nil, err
	}

	return datatype.ByteField{Value: bytes, Resizable: resizable}, nil
}

func (l *Lexer) resolveCharField() (datatype.DataType, error) {
	const name = "CharField"
	if !l.openBracket() {
		return datatype.CharField{}, nil
	}

	chars := []rune{}
	err := l.readElements(name, func(text string) error {
		r := []rune(text)
		switch {
		case len(r) == 3 && r[0] == '\'' && r[2] == '\'':
			chars = append(chars, r[1])
		case len(r) == 1 && r[0] != '\'':
			chars = append(chars, r[0])
		default:
			return l.parseError(text, "char")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resizable, err := l.readResizable(name)
	if err != nil {
		return nil, err
	}

	return datatype.CharField{Value: chars, Resizable: resizable}, nil
}

// resolveDate reads Date[day, month, year].
func (l *Lexer) resolveDate() (datatype.DataType, error) {
	const name = "Date"
	if !l.openBracket() {
		return datatype.Date{}, nil
	}

	day, err := l.readUint(name+" day", 8)
	if err != nil {
		return nil, err
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}
	month, err := l.readUint(name+" month", 8)
	if err != nil {
		return nil, err
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}
	year, err := l.readInt(name+" year", 32)
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	d := datatype.NewDate(uint8(day), uint8(month), int32(year))
	if !d.Value.Valid() {
		return nil, l.failf("%s is not a valid calendar date.", d)
	}

	return d, nil
}

// resolveTime reads Time[hour, minute, second].
func (l *Lexer) resolveTime() (datatype.DataType, error) {
	const name = "Time"
	if !l.openBracket() {
		return datatype.Time{}, nil
	}

	var parts [3]uint64
	for i, part := range []string{"hour", "minute", "second"} {
		if i > 0 {
			if err := l.separator(name); err != nil {
				return nil, err
			}
		}
		v, err := l.readUint(name+" "+part, 8)
		if err != nil {
			return nil, err
		}
		parts[i] = v
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	t := datatype.NewTime(uint8(parts[0]), uint8(parts[1]), uint8(parts[2]))
	if !t.Value.Valid() {
		return nil, l.failf("%s is not a valid time of day.", t)
	}

	return t, nil
}

// resolveDateTime reads DateTime[Date[...], Time[...], with_timezone].
func (l *Lexer) resolveDateTime() (datatype.DataType, error) {
	const name = "DateTime"
	if !l.openBracket() {
		return datatype.DateTime{}, nil
	}

	if err := l.keyword(name, "Date"); err != nil {
		return nil, err
	}
	date, err := l.resolveDate()
	if err != nil {
		return nil, err
	}
	d := date.(datatype.Date)
	if !d.IsInstance() {
		return nil, l.failf("Expected a Date instance in %s literal, instead got a type.", name)
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}

	if err := l.keyword(name, "Time"); err != nil {
		return nil, err
	}
	tm, err := l.resolveTime()
	if err != nil {
		return nil, err
	}
	t := tm.(datatype.Time)
	if !t.IsInstance() {
		return nil, l.failf("Expected a Time instance in %s literal, instead got a type.", name)
	}
	if err := l.separator(name); err != nil {
		return nil, err
	}

	withTimezone, err := l.readBool(name + " timezone")
	if err != nil {
		return nil, err
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	return datatype.NewDateTime(*d.Value, *t.Value, withTimezone), nil
}

// resolveInterval reads Interval[years, months, days, hours, minutes, seconds].
func (l *Lexer) resolveInterval() (datatype.DataType, error) {
	const name = "Interval"
	if !l.openBracket() {
		return datatype.Interval{}, nil
	}

	v := &datatype.IntervalValue{}
	fields := []*int64{&v.Years, &v.Months, &v.Days, &v.Hours, &v.Minutes, &v.Seconds}
	for i, field := range fields {
		if i > 0 {
			if err := l.separator(name); err != nil {
				return nil, err
			}
		}
		n, err := l.readInt(name, 64)
		if err != nil {
			return nil, err
		}
		*field = n
	}
	if err := l.closeBracket(name); err != nil {
		return nil, err
	}

	return datatype.Interval{Value: v}, nil
}

// resolveUnsupported handles the families whose bracketed form has no
// resolver yet. Their bare types are still accepted.
func (l *Lexer) resolveUnsupported(bare datatype.DataType) (datatype.DataType, error) {
	if !l.openBracket() {
		return bare, nil
	}
	return nil, fault.Newf(fault.UnsupportedCode, "%s literals are not supported yet.", bare.Name()).AtLine(l.line)
}

// readElements reads a bracketed, comma separated element list and hands
// each element's text to parse.
func (l *Lexer) readElements(name string, parse func(text string) error) error {
	l.skipWhitespace()
	if l.peek() != '[' {
		return l.unexpected('[', name)
	}
	l.openBracket()

	l.skipWhitespace()
	if l.peek() == ']' {
		return l.closeBracket(name)
	}

	for {
		if err := parse(l.readElement()); err != nil {
			return err
		}

		l.skipWhitespace()
		switch l.peek() {
		case ',':
			l.advance()
		case ']':
			return l.closeBracket(name)
		default:
			return l.unexpected(']', name)
		}
	}
}

// readElement reads one array element. A single-quoted element is read as
// exactly one character so that quoted delimiters such as ',' survive.
func (l *Lexer) readElement() string {
	l.skipWhitespace()
	if l.peek() != '\'' {
		return l.readField()
	}

	start := l.current
	l.advance()
	if !l.atEnd() {
		if l.advance() == '\n' {
			l.line++
		}
	}
	if l.peek() == '\'' {
		l.advance()
	}

	return string(l.input[start:l.current])
}

// readResizable reads the trailing ", resizable]" of a field literal.
func (l *Lexer) readResizable(name string) (bool, error) {
	if err := l.separator(name); err != nil {
		return false, err
	}
	resizable, err := l.readBool(name + " resizable flag")
	if err != nil {
		return false, err
	}
	if err := l.closeBracket(name); err != nil {
		return false, err
	}
	return resizable, nil
}

// readField reads everything up to the next delimiter and returns it
// without surrounding whitespace. The delimiter is not consumed.
func (l *Lexer) readField() string {
	l.skipWhitespace()

	start := l.current
	for !l.atEnd() {
		c := l.peek()
		if c == ',' || c == '[' || c == ']' {
			break
		}
		if c == '\n' {
			l.line++
		}
		l.advance()
	}

	return strings.TrimSpace(string(l.input[start:l.current]))
}

func (l *Lexer) readInt(target string, bits int) (int64, error) {
	text := l.readField()
	v, err := strconv.ParseInt(text, 10, bits)
	if err != nil {
		return 0, l.parseError(text, target)
	}
	return v, nil
}

func (l *Lexer) readUint(target string, bits int) (uint64, error) {
	text := l.readField()
	v, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return 0, l.parseError(text, target)
	}
	return v, nil
}

func (l *Lexer) readBool(target string) (bool, error) {
	text := l.readField()
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, l.parseError(text, target)
	}
}

// keyword reads an identifier run and checks it is want.
func (l *Lexer) keyword(name, want string) error {
	l.skipWhitespace()

	start := l.current
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	if got := string(l.input[start:l.current]); got != want {
		return l.failf("Expected '%s' in %s literal, instead got '%s'.", want, name, got)
	}
	return nil
}

func (l *Lexer) openBracket() bool {
	if l.peek() != '[' {
		return false
	}
	l.advance()
	l.depth++
	return true
}

func (l *Lexer) closeBracket(name string) error {
	l.skipWhitespace()
	if l.peek() != ']' {
		return l.unexpected(']', name)
	}
	l.advance()
	l.depth--
	return nil
}

func (l *Lexer) separator(name string) error {
	l.skipWhitespace()
	if l.peek() != ',' {
		return l.unexpected(',', name)
	}
	l.advance()
	return nil
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.peek()) {
		if l.advance() == '\n' {
			l.line++
		}
	}
}

// skipLiteral skips the rest of an abandoned literal, up to the bracket that
// balances the ones it already opened.
func (l *Lexer) skipLiteral() {
	for l.depth > 0 && !l.atEnd() {
		switch l.advance() {
		case '[':
			l.depth++
		case ']':
			l.depth--
		case '\n':
			l.line++
		}
	}
	l.depth = 0
}

func (l *Lexer) parseError(text, target string) error {
	return l.failf("Failed to parse '%s' as %s.", text, target)
}

func (l *Lexer) unexpected(want rune, name string) error {
	if l.atEnd() {
		return l.failf("Expected '%c' in %s literal, instead got end of input.", want, name)
	}
	return l.failf("Expected '%c' in %s literal, instead got '%c'.", want, name, l.peek())
}
