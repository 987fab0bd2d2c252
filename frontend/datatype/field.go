package datatype

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// A nil Value marks a bare field type. An empty, non-nil Value is an
// instance holding zero elements.

type BitField struct {
	Value     []bool
	Resizable bool
}

func (BitField) dataType() {}

func (f BitField) IsInstance() bool { return f.Value != nil }

func (BitField) Name() string { return "BitField" }

func (f BitField) Equal(other DataType) bool {
	o, ok := other.(BitField)
	return ok && f.Resizable == o.Resizable && equalElements(f.Value, o.Value)
}

func (f BitField) String() string {
	return fieldString(f.Name(), f.Value, f.Resizable, func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	})
}

type ByteField struct {
	Value     []byte
	Resizable bool
}

func (ByteField) dataType() {}

func (f ByteField) IsInstance() bool { return f.Value != nil }

func (ByteField) Name() string { return "ByteField" }

func (f ByteField) Equal(other DataType) bool {
	o, ok := other.(ByteField)
	return ok && f.Resizable == o.Resizable && equalElements(f.Value, o.Value)
}

func (f ByteField) String() string {
	return fieldString(f.Name(), f.Value, f.Resizable, func(b byte) string {
		return fmt.Sprintf("0x%02x", b)
	})
}

type CharField struct {
	Value     []rune
	Resizable bool
}

// NewCharField builds a CharField instance from s. An empty s gives an
// instance with no characters, not a bare type.
func NewCharField(s string, resizable bool) CharField {
	chars := []rune(s)
	if chars == nil {
		chars = []rune{}
	}
	return CharField{Value: chars, Resizable: resizable}
}

func (CharField) dataType() {}

func (f CharField) IsInstance() bool { return f.Value != nil }

func (CharField) Name() string { return "CharField" }

func (f CharField) Equal(other DataType) bool {
	o, ok := other.(CharField)
	return ok && f.Resizable == o.Resizable && equalElements(f.Value, o.Value)
}

func (f CharField) String() string {
	return fieldString(f.Name(), f.Value, f.Resizable, func(r rune) string {
		return "'" + string(r) + "'"
	})
}

// Text returns the characters joined into a string.
func (f CharField) Text() string {
	return string(f.Value)
}

func equalElements[E comparable](a, b []E) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return slices.Equal(a, b)
}

func fieldString[E any](name string, elems []E, resizable bool, format func(E) string) string {
	if elems == nil {
		return name
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = format(e)
	}
	return name + "[[" + strings.Join(parts, ", ") + "], " + strconv.FormatBool(resizable) + "]"
}
