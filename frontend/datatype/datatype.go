// Package datatype models every literal and type DBIR can express.
//
// A DataType is either a bare type, which only declares a shape (for example
// the declared type of a column), or an instance, which carries a concrete
// value. IsInstance tells the two apart. Every variant renders back to the
// DBIR source that produces it, so String output can be fed to the lexer again.
package datatype

import (
	"fmt"
	"strings"
)

// DataType is implemented by every variant in this package and nothing else.
type DataType interface {
	// IsInstance reports whether the value carries a payload.
	IsInstance() bool
	// Equal reports structural equality with another DataType.
	Equal(other DataType) bool
	// Name is the DBIR keyword of the variant, such as "Int32" or "CharField".
	Name() string
	String() string

	dataType()
}

// Width is the storage size in bits of a numeric type.
type Width uint8

const (
	Bits8  Width = 8
	Bits16 Width = 16
	Bits32 Width = 32
	Bits64 Width = 64
)

// Equal reports whether a and b are both nil or structurally equal.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// As extracts variant T from dt.
func As[T DataType](dt DataType) (T, bool) {
	v, ok := dt.(T)
	return v, ok
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptr[T any](v T) *T {
	return &v
}

// bracket renders name[arg1, arg2, ...].
func bracket(name string, args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return name + "[" + strings.Join(parts, ", ") + "]"
}
