package datatype

import (
	"fmt"
	"math"
	"strconv"
)

// floatTolerance is the largest difference at which two float instances are equal.
const floatTolerance = 1e-6

type Int struct {
	Storage Width
	Value   *int64
}

func NewInt(storage Width, v int64) Int {
	return Int{Storage: storage, Value: ptr(v)}
}

func (Int) dataType() {}

func (i Int) IsInstance() bool { return i.Value != nil }

func (i Int) Name() string { return fmt.Sprintf("Int%d", i.Storage) }

func (i Int) Equal(other DataType) bool {
	o, ok := other.(Int)
	return ok && i.Storage == o.Storage && equalPtr(i.Value, o.Value)
}

func (i Int) String() string {
	if i.Value == nil {
		return i.Name()
	}
	return bracket(i.Name(), *i.Value)
}

type UInt struct {
	Storage Width
	Value   *uint64
}

func NewUInt(storage Width, v uint64) UInt {
	return UInt{Storage: storage, Value: ptr(v)}
}

func (UInt) dataType() {}

func (u UInt) IsInstance() bool { return u.Value != nil }

func (u UInt) Name() string { return fmt.Sprintf("UInt%d", u.Storage) }

func (u UInt) Equal(other DataType) bool {
	o, ok := other.(UInt)
	return ok && u.Storage == o.Storage && equalPtr(u.Value, o.Value)
}

func (u UInt) String() string {
	if u.Value == nil {
		return u.Name()
	}
	return bracket(u.Name(), *u.Value)
}

// Float holds both Float32 and Float64 values widened to float64.
type Float struct {
	Storage Width
	Value   *float64
}

func NewFloat(storage Width, v float64) Float {
	return Float{Storage: storage, Value: ptr(v)}
}

func (Float) dataType() {}

func (f Float) IsInstance() bool { return f.Value != nil }

func (f Float) Name() string { return fmt.Sprintf("Float%d", f.Storage) }

func (f Float) Equal(other DataType) bool {
	o, ok := other.(Float)
	if !ok || f.Storage != o.Storage {
		return false
	}
	if f.Value == nil || o.Value == nil {
		return f.Value == nil && o.Value == nil
	}
	return math.Abs(*f.Value-*o.Value) <= floatTolerance
}

func (f Float) String() string {
	if f.Value == nil {
		return f.Name()
	}
	return bracket(f.Name(), strconv.FormatFloat(*f.Value, 'g', -1, int(f.Storage)))
}

type Boolean struct {
	Value *bool
}

func NewBoolean(v bool) Boolean {
	return Boolean{Value: ptr(v)}
}

func (Boolean) dataType() {}

func (b Boolean) IsInstance() bool { return b.Value != nil }

func (Boolean) Name() string { return "Boolean" }

func (b Boolean) Equal(other DataType) bool {
	o, ok := other.(Boolean)
	return ok && equalPtr(b.Value, o.Value)
}

func (b Boolean) String() string {
	if b.Value == nil {
		return b.Name()
	}
	return bracket(b.Name(), *b.Value)
}

// Bool returns the boolean value, or def when b is a bare type.
func (b Boolean) Bool(def bool) bool {
	if b.Value == nil {
		return def
	}
	return *b.Value
}
