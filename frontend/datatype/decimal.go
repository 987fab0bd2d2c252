package datatype

import (
	"math"

	"github.com/shopspring/decimal"
)

// DecimalValue is the payload of a Decimal instance. Precision is the total
// number of significant digits and Scale the number of fractional digits.
type DecimalValue struct {
	Number    decimal.Decimal
	Precision uint
	Scale     uint
}

type Decimal struct {
	Value *DecimalValue
}

func NewDecimal(number decimal.Decimal, precision, scale uint) Decimal {
	return Decimal{Value: &DecimalValue{Number: number, Precision: precision, Scale: scale}}
}

func (Decimal) dataType() {}

func (d Decimal) IsInstance() bool { return d.Value != nil }

func (Decimal) Name() string { return "Decimal" }

func (d Decimal) Equal(other DataType) bool {
	o, ok := other.(Decimal)
	if !ok {
		return false
	}
	if d.Value == nil || o.Value == nil {
		return d.Value == nil && o.Value == nil
	}
	return d.Value.Number.Equal(o.Value.Number) &&
		d.Value.Precision == o.Value.Precision &&
		d.Value.Scale == o.Value.Scale
}

func (d Decimal) String() string {
	if d.Value == nil {
		return d.Name()
	}
	return bracket(d.Name(), d.Value.Number.String(), d.Value.Precision, d.Value.Scale)
}

// Overflows reports whether the number needs more fractional digits than
// Scale, or more integer digits than Precision-Scale allows.
func (v DecimalValue) Overflows() bool {
	if v.Scale > v.Precision {
		return true
	}
	// A scale past MaxInt32 holds any fractional part.
	if v.Scale <= math.MaxInt32 && !v.Number.Equal(v.Number.Truncate(int32(v.Scale))) {
		return true
	}
	integerDigits := len(v.Number.Abs().Truncate(0).String())
	if v.Number.Abs().LessThan(decimal.NewFromInt(1)) {
		integerDigits = 0
	}
	return uint(integerDigits) > v.Precision-v.Scale
}
