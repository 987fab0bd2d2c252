package datatype

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsInstance(t *testing.T) {
	tests := []struct {
		value    DataType
		instance bool
	}{
		{Int{Storage: Bits32}, false},
		{NewInt(Bits32, 456), true},
		{UInt{Storage: Bits8}, false},
		{NewUInt(Bits8, 255), true},
		{Float{Storage: Bits64}, false},
		{NewFloat(Bits64, 1.5), true},
		{Decimal{}, false},
		{NewDecimal(decimal.RequireFromString("1.5"), 5, 2), true},
		{Boolean{}, false},
		{NewBoolean(false), true},
		{CharField{}, false},
		{NewCharField("", false), true},
		{BitField{Value: []bool{}}, true},
		{ByteField{Resizable: true}, false},
		{Date{}, false},
		{NewDate(17, 4, 2021), true},
		{Time{}, false},
		{DateTime{}, false},
		{Interval{Value: &IntervalValue{Days: 1}}, true},
		{Json{}, false},
		{Option{}, false},
		{Option{Value: None{}}, true},
		{Some{Value: NewInt(Bits8, 1)}, true},
		{None{}, true},
		{Pointer{}, false},
		{Pointer{Value: Int{Storage: Bits32}}, false},
		{Pointer{Value: NewInt(Bits32, 5)}, true},
	}

	for i, tt := range tests {
		if got := tt.value.IsInstance(); got != tt.instance {
			t.Fatalf("#%d - expected %s IsInstance() to be %v, got %v", i, tt.value, tt.instance, got)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  DataType
		equal bool
	}{
		{NewInt(Bits32, 5), NewInt(Bits32, 5), true},
		{NewInt(Bits32, 5), NewInt(Bits64, 5), false},
		{NewInt(Bits32, 5), Int{Storage: Bits32}, false},
		{Int{Storage: Bits32}, Int{Storage: Bits32}, true},
		{NewInt(Bits8, 1), NewUInt(Bits8, 1), false},
		{NewFloat(Bits64, 1.0), NewFloat(Bits64, 1.0000005), true},
		{NewFloat(Bits64, 1.0), NewFloat(Bits64, 1.00001), false},
		{NewFloat(Bits32, 1.0), NewFloat(Bits64, 1.0), false},
		{Float{Storage: Bits32}, NewFloat(Bits32, 0), false},
		{NewDecimal(decimal.RequireFromString("1.50"), 5, 2), NewDecimal(decimal.RequireFromString("1.5"), 5, 2), true},
		{NewDecimal(decimal.RequireFromString("1.5"), 5, 2), NewDecimal(decimal.RequireFromString("1.5"), 6, 2), false},
		{NewBoolean(true), NewBoolean(true), true},
		{NewBoolean(true), Boolean{}, false},
		{NewCharField("ab", false), NewCharField("ab", false), true},
		{NewCharField("ab", false), NewCharField("ab", true), false},
		{NewCharField("", false), CharField{}, false},
		{CharField{}, CharField{}, true},
		{BitField{Value: []bool{true, false}}, BitField{Value: []bool{true, false}}, true},
		{ByteField{Value: []byte{1}}, ByteField{Value: []byte{2}}, false},
		{NewDate(1, 2, 2000), NewDate(1, 2, 2000), true},
		{NewDate(1, 2, 2000), NewDate(2, 1, 2000), false},
		{NewDateTime(DateValue{1, 1, 2000}, TimeValue{1, 2, 3}, true), NewDateTime(DateValue{1, 1, 2000}, TimeValue{1, 2, 3}, true), true},
		{NewDateTime(DateValue{1, 1, 2000}, TimeValue{1, 2, 3}, true), NewDateTime(DateValue{1, 1, 2000}, TimeValue{1, 2, 3}, false), false},
		{None{}, None{}, true},
		{None{}, Option{}, false},
		{Option{Value: None{}}, Option{Value: None{}}, true},
		{Option{Value: Some{Value: NewInt(Bits8, 1)}}, Option{Value: None{}}, false},
		{Some{Value: NewInt(Bits8, 1)}, Some{Value: NewInt(Bits8, 1)}, true},
		{Pointer{Value: NewInt(Bits32, 5)}, Pointer{Value: NewInt(Bits32, 5)}, true},
		{Pointer{Value: NewInt(Bits32, 5)}, NewInt(Bits32, 5), false},
		{Pointer{}, Pointer{}, true},
	}

	for i, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.equal {
			t.Fatalf("#%d - expected %s.Equal(%s) to be %v, got %v", i, tt.a, tt.b, tt.equal, got)
		}
		if got := tt.b.Equal(tt.a); got != tt.equal {
			t.Fatalf("#%d - expected equality to be symmetric for %s and %s", i, tt.a, tt.b)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		value    DataType
		expected string
	}{
		{Int{Storage: Bits32}, "Int32"},
		{NewInt(Bits32, -456), "Int32[-456]"},
		{NewUInt(Bits64, 18446744073709551615), "UInt64[18446744073709551615]"},
		{NewFloat(Bits32, 0.25), "Float32[0.25]"},
		{NewDecimal(decimal.RequireFromString("1.50"), 5, 2), "Decimal[1.5, 5, 2]"},
		{NewBoolean(true), "Boolean[true]"},
		{NewCharField("db", true), "CharField[['d', 'b'], true]"},
		{NewCharField("", false), "CharField[[], false]"},
		{BitField{Value: []bool{true, false}}, "BitField[[1, 0], false]"},
		{ByteField{Value: []byte{15, 255}}, "ByteField[[0x0f, 0xff], false]"},
		{NewDate(17, 4, 2021), "Date[17, 4, 2021]"},
		{NewTime(12, 30, 0), "Time[12, 30, 0]"},
		{NewDateTime(DateValue{17, 4, 2021}, TimeValue{12, 30, 0}, true), "DateTime[Date[17, 4, 2021], Time[12, 30, 0], true]"},
		{Interval{Value: &IntervalValue{1, 2, 3, 4, 5, -6}}, "Interval[1, 2, 3, 4, 5, -6]"},
		{Pointer{Value: Option{Value: Some{Value: NewInt(Bits32, 5)}}}, "Pointer[Option[Some[Int32[5]]]]"},
		{None{}, "None"},
	}

	for i, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Fatalf("#%d - expected `%s`, got `%s`", i, tt.expected, got)
		}
	}
}

func TestDateValid(t *testing.T) {
	tests := map[DateValue]bool{
		{Day: 29, Month: 2, Year: 2024}: true,
		{Day: 29, Month: 2, Year: 2023}: false,
		{Day: 31, Month: 4, Year: 2021}: false,
		{Day: 0, Month: 1, Year: 2021}:  false,
		{Day: 1, Month: 13, Year: 2021}: false,
		{Day: 31, Month: 12, Year: -44}: true,
	}

	for v, expected := range tests {
		if v.Valid() != expected {
			t.Fatalf("expected %s Valid() to be %v", v, expected)
		}
	}
}

func TestDecimalOverflows(t *testing.T) {
	tests := []struct {
		number    string
		precision uint
		scale     uint
		overflows bool
	}{
		{"1.5", 5, 2, false},
		{"1.555", 5, 2, true},
		{"123.45", 5, 2, false},
		{"1234.5", 5, 2, true},
		{"0.5", 1, 1, false},
		{"-12.3", 3, 1, false},
		{"1", 1, 2, true},
		{"0.5", math.MaxUint32, math.MaxUint32, false},
		{"1.5", math.MaxUint32, math.MaxInt32 + 1, false},
	}

	for i, tt := range tests {
		v := DecimalValue{Number: decimal.RequireFromString(tt.number), Precision: tt.precision, Scale: tt.scale}
		if got := v.Overflows(); got != tt.overflows {
			t.Fatalf("#%d - expected Overflows() of %s to be %v, got %v", i, tt.number, tt.overflows, got)
		}
	}
}

func TestAs(t *testing.T) {
	var dt DataType = NewBoolean(true)

	if _, ok := As[Int](dt); ok {
		t.Fatalf("expected Boolean not to be extracted as Int")
	}
	b, ok := As[Boolean](dt)
	if !ok || !b.Bool(false) {
		t.Fatalf("expected Boolean[true] to be extracted, got %v", b)
	}
	if _, ok := As[DataType](dt); !ok {
		t.Fatalf("expected any variant to satisfy DataType")
	}
}
