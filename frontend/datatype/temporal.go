package datatype

import (
	"strconv"
	"time"
)

type DateValue struct {
	Day   uint8
	Month uint8
	Year  int32
}

// Valid reports whether the date exists in the proleptic Gregorian calendar.
func (v DateValue) Valid() bool {
	if v.Month < 1 || v.Month > 12 || v.Day < 1 {
		return false
	}
	t := time.Date(int(v.Year), time.Month(v.Month), int(v.Day), 0, 0, 0, 0, time.UTC)
	return t.Day() == int(v.Day) && int(t.Month()) == int(v.Month)
}

func (v DateValue) String() string {
	return bracket("Date", v.Day, v.Month, v.Year)
}

type Date struct {
	Value *DateValue
}

func NewDate(day, month uint8, year int32) Date {
	return Date{Value: &DateValue{Day: day, Month: month, Year: year}}
}

func (Date) dataType() {}

func (d Date) IsInstance() bool { return d.Value != nil }

func (Date) Name() string { return "Date" }

func (d Date) Equal(other DataType) bool {
	o, ok := other.(Date)
	return ok && equalPtr(d.Value, o.Value)
}

func (d Date) String() string {
	if d.Value == nil {
		return d.Name()
	}
	return d.Value.String()
}

type TimeValue struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

func (v TimeValue) Valid() bool {
	return v.Hour < 24 && v.Minute < 60 && v.Second < 60
}

func (v TimeValue) String() string {
	return bracket("Time", v.Hour, v.Minute, v.Second)
}

type Time struct {
	Value *TimeValue
}

func NewTime(hour, minute, second uint8) Time {
	return Time{Value: &TimeValue{Hour: hour, Minute: minute, Second: second}}
}

func (Time) dataType() {}

func (t Time) IsInstance() bool { return t.Value != nil }

func (Time) Name() string { return "Time" }

func (t Time) Equal(other DataType) bool {
	o, ok := other.(Time)
	return ok && equalPtr(t.Value, o.Value)
}

func (t Time) String() string {
	if t.Value == nil {
		return t.Name()
	}
	return t.Value.String()
}

type DateTimeValue struct {
	Date DateValue
	Time TimeValue
	// WithTimezone marks a timestamp that is stored together with its zone.
	WithTimezone bool
}

type DateTime struct {
	Value *DateTimeValue
}

func NewDateTime(date DateValue, tm TimeValue, withTimezone bool) DateTime {
	return DateTime{Value: &DateTimeValue{Date: date, Time: tm, WithTimezone: withTimezone}}
}

func (DateTime) dataType() {}

func (d DateTime) IsInstance() bool { return d.Value != nil }

func (DateTime) Name() string { return "DateTime" }

func (d DateTime) Equal(other DataType) bool {
	o, ok := other.(DateTime)
	return ok && equalPtr(d.Value, o.Value)
}

func (d DateTime) String() string {
	if d.Value == nil {
		return d.Name()
	}
	return bracket(d.Name(), d.Value.Date, d.Value.Time, strconv.FormatBool(d.Value.WithTimezone))
}

// IntervalValue holds signed deltas. Components are not normalized, so
// 90 minutes and 1 hour 30 minutes are different intervals.
type IntervalValue struct {
	Years   int64
	Months  int64
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

type Interval struct {
	Value *IntervalValue
}

func (Interval) dataType() {}

func (i Interval) IsInstance() bool { return i.Value != nil }

func (Interval) Name() string { return "Interval" }

func (i Interval) Equal(other DataType) bool {
	o, ok := other.(Interval)
	return ok && equalPtr(i.Value, o.Value)
}

func (i Interval) String() string {
	if i.Value == nil {
		return i.Name()
	}
	v := i.Value
	return bracket(i.Name(), v.Years, v.Months, v.Days, v.Hours, v.Minutes, v.Seconds)
}
