package datatype

import "strconv"

type Json struct {
	Value *string
}

func (Json) dataType() {}

func (j Json) IsInstance() bool { return j.Value != nil }

func (Json) Name() string { return "Json" }

func (j Json) Equal(other DataType) bool {
	o, ok := other.(Json)
	return ok && equalPtr(j.Value, o.Value)
}

func (j Json) String() string {
	if j.Value == nil {
		return j.Name()
	}
	return bracket(j.Name(), strconv.Quote(*j.Value))
}

// Option is a bare type when Value is nil. An instance holds either Some or None.
type Option struct {
	Value DataType
}

func (Option) dataType() {}

func (o Option) IsInstance() bool { return o.Value != nil }

func (Option) Name() string { return "Option" }

func (o Option) Equal(other DataType) bool {
	x, ok := other.(Option)
	return ok && Equal(o.Value, x.Value)
}

func (o Option) String() string {
	if o.Value == nil {
		return o.Name()
	}
	return bracket(o.Name(), o.Value)
}

// Some always wraps a value.
type Some struct {
	Value DataType
}

func (Some) dataType() {}

func (Some) IsInstance() bool { return true }

func (Some) Name() string { return "Some" }

func (s Some) Equal(other DataType) bool {
	x, ok := other.(Some)
	return ok && Equal(s.Value, x.Value)
}

func (s Some) String() string {
	return bracket(s.Name(), s.Value)
}

// None is the empty option. All None values are equal.
type None struct{}

func (None) dataType() {}

func (None) IsInstance() bool { return true }

func (None) Name() string { return "None" }

func (None) Equal(other DataType) bool {
	_, ok := other.(None)
	return ok
}

func (n None) String() string { return n.Name() }

// Pointer is an instance exactly when its pointee is.
type Pointer struct {
	Value DataType
}

func (Pointer) dataType() {}

func (p Pointer) IsInstance() bool { return p.Value != nil && p.Value.IsInstance() }

func (Pointer) Name() string { return "Pointer" }

func (p Pointer) Equal(other DataType) bool {
	x, ok := other.(Pointer)
	return ok && Equal(p.Value, x.Value)
}

func (p Pointer) String() string {
	if p.Value == nil {
		return p.Name()
	}
	return bracket(p.Name(), p.Value)
}
