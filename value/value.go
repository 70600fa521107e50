package value

import (
	"math"
	"strconv"
)

// The lox value interface every value stored in any variable
// must be of this type(implement this interface).
type Value interface {
	String() string
	LoxValueMarkerFunc()
}

// Primitve value types, that are: Nil, Boolean, Number and String are
// defined as in terms of go primitive types and are stored by value.
// For objects see golox/object, they are stored as pointers.

type Nil struct{}
type Boolean bool
type Number float64
type String string

// Implement the value.Value interface for primitive types.
// --------------------------------------------------------
func (Nil) LoxValueMarkerFunc()     {}
func (Boolean) LoxValueMarkerFunc() {}
func (Number) LoxValueMarkerFunc()  {}
func (String) LoxValueMarkerFunc()  {}

func (n Nil) String() string {
	return "nil"
}

func (b Boolean) String() string {
	if b {
		return "true"
	} else {
		return "false"
	}
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (s String) String() string {
	return string(s)
}

// --------------------------------------------------------

// Stringify formats a value the way print and string concatenation show it.
func Stringify(v Value) string {
	if v == nil {
		return Nil{}.String()
	}
	return v.String()
}

// Logical operations for value.
// --------------------------------------------------------

// Truthiness: nil, false and "" are falsy. A number is falsy when its
// integer truncation is zero, so 0.5 is falsy as well.
func Truthiness(s Value) Boolean {
	switch v := s.(type) {
	case nil, Nil:
		return false
	case Boolean:
		return v
	case String:
		return v != ""
	case Number:
		if math.IsNaN(float64(v)) {
			return false
		}
		return math.Trunc(float64(v)) != 0

	default:
		return true
	}
}

func LessThan(s, t Value) (Boolean, bool) {
	switch u := s.(type) {
	case Number:
		switch v := t.(type) {
		case Number:
			return u < v, true
		}

	case String:
		switch v := t.(type) {
		case String:
			return u < v, true
		}
	}

	return false, false
}

func LessEqual(s, t Value) (Boolean, bool) {
	switch u := s.(type) {
	case Number:
		switch v := t.(type) {
		case Number:
			return u <= v, true
		}

	case String:
		switch v := t.(type) {
		case String:
			return u <= v, true
		}
	}

	return false, false
}

func GreaterThan(s, t Value) (Boolean, bool) {
	return LessThan(t, s)
}

func GreaterEqual(s, t Value) (Boolean, bool) {
	return LessEqual(t, s)
}

func EqualTo(s, t Value) Boolean {
	// Two *Values* are equal only if their types and stored values are equal.
	// For primitive types this works fine since they are stored as values.
	// For object types which are stored as pointers in the Value, this also
	// works fine since two objects are considered equal only if they point
	// to the same underlying object.
	if s == nil {
		s = Nil{}
	}
	if t == nil {
		t = Nil{}
	}
	return s == t
}

// Mathematical operations for value.
// The boolean result is false if the operand types are not accepted.
// --------------------------------------------------------
func Neg(s Value) (Value, bool) {
	switch u := s.(type) {
	case Number:
		return -u, true
	}

	return nil, false
}

// Add sums two numbers or concatenates when either operand is a string,
// the other one being stringified.
func Add(s, t Value) (Value, bool) {
	switch u := s.(type) {
	case Number:
		switch v := t.(type) {
		case Number:
			return u + v, true
		case String:
			return String(u.String()) + v, true
		}

	case String:
		return u + String(Stringify(t)), true
	}

	if v, ok := t.(String); ok {
		return String(Stringify(s)) + v, true
	}

	return nil, false
}

func Sub(s, t Value) (Value, bool) {
	if u, v, ok := numbers(s, t); ok {
		return u - v, true
	}
	return nil, false
}

func Mul(s, t Value) (Value, bool) {
	if u, v, ok := numbers(s, t); ok {
		return u * v, true
	}
	return nil, false
}

// Div does not check for a zero divisor, the interpreter reports that.
func Div(s, t Value) (Value, bool) {
	if u, v, ok := numbers(s, t); ok {
		return u / v, true
	}
	return nil, false
}

func numbers(s, t Value) (Number, Number, bool) {
	u, e := s.(Number)
	v, f := t.(Number)
	return u, v, e && f
}
