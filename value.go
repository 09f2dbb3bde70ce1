package relq

import "fmt"

// DataType enumerates the column types a Schema can describe.
type DataType int

const (
	// TypeInt is a signed 64-bit integer column.
	TypeInt DataType = iota

	// TypeFloat is a 64-bit floating point column.
	TypeFloat

	// TypeString is a variable-length UTF-8 string column.
	TypeString

	// TypeBool is a single-byte boolean column.
	TypeBool
)

func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("datatype(%d)", int(t))
	}
}

// Value is a single typed column value flowing through expressions,
// tuples, and rows. Null is represented by Valid == false.
type Value struct {
	Type  DataType
	Valid bool
	I     int64
	F     float64
	S     string
	B     bool
}

// NullValue returns a null Value of the given type.
func NullValue(t DataType) Value {
	return Value{Type: t, Valid: false}
}

// IntValue returns a non-null int Value.
func IntValue(v int64) Value {
	return Value{Type: TypeInt, Valid: true, I: v}
}

// FloatValue returns a non-null float Value.
func FloatValue(v float64) Value {
	return Value{Type: TypeFloat, Valid: true, F: v}
}

// StringValue returns a non-null string Value.
func StringValue(v string) Value {
	return Value{Type: TypeString, Valid: true, S: v}
}

// BoolValue returns a non-null bool Value.
func BoolValue(v bool) Value {
	return Value{Type: TypeBool, Valid: true, B: v}
}

// Float returns v's numeric value as a float64, coercing Int; ok is false
// for null values and for non-numeric types. Used by comparison/arithmetic
// evaluation which treats Int and Float as mutually comparable.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	switch v.Type {
	case TypeInt:
		return float64(v.I), true
	case TypeFloat:
		return v.F, true
	default:
		return 0, false
	}
}

// Equal reports whether v and other hold the same type and content. Two
// null values of the same type are equal; a null never equals a non-null.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.Valid != other.Valid {
		return false
	}
	if !v.Valid {
		return true
	}
	switch v.Type {
	case TypeInt:
		return v.I == other.I
	case TypeFloat:
		return v.F == other.F
	case TypeString:
		return v.S == other.S
	case TypeBool:
		return v.B == other.B
	default:
		return false
	}
}

// Compare orders v against other for ascending comparison. It returns -1,
// 0, or 1, and ok=false if the two values are not comparable (type
// mismatch other than Int/Float, or either side is null).
func (v Value) Compare(other Value) (result int, ok bool) {
	if !v.Valid || !other.Valid {
		return 0, false
	}
	if v.Type == TypeInt || v.Type == TypeFloat {
		af, aok := v.Float()
		bf, bok := other.Float()
		if !aok || !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	if v.Type != other.Type {
		return 0, false
	}
	switch v.Type {
	case TypeString:
		switch {
		case v.S < other.S:
			return -1, true
		case v.S > other.S:
			return 1, true
		default:
			return 0, true
		}
	case TypeBool:
		if v.B == other.B {
			return 0, true
		}
		if !v.B {
			return -1, true
		}
		return 1, true
	default:
		return 0, false
	}
}
