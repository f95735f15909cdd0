package field

// Precision identifies the element type of serialized data.
type Precision uint8

// Precision kinds. String is an opaque one-byte character type used for
// string metadata.
const (
	Invalid Precision = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
)

// Number is the set of Go types that map onto a numeric precision.
type Number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Numeric lists every numeric precision.
var Numeric = []Precision{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64}

var precisionNames = [...]string{
	Invalid: "invalid",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	String:  "string",
}

func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return "invalid"
}

// Size returns the size of one element in bytes, or 0 for Invalid.
func (p Precision) Size() int {
	switch p {
	case Int8, Uint8, String:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsIntegral reports whether p is a signed or unsigned integer kind.
func (p Precision) IsIntegral() bool {
	return p >= Int8 && p <= Uint64
}

// IsSigned reports whether p can represent negative values.
func (p Precision) IsSigned() bool {
	return (p >= Int8 && p <= Int64) || p.IsFloat()
}

// IsFloat reports whether p is a floating point kind.
func (p Precision) IsFloat() bool {
	return p == Float32 || p == Float64
}

// IsNumeric reports whether p is one of the numeric kinds.
func (p Precision) IsNumeric() bool {
	return p.IsIntegral() || p.IsFloat()
}

// PrecisionOf returns the precision of the Go type T.
func PrecisionOf[T Number]() Precision {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	default:
		return Float64
	}
}

// Visitor has one method per precision kind. Implementations recover the
// concrete element type by the method that gets called; Chars handles String.
type Visitor[R any] interface {
	Int8() (R, error)
	Int16() (R, error)
	Int32() (R, error)
	Int64() (R, error)
	Uint8() (R, error)
	Uint16() (R, error)
	Uint32() (R, error)
	Uint64() (R, error)
	Float32() (R, error)
	Float64() (R, error)
	Chars() (R, error)
}

// Visit calls the method of v that matches p.
func Visit[R any](p Precision, v Visitor[R]) (R, error) {
	switch p {
	case Int8:
		return v.Int8()
	case Int16:
		return v.Int16()
	case Int32:
		return v.Int32()
	case Int64:
		return v.Int64()
	case Uint8:
		return v.Uint8()
	case Uint16:
		return v.Uint16()
	case Uint32:
		return v.Uint32()
	case Uint64:
		return v.Uint64()
	case Float32:
		return v.Float32()
	case Float64:
		return v.Float64()
	case String:
		return v.Chars()
	}
	var zero R
	return zero, Errorf(ErrValue, "cannot visit precision %d", uint8(p))
}
