package layout

// Scalar is the set of Go element types a PrimitiveArray can hold.
type Scalar interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// DType identifies the element type of a PrimitiveArray.
type DType uint8

const (
	DTypeBool DType = iota
	DTypeInt8
	DTypeInt16
	DTypeInt32
	DTypeInt64
	DTypeUint8
	DTypeUint16
	DTypeUint32
	DTypeUint64
	DTypeFloat32
	DTypeFloat64
)

var dtypeNames = [...]string{
	DTypeBool:    "bool",
	DTypeInt8:    "int8",
	DTypeInt16:   "int16",
	DTypeInt32:   "int32",
	DTypeInt64:   "int64",
	DTypeUint8:   "uint8",
	DTypeUint16:  "uint16",
	DTypeUint32:  "uint32",
	DTypeUint64:  "uint64",
	DTypeFloat32: "float32",
	DTypeFloat64: "float64",
}

func (d DType) String() string {
	if int(d) < len(dtypeNames) {
		return dtypeNames[d]
	}
	return "unknown"
}

// ParseDType is the inverse of DType.String.
func ParseDType(s string) (DType, bool) {
	for d, name := range dtypeNames {
		if name == s {
			return DType(d), true
		}
	}
	return 0, false
}

func (d DType) IsBool() bool {
	return d == DTypeBool
}

func (d DType) IsInteger() bool {
	return d >= DTypeInt8 && d <= DTypeUint64
}

func (d DType) IsFloat() bool {
	return d == DTypeFloat32 || d == DTypeFloat64
}

// Size is the element size in bytes.
func (d DType) Size() int {
	switch d {
	case DTypeBool, DTypeInt8, DTypeUint8:
		return 1
	case DTypeInt16, DTypeUint16:
		return 2
	case DTypeInt32, DTypeUint32, DTypeFloat32:
		return 4
	default:
		return 8
	}
}

func dtypeOf[T Scalar]() DType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return DTypeBool
	case int8:
		return DTypeInt8
	case int16:
		return DTypeInt16
	case int32:
		return DTypeInt32
	case int64:
		return DTypeInt64
	case uint8:
		return DTypeUint8
	case uint16:
		return DTypeUint16
	case uint32:
		return DTypeUint32
	case uint64:
		return DTypeUint64
	case float32:
		return DTypeFloat32
	default:
		return DTypeFloat64
	}
}

// mergeDType returns the element type two leaves concatenate to.
func mergeDType(a, b DType, mergeBool bool) (DType, bool) {
	switch {
	case a == b:
		return a, true
	case a.IsBool() || b.IsBool():
		if !mergeBool {
			return 0, false
		}
		if a.IsFloat() || b.IsFloat() {
			return DTypeFloat64, true
		}
		return DTypeInt64, true
	case a.IsFloat() || b.IsFloat():
		return DTypeFloat64, true
	default:
		return DTypeInt64, true
	}
}

// column is the width-erased storage of a leaf.
type column interface {
	dtype() DType
	len() int64
	at(i int64) any
	slice(start, stop int64) column
	carry(c []int64) column
	int64s() []int64
	float64s() []float64
	raw() any
}

type typedColumn[T Scalar] []T

func (c typedColumn[T]) dtype() DType {
	return dtypeOf[T]()
}

func (c typedColumn[T]) len() int64 {
	return int64(len(c))
}

func (c typedColumn[T]) at(i int64) any {
	return c[i]
}

func (c typedColumn[T]) slice(start, stop int64) column {
	return c[start:stop]
}

// carry assumes positions were bounds checked by the caller.
func (c typedColumn[T]) carry(positions []int64) column {
	out := make(typedColumn[T], len(positions))
	for i, p := range positions {
		out[i] = c[p]
	}
	return out
}

func (c typedColumn[T]) int64s() []int64 {
	out := make([]int64, len(c))
	for i, v := range c {
		out[i] = toInt64(v)
	}
	return out
}

func (c typedColumn[T]) float64s() []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = toFloat64(v)
	}
	return out
}

func (c typedColumn[T]) raw() any {
	return []T(c)
}

func toInt64[T Scalar](v T) int64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return int64(x)
	case float64:
		return int64(x)
	}
	return 0
}

func toFloat64[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return float64(toInt64(v))
}

// concatColumns joins two columns as the given element type.
func concatColumns(a, b column, to DType) column {
	if a.dtype() == to && b.dtype() == to {
		return appendSame(a, b)
	}
	if to.IsFloat() {
		return typedColumn[float64](append(a.float64s(), b.float64s()...))
	}
	return typedColumn[int64](append(a.int64s(), b.int64s()...))
}

func appendSame(a, b column) column {
	switch x := a.(type) {
	case typedColumn[bool]:
		return concatTyped(x, b.(typedColumn[bool]))
	case typedColumn[int8]:
		return concatTyped(x, b.(typedColumn[int8]))
	case typedColumn[int16]:
		return concatTyped(x, b.(typedColumn[int16]))
	case typedColumn[int32]:
		return concatTyped(x, b.(typedColumn[int32]))
	case typedColumn[int64]:
		return concatTyped(x, b.(typedColumn[int64]))
	case typedColumn[uint8]:
		return concatTyped(x, b.(typedColumn[uint8]))
	case typedColumn[uint16]:
		return concatTyped(x, b.(typedColumn[uint16]))
	case typedColumn[uint32]:
		return concatTyped(x, b.(typedColumn[uint32]))
	case typedColumn[uint64]:
		return concatTyped(x, b.(typedColumn[uint64]))
	case typedColumn[float32]:
		return concatTyped(x, b.(typedColumn[float32]))
	default:
		return concatTyped(x.(typedColumn[float64]), b.(typedColumn[float64]))
	}
}

func concatTyped[T Scalar](a, b typedColumn[T]) column {
	out := make(typedColumn[T], 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
