package index

import (
	"github.com/wippyai/jagged/errors"
)

// Integer is the set of element types an index buffer can hold.
type Integer interface {
	int8 | uint8 | int32 | uint32 | int64
}

// Width identifies the storage type of an index buffer.
type Width uint8

const (
	Width8 Width = iota
	WidthU8
	Width32
	WidthU32
	Width64
)

var widthNames = [...]string{
	Width8:   "i8",
	WidthU8:  "u8",
	Width32:  "i32",
	WidthU32: "u32",
	Width64:  "i64",
}

func (w Width) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "unknown"
}

// ParseWidth is the inverse of Width.String.
func ParseWidth(s string) (Width, bool) {
	for w, name := range widthNames {
		if name == s {
			return Width(w), true
		}
	}
	return 0, false
}

// Index is a width-erased view of a Buffer. Nodes store Index so that
// producers can choose the storage width; the slicing engine works on
// the result of To64.
type Index interface {
	Width() Width
	Len() int64
	Get(i int64) int64
	To64() Index64
	Slice(start, stop int64) Index
}

// Buffer is an immutable contiguous sequence of integers. Range returns
// views sharing the same storage, so a Buffer must never be written after
// construction.
type Buffer[T Integer] struct {
	data []T
}

type (
	Index8   = Buffer[int8]
	IndexU8  = Buffer[uint8]
	Index32  = Buffer[int32]
	IndexU32 = Buffer[uint32]
	Index64  = Buffer[int64]
)

// New copies values into a new buffer.
func New[T Integer](values ...T) Buffer[T] {
	data := make([]T, len(values))
	copy(data, values)
	return Buffer[T]{data: data}
}

// Wrap takes ownership of data. The caller must not modify it afterwards.
func Wrap[T Integer](data []T) Buffer[T] {
	return Buffer[T]{data: data}
}

// Empty64 returns a zero-length 64-bit buffer.
func Empty64() Index64 {
	return Index64{}
}

// Arange returns [0, 1, ..., n-1].
func Arange(n int64) Index64 {
	data := make([]int64, n)
	for i := range data {
		data[i] = int64(i)
	}
	return Index64{data: data}
}

// Full returns n copies of v.
func Full(n, v int64) Index64 {
	data := make([]int64, n)
	for i := range data {
		data[i] = v
	}
	return Index64{data: data}
}

func (b Buffer[T]) Len() int64 {
	return int64(len(b.data))
}

func (b Buffer[T]) At(i int64) T {
	return b.data[i]
}

func (b Buffer[T]) Get(i int64) int64 {
	return int64(b.data[i])
}

func (b Buffer[T]) Width() Width {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Width8
	case uint8:
		return WidthU8
	case int32:
		return Width32
	case uint32:
		return WidthU32
	default:
		return Width64
	}
}

// Range returns the view [start, stop). Bounds are the caller's
// responsibility.
func (b Buffer[T]) Range(start, stop int64) Buffer[T] {
	return Buffer[T]{data: b.data[start:stop]}
}

func (b Buffer[T]) Slice(start, stop int64) Index {
	return b.Range(start, stop)
}

// Raw exposes the backing storage for read-only kernels.
func (b Buffer[T]) Raw() []T {
	return b.data
}

// Values returns a copy of the contents.
func (b Buffer[T]) Values() []T {
	out := make([]T, len(b.data))
	copy(out, b.data)
	return out
}

// To64 reinterprets the buffer in 64-bit index space. A 64-bit buffer is
// returned as is; narrower widths are copied once.
func (b Buffer[T]) To64() Index64 {
	if same, ok := any(b).(Index64); ok {
		return same
	}
	out := make([]int64, len(b.data))
	for i, v := range b.data {
		out[i] = int64(v)
	}
	return Index64{data: out}
}

// Carry gathers b[carry[i]] into a new buffer of the same width.
func (b Buffer[T]) Carry(carry Index64) (Buffer[T], error) {
	n := int64(len(b.data))
	out := make([]T, len(carry.data))
	for i, c := range carry.data {
		if c < 0 || c >= n {
			return Buffer[T]{}, errors.OutOfBounds(errors.PhaseCarry, int64(i), c, n)
		}
		out[i] = b.data[c]
	}
	return Buffer[T]{data: out}, nil
}

// Concat64 concatenates buffers of any width into one 64-bit buffer.
func Concat64(parts ...Index) Index64 {
	total := int64(0)
	for _, p := range parts {
		total += p.Len()
	}
	out := make([]int64, 0, total)
	for _, p := range parts {
		out = append(out, p.To64().data...)
	}
	return Index64{data: out}
}

// Equal compares contents in 64-bit space, ignoring width.
func Equal(a, b Index) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := int64(0); i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}
