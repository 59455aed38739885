package slice

import (
	"strconv"
	"strings"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

// Item is one element of a multi-dimensional slice expression. The set of
// items is closed: At, Range, Array, Field, Fields, Jagged, Missing,
// Ellipsis, NewAxis.
type Item interface {
	item()
	String() string
}

// At selects a single position; negative values count from the end.
type At struct {
	At int64
}

// Range is a half-open range with step. Missing bounds default like
// Python's start:stop:step.
type Range struct {
	Start    int64
	Stop     int64
	Step     int64
	HasStart bool
	HasStop  bool
}

// Array is a flat fancy index. Values may repeat, be out of order, or be
// negative.
type Array struct {
	Index index.Index64
}

// Field selects one record field.
type Field struct {
	Key string
}

// Fields selects a subset of record fields, in the given order.
type Fields struct {
	Keys []string
}

// Jagged holds one independent index list per row of the sliced
// dimension: row i is Content[Offsets[i]:Offsets[i+1]]. Content is an
// Array, a Missing, or another Jagged.
type Jagged struct {
	Offsets index.Index64
	Content Item
}

// Missing is a fancy index with null positions. Index[i] is -1 for a
// null, otherwise a position into Content.
type Missing struct {
	Index   index.Index64
	Content Array
}

// Ellipsis stands for as many full ranges as needed.
type Ellipsis struct{}

// NewAxis inserts a length-1 dimension.
type NewAxis struct{}

func (At) item()       {}
func (Range) item()    {}
func (Array) item()    {}
func (Field) item()    {}
func (Fields) item()   {}
func (Jagged) item()   {}
func (Missing) item()  {}
func (Ellipsis) item() {}
func (NewAxis) item()  {}

// Full is the ":" range.
func Full() Range {
	return Range{Step: 1}
}

// Span is start:stop with unit step.
func Span(start, stop int64) Range {
	return Range{Start: start, Stop: stop, Step: 1, HasStart: true, HasStop: true}
}

// NewArray builds a fancy index from values.
func NewArray(values ...int64) Array {
	return Array{Index: index.New(values...)}
}

// NewMissing builds a masked fancy index; values[i] is ignored where
// valid[i] is false.
func NewMissing(values []int64, valid []bool) (Missing, error) {
	if len(values) != len(valid) {
		return Missing{}, errors.Shape(errors.PhaseSlice, "masked index values and validity differ in length")
	}
	idx := make([]int64, len(values))
	var content []int64
	for i, v := range values {
		if !valid[i] {
			idx[i] = -1
			continue
		}
		idx[i] = int64(len(content))
		content = append(content, v)
	}
	return Missing{Index: index.Wrap(idx), Content: Array{Index: index.Wrap(content)}}, nil
}

// JaggedOf builds a jagged fancy index from per-row index lists.
func JaggedOf(rows ...[]int64) Jagged {
	offsets := make([]int64, 1, len(rows)+1)
	var content []int64
	for _, row := range rows {
		content = append(content, row...)
		offsets = append(offsets, int64(len(content)))
	}
	return Jagged{Offsets: index.Wrap(offsets), Content: Array{Index: index.Wrap(content)}}
}

// Len is the number of rows a jagged index applies to.
func (j Jagged) Len() int64 {
	if j.Offsets.Len() == 0 {
		return 0
	}
	return j.Offsets.Len() - 1
}

// Len is the number of positions, nulls included.
func (m Missing) Len() int64 {
	return m.Index.Len()
}

func (a At) String() string {
	return strconv.FormatInt(a.At, 10)
}

func (r Range) String() string {
	var b strings.Builder
	if r.HasStart {
		b.WriteString(strconv.FormatInt(r.Start, 10))
	}
	b.WriteByte(':')
	if r.HasStop {
		b.WriteString(strconv.FormatInt(r.Stop, 10))
	}
	if r.Step != 1 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(r.Step, 10))
	}
	return b.String()
}

func (a Array) String() string {
	return formatInts(a.Index.Raw())
}

func (f Field) String() string {
	return strconv.Quote(f.Key)
}

func (f Fields) String() string {
	quoted := make([]string, len(f.Keys))
	for i, k := range f.Keys {
		quoted[i] = strconv.Quote(k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (j Jagged) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := int64(0); i < j.Len(); i++ {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(rowString(j.Content, j.Offsets.At(i), j.Offsets.At(i+1)))
	}
	b.WriteByte(']')
	return b.String()
}

func (m Missing) String() string {
	return m.rowString(0, m.Index.Len())
}

func (m Missing) rowString(start, stop int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := start; i < stop; i++ {
		if i != start {
			b.WriteString(", ")
		}
		if k := m.Index.At(i); k < 0 {
			b.WriteString("None")
		} else {
			b.WriteString(strconv.FormatInt(m.Content.Index.At(k), 10))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (Ellipsis) String() string {
	return "..."
}

func (NewAxis) String() string {
	return "newaxis"
}

func rowString(content Item, start, stop int64) string {
	switch c := content.(type) {
	case Array:
		return formatInts(c.Index.Raw()[start:stop])
	case Missing:
		return c.rowString(start, stop)
	case Jagged:
		sub := Jagged{Offsets: c.Offsets.Range(start, stop+1), Content: c.Content}
		return sub.String()
	default:
		return "?"
	}
}

func formatInts(vs []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vs {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte(']')
	return b.String()
}

// Dims is the number of structural dimensions an item consumes.
func Dims(it Item) int {
	switch v := it.(type) {
	case At, Range, Array, Missing:
		return 1
	case Jagged:
		return 1 + Dims(v.Content)
	default:
		return 0
	}
}

// Slice is an ordered sequence of items.
type Slice []Item

// Head returns the first item, or nil when the slice is exhausted.
func (s Slice) Head() Item {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Tail returns everything after the head.
func (s Slice) Tail() Slice {
	if len(s) == 0 {
		return nil
	}
	return s[1:]
}

func (s Slice) String() string {
	parts := make([]string, len(s))
	for i, it := range s {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
