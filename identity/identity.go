package identity

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

// Ref distinguishes independent tagging sessions.
type Ref = int64

// FieldLoc records that the labels were carried into record field Name
// when the label width was Column+1.
type FieldLoc struct {
	Name   string
	Column int64
}

// Counter hands out references.
type Counter interface {
	Next() Ref
}

// AtomicCounter is a Counter safe for concurrent use. The first Ref it
// returns is zero.
type AtomicCounter struct {
	n atomic.Int64
}

func NewCounter() *AtomicCounter {
	return &AtomicCounter{}
}

func (c *AtomicCounter) Next() Ref {
	return c.n.Add(1) - 1
}

// Default is the process-wide counter. It starts at zero and is never reset.
var Default Counter = NewCounter()

// Identities is an immutable per-row label table. Row i's label is the
// Width values at labels[i*Width : (i+1)*Width], usually the index path
// that reached the row from the tagged root.
type Identities struct {
	labels   index.Index64
	fieldLoc []FieldLoc
	ref      Ref
	width    int64
	length   int64
}

// New validates and wraps a label table.
func New(ref Ref, fieldLoc []FieldLoc, width, length int64, labels index.Index64) (*Identities, error) {
	if width < 1 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "identity width must be positive")
	}
	if labels.Len() != width*length {
		return nil, errors.New(errors.PhaseConstruct, errors.KindShape).
			Node("Identities").
			Detail("label buffer has %d values, want %d×%d", labels.Len(), length, width).
			Build()
	}
	return &Identities{
		ref:      ref,
		fieldLoc: cloneFieldLoc(fieldLoc),
		width:    width,
		length:   length,
		labels:   labels,
	}, nil
}

// Fresh labels rows 0..length-1 under a new reference.
func Fresh(counter Counter, length int64) *Identities {
	if counter == nil {
		counter = Default
	}
	return &Identities{
		ref:    counter.Next(),
		width:  1,
		length: length,
		labels: index.Arange(length),
	}
}

func (id *Identities) Ref() Ref {
	return id.ref
}

func (id *Identities) Width() int64 {
	return id.width
}

func (id *Identities) Len() int64 {
	return id.length
}

func (id *Identities) FieldLoc() []FieldLoc {
	return cloneFieldLoc(id.fieldLoc)
}

func (id *Identities) Value(row, col int64) int64 {
	return id.labels.At(row*id.width + col)
}

// Row returns a copy of one row's label.
func (id *Identities) Row(row int64) []int64 {
	return id.labels.Range(row*id.width, (row+1)*id.width).Values()
}

// Label renders a row as "[0, 2, \"x\", 1]", with field names placed after
// the column they were entered at.
func (id *Identities) Label(row int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for col := int64(0); col < id.width; col++ {
		if col != 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(id.Value(row, col), 10))
		for _, fl := range id.fieldLoc {
			if fl.Column == col {
				b.WriteString(", ")
				b.WriteString(strconv.Quote(fl.Name))
			}
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Range keeps rows [start, stop). The label buffer is shared.
func (id *Identities) Range(start, stop int64) *Identities {
	out := *id
	out.labels = id.labels.Range(start*id.width, stop*id.width)
	out.length = stop - start
	return &out
}

// Carry gathers rows by carry.
func (id *Identities) Carry(carry index.Index64) (*Identities, error) {
	data := make([]int64, carry.Len()*id.width)
	for i := int64(0); i < carry.Len(); i++ {
		row := carry.At(i)
		if row < 0 || row >= id.length {
			return nil, errors.OutOfBounds(errors.PhaseCarry, i, row, id.length)
		}
		copy(data[i*id.width:(i+1)*id.width], id.labels.Raw()[row*id.width:(row+1)*id.width])
	}
	out := *id
	out.labels = index.Wrap(data)
	out.length = carry.Len()
	return &out, nil
}

// WithFieldLoc returns the labels extended by one field-location entry.
func (id *Identities) WithFieldLoc(name string) *Identities {
	out := *id
	out.fieldLoc = append(cloneFieldLoc(id.fieldLoc), FieldLoc{Column: id.width - 1, Name: name})
	return &out
}

// FromStartsStops derives labels for the content of a list node: content
// row starts[i]+j gets the label of row i followed by j. Rows no list
// covers are labelled -1.
func (id *Identities) FromStartsStops(starts, stops index.Index64, contentLen int64) (*Identities, error) {
	width := id.width + 1
	data := make([]int64, contentLen*width)
	for i := range data {
		data[i] = -1
	}
	for i := int64(0); i < starts.Len(); i++ {
		start, stop := starts.At(i), stops.At(i)
		if start < 0 || stop < start || stop > contentLen {
			return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidData).
				Node("Identities").
				Row(i).
				Detail("list bounds [%d, %d) outside content of length %d", start, stop, contentLen).
				Build()
		}
		for j := start; j < stop; j++ {
			copy(data[j*width:j*width+id.width], id.labels.Raw()[i*id.width:(i+1)*id.width])
			data[j*width+id.width] = j - start
		}
	}
	return &Identities{
		ref:      id.ref,
		fieldLoc: cloneFieldLoc(id.fieldLoc),
		width:    width,
		length:   contentLen,
		labels:   index.Wrap(data),
	}, nil
}

// FromIndex derives labels for the content of an indexed node. Content row
// idx[i] takes row i's label; negative entries are skipped, the first
// reference wins, and unreferenced content rows are labelled -1.
func (id *Identities) FromIndex(idx index.Index64, contentLen int64) (*Identities, error) {
	data := make([]int64, contentLen*id.width)
	for i := range data {
		data[i] = -1
	}
	seen := make([]bool, contentLen)
	for i := int64(0); i < idx.Len(); i++ {
		j := idx.At(i)
		if j < 0 {
			continue
		}
		if j >= contentLen {
			return nil, errors.OutOfBounds(errors.PhaseConstruct, i, j, contentLen)
		}
		if seen[j] {
			continue
		}
		seen[j] = true
		copy(data[j*id.width:(j+1)*id.width], id.labels.Raw()[i*id.width:(i+1)*id.width])
	}
	return &Identities{
		ref:      id.ref,
		fieldLoc: cloneFieldLoc(id.fieldLoc),
		width:    id.width,
		length:   contentLen,
		labels:   index.Wrap(data),
	}, nil
}

func cloneFieldLoc(fl []FieldLoc) []FieldLoc {
	if len(fl) == 0 {
		return nil
	}
	out := make([]FieldLoc, len(fl))
	copy(out, fl)
	return out
}
