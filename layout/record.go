package layout

import (
	"slices"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// RecordField names one child of a RecordArray.
type RecordField struct {
	Name    string
	Content Content
}

// RecordArray is a struct of arrays: equal-length named children. Field
// order is kept for display; equality of key sets ignores it.
type RecordArray struct {
	meta
	keys   []string
	fields []Content
	length int64
}

// NewRecord builds a record as long as its shortest field. A record
// without fields has no rows; use NewRecordLength to give it some.
func NewRecord(fields ...RecordField) (*RecordArray, error) {
	var length int64
	for i, f := range fields {
		if i == 0 || f.Content.Len() < length {
			length = f.Content.Len()
		}
	}
	return NewRecordLength(length, fields...)
}

// NewRecordLength builds a record with an explicit row count. Fields may
// be longer than length.
func NewRecordLength(length int64, fields ...RecordField) (*RecordArray, error) {
	if length < 0 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "record length must not be negative")
	}
	keys := make([]string, len(fields))
	contents := make([]Content, len(fields))
	for i, f := range fields {
		if slices.Contains(keys[:i], f.Name) {
			return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
				Node(KindRecord.String()).
				Value(f.Name).
				Detail("duplicate field %q", f.Name).
				Build()
		}
		keys[i] = f.Name
		contents[i] = f.Content
	}
	return newRecord(keys, contents, length, nil, nil), nil
}

func newRecord(keys []string, fields []Content, length int64, params Parameters, id *identity.Identities) *RecordArray {
	return &RecordArray{meta: meta{params: params, id: id}, keys: keys, fields: fields, length: length}
}

func (r *RecordArray) sealed() {}

func (r *RecordArray) Kind() Kind {
	return KindRecord
}

func (r *RecordArray) Len() int64 {
	return r.length
}

func (r *RecordArray) NumFields() int {
	return len(r.fields)
}

// Keys returns the field names in order.
func (r *RecordArray) Keys() []string {
	return slices.Clone(r.keys)
}

// FieldIndex returns the position of key, or -1.
func (r *RecordArray) FieldIndex(key string) int {
	return slices.Index(r.keys, key)
}

// Field returns the named child trimmed to the record's length.
func (r *RecordArray) Field(key string) (Content, error) {
	return r.GetitemField(key)
}

// FieldAt returns the child at position pos trimmed to the record's
// length.
func (r *RecordArray) FieldAt(pos int) (Content, error) {
	if pos < 0 || pos >= len(r.fields) {
		return nil, errors.New(errors.PhaseSlice, errors.KindField).
			Node(KindRecord.String()).
			Value(pos).
			Detail("field position %d out of range (%d fields)", pos, len(r.fields)).
			Build()
	}
	return r.fieldContent(pos)
}

// fieldContent trims a child to the record's rows and, when the record
// carries provenance the child lacks, extends it with the field name.
func (r *RecordArray) fieldContent(pos int) (Content, error) {
	content := r.fields[pos]
	if content.Len() != r.length {
		content = content.GetitemRange(0, r.length)
	}
	if r.id != nil && content.Identities() == nil {
		return content.WithIdentities(r.id.WithFieldLoc(r.keys[pos]))
	}
	return content, nil
}

func (r *RecordArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindRecord, id, r.length); err != nil {
		return nil, err
	}
	out := *r
	out.id = id
	return &out, nil
}

func (r *RecordArray) WithParameters(p Parameters) Content {
	out := *r
	out.params = p.clone()
	return &out
}

func (r *RecordArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindRecord, i, r.length)
	if err != nil {
		return nil, err
	}
	return &Record{array: r, at: j}, nil
}

func (r *RecordArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, r.length)
	fields := make([]Content, len(r.fields))
	for i, f := range r.fields {
		fields[i] = f.GetitemRange(start, stop)
	}
	return newRecord(r.keys, fields, stop-start, r.params, r.rangeID(start, stop))
}

func (r *RecordArray) GetitemField(key string) (Content, error) {
	pos := r.FieldIndex(key)
	if pos < 0 {
		e := errors.FieldNotFound(errors.PhaseSlice, nil, key)
		e.Node = KindRecord.String()
		return nil, e
	}
	return r.fieldContent(pos)
}

// GetitemFields keeps the named fields, in the order given.
func (r *RecordArray) GetitemFields(keys []string) (Content, error) {
	fields := make([]Content, len(keys))
	for i, key := range keys {
		pos := r.FieldIndex(key)
		if pos < 0 {
			e := errors.FieldNotFound(errors.PhaseSlice, nil, key)
			e.Node = KindRecord.String()
			return nil, e
		}
		f, err := r.fieldContent(pos)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return newRecord(slices.Clone(keys), fields, r.length, nil, r.id), nil
}

func (r *RecordArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindRecord, carry, r.length); err != nil {
		return nil, err
	}
	fields := make([]Content, len(r.fields))
	for i, f := range r.fields {
		out, err := f.Carry(carry)
		if err != nil {
			return nil, inField(err, r.keys[i])
		}
		fields[i] = out
	}
	id, err := r.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newRecord(r.keys, fields, carry.Len(), r.params, id), nil
}

// PurelistDepth is 1: a record is not a list.
func (r *RecordArray) PurelistDepth() int {
	return 1
}

func (r *RecordArray) MinMaxDepth() (int, int) {
	if len(r.fields) == 0 {
		return 1, 1
	}
	lo, hi := r.fields[0].MinMaxDepth()
	for _, f := range r.fields[1:] {
		flo, fhi := f.MinMaxDepth()
		lo, hi = min(lo, flo), max(hi, fhi)
	}
	return lo, hi
}

func (r *RecordArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(r, other, mergeBool)
}

func (r *RecordArray) Merge(other Content) (Content, error) {
	return merge(r, other)
}

func (r *RecordArray) Validate() error {
	if err := checkIdentities(KindRecord, r.id, r.length); err != nil {
		return err
	}
	for i, f := range r.fields {
		if f.Len() < r.length {
			return inField(invalid(KindRecord, errors.NoRow, "field has %d rows, record has %d", f.Len(), r.length), r.keys[i])
		}
		if err := f.Validate(); err != nil {
			return inField(err, r.keys[i])
		}
	}
	return nil
}

// Record is one row of a RecordArray.
type Record struct {
	array *RecordArray
	at    int64
}

func (r *Record) Keys() []string {
	return r.array.Keys()
}

// At is the row position within Array.
func (r *Record) At() int64 {
	return r.at
}

func (r *Record) Array() *RecordArray {
	return r.array
}

// Field returns the value of one field in this row.
func (r *Record) Field(key string) (any, error) {
	content, err := r.array.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return content.GetitemAt(r.at)
}
