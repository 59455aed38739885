package layout

import (
	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// ListOffsetArray is a variable-length list: row i covers
// content[offsets[i]:offsets[i+1]].
type ListOffsetArray struct {
	meta
	offsets index.Index
	content Content
}

// NewListOffset builds a list from length+1 monotone offsets. Bounds are
// not checked; see Validate.
func NewListOffset(offsets index.Index, content Content) (*ListOffsetArray, error) {
	if offsets.Len() == 0 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "offsets must have at least one entry")
	}
	return newListOffset(offsets, content, nil, nil), nil
}

func newListOffset(offsets index.Index, content Content, params Parameters, id *identity.Identities) *ListOffsetArray {
	return &ListOffsetArray{meta: meta{params: params, id: id}, offsets: offsets, content: content}
}

func (l *ListOffsetArray) sealed() {}

func (l *ListOffsetArray) Kind() Kind {
	return KindListOffset
}

func (l *ListOffsetArray) Len() int64 {
	return l.offsets.Len() - 1
}

func (l *ListOffsetArray) Offsets() index.Index {
	return l.offsets
}

func (l *ListOffsetArray) Starts() index.Index {
	return l.offsets.Slice(0, l.Len())
}

func (l *ListOffsetArray) Stops() index.Index {
	return l.offsets.Slice(1, l.offsets.Len())
}

func (l *ListOffsetArray) Content() Content {
	return l.content
}

func (l *ListOffsetArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindListOffset, id, l.Len()); err != nil {
		return nil, err
	}
	out := *l
	out.id = id
	return &out, nil
}

func (l *ListOffsetArray) WithParameters(p Parameters) Content {
	out := *l
	out.params = p.clone()
	return &out
}

func (l *ListOffsetArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindListOffset, i, l.Len())
	if err != nil {
		return nil, err
	}
	return l.content.GetitemRange(l.offsets.Get(j), l.offsets.Get(j+1)), nil
}

func (l *ListOffsetArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, l.Len())
	return newListOffset(l.offsets.Slice(start, stop+1), l.content, l.params, l.rangeID(start, stop))
}

func (l *ListOffsetArray) GetitemField(key string) (Content, error) {
	content, err := l.content.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return newListOffset(l.offsets, content, nil, l.id), nil
}

func (l *ListOffsetArray) GetitemFields(keys []string) (Content, error) {
	content, err := l.content.GetitemFields(keys)
	if err != nil {
		return nil, err
	}
	return newListOffset(l.offsets, content, nil, l.id), nil
}

// Carry returns a ListArray over the same content.
func (l *ListOffsetArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindListOffset, carry, l.Len()); err != nil {
		return nil, err
	}
	starts, err := carryIndex(l.Starts(), carry)
	if err != nil {
		return nil, err
	}
	stops, err := carryIndex(l.Stops(), carry)
	if err != nil {
		return nil, err
	}
	id, err := l.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newList(starts, stops, l.content, l.params, id), nil
}

func (l *ListOffsetArray) PurelistDepth() int {
	return l.content.PurelistDepth() + 1
}

func (l *ListOffsetArray) MinMaxDepth() (int, int) {
	lo, hi := l.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (l *ListOffsetArray) Keys() []string {
	return l.content.Keys()
}

func (l *ListOffsetArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(l, other, mergeBool)
}

func (l *ListOffsetArray) Merge(other Content) (Content, error) {
	return merge(l, other)
}

// CompactOffsets64 returns 0-based 64-bit offsets with the same row
// lengths.
func (l *ListOffsetArray) CompactOffsets64() index.Index64 {
	offsets := l.offsets.To64()
	if offsets.At(0) == 0 {
		return offsets
	}
	return index.Wrap(kernel.CompactOffsets(offsets.Range(0, l.Len()).Raw(), offsets.Range(1, offsets.Len()).Raw()))
}

// ToListOffsetArray64 returns the list with 64-bit offsets. When
// startAtZero is set, the offsets are rebased to 0 and the content is
// narrowed to the covered range.
func (l *ListOffsetArray) ToListOffsetArray64(startAtZero bool) *ListOffsetArray {
	first := l.offsets.Get(0)
	if l.offsets.Width() == index.Width64 && (!startAtZero || first == 0) {
		return l
	}
	if !startAtZero || first == 0 {
		return newListOffset(l.offsets.To64(), l.content, l.params, l.id)
	}
	if ce := Logger().Check(zap.DebugLevel, "rebasing list offsets"); ce != nil {
		ce.Write(zap.Int64("first", first), zap.Int64("rows", l.Len()))
	}
	last := l.offsets.Get(l.Len())
	return newListOffset(l.CompactOffsets64(), l.content.GetitemRange(first, last), l.params, l.id)
}

// ToRegularArray converts a list whose rows all have the same length.
func (l *ListOffsetArray) ToRegularArray() (*RegularArray, error) {
	compact := l.ToListOffsetArray64(true)
	offsets := compact.offsets.To64()
	n := compact.Len()
	var size int64
	if n > 0 {
		size = offsets.At(1) - offsets.At(0)
	}
	for i := int64(0); i < n; i++ {
		if got := offsets.At(i+1) - offsets.At(i); got != size {
			return nil, errors.New(errors.PhaseConstruct, errors.KindShape).
				Node(KindListOffset.String()).
				Row(i).
				Detail("row has length %d, expected %d for a regular array", got, size).
				Build()
		}
	}
	return newRegular(compact.content.GetitemRange(0, n*size), size, n, l.params, l.id), nil
}

func (l *ListOffsetArray) Validate() error {
	if err := checkIdentities(KindListOffset, l.id, l.Len()); err != nil {
		return err
	}
	if l.offsets.Len() == 0 {
		return invalid(KindListOffset, errors.NoRow, "offsets must have at least one entry")
	}
	if l.offsets.Get(0) < 0 {
		return invalid(KindListOffset, 0, "offsets start below zero")
	}
	for i := int64(0); i < l.Len(); i++ {
		if l.offsets.Get(i+1) < l.offsets.Get(i) {
			return invalid(KindListOffset, i, "offsets decrease")
		}
	}
	if last := l.offsets.Get(l.Len()); last > l.content.Len() {
		return invalid(KindListOffset, l.Len()-1, "offsets reach past content of length %d", l.content.Len())
	}
	return l.content.Validate()
}
