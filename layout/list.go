package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// ListArray is a variable-length list with independent bounds: row i
// covers content[starts[i]:stops[i]]. Rows may overlap or come in any
// order.
type ListArray struct {
	meta
	starts  index.Index
	stops   index.Index
	content Content
}

func NewList(starts, stops index.Index, content Content) (*ListArray, error) {
	if stops.Len() < starts.Len() {
		return nil, errors.New(errors.PhaseConstruct, errors.KindShape).
			Node(KindList.String()).
			Detail("stops has %d entries, starts has %d", stops.Len(), starts.Len()).
			Build()
	}
	return newList(starts, stops, content, nil, nil), nil
}

func newList(starts, stops index.Index, content Content, params Parameters, id *identity.Identities) *ListArray {
	return &ListArray{meta: meta{params: params, id: id}, starts: starts, stops: stops, content: content}
}

func (l *ListArray) sealed() {}

func (l *ListArray) Kind() Kind {
	return KindList
}

func (l *ListArray) Len() int64 {
	return l.starts.Len()
}

func (l *ListArray) Starts() index.Index {
	return l.starts
}

func (l *ListArray) Stops() index.Index {
	return l.stops
}

func (l *ListArray) Content() Content {
	return l.content
}

func (l *ListArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindList, id, l.Len()); err != nil {
		return nil, err
	}
	out := *l
	out.id = id
	return &out, nil
}

func (l *ListArray) WithParameters(p Parameters) Content {
	out := *l
	out.params = p.clone()
	return &out
}

func (l *ListArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindList, i, l.Len())
	if err != nil {
		return nil, err
	}
	return l.content.GetitemRange(l.starts.Get(j), l.stops.Get(j)), nil
}

func (l *ListArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, l.Len())
	return newList(l.starts.Slice(start, stop), l.stops.Slice(start, stop), l.content, l.params, l.rangeID(start, stop))
}

func (l *ListArray) GetitemField(key string) (Content, error) {
	content, err := l.content.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return newList(l.starts, l.stops, content, nil, l.id), nil
}

func (l *ListArray) GetitemFields(keys []string) (Content, error) {
	content, err := l.content.GetitemFields(keys)
	if err != nil {
		return nil, err
	}
	return newList(l.starts, l.stops, content, nil, l.id), nil
}

func (l *ListArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindList, carry, l.Len()); err != nil {
		return nil, err
	}
	starts, err := carryIndex(l.starts, carry)
	if err != nil {
		return nil, err
	}
	stops, err := carryIndex(l.stops, carry)
	if err != nil {
		return nil, err
	}
	id, err := l.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newList(starts, stops, l.content, l.params, id), nil
}

func (l *ListArray) PurelistDepth() int {
	return l.content.PurelistDepth() + 1
}

func (l *ListArray) MinMaxDepth() (int, int) {
	lo, hi := l.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (l *ListArray) Keys() []string {
	return l.content.Keys()
}

func (l *ListArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(l, other, mergeBool)
}

func (l *ListArray) Merge(other Content) (Content, error) {
	return merge(l, other)
}

func (l *ListArray) starts64() index.Index64 {
	return l.starts.To64()
}

func (l *ListArray) stops64() index.Index64 {
	return l.stops.To64().Range(0, l.Len())
}

// CompactOffsets64 returns 0-based offsets with the same row lengths.
func (l *ListArray) CompactOffsets64() index.Index64 {
	return index.Wrap(kernel.CompactOffsets(l.starts64().Raw(), l.stops64().Raw()))
}

// ToListOffsetArray64 packs the rows contiguously. Rows that already
// follow each other keep sharing the content.
func (l *ListArray) ToListOffsetArray64(startAtZero bool) (*ListOffsetArray, error) {
	starts, stops := l.starts64().Raw(), l.stops64().Raw()
	if contiguous(starts, stops) {
		offsets := make([]int64, len(starts)+1)
		copy(offsets, starts)
		if len(starts) > 0 {
			offsets[len(starts)] = stops[len(stops)-1]
		}
		out := newListOffset(index.Wrap(offsets), l.content, l.params, l.id)
		return out.ToListOffsetArray64(startAtZero), nil
	}
	content, err := l.content.Carry(index.Wrap(kernel.RangesCarry(starts, stops)))
	if err != nil {
		return nil, atNode(err, KindList)
	}
	return newListOffset(l.CompactOffsets64(), content, l.params, l.id), nil
}

func contiguous(starts, stops []int64) bool {
	for i := 1; i < len(starts); i++ {
		if starts[i] != stops[i-1] {
			return false
		}
	}
	return true
}

func (l *ListArray) Validate() error {
	if err := checkIdentities(KindList, l.id, l.Len()); err != nil {
		return err
	}
	if l.stops.Len() < l.starts.Len() {
		return invalid(KindList, errors.NoRow, "stops has %d entries, starts has %d", l.stops.Len(), l.starts.Len())
	}
	n := l.content.Len()
	for i := int64(0); i < l.Len(); i++ {
		start, stop := l.starts.Get(i), l.stops.Get(i)
		switch {
		case stop < start:
			return invalid(KindList, i, "stop %d before start %d", stop, start)
		case start != stop && start < 0:
			return invalid(KindList, i, "start %d below zero", start)
		case start != stop && stop > n:
			return invalid(KindList, i, "stop %d past content of length %d", stop, n)
		}
	}
	return l.content.Validate()
}
