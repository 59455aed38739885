package layout

import (
	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

// Merge concatenates the rows of a and b. Leaves widen to a common
// element type, bool joining numbers as 0/1. Pairs that cannot share a
// node kind fail with KindMismatch; use MergeAsUnion for those.
func Merge(a, b Content) (Content, error) {
	return merge(a, b)
}

// MergeAsUnion concatenates a and b as the two alternatives of a union.
func MergeAsUnion(a, b Content) *UnionArray {
	na, nb := a.Len(), b.Len()
	tags := make([]int8, na+nb)
	idx := make([]int64, na+nb)
	for i := int64(0); i < na; i++ {
		idx[i] = i
	}
	for i := int64(0); i < nb; i++ {
		tags[na+i] = 1
		idx[na+i] = i
	}
	return newUnion(index.Wrap(tags), index.Wrap(idx), []Content{a, b}, nil, nil)
}

func mergeable(a, b Content, mergeBool bool) bool {
	switch y := b.(type) {
	case *EmptyArray, *UnionArray:
		return true
	case *IndexedArray:
		return mergeable(a, y.content, mergeBool)
	case *IndexedOptionArray:
		return mergeable(a, y.content, mergeBool)
	}

	switch x := a.(type) {
	case *EmptyArray, *UnionArray:
		return true
	case *IndexedArray:
		return mergeable(x.content, b, mergeBool)
	case *IndexedOptionArray:
		return mergeable(x.content, b, mergeBool)
	case *PrimitiveArray:
		y, ok := b.(*PrimitiveArray)
		if !ok {
			return false
		}
		_, ok = mergeDType(x.DType(), y.DType(), mergeBool)
		return ok
	case *RecordArray:
		y, ok := b.(*RecordArray)
		if !ok || len(x.keys) != len(y.keys) {
			return false
		}
		for i, key := range x.keys {
			j := y.FieldIndex(key)
			if j < 0 || !mergeable(x.fields[i], y.fields[j], mergeBool) {
				return false
			}
		}
		return true
	}

	ca, ok := listContent(a)
	if !ok {
		return false
	}
	cb, ok := listContent(b)
	if !ok {
		return false
	}
	return mergeable(ca, cb, mergeBool)
}

func listContent(c Content) (Content, bool) {
	switch n := c.(type) {
	case *ListOffsetArray:
		return n.content, true
	case *ListArray:
		return n.content, true
	case *RegularArray:
		return n.content, true
	}
	return nil, false
}

func mergeMismatch(a, b Content) error {
	return errors.KindMismatch(errors.PhaseMerge, a.Kind().String(), b.Kind().String())
}

func merge(a, b Content) (Content, error) {
	if _, ok := a.(*EmptyArray); ok {
		return b, nil
	}
	if _, ok := b.(*EmptyArray); ok {
		return a, nil
	}

	_, ua := a.(*UnionArray)
	_, ub := b.(*UnionArray)
	if ua || ub {
		return mergeUnions(a, b)
	}
	if a.Kind().IsIndexed() || b.Kind().IsIndexed() {
		return mergeIndexed(a, b)
	}

	switch x := a.(type) {
	case *PrimitiveArray:
		y, ok := b.(*PrimitiveArray)
		if !ok {
			return nil, mergeMismatch(a, b)
		}
		to, ok := mergeDType(x.DType(), y.DType(), true)
		if !ok {
			return nil, mergeMismatch(a, b)
		}
		return &PrimitiveArray{
			meta: meta{params: mergedParams(a, b)},
			data: concatColumns(x.data, y.data, to),
		}, nil
	case *RecordArray:
		y, ok := b.(*RecordArray)
		if !ok {
			return nil, mergeMismatch(a, b)
		}
		return mergeRecords(x, y)
	}

	if a.Kind().IsList() && b.Kind().IsList() {
		return mergeLists(a, b)
	}
	return nil, mergeMismatch(a, b)
}

func mergedParams(a, b Content) Parameters {
	if a.Parameters().Equal(b.Parameters()) {
		return a.Parameters()
	}
	return nil
}

func mergeLists(a, b Content) (Content, error) {
	if ra, ok := a.(*RegularArray); ok {
		if rb, ok := b.(*RegularArray); ok && ra.size == rb.size {
			content, err := merge(ra.content.GetitemRange(0, ra.length*ra.size), rb.content.GetitemRange(0, rb.length*rb.size))
			if err != nil {
				return nil, err
			}
			return newRegular(content, ra.size, ra.length+rb.length, mergedParams(a, b), nil), nil
		}
	}

	la, err := toListOffset64(a)
	if err != nil {
		return nil, err
	}
	lb, err := toListOffset64(b)
	if err != nil {
		return nil, err
	}
	oa, ob := la.offsets.To64(), lb.offsets.To64()
	lastA := oa.At(oa.Len() - 1)
	lastB := ob.At(ob.Len() - 1)

	offsets := make([]int64, 0, oa.Len()+ob.Len()-1)
	offsets = append(offsets, oa.Raw()...)
	for _, o := range ob.Raw()[1:] {
		offsets = append(offsets, o+lastA)
	}
	content, err := merge(la.content.GetitemRange(0, lastA), lb.content.GetitemRange(0, lastB))
	if err != nil {
		return nil, err
	}
	return newListOffset(index.Wrap(offsets), content, mergedParams(a, b), nil), nil
}

// toListOffset64 converts any list kind to 0-based 64-bit offsets.
func toListOffset64(c Content) (*ListOffsetArray, error) {
	switch n := c.(type) {
	case *ListOffsetArray:
		return n.ToListOffsetArray64(true), nil
	case *ListArray:
		return n.ToListOffsetArray64(true)
	case *RegularArray:
		return n.ToListOffsetArray64(), nil
	}
	return nil, errors.Unsupported(errors.PhaseMerge, "list view of "+c.Kind().String())
}

func mergeRecords(a, b *RecordArray) (Content, error) {
	if len(a.keys) != len(b.keys) {
		return nil, mergeMismatch(a, b)
	}
	fields := make([]Content, len(a.keys))
	for i, key := range a.keys {
		j := b.FieldIndex(key)
		if j < 0 {
			return nil, errors.New(errors.PhaseMerge, errors.KindKindMismatch).
				Node(KindRecord.String()).
				Value(key).
				Detail("field %q missing from the second record", key).
				Build()
		}
		fa, err := a.fieldContent(i)
		if err != nil {
			return nil, err
		}
		fb, err := b.fieldContent(j)
		if err != nil {
			return nil, err
		}
		if fields[i], err = merge(fa, fb); err != nil {
			return nil, inField(err, key)
		}
	}
	return newRecord(a.keys, fields, a.length+b.length, mergedParams(a, b), nil), nil
}

// optionIndex returns the index a node contributes to an indexed merge and
// the content it points into.
func optionIndex(c Content) (index.Index64, Content, bool) {
	switch n := c.(type) {
	case *IndexedArray:
		return n.index.To64(), n.content, false
	case *IndexedOptionArray:
		return n.index.To64(), n.content, true
	}
	return index.Arange(c.Len()), c, false
}

func mergeIndexed(a, b Content) (Content, error) {
	ia, ca, optA := optionIndex(a)
	ib, cb, optB := optionIndex(b)
	content, err := merge(ca, cb)
	if err != nil {
		return nil, err
	}

	shift := ca.Len()
	out := make([]int64, 0, ia.Len()+ib.Len())
	out = append(out, ia.Raw()...)
	for _, k := range ib.Raw() {
		if k < 0 {
			out = append(out, -1)
			continue
		}
		out = append(out, k+shift)
	}
	if optA || optB {
		return newIndexedOption(index.Wrap(out), content, mergedParams(a, b), nil), nil
	}
	return newIndexed(index.Wrap(out), content, mergedParams(a, b), nil), nil
}

// unionParts returns the tags, index, and contents a node contributes to
// a union merge.
func unionParts(c Content) ([]int8, []int64, []Content) {
	if u, ok := c.(*UnionArray); ok {
		n := u.Len()
		return u.tags.Range(0, n).Raw(), u.index.To64().Range(0, n).Raw(), u.contents
	}
	return make([]int8, c.Len()), index.Arange(c.Len()).Raw(), []Content{c}
}

func mergeUnions(a, b Content) (Content, error) {
	ta, ia, ca := unionParts(a)
	tb, ib, cb := unionParts(b)
	if len(ca)+len(cb) > MaxUnionContents {
		return nil, errors.New(errors.PhaseMerge, errors.KindUnsupported).
			Node(KindUnion.String()).
			Detail("merged union would have %d contents, at most %d are supported", len(ca)+len(cb), MaxUnionContents).
			Build()
	}
	if ce := Logger().Check(zap.DebugLevel, "merging as union"); ce != nil {
		ce.Write(zap.Int("left", len(ca)), zap.Int("right", len(cb)))
	}

	tags := make([]int8, 0, len(ta)+len(tb))
	tags = append(tags, ta...)
	shift := int8(len(ca))
	for _, t := range tb {
		tags = append(tags, t+shift)
	}
	idx := make([]int64, 0, len(ia)+len(ib))
	idx = append(idx, ia...)
	idx = append(idx, ib...)

	contents := make([]Content, 0, len(ca)+len(cb))
	contents = append(contents, ca...)
	contents = append(contents, cb...)
	return newUnion(index.Wrap(tags), index.Wrap(idx), contents, mergedParams(a, b), nil), nil
}
