package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// Num counts elements at axis. Axis 0 gives the number of rows as an
// int64; deeper axes give a node of list lengths with the lists above
// axis kept.
func Num(c Content, axis int) (any, error) {
	axis, err := wrapAxis(c, axis)
	if err != nil {
		return nil, err
	}
	if axis == 0 {
		return c.Len(), nil
	}
	return num(c, axis, 0)
}

func num(c Content, axis, depth int) (Content, error) {
	switch n := c.(type) {
	case *EmptyArray:
		return WrapPrimitive([]int64{}), nil
	case *PrimitiveArray:
		return nil, axisTooDeep(KindPrimitive, axis)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return num(next, axis, depth)
	case *IndexedOptionArray:
		return overOption(n, nil, func(next Content) (Content, error) {
			return num(next, axis, depth)
		})
	case *RecordArray:
		fields, err := mapFields(n, func(f Content) (Content, error) {
			return num(f, axis, depth)
		})
		if err != nil {
			return nil, err
		}
		return newRecord(n.keys, fields, n.length, nil, nil), nil
	case *UnionArray:
		return mapContents(n, nil, func(next Content) (Content, error) {
			return num(next, axis, depth)
		})
	}

	offsets, content, err := listParts(c)
	if err != nil {
		return nil, err
	}
	if axis == depth+1 {
		raw := offsets.Raw()
		counts := make([]int64, len(raw)-1)
		for i := range counts {
			counts[i] = raw[i+1] - raw[i]
		}
		return WrapPrimitive(counts), nil
	}
	inner, err := num(content, axis, depth+1)
	if err != nil {
		return nil, err
	}
	return newListOffset(offsets, inner, nil, nil), nil
}

// Flatten removes the lists at axis, joining the elements of each into
// its parent. Axis 0 has no parent and cannot be flattened. Missing
// lists contribute no elements.
func Flatten(c Content, axis int) (Content, error) {
	axis, err := wrapAxis(c, axis)
	if err != nil {
		return nil, err
	}
	if axis == 0 {
		return nil, errors.New(errors.PhaseTransform, errors.KindInvalidInput).
			Node(c.Kind().String()).
			Detail("axis 0 cannot be flattened").
			Build()
	}
	_, out, err := offsetsAndFlattened(c, axis, 0)
	return out, err
}

// offsetsAndFlattened returns the flattened node. When the lists removed
// were the rows of c, it also returns their offsets into the result;
// otherwise the offsets are empty.
func offsetsAndFlattened(c Content, axis, depth int) (index.Index64, Content, error) {
	switch n := c.(type) {
	case *EmptyArray:
		return index.Index64{}, n, nil
	case *PrimitiveArray:
		return index.Index64{}, nil, axisTooDeep(KindPrimitive, axis)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return index.Index64{}, nil, err
		}
		return offsetsAndFlattened(next, axis, depth)
	case *IndexedOptionArray:
		carry, _, outIndex, err := kernel.OptionProject(n.index.To64().Raw(), n.content.Len())
		if err != nil {
			return index.Index64{}, nil, atNode(err, KindIndexedOption)
		}
		next, err := n.content.Carry(index.Wrap(carry))
		if err != nil {
			return index.Index64{}, nil, err
		}
		offsets, flat, err := offsetsAndFlattened(next, axis, depth)
		if err != nil {
			return index.Index64{}, nil, err
		}
		if offsets.Len() == 0 {
			return offsets, newIndexedOption(index.Wrap(outIndex), flat, nil, nil), nil
		}
		present := offsets.Raw()
		full := make([]int64, len(outIndex)+1)
		for i, k := range outIndex {
			full[i+1] = full[i]
			if k >= 0 {
				full[i+1] += present[k+1] - present[k]
			}
		}
		return index.Wrap(full), flat, nil
	case *RecordArray:
		fields := make([]Content, len(n.fields))
		for i := range n.fields {
			f, err := n.fieldContent(i)
			if err != nil {
				return index.Index64{}, nil, err
			}
			offsets, flat, err := offsetsAndFlattened(f, axis, depth)
			if err != nil {
				return index.Index64{}, nil, inField(err, n.keys[i])
			}
			if offsets.Len() != 0 {
				return index.Index64{}, nil, errors.New(errors.PhaseTransform, errors.KindUnsupported).
					Node(KindRecord.String()).
					Path(n.keys[i]).
					Detail("records cannot be flattened at axis %d; flatten their fields instead", axis).
					Build()
			}
			fields[i] = flat
		}
		return index.Index64{}, newRecord(n.keys, fields, n.length, n.params, nil), nil
	case *UnionArray:
		var own bool
		out, err := mapContents(n, n.params, func(next Content) (Content, error) {
			offsets, flat, err := offsetsAndFlattened(next, axis, depth)
			own = own || offsets.Len() != 0
			return flat, err
		})
		if err != nil {
			return index.Index64{}, nil, err
		}
		if own {
			return index.Index64{}, nil, errors.New(errors.PhaseTransform, errors.KindUnsupported).
				Node(KindUnion.String()).
				Detail("unions cannot be flattened at axis %d", axis).
				Build()
		}
		return index.Index64{}, out, nil
	}

	offsets, content, err := listParts(c)
	if err != nil {
		return index.Index64{}, nil, err
	}
	last := offsets.At(offsets.Len() - 1)
	if axis == depth+1 {
		return offsets, content.GetitemRange(0, last), nil
	}
	inner, flat, err := offsetsAndFlattened(content.GetitemRange(0, last), axis, depth+1)
	if err != nil {
		return index.Index64{}, nil, err
	}
	if inner.Len() == 0 {
		return index.Index64{}, newListOffset(offsets, flat, c.Parameters(), nil), nil
	}
	return index.Index64{}, newListOffset(index.Wrap(kernel.Gather(inner.Raw(), offsets.Raw())), flat, c.Parameters(), nil), nil
}

// LocalIndex numbers the elements of every list at axis from 0. At axis
// 0 the rows of c are numbered.
func LocalIndex(c Content, axis int) (Content, error) {
	axis, err := wrapAxis(c, axis)
	if err != nil {
		return nil, err
	}
	if axis == 0 {
		return WrapPrimitive(index.Arange(c.Len()).Raw()), nil
	}
	return localIndex(c, axis, 0)
}

func localIndex(c Content, axis, depth int) (Content, error) {
	switch n := c.(type) {
	case *EmptyArray:
		return WrapPrimitive([]int64{}), nil
	case *PrimitiveArray:
		return nil, axisTooDeep(KindPrimitive, axis)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return localIndex(next, axis, depth)
	case *IndexedOptionArray:
		return overOption(n, nil, func(next Content) (Content, error) {
			return localIndex(next, axis, depth)
		})
	case *RecordArray:
		fields, err := mapFields(n, func(f Content) (Content, error) {
			return localIndex(f, axis, depth)
		})
		if err != nil {
			return nil, err
		}
		return newRecord(n.keys, fields, n.length, nil, nil), nil
	case *UnionArray:
		return mapContents(n, nil, func(next Content) (Content, error) {
			return localIndex(next, axis, depth)
		})
	}

	offsets, content, err := listParts(c)
	if err != nil {
		return nil, err
	}
	if axis == depth+1 {
		raw := offsets.Raw()
		values := make([]int64, raw[len(raw)-1])
		for i := 0; i < len(raw)-1; i++ {
			for k := raw[i]; k < raw[i+1]; k++ {
				values[k] = k - raw[i]
			}
		}
		return newListOffset(offsets, WrapPrimitive(values), nil, nil), nil
	}
	inner, err := localIndex(content, axis, depth+1)
	if err != nil {
		return nil, err
	}
	return newListOffset(offsets, inner, nil, nil), nil
}

// RPad pads every list at axis with missing values to at least target
// elements. At axis 0 the rows of c are padded.
func RPad(c Content, target int64, axis int) (Content, error) {
	return rpadTop(c, target, axis, false)
}

// RPadAndClip pads or cuts every list at axis to exactly target
// elements. The padded lists become a RegularArray.
func RPadAndClip(c Content, target int64, axis int) (Content, error) {
	return rpadTop(c, target, axis, true)
}

func rpadTop(c Content, target int64, axis int, clip bool) (Content, error) {
	if target < 0 {
		return nil, errors.New(errors.PhaseTransform, errors.KindInvalidInput).
			Node(c.Kind().String()).
			Value(target).
			Detail("pad target must not be negative").
			Build()
	}
	axis, err := wrapAxis(c, axis)
	if err != nil {
		return nil, err
	}
	if axis == 0 {
		return rpadAxis0(c, target, clip), nil
	}
	return rpad(c, target, axis, 0, clip)
}

func rpadAxis0(c Content, target int64, clip bool) Content {
	n := c.Len()
	if !clip && target <= n {
		return c
	}
	length := target
	if !clip {
		length = max(n, target)
	}
	idx := make([]int64, length)
	for i := range idx {
		idx[i] = -1
		if int64(i) < n {
			idx[i] = int64(i)
		}
	}
	return newIndexedOption(index.Wrap(idx), c, nil, nil)
}

func rpad(c Content, target int64, axis, depth int, clip bool) (Content, error) {
	switch n := c.(type) {
	case *EmptyArray:
		return n, nil
	case *PrimitiveArray:
		return nil, axisTooDeep(KindPrimitive, axis)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return rpad(next, target, axis, depth, clip)
	case *IndexedOptionArray:
		return overOption(n, n.params, func(next Content) (Content, error) {
			return rpad(next, target, axis, depth, clip)
		})
	case *RecordArray:
		fields, err := mapFields(n, func(f Content) (Content, error) {
			return rpad(f, target, axis, depth, clip)
		})
		if err != nil {
			return nil, err
		}
		return newRecord(n.keys, fields, n.length, n.params, nil), nil
	case *UnionArray:
		return mapContents(n, n.params, func(next Content) (Content, error) {
			return rpad(next, target, axis, depth, clip)
		})
	case *RegularArray:
		if axis == depth+1 && (n.size == target || (!clip && n.size > target)) {
			return n, nil
		}
		if axis > depth+1 {
			inner, err := rpad(n.content, target, axis, depth+1, clip)
			if err != nil {
				return nil, err
			}
			return newRegular(inner, n.size, n.length, n.params, nil), nil
		}
	}

	offsets, content, err := listParts(c)
	if err != nil {
		return nil, err
	}
	if axis > depth+1 {
		inner, err := rpad(content, target, axis, depth+1, clip)
		if err != nil {
			return nil, err
		}
		return newListOffset(offsets, inner, c.Parameters(), nil), nil
	}

	raw := offsets.Raw()
	rows := int64(len(raw) - 1)
	var idx []int64
	padded := make([]int64, rows+1)
	for i := int64(0); i < rows; i++ {
		have := raw[i+1] - raw[i]
		size := target
		if !clip {
			size = max(have, target)
		}
		for j := int64(0); j < size; j++ {
			if j < have {
				idx = append(idx, raw[i]+j)
			} else {
				idx = append(idx, -1)
			}
		}
		padded[i+1] = padded[i] + size
	}
	if idx == nil {
		idx = []int64{}
	}
	option := newIndexedOption(index.Wrap(idx), content, nil, nil)
	if clip {
		return newRegular(option, target, rows, c.Parameters(), nil), nil
	}
	return newListOffset(index.Wrap(padded), option, c.Parameters(), nil), nil
}

// FillNA replaces every missing value in c with the single row of
// value. Where value cannot merge with the present values the rows
// become a union of both.
func FillNA(c Content, value Content) (Content, error) {
	if value.Len() != 1 {
		return nil, errors.New(errors.PhaseTransform, errors.KindInvalidInput).
			Node(value.Kind().String()).
			Detail("fill value must have exactly one row, got %d", value.Len()).
			Build()
	}
	return fillNA(c, value)
}

func fillNA(c Content, value Content) (Content, error) {
	switch n := c.(type) {
	case *IndexedOptionArray:
		content, err := fillNA(n.content, value)
		if err != nil {
			return nil, err
		}
		var merged Content
		merged, err = Merge(content, value)
		if errors.IsKind(err, errors.KindKindMismatch) {
			merged = MergeAsUnion(content, value)
		} else if err != nil {
			return nil, err
		}
		fill := content.Len()
		idx := make([]int64, n.Len())
		for i := range idx {
			idx[i] = n.index.Get(int64(i))
			if idx[i] < 0 {
				idx[i] = fill
			}
		}
		return Simplify(newIndexed(index.Wrap(idx), merged, n.params, n.id))
	case *IndexedArray:
		content, err := fillNA(n.content, value)
		if err != nil {
			return nil, err
		}
		return newIndexed(n.index, content, n.params, n.id), nil
	case *ListOffsetArray:
		content, err := fillNA(n.content, value)
		if err != nil {
			return nil, err
		}
		return newListOffset(n.offsets, content, n.params, n.id), nil
	case *ListArray:
		content, err := fillNA(n.content, value)
		if err != nil {
			return nil, err
		}
		return newList(n.starts, n.stops, content, n.params, n.id), nil
	case *RegularArray:
		content, err := fillNA(n.content, value)
		if err != nil {
			return nil, err
		}
		return newRegular(content, n.size, n.length, n.params, n.id), nil
	case *RecordArray:
		fields := make([]Content, len(n.fields))
		for i, f := range n.fields {
			out, err := fillNA(f, value)
			if err != nil {
				return nil, inField(err, n.keys[i])
			}
			fields[i] = out
		}
		return newRecord(n.keys, fields, n.length, n.params, n.id), nil
	case *UnionArray:
		contents := make([]Content, len(n.contents))
		for t, content := range n.contents {
			out, err := fillNA(content, value)
			if err != nil {
				return nil, err
			}
			contents[t] = out
		}
		return newUnion(n.tags, n.index, contents, n.params, n.id), nil
	}
	return c, nil
}

// Simplify collapses an indexed or option node whose content is itself
// indexed or optional into a single node over the inner content. Other
// nodes are returned unchanged.
func Simplify(c Content) (Content, error) {
	var outer index.Index
	var optional bool
	var params Parameters
	switch n := c.(type) {
	case *IndexedArray:
		outer, params = n.index, n.params
	case *IndexedOptionArray:
		outer, params, optional = n.index, n.params, true
	default:
		return c, nil
	}

	var inner index.Index
	var content Content
	switch n := innerOf(c).(type) {
	case *IndexedArray:
		inner, content = n.index, n.content
	case *IndexedOptionArray:
		inner, content, optional = n.index, n.content, true
	default:
		return c, nil
	}

	idx := make([]int64, outer.Len())
	for i := range idx {
		j := outer.Get(int64(i))
		if j < 0 && optional {
			idx[i] = -1
			continue
		}
		if j < 0 || j >= inner.Len() {
			e := errors.OutOfBounds(errors.PhaseTransform, int64(i), j, inner.Len())
			e.Node = c.Kind().String()
			return nil, e
		}
		idx[i] = inner.Get(j)
	}
	if optional {
		return newIndexedOption(index.Wrap(idx), content, params, c.Identities()), nil
	}
	return newIndexed(index.Wrap(idx), content, params, c.Identities()), nil
}

func innerOf(c Content) Content {
	switch n := c.(type) {
	case *IndexedArray:
		return n.content
	case *IndexedOptionArray:
		return n.content
	}
	return nil
}

// listParts returns 0-based offsets for the rows of a list node and the
// content they index.
func listParts(c Content) (index.Index64, Content, error) {
	switch n := c.(type) {
	case *ListOffsetArray:
		l := n.ToListOffsetArray64(true)
		return l.offsets.To64(), l.content, nil
	case *ListArray:
		l, err := n.ToListOffsetArray64(true)
		if err != nil {
			return index.Index64{}, nil, err
		}
		return l.offsets.To64(), l.content, nil
	case *RegularArray:
		return n.CompactOffsets64(), n.content, nil
	}
	return index.Index64{}, nil, errors.Unsupported(errors.PhaseTransform, "list operation on "+c.Kind().String())
}

// overOption applies fn to the present rows of a and puts the missing
// rows back.
func overOption(a *IndexedOptionArray, params Parameters, fn func(Content) (Content, error)) (Content, error) {
	carry, _, outIndex, err := kernel.OptionProject(a.index.To64().Raw(), a.content.Len())
	if err != nil {
		return nil, atNode(err, KindIndexedOption)
	}
	next, err := a.content.Carry(index.Wrap(carry))
	if err != nil {
		return nil, err
	}
	out, err := fn(next)
	if err != nil {
		return nil, err
	}
	return newIndexedOption(index.Wrap(outIndex), out, params, nil), nil
}

func mapFields(r *RecordArray, fn func(Content) (Content, error)) ([]Content, error) {
	fields := make([]Content, len(r.fields))
	for i := range r.fields {
		f, err := r.fieldContent(i)
		if err != nil {
			return nil, err
		}
		if fields[i], err = fn(f); err != nil {
			return nil, inField(err, r.keys[i])
		}
	}
	return fields, nil
}

// mapContents applies fn to the rows of every alternative of u, in
// order, and rebuilds the union over the results.
func mapContents(u *UnionArray, params Parameters, fn func(Content) (Content, error)) (Content, error) {
	if err := u.checkTags(); err != nil {
		return nil, err
	}
	contents := make([]Content, len(u.contents))
	for t := range u.contents {
		projected, _, err := u.project(t)
		if err != nil {
			return nil, err
		}
		if contents[t], err = fn(projected); err != nil {
			return nil, err
		}
	}
	outIndex := kernel.RegularUnionIndex(u.tags.Raw(), len(contents))
	return newUnion(u.tags, index.Wrap(outIndex), contents, params, nil), nil
}

// wrapAxis resolves axis against c. Axis 0 is the rows of c; axis d is
// the elements of the lists d levels down. Indexed, option, record and
// union nodes do not count as levels. A negative axis counts from the
// innermost level and needs a tree whose leaves all sit at one depth.
func wrapAxis(c Content, axis int) (int, error) {
	if axis >= 0 {
		return axis, nil
	}
	lo, hi := c.MinMaxDepth()
	if lo != hi {
		return 0, errors.New(errors.PhaseTransform, errors.KindDepth).
			Node(c.Kind().String()).
			Value(axis).
			Detail("negative axis %d is ambiguous for depths %d to %d", axis, lo, hi).
			Build()
	}
	if axis+lo < 0 {
		return 0, axisTooDeep(c.Kind(), axis)
	}
	return axis + lo, nil
}

func axisTooDeep(k Kind, axis int) error {
	return errors.New(errors.PhaseTransform, errors.KindDepth).
		Node(k.String()).
		Value(axis).
		Detail("axis %d exceeds the depth of this array", axis).
		Build()
}
