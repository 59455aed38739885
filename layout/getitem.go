package layout

import (
	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
	"github.com/wippyai/jagged/slice"
)

// Getitem applies a slice to c. The result is a Content, or the value
// GetitemAt would return when integers consume every dimension.
//
// The node is wrapped in a one-row RegularArray so that the first item
// is handled like any inner dimension; the single row of the result is
// then unwrapped.
func Getitem(c Content, s slice.Slice) (any, error) {
	minDepth, maxDepth := c.MinMaxDepth()
	norm, err := s.Normalize(minDepth, maxDepth)
	if err != nil {
		return nil, err
	}

	wrapper := newRegular(c, c.Len(), 1, nil, nil)
	out, err := getitemNext(wrapper, norm.Items.Head(), norm.Items.Tail(), index.Empty64())
	if err != nil {
		return nil, err
	}

	for _, axis := range norm.NewAxes {
		if out, err = insertAxis(out, axis+1); err != nil {
			return nil, err
		}
	}

	if out.Len() == 0 {
		return out.GetitemRange(0, 0), nil
	}
	return out.GetitemAt(0)
}

// GetitemContent is Getitem for callers that expect a node. A scalar
// result is returned as a one-element leaf.
func GetitemContent(c Content, s slice.Slice) (Content, error) {
	v, err := Getitem(c, s)
	if err != nil {
		return nil, err
	}
	return asContent(v)
}

// getitemNext applies head to the dimension below the rows of c and tail
// to the dimensions after it. The rows of c are preserved: they are the
// lanes that outer dimensions already produced. advanced holds, for each
// row, the position in the fancy index broadcast that row belongs to; it
// is empty until a fancy index has been applied.
func getitemNext(c Content, head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	if head == nil {
		return c, nil
	}

	switch h := head.(type) {
	case slice.Field, slice.Fields:
		next, err := selectFields(c, h)
		if err != nil {
			return nil, err
		}
		return getitemNext(next, tail.Head(), tail.Tail(), advanced)
	case slice.Missing:
		return getitemNextMissing(c, h, tail, advanced)
	case slice.Ellipsis, slice.NewAxis:
		return nil, errors.InvalidInput(errors.PhaseSlice, h.String()+" must be resolved before slicing")
	}

	switch n := c.(type) {
	case *EmptyArray:
		if _, ok := head.(slice.Range); ok {
			return n, nil
		}
		return nil, tooDeep(KindEmpty)
	case *PrimitiveArray:
		return nil, tooDeep(KindPrimitive)
	case *ListOffsetArray:
		l := n.ToListOffsetArray64(true)
		offsets := l.offsets.To64()
		return listGetitemNext(n, offsets.Range(0, l.Len()), offsets.Range(1, offsets.Len()), l.content, head, tail, advanced)
	case *ListArray:
		return listGetitemNext(n, n.starts64(), n.stops64(), n.content, head, tail, advanced)
	case *RegularArray:
		return n.getitemNext(head, tail, advanced)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return getitemNext(next, head, tail, advanced)
	case *IndexedOptionArray:
		return n.getitemNext(head, tail, advanced)
	case *RecordArray:
		return n.getitemNext(head, tail, advanced)
	case *UnionArray:
		return n.getitemNext(head, tail, advanced)
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "slicing "+c.Kind().String())
}

func selectFields(c Content, item slice.Item) (Content, error) {
	switch it := item.(type) {
	case slice.Field:
		return c.GetitemField(it.Key)
	case slice.Fields:
		return c.GetitemFields(it.Keys)
	}
	return c, nil
}

// hoistField removes the first field selector from items. Field
// selectors commute with structural items, so a record applies the
// first one it sees before broadcasting the rest over its fields.
func hoistField(items slice.Slice) (slice.Item, slice.Slice) {
	for i, it := range items {
		switch it.(type) {
		case slice.Field, slice.Fields:
			rest := make(slice.Slice, 0, len(items)-1)
			rest = append(rest, items[:i]...)
			return it, append(rest, items[i+1:]...)
		}
	}
	return nil, items
}

// listGetitemNext is shared by the list kinds, working on 64-bit starts
// and stops. n supplies parameters and provenance for the rebuilt list.
func listGetitemNext(n Content, starts, stops index.Index64, content Content, head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	k := n.Kind()
	switch h := head.(type) {
	case slice.At:
		carry, err := kernel.ListAt(starts.Raw(), stops.Raw(), h.At)
		if err != nil {
			return nil, atNode(err, k)
		}
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		return getitemNext(next, tail.Head(), tail.Tail(), advanced)

	case slice.Range:
		offsets, carry := kernel.ListRange(starts.Raw(), stops.Raw(), h.Start, h.Stop, h.Step, h.HasStart, h.HasStop)
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		nextAdvanced := advanced
		if advanced.Len() != 0 {
			nextAdvanced = index.Wrap(kernel.SpreadAdvanced(advanced.Raw(), offsets))
		}
		out, err := getitemNext(next, tail.Head(), tail.Tail(), nextAdvanced)
		if err != nil {
			return nil, err
		}
		return newListOffset(index.Wrap(offsets), out, n.Parameters(), n.Identities()), nil

	case slice.Array:
		if advanced.Len() == 0 {
			carry, nextAdvanced, err := kernel.ListArray(starts.Raw(), stops.Raw(), h.Index.Raw())
			if err != nil {
				return nil, atNode(err, k)
			}
			next, err := content.Carry(index.Wrap(carry))
			if err != nil {
				return nil, err
			}
			out, err := getitemNext(next, tail.Head(), tail.Tail(), index.Wrap(nextAdvanced))
			if err != nil {
				return nil, err
			}
			return newRegular(out, h.Index.Len(), starts.Len(), n.Parameters(), n.Identities()), nil
		}
		carry, nextAdvanced, err := kernel.ListArrayAdvanced(starts.Raw(), stops.Raw(), h.Index.Raw(), advanced.Raw())
		if err != nil {
			return nil, atNode(err, k)
		}
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		return getitemNext(next, tail.Head(), tail.Tail(), index.Wrap(nextAdvanced))

	case slice.Jagged:
		if advanced.Len() != 0 {
			return nil, errors.InvalidInput(errors.PhaseSlice, "cannot mix a jagged slice with advanced indexing")
		}
		multiStarts, multiStops, carry, err := kernel.JaggedExpand(starts.Raw(), stops.Raw(), h.Offsets.Raw())
		if err != nil {
			return nil, atNode(err, k)
		}
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		down, err := getitemNextJagged(next, index.Wrap(multiStarts), index.Wrap(multiStops), h.Content, tail)
		if err != nil {
			return nil, err
		}
		return newRegular(down, h.Len(), starts.Len(), n.Parameters(), n.Identities()), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "slice item "+head.String()+" on "+k.String())
}

func (r *RegularArray) getitemNext(head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	switch h := head.(type) {
	case slice.At:
		carry, err := kernel.RegularAt(r.length, r.size, h.At)
		if err != nil {
			return nil, atNode(err, KindRegular)
		}
		next, err := r.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		return getitemNext(next, tail.Head(), tail.Tail(), advanced)

	case slice.Range:
		start, stop := kernel.RegularizeRange(h.Start, h.Stop, h.Step, h.HasStart, h.HasStop, r.size)
		nextSize := kernel.RangeLen(start, stop, h.Step)
		carry := kernel.RegularRange(r.length, r.size, start, h.Step, nextSize)
		next, err := r.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		nextAdvanced := advanced
		if advanced.Len() != 0 {
			offsets := kernel.RegularOffsets(r.length, nextSize)
			nextAdvanced = index.Wrap(kernel.SpreadAdvanced(advanced.Raw(), offsets))
		}
		out, err := getitemNext(next, tail.Head(), tail.Tail(), nextAdvanced)
		if err != nil {
			return nil, err
		}
		return newRegular(out, nextSize, r.length, r.params, r.id), nil

	case slice.Array:
		if advanced.Len() == 0 {
			carry, nextAdvanced, err := kernel.RegularArray(r.length, r.size, h.Index.Raw())
			if err != nil {
				return nil, atNode(err, KindRegular)
			}
			next, err := r.content.Carry(index.Wrap(carry))
			if err != nil {
				return nil, err
			}
			out, err := getitemNext(next, tail.Head(), tail.Tail(), index.Wrap(nextAdvanced))
			if err != nil {
				return nil, err
			}
			return newRegular(out, h.Index.Len(), r.length, r.params, r.id), nil
		}
		carry, nextAdvanced, err := kernel.RegularArrayAdvanced(r.length, r.size, h.Index.Raw(), advanced.Raw())
		if err != nil {
			return nil, atNode(err, KindRegular)
		}
		next, err := r.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		return getitemNext(next, tail.Head(), tail.Tail(), index.Wrap(nextAdvanced))

	case slice.Jagged:
		if advanced.Len() != 0 {
			return nil, errors.InvalidInput(errors.PhaseSlice, "cannot mix a jagged slice with advanced indexing")
		}
		if h.Len() != r.size {
			return nil, errors.New(errors.PhaseSlice, errors.KindShape).
				Node(KindRegular.String()).
				Detail("cannot fit jagged slice with %d rows into rows of size %d", h.Len(), r.size).
				Build()
		}
		offsets := r.CompactOffsets64()
		multiStarts, multiStops, carry, err := kernel.JaggedExpand(
			offsets.Range(0, r.length).Raw(), offsets.Range(1, r.length+1).Raw(), h.Offsets.Raw())
		if err != nil {
			return nil, atNode(err, KindRegular)
		}
		next, err := r.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		down, err := getitemNextJagged(next, index.Wrap(multiStarts), index.Wrap(multiStops), h.Content, tail)
		if err != nil {
			return nil, err
		}
		return newRegular(down, h.Len(), r.length, r.params, r.id), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "slice item "+head.String()+" on "+KindRegular.String())
}

func (a *IndexedOptionArray) getitemNext(head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	carry, rows, outIndex, err := kernel.OptionProject(a.index.To64().Raw(), a.content.Len())
	if err != nil {
		return nil, atNode(err, KindIndexedOption)
	}
	next, err := a.content.Carry(index.Wrap(carry))
	if err != nil {
		return nil, err
	}
	nextAdvanced := advanced
	if advanced.Len() != 0 {
		nextAdvanced = index.Wrap(kernel.Gather(advanced.Raw(), rows))
	}
	out, err := getitemNext(next, head, tail, nextAdvanced)
	if err != nil {
		return nil, err
	}
	return newIndexedOption(index.Wrap(outIndex), out, a.params, a.id), nil
}

func (r *RecordArray) getitemNext(head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	items := append(slice.Slice{head}, tail...)
	if sel, rest := hoistField(items); sel != nil {
		projected, err := selectFields(r, sel)
		if err != nil {
			return nil, err
		}
		return getitemNext(projected, rest.Head(), rest.Tail(), advanced)
	}
	if len(r.fields) == 0 {
		return nil, tooDeep(KindRecord)
	}

	fields := make([]Content, len(r.fields))
	for i := range r.fields {
		f, err := r.fieldContent(i)
		if err != nil {
			return nil, err
		}
		out, err := getitemNext(f, head, tail, advanced)
		if err != nil {
			return nil, inField(err, r.keys[i])
		}
		fields[i] = out
	}
	return newRecord(r.keys, fields, r.length, r.params, r.id), nil
}

func (u *UnionArray) getitemNext(head slice.Item, tail slice.Slice, advanced index.Index64) (Content, error) {
	if err := u.checkTags(); err != nil {
		return nil, err
	}
	if ce := Logger().Check(zap.DebugLevel, "slicing union per alternative"); ce != nil {
		ce.Write(zap.Int("contents", len(u.contents)), zap.Int64("rows", u.Len()), zap.Stringer("head", head))
	}

	contents := make([]Content, len(u.contents))
	for t := range u.contents {
		projected, rows, err := u.project(t)
		if err != nil {
			return nil, err
		}
		nextAdvanced := advanced
		if advanced.Len() != 0 {
			nextAdvanced = index.Wrap(kernel.Gather(advanced.Raw(), rows.Raw()))
		}
		out, err := getitemNext(projected, head, tail, nextAdvanced)
		if err != nil {
			return nil, err
		}
		contents[t] = out
	}
	outIndex := kernel.RegularUnionIndex(u.tags.Raw(), len(contents))
	return newUnion(u.tags, index.Wrap(outIndex), contents, u.params, u.id), nil
}

func getitemNextMissing(c Content, m slice.Missing, tail slice.Slice, advanced index.Index64) (Content, error) {
	if advanced.Len() != 0 {
		return nil, errors.InvalidInput(errors.PhaseSlice, "cannot mix missing values in a slice with advanced indexing")
	}
	next, err := getitemNext(c, m.Content, tail, advanced)
	if err != nil {
		return nil, err
	}
	if ce := Logger().Check(zap.DebugLevel, "widening masked slice to option"); ce != nil {
		ce.Write(zap.Int64("positions", m.Len()), zap.Stringer("result", next.Kind()))
	}
	return wrapMissing(next, m.Index)
}

// wrapMissing turns the RegularArray produced by a masked index's valid
// positions into rows over an IndexedOptionArray with the nulls put back.
func wrapMissing(next Content, idx index.Index64) (Content, error) {
	switch raw := next.(type) {
	case *RegularArray:
		lanes := idx.Len()
		outIndex := kernel.MissingRepeat(idx.Raw(), raw.length, raw.size)
		option := newIndexedOption(index.Wrap(outIndex), raw.content, nil, nil)
		if raw.id != nil {
			rowOffsets := index.Wrap(kernel.RegularOffsets(raw.length, lanes))
			id, err := raw.id.FromStartsStops(rowOffsets.Range(0, raw.length), rowOffsets.Range(1, raw.length+1), raw.length*lanes)
			if err != nil {
				return nil, err
			}
			option.id = id
		}
		return newRegular(option, lanes, raw.length, raw.params, raw.id), nil
	case *RecordArray:
		fields := make([]Content, len(raw.fields))
		for i := range raw.fields {
			f, err := raw.fieldContent(i)
			if err != nil {
				return nil, err
			}
			if fields[i], err = wrapMissing(f, idx); err != nil {
				return nil, inField(err, raw.keys[i])
			}
		}
		return newRecord(raw.keys, fields, raw.length, raw.params, raw.id), nil
	case *IndexedOptionArray:
		content, err := wrapMissing(raw.content, idx)
		if err != nil {
			return nil, err
		}
		return newIndexedOption(raw.index, content, raw.params, raw.id), nil
	case *UnionArray:
		contents := make([]Content, len(raw.contents))
		for t, c := range raw.contents {
			out, err := wrapMissing(c, idx)
			if err != nil {
				return nil, err
			}
			contents[t] = out
		}
		return newUnion(raw.tags, raw.index, contents, raw.params, raw.id), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "masked slice producing "+next.Kind().String())
}

// insertAxis inserts a length-1 dimension before dimension d of c, where
// dimension 0 is the rows of c.
func insertAxis(c Content, d int) (Content, error) {
	if d <= 1 {
		return newRegular(c, 1, c.Len(), nil, nil), nil
	}
	switch n := c.(type) {
	case *ListOffsetArray:
		content, err := insertAxis(n.content, d-1)
		if err != nil {
			return nil, err
		}
		return newListOffset(n.offsets, content, n.params, n.id), nil
	case *ListArray:
		content, err := insertAxis(n.content, d-1)
		if err != nil {
			return nil, err
		}
		return newList(n.starts, n.stops, content, n.params, n.id), nil
	case *RegularArray:
		content, err := insertAxis(n.content, d-1)
		if err != nil {
			return nil, err
		}
		return newRegular(content, n.size, n.length, n.params, n.id), nil
	case *IndexedArray:
		content, err := insertAxis(n.content, d)
		if err != nil {
			return nil, err
		}
		return newIndexed(n.index, content, n.params, n.id), nil
	case *IndexedOptionArray:
		content, err := insertAxis(n.content, d)
		if err != nil {
			return nil, err
		}
		return newIndexedOption(n.index, content, n.params, n.id), nil
	case *RecordArray:
		fields := make([]Content, len(n.fields))
		for i, f := range n.fields {
			out, err := insertAxis(f, d)
			if err != nil {
				return nil, inField(err, n.keys[i])
			}
			fields[i] = out
		}
		return newRecord(n.keys, fields, n.length, n.params, n.id), nil
	case *UnionArray:
		contents := make([]Content, len(n.contents))
		for t, cc := range n.contents {
			out, err := insertAxis(cc, d)
			if err != nil {
				return nil, err
			}
			contents[t] = out
		}
		return newUnion(n.tags, n.index, contents, n.params, n.id), nil
	}
	return nil, tooDeep(c.Kind())
}

// asContent wraps a scalar or record row as a one-row node.
func asContent(v any) (Content, error) {
	switch x := v.(type) {
	case Content:
		return x, nil
	case *Record:
		return x.array.GetitemRange(x.at, x.at+1), nil
	case nil:
		return newIndexedOption(index.New[int64](-1), NewEmpty(), nil, nil), nil
	case bool:
		return NewPrimitive([]bool{x}), nil
	case int8:
		return NewPrimitive([]int8{x}), nil
	case int16:
		return NewPrimitive([]int16{x}), nil
	case int32:
		return NewPrimitive([]int32{x}), nil
	case int64:
		return NewPrimitive([]int64{x}), nil
	case uint8:
		return NewPrimitive([]uint8{x}), nil
	case uint16:
		return NewPrimitive([]uint16{x}), nil
	case uint32:
		return NewPrimitive([]uint32{x}), nil
	case uint64:
		return NewPrimitive([]uint64{x}), nil
	case float32:
		return NewPrimitive([]float32{x}), nil
	case float64:
		return NewPrimitive([]float64{x}), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "value of unknown type")
}
