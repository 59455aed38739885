package layout

import (
	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
	"github.com/wippyai/jagged/slice"
)

// getitemNextJagged applies one jagged slice row to each row of c: row i
// of c is sliced by content[sliceStarts[i]:sliceStops[i]]. The rows of c
// are preserved.
func getitemNextJagged(c Content, sliceStarts, sliceStops index.Index64, content slice.Item, tail slice.Slice) (Content, error) {
	if sliceStarts.Len() != c.Len() {
		return nil, errors.New(errors.PhaseSlice, errors.KindShape).
			Node(c.Kind().String()).
			Detail("jagged slice has %d rows, array has %d", sliceStarts.Len(), c.Len()).
			Build()
	}

	switch n := c.(type) {
	case *EmptyArray:
		if sliceStarts.Len() != 0 {
			return nil, tooDeep(KindEmpty)
		}
		return newListOffset(index.New[int64](0), n, nil, nil), nil
	case *PrimitiveArray:
		return nil, tooDeep(KindPrimitive)
	case *ListOffsetArray:
		l := n.ToListOffsetArray64(true)
		offsets := l.offsets.To64()
		return listGetitemNextJagged(n, offsets.Range(0, l.Len()), offsets.Range(1, offsets.Len()), l.content, sliceStarts, sliceStops, content, tail)
	case *ListArray:
		return listGetitemNextJagged(n, n.starts64(), n.stops64(), n.content, sliceStarts, sliceStops, content, tail)
	case *RegularArray:
		l := n.ToListOffsetArray64()
		offsets := l.offsets.To64()
		return listGetitemNextJagged(n, offsets.Range(0, n.length), offsets.Range(1, n.length+1), n.content, sliceStarts, sliceStops, content, tail)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return getitemNextJagged(next, sliceStarts, sliceStops, content, tail)
	case *IndexedOptionArray:
		carry, rows, outIndex, err := kernel.OptionProject(n.index.To64().Raw(), n.content.Len())
		if err != nil {
			return nil, atNode(err, KindIndexedOption)
		}
		next, err := n.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		starts := index.Wrap(kernel.Gather(sliceStarts.Raw(), rows))
		stops := index.Wrap(kernel.Gather(sliceStops.Raw(), rows))
		out, err := getitemNextJagged(next, starts, stops, content, tail)
		if err != nil {
			return nil, err
		}
		return newIndexedOption(index.Wrap(outIndex), out, n.params, n.id), nil
	case *RecordArray:
		if sel, rest := hoistField(tail); sel != nil {
			projected, err := selectFields(n, sel)
			if err != nil {
				return nil, err
			}
			return getitemNextJagged(projected, sliceStarts, sliceStops, content, rest)
		}
		if len(n.fields) == 0 {
			return nil, tooDeep(KindRecord)
		}
		fields := make([]Content, len(n.fields))
		for i := range n.fields {
			f, err := n.fieldContent(i)
			if err != nil {
				return nil, err
			}
			out, err := getitemNextJagged(f, sliceStarts, sliceStops, content, tail)
			if err != nil {
				return nil, inField(err, n.keys[i])
			}
			fields[i] = out
		}
		return newRecord(n.keys, fields, n.length, n.params, n.id), nil
	case *UnionArray:
		if err := n.checkTags(); err != nil {
			return nil, err
		}
		contents := make([]Content, len(n.contents))
		for t := range n.contents {
			projected, rows, err := n.project(t)
			if err != nil {
				return nil, err
			}
			starts := index.Wrap(kernel.Gather(sliceStarts.Raw(), rows.Raw()))
			stops := index.Wrap(kernel.Gather(sliceStops.Raw(), rows.Raw()))
			out, err := getitemNextJagged(projected, starts, stops, content, tail)
			if err != nil {
				return nil, err
			}
			contents[t] = out
		}
		outIndex := kernel.RegularUnionIndex(n.tags.Raw(), len(contents))
		return newUnion(n.tags, index.Wrap(outIndex), contents, n.params, n.id), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "jagged slicing of "+c.Kind().String())
}

func listGetitemNextJagged(n Content, starts, stops index.Index64, content Content, sliceStarts, sliceStops index.Index64, sliceContent slice.Item, tail slice.Slice) (Content, error) {
	k := n.Kind()
	switch sc := sliceContent.(type) {
	case slice.Array:
		offsets, carry, err := kernel.JaggedApply(sliceStarts.Raw(), sliceStops.Raw(), sc.Index.Raw(), starts.Raw(), stops.Raw())
		if err != nil {
			return nil, atNode(err, k)
		}
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		out, err := getitemNext(next, tail.Head(), tail.Tail(), index.Empty64())
		if err != nil {
			return nil, err
		}
		return newListOffset(index.Wrap(offsets), out, n.Parameters(), n.Identities()), nil

	case slice.Missing:
		small, values, large, outIndex := kernel.JaggedMissing(sliceStarts.Raw(), sliceStops.Raw(), sc.Index.Raw(), sc.Content.Index.Raw())
		if ce := Logger().Check(zap.DebugLevel, "jagged slice with missing positions"); ce != nil {
			ce.Write(zap.Int("values", len(values)), zap.Int("positions", len(outIndex)))
		}
		smallOffsets := index.Wrap(small)
		inner, err := listGetitemNextJagged(n, starts, stops, content,
			smallOffsets.Range(0, starts.Len()), smallOffsets.Range(1, starts.Len()+1),
			slice.Array{Index: index.Wrap(values)}, tail)
		if err != nil {
			return nil, err
		}
		raw, ok := inner.(*ListOffsetArray)
		if !ok {
			return nil, errors.Unsupported(errors.PhaseSlice, "masked jagged slice producing "+inner.Kind().String())
		}
		if outIndex == nil {
			outIndex = []int64{}
		}
		option := newIndexedOption(index.Wrap(outIndex), raw.content, nil, nil)
		return newListOffset(index.Wrap(large), option, n.Parameters(), n.Identities()), nil

	case slice.Jagged:
		offsets, carry, nextStarts, nextStops, err := kernel.JaggedDescend(
			sliceStarts.Raw(), sliceStops.Raw(), starts.Raw(), stops.Raw(), sc.Offsets.Raw())
		if err != nil {
			return nil, atNode(err, k)
		}
		next, err := content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		down, err := getitemNextJagged(next, index.Wrap(nextStarts), index.Wrap(nextStops), sc.Content, tail)
		if err != nil {
			return nil, err
		}
		return newListOffset(index.Wrap(offsets), down, n.Parameters(), n.Identities()), nil
	}
	return nil, errors.Unsupported(errors.PhaseSlice, "jagged slice content "+sliceContent.String())
}
