package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
	"github.com/wippyai/jagged/slice"
)

// AsSlice turns an array of integers or booleans into a slice item, so
// one array can index another:
//
//   - integers become an Array
//   - booleans become an Array of the positions that are true
//   - lists become a Jagged whose rows index the matching rows; boolean
//     rows select the positions within the row that are true
//   - an option over integers becomes a Missing
//
// Records, unions and floating-point leaves cannot be used as a slice.
func AsSlice(c Content) (slice.Item, error) {
	switch n := c.(type) {
	case *EmptyArray:
		return slice.Array{Index: index.Empty64()}, nil
	case *PrimitiveArray:
		return leafSlice(n)
	case *IndexedArray:
		next, err := n.Project()
		if err != nil {
			return nil, err
		}
		return AsSlice(next)
	case *IndexedOptionArray:
		carry, _, outIndex, err := kernel.OptionProject(n.index.To64().Raw(), n.content.Len())
		if err != nil {
			return nil, atNode(err, KindIndexedOption)
		}
		next, err := n.content.Carry(index.Wrap(carry))
		if err != nil {
			return nil, err
		}
		if p, ok := next.(*PrimitiveArray); ok && p.DType().IsBool() {
			return nil, notASlice(KindIndexedOption, "a boolean mask cannot hold missing values")
		}
		item, err := AsSlice(next)
		if err != nil {
			return nil, err
		}
		values, ok := item.(slice.Array)
		if !ok {
			return nil, notASlice(KindIndexedOption, "missing values are only allowed over integers")
		}
		return slice.Missing{Index: index.Wrap(outIndex), Content: values}, nil
	case *ListOffsetArray, *ListArray, *RegularArray:
		offsets, content, err := listParts(c)
		if err != nil {
			return nil, err
		}
		last := offsets.At(offsets.Len() - 1)
		content = content.GetitemRange(0, last)
		if p, ok := content.(*PrimitiveArray); ok && p.DType().IsBool() {
			return rowMask(offsets.Raw(), p)
		}
		inner, err := AsSlice(content)
		if err != nil {
			return nil, err
		}
		return slice.Jagged{Offsets: offsets, Content: inner}, nil
	}
	return nil, notASlice(c.Kind(), "only integer and boolean arrays can be used as a slice")
}

func leafSlice(p *PrimitiveArray) (slice.Item, error) {
	dt := p.DType()
	switch {
	case dt.IsBool():
		mask := p.data.raw().([]bool)
		var positions []int64
		for i, v := range mask {
			if v {
				positions = append(positions, int64(i))
			}
		}
		return slice.Array{Index: index.Wrap(positions)}, nil
	case dt.IsInteger():
		return slice.Array{Index: index.Wrap(p.data.int64s())}, nil
	}
	return nil, notASlice(KindPrimitive, dt.String()+" values cannot be used as a slice")
}

// rowMask turns boolean rows into per-row positions of the true values.
func rowMask(offsets []int64, p *PrimitiveArray) (slice.Item, error) {
	mask := p.data.raw().([]bool)
	out := make([]int64, len(offsets))
	var positions []int64
	for i := 0; i < len(offsets)-1; i++ {
		for k := offsets[i]; k < offsets[i+1]; k++ {
			if mask[k] {
				positions = append(positions, k-offsets[i])
			}
		}
		out[i+1] = int64(len(positions))
	}
	return slice.Jagged{Offsets: index.Wrap(out), Content: slice.Array{Index: index.Wrap(positions)}}, nil
}

func notASlice(k Kind, detail string) error {
	return errors.New(errors.PhaseSlice, errors.KindInvalidInput).
		Node(k.String()).
		Detail("%s", detail).
		Build()
}
