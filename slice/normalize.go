package slice

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

// Normalized is a slice ready for recursion: no Ellipsis, no NewAxis,
// fancy indexes broadcast to a common lane count.
type Normalized struct {
	Items Slice
	// NewAxes holds the output dimensions, in increasing order, at which a
	// length-1 dimension is inserted after recursion.
	NewAxes []int
}

// Normalize resolves s against a node whose list depth lies in
// [minDepth, maxDepth].
func (s Slice) Normalize(minDepth, maxDepth int) (*Normalized, error) {
	ellipsis := -1
	for i, it := range s {
		if _, ok := it.(Ellipsis); ok {
			if ellipsis >= 0 {
				return nil, errors.InvalidInput(errors.PhaseSlice, "a slice can only have a single ellipsis")
			}
			ellipsis = i
		}
		if err := validate(it); err != nil {
			return nil, err
		}
	}

	items, err := broadcast(s)
	if err != nil {
		return nil, err
	}

	consumed := 0
	for _, it := range items {
		consumed += Dims(it)
	}
	if consumed > maxDepth {
		return nil, errors.New(errors.PhaseSlice, errors.KindDepth).
			Detail("slice consumes %d dimensions, array has %d", consumed, maxDepth).
			Build()
	}

	if ellipsis >= 0 {
		items, err = expandEllipsis(items, ellipsis, maxDepth-consumed, minDepth != maxDepth)
		if err != nil {
			return nil, err
		}
	}

	out := &Normalized{Items: make(Slice, 0, len(items))}
	dims := 0
	sawArray := false
	for _, it := range items {
		switch v := it.(type) {
		case NewAxis:
			out.NewAxes = append(out.NewAxes, dims)
			dims++
			continue
		case Array:
			if !sawArray {
				dims++
				sawArray = true
			}
		case Range, Missing:
			dims++
		case Jagged:
			dims += Dims(v)
		}
		out.Items = append(out.Items, it)
	}
	return out, nil
}

func expandEllipsis(items Slice, at, fill int, mixedDepth bool) (Slice, error) {
	if at == len(items)-1 {
		return items[:at], nil
	}
	if mixedDepth {
		return nil, errors.New(errors.PhaseSlice, errors.KindDepth).
			Detail("ellipsis cannot be used on records whose fields have different depths").
			Build()
	}
	if fill < 0 {
		fill = 0
	}
	out := make(Slice, 0, len(items)-1+fill)
	out = append(out, items[:at]...)
	for range fill {
		out = append(out, Full())
	}
	out = append(out, items[at+1:]...)
	return out, nil
}

// broadcast gives every Array the same length. The first fancy index
// fixes the lane count; others must match it or have length 1. Once any
// Array is present, integers become broadcast Arrays too.
func broadcast(s Slice) (Slice, error) {
	lanes := int64(-1)
	for _, it := range s {
		a, ok := it.(Array)
		if !ok {
			continue
		}
		n := a.Index.Len()
		switch {
		case lanes < 0 || lanes == 1:
			lanes = n
		case n == 1 || n == lanes:
		default:
			return nil, errors.New(errors.PhaseSlice, errors.KindShape).
				Detail("cannot broadcast fancy index of length %d against %d", n, lanes).
				Build()
		}
	}
	if lanes < 0 {
		return s, nil
	}

	out := make(Slice, len(s))
	for i, it := range s {
		switch v := it.(type) {
		case At:
			out[i] = Array{Index: index.Full(lanes, v.At)}
		case Array:
			if v.Index.Len() == 1 && lanes != 1 {
				out[i] = Array{Index: index.Full(lanes, v.Index.At(0))}
			} else {
				out[i] = v
			}
		default:
			out[i] = it
		}
	}
	return out, nil
}

func validate(it Item) error {
	switch v := it.(type) {
	case Range:
		if v.Step == 0 {
			return errors.InvalidInput(errors.PhaseSlice, "range step must not be zero")
		}
	case Missing:
		n := v.Content.Index.Len()
		for i := int64(0); i < v.Index.Len(); i++ {
			if k := v.Index.At(i); k < -1 || k >= n {
				return errors.New(errors.PhaseSlice, errors.KindShape).
					Row(i).
					Detail("masked index position %d outside content of length %d", k, n).
					Build()
			}
		}
	case Jagged:
		if v.Offsets.Len() == 0 {
			return errors.Shape(errors.PhaseSlice, "jagged slice needs at least one offset")
		}
		var contentLen int64
		switch c := v.Content.(type) {
		case Array:
			contentLen = c.Index.Len()
		case Missing:
			contentLen = c.Len()
		case Jagged:
			contentLen = c.Len()
		default:
			return errors.Shape(errors.PhaseSlice, "jagged slice content must be a fancy, masked or jagged index")
		}
		prev := v.Offsets.At(0)
		if prev < 0 {
			return errors.Shape(errors.PhaseSlice, "jagged slice offsets must be non-negative")
		}
		for i := int64(1); i < v.Offsets.Len(); i++ {
			cur := v.Offsets.At(i)
			if cur < prev {
				return errors.New(errors.PhaseSlice, errors.KindShape).
					Row(i - 1).
					Detail("jagged slice offsets decrease from %d to %d", prev, cur).
					Build()
			}
			prev = cur
		}
		if prev > contentLen {
			return errors.New(errors.PhaseSlice, errors.KindShape).
				Detail("jagged slice offsets reach %d beyond content of length %d", prev, contentLen).
				Build()
		}
		return validate(v.Content)
	}
	return nil
}
