package kernel

import (
	"github.com/wippyai/jagged/errors"
)

// JaggedExpand repeats a jagged slice of R rows under every row of a
// list whose rows all have length R. Element i*R+j of the result is row
// i, position j, and is sliced by jagged row j.
func JaggedExpand(starts, stops, sliceOffsets []int64) (multiStarts, multiStops, carry []int64, err error) {
	size := int64(len(sliceOffsets) - 1)
	n := int64(len(starts)) * size
	multiStarts = make([]int64, n)
	multiStops = make([]int64, n)
	carry = make([]int64, n)
	for i, start := range starts {
		if got := stops[i] - start; got != size {
			return nil, nil, nil, errors.New(errors.PhaseSlice, errors.KindShape).
				Row(int64(i)).
				Detail("cannot fit jagged slice of length %d into row of length %d", size, got).
				Build()
		}
		for j := int64(0); j < size; j++ {
			k := int64(i)*size + j
			multiStarts[k] = sliceOffsets[j]
			multiStops[k] = sliceOffsets[j+1]
			carry[k] = start + j
		}
	}
	return multiStarts, multiStops, carry, nil
}

// JaggedApply gathers, for every row i, the positions
// sliceIndex[sliceStarts[i]:sliceStops[i]] resolved against that row's own
// length.
func JaggedApply(sliceStarts, sliceStops, sliceIndex, starts, stops []int64) (offsets, carry []int64, err error) {
	offsets = make([]int64, len(sliceStarts)+1)
	for i, lo := range sliceStarts {
		hi := sliceStops[i]
		n := stops[i] - starts[i]
		for _, at := range sliceIndex[lo:hi] {
			k, ok := WrapAt(at, n)
			if !ok {
				return nil, nil, errors.OutOfBounds(errors.PhaseSlice, int64(i), at, n)
			}
			carry = append(carry, starts[i]+k)
		}
		offsets[i+1] = int64(len(carry))
	}
	return offsets, carry, nil
}

// JaggedMissing splits a jagged slice over a masked index into its valid
// values and an option index. Row i of the valid values spans
// smallOffsets[i:i+2]; row i of the full slice spans largeOffsets[i:i+2],
// and outIndex maps every full position to its valid value, or -1.
func JaggedMissing(sliceStarts, sliceStops, missing, content []int64) (smallOffsets, values, largeOffsets, outIndex []int64) {
	smallOffsets = make([]int64, len(sliceStarts)+1)
	largeOffsets = make([]int64, len(sliceStarts)+1)
	for i, lo := range sliceStarts {
		hi := sliceStops[i]
		for _, m := range missing[lo:hi] {
			if m < 0 {
				outIndex = append(outIndex, -1)
				continue
			}
			outIndex = append(outIndex, int64(len(values)))
			values = append(values, content[m])
		}
		smallOffsets[i+1] = int64(len(values))
		largeOffsets[i+1] = largeOffsets[i] + hi - lo
	}
	return smallOffsets, values, largeOffsets, outIndex
}

// JaggedDescend prepares one level of a jagged-of-jagged slice. Every row
// must have exactly as many elements as its slice row has sub-rows;
// element j of row i is then sliced by sub-row sliceStarts[i]+j.
func JaggedDescend(sliceStarts, sliceStops, starts, stops, sliceOffsets []int64) (offsets, carry, nextStarts, nextStops []int64, err error) {
	offsets = make([]int64, len(sliceStarts)+1)
	for i, lo := range sliceStarts {
		want := sliceStops[i] - lo
		n := stops[i] - starts[i]
		if want != n {
			return nil, nil, nil, nil, errors.New(errors.PhaseSlice, errors.KindShape).
				Row(int64(i)).
				Detail("jagged slice row has %d sub-rows, array row has %d elements", want, n).
				Build()
		}
		for j := int64(0); j < n; j++ {
			carry = append(carry, starts[i]+j)
			nextStarts = append(nextStarts, sliceOffsets[lo+j])
			nextStops = append(nextStops, sliceOffsets[lo+j+1])
		}
		offsets[i+1] = offsets[i] + n
	}
	return offsets, carry, nextStarts, nextStops, nil
}
