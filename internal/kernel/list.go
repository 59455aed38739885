package kernel

import (
	"github.com/wippyai/jagged/errors"
)

// ListAt picks position at from every row.
func ListAt(starts, stops []int64, at int64) ([]int64, error) {
	carry := make([]int64, len(starts))
	for i, start := range starts {
		n := stops[i] - start
		j, ok := WrapAt(at, n)
		if !ok {
			return nil, errors.OutOfBounds(errors.PhaseSlice, int64(i), at, n)
		}
		carry[i] = start + j
	}
	return carry, nil
}

// ListRange applies start:stop:step to every row independently and
// returns the 0-based offsets of the result and the content carry.
func ListRange(starts, stops []int64, start, stop, step int64, hasStart, hasStop bool) (offsets, carry []int64) {
	offsets = make([]int64, len(starts)+1)
	for i, rowStart := range starts {
		a, b := RegularizeRange(start, stop, step, hasStart, hasStop, stops[i]-rowStart)
		for k, n := int64(0), RangeLen(a, b, step); k < n; k++ {
			carry = append(carry, rowStart+a+k*step)
		}
		offsets[i+1] = int64(len(carry))
	}
	return offsets, carry
}

// SpreadAdvanced repeats advanced[i] once per element of row i.
func SpreadAdvanced(advanced, offsets []int64) []int64 {
	out := make([]int64, offsets[len(offsets)-1])
	for i, lane := range advanced {
		for k := offsets[i]; k < offsets[i+1]; k++ {
			out[k] = lane
		}
	}
	return out
}

// ListArray takes the outer product of rows and a fancy index: result
// element i*L+j is row i at flathead[j], in lane j.
func ListArray(starts, stops, flathead []int64) (carry, advanced []int64, err error) {
	lanes := len(flathead)
	carry = make([]int64, len(starts)*lanes)
	advanced = make([]int64, len(starts)*lanes)
	for i, start := range starts {
		n := stops[i] - start
		for j, at := range flathead {
			k, ok := WrapAt(at, n)
			if !ok {
				return nil, nil, errors.OutOfBounds(errors.PhaseSlice, int64(i), at, n)
			}
			carry[i*lanes+j] = start + k
			advanced[i*lanes+j] = int64(j)
		}
	}
	return carry, advanced, nil
}

// ListArrayAdvanced picks, for every row, the fancy index entry of the
// row's lane. Rows become their own lanes.
func ListArrayAdvanced(starts, stops, flathead, advanced []int64) (carry, nextAdvanced []int64, err error) {
	carry = make([]int64, len(starts))
	nextAdvanced = make([]int64, len(starts))
	for i, start := range starts {
		n := stops[i] - start
		at := flathead[advanced[i]]
		k, ok := WrapAt(at, n)
		if !ok {
			return nil, nil, errors.OutOfBounds(errors.PhaseSlice, int64(i), at, n)
		}
		carry[i] = start + k
		nextAdvanced[i] = int64(i)
	}
	return carry, nextAdvanced, nil
}

// CompactOffsets turns starts/stops into 0-based offsets of the same row
// lengths.
func CompactOffsets(starts, stops []int64) []int64 {
	offsets := make([]int64, len(starts)+1)
	for i, start := range starts {
		offsets[i+1] = offsets[i] + stops[i] - start
	}
	return offsets
}

// RangesCarry concatenates [starts[i], stops[i]) for every row.
func RangesCarry(starts, stops []int64) []int64 {
	var carry []int64
	for i, start := range starts {
		for k := start; k < stops[i]; k++ {
			carry = append(carry, k)
		}
	}
	return carry
}
