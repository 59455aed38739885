package kernel

import (
	"github.com/wippyai/jagged/errors"
)

// RegularAt picks position at from each of length rows of the given size.
func RegularAt(length, size, at int64) ([]int64, error) {
	k, ok := WrapAt(at, size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseSlice, errors.NoRow, at, size)
	}
	carry := make([]int64, length)
	for i := range carry {
		carry[i] = int64(i)*size + k
	}
	return carry, nil
}

// RegularRange visits nextSize positions from start with step in every row.
func RegularRange(length, size, start, step, nextSize int64) []int64 {
	carry := make([]int64, length*nextSize)
	for i := int64(0); i < length; i++ {
		for j := int64(0); j < nextSize; j++ {
			carry[i*nextSize+j] = i*size + start + j*step
		}
	}
	return carry
}

// RegularArray is ListArray for rows of a fixed size.
func RegularArray(length, size int64, flathead []int64) (carry, advanced []int64, err error) {
	wrapped, err := wrapAll(flathead, size)
	if err != nil {
		return nil, nil, err
	}
	lanes := int64(len(wrapped))
	carry = make([]int64, length*lanes)
	advanced = make([]int64, length*lanes)
	for i := int64(0); i < length; i++ {
		for j, k := range wrapped {
			carry[i*lanes+int64(j)] = i*size + k
			advanced[i*lanes+int64(j)] = int64(j)
		}
	}
	return carry, advanced, nil
}

// RegularArrayAdvanced is ListArrayAdvanced for rows of a fixed size.
func RegularArrayAdvanced(length, size int64, flathead, advanced []int64) (carry, nextAdvanced []int64, err error) {
	wrapped, err := wrapAll(flathead, size)
	if err != nil {
		return nil, nil, err
	}
	carry = make([]int64, length)
	nextAdvanced = make([]int64, length)
	for i := int64(0); i < length; i++ {
		carry[i] = i*size + wrapped[advanced[i]]
		nextAdvanced[i] = i
	}
	return carry, nextAdvanced, nil
}

// RegularCarry expands a row carry into an element carry.
func RegularCarry(carry []int64, size int64) []int64 {
	out := make([]int64, int64(len(carry))*size)
	for i, row := range carry {
		for j := int64(0); j < size; j++ {
			out[int64(i)*size+j] = row*size + j
		}
	}
	return out
}

// RegularOffsets returns the offsets of length rows of the given size.
func RegularOffsets(length, size int64) []int64 {
	offsets := make([]int64, length+1)
	for i := range offsets {
		offsets[i] = int64(i) * size
	}
	return offsets
}

func wrapAll(flathead []int64, size int64) ([]int64, error) {
	out := make([]int64, len(flathead))
	for j, at := range flathead {
		k, ok := WrapAt(at, size)
		if !ok {
			return nil, errors.OutOfBounds(errors.PhaseSlice, errors.NoRow, at, size)
		}
		out[j] = k
	}
	return out, nil
}
