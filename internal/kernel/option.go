package kernel

import (
	"github.com/wippyai/jagged/errors"
)

// MissingRepeat lays a masked index over repetitions rows whose gathered
// values sit in blocks of size: position i*L+j refers to index[j] within
// block i, and stays -1 where index[j] is missing.
func MissingRepeat(index []int64, repetitions, size int64) []int64 {
	lanes := int64(len(index))
	out := make([]int64, repetitions*lanes)
	for i := int64(0); i < repetitions; i++ {
		for j, base := range index {
			if base >= 0 {
				base += i * size
			}
			out[i*lanes+int64(j)] = base
		}
	}
	return out
}

// OptionProject splits an option index into the content carry of present
// rows, the positions of those rows, and an index from every row into
// the carried content (-1 where missing).
func OptionProject(index []int64, contentLen int64) (carry, rows, outIndex []int64, err error) {
	outIndex = make([]int64, len(index))
	for i, j := range index {
		if j >= contentLen {
			return nil, nil, nil, errors.OutOfBounds(errors.PhaseSlice, int64(i), j, contentLen)
		}
		if j < 0 {
			outIndex[i] = -1
			continue
		}
		outIndex[i] = int64(len(carry))
		carry = append(carry, j)
		rows = append(rows, int64(i))
	}
	return carry, rows, outIndex, nil
}

// UnionProject returns the content positions and the row positions of
// every row with the given tag.
func UnionProject(tags []int8, index []int64, tag int8) (carry, rows []int64) {
	for i, t := range tags {
		if t == tag {
			carry = append(carry, index[i])
			rows = append(rows, int64(i))
		}
	}
	return carry, rows
}

// RegularUnionIndex numbers the rows of each tag 0, 1, 2, ... in order.
func RegularUnionIndex(tags []int8, numContents int) []int64 {
	next := make([]int64, numContents)
	out := make([]int64, len(tags))
	for i, t := range tags {
		out[i] = next[t]
		next[t]++
	}
	return out
}

// Gather returns values[rows[i]] for every i.
func Gather(values, rows []int64) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}
