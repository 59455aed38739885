// Package slice describes multi-dimensional slice expressions over nested
// arrays.
//
// A Slice is an ordered list of Items. Each structural item (At, Range,
// Array, Missing, Jagged) consumes one or more list dimensions; Field and
// Fields redirect into record children without consuming a dimension;
// Ellipsis and NewAxis are resolved by Normalize before any node is visited.
//
// Parse reads the textual form used by tools:
//
//	s, err := slice.Parse(`1:, "x", [[0, 1], [], [1]]`)
package slice
