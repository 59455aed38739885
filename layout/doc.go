// Package layout implements columnar array nodes for JSON-shaped data and
// the slicing engine that walks them.
//
// A layout is a tree of immutable nodes. Leaves (PrimitiveArray) hold flat
// scalar buffers; inner nodes describe structure through index buffers:
//
//	ListOffsetArray      variable-length rows from an offsets buffer
//	ListArray            variable-length rows from starts and stops
//	RegularArray         fixed-size rows
//	IndexedArray         a lazy gather over its content
//	IndexedOptionArray   a lazy gather with missing rows (index < 0)
//	RecordArray          named fields of equal length
//	UnionArray           per-row choice between alternatives
//	EmptyArray           zero rows of unknown type
//
// # Slicing
//
// Getitem applies a slice.Slice to a node. Integers, ranges and fancy
// indexes work per dimension as in NumPy; jagged slices give every row its
// own index list; masked indexes produce missing values; field selectors
// project records at any depth.
//
//	offsets := index.New[int64](0, 3, 3, 5)
//	list, _ := layout.NewListOffset(offsets, layout.NewPrimitive([]int64{1, 2, 3, 4, 5}))
//	v, _ := layout.Getitem(list, slice.Slice{slice.JaggedOf([]int64{0, 1}, nil, []int64{1})})
//	s, _ := layout.Format(v) // [[1, 2], [], [5]]
//
// Slicing never copies leaf buffers eagerly beyond what the result needs
// and never returns a partial result: any failure is reported as an
// *errors.Error with the phase, kind, node and row that caused it.
//
// # Provenance
//
// SetIdentities labels every row of a tree. Slicing, carrying and field
// access propagate those labels so a result row can be traced back to the
// row of the original tree it came from.
//
// # Concurrency
//
// Nodes are safe for concurrent use. The package logger is set with
// SetLogger before use.
package layout
