// Package index provides the typed, width-tagged integer buffers used as
// structural metadata: list offsets, starts/stops, permutation and carry
// indices, union tags.
//
// Buffers come in five widths (i8, u8, i32, u32, i64). Producers pick the
// width; consumers that need uniform arithmetic call To64, which returns
// 64-bit buffers unchanged and copies narrower ones once. Widening never
// happens implicitly inside a buffer.
//
//	offsets := index.New[int32](0, 3, 3, 5)
//	wide := offsets.To64()
//	view := wide.Range(1, 3) // shares storage
//
// Buffers are immutable after construction and safe to share between any
// number of nodes and goroutines.
package index
