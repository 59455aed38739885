// Package jagged stores JSON-shaped data (numbers, missing values,
// variable length lists, records and tagged unions) as trees of flat typed
// buffers, and slices those trees with NumPy-style expressions extended to
// ragged dimensions.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	jagged/
//	├── index/          Immutable integer buffers of 8, 32 or 64 bits
//	├── identity/       Provenance labels that follow rows through slicing
//	├── slice/          Slice items, normalization and the text parser
//	├── layout/         Node kinds, the slicing engine, merge, validity
//	├── internal/kernel Flat 64-bit index kernels used by the engine
//	├── errors/         Structured error types for debugging
//	├── form/           YAML layout descriptions
//	├── witform/        WebAssembly Interface Types for layout rows
//	├── wasmview/       Buffers copied out of WebAssembly guest memory
//	└── cmd/jagged      Command-line viewer and interactive slicer
//
// # Quick Start
//
// Build a layout and slice it:
//
//	content := layout.NewPrimitive([]int64{1, 2, 3, 4, 5})
//	list, err := layout.NewListOffset(index.New[int64](0, 3, 3, 5), content)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := slice.Parse("::-1, :1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := layout.Getitem(list, s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, _ := layout.Format(out)
//	fmt.Println(text) // [[4], [], [1]]
//
// # Node Kinds
//
// The set of node kinds is closed:
//
//   - Leaves: EmptyArray, PrimitiveArray
//   - Lists: ListOffsetArray, ListArray, RegularArray
//   - Indirection: IndexedArray, IndexedOptionArray
//   - Composites: RecordArray, UnionArray
//
// Nodes are immutable. Slicing never writes to an input buffer, so any
// node may be read from many goroutines at once.
//
// # Slicing
//
// A slice is a list of items: integers, ranges, fancy index arrays,
// record field names, jagged per-row indexes, masked indexes with missing
// positions, an ellipsis and new axes. layout.Getitem walks the tree one
// dimension per item, turning every step into a carry (gather) index over
// the child buffers.
//
// # Error Handling
//
// All errors are *errors.Error values carrying the phase that detected
// the problem and a kind:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) {
//	    fmt.Println(e.Phase, e.Kind, e.Path, e.Row)
//	}
//
// # Logging
//
// The layout package logs expensive paths at debug level through zap.
// It is silent until layout.SetLogger is called.
package jagged
