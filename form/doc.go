// Package form decodes YAML descriptions of array layouts into layout
// trees.
//
// A file holds either a single node or a named set of nodes:
//
//	arrays:
//	  jagged:
//	    class: ListOffsetArray
//	    offsets: [0, 3, 3, 5]
//	    content:
//	      class: PrimitiveArray
//	      dtype: int64
//	      data: [1, 2, 3, 4, 5]
//
// Buffers are inline. An index is either a bare list (64-bit) or a
// mapping with an explicit width:
//
//	tags: {width: i8, data: [0, 1, 0]}
//
// Decoding is strict: unknown keys are rejected. Built trees are run
// through layout.Validate before they are returned.
package form
