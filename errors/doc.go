// Package errors provides structured error types for the jagged module.
//
// Errors are categorized by Phase (which operation detected them) and Kind
// (error category). The Error type carries the node kind, field path, row and
// offending value, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSlice, errors.KindIndex).
//		Node("ListOffsetArray").
//		Row(2).
//		Value(7).
//		Detail("index out of range").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseSlice, row, 7, 3)
//	err := errors.FieldNotFound(errors.PhaseSlice, path, "x")
//
// All errors implement the standard error interface and support errors.Is/As.
// Errors never accompany partial results: an operation that fails returns a
// nil node.
package errors
