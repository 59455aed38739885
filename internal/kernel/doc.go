// Package kernel holds the flat 64-bit index loops behind the slicing
// engine. Kernels take and return plain []int64 in node-relative row
// space; they allocate their outputs and never modify inputs.
package kernel
