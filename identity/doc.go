// Package identity provides provenance labels for array rows.
//
// An Identities value is attached to a node and holds one label per row.
// Every structural transform that changes row count or order (range, carry,
// jagged gather) produces a new Identities using the same logic, so elements
// keep a debuggable lineage back to the row that was tagged. Crossing into a
// record field appends a FieldLoc entry; field locations are plain data, never
// pointers.
//
// References come from a Counter. Default is process-wide and starts at zero;
// tests and embedders can pass their own.
package identity
