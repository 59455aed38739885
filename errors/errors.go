package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which operation detected the error
type Phase string

const (
	PhaseConstruct Phase = "construct" // node construction
	PhaseSlice     Phase = "slice"     // getitem and friends
	PhaseCarry     Phase = "carry"     // gather by index
	PhaseMerge     Phase = "merge"     // concatenation
	PhaseValidate  Phase = "validate"  // structural validity check
	PhaseParse     Phase = "parse"     // slice expression parsing
	PhaseLoad      Phase = "load"      // form files, guest memory
	PhaseTransform Phase = "transform" // num, flatten, padding, fill
)

// Kind categorizes the error
type Kind string

const (
	KindIndex        Kind = "index"
	KindDepth        Kind = "depth"
	KindField        Kind = "field"
	KindKindMismatch Kind = "kind_mismatch"
	KindShape        Kind = "shape"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
)

// NoRow marks an error that is not tied to a particular row.
const NoRow int64 = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string
	Detail string
	Path   []string
	Row    int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Node != "" {
		b.WriteString(" in ")
		b.WriteString(e.Node)
	}

	if e.Row >= 0 {
		fmt.Fprintf(&b, " (row %d)", e.Row)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err or anything it wraps is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Row:   NoRow,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Node sets the node kind name
func (b *Builder) Node(name string) *Builder {
	b.err.Node = name
	return b
}

// Row sets the row the error refers to
func (b *Builder) Row(row int64) *Builder {
	b.err.Row = row
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an index error for a value outside [-length, length)
func OutOfBounds(phase Phase, row, index, length int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndex,
		Row:    row,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// TooDeep creates a depth error for a slice with more dimensions than the node
func TooDeep(phase Phase, node string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepth,
		Node:   node,
		Row:    NoRow,
		Detail: "too many dimensions in slice",
	}
}

// FieldNotFound creates a field error for a missing record key
func FieldNotFound(phase Phase, path []string, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindField,
		Path:   path,
		Row:    NoRow,
		Detail: fmt.Sprintf("key %q not found", key),
		Value:  key,
	}
}

// KindMismatch creates an error for structurally incompatible nodes
func KindMismatch(phase Phase, left, right string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKindMismatch,
		Node:   left,
		Row:    NoRow,
		Detail: fmt.Sprintf("cannot combine %s with %s", left, right),
	}
}

// Shape creates a width/shape error
func Shape(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShape,
		Row:    NoRow,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, node string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Node:   node,
		Row:    NoRow,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Row:    NoRow,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Row:    NoRow,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Row:    NoRow,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(pos int, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Row:    NoRow,
		Detail: fmt.Sprintf("offset %d: %s", pos, detail),
		Value:  pos,
	}
}

// Load creates a loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Row:    NoRow,
		Detail: detail,
		Cause:  cause,
	}
}
