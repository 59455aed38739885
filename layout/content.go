package layout

import (
	"maps"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
)

// Content is a node of an array layout tree. The set of implementations
// is closed; every node is immutable and safe for concurrent use.
type Content interface {
	Kind() Kind
	// Len is the number of rows the node exposes. Children may hold more.
	Len() int64
	Parameters() Parameters
	Identities() *identity.Identities
	WithIdentities(id *identity.Identities) (Content, error)
	WithParameters(p Parameters) Content

	// GetitemAt returns row i: a Content for list rows, a Go scalar for
	// leaves, nil for a missing option, a *Record for records. Negative i
	// counts from the end.
	GetitemAt(i int64) (any, error)
	// GetitemRange returns rows [start, stop) with the bounds clamped.
	GetitemRange(start, stop int64) Content
	GetitemField(key string) (Content, error)
	GetitemFields(keys []string) (Content, error)
	// Carry gathers rows by position. Indexed kinds compose indexes instead
	// of touching their content.
	Carry(carry index.Index64) (Content, error)

	PurelistDepth() int
	MinMaxDepth() (int, int)
	Keys() []string

	Mergeable(other Content, mergeBool bool) bool
	Merge(other Content) (Content, error)
	Validate() error

	sealed()
}

// Parameters is the string-keyed metadata bag of a node.
type Parameters map[string]string

// Get returns the value for key, or "".
func (p Parameters) Get(key string) string {
	return p[key]
}

// Equal reports whether both bags hold the same entries.
func (p Parameters) Equal(other Parameters) bool {
	return maps.Equal(p, other)
}

func (p Parameters) clone() Parameters {
	if len(p) == 0 {
		return nil
	}
	return maps.Clone(p)
}

type meta struct {
	params Parameters
	id     *identity.Identities
}

// Parameters returns the node's metadata. The map must not be modified.
func (m meta) Parameters() Parameters {
	return m.params
}

// Identities returns the node's provenance, or nil.
func (m meta) Identities() *identity.Identities {
	return m.id
}

func (m meta) rangeID(start, stop int64) *identity.Identities {
	if m.id == nil {
		return nil
	}
	return m.id.Range(start, stop)
}

func (m meta) carryID(carry index.Index64) (*identity.Identities, error) {
	if m.id == nil {
		return nil, nil
	}
	return m.id.Carry(carry)
}

func checkIdentities(k Kind, id *identity.Identities, length int64) error {
	if id == nil || id.Len() == length {
		return nil
	}
	return errors.New(errors.PhaseConstruct, errors.KindShape).
		Node(k.String()).
		Detail("identities have %d rows, node has %d", id.Len(), length).
		Build()
}

func outOfBounds(k Kind, row, at, length int64) error {
	e := errors.OutOfBounds(errors.PhaseSlice, row, at, length)
	e.Node = k.String()
	return e
}

func tooDeep(k Kind) error {
	return errors.TooDeep(errors.PhaseSlice, k.String())
}

// atNode fills in the node name of a structured error that lacks one.
func atNode(err error, k Kind) error {
	if e, ok := err.(*errors.Error); ok && e.Node == "" {
		out := *e
		out.Node = k.String()
		return &out
	}
	return err
}

// inField prefixes the field path of a structured error.
func inField(err error, key string) error {
	if e, ok := err.(*errors.Error); ok {
		out := *e
		out.Path = append([]string{key}, e.Path...)
		return &out
	}
	return err
}

func checkCarry(k Kind, carry index.Index64, length int64) error {
	for i, c := range carry.Raw() {
		if c < 0 || c >= length {
			e := errors.OutOfBounds(errors.PhaseCarry, int64(i), c, length)
			e.Node = k.String()
			return e
		}
	}
	return nil
}

// carryIndex gathers idx by carry without changing its width.
func carryIndex(idx index.Index, carry index.Index64) (index.Index, error) {
	switch v := idx.(type) {
	case index.Index8:
		return carryTyped(v, carry)
	case index.IndexU8:
		return carryTyped(v, carry)
	case index.Index32:
		return carryTyped(v, carry)
	case index.IndexU32:
		return carryTyped(v, carry)
	default:
		return carryTyped(idx.To64(), carry)
	}
}

func carryTyped[T index.Integer](b index.Buffer[T], carry index.Index64) (index.Index, error) {
	out, err := b.Carry(carry)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func wrapRow(k Kind, i, length int64) (int64, error) {
	j := i
	if j < 0 {
		j += length
	}
	if j < 0 || j >= length {
		return 0, outOfBounds(k, errors.NoRow, i, length)
	}
	return j, nil
}
