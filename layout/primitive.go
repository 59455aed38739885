package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// PrimitiveArray is a leaf: a flat buffer of fixed-width scalars.
type PrimitiveArray struct {
	meta
	data column
}

// NewPrimitive copies values into a new leaf.
func NewPrimitive[T Scalar](values []T) *PrimitiveArray {
	data := make(typedColumn[T], len(values))
	copy(data, values)
	return &PrimitiveArray{data: data}
}

// WrapPrimitive takes ownership of values. The caller must not modify
// them afterwards.
func WrapPrimitive[T Scalar](values []T) *PrimitiveArray {
	return &PrimitiveArray{data: typedColumn[T](values)}
}

// PrimitiveValues returns a copy of the leaf's values when its element
// type is T.
func PrimitiveValues[T Scalar](p *PrimitiveArray) ([]T, bool) {
	data, ok := p.data.(typedColumn[T])
	if !ok {
		return nil, false
	}
	out := make([]T, len(data))
	copy(out, data)
	return out, true
}

func (p *PrimitiveArray) sealed() {}

func (p *PrimitiveArray) Kind() Kind {
	return KindPrimitive
}

func (p *PrimitiveArray) Len() int64 {
	return p.data.len()
}

func (p *PrimitiveArray) DType() DType {
	return p.data.dtype()
}

// Raw exposes the backing slice ([]T) for read-only use.
func (p *PrimitiveArray) Raw() any {
	return p.data.raw()
}

func (p *PrimitiveArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindPrimitive, id, p.Len()); err != nil {
		return nil, err
	}
	out := *p
	out.id = id
	return &out, nil
}

func (p *PrimitiveArray) WithParameters(params Parameters) Content {
	out := *p
	out.params = params.clone()
	return &out
}

func (p *PrimitiveArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindPrimitive, i, p.Len())
	if err != nil {
		return nil, err
	}
	return p.data.at(j), nil
}

func (p *PrimitiveArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, p.Len())
	return &PrimitiveArray{
		meta: meta{params: p.params, id: p.rangeID(start, stop)},
		data: p.data.slice(start, stop),
	}
}

func (p *PrimitiveArray) GetitemField(key string) (Content, error) {
	return nil, errors.New(errors.PhaseSlice, errors.KindField).
		Node(KindPrimitive.String()).
		Value(key).
		Detail("key %q not found: array of %s has no fields", key, p.DType()).
		Build()
}

func (p *PrimitiveArray) GetitemFields(keys []string) (Content, error) {
	if len(keys) == 0 {
		return nil, errors.InvalidInput(errors.PhaseSlice, "empty field list")
	}
	return p.GetitemField(keys[0])
}

func (p *PrimitiveArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindPrimitive, carry, p.Len()); err != nil {
		return nil, err
	}
	id, err := p.carryID(carry)
	if err != nil {
		return nil, err
	}
	return &PrimitiveArray{
		meta: meta{params: p.params, id: id},
		data: p.data.carry(carry.Raw()),
	}, nil
}

func (p *PrimitiveArray) PurelistDepth() int {
	return 1
}

func (p *PrimitiveArray) MinMaxDepth() (int, int) {
	return 1, 1
}

func (p *PrimitiveArray) Keys() []string {
	return nil
}

func (p *PrimitiveArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(p, other, mergeBool)
}

func (p *PrimitiveArray) Merge(other Content) (Content, error) {
	return merge(p, other)
}

func (p *PrimitiveArray) Validate() error {
	return checkIdentities(KindPrimitive, p.id, p.Len())
}
