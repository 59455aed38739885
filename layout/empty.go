package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
)

// EmptyArray has no rows and no element type. It is the identity of Merge.
type EmptyArray struct {
	meta
}

func NewEmpty() *EmptyArray {
	return &EmptyArray{}
}

func (e *EmptyArray) sealed() {}

func (e *EmptyArray) Kind() Kind {
	return KindEmpty
}

func (e *EmptyArray) Len() int64 {
	return 0
}

func (e *EmptyArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindEmpty, id, 0); err != nil {
		return nil, err
	}
	out := *e
	out.id = id
	return &out, nil
}

func (e *EmptyArray) WithParameters(p Parameters) Content {
	out := *e
	out.params = p.clone()
	return &out
}

func (e *EmptyArray) GetitemAt(i int64) (any, error) {
	return nil, outOfBounds(KindEmpty, errors.NoRow, i, 0)
}

func (e *EmptyArray) GetitemRange(start, stop int64) Content {
	return e
}

func (e *EmptyArray) GetitemField(key string) (Content, error) {
	return nil, errors.FieldNotFound(errors.PhaseSlice, nil, key)
}

func (e *EmptyArray) GetitemFields(keys []string) (Content, error) {
	if len(keys) == 0 {
		return e, nil
	}
	return nil, errors.FieldNotFound(errors.PhaseSlice, nil, keys[0])
}

func (e *EmptyArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindEmpty, carry, 0); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *EmptyArray) PurelistDepth() int {
	return 1
}

func (e *EmptyArray) MinMaxDepth() (int, int) {
	return 1, 1
}

func (e *EmptyArray) Keys() []string {
	return nil
}

func (e *EmptyArray) Mergeable(other Content, mergeBool bool) bool {
	return true
}

func (e *EmptyArray) Merge(other Content) (Content, error) {
	return merge(e, other)
}

func (e *EmptyArray) Validate() error {
	return checkIdentities(KindEmpty, e.id, 0)
}
