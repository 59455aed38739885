package layout

import (
	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// RegularArray is a list whose rows all have the same size. Row i covers
// content[i*size:(i+1)*size]; no index buffer is stored.
type RegularArray struct {
	meta
	content Content
	size    int64
	length  int64
}

// NewRegular groups content into rows of size. A zero size yields no rows;
// use NewRegularLength to give it some.
func NewRegular(content Content, size int64) (*RegularArray, error) {
	if size < 0 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "regular size must not be negative")
	}
	var length int64
	if size > 0 {
		length = content.Len() / size
	}
	return newRegular(content, size, length, nil, nil), nil
}

// NewRegularLength builds a regular list with an explicit row count.
func NewRegularLength(content Content, size, length int64) (*RegularArray, error) {
	if size < 0 || length < 0 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "regular size and length must not be negative")
	}
	return newRegular(content, size, length, nil, nil), nil
}

func newRegular(content Content, size, length int64, params Parameters, id *identity.Identities) *RegularArray {
	return &RegularArray{meta: meta{params: params, id: id}, content: content, size: size, length: length}
}

func (r *RegularArray) sealed() {}

func (r *RegularArray) Kind() Kind {
	return KindRegular
}

func (r *RegularArray) Len() int64 {
	return r.length
}

func (r *RegularArray) Size() int64 {
	return r.size
}

func (r *RegularArray) Content() Content {
	return r.content
}

func (r *RegularArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindRegular, id, r.length); err != nil {
		return nil, err
	}
	out := *r
	out.id = id
	return &out, nil
}

func (r *RegularArray) WithParameters(p Parameters) Content {
	out := *r
	out.params = p.clone()
	return &out
}

func (r *RegularArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindRegular, i, r.length)
	if err != nil {
		return nil, err
	}
	return r.content.GetitemRange(j*r.size, (j+1)*r.size), nil
}

func (r *RegularArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, r.length)
	content := r.content.GetitemRange(start*r.size, stop*r.size)
	return newRegular(content, r.size, stop-start, r.params, r.rangeID(start, stop))
}

func (r *RegularArray) GetitemField(key string) (Content, error) {
	content, err := r.content.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return newRegular(content, r.size, r.length, nil, r.id), nil
}

func (r *RegularArray) GetitemFields(keys []string) (Content, error) {
	content, err := r.content.GetitemFields(keys)
	if err != nil {
		return nil, err
	}
	return newRegular(content, r.size, r.length, nil, r.id), nil
}

func (r *RegularArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindRegular, carry, r.length); err != nil {
		return nil, err
	}
	content, err := r.content.Carry(index.Wrap(kernel.RegularCarry(carry.Raw(), r.size)))
	if err != nil {
		return nil, atNode(err, KindRegular)
	}
	id, err := r.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newRegular(content, r.size, carry.Len(), r.params, id), nil
}

func (r *RegularArray) PurelistDepth() int {
	return r.content.PurelistDepth() + 1
}

func (r *RegularArray) MinMaxDepth() (int, int) {
	lo, hi := r.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (r *RegularArray) Keys() []string {
	return r.content.Keys()
}

func (r *RegularArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(r, other, mergeBool)
}

func (r *RegularArray) Merge(other Content) (Content, error) {
	return merge(r, other)
}

func (r *RegularArray) CompactOffsets64() index.Index64 {
	return index.Wrap(kernel.RegularOffsets(r.length, r.size))
}

// ToListOffsetArray64 describes the same rows with explicit offsets. The
// content is shared.
func (r *RegularArray) ToListOffsetArray64() *ListOffsetArray {
	return newListOffset(r.CompactOffsets64(), r.content, r.params, r.id)
}

func (r *RegularArray) Validate() error {
	if err := checkIdentities(KindRegular, r.id, r.length); err != nil {
		return err
	}
	if r.size < 0 {
		return invalid(KindRegular, errors.NoRow, "negative size %d", r.size)
	}
	if need := r.size * r.length; need > r.content.Len() {
		return invalid(KindRegular, errors.NoRow, "%d rows of size %d need %d elements, content has %d",
			r.length, r.size, need, r.content.Len())
	}
	return r.content.Validate()
}
