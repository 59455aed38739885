package layout

import (
	"slices"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// MaxUnionContents is the number of alternatives an 8-bit tag can select.
const MaxUnionContents = 127

// UnionArray is a tagged variant: row i is contents[tags[i]][index[i]].
type UnionArray struct {
	meta
	tags     index.Index8
	index    index.Index
	contents []Content
}

func NewUnion(tags index.Index8, idx index.Index, contents ...Content) (*UnionArray, error) {
	if len(contents) == 0 || len(contents) > MaxUnionContents {
		return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Node(KindUnion.String()).
			Detail("a union needs 1 to %d contents, got %d", MaxUnionContents, len(contents)).
			Build()
	}
	if idx.Len() < tags.Len() {
		return nil, errors.New(errors.PhaseConstruct, errors.KindShape).
			Node(KindUnion.String()).
			Detail("index has %d entries, tags has %d", idx.Len(), tags.Len()).
			Build()
	}
	return newUnion(tags, idx, slices.Clone(contents), nil, nil), nil
}

func newUnion(tags index.Index8, idx index.Index, contents []Content, params Parameters, id *identity.Identities) *UnionArray {
	return &UnionArray{meta: meta{params: params, id: id}, tags: tags, index: idx, contents: contents}
}

func (u *UnionArray) sealed() {}

func (u *UnionArray) Kind() Kind {
	return KindUnion
}

func (u *UnionArray) Len() int64 {
	return u.tags.Len()
}

func (u *UnionArray) Tags() index.Index8 {
	return u.tags
}

func (u *UnionArray) Index() index.Index {
	return u.index
}

func (u *UnionArray) NumContents() int {
	return len(u.contents)
}

func (u *UnionArray) Contents() []Content {
	return slices.Clone(u.contents)
}

func (u *UnionArray) ContentAt(tag int) Content {
	return u.contents[tag]
}

func (u *UnionArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindUnion, id, u.Len()); err != nil {
		return nil, err
	}
	out := *u
	out.id = id
	return &out, nil
}

func (u *UnionArray) WithParameters(p Parameters) Content {
	out := *u
	out.params = p.clone()
	return &out
}

func (u *UnionArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindUnion, i, u.Len())
	if err != nil {
		return nil, err
	}
	t := int(u.tags.At(j))
	if t < 0 || t >= len(u.contents) {
		return nil, invalid(KindUnion, j, "tag %d outside %d contents", t, len(u.contents))
	}
	k := u.index.Get(j)
	if k < 0 || k >= u.contents[t].Len() {
		return nil, outOfBounds(KindUnion, j, k, u.contents[t].Len())
	}
	return u.contents[t].GetitemAt(k)
}

func (u *UnionArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, u.Len())
	return newUnion(u.tags.Range(start, stop), u.index.Slice(start, stop), u.contents, u.params, u.rangeID(start, stop))
}

func (u *UnionArray) GetitemField(key string) (Content, error) {
	contents := make([]Content, len(u.contents))
	for t, c := range u.contents {
		out, err := c.GetitemField(key)
		if err != nil {
			return nil, err
		}
		contents[t] = out
	}
	return newUnion(u.tags, u.index, contents, nil, u.id), nil
}

func (u *UnionArray) GetitemFields(keys []string) (Content, error) {
	contents := make([]Content, len(u.contents))
	for t, c := range u.contents {
		out, err := c.GetitemFields(keys)
		if err != nil {
			return nil, err
		}
		contents[t] = out
	}
	return newUnion(u.tags, u.index, contents, nil, u.id), nil
}

// Carry gathers tags and index; the contents are shared.
func (u *UnionArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindUnion, carry, u.Len()); err != nil {
		return nil, err
	}
	tags, err := u.tags.Carry(carry)
	if err != nil {
		return nil, err
	}
	idx, err := carryIndex(u.index, carry)
	if err != nil {
		return nil, err
	}
	id, err := u.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newUnion(tags, idx, u.contents, u.params, id), nil
}

// Project gathers the rows of one alternative, in order.
func (u *UnionArray) Project(tag int) (Content, error) {
	out, _, err := u.project(tag)
	return out, err
}

// project also returns the union rows the projection came from.
func (u *UnionArray) project(tag int) (Content, index.Index64, error) {
	if tag < 0 || tag >= len(u.contents) {
		return nil, index.Index64{}, errors.New(errors.PhaseSlice, errors.KindIndex).
			Node(KindUnion.String()).
			Value(tag).
			Detail("tag %d outside %d contents", tag, len(u.contents)).
			Build()
	}
	carry, rows := kernel.UnionProject(u.tags.Raw(), u.index.To64().Raw(), int8(tag))
	out, err := u.contents[tag].Carry(index.Wrap(carry))
	if err != nil {
		return nil, index.Index64{}, atNode(err, KindUnion)
	}
	return out, index.Wrap(rows), nil
}

func (u *UnionArray) checkTags() error {
	for i, t := range u.tags.Raw() {
		if t < 0 || int(t) >= len(u.contents) {
			return invalid(KindUnion, int64(i), "tag %d outside %d contents", t, len(u.contents))
		}
	}
	return nil
}

// PurelistDepth is the common depth of the contents, or -1 when they
// differ.
func (u *UnionArray) PurelistDepth() int {
	depth := u.contents[0].PurelistDepth()
	for _, c := range u.contents[1:] {
		if c.PurelistDepth() != depth {
			return -1
		}
	}
	return depth
}

func (u *UnionArray) MinMaxDepth() (int, int) {
	lo, hi := u.contents[0].MinMaxDepth()
	for _, c := range u.contents[1:] {
		clo, chi := c.MinMaxDepth()
		lo, hi = min(lo, clo), max(hi, chi)
	}
	return lo, hi
}

// Keys returns the field names every alternative has, in the order of
// the first.
func (u *UnionArray) Keys() []string {
	var out []string
	for _, key := range u.contents[0].Keys() {
		shared := true
		for _, c := range u.contents[1:] {
			if !slices.Contains(c.Keys(), key) {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, key)
		}
	}
	return out
}

func (u *UnionArray) Mergeable(other Content, mergeBool bool) bool {
	return true
}

func (u *UnionArray) Merge(other Content) (Content, error) {
	return merge(u, other)
}

func (u *UnionArray) Validate() error {
	if err := checkIdentities(KindUnion, u.id, u.Len()); err != nil {
		return err
	}
	if u.index.Len() < u.tags.Len() {
		return invalid(KindUnion, errors.NoRow, "index has %d entries, tags has %d", u.index.Len(), u.tags.Len())
	}
	if err := u.checkTags(); err != nil {
		return err
	}
	for i := int64(0); i < u.Len(); i++ {
		c := u.contents[u.tags.At(i)]
		if k := u.index.Get(i); k < 0 || k >= c.Len() {
			return invalid(KindUnion, i, "index %d outside content of length %d", k, c.Len())
		}
	}
	for _, c := range u.contents {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
