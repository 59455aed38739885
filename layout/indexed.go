package layout

import (
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// IndexedArray is a lazy gather: row i is content[index[i]].
type IndexedArray struct {
	meta
	index   index.Index
	content Content
}

func NewIndexed(idx index.Index, content Content) *IndexedArray {
	return newIndexed(idx, content, nil, nil)
}

func newIndexed(idx index.Index, content Content, params Parameters, id *identity.Identities) *IndexedArray {
	return &IndexedArray{meta: meta{params: params, id: id}, index: idx, content: content}
}

func (a *IndexedArray) sealed() {}

func (a *IndexedArray) Kind() Kind {
	return KindIndexed
}

func (a *IndexedArray) Len() int64 {
	return a.index.Len()
}

func (a *IndexedArray) Index() index.Index {
	return a.index
}

func (a *IndexedArray) Content() Content {
	return a.content
}

func (a *IndexedArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindIndexed, id, a.Len()); err != nil {
		return nil, err
	}
	out := *a
	out.id = id
	return &out, nil
}

func (a *IndexedArray) WithParameters(p Parameters) Content {
	out := *a
	out.params = p.clone()
	return &out
}

func (a *IndexedArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindIndexed, i, a.Len())
	if err != nil {
		return nil, err
	}
	k := a.index.Get(j)
	if k < 0 || k >= a.content.Len() {
		return nil, outOfBounds(KindIndexed, j, k, a.content.Len())
	}
	return a.content.GetitemAt(k)
}

func (a *IndexedArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, a.Len())
	return newIndexed(a.index.Slice(start, stop), a.content, a.params, a.rangeID(start, stop))
}

func (a *IndexedArray) GetitemField(key string) (Content, error) {
	content, err := a.content.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return newIndexed(a.index, content, nil, a.id), nil
}

func (a *IndexedArray) GetitemFields(keys []string) (Content, error) {
	content, err := a.content.GetitemFields(keys)
	if err != nil {
		return nil, err
	}
	return newIndexed(a.index, content, nil, a.id), nil
}

// Carry composes the index; the content is not touched.
func (a *IndexedArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindIndexed, carry, a.Len()); err != nil {
		return nil, err
	}
	idx, err := carryIndex(a.index, carry)
	if err != nil {
		return nil, err
	}
	id, err := a.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newIndexed(idx, a.content, a.params, id), nil
}

// Project applies the index, gathering the content.
func (a *IndexedArray) Project() (Content, error) {
	out, err := a.content.Carry(a.index.To64())
	if err != nil {
		return nil, atNode(err, KindIndexed)
	}
	return out, nil
}

func (a *IndexedArray) PurelistDepth() int {
	return a.content.PurelistDepth()
}

func (a *IndexedArray) MinMaxDepth() (int, int) {
	return a.content.MinMaxDepth()
}

func (a *IndexedArray) Keys() []string {
	return a.content.Keys()
}

func (a *IndexedArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(a, other, mergeBool)
}

func (a *IndexedArray) Merge(other Content) (Content, error) {
	return merge(a, other)
}

func (a *IndexedArray) Validate() error {
	if err := checkIdentities(KindIndexed, a.id, a.Len()); err != nil {
		return err
	}
	n := a.content.Len()
	for i := int64(0); i < a.Len(); i++ {
		if k := a.index.Get(i); k < 0 || k >= n {
			return invalid(KindIndexed, i, "index %d outside content of length %d", k, n)
		}
	}
	return a.content.Validate()
}

// IndexedOptionArray is a lazy gather with missing values: row i is
// content[index[i]], or missing when index[i] is negative.
type IndexedOptionArray struct {
	meta
	index   index.Index
	content Content
}

func NewIndexedOption(idx index.Index, content Content) *IndexedOptionArray {
	return newIndexedOption(idx, content, nil, nil)
}

func newIndexedOption(idx index.Index, content Content, params Parameters, id *identity.Identities) *IndexedOptionArray {
	return &IndexedOptionArray{meta: meta{params: params, id: id}, index: idx, content: content}
}

func (a *IndexedOptionArray) sealed() {}

func (a *IndexedOptionArray) Kind() Kind {
	return KindIndexedOption
}

func (a *IndexedOptionArray) Len() int64 {
	return a.index.Len()
}

func (a *IndexedOptionArray) Index() index.Index {
	return a.index
}

func (a *IndexedOptionArray) Content() Content {
	return a.content
}

// IsMissing reports whether row i holds no value.
func (a *IndexedOptionArray) IsMissing(i int64) bool {
	return a.index.Get(i) < 0
}

func (a *IndexedOptionArray) WithIdentities(id *identity.Identities) (Content, error) {
	if err := checkIdentities(KindIndexedOption, id, a.Len()); err != nil {
		return nil, err
	}
	out := *a
	out.id = id
	return &out, nil
}

func (a *IndexedOptionArray) WithParameters(p Parameters) Content {
	out := *a
	out.params = p.clone()
	return &out
}

func (a *IndexedOptionArray) GetitemAt(i int64) (any, error) {
	j, err := wrapRow(KindIndexedOption, i, a.Len())
	if err != nil {
		return nil, err
	}
	k := a.index.Get(j)
	if k < 0 {
		return nil, nil
	}
	if k >= a.content.Len() {
		return nil, outOfBounds(KindIndexedOption, j, k, a.content.Len())
	}
	return a.content.GetitemAt(k)
}

func (a *IndexedOptionArray) GetitemRange(start, stop int64) Content {
	start, stop = kernel.ClampRange(start, stop, a.Len())
	return newIndexedOption(a.index.Slice(start, stop), a.content, a.params, a.rangeID(start, stop))
}

func (a *IndexedOptionArray) GetitemField(key string) (Content, error) {
	content, err := a.content.GetitemField(key)
	if err != nil {
		return nil, err
	}
	return newIndexedOption(a.index, content, nil, a.id), nil
}

func (a *IndexedOptionArray) GetitemFields(keys []string) (Content, error) {
	content, err := a.content.GetitemFields(keys)
	if err != nil {
		return nil, err
	}
	return newIndexedOption(a.index, content, nil, a.id), nil
}

// Carry composes the index; the content is not touched.
func (a *IndexedOptionArray) Carry(carry index.Index64) (Content, error) {
	if err := checkCarry(KindIndexedOption, carry, a.Len()); err != nil {
		return nil, err
	}
	idx, err := carryIndex(a.index, carry)
	if err != nil {
		return nil, err
	}
	id, err := a.carryID(carry)
	if err != nil {
		return nil, err
	}
	return newIndexedOption(idx, a.content, a.params, id), nil
}

// Project gathers the content of the present rows, dropping the missing
// ones.
func (a *IndexedOptionArray) Project() (Content, error) {
	carry, _, _, err := kernel.OptionProject(a.index.To64().Raw(), a.content.Len())
	if err != nil {
		return nil, atNode(err, KindIndexedOption)
	}
	out, err := a.content.Carry(index.Wrap(carry))
	if err != nil {
		return nil, atNode(err, KindIndexedOption)
	}
	return out, nil
}

func (a *IndexedOptionArray) PurelistDepth() int {
	return a.content.PurelistDepth()
}

func (a *IndexedOptionArray) MinMaxDepth() (int, int) {
	return a.content.MinMaxDepth()
}

func (a *IndexedOptionArray) Keys() []string {
	return a.content.Keys()
}

func (a *IndexedOptionArray) Mergeable(other Content, mergeBool bool) bool {
	return mergeable(a, other, mergeBool)
}

func (a *IndexedOptionArray) Merge(other Content) (Content, error) {
	return merge(a, other)
}

func (a *IndexedOptionArray) Validate() error {
	if err := checkIdentities(KindIndexedOption, a.id, a.Len()); err != nil {
		return err
	}
	n := a.content.Len()
	for i := int64(0); i < a.Len(); i++ {
		if k := a.index.Get(i); k >= n {
			return invalid(KindIndexedOption, i, "index %d outside content of length %d", k, n)
		}
	}
	return a.content.Validate()
}
