package layout

import (
	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/internal/kernel"
)

// SetIdentities returns a copy of the tree rooted at c in which every
// node carries provenance: the root is labelled 0..Len-1 under a fresh
// reference from counter (identity.Default when nil), and each child
// derives its labels from its parent's.
func SetIdentities(c Content, counter identity.Counter) (Content, error) {
	return setIdentities(c, identity.Fresh(counter, c.Len()))
}

func setIdentities(c Content, id *identity.Identities) (Content, error) {
	switch n := c.(type) {
	case *ListOffsetArray:
		offsets := n.offsets.To64()
		content, err := setListIdentities(id, offsets.Range(0, n.Len()), offsets.Range(1, offsets.Len()), n.content)
		if err != nil {
			return nil, err
		}
		return newListOffset(n.offsets, content, n.params, id), nil
	case *ListArray:
		content, err := setListIdentities(id, n.starts64(), n.stops64(), n.content)
		if err != nil {
			return nil, err
		}
		return newList(n.starts, n.stops, content, n.params, id), nil
	case *RegularArray:
		offsets := index.Wrap(kernel.RegularOffsets(n.length, n.size))
		content, err := setListIdentities(id, offsets.Range(0, n.length), offsets.Range(1, n.length+1), n.content)
		if err != nil {
			return nil, err
		}
		return newRegular(content, n.size, n.length, n.params, id), nil
	case *IndexedArray:
		content, err := setIndexIdentities(id, n.index.To64(), n.content)
		if err != nil {
			return nil, err
		}
		return newIndexed(n.index, content, n.params, id), nil
	case *IndexedOptionArray:
		content, err := setIndexIdentities(id, n.index.To64(), n.content)
		if err != nil {
			return nil, err
		}
		return newIndexedOption(n.index, content, n.params, id), nil
	case *RecordArray:
		fields := make([]Content, len(n.fields))
		for i, f := range n.fields {
			if f.Len() != n.length {
				f = f.GetitemRange(0, n.length)
			}
			out, err := setIdentities(f, id.WithFieldLoc(n.keys[i]))
			if err != nil {
				return nil, inField(err, n.keys[i])
			}
			fields[i] = out
		}
		return newRecord(n.keys, fields, n.length, n.params, id), nil
	case *UnionArray:
		contents := make([]Content, len(n.contents))
		for t, content := range n.contents {
			carry, rows := kernel.UnionProject(n.tags.Raw(), n.index.To64().Raw(), int8(t))
			rowID, err := id.Carry(index.Wrap(rows))
			if err != nil {
				return nil, err
			}
			contentID, err := rowID.FromIndex(index.Wrap(carry), content.Len())
			if err != nil {
				return nil, err
			}
			if contents[t], err = setIdentities(content, contentID); err != nil {
				return nil, err
			}
		}
		return newUnion(n.tags, n.index, contents, n.params, id), nil
	}
	return c.WithIdentities(id)
}

func setListIdentities(id *identity.Identities, starts, stops index.Index64, content Content) (Content, error) {
	child, err := id.FromStartsStops(starts, stops, content.Len())
	if err != nil {
		return nil, err
	}
	return setIdentities(content, child)
}

func setIndexIdentities(id *identity.Identities, idx index.Index64, content Content) (Content, error) {
	child, err := id.FromIndex(idx, content.Len())
	if err != nil {
		return nil, err
	}
	return setIdentities(content, child)
}
