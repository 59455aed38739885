package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wippyai/jagged/layout"
)

// tree lists the node kinds of c, one per line, children indented.
func tree(c layout.Content) []string {
	var lines []string
	walk(c, "", 0, &lines)
	return lines
}

func walk(c layout.Content, label string, depth int, lines *[]string) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	b.WriteString(c.Kind().String())
	fmt.Fprintf(&b, " len=%d", c.Len())

	var children []layout.Content
	var labels []string
	switch n := c.(type) {
	case *layout.PrimitiveArray:
		fmt.Fprintf(&b, " dtype=%s", n.DType())
	case *layout.ListOffsetArray:
		fmt.Fprintf(&b, " offsets=%s", n.Offsets().Width())
		children = append(children, n.Content())
	case *layout.ListArray:
		fmt.Fprintf(&b, " starts=%s", n.Starts().Width())
		children = append(children, n.Content())
	case *layout.RegularArray:
		fmt.Fprintf(&b, " size=%d", n.Size())
		children = append(children, n.Content())
	case *layout.IndexedArray:
		fmt.Fprintf(&b, " index=%s", n.Index().Width())
		children = append(children, n.Content())
	case *layout.IndexedOptionArray:
		fmt.Fprintf(&b, " index=%s", n.Index().Width())
		children = append(children, n.Content())
	case *layout.RecordArray:
		for _, key := range n.Keys() {
			field, err := n.Field(key)
			if err != nil {
				continue
			}
			children = append(children, field)
			labels = append(labels, key)
		}
	case *layout.UnionArray:
		fmt.Fprintf(&b, " index=%s", n.Index().Width())
		for i, content := range n.Contents() {
			children = append(children, content)
			labels = append(labels, fmt.Sprintf("#%d", i))
		}
	}

	if params := c.Parameters(); len(params) > 0 {
		keys := slices.Sorted(maps.Keys(params))
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + params[k]
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(pairs, ", "))
	}
	*lines = append(*lines, b.String())

	for i, child := range children {
		childLabel := ""
		if i < len(labels) {
			childLabel = labels[i]
		}
		walk(child, childLabel, depth+1, lines)
	}
}
