package form

import (
	"bytes"
	"os"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

// File is a decoded layout description.
type File struct {
	Arrays map[string]*Node `yaml:"arrays"`
}

// Node describes one layout node. Which fields apply depends on Class.
type Node struct {
	Class      string            `yaml:"class"`
	Parameters map[string]string `yaml:"parameters,omitempty"`

	Offsets *Buffer `yaml:"offsets,omitempty"`
	Starts  *Buffer `yaml:"starts,omitempty"`
	Stops   *Buffer `yaml:"stops,omitempty"`
	Index   *Buffer `yaml:"index,omitempty"`
	Tags    *Buffer `yaml:"tags,omitempty"`

	DType string `yaml:"dtype,omitempty"`
	Data  []any  `yaml:"data,omitempty"`

	Size   *int64 `yaml:"size,omitempty"`
	Length *int64 `yaml:"length,omitempty"`

	Content  *Node   `yaml:"content,omitempty"`
	Contents []*Node `yaml:"contents,omitempty"`
	Fields   []Field `yaml:"fields,omitempty"`
}

// Field is one named record child.
type Field struct {
	Name    string `yaml:"name"`
	Content *Node  `yaml:"content"`
}

// Buffer is an inline index buffer. An empty Width means i64.
type Buffer struct {
	Width string  `yaml:"width,omitempty"`
	Data  []int64 `yaml:"data"`
}

type bufferFields Buffer

// UnmarshalYAML accepts a bare list or a {width, data} mapping.
func (b *Buffer) UnmarshalYAML(data []byte) error {
	var values []int64
	if err := yaml.Unmarshal(data, &values); err == nil {
		*b = Buffer{Data: values}
		return nil
	}
	var f bufferFields
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return err
	}
	*b = Buffer(f)
	return nil
}

// LoadFile reads and decodes a layout description from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return Parse(data)
}

// Parse decodes a layout description. A document without a top-level
// arrays key is a single node, stored under the empty name.
func Parse(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Load("empty document", nil)
	}

	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.Load("decode yaml", err)
	}

	if _, ok := probe["arrays"]; ok {
		var f File
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
			return nil, errors.Load("decode arrays", err)
		}
		if len(f.Arrays) == 0 {
			return nil, errors.Load("arrays is empty", nil)
		}
		for name, n := range f.Arrays {
			if n == nil {
				return nil, errors.Load("array "+name+" has no node", nil)
			}
		}
		return &f, nil
	}

	var n Node
	if err := yaml.UnmarshalWithOptions(data, &n, yaml.Strict()); err != nil {
		return nil, errors.Load("decode node", err)
	}
	return &File{Arrays: map[string]*Node{"": &n}}, nil
}

// Names lists the array names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Arrays))
	for name := range f.Arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the node called name. An empty name selects the only
// array of a single-array file.
func (f *File) Lookup(name string) (*Node, error) {
	if name == "" && len(f.Arrays) == 1 {
		for _, n := range f.Arrays {
			return n, nil
		}
	}
	n, ok := f.Arrays[name]
	if !ok {
		if name == "" {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Detail("file holds %d arrays, choose one of %v", len(f.Arrays), f.Names()).
				Build()
		}
		return nil, errors.New(errors.PhaseLoad, errors.KindField).
			Value(name).
			Detail("no array %q, have %v", name, f.Names()).
			Build()
	}
	return n, nil
}

// Build constructs and validates the array called name.
func (f *File) Build(name string) (layout.Content, error) {
	n, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	return n.Build()
}

// Build constructs the layout tree below n and validates it.
func (n *Node) Build() (layout.Content, error) {
	c, err := n.build(nil)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (n *Node) build(path []string) (layout.Content, error) {
	if n == nil {
		return nil, loadErr(path, "missing node")
	}
	kind, ok := parseClass(n.Class)
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Path(slices.Clone(path)...).
			Value(n.Class).
			Detail("unknown class %q", n.Class).
			Build()
	}

	var c layout.Content
	var err error
	switch kind {
	case layout.KindEmpty:
		c = layout.NewEmpty()
	case layout.KindPrimitive:
		c, err = n.buildPrimitive(path)
	case layout.KindListOffset:
		c, err = n.buildListOffset(path)
	case layout.KindList:
		c, err = n.buildList(path)
	case layout.KindRegular:
		c, err = n.buildRegular(path)
	case layout.KindIndexed, layout.KindIndexedOption:
		c, err = n.buildIndexed(kind, path)
	case layout.KindRecord:
		c, err = n.buildRecord(path)
	case layout.KindUnion:
		c, err = n.buildUnion(path)
	}
	if err != nil {
		return nil, err
	}
	if len(n.Parameters) > 0 {
		c = c.WithParameters(layout.Parameters(n.Parameters))
	}
	return c, nil
}

func parseClass(s string) (layout.Kind, bool) {
	switch s {
	case "NumpyArray", "Primitive":
		return layout.KindPrimitive, true
	case "Empty":
		return layout.KindEmpty, true
	}
	return layout.ParseKind(s)
}

func (n *Node) child(path []string, key string) (layout.Content, error) {
	if n.Content == nil {
		return nil, loadErr(path, n.Class+" needs content")
	}
	return n.Content.build(append(path, key))
}

func (n *Node) buildListOffset(path []string) (layout.Content, error) {
	offsets, err := n.Offsets.index(path, "offsets")
	if err != nil {
		return nil, err
	}
	content, err := n.child(path, "content")
	if err != nil {
		return nil, err
	}
	return layout.NewListOffset(offsets, content)
}

func (n *Node) buildList(path []string) (layout.Content, error) {
	starts, err := n.Starts.index(path, "starts")
	if err != nil {
		return nil, err
	}
	stops, err := n.Stops.index(path, "stops")
	if err != nil {
		return nil, err
	}
	content, err := n.child(path, "content")
	if err != nil {
		return nil, err
	}
	return layout.NewList(starts, stops, content)
}

func (n *Node) buildRegular(path []string) (layout.Content, error) {
	if n.Size == nil {
		return nil, loadErr(path, "RegularArray needs size")
	}
	content, err := n.child(path, "content")
	if err != nil {
		return nil, err
	}
	if n.Length != nil {
		return layout.NewRegularLength(content, *n.Size, *n.Length)
	}
	return layout.NewRegular(content, *n.Size)
}

func (n *Node) buildIndexed(kind layout.Kind, path []string) (layout.Content, error) {
	idx, err := n.Index.index(path, "index")
	if err != nil {
		return nil, err
	}
	content, err := n.child(path, "content")
	if err != nil {
		return nil, err
	}
	if kind == layout.KindIndexedOption {
		return layout.NewIndexedOption(idx, content), nil
	}
	return layout.NewIndexed(idx, content), nil
}

func (n *Node) buildRecord(path []string) (layout.Content, error) {
	fields := make([]layout.RecordField, len(n.Fields))
	for i, f := range n.Fields {
		if f.Name == "" {
			return nil, loadErr(path, "record field without a name")
		}
		c, err := f.Content.build(append(path, f.Name))
		if err != nil {
			return nil, err
		}
		fields[i] = layout.RecordField{Name: f.Name, Content: c}
	}
	if n.Length != nil {
		return layout.NewRecordLength(*n.Length, fields...)
	}
	return layout.NewRecord(fields...)
}

func (n *Node) buildUnion(path []string) (layout.Content, error) {
	tags, err := n.Tags.index(path, "tags")
	if err != nil {
		return nil, err
	}
	tags8, ok := tags.(index.Index8)
	if !ok {
		return nil, loadErr(path, "union tags must be i8, got "+tags.Width().String())
	}
	idx, err := n.Index.index(path, "index")
	if err != nil {
		return nil, err
	}
	contents := make([]layout.Content, len(n.Contents))
	for i, sub := range n.Contents {
		c, err := sub.build(append(path, "contents"))
		if err != nil {
			return nil, err
		}
		contents[i] = c
	}
	return layout.NewUnion(tags8, idx, contents...)
}

func loadErr(path []string, detail string) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidData).
		Path(slices.Clone(path)...).
		Detail("%s", detail).
		Build()
}
