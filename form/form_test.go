package form

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

const sampleYAML = `
arrays:
  jagged:
    class: ListOffsetArray
    offsets: [0, 3, 3, 5]
    content:
      class: PrimitiveArray
      dtype: int64
      data: [1, 2, 3, 4, 5]
  points:
    class: RecordArray
    fields:
      - name: x
        content: {class: PrimitiveArray, dtype: float64, data: [1.5, 2, 3]}
      - name: y
        content: {class: PrimitiveArray, dtype: int32, data: [10, 20, 30]}
`

func build(t *testing.T, doc string) layout.Content {
	t.Helper()
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := f.Build("")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func formatted(t *testing.T, c layout.Content) string {
	t.Helper()
	s, err := layout.Format(c)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return s
}

func TestParseArrays(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"jagged", "points"}, f.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		want string
	}{
		{"jagged", "[[1, 2, 3], [], [4, 5]]"},
		{"points", `[{"x": 1.5, "y": 10}, {"x": 2, "y": 20}, {"x": 3, "y": 30}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.Build(tt.name)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := formatted(t, c); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Lookup(""); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("empty name on a multi-array file: %v", err)
	}
	if _, err := f.Lookup("nope"); !errors.IsKind(err, errors.KindField) {
		t.Errorf("unknown name: %v", err)
	}
}

func TestSingleNode(t *testing.T) {
	c := build(t, `
class: ListArray
starts: {width: i32, data: [0, 3, 3]}
stops: {width: i32, data: [3, 3, 5]}
parameters: {__array__: string}
content:
  class: NumpyArray
  dtype: uint8
  data: [104, 105, 33, 111, 107]
`)
	l, ok := c.(*layout.ListArray)
	if !ok {
		t.Fatalf("got %T, want *layout.ListArray", c)
	}
	if l.Starts().Width() != index.Width32 {
		t.Errorf("starts width = %s", l.Starts().Width())
	}
	if got := l.Parameters().Get("__array__"); got != "string" {
		t.Errorf("parameter = %q", got)
	}
	if got := formatted(t, c); got != "[[104, 105, 33], [], [111, 107]]" {
		t.Errorf("got %s", got)
	}
}

func TestAllKinds(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty",
			doc:  `class: EmptyArray`,
			want: "[]",
		},
		{
			name: "bool",
			doc:  `{class: PrimitiveArray, dtype: bool, data: [true, false]}`,
			want: "[true, false]",
		},
		{
			name: "regular",
			doc: `
class: RegularArray
size: 2
content: {class: PrimitiveArray, dtype: int16, data: [1, 2, 3, 4, 5]}
`,
			want: "[[1, 2], [3, 4]]",
		},
		{
			name: "regular zero size",
			doc: `
class: RegularArray
size: 0
length: 2
content: {class: EmptyArray}
`,
			want: "[[], []]",
		},
		{
			name: "indexed",
			doc: `
class: IndexedArray
index: {width: u8, data: [2, 0, 2]}
content: {class: PrimitiveArray, dtype: int64, data: [7, 8, 9]}
`,
			want: "[9, 7, 9]",
		},
		{
			name: "option",
			doc: `
class: IndexedOptionArray
index: [0, -1, 1]
content: {class: PrimitiveArray, dtype: float32, data: [0.5, 2]}
`,
			want: "[0.5, None, 2]",
		},
		{
			name: "union",
			doc: `
class: UnionArray
tags: {width: i8, data: [0, 1, 0]}
index: [0, 0, 1]
contents:
  - {class: PrimitiveArray, dtype: int64, data: [1, 2]}
  - class: ListOffsetArray
    offsets: [0, 2]
    content: {class: PrimitiveArray, dtype: int64, data: [3, 4]}
`,
			want: "[1, [3, 4], 2]",
		},
		{
			name: "record without fields",
			doc:  `{class: RecordArray, length: 2}`,
			want: "[{}, {}]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatted(t, build(t, tt.doc)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		phase errors.Phase
		kind  errors.Kind
		path  []string
	}{
		{
			name:  "unknown key",
			doc:   `{class: EmptyArray, colour: red}`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "unknown class",
			doc:   `{class: BitMaskedArray}`,
			phase: errors.PhaseLoad,
			kind:  errors.KindUnsupported,
		},
		{
			name:  "missing content",
			doc:   `{class: ListOffsetArray, offsets: [0]}`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
		},
		{
			name: "width overflow",
			doc: `
class: IndexedArray
index: {width: i8, data: [200]}
content: {class: EmptyArray}
`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
			path:  []string{"index"},
		},
		{
			name:  "bad dtype value",
			doc:   `{class: PrimitiveArray, dtype: uint8, data: [-1]}`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
			path:  []string{"data"},
		},
		{
			name:  "fraction in integer column",
			doc:   `{class: PrimitiveArray, dtype: int64, data: [1.5]}`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
			path:  []string{"data"},
		},
		{
			name: "nested path",
			doc: `
class: RecordArray
fields:
  - name: a
    content:
      class: ListOffsetArray
      offsets: [0, 1]
      content: {class: PrimitiveArray, dtype: nope}
`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
			path:  []string{"a", "content"},
		},
		{
			name: "wide union tags",
			doc: `
class: UnionArray
tags: [0]
index: [0]
contents: [{class: EmptyArray}]
`,
			phase: errors.PhaseLoad,
			kind:  errors.KindInvalidData,
		},
		{
			name: "offsets past content",
			doc: `
class: ListOffsetArray
offsets: [0, 4]
content: {class: PrimitiveArray, dtype: int64, data: [1, 2]}
`,
			phase: errors.PhaseValidate,
			kind:  errors.KindInvalidData,
		},
		{
			name:  "constructor rejects",
			doc:   `{class: RegularArray, size: -1, content: {class: EmptyArray}}`,
			phase: errors.PhaseConstruct,
			kind:  errors.KindInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			if err == nil {
				_, err = f.Build("")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Phase != tt.phase || e.Kind != tt.kind {
				t.Fatalf("got %s/%s, want %s/%s: %v", e.Phase, e.Kind, tt.phase, tt.kind, err)
			}
			if tt.path != nil {
				if diff := cmp.Diff(tt.path, e.Path); diff != "" {
					t.Errorf("path (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, doc := range []string{"", "  \n", "arrays: {}"} {
		if _, err := Parse([]byte(doc)); !errors.IsKind(err, errors.KindInvalidData) {
			t.Errorf("Parse(%q) = %v", doc, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Arrays) != 2 {
		t.Errorf("got %d arrays", len(f.Arrays))
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.IsKind(err, errors.KindInvalidData) || !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}
