package layout

import (
	"testing"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/slice"
)

func TestAsSlice(t *testing.T) {
	tests := []struct {
		name string
		by   Content
		want string
	}{
		{"integers", ints(2, 0), "[[4, 5], [1, 2, 3]]"},
		{"boolean mask", NewPrimitive([]bool{true, false, true}), "[[1, 2, 3], [4, 5]]"},
		{"narrow integers", NewPrimitive([]int8{-1}), "[[4, 5]]"},
		{"indexed", NewIndexed(index.New[int64](1, 1), ints(0, 2)), "[[4, 5], [4, 5]]"},
		{"option", NewIndexedOption(index.New[int64](0, -1, 1), ints(2, 0)), "[[4, 5], None, [1, 2, 3]]"},
		{"lists", listOffset(t, []int64{0, 1, 1, 3}, ints(2, 0, 1)), "[[3], [], [4, 5]]"},
		{"boolean lists", listOffset(t, []int64{0, 3, 3, 5}, NewPrimitive([]bool{true, false, true, false, true})), "[[1, 3], [], [5]]"},
		{"lists with missing", listOffset(t, []int64{0, 1, 1, 3}, NewIndexedOption(index.New[int64](0, -1, 1), ints(0, 1))), "[[1], [], [None, 5]]"},
		{"empty", NewEmpty(), "[]"},
	}

	list := sample(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := AsSlice(tt.by)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Getitem(list, slice.Slice{item})
			if err != nil {
				t.Fatalf("Getitem(%s): %v", item, err)
			}
			if s := format(t, got); s != tt.want {
				t.Errorf("x[%s] = %s, want %s", item, s, tt.want)
			}
		})
	}
}

func TestAsSliceMatchesParsed(t *testing.T) {
	by := listOffset(t, []int64{0, 2, 2, 3}, ints(2, 0, -1))
	item, err := AsSlice(by)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Getitem(sample(t), slice.Slice{item})
	if err != nil {
		t.Fatal(err)
	}
	want := getitem(t, sample(t), "[[2, 0], [], [-1]]")
	if format(t, got) != format(t, want) {
		t.Errorf("x[by] = %s, want %s", format(t, got), format(t, want))
	}
}

func TestAsSliceErrors(t *testing.T) {
	tests := []struct {
		name string
		by   Content
	}{
		{"floats", NewPrimitive([]float64{1})},
		{"record", record(t, RecordField{Name: "x", Content: ints(1)})},
		{"union", listUnion(t)},
		{"option over booleans", NewIndexedOption(index.New[int64](0, -1), NewPrimitive([]bool{true}))},
		{"option over lists", NewIndexedOption(index.New[int64](0), sample(t))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AsSlice(tt.by); !errors.IsKind(err, errors.KindInvalidInput) {
				t.Errorf("AsSlice error = %v, want kind %s", err, errors.KindInvalidInput)
			}
		})
	}
}
