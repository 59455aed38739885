package layout

import (
	"testing"

	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/slice"
)

func ints(values ...int64) *PrimitiveArray {
	return NewPrimitive(values)
}

func listOffset(t *testing.T, offsets []int64, content Content) *ListOffsetArray {
	t.Helper()
	l, err := NewListOffset(index.New(offsets...), content)
	if err != nil {
		t.Fatalf("NewListOffset: %v", err)
	}
	return l
}

// sample is [[1, 2, 3], [], [4, 5]].
func sample(t *testing.T) *ListOffsetArray {
	t.Helper()
	return listOffset(t, []int64{0, 3, 3, 5}, ints(1, 2, 3, 4, 5))
}

func record(t *testing.T, fields ...RecordField) *RecordArray {
	t.Helper()
	r, err := NewRecord(fields...)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return r
}

func format(t *testing.T, v any) string {
	t.Helper()
	s, err := Format(v)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return s
}

func getitem(t *testing.T, c Content, expr string) any {
	t.Helper()
	s, err := slice.Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	v, err := Getitem(c, s)
	if err != nil {
		t.Fatalf("Getitem(%s): %v", expr, err)
	}
	return v
}

func getitemErr(t *testing.T, c Content, expr string) error {
	t.Helper()
	s, err := slice.Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	v, err := Getitem(c, s)
	if err == nil {
		t.Fatalf("Getitem(%s) = %v, want error", expr, v)
	}
	return err
}
