package identity

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

func TestCounterStartsAtZero(t *testing.T) {
	c := NewCounter()
	if got := c.Next(); got != 0 {
		t.Errorf("first ref = %d, want 0", got)
	}
	if got := c.Next(); got != 1 {
		t.Errorf("second ref = %d, want 1", got)
	}
}

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Next()
			}
		}()
	}
	wg.Wait()
	if got := c.Next(); got != 800 {
		t.Errorf("after 800 draws Next() = %d", got)
	}
}

func TestFresh(t *testing.T) {
	id := Fresh(NewCounter(), 3)
	if id.Ref() != 0 || id.Width() != 1 || id.Len() != 3 {
		t.Fatalf("Fresh = ref %d width %d len %d", id.Ref(), id.Width(), id.Len())
	}
	if got := id.Label(2); got != "[2]" {
		t.Errorf("Label(2) = %q", got)
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(0, nil, 2, 3, index.Arange(5))
	if !errors.IsKind(err, errors.KindShape) {
		t.Fatalf("expected shape error, got %v", err)
	}
	_, err = New(0, nil, 0, 0, index.Empty64())
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRangeAndCarry(t *testing.T) {
	id := Fresh(NewCounter(), 5)

	r := id.Range(1, 4)
	if r.Len() != 3 || r.Value(0, 0) != 1 || r.Value(2, 0) != 3 {
		t.Errorf("Range(1,4) labels wrong: %s %s", r.Label(0), r.Label(2))
	}

	c, err := id.Carry(index.New[int64](4, 4, 0))
	if err != nil {
		t.Fatalf("Carry failed: %v", err)
	}
	got := []int64{c.Value(0, 0), c.Value(1, 0), c.Value(2, 0)}
	if diff := cmp.Diff([]int64{4, 4, 0}, got); diff != "" {
		t.Errorf("Carry labels (-want +got):\n%s", diff)
	}

	if _, err := id.Carry(index.New[int64](5)); !errors.IsKind(err, errors.KindIndex) {
		t.Errorf("expected index error, got %v", err)
	}
}

func TestFromStartsStops(t *testing.T) {
	parent := Fresh(NewCounter(), 3)
	starts := index.New[int64](0, 3, 3)
	stops := index.New[int64](3, 3, 5)

	child, err := parent.FromStartsStops(starts, stops, 6)
	if err != nil {
		t.Fatalf("FromStartsStops failed: %v", err)
	}
	if child.Width() != 2 || child.Len() != 6 {
		t.Fatalf("child width/len = %d/%d", child.Width(), child.Len())
	}
	if diff := cmp.Diff([]int64{2, 1}, child.Row(4)); diff != "" {
		t.Errorf("row 4 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{-1, -1}, child.Row(5)); diff != "" {
		t.Errorf("uncovered row (-want +got):\n%s", diff)
	}

	if _, err := parent.FromStartsStops(starts, stops, 4); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("expected invalid data, got %v", err)
	}
}

func TestFromIndex(t *testing.T) {
	parent := Fresh(NewCounter(), 4)
	child, err := parent.FromIndex(index.New[int64](2, -1, 0, 2), 3)
	if err != nil {
		t.Fatalf("FromIndex failed: %v", err)
	}
	got := []int64{child.Value(0, 0), child.Value(1, 0), child.Value(2, 0)}
	if diff := cmp.Diff([]int64{2, -1, 0}, got); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
}

func TestWithFieldLocLabel(t *testing.T) {
	parent := Fresh(NewCounter(), 2)
	child, err := parent.FromStartsStops(index.New[int64](0, 1), index.New[int64](1, 3), 3)
	if err != nil {
		t.Fatal(err)
	}
	tagged := child.WithFieldLoc("x")
	if got := tagged.Label(2); got != `[1, 1, "x"]` {
		t.Errorf("Label(2) = %q", got)
	}
	if len(child.FieldLoc()) != 0 {
		t.Error("WithFieldLoc must not modify the receiver")
	}
	fl := tagged.FieldLoc()
	if len(fl) != 1 || fl[0].Column != 1 || fl[0].Name != "x" {
		t.Errorf("FieldLoc = %+v", fl)
	}
}
