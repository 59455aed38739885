package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
)

// Rows [[1, 2, 3], [], [4, 5]] over content positions 0..4.
var (
	sampleStarts = []int64{0, 3, 3}
	sampleStops  = []int64{3, 3, 5}
)

func TestListAt(t *testing.T) {
	carry, err := ListAt([]int64{0, 3}, []int64{3, 5}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{2, 4}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}

	_, err = ListAt(sampleStarts, sampleStops, 0)
	if !errors.IsKind(err, errors.KindIndex) {
		t.Fatalf("error = %v", err)
	}
	if e := err.(*errors.Error); e.Row != 1 {
		t.Errorf("row = %d, want 1", e.Row)
	}
}

func TestListRange(t *testing.T) {
	offsets, carry := ListRange(sampleStarts, sampleStops, 0, 0, -1, false, false)
	if diff := cmp.Diff([]int64{0, 3, 3, 5}, offsets); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{2, 1, 0, 4, 3}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
}

func TestSpreadAdvanced(t *testing.T) {
	got := SpreadAdvanced([]int64{1, 0, 2}, []int64{0, 2, 2, 3})
	if diff := cmp.Diff([]int64{1, 1, 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestListArray(t *testing.T) {
	carry, advanced, err := ListArray([]int64{0, 3}, []int64{3, 5}, []int64{0, -1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{0, 2, 3, 4}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 1, 0, 1}, advanced); diff != "" {
		t.Errorf("advanced (-want +got):\n%s", diff)
	}

	if _, _, err := ListArray(sampleStarts, sampleStops, []int64{0}); !errors.IsKind(err, errors.KindIndex) {
		t.Errorf("empty row error = %v", err)
	}
}

func TestListArrayAdvanced(t *testing.T) {
	carry, next, err := ListArrayAdvanced([]int64{0, 3}, []int64{3, 5}, []int64{1, 0}, []int64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{0, 4}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 1}, next); diff != "" {
		t.Errorf("advanced (-want +got):\n%s", diff)
	}
}

func TestCompactOffsetsAndRangesCarry(t *testing.T) {
	starts, stops := []int64{4, 0, 2}, []int64{6, 0, 3}
	if diff := cmp.Diff([]int64{0, 2, 2, 3}, CompactOffsets(starts, stops)); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{4, 5, 2}, RangesCarry(starts, stops)); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
}
