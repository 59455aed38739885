package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
)

func TestMissingRepeat(t *testing.T) {
	got := MissingRepeat([]int64{0, -1, 1}, 2, 2)
	if diff := cmp.Diff([]int64{0, -1, 1, 2, -1, 3}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOptionProject(t *testing.T) {
	carry, rows, outIndex, err := OptionProject([]int64{3, -1, 0, -5}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{3, 0}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 2}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, -1, 1, -1}, outIndex); diff != "" {
		t.Errorf("index (-want +got):\n%s", diff)
	}

	if _, _, _, err := OptionProject([]int64{4}, 4); !errors.IsKind(err, errors.KindIndex) {
		t.Errorf("error = %v", err)
	}
}

func TestUnionKernels(t *testing.T) {
	tags := []int8{1, 0, 1, 1}
	carry, rows := UnionProject(tags, []int64{4, 0, 2, 2}, 1)
	if diff := cmp.Diff([]int64{4, 2, 2}, carry); diff != "" {
		t.Errorf("carry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 2, 3}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 0, 1, 2}, RegularUnionIndex(tags, 2)); diff != "" {
		t.Errorf("regular index (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{30, 10}, Gather([]int64{10, 20, 30}, []int64{2, 0})); diff != "" {
		t.Errorf("gather (-want +got):\n%s", diff)
	}
}
