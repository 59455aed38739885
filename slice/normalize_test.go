package slice

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Slice
		min, max int
		want     string
		newAxes  []int
	}{
		{
			name: "ellipsis fills leading dimensions",
			in:   Slice{Ellipsis{}, At{At: 0}},
			min:  3, max: 3,
			want: "[:, :, 0]",
		},
		{
			name: "trailing ellipsis is dropped",
			in:   Slice{At{At: 0}, Ellipsis{}},
			min:  2, max: 3,
			want: "[0]",
		},
		{
			name: "ellipsis with nothing to fill",
			in:   Slice{At{At: 0}, Ellipsis{}, At{At: 1}},
			min:  2, max: 2,
			want: "[0, 1]",
		},
		{
			name: "fields consume no dimension",
			in:   Slice{Field{Key: "x"}, Ellipsis{}, At{At: 1}},
			min:  2, max: 2,
			want: `["x", :, 1]`,
		},
		{
			name:    "new axes become positions",
			in:      Slice{NewAxis{}, At{At: 0}, NewAxis{}, Full()},
			min:     2, max: 2,
			want:    "[0, :]",
			newAxes: []int{0, 1},
		},
		{
			name:    "new axis after range",
			in:      Slice{Full(), NewAxis{}},
			min:     1, max: 1,
			want:    "[:]",
			newAxes: []int{1},
		},
		{
			name: "integers broadcast next to arrays",
			in:   Slice{NewArray(0, 1), At{At: 2}},
			min:  2, max: 2,
			want: "[[0, 1], [2, 2]]",
		},
		{
			name: "length one arrays broadcast",
			in:   Slice{NewArray(3), NewArray(0, 1, 2)},
			min:  2, max: 2,
			want: "[[3, 3, 3], [0, 1, 2]]",
		},
		{
			name:    "advanced indexes share one output dimension",
			in:      Slice{NewArray(0, 1), NewArray(1, 0), NewAxis{}},
			min:     2, max: 2,
			want:    "[[0, 1], [1, 0]]",
			newAxes: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize(tt.min, tt.max)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if s := got.Items.String(); s != tt.want {
				t.Errorf("Items = %s, want %s", s, tt.want)
			}
			if diff := cmp.Diff(tt.newAxes, got.NewAxes); diff != "" {
				t.Errorf("NewAxes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	badJagged := Jagged{Offsets: index.New[int64](0, 2, 1), Content: NewArray(0, 1)}
	shortJagged := Jagged{Offsets: index.New[int64](0, 3), Content: NewArray(0, 1)}
	fieldInJagged := Jagged{Offsets: index.New[int64](0, 1), Content: Field{Key: "x"}}
	badMissing := Missing{Index: index.New[int64](0, 1), Content: NewArray(5)}

	tests := []struct {
		name     string
		in       Slice
		min, max int
		kind     errors.Kind
	}{
		{"two ellipses", Slice{Ellipsis{}, Ellipsis{}}, 1, 1, errors.KindInvalidInput},
		{"too deep", Slice{At{}, At{}, At{}}, 2, 2, errors.KindDepth},
		{"jagged too deep", Slice{JaggedOf([]int64{0})}, 1, 1, errors.KindDepth},
		{"zero step", Slice{Range{Step: 0}}, 1, 1, errors.KindInvalidInput},
		{"incompatible arrays", Slice{NewArray(0, 1), NewArray(0, 1, 2)}, 2, 2, errors.KindShape},
		{"decreasing offsets", Slice{badJagged}, 2, 2, errors.KindShape},
		{"offsets past content", Slice{shortJagged}, 2, 2, errors.KindShape},
		{"jagged of field", Slice{fieldInJagged}, 2, 2, errors.KindShape},
		{"masked position outside content", Slice{badMissing}, 1, 1, errors.KindShape},
		{"ellipsis on mixed depth", Slice{Ellipsis{}, At{}}, 1, 2, errors.KindDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Normalize(tt.min, tt.max)
			if !errors.IsKind(err, tt.kind) {
				t.Fatalf("expected %s error, got %v", tt.kind, err)
			}
		})
	}
}
