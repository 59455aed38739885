package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/identity"
	"github.com/wippyai/jagged/index"
)

func TestSetIdentities(t *testing.T) {
	counter := identity.NewCounter()
	tagged, err := SetIdentities(sample(t), counter)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(tagged); err != nil {
		t.Fatalf("tagged tree is invalid: %v", err)
	}

	list := tagged.(*ListOffsetArray)
	if list.Identities().Ref() != 0 {
		t.Errorf("ref = %d, want 0", list.Identities().Ref())
	}
	content := list.Content().Identities()
	labels := make([]string, content.Len())
	for i := range labels {
		labels[i] = content.Label(int64(i))
	}
	want := []string{"[0, 0]", "[0, 1]", "[0, 2]", "[2, 0]", "[2, 1]"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("content labels (-want +got):\n%s", diff)
	}

	again, err := SetIdentities(sample(t), counter)
	if err != nil {
		t.Fatal(err)
	}
	if again.Identities().Ref() != 1 {
		t.Errorf("second ref = %d, want 1", again.Identities().Ref())
	}
}

func TestSetIdentitiesRegular(t *testing.T) {
	reg, _ := NewRegular(ints(1, 2, 3, 4), 2)
	tagged, err := SetIdentities(reg, identity.NewCounter())
	if err != nil {
		t.Fatal(err)
	}
	content := tagged.(*RegularArray).Content().Identities()
	if diff := cmp.Diff([]int64{1, 0}, content.Row(2)); diff != "" {
		t.Errorf("row 2 (-want +got):\n%s", diff)
	}
}

func TestSetIdentitiesIndexed(t *testing.T) {
	opt := NewIndexedOption(index.New[int64](2, -1, 0), ints(7, 8, 9))
	tagged, err := SetIdentities(opt, identity.NewCounter())
	if err != nil {
		t.Fatal(err)
	}
	content := tagged.(*IndexedOptionArray).Content().Identities()
	got := []int64{content.Value(0, 0), content.Value(1, 0), content.Value(2, 0)}
	if diff := cmp.Diff([]int64{2, -1, 0}, got); diff != "" {
		t.Errorf("content labels (-want +got):\n%s", diff)
	}
}

func TestSetIdentitiesRecordAndUnion(t *testing.T) {
	u, err := NewUnion(index.New[int8](1, 0, 1), index.New[int64](0, 0, 1), ints(5), ints(6, 7))
	if err != nil {
		t.Fatal(err)
	}
	rec := record(t, RecordField{Name: "u", Content: u}, RecordField{Name: "n", Content: ints(1, 2, 3, 4)})
	tagged, err := SetIdentities(rec, identity.NewCounter())
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(tagged); err != nil {
		t.Fatal(err)
	}

	r := tagged.(*RecordArray)
	n, err := r.Field("n")
	if err != nil {
		t.Fatal(err)
	}
	if n.Len() != 3 || n.Identities().Len() != 3 {
		t.Errorf("field n not trimmed to the record: len %d", n.Len())
	}

	field, err := r.Field("u")
	if err != nil {
		t.Fatal(err)
	}
	second := field.(*UnionArray).ContentAt(1).Identities()
	got := []int64{second.Value(0, 0), second.Value(1, 0)}
	if diff := cmp.Diff([]int64{0, 2}, got); diff != "" {
		t.Errorf("union content labels (-want +got):\n%s", diff)
	}
	if fl := second.FieldLoc(); len(fl) != 1 || fl[0].Name != "u" {
		t.Errorf("field location = %+v", fl)
	}
}
