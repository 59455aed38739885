package witform

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

func listOffset(t *testing.T, offsets []int64, content layout.Content) *layout.ListOffsetArray {
	t.Helper()
	l, err := layout.NewListOffset(index.New(offsets...), content)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestType(t *testing.T) {
	ints := layout.NewPrimitive([]int64{1, 2, 3})
	floats := layout.NewPrimitive([]float32{0.5, 1})
	jagged := listOffset(t, []int64{0, 2, 3}, ints)

	regular, err := layout.NewRegular(floats, 2)
	if err != nil {
		t.Fatal(err)
	}
	list, err := layout.NewList(index.New[int32](0), index.New[int32](2), ints)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := layout.NewRecord(
		layout.RecordField{Name: "x", Content: ints},
		layout.RecordField{Name: "tags", Content: jagged},
	)
	if err != nil {
		t.Fatal(err)
	}
	union, err := layout.NewUnion(index.New[int8](0, 1), index.New[int64](0, 0), ints, jagged)
	if err != nil {
		t.Fatal(err)
	}
	text := listOffset(t, []int64{0, 2}, layout.NewPrimitive([]uint8{'h', 'i'})).
		WithParameters(layout.Parameters{"__array__": "string"})

	tests := []struct {
		name string
		c    layout.Content
		want string
	}{
		{"bool", layout.NewPrimitive([]bool{true}), "bool"},
		{"int64", ints, "s64"},
		{"uint16", layout.NewPrimitive([]uint16{1}), "u16"},
		{"float32", floats, "f32"},
		{"list offset", jagged, "list<s64>"},
		{"list", list, "list<s64>"},
		{"regular", regular, "list<f32>"},
		{"indexed", layout.NewIndexed(index.New[int64](0), ints), "s64"},
		{"option", layout.NewIndexedOption(index.New[int64](-1, 0), jagged), "option<list<s64>>"},
		{"record", rec, "record { x: s64, tags: list<s64> }"},
		{"union", union, "variant { v0(s64), v1(list<s64>) }"},
		{"string", text, "string"},
		{"nested", listOffset(t, []int64{0, 1}, rec), "list<record { x: s64, tags: list<s64> }>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Type(tt.c)
			if err != nil {
				t.Fatalf("Type: %v", err)
			}
			if got := Render(typ); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeEmpty(t *testing.T) {
	_, err := Type(layout.NewEmpty())
	if !errors.IsKind(err, errors.KindUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}

	rec, err := layout.NewRecordLength(0, layout.RecordField{Name: "e", Content: layout.NewEmpty()})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Type(listOffset(t, []int64{0}, rec))
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindUnsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "e" {
		t.Errorf("path = %v", e.Path)
	}
}

func TestLayout(t *testing.T) {
	list := &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	tests := []struct {
		name string
		typ  wit.Type
		want Info
	}{
		{"u8", wit.U8{}, Info{Size: 1, Align: 1}},
		{"f64", wit.F64{}, Info{Size: 8, Align: 8}},
		{"string", wit.String{}, Info{Size: 8, Align: 4}},
		{"list", list, Info{Size: 8, Align: 4}},
		{"option u32", &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}, Info{Size: 8, Align: 4}},
		{"record", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "a", Type: wit.U8{}},
			{Name: "b", Type: wit.U64{}},
			{Name: "c", Type: wit.U16{}},
		}}}, Info{Size: 24, Align: 8}},
		{"variant", &wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{
			{Name: "v0", Type: wit.S64{}},
			{Name: "v1", Type: list},
		}}}, Info{Size: 16, Align: 8}},
		{"empty record", &wit.TypeDef{Kind: &wit.Record{}}, Info{Size: 0, Align: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Layout(tt.typ); got != tt.want {
				t.Errorf("Layout = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculatorCaches(t *testing.T) {
	def := &wit.TypeDef{Kind: &wit.Option{Type: wit.U64{}}}
	c := NewCalculator()
	first := c.Calculate(def)
	if first != (Info{Size: 16, Align: 8}) {
		t.Fatalf("option<u64> = %+v", first)
	}
	def.Kind = &wit.Option{Type: wit.U8{}}
	if got := c.Calculate(def); got != first {
		t.Errorf("cached layout changed to %+v", got)
	}
}
