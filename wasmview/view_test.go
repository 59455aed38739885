package wasmview

import (
	"context"
	"encoding/binary"
	stderrors "errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

// oneMemoryPage is a module exporting a single page of memory as "memory".
var oneMemoryPage = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

type sliceMemory []byte

func (m sliceMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	end := uint64(offset) + uint64(byteCount)
	if end > uint64(len(m)) {
		return nil, false
	}
	return m[offset:end], true
}

func newGuest(t *testing.T) *Guest {
	t.Helper()
	ctx := context.Background()
	g, err := Instantiate(ctx, oneMemoryPage, &Config{MemoryLimitPages: 4})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	t.Cleanup(func() { _ = g.Close(ctx) })
	return g
}

func TestGuestReadIndex(t *testing.T) {
	g := newGuest(t)
	mem, err := g.Memory()
	if err != nil {
		t.Fatal(err)
	}
	if got := mem.Size(); got != 65536 {
		t.Fatalf("memory size = %d", got)
	}

	for i, v := range []uint32{0, 3, 3, 5} {
		if !mem.WriteUint32Le(16+4*uint32(i), v) {
			t.Fatal("write offsets")
		}
	}
	idx, err := ReadIndex(mem, 16, 4, index.WidthU32)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if idx.Width() != index.WidthU32 {
		t.Errorf("width = %s", idx.Width())
	}
	if diff := cmp.Diff([]int64{0, 3, 3, 5}, idx.To64().Values()); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}

	// Guest writes after the read must not show through.
	mem.WriteUint32Le(16, 99)
	if got := idx.Get(0); got != 0 {
		t.Errorf("index aliases guest memory, got %d", got)
	}
}

func TestGuestListOffset(t *testing.T) {
	g := newGuest(t)
	mem, err := g.Memory()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range []int64{1, 2, 3, 4, 5} {
		mem.WriteUint64Le(64+8*uint32(i), uint64(v))
	}
	for i, v := range []int64{0, 3, 3, 5} {
		mem.WriteUint64Le(256+8*uint32(i), uint64(v))
	}

	content, err := ReadPrimitive(mem, 64, 5, layout.DTypeInt64)
	if err != nil {
		t.Fatalf("ReadPrimitive: %v", err)
	}
	list, err := ReadListOffset(mem, 256, 3, index.Width64, content)
	if err != nil {
		t.Fatalf("ReadListOffset: %v", err)
	}
	got, err := layout.Format(list)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[[1, 2, 3], [], [4, 5]]" {
		t.Errorf("got %s", got)
	}

	// Offsets reaching past the content fail validation.
	mem.WriteUint64Le(256+24, 9)
	if _, err := ReadListOffset(mem, 256, 3, index.Width64, content); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("expected invalid data, got %v", err)
	}
}

func TestGuestOutOfBounds(t *testing.T) {
	g := newGuest(t)
	mem, err := g.Memory()
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadIndex(mem, 65536-4, 1, index.Width64)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindIndex}) {
		t.Fatalf("expected load index error, got %v", err)
	}
}

func TestInstantiateRejectsGarbage(t *testing.T) {
	_, err := Instantiate(context.Background(), []byte("not wasm"), nil)
	if !errors.IsKind(err, errors.KindInvalidData) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestReadIndexWidths(t *testing.T) {
	mem := sliceMemory{0xff, 0x01, 0x00, 0x00, 0xfe, 0xff, 0xff, 0xff}
	tests := []struct {
		width index.Width
		n     uint32
		want  []int64
	}{
		{index.Width8, 2, []int64{-1, 1}},
		{index.WidthU8, 2, []int64{255, 1}},
		{index.Width32, 2, []int64{0x1ff, -2}},
		{index.WidthU32, 2, []int64{0x1ff, math.MaxUint32 - 1}},
		{index.Width64, 1, []int64{-0x1fffffe01}},
	}
	for _, tt := range tests {
		t.Run(tt.width.String(), func(t *testing.T) {
			idx, err := ReadIndex(mem, 0, tt.n, tt.width)
			if err != nil {
				t.Fatalf("ReadIndex: %v", err)
			}
			if idx.Width() != tt.width {
				t.Errorf("width = %s", idx.Width())
			}
			if diff := cmp.Diff(tt.want, idx.To64().Values()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadPrimitive(t *testing.T) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(-2))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(0.25))
	mem := sliceMemory(buf)

	tests := []struct {
		name string
		ptr  uint32
		n    uint32
		dt   layout.DType
		want string
	}{
		{"float32", 0, 2, layout.DTypeFloat32, "[1.5, -2]"},
		{"float64", 8, 1, layout.DTypeFloat64, "[0.25]"},
		{"bool", 8, 8, layout.DTypeBool, "[false, false, false, false, false, false, true, true]"},
		{"int16", 4, 2, layout.DTypeInt16, "[0, -16384]"},
		{"uint16", 4, 2, layout.DTypeUint16, "[0, 49152]"},
		{"empty", 16, 0, layout.DTypeInt64, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ReadPrimitive(mem, tt.ptr, tt.n, tt.dt)
			if err != nil {
				t.Fatalf("ReadPrimitive: %v", err)
			}
			if p.DType() != tt.dt {
				t.Errorf("dtype = %s", p.DType())
			}
			got, err := layout.Format(p)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReadOverflow(t *testing.T) {
	_, err := ReadPrimitive(sliceMemory{}, 0, math.MaxUint32, layout.DTypeFloat64)
	if !errors.IsKind(err, errors.KindIndex) {
		t.Fatalf("expected index error, got %v", err)
	}
}

// jaggedModule exports one page of memory whose data segment holds the
// i32 offsets [0, 3, 3, 5] at 0 followed by the int32 values 1..5 at 16.
func jaggedModule() []byte {
	var data []byte
	for _, v := range []uint32{0, 3, 3, 5, 1, 2, 3, 4, 5} {
		data = binary.LittleEndian.AppendUint32(data, v)
	}
	wasm := append([]byte{}, oneMemoryPage...)
	wasm = append(wasm, 0x0b, byte(6+len(data)), 0x01, 0x00, 0x41, 0x00, 0x0b, byte(len(data)))
	return append(wasm, data...)
}

func TestReadJagged(t *testing.T) {
	ctx := context.Background()
	g, err := Instantiate(ctx, jaggedModule(), nil)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	t.Cleanup(func() { _ = g.Close(ctx) })
	mem, err := g.Memory()
	if err != nil {
		t.Fatal(err)
	}

	list, err := ReadJagged(mem, 0, 3, index.Width32, 16, layout.DTypeInt32)
	if err != nil {
		t.Fatalf("ReadJagged: %v", err)
	}
	got, err := layout.Format(list)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[[1, 2, 3], [], [4, 5]]" {
		t.Errorf("got %s", got)
	}
	if list.Offsets().Width() != index.Width32 {
		t.Errorf("offsets width = %s", list.Offsets().Width())
	}

	mem.WriteUint32Le(12, math.MaxUint32)
	if _, err := ReadJagged(mem, 0, 3, index.Width32, 16, layout.DTypeInt32); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("negative last offset error = %v", err)
	}

	mem.WriteUint32Le(12, 5)
	mem.WriteUint32Le(4, 7)
	if _, err := ReadJagged(mem, 0, 3, index.Width32, 16, layout.DTypeInt32); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("decreasing offsets error = %v", err)
	}
}
