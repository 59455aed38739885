// Package wasmview copies index and leaf buffers out of a WebAssembly
// guest's linear memory.
//
// A guest that builds arrays hands back (pointer, length) pairs; the
// functions here turn those into immutable index.Buffer and
// layout.PrimitiveArray values. Linear memory is little-endian. Data is
// always copied, so the guest may reuse its memory once a read returns.
package wasmview

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

// Memory is the read side of a guest's linear memory. wazero's
// api.Memory satisfies it.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
}

func read(mem Memory, ptr, n uint32, elemSize int) ([]byte, error) {
	total := uint64(n) * uint64(elemSize)
	if total > math.MaxUint32 {
		return nil, errors.New(errors.PhaseLoad, errors.KindIndex).
			Value(n).
			Detail("%d elements of %d bytes overflow 32-bit memory", n, elemSize).
			Build()
	}
	data, ok := mem.Read(ptr, uint32(total))
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindIndex).
			Value(ptr).
			Detail("read of %d bytes at offset %d is outside guest memory", total, ptr).
			Build()
	}
	return data, nil
}

// ReadIndex copies n entries of the given width starting at ptr.
func ReadIndex(mem Memory, ptr, n uint32, width index.Width) (index.Index, error) {
	switch width {
	case index.Width8:
		data, err := read(mem, ptr, n, 1)
		if err != nil {
			return nil, err
		}
		out := make([]int8, n)
		for i, b := range data {
			out[i] = int8(b)
		}
		return index.Wrap(out), nil
	case index.WidthU8:
		data, err := read(mem, ptr, n, 1)
		if err != nil {
			return nil, err
		}
		return index.New(data...), nil
	case index.Width32:
		data, err := read(mem, ptr, n, 4)
		if err != nil {
			return nil, err
		}
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
		}
		return index.Wrap(out), nil
	case index.WidthU32:
		data, err := read(mem, ptr, n, 4)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, n)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(data[4*i:])
		}
		return index.Wrap(out), nil
	case index.Width64:
		data, err := read(mem, ptr, n, 8)
		if err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(data[8*i:]))
		}
		return index.Wrap(out), nil
	}
	return nil, errors.Unsupported(errors.PhaseLoad, "index width "+width.String())
}

// ReadPrimitive copies n values of dtype starting at ptr. Booleans are
// one byte each; any non-zero byte is true.
func ReadPrimitive(mem Memory, ptr, n uint32, dt layout.DType) (*layout.PrimitiveArray, error) {
	data, err := read(mem, ptr, n, dt.Size())
	if err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	switch dt {
	case layout.DTypeBool:
		return decode(data, 1, func(b []byte) bool { return b[0] != 0 }), nil
	case layout.DTypeInt8:
		return decode(data, 1, func(b []byte) int8 { return int8(b[0]) }), nil
	case layout.DTypeUint8:
		return decode(data, 1, func(b []byte) uint8 { return b[0] }), nil
	case layout.DTypeInt16:
		return decode(data, 2, func(b []byte) int16 { return int16(le.Uint16(b)) }), nil
	case layout.DTypeUint16:
		return decode(data, 2, le.Uint16), nil
	case layout.DTypeInt32:
		return decode(data, 4, func(b []byte) int32 { return int32(le.Uint32(b)) }), nil
	case layout.DTypeUint32:
		return decode(data, 4, le.Uint32), nil
	case layout.DTypeInt64:
		return decode(data, 8, func(b []byte) int64 { return int64(le.Uint64(b)) }), nil
	case layout.DTypeUint64:
		return decode(data, 8, le.Uint64), nil
	case layout.DTypeFloat32:
		return decode(data, 4, func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) }), nil
	case layout.DTypeFloat64:
		return decode(data, 8, func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }), nil
	}
	return nil, errors.Unsupported(errors.PhaseLoad, "dtype "+dt.String())
}

func decode[T layout.Scalar](data []byte, size int, conv func([]byte) T) *layout.PrimitiveArray {
	out := make([]T, len(data)/size)
	for i := range out {
		out[i] = conv(data[i*size : (i+1)*size])
	}
	return layout.WrapPrimitive(out)
}
