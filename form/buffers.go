package form

import (
	"math"
	"slices"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
)

func (b *Buffer) index(path []string, key string) (index.Index, error) {
	if b == nil {
		return nil, loadErr(append(path, key), "missing "+key)
	}
	width := index.Width64
	if b.Width != "" {
		w, ok := index.ParseWidth(b.Width)
		if !ok {
			return nil, loadErr(append(path, key), "unknown index width "+b.Width)
		}
		width = w
	}
	switch width {
	case index.Width8:
		return narrow[int8](b.Data, math.MinInt8, math.MaxInt8, path, key)
	case index.WidthU8:
		return narrow[uint8](b.Data, 0, math.MaxUint8, path, key)
	case index.Width32:
		return narrow[int32](b.Data, math.MinInt32, math.MaxInt32, path, key)
	case index.WidthU32:
		return narrow[uint32](b.Data, 0, math.MaxUint32, path, key)
	default:
		return index.New(b.Data...), nil
	}
}

func narrow[T index.Integer](data []int64, lo, hi int64, path []string, key string) (index.Index, error) {
	out := make([]T, len(data))
	for i, v := range data {
		if v < lo || v > hi {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Path(slices.Clone(append(path, key))...).
				Row(int64(i)).
				Value(v).
				Detail("%d does not fit %s", v, index.Wrap(out).Width()).
				Build()
		}
		out[i] = T(v)
	}
	return index.Wrap(out), nil
}

func (n *Node) buildPrimitive(path []string) (layout.Content, error) {
	if n.DType == "" {
		return nil, loadErr(path, "PrimitiveArray needs dtype")
	}
	dt, ok := layout.ParseDType(n.DType)
	if !ok {
		return nil, loadErr(path, "unknown dtype "+n.DType)
	}
	switch dt {
	case layout.DTypeBool:
		values := make([]bool, len(n.Data))
		for i, v := range n.Data {
			b, ok := v.(bool)
			if !ok {
				return nil, badValue(path, i, v, dt)
			}
			values[i] = b
		}
		return layout.WrapPrimitive(values), nil
	case layout.DTypeInt8:
		return numbers[int8](n.Data, dt, path)
	case layout.DTypeInt16:
		return numbers[int16](n.Data, dt, path)
	case layout.DTypeInt32:
		return numbers[int32](n.Data, dt, path)
	case layout.DTypeInt64:
		return numbers[int64](n.Data, dt, path)
	case layout.DTypeUint8:
		return numbers[uint8](n.Data, dt, path)
	case layout.DTypeUint16:
		return numbers[uint16](n.Data, dt, path)
	case layout.DTypeUint32:
		return numbers[uint32](n.Data, dt, path)
	case layout.DTypeUint64:
		return numbers[uint64](n.Data, dt, path)
	case layout.DTypeFloat32:
		return numbers[float32](n.Data, dt, path)
	default:
		return numbers[float64](n.Data, dt, path)
	}
}

type number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// numbers converts decoded YAML scalars. Integer dtypes reject fractional
// values and anything that does not survive the round trip.
func numbers[T number](data []any, dt layout.DType, path []string) (layout.Content, error) {
	values := make([]T, len(data))
	for i, raw := range data {
		var v T
		switch x := raw.(type) {
		case int:
			v = T(x)
			if int(v) != x {
				return nil, badValue(path, i, raw, dt)
			}
		case int64:
			v = T(x)
			if int64(v) != x {
				return nil, badValue(path, i, raw, dt)
			}
		case uint64:
			v = T(x)
			if uint64(v) != x {
				return nil, badValue(path, i, raw, dt)
			}
		case float64:
			if dt.IsInteger() && x != math.Trunc(x) {
				return nil, badValue(path, i, raw, dt)
			}
			v = T(x)
		default:
			return nil, badValue(path, i, raw, dt)
		}
		values[i] = v
	}
	return layout.WrapPrimitive(values), nil
}

func badValue(path []string, row int, v any, dt layout.DType) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidData).
		Path(slices.Clone(append(path, "data"))...).
		Row(int64(row)).
		Value(v).
		Detail("%v is not a valid %s", v, dt).
		Build()
}
