package layout

import (
	"strconv"
	"strings"

	"github.com/wippyai/jagged/errors"
)

// ToList materializes every row of c as plain Go values: lists become
// []any, records map[string]any, missing values nil, leaves their Go
// scalar.
func ToList(c Content) ([]any, error) {
	out := make([]any, c.Len())
	for i := range out {
		v, err := c.GetitemAt(int64(i))
		if err != nil {
			return nil, err
		}
		if out[i], err = Materialize(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Materialize converts a value returned by GetitemAt or Getitem.
func Materialize(v any) (any, error) {
	switch x := v.(type) {
	case Content:
		return ToList(x)
	case *Record:
		keys := x.Keys()
		out := make(map[string]any, len(keys))
		for _, key := range keys {
			fv, err := x.Field(key)
			if err != nil {
				return nil, err
			}
			if out[key], err = Materialize(fv); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return v, nil
}

// Format renders a value returned by GetitemAt or Getitem in a compact
// bracketed form. Record fields keep their declared order and missing
// values print as None.
func Format(v any) (string, error) {
	var b strings.Builder
	if err := formatValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatValue(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("None")
	case Content:
		b.WriteByte('[')
		for i := int64(0); i < x.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			row, err := x.GetitemAt(i)
			if err != nil {
				return err
			}
			if err := formatValue(b, row); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *Record:
		b.WriteByte('{')
		for i, key := range x.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(key))
			b.WriteString(": ")
			fv, err := x.Field(key)
			if err != nil {
				return err
			}
			if err := formatValue(b, fv); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int8:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return errors.New(errors.PhaseSlice, errors.KindUnsupported).
			Value(v).
			Detail("cannot format value of type %T", v).
			Build()
	}
	return nil
}
