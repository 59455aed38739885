// Package witform describes the rows of a layout as WebAssembly
// Interface Types.
//
// Lists of every kind become list<T>, options become option<T>, records
// keep their field order and unions become a variant with cases v0..vN.
// A list of uint8 tagged with the "__array__: string" parameter maps to
// string. EmptyArray has no element type and is rejected.
package witform

import (
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/layout"
)

// Type returns the WIT type of one row of c.
func Type(c layout.Content) (wit.Type, error) {
	return typeOf(c, nil)
}

func typeOf(c layout.Content, path []string) (wit.Type, error) {
	switch n := c.(type) {
	case *layout.EmptyArray:
		return nil, errors.New(errors.PhaseConstruct, errors.KindUnsupported).
			Node(n.Kind().String()).
			Path(path...).
			Detail("empty array has no element type").
			Build()
	case *layout.PrimitiveArray:
		return primitive(n.DType())
	case *layout.ListOffsetArray:
		return listOf(n, n.Content(), path)
	case *layout.ListArray:
		return listOf(n, n.Content(), path)
	case *layout.RegularArray:
		return listOf(n, n.Content(), path)
	case *layout.IndexedArray:
		return typeOf(n.Content(), path)
	case *layout.IndexedOptionArray:
		inner, err := typeOf(n.Content(), path)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: inner}}, nil
	case *layout.RecordArray:
		rec := &wit.Record{Fields: make([]wit.Field, 0, n.NumFields())}
		for _, key := range n.Keys() {
			field, err := n.Field(key)
			if err != nil {
				return nil, err
			}
			ft, err := typeOf(field, append(path, key))
			if err != nil {
				return nil, err
			}
			rec.Fields = append(rec.Fields, wit.Field{Name: key, Type: ft})
		}
		return &wit.TypeDef{Kind: rec}, nil
	case *layout.UnionArray:
		v := &wit.Variant{Cases: make([]wit.Case, n.NumContents())}
		for i, content := range n.Contents() {
			ct, err := typeOf(content, path)
			if err != nil {
				return nil, err
			}
			v.Cases[i] = wit.Case{Name: "v" + strconv.Itoa(i), Type: ct}
		}
		return &wit.TypeDef{Kind: v}, nil
	}
	return nil, errors.Unsupported(errors.PhaseConstruct, "unknown node")
}

func listOf(list, content layout.Content, path []string) (wit.Type, error) {
	if p, ok := content.(*layout.PrimitiveArray); ok &&
		p.DType() == layout.DTypeUint8 && list.Parameters().Get("__array__") == "string" {
		return wit.String{}, nil
	}
	elem, err := typeOf(content, path)
	if err != nil {
		return nil, err
	}
	return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
}

func primitive(dt layout.DType) (wit.Type, error) {
	switch dt {
	case layout.DTypeBool:
		return wit.Bool{}, nil
	case layout.DTypeInt8:
		return wit.S8{}, nil
	case layout.DTypeInt16:
		return wit.S16{}, nil
	case layout.DTypeInt32:
		return wit.S32{}, nil
	case layout.DTypeInt64:
		return wit.S64{}, nil
	case layout.DTypeUint8:
		return wit.U8{}, nil
	case layout.DTypeUint16:
		return wit.U16{}, nil
	case layout.DTypeUint32:
		return wit.U32{}, nil
	case layout.DTypeUint64:
		return wit.U64{}, nil
	case layout.DTypeFloat32:
		return wit.F32{}, nil
	case layout.DTypeFloat64:
		return wit.F64{}, nil
	}
	return nil, errors.Unsupported(errors.PhaseConstruct, "dtype "+dt.String())
}
