package witform

import "go.bytecodealliance.org/wit"

// Info is the canonical ABI size and alignment of a value of some type.
type Info struct {
	Size  uint32
	Align uint32
}

// Calculator computes canonical ABI layouts, caching type definitions.
// It is not safe for concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[*wit.TypeDef]Info)}
}

// Layout is a shorthand for a one-off Calculate.
func Layout(t wit.Type) Info {
	return NewCalculator().Calculate(t)
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4}
	case *wit.TypeDef:
		return c.typeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) typeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info
	switch kind := t.Kind.(type) {
	case *wit.Record:
		info = c.record(kind)
	case *wit.Variant:
		info = c.variant(kind)
	case *wit.List:
		// (ptr, len) pair of u32
		info = Info{Size: 8, Align: 4}
	case *wit.Option:
		info = c.option(kind)
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

func (c *Calculator) record(r *wit.Record) Info {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}
	}
	maxAlign := uint32(1)
	offset := uint32(0)
	for _, f := range r.Fields {
		fl := c.Calculate(f.Type)
		offset = alignTo(offset, fl.Align) + fl.Size
		maxAlign = max(maxAlign, fl.Align)
	}
	return Info{Size: alignTo(offset, maxAlign), Align: maxAlign}
}

func (c *Calculator) variant(v *wit.Variant) Info {
	if len(v.Cases) == 0 {
		return Info{Size: 0, Align: 1}
	}
	disc := discriminantSize(len(v.Cases))
	maxAlign := disc
	maxSize := uint32(0)
	for _, cs := range v.Cases {
		if cs.Type == nil {
			continue
		}
		cl := c.Calculate(cs.Type)
		maxAlign = max(maxAlign, cl.Align)
		maxSize = max(maxSize, cl.Size)
	}
	payload := alignTo(disc, maxAlign)
	return Info{Size: alignTo(payload+maxSize, maxAlign), Align: maxAlign}
}

func (c *Calculator) option(o *wit.Option) Info {
	inner := c.Calculate(o.Type)
	align := max(inner.Align, 1)
	payload := alignTo(1, align)
	return Info{Size: alignTo(payload+inner.Size, align), Align: align}
}

// discriminantSize is 1 byte up to 256 cases, 2 up to 65536, else 4.
func discriminantSize(cases int) uint32 {
	switch {
	case cases <= 256:
		return 1
	case cases <= 65536:
		return 2
	}
	return 4
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
