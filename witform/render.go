package witform

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// Render writes t in WIT syntax with anonymous records and variants
// spelled inline.
func Render(t wit.Type) string {
	var b strings.Builder
	render(&b, t)
	return b.String()
}

func render(b *strings.Builder, t wit.Type) {
	switch typ := t.(type) {
	case nil:
		b.WriteString("_")
	case wit.Bool:
		b.WriteString("bool")
	case wit.S8:
		b.WriteString("s8")
	case wit.S16:
		b.WriteString("s16")
	case wit.S32:
		b.WriteString("s32")
	case wit.S64:
		b.WriteString("s64")
	case wit.U8:
		b.WriteString("u8")
	case wit.U16:
		b.WriteString("u16")
	case wit.U32:
		b.WriteString("u32")
	case wit.U64:
		b.WriteString("u64")
	case wit.F32:
		b.WriteString("f32")
	case wit.F64:
		b.WriteString("f64")
	case wit.Char:
		b.WriteString("char")
	case wit.String:
		b.WriteString("string")
	case *wit.TypeDef:
		renderDef(b, typ)
	default:
		b.WriteString("unknown")
	}
}

func renderDef(b *strings.Builder, t *wit.TypeDef) {
	switch kind := t.Kind.(type) {
	case *wit.List:
		b.WriteString("list<")
		render(b, kind.Type)
		b.WriteByte('>')
	case *wit.Option:
		b.WriteString("option<")
		render(b, kind.Type)
		b.WriteByte('>')
	case *wit.Record:
		b.WriteString("record { ")
		for i, f := range kind.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			render(b, f.Type)
		}
		b.WriteString(" }")
	case *wit.Variant:
		b.WriteString("variant { ")
		for i, c := range kind.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
			if c.Type != nil {
				b.WriteByte('(')
				render(b, c.Type)
				b.WriteByte(')')
			}
		}
		b.WriteString(" }")
	case wit.Type:
		render(b, kind)
	default:
		b.WriteString("unknown")
	}
}
