package slice

import (
	"strconv"
	"unicode"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
)

type tokenType int

const (
	tokLBracket tokenType = iota
	tokRBracket
	tokComma
	tokColon
	tokEllipsis
	tokNumber
	tokString
	tokIdent
)

func (t tokenType) String() string {
	switch t {
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokEllipsis:
		return "'...'"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokIdent:
		return "identifier"
	}
	return "unknown"
}

type token struct {
	value string
	typ   tokenType
	pos   int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			continue
		}
		switch {
		case r == '[':
			tokens = append(tokens, token{typ: tokLBracket, value: "[", pos: i})
		case r == ']':
			tokens = append(tokens, token{typ: tokRBracket, value: "]", pos: i})
		case r == ',':
			tokens = append(tokens, token{typ: tokComma, value: ",", pos: i})
		case r == ':':
			tokens = append(tokens, token{typ: tokColon, value: ":", pos: i})
		case r == '.':
			if i+2 >= len(runes) || runes[i+1] != '.' || runes[i+2] != '.' {
				return nil, errors.ParseFailed(i, "expected '...'")
			}
			tokens = append(tokens, token{typ: tokEllipsis, value: "...", pos: i})
			i += 2
		case r == '"' || r == '\'':
			start := i
			i++
			for i < len(runes) && runes[i] != r {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) {
				return nil, errors.ParseFailed(start, "unterminated string")
			}
			raw := string(runes[start+1 : i])
			value, err := strconv.Unquote(`"` + raw + `"`)
			if err != nil {
				value = raw
			}
			tokens = append(tokens, token{typ: tokString, value: value, pos: start})
		case r == '-' || r == '+' || unicode.IsDigit(r):
			start := i
			i++
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			if i == start+1 && !unicode.IsDigit(r) {
				return nil, errors.ParseFailed(start, "sign without digits")
			}
			tokens = append(tokens, token{typ: tokNumber, value: string(runes[start:i]), pos: start})
			i--
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{typ: tokIdent, value: string(runes[start:i]), pos: start})
			i--
		default:
			return nil, errors.ParseFailed(i, "unexpected character "+strconv.QuoteRune(r))
		}
	}
	return tokens, nil
}

// Parse reads the comma-separated item list that would appear between the
// brackets of x[...]. A trailing comma is allowed, at the top level and
// inside lists:
//
//	0, 1:3, ::-1, ..., newaxis
//	"x"  ["x", "y"]
//	[0, 2, -1]  [0, None, 2]
//	[[0, 1], [], [1]]  [[0, None], [1]]  [[[0], [1]], []]
func Parse(expr string) (Slice, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, end: len([]rune(expr))}
	if len(tokens) == 0 {
		return Slice{}, nil
	}
	var out Slice
	for {
		it, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
		t := p.next()
		if t == nil {
			return out, nil
		}
		if t.typ != tokComma {
			return nil, errors.ParseFailed(t.pos, "expected ',' between items, got "+strconv.Quote(t.value))
		}
		if p.peek() == nil {
			return out, nil
		}
	}
}

type parser struct {
	tokens []token
	pos    int
	end    int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) errAt(t *token, msg string) error {
	if t == nil {
		return errors.ParseFailed(p.end, msg+" at end of input")
	}
	return errors.ParseFailed(t.pos, msg+", got "+strconv.Quote(t.value))
}

func (p *parser) parseItem() (Item, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errAt(nil, "expected item")
	}
	switch t.typ {
	case tokEllipsis:
		p.next()
		return Ellipsis{}, nil
	case tokIdent:
		p.next()
		if t.value == "newaxis" || t.value == "None" {
			return NewAxis{}, nil
		}
		return nil, p.errAt(t, "expected newaxis")
	case tokString:
		p.next()
		return Field{Key: t.value}, nil
	case tokLBracket:
		l, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return l.build(t.pos)
	default:
		return p.parseRangeOrAt()
	}
}

func (p *parser) parseInt() (int64, bool, error) {
	t := p.peek()
	if t == nil || t.typ != tokNumber {
		return 0, false, nil
	}
	p.next()
	v, err := strconv.ParseInt(t.value, 10, 64)
	if err != nil {
		return 0, false, errors.ParseFailed(t.pos, "invalid integer "+strconv.Quote(t.value))
	}
	return v, true, nil
}

func (p *parser) parseRangeOrAt() (Item, error) {
	first := p.peek()
	start, hasStart, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t == nil || t.typ != tokColon {
		if !hasStart {
			return nil, p.errAt(first, "expected item")
		}
		return At{At: start}, nil
	}
	p.next()
	r := Range{Start: start, HasStart: hasStart, Step: 1}
	if r.Stop, r.HasStop, err = p.parseInt(); err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil && t.typ == tokColon {
		p.next()
		step, hasStep, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if hasStep {
			r.Step = step
		}
	}
	return r, nil
}

// rawList is a bracketed literal before it is classified.
type rawList struct {
	elems []rawElem
}

type rawElem struct {
	list   *rawList
	str    string
	value  int64
	isNull bool
	isStr  bool
	pos    int
}

func (p *parser) parseList() (*rawList, error) {
	if _, err := p.expect(tokLBracket); err != nil {
		return nil, err
	}
	l := &rawList{}
	if t := p.peek(); t != nil && t.typ == tokRBracket {
		p.next()
		return l, nil
	}
	for {
		t := p.peek()
		if t == nil {
			return nil, p.errAt(nil, "unterminated list")
		}
		var e rawElem
		e.pos = t.pos
		switch t.typ {
		case tokLBracket:
			sub, err := p.parseList()
			if err != nil {
				return nil, err
			}
			e.list = sub
		case tokString:
			p.next()
			e.isStr, e.str = true, t.value
		case tokIdent:
			p.next()
			if t.value != "None" {
				return nil, p.errAt(t, "expected None")
			}
			e.isNull = true
		case tokNumber:
			v, _, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			e.value = v
		default:
			return nil, p.errAt(t, "expected list element")
		}
		l.elems = append(l.elems, e)

		t = p.next()
		if t == nil {
			return nil, p.errAt(nil, "unterminated list")
		}
		if t.typ == tokRBracket {
			return l, nil
		}
		if t.typ != tokComma {
			return nil, p.errAt(t, "expected ',' or ']'")
		}
		if t := p.peek(); t != nil && t.typ == tokRBracket {
			p.next()
			return l, nil
		}
	}
}

func (p *parser) expect(typ tokenType) (*token, error) {
	t := p.next()
	if t == nil {
		return nil, p.errAt(nil, "expected "+typ.String())
	}
	if t.typ != typ {
		return nil, p.errAt(t, "expected "+typ.String())
	}
	return t, nil
}

func (l *rawList) build(pos int) (Item, error) {
	var strs, lists int
	for _, e := range l.elems {
		if e.isStr {
			strs++
		}
		if e.list != nil {
			lists++
		}
	}
	switch {
	case strs > 0:
		if strs != len(l.elems) {
			return nil, errors.ParseFailed(pos, "field list mixes names and indexes")
		}
		keys := make([]string, len(l.elems))
		for i, e := range l.elems {
			keys[i] = e.str
		}
		return Fields{Keys: keys}, nil
	case lists > 0:
		if lists != len(l.elems) {
			return nil, errors.ParseFailed(pos, "jagged index mixes lists and scalars")
		}
		rows := make([]*rawList, len(l.elems))
		for i, e := range l.elems {
			rows[i] = e.list
		}
		return buildJagged(rows, pos)
	default:
		return flatIndex(l.elems), nil
	}
}

func buildJagged(rows []*rawList, pos int) (Item, error) {
	offsets := make([]int64, 1, len(rows)+1)
	var flat []rawElem
	nested := false
	for _, row := range rows {
		for _, e := range row.elems {
			if e.isStr {
				return nil, errors.ParseFailed(e.pos, "field names are not allowed inside a jagged index")
			}
			if e.list != nil {
				nested = true
			}
		}
		flat = append(flat, row.elems...)
		offsets = append(offsets, int64(len(flat)))
	}

	if nested {
		inner := make([]*rawList, len(flat))
		for i, e := range flat {
			if e.list == nil {
				return nil, errors.ParseFailed(e.pos, "jagged index mixes lists and scalars")
			}
			inner[i] = e.list
		}
		content, err := buildJagged(inner, pos)
		if err != nil {
			return nil, err
		}
		return Jagged{Offsets: index.Wrap(offsets), Content: content}, nil
	}
	return Jagged{Offsets: index.Wrap(offsets), Content: flatIndex(flat)}, nil
}

func flatIndex(elems []rawElem) Item {
	values := make([]int64, len(elems))
	valid := make([]bool, len(elems))
	hasNull := false
	for i, e := range elems {
		values[i] = e.value
		valid[i] = !e.isNull
		hasNull = hasNull || e.isNull
	}
	if !hasNull {
		return Array{Index: index.Wrap(values)}
	}
	m, _ := NewMissing(values, valid)
	return m
}
