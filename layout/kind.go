package layout

// Kind identifies the structural pattern of a node.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPrimitive
	KindListOffset
	KindList
	KindRegular
	KindIndexed
	KindIndexedOption
	KindRecord
	KindUnion
)

var kindNames = [...]string{
	KindEmpty:         "EmptyArray",
	KindPrimitive:     "PrimitiveArray",
	KindListOffset:    "ListOffsetArray",
	KindList:          "ListArray",
	KindRegular:       "RegularArray",
	KindIndexed:       "IndexedArray",
	KindIndexedOption: "IndexedOptionArray",
	KindRecord:        "RecordArray",
	KindUnion:         "UnionArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsList reports whether rows of this kind are variable or fixed length
// lists over a content node.
func (k Kind) IsList() bool {
	return k == KindListOffset || k == KindList || k == KindRegular
}

// IsIndexed reports whether the kind is a lazy gather over its content.
func (k Kind) IsIndexed() bool {
	return k == KindIndexed || k == KindIndexedOption
}
