package types

import "strconv"

// Indeterminate marks a span that cannot be known before encoding.
const Indeterminate = -1

// Node is one compiled layout. Named definitions are shared across references.
type Node struct {
	Elem     *Node
	Name     string
	Fields   []Field
	Variants []Variant
	Len      int
	Span     int
	Kind     Kind
}

// Field is an ordered struct member
type Field struct {
	Node *Node
	Name string
}

// Variant is one enum arm. A unit variant has no fields.
type Variant struct {
	Name   string
	Fields []Field
}

// NewPrimitive returns a leaf node with its span set
func NewPrimitive(k Kind) *Node {
	n := &Node{Kind: k, Span: k.Width()}
	if k.IsVariable() {
		n.Span = Indeterminate
	}
	return n
}

// HasSpan reports whether a span has been computed and is determinate
func (n *Node) HasSpan() bool {
	return n.Span >= 0
}

// FieldIndex returns the position of a struct field, or -1
func (n *Node) FieldIndex(name string) int {
	for i, f := range n.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// VariantIndex returns the ordinal of an enum variant, or -1
func (n *Node) VariantIndex(name string) int {
	for i, v := range n.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// TypeName renders the node for error messages
func (n *Node) TypeName() string {
	if n.Name != "" {
		return n.Name
	}
	switch n.Kind {
	case KindVec, KindOption, KindCOption:
		if n.Elem != nil {
			return n.Kind.String() + "<" + n.Elem.TypeName() + ">"
		}
	case KindArray:
		if n.Elem != nil {
			return "[" + n.Elem.TypeName() + "; " + strconv.Itoa(n.Len) + "]"
		}
	}
	return n.Kind.String()
}
