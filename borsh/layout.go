package borsh

import (
	"github.com/wippyai/idl-codec/borsh/internal/layout"
	"github.com/wippyai/idl-codec/borsh/internal/types"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// The constructors below assemble layouts by hand for formats with no IDL.
// Each computes its span from already-built children.

// Primitive returns a leaf layout of kind k.
func Primitive(k Kind) *Node {
	return types.NewPrimitive(k)
}

// Field names a child layout.
func Field(name string, n *Node) NodeField {
	return NodeField{Name: name, Node: n}
}

// Struct lays out fields in order with no padding.
func Struct(name string, fields ...NodeField) *Node {
	return annotate(&Node{Kind: KindStruct, Name: name, Fields: fields})
}

// Variant is one arm of an Enum; no fields makes a unit variant.
func Variant(name string, fields ...NodeField) NodeVariant {
	return NodeVariant{Name: name, Fields: fields}
}

// Enum lays out a 1-byte ordinal followed by the selected variant.
func Enum(name string, variants ...NodeVariant) *Node {
	return annotate(&Node{Kind: KindEnum, Name: name, Variants: variants})
}

// VecOf is a u32 length followed by that many elements.
func VecOf(elem *Node) *Node {
	return annotate(&Node{Kind: KindVec, Elem: elem})
}

// OptionOf is a 1-byte presence tag followed by elem when present.
func OptionOf(elem *Node) *Node {
	return annotate(&Node{Kind: KindOption, Elem: elem})
}

// COptionOf is a 4-byte presence tag followed by elem's full width, present or not.
func COptionOf(elem *Node) *Node {
	return annotate(&Node{Kind: KindCOption, Elem: elem})
}

// ArrayOf repeats elem n times with no prefix.
func ArrayOf(elem *Node, n int) *Node {
	return annotate(&Node{Kind: KindArray, Elem: elem, Len: n})
}

func annotate(n *Node) *Node {
	n.Span = layout.NewCalculator().Span(n)
	return n
}

// Span returns the exact encoded width of n. Layouts holding strings, bytes,
// vecs or a reference to themselves fail with an indeterminate_span error.
func Span(n *Node) (int, error) {
	s := layout.NewCalculator().Span(n)
	if s == Indeterminate {
		return 0, errors.IndeterminateSpan([]string{n.TypeName()}, n.TypeName())
	}
	return s, nil
}

// PrefixSpan returns the width of n counting only length prefixes of variable
// fields; the exact encoded width is PrefixSpan plus the payload lengths.
func PrefixSpan(n *Node) (int, error) {
	s := layout.NewCalculator().PrefixSpan(n)
	if s == Indeterminate {
		return 0, errors.IndeterminateSpan([]string{n.TypeName()}, "recursive "+n.TypeName())
	}
	return s, nil
}

// DeclaredSize estimates the payload width of def. Strings, bytes and vecs
// count as one byte each; callers encoding variable-length records must size
// their buffers themselves.
func DeclaredSize(defs []idl.TypeDef, def idl.TypeDef) (int, error) {
	table := make(map[string]idl.TypeDef, len(defs))
	for _, d := range defs {
		if _, dup := table[d.Name]; !dup {
			table[d.Name] = d
		}
	}
	return layout.DeclaredSize(func(name string) (idl.TypeDef, bool) {
		d, ok := table[name]
		return d, ok
	}, def)
}

// Build compiles a single definition against defs with a throwaway compiler.
func Build(def idl.TypeDef, defs []idl.TypeDef) (*Node, error) {
	return NewCompiler(defs).Compile(def)
}
