package layout

import (
	"github.com/wippyai/idl-codec/borsh/internal/types"
)

// Calculator computes spans over a layout graph, caching per node.
// Not safe for concurrent use; codecs use it only during construction.
type Calculator struct {
	spans    map[*types.Node]int
	prefixes map[*types.Node]int
	active   map[*types.Node]bool
}

func NewCalculator() *Calculator {
	return &Calculator{
		spans:    make(map[*types.Node]int),
		prefixes: make(map[*types.Node]int),
		active:   make(map[*types.Node]bool),
	}
}

// Span returns the exact encoded width of n, or types.Indeterminate.
func (c *Calculator) Span(n *types.Node) int {
	return c.walk(n, c.spans, false)
}

// PrefixSpan returns the width of n counting only the length prefix of each
// variable-length node. Adding the payload lengths gives the exact encoded width.
func (c *Calculator) PrefixSpan(n *types.Node) int {
	return c.walk(n, c.prefixes, true)
}

// Annotate stores the span of every node reachable from n in Node.Span.
func (c *Calculator) Annotate(n *types.Node) {
	seen := make(map[*types.Node]bool)
	var visit func(*types.Node)
	visit = func(n *types.Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		n.Span = c.Span(n)
		visit(n.Elem)
		for _, f := range n.Fields {
			visit(f.Node)
		}
		for _, v := range n.Variants {
			for _, f := range v.Fields {
				visit(f.Node)
			}
		}
	}
	visit(n)
}

func (c *Calculator) walk(n *types.Node, cache map[*types.Node]int, prefixOnly bool) int {
	if n == nil {
		return 0
	}
	if cached, ok := cache[n]; ok {
		return cached
	}
	if c.active[n] {
		// reached through itself
		return types.Indeterminate
	}
	c.active[n] = true
	span := c.compute(n, cache, prefixOnly)
	delete(c.active, n)
	cache[n] = span
	return span
}

func (c *Calculator) compute(n *types.Node, cache map[*types.Node]int, prefixOnly bool) int {
	if n.Kind.IsPrimitive() {
		return n.Kind.Width()
	}

	switch n.Kind {
	case types.KindString, types.KindBytes, types.KindString64, types.KindVec:
		if prefixOnly {
			return n.Kind.PrefixWidth()
		}
		return types.Indeterminate

	case types.KindStruct:
		return c.sumFields(n.Fields, cache, prefixOnly)

	case types.KindEnum:
		largest := 0
		for _, v := range n.Variants {
			s := c.sumFields(v.Fields, cache, prefixOnly)
			if s == types.Indeterminate {
				return types.Indeterminate
			}
			if s > largest {
				largest = s
			}
		}
		return 1 + largest

	case types.KindOption, types.KindCOption:
		inner := c.walk(n.Elem, cache, prefixOnly)
		if inner == types.Indeterminate {
			return types.Indeterminate
		}
		return n.Kind.PrefixWidth() + inner

	case types.KindArray:
		elem := c.walk(n.Elem, cache, prefixOnly)
		if elem == types.Indeterminate {
			return types.Indeterminate
		}
		return n.Len * elem
	}

	return types.Indeterminate
}

func (c *Calculator) sumFields(fields []types.Field, cache map[*types.Node]int, prefixOnly bool) int {
	total := 0
	for _, f := range fields {
		s := c.walk(f.Node, cache, prefixOnly)
		if s == types.Indeterminate {
			return types.Indeterminate
		}
		total += s
	}
	return total
}
