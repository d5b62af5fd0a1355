package borsh

import (
	"sync"

	"github.com/wippyai/idl-codec/borsh/internal/layout"
	"github.com/wippyai/idl-codec/borsh/internal/types"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// Compiler turns IDL definitions into layout graphs. Named definitions are
// compiled once and shared, so a definition that reaches itself yields a cycle
// rather than unbounded recursion.
type Compiler struct {
	defs    map[string]idl.TypeDef
	nodes   map[string]*Node
	calc    *layout.Calculator
	pending []string
	mu      sync.Mutex
}

// NewCompiler creates a compiler resolving defined references against defs.
func NewCompiler(defs []idl.TypeDef) *Compiler {
	c := &Compiler{
		defs:  make(map[string]idl.TypeDef, len(defs)),
		nodes: make(map[string]*Node, len(defs)),
		calc:  layout.NewCalculator(),
	}
	for _, d := range defs {
		if _, dup := c.defs[d.Name]; !dup {
			c.defs[d.Name] = d
		}
	}
	return c
}

// Lookup returns the definition registered under name.
func (c *Compiler) Lookup(name string) (idl.TypeDef, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Compile builds the layout of def. Defined references resolve through the
// compiler's table; def itself need not be registered.
func (c *Compiler) Compile(def idl.TypeDef) (*Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.named(def, []string{def.Name})
	return c.finish(n, err)
}

// CompileStruct builds an anonymous struct layout over fields, as used for
// instruction arguments and event payloads.
func (c *Compiler) CompileStruct(name string, fields []idl.Field) (*Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.structOf(name, fields, []string{name})
	return c.finish(n, err)
}

// CompileType builds the layout of a single type reference.
func (c *Compiler) CompileType(t idl.Type) (*Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.compileType(t, nil)
	return c.finish(n, err)
}

func (c *Compiler) finish(n *Node, err error) (*Node, error) {
	if err != nil {
		// drop memoized nodes that may point at unfinished placeholders
		for _, name := range c.pending {
			delete(c.nodes, name)
		}
		c.pending = c.pending[:0]
		return nil, err
	}
	c.pending = c.pending[:0]
	c.calc.Annotate(n)
	return n, nil
}

func (c *Compiler) named(def idl.TypeDef, path []string) (*Node, error) {
	if n, ok := c.nodes[def.Name]; ok {
		return n, nil
	}

	placeholder := &Node{Name: def.Name, Kind: KindStruct}
	c.nodes[def.Name] = placeholder
	c.pending = append(c.pending, def.Name)

	built, err := c.build(def, path)
	if err != nil {
		return nil, err
	}
	*placeholder = *built
	return placeholder, nil
}

func (c *Compiler) resolve(name string, path []string) (*Node, error) {
	if n, ok := c.nodes[name]; ok {
		return n, nil
	}
	def, ok := c.defs[name]
	if !ok {
		return nil, errors.UndefinedType(errors.PhaseBuild, path, name)
	}
	return c.named(def, path)
}

func (c *Compiler) build(def idl.TypeDef, path []string) (*Node, error) {
	switch def.Type.Kind {
	case idl.KindStruct:
		return c.structOf(def.Name, def.Type.Fields, path)
	case idl.KindEnum:
		return c.enumOf(def, path)
	default:
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
			Path(path...).
			Name(def.Name).
			Detail("unknown definition kind %q", def.Type.Kind).
			Build()
	}
}

func (c *Compiler) structOf(name string, fields []idl.Field, path []string) (*Node, error) {
	compiled, err := c.fields(fields, path)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindStruct, Name: name, Fields: compiled}, nil
}

func (c *Compiler) enumOf(def idl.TypeDef, path []string) (*Node, error) {
	variants := make([]NodeVariant, len(def.Type.Variants))
	for i, v := range def.Type.Variants {
		variants[i].Name = v.Name
		if v.Fields == nil {
			continue
		}
		if v.Fields.IsTuple() {
			return nil, errors.UnsupportedVariant(errors.PhaseBuild, path, def.Name, v.Name)
		}
		fields, err := c.fields(v.Fields.Named, appendPath(path, v.Name))
		if err != nil {
			return nil, err
		}
		variants[i].Fields = fields
	}
	return &Node{Kind: KindEnum, Name: def.Name, Variants: variants}, nil
}

func (c *Compiler) fields(fields []idl.Field, path []string) ([]NodeField, error) {
	out := make([]NodeField, len(fields))
	for i, f := range fields {
		n, err := c.compileType(f.Type, appendPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		out[i] = NodeField{Name: f.Name, Node: n}
	}
	return out, nil
}

var primitiveKinds = map[idl.Kind]Kind{
	idl.Bool:      KindBool,
	idl.U8:        KindU8,
	idl.I8:        KindI8,
	idl.U16:       KindU16,
	idl.I16:       KindI16,
	idl.U32:       KindU32,
	idl.I32:       KindI32,
	idl.F32:       KindF32,
	idl.U64:       KindU64,
	idl.I64:       KindI64,
	idl.F64:       KindF64,
	idl.U128:      KindU128,
	idl.I128:      KindI128,
	idl.PublicKey: KindPublicKey,
	idl.String:    KindString,
	idl.Bytes:     KindBytes,
}

func (c *Compiler) compileType(t idl.Type, path []string) (*Node, error) {
	if k, ok := primitiveKinds[t.Kind]; ok {
		return types.NewPrimitive(k), nil
	}

	switch t.Kind {
	case idl.Defined:
		return c.resolve(t.Name, path)

	case idl.Vec, idl.Option, idl.COption, idl.Array:
		if t.Elem == nil {
			return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
				Path(path...).
				Type(string(t.Kind)).
				Detail("missing element type").
				Build()
		}
		elem, err := c.compileType(*t.Elem, path)
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case idl.Vec:
			return &Node{Kind: KindVec, Elem: elem}, nil
		case idl.Option:
			return &Node{Kind: KindOption, Elem: elem}, nil
		case idl.COption:
			return &Node{Kind: KindCOption, Elem: elem}, nil
		default:
			return &Node{Kind: KindArray, Elem: elem, Len: t.Len}, nil
		}
	}

	return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
		Path(path...).
		Type(string(t.Kind)).
		Detail("unknown type kind").
		Build()
}

func appendPath(path []string, elem string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}
