package borsh

import (
	"go.uber.org/zap"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// InstructionCoder encodes instruction arguments as sighash || borsh(args).
// Safe for concurrent use.
type InstructionCoder struct {
	global  *registry
	state   *registry
	bySig   map[[DiscriminatorSize]byte]*record
	enc     *Encoder
	dec     *Decoder
	program string
}

var _ idlcodec.InstructionCoder = (*InstructionCoder)(nil)

// NewInstructions compiles the arguments of every instruction and state method of doc.
func NewInstructions(doc *idl.Idl, opts Options) (*InstructionCoder, error) {
	compiler := NewCompiler(doc.TypeTable())
	c := &InstructionCoder{
		global:  newRegistry("instruction", idl.CamelCase, len(doc.Instructions)),
		state:   newRegistry("state method", idl.CamelCase, 0),
		bySig:   make(map[[DiscriminatorSize]byte]*record),
		enc:     NewEncoder(opts),
		dec:     NewDecoder(),
		program: doc.Name,
	}

	add := func(dst *registry, ns string, ix idl.Instruction) error {
		node, err := compiler.CompileStruct(ix.Name, ix.Args)
		if err != nil {
			return err
		}
		rec := &record{
			node: node,
			def:  idl.StructDef(ix.Name, ix.Args...),
			disc: Sighash(ns, ix.Name),
		}
		if err := dst.add(ix.Name, rec); err != nil {
			return err
		}
		c.bySig[rec.disc] = rec
		return nil
	}

	for _, ix := range doc.Instructions {
		if err := add(c.global, NamespaceGlobal, ix); err != nil {
			return nil, err
		}
	}
	if doc.State != nil {
		for _, m := range doc.State.Methods {
			if err := add(c.state, NamespaceState, m); err != nil {
				return nil, err
			}
		}
	}

	Logger().Debug("compiled instructions",
		zap.String("program", doc.Name),
		zap.Int("global", c.global.len()),
		zap.Int("state", c.state.len()))
	return c, nil
}

// NewInstructionsWithDefaults creates an instruction coder with default options.
func NewInstructionsWithDefaults(doc *idl.Idl) (*InstructionCoder, error) {
	return NewInstructions(doc, DefaultOptions())
}

// Encode packs a global instruction.
func (c *InstructionCoder) Encode(name string, args any) ([]byte, error) {
	return c.encode(c.global, "instruction", name, args)
}

// EncodeState packs a state method.
func (c *InstructionCoder) EncodeState(name string, args any) ([]byte, error) {
	return c.encode(c.state, "state method", name, args)
}

func (c *InstructionCoder) encode(r *registry, what, name string, args any) ([]byte, error) {
	rec, ok := r.find(name)
	if !ok {
		return nil, errors.UnknownIdentifier(errors.PhaseLookup, what, name)
	}
	if args == nil && len(rec.node.Fields) == 0 {
		args = map[string]any{}
	}
	payload, err := c.enc.Encode(rec.node, args)
	if err != nil {
		return nil, err
	}
	return prefixed(rec.disc, payload), nil
}

// Decode identifies an instruction by its sighash. Unknown data yields nil.
func (c *InstructionCoder) Decode(data []byte) (*idlcodec.Instruction, error) {
	if len(data) < DiscriminatorSize {
		return nil, nil
	}
	var sig [DiscriminatorSize]byte
	copy(sig[:], data)
	rec, ok := c.bySig[sig]
	if !ok {
		return nil, nil
	}
	args, err := decodeMap(c.dec, rec.node, data[DiscriminatorSize:])
	if err != nil {
		return nil, err
	}
	return &idlcodec.Instruction{Name: rec.def.Name, Data: args}, nil
}

// Sighash returns the tag of a known global instruction.
func (c *InstructionCoder) Sighash(name string) ([DiscriminatorSize]byte, error) {
	rec, ok := c.global.find(name)
	if !ok {
		return [DiscriminatorSize]byte{}, errors.UnknownIdentifier(errors.PhaseLookup, "instruction", name)
	}
	return rec.disc, nil
}

// Layout returns the argument layout of a global instruction.
func (c *InstructionCoder) Layout(name string) (*Node, bool) {
	rec, ok := c.global.find(name)
	if !ok {
		return nil, false
	}
	return rec.node, true
}

// Names lists global instructions in sorted order.
func (c *InstructionCoder) Names() []string {
	return c.global.names()
}

