package borsh

import (
	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// TypesCoder encodes free-standing named types with no discriminator.
// Safe for concurrent use.
type TypesCoder struct {
	layouts *registry
	enc     *Encoder
	dec     *Decoder
	table   []idl.TypeDef
}

var _ idlcodec.TypesCoder = (*TypesCoder)(nil)

// NewTypes compiles every type of doc.
func NewTypes(doc *idl.Idl, opts Options) (*TypesCoder, error) {
	table := doc.TypeTable()
	compiler := NewCompiler(table)
	c := &TypesCoder{
		layouts: newRegistry("type", idl.PascalCase, len(doc.Types)),
		enc:     NewEncoder(opts),
		dec:     NewDecoder(),
		table:   table,
	}
	for _, def := range doc.Types {
		node, err := compiler.Compile(def)
		if err != nil {
			return nil, err
		}
		if err := c.layouts.add(def.Name, &record{node: node, def: def}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewTypesWithDefaults creates a types coder with default options.
func NewTypesWithDefaults(doc *idl.Idl) (*TypesCoder, error) {
	return NewTypes(doc, DefaultOptions())
}

// Encode returns the raw payload.
func (c *TypesCoder) Encode(name string, value any) ([]byte, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return c.enc.Encode(rec.node, value)
}

// Decode unpacks a payload with no discriminator.
func (c *TypesCoder) Decode(name string, data []byte) (map[string]any, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return decodeMap(c.dec, rec.node, data)
}

// Size returns the declared size of def.
func (c *TypesCoder) Size(def idl.TypeDef) (int, error) {
	return DeclaredSize(c.table, def)
}

// Layout returns the compiled layout of a type.
func (c *TypesCoder) Layout(name string) (*Node, bool) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, false
	}
	return rec.node, true
}

// Names lists known types in sorted order.
func (c *TypesCoder) Names() []string {
	return c.layouts.names()
}

func (c *TypesCoder) lookup(name string) (*record, error) {
	if rec, ok := c.layouts.find(name); ok {
		return rec, nil
	}
	return nil, errors.UnknownIdentifier(errors.PhaseLookup, "type", name)
}
