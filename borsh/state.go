package borsh

import (
	"github.com/mr-tron/base58"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// StateCoder handles a program's single legacy state record.
// Safe for concurrent use.
type StateCoder struct {
	rec   *record
	enc   *Encoder
	dec   *Decoder
	table []idl.TypeDef
}

var _ idlcodec.StateCoder = (*StateCoder)(nil)

// NewState compiles the state struct of doc. It fails with state_not_defined
// when doc declares no state.
func NewState(doc *idl.Idl, opts Options) (*StateCoder, error) {
	if doc.State == nil {
		return nil, errors.StateNotDefined(doc.Name)
	}
	table := doc.TypeTable()
	def := doc.State.Struct
	node, err := NewCompiler(table).Compile(def)
	if err != nil {
		return nil, err
	}
	return &StateCoder{
		rec: &record{
			node: node,
			def:  def,
			disc: StateDiscriminator(def.Name, opts.DeprecatedState),
		},
		enc:   NewEncoder(opts),
		dec:   NewDecoder(),
		table: table,
	}, nil
}

// NewStateWithDefaults creates a state coder with default options.
func NewStateWithDefaults(doc *idl.Idl) (*StateCoder, error) {
	return NewState(doc, DefaultOptions())
}

// Name returns the state struct's name.
func (c *StateCoder) Name() string {
	return c.rec.def.Name
}

// Encode returns discriminator || payload.
func (c *StateCoder) Encode(value any) ([]byte, error) {
	payload, err := c.enc.Encode(c.rec.node, value)
	if err != nil {
		return nil, err
	}
	return prefixed(c.rec.disc, payload), nil
}

// Decode checks the discriminator before decoding.
func (c *StateCoder) Decode(data []byte) (map[string]any, error) {
	if !HasDiscriminator(data, c.rec.disc) {
		return nil, errors.DiscriminatorMismatch(c.rec.def.Name, c.rec.disc[:], leading(data))
	}
	return c.DecodeUnchecked(data)
}

// DecodeUnchecked skips the discriminator without comparing it.
func (c *StateCoder) DecodeUnchecked(data []byte) (map[string]any, error) {
	if len(data) < DiscriminatorSize {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{c.rec.def.Name}, 0, DiscriminatorSize, len(data))
	}
	return decodeMap(c.dec, c.rec.node, data[DiscriminatorSize:])
}

// Memcmp returns a filter matching the state account by its leading bytes.
func (c *StateCoder) Memcmp(extra []byte) (idlcodec.MemcmpFilter, error) {
	return idlcodec.LeadingBytes(base58.Encode(prefixed(c.rec.disc, extra))), nil
}

// Size returns 8 plus the declared size of the state struct.
func (c *StateCoder) Size() (int, error) {
	n, err := DeclaredSize(c.table, c.rec.def)
	if err != nil {
		return 0, err
	}
	return DiscriminatorSize + n, nil
}

// Discriminator returns the state tag.
func (c *StateCoder) Discriminator() [DiscriminatorSize]byte {
	return c.rec.disc
}

// Layout returns the compiled state layout.
func (c *StateCoder) Layout() *Node {
	return c.rec.node
}
