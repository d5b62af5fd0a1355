package borsh

import (
	"sort"

	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// AccountsCoder encodes and decodes discriminator-prefixed account records.
// Safe for concurrent use.
type AccountsCoder struct {
	layouts *registry
	byDisc  map[[DiscriminatorSize]byte]string
	enc     *Encoder
	dec     *Decoder
	table   []idl.TypeDef
}

// record is a compiled named definition with its discriminator.
type record struct {
	node *Node
	def  idl.TypeDef
	disc [DiscriminatorSize]byte
}

var _ idlcodec.AccountsCoder = (*AccountsCoder)(nil)

// NewAccounts compiles every account of doc.
func NewAccounts(doc *idl.Idl, opts Options) (*AccountsCoder, error) {
	table := doc.TypeTable()
	compiler := NewCompiler(table)

	c := &AccountsCoder{
		layouts: newRegistry("account", idl.PascalCase, len(doc.Accounts)),
		byDisc:  make(map[[DiscriminatorSize]byte]string, len(doc.Accounts)),
		enc:     NewEncoder(opts),
		dec:     NewDecoder(),
		table:   table,
	}

	for _, acc := range doc.Accounts {
		node, err := compiler.Compile(acc)
		if err != nil {
			return nil, err
		}
		disc := AccountDiscriminator(acc.Name)
		if err := c.layouts.add(acc.Name, &record{node: node, def: acc, disc: disc}); err != nil {
			return nil, err
		}
		c.byDisc[disc] = acc.Name
		if node.Span < 0 {
			Logger().Debug("account has no static span, encoding into packet-sized buffer",
				zap.String("program", doc.Name),
				zap.String("account", acc.Name),
				zap.Int("buffer", opts.packetSize()))
		}
	}

	Logger().Debug("compiled accounts",
		zap.String("program", doc.Name),
		zap.Int("count", c.layouts.len()))
	return c, nil
}

// NewAccountsWithDefaults creates an accounts coder with default options.
func NewAccountsWithDefaults(doc *idl.Idl) (*AccountsCoder, error) {
	return NewAccounts(doc, DefaultOptions())
}

// Encode returns discriminator || payload.
func (c *AccountsCoder) Encode(name string, value any) ([]byte, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	payload, err := c.enc.Encode(rec.node, value)
	if err != nil {
		return nil, err
	}
	return prefixed(rec.disc, payload), nil
}

// Decode checks the discriminator before decoding the payload.
func (c *AccountsCoder) Decode(name string, data []byte) (map[string]any, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	if !HasDiscriminator(data, rec.disc) {
		return nil, errors.DiscriminatorMismatch(rec.def.Name, rec.disc[:], leading(data))
	}
	return c.decodeRecord(rec, data)
}

// DecodeUnchecked skips the discriminator without comparing it.
func (c *AccountsCoder) DecodeUnchecked(name string, data []byte) (map[string]any, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(rec, data)
}

// DecodeAny identifies the account by its discriminator and decodes it.
func (c *AccountsCoder) DecodeAny(data []byte) (string, map[string]any, error) {
	var disc [DiscriminatorSize]byte
	copy(disc[:], leading(data))
	name, ok := c.byDisc[disc]
	if !ok || len(data) < DiscriminatorSize {
		return "", nil, errors.New(errors.PhaseDecode, errors.KindDiscriminatorMismatch).
			Detail("no account has discriminator %x", leading(data)).
			Build()
	}
	v, err := c.decodeRecord(c.layouts.exact[name], data)
	return name, v, err
}

// Memcmp returns a filter matching accounts of this type by their leading bytes.
func (c *AccountsCoder) Memcmp(name string, extra []byte) (idlcodec.MemcmpFilter, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return idlcodec.MemcmpFilter{}, err
	}
	return idlcodec.LeadingBytes(base58.Encode(prefixed(rec.disc, extra))), nil
}

// Size returns 8 plus the declared size of def.
func (c *AccountsCoder) Size(def idl.TypeDef) (int, error) {
	n, err := DeclaredSize(c.table, def)
	if err != nil {
		return 0, err
	}
	return DiscriminatorSize + n, nil
}

// Discriminator returns the tag of a known account.
func (c *AccountsCoder) Discriminator(name string) ([DiscriminatorSize]byte, error) {
	rec, err := c.lookup(name)
	if err != nil {
		return [DiscriminatorSize]byte{}, err
	}
	return rec.disc, nil
}

// Layout returns the compiled layout of an account.
func (c *AccountsCoder) Layout(name string) (*Node, bool) {
	rec, err := c.lookup(name)
	if err != nil {
		return nil, false
	}
	return rec.node, true
}

// Names lists known accounts in sorted order.
func (c *AccountsCoder) Names() []string {
	return c.layouts.names()
}

func (c *AccountsCoder) lookup(name string) (*record, error) {
	if rec, ok := c.layouts.find(name); ok {
		return rec, nil
	}
	return nil, errors.UnknownIdentifier(errors.PhaseLookup, "account", name)
}

func (c *AccountsCoder) decodeRecord(rec *record, data []byte) (map[string]any, error) {
	if len(data) < DiscriminatorSize {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{rec.def.Name}, 0, DiscriminatorSize, len(data))
	}
	return decodeMap(c.dec, rec.node, data[DiscriminatorSize:])
}

func decodeMap(dec *Decoder, n *Node, data []byte) (map[string]any, error) {
	v, err := dec.Decode(n, data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseDecode, []string{n.TypeName()}, "", n.Kind.String())
	}
	return m, nil
}

func prefixed(disc [DiscriminatorSize]byte, payload []byte) []byte {
	out := make([]byte, DiscriminatorSize+len(payload))
	copy(out, disc[:])
	copy(out[DiscriminatorSize:], payload)
	return out
}

func leading(data []byte) []byte {
	if len(data) > DiscriminatorSize {
		return data[:DiscriminatorSize]
	}
	return data
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
