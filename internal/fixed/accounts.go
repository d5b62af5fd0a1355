package fixed

import (
	"sort"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// Account is a fixed-size record layout.
type Account struct {
	Layout *borsh.Node
	Name   string
}

// Accounts encodes records with no discriminator. Decode and DecodeUnchecked
// are identical; memcmp filters match on data size.
// Safe for concurrent use.
type Accounts struct {
	byName  map[string]*Account
	enc     *borsh.Encoder
	dec     *borsh.Decoder
	table   []idl.TypeDef
	program string
}

var _ idlcodec.AccountsCoder = (*Accounts)(nil)

// NewAccounts builds an account table. doc sizes IDL definitions in Size.
func NewAccounts(program string, doc *idl.Idl, opts borsh.Options, accounts ...Account) *Accounts {
	c := &Accounts{
		byName:  make(map[string]*Account, len(accounts)),
		enc:     borsh.NewEncoder(opts),
		dec:     borsh.NewDecoder(),
		table:   doc.TypeTable(),
		program: program,
	}
	for i := range accounts {
		c.byName[idl.CamelCase(accounts[i].Name)] = &accounts[i]
	}
	return c
}

func (c *Accounts) Encode(name string, value any) ([]byte, error) {
	acc, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return c.enc.Encode(acc.Layout, value)
}

func (c *Accounts) Decode(name string, data []byte) (map[string]any, error) {
	return c.DecodeUnchecked(name, data)
}

func (c *Accounts) DecodeUnchecked(name string, data []byte) (map[string]any, error) {
	acc, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	v, err := c.dec.Decode(acc.Layout, data)
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	return m, nil
}

// Memcmp matches records by their fixed size. extra is ignored.
func (c *Accounts) Memcmp(name string, _ []byte) (idlcodec.MemcmpFilter, error) {
	acc, err := c.lookup(name)
	if err != nil {
		return idlcodec.MemcmpFilter{}, err
	}
	return idlcodec.MemcmpFilter{DataSize: acc.Layout.Span}, nil
}

// Size returns the declared size of def with no discriminator term.
func (c *Accounts) Size(def idl.TypeDef) (int, error) {
	return borsh.DeclaredSize(c.table, def)
}

// Layout returns the record layout of name.
func (c *Accounts) Layout(name string) (*borsh.Node, bool) {
	acc, err := c.lookup(name)
	if err != nil {
		return nil, false
	}
	return acc.Layout, true
}

// Names lists accounts in sorted order.
func (c *Accounts) Names() []string {
	names := make([]string, 0, len(c.byName))
	for _, acc := range c.byName {
		names = append(names, acc.Name)
	}
	sort.Strings(names)
	return names
}

func (c *Accounts) lookup(name string) (*Account, error) {
	if acc, ok := c.byName[idl.CamelCase(name)]; ok {
		return acc, nil
	}
	return nil, errors.UnknownIdentifier(errors.PhaseLookup, c.program+" account", name)
}
