package borsh

import (
	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/idl"
)

// New builds the full schema-driven codec family for doc. State and Events
// are nil when doc declares none.
func New(doc *idl.Idl, opts Options) (*idlcodec.Coder, error) {
	ix, err := NewInstructions(doc, opts)
	if err != nil {
		return nil, err
	}
	accounts, err := NewAccounts(doc, opts)
	if err != nil {
		return nil, err
	}
	typs, err := NewTypes(doc, opts)
	if err != nil {
		return nil, err
	}

	c := &idlcodec.Coder{
		Instruction: ix,
		Accounts:    accounts,
		Types:       typs,
	}
	if len(doc.Events) > 0 {
		events, err := NewEvents(doc, opts)
		if err != nil {
			return nil, err
		}
		c.Events = events
	}
	if doc.State != nil {
		state, err := NewState(doc, opts)
		if err != nil {
			return nil, err
		}
		c.State = state
	}
	return c, nil
}

// NewWithDefaults builds the codec family with default options.
func NewWithDefaults(doc *idl.Idl) (*idlcodec.Coder, error) {
	return New(doc, DefaultOptions())
}
