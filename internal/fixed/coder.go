package fixed

import (
	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/idl"
)

// NewCoder assembles the codec family of a fixed-format program. Types are
// served by the generic coder over doc; State and Events stay nil.
func NewCoder(ix *Instructions, accounts *Accounts, doc *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
	types, err := borsh.NewTypes(doc, opts)
	if err != nil {
		return nil, err
	}
	return &idlcodec.Coder{
		Instruction: ix,
		Accounts:    accounts,
		Types:       types,
	}, nil
}
