package system

import (
	_ "embed"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/idl"
	"github.com/wippyai/idl-codec/internal/fixed"
)

// ProgramID is the address of the System program.
const ProgramID = "11111111111111111111111111111111"

//go:embed idl.jsonc
var idlSource []byte

var schema = idl.MustParse(idlSource)

// IDL returns the embedded program description. Callers must not modify it.
func IDL() *idl.Idl {
	return schema
}

// NewInstructions returns the instruction coder.
func NewInstructions(opts borsh.Options) *fixed.Instructions {
	return fixed.NewInstructions(schema.Name, borsh.KindU32, opts, instructions...)
}

// NewAccounts returns the accounts coder.
func NewAccounts(opts borsh.Options) *fixed.Accounts {
	return fixed.NewAccounts(schema.Name, schema, opts, fixed.Account{Name: "nonce", Layout: nonceAccount})
}

// New assembles the System program codec family.
func New(opts borsh.Options) (*idlcodec.Coder, error) {
	return fixed.NewCoder(NewInstructions(opts), NewAccounts(opts), schema, opts)
}

// NewWithDefaults assembles the codec family with default options.
func NewWithDefaults() (*idlcodec.Coder, error) {
	return New(borsh.DefaultOptions())
}
