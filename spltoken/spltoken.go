package spltoken

import (
	_ "embed"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/idl"
	"github.com/wippyai/idl-codec/internal/fixed"
)

// ProgramID is the address of the SPL Token program.
const ProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// Account states, stored in the token account's state byte.
const (
	StateUninitialized uint8 = iota
	StateInitialized
	StateFrozen
)

// Authority kinds accepted by setAuthority.
const (
	AuthorityMintTokens uint8 = iota
	AuthorityFreezeAccount
	AuthorityAccountOwner
	AuthorityCloseAccount
)

//go:embed idl.jsonc
var idlSource []byte

var schema = idl.MustParse(idlSource)

// IDL returns the embedded program description. Callers must not modify it.
func IDL() *idl.Idl {
	return schema
}

// NewInstructions returns the instruction coder.
func NewInstructions(opts borsh.Options) *fixed.Instructions {
	return fixed.NewInstructions(schema.Name, borsh.KindU8, opts, instructions...)
}

// NewAccounts returns the accounts coder.
func NewAccounts(opts borsh.Options) *fixed.Accounts {
	return fixed.NewAccounts(schema.Name, schema, opts,
		fixed.Account{Name: "mint", Layout: mintAccount},
		fixed.Account{Name: "token", Layout: tokenAccount},
		fixed.Account{Name: "multisig", Layout: multisigAccount},
	)
}

// New assembles the SPL Token codec family.
func New(opts borsh.Options) (*idlcodec.Coder, error) {
	return fixed.NewCoder(NewInstructions(opts), NewAccounts(opts), schema, opts)
}

// NewWithDefaults assembles the codec family with default options.
func NewWithDefaults() (*idlcodec.Coder, error) {
	return New(borsh.DefaultOptions())
}
