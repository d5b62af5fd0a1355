package spltoken

import (
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/internal/fixed"
)

// Account data lengths
const (
	MintSize     = 82
	AccountSize  = 165
	MultisigSize = 355

	// MaxSigners bounds a multisig account.
	MaxSigners = 11
)

var (
	u8     = borsh.Primitive(borsh.KindU8)
	u64    = borsh.Primitive(borsh.KindU64)
	flag   = borsh.Primitive(borsh.KindBool)
	pubkey = borsh.Primitive(borsh.KindPublicKey)
)

func amount(name string) *borsh.Node {
	return borsh.Struct(name, borsh.Field("amount", u64))
}

func checked(name string) *borsh.Node {
	return borsh.Struct(name, borsh.Field("amount", u64), borsh.Field("decimals", u8))
}

func empty(name string) *borsh.Node {
	return borsh.Struct(name)
}

var instructions = []fixed.Instruction{
	{Opcode: 0, Name: "initializeMint", Layout: borsh.Struct("initializeMint",
		borsh.Field("decimals", u8),
		borsh.Field("mintAuthority", pubkey),
		borsh.Field("freezeAuthority", borsh.OptionOf(pubkey)),
	)},
	{Opcode: 1, Name: "initializeAccount", Layout: empty("initializeAccount")},
	{Opcode: 2, Name: "initializeMultisig", Layout: borsh.Struct("initializeMultisig",
		borsh.Field("m", u8),
	)},
	{Opcode: 3, Name: "transfer", Layout: amount("transfer")},
	{Opcode: 4, Name: "approve", Layout: amount("approve")},
	{Opcode: 5, Name: "revoke", Layout: empty("revoke")},
	{Opcode: 6, Name: "setAuthority", Layout: borsh.Struct("setAuthority",
		borsh.Field("authorityType", u8),
		borsh.Field("newAuthority", borsh.OptionOf(pubkey)),
	)},
	{Opcode: 7, Name: "mintTo", Layout: amount("mintTo")},
	{Opcode: 8, Name: "burn", Layout: amount("burn")},
	{Opcode: 9, Name: "closeAccount", Layout: empty("closeAccount")},
	{Opcode: 10, Name: "freezeAccount", Layout: empty("freezeAccount")},
	{Opcode: 11, Name: "thawAccount", Layout: empty("thawAccount")},
	{Opcode: 12, Name: "transferChecked", Layout: checked("transferChecked")},
	{Opcode: 13, Name: "approveChecked", Layout: checked("approveChecked")},
	{Opcode: 14, Name: "mintToChecked", Layout: checked("mintToChecked")},
	{Opcode: 15, Name: "burnChecked", Layout: checked("burnChecked")},
	{Opcode: 16, Name: "initializeAccount2", Layout: borsh.Struct("initializeAccount2",
		borsh.Field("authority", pubkey),
	)},
	{Opcode: 17, Name: "syncNative", Layout: empty("syncNative")},
	{Opcode: 18, Name: "initializeAccount3", Layout: borsh.Struct("initializeAccount3",
		borsh.Field("authority", pubkey),
	)},
	{Opcode: 19, Name: "initializeMultisig2", Layout: borsh.Struct("initializeMultisig2",
		borsh.Field("m", u8),
	)},
	// the freeze authority tag is explicit and the key slot is always present
	{Opcode: 20, Name: "initializeMint2", Layout: borsh.Struct("initializeMint2",
		borsh.Field("decimals", u8),
		borsh.Field("mintAuthority", pubkey),
		borsh.Field("freezeAuthorityOption", u8),
		borsh.Field("freezeAuthority", pubkey),
	)},
}

var mintAccount = borsh.Struct("mint",
	borsh.Field("mintAuthority", borsh.COptionOf(pubkey)),
	borsh.Field("supply", u64),
	borsh.Field("decimals", u8),
	borsh.Field("isInitialized", flag),
	borsh.Field("freezeAuthority", borsh.COptionOf(pubkey)),
)

var tokenAccount = borsh.Struct("token",
	borsh.Field("mint", pubkey),
	borsh.Field("authority", pubkey),
	borsh.Field("amount", u64),
	borsh.Field("delegate", borsh.COptionOf(pubkey)),
	borsh.Field("state", u8),
	borsh.Field("isNative", borsh.COptionOf(u64)),
	borsh.Field("delegatedAmount", u64),
	borsh.Field("closeAuthority", borsh.COptionOf(pubkey)),
)

var multisigAccount = borsh.Struct("multisig",
	borsh.Field("m", u8),
	borsh.Field("n", u8),
	borsh.Field("isInitialized", flag),
	borsh.Field("signers", borsh.ArrayOf(pubkey, MaxSigners)),
)
