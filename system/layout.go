package system

import (
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/internal/fixed"
)

// NonceAccountSize is the data length of a durable nonce account.
const NonceAccountSize = 80

var (
	u32    = borsh.Primitive(borsh.KindU32)
	u64    = borsh.Primitive(borsh.KindU64)
	pubkey = borsh.Primitive(borsh.KindPublicKey)
	seed   = borsh.Primitive(borsh.KindString64)
)

func args(name string, fields ...borsh.NodeField) *borsh.Node {
	return borsh.Struct(name, fields...)
}

var instructions = []fixed.Instruction{
	{Opcode: 0, Name: "createAccount", Layout: args("createAccount",
		borsh.Field("lamports", u64),
		borsh.Field("space", u64),
		borsh.Field("owner", pubkey),
	)},
	{Opcode: 1, Name: "assign", Layout: args("assign",
		borsh.Field("owner", pubkey),
	)},
	{Opcode: 2, Name: "transfer", Layout: args("transfer",
		borsh.Field("lamports", u64),
	)},
	{Opcode: 3, Name: "createAccountWithSeed", Layout: args("createAccountWithSeed",
		borsh.Field("base", pubkey),
		borsh.Field("seed", seed),
		borsh.Field("lamports", u64),
		borsh.Field("space", u64),
		borsh.Field("owner", pubkey),
	)},
	{Opcode: 4, Name: "advanceNonceAccount", Layout: args("advanceNonceAccount",
		borsh.Field("authorized", pubkey),
	)},
	{Opcode: 5, Name: "withdrawNonceAccount", Layout: args("withdrawNonceAccount",
		borsh.Field("lamports", u64),
	)},
	{Opcode: 6, Name: "initializeNonceAccount", Layout: args("initializeNonceAccount",
		borsh.Field("authorized", pubkey),
	)},
	{Opcode: 7, Name: "authorizeNonceAccount", Layout: args("authorizeNonceAccount",
		borsh.Field("authorized", pubkey),
	)},
	{Opcode: 8, Name: "allocate", Layout: args("allocate",
		borsh.Field("space", u64),
	)},
	{Opcode: 9, Name: "allocateWithSeed", Layout: args("allocateWithSeed",
		borsh.Field("base", pubkey),
		borsh.Field("seed", seed),
		borsh.Field("space", u64),
		borsh.Field("owner", pubkey),
	)},
	{Opcode: 10, Name: "assignWithSeed", Layout: args("assignWithSeed",
		borsh.Field("base", pubkey),
		borsh.Field("seed", seed),
		borsh.Field("owner", pubkey),
	)},
	{Opcode: 11, Name: "transferWithSeed", Layout: args("transferWithSeed",
		borsh.Field("lamports", u64),
		borsh.Field("seed", seed),
		borsh.Field("owner", pubkey),
	)},
}

var nonceAccount = borsh.Struct("nonce",
	borsh.Field("version", u32),
	borsh.Field("state", u32),
	borsh.Field("authorizedPubkey", pubkey),
	borsh.Field("nonce", pubkey),
	borsh.Field("feeCalculator", borsh.Struct("FeeCalculator",
		borsh.Field("lamportsPerSignature", u64),
	)),
)
