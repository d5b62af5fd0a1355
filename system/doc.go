// Package system encodes instructions and accounts of the native System
// program.
//
// Instructions are a u32 little-endian opcode followed by fixed arguments.
// Seeds are strings with a u64 length prefix, so the seeded instructions are
// sized as their prefix span plus the seed length:
//
//	data, _ := coder.Instruction.Encode("createAccountWithSeed", map[string]any{
//	    "base":     base,
//	    "seed":     "vault",
//	    "lamports": 1_000_000,
//	    "space":    165,
//	    "owner":    owner,
//	})
//	// len(data) == 92 + len("vault")
//
// The only account is the 80-byte durable nonce record.
package system
