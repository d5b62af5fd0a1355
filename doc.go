// Package idlcodec encodes and decodes on-chain program data described by an
// Anchor-style IDL.
//
// A program's binary formats are reached through one handle, Coder, whose
// members cover instruction arguments, account records, user-defined types,
// the legacy state record and log events. Two families implement it: the
// schema-driven codecs in package borsh, and fixed-format codecs for native
// programs (system, spltoken) that predate IDLs.
//
// # Architecture Overview
//
//	idlcodec/            Root package with Coder, PublicKey and the coder interfaces
//	├── idl/             IDL document model, JSON parsing and name casing
//	├── borsh/           Layout compiler, size calculator and schema-driven codecs
//	├── system/          System program instructions and nonce account
//	├── spltoken/        SPL Token instructions, mint, token and multisig accounts
//	├── coder/           Codec selection by program ID
//	├── errors/          Structured error types for debugging
//	└── cmd/idlcodec/    Command line encoder, decoder and inspector
//
// # Quick Start
//
// Build the codecs for a program and encode an account:
//
//	doc, err := idl.ReadFile("counter.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := coder.ForIDL(doc, borsh.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := c.Accounts.Encode("Counter", map[string]any{"count": 1})
//	value, err := c.Accounts.Decode("Counter", data)
//
// # Values
//
// Encoders accept maps keyed by field name, slices, strings, numbers of any
// Go integer type or json.Number, PublicKey or its base58 text, and *big.Int
// for 128-bit integers. Decoders return map[string]any, []any, nil for absent
// options, PublicKey, *big.Int and []byte.
//
// # Thread Safety
//
// Coders are immutable after construction and safe for concurrent use.
package idlcodec
