// Package idl models the interface description of an on-chain program: its
// instructions, accounts, named types, events and error codes.
//
// The JSON form follows the Anchor IDL. Type references serialize either as a
// primitive name or as a single-key object:
//
//	"u64"
//	{"vec": "u8"}
//	{"option": "publicKey"}
//	{"coption": "publicKey"}
//	{"array": ["u8", 32]}
//	{"defined": "Config"}
//
// Parse accepts JSON with comments and trailing commas.
package idl
