// Package spltoken encodes instructions and accounts of the SPL Token
// program.
//
// Instructions are a single opcode byte followed by fixed arguments. Accounts
// carry no discriminator and are recognized by size: mints are 82 bytes,
// token accounts 165 and multisig accounts 355. Optional keys inside accounts
// are C-style options that always reserve the full key width.
package spltoken
