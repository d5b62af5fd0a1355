// Package layout computes byte spans for compiled borsh layouts and declared
// sizes for IDL definitions.
//
// # Span Rules
//
//   - Primitives: fixed width (bool=1, u16=2, u64=8, publicKey=32, ...)
//   - Structs: sum of field spans, no padding
//   - Enums: 1-byte ordinal plus the largest variant
//   - Option: 1-byte tag plus inner; COption: 4-byte tag plus inner
//   - Arrays: count times element span
//   - Strings, bytes and vecs: indeterminate, as is anything containing them
//     or reaching itself through a named reference
//
// # Declared Size
//
// DeclaredSize is a cheaper estimate over IDL definitions that never fails on
// variable fields: each string, bytes or vec contributes a single byte.
// Callers encoding variable-length records must supply their own length.
//
// This package is internal to the borsh codec.
package layout
