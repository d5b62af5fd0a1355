// Package types defines the compiled layout graph used by the borsh codec.
//
// A Node describes how one type reference is packed: its Kind, children and,
// once annotated, its static byte span. Named definitions compile to a single
// shared Node so recursive types form a cyclic graph.
//
// # Key Types
//
//   - Node: compiled layout with optional cached span
//   - Kind: layout discriminator (primitive, string, struct, enum, vec, option, ...)
//
// This package is internal to the borsh codec.
package types
