// Package abi provides internal utilities for borsh encoding/decoding.
//
// # Contents
//
//   - coerce.go: loose Go value coercion (JSON numbers, big integers, base58 keys)
//   - helpers.go: range checks and shared helpers
//
// This package is internal to the borsh codec.
package abi
