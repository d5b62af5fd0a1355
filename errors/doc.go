// Package errors provides structured error types for the IDL codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, offending identifier,
// Go/IDL type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("mint", "supply").
//		GoType("string").
//		Type("u64").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownIdentifier(errors.PhaseLookup, "instruction", "frobnicate")
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 10, 8, 12)
//
// The Err* sentinels carry no phase and match any error of the same kind:
//
//	if errors.Is(err, errors.ErrDiscriminatorMismatch) { ... }
package errors
