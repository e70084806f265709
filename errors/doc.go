// Package errors provides structured error types for structbind.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go and catalog type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("event", "pid").
//		GoType("string").
//		Type("btf_type_3").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LengthMismatch(errors.PhaseDecode, path, "btf_type_3", 4, 3)
//	err := errors.TextTooLong(path, 9, 8)
//
// Sentinels such as ErrLengthMismatch match any phase with errors.Is.
package errors
