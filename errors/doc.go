// Package errors provides structured error types for the jvm-classfile library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, structure name, offending value
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindSizeMismatch).
//		Path("append_frame", "locals").
//		Node("AppendFrame").
//		Detail("frame_type 253 requires 2 locals").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseValidate, path, 64, 0, 63)
//	err := errors.IO(cause)
//
// Three categories matter to callers and have predicates: validation errors
// (the caller's data was invalid), I/O errors (the sink failed) and traversal
// errors (a visitor misbehaved). All errors implement the standard error
// interface and support errors.Is/As.
package errors
