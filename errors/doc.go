// Package errors provides structured error types for the sb1 decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the byte position in the input when one is known, the class
// id of the token being decoded, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTokenize, errors.KindUnexpectedEOF).
//		Position(812).
//		ClassID(11).
//		Detail("need %d bytes, have %d", 4096, 17).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEOF(errors.PhaseTokenize, 812, 4096, 17)
//	err := errors.Unsupported(errors.PhaseCodec, "bitmap depth 24")
//
// Unknown class ids are never errors; see package squeak.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
