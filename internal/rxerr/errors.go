// Package rxerr defines the error taxonomy shared by the parser,
// transform, compile and vm packages.
package rxerr

import "errors"

// Sentinel errors. Callers match these with errors.Is; wrapped errors
// add the offending fragment with fmt.Errorf("...: %w", ...).
var (
	// ErrSyntax is returned by the parser on malformed regex input.
	ErrSyntax = errors.New("rxmemo: syntax error")

	// ErrInfiniteLoop is returned by compile when the normalized
	// program contains a zero-width cycle (e.g. (a*)*).
	ErrInfiniteLoop = errors.New("rxmemo: infinite loop")

	// ErrUnsupportedFeature is returned when a pass encounters an AST
	// or instruction shape it does not know how to handle.
	ErrUnsupportedFeature = errors.New("rxmemo: unsupported feature")

	// ErrStackOverflow is returned by the VM when the ready stack
	// exceeds its configured depth.
	ErrStackOverflow = errors.New("rxmemo: backtrack stack overflow")

	// ErrAllocationFailure completes the error taxonomy; no package
	// in this module returns it.
	ErrAllocationFailure = errors.New("rxmemo: allocation failure")
)
