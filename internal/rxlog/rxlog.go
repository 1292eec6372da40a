// Package rxlog provides the engine's single logging seam.
//
// The engine otherwise carries no global mutable state (spec.md §5); the
// only ambient knob it allows is a verbosity level, which the CLI driver
// turns into a logr V-level here.
package rxlog

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logr.Logger that writes key/value lines to os.Stderr.
// verbosity follows logr convention: 0 is "info only", higher numbers
// enable more detailed V(n) traces (VM match outcomes at V(1), VM
// thread deaths at V(2)).
func New(verbosity int) logr.Logger {
	opts := funcr.Options{
		Verbosity: verbosity,
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			os.Stderr.WriteString(prefix + ": " + args + "\n")
			return
		}
		os.Stderr.WriteString(args + "\n")
	}, opts)
}

// Discard is a no-op logger for callers that don't want any output,
// e.g. unit tests and library consumers that haven't opted in.
func Discard() logr.Logger {
	return logr.Discard()
}
