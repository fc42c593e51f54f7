// Package interplog provides the package-level loggers used by the
// lexer, parser, and evaluator to report internal diagnostics that are
// not part of the error surface of spec §7 (e.g. recursion-depth
// milestones, registry dispatch fallthroughs).
package interplog

import (
	"io"
	"log"
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger returns a new Logger with the given prefix, writing to
// io.Discard until redirected with SetOutput.
func GetLogger(prefix string) *log.Logger {
	return log.New(io.Discard, prefix, log.Lmicroseconds)
}

// SetOutput redirects every logger created so far is not retroactively
// supported; callers instead pass w to each call site's logger. This
// helper exists for the common case of wanting a single writer for the
// whole interpreter.
func SetOutput(logger *log.Logger, w io.Writer) {
	logger.SetOutput(w)
}
