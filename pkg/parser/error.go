package parser

import (
	"fmt"

	"mlab.dev/interp/pkg/diag"
)

// Error is a parse error (spec §4.2), carrying the source position at
// which it was detected.
type Error struct {
	Message string
	Context diag.Context
}

func (e *Error) Error() string {
	line, col := e.Context.LineCol()
	return fmt.Sprintf("parse error: %s:%d:%d: %s", e.Context.Name, line, col, e.Message)
}

// Show implements diag.Shower.
func (e *Error) Show(indent string) string {
	return (&diag.Error{Type: "parse error", Message: e.Message, Context: e.Context}).Show(indent)
}
