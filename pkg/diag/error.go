package diag

import (
	"fmt"

	"mlab.dev/interp/pkg/strutil"
)

// Error represents a lex or parse error (spec §4.1/§4.2/§7): a short
// message tied to a Context, so the line and column where it was
// detected can always be recovered.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Error returns a plain text representation of the error, in the
// "type: name:line:col: message" shape spec §7 asks every lex/parse
// error to expose.
func (e *Error) Error() string {
	line, col := e.Context.LineCol()
	return fmt.Sprintf("%s: %s:%d:%d: %s",
		e.Type, e.Context.Name, line, col, e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: \033[31;1m%s\033[m\n", strutil.Title(e.Type), e.Message)
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}
