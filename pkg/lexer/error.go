package lexer

import (
	"mlab.dev/interp/pkg/diag"
)

// Error is a lex error (spec §4.1), carrying the source position at
// which it was detected via an embedded diag.Context.
type Error struct {
	Message string
	Context diag.Context
}

func (e *Error) Error() string {
	line, col := e.Context.LineCol()
	return "lex error: " + e.Context.Name + ":" + itoa(line) + ":" + itoa(col) + ": " + e.Message
}

// Show implements diag.Shower.
func (e *Error) Show(indent string) string {
	return (&diag.Error{Type: "lex error", Message: e.Message, Context: e.Context}).Show(indent)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
