package diag

import (
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	culpritLineBegin, culpritLineEnd = "<", ">"
	defer func() { culpritLineBegin, culpritLineEnd = "\033[1;4m", "\033[m" }()

	err := &Error{
		Type:    "some error",
		Message: "bad list",
		Context: *contextInParen("[test]", "echo (x)"),
	}

	wantErrorString := "some error: [test]:1:6: bad list"
	if gotErrorString := err.Error(); gotErrorString != wantErrorString {
		t.Errorf("Error() -> %q, want %q", gotErrorString, wantErrorString)
	}

	wantRanging := Ranging{From: 5, To: 8}
	if gotRanging := err.Range(); gotRanging != wantRanging {
		t.Errorf("Range() -> %v, want %v", gotRanging, wantRanging)
	}

	show := err.Show("")
	if !strings.HasPrefix(show, "Some error: ") {
		t.Errorf("Show() -> %q, want prefix %q", show, "Some error: ")
	}
	if !strings.Contains(show, "[test], line 1: echo <(x)>") {
		t.Errorf("Show() -> %q, want to contain culprit excerpt", show)
	}
}
