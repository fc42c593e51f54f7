package interp

import (
	"strings"
	"testing"

	"mlab.dev/interp/pkg/value"
)

func TestFormatDisplayScalarAndEmpty(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want string
	}{
		{"x", value.NewScalar(3), "x = 3"},
		{"", value.Empty(), "ans = []"},
		{"ok", value.NewLogicalScalar(true), "ok = 1"},
		{"ok", value.NewLogicalScalar(false), "ok = 0"},
		{"z", value.NewComplexScalar(1, -2), "z = 1-2i"},
	}
	for _, c := range cases {
		if got := FormatDisplay(c.name, c.v); got != c.want {
			t.Errorf("FormatDisplay(%q, ...) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestFormatDisplayFuncHandle(t *testing.T) {
	v := value.NewFuncHandle("square")
	if got, want := FormatDisplay("f", v), "f = @square"; got != want {
		t.Errorf("FormatDisplay = %q, want %q", got, want)
	}
}

func TestFormatDisplayCellTruncates(t *testing.T) {
	c := value.NewCell(1, 25)
	for i := 0; i < 25; i++ {
		c = c.CellSet(i, value.NewScalar(float64(i)))
	}
	got := FormatDisplay("c", c)
	if got == "" {
		t.Fatal("empty display")
	}
	if !strings.Contains(got, "more") {
		t.Errorf("FormatDisplay(25-element cell) = %q, want a truncation note", got)
	}
}
