package interp

import (
	"fmt"
	"strconv"
	"strings"

	"mlab.dev/interp/pkg/value"
)

// displayTruncateLimit is spec §4.6's "truncated beyond 20" bound for
// cell and struct summaries.
const displayTruncateLimit = 20

// FormatDisplay renders v the way spec §4.6 describes for a named
// result: scalars on one line, matrices row by row, logicals as
// 1/0, complex as a+bi, struct/cell summaries truncated beyond 20
// elements, function handles as @name, and empty as [].
func FormatDisplay(name string, v value.Value) string {
	if name == "" {
		name = "ans"
	}
	switch v.Kind() {
	case value.EMPTY:
		return fmt.Sprintf("%s = []", name)
	case value.FUNC_HANDLE:
		return fmt.Sprintf("%s = @%s", name, v.FuncName())
	case value.CELL:
		return fmt.Sprintf("%s =\n%s", name, formatCell(v))
	case value.STRUCT:
		return fmt.Sprintf("%s =\n%s", name, formatStruct(v))
	}
	if v.NumEl() == 1 {
		return fmt.Sprintf("%s = %s", name, formatScalar(v, 0))
	}
	return fmt.Sprintf("%s =\n\n%s\n", name, formatRows(v))
}

func formatScalar(v value.Value, i int) string {
	switch v.Kind() {
	case value.LOGICAL:
		if v.GetFloat64(i) != 0 {
			return "1"
		}
		return "0"
	case value.CHAR:
		return string(rune(v.GetFloat64(i)))
	case value.COMPLEX:
		re, im := v.GetComplex(i)
		return formatComplex(re, im)
	default:
		return formatFloat(v.GetFloat64(i))
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// formatComplex renders re+im*i as spec §4.6's "a+bi".
func formatComplex(re, im float64) string {
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return formatFloat(re) + sign + formatFloat(im) + "i"
}

func formatRows(v value.Value) string {
	d := v.Dims()
	if v.Kind() == value.CHAR {
		rows := make([]string, d.Rows)
		for r := 0; r < d.Rows; r++ {
			var sb strings.Builder
			for c := 0; c < d.Cols; c++ {
				sb.WriteRune(rune(v.GetFloat64(d.Linear(r, c))))
			}
			rows[r] = sb.String()
		}
		return strings.Join(rows, "\n")
	}
	rows := make([]string, d.Rows)
	for r := 0; r < d.Rows; r++ {
		cells := make([]string, d.Cols)
		for c := 0; c < d.Cols; c++ {
			cells[c] = formatScalar(v, d.Linear(r, c))
		}
		rows[r] = "   " + strings.Join(cells, "   ")
	}
	return strings.Join(rows, "\n")
}

func formatCell(v value.Value) string {
	n := v.NumEl()
	limit := n
	truncated := false
	if limit > displayTruncateLimit {
		limit = displayTruncateLimit
		truncated = true
	}
	lines := make([]string, 0, limit+1)
	for i := 0; i < limit; i++ {
		lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, summarize(v.CellGet(i))))
	}
	if truncated {
		lines = append(lines, fmt.Sprintf("  ... (%d more)", n-limit))
	}
	return strings.Join(lines, "\n")
}

func formatStruct(v value.Value) string {
	names := v.FieldNames()
	limit := len(names)
	truncated := false
	if limit > displayTruncateLimit {
		limit = displayTruncateLimit
		truncated = true
	}
	lines := make([]string, 0, limit+1)
	for i := 0; i < limit; i++ {
		fv, _ := v.Field(names[i])
		lines = append(lines, fmt.Sprintf("    %s: %s", names[i], summarize(fv)))
	}
	if truncated {
		lines = append(lines, fmt.Sprintf("    ... (%d more)", len(names)-limit))
	}
	return strings.Join(lines, "\n")
}

// summarize renders a value compactly for use inside a cell or struct
// display, rather than as a standalone named result.
func summarize(v value.Value) string {
	switch v.Kind() {
	case value.EMPTY:
		return "[]"
	case value.FUNC_HANDLE:
		return "@" + v.FuncName()
	case value.CELL:
		return fmt.Sprintf("{%dx%d cell}", v.Dims().Rows, v.Dims().Cols)
	case value.STRUCT:
		return fmt.Sprintf("struct with %d fields", len(v.FieldNames()))
	case value.CHAR:
		return strconv.Quote(v.String())
	}
	if v.NumEl() == 1 {
		return formatScalar(v, 0)
	}
	return fmt.Sprintf("[%dx%d %s]", v.Dims().Rows, v.Dims().Cols, v.Kind())
}
