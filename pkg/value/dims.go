package value

import "mlab.dev/interp/pkg/interrors"

// Dims holds the shape of a buffered value: rows, columns, and pages
// (spec §3.4). Pages defaults to 1 for 1-D/2-D values.
type Dims struct {
	Rows  int
	Cols  int
	Pages int
}

// NumEl returns rows*cols*pages.
func (d Dims) NumEl() int { return d.Rows * d.Cols * d.Pages }

// IsScalar reports numel == 1.
func (d Dims) IsScalar() bool { return d.NumEl() == 1 }

// IsEmpty reports numel == 0.
func (d Dims) IsEmpty() bool { return d.NumEl() == 0 }

// IsVector reports that two of the three dimensions equal 1 (spec
// §3.4).
func (d Dims) IsVector() bool {
	ones := 0
	if d.Rows == 1 {
		ones++
	}
	if d.Cols == 1 {
		ones++
	}
	if d.Pages == 1 {
		ones++
	}
	return ones >= 2
}

// IsColumn reports that it is a vector with more than one row (or
// empty with a single column), the shape a deletion preserves.
func (d Dims) IsColumn() bool { return d.Cols == 1 && d.Rows != 1 }

// Dim returns the size of the given 1-based dimension, extending with
// 1s past the declared rank (MATLAB's trailing-singleton rule).
func (d Dims) Dim(n int) int {
	switch n {
	case 1:
		return d.Rows
	case 2:
		return d.Cols
	case 3:
		return d.Pages
	default:
		return 1
	}
}

// Linear computes the column-major linear index of (r, c), 0-based
// (spec §3.3: linear(r,c) = c*rows + r).
func (d Dims) Linear(r, c int) int { return c*d.Rows + r }

// Linear3 computes the column-major linear index of (r, c, p), 0-based
// (spec §3.3: linear(r,c,p) = p*rows*cols + c*rows + r).
func (d Dims) Linear3(r, c, p int) int { return p*d.Rows*d.Cols + c*d.Rows + r }

// LinearChecked is the checked counterpart of Linear/Linear3
// (grounded on the original's Dims::sub2indChecked split between an
// unchecked operator() and a checked accessor): it returns the
// bounds error spec §7 requires, naming the offending coordinate.
func (d Dims) LinearChecked(coords ...int) (int, error) {
	switch len(coords) {
	case 1:
		i := coords[0]
		if i < 0 || i >= d.NumEl() {
			return 0, &interrors.OutOfRange{Dim: "linear", Index: i + 1, Size: d.NumEl()}
		}
		return i, nil
	case 2:
		r, c := coords[0], coords[1]
		if r < 0 || r >= d.Rows {
			return 0, &interrors.OutOfRange{Dim: "row", Index: r + 1, Size: d.Rows}
		}
		if c < 0 || c >= d.Cols {
			return 0, &interrors.OutOfRange{Dim: "column", Index: c + 1, Size: d.Cols}
		}
		return d.Linear(r, c), nil
	case 3:
		r, c, p := coords[0], coords[1], coords[2]
		if r < 0 || r >= d.Rows {
			return 0, &interrors.OutOfRange{Dim: "row", Index: r + 1, Size: d.Rows}
		}
		if c < 0 || c >= d.Cols {
			return 0, &interrors.OutOfRange{Dim: "column", Index: c + 1, Size: d.Cols}
		}
		if p < 0 || p >= d.Pages {
			return 0, &interrors.OutOfRange{Dim: "page", Index: p + 1, Size: d.Pages}
		}
		return d.Linear3(r, c, p), nil
	default:
		return 0, &interrors.OutOfRange{Dim: "linear", Index: 0, Size: d.NumEl()}
	}
}
