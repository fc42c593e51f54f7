package interp

import (
	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/value"
)

// resolveIndexArg evaluates one index argument against a dimension of
// size dimSize, pushing dimSize onto the end-stack first so a nested
// `end` resolves to it (spec §9). A bare colon argument (ast.Colon
// with no children) reports isColon and every index 0..dimSize-1.
func (f *frame) resolveIndexArg(n *ast.Node, arg *ast.Node, dimSize int) (idx []int, isColon bool, exc *Exception) {
	if arg.Kind == ast.Colon && len(arg.Children) == 0 {
		idx = make([]int, dimSize)
		for i := range idx {
			idx[i] = i
		}
		return idx, true, nil
	}
	f.ends.push(dimSize)
	v, vexc := f.eval(arg)
	f.ends.pop()
	if vexc != nil {
		return nil, false, vexc
	}

	if v.IsLogical() {
		for i := 0; i < v.NumEl(); i++ {
			if v.GetFloat64(i) != 0 {
				idx = append(idx, i)
			}
		}
		return idx, false, nil
	}
	for i := 0; i < v.NumEl(); i++ {
		x := v.GetFloat64(i)
		if x != float64(int(x)) || x < 1 {
			return nil, false, f.raise(n, &interrors.NonPositiveIndex{Value: x})
		}
		idx = append(idx, int(x)-1)
	}
	return idx, false, nil
}

func checkRange(f *frame, n *ast.Node, dim string, idx []int, size int) *Exception {
	for _, i := range idx {
		if i < 0 || i >= size {
			return f.raise(n, &interrors.OutOfRange{Dim: dim, Index: i + 1, Size: size})
		}
	}
	return nil
}

// indexRead implements the read side of spec §4.4's indexing engine:
// one argument is linear indexing over the whole array, two are
// row/column subscripts.
func (f *frame) indexRead(n *ast.Node, v value.Value, argNodes []*ast.Node) (value.Value, *Exception) {
	d := v.Dims()
	switch len(argNodes) {
	case 1:
		idx, isColon, exc := f.resolveIndexArg(n, argNodes[0], d.NumEl())
		if exc != nil {
			return value.Value{}, exc
		}
		if !isColon {
			if exc := checkRange(f, n, "linear", idx, d.NumEl()); exc != nil {
				return value.Value{}, exc
			}
		}
		return gatherLinear(v, idx, d.Rows == 1 && d.Pages == 1), nil
	case 2:
		ridx, rcolon, exc := f.resolveIndexArg(n, argNodes[0], d.Rows)
		if exc != nil {
			return value.Value{}, exc
		}
		cidx, ccolon, exc := f.resolveIndexArg(n, argNodes[1], d.Cols)
		if exc != nil {
			return value.Value{}, exc
		}
		if !rcolon {
			if exc := checkRange(f, n, "row", ridx, d.Rows); exc != nil {
				return value.Value{}, exc
			}
		}
		if !ccolon {
			if exc := checkRange(f, n, "column", cidx, d.Cols); exc != nil {
				return value.Value{}, exc
			}
		}
		return gatherSubscript(v, ridx, cidx), nil
	default:
		return value.Value{}, f.raise(n, &interrors.TypeMismatch{Op: "index", Kind: "unsupported arity"})
	}
}

func gatherLinear(v value.Value, idx []int, rowLike bool) value.Value {
	rows, cols := len(idx), 1
	if rowLike {
		rows, cols = 1, len(idx)
	}
	out := value.NewMatrix(rows, cols, outKind(v), nil, nil)
	for i, li := range idx {
		if v.IsComplex() {
			re, im := v.GetComplex(li)
			out = out.SetComplex(i, re, im)
		} else {
			out = out.SetFloat64(i, v.GetFloat64(li))
		}
	}
	return out
}

func outKind(v value.Value) value.Kind {
	switch v.Kind() {
	case value.COMPLEX:
		return value.COMPLEX
	case value.CHAR:
		return value.CHAR
	case value.LOGICAL:
		return value.LOGICAL
	default:
		return value.DOUBLE
	}
}

func gatherSubscript(v value.Value, ridx, cidx []int) value.Value {
	d := v.Dims()
	out := value.NewMatrix(len(ridx), len(cidx), outKind(v), nil, nil)
	for cj, c := range cidx {
		for ri, r := range ridx {
			li := d.Linear(r, c)
			oi := out.Dims().Linear(ri, cj)
			if v.IsComplex() {
				re, im := v.GetComplex(li)
				out = out.SetComplex(oi, re, im)
			} else {
				out = out.SetFloat64(oi, v.GetFloat64(li))
			}
		}
	}
	return out
}

// currentLValue reads the present value at an assignment target,
// defaulting to value.Empty() rather than erroring when the target is
// an as-yet-undeclared name (spec §4.4's auto-grow/auto-vivify entry
// point).
func (f *frame) currentLValue(target *ast.Node) value.Value {
	switch target.Kind {
	case ast.Ident:
		if v, ok := f.env.Get(target.Str); ok {
			return v
		}
		return value.Empty()
	case ast.FieldAccess:
		parent := f.currentLValue(target.Children[0])
		if parent.Kind() == value.STRUCT {
			if fv, ok := parent.Field(target.Str); ok {
				return fv
			}
		}
		return value.Empty()
	default:
		return value.Empty()
	}
}

func (f *frame) assignTo(lhs *ast.Node, v value.Value) *Exception {
	switch lhs.Kind {
	case ast.Ident:
		f.env.Set(lhs.Str, v)
		return nil
	case ast.Call:
		return f.assignIndexed(lhs, v)
	case ast.CellIndex:
		return f.assignCellIndexed(lhs, v)
	case ast.FieldAccess:
		return f.assignField(lhs, v)
	default:
		return f.raise(lhs, &interrors.BadAssignTarget{Reason: "unsupported assignment target"})
	}
}

func (f *frame) assignField(lhs *ast.Node, v value.Value) *Exception {
	target := lhs.Children[0]
	cur := f.currentLValue(target)
	if cur.Kind() != value.STRUCT {
		if !cur.IsEmpty() {
			return f.raise(lhs, &interrors.TypeMismatch{Op: "field assignment", Kind: cur.Kind().String()})
		}
		cur = value.NewStruct()
	}
	cur = cur.SetField(lhs.Str, v)
	return f.assignTo(target, cur)
}

func (f *frame) assignCellIndexed(lhs *ast.Node, v value.Value) *Exception {
	target, argNodes := lhs.Children[0], lhs.Children[1:]
	cur := f.currentLValue(target)
	if cur.IsEmpty() {
		cur = value.NewCell(0, 0)
	}
	if !cur.IsCell() {
		return f.raise(lhs, &interrors.TypeMismatch{Op: "cell assignment", Kind: cur.Kind().String()})
	}
	cur, exc := f.growAndSetCell(lhs, cur, argNodes, v)
	if exc != nil {
		return exc
	}
	return f.assignTo(target, cur)
}

// growAndSetCell grows cur (a CELL value) to fit the requested
// index, filling new slots with EMPTY, then writes v at that slot.
func (f *frame) growAndSetCell(n *ast.Node, cur value.Value, argNodes []*ast.Node, v value.Value) (value.Value, *Exception) {
	d := cur.Dims()
	switch len(argNodes) {
	case 1:
		idxs, _, exc := f.resolveIndexArg(n, argNodes[0], max(d.NumEl(), 1))
		if exc != nil {
			return cur, exc
		}
		if len(idxs) != 1 {
			return cur, f.raise(n, &interrors.TypeMismatch{Op: "cell assignment", Kind: "multi-index"})
		}
		li := idxs[0]
		if li >= d.NumEl() {
			cur = growCellLinear(cur, li+1)
		}
		return cur.CellSet(li, v), nil
	case 2:
		ridx, _, exc := f.resolveIndexArg(n, argNodes[0], max(d.Rows, 1))
		if exc != nil {
			return cur, exc
		}
		cidx, _, exc := f.resolveIndexArg(n, argNodes[1], max(d.Cols, 1))
		if exc != nil {
			return cur, exc
		}
		r, c := ridx[0], cidx[0]
		if r >= d.Rows || c >= d.Cols {
			cur = growCellSubscript(cur, r+1, c+1)
		}
		return cur.CellSet(cur.Dims().Linear(r, c), v), nil
	default:
		return cur, f.raise(n, &interrors.TypeMismatch{Op: "cell assignment", Kind: "unsupported arity"})
	}
}

func growCellLinear(cur value.Value, n int) value.Value {
	d := cur.Dims()
	rows := d.Rows
	if rows <= 1 {
		rows = 1
	}
	cols := n
	if rows > 1 {
		cols = (n + rows - 1) / rows
	}
	return growCellSubscript(cur, rows, cols)
}

func growCellSubscript(cur value.Value, rows, cols int) value.Value {
	d := cur.Dims()
	if rows <= d.Rows {
		rows = d.Rows
	}
	if cols <= d.Cols {
		cols = d.Cols
	}
	if rows == d.Rows && cols == d.Cols {
		return cur
	}
	grown := value.NewCell(rows, cols)
	for c := 0; c < d.Cols; c++ {
		for r := 0; r < d.Rows; r++ {
			grown = grown.CellSet(grown.Dims().Linear(r, c), cur.CellGet(d.Linear(r, c)))
		}
	}
	return grown
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// assignIndexed implements the write side of spec §4.4's indexing
// engine, including auto-grow of numeric/logical/char arrays.
func (f *frame) assignIndexed(lhs *ast.Node, v value.Value) *Exception {
	target, argNodes := lhs.Children[0], lhs.Children[1:]
	cur := f.currentLValue(target)
	kind := cur.Kind()
	if kind == value.EMPTY {
		kind = v.Kind()
		if kind == value.EMPTY || kind == value.CELL || kind == value.STRUCT || kind == value.FUNC_HANDLE {
			kind = value.DOUBLE
		}
	}

	switch len(argNodes) {
	case 1:
		d := cur.Dims()
		idxs, isColon, exc := f.resolveIndexArg(lhs, argNodes[0], d.NumEl())
		if exc != nil {
			return exc
		}
		need := 0
		for _, i := range idxs {
			if i+1 > need {
				need = i + 1
			}
		}
		if isColon {
			need = d.NumEl()
		}
		if need > d.NumEl() {
			cur = growLinear(cur, kind, need)
		}
		cur = scatterLinear(cur, idxs, v)
	case 2:
		d := cur.Dims()
		ridx, rcolon, exc := f.resolveIndexArg(lhs, argNodes[0], d.Rows)
		if exc != nil {
			return exc
		}
		cidx, ccolon, exc := f.resolveIndexArg(lhs, argNodes[1], d.Cols)
		if exc != nil {
			return exc
		}
		needR, needC := d.Rows, d.Cols
		if !rcolon {
			for _, r := range ridx {
				if r+1 > needR {
					needR = r + 1
				}
			}
		}
		if !ccolon {
			for _, c := range cidx {
				if c+1 > needC {
					needC = c + 1
				}
			}
		}
		if needR > d.Rows || needC > d.Cols {
			cur = growSubscript(cur, kind, needR, needC)
		}
		cur = scatterSubscript(cur, ridx, cidx, v)
	default:
		return f.raise(lhs, &interrors.TypeMismatch{Op: "index assignment", Kind: "unsupported arity"})
	}
	return f.assignTo(target, cur)
}

// growLinear grows a vector (or promotes Empty) to hold n elements,
// zero-filling new numeric/logical slots and space-filling new char
// slots (spec §4.3's growth rule).
func growLinear(cur value.Value, kind value.Kind, n int) value.Value {
	d := cur.Dims()
	rows, cols := 1, n
	if d.Rows > 1 {
		rows, cols = n, 1
	}
	return resizeFill(cur, kind, rows, cols)
}

func growSubscript(cur value.Value, kind value.Kind, rows, cols int) value.Value {
	return resizeFill(cur, kind, rows, cols)
}

func resizeFill(cur value.Value, kind value.Kind, rows, cols int) value.Value {
	d := cur.Dims()
	out := value.NewMatrix(rows, cols, kind, nil, nil)
	if kind == value.CHAR {
		for i := 0; i < rows*cols; i++ {
			out = out.SetFloat64(i, ' ')
		}
	}
	for c := 0; c < d.Cols; c++ {
		for r := 0; r < d.Rows; r++ {
			if cur.IsComplex() {
				re, im := cur.GetComplex(d.Linear(r, c))
				out = out.SetComplex(out.Dims().Linear(r, c), re, im)
			} else {
				out = out.SetFloat64(out.Dims().Linear(r, c), cur.GetFloat64(d.Linear(r, c)))
			}
		}
	}
	return out
}

func scatterLinear(cur value.Value, idx []int, v value.Value) value.Value {
	broadcast := v.NumEl() == 1
	for i, li := range idx {
		src := i
		if broadcast {
			src = 0
		}
		if v.IsComplex() {
			re, im := v.GetComplex(src)
			cur = cur.SetComplex(li, re, im)
		} else {
			cur = cur.SetFloat64(li, v.GetFloat64(src))
		}
	}
	return cur
}

func scatterSubscript(cur value.Value, ridx, cidx []int, v value.Value) value.Value {
	d := cur.Dims()
	broadcast := v.NumEl() == 1
	vd := v.Dims()
	for cj, c := range cidx {
		for ri, r := range ridx {
			li := d.Linear(r, c)
			var x float64
			var re, im float64
			if broadcast {
				if v.IsComplex() {
					re, im = v.GetComplex(0)
				} else {
					x = v.GetFloat64(0)
				}
			} else {
				vi := vd.Linear(ri, cj)
				if v.IsComplex() {
					re, im = v.GetComplex(vi)
				} else {
					x = v.GetFloat64(vi)
				}
			}
			if v.IsComplex() {
				cur = cur.SetComplex(li, re, im)
			} else {
				cur = cur.SetFloat64(li, x)
			}
		}
	}
	return cur
}

// deleteIndexed implements "A(idx) = []" / "A(:, idx) = []" element
// or row/column removal (spec §4.4); an empty row list, as in
// "A([], :) = []", removes nothing and leaves A unchanged.
func (f *frame) deleteIndexed(target *ast.Node) *Exception {
	callNode := target
	inner, argNodes := callNode.Children[0], callNode.Children[1:]
	cur := f.currentLValue(inner)
	d := cur.Dims()

	if len(argNodes) == 1 {
		idx, isColon, exc := f.resolveIndexArg(callNode, argNodes[0], d.NumEl())
		if exc != nil {
			return exc
		}
		if isColon {
			return f.assignTo(inner, value.Empty())
		}
		remove := map[int]bool{}
		for _, i := range idx {
			remove[i] = true
		}
		if len(remove) == 0 {
			return nil
		}
		var kept []int
		for i := 0; i < d.NumEl(); i++ {
			if !remove[i] {
				kept = append(kept, i)
			}
		}
		rowLike := d.Rows == 1
		return f.assignTo(inner, gatherLinear(cur, kept, rowLike))
	}

	if len(argNodes) == 2 {
		ridx, rcolon, exc := f.resolveIndexArg(callNode, argNodes[0], d.Rows)
		if exc != nil {
			return exc
		}
		cidx, ccolon, exc := f.resolveIndexArg(callNode, argNodes[1], d.Cols)
		if exc != nil {
			return exc
		}
		switch {
		case rcolon && !ccolon:
			remove := map[int]bool{}
			for _, c := range cidx {
				remove[c] = true
			}
			var keep []int
			for c := 0; c < d.Cols; c++ {
				if !remove[c] {
					keep = append(keep, c)
				}
			}
			return f.assignTo(inner, gatherSubscript(cur, allIndices(d.Rows), keep))
		case ccolon && !rcolon:
			remove := map[int]bool{}
			for _, r := range ridx {
				remove[r] = true
			}
			var keep []int
			for r := 0; r < d.Rows; r++ {
				if !remove[r] {
					keep = append(keep, r)
				}
			}
			return f.assignTo(inner, gatherSubscript(cur, keep, allIndices(d.Cols)))
		default:
			return f.raise(callNode, &interrors.BadAssignTarget{Reason: "deletion requires a whole row or column selector"})
		}
	}
	return f.raise(callNode, &interrors.BadAssignTarget{Reason: "unsupported deletion arity"})
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
