package interp

import (
	"math"
	"strconv"

	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/value"
)

// eval evaluates n to a single value, per spec §4.6, returning an
// *Exception instead of panicking on error or control flow (spec §9:
// "a dedicated result variant returned up the call stack"). Callers
// must check the returned exception before touching the value.
// Multi-valued contexts (multi-assign, cell-index comma-lists) go
// through evalMulti/evalCallMulti instead and only keep the first
// result when used as a sub-expression, matching MATLAB's own
// "first output only" rule for nested calls.
func (f *frame) eval(n *ast.Node) (value.Value, *Exception) {
	switch n.Kind {
	case ast.NumberLit:
		return value.NewScalar(n.Num), nil
	case ast.ImaginaryLit:
		return value.NewComplexScalar(0, n.Num), nil
	case ast.StringLit:
		return value.NewString(n.Str), nil
	case ast.BoolLit:
		return value.NewLogicalScalar(n.Bool), nil
	case ast.EndValue:
		top, ok := f.ends.top()
		if !ok {
			return value.Value{}, f.raise(n, &interrors.BadAssignTarget{Reason: "'end' used outside an indexing expression"})
		}
		return value.NewScalar(float64(top)), nil
	case ast.Ident:
		return f.evalIdent(n)
	case ast.BinaryOp:
		return f.evalBinary(n)
	case ast.UnaryOp:
		return f.evalUnary(n)
	case ast.PostfixOp:
		return f.evalPostfix(n)
	case ast.Colon:
		return f.evalColon(n)
	case ast.MatrixLit:
		return f.evalMatrixLit(n)
	case ast.CellLit:
		return f.evalCellLit(n)
	case ast.AnonFunc:
		return f.evalAnonFunc(n), nil
	case ast.Call:
		vs, exc := f.evalCallMulti(n, 1)
		if exc != nil {
			return value.Value{}, exc
		}
		return first(vs), nil
	case ast.CellIndex:
		vs, exc := f.evalCellIndexMulti(n, 1)
		if exc != nil {
			return value.Value{}, exc
		}
		return first(vs), nil
	case ast.FieldAccess:
		return f.evalFieldAccess(n)
	default:
		return value.Value{}, f.raise(n, &interrors.TypeMismatch{Op: "eval", Kind: "unsupported expression"})
	}
}

func (f *frame) evalIdent(n *ast.Node) (value.Value, *Exception) {
	if v, ok := f.env.Get(n.Str); ok {
		return v, nil
	}
	if fn, ok := coreConstants[n.Str]; ok {
		return fn(), nil
	}
	if _, ok := f.it.funcs[n.Str]; ok {
		vs, exc := f.callUserFunc(n, n.Str, nil, 1)
		if exc != nil {
			return value.Value{}, exc
		}
		return first(vs), nil
	}
	if f.it.Registry.HasFunc(n.Str) {
		vs, exc := f.callRegistryFunc(n, n.Str, nil, 1)
		if exc != nil {
			return value.Value{}, exc
		}
		return first(vs), nil
	}
	return value.Value{}, f.raise(n, &interrors.Undefined{Name: n.Str})
}

func first(vs []value.Value) value.Value {
	if len(vs) == 0 {
		return value.Empty()
	}
	return vs[0]
}

func (f *frame) evalBinary(n *ast.Node) (value.Value, *Exception) {
	op := n.Str
	// Short-circuit operators are never dispatched through the
	// registry (spec §4.8).
	switch op {
	case "&&":
		l, exc := f.eval(n.Children[0])
		if exc != nil {
			return value.Value{}, exc
		}
		lb, err := l.ToBool()
		if err != nil {
			return value.Value{}, f.raise(n, err)
		}
		if !lb {
			return value.NewLogicalScalar(false), nil
		}
		r, exc := f.eval(n.Children[1])
		if exc != nil {
			return value.Value{}, exc
		}
		rb, err := r.ToBool()
		if err != nil {
			return value.Value{}, f.raise(n, err)
		}
		return value.NewLogicalScalar(rb), nil
	case "||":
		l, exc := f.eval(n.Children[0])
		if exc != nil {
			return value.Value{}, exc
		}
		lb, err := l.ToBool()
		if err != nil {
			return value.Value{}, f.raise(n, err)
		}
		if lb {
			return value.NewLogicalScalar(true), nil
		}
		r, exc := f.eval(n.Children[1])
		if exc != nil {
			return value.Value{}, exc
		}
		rb, err := r.ToBool()
		if err != nil {
			return value.Value{}, f.raise(n, err)
		}
		return value.NewLogicalScalar(rb), nil
	}

	l, exc := f.eval(n.Children[0])
	if exc != nil {
		return value.Value{}, exc
	}
	r, exc := f.eval(n.Children[1])
	if exc != nil {
		return value.Value{}, exc
	}
	fn, ok := f.it.Registry.Binary(op)
	if !ok {
		logger.Printf("registry dispatch miss: binary %q on %s,%s", op, l.Kind(), r.Kind())
		return value.Value{}, f.raise(n, &interrors.UnsupportedOp{Op: op, Kinds: l.Kind().String() + "," + r.Kind().String()})
	}
	out, err := fn(l, r)
	if err != nil {
		return value.Value{}, f.raise(n, err)
	}
	return out, nil
}

func (f *frame) evalUnary(n *ast.Node) (value.Value, *Exception) {
	v, exc := f.eval(n.Children[0])
	if exc != nil {
		return value.Value{}, exc
	}
	fn, ok := f.it.Registry.Unary(n.Str)
	if !ok {
		return value.Value{}, f.raise(n, &interrors.UnsupportedOp{Op: n.Str, Kinds: v.Kind().String()})
	}
	out, err := fn(v)
	if err != nil {
		return value.Value{}, f.raise(n, err)
	}
	return out, nil
}

// evalPostfix implements transpose, which spec §4.8 requires the core
// to implement directly rather than through the registry (conjugation
// policy for `'` vs `.'` is part of the value layer's contract, not a
// pluggable numeric routine).
func (f *frame) evalPostfix(n *ast.Node) (value.Value, *Exception) {
	v, exc := f.eval(n.Children[0])
	if exc != nil {
		return value.Value{}, exc
	}
	if v.Kind() != value.DOUBLE && v.Kind() != value.COMPLEX && v.Kind() != value.LOGICAL && v.Kind() != value.CHAR {
		return value.Value{}, f.raise(n, &interrors.TypeMismatch{Op: "transpose", Kind: v.Kind().String()})
	}
	d := v.Dims()
	out := value.NewMatrix(d.Cols, d.Rows, outKind(v), nil, nil)
	conj := n.Str == "'"
	for c := 0; c < d.Cols; c++ {
		for r := 0; r < d.Rows; r++ {
			oi := out.Dims().Linear(c, r)
			if v.IsComplex() {
				re, im := v.GetComplex(d.Linear(r, c))
				if conj {
					im = -im
				}
				out = out.SetComplex(oi, re, im)
			} else {
				out = out.SetFloat64(oi, v.GetFloat64(d.Linear(r, c)))
			}
		}
	}
	return out, nil
}

// evalColon builds the numeric range a:b or a:s:b (spec §8's colon
// count formula), or, with no children, stands for a bare ':' which
// only the indexing engine understands.
func (f *frame) evalColon(n *ast.Node) (value.Value, *Exception) {
	if len(n.Children) == 0 {
		return value.Value{}, f.raise(n, &interrors.TypeMismatch{Op: "colon", Kind: "bare ':' used outside indexing"})
	}
	var lo, step, hi float64
	var exc *Exception
	if len(n.Children) == 2 {
		lo, exc = scalarOf(f, n.Children[0])
		if exc != nil {
			return value.Value{}, exc
		}
		step = 1
		hi, exc = scalarOf(f, n.Children[1])
		if exc != nil {
			return value.Value{}, exc
		}
	} else {
		lo, exc = scalarOf(f, n.Children[0])
		if exc != nil {
			return value.Value{}, exc
		}
		step, exc = scalarOf(f, n.Children[1])
		if exc != nil {
			return value.Value{}, exc
		}
		hi, exc = scalarOf(f, n.Children[2])
		if exc != nil {
			return value.Value{}, exc
		}
	}
	if step == 0 {
		return value.Value{}, f.raise(n, &interrors.DivideByZero{})
	}
	count := int(math.Floor((hi-lo)/step + 1e-10))
	if count < 0 {
		count = -1
	}
	count++
	if count < 0 {
		count = 0
	}
	out := value.NewMatrix(1, count, value.DOUBLE, nil, nil)
	for i := 0; i < count; i++ {
		out = out.SetFloat64(i, lo+float64(i)*step)
	}
	return out, nil
}

func scalarOf(f *frame, n *ast.Node) (float64, *Exception) {
	v, exc := f.eval(n)
	if exc != nil {
		return 0, exc
	}
	x, err := v.ToScalar()
	if err != nil {
		return 0, f.raise(n, err)
	}
	return x, nil
}

// evalMatrixLit concatenates each row's elements horizontally (spec
// §8: size([a,b]) = [rows(a), cols(a)+cols(b)]), then the rows
// vertically.
func (f *frame) evalMatrixLit(n *ast.Node) (value.Value, *Exception) {
	if len(n.Rows) == 0 {
		return value.Empty(), nil
	}
	var rowVals []value.Value
	for _, row := range n.Rows {
		rv, exc := f.hcatRow(n, row)
		if exc != nil {
			return value.Value{}, exc
		}
		rowVals = append(rowVals, rv)
	}
	return f.vcatRows(n, rowVals)
}

func (f *frame) hcatRow(n *ast.Node, row []*ast.Node) (value.Value, *Exception) {
	var vals []value.Value
	for _, e := range row {
		v, exc := f.eval(e)
		if exc != nil {
			return value.Value{}, exc
		}
		vals = append(vals, v)
	}
	return hconcat(f, n, vals)
}

func hconcat(f *frame, n *ast.Node, vals []value.Value) (value.Value, *Exception) {
	vals = dropEmpty(vals)
	if len(vals) == 0 {
		return value.Empty(), nil
	}
	kind := dominantKind(vals)
	rows := vals[0].Dims().Rows
	cols := 0
	for _, v := range vals {
		if v.Dims().Rows != rows {
			return value.Value{}, f.raise(n, &interrors.DimensionMismatch{Op: "horzcat", LeftDims: dimsString(vals[0]), RightDims: dimsString(v)})
		}
		cols += v.Dims().Cols
	}
	out := value.NewMatrix(rows, cols, kind, nil, nil)
	co := 0
	for _, v := range vals {
		vd := v.Dims()
		for c := 0; c < vd.Cols; c++ {
			for r := 0; r < rows; r++ {
				oi := out.Dims().Linear(r, co+c)
				if kind == value.COMPLEX {
					re, im := v.GetComplex(vd.Linear(r, c))
					out = out.SetComplex(oi, re, im)
				} else {
					out = out.SetFloat64(oi, v.GetFloat64(vd.Linear(r, c)))
				}
			}
		}
		co += vd.Cols
	}
	return out, nil
}

func (f *frame) vcatRows(n *ast.Node, rows []value.Value) (value.Value, *Exception) {
	rows = dropEmpty(rows)
	if len(rows) == 0 {
		return value.Empty(), nil
	}
	if len(rows) == 1 {
		return rows[0], nil
	}
	kind := dominantKind(rows)
	cols := rows[0].Dims().Cols
	totalRows := 0
	for _, v := range rows {
		if v.Dims().Cols != cols {
			return value.Value{}, f.raise(n, &interrors.DimensionMismatch{Op: "vertcat", LeftDims: dimsString(rows[0]), RightDims: dimsString(v)})
		}
		totalRows += v.Dims().Rows
	}
	out := value.NewMatrix(totalRows, cols, kind, nil, nil)
	ro := 0
	for _, v := range rows {
		vd := v.Dims()
		for r := 0; r < vd.Rows; r++ {
			for c := 0; c < cols; c++ {
				oi := out.Dims().Linear(ro+r, c)
				if kind == value.COMPLEX {
					re, im := v.GetComplex(vd.Linear(r, c))
					out = out.SetComplex(oi, re, im)
				} else {
					out = out.SetFloat64(oi, v.GetFloat64(vd.Linear(r, c)))
				}
			}
		}
		ro += vd.Rows
	}
	return out, nil
}

func dropEmpty(vals []value.Value) []value.Value {
	var out []value.Value
	for _, v := range vals {
		if !v.IsEmpty() {
			out = append(out, v)
		}
	}
	return out
}

func dominantKind(vals []value.Value) value.Kind {
	kind := value.DOUBLE
	allChar := true
	for _, v := range vals {
		if v.Kind() == value.COMPLEX {
			kind = value.COMPLEX
		}
		if v.Kind() != value.CHAR {
			allChar = false
		}
	}
	if allChar {
		return value.CHAR
	}
	return kind
}

func dimsString(v value.Value) string {
	d := v.Dims()
	return strconv.Itoa(d.Rows) + "x" + strconv.Itoa(d.Cols)
}

func (f *frame) evalCellLit(n *ast.Node) (value.Value, *Exception) {
	if len(n.Rows) == 0 {
		return value.NewCell(0, 0), nil
	}
	rows := len(n.Rows)
	cols := len(n.Rows[0])
	out := value.NewCell(rows, cols)
	for r, row := range n.Rows {
		for c, e := range row {
			v, exc := f.eval(e)
			if exc != nil {
				return value.Value{}, exc
			}
			out = out.CellSet(out.Dims().Linear(r, c), v)
		}
	}
	return out, nil
}

func (f *frame) evalAnonFunc(n *ast.Node) value.Value {
	cl := &closure{params: n.Params, body: n.Children[0], env: f.env.Snapshot()}
	name := f.it.registerClosure(cl)
	return value.NewFuncHandle(name)
}

func (f *frame) evalFieldAccess(n *ast.Node) (value.Value, *Exception) {
	target, exc := f.eval(n.Children[0])
	if exc != nil {
		return value.Value{}, exc
	}
	if target.Kind() != value.STRUCT {
		return value.Value{}, f.raise(n, &interrors.TypeMismatch{Op: "field access", Kind: target.Kind().String()})
	}
	fv, ok := target.Field(n.Str)
	if !ok {
		return value.Value{}, f.raise(n, &interrors.Undefined{Name: n.Str})
	}
	return fv, nil
}
