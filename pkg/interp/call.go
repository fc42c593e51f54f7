package interp

import (
	"fmt"

	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/env"
	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/value"
)

// evalCallMulti resolves a Call node: indexing into a bound variable,
// a core builtin, a user-defined function, a registered function, or
// a call through a function-handle value (spec §4.6's unified
// call/index form).
func (f *frame) evalCallMulti(n *ast.Node, nargout int) ([]value.Value, *Exception) {
	callee, argNodes := n.Children[0], n.Children[1:]

	if callee.Kind == ast.Ident {
		name := callee.Str
		if f.env.Has(name) {
			v, exc := f.mustGet(n, name)
			if exc != nil {
				return nil, exc
			}
			if v.IsFuncHandle() {
				return f.callHandle(n, v, argNodes, nargout)
			}
			rv, exc := f.indexRead(n, v, argNodes)
			if exc != nil {
				return nil, exc
			}
			return []value.Value{rv}, nil
		}
		if coreBuiltins[name] {
			return f.callCoreBuiltin(n, name, argNodes)
		}
		if _, ok := f.it.funcs[name]; ok {
			return f.callUserFunc(n, name, argNodes, nargout)
		}
		if f.it.Registry.HasFunc(name) {
			return f.callRegistryFunc(n, name, argNodes, nargout)
		}
		if fn, ok := coreConstants[name]; ok {
			if len(argNodes) != 0 {
				return nil, f.raise(n, &interrors.ArityMismatch{Name: name, Want: 0, Got: len(argNodes)})
			}
			return []value.Value{fn()}, nil
		}
		return nil, f.raise(n, &interrors.Undefined{Name: name})
	}

	v, exc := f.eval(callee)
	if exc != nil {
		return nil, exc
	}
	if v.IsFuncHandle() {
		return f.callHandle(n, v, argNodes, nargout)
	}
	rv, exc := f.indexRead(n, v, argNodes)
	if exc != nil {
		return nil, exc
	}
	return []value.Value{rv}, nil
}

func (f *frame) mustGet(n *ast.Node, name string) (value.Value, *Exception) {
	v, ok := f.env.Get(name)
	if !ok {
		return value.Value{}, f.raise(n, &interrors.Undefined{Name: name})
	}
	return v, nil
}

func (f *frame) evalArgs(argNodes []*ast.Node) ([]value.Value, *Exception) {
	args := make([]value.Value, len(argNodes))
	for i, a := range argNodes {
		v, exc := f.eval(a)
		if exc != nil {
			return nil, exc
		}
		args[i] = v
	}
	return args, nil
}

func (f *frame) callRegistryFunc(n *ast.Node, name string, argNodes []*ast.Node, nargout int) ([]value.Value, *Exception) {
	args, exc := f.evalArgs(argNodes)
	if exc != nil {
		return nil, exc
	}
	fn, _ := f.it.Registry.Func(name)
	out, err := fn(args, nargout)
	if err != nil {
		return nil, f.raise(n, err)
	}
	return out, nil
}

func (f *frame) callHandle(n *ast.Node, v value.Value, argNodes []*ast.Node, nargout int) ([]value.Value, *Exception) {
	name := v.FuncName()
	if cl, ok := f.it.closures[name]; ok {
		return f.callClosure(n, cl, argNodes, nargout)
	}
	if _, ok := f.it.funcs[name]; ok {
		return f.callUserFunc(n, name, argNodes, nargout)
	}
	if f.it.Registry.HasFunc(name) {
		return f.callRegistryFunc(n, name, argNodes, nargout)
	}
	return nil, f.raise(n, &interrors.Undefined{Name: name})
}

func (f *frame) callClosure(n *ast.Node, cl *closure, argNodes []*ast.Node, nargout int) ([]value.Value, *Exception) {
	args, exc := f.evalArgs(argNodes)
	if exc != nil {
		return nil, exc
	}
	if len(args) != len(cl.params) {
		return nil, f.raise(n, &interrors.ArityMismatch{Name: "anonymous function", Want: len(cl.params), Got: len(args)})
	}
	callEnv := cl.env.Snapshot()
	for i, p := range cl.params {
		callEnv.Set(p, args[i])
	}
	sub := &frame{it: f.it, env: callEnv}

	f.it.depth++
	defer func() { f.it.depth-- }()
	if exc := f.it.recursionCheck(n, f); exc != nil {
		return nil, exc
	}

	result, exc := sub.evalAsExpr(cl.body)
	if exc != nil {
		return nil, exc
	}
	_ = nargout
	return []value.Value{result}, nil
}

// evalAsExpr evaluates body as a single expression, the shape an
// anonymous function's body always takes (spec §4.6).
func (f *frame) evalAsExpr(body *ast.Node) (value.Value, *Exception) {
	return f.eval(body)
}

// callUserFunc runs a `function` definition: a fresh scope (MATLAB
// functions do not capture their caller's locals), parameters bound
// positionally, and the declared Returns names read back out after
// the body runs to completion or hits `return` (spec §4.6).
func (f *frame) callUserFunc(n *ast.Node, name string, argNodes []*ast.Node, nargout int) ([]value.Value, *Exception) {
	def := f.it.funcs[name]
	args, exc := f.evalArgs(argNodes)
	if exc != nil {
		return nil, exc
	}
	if len(args) > len(def.node.Params) {
		return nil, f.raise(n, &interrors.ArityMismatch{Name: name, Want: len(def.node.Params), Got: len(args)})
	}

	f.it.depth++
	defer func() { f.it.depth-- }()
	if exc := f.it.recursionCheck(n, f); exc != nil {
		return nil, exc
	}

	callEnv := env.New(f.it.Globals)
	for i, p := range def.node.Params {
		if i < len(args) {
			callEnv.Set(p, args[i])
		}
	}
	sub := &frame{it: f.it, env: callEnv}

	if exc := sub.execBlock(def.node.Children[0]); exc != nil {
		if fl, ok := exc.Reason.(Flow); !ok || fl != FlowReturn {
			return nil, exc
		}
	}

	if len(def.node.Returns) == 0 {
		return nil, nil
	}
	out := make([]value.Value, 0, len(def.node.Returns))
	limit := len(def.node.Returns)
	if nargout > 0 && nargout < limit {
		limit = nargout
	}
	for i := 0; i < limit; i++ {
		v, ok := callEnv.Get(def.node.Returns[i])
		if !ok {
			v = value.Empty()
		}
		out = append(out, v)
	}
	return out, nil
}

// evalCellIndexMulti implements `c{...}` (spec §4.4): a single
// element selects one value; multiple elements yield the
// comma-separated list MATLAB calls a "cs-list", consumed positionally
// by multi-assignment.
func (f *frame) evalCellIndexMulti(n *ast.Node, nargout int) ([]value.Value, *Exception) {
	target, argNodes := n.Children[0], n.Children[1:]
	v, exc := f.mustGet(n, targetName(target))
	if exc != nil {
		return nil, exc
	}
	if !v.IsCell() {
		return nil, f.raise(n, &interrors.TypeMismatch{Op: "cell index", Kind: v.Kind().String()})
	}
	d := v.Dims()
	switch len(argNodes) {
	case 1:
		idx, isColon, exc := f.resolveIndexArg(n, argNodes[0], d.NumEl())
		if exc != nil {
			return nil, exc
		}
		if isColon {
			idx = allIndices(d.NumEl())
		} else if exc := checkRange(f, n, "linear", idx, d.NumEl()); exc != nil {
			return nil, exc
		}
		out := make([]value.Value, len(idx))
		for i, li := range idx {
			out[i] = v.CellGet(li)
		}
		return out, nil
	case 2:
		ridx, rcolon, exc := f.resolveIndexArg(n, argNodes[0], d.Rows)
		if exc != nil {
			return nil, exc
		}
		cidx, ccolon, exc := f.resolveIndexArg(n, argNodes[1], d.Cols)
		if exc != nil {
			return nil, exc
		}
		if rcolon {
			ridx = allIndices(d.Rows)
		}
		if ccolon {
			cidx = allIndices(d.Cols)
		}
		var out []value.Value
		for _, c := range cidx {
			for _, r := range ridx {
				out = append(out, v.CellGet(d.Linear(r, c)))
			}
		}
		return out, nil
	default:
		return nil, f.raise(n, &interrors.TypeMismatch{Op: "cell index", Kind: "unsupported arity"})
	}
}

func targetName(n *ast.Node) string {
	if n.Kind == ast.Ident {
		return n.Str
	}
	return ""
}

// registerClosure assigns a synthetic registry-style name to cl
// (spec §4.6's "anonymous functions register under a synthesised
// name") and remembers it for later calls through its FUNC_HANDLE
// value.
func (it *Interp) registerClosure(cl *closure) string {
	it.closureSeq++
	name := fmt.Sprintf("@anon%d", it.closureSeq)
	it.closures[name] = cl
	return name
}
