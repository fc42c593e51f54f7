package interp

import (
	"math"
	"sort"

	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/value"
)

// coreBuiltins is the fixed set spec §6 names as the core's own
// responsibility, distinct from anything a standard-library
// collaborator registers into the Registry. These need direct access
// to the calling frame's environment (clear/who/whos/exist), which the
// Registry's Func signature does not carry, so they are dispatched
// here rather than through Registry.Func.
var coreBuiltins = map[string]bool{
	"clear": true, "who": true, "whos": true, "exist": true, "class": true,
}

// coreConstants are the zero-argument identifiers spec §6 lists; they
// resolve like a call with no arguments when the name has no local
// binding (grounded on MATLAB's own "pi is a function, not a
// keyword" behaviour).
var coreConstants = map[string]func() value.Value{
	"pi":    func() value.Value { return value.NewScalar(math.Pi) },
	"eps":   func() value.Value { return value.NewScalar(2.220446049250313e-16) },
	"inf":   func() value.Value { return value.NewScalar(math.Inf(1)) },
	"Inf":   func() value.Value { return value.NewScalar(math.Inf(1)) },
	"nan":   func() value.Value { return value.NewScalar(math.NaN()) },
	"NaN":   func() value.Value { return value.NewScalar(math.NaN()) },
	"true":  func() value.Value { return value.NewLogicalScalar(true) },
	"false": func() value.Value { return value.NewLogicalScalar(false) },
	"i":     func() value.Value { return value.NewComplexScalar(0, 1) },
	"j":     func() value.Value { return value.NewComplexScalar(0, 1) },
}

// callCoreBuiltin executes one of coreBuiltins. argNodes are the
// unevaluated argument expressions (exist and class take exactly one,
// clear takes any number of names, who/whos ignore them).
func (f *frame) callCoreBuiltin(n *ast.Node, name string, argNodes []*ast.Node) ([]value.Value, *Exception) {
	switch name {
	case "clear":
		if len(argNodes) == 0 {
			f.env.Clear()
			return nil, nil
		}
		for _, a := range argNodes {
			nm, exc := f.builtinNameArg(n, a)
			if exc != nil {
				return nil, exc
			}
			f.env.ClearName(nm)
		}
		return nil, nil
	case "who", "whos":
		names := f.env.Names()
		sort.Strings(names)
		cell := value.NewCell(1, len(names))
		for i, nm := range names {
			cell = cell.CellSet(i, value.NewString(nm))
		}
		return []value.Value{cell}, nil
	case "exist":
		if len(argNodes) != 1 {
			return nil, f.raise(n, &interrors.ArityMismatch{Name: "exist", Want: 1, Got: len(argNodes)})
		}
		nm, exc := f.builtinNameArg(n, argNodes[0])
		if exc != nil {
			return nil, exc
		}
		switch {
		case f.env.Has(nm):
			return []value.Value{value.NewScalar(1)}, nil
		case f.it.funcs[nm] != nil:
			return []value.Value{value.NewScalar(2)}, nil
		case f.it.Registry.HasFunc(nm):
			return []value.Value{value.NewScalar(5)}, nil
		default:
			return []value.Value{value.NewScalar(0)}, nil
		}
	case "class":
		if len(argNodes) != 1 {
			return nil, f.raise(n, &interrors.ArityMismatch{Name: "class", Want: 1, Got: len(argNodes)})
		}
		v, exc := f.eval(argNodes[0])
		if exc != nil {
			return nil, exc
		}
		return []value.Value{value.NewString(classOf(v))}, nil
	default:
		return nil, f.raise(n, &interrors.Undefined{Name: name})
	}
}

// builtinNameArg resolves a name argument to clear/exist: an identifier
// that is not bound names itself (`clear x`-style bareword arguments are
// not supported, since this parser has no MATLAB command syntax), and
// any other expression must evaluate to a CHAR value naming the
// variable (`exist('x')`).
func (f *frame) builtinNameArg(n *ast.Node, a *ast.Node) (string, *Exception) {
	if a.Kind == ast.Ident && !f.env.Has(a.Str) {
		return a.Str, nil
	}
	v, exc := f.eval(a)
	if exc != nil {
		return "", exc
	}
	if !v.IsChar() {
		return "", f.raise(n, &interrors.TypeMismatch{Op: "name argument", Kind: v.Kind().String()})
	}
	return v.String(), nil
}

func classOf(v value.Value) string {
	switch v.Kind() {
	case value.DOUBLE:
		return "double"
	case value.COMPLEX:
		return "double" // MATLAB reports complex doubles as class "double"
	case value.LOGICAL:
		return "logical"
	case value.CHAR:
		return "char"
	case value.CELL:
		return "cell"
	case value.STRUCT:
		return "struct"
	case value.FUNC_HANDLE:
		return "function_handle"
	default:
		return "double"
	}
}
