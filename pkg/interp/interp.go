// Package interp implements the tree-walking evaluator spec §4.6
// describes: it executes an *ast.Node against an *env.Env, dispatches
// operators and functions through a *registry.Registry, and reports
// errors as *Exception values distinct from the break/continue/return
// control-flow signal (spec §4.5).
package interp

import (
	"fmt"
	"io"
	"os"

	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/diag"
	"mlab.dev/interp/pkg/env"
	"mlab.dev/interp/pkg/interplog"
	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/mconfig"
	"mlab.dev/interp/pkg/registry"
	"mlab.dev/interp/pkg/value"
)

var logger = interplog.GetLogger("[interp] ")

// Display is the installable output sink spec §4.6 calls for: every
// unsuppressed statement's result is handed to Display.Show instead
// of the evaluator hard-coding a format (grounded on the teacher's
// port/sink separation between evaluation and output).
type Display interface {
	Show(name string, v value.Value)
}

// WriterDisplay is the default Display, printing "name = value" to an
// io.Writer using the spec §4.6 per-kind display format.
type WriterDisplay struct{ W io.Writer }

func (d WriterDisplay) Show(name string, v value.Value) {
	fmt.Fprintln(d.W, FormatDisplay(name, v))
}

// funcDef is a user-defined function as registered by a FuncDef
// statement (spec §4.6).
type funcDef struct {
	node *ast.Node
}

// closure is an anonymous function value: the captured AST body plus
// a frozen environment snapshot (spec §4.6, grounded on
// eval.Closure.captured).
type closure struct {
	params []string
	body   *ast.Node
	env    *env.Env
}

// Interp is the evaluator. One Interp corresponds to one top-level
// program/session; Run may be called repeatedly against the same
// instance to share global state across statements (a REPL's usual
// mode of operation).
type Interp struct {
	Registry *registry.Registry
	Globals  *env.Globals
	Settings mconfig.Settings
	Display  Display

	name  string
	src   string
	funcs map[string]*funcDef

	closures   map[string]*closure
	closureSeq int

	depth int
}

// New returns an Interp ready to run programs, wired to reg for
// operator/function dispatch.
func New(reg *registry.Registry) *Interp {
	return &Interp{
		Registry: reg,
		Globals:  env.NewGlobals(),
		Settings: mconfig.Default(),
		Display:  WriterDisplay{W: os.Stdout},
		funcs:    map[string]*funcDef{},
		closures: map[string]*closure{},
	}
}

// endStack tracks the bound of the array currently being indexed, so
// nested `end` expressions resolve to the innermost enclosing index
// operation (spec §9: "a dedicated evaluator-side stack, not a
// property of the environment").
type endStack struct {
	frames []int
}

func (s *endStack) push(n int) { s.frames = append(s.frames, n) }
func (s *endStack) pop()       { s.frames = s.frames[:len(s.frames)-1] }
func (s *endStack) top() (int, bool) {
	if len(s.frames) == 0 {
		return 0, false
	}
	return s.frames[len(s.frames)-1], true
}

// frame carries the per-call state threaded through evaluation: the
// local environment, the end-stack, and the source context for error
// reporting.
type frame struct {
	it   *Interp
	env  *env.Env
	ends endStack
}

func (f *frame) ctx(n *ast.Node) *diag.Context {
	return diag.NewContext(f.it.name, f.it.src, n)
}

// raise builds an *Exception from err, attaching the current call
// site to its trace, and returns it for the caller to propagate
// (spec §9: flow and errors are a returned result, not a panic).
func (f *frame) raise(n *ast.Node, err error) *Exception {
	exc, ok := err.(*Exception)
	if !ok {
		exc = NewException(err)
	}
	exc.Trace = exc.Trace.Push(f.ctx(n))
	return exc
}

// RunResult is Run's outcome: the program ran to completion, or was
// interrupted by an uncaught Exception.
type RunResult struct {
	Err error // nil, or an *Exception from an uncaught error
}

// Run parses nothing itself; it walks an already-parsed program
// (spec §4.6's evaluator entry point). name/src identify the source
// for diagnostics.
func (it *Interp) Run(name, src string, prog *ast.Node) RunResult {
	it.name, it.src = name, src
	f := &frame{it: it, env: env.New(it.Globals)}
	// The top-level scope starts from the global table and writes its
	// bindings back to it, so results are read through it.Globals and a
	// later Run sees the variables of an earlier one.
	for _, nm := range it.Globals.Names() {
		if v, ok := it.Globals.Get(nm); ok {
			f.env.Set(nm, v)
		}
	}
	it.hoistFuncDefs(prog)
	exc := f.execBlock(prog)
	for _, nm := range f.env.Names() {
		if v, ok := f.env.Get(nm); ok {
			it.Globals.Set(nm, v)
		}
	}
	if exc != nil {
		if _, ok := exc.Reason.(Flow); !ok {
			return RunResult{Err: exc}
		}
		// a stray top-level break/continue/return is silently absorbed
	}
	return RunResult{}
}

// hoistFuncDefs registers every top-level `function` statement before
// executing the block (MATLAB functions are visible regardless of
// textual order within the same file).
func (it *Interp) hoistFuncDefs(block *ast.Node) {
	for _, stmt := range block.Children {
		if stmt.Kind == ast.FuncDef {
			it.funcs[stmt.Str] = &funcDef{node: stmt}
		}
	}
}

func (f *frame) execBlock(block *ast.Node) *Exception {
	for _, stmt := range block.Children {
		if exc := f.execStmt(stmt); exc != nil {
			return exc
		}
	}
	return nil
}

func (f *frame) execStmt(n *ast.Node) *Exception {
	switch n.Kind {
	case ast.FuncDef:
		// Already hoisted; nested function definitions are not
		// evaluated as statements.
		return nil
	case ast.ExprStmt:
		v, exc := f.eval(n.Children[0])
		if exc != nil {
			return exc
		}
		if !n.Suppress {
			f.it.Display.Show(displayName(n.Children[0]), v)
		}
		f.env.Set("ans", v)
		return nil
	case ast.Assign:
		return f.execAssign(n)
	case ast.MultiAssign:
		return f.execMultiAssign(n)
	case ast.DeleteAssign:
		return f.execDeleteAssign(n)
	case ast.If:
		return f.execIf(n)
	case ast.For:
		return f.execFor(n)
	case ast.While:
		return f.execWhile(n)
	case ast.Switch:
		return f.execSwitch(n)
	case ast.TryCatch:
		return f.execTryCatch(n)
	case ast.Break:
		return flowSignal(FlowBreak)
	case ast.Continue:
		return flowSignal(FlowContinue)
	case ast.Return:
		return flowSignal(FlowReturn)
	case ast.GlobalDecl:
		for _, name := range n.Params {
			f.env.DeclareGlobal(name)
		}
		return nil
	case ast.PersistentDecl:
		for _, name := range n.Params {
			f.env.DeclareGlobal(name) // DESIGN.md: persistent backed by the same Globals table
		}
		return nil
	default:
		return f.raise(n, fmt.Errorf("unsupported statement kind %v", n.Kind))
	}
}

func displayName(lhs *ast.Node) string {
	if lhs.Kind == ast.Ident {
		return lhs.Str
	}
	return "ans"
}

func (f *frame) execIf(n *ast.Node) *Exception {
	for _, b := range n.Branches {
		cond, exc := f.eval(b.Cond)
		if exc != nil {
			return exc
		}
		ok, err := cond.ToBool()
		if err != nil {
			return f.raise(b.Cond, err)
		}
		if ok {
			return f.execBlock(b.Body)
		}
	}
	if n.Else != nil {
		return f.execBlock(n.Else)
	}
	return nil
}

func (f *frame) execFor(n *ast.Node) *Exception {
	target, exc := f.eval(n.Branches[0].Cond)
	if exc != nil {
		return exc
	}
	body := n.Branches[0].Body
	cols := target.Dims().Cols
	if target.Dims().Rows == 0 {
		cols = 0
	}
	for c := 0; c < cols; c++ {
		col := columnOf(target, c)
		f.env.Set(n.Str, col)
		stop, exc := f.runLoopBody(body)
		if exc != nil {
			return exc
		}
		if stop {
			return nil
		}
	}
	return nil
}

// runLoopBody executes body once, absorbing a break/continue signal
// raised by a nested statement; it reports whether the loop should
// stop (break). Anything else (return, a real error) propagates.
func (f *frame) runLoopBody(body *ast.Node) (stop bool, exc *Exception) {
	exc = f.execBlock(body)
	if exc == nil {
		return false, nil
	}
	if fl, ok := exc.Reason.(Flow); ok {
		switch fl {
		case FlowBreak:
			return true, nil
		case FlowContinue:
			return false, nil
		}
	}
	return false, exc
}

// columnOf returns column c of v, preserving v's kind: a CELL target
// iterates cell-wise and a CHAR/LOGICAL/COMPLEX target keeps its kind
// (spec §4.5's `for` loop iterates the columns of whatever array it is
// given, not just DOUBLE matrices).
func columnOf(v value.Value, c int) value.Value {
	d := v.Dims()
	if v.IsCell() {
		out := value.NewCell(d.Rows, 1)
		for r := 0; r < d.Rows; r++ {
			out = out.CellSet(r, v.CellGet(d.Linear(r, c)))
		}
		return out
	}
	return gatherSubscript(v, allIndices(d.Rows), []int{c})
}

func (f *frame) execWhile(n *ast.Node) *Exception {
	for {
		cond, exc := f.eval(n.Branches[0].Cond)
		if exc != nil {
			return exc
		}
		ok, err := cond.ToBool()
		if err != nil {
			return f.raise(n.Branches[0].Cond, err)
		}
		if !ok {
			return nil
		}
		stop, exc := f.runLoopBody(n.Branches[0].Body)
		if exc != nil {
			return exc
		}
		if stop {
			return nil
		}
	}
}

func (f *frame) execSwitch(n *ast.Node) *Exception {
	selector, exc := f.eval(n.Children[0])
	if exc != nil {
		return exc
	}
	for _, b := range n.Branches {
		caseVal, exc := f.eval(b.Cond)
		if exc != nil {
			return exc
		}
		if caseVal.IsCell() {
			for i := 0; i < caseVal.NumEl(); i++ {
				if value.Equal(selector, caseVal.CellGet(i)) {
					return f.execBlock(b.Body)
				}
			}
			continue
		}
		if value.Equal(selector, caseVal) {
			return f.execBlock(b.Body)
		}
	}
	if n.Else != nil {
		return f.execBlock(n.Else)
	}
	return nil
}

func (f *frame) execTryCatch(n *ast.Node) *Exception {
	body := n.Children[0]
	exc := f.execBlock(body)
	if exc == nil {
		return nil
	}
	if _, ok := exc.Reason.(Flow); ok {
		return exc // break/continue/return pass through a try block untouched
	}
	if n.CatchVar != "" {
		f.env.Set(n.CatchVar, errAsStruct(exc))
	}
	if n.Catch != nil {
		return f.execBlock(n.Catch)
	}
	return nil
}

// errAsStruct builds the MException-like struct try/catch binds the
// caught error to (spec §4.5's "struct with message/identifier
// fields").
func errAsStruct(exc *Exception) value.Value {
	s := value.NewStruct()
	s = s.SetField("message", value.NewString(exc.Reason.Error()))
	s = s.SetField("identifier", value.NewString(exc.Identifier))
	return s
}

func (f *frame) execAssign(n *ast.Node) *Exception {
	lhs, rhs := n.Children[0], n.Children[1]
	v, exc := f.eval(rhs)
	if exc != nil {
		return exc
	}
	return f.assignTo(lhs, v.Share())
}

func (f *frame) execDeleteAssign(n *ast.Node) *Exception {
	target := n.Children[0]
	return f.deleteIndexed(target)
}

func (f *frame) execMultiAssign(n *ast.Node) *Exception {
	call := n.Children[0]
	vals, exc := f.evalCallMulti(call, len(n.Returns))
	if exc != nil {
		return exc
	}
	for i, name := range n.Returns {
		if name == "~" {
			continue
		}
		if i < len(vals) {
			f.env.Set(name, vals[i])
		}
	}
	return nil
}

// recursionCheck reports a RecursionExceeded *Exception once it
// depth exceeds Settings.MaxRecursionDepth, called at every user
// function/closure entry point.
func (it *Interp) recursionCheck(n *ast.Node, fr *frame) *Exception {
	if it.depth > it.Settings.MaxRecursionDepth/2 && it.depth <= it.Settings.MaxRecursionDepth {
		logger.Printf("call depth %d approaching limit %d", it.depth, it.Settings.MaxRecursionDepth)
	}
	if it.depth > it.Settings.MaxRecursionDepth {
		return fr.raise(n, &interrors.RecursionExceeded{Max: it.Settings.MaxRecursionDepth})
	}
	return nil
}
