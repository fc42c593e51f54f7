// Package env implements the variable scopes spec §3.5/§4.7 describes:
// an ordered set of local bindings per function call, a global
// binding table shared by every scope that declares into it, and the
// frozen-snapshot capture closures need.
//
// The split mirrors the teacher's Frame.local/Frame.up namespaces
// (pkg/eval/closure.go): a function call gets its own local slots,
// and names declared global/persistent resolve through to a shared
// table instead.
package env

import "mlab.dev/interp/pkg/value"

// Globals is the single shared table backing both `global` and
// `persistent` declarations (DESIGN.md's Open Question decision: one
// storage mechanism for both, since spec.md does not require them to
// be distinguished at the storage layer).
type Globals struct {
	names []string
	index map[string]int
	vals  []value.Value
}

// NewGlobals returns an empty global table.
func NewGlobals() *Globals {
	return &Globals{index: map[string]int{}}
}

// Get returns the value bound to name in the global table.
func (g *Globals) Get(name string) (value.Value, bool) {
	i, ok := g.index[name]
	if !ok {
		return value.Value{}, false
	}
	return g.vals[i], true
}

// Set binds name to v in the global table, creating the slot if new.
func (g *Globals) Set(name string, v value.Value) {
	if i, ok := g.index[name]; ok {
		g.vals[i] = v
		return
	}
	g.index[name] = len(g.names)
	g.names = append(g.names, name)
	g.vals = append(g.vals, v)
}

// Has reports whether name has a binding in the global table.
func (g *Globals) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Names returns the global table's bound names, in declaration order
// (used by Interp.Run to seed the top-level scope).
func (g *Globals) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Env is one function call's local scope: an ordered set of local
// bindings, the subset of local names declared `global` or
// `persistent` (which read and write through to globals instead), and
// a pointer to the shared global table (spec §3.5).
type Env struct {
	names   []string
	index   map[string]int
	vals    []value.Value
	isGlobl map[string]bool
	globals *Globals
}

// New returns a fresh local scope backed by globals.
func New(globals *Globals) *Env {
	return &Env{index: map[string]int{}, isGlobl: map[string]bool{}, globals: globals}
}

// DeclareGlobal marks name as resolving through to the global table
// for the remainder of this scope's lifetime (spec §4.7's `global`/
// `persistent` statement). A name already holding a local binding is
// detached from it; reads and writes from now on go to globals.
func (e *Env) DeclareGlobal(name string) {
	e.isGlobl[name] = true
	if !e.globals.Has(name) {
		e.globals.Set(name, value.Empty())
	}
}

// Get resolves name: local binding first, unless the name was
// declared global in this scope, in which case it resolves through
// Globals (spec §4.7's read order).
func (e *Env) Get(name string) (value.Value, bool) {
	if e.isGlobl[name] {
		return e.globals.Get(name)
	}
	if i, ok := e.index[name]; ok {
		return e.vals[i], true
	}
	return value.Value{}, false
}

// Set binds name in the appropriate scope: globals if declared
// global in this scope, otherwise a local slot (created if new).
func (e *Env) Set(name string, v value.Value) {
	if e.isGlobl[name] {
		e.globals.Set(name, v)
		return
	}
	if i, ok := e.index[name]; ok {
		e.vals[i] = v
		return
	}
	e.index[name] = len(e.names)
	e.names = append(e.names, name)
	e.vals = append(e.vals, v)
}

// Has reports whether name is bound, locally or (if declared global)
// in the global table.
func (e *Env) Has(name string) bool {
	if e.isGlobl[name] {
		return e.globals.Has(name)
	}
	_, ok := e.index[name]
	return ok
}

// Clear removes every local binding (spec §6's `clear` built-in with
// no arguments); global declarations survive since they live in the
// shared table.
func (e *Env) Clear() {
	e.names = nil
	e.index = map[string]int{}
	e.vals = nil
}

// ClearName removes a single local binding, or the global's if name
// was declared global (spec §6's `clear name`).
func (e *Env) ClearName(name string) {
	if e.isGlobl[name] {
		g := e.globals
		if i, ok := g.index[name]; ok {
			delete(g.index, name)
			g.names = append(g.names[:i], g.names[i+1:]...)
			g.vals = append(g.vals[:i], g.vals[i+1:]...)
			for n, idx := range g.index {
				if idx > i {
					g.index[n] = idx - 1
				}
			}
		}
		delete(e.isGlobl, name)
		return
	}
	i, ok := e.index[name]
	if !ok {
		return
	}
	delete(e.index, name)
	e.names = append(e.names[:i], e.names[i+1:]...)
	e.vals = append(e.vals[:i], e.vals[i+1:]...)
	for n, idx := range e.index {
		if idx > i {
			e.index[n] = idx - 1
		}
	}
}

// Names returns the scope's local variable names in declaration
// order (spec §6's `who`/`whos`).
func (e *Env) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Globals returns the scope's shared global table.
func (e *Env) Globals() *Globals { return e.globals }

// Snapshot captures a frozen copy of e's current local bindings for
// use as a closure's captured environment (spec §4.6's anonymous
// function semantics: "the closure's captured environment is a frozen
// snapshot... taken at definition time"). The snapshot never descends
// into Globals itself — global names are resolved live through the
// shared table, stopping the capture "before the global root" as the
// spec requires.
func (e *Env) Snapshot() *Env {
	s := &Env{
		index:   make(map[string]int, len(e.index)),
		isGlobl: make(map[string]bool, len(e.isGlobl)),
		globals: e.globals,
	}
	s.names = append(s.names, e.names...)
	s.vals = append(s.vals, e.vals...)
	for k, v := range e.index {
		s.index[k] = v
	}
	for k, v := range e.isGlobl {
		s.isGlobl[k] = v
	}
	return s
}
