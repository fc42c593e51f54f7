// Package registry holds the three injectable dispatch tables spec
// §4.8 describes: binary operators, unary operators, and named
// functions. It also provides a reflection-based adapter, grounded on
// the teacher's NewGoFn, that lets a plain Go function be registered
// as a named function without hand-writing value.Value plumbing.
package registry

import (
	"fmt"
	"reflect"

	"mlab.dev/interp/pkg/interrors"
	"mlab.dev/interp/pkg/value"
)

// BinaryOp implements a binary operator such as "+" or "==".
type BinaryOp func(a, b value.Value) (value.Value, error)

// UnaryOp implements a unary operator such as unary "-" or "~".
type UnaryOp func(a value.Value) (value.Value, error)

// Func implements a named, possibly multi-valued function. nargout
// is the number of output arguments the call site requested (spec
// §4.6's multi-value assignment); implementations that only ever
// return one value can ignore it.
type Func func(args []value.Value, nargout int) ([]value.Value, error)

// Registry is the evaluator's injected collaborator: the "standard
// library" of spec §3.5/§4.8, supplied to the interpreter rather than
// hard-wired into it.
type Registry struct {
	binary map[string]BinaryOp
	unary  map[string]UnaryOp
	funcs  map[string]Func
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		binary: map[string]BinaryOp{},
		unary:  map[string]UnaryOp{},
		funcs:  map[string]Func{},
	}
}

func (r *Registry) RegisterBinary(op string, fn BinaryOp) { r.binary[op] = fn }
func (r *Registry) RegisterUnary(op string, fn UnaryOp)   { r.unary[op] = fn }
func (r *Registry) RegisterFunc(name string, fn Func)     { r.funcs[name] = fn }

// RegisterGoFunc wraps a plain Go function with NewGoFunc and
// registers it as a named function.
func (r *Registry) RegisterGoFunc(name string, impl interface{}) {
	r.RegisterFunc(name, NewGoFunc(name, impl))
}

func (r *Registry) Binary(op string) (BinaryOp, bool) {
	fn, ok := r.binary[op]
	return fn, ok
}

func (r *Registry) Unary(op string) (UnaryOp, bool) {
	fn, ok := r.unary[op]
	return fn, ok
}

func (r *Registry) Func(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// HasFunc reports whether name is a registered function, used by the
// evaluator to distinguish a bare identifier call from a variable
// reference (spec §4.6).
func (r *Registry) HasFunc(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// errorType lets NewGoFunc recognise a trailing error return, exactly
// as the teacher's go_fn.go does for its Go-function adapter.
var errorType = reflect.TypeOf((*error)(nil)).Elem()
var float64Type = reflect.TypeOf(float64(0))

// NewGoFunc wraps impl, a function over float64 parameters (optionally
// ending in a variadic ...float64) and float64 results with an
// optional trailing error, into a Func operating on value.Value.
// Scalar parameters are read via Value.ToScalar; the variadic
// parameter receives every remaining argument. A result of any other
// type, such as []float64, is reported as an error when called. This is the reflection
// adapter the teacher's NewGoFn performs for its richer value model,
// narrowed to the numeric scalar functions spec §6 calls for (pi,
// sqrt-like math helpers, and similar).
func NewGoFunc(name string, impl interface{}) Func {
	implType := reflect.TypeOf(impl)
	implVal := reflect.ValueOf(impl)

	variadic := implType.IsVariadic()
	numIn := implType.NumIn()
	fixedIn := numIn
	if variadic {
		fixedIn = numIn - 1
	}

	return func(args []value.Value, nargout int) ([]value.Value, error) {
		if variadic {
			if len(args) < fixedIn {
				return nil, &interrors.ArityMismatch{Name: name, Want: fixedIn, Got: len(args)}
			}
		} else if len(args) != numIn {
			return nil, &interrors.ArityMismatch{Name: name, Want: numIn, Got: len(args)}
		}

		in := make([]reflect.Value, 0, len(args))
		for i := 0; i < fixedIn; i++ {
			x, err := args[i].ToScalar()
			if err != nil {
				return nil, err
			}
			in = append(in, reflect.ValueOf(x))
		}
		if variadic {
			for i := fixedIn; i < len(args); i++ {
				x, err := args[i].ToScalar()
				if err != nil {
					return nil, err
				}
				in = append(in, reflect.ValueOf(x))
			}
		}

		out := implVal.Call(in)
		return convertGoFuncResults(name, out)
	}
}

func convertGoFuncResults(name string, out []reflect.Value) ([]value.Value, error) {
	if len(out) == 0 {
		return nil, nil
	}
	last := out[len(out)-1]
	if last.Type() == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	results := make([]value.Value, 0, len(out))
	for _, o := range out {
		switch o.Type() {
		case float64Type:
			results = append(results, value.NewScalar(o.Float()))
		default:
			return nil, fmt.Errorf("%s: unsupported Go return type %s", name, o.Type())
		}
	}
	return results, nil
}
