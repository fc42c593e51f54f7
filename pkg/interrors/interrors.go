// Package interrors collects the concrete error kinds spec §7
// enumerates for the runtime (as opposed to the lex/parse errors
// owned by pkg/lexer and pkg/parser, which carry their own *Error
// types tied to a diag.Context).
package interrors

import "fmt"

// OutOfRange reports an index that falls outside the addressed
// dimension (spec §7's "index out of range").
type OutOfRange struct {
	Dim   string // "row", "column", "page", or "linear"
	Index int
	Size  int
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("Index exceeds array dimensions (%s index: %d > %d)", e.Dim, e.Index, e.Size)
}

// NonPositiveIndex reports a zero, negative, or non-integer index
// (spec §7's "index non-positive-integer").
type NonPositiveIndex struct {
	Value float64
}

func (e *NonPositiveIndex) Error() string {
	return fmt.Sprintf("array index must be a positive integer, got %v", e.Value)
}

// ArityMismatch reports a function/operator call with the wrong
// number of arguments (spec §7's "bad function arity").
type ArityMismatch struct {
	Name string
	Want int
	Got  int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// TypeMismatch reports an operation applied to a value kind it does
// not support (spec §7's "type mismatch", e.g. transpose on a cell).
type TypeMismatch struct {
	Op   string
	Kind string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("%s: invalid operand of kind %s", e.Op, e.Kind)
}

// DimensionMismatch reports operand shapes that cannot be combined.
type DimensionMismatch struct {
	Op       string
	LeftDims string
	RightDims string
}

func (e *DimensionMismatch) Error() string {
	return fmt.Sprintf("%s: dimension mismatch (%s vs %s)", e.Op, e.LeftDims, e.RightDims)
}

// Undefined reports a reference to a name with no binding in scope
// or registry.
type Undefined struct {
	Name string
}

func (e *Undefined) Error() string {
	return fmt.Sprintf("'%s' undefined", e.Name)
}

// BadAssignTarget reports an assignment whose left-hand side cannot
// be written to.
type BadAssignTarget struct {
	Reason string
}

func (e *BadAssignTarget) Error() string {
	return fmt.Sprintf("invalid assignment target: %s", e.Reason)
}

// ComplexNarrowing reports a conversion of a complex value with
// nonzero imaginary part to a real-only context (spec §4.3's
// toScalar rule).
type ComplexNarrowing struct{}

func (e *ComplexNarrowing) Error() string {
	return "complex value with nonzero imaginary part cannot be narrowed to real"
}

// RecursionExceeded reports that a user-function call chain exceeded
// the configured maximum depth (spec §4.5).
type RecursionExceeded struct {
	Max int
}

func (e *RecursionExceeded) Error() string {
	return fmt.Sprintf("maximum recursion depth exceeded (limit %d)", e.Max)
}

// UnsupportedOp reports an operator or function with no
// implementation for the given operand kind(s).
type UnsupportedOp struct {
	Op    string
	Kinds string
}

func (e *UnsupportedOp) Error() string {
	return fmt.Sprintf("unsupported operation %q for kind(s) %s", e.Op, e.Kinds)
}

// BracketMismatch reports an unbalanced or unclosed bracket detected
// outside the lexer (e.g. by a caller assembling tokens by hand).
type BracketMismatch struct {
	Bracket string
}

func (e *BracketMismatch) Error() string {
	return fmt.Sprintf("bracket mismatch: %s", e.Bracket)
}

// DivideByZero reports a zero step in a colon-range element count
// (spec §7's "division by zero during colon count").
type DivideByZero struct{}

func (e *DivideByZero) Error() string { return "division by zero in colon range" }
