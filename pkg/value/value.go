// Package value implements the tagged value model spec §3.3/§3.4/§4.3
// describes: column-major numeric buffers with copy-on-write sharing,
// cell and struct containers, and function handles.
package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/vector"
	"mlab.dev/interp/pkg/interrors"
)

// Kind discriminates a Value (spec §3.3).
type Kind int

const (
	EMPTY Kind = iota
	DOUBLE
	COMPLEX
	LOGICAL
	CHAR
	CELL
	STRUCT
	FUNC_HANDLE
)

func (k Kind) String() string {
	switch k {
	case EMPTY:
		return "empty"
	case DOUBLE:
		return "double"
	case COMPLEX:
		return "complex"
	case LOGICAL:
		return "logical"
	case CHAR:
		return "char"
	case CELL:
		return "cell"
	case STRUCT:
		return "struct"
	case FUNC_HANDLE:
		return "function_handle"
	default:
		return "unknown"
	}
}

// Value is the tagged union spec §3.3 describes. Exactly the fields
// relevant to Kind are meaningful; the others are zero.
type Value struct {
	kind Kind
	dims Dims

	buf   *Buffer // DOUBLE, COMPLEX, LOGICAL, CHAR
	alloc Allocator

	cell vector.Vector // CELL, column-major linear order, length == dims.NumEl()

	fieldNames []string       // STRUCT, insertion order
	fieldIndex map[string]int // STRUCT, name -> position in fieldNames/fieldVals
	fieldVals  vector.Vector  // STRUCT, parallel to fieldNames

	funcName string // FUNC_HANDLE
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Dims returns the value's shape.
func (v Value) Dims() Dims { return v.dims }

// NumEl returns rows*cols*pages.
func (v Value) NumEl() int { return v.dims.NumEl() }

func (v Value) IsScalar() bool { return v.dims.IsScalar() }
func (v Value) IsEmpty() bool {
	switch v.kind {
	case EMPTY:
		return true
	case CELL, STRUCT:
		return v.dims.IsEmpty()
	default:
		return v.dims.IsEmpty()
	}
}
func (v Value) IsNumeric() bool { return v.kind == DOUBLE || v.kind == COMPLEX }
func (v Value) IsComplex() bool { return v.kind == COMPLEX }
func (v Value) IsLogical() bool { return v.kind == LOGICAL }
func (v Value) IsChar() bool    { return v.kind == CHAR }
func (v Value) IsCell() bool    { return v.kind == CELL }
func (v Value) IsStruct() bool  { return v.kind == STRUCT }
func (v Value) IsFuncHandle() bool { return v.kind == FUNC_HANDLE }

// Empty returns the EMPTY value (spec §3.3's "EMPTY implies zero
// elements and a null buffer").
func Empty() Value { return Value{kind: EMPTY} }

// NewScalar returns a 1x1 DOUBLE value.
func NewScalar(x float64) Value { return NewMatrix(1, 1, DOUBLE, nil, []float64{x}) }

// NewLogicalScalar returns a 1x1 LOGICAL value.
func NewLogicalScalar(b bool) Value {
	v := newBuffered(LOGICAL, Dims{1, 1, 1}, nil)
	if b {
		v.buf.SetByte(0, 1)
	}
	return v
}

// NewComplexScalar returns a 1x1 COMPLEX value.
func NewComplexScalar(re, im float64) Value {
	v := newBuffered(COMPLEX, Dims{1, 1, 1}, nil)
	v.buf.SetComplex(0, re, im)
	return v
}

// NewMatrix builds a zero-filled rows x cols matrix of kind, then
// writes data (column-major, at most rows*cols elements) over its
// leading elements; data may be nil.
func NewMatrix(rows, cols int, kind Kind, alloc Allocator, data []float64) Value {
	v := newBuffered(kind, Dims{rows, cols, 1}, alloc)
	for i, x := range data {
		v = v.SetFloat64(i, x)
	}
	return v
}

// NewString builds a CHAR row vector from s (spec §3.3; the original
// implementation's MValue::fromString).
func NewString(s string) Value {
	runes := []rune(s)
	v := newBuffered(CHAR, Dims{1, len(runes), 1}, nil)
	for i, r := range runes {
		v.buf.SetByte(i, byte(r))
	}
	return v
}

func newBuffered(kind Kind, d Dims, alloc Allocator) Value {
	n := d.NumEl()
	if n == 0 {
		return Value{kind: kind, dims: d, alloc: alloc}
	}
	return Value{kind: kind, dims: d, alloc: alloc, buf: NewBuffer(alloc, ElementSize(kind), n)}
}

// NewCell builds a CELL value of the given shape with every slot
// initialised to EMPTY.
func NewCell(rows, cols int) Value {
	n := rows * cols
	vec := vector.Empty
	for i := 0; i < n; i++ {
		vec = vec.Conj(Empty())
	}
	return Value{kind: CELL, dims: Dims{rows, cols, 1}, cell: vec}
}

// NewStruct builds an empty 1x1 STRUCT value with no fields.
func NewStruct() Value {
	return Value{kind: STRUCT, dims: Dims{1, 1, 1}, fieldIndex: map[string]int{}, fieldVals: vector.Empty}
}

// NewFuncHandle wraps a registry name as a function-handle value
// (spec §3.3: "FUNC_HANDLE never stores code; it stores a name").
func NewFuncHandle(name string) Value {
	return Value{kind: FUNC_HANDLE, dims: Dims{1, 1, 1}, funcName: name}
}

// FuncName returns the registry name a FUNC_HANDLE resolves through.
func (v Value) FuncName() string { return v.funcName }

// --- copy-on-write sharing ---

// Share returns a shallow copy of v with the buffer's reference count
// incremented (spec §4.3: "assignment... copies the value's small
// header... and increments the buffer's reference count").
func (v Value) Share() Value {
	v.buf.AddRef()
	return v
}

// Release drops v's reference to its buffer. Callers that overwrite
// an environment slot should Release the old value first.
func (v Value) Release() {
	v.buf.Release()
}

// detach ensures v uniquely owns its buffer, copying if shared (spec
// §4.3's "detach"). Returns the (possibly new) Value to use in place
// of v.
func (v Value) detach() Value {
	if v.buf == nil {
		return v
	}
	v.buf = v.buf.Detach()
	return v
}

// --- scalar / bool conversions (spec §4.3) ---

// ToScalar returns v's single element as a float64. A COMPLEX value
// with nonzero imaginary part is an error.
func (v Value) ToScalar() (float64, error) {
	if v.NumEl() != 1 {
		return 0, &interrors.TypeMismatch{Op: "toScalar", Kind: fmt.Sprintf("%s %dx%dx%d", v.kind, v.dims.Rows, v.dims.Cols, v.dims.Pages)}
	}
	switch v.kind {
	case DOUBLE:
		return v.buf.GetFloat64(0), nil
	case LOGICAL, CHAR:
		return float64(v.buf.GetByte(0)), nil
	case COMPLEX:
		re, im := v.buf.GetComplex(0)
		if im != 0 {
			return 0, &interrors.ComplexNarrowing{}
		}
		return re, nil
	default:
		return 0, &interrors.TypeMismatch{Op: "toScalar", Kind: v.kind.String()}
	}
}

// ToBool implements spec §4.3's truthiness: any nonzero numeric
// element is true; a non-scalar array is true iff all elements are
// nonzero; an empty array is false.
func (v Value) ToBool() (bool, error) {
	switch v.kind {
	case EMPTY:
		return false, nil
	case DOUBLE, LOGICAL, CHAR:
		if v.NumEl() == 0 {
			return false, nil
		}
		for i := 0; i < v.NumEl(); i++ {
			var x float64
			if v.kind == DOUBLE {
				x = v.buf.GetFloat64(i)
			} else {
				x = float64(v.buf.GetByte(i))
			}
			if x == 0 {
				return false, nil
			}
		}
		return true, nil
	case COMPLEX:
		if v.NumEl() == 0 {
			return false, nil
		}
		for i := 0; i < v.NumEl(); i++ {
			re, im := v.buf.GetComplex(i)
			if re == 0 && im == 0 {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, &interrors.TypeMismatch{Op: "toBool", Kind: v.kind.String()}
	}
}

// --- element access (spec §3.3's column-major layout) ---

func (v Value) GetFloat64(linear int) float64 {
	switch v.kind {
	case LOGICAL, CHAR:
		return float64(v.buf.GetByte(linear))
	default:
		return v.buf.GetFloat64(linear)
	}
}

func (v Value) GetComplex(linear int) (float64, float64) {
	if v.kind == COMPLEX {
		return v.buf.GetComplex(linear)
	}
	return v.GetFloat64(linear), 0
}

// SetFloat64 writes x at linear, detaching first if the buffer is
// shared (spec §4.3). Returns the Value to store back (buf pointer
// may have changed).
func (v Value) SetFloat64(linear int, x float64) Value {
	v = v.detach()
	switch v.kind {
	case LOGICAL:
		if x != 0 {
			v.buf.SetByte(linear, 1)
		} else {
			v.buf.SetByte(linear, 0)
		}
	case CHAR:
		v.buf.SetByte(linear, byte(x))
	default:
		v.buf.SetFloat64(linear, x)
	}
	return v
}

func (v Value) SetComplex(linear int, re, im float64) Value {
	v = v.detach()
	v.buf.SetComplex(linear, re, im)
	return v
}

// --- promotion (spec §4.3) ---

// PromoteToComplex widens a DOUBLE value to COMPLEX in place,
// allocating an interleaved buffer and zero-filling imaginary parts.
func (v Value) PromoteToComplex() Value {
	if v.kind == COMPLEX {
		return v
	}
	n := v.NumEl()
	nv := newBuffered(COMPLEX, v.dims, v.alloc)
	for i := 0; i < n; i++ {
		nv.buf.SetComplex(i, v.GetFloat64(i), 0)
	}
	return nv
}

// --- cell container ---

func (v Value) CellGet(linear int) Value {
	x, _ := v.cell.Index(linear)
	return x.(Value)
}

func (v Value) CellSet(linear int, x Value) Value {
	v.cell = v.cell.Assoc(linear, x)
	return v
}

// --- struct container ---

func (v Value) HasField(name string) bool {
	_, ok := v.fieldIndex[name]
	return ok
}

func (v Value) Field(name string) (Value, bool) {
	i, ok := v.fieldIndex[name]
	if !ok {
		return Value{}, false
	}
	x, _ := v.fieldVals.Index(i)
	return x.(Value), true
}

// SetField assigns name, creating it at the end of insertion order if
// new (spec §4.4's field-assignment semantics).
func (v Value) SetField(name string, x Value) Value {
	if v.fieldIndex == nil {
		v.fieldIndex = map[string]int{}
		v.fieldVals = vector.Empty
	}
	if i, ok := v.fieldIndex[name]; ok {
		v.fieldVals = v.fieldVals.Assoc(i, x)
		return v
	}
	v.fieldIndex[name] = len(v.fieldNames)
	v.fieldNames = append(append([]string(nil), v.fieldNames...), name)
	v.fieldVals = v.fieldVals.Conj(x)
	return v
}

func (v Value) FieldNames() []string { return v.fieldNames }

// --- equality, used by switch-case matching (spec §4.5) and tests ---

// Equal implements spec §4.5's switch equality: value equality on
// scalars (numeric, logical, char-string).
func Equal(a, b Value) bool {
	if a.kind == CHAR || b.kind == CHAR {
		return asString(a) == asString(b) && a.kind != EMPTY && b.kind != EMPTY
	}
	as, aerr := a.ToScalar()
	bs, berr := b.ToScalar()
	if aerr != nil || berr != nil {
		return false
	}
	return as == bs
}

func asString(v Value) string {
	if v.kind != CHAR {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < v.NumEl(); i++ {
		sb.WriteByte(v.buf.GetByte(i))
	}
	return sb.String()
}

// String returns v's character data as a Go string (CHAR values
// only); used by the evaluator for name arguments such as exist('x').
func (v Value) String() string { return asString(v) }

// DebugString is the Go counterpart of the original's
// MValue::debugString: a compact, implementation-facing summary used
// by tests and internal diagnostics, distinct from the display
// formatter of spec §4.6.
func (v Value) DebugString() string {
	switch v.kind {
	case EMPTY:
		return "[]"
	case DOUBLE, LOGICAL:
		return fmt.Sprintf("%s %dx%d %v", v.kind, v.dims.Rows, v.dims.Cols, v.debugElements())
	case CHAR:
		return fmt.Sprintf("char %dx%d %q", v.dims.Rows, v.dims.Cols, asString(v))
	case COMPLEX:
		return fmt.Sprintf("complex %dx%d %v", v.dims.Rows, v.dims.Cols, v.debugElements())
	case CELL:
		return fmt.Sprintf("cell %dx%d{%d}", v.dims.Rows, v.dims.Cols, v.cell.Len())
	case STRUCT:
		return fmt.Sprintf("struct{%s}", strings.Join(v.fieldNames, ","))
	case FUNC_HANDLE:
		return "@" + v.funcName
	default:
		return "?"
	}
}

func (v Value) debugElements() []float64 {
	n := v.NumEl()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.GetFloat64(i)
	}
	return out
}

// --- hashing, for map/registry keys over scalar values ---

// Hash returns a hash over v's scalar/char content; a value that is
// neither CHAR nor convertible to a scalar hashes to 0. The evaluator's
// switch statement compares with Equal and does not call Hash.
func Hash(v Value) uint32 {
	if v.kind == CHAR {
		return hash.String(asString(v))
	}
	s, err := v.ToScalar()
	if err != nil {
		return 0
	}
	return hash.UInt64(math.Float64bits(s))
}
