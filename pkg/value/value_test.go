package value

import "testing"

func TestScalarRoundTrip(t *testing.T) {
	v := NewScalar(3.5)
	got, err := v.ToScalar()
	if err != nil {
		t.Fatalf("ToScalar: %v", err)
	}
	if got != 3.5 {
		t.Errorf("ToScalar() = %v, want 3.5", got)
	}
	if !v.IsScalar() || v.Kind() != DOUBLE {
		t.Errorf("NewScalar produced kind=%v dims=%v", v.Kind(), v.Dims())
	}
}

func TestComplexNarrowing(t *testing.T) {
	v := NewComplexScalar(1, 2)
	if _, err := v.ToScalar(); err == nil {
		t.Errorf("ToScalar() on complex with nonzero imaginary should error")
	}
	v0 := NewComplexScalar(4, 0)
	got, err := v0.ToScalar()
	if err != nil || got != 4 {
		t.Errorf("ToScalar() = %v, %v, want 4, nil", got, err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	v := NewString("hi")
	if v.Kind() != CHAR || v.Dims() != (Dims{1, 2, 1}) {
		t.Fatalf("NewString dims/kind wrong: %v %v", v.Kind(), v.Dims())
	}
	if got := v.String(); got != "hi" {
		t.Errorf("String() = %q, want %q", got, "hi")
	}
}

func TestToBool(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Empty(), false},
		{NewScalar(0), false},
		{NewScalar(1), true},
		{NewMatrix(1, 2, DOUBLE, nil, []float64{1, 1}), true},
		{NewMatrix(1, 2, DOUBLE, nil, []float64{1, 0}), false},
		{NewLogicalScalar(true), true},
	}
	for _, c := range cases {
		got, err := c.v.ToBool()
		if err != nil {
			t.Errorf("ToBool(%v) error: %v", c.v.DebugString(), err)
			continue
		}
		if got != c.want {
			t.Errorf("ToBool(%v) = %v, want %v", c.v.DebugString(), got, c.want)
		}
	}
}

func TestCOWDetach(t *testing.T) {
	a := NewScalar(1)
	b := a.Share()
	if !a.buf.Shared() {
		t.Fatalf("expected buffer shared after Share()")
	}
	b = b.SetFloat64(0, 2)
	got, _ := a.ToScalar()
	if got != 1 {
		t.Errorf("mutating shared copy affected original: a = %v, want 1", got)
	}
	got2, _ := b.ToScalar()
	if got2 != 2 {
		t.Errorf("b = %v, want 2", got2)
	}
}

func TestPromoteToComplex(t *testing.T) {
	v := NewScalar(5)
	c := v.PromoteToComplex()
	if c.Kind() != COMPLEX {
		t.Fatalf("PromoteToComplex() kind = %v, want COMPLEX", c.Kind())
	}
	re, im := c.GetComplex(0)
	if re != 5 || im != 0 {
		t.Errorf("GetComplex() = %v, %v, want 5, 0", re, im)
	}
}

func TestCellGetSet(t *testing.T) {
	c := NewCell(1, 2)
	c = c.CellSet(0, NewScalar(7))
	c = c.CellSet(1, NewString("x"))
	got, _ := c.CellGet(0).ToScalar()
	if got != 7 {
		t.Errorf("CellGet(0) = %v, want 7", got)
	}
	if c.CellGet(1).String() != "x" {
		t.Errorf("CellGet(1) = %q, want x", c.CellGet(1).String())
	}
}

func TestStructFields(t *testing.T) {
	s := NewStruct()
	s = s.SetField("a", NewScalar(1))
	s = s.SetField("b", NewString("y"))
	if !s.HasField("a") || !s.HasField("b") {
		t.Fatalf("expected fields a, b present")
	}
	fv, ok := s.Field("a")
	if !ok {
		t.Fatalf("Field(a) not found")
	}
	got, _ := fv.ToScalar()
	if got != 1 {
		t.Errorf("Field(a) = %v, want 1", got)
	}
	if names := s.FieldNames(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("FieldNames() = %v, want [a b]", names)
	}
	s = s.SetField("a", NewScalar(9))
	fv2, _ := s.Field("a")
	got2, _ := fv2.ToScalar()
	if got2 != 9 {
		t.Errorf("Field(a) after update = %v, want 9", got2)
	}
	if names := s.FieldNames(); len(names) != 2 {
		t.Errorf("updating existing field should not duplicate name, got %v", names)
	}
}

func TestFuncHandle(t *testing.T) {
	v := NewFuncHandle("sin")
	if v.Kind() != FUNC_HANDLE || v.FuncName() != "sin" {
		t.Errorf("NewFuncHandle wrong kind/name: %v %q", v.Kind(), v.FuncName())
	}
	if got := v.DebugString(); got != "@sin" {
		t.Errorf("DebugString() = %q, want @sin", got)
	}
}

func TestValueEqual(t *testing.T) {
	if !Equal(NewScalar(3), NewScalar(3)) {
		t.Errorf("Equal(3,3) should be true")
	}
	if Equal(NewScalar(3), NewScalar(4)) {
		t.Errorf("Equal(3,4) should be false")
	}
	if !Equal(NewString("ab"), NewString("ab")) {
		t.Errorf("Equal(ab,ab) should be true")
	}
	if Equal(NewString("ab"), NewString("ac")) {
		t.Errorf("Equal(ab,ac) should be false")
	}
}
