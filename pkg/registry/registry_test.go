package registry

import (
	"math"
	"testing"

	"mlab.dev/interp/pkg/value"
)

func TestBinaryUnaryDispatch(t *testing.T) {
	r := New()
	r.RegisterBinary("+", func(a, b value.Value) (value.Value, error) {
		x, _ := a.ToScalar()
		y, _ := b.ToScalar()
		return value.NewScalar(x + y), nil
	})
	r.RegisterUnary("-", func(a value.Value) (value.Value, error) {
		x, _ := a.ToScalar()
		return value.NewScalar(-x), nil
	})

	add, ok := r.Binary("+")
	if !ok {
		t.Fatalf("Binary(+) not registered")
	}
	sum, err := add(value.NewScalar(2), value.NewScalar(3))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	got, _ := sum.ToScalar()
	if got != 5 {
		t.Errorf("2+3 = %v, want 5", got)
	}

	neg, ok := r.Unary("-")
	if !ok {
		t.Fatalf("Unary(-) not registered")
	}
	n, err := neg(value.NewScalar(4))
	if err != nil {
		t.Fatalf("neg: %v", err)
	}
	got2, _ := n.ToScalar()
	if got2 != -4 {
		t.Errorf("-4 = %v, want -4", got2)
	}
}

func TestGoFuncAdapterFixedArity(t *testing.T) {
	r := New()
	r.RegisterGoFunc("sqrt", math.Sqrt)

	fn, ok := r.Func("sqrt")
	if !ok {
		t.Fatalf("sqrt not registered")
	}
	out, err := fn([]value.Value{value.NewScalar(9)}, 1)
	if err != nil {
		t.Fatalf("sqrt(9): %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("sqrt(9) returned %d values, want 1", len(out))
	}
	got, _ := out[0].ToScalar()
	if got != 3 {
		t.Errorf("sqrt(9) = %v, want 3", got)
	}

	if _, err := fn([]value.Value{value.NewScalar(1), value.NewScalar(2)}, 1); err == nil {
		t.Errorf("sqrt with 2 args should error")
	}
}

func TestGoFuncAdapterVariadic(t *testing.T) {
	r := New()
	r.RegisterGoFunc("max2", func(xs ...float64) (float64, error) {
		if len(xs) == 0 {
			return 0, nil
		}
		m := xs[0]
		for _, x := range xs[1:] {
			if x > m {
				m = x
			}
		}
		return m, nil
	})

	fn, _ := r.Func("max2")
	out, err := fn([]value.Value{value.NewScalar(1), value.NewScalar(5), value.NewScalar(3)}, 1)
	if err != nil {
		t.Fatalf("max2: %v", err)
	}
	got, _ := out[0].ToScalar()
	if got != 5 {
		t.Errorf("max2(1,5,3) = %v, want 5", got)
	}
}

func TestHasFunc(t *testing.T) {
	r := New()
	if r.HasFunc("nope") {
		t.Errorf("HasFunc(nope) should be false")
	}
	r.RegisterFunc("nope", func(args []value.Value, nargout int) ([]value.Value, error) { return nil, nil })
	if !r.HasFunc("nope") {
		t.Errorf("HasFunc(nope) should be true after registration")
	}
}
