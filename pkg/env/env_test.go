package env

import "mlab.dev/interp/pkg/value"

import "testing"

func scalar(x float64) value.Value { return value.NewScalar(x) }

func TestLocalGetSet(t *testing.T) {
	e := New(NewGlobals())
	e.Set("x", scalar(1))
	v, ok := e.Get("x")
	if !ok {
		t.Fatalf("Get(x) not found")
	}
	got, _ := v.ToScalar()
	if got != 1 {
		t.Errorf("Get(x) = %v, want 1", got)
	}
	if _, ok := e.Get("y"); ok {
		t.Errorf("Get(y) should not be found")
	}
}

func TestDeclareGlobal(t *testing.T) {
	g := NewGlobals()
	e1 := New(g)
	e1.DeclareGlobal("counter")
	e1.Set("counter", scalar(5))

	e2 := New(g)
	e2.DeclareGlobal("counter")
	v, ok := e2.Get("counter")
	if !ok {
		t.Fatalf("e2 should see global counter")
	}
	got, _ := v.ToScalar()
	if got != 5 {
		t.Errorf("e2 counter = %v, want 5", got)
	}

	e3 := New(g)
	if e3.Has("counter") {
		t.Errorf("e3 did not declare counter global, should not see it")
	}
}

func TestClearAndClearName(t *testing.T) {
	e := New(NewGlobals())
	e.Set("a", scalar(1))
	e.Set("b", scalar(2))
	e.ClearName("a")
	if e.Has("a") {
		t.Errorf("a should be cleared")
	}
	if !e.Has("b") {
		t.Errorf("b should still be bound")
	}
	e.Clear()
	if e.Has("b") {
		t.Errorf("b should be cleared after Clear()")
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	e := New(NewGlobals())
	e.Set("x", scalar(1))
	snap := e.Snapshot()
	e.Set("x", scalar(2))
	e.Set("y", scalar(3))

	v, ok := snap.Get("x")
	if !ok {
		t.Fatalf("snapshot should have x")
	}
	got, _ := v.ToScalar()
	if got != 1 {
		t.Errorf("snapshot x = %v, want 1 (frozen at capture time)", got)
	}
	if snap.Has("y") {
		t.Errorf("snapshot should not see y added after capture")
	}
}

func TestNames(t *testing.T) {
	e := New(NewGlobals())
	e.Set("a", scalar(1))
	e.Set("b", scalar(2))
	names := e.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}
