package ast

import "testing"

func TestCloneDeepCopies(t *testing.T) {
	n := &Node{
		Kind:     BinaryOp,
		Str:      "+",
		Children: []*Node{{Kind: NumberLit, Num: 1}, {Kind: NumberLit, Num: 2}},
		Params:   []string{"x"},
		Branches: []Branch{{Cond: &Node{Kind: Ident, Str: "c"}, Body: &Node{Kind: Block}}},
	}
	c := n.Clone()

	c.Str = "-"
	c.Children[0].Num = 99
	c.Params[0] = "y"
	c.Branches[0].Cond.Str = "changed"

	if n.Str != "+" {
		t.Errorf("original Str mutated: %q", n.Str)
	}
	if n.Children[0].Num != 1 {
		t.Errorf("original child mutated: %v", n.Children[0].Num)
	}
	if n.Params[0] != "x" {
		t.Errorf("original Params mutated: %v", n.Params)
	}
	if n.Branches[0].Cond.Str != "c" {
		t.Errorf("original Branch.Cond mutated: %v", n.Branches[0].Cond.Str)
	}
}

func TestCloneNil(t *testing.T) {
	var n *Node
	if got := n.Clone(); got != nil {
		t.Errorf("Clone of nil Node = %v, want nil", got)
	}
}

func TestCloneRows(t *testing.T) {
	n := &Node{
		Kind: MatrixLit,
		Rows: [][]*Node{
			{{Kind: NumberLit, Num: 1}, {Kind: NumberLit, Num: 2}},
		},
	}
	c := n.Clone()
	c.Rows[0][0].Num = 42
	if n.Rows[0][0].Num != 1 {
		t.Errorf("original Rows mutated: %v", n.Rows[0][0].Num)
	}
}
