package parser

import (
	"testing"

	"mlab.dev/interp/pkg/ast"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	n, err := Parse("test", src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return n
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "x = 1 + 2 * 3;\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.Assign {
		t.Fatalf("top statement kind = %v, want Assign", stmt.Kind)
	}
	rhs := stmt.Children[1]
	if rhs.Kind != ast.BinaryOp || rhs.Str != "+" {
		t.Fatalf("rhs = %v %q, want BinaryOp +", rhs.Kind, rhs.Str)
	}
	right := rhs.Children[1]
	if right.Kind != ast.BinaryOp || right.Str != "*" {
		t.Fatalf("rhs.right = %v %q, want BinaryOp *", right.Kind, right.Str)
	}
}

func TestParseUnaryBindsLooserThanPower(t *testing.T) {
	// "-2^2" parses as -(2^2): UnaryOp("-", BinaryOp("^", 2, 2)).
	prog := mustParse(t, "x = -2^2;\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.UnaryOp || rhs.Str != "-" {
		t.Fatalf("rhs = %v %q, want UnaryOp -", rhs.Kind, rhs.Str)
	}
	inner := rhs.Children[0]
	if inner.Kind != ast.BinaryOp || inner.Str != "^" {
		t.Fatalf("rhs.operand = %v %q, want BinaryOp ^", inner.Kind, inner.Str)
	}
}

func TestParseMultiAssign(t *testing.T) {
	prog := mustParse(t, "[a, b] = pair();\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.MultiAssign {
		t.Fatalf("kind = %v, want MultiAssign", stmt.Kind)
	}
	if len(stmt.Returns) != 2 || stmt.Returns[0] != "a" || stmt.Returns[1] != "b" {
		t.Fatalf("Returns = %v", stmt.Returns)
	}
	if stmt.Children[0].Kind != ast.Call {
		t.Fatalf("rhs kind = %v, want Call", stmt.Children[0].Kind)
	}
}

func TestParseMultiAssignWithDiscard(t *testing.T) {
	prog := mustParse(t, "[~, b] = pair();\n")
	stmt := prog.Children[0]
	if stmt.Returns[0] != "~" {
		t.Fatalf("Returns[0] = %q, want ~", stmt.Returns[0])
	}
}

func TestParseBracketNotFollowedByAssignIsMatrixLit(t *testing.T) {
	// "[1, 2]" with no trailing '=' must fall back to an ordinary
	// matrix-literal expression statement, not a multi-assign.
	prog := mustParse(t, "[1, 2];\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.ExprStmt {
		t.Fatalf("kind = %v, want ExprStmt", stmt.Kind)
	}
	if stmt.Children[0].Kind != ast.MatrixLit {
		t.Fatalf("expr kind = %v, want MatrixLit", stmt.Children[0].Kind)
	}
}

func TestParseDeleteAssign(t *testing.T) {
	prog := mustParse(t, "a(2) = [];\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.DeleteAssign {
		t.Fatalf("kind = %v, want DeleteAssign", stmt.Kind)
	}
	if stmt.Children[0].Kind != ast.Call {
		t.Fatalf("target kind = %v, want Call", stmt.Children[0].Kind)
	}
}

func TestParseIfElseif(t *testing.T) {
	prog := mustParse(t, "if x\n  y = 1;\nelseif z\n  y = 2;\nelse\n  y = 3;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.If {
		t.Fatalf("kind = %v, want If", stmt.Kind)
	}
	if len(stmt.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2", len(stmt.Branches))
	}
	if stmt.Else == nil {
		t.Fatalf("Else is nil, want a body")
	}
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, "for k = 1:5\n  s = s + k;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.For || stmt.Str != "k" {
		t.Fatalf("kind/str = %v %q, want For k", stmt.Kind, stmt.Str)
	}
	if stmt.Branches[0].Cond.Kind != ast.Colon {
		t.Fatalf("loop target kind = %v, want Colon", stmt.Branches[0].Cond.Kind)
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := mustParse(t, "while k < 10\n  k = k + 1;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.While {
		t.Fatalf("kind = %v, want While", stmt.Kind)
	}
}

func TestParseSwitchCase(t *testing.T) {
	prog := mustParse(t, "switch x\n  case 1\n    y = 1;\n  case {2, 3}\n    y = 2;\n  otherwise\n    y = 3;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.Switch {
		t.Fatalf("kind = %v, want Switch", stmt.Kind)
	}
	if len(stmt.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2", len(stmt.Branches))
	}
	if stmt.Branches[1].Cond.Kind != ast.CellLit {
		t.Fatalf("second case cond kind = %v, want CellLit", stmt.Branches[1].Cond.Kind)
	}
	if stmt.Else == nil {
		t.Fatalf("otherwise body missing")
	}
}

func TestParseTryCatchWithVar(t *testing.T) {
	prog := mustParse(t, "try\n  x = 1;\ncatch err\n  y = 2;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.TryCatch {
		t.Fatalf("kind = %v, want TryCatch", stmt.Kind)
	}
	if stmt.CatchVar != "err" {
		t.Fatalf("CatchVar = %q, want %q", stmt.CatchVar, "err")
	}
	if stmt.Catch == nil {
		t.Fatalf("Catch body missing")
	}
}

func TestParseFuncDefSingleReturn(t *testing.T) {
	prog := mustParse(t, "function y = square(x)\n  y = x * x;\nend\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.FuncDef || stmt.Str != "square" {
		t.Fatalf("kind/name = %v %q", stmt.Kind, stmt.Str)
	}
	if len(stmt.Params) != 1 || stmt.Params[0] != "x" {
		t.Fatalf("Params = %v", stmt.Params)
	}
	if len(stmt.Returns) != 1 || stmt.Returns[0] != "y" {
		t.Fatalf("Returns = %v", stmt.Returns)
	}
}

func TestParseFuncDefMultiReturn(t *testing.T) {
	prog := mustParse(t, "function [a, b] = pair()\n  a = 1;\n  b = 2;\nend\n")
	stmt := prog.Children[0]
	if len(stmt.Returns) != 2 || stmt.Returns[0] != "a" || stmt.Returns[1] != "b" {
		t.Fatalf("Returns = %v", stmt.Returns)
	}
}

func TestParseMatrixLitRows(t *testing.T) {
	prog := mustParse(t, "a = [1 2 3; 4 5 6];\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.MatrixLit {
		t.Fatalf("kind = %v, want MatrixLit", rhs.Kind)
	}
	if len(rhs.Rows) != 2 || len(rhs.Rows[0]) != 3 || len(rhs.Rows[1]) != 3 {
		t.Fatalf("Rows shape = %v", rhs.Rows)
	}
}

func TestParseCellLit(t *testing.T) {
	prog := mustParse(t, "c = {1, 'two', 3};\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.CellLit {
		t.Fatalf("kind = %v, want CellLit", rhs.Kind)
	}
	if len(rhs.Rows) != 1 || len(rhs.Rows[0]) != 3 {
		t.Fatalf("Rows shape = %v", rhs.Rows)
	}
}

func TestParseAnonFunc(t *testing.T) {
	prog := mustParse(t, "f = @(x, y) x + y;\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.AnonFunc {
		t.Fatalf("kind = %v, want AnonFunc", rhs.Kind)
	}
	if len(rhs.Params) != 2 || rhs.Params[0] != "x" || rhs.Params[1] != "y" {
		t.Fatalf("Params = %v", rhs.Params)
	}
	if rhs.Children[0].Kind != ast.BinaryOp {
		t.Fatalf("body kind = %v, want BinaryOp", rhs.Children[0].Kind)
	}
}

func TestParseFieldAccessAndCellIndexChain(t *testing.T) {
	prog := mustParse(t, "x = s.name{1};\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.CellIndex {
		t.Fatalf("kind = %v, want CellIndex", rhs.Kind)
	}
	target := rhs.Children[0]
	if target.Kind != ast.FieldAccess || target.Str != "name" {
		t.Fatalf("target = %v %q, want FieldAccess name", target.Kind, target.Str)
	}
}

func TestParseTransposeVsQuotedString(t *testing.T) {
	// After an identifier, "'" is transpose; at the start of an
	// expression it opens a string literal.
	prog := mustParse(t, "b = a';\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.PostfixOp || rhs.Str != "'" {
		t.Fatalf("kind/str = %v %q, want PostfixOp '", rhs.Kind, rhs.Str)
	}

	prog2 := mustParse(t, "b = 'hello';\n")
	rhs2 := prog2.Children[0].Children[1]
	if rhs2.Kind != ast.StringLit || rhs2.Str != "hello" {
		t.Fatalf("kind/str = %v %q, want StringLit hello", rhs2.Kind, rhs2.Str)
	}
}

func TestParseEndKeywordInIndex(t *testing.T) {
	prog := mustParse(t, "b = a(end);\n")
	rhs := prog.Children[0].Children[1]
	if rhs.Kind != ast.Call {
		t.Fatalf("kind = %v, want Call", rhs.Kind)
	}
	arg := rhs.Children[1]
	if arg.Kind != ast.EndValue {
		t.Fatalf("arg kind = %v, want EndValue", arg.Kind)
	}
}

func TestParseBareColonArg(t *testing.T) {
	prog := mustParse(t, "b = a(:, 2);\n")
	rhs := prog.Children[0].Children[1]
	arg0 := rhs.Children[1]
	if arg0.Kind != ast.Colon || len(arg0.Children) != 0 {
		t.Fatalf("arg0 = %v with %d children, want bare Colon", arg0.Kind, len(arg0.Children))
	}
}

func TestParseGlobalDecl(t *testing.T) {
	prog := mustParse(t, "global a, b\n")
	stmt := prog.Children[0]
	if stmt.Kind != ast.GlobalDecl {
		t.Fatalf("kind = %v, want GlobalDecl", stmt.Kind)
	}
	if len(stmt.Params) != 2 || stmt.Params[0] != "a" || stmt.Params[1] != "b" {
		t.Fatalf("Params = %v", stmt.Params)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("test", "x = ;\n")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}
