package parser

import (
	"testing"

	"github.com/vexlang/vexc/internal/ast"
)

func TestParseFunctionDeclDefinesGlobalSymbol(t *testing.T) {
	src := "fn f(n: int): int => return n\n"

	mod, table, errs := Parse("test.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	fn, ok := mod.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", mod.Statements[0])
	}
	if fn.Name.Lexeme != "f" {
		t.Fatalf("expected name 'f', got %q", fn.Name.Lexeme)
	}

	if _, ok := table.Lookup("f"); !ok {
		t.Fatal("expected 'f' to resolve as a GLOBAL symbol after parsing")
	}
}

func TestParseIfElseArrowForm(t *testing.T) {
	src := "fn main(): void =>\n" +
		"    if 1 < 2 =>\n" +
		"        print(1)\n" +
		"    else =>\n" +
		"        print(2)\n"

	mod, _, errs := Parse("test.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", fn.Body[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseForLoopClauses(t *testing.T) {
	src := "fn main(): void =>\n" +
		"    for var i: int = 0; i < 3; i++ =>\n" +
		"        print(i)\n"

	mod, _, errs := Parse("test.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	forStmt, ok := fn.Body[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", fn.Body[0])
	}
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Increment == nil {
		t.Fatal("expected all three for-clauses to be present")
	}
}

func TestParseInterpolatedStringProducesParts(t *testing.T) {
	src := "fn main(): void =>\n    var x: int = 7\n    print($\"x is {x}\")\n"

	mod, _, errs := Parse("test.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	call := fn.Body[1].(*ast.ExprStmt).Expression.(*ast.CallExpr)
	interp, ok := call.Arguments[0].(*ast.InterpolatedExpr)
	if !ok {
		t.Fatalf("expected *ast.InterpolatedExpr argument, got %T", call.Arguments[0])
	}
	if len(interp.Parts) != 2 {
		t.Fatalf("expected 2 parts (literal run + placeholder), got %d", len(interp.Parts))
	}
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	src := "fn main(): void =>\n    var = ;\n    print(1)\n"

	_, _, errs := Parse("test.vx", src)
	if len(errs) == 0 {
		t.Fatal("expected at least one diagnostic for the malformed var_decl")
	}
}

func TestParseTooManyParamsIsDiagnosedButRecovers(t *testing.T) {
	params := ""
	for i := 0; i < 260; i++ {
		if i > 0 {
			params += ", "
		}
		params += "p" + itoa(i) + ": int"
	}
	src := "fn many(" + params + "): void => return\n"

	_, _, errs := Parse("test.vx", src)
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic for exceeding the 255-parameter limit")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
