package codegen

import (
	"testing"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/parser"
	"github.com/vexlang/vexc/internal/types"
)

func TestTypeOfPromotesMixedArithmeticToDouble(t *testing.T) {
	mod, table, errs := parser.Parse("fixture.vx", "fn main(): void =>\n    1 + 2.5\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	expr := fn.Body[0].(*ast.ExprStmt).Expression

	got := typeOf(table, expr)
	if got.Kind() != types.DOUBLE {
		t.Fatalf("expected DOUBLE, got %s", got.Kind())
	}
}

func TestTypeOfPlusWithStringOperandIsString(t *testing.T) {
	mod, table, errs := parser.Parse("fixture.vx", "fn main(): void =>\n    \"a\" + \"b\"\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	expr := fn.Body[0].(*ast.ExprStmt).Expression

	got := typeOf(table, expr)
	if got.Kind() != types.STRING {
		t.Fatalf("expected STRING, got %s", got.Kind())
	}
}

func TestTypeOfComparisonIsAlwaysBool(t *testing.T) {
	mod, table, errs := parser.Parse("fixture.vx", "fn main(): void =>\n    1 < 2\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	expr := fn.Body[0].(*ast.ExprStmt).Expression

	got := typeOf(table, expr)
	if got.Kind() != types.BOOL {
		t.Fatalf("expected BOOL, got %s", got.Kind())
	}
}

func TestTypeOfCachesOnExprType(t *testing.T) {
	mod, table, errs := parser.Parse("fixture.vx", "fn main(): void =>\n    1 + 2\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := mod.Statements[0].(*ast.FunctionDecl)
	expr := fn.Body[0].(*ast.ExprStmt).Expression

	first := typeOf(table, expr)
	if expr.GetType() != first {
		t.Fatal("expected typeOf to cache its result on the expression via SetType")
	}
	second := typeOf(table, expr)
	if first != second {
		t.Fatal("expected repeated calls to return the cached type")
	}
}

func TestRuntimeKindCollapsesIntIntoLong(t *testing.T) {
	if runtimeKind(types.Int) != types.LONG {
		t.Fatalf("expected INT to collapse to LONG, got %s", runtimeKind(types.Int))
	}
	if runtimeKind(types.Double) != types.DOUBLE {
		t.Fatalf("expected DOUBLE to pass through unchanged, got %s", runtimeKind(types.Double))
	}
}
