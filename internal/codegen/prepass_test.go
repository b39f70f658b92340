package codegen

import (
	"testing"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/parser"
)

func frameOf(t *testing.T, src string) int {
	t.Helper()
	mod, table, errs := parser.Parse("fixture.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn, ok := mod.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl as the first statement, got %T", mod.Statements[0])
	}
	return frameSize(table, fn)
}

func TestFrameSizeNeverGoesBelowTheMinimum(t *testing.T) {
	frame := frameOf(t, "fn main(): void => return\n")
	if frame != minFrameSize {
		t.Fatalf("expected the 128-byte floor for an empty body, got %d", frame)
	}
}

func TestFrameSizeIsSixteenByteAligned(t *testing.T) {
	src := "fn main(): void =>\n"
	for i := 0; i < 10; i++ {
		src += "    var v" + string(rune('a'+i)) + ": long = 0\n"
	}
	frame := frameOf(t, src)
	if frame%16 != 0 {
		t.Fatalf("expected a 16-byte aligned frame, got %d", frame)
	}
}

func TestFrameSizeImplementsBranchMaxAcrossIfArms(t *testing.T) {
	wide := "fn wide(): void =>\n" +
		"    if true =>\n" +
		"        var a: long = 1\n" +
		"        var b: long = 2\n" +
		"        var c: long = 3\n" +
		"    else =>\n" +
		"        var x: long = 1\n" +
		"    return\n"
	narrow := "fn narrow(): void =>\n" +
		"    if true =>\n" +
		"        var x: long = 1\n" +
		"    else =>\n" +
		"        var a: long = 1\n" +
		"        var b: long = 2\n" +
		"        var c: long = 3\n" +
		"    return\n"

	if frameOf(t, wide) != frameOf(t, narrow) {
		t.Fatal("branch-max frame sizing must be symmetric regardless of which arm is wider")
	}
}

func TestFrameSizeDoesNotGrowWithParamCount(t *testing.T) {
	small := frameOf(t, "fn f(a: int): void => return\n")
	large := frameOf(t, "fn g(a: int, b: int, c: int, d: int, e: int, f: int): void => return\n")
	// Params live above RBP and never affect local stack usage, so both
	// should still be sitting at the 128-byte floor.
	if small != minFrameSize || large != minFrameSize {
		t.Fatalf("expected params to leave the frame at the floor, got small=%d large=%d", small, large)
	}
}
