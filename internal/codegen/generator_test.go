package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vexlang/vexc/internal/parser"
)

// compile parses src and lowers it to assembly, failing the test on any
// parser or codegen error — the six scenarios below all expect success.
func compile(t *testing.T, src string) string {
	t.Helper()
	mod, table, errs := parser.Parse("fixture.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	asm, err := New(table).Generate(mod)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return asm
}

// The six scenarios are spec.md §8's testable end-to-end properties. This
// repository has no assembler/linker collaborator, so each is checked by
// snapshotting the generated assembly text rather than running it.

func TestScenarioPrintArithmeticSum(t *testing.T) {
	asm := compile(t, "fn main(): void => print(1 + 2)\n")
	snaps.MatchSnapshot(t, asm)
}

func TestScenarioStringConcatenationFreesTemporaries(t *testing.T) {
	asm := compile(t, "fn main(): void =>\n    var s: str = \"hello\"\n    print(s + \" world\")\n")
	if !strings.Contains(asm, "extern rt_str_concat") {
		t.Error("expected rt_str_concat to be declared extern")
	}
	if !strings.Contains(asm, "call free") {
		t.Error("expected at least one freed temporary")
	}
	snaps.MatchSnapshot(t, asm)
}

func TestScenarioWhileLoopCounter(t *testing.T) {
	asm := compile(t, "fn main(): void =>\n    var i: int = 0\n    while i < 3 =>\n        i = i + 1\n    print(i)\n")
	snaps.MatchSnapshot(t, asm)
}

func TestScenarioRecursiveFactorial(t *testing.T) {
	src := "fn factorial(n: int): int =>\n    if n <= 1 =>\n        return 1\n    return n * factorial(n - 1)\nfn main(): void =>\n    print(factorial(5))\n"
	asm := compile(t, src)
	if !strings.Contains(asm, "call factorial") {
		t.Error("expected a recursive call to factorial")
	}
	snaps.MatchSnapshot(t, asm)
}

func TestScenarioInterpolatedString(t *testing.T) {
	asm := compile(t, "fn main(): void =>\n    var x: int = 7\n    print($\"x is {x}\")\n")
	snaps.MatchSnapshot(t, asm)
}

func TestScenarioForLoopIncrement(t *testing.T) {
	asm := compile(t, "fn main(): void =>\n    for var j: int = 0; j < 3; j++ =>\n        print(j)\n")
	snaps.MatchSnapshot(t, asm)
}

func TestGenerateDeclaresGNUStackSection(t *testing.T) {
	asm := compile(t, "fn main(): void => print(1)\n")
	if !strings.Contains(asm, "section .note.GNU-stack noalloc noexec nowrite progbits") {
		t.Error("expected a GNU-stack marker section")
	}
}

func TestGenerateReportsTooManyCallArguments(t *testing.T) {
	params := ""
	args := ""
	for i := 0; i < 7; i++ {
		if i > 0 {
			params += ", "
			args += ", "
		}
		params += "p" + string(rune('a'+i)) + ": int"
		args += "1"
	}
	src := "fn many(" + params + "): void => return\nfn main(): void => many(" + args + ")\n"

	mod, table, errs := parser.Parse("fixture.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	_, err := New(table).Generate(mod)
	if err == nil {
		t.Fatal("expected a codegen error for more than 6 call arguments")
	}
}

func TestWithSkipChecksTruncatesOverlongCallsInsteadOfErroring(t *testing.T) {
	params := ""
	args := ""
	for i := 0; i < 7; i++ {
		if i > 0 {
			params += ", "
			args += ", "
		}
		params += "p" + string(rune('a'+i)) + ": int"
		args += "1"
	}
	src := "fn many(" + params + "): void => return\nfn main(): void => many(" + args + ")\n"

	mod, table, errs := parser.Parse("fixture.vx", src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	asm, err := New(table, WithSkipChecks(true)).Generate(mod)
	if err != nil {
		t.Fatalf("unexpected codegen error with skip-checks enabled: %v", err)
	}
	if !strings.Contains(asm, "call many") {
		t.Error("expected the truncated call to still be emitted")
	}
}

func TestGlobalVarInitializerRunsViaVexInit(t *testing.T) {
	src := "var counter: long = 5\nfn main(): void => print(counter)\n"
	asm := compile(t, src)
	if !strings.Contains(asm, "__vex_init") {
		t.Error("expected a synthesized __vex_init routine for the global initializer")
	}
	if !strings.Contains(asm, "call __vex_init") {
		t.Error("expected main's prologue to call __vex_init")
	}
	if !strings.Contains(asm, "counter: dq 0") {
		t.Error("expected a reserved .data slot for the global")
	}
}
