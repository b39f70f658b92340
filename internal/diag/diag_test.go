package diag

import (
	"testing"

	"github.com/vexlang/vexc/internal/cerrors"
)

func TestZeroValueCollectorHasNoErrors(t *testing.T) {
	var c Collector
	if c.HasErrors() {
		t.Fatal("expected a fresh collector to report no errors")
	}
	if c.ExitCode() != 0 {
		t.Fatalf("expected exit code 0, got %d", c.ExitCode())
	}
	if len(c.Errors()) != 0 {
		t.Fatal("expected no recorded diagnostics")
	}
}

func TestAddAccumulatesInReportOrder(t *testing.T) {
	var c Collector
	first := &cerrors.CompilerError{Stage: cerrors.Lexical, Message: "first"}
	second := &cerrors.CompilerError{Stage: cerrors.Syntax, Message: "second"}
	c.Add(first)
	c.Add(second)

	got := c.Errors()
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("expected [first, second] in order, got %v", got)
	}
	if !c.HasErrors() {
		t.Fatal("expected HasErrors to be true after Add")
	}
	if c.ExitCode() != 2 {
		t.Fatalf("expected a non-zero exit code once diagnostics exist, got %d", c.ExitCode())
	}
}

func TestResetClearsAccumulatedDiagnostics(t *testing.T) {
	var c Collector
	c.Add(&cerrors.CompilerError{Message: "boom"})
	c.Reset()
	if c.HasErrors() {
		t.Fatal("expected Reset to clear all diagnostics")
	}
	if c.ExitCode() != 0 {
		t.Fatalf("expected exit code 0 after Reset, got %d", c.ExitCode())
	}
}
