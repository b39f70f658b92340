package codegen

import (
	"testing"

	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

func TestArithHelperForDispatchesByOperatorAndKind(t *testing.T) {
	cases := []struct {
		op   token.Kind
		kind types.Kind
		want string
	}{
		{token.PLUS, types.LONG, rtAddLong},
		{token.MINUS, types.LONG, rtSubLong},
		{token.STAR, types.LONG, rtMulLong},
		{token.SLASH, types.LONG, rtDivLong},
		{token.PERCENT, types.LONG, rtModLong},
		{token.PLUS, types.DOUBLE, rtAddDouble},
		{token.SLASH, types.DOUBLE, rtDivDouble},
	}
	for _, c := range cases {
		if got := arithHelperFor(c.op, c.kind); got != c.want {
			t.Errorf("arithHelperFor(%s, %s) = %s, want %s", c.op, c.kind, got, c.want)
		}
	}
}

func TestCompareHelperForDispatchesByKindFamily(t *testing.T) {
	if got := compareHelperFor(token.EQ, types.LONG); got != rtEqLong {
		t.Errorf("expected rt_eq_long, got %s", got)
	}
	if got := compareHelperFor(token.LESS, types.DOUBLE); got != rtLtDouble {
		t.Errorf("expected rt_lt_double, got %s", got)
	}
	if got := compareHelperFor(token.GREATER_EQ, types.STRING); got != rtGeString {
		t.Errorf("expected rt_ge_string, got %s", got)
	}
}

func TestPrintHelperForAndToStringHelperForCoverEveryKind(t *testing.T) {
	kinds := []types.Kind{types.LONG, types.DOUBLE, types.CHAR, types.STRING, types.BOOL}
	for _, k := range kinds {
		if printHelperFor(k) == "" {
			t.Errorf("printHelperFor(%s) returned empty", k)
		}
		if toStringHelperFor(k) == "" {
			t.Errorf("toStringHelperFor(%s) returned empty", k)
		}
	}
}

func TestLabelAllocatorIsMonotonic(t *testing.T) {
	var la labelAllocator
	a := la.allocate()
	b := la.allocate()
	if b != a+1 {
		t.Fatalf("expected monotonic ids, got %d then %d", a, b)
	}
}

func TestStringRegistryInternsInOrderWithDistinctLabels(t *testing.T) {
	var reg stringRegistry
	l1 := reg.intern("hello")
	l2 := reg.intern("hello")
	if l1 == l2 {
		t.Fatal("expected distinct labels for repeated interning, matching a non-deduping single-pass emitter")
	}
	if len(reg.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reg.entries))
	}
}

func TestNasmEscapeQuotesPrintableRunsAndNumericallyEscapesControlBytes(t *testing.T) {
	got := nasmEscape("a\nb")
	want := `"a", 10, "b", 0`
	if got != want {
		t.Fatalf("nasmEscape(%q) = %q, want %q", "a\nb", got, want)
	}
}

func TestNasmEscapeEmptyStringIsJustATerminator(t *testing.T) {
	if got := nasmEscape(""); got != "0" {
		t.Fatalf("nasmEscape(\"\") = %q, want %q", got, "0")
	}
}
