package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vexlang/vexc/internal/types"
)

func TestParamAndLocalOffsetsStartAtTheirBases(t *testing.T) {
	table := NewTable()
	table.BeginFunctionScope()

	p := table.Define("n", types.Int, PARAM)
	require.Equal(t, ParamBaseOffset, p.Offset)

	l := table.Define("x", types.Long, LOCAL)
	require.Equal(t, LocalBaseOffset, l.Offset)

	l2 := table.Define("y", types.Long, LOCAL)
	require.Equal(t, LocalBaseOffset+OffsetStep, l2.Offset)
}

func TestPushScopeContinuingSharesButDoesNotWriteBackCounters(t *testing.T) {
	table := NewTable()
	table.BeginFunctionScope()
	table.Define("a", types.Long, LOCAL) // consumes LocalBaseOffset

	branch1 := table.PushScopeContinuing()
	table.Define("b1", types.Long, LOCAL)
	require.Equal(t, LocalBaseOffset+2*OffsetStep, branch1.NextLocalOffset())
	table.PopScope()

	branch2 := table.PushScopeContinuing()
	require.Equal(t, LocalBaseOffset+OffsetStep, branch2.NextLocalOffset(),
		"sibling branch must start from the parent's baseline, unaffected by branch1's allocations")
	table.PopScope()
}

func TestLookupWalksOutwardAndLookupCurrentDoesNot(t *testing.T) {
	table := NewTable()
	table.Define("outer", types.Int, GLOBAL)

	table.PushScope()
	table.Define("inner", types.Long, LOCAL)

	_, ok := table.LookupCurrent("outer")
	require.False(t, ok, "LookupCurrent must not see the enclosing scope")

	_, ok = table.Lookup("outer")
	require.True(t, ok, "Lookup must walk outward to the global scope")
}

func TestOwnSymbolsReturnsDeclarationOrder(t *testing.T) {
	table := NewTable()
	table.BeginFunctionScope()
	table.Define("first", types.Str, LOCAL)
	table.Define("second", types.Str, LOCAL)
	table.Define("third", types.Str, LOCAL)

	names := []string{}
	for _, sym := range table.Current().OwnSymbols() {
		names = append(names, sym.Name)
	}
	require.Equal(t, []string{"first", "second", "third"}, names)
}

func TestDefineGlobalCarriesNoFrameOffset(t *testing.T) {
	table := NewTable()
	sym := table.Define("g", types.Bool, GLOBAL)
	require.Equal(t, 0, sym.Offset)
	require.Equal(t, GLOBAL, sym.Kind)
}

func TestSymbolTypeIsAnIndependentClone(t *testing.T) {
	table := NewTable()
	arr := &types.ArrayType{Element: types.Int}
	sym := table.Define("a", arr, GLOBAL)

	require.NotSame(t, arr, sym.Type, "Define must clone the declared type, not alias the caller's")
	require.True(t, arr.Equals(sym.Type))
}
