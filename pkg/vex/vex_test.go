package vex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileSimpleFunction(t *testing.T) {
	src := "fn main(): void => print(1 + 2)\n"

	asm, err := New().Compile("main.vx", src)
	require.NoError(t, err)
	require.Contains(t, asm, "global main")
	require.Contains(t, asm, "extern rt_print_long")
	require.Contains(t, asm, "extern rt_add_long")
}

func TestCompileReportsParserErrors(t *testing.T) {
	src := "fn main(): void => print(\n"

	_, err := New().Compile("broken.vx", src)
	require.Error(t, err)

	var diagErr *DiagnosticError
	require.ErrorAs(t, err, &diagErr)
	require.True(t, diagErr.Collector.HasErrors())
	require.Equal(t, 2, diagErr.Collector.ExitCode())
}

func TestParseResultCollectorMirrorsItsErrors(t *testing.T) {
	src := "fn main(): void => print(\n"

	result := New().Parse("broken.vx", src)
	require.NotEmpty(t, result.Errors)

	collector := result.Collector()
	require.True(t, collector.HasErrors())
	require.Len(t, collector.Errors(), len(result.Errors))
}

func TestWithSkipChecksTruncatesOverlongCallsInsteadOfErroring(t *testing.T) {
	src := "fn many(a: int, b: int, c: int, d: int, e: int, f: int): void => return\n" +
		"fn main(): void => many(1, 2, 3, 4, 5, 6, 7)\n"

	_, err := New().Compile("overlong.vx", src)
	require.Error(t, err)

	asm, err := New(WithSkipChecks(true)).Compile("overlong.vx", src)
	require.NoError(t, err)
	require.Contains(t, asm, "call many")
}

func TestCompileStringConcatenationFreesOwnedTemporaries(t *testing.T) {
	src := "fn main(): void =>\n" +
		"    var greeting: str = \"hi \" + \"there\"\n" +
		"    print(greeting)\n"

	asm, err := New().Compile("concat.vx", src)
	require.NoError(t, err)
	require.Contains(t, asm, "extern rt_str_concat")
	require.True(t, strings.Count(asm, "call free") >= 1)
}

func TestParseExposesLiveSymbolTable(t *testing.T) {
	src := "fn main(): void =>\n    var x: long = 5\n"

	result := New().Parse("vars.vx", src)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Table)
	require.NotNil(t, result.Module)
}

func TestWithBannerAnnotatesFunctions(t *testing.T) {
	src := "fn main(): void => print(1)\n"

	asm, err := New(WithBanner(true)).Compile("banner.vx", src)
	require.NoError(t, err)
	require.Contains(t, asm, "; function main")
}
