package codegen

import (
	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// helperClass classifies a runtime helper's calling convention
// (SPEC_FULL.md §6). The emitter does not consult it: each emission site
// stages its own arguments.
type helperClass int

const (
	classIntArgs    helperClass = iota // integer/pointer/bool/char args, integer return
	classDoubleArgs                    // double args transported via XMM
	classVoidPrint                     // (value) -> void, argument register class depends on type
)

// helper describes one extern runtime routine this generator may call.
type helper struct {
	Name  string
	Class helperClass
}

// Runtime helper names, grouped by SPEC_FULL.md §6's ABI table. Every name
// referenced anywhere in codegen is declared `extern` exactly once by
// Generator.externs.
const (
	rtPrintLong   = "rt_print_long"
	rtPrintDouble = "rt_print_double"
	rtPrintChar   = "rt_print_char"
	rtPrintString = "rt_print_string"
	rtPrintBool   = "rt_print_bool"

	rtToStringLong   = "rt_to_string_long"
	rtToStringDouble = "rt_to_string_double"
	rtToStringChar   = "rt_to_string_char"
	rtToStringBool   = "rt_to_string_bool"
	rtToStringString = "rt_to_string_string"

	rtStrConcat = "rt_str_concat"

	rtAddLong = "rt_add_long"
	rtSubLong = "rt_sub_long"
	rtMulLong = "rt_mul_long"
	rtDivLong = "rt_div_long"
	rtModLong = "rt_mod_long"

	rtAddDouble = "rt_add_double"
	rtSubDouble = "rt_sub_double"
	rtMulDouble = "rt_mul_double"
	rtDivDouble = "rt_div_double"

	rtEqLong  = "rt_eq_long"
	rtNeLong  = "rt_ne_long"
	rtLtLong  = "rt_lt_long"
	rtLeLong  = "rt_le_long"
	rtGtLong  = "rt_gt_long"
	rtGeLong  = "rt_ge_long"

	rtEqDouble = "rt_eq_double"
	rtNeDouble = "rt_ne_double"
	rtLtDouble = "rt_lt_double"
	rtLeDouble = "rt_le_double"
	rtGtDouble = "rt_gt_double"
	rtGeDouble = "rt_ge_double"

	rtEqString = "rt_eq_string"
	rtNeString = "rt_ne_string"
	rtLtString = "rt_lt_string"
	rtLeString = "rt_le_string"
	rtGtString = "rt_gt_string"
	rtGeString = "rt_ge_string"

	rtNegLong   = "rt_neg_long"
	rtNegDouble = "rt_neg_double"
	rtNotBool   = "rt_not_bool"

	rtPostIncLong = "rt_post_inc_long"
	rtPostDecLong = "rt_post_dec_long"

	sysFree = "free"
)

// printHelperFor returns the rt_print_* helper appropriate for t's kind.
func printHelperFor(k types.Kind) string {
	switch k {
	case types.DOUBLE:
		return rtPrintDouble
	case types.CHAR:
		return rtPrintChar
	case types.STRING:
		return rtPrintString
	case types.BOOL:
		return rtPrintBool
	default:
		return rtPrintLong
	}
}

// toStringHelperFor returns the rt_to_string_* helper for t's kind.
func toStringHelperFor(k types.Kind) string {
	switch k {
	case types.DOUBLE:
		return rtToStringDouble
	case types.CHAR:
		return rtToStringChar
	case types.STRING:
		return rtToStringString
	case types.BOOL:
		return rtToStringBool
	default:
		return rtToStringLong
	}
}

// arithHelperFor returns the runtime helper implementing a binary
// arithmetic operator for operands of runtime kind k (already collapsed
// via runtimeKind, so k is one of LONG or DOUBLE here).
func arithHelperFor(op token.Kind, k types.Kind) string {
	if k == types.DOUBLE {
		switch op {
		case token.PLUS:
			return rtAddDouble
		case token.MINUS:
			return rtSubDouble
		case token.STAR:
			return rtMulDouble
		case token.SLASH:
			return rtDivDouble
		}
		return rtAddDouble
	}
	switch op {
	case token.PLUS:
		return rtAddLong
	case token.MINUS:
		return rtSubLong
	case token.STAR:
		return rtMulLong
	case token.SLASH:
		return rtDivLong
	case token.PERCENT:
		return rtModLong
	}
	return rtAddLong
}

// compareHelperFor returns the rt_*_{long,double,string} comparison
// helper for op over operands of runtime kind k.
func compareHelperFor(op token.Kind, k types.Kind) string {
	family := [6]string{rtEqLong, rtNeLong, rtLtLong, rtLeLong, rtGtLong, rtGeLong}
	switch k {
	case types.DOUBLE:
		family = [6]string{rtEqDouble, rtNeDouble, rtLtDouble, rtLeDouble, rtGtDouble, rtGeDouble}
	case types.STRING:
		family = [6]string{rtEqString, rtNeString, rtLtString, rtLeString, rtGtString, rtGeString}
	}
	switch op {
	case token.EQ:
		return family[0]
	case token.NOT_EQ:
		return family[1]
	case token.LESS:
		return family[2]
	case token.LESS_EQ:
		return family[3]
	case token.GREATER:
		return family[4]
	default:
		return family[5]
	}
}
