package codegen

import (
	"fmt"
	"math"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/cerrors"
	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

var argRegisters = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// emitExpr lowers expr so that its value is left in RAX, per spec.md
// §4.5's expression-emission contract (doubles travel as 64-bit
// bit-patterns, moved to XMM only immediately around a helper call).
func (g *Generator) emitExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		g.emitLiteral(e)
	case *ast.VariableExpr:
		g.emitVariableRead(e)
	case *ast.AssignExpr:
		g.emitAssign(e)
	case *ast.BinaryExpr:
		g.emitBinary(e)
	case *ast.UnaryExpr:
		g.emitUnary(e)
	case *ast.CallExpr:
		g.emitCall(e)
	case *ast.IncrementExpr:
		g.emitIncDec(e.Operand, rtPostIncLong)
	case *ast.DecrementExpr:
		g.emitIncDec(e.Operand, rtPostDecLong)
	case *ast.InterpolatedExpr:
		g.emitInterpolated(e)
	case *ast.ArrayExpr, *ast.ArrayAccessExpr:
		hint := &cerrors.CompilerError{
			Stage:   cerrors.Semantic,
			File:    g.filename,
			Pos:     expr.Pos(),
			Message: "array values are parsed but not lowered; codegen stubs this expression to zero",
		}
		g.logger.Debug(hint.Format(false), "expr", expr.String())
		g.emit("    xor rax, rax")
	default:
		g.emit("    xor rax, rax")
	}
}

func (g *Generator) emitLiteral(e *ast.LiteralExpr) {
	switch e.Token.Kind {
	case token.INT, token.LONG:
		g.emitf("    mov rax, %d", e.Value.Int)
	case token.DOUBLE:
		g.emitf("    mov rax, 0x%x", math.Float64bits(e.Value.Double))
	case token.CHAR:
		g.emitf("    mov rax, %d", e.Value.Char)
	case token.TRUE:
		g.emit("    mov rax, 1")
	case token.FALSE:
		g.emit("    mov rax, 0")
	case token.NIL:
		g.emit("    xor rax, rax")
	case token.STRING:
		label := g.strLits.intern(e.Value.Str)
		g.emitf("    lea rax, [rel %s]", label)
		g.emit("    mov rdi, rax")
		g.alignedCall(rtToStringString)
	default:
		g.emit("    xor rax, rax")
	}
}

func (g *Generator) emitVariableRead(e *ast.VariableExpr) {
	sym, ok := g.table.Lookup(e.Name.Lexeme)
	if !ok {
		g.emit("    xor rax, rax")
		return
	}
	g.emitf("    mov rax, %s", addressOf(sym))
}

// emitAssign evaluates the RHS, frees the slot's previous STRING contents
// (guarded against null) before overwriting, and stores the result.
func (g *Generator) emitAssign(e *ast.AssignExpr) {
	sym, ok := g.table.Lookup(e.Name.Lexeme)
	if !ok {
		g.emitExpr(e.Value)
		return
	}
	g.emitExpr(e.Value)
	if sym.Type.Kind() == types.STRING {
		skip := g.newLabel(".skip_free_")
		g.emit("    push rax") // preserve the new value across the free call
		g.emitf("    mov rdx, %s", addressOf(sym))
		g.emit("    test rdx, rdx")
		g.emitf("    jz %s", skip)
		g.emit("    mov rdi, rdx")
		g.alignedCall(sysFree)
		g.label(skip)
		g.emit("    pop rax")
	}
	g.emitf("    mov %s, rax", addressOf(sym))
}

func (g *Generator) emitBinary(e *ast.BinaryExpr) {
	switch e.Op.Kind {
	case token.AND_AND:
		g.emitShortCircuit(e, false)
		return
	case token.OR_OR:
		g.emitShortCircuit(e, true)
		return
	}

	leftKind := runtimeKind(typeOf(g.table, e.Left))
	rightKind := runtimeKind(typeOf(g.table, e.Right))

	if e.Op.Kind == token.PLUS && (leftKind == types.STRING || rightKind == types.STRING) {
		g.emitStringConcat(e)
		return
	}

	g.emitExpr(e.Left)
	g.emit("    mov rbx, rax")
	g.emitExpr(e.Right)
	g.emit("    mov rcx, rax")

	switch e.Op.Kind {
	case token.EQ, token.NOT_EQ, token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ:
		kind := leftKind
		if kind != types.STRING && rightKind == types.STRING {
			kind = types.STRING
		}
		if kind == types.DOUBLE {
			g.emit("    movq xmm0, rbx")
			g.emit("    movq xmm1, rcx")
		} else {
			g.emit("    mov rdi, rbx")
			g.emit("    mov rsi, rcx")
		}
		g.alignedCall(compareHelperFor(e.Op.Kind, kind))
		return
	}

	kind := leftKind
	if kind != types.DOUBLE && rightKind == types.DOUBLE {
		kind = types.DOUBLE
	}
	if kind == types.DOUBLE {
		g.emit("    movq xmm0, rbx")
		g.emit("    movq xmm1, rcx")
		g.alignedCall(arithHelperFor(e.Op.Kind, types.DOUBLE))
		g.emit("    movq rax, xmm0")
	} else {
		g.emit("    mov rdi, rbx")
		g.emit("    mov rsi, rcx")
		g.alignedCall(arithHelperFor(e.Op.Kind, types.LONG))
	}
}

// emitStringConcat implements string `+`: operand pointers are stashed on
// the stack (not left in caller-saved registers) across the rt_str_concat
// call so owned temporaries can still be freed afterward (spec.md §4.5).
func (g *Generator) emitStringConcat(e *ast.BinaryExpr) {
	g.emitExpr(e.Left)
	g.emit("    push rax") // left pointer
	g.emitExpr(e.Right)
	g.emit("    mov rcx, rax") // right pointer
	g.emit("    pop rbx")      // left pointer (callee-saved, survives the call)
	g.emit("    push rbx")
	g.emit("    push rcx")

	g.emit("    mov rdi, rbx")
	g.emit("    mov rsi, rcx")
	g.alignedCall(rtStrConcat)
	g.emit("    mov rbx, rax") // rbx (callee-saved) now holds the result, survives the frees below

	g.emit("    pop rdi") // right operand pointer
	if isOwnedTemp(e.Right) {
		g.alignedCall(sysFree)
	}
	g.emit("    pop rdi") // left operand pointer
	if isOwnedTemp(e.Left) {
		g.alignedCall(sysFree)
	}
	g.emit("    mov rax, rbx")
}

// isOwnedTemp reports whether expr's value is a freshly produced temporary
// rather than a value still owned by a variable's storage slot (spec.md
// §4.5: "operand results that originate from non-variable expressions are
// owned temporaries").
func isOwnedTemp(expr ast.Expr) bool {
	_, isVar := expr.(*ast.VariableExpr)
	return !isVar
}

func (g *Generator) emitShortCircuit(e *ast.BinaryExpr, isOr bool) {
	id := g.labels.allocate()
	shortLabel := labelName(".L", id) + "_short"
	endLabel := labelName(".L", id) + "_end"

	g.emitExpr(e.Left)
	g.emit("    cmp rax, 0")
	if isOr {
		g.emitf("    jne %s", shortLabel)
	} else {
		g.emitf("    je %s", shortLabel)
	}
	g.emitExpr(e.Right)
	g.emitf("    jmp %s", endLabel)
	g.label(shortLabel)
	if isOr {
		g.emit("    mov rax, 1")
	} else {
		g.emit("    mov rax, 0")
	}
	g.label(endLabel)
}

func (g *Generator) emitUnary(e *ast.UnaryExpr) {
	g.emitExpr(e.Operand)
	switch e.Op.Kind {
	case token.MINUS:
		if runtimeKind(typeOf(g.table, e.Operand)) == types.DOUBLE {
			g.emit("    movq xmm0, rax")
			g.alignedCall(rtNegDouble)
			g.emit("    movq rax, xmm0")
		} else {
			g.emit("    mov rdi, rax")
			g.alignedCall(rtNegLong)
		}
	case token.BANG:
		g.emit("    mov rdi, rax")
		g.alignedCall(rtNotBool)
	}
}

// emitIncDec lowers postfix ++/-- via the in-place rt_post_inc/dec_long
// helper, which takes the variable's address and returns its old value.
func (g *Generator) emitIncDec(operand ast.Expr, helper string) {
	v, ok := operand.(*ast.VariableExpr)
	if !ok {
		g.emitExpr(operand)
		return
	}
	sym, ok := g.table.Lookup(v.Name.Lexeme)
	if !ok {
		g.emitExpr(operand)
		return
	}
	g.emitf("    lea rdi, %s", addressOf(sym))
	g.alignedCall(helper)
}

func (g *Generator) emitCall(e *ast.CallExpr) {
	name, isIdent := e.Callee.(*ast.VariableExpr)
	if isIdent && name.Name.Lexeme == "print" {
		g.emitPrint(e)
		return
	}

	args := e.Arguments
	if len(args) > len(argRegisters) {
		if !g.skipChecks {
			g.err = fmt.Errorf("call to %q: too many arguments for the System V integer register convention (max %d)", e.Callee.String(), len(argRegisters))
			return
		}
		g.logger.Debug("truncating call arguments to the register limit (--skip-checks)", "callee", e.Callee.String(), "argc", len(args))
		args = args[:len(argRegisters)]
	}

	for _, arg := range args {
		g.emitExpr(arg)
		g.emit("    push rax")
	}
	for i := len(args) - 1; i >= 0; i-- {
		g.emitf("    pop %s", argRegisters[i])
	}

	if !isIdent {
		g.emit("    xor rax, rax")
		return
	}
	g.callLocal(name.Name.Lexeme)
}

// emitPrint specializes calls to the built-in `print`: dispatch by
// argument type to rt_print_long/double/char/string/bool, and — when the
// argument is an interpolated expression — print one part at a time
// instead of concatenating first (spec.md §4.5).
func (g *Generator) emitPrint(e *ast.CallExpr) {
	for _, arg := range e.Arguments {
		if interp, ok := arg.(*ast.InterpolatedExpr); ok {
			for _, part := range interp.Parts {
				g.emitPrintValue(part)
			}
			continue
		}
		g.emitPrintValue(arg)
	}
}

func (g *Generator) emitPrintValue(expr ast.Expr) {
	kind := runtimeKind(typeOf(g.table, expr))
	g.emitExpr(expr)
	g.emit("    mov rbx, rax") // preserve across the print call (callee-saved)
	g.emit("    mov rdi, rbx")
	g.alignedCall(printHelperFor(kind))
	if kind == types.STRING && isOwnedTemp(expr) {
		g.emit("    mov rdi, rbx")
		g.alignedCall(sysFree)
	}
}

// emitInterpolated computes an interpolated string as an rvalue: every
// part — even one already of STRING kind — is routed through its
// type-appropriate rt_to_string_* helper so every part is a fresh,
// independently freeable heap copy, then folded left-to-right with
// rt_str_concat, freeing both operands of each fold step (spec.md §4.5).
func (g *Generator) emitInterpolated(e *ast.InterpolatedExpr) {
	if len(e.Parts) == 0 {
		g.emit("    lea rax, [rel empty_str]")
		g.emit("    mov rdi, rax")
		g.alignedCall(rtToStringString)
		return
	}

	g.emitPartAsString(e.Parts[0])
	g.emit("    mov rbx, rax") // running accumulator (callee-saved)

	for _, part := range e.Parts[1:] {
		g.emitPartAsString(part)
		g.emit("    push rbx") // old accumulator, to free after the fold
		g.emit("    push rax") // this part, to free after the fold
		g.emit("    mov rdi, rbx")
		g.emit("    mov rsi, rax")
		g.alignedCall(rtStrConcat)
		g.emit("    mov rbx, rax") // new accumulator

		g.emit("    pop rdi") // this part's pointer
		g.alignedCall(sysFree)
		g.emit("    pop rdi") // old accumulator's pointer
		g.alignedCall(sysFree)
	}
	g.emit("    mov rax, rbx")
}

// emitPartAsString produces one interpolation part's fresh heap-string
// representation, special-casing string literals so a literal run doesn't
// pay for two duplications (once in emitLiteral's own to_string call, once
// here) the way a generic emitExpr-then-convert would.
func (g *Generator) emitPartAsString(part ast.Expr) {
	if lit, ok := part.(*ast.LiteralExpr); ok && lit.Token.Kind == token.STRING {
		label := g.strLits.intern(lit.Value.Str)
		g.emitf("    lea rax, [rel %s]", label)
		g.emit("    mov rdi, rax")
		g.alignedCall(rtToStringString)
		return
	}
	g.emitExpr(part)
	g.emit("    mov rdi, rax")
	g.alignedCall(toStringHelperFor(runtimeKind(typeOf(g.table, part))))
}
