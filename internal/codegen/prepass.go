package codegen

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/symbols"
)

// calleeSaveSpace is the byte span reserved for the RBX/R15 spill slots at
// [rbp-8] and [rbp-16] (spec.md §4.5).
const calleeSaveSpace = 16

// minFrameSize is the floor on every emitted `sub rsp, N` (spec.md §4.5).
const minFrameSize = 128

// frameSize runs the stack-usage pre-pass for fn ahead of emission: a dry
// traversal that defines the same locals, in the same order, that the real
// emission walk will define, and reports the largest local-offset
// high-water mark reached by any branch.
//
// This is where the branch-max policy (SPEC_FULL.md §4.4, §9) actually
// lives: PushScopeContinuing starts every sibling branch's counters from
// the same parent baseline and never writes them back, so two IF arms (or
// a WHILE body and the code after it) each get to use the same slot range
// independently — the running high-water mark across the whole traversal
// already is the branch-max, with no separate reconciliation step needed.
// emitFunction repeats this exact traversal during emission, so offsets
// assigned here and offsets assigned during emission always agree.
func frameSize(table *symbols.Table, fn *ast.FunctionDecl) int {
	table.BeginFunctionScope()
	defer table.EndFunctionScope()

	for _, p := range fn.Params {
		table.Define(p.Name.Lexeme, p.Type, symbols.PARAM)
	}

	high := table.Current().NextLocalOffset()
	high = walkBlockFrame(table, fn.Body, high)
	return alignFrame(high - symbols.LocalBaseOffset + calleeSaveSpace)
}

func alignFrame(n int) int {
	if n < minFrameSize {
		return minFrameSize
	}
	return ((n + 15) / 16) * 16
}

func walkBlockFrame(table *symbols.Table, stmts []ast.Stmt, high int) int {
	for _, st := range stmts {
		high = walkStmtFrame(table, st, high)
	}
	return high
}

func walkStmtFrame(table *symbols.Table, st ast.Stmt, high int) int {
	switch s := st.(type) {
	case *ast.VarDecl:
		table.Define(s.Name.Lexeme, s.DeclaredType, symbols.LOCAL)
		if off := table.Current().NextLocalOffset(); off > high {
			high = off
		}
	case *ast.BlockStmt:
		table.PushScopeContinuing()
		if h := walkBlockFrame(table, s.Statements, high); h > high {
			high = h
		}
		table.PopScope()
	case *ast.IfStmt:
		if h := walkStmtFrame(table, s.Then, high); h > high {
			high = h
		}
		if s.Else != nil {
			if h := walkStmtFrame(table, s.Else, high); h > high {
				high = h
			}
		}
	case *ast.WhileStmt:
		if h := walkStmtFrame(table, s.Body, high); h > high {
			high = h
		}
	case *ast.ForStmt:
		table.PushScopeContinuing()
		if s.Init != nil {
			high = walkStmtFrame(table, s.Init, high)
		}
		if h := walkStmtFrame(table, s.Body, high); h > high {
			high = h
		}
		table.PopScope()
	}
	return high
}
