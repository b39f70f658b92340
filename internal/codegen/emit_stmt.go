package codegen

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/symbols"
	"github.com/vexlang/vexc/internal/types"
)

func (g *Generator) emitBlock(stmts []ast.Stmt) {
	for _, st := range stmts {
		g.emitStmt(st)
	}
}

func (g *Generator) emitStmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(s)
	case *ast.ExprStmt:
		g.emitExpr(s.Expression)
		g.freeTemp(s.Expression)
	case *ast.ReturnStmt:
		g.emitReturn(s)
	case *ast.BlockStmt:
		g.table.PushScopeContinuing()
		scope := g.table.Current()
		g.emitBlock(s.Statements)
		g.freeScopeStrings(scope, false)
		g.table.PopScope()
	case *ast.IfStmt:
		g.emitIf(s)
	case *ast.WhileStmt:
		g.emitWhile(s)
	case *ast.ForStmt:
		g.emitFor(s)
	case *ast.ImportStmt:
		// generates no code (SPEC_FULL.md §10): imports exist for the
		// parser's benefit only, a single translation unit has no linker
		// concept to resolve.
	}
}

func (g *Generator) emitVarDecl(s *ast.VarDecl) {
	sym := g.table.Define(s.Name.Lexeme, s.DeclaredType, symbols.LOCAL)
	if s.Initializer != nil {
		g.emitExpr(s.Initializer)
	} else {
		g.emit("    xor rax, rax")
	}
	g.emitf("    mov %s, rax", addressOf(sym))
}

func (g *Generator) emitReturn(s *ast.ReturnStmt) {
	if s.Value != nil {
		g.emitExpr(s.Value)
	} else {
		g.emit("    xor rax, rax")
	}
	g.emitf("    jmp %s", g.returnLabel)
}

func (g *Generator) emitIf(s *ast.IfStmt) {
	id := g.labels.allocate()
	elseLabel := labelName(".L", id) + "_else"
	endLabel := labelName(".L", id) + "_end"

	g.emitExpr(s.Condition)
	g.emit("    cmp rax, 0")
	if s.Else != nil {
		g.emitf("    je %s", elseLabel)
	} else {
		g.emitf("    je %s", endLabel)
	}
	g.emitStmt(s.Then)
	if s.Else != nil {
		g.emitf("    jmp %s", endLabel)
		g.label(elseLabel)
		g.emitStmt(s.Else)
	}
	g.label(endLabel)
}

func (g *Generator) emitWhile(s *ast.WhileStmt) {
	id := g.labels.allocate()
	startLabel := labelName(".L", id) + "_start"
	endLabel := labelName(".L", id) + "_end"

	g.label(startLabel)
	g.emitExpr(s.Condition)
	g.emit("    cmp rax, 0")
	g.emitf("    je %s", endLabel)
	g.emitStmt(s.Body)
	g.emitf("    jmp %s", startLabel)
	g.label(endLabel)
}

// emitFor wraps its initializer, condition, body and increment in one
// PushScopeContinuing scope (matching parser.parseFor) and frees that
// scope's STRING locals on loop exit (spec.md §4.5's "for-scope exits").
func (g *Generator) emitFor(s *ast.ForStmt) {
	g.table.PushScopeContinuing()
	scope := g.table.Current()

	if s.Init != nil {
		g.emitStmt(s.Init)
	}

	id := g.labels.allocate()
	startLabel := labelName(".L", id) + "_start"
	endLabel := labelName(".L", id) + "_end"

	g.label(startLabel)
	if s.Condition != nil {
		g.emitExpr(s.Condition)
		g.emit("    cmp rax, 0")
		g.emitf("    je %s", endLabel)
	}
	g.emitStmt(s.Body)
	if s.Increment != nil {
		g.emitExpr(s.Increment)
	}
	g.emitf("    jmp %s", startLabel)
	g.label(endLabel)

	g.freeScopeStrings(scope, false)
	g.table.PopScope()
}

// freeScopeStrings frees every STRING LOCAL declared directly in scope,
// skipping null slots (spec.md §4.5). guardRax additionally skips a slot
// whose pointer equals RAX — only true at a function's own epilogue,
// where RAX may hold the value being returned. PARAM-kind symbols are
// never freed here; parameter string ownership stays with the caller.
func (g *Generator) freeScopeStrings(scope *symbols.Scope, guardRax bool) {
	for _, sym := range scope.OwnSymbols() {
		if sym.Kind != symbols.LOCAL || sym.Type.Kind() != types.STRING {
			continue
		}
		skip := g.newLabel(".skip_free_")
		g.emitf("    mov rcx, %s", addressOf(sym))
		g.emit("    test rcx, rcx")
		g.emitf("    jz %s", skip)
		if guardRax {
			g.emit("    cmp rcx, rax")
			g.emitf("    je %s", skip)
		}
		if guardRax {
			g.emit("    push rax") // keep the return value across free
		}
		g.emit("    mov rdi, rcx")
		g.alignedCall(sysFree)
		if guardRax {
			g.emit("    pop rax")
		}
		g.label(skip)
	}
}

// freeTemp frees the unconsumed STRING value an expression-statement
// leaves in RAX when nothing binds it to a variable (e.g. a bare
// interpolated-string expression used only for its side effects).
func (g *Generator) freeTemp(expr ast.Expr) {
	if typeOf(g.table, expr).Kind() != types.STRING {
		return
	}
	switch expr.(type) {
	case *ast.AssignExpr, *ast.VariableExpr:
		return
	}
	skip := g.newLabel(".skip_free_")
	g.emit("    mov rcx, rax")
	g.emit("    test rcx, rcx")
	g.emitf("    jz %s", skip)
	g.emit("    mov rdi, rcx")
	g.alignedCall(sysFree)
	g.label(skip)
}
