package parser

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/symbols"
	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// parseType parses a type-annotation keyword token into a types.Type.
func (p *Parser) parseType() types.Type {
	tok := p.cur
	var t types.Type
	switch tok.Kind {
	case token.KW_INT:
		t = types.Int
	case token.KW_LONG:
		t = types.Long
	case token.KW_DOUBLE:
		t = types.Double
	case token.KW_CHAR:
		t = types.Char
	case token.KW_STR:
		t = types.Str
	case token.KW_BOOL:
		t = types.Bool
	case token.KW_VOID:
		t = types.Void
	default:
		p.errorAt(tok, "expected type name")
		return types.Void
	}
	p.advance()
	if p.curIs(token.LBRACK) {
		p.advance()
		if !p.expect(token.RBRACK, "to close array type") {
			return t
		}
		return &types.ArrayType{Element: t}
	}
	return t
}

// parseDeclaration implements the `declaration` grammar production.
func (p *Parser) parseDeclaration() ast.Stmt {
	switch p.cur.Kind {
	case token.VAR:
		return p.parseVarDecl()
	case token.FN:
		return p.parseFunctionDecl()
	case token.IMPORT:
		return p.parseImport()
	default:
		return p.parseStatement()
	}
}

// parseVarDecl implements `var_decl := 'var' IDENT ':' type ('=' expr)? terminator`.
func (p *Parser) parseVarDecl() ast.Stmt {
	p.advance() // consume 'var'
	if !p.curIs(token.IDENT) {
		p.errorAt(p.cur, "expected identifier after 'var'")
		return nil
	}
	nameTok := p.cur
	p.advance()
	if !p.expect(token.COLON, "after variable name") {
		return nil
	}
	declType := p.parseType()

	var init ast.Expr
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression(LOWEST)
	}
	p.consumeTerminator()

	kind := symbols.LOCAL
	if p.atModuleScope {
		kind = symbols.GLOBAL
	}
	p.table.Define(nameTok.Lexeme, declType, kind)

	return &ast.VarDecl{Name: nameTok, DeclaredType: declType, Initializer: init}
}

// parseFunctionDecl implements
// `fn_decl := 'fn' IDENT '(' params ')' (':' type)? '=>' (NEWLINE INDENT declaration+ DEDENT | statement)`:
// the body is either an indented block or a single statement on the
// same line as the arrow.
func (p *Parser) parseFunctionDecl() ast.Stmt {
	p.advance() // consume 'fn'
	if !p.curIs(token.IDENT) {
		p.errorAt(p.cur, "expected function name after 'fn'")
		return nil
	}
	nameTok := p.cur
	p.advance()

	if !p.expect(token.LPAREN, "to begin parameter list") {
		return nil
	}
	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.errorAt(p.cur, "expected parameter name")
			break
		}
		pname := p.cur
		p.advance()
		if !p.expect(token.COLON, "after parameter name") {
			break
		}
		ptype := p.parseType()
		if len(params) >= MaxParams {
			p.errorAt(pname, "too many parameters (max 255)")
		} else {
			params = append(params, ast.Param{Name: pname, Type: ptype})
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "to close parameter list")

	returnType := types.Type(types.Void)
	if p.curIs(token.COLON) {
		p.advance()
		returnType = p.parseType()
	}

	paramTypes := make([]types.Type, len(params))
	for i, pr := range params {
		paramTypes[i] = pr.Type
	}
	p.table.Define(nameTok.Lexeme, &types.FunctionType{Return: returnType, Params: paramTypes}, symbols.GLOBAL)

	if !p.expect(token.ARROW, "after function signature") {
		return nil
	}

	wasModuleScope := p.atModuleScope
	p.atModuleScope = false
	p.table.BeginFunctionScope()
	for _, pr := range params {
		p.table.Define(pr.Name.Lexeme, pr.Type, symbols.PARAM)
	}

	var body []ast.Stmt
	if p.curIs(token.NEWLINE) || p.curIs(token.INDENT) {
		body = p.parseIndentedBlock()
	} else if stmt := p.parseStatement(); stmt != nil {
		body = []ast.Stmt{stmt}
	}

	p.table.EndFunctionScope()
	p.atModuleScope = wasModuleScope

	return &ast.FunctionDecl{Name: nameTok, Params: params, ReturnType: returnType, Body: body}
}

// parseIndentedBlock consumes `NEWLINE INDENT declaration+ DEDENT`.
func (p *Parser) parseIndentedBlock() []ast.Stmt {
	p.skipNewlines()
	if !p.expect(token.INDENT, "to begin indented block") {
		return nil
	}
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.panicMode {
			p.synchronize()
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close indented block")
	return stmts
}

// parseBody implements `body := single_statement | (NEWLINE INDENT declaration+ DEDENT)`.
func (p *Parser) parseBody() ast.Stmt {
	if p.curIs(token.NEWLINE) {
		start := p.cur
		p.table.PushScopeContinuing()
		stmts := p.parseIndentedBlock()
		p.table.PopScope()
		return &ast.BlockStmt{StartTok: start, Statements: stmts}
	}
	return p.parseStatement()
}

func (p *Parser) parseImport() ast.Stmt {
	kw := p.cur
	p.advance()
	if !p.curIs(token.IDENT) {
		p.errorAt(p.cur, "expected module name after 'import'")
		return nil
	}
	name := p.cur
	p.advance()
	p.consumeTerminator()
	return &ast.ImportStmt{Keyword: kw, Name: name}
}

// parseStatement implements the `statement` grammar production.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.NEWLINE:
		start := p.cur
		p.table.PushScopeContinuing()
		stmts := p.parseIndentedBlock()
		p.table.PopScope()
		return &ast.BlockStmt{StartTok: start, Statements: stmts}
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.cur
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.ARROW, "after if condition") {
		return nil
	}
	then := p.parseBody()
	var elseBranch ast.Stmt
	p.skipOptionalNewlineBeforeElse()
	if p.curIs(token.ELSE) {
		p.advance()
		if !p.expect(token.ARROW, "after else") {
			return &ast.IfStmt{Keyword: kw, Condition: cond, Then: then}
		}
		elseBranch = p.parseBody()
	}
	return &ast.IfStmt{Keyword: kw, Condition: cond, Then: then, Else: elseBranch}
}

// skipOptionalNewlineBeforeElse allows `else` to appear either on the same
// line as the end of `then`'s block or on its own dedented line.
func (p *Parser) skipOptionalNewlineBeforeElse() {
	if p.curIs(token.NEWLINE) && p.peekIs(token.ELSE) {
		p.advance()
	}
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.cur
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.ARROW, "after while condition") {
		return nil
	}
	body := p.parseBody()
	return &ast.WhileStmt{Keyword: kw, Condition: cond, Body: body}
}

// parseFor implements
// `for := 'for' (var_decl | expression_stmt | ';') expression? ';' expression? '=>' body`.
func (p *Parser) parseFor() ast.Stmt {
	kw := p.cur
	p.advance()

	p.table.PushScopeContinuing()

	var init ast.Stmt
	switch {
	case p.curIs(token.SEMICOLON):
		p.advance()
	case p.curIs(token.VAR):
		init = p.parseVarDecl()
	default:
		init = p.parseExpressionStmt()
	}

	var cond ast.Expr
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMICOLON, "after for condition")

	var inc ast.Expr
	if !p.curIs(token.ARROW) {
		inc = p.parseExpression(LOWEST)
	}
	if !p.expect(token.ARROW, "after for clauses") {
		p.table.PopScope()
		return nil
	}

	body := p.parseStatement()
	p.table.PopScope()

	return &ast.ForStmt{Keyword: kw, Init: init, Condition: cond, Increment: inc, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.cur
	p.advance()
	var value ast.Expr
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) && !p.curIs(token.DEDENT) {
		value = p.parseExpression(LOWEST)
	}
	p.consumeTerminator()
	return &ast.ReturnStmt{Keyword: kw, Value: value}
}

func (p *Parser) parseExpressionStmt() ast.Stmt {
	start := p.cur
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.errorAt(p.cur, "expected expression")
		return nil
	}
	p.consumeTerminator()
	return &ast.ExprStmt{StartTok: start, Expression: expr}
}
