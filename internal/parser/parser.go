// Package parser implements Vex's recursive-descent / Pratt parser
// (SPEC_FULL.md §4.2): it produces a Module AST plus a symbols.Table of
// global declarations, recovering from syntax errors well enough to
// report all of them via panic-mode synchronisation.
package parser

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/cerrors"
	"github.com/vexlang/vexc/internal/diag"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/symbols"
	"github.com/vexlang/vexc/internal/token"
)

// Precedence levels, lowest to highest (spec.md §4.2).
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	OR          // ||
	AND         // &&
	EQUALITY    // == !=
	COMPARISON  // < <= > >=
	ADDITIVE    // + -
	MULTIPLICATIVE // * / %
	UNARY       // ! - (prefix)
	POSTFIX     // () [] ++ --
)

var precedences = map[token.Kind]int{
	token.ASSIGN:      ASSIGNMENT,
	token.OR_OR:        OR,
	token.AND_AND:       AND,
	token.EQ:          EQUALITY,
	token.NOT_EQ:      EQUALITY,
	token.LESS:        COMPARISON,
	token.LESS_EQ:     COMPARISON,
	token.GREATER:     COMPARISON,
	token.GREATER_EQ:  COMPARISON,
	token.PLUS:        ADDITIVE,
	token.MINUS:       ADDITIVE,
	token.STAR:        MULTIPLICATIVE,
	token.SLASH:       MULTIPLICATIVE,
	token.PERCENT:     MULTIPLICATIVE,
	token.LPAREN:      POSTFIX,
	token.LBRACK:      POSTFIX,
	token.PLUS_PLUS:   POSTFIX,
	token.MINUS_MINUS: POSTFIX,
}

// MaxParams is the parameter/argument ceiling from spec.md §4.2: exceeding
// it is diagnosed but parsing continues.
const MaxParams = 255

// statementStarters are the tokens panic-mode synchronisation treats as
// the start of a new declaration/statement (spec.md §4.2).
var statementStarters = map[token.Kind]bool{
	token.FN:     true,
	token.VAR:    true,
	token.IF:     true,
	token.WHILE:  true,
	token.FOR:    true,
	token.RETURN: true,
	token.IMPORT: true,
}

// Parser is a two-token-lookahead recursive-descent parser over a lazy
// lexer.Lexer token stream.
type Parser struct {
	l        *lexer.Lexer
	filename string

	cur  token.Token
	peek token.Token

	table         *symbols.Table
	diagnostics   diag.Collector
	panicMode     bool
	atModuleScope bool
}

// New creates a Parser over l, attributing diagnostics to filename. The
// returned Parser shares table with the caller so nested interpolation
// sub-parsers (see interpolation.go) can resolve enclosing-scope names.
func New(filename string, l *lexer.Lexer, table *symbols.Table) *Parser {
	p := &Parser{l: l, filename: filename, table: table, atModuleScope: true}
	p.advance()
	p.advance()
	return p
}

// Errors returns every syntax diagnostic recorded during parsing.
func (p *Parser) Errors() []*ParserError { return wrapDiagnostics(p.diagnostics.Errors()) }

// wrapDiagnostics adapts a diag.Collector's raw cerrors.CompilerErrors to
// the []*ParserError shape callers outside this package already depend on.
func wrapDiagnostics(errs []*cerrors.CompilerError) []*ParserError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]*ParserError, len(errs))
	for i, e := range errs {
		out[i] = &ParserError{e}
	}
	return out
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.ScanNext()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) check(k token.Kind) bool { return p.curIs(k) }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.curIs(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect advances past the current token if it matches k, else records a
// syntax error and leaves the cursor in place so synchronisation can act.
func (p *Parser) expect(k token.Kind, context string) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.errorAt(p.cur, "expected "+k.String()+" "+context)
	return false
}

// errorAt records a diagnostic unless the parser is already in panic mode
// (spec.md §4.2: diagnostics are suppressed until synchronisation).
func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.diagnostics.Add(&cerrors.CompilerError{
		Stage:   cerrors.Syntax,
		File:    p.filename,
		Pos:     tok.Pos(),
		Lexeme:  tok.Lexeme,
		Message: message,
	})
}

// synchronize consumes tokens until the previous token was a statement
// terminator or the current token opens a new declaration/statement, then
// exits panic mode (spec.md §4.2).
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) || p.curIs(token.NEWLINE) {
			p.advance()
			return
		}
		if statementStarters[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

// skipNewlines consumes any run of NEWLINE tokens, used at module scope
// and wherever blank lines between declarations are legal.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// consumeTerminator accepts ';' or NEWLINE or EOF, per the `terminator`
// grammar production (spec.md §4.2). It does not error on missing
// terminators at EOF.
func (p *Parser) consumeTerminator() {
	if p.curIs(token.SEMICOLON) || p.curIs(token.NEWLINE) {
		p.advance()
		return
	}
	if p.curIs(token.EOF) || p.curIs(token.DEDENT) {
		return
	}
	p.errorAt(p.cur, "expected ';' or newline to terminate statement")
}

// Parse runs the parser to completion, returning the Module AST on a
// clean parse, or a nil Module plus every diagnostic if any was reported.
// The symbol table is returned in both cases.
func Parse(filename string, source string) (*ast.Module, *symbols.Table, []*ParserError) {
	table := symbols.NewTable()
	l := lexer.New(filename, source)
	p := New(filename, l, table)
	mod := p.parseModule()

	for _, le := range l.Errors() {
		p.diagnostics.Add(&cerrors.CompilerError{
			Stage:   cerrors.Lexical,
			File:    filename,
			Pos:     le.Pos,
			Message: le.Message,
		})
	}
	if p.diagnostics.HasErrors() {
		return nil, table, wrapDiagnostics(p.diagnostics.Errors())
	}
	return mod, table, nil
}

func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{Filename: p.filename}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			mod.Statements = append(mod.Statements, stmt)
		}
		if p.panicMode {
			p.synchronize()
		}
		p.skipNewlines()
	}
	return mod
}
