package parser

import (
	"strings"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/cerrors"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/token"
)

// parseInterpolated splits an INTERPOL_STRING token's raw payload into
// literal-run and placeholder-expression parts (spec.md §4.2). Each `{…}`
// span is lexed into a fresh nested token stream and parsed with a nested
// Parser sharing the enclosing symbol table, so placeholder expressions
// can reference names visible at the interpolation site.
func (p *Parser) parseInterpolated(tok token.Token) ast.Expr {
	payload := tok.Literal.Str
	var parts []ast.Expr
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() == 0 {
			return
		}
		lit := token.Token{Kind: token.STRING, Lexeme: literal.String(), Line: tok.Line}
		lit.Literal.Str = literal.String()
		parts = append(parts, &ast.LiteralExpr{Token: lit, Value: lit.Literal})
		literal.Reset()
	}

	i := 0
	for i < len(payload) {
		ch := payload[i]
		if ch == '{' {
			depth := 1
			j := i + 1
			for j < len(payload) && depth > 0 {
				switch payload[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			if depth != 0 {
				p.errorAt(tok, "unterminated '{' in interpolated string")
				break
			}
			flushLiteral()
			placeholderSrc := payload[i+1 : j]
			parts = append(parts, p.parsePlaceholder(tok, placeholderSrc))
			i = j + 1
			continue
		}
		literal.WriteByte(ch)
		i++
	}
	flushLiteral()

	return &ast.InterpolatedExpr{Token: tok, Parts: parts}
}

// parsePlaceholder lexes and parses one `{…}` span's inner text as a
// standalone expression using a nested lexer and nested Parser that share
// this Parser's symbols.Table.
func (p *Parser) parsePlaceholder(owner token.Token, src string) ast.Expr {
	nestedLexer := lexer.New(p.filename, src)
	nested := New(p.filename, nestedLexer, p.table)
	nested.atModuleScope = p.atModuleScope

	if nested.curIs(token.EOF) {
		p.errorAt(owner, "empty interpolation placeholder")
		return &ast.LiteralExpr{Token: owner, Value: token.Literal{}}
	}

	expr := nested.parseExpression(LOWEST)
	nestedErrs := nested.diagnostics.Errors()
	for _, e := range nestedErrs {
		p.diagnostics.Add(&cerrors.CompilerError{
			Stage:   cerrors.Syntax,
			File:    p.filename,
			Pos:     owner.Pos(),
			Lexeme:  e.Lexeme,
			Message: e.Message,
		})
	}
	if len(nestedErrs) > 0 {
		p.panicMode = true
	}
	return expr
}
