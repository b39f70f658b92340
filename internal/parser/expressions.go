package parser

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/token"
)

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression implements the full precedence-climbing expression
// grammar of spec.md §4.2, with assignment handled separately as the
// lowest, right-associative level.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseOr()

	if minPrec <= ASSIGNMENT && p.curIs(token.ASSIGN) {
		name, ok := left.(*ast.VariableExpr)
		if !ok {
			p.errorAt(p.cur, "invalid assignment target")
			return left
		}
		eq := p.cur
		p.advance()
		value := p.parseExpression(ASSIGNMENT) // right-associative
		assign := &ast.AssignExpr{Name: name.Name, Value: value}
		_ = eq
		return assign
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.curIs(token.OR_OR) {
		op := p.cur
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.curIs(token.AND_AND) {
		op := p.cur
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.curIs(token.EQ) || p.curIs(token.NOT_EQ) {
		op := p.cur
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for p.curIs(token.LESS) || p.curIs(token.LESS_EQ) || p.curIs(token.GREATER) || p.curIs(token.GREATER_EQ) {
		op := p.cur
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		op := p.cur
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		op := p.cur
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.curIs(token.BANG) || p.curIs(token.MINUS) {
		op := p.cur
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur.Kind {
		case token.LPAREN:
			expr = p.finishCall(expr)
		case token.LBRACK:
			bracket := p.cur
			p.advance()
			index := p.parseExpression(LOWEST)
			p.expect(token.RBRACK, "to close array index")
			expr = &ast.ArrayAccessExpr{Bracket: bracket, Array: expr, Index: index}
		case token.PLUS_PLUS:
			op := p.cur
			p.advance()
			expr = &ast.IncrementExpr{Op: op, Operand: expr}
		case token.MINUS_MINUS:
			op := p.cur
			p.advance()
			expr = &ast.DecrementExpr{Op: op, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	paren := p.cur
	p.advance()
	var args []ast.Expr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		arg := p.parseExpression(LOWEST)
		if len(args) >= MaxParams {
			p.errorAt(p.cur, "too many call arguments (max 255)")
		} else {
			args = append(args, arg)
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "to close call arguments")
	return &ast.CallExpr{Paren: paren, Callee: callee, Arguments: args}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur
	switch tok.Kind {
	case token.INT, token.LONG, token.DOUBLE, token.CHAR, token.STRING, token.TRUE, token.FALSE, token.NIL:
		p.advance()
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}
	case token.INTERPOL_STRING:
		p.advance()
		return p.parseInterpolated(tok)
	case token.IDENT:
		p.advance()
		return &ast.VariableExpr{Name: tok}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression(LOWEST)
		p.expect(token.RPAREN, "to close grouped expression")
		return expr
	case token.LBRACK:
		return p.parseArrayLiteral()
	default:
		p.errorAt(tok, "unexpected token in expression")
		p.advance()
		return nil
	}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	bracket := p.cur
	p.advance()
	var elems []ast.Expr
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACK, "to close array literal")
	return &ast.ArrayExpr{Bracket: bracket, Elements: elems}
}
