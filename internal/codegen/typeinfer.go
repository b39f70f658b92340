package codegen

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/symbols"
	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// typeOf resolves and caches expr's static type against table, performing
// the small amount of operand-promotion inference Vex's type system needs
// (spec.md §9 excludes generics and bidirectional inference, so this is
// the entire "semantic preparation" the §3 ExprType invariant asks for).
// It is safe to call repeatedly; a cached ExprType short-circuits re-walk.
func typeOf(table *symbols.Table, expr ast.Expr) types.Type {
	if expr == nil {
		return types.Void
	}
	if t := expr.GetType(); t != nil {
		return t
	}

	var t types.Type
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		t = literalType(e.Token)
	case *ast.VariableExpr:
		if sym, ok := table.Lookup(e.Name.Lexeme); ok {
			t = sym.Type
		} else {
			t = types.Void
		}
	case *ast.AssignExpr:
		t = typeOf(table, e.Value)
	case *ast.UnaryExpr:
		t = typeOf(table, e.Operand)
	case *ast.BinaryExpr:
		t = binaryType(table, e)
	case *ast.CallExpr:
		t = callType(table, e)
	case *ast.IncrementExpr:
		t = typeOf(table, e.Operand)
	case *ast.DecrementExpr:
		t = typeOf(table, e.Operand)
	case *ast.InterpolatedExpr:
		t = types.Str
	case *ast.ArrayExpr:
		elem := types.Type(types.Void)
		if len(e.Elements) > 0 {
			elem = typeOf(table, e.Elements[0])
		}
		t = &types.ArrayType{Element: elem}
	case *ast.ArrayAccessExpr:
		if at, ok := typeOf(table, e.Array).(*types.ArrayType); ok {
			t = at.Element
		} else {
			t = types.Void
		}
	default:
		t = types.Void
	}
	expr.SetType(t)
	return t
}

func literalType(tok token.Token) types.Type {
	switch tok.Kind {
	case token.INT:
		return types.Int
	case token.LONG:
		return types.Long
	case token.DOUBLE:
		return types.Double
	case token.CHAR:
		return types.Char
	case token.STRING:
		return types.Str
	case token.TRUE, token.FALSE:
		return types.Bool
	case token.NIL:
		return types.Nil
	default:
		return types.Void
	}
}

func binaryType(table *symbols.Table, e *ast.BinaryExpr) types.Type {
	switch e.Op.Kind {
	case token.EQ, token.NOT_EQ, token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ,
		token.AND_AND, token.OR_OR:
		return types.Bool
	}
	left := typeOf(table, e.Left)
	right := typeOf(table, e.Right)
	if e.Op.Kind == token.PLUS && (left.Kind() == types.STRING || right.Kind() == types.STRING) {
		return types.Str
	}
	if left.Kind() == types.DOUBLE || right.Kind() == types.DOUBLE {
		return types.Double
	}
	return types.Long
}

func callType(table *symbols.Table, e *ast.CallExpr) types.Type {
	name, ok := e.Callee.(*ast.VariableExpr)
	if !ok {
		return types.Void
	}
	if name.Name.Lexeme == "print" {
		return types.Void
	}
	sym, ok := table.Lookup(name.Name.Lexeme)
	if !ok {
		return types.Void
	}
	if ft, ok := sym.Type.(*types.FunctionType); ok {
		return ft.Return
	}
	return types.Void
}

// runtimeKind collapses INT into LONG, Vex's two whole-number spellings
// sharing one runtime representation and one family of rt_*_long helpers.
func runtimeKind(t types.Type) types.Kind {
	if t.Kind() == types.INT {
		return types.LONG
	}
	return t.Kind()
}
