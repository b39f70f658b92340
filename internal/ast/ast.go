// Package ast defines the Abstract Syntax Tree node types for Vex.
package ast

import (
	"bytes"
	"strings"

	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expr is any node that produces a value. Every Expr carries an optional
// ExprType slot. No pass fills it ahead of code generation: codegen's
// typeOf fills and caches it the first time the generator asks for that
// node's type, and a node whose type is never asked for keeps a nil
// ExprType.
type Expr interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// Stmt is a node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// exprBase centralises the ExprType slot so every concrete Expr gets
// GetType/SetType for free by embedding it.
type exprBase struct {
	ExprType types.Type
}

func (e *exprBase) GetType() types.Type  { return e.ExprType }
func (e *exprBase) SetType(t types.Type) { e.ExprType = t }

// Module is the AST root: an ordered sequence of top-level statements plus
// the originating filename.
type Module struct {
	Filename   string
	Statements []Stmt
}

func (m *Module) TokenLiteral() string {
	if len(m.Statements) > 0 {
		return m.Statements[0].TokenLiteral()
	}
	return ""
}

func (m *Module) String() string {
	var out bytes.Buffer
	for _, s := range m.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (m *Module) Pos() token.Position {
	if len(m.Statements) > 0 {
		return m.Statements[0].Pos()
	}
	return token.Position{Line: 1}
}

// ---- Expressions -----------------------------------------------------

// BinaryExpr is left OP right.
type BinaryExpr struct {
	exprBase
	Op    token.Token
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) exprNode()              {}
func (e *BinaryExpr) TokenLiteral() string   { return e.Op.Lexeme }
func (e *BinaryExpr) Pos() token.Position    { return e.Op.Pos() }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.Lexeme + " " + e.Right.String() + ")"
}

// UnaryExpr is OP operand (prefix only: ! -).
type UnaryExpr struct {
	exprBase
	Op      token.Token
	Operand Expr
}

func (e *UnaryExpr) exprNode()            {}
func (e *UnaryExpr) TokenLiteral() string { return e.Op.Lexeme }
func (e *UnaryExpr) Pos() token.Position  { return e.Op.Pos() }
func (e *UnaryExpr) String() string       { return "(" + e.Op.Lexeme + e.Operand.String() + ")" }

// LiteralExpr carries a decoded constant value and its static type.
type LiteralExpr struct {
	exprBase
	Token token.Token
	Value token.Literal
}

func (e *LiteralExpr) exprNode()            {}
func (e *LiteralExpr) TokenLiteral() string { return e.Token.Lexeme }
func (e *LiteralExpr) Pos() token.Position  { return e.Token.Pos() }
func (e *LiteralExpr) String() string       { return e.Token.Lexeme }

// VariableExpr is a bare identifier reference.
type VariableExpr struct {
	exprBase
	Name token.Token
}

func (e *VariableExpr) exprNode()            {}
func (e *VariableExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *VariableExpr) Pos() token.Position  { return e.Name.Pos() }
func (e *VariableExpr) String() string       { return e.Name.Lexeme }

// AssignExpr is `name = value`; assignment is an expression (right-assoc).
type AssignExpr struct {
	exprBase
	Name  token.Token
	Value Expr
}

func (e *AssignExpr) exprNode()            {}
func (e *AssignExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *AssignExpr) Pos() token.Position  { return e.Name.Pos() }
func (e *AssignExpr) String() string       { return e.Name.Lexeme + " = " + e.Value.String() }

// CallExpr is `callee(arguments...)`.
type CallExpr struct {
	exprBase
	Paren     token.Token
	Callee    Expr
	Arguments []Expr
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) TokenLiteral() string { return e.Paren.Lexeme }
func (e *CallExpr) Pos() token.Position  { return e.Callee.Pos() }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// ArrayExpr is an array literal `[e0, e1, ...]`. Parsed fully but compiled
// to a stub value (spec.md §9) — see codegen.
type ArrayExpr struct {
	exprBase
	Bracket  token.Token
	Elements []Expr
}

func (e *ArrayExpr) exprNode()            {}
func (e *ArrayExpr) TokenLiteral() string { return e.Bracket.Lexeme }
func (e *ArrayExpr) Pos() token.Position  { return e.Bracket.Pos() }
func (e *ArrayExpr) String() string {
	elems := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = el.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ArrayAccessExpr is `array[index]`. Parsed fully but compiled to a stub
// value (spec.md §9) — see codegen.
type ArrayAccessExpr struct {
	exprBase
	Bracket token.Token
	Array   Expr
	Index   Expr
}

func (e *ArrayAccessExpr) exprNode()            {}
func (e *ArrayAccessExpr) TokenLiteral() string { return e.Bracket.Lexeme }
func (e *ArrayAccessExpr) Pos() token.Position  { return e.Array.Pos() }
func (e *ArrayAccessExpr) String() string {
	return e.Array.String() + "[" + e.Index.String() + "]"
}

// IncrementExpr is postfix `operand++`.
type IncrementExpr struct {
	exprBase
	Op      token.Token
	Operand Expr
}

func (e *IncrementExpr) exprNode()            {}
func (e *IncrementExpr) TokenLiteral() string { return e.Op.Lexeme }
func (e *IncrementExpr) Pos() token.Position  { return e.Operand.Pos() }
func (e *IncrementExpr) String() string       { return e.Operand.String() + "++" }

// DecrementExpr is postfix `operand--`.
type DecrementExpr struct {
	exprBase
	Op      token.Token
	Operand Expr
}

func (e *DecrementExpr) exprNode()            {}
func (e *DecrementExpr) TokenLiteral() string { return e.Op.Lexeme }
func (e *DecrementExpr) Pos() token.Position  { return e.Operand.Pos() }
func (e *DecrementExpr) String() string       { return e.Operand.String() + "--" }

// InterpolatedExpr is the flat ordered concatenation of literal-run and
// placeholder-expression parts produced from an INTERPOL_STRING token.
type InterpolatedExpr struct {
	exprBase
	Token token.Token
	Parts []Expr
}

func (e *InterpolatedExpr) exprNode()            {}
func (e *InterpolatedExpr) TokenLiteral() string { return e.Token.Lexeme }
func (e *InterpolatedExpr) Pos() token.Position  { return e.Token.Pos() }
func (e *InterpolatedExpr) String() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = p.String()
	}
	return "$\"" + strings.Join(parts, "") + "\""
}
