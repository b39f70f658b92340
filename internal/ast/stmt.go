package ast

import (
	"bytes"
	"strings"

	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// ExprStmt wraps a bare expression used in statement position.
type ExprStmt struct {
	StartTok   token.Token
	Expression Expr
}

func (s *ExprStmt) stmtNode()             {}
func (s *ExprStmt) TokenLiteral() string  { return s.StartTok.Lexeme }
func (s *ExprStmt) Pos() token.Position   { return s.StartTok.Pos() }
func (s *ExprStmt) String() string        { return s.Expression.String() + ";" }

// VarDecl is `var NAME : TYPE [= initializer]`.
type VarDecl struct {
	Name         token.Token
	DeclaredType types.Type
	Initializer  Expr // nil if absent
}

func (s *VarDecl) stmtNode()            {}
func (s *VarDecl) TokenLiteral() string { return s.Name.Lexeme }
func (s *VarDecl) Pos() token.Position  { return s.Name.Pos() }
func (s *VarDecl) String() string {
	out := "var " + s.Name.Lexeme + " : " + s.DeclaredType.String()
	if s.Initializer != nil {
		out += " = " + s.Initializer.String()
	}
	return out + ";"
}

// Param is one `name : type` function parameter.
type Param struct {
	Name token.Token
	Type types.Type
}

// FunctionDecl is `fn NAME(params...) [: returnType] => body`.
type FunctionDecl struct {
	Name       token.Token
	Params     []Param
	ReturnType types.Type
	Body       []Stmt
}

func (s *FunctionDecl) stmtNode()            {}
func (s *FunctionDecl) TokenLiteral() string { return s.Name.Lexeme }
func (s *FunctionDecl) Pos() token.Position  { return s.Name.Pos() }
func (s *FunctionDecl) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Name.Lexeme + " : " + p.Type.String()
	}
	var out bytes.Buffer
	out.WriteString("fn " + s.Name.Lexeme + "(" + strings.Join(params, ", ") + ") : " + s.ReturnType.String() + " =>\n")
	for _, st := range s.Body {
		out.WriteString("  " + st.String() + "\n")
	}
	return out.String()
}

// ReturnStmt is `return [value]`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if absent
}

func (s *ReturnStmt) stmtNode()            {}
func (s *ReturnStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *ReturnStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// BlockStmt is an indented sequence of statements.
type BlockStmt struct {
	StartTok   token.Token
	Statements []Stmt
}

func (s *BlockStmt) stmtNode()            {}
func (s *BlockStmt) TokenLiteral() string { return s.StartTok.Lexeme }
func (s *BlockStmt) Pos() token.Position  { return s.StartTok.Pos() }
func (s *BlockStmt) String() string {
	var out bytes.Buffer
	for _, st := range s.Statements {
		out.WriteString(st.String())
		out.WriteString("\n")
	}
	return out.String()
}

// IfStmt is `if cond => then [else => alt]`.
type IfStmt struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *IfStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *IfStmt) String() string {
	out := "if " + s.Condition.String() + " => " + s.Then.String()
	if s.Else != nil {
		out += " else => " + s.Else.String()
	}
	return out
}

// WhileStmt is `while cond => body`.
type WhileStmt struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *WhileStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *WhileStmt) String() string {
	return "while " + s.Condition.String() + " => " + s.Body.String()
}

// ForStmt is `for init; cond; increment => body`; each clause is optional.
type ForStmt struct {
	Keyword     token.Token
	Init        Stmt // nil if absent
	Condition   Expr // nil if absent
	Increment   Expr // nil if absent
	Body        Stmt
}

func (s *ForStmt) stmtNode()            {}
func (s *ForStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *ForStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *ForStmt) String() string {
	return "for ... => " + s.Body.String()
}

// ImportStmt is `import NAME`. Generates no code (spec.md §9).
type ImportStmt struct {
	Keyword token.Token
	Name    token.Token
}

func (s *ImportStmt) stmtNode()            {}
func (s *ImportStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *ImportStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *ImportStmt) String() string       { return "import " + s.Name.Lexeme + ";" }
