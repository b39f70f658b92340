// Package cerrors formats vexc diagnostics with source context, line
// information, and a caret indicator, the way internal/errors did for the
// teacher compiler this package is modelled on.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/vexlang/vexc/internal/token"
)

// Stage identifies which pipeline stage raised a diagnostic, matching the
// LexicalError/SyntaxError/SemanticError/ResourceError taxonomy of
// SPEC_FULL.md §7.
type Stage int

const (
	Lexical Stage = iota
	Syntax
	Semantic
	Resource
)

func (s Stage) String() string {
	switch s {
	case Lexical:
		return "LexicalError"
	case Syntax:
		return "SyntaxError"
	case Semantic:
		return "SemanticError"
	case Resource:
		return "ResourceError"
	default:
		return "Error"
	}
}

// CompilerError is a single diagnostic with enough context to render a
// "[<file>:<line>] Error at '<lexeme>': <message>" style report.
type CompilerError struct {
	Stage   Stage
	File    string
	Pos     token.Position
	Lexeme  string
	Message string
	Source  string // full source text, for caret rendering; may be empty
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the diagnostic, optionally with ANSI color for terminal
// output (mirrors internal/errors.CompilerError.Format's color flag).
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	loc := fmt.Sprintf("[%s:%d]", e.File, e.Pos.Line)
	if e.Lexeme != "" {
		fmt.Fprintf(&sb, "%s Error at '%s': %s", loc, e.Lexeme, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s Error: %s", loc, e.Message)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		sb.WriteString("\n")
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(line int) string {
	if e.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
