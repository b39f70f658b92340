package parser

import "github.com/vexlang/vexc/internal/cerrors"

// ParserError is one syntax diagnostic. It wraps a cerrors.CompilerError
// (Stage: cerrors.Syntax for parser-raised errors, cerrors.Lexical for
// ones relayed from the lexer) so parser diagnostics render through the
// same source-context formatting every other pipeline stage uses, and so
// they can be accumulated in the same internal/diag.Collector the lexer's
// own diagnostics go through (spec.md §4.2/§7).
type ParserError struct {
	*cerrors.CompilerError
}
