// Package vex is the embeddable front door to the compiler: lex, parse and
// lower a Vex source file to assembly text in one call, the way the
// teacher's pkg/dwscript wraps its own lexer/parser/interpreter behind an
// Engine type. This repository has no evaluator, so Engine here stops at
// code generation rather than execution (SPEC_FULL.md §6.1).
package vex

import (
	"log/slog"
	"strings"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/codegen"
	"github.com/vexlang/vexc/internal/diag"
	"github.com/vexlang/vexc/internal/parser"
	"github.com/vexlang/vexc/internal/symbols"
)

// Option configures an Engine at construction time, mirroring the
// functional-options shape dwscript.New uses for WithTypeCheck et al.
type Option func(*Engine)

// WithBanner emits a `; function NAME` comment above each generated
// function body, handy when reading raw assembly output.
func WithBanner(banner bool) Option {
	return func(e *Engine) { e.banner = banner }
}

// WithLogger overrides the destination for codegen's verbose diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSkipChecks disables the code generator's non-essential validation
// (currently: the call-argument-count check), mirroring the teacher's
// `--skip-type-check` — faster, but a call exceeding the System V integer
// register convention is silently truncated to its first six arguments
// instead of being diagnosed (SPEC_FULL.md §9).
func WithSkipChecks(skip bool) Option {
	return func(e *Engine) { e.skipChecks = skip }
}

// Engine holds the options for one-shot or repeated compilations. It is
// not safe for concurrent use (spec.md §5: one compiler process per file).
type Engine struct {
	banner     bool
	skipChecks bool
	logger     *slog.Logger
}

// New creates an Engine, applying opts over sensible defaults.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseResult is the output of Parse: a successfully built module and its
// live symbol table, or the diagnostics that prevented one.
type ParseResult struct {
	Module *ast.Module
	Table  *symbols.Table
	Errors []*parser.ParserError
}

// Parse lexes and parses source, attributing diagnostics to filename.
func (e *Engine) Parse(filename, source string) *ParseResult {
	mod, table, errs := parser.Parse(filename, source)
	return &ParseResult{Module: mod, Table: table, Errors: errs}
}

// Collector gathers r's diagnostics into an internal/diag.Collector so a
// driver can print them uniformly and decide a process exit code from a
// single source of truth, instead of inspecting len(r.Errors) itself
// (SPEC_FULL.md §7).
func (r *ParseResult) Collector() *diag.Collector {
	c := &diag.Collector{}
	for _, e := range r.Errors {
		c.Add(e.CompilerError)
	}
	return c
}

// DiagnosticError is returned by Compile when the source failed to parse;
// it carries the full diag.Collector rather than a flattened string so
// callers (cmd/vexc) can render each diagnostic individually and derive
// the process exit code from Collector.ExitCode (spec.md §7).
type DiagnosticError struct {
	Collector *diag.Collector
}

func (d *DiagnosticError) Error() string {
	var b strings.Builder
	for i, e := range d.Collector.Errors() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Compile runs the full pipeline — lex, parse, generate — and returns the
// resulting NASM-syntax assembly text. A non-nil error is either a
// *DiagnosticError (parse diagnostics) or a fatal codegen error
// (SPEC_FULL.md §7: SemanticError/ResourceError during codegen is
// terminal, no partial output is returned).
func (e *Engine) Compile(filename, source string) (string, error) {
	result := e.Parse(filename, source)
	if len(result.Errors) > 0 {
		return "", &DiagnosticError{Collector: result.Collector()}
	}

	gen := codegen.New(result.Table,
		codegen.WithBanner(e.banner),
		codegen.WithLogger(e.logger),
		codegen.WithSkipChecks(e.skipChecks),
	)
	asm, err := gen.Generate(result.Module)
	if err != nil {
		return "", err
	}
	return asm, nil
}
