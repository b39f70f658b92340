// Package diag is a small structured collector shared by the lexer and
// parser so the driver (cmd/vexc) can print one diagnostic per error and
// decide the process exit code, per SPEC_FULL.md §7.
package diag

import "github.com/vexlang/vexc/internal/cerrors"

// Collector accumulates CompilerErrors without aborting the owning stage,
// matching the parser's "accumulate all recoverable errors" policy
// (spec.md §7).
type Collector struct {
	errs []*cerrors.CompilerError
}

// Add records a diagnostic.
func (c *Collector) Add(e *cerrors.CompilerError) {
	c.errs = append(c.errs, e)
}

// HasErrors reports whether any diagnostic was recorded.
func (c *Collector) HasErrors() bool { return len(c.errs) > 0 }

// Errors returns the recorded diagnostics in report order.
func (c *Collector) Errors() []*cerrors.CompilerError { return c.errs }

// Reset clears all recorded diagnostics.
func (c *Collector) Reset() { c.errs = nil }

// ExitCode reports the process exit code a driver should use for this
// collector's contents: 0 if nothing was recorded, 2 otherwise (non-zero
// on any diagnostic, per spec.md §6's CLI contract).
func (c *Collector) ExitCode() int {
	if c.HasErrors() {
		return 2
	}
	return 0
}
