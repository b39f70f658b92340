// Package repl is an interactive line-level inspector for Vex source: it
// lexes and parses each line the user enters and reports the resulting
// token/AST shape. It does not interpret Vex — codegen is the only
// backend this repository has (SPEC_FULL.md §6.1), so unlike a typical
// language REPL there is no value to print, only diagnostics or a parsed
// statement's own String() rendering.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/vexlang/vexc/pkg/vex"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
}

// New creates a Repl with the given banner, version, separator line, and
// prompt string.
func New(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "vexc "+r.Version+" — interactive lex/parse inspector")
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type a Vex statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "This REPL parses each line; it does not execute Vex.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop over readline until '.exit', EOF, or a
// readline error.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	engine := vex.New()
	lineNo := 0

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Goodbye.\n"))
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Goodbye.\n"))
			break
		}

		rl.SaveHistory(line)
		lineNo++
		r.executeWithRecovery(writer, engine, line, lineNo)
	}
}

// executeWithRecovery parses one line and reports either its diagnostics
// or the parsed statements' String() rendering, recovering from any panic
// so one bad line never kills the session.
func (r *Repl) executeWithRecovery(writer io.Writer, engine *vex.Engine, line string, lineNo int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[panic] %v\n", recovered)
		}
	}()

	filename := "<repl>"
	result := engine.Parse(filename, line)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	if result.Module == nil || len(result.Module.Statements) == 0 {
		return
	}
	for _, stmt := range result.Module.Statements {
		yellowColor.Fprintf(writer, "%s\n", stmt.String())
	}
}
