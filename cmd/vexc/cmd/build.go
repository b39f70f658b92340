package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vexlang/vexc/pkg/vex"
)

var (
	buildEvalExpr string
	outputFile    string
	banner        bool
	skipChecks    bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a Vex file to x86-64 assembly",
	Long: `Compile a Vex program to NASM-syntax x86-64 System V assembly text.

vexc does not assemble or link the output; pipe it to nasm/ld yourself,
or redirect with -o.

Examples:
  vexc build script.vx
  vexc build script.vx -o script.s
  vexc build -e "fn main(): void => print(1 + 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: buildScript,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.s, or stdout for -e)")
	buildCmd.Flags().BoolVar(&banner, "banner", false, "annotate each function with a `; function NAME` comment")
	buildCmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "skip non-essential codegen validation (faster but less safe)")
}

func buildScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(buildEvalExpr, args)
	if err != nil {
		return err
	}

	logger := verboseLogger(cmd)
	engine := vex.New(vex.WithBanner(banner), vex.WithLogger(logger), vex.WithSkipChecks(skipChecks))

	asm, err := engine.Compile(filename, input)
	if err != nil {
		var diagErr *vex.DiagnosticError
		if errors.As(err, &diagErr) {
			for _, e := range diagErr.Collector.Errors() {
				fmt.Fprintln(os.Stderr, e.Format(true))
			}
			os.Exit(diagErr.Collector.ExitCode())
		}
		return fmt.Errorf("compilation failed:\n%w", err)
	}

	outFile := outputFile
	if outFile == "" {
		if filename == "<eval>" {
			fmt.Print(asm)
			return nil
		}
		ext := filepath.Ext(filename)
		outFile = strings.TrimSuffix(filename, ext) + ".s"
	}

	if err := os.WriteFile(outFile, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}
	fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	return nil
}
