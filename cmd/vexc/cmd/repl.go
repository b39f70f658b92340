package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/cmd/vexc/repl"
)

const vexBanner = `__     __
\ \   / /_  ___  __
 \ \ / /\ \/ / |/ /
  \ V /  >  <|   <
   \_/  /_/\_\_|\_\`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive lex/parse inspector",
	Long: `Start an interactive REPL that lexes and parses each line of Vex
you type, reporting the resulting AST shape or diagnostics. It does not
execute Vex — codegen.Generator is the only backend this compiler has.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	r := repl.New(vexBanner, Version, strings.Repeat("-", 40), "vex> ")
	r.Start(os.Stdout)
	return nil
}
