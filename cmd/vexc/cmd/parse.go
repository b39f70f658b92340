package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/pkg/vex"
)

var (
	parseEvalExpr string
	dumpAST       bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Vex source and display the AST",
	Long: `Parse Vex source code and print it back out, or dump its AST shape
with --dump-ast.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the module's statement-level AST shape")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	result := vex.New().Parse(filename, input)
	if len(result.Errors) > 0 {
		collector := result.Collector()
		for _, e := range collector.Errors() {
			fmt.Println(e.Format(false))
		}
		os.Exit(collector.ExitCode())
	}

	if dumpAST {
		fmt.Printf("Module %s (%d statements)\n", filename, len(result.Module.Statements))
		for _, stmt := range result.Module.Statements {
			dumpStmt(stmt, 1)
		}
		return nil
	}
	fmt.Println(result.Module.String())
	return nil
}

func dumpStmt(s ast.Stmt, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch n := s.(type) {
	case *ast.FunctionDecl:
		fmt.Printf("%sFunctionDecl %s (%d params)\n", indent, n.Name.Lexeme, len(n.Params))
		for _, st := range n.Body {
			dumpStmt(st, depth+1)
		}
	case *ast.BlockStmt:
		fmt.Printf("%sBlockStmt (%d statements)\n", indent, len(n.Statements))
		for _, st := range n.Statements {
			dumpStmt(st, depth+1)
		}
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt %s\n", indent, n.Condition.String())
		dumpStmt(n.Then, depth+1)
		if n.Else != nil {
			fmt.Printf("%selse\n", indent)
			dumpStmt(n.Else, depth+1)
		}
	case *ast.WhileStmt:
		fmt.Printf("%sWhileStmt %s\n", indent, n.Condition.String())
		dumpStmt(n.Body, depth+1)
	case *ast.ForStmt:
		fmt.Printf("%sForStmt\n", indent)
		dumpStmt(n.Body, depth+1)
	default:
		fmt.Printf("%s%T: %s\n", indent, s, s.String())
	}
}
