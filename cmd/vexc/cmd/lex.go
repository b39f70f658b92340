package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/token"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Vex file or expression",
	Long: `Tokenize (lex) a Vex program and print the resulting tokens.

This command is useful for debugging the indent-sensitive lexer.

Examples:
  vexc lex script.vx
  vexc lex -e "var x: long = 42"
  vexc lex --show-type --show-pos script.vx
  vexc lex --only-errors script.vx`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token line numbers")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(filename, input, lexer.WithTracing(verbose))

	tokenCount, errorCount := 0, 0
	for {
		tok := l.ScanNext()
		if onlyErrors && tok.Kind != token.ERROR {
			if tok.Kind == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Kind == token.ERROR {
			errorCount++
		}
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-16s]", tok.Kind)
	}
	if tok.Kind == token.EOF {
		output += " EOF"
	} else if tok.Kind == token.ERROR {
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Lexeme)
	} else if tok.Lexeme == "" {
		output += fmt.Sprintf(" %s", tok.Kind)
	} else {
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if showPos {
		output += fmt.Sprintf(" @%d", tok.Line)
	}
	fmt.Println(output)
}
