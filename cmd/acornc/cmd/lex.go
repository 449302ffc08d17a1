package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acorn-lang/acornc/internal/lexer"
	"github.com/acorn-lang/acornc/pkg/token"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyBad  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Acorn source file and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&lexOnlyBad, "only-errors", false, "show only lexical errors")
}

func runLex(_ *cobra.Command, args []string) error {
	filename, source, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(filename, source)
	for {
		tok, ok := l.NextToken()
		if !lexOnlyBad {
			printToken(tok)
		}
		if !ok {
			break
		}
	}

	if len(l.Errors()) > 0 {
		for _, e := range l.Errors() {
			fmt.Fprintln(os.Stderr, e.Format(true))
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-9s]", tok.Kind)
	if tok.Lexeme != "" {
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Location)
	}
	fmt.Println(out)
}

// readSource resolves a lex/parse subcommand's input: inline
// text from -e, or the single positional file argument.
func readSource(eval string, args []string) (filename, source string, err error) {
	if eval != "" {
		return "<eval>", eval, nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(content), nil
}
