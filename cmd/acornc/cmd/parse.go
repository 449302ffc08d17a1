package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/lexer"
	"github.com/acorn-lang/acornc/internal/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Acorn source file and print its top-level declarations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	filename, source, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	reporter := diagnostics.NewReporter()
	l := lexer.New(filename, source)
	file := parser.New(filename, source, l, reporter).Parse(filename)
	if reporter.HasErrors() {
		fmt.Fprintln(os.Stderr, reporter.Format(true))
		return fmt.Errorf("parsing failed with %d error(s)", len(reporter.Errors()))
	}

	fmt.Printf("%s: %d top-level declaration(s)\n", filename, len(file.Decls))
	for _, holder := range file.Decls {
		fmt.Printf("  %s\n", holder.Main.String())
	}
	return nil
}
