package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/pkg/acorn"
)

var irEval string

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Compile an Acorn source file and print its emitted IR, without linking",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().StringVarP(&irEval, "eval", "e", "", "compile inline source instead of reading a file")
}

func runIR(_ *cobra.Command, args []string) error {
	mod, reporter, err := compileFromArgs(irEval, args)
	if err != nil {
		reportFailure(reporter, err)
		return err
	}
	fmt.Print(mod.String())
	return nil
}

// compileFromArgs resolves a subcommand's input exactly as readSource
// does, then drives it through pkg/acorn's embeddable API: Compile for
// a real file (so its own imports resolve relative to its directory),
// CompileString for -e's inline text.
func compileFromArgs(eval string, args []string) (*acorn.Module, *diagnostics.Reporter, error) {
	if eval != "" {
		return acorn.CompileString("<eval>", eval)
	}
	if len(args) != 1 {
		return nil, nil, fmt.Errorf("either provide a file path or use -e for inline source")
	}
	return acorn.Compile(args[0])
}

// reportFailure prints every diagnostic a failed compile collected, or
// falls back to the bare error if the reporter never saw any (a file
// that couldn't be read, for instance).
func reportFailure(reporter *diagnostics.Reporter, err error) {
	if reporter != nil && reporter.HasErrors() {
		fmt.Fprintln(os.Stderr, reporter.Format(true))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
