package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	buildEval   string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile an Acorn source file and write its verified IR to a .ll file",
	Long: `build runs the full pipeline (lex, parse, symbol-build, infer, check,
reify, emit), verifies the resulting module, and writes its textual IR
to disk. Linking the result into an executable is outside acornc's
scope; pair the output with a separate llc/clang invocation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildEval, "eval", "e", "", "compile inline source instead of reading a file")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: <input>.ll)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	mod, reporter, err := compileFromArgs(buildEval, args)
	if err != nil {
		reportFailure(reporter, err)
		return err
	}
	if err := mod.Verify(); err != nil {
		return fmt.Errorf("module failed verification: %w", err)
	}

	out := buildOutput
	if out == "" {
		out = defaultOutputPath(buildEval, args)
	}
	if err := os.WriteFile(out, []byte(mod.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	} else {
		fmt.Printf("%s\n", out)
	}
	return nil
}

func defaultOutputPath(eval string, args []string) string {
	if eval != "" {
		return "eval.ll"
	}
	in := args[0]
	ext := filepath.Ext(in)
	if ext != "" {
		return strings.TrimSuffix(in, ext) + ".ll"
	}
	return in + ".ll"
}
