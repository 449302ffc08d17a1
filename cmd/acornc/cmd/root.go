package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "acornc",
	Short: "Acorn compiler front-end and IR emitter",
	Long: `acornc is the front-end and LLVM IR emitter for the Acorn language:
lexer, indentation-sensitive parser, symbol table, type inferrer and
checker, generic reifier, and method-table-based IR emitter.

The pipeline itself is an embeddable library (pkg/acorn); this command
is a convenience driver over it, one subcommand per phase.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
