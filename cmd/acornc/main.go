// Command acornc is the command-line driver over pkg/acorn: a thin
// cobra CLI exposing the lex/parse/ir/build phases of the pipeline
// individually, useful for driving the compiler in tests and demos
// even though the core itself treats the CLI as an external collaborator.
package main

import (
	"os"

	"github.com/acorn-lang/acornc/cmd/acornc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
