// Package acorn is the embeddable front-end API (SPEC §6, absent from
// the distilled spec but present in the teacher's pkg/dwscript, which
// is test-only in the pack — this package reconstructs its Compile/
// CompileString shape): Compile and CompileString each drive the whole
// pipeline, lex through emit, and hand back the resulting Module
// alongside every diagnostic the run collected.
package acorn

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/irgen"
	"github.com/acorn-lang/acornc/internal/lexer"
	"github.com/acorn-lang/acornc/internal/parser"
	"github.com/acorn-lang/acornc/internal/reifier"
	"github.com/acorn-lang/acornc/internal/semantic"
	"github.com/acorn-lang/acornc/internal/symboltable"
)

// Compile reads path and runs it through the full pipeline, resolving
// its import graph relative to the file's own directory.
func Compile(path string) (*Module, *diagnostics.Reporter, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("acorn: %w", err)
	}
	return compile(path, filepath.Base(path), string(source), []string{filepath.Dir(path)})
}

// CompileString compiles src as a standalone unit named name, resolving
// any imports it names against the current directory. Intended for
// embedding callers that already hold source text — tests, REPLs —
// rather than a path on disk.
func CompileString(name, src string) (*Module, *diagnostics.Reporter, error) {
	return compile(name, name, src, nil)
}

func compile(filename, unitName, source string, searchPaths []string) (*Module, *diagnostics.Reporter, error) {
	reporter := diagnostics.NewReporter()

	l := lexer.New(filename, source)
	file := parser.New(filename, source, l, reporter).Parse(unitName)
	if reporter.HasErrors() {
		return nil, reporter, fmt.Errorf("acorn: %d parse error(s) in %s", len(reporter.Errors()), filename)
	}

	if err := resolveImports(file, searchPaths); err != nil {
		reporter.Errorf(diagnostics.FileNotFoundError, file.Token().Location, "", "%v", err)
		return nil, reporter, fmt.Errorf("acorn: %w", err)
	}

	builder := symboltable.NewBuilder(reporter)
	builder.Build(file)
	if reporter.HasErrors() {
		return nil, reporter, fmt.Errorf("acorn: %d symbol error(s) in %s", len(reporter.Errors()), filename)
	}

	ctx := &semantic.Context{Root: builder.Root(), Reporter: reporter}

	if err := semantic.NewInferrer().Run(file, ctx); err != nil {
		return nil, reporter, fmt.Errorf("acorn: %w", err)
	}
	if reporter.HasErrors() {
		return nil, reporter, fmt.Errorf("acorn: %d inference error(s) in %s", len(reporter.Errors()), filename)
	}

	if err := semantic.NewChecker().Run(file, ctx); err != nil {
		return nil, reporter, fmt.Errorf("acorn: %w", err)
	}
	if reporter.HasErrors() {
		return nil, reporter, fmt.Errorf("acorn: %d type error(s) in %s", len(reporter.Errors()), filename)
	}

	if err := reifier.NewReifier().Run(file, ctx); err != nil {
		return nil, reporter, fmt.Errorf("acorn: %w", err)
	}
	if reporter.HasErrors() {
		return nil, reporter, fmt.Errorf("acorn: %d reification error(s) in %s", len(reporter.Errors()), filename)
	}

	backendModule, err := irgen.NewEmitter(irgen.NewLLVMBackend()).Run(file, ctx)
	if err != nil {
		return nil, reporter, fmt.Errorf("acorn: %w", err)
	}

	return &Module{backend: backendModule}, reporter, nil
}
