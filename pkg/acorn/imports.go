package acorn

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/units"
)

// resolveImports loads every top-level import file names, recursively
// resolving their own imports in turn, and attaches the results to
// file.Imports (spec §4.2, §5). Declarations inside an imported file are
// never merged into the importer's scope: spec.md §9 treats Import as
// parsed but not emitted, so resolution here exists only to surface a
// missing file or an import cycle as a diagnostic, the way the parser's
// own recursive descent would have.
func resolveImports(file *ast.SourceFile, searchPaths []string) error {
	registry := units.NewUnitRegistry(searchPaths)
	for _, holder := range file.Decls {
		imp, ok := holder.Main.(*ast.Import)
		if !ok {
			continue
		}
		unit, err := registry.LoadUnit(imp.Path, searchPaths)
		if err != nil {
			return err
		}
		file.Imports = append(file.Imports, unit.File)
	}
	return nil
}
