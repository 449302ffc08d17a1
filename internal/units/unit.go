// Package units resolves acorn's import graph: given a parsed
// SourceFile still carrying unresolved *ast.Import placeholders, it
// lexes and parses each imported path's file, recursing depth-first
// and refusing cycles, and attaches the results to the importer's
// SourceFile.Imports slice (spec §5, §4.2).
//
// Grounded on the teacher's internal/units package (Unit/UnitCache/
// UnitRegistry trio, one file per concern), generalised from DWScript's
// `uses`-clause unit model (interface/implementation sections, a
// registry keyed by normalized unit name) to acorn's plain `import
// path/to/unit` statement: acorn has no separate interface section, so
// Unit.Symbols is dropped in favour of exposing the parsed
// *ast.SourceFile directly once it's fully resolved.
package units

import (
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
)

// Unit is one resolved import: the path it was found at, the
// SourceFile produced by parsing it, and the raw import paths it
// itself names — spec §5's depth-first loading needs the latter to
// detect a cycle before recursing into it.
type Unit struct {
	Name     string
	FilePath string
	File     *ast.SourceFile
	Uses     []string
}

// NewUnit creates a Unit for name at filePath, with no known
// dependencies yet (populated once the file is parsed).
func NewUnit(name, filePath string) *Unit {
	return &Unit{Name: name, FilePath: filePath, Uses: []string{}}
}

// NormalizedName is the case-insensitive key units are registered and
// looked up under — acorn, like DWScript, treats unit names as
// case-insensitive identifiers.
func (u *Unit) NormalizedName() string {
	return strings.ToLower(u.Name)
}

// HasDependency reports whether name is among the paths this unit
// imports, case-insensitively.
func (u *Unit) HasDependency(name string) bool {
	target := strings.ToLower(name)
	for _, use := range u.Uses {
		if strings.ToLower(use) == target {
			return true
		}
	}
	return false
}

// importPaths collects every *ast.Import path a SourceFile's top-level
// declarations name. Only file.Decls is scanned: an import written
// inside a module body is not collected.
func importPaths(file *ast.SourceFile) []string {
	var paths []string
	for _, holder := range file.Decls {
		if imp, ok := holder.Main.(*ast.Import); ok {
			paths = append(paths, imp.Path)
		}
	}
	return paths
}
