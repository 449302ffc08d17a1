package units

import (
	"fmt"
	"os"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/lexer"
	"github.com/acorn-lang/acornc/internal/parser"
)

// UnitRegistry indexes every unit loaded during one compilation,
// resolves import paths against a set of search directories, and
// breaks import cycles (spec §5: "a simple 'file currently being
// parsed' set is used to break them").
type UnitRegistry struct {
	searchPaths []string
	units       map[string]*Unit
	cache       *UnitCache
	loading     map[string]bool
}

// NewUnitRegistry builds a registry searching searchPaths, in order.
// A nil slice defaults to the current directory; an explicitly empty
// slice searches nowhere.
func NewUnitRegistry(searchPaths []string) *UnitRegistry {
	if searchPaths == nil {
		searchPaths = []string{"."}
	}
	return &UnitRegistry{
		searchPaths: searchPaths,
		units:       map[string]*Unit{},
		cache:       NewUnitCache(),
		loading:     map[string]bool{},
	}
}

// RegisterUnit adds unit under name, failing if a different unit is
// already registered under the same normalized name.
func (r *UnitRegistry) RegisterUnit(name string, unit *Unit) error {
	key := normalize(name)
	if existing, ok := r.units[key]; ok && existing != unit {
		return fmt.Errorf("unit %q is already registered", name)
	}
	r.units[key] = unit
	return nil
}

// GetUnit returns the registered unit for name, if any.
func (r *UnitRegistry) GetUnit(name string) (*Unit, bool) {
	u, ok := r.units[normalize(name)]
	return u, ok
}

// UnregisterUnit removes name from the registry, if present.
func (r *UnitRegistry) UnregisterUnit(name string) {
	delete(r.units, normalize(name))
}

// Clear removes every registered unit.
func (r *UnitRegistry) Clear() {
	r.units = map[string]*Unit{}
	r.cache.Clear()
}

// ListUnits returns every registered unit's normalized name.
func (r *UnitRegistry) ListUnits() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	return names
}

// LoadUnit finds, lexes, parses, and recursively resolves name's own
// imports, returning the fully-loaded Unit. overridePaths, if non-nil,
// replaces the registry's configured search paths for this call only
// (spec §5's per-import search root).
func (r *UnitRegistry) LoadUnit(name string, overridePaths []string) (*Unit, error) {
	key := normalize(name)
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}
	if r.loading[key] {
		return nil, fmt.Errorf("circular dependency loading unit %q", name)
	}

	paths := r.searchPaths
	if overridePaths != nil {
		paths = overridePaths
	}
	path, err := FindUnit(name, paths)
	if err != nil {
		return nil, fmt.Errorf("cannot load unit %q: %w", name, err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load unit %q: %w", name, err)
	}

	r.loading[key] = true
	defer delete(r.loading, key)

	reporter := diagnostics.NewReporter()
	l := lexer.New(path, string(source))
	file := parser.New(path, string(source), l, reporter).Parse(name)
	if reporter.HasErrors() {
		return nil, fmt.Errorf("parse errors loading unit %q: %v", name, reporter.Errors())
	}

	uses := importPaths(file)
	for _, dep := range uses {
		depUnit, err := r.LoadUnit(dep, paths)
		if err != nil {
			return nil, err
		}
		file.Imports = append(file.Imports, depUnit.File)
	}

	unit := NewUnit(name, path)
	unit.File = file
	unit.Uses = uses

	r.cache.Put(key, unit, path)
	r.units[key] = unit
	return unit, nil
}

func normalize(name string) string {
	return (&Unit{Name: name}).NormalizedName()
}
