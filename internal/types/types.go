// Package types implements acorn's two-tier type system (spec §3.4): a
// TypeType hierarchy (the constructors — the "type of a type") and a
// Type hierarchy (concrete instances produced by calling Create on a
// constructor). Grounded on original_source's typesystem/types.h,
// generalised from its C++ class hierarchy into two small Go interfaces
// plus one struct per variant, the way the teacher represents its own
// type lattice as a closed interface with concrete value types rather
// than a class tree.
package types

import (
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
)

// TypeType is a type constructor: the compile-time description of a
// type, before it has been instantiated with concrete parameters.
type TypeType interface {
	Name() string
	MangledName() string
	Parameters() []TypeType
	// Create instantiates this constructor into a concrete Type. node is
	// the AST site requesting instantiation, used only for diagnostics.
	Create(reporter *diagnostics.Reporter, node ast.Node) Type
	// WithParameters returns a new constructor with the given type
	// parameters substituted (used by the generic reifier, spec §4.6a).
	WithParameters(params []TypeType) TypeType
}

// Type is a concrete, instantiated type: the type of a value.
type Type interface {
	Name() string
	MangledName() string
	// TypeOf returns the constructor this instance was created from.
	TypeOf() TypeType
	IsCompatible(other Type) bool
	WithParameters(params []Type) Type
}

func typeNames(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Name()
	}
	return strings.Join(parts, ", ")
}

func typeTypeNames(ts []TypeType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Name()
	}
	return strings.Join(parts, ", ")
}
