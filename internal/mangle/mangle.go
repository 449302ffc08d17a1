// Package mangle turns a method's Go-level identity into the single
// global symbol name the IR emitter gives it, so overloads and generic
// specialisations that share a source-level name never collide in the
// emitted module (spec §4.7).
package mangle

import "github.com/acorn-lang/acornc/internal/types"

// MangleMethod returns the global symbol name for one overload of the
// function named name, grounded on original_source's
// Mangler::mangle_method ("_<tag>_" + name + "_" + method's own
// mangled name, which already encodes return and parameter types so
// distinct overloads/specialisations never collide).
func MangleMethod(name string, method *types.Method) string {
	return "_A_" + name + "_" + method.MangledName()
}
