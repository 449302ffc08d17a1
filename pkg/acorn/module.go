package acorn

import "github.com/acorn-lang/acornc/internal/irgen"

// Module is the emitted translation unit handed back by Compile and
// CompileString: a thin wrapper around the backend module exposing only
// what an embedding caller needs, never the backend's own Value/Type
// machinery (SPEC §6).
type Module struct {
	backend irgen.Module
}

// String renders the module's textual IR.
func (m *Module) String() string { return m.backend.String() }

// Verify runs the backend verifier over every function the module
// declares, the way a build step would before handing the IR to a
// linker (spec §4.8).
func (m *Module) Verify() error { return m.backend.Verify() }
