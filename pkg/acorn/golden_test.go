package acorn

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestGoldenIR snapshots the emitted IR for a handful of representative
// programs, the way the teacher's interpreter fixtures snapshot
// evaluated output (internal/interp/fixture_test.go), so a change to
// mangling, method-table layout, or instruction selection shows up as a
// reviewable diff instead of a silent behaviour change.
func TestGoldenIR(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "single_method",
			src: "def add(a as Integer64, b as Integer64) as Integer64\n" +
				"    return a + b\n" +
				"end\n" +
				"let r as Integer64 = add(2, 3)\n",
		},
		{
			name: "basic_generics",
			src: "def id{T}(x as T) as T\n" +
				"    return x\n" +
				"end\n" +
				"let a as Integer64 = id(7)\n" +
				"let b as Float64 = id(1.5)\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mod := requireCompiles(t, c.name, c.src)
			snaps.MatchSnapshot(t, mod.String())
		})
	}
}
