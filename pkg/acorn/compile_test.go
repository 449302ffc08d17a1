package acorn

import (
	"strings"
	"testing"
)

// requireCompiles compiles src and fails the test with every collected
// diagnostic on any error, mirroring the teacher's integration-test
// style of asserting on the compiled artifact rather than intermediate
// passes.
func requireCompiles(t *testing.T, name, src string) *Module {
	t.Helper()
	mod, reporter, err := CompileString(name, src)
	if err != nil {
		msg := err.Error()
		if reporter != nil && reporter.HasErrors() {
			msg = reporter.Format(false)
		}
		t.Fatalf("CompileString(%s) failed: %s", name, msg)
	}
	if mod == nil {
		t.Fatalf("CompileString(%s) returned a nil module with no error", name)
	}
	return mod
}

// The six end-to-end scenarios of spec.md §8, checked against emitted
// IR text for the expected mangled symbols and method-table globals
// rather than by linking and executing (out of scope per spec.md §1).
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "minimal",
			src:  "",
			want: []string{"define i32 @main(", "define void @_init_variables_(", "define void @_user_code_("},
		},
		{
			name: "int_variable",
			src:  "let x as Integer64 = 42\n",
			want: []string{"@_G_x", "define void @_init_variables_("},
		},
		{
			name: "single_method",
			src: "def add(a as Integer64, b as Integer64) as Integer64\n" +
				"    return a + b\n" +
				"end\n" +
				"let r as Integer64 = add(2, 3)\n",
			want: []string{"@_MT_add", "_A_add_"},
		},
		{
			name: "multiple_methods",
			src: "def add(a as Integer64, b as Integer64) as Integer64\n" +
				"    return a + b\n" +
				"end\n" +
				"def add(a as Float64, b as Float64) as Float64\n" +
				"    return a + b\n" +
				"end\n" +
				"let r as Integer64 = add(2, 3)\n",
			want: []string{"@_MT_add"},
		},
		{
			name: "basic_generics",
			src: "def id{T}(x as T) as T\n" +
				"    return x\n" +
				"end\n" +
				"let a as Integer64 = id(7)\n" +
				"let b as Float64 = id(1.5)\n",
			want: []string{"@_MT_id", "_A_id_"},
		},
		{
			name: "records",
			src: "type Point(x as Integer64, y as Integer64)\n" +
				"let p as Point = Point.new(1, 2)\n" +
				"let first as Integer64 = p.x\n",
			want: []string{"@_G_p", "@_G_first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := requireCompiles(t, tt.name, tt.src)
			ir := mod.String()
			for _, want := range tt.want {
				if !strings.Contains(ir, want) {
					t.Errorf("expected emitted IR to contain %q, got:\n%s", want, ir)
				}
			}
			if err := mod.Verify(); err != nil {
				t.Errorf("module failed verification: %v\n%s", err, ir)
			}
		})
	}
}

func TestCompileStringSurfacesParseErrors(t *testing.T) {
	_, reporter, err := CompileString("bad", "def (\n")
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
	if reporter == nil || !reporter.HasErrors() {
		t.Fatal("expected the reporter to carry at least one diagnostic")
	}
}

func TestCompileStringSurfacesTypeErrors(t *testing.T) {
	_, reporter, err := CompileString("bad", "let x as Integer64 = \"not a number\"\n")
	if err == nil {
		t.Fatal("expected a type error, got nil")
	}
	if reporter == nil || !reporter.HasErrors() {
		t.Fatal("expected the reporter to carry at least one diagnostic")
	}
}

func TestCompileMissingFile(t *testing.T) {
	if _, _, err := Compile("/no/such/file.acorn"); err == nil {
		t.Fatal("expected an error reading a nonexistent file")
	}
}
