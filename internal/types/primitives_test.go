package types

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/pkg/token"
)

func node() ast.Node {
	return ast.NewName(token.Token{Location: token.SourceLocation{Line: 1, Column: 1}}, "x")
}

func TestIntegerMangledNameBySize(t *testing.T) {
	i64 := (&IntegerType{Size: 64}).Create(diagnostics.NewReporter(), node())
	if got, want := i64.MangledName(), "i64"; got != want {
		t.Errorf("MangledName() = %q, want %q", got, want)
	}
	if got, want := i64.Name(), "Integer64"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestIntegerIsCompatibleRequiresSameSize(t *testing.T) {
	r := diagnostics.NewReporter()
	a := (&IntegerType{Size: 32}).Create(r, node())
	b := (&IntegerType{Size: 64}).Create(r, node())
	c := (&IntegerType{Size: 32}).Create(r, node())
	if a.IsCompatible(b) {
		t.Error("Integer32 should not be compatible with Integer64")
	}
	if !a.IsCompatible(c) {
		t.Error("Integer32 should be compatible with another Integer32")
	}
}

func TestVoidAndBooleanMangling(t *testing.T) {
	r := diagnostics.NewReporter()
	v := VoidType{}.Create(r, node())
	if got, want := v.MangledName(), "v"; got != want {
		t.Errorf("Void.MangledName() = %q, want %q", got, want)
	}
	b := BooleanType{}.Create(r, node())
	if got, want := b.MangledName(), "b"; got != want {
		t.Errorf("Boolean.MangledName() = %q, want %q", got, want)
	}
	// the constructor-level mangled name differs from the instance's.
	if got, want := (VoidType{}).MangledName(), "u"; got != want {
		t.Errorf("VoidType.MangledName() = %q, want %q", got, want)
	}
}

func TestParameterIsAlwaysCompatible(t *testing.T) {
	r := diagnostics.NewReporter()
	p := (&ParameterType{Label: "T"}).Create(r, node())
	other := (&IntegerType{Size: 64}).Create(r, node())
	if !p.IsCompatible(other) {
		t.Error("an unresolved Parameter should be compatible with anything")
	}
}

func TestUnsafePointerRequiresElement(t *testing.T) {
	r := diagnostics.NewReporter()
	pt := &UnsafePointerType{}
	if got := pt.Create(r, node()); got != nil {
		t.Errorf("Create() with no element = %v, want nil", got)
	}
	if !r.HasErrors() {
		t.Error("expected an InvalidTypeParameters diagnostic")
	}
}

func TestUnsafePointerMangledNameWrapsElement(t *testing.T) {
	r := diagnostics.NewReporter()
	i64 := &IntegerType{Size: 64}
	pt := &UnsafePointerType{Element: i64}
	p := pt.Create(r, node())
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if got, want := p.MangledName(), "pi64"; got != want {
		t.Errorf("MangledName() = %q, want %q", got, want)
	}
}
