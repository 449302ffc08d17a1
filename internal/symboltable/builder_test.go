package symboltable

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/pkg/token"
)

func tok() token.Token {
	return token.Token{Location: token.SourceLocation{Line: 1, Column: 1}}
}

func sourceFile(decls ...ast.Node) *ast.SourceFile {
	sf := ast.NewSourceFile(tok(), "test")
	for _, d := range decls {
		sf.Decls = append(sf.Decls, ast.NewDeclHolder(tok(), d))
	}
	return sf
}

func TestBuilderInsertsVarDecl(t *testing.T) {
	r := diagnostics.NewReporter()
	decl := ast.NewVarDecl(tok(), ast.NewDeclName(tok(), "x"), nil, ast.NewInt(tok(), 1), false, true)
	b := NewBuilder(r)
	b.Build(sourceFile(decl))

	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	sym := b.Root().Lookup(r, decl, "x")
	if sym == nil || sym.Node != decl {
		t.Error("expected x to resolve to its VarDecl")
	}
}

func TestBuilderDefDeclCreatesFunctionAndMethodScopes(t *testing.T) {
	r := diagnostics.NewReporter()
	param := ast.NewParamName(tok(), "n", ast.NewTypeName(tok(), "Integer64"), false)
	body := ast.NewBlock(tok())
	decl := ast.NewDefDecl(tok(), ast.NewDeclName(tok(), "show"), []*ast.ParamName{param}, nil, body, false)

	b := NewBuilder(r)
	b.Build(sourceFile(decl))
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}

	funcSym := b.Root().Lookup(r, decl, "show")
	if funcSym == nil || funcSym.Node != nil {
		t.Fatal("expected a function symbol with a nil declaration node")
	}
	if funcSym.Namespace == nil || funcSym.Namespace.Size() != 1 {
		t.Fatalf("expected exactly one method in show's overload namespace, got %v", funcSym.Namespace)
	}
	methodSym := funcSym.Namespace.Symbols()[0]
	if methodSym.Node != decl {
		t.Error("expected the method symbol's node to be the DefDecl")
	}
	if !methodSym.Namespace.Has("n", false) {
		t.Error("expected parameter n to be bound in the method's own scope")
	}
}

func TestBuilderDefDeclOverloadsShareFunctionSymbol(t *testing.T) {
	r := diagnostics.NewReporter()
	first := ast.NewDefDecl(tok(), ast.NewDeclName(tok(), "show"), nil, nil, ast.NewBlock(tok()), false)
	second := ast.NewDefDecl(tok(), ast.NewDeclName(tok(), "show"), nil, nil, ast.NewBlock(tok()), false)

	b := NewBuilder(r)
	b.Build(sourceFile(first, second))
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}

	funcSym := b.Root().Lookup(r, first, "show")
	if funcSym.Namespace.Size() != 2 {
		t.Errorf("expected two overloads of show, got %d", funcSym.Namespace.Size())
	}
}

func TestBuilderRedefinedVarDeclReportsError(t *testing.T) {
	r := diagnostics.NewReporter()
	a := ast.NewVarDecl(tok(), ast.NewDeclName(tok(), "x"), nil, ast.NewInt(tok(), 1), false, true)
	b2 := ast.NewVarDecl(tok(), ast.NewDeclName(tok(), "x"), nil, ast.NewInt(tok(), 2), false, true)

	b := NewBuilder(r)
	b.Build(sourceFile(a, b2))
	if !r.HasErrors() {
		t.Error("expected a RedefinedError for the duplicate top-level x")
	}
}

func TestBuilderModuleDeclNestsScope(t *testing.T) {
	r := diagnostics.NewReporter()
	inner := ast.NewVarDecl(tok(), ast.NewDeclName(tok(), "x"), nil, ast.NewInt(tok(), 1), false, true)
	body := ast.NewBlock(tok())
	body.Statements = append(body.Statements, inner)
	mod := ast.NewModuleDecl(tok(), "mathlib", body)

	b := NewBuilder(r)
	b.Build(sourceFile(mod))
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}

	modSym := b.Root().Lookup(r, mod, "mathlib")
	if modSym == nil || modSym.Namespace == nil {
		t.Fatal("expected mathlib to bind a nested namespace")
	}
	if !modSym.Namespace.Has("x", false) {
		t.Error("expected x to be bound inside mathlib's namespace, not the root")
	}
	if b.Root().Has("x", false) {
		t.Error("x from inside the module must not leak into the root namespace")
	}
}

func TestBuilderTypeDeclRecordBindsFields(t *testing.T) {
	r := diagnostics.NewReporter()
	fields := []*ast.ParamName{
		ast.NewParamName(tok(), "x", ast.NewTypeName(tok(), "Integer64"), false),
		ast.NewParamName(tok(), "y", ast.NewTypeName(tok(), "Integer64"), false),
	}
	decl := ast.NewRecordTypeDecl(tok(), ast.NewDeclName(tok(), "Point"), fields)

	b := NewBuilder(r)
	b.Build(sourceFile(decl))
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}

	sym := b.Root().Lookup(r, decl, "Point")
	if sym == nil || sym.Namespace == nil {
		t.Fatal("expected Point to bind a nested namespace")
	}
	if !sym.Namespace.Has("x", false) || !sym.Namespace.Has("y", false) {
		t.Error("expected both record fields to be bound in Point's namespace")
	}
}
