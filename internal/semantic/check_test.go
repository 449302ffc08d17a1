package semantic

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// runChecked builds, infers, then checks file, returning the reporter so
// callers can assert on the combined diagnostics.
func runChecked(file *ast.SourceFile) *diagnostics.Reporter {
	r := diagnostics.NewReporter()
	b := symboltable.NewBuilder(r)
	b.Build(file)
	ctx := &Context{Root: b.Root(), Reporter: r}
	NewInferrer().Run(file, ctx)
	if !r.HasErrors() {
		NewChecker().Run(file, ctx)
	}
	return r
}

func TestCheckerAcceptsWellTypedProgram(t *testing.T) {
	decl := ast.NewVarDecl(newTok(), ast.NewDeclName(newTok(), "x"), nil, ast.NewInt(newTok(), 1), false, true)
	file := sourceFile(decl)
	r := runChecked(file)

	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
}

// TestCheckerFlagsUnresolvedNode constructs a node the Inferrer never
// visits (so it never gets a resolved type) and confirms the Checker's
// has_type() assertion catches it independently of inference — the two
// passes must not rely on each other's success to fail loudly.
func TestCheckerFlagsUnresolvedNode(t *testing.T) {
	orphan := ast.NewInt(newTok(), 1)
	r := diagnostics.NewReporter()
	ctx := &Context{Root: symboltable.NewRootNamespace(), Reporter: r}

	NewChecker().checkExpr(ctx, orphan)

	if !r.HasErrors() {
		t.Fatal("expected an InternalError for a node with no resolved type")
	}
	if r.Errors()[0].Kind != diagnostics.InternalError {
		t.Errorf("expected InternalError, got %s", r.Errors()[0].Kind)
	}
}

// TestCheckerReassertsFieldExistence builds a Selector over a Record whose
// ResolvedType was hand-annotated to omit the accessed field, without ever
// running the Inferrer — confirming checkSelector does its own lookup
// rather than trusting an annotation that might be stale or hand-crafted
// (the Inferrer would already have caught this at the same call site, but
// the Checker must not depend on that).
func TestCheckerReassertsFieldExistence(t *testing.T) {
	rec := &types.Record{
		Constructor: &types.RecordType{DeclName: "Point", FieldNames: []string{"x"}},
		FieldNames:  []string{"x"},
		Fields:      []types.Type{&types.Integer{Constructor: &types.IntegerType{Size: 64}, Size: 64}},
	}
	operand := ast.NewInt(newTok(), 1)
	operand.SetResolvedType(rec)
	access := ast.NewSelector(newTok(), operand, "z")

	r := diagnostics.NewReporter()
	ctx := &Context{Root: symboltable.NewRootNamespace(), Reporter: r}
	NewChecker().checkSelector(ctx, access)

	if !r.HasErrors() {
		t.Fatal("expected a TypeMismatchError accessing a nonexistent field")
	}
	if r.Errors()[0].Kind != diagnostics.TypeMismatchError {
		t.Errorf("expected TypeMismatchError, got %s", r.Errors()[0].Kind)
	}
}
