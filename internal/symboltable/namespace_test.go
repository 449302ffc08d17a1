package symboltable

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/pkg/token"
)

func testNode() ast.Node {
	return ast.NewName(token.Token{Location: token.SourceLocation{Line: 1, Column: 1}}, "x")
}

func TestInsertRejectsDuplicateInSameScope(t *testing.T) {
	r := diagnostics.NewReporter()
	ns := NewNamespace(nil)
	n := testNode()
	if !ns.Insert(r, n, "x", &Symbol{Name: "x", Node: n}) {
		t.Fatal("first insert should succeed")
	}
	if ns.Insert(r, n, "x", &Symbol{Name: "x", Node: n}) {
		t.Error("duplicate insert in the same scope should fail")
	}
	if !r.HasErrors() {
		t.Error("expected a RedefinedError")
	}
}

func TestChildNamespaceCanShadowParent(t *testing.T) {
	r := diagnostics.NewReporter()
	parent := NewNamespace(nil)
	n := testNode()
	parent.Insert(r, n, "x", &Symbol{Name: "x", Node: n})

	child := NewNamespace(parent)
	if !child.Insert(r, n, "x", &Symbol{Name: "x", Node: n}) {
		t.Error("shadowing a parent binding should succeed")
	}
	if r.HasErrors() {
		t.Errorf("unexpected errors: %v", r.Errors())
	}
}

func TestLookupSearchesInnermostFirst(t *testing.T) {
	r := diagnostics.NewReporter()
	parent := NewNamespace(nil)
	outer := testNode()
	parentSym := &Symbol{Name: "x", Node: outer}
	parent.Insert(r, outer, "x", parentSym)

	child := NewNamespace(parent)
	inner := testNode()
	childSym := &Symbol{Name: "x", Node: inner}
	child.Insert(r, inner, "x", childSym)

	if got := child.Lookup(r, inner, "x"); got != childSym {
		t.Error("lookup from child should find the child's own binding")
	}

	grandchild := NewNamespace(child)
	if got := grandchild.Lookup(r, inner, "x"); got != childSym {
		t.Error("lookup should walk up through parents to find the binding")
	}
}

func TestLookupReportsUndefined(t *testing.T) {
	r := diagnostics.NewReporter()
	ns := NewNamespace(nil)
	if got := ns.Lookup(r, testNode(), "missing"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}
	if !r.HasErrors() {
		t.Error("expected an UndefinedError")
	}
}

func TestLookupByNodeFindsOwnDeclaration(t *testing.T) {
	r := diagnostics.NewReporter()
	ns := NewNamespace(nil)
	n := testNode()
	sym := &Symbol{Name: "x", Node: n}
	ns.Insert(r, n, "x", sym)
	if got := ns.LookupByNode(n); got != sym {
		t.Error("LookupByNode should find the symbol introduced by its node")
	}
}

func TestRootNamespaceHasNoParent(t *testing.T) {
	root := NewRootNamespace()
	if !root.IsRoot() {
		t.Error("NewRootNamespace should produce a parentless namespace")
	}
	if !root.Has("Integer64", false) {
		t.Error("expected Integer64 to be bound in the root namespace")
	}
	if !root.Has("+", false) {
		t.Error("expected builtin operator + to be bound in the root namespace")
	}
}
