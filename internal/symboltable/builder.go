package symboltable

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/types"
)

// Builder walks a SourceFile once, creating a symbol for every
// declaration and attaching nested namespaces where the grammar
// introduces a new scope (spec §4.3). It does not resolve name uses —
// that is the type inferrer's job (internal/semantic) — it only
// produces the binding structure those later passes walk.
//
// Grounded on original_source's symboltable::Builder (compiler/symboltable.h),
// translated from its ast::Visitor double-dispatch into a single
// type-switch, the idiom the rest of this repo's passes use instead of
// a visitor interface (see internal/ast's package doc).
type Builder struct {
	reporter      *diagnostics.Reporter
	root          *Namespace
	scope         []*Namespace
	methodCounter int
}

// NewBuilder creates a Builder whose scope stack starts at a freshly
// bootstrapped root namespace (spec §3.3).
func NewBuilder(reporter *diagnostics.Reporter) *Builder {
	root := NewRootNamespace()
	return &Builder{reporter: reporter, root: root, scope: []*Namespace{root}}
}

// Root returns the compilation's single root namespace.
func (b *Builder) Root() *Namespace { return b.root }

// NewSubBuilder creates a Builder that binds declarations directly into
// an existing namespace rather than bootstrapping a fresh root — used by
// internal/reifier to bind a cloned generic declaration's parameters and
// body into a scope where its type parameters already resolve to the
// concrete types a specialisation substituted (spec §4.6a).
func NewSubBuilder(reporter *diagnostics.Reporter, scope *Namespace) *Builder {
	return &Builder{reporter: reporter, root: scope, scope: []*Namespace{scope}}
}

// Visit binds node into the builder's current scope, exactly as Build
// does for each top-level declaration. Exported for internal/reifier's
// use on a single cloned node rather than a whole SourceFile.
func (b *Builder) Visit(node ast.Node) { b.visit(node) }

func (b *Builder) current() *Namespace { return b.scope[len(b.scope)-1] }
func (b *Builder) push(ns *Namespace)  { b.scope = append(b.scope, ns) }
func (b *Builder) pop()                { b.scope = b.scope[:len(b.scope)-1] }

// Build walks every declaration in file, in order, at the root scope.
func (b *Builder) Build(file *ast.SourceFile) {
	for _, holder := range file.Decls {
		b.visit(holder.Main)
	}
}

func (b *Builder) visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.DeclHolder:
		// Nested declarations (module bodies) are parsed wrapped in a
		// DeclHolder just like top-level ones; unwrap before dispatching.
		b.visit(n.Main)
	case *ast.Import:
		// Resolved to a SourceFile by internal/units before this builder
		// ever runs; nothing to bind here.
	case *ast.VarDecl:
		b.visitVarDecl(n)
	case *ast.DefDecl:
		b.visitDefDecl(n)
	case *ast.TypeDecl:
		b.visitTypeDecl(n)
	case *ast.ModuleDecl:
		b.visitModuleDecl(n)
	case *ast.Block:
		b.visitBlock(n)
	case *ast.If:
		b.visit(n.Then)
		if n.Else != nil {
			b.visit(n.Else)
		}
	case *ast.While:
		b.visit(n.Body)
	case *ast.Switch:
		for _, c := range n.Cases {
			b.visit(c.Body)
		}
		if n.Default != nil {
			b.visit(n.Default)
		}
	case *ast.Let:
		b.visitLet(n)
	default:
		// Every other node kind is an expression; it introduces no
		// declaration the builder needs to bind.
	}
}

func (b *Builder) visitBlock(n *ast.Block) {
	for _, stmt := range n.Statements {
		b.visit(stmt)
	}
}

// visitVarDecl inserts one symbol at the current scope; if the
// declaration is itself generic (`let x{T} ...`), its type parameters
// live in a nested namespace (spec §4.3).
func (b *Builder) visitVarDecl(n *ast.VarDecl) {
	ns := b.current()
	if n.Name.IsGeneric() {
		nested := NewNamespace(ns)
		for _, tp := range n.Name.TypeParams {
			nested.Insert(b.reporter, n, tp, parameterSymbol(tp))
		}
		ns.Insert(b.reporter, n, n.Name.Value, &Symbol{Name: n.Name.Value, Node: n, Namespace: nested})
		return
	}
	ns.Insert(b.reporter, n, n.Name.Value, &Symbol{Name: n.Name.Value, Node: n})
}

// visitLet inserts a block-local binding directly into the currently
// live scope — if/while/block introduce no namespace of their own, so a
// `let` inside one shadows at the enclosing def's (or module's) scope,
// exactly as spec §3.3 describes.
func (b *Builder) visitLet(n *ast.Let) {
	b.current().Insert(b.reporter, n, n.Name, &Symbol{Name: n.Name, Node: n})
}

// visitDefDecl implements spec §4.3's function-symbol construction: the
// function name is looked up without following parents; if absent, a
// fresh Function symbol (empty type, to be filled in by the inferrer) is
// created with its own nested namespace. Each overload gets a method
// symbol keyed by a unique tag in that namespace, with its own child
// scope for parameters and body.
func (b *Builder) visitDefDecl(n *ast.DefDecl) {
	ns := b.current()
	name := n.Name.Value
	funcSym, exists := ns.LookupLocal(name)
	if !exists {
		funcSym = &Symbol{Name: name, Namespace: NewNamespace(ns)}
		ns.Insert(b.reporter, n, name, funcSym)
	} else if funcSym.Namespace == nil {
		b.reporter.Errorf(diagnostics.RedefinedError, n.Pos(), "", "%q is already defined as a non-function symbol", name)
		return
	}

	methodKey := fmt.Sprintf("$method%d", b.methodCounter)
	b.methodCounter++
	methodScope := NewNamespace(funcSym.Namespace)
	methodSym := &Symbol{Name: methodKey, Node: n, Namespace: methodScope}
	funcSym.Namespace.Insert(b.reporter, n, methodKey, methodSym)

	b.push(methodScope)
	for _, tp := range n.Name.TypeParams {
		methodScope.Insert(b.reporter, n, tp, parameterSymbol(tp))
	}
	for _, p := range n.Params {
		methodScope.Insert(b.reporter, p, p.Value, &Symbol{Name: p.Value, Node: p})
	}
	if n.Body != nil {
		b.visitBlock(n.Body)
	}
	b.pop()
}

// visitTypeDecl inserts one symbol with a nested namespace holding the
// type's own type parameters and, for a record shape, its field names
// (spec §4.3).
func (b *Builder) visitTypeDecl(n *ast.TypeDecl) {
	ns := NewNamespace(b.current())
	for _, tp := range n.Name.TypeParams {
		ns.Insert(b.reporter, n, tp, parameterSymbol(tp))
	}
	if n.Shape == ast.TypeDeclRecord {
		for _, f := range n.Fields {
			ns.Insert(b.reporter, f, f.Value, &Symbol{Name: f.Value, Node: f})
		}
	}
	b.current().Insert(b.reporter, n, n.Name.Value, &Symbol{Name: n.Name.Value, Node: n, Namespace: ns})
}

// visitModuleDecl inserts a symbol with a nested namespace and recurses
// into the module body under that namespace (spec §4.3, §4.2a nesting).
func (b *Builder) visitModuleDecl(n *ast.ModuleDecl) {
	ns := NewNamespace(b.current())
	b.current().Insert(b.reporter, n, n.Name, &Symbol{Name: n.Name, Node: n, Namespace: ns})
	b.push(ns)
	b.visit(n.Body)
	b.pop()
}

func parameterSymbol(label string) *Symbol {
	return &Symbol{Name: label, TypeDecl: &types.ParameterType{Label: label}}
}
