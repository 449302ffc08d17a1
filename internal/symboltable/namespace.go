// Package symboltable implements acorn's lexically nested scope chain
// (spec §3.3): a Namespace/Symbol pair grounded on original_source's
// compiler/symboltable.h naming, with the insert/lookup/scope-chain
// mechanics ported from the teacher's internal/semantic SymbolTable
// (outer-pointer chain, case-sensitive here since acorn, unlike
// DWScript, is not case-insensitive).
package symboltable

import (
	"sort"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/types"
)

// Symbol is one binding in a Namespace (spec §3.3).
type Symbol struct {
	Name string
	// Node is the declaration AST node that introduced this symbol, or
	// nil for a function symbol (spec §3.3: "the declaration node
	// pointer of a function symbol is null because function symbols are
	// containers whose child namespace stores one symbol per method").
	Node ast.Node
	// Type is optional until the inferrer assigns it; for a Name that
	// denotes a type, Type is left nil and TypeDecl is set instead.
	Type types.Type
	// TypeDecl is set instead of Type when this symbol denotes a type
	// rather than a value (spec §3.4 invariant).
	TypeDecl types.TypeType
	// Value is the backend value bound to this symbol once the emitter
	// has run (an llvm.Value wrapped by internal/irgen; typed any here
	// to avoid an import cycle).
	Value any
	// Namespace is the nested scope this symbol introduces (functions,
	// types, modules), or nil for plain variables.
	Namespace *Namespace
	IsBuiltin bool
}

// Namespace is one lexical scope: an ordered map from name to Symbol,
// plus an optional parent (spec §3.3). The entries are insertion-ordered
// because generated output (e.g. Symbols()) should be deterministic.
type Namespace struct {
	parent  *Namespace
	order   []string
	symbols map[string]*Symbol
	byNode  map[ast.Node]*Symbol
}

// NewNamespace creates a namespace nested under parent. Pass nil for
// the compilation's single root namespace (spec §3.3 invariant: exactly
// one Namespace is the root).
func NewNamespace(parent *Namespace) *Namespace {
	return &Namespace{
		parent:  parent,
		symbols: make(map[string]*Symbol),
		byNode:  make(map[ast.Node]*Symbol),
	}
}

// IsRoot reports whether this namespace has no parent.
func (ns *Namespace) IsRoot() bool { return ns.parent == nil }

// Parent returns the enclosing namespace, or nil at the root.
func (ns *Namespace) Parent() *Namespace { return ns.parent }

// Has reports whether name is bound in this namespace, optionally also
// checking enclosing namespaces.
func (ns *Namespace) Has(name string, followParents bool) bool {
	if _, ok := ns.symbols[name]; ok {
		return true
	}
	if followParents && ns.parent != nil {
		return ns.parent.Has(name, true)
	}
	return false
}

// Insert binds name to sym in this namespace. Reports RedefinedError
// if name is already bound *in this namespace* (shadowing a parent
// binding is allowed, spec §3.3 invariant).
func (ns *Namespace) Insert(reporter *diagnostics.Reporter, node ast.Node, name string, sym *Symbol) bool {
	if _, exists := ns.symbols[name]; exists {
		reporter.Errorf(diagnostics.RedefinedError, node.Pos(), "", "%q is already defined in this scope", name)
		return false
	}
	ns.symbols[name] = sym
	ns.order = append(ns.order, name)
	if sym.Node != nil {
		ns.byNode[sym.Node] = sym
	}
	return true
}

// Lookup resolves name, searching this namespace then enclosing ones
// innermost-first (spec §3.3 invariant). node is used only to report
// UndefinedError with a source location.
func (ns *Namespace) Lookup(reporter *diagnostics.Reporter, node ast.Node, name string) *Symbol {
	if sym, ok := ns.symbols[name]; ok {
		return sym
	}
	if ns.parent != nil {
		return ns.parent.Lookup(reporter, node, name)
	}
	reporter.Errorf(diagnostics.UndefinedError, node.Pos(), "", "undefined name %q", name)
	return nil
}

// LookupByNode returns the symbol this namespace (not its parents)
// registered for the given declaration node, or nil.
func (ns *Namespace) LookupByNode(node ast.Node) *Symbol {
	return ns.byNode[node]
}

// LookupLocal resolves name in this namespace only, without following
// parents — the lookup a DefDecl's function symbol uses (spec §4.3:
// "looks up the function name in the current namespace without
// following parents").
func (ns *Namespace) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := ns.symbols[name]
	return sym, ok
}

// Size returns the number of symbols in this namespace alone.
func (ns *Namespace) Size() int { return len(ns.symbols) }

// Symbols returns every symbol in this namespace in declaration order.
func (ns *Namespace) Symbols() []*Symbol {
	out := make([]*Symbol, len(ns.order))
	for i, name := range ns.order {
		out[i] = ns.symbols[name]
	}
	return out
}

// SortedNames returns the bound names in this namespace, sorted — used
// only by diagnostics/debug dumps, never by lookup (which must stay
// insertion-ordered for shadowing semantics).
func (ns *Namespace) SortedNames() []string {
	names := append([]string(nil), ns.order...)
	sort.Strings(names)
	return names
}
