// Package ast defines acorn's typed abstract syntax tree: a closed set of
// node kinds, each carrying its originating token and an (initially nil)
// resolved-type decoration filled in by later passes. Modelled on the
// teacher's internal/ast package (Node/Expression/Statement split with
// TokenLiteral/Pos/String per node), adapted to acorn's closed-sum grammar
// where passes are written as type switches rather than a visitor
// interface (see DESIGN.md).
package ast

import (
	"fmt"

	"github.com/acorn-lang/acornc/pkg/token"
)

// NodeKind is the closed set of AST node kinds (spec §3.2).
type NodeKind int

const (
	KindInt NodeKind = iota
	KindFloat
	KindComplex
	KindString
	KindList
	KindTuple
	KindDictionary

	KindName
	KindTypeName
	KindDeclName
	KindParamName

	KindSelector
	KindCall
	KindCCall
	KindCast
	KindAssignment
	KindWhile
	KindIf
	KindReturn
	KindSpawn
	KindCase
	KindSwitch
	KindFor
	KindLet
	KindBlock

	KindVarDecl
	KindDefDecl
	KindTypeDecl
	KindModuleDecl
	KindImport

	KindDeclHolder
	KindSourceFile
)

var kindNames = [...]string{
	"Int", "Float", "Complex", "String", "List", "Tuple", "Dictionary",
	"Name", "TypeName", "DeclName", "ParamName",
	"Selector", "Call", "CCall", "Cast", "Assignment", "While", "If",
	"Return", "Spawn", "Case", "Switch", "For", "Let", "Block",
	"VarDecl", "DefDecl", "TypeDecl", "ModuleDecl", "Import",
	"DeclHolder", "SourceFile",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is the base interface every AST node implements. Every node is
// owned exactly once by its parent (spec §3.2 invariant); there are no
// cross-references between subtrees other than through the symbol table.
type Node interface {
	Kind() NodeKind
	Token() token.Token
	Pos() token.SourceLocation
	String() string

	// ResolvedType returns the decoration written by the type inferrer, or
	// nil before inference has run. Typed as `any` to avoid an import cycle
	// with internal/types; consumers (semantic, reifier, irgen) perform a
	// checked type assertion to the concrete typesystem type they expect.
	ResolvedType() any
	SetResolvedType(t any)

	// Clone returns a deep copy preserving structure and tokens, but
	// clearing the resolved-type and method/specialisation-index
	// decorations so a cloned subtree can be re-inferred from scratch
	// (required by the generic reifier, spec §3.2 invariant).
	Clone() Node
}

// base is embedded by every concrete node and supplies the Token/Pos/
// ResolvedType plumbing so individual node types only implement Kind,
// String, and Clone.
type base struct {
	tok NodeToken
	typ any
}

// NodeToken is a thin alias kept distinct from token.Token so the zero
// value of `base` is an explicit "no token" rather than a zeroed real
// token; it is always constructed from a token.Token via newBase.
type NodeToken struct {
	token.Token
	set bool
}

func newBase(tok token.Token) base {
	return base{tok: NodeToken{Token: tok, set: true}}
}

func (b *base) Token() token.Token { return b.tok.Token }
func (b *base) Pos() token.SourceLocation {
	if !b.tok.set {
		return token.SourceLocation{}
	}
	return b.tok.Location
}
func (b *base) ResolvedType() any     { return b.typ }
func (b *base) SetResolvedType(t any) { b.typ = t }
