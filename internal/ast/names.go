package ast

import (
	"strings"

	"github.com/acorn-lang/acornc/pkg/token"
)

// Name is a bare identifier reference, resolved through the symbol table.
type Name struct {
	base
	Value string
}

func NewName(tok token.Token, value string) *Name { return &Name{base: newBase(tok), Value: value} }

func (n *Name) Kind() NodeKind { return KindName }
func (n *Name) String() string { return n.Value }
func (n *Name) Clone() Node    { return &Name{base: newBase(n.Token()), Value: n.Value} }

// TypeName is a type reference: an identifier plus a (possibly empty)
// list of type-parameter TypeNames, e.g. `List{Integer64}`.
type TypeName struct {
	base
	Value      string
	Parameters []*TypeName
}

func NewTypeName(tok token.Token, value string, params ...*TypeName) *TypeName {
	return &TypeName{base: newBase(tok), Value: value, Parameters: params}
}

func (n *TypeName) Kind() NodeKind { return KindTypeName }
func (n *TypeName) String() string {
	if len(n.Parameters) == 0 {
		return n.Value
	}
	parts := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		parts[i] = p.String()
	}
	return n.Value + "{" + strings.Join(parts, ", ") + "}"
}
func (n *TypeName) Clone() Node {
	params := make([]*TypeName, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = p.Clone().(*TypeName)
	}
	return &TypeName{base: newBase(n.Token()), Value: n.Value, Parameters: params}
}

// DeclName is the name introduced by a def/type declaration, along with
// the names of any type parameters it introduces (e.g. `id{T}` introduces
// type parameter "T").
type DeclName struct {
	base
	Value      string
	TypeParams []string
}

func NewDeclName(tok token.Token, value string, typeParams ...string) *DeclName {
	return &DeclName{base: newBase(tok), Value: value, TypeParams: typeParams}
}

func (n *DeclName) Kind() NodeKind { return KindDeclName }
func (n *DeclName) IsGeneric() bool { return len(n.TypeParams) > 0 }
func (n *DeclName) String() string {
	if len(n.TypeParams) == 0 {
		return n.Value
	}
	return n.Value + "{" + strings.Join(n.TypeParams, ", ") + "}"
}
func (n *DeclName) Clone() Node {
	params := append([]string(nil), n.TypeParams...)
	return &DeclName{base: newBase(n.Token()), Value: n.Value, TypeParams: params}
}

// ParamName is one formal parameter of a def/ccall declaration: a name,
// its declared type, and whether it is passed `inout` (by pointer).
type ParamName struct {
	base
	Value string
	Type  *TypeName
	Inout bool
}

func NewParamName(tok token.Token, value string, typ *TypeName, inout bool) *ParamName {
	return &ParamName{base: newBase(tok), Value: value, Type: typ, Inout: inout}
}

func (n *ParamName) Kind() NodeKind { return KindParamName }
func (n *ParamName) String() string {
	s := n.Value
	if n.Type != nil {
		if n.Inout {
			s += " as inout " + n.Type.String()
		} else {
			s += " as " + n.Type.String()
		}
	}
	return s
}
func (n *ParamName) Clone() Node {
	var typ *TypeName
	if n.Type != nil {
		typ = n.Type.Clone().(*TypeName)
	}
	return &ParamName{base: newBase(n.Token()), Value: n.Value, Type: typ, Inout: n.Inout}
}
