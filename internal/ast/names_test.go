package ast

import (
	"testing"

	"github.com/acorn-lang/acornc/pkg/token"
)

func TestTypeNameStringWithParameters(t *testing.T) {
	elem := NewTypeName(tok(token.NAME, "Integer64"), "Integer64")
	listType := NewTypeName(tok(token.NAME, "List"), "List", elem)
	if got := listType.String(); got != "List{Integer64}" {
		t.Errorf("got %q", got)
	}
}

func TestTypeNameStringNoParameters(t *testing.T) {
	n := NewTypeName(tok(token.NAME, "String"), "String")
	if got := n.String(); got != "String" {
		t.Errorf("got %q", got)
	}
}

func TestDeclNameIsGeneric(t *testing.T) {
	generic := NewDeclName(tok(token.NAME, "id"), "id", "T")
	if !generic.IsGeneric() {
		t.Error("expected IsGeneric() true")
	}
	plain := NewDeclName(tok(token.NAME, "f"), "f")
	if plain.IsGeneric() {
		t.Error("expected IsGeneric() false")
	}
	if got := generic.String(); got != "id{T}" {
		t.Errorf("got %q", got)
	}
}

func TestParamNameString(t *testing.T) {
	typ := NewTypeName(tok(token.NAME, "Integer64"), "Integer64")
	p := NewParamName(tok(token.NAME, "x"), "x", typ, false)
	if got := p.String(); got != "x as Integer64" {
		t.Errorf("got %q", got)
	}
	inout := NewParamName(tok(token.NAME, "y"), "y", typ, true)
	if got := inout.String(); got != "y as inout Integer64" {
		t.Errorf("got %q", got)
	}
}

func TestParamNameClonePreservesInout(t *testing.T) {
	typ := NewTypeName(tok(token.NAME, "Integer64"), "Integer64")
	p := NewParamName(tok(token.NAME, "x"), "x", typ, true)
	clone := p.Clone().(*ParamName)
	if !clone.Inout {
		t.Error("clone lost Inout flag")
	}
	clone.Type.Value = "Float64"
	if p.Type.Value != "Integer64" {
		t.Error("clone shares Type with original")
	}
}
