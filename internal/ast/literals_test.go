package ast

import (
	"testing"

	"github.com/acorn-lang/acornc/pkg/token"
)

func TestLiteralStrings(t *testing.T) {
	i := NewInt(tok(token.INT, "3"), 3)
	if i.String() != "3" {
		t.Errorf("Int.String() = %q", i.String())
	}
	f := NewFloat(tok(token.FLOAT, "1.5"), 1.5)
	if f.String() != "1.5" {
		t.Errorf("Float.String() = %q", f.String())
	}
	s := NewString(tok(token.STRING, "hi"), "hi")
	if s.String() != `"hi"` {
		t.Errorf("StringLit.String() = %q", s.String())
	}
}

func TestListClone(t *testing.T) {
	l := &List{base: newBase(tok(token.LBRACKET, "[")), Elements: []Node{
		NewInt(tok(token.INT, "1"), 1),
		NewInt(tok(token.INT, "2"), 2),
	}}
	clone := l.Clone().(*List)
	if clone.String() != "[1, 2]" {
		t.Errorf("got %q", clone.String())
	}
	clone.Elements[0].(*Int).Value = 99
	if l.Elements[0].(*Int).Value != 1 {
		t.Error("clone shares element backing with original")
	}
}

func TestTupleString(t *testing.T) {
	tu := &Tuple{base: newBase(tok(token.LPAREN, "(")), Elements: []Node{
		NewInt(tok(token.INT, "1"), 1),
		NewString(tok(token.STRING, "x"), "x"),
	}}
	if got := tu.String(); got != `(1, "x")` {
		t.Errorf("got %q", got)
	}
}

func TestDictionaryString(t *testing.T) {
	d := &Dictionary{base: newBase(tok(token.LBRACE, "{"))}
	d.Entries = []DictEntry{
		{Key: NewString(tok(token.STRING, "a"), "a"), Value: NewInt(tok(token.INT, "1"), 1)},
	}
	if got := d.String(); got != `{"a": 1}` {
		t.Errorf("got %q", got)
	}
}
