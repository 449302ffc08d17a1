package ast

import (
	"testing"

	"github.com/acorn-lang/acornc/pkg/token"
)

func TestCallDefaultsMethodAndSpecIndex(t *testing.T) {
	call := &Call{base: newBase(tok(token.LPAREN, "(")), Operand: NewName(tok(token.NAME, "f"), "f")}
	if call.MethodIndex != 0 || call.SpecIndex != 0 {
		t.Errorf("expected zero-value indices after parsing, got %d/%d", call.MethodIndex, call.SpecIndex)
	}
}

func TestCallString(t *testing.T) {
	call := &Call{
		base:       newBase(tok(token.LPAREN, "(")),
		Operand:    NewName(tok(token.NAME, "f"), "f"),
		Positional: []Node{NewInt(tok(token.INT, "1"), 1)},
		Keyword:    []KeywordArg{{Name: "by", Value: NewInt(tok(token.INT, "2"), 2)}},
	}
	if got := call.String(); got != "f(1, by: 2)" {
		t.Errorf("got %q", got)
	}
}

func TestCallCloneIsDeep(t *testing.T) {
	call := &Call{
		base:       newBase(tok(token.LPAREN, "(")),
		Operand:    NewName(tok(token.NAME, "f"), "f"),
		Positional: []Node{NewInt(tok(token.INT, "1"), 1)},
	}
	call.MethodIndex = 3
	clone := call.Clone().(*Call)
	if clone.MethodIndex != 0 {
		t.Error("Clone must reset MethodIndex so a reified call is re-resolved")
	}
	clone.Positional[0].(*Int).Value = 9
	if call.Positional[0].(*Int).Value != 1 {
		t.Error("clone shares positional args with original")
	}
}

func TestIfStringWithAndWithoutElse(t *testing.T) {
	cond := NewName(tok(token.NAME, "x"), "x")
	then := NewBlock(tok(token.KEYWORD, "then"))
	ifNode := &If{base: newBase(tok(token.KEYWORD, "if")), Cond: cond, Then: then}
	if got := ifNode.String(); got != "if x then  end" {
		t.Errorf("got %q", got)
	}
	ifNode.Else = NewBlock(tok(token.KEYWORD, "else"))
	if got := ifNode.String(); got != "if x then  else  end" {
		t.Errorf("got %q", got)
	}
}

func TestReturnBareVsValue(t *testing.T) {
	bare := &Return{base: newBase(tok(token.KEYWORD, "return"))}
	if got := bare.String(); got != "return" {
		t.Errorf("got %q", got)
	}
	withValue := &Return{base: newBase(tok(token.KEYWORD, "return")), Value: NewInt(tok(token.INT, "1"), 1)}
	if got := withValue.String(); got != "return 1" {
		t.Errorf("got %q", got)
	}
}

func TestLetBuiltinFlag(t *testing.T) {
	l := &Let{base: newBase(tok(token.KEYWORD, "let")), Name: "x", Value: NewInt(tok(token.INT, "1"), 1), Builtin: true}
	if got := l.String(); got != "let builtin x = 1" {
		t.Errorf("got %q", got)
	}
}

func TestBlockCloneIsDeep(t *testing.T) {
	b := NewBlock(tok(token.INDENT, ""))
	b.Statements = []Node{NewInt(tok(token.INT, "1"), 1)}
	clone := b.Clone().(*Block)
	clone.Statements[0].(*Int).Value = 2
	if b.Statements[0].(*Int).Value != 1 {
		t.Error("clone shares statements with original")
	}
}

func TestCCallString(t *testing.T) {
	c := &CCall{
		base: newBase(tok(token.KEYWORD, "ccall")),
		Name: "puts",
		Args: []Node{NewString(tok(token.STRING, "hi"), "hi")},
	}
	if got := c.String(); got != `ccall puts("hi")` {
		t.Errorf("got %q", got)
	}
}
