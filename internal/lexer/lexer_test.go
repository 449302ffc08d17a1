package lexer

import (
	"testing"

	"github.com/acorn-lang/acornc/pkg/token"
)

func tokenKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New("t.acorn", src)
	var kinds []token.Kind
	for {
		tok, ok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if !ok {
			break
		}
	}
	return kinds
}

func TestLexerBasicTokens(t *testing.T) {
	src := "let x = 42\n"
	l := New("t.acorn", src)

	want := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.KEYWORD, "let"},
		{token.NAME, "x"},
		{token.ASSIGN, "="},
		{token.INT, "42"},
		{token.NEWLINE, ""},
	}
	for i, w := range want {
		tok, ok := l.NextToken()
		if !ok && i != len(want)-1 {
			t.Fatalf("unexpected EOF at step %d", i)
		}
		if tok.Kind != w.kind || tok.Lexeme != w.lexeme {
			t.Errorf("token %d: got %v %q, want %v %q", i, tok.Kind, tok.Lexeme, w.kind, w.lexeme)
		}
	}
}

func TestLexerIndentationBalances(t *testing.T) {
	src := "def f()\n" +
		"    let x = 1\n" +
		"    if x\n" +
		"        return x\n" +
		"    end\n" +
		"end\n"

	kinds := tokenKinds(t, src)
	indents, deindents := 0, 0
	for _, k := range kinds {
		switch k {
		case token.INDENT:
			indents++
		case token.DEINDENT:
			deindents++
		}
	}
	if indents != deindents {
		t.Errorf("unbalanced indentation: %d INDENT vs %d DEINDENT", indents, deindents)
	}
	if indents == 0 {
		t.Error("expected at least one INDENT")
	}
}

func TestLexerBlankAndCommentLinesIgnored(t *testing.T) {
	src := "let x = 1\n\n# a comment\n\nlet y = 2\n"
	kinds := tokenKinds(t, src)
	indentCount := 0
	for _, k := range kinds {
		if k == token.INDENT || k == token.DEINDENT {
			indentCount++
		}
	}
	if indentCount != 0 {
		t.Errorf("blank/comment lines should not affect indentation, got %d structural tokens", indentCount)
	}
}

func TestLexerStrings(t *testing.T) {
	l := New("t.acorn", `"hello world"`)
	tok, _ := l.NextToken()
	if tok.Kind != token.STRING || tok.Lexeme != "hello world" {
		t.Errorf("got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New("t.acorn", `"oops`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for unterminated string")
	}
	if l.Errors()[0].Message != "unterminated string literal" {
		t.Errorf("unexpected message: %q", l.Errors()[0].Message)
	}
}

func TestLexerFloatVsInt(t *testing.T) {
	l := New("t.acorn", "1 1.5 1.")
	tok1, _ := l.NextToken()
	tok2, _ := l.NextToken()
	tok3, _ := l.NextToken()
	if tok1.Kind != token.INT {
		t.Errorf("expected INT, got %v", tok1.Kind)
	}
	if tok2.Kind != token.FLOAT || tok2.Lexeme != "1.5" {
		t.Errorf("expected FLOAT 1.5, got %v %q", tok2.Kind, tok2.Lexeme)
	}
	// "1." with no trailing digit should lex as INT "1" then DOT, per the
	// single "optional single '.' starts Float mode" rule requiring a digit
	// after the dot.
	if tok3.Kind != token.INT || tok3.Lexeme != "1" {
		t.Errorf("expected INT 1, got %v %q", tok3.Kind, tok3.Lexeme)
	}
}

func TestLexerOperatorsAndEquality(t *testing.T) {
	l := New("t.acorn", "a + b == c")
	toks := []token.Token{}
	for {
		tok, ok := l.NextToken()
		toks = append(toks, tok)
		if !ok {
			break
		}
	}
	foundPlus, foundEq := false, false
	for _, tok := range toks {
		if tok.Kind == token.OPERATOR && tok.Lexeme == "+" {
			foundPlus = true
		}
		if tok.Kind == token.OPERATOR && tok.Lexeme == "==" {
			foundEq = true
		}
	}
	if !foundPlus {
		t.Error("expected '+' to lex as an OPERATOR token")
	}
	if !foundEq {
		t.Error("expected '==' to lex as a single OPERATOR token")
	}
}

func TestLexerComparisonOperators(t *testing.T) {
	want := []string{"==", "!=", "<", "<=", ">", ">="}
	l := New("t.acorn", "== != < <= > >=")
	for i, w := range want {
		tok, _ := l.NextToken()
		if tok.Kind != token.OPERATOR || tok.Lexeme != w {
			t.Errorf("operator %d: got %v %q, want OPERATOR %q", i, tok.Kind, tok.Lexeme, w)
		}
	}
}

func TestLexerBangWithoutEqualsIsIllegal(t *testing.T) {
	l := New("t.acorn", "!")
	tok, _ := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Errorf("expected ILLEGAL for bare '!', got %v", tok.Kind)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for bare '!'")
	}
}

func TestLexerUnicodeIdentifier(t *testing.T) {
	l := New("t.acorn", "let Δ = 1")
	l.NextToken() // let
	nameTok, _ := l.NextToken()
	if nameTok.Kind != token.NAME || nameTok.Lexeme != "Δ" {
		t.Errorf("expected unicode NAME Δ, got %v %q", nameTok.Kind, nameTok.Lexeme)
	}
}
