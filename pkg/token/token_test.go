package token

import "testing"

func TestKindStringIsTotal(t *testing.T) {
	kinds := []Kind{ILLEGAL, EOF, NEWLINE, INDENT, DEINDENT, INT, FLOAT, STRING,
		NAME, KEYWORD, LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE,
		COMMA, DOT, COLON, SEMICOLON, ASSIGN, OPERATOR}
	for _, k := range kinds {
		if k.String() == "" {
			t.Errorf("Kind(%d).String() is empty", int(k))
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	if Kind(999).String() == "" {
		t.Error("unknown kind should still render a non-empty string")
	}
}

func TestIsKeyword(t *testing.T) {
	for _, w := range []string{"let", "def", "type", "module", "if", "while", "ccall"} {
		if !IsKeyword(w) {
			t.Errorf("expected %q to be a keyword", w)
		}
	}
	if IsKeyword("notakeyword") {
		t.Error("unexpected keyword match")
	}
}

func TestTokenIsAndIsKeyword(t *testing.T) {
	tok := Token{Kind: KEYWORD, Lexeme: "def", Location: SourceLocation{Filename: "a.acorn", Line: 1, Column: 1}}
	if !tok.Is(KEYWORD) {
		t.Error("expected Is(KEYWORD) to be true")
	}
	if !tok.IsKeyword("def") {
		t.Error("expected IsKeyword(\"def\") to be true")
	}
	if tok.IsKeyword("let") {
		t.Error("unexpected keyword match")
	}
}

func TestSourceLocationString(t *testing.T) {
	loc := SourceLocation{Filename: "foo.acorn", Line: 3, Column: 5}
	if got, want := loc.String(), "foo.acorn:3:5"; got != want {
		t.Errorf("SourceLocation.String() = %q, want %q", got, want)
	}
}
