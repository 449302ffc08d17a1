package diagnostics

import (
	"strings"
	"testing"

	"github.com/acorn-lang/acornc/pkg/token"
)

func TestErrorFormatIncludesCaret(t *testing.T) {
	src := "let x = 1\nlet y = bad\n"
	loc := token.SourceLocation{Filename: "f.acorn", Line: 2, Column: 9}
	err := NewError(UndefinedError, loc, src, "undefined name %q", "bad")

	out := err.Format(false)
	if !strings.Contains(out, "UndefinedError") {
		t.Errorf("expected kind in output, got %q", out)
	}
	if !strings.Contains(out, "let y = bad") {
		t.Errorf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret in output, got %q", out)
	}
	if !strings.Contains(out, `undefined name "bad"`) {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestReporterHasErrors(t *testing.T) {
	r := NewReporter()
	if r.HasErrors() {
		t.Fatal("new reporter should have no errors")
	}
	r.Errorf(SyntaxError, token.SourceLocation{Line: 1, Column: 1}, "", "unexpected token")
	if !r.HasErrors() {
		t.Fatal("expected HasErrors to be true after Report")
	}
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(r.Errors()))
	}
}

func TestReporterFormatJoinsErrors(t *testing.T) {
	r := NewReporter()
	r.Errorf(SyntaxError, token.SourceLocation{Line: 1, Column: 1}, "", "first")
	r.Errorf(TypeMismatchError, token.SourceLocation{Line: 2, Column: 1}, "", "second")
	out := r.Format(false)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both messages in output, got %q", out)
	}
}
