// Package diagnostics formats and collects compiler errors with source
// context, line/column information, and a caret pointing at the offending
// column, following the teacher's internal/errors package.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/acorn-lang/acornc/pkg/token"
)

// Kind is the closed set of diagnostic kinds a pass may report (spec §4.9).
type Kind string

const (
	FileNotFoundError      Kind = "FileNotFoundError"
	SyntaxError            Kind = "SyntaxError"
	UndefinedError         Kind = "UndefinedError"
	RedefinedError         Kind = "RedefinedError"
	TooManyDefinedError    Kind = "TooManyDefinedError"
	InvalidTypeConstructor Kind = "InvalidTypeConstructor"
	InvalidTypeParameters  Kind = "InvalidTypeParameters"
	TypeMismatchError      Kind = "TypeMismatchError"
	TypeInferenceError     Kind = "TypeInferenceError"
	ConstantAssignmentError Kind = "ConstantAssignmentError"
	InternalError          Kind = "InternalError"
)

// Error is a single diagnostic: a kind, a human-readable message, and the
// source location it applies to.
type Error struct {
	Kind     Kind
	Message  string
	Location token.SourceLocation
	Source   string // full source text, used to resolve the offending line lazily
}

// NewError builds a diagnostic. Source may be empty if unavailable (e.g.
// an InternalError raised far from any open file).
func NewError(kind Kind, loc token.SourceLocation, source, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Source:   source,
	}
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic: a header, the offending source line, a
// caret line, then the message. When color is true ANSI escapes highlight
// the caret and message.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.Location.Filename != "" {
		fmt.Fprintf(&sb, "%s: %s at %s\n", e.Kind, e.Location.Filename, e.Location)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Location.Line, e.Location.Column)
	}

	if line := e.sourceLine(); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Location.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := e.Location.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *Error) sourceLine() string {
	if e.Location.LineText != "" {
		return e.Location.LineText
	}
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Location.Line < 1 || e.Location.Line > len(lines) {
		return ""
	}
	return lines[e.Location.Line-1]
}

// Reporter collects diagnostics across passes. The driver checks HasErrors
// after every pass and refuses to start the next one if it is true
// (spec §7).
type Reporter struct {
	errors []*Error
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a diagnostic. It never panics or aborts the caller; passes
// keep analysing siblings so one run surfaces as many diagnostics as
// possible.
func (r *Reporter) Report(err *Error) {
	r.errors = append(r.errors, err)
}

// Errorf is a convenience wrapper around Report + NewError.
func (r *Reporter) Errorf(kind Kind, loc token.SourceLocation, source, format string, args ...any) {
	r.Report(NewError(kind, loc, source, format, args...))
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.errors) > 0
}

// Errors returns all recorded diagnostics in report order.
func (r *Reporter) Errors() []*Error {
	return r.errors
}

// Format renders every diagnostic, one per paragraph.
func (r *Reporter) Format(color bool) string {
	parts := make([]string, len(r.errors))
	for i, e := range r.errors {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n")
}
