// Package lexer implements acorn's indentation-sensitive, UTF-8 aware
// lexical scanner. It is modelled on the teacher's rune-based lexer
// (github.com/cwbudde/go-dws/internal/lexer), generalised from DWScript's
// begin/end grammar to acorn's Python-like indentation grammar.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/pkg/token"
)

const tabWidth = 8

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithNormalizeIdentifiers enables NFC normalisation of identifier lexemes,
// so that visually-identical identifiers typed with different Unicode
// combining sequences resolve to the same symbol-table entry.
func WithNormalizeIdentifiers(enabled bool) Option {
	return func(l *Lexer) { l.normalizeIdents = enabled }
}

// WithTracing enables debug tracing of lexer state transitions.
func WithTracing(enabled bool) Option {
	return func(l *Lexer) { l.tracing = enabled }
}

// Lexer scans acorn source text into a Token stream.
type Lexer struct {
	filename string
	input    string

	position     int
	readPosition int
	line         int
	column       int
	ch           rune

	indentStack []int
	atLineStart bool
	sawAnyToken bool
	flushedEOF  bool

	pending []token.Token

	normalizeIdents bool
	tracing         bool

	errors []*diagnostics.Error
}

// New creates a Lexer over input, attributing diagnostics to filename.
// A leading UTF-8 BOM is stripped, matching the teacher's file-reading
// behaviour.
func New(filename, input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}

	l := &Lexer{
		filename:    filename,
		input:       input,
		line:        1,
		column:      0,
		indentStack: []int{0},
		atLineStart: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns any lexical errors (invalid UTF-8, unterminated strings,
// bad indentation) recorded during scanning.
func (l *Lexer) Errors() []*diagnostics.Error { return l.errors }

func (l *Lexer) addError(kind diagnostics.Kind, loc token.SourceLocation, format string, args ...any) {
	l.errors = append(l.errors, diagnostics.NewError(kind, loc, l.input, format, args...))
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError(diagnostics.SyntaxError, l.loc(), "invalid UTF-8 encoding")
	}
	if r == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) loc() token.SourceLocation {
	return token.SourceLocation{Filename: l.filename, Line: l.line, Column: l.column}
}

func (l *Lexer) currentLine() string {
	start := l.position
	for start > 0 && l.input[start-1] != '\n' {
		start--
	}
	end := l.position
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	return l.input[start:end]
}

func (l *Lexer) locWithLine() token.SourceLocation {
	loc := l.loc()
	loc.LineText = l.currentLine()
	return loc
}

func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isNameCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// NextToken returns the next token in the stream, or (EOF-token, false)
// once lexing is complete (spec §4.1 `next_token`). Subsequent calls after
// EOF continue to return (EOF-token, false).
func (l *Lexer) NextToken() (token.Token, bool) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, true
	}

	if l.atLineStart {
		l.handleLineStart()
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		}
		if l.ch == 0 {
			tok := l.eofToken()
			return tok, tok.Kind != token.EOF
		}
	}

	l.skipIntraLineWhitespaceAndComments()

	if l.ch == 0 {
		tok := l.eofToken()
		return tok, tok.Kind != token.EOF
	}

	if l.ch == '\n' {
		l.atLineStart = true
		return l.NextToken()
	}

	l.sawAnyToken = true

	switch {
	case isNameStart(l.ch):
		return l.lexName(), true
	case unicode.IsDigit(l.ch):
		return l.lexNumber(), true
	case l.ch == '"':
		return l.lexString(), true
	default:
		return l.lexSymbol(), true
	}
}

func (l *Lexer) eofToken() token.Token {
	if !l.flushedEOF {
		// flush any still-open indentation levels before EOF (SPEC_FULL §4.1a)
		for len(l.indentStack) > 1 {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pending = append(l.pending, token.Token{Kind: token.DEINDENT, Lexeme: "", Location: l.loc()})
		}
		l.flushedEOF = true
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}
	}
	return token.Token{Kind: token.EOF, Lexeme: "", Location: l.loc()}
}

// handleLineStart consumes a run of blank/comment-only lines, computes the
// indentation width of the next real line, and queues NEWLINE plus any
// INDENT/DEINDENT tokens implied by the change in indentation.
func (l *Lexer) handleLineStart() {
	for {
		width, blank := l.measureIndent()
		if l.ch == 0 {
			// the line break ending the last statement still terminates it
			if l.sawAnyToken {
				l.atLineStart = false
				l.pushPending(token.Token{Kind: token.NEWLINE, Lexeme: "", Location: l.loc()})
			}
			return
		}
		if blank {
			// consume the rest of this (blank/comment) line including its newline
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			if l.ch == '\n' {
				l.readChar()
			}
			continue
		}

		l.atLineStart = false
		if l.sawAnyToken {
			l.pushPending(token.Token{Kind: token.NEWLINE, Lexeme: "", Location: l.loc()})
		}
		l.adjustIndent(width)
		return
	}
}

// measureIndent scans leading whitespace on the current line (the lexer
// must be positioned at the start of a line) and reports the indentation
// width (tabs expand to the next multiple of 8) and whether the line is
// blank or comment-only.
func (l *Lexer) measureIndent() (width int, blank bool) {
	for {
		switch l.ch {
		case ' ':
			width++
			l.readChar()
		case '\t':
			width += tabWidth - (width % tabWidth)
			l.readChar()
		case '\r':
			l.readChar()
		case '\n':
			return width, true
		case '#':
			return width, true
		case 0:
			return width, false
		default:
			return width, false
		}
	}
}

func (l *Lexer) adjustIndent(width int) {
	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case width > top:
		l.indentStack = append(l.indentStack, width)
		l.pushPending(token.Token{Kind: token.INDENT, Lexeme: "", Location: l.loc()})
	case width < top:
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > width {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pushPending(token.Token{Kind: token.DEINDENT, Lexeme: "", Location: l.loc()})
		}
		if l.indentStack[len(l.indentStack)-1] != width {
			l.addError(diagnostics.SyntaxError, l.locWithLine(), "indentation does not match any enclosing block")
		}
	}
}

// pushPending appends a structural token, collapsing an immediately
// preceding DEINDENT/INDENT pair that nets back to the same level (SPEC
// §4.1 peephole filter), so `else`/`end` clauses at the enclosing scope
// don't see spurious re-indentation.
func (l *Lexer) pushPending(tok token.Token) {
	if tok.Kind == token.INDENT && len(l.pending) > 0 {
		last := l.pending[len(l.pending)-1]
		if last.Kind == token.DEINDENT {
			l.pending = l.pending[:len(l.pending)-1]
			return
		}
	}
	l.pending = append(l.pending, tok)
}

func (l *Lexer) skipIntraLineWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\\':
			if l.peekChar() == '\n' {
				l.readChar() // consume backslash
				l.readChar() // consume newline, absorbing the line break
				continue
			}
			return
		case '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexName() token.Token {
	loc := l.loc()
	start := l.position
	for isNameCont(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	if l.normalizeIdents {
		lexeme = norm.NFC.String(lexeme)
	}
	if token.IsKeyword(lexeme) {
		return token.Token{Kind: token.KEYWORD, Lexeme: lexeme, Location: loc}
	}
	return token.Token{Kind: token.NAME, Lexeme: lexeme, Location: loc}
}

func (l *Lexer) lexNumber() token.Token {
	loc := l.loc()
	start := l.position
	kind := token.INT
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		kind = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Kind: kind, Lexeme: l.input[start:l.position], Location: loc}
}

func (l *Lexer) lexString() token.Token {
	loc := l.loc()
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '"' && l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	if l.ch != '"' {
		l.addError(diagnostics.SyntaxError, l.locWithLine(), "unterminated string literal")
	} else {
		l.readChar() // consume closing quote
	}
	return token.Token{Kind: token.STRING, Lexeme: lexeme, Location: loc}
}

const singleOperatorChars = "+-*/%|"

func (l *Lexer) lexSymbol() token.Token {
	loc := l.loc()
	ch := l.ch

	switch ch {
	case '(':
		l.readChar()
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Location: loc}
	case ')':
		l.readChar()
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Location: loc}
	case '[':
		l.readChar()
		return token.Token{Kind: token.LBRACKET, Lexeme: "[", Location: loc}
	case ']':
		l.readChar()
		return token.Token{Kind: token.RBRACKET, Lexeme: "]", Location: loc}
	case '{':
		l.readChar()
		return token.Token{Kind: token.LBRACE, Lexeme: "{", Location: loc}
	case '}':
		l.readChar()
		return token.Token{Kind: token.RBRACE, Lexeme: "}", Location: loc}
	case ',':
		l.readChar()
		return token.Token{Kind: token.COMMA, Lexeme: ",", Location: loc}
	case '.':
		l.readChar()
		return token.Token{Kind: token.DOT, Lexeme: ".", Location: loc}
	case ':':
		l.readChar()
		return token.Token{Kind: token.COLON, Lexeme: ":", Location: loc}
	case ';':
		l.readChar()
		return token.Token{Kind: token.SEMICOLON, Lexeme: ";", Location: loc}
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.OPERATOR, Lexeme: "==", Location: loc}
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Location: loc}
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.OPERATOR, Lexeme: "!=", Location: loc}
		}
		l.addError(diagnostics.SyntaxError, l.locWithLine(), "unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Lexeme: "!", Location: loc}
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.OPERATOR, Lexeme: "<=", Location: loc}
		}
		return token.Token{Kind: token.OPERATOR, Lexeme: "<", Location: loc}
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return token.Token{Kind: token.OPERATOR, Lexeme: ">=", Location: loc}
		}
		return token.Token{Kind: token.OPERATOR, Lexeme: ">", Location: loc}
	}

	if strings.ContainsRune(singleOperatorChars, ch) {
		l.readChar()
		return token.Token{Kind: token.OPERATOR, Lexeme: string(ch), Location: loc}
	}

	l.addError(diagnostics.SyntaxError, l.locWithLine(), "unexpected character %q", ch)
	l.readChar()
	return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Location: loc}
}
