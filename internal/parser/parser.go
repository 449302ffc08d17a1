// Package parser implements acorn's recursive-descent, Pratt-precedence
// parser: token stream in, closed-set AST out. Modelled on the teacher's
// internal/parser package (cursor-driven recursive descent with a
// precedence-climbing expression parser, registered prefix/infix parse
// functions, an accumulated error list), generalised from DWScript's
// whitespace-insensitive grammar to acorn's indentation-sensitive one.
package parser

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/lexer"
	"github.com/acorn-lang/acornc/pkg/token"
)

// Precedence levels, loosest to tightest (SPEC_FULL §3 operator table).
const (
	_ int = iota
	LOWEST
	ASSIGN   // =
	LOGICOR  // or
	LOGICAND // and
	EQUALS   // == != < > <= >=, all one level
	SUM      // + -
	PRODUCT  // * / % |
	PREFIX   // not x, -x
	POSTFIX  // call, selector, as, index
)

var precedences = map[string]int{
	"==": EQUALS,
	"!=": EQUALS,
	"<":  EQUALS,
	"<=": EQUALS,
	">":  EQUALS,
	">=": EQUALS,
	"+":  SUM,
	"-":  SUM,
	"*":  PRODUCT,
	"/":  PRODUCT,
	"%":  PRODUCT,
	"|":  PRODUCT,
}

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(left ast.Node) ast.Node
)

// Option configures a Parser.
type Option func(*Parser)

// WithTracing enables verbose diagnostic tracing of the parse (unused by
// default, present for debugging sessions the way the lexer's tracing
// option is).
func WithTracing(enabled bool) Option {
	return func(p *Parser) { p.tracing = enabled }
}

// Parser consumes a token stream and builds acorn's AST.
type Parser struct {
	l        *lexer.Lexer
	reporter *diagnostics.Reporter
	source   string
	filename string

	curTok  token.Token
	peekTok token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
	kwPrefix  map[string]prefixParseFn

	tracing bool
}

// New creates a Parser over src, reading tokens from l.
func New(filename, source string, l *lexer.Lexer, reporter *diagnostics.Reporter, opts ...Option) *Parser {
	p := &Parser{l: l, reporter: reporter, source: source, filename: filename}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.INT:      p.parseInt,
		token.FLOAT:    p.parseFloat,
		token.STRING:   p.parseString,
		token.NAME:     p.parseName,
		token.LPAREN:   p.parseGroupedOrTuple,
		token.LBRACKET: p.parseList,
		token.LBRACE:   p.parseDictionary,
	}
	p.kwPrefix = map[string]prefixParseFn{
		"not":   p.parseUnary,
		"true":  p.parseBool,
		"false": p.parseBool,
		"new":   p.parseNew,
		"ccall": p.parseCCall,
	}
	p.infixFns = map[token.Kind]infixParseFn{
		token.OPERATOR: p.parseBinary,
		token.LPAREN:   p.parseCall,
		token.DOT:      p.parseSelector,
	}
	// "or"/"and"/"as" are keyword-driven infix/postfix operators, handled
	// directly in parseExpression's loop since infixFns is keyed by
	// token.Kind and every keyword shares the single KEYWORD kind.

	p.advance()
	p.advance()
	return p
}

// HasErrors reports whether any syntax errors were recorded.
func (p *Parser) HasErrors() bool { return p.reporter.HasErrors() }

func (p *Parser) advance() {
	p.curTok = p.peekTok
	tok, _ := p.l.NextToken()
	p.peekTok = tok
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }
func (p *Parser) curIsKeyword(word string) bool {
	return p.curTok.Kind == token.KEYWORD && p.curTok.Lexeme == word
}
func (p *Parser) peekIsKeyword(word string) bool {
	return p.peekTok.Kind == token.KEYWORD && p.peekTok.Lexeme == word
}

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s %q", k, p.peekTok.Kind, p.peekTok.Lexeme)
	return false
}

func (p *Parser) expectKeyword(word string) bool {
	if p.peekIsKeyword(word) {
		p.advance()
		return true
	}
	p.errorf("expected keyword %q, got %s %q", word, p.peekTok.Kind, p.peekTok.Lexeme)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.reporter.Errorf(diagnostics.SyntaxError, p.curTok.Location, p.source, format, args...)
}

func (p *Parser) peekPrecedence() int {
	if p.peekTok.Kind == token.OPERATOR {
		if prec, ok := precedences[p.peekTok.Lexeme]; ok {
			return prec
		}
	}
	switch {
	case p.peekIsKeyword("or"):
		return LOGICOR
	case p.peekIsKeyword("and"):
		return LOGICAND
	case p.peekIs(token.LPAREN), p.peekIs(token.DOT), p.peekIsKeyword("as"):
		return POSTFIX
	}
	return LOWEST
}

// Parse builds the top-level SourceFile for this unit (spec §4.2, §5).
// Imports are left unresolved (*ast.Import nodes); internal/units
// resolves them into the SourceFile.Imports slice.
func (p *Parser) Parse(name string) *ast.SourceFile {
	sf := ast.NewSourceFile(p.curTok, name)
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		if p.curIsKeyword("import") {
			imp := p.parseImport()
			sf.Decls = append(sf.Decls, ast.NewDeclHolder(imp.Token(), imp))
			p.advance()
		} else if holder := p.parseDeclHolder(); holder != nil {
			sf.Decls = append(sf.Decls, holder)
			p.advance()
		} else {
			p.advance()
		}
		p.skipNewlines()
	}
	return sf
}

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

func fmtUnexpected(tok token.Token) string {
	return fmt.Sprintf("unexpected token %s %q", tok.Kind, tok.Lexeme)
}
