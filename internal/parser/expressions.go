package parser

import (
	"strconv"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/pkg/token"
)

// parseExpression is the Pratt-precedence climbing loop: parse a prefix
// term, then repeatedly fold in infix/postfix operators whose precedence
// exceeds minPrecedence.
func (p *Parser) parseExpression(minPrecedence int) ast.Node {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for minPrecedence < p.peekPrecedence() {
		switch {
		case p.peekIsKeyword("as"):
			p.advance()
			left = p.finishCast(left)
		case p.peekIsKeyword("or"), p.peekIsKeyword("and"):
			p.advance()
			left = p.finishKeywordBinary(left)
		default:
			fn, ok := p.infixFns[p.peekTok.Kind]
			if !ok {
				return left
			}
			p.advance()
			left = fn(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Node {
	if p.curTok.Kind == token.KEYWORD {
		if fn, ok := p.kwPrefix[p.curTok.Lexeme]; ok {
			return fn()
		}
	}
	if p.curTok.Kind == token.OPERATOR && (p.curTok.Lexeme == "-" || p.curTok.Lexeme == "+") {
		return p.parseUnary()
	}
	fn, ok := p.prefixFns[p.curTok.Kind]
	if !ok {
		p.errorf("%s", fmtUnexpected(p.curTok))
		return nil
	}
	return fn()
}

func (p *Parser) parseInt() ast.Node {
	v, err := strconv.ParseInt(p.curTok.Lexeme, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.curTok.Lexeme)
		return nil
	}
	return ast.NewInt(p.curTok, v)
}

func (p *Parser) parseFloat() ast.Node {
	v, err := strconv.ParseFloat(p.curTok.Lexeme, 64)
	if err != nil {
		p.errorf("invalid float literal %q", p.curTok.Lexeme)
		return nil
	}
	return ast.NewFloat(p.curTok, v)
}

func (p *Parser) parseString() ast.Node {
	return ast.NewString(p.curTok, p.curTok.Lexeme)
}

// parseBool lowers true/false to the Int literal 1/0: acorn's closed AST
// has no dedicated boolean literal kind, and the reference backend
// represents Boolean as a one-word integer (spec §3.4 builtin type set).
func (p *Parser) parseBool() ast.Node {
	v := int64(0)
	if p.curTok.Lexeme == "true" {
		v = 1
	}
	return ast.NewInt(p.curTok, v)
}

func (p *Parser) parseName() ast.Node {
	return ast.NewName(p.curTok, p.curTok.Lexeme)
}

// parseUnary handles both the keyword form (`not x`) and the operator
// form (`-x`, `+x`): both lower to a Call on the operator's name, the
// same way a binary operator does, so the symbol table need only ever
// resolve Call operands (spec §4.3 "selector resolution").
func (p *Parser) parseUnary() ast.Node {
	tok := p.curTok
	p.advance()
	operand := p.parseExpression(PREFIX)
	op := ast.NewName(tok, tok.Lexeme)
	return ast.NewCall(tok, op, []ast.Node{operand}, nil)
}

func (p *Parser) parseBinary(left ast.Node) ast.Node {
	opTok := p.curTok
	precedence := LOWEST
	if prec, ok := precedences[opTok.Lexeme]; ok {
		precedence = prec
	}
	p.advance()
	right := p.parseExpression(precedence)
	op := ast.NewName(opTok, opTok.Lexeme)
	return ast.NewCall(opTok, op, []ast.Node{left, right}, nil)
}

func (p *Parser) finishKeywordBinary(left ast.Node) ast.Node {
	opTok := p.curTok
	precedence := LOGICAND
	if opTok.Lexeme == "or" {
		precedence = LOGICOR
	}
	p.advance()
	right := p.parseExpression(precedence)
	op := ast.NewName(opTok, opTok.Lexeme)
	return ast.NewCall(opTok, op, []ast.Node{left, right}, nil)
}

func (p *Parser) finishCast(operand ast.Node) ast.Node {
	tok := p.curTok
	p.advance()
	typ := p.parseTypeName()
	return ast.NewCast(tok, operand, typ)
}

func (p *Parser) parseSelector(left ast.Node) ast.Node {
	if !p.expect(token.NAME) {
		return left
	}
	return ast.NewSelector(p.curTok, left, p.curTok.Lexeme)
}

// parseCall parses `(args)` immediately following an already-parsed
// operand. curTok is LPAREN on entry.
func (p *Parser) parseCall(left ast.Node) ast.Node {
	tok := p.curTok
	var positional []ast.Node
	var keyword []ast.KeywordArg

	if p.peekIs(token.RPAREN) {
		p.advance()
		return ast.NewCall(tok, left, positional, keyword)
	}
	p.advance()
	for {
		if p.curIs(token.NAME) && p.peekIs(token.COLON) {
			name := p.curTok.Lexeme
			p.advance()
			p.advance()
			keyword = append(keyword, ast.KeywordArg{Name: name, Value: p.parseExpression(LOWEST)})
		} else {
			positional = append(positional, p.parseExpression(LOWEST))
		}
		if p.peekIs(token.COMMA) {
			p.advance()
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return ast.NewCall(tok, left, positional, keyword)
}

// parseGroupedOrTuple parses `(expr)` as a parenthesised grouping and
// `(e1, e2, ...)` as a Tuple literal. curTok is LPAREN on entry.
func (p *Parser) parseGroupedOrTuple() ast.Node {
	tok := p.curTok
	p.advance()
	first := p.parseExpression(LOWEST)
	if !p.peekIs(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elems := []ast.Node{first}
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(token.RPAREN)
	return ast.NewTuple(tok, elems)
}

// parseList parses `[e1, e2, ...]`. curTok is LBRACKET on entry.
func (p *Parser) parseList() ast.Node {
	tok := p.curTok
	var elems []ast.Node
	if p.peekIs(token.RBRACKET) {
		p.advance()
		return ast.NewList(tok, elems)
	}
	p.advance()
	elems = append(elems, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACKET)
	return ast.NewList(tok, elems)
}

// parseDictionary parses `{k1: v1, k2: v2, ...}`. Parsed for completeness
// with the closed AST kind set but never reached by internal/irgen (spec
// §9 open question; see DESIGN.md).
func (p *Parser) parseDictionary() ast.Node {
	tok := p.curTok
	var entries []ast.DictEntry
	if p.peekIs(token.RBRACE) {
		p.advance()
		return ast.NewDictionary(tok, entries)
	}
	p.advance()
	entries = append(entries, p.parseDictEntry())
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		entries = append(entries, p.parseDictEntry())
	}
	p.expect(token.RBRACE)
	return ast.NewDictionary(tok, entries)
}

func (p *Parser) parseDictEntry() ast.DictEntry {
	key := p.parseExpression(LOWEST)
	if !p.expect(token.COLON) {
		return ast.DictEntry{Key: key}
	}
	p.advance()
	return ast.DictEntry{Key: key, Value: p.parseExpression(LOWEST)}
}

// parseNew parses `new TypeName`, lowered to a Cast over a synthetic
// "new" operand: the symbol table builder resolves the "new" name as the
// record's constructor method the same way it resolves any other call
// (spec §4.3).
func (p *Parser) parseNew() ast.Node {
	tok := p.curTok
	p.advance()
	typ := p.parseTypeName()
	return ast.NewCast(tok, ast.NewName(tok, "new"), typ)
}

// parseTypeName parses a type reference: `Name` or `Name{Param, ...}`.
// curTok is the type's NAME on entry; exits with curTok on the last
// token consumed.
func (p *Parser) parseTypeName() *ast.TypeName {
	if !p.curIs(token.NAME) {
		p.errorf("expected type name, got %s %q", p.curTok.Kind, p.curTok.Lexeme)
		return ast.NewTypeName(p.curTok, "")
	}
	tok := p.curTok
	name := p.curTok.Lexeme
	if !p.peekIs(token.LBRACE) {
		return ast.NewTypeName(tok, name)
	}
	p.advance() // consume '{'
	p.advance() // move to first type parameter
	var params []*ast.TypeName
	params = append(params, p.parseTypeName())
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		params = append(params, p.parseTypeName())
	}
	p.expect(token.RBRACE)
	return ast.NewTypeName(tok, name, params...)
}
