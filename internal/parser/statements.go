package parser

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/pkg/token"
)

// parseBlock parses an indented sequence of statements following a block
// header (`then`, `while ... then`, a def's parameter list, ...). A
// header with nothing indented under it yields an empty block.
func (p *Parser) parseBlock() *ast.Block {
	block := ast.NewBlock(p.peekTok)
	for p.peekIs(token.NEWLINE) {
		p.advance()
	}
	if !p.peekIs(token.INDENT) {
		return block
	}
	p.advance() // consume INDENT
	p.advance() // move to first statement

	for !p.curIs(token.DEINDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.advance()
	}
	return block
}

// parseStatement parses one statement inside a block. Leaves curTok on
// the last token consumed.
func (p *Parser) parseStatement() ast.Node {
	switch {
	case p.curIsKeyword("let"):
		return p.parseLetStatement()
	case p.curIsKeyword("if"):
		return p.parseIf()
	case p.curIsKeyword("while"):
		return p.parseWhile()
	case p.curIsKeyword("for"):
		return p.parseFor()
	case p.curIsKeyword("return"):
		return p.parseReturn()
	case p.curIsKeyword("spawn"):
		return p.parseSpawn()
	case p.curIsKeyword("switch"):
		return p.parseSwitch()
	default:
		return p.parseExpressionOrAssignment()
	}
}

// parseLetStatement parses a block-local `let [builtin] [mutable] name [as Type] = value`.
func (p *Parser) parseLetStatement() ast.Node {
	tok := p.curTok
	builtin := false
	if p.peekIsKeyword("builtin") {
		p.advance()
		builtin = true
	}
	mutable := false
	if p.peekIsKeyword("mutable") {
		p.advance()
		mutable = true
	}
	if !p.expect(token.NAME) {
		return nil
	}
	name := p.curTok.Lexeme

	var given *ast.TypeName
	if p.peekIsKeyword("as") {
		p.advance()
		p.advance()
		given = p.parseTypeName()
	}
	if !p.expect(token.ASSIGN) {
		return ast.NewLet(tok, name, given, nil, builtin, mutable)
	}
	p.advance()
	value := p.parseExpression(LOWEST)
	return ast.NewLet(tok, name, given, value, builtin, mutable)
}

// parseExpressionOrAssignment parses a bare expression statement or, if
// followed by `=`, an Assignment (`target = value`).
func (p *Parser) parseExpressionOrAssignment() ast.Node {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekIs(token.ASSIGN) {
		tok := p.peekTok
		p.advance()
		p.advance()
		value := p.parseExpression(LOWEST)
		return ast.NewAssignment(tok, expr, value)
	}
	return expr
}

// parseIf parses `if cond then <block> [else <block>] end`.
func (p *Parser) parseIf() ast.Node {
	tok := p.curTok
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expectKeyword("then") {
		return ast.NewIf(tok, cond, ast.NewBlock(tok), nil)
	}
	then := p.parseBlock()

	var els *ast.Block
	if p.peekIsKeyword("else") {
		p.advance()
		els = p.parseBlock()
	}
	if p.peekIsKeyword("end") {
		p.advance()
	} else {
		p.errorf("expected 'end' to close if, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
	}
	return ast.NewIf(tok, cond, then, els)
}

// parseWhile parses `while cond then <block> end`.
func (p *Parser) parseWhile() ast.Node {
	tok := p.curTok
	p.advance()
	cond := p.parseExpression(LOWEST)
	if !p.expectKeyword("then") {
		return ast.NewWhile(tok, cond, ast.NewBlock(tok))
	}
	body := p.parseBlock()
	if p.peekIsKeyword("end") {
		p.advance()
	} else {
		p.errorf("expected 'end' to close while, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
	}
	return ast.NewWhile(tok, cond, body)
}

// parseFor parses `for name in iterable <block> end` and immediately
// desugars it into `let __iter = iterable` + a `while` driving `next()`,
// so no *ast.For is ever retained in the tree (spec §9 open question;
// see DESIGN.md). The iteration protocol assumed is a `hasNext`/`next`
// method pair on the iterable's type, resolved like any other selector.
func (p *Parser) parseFor() ast.Node {
	tok := p.curTok
	p.advance()
	if !p.curIs(token.NAME) {
		p.errorf("expected loop variable name, got %s %q", p.curTok.Kind, p.curTok.Lexeme)
		return nil
	}
	varName := p.curTok.Lexeme
	if !p.expectKeyword("in") {
		return nil
	}
	p.advance()
	iterable := p.parseExpression(LOWEST)
	if !p.expectKeyword("then") {
		return nil
	}
	body := p.parseBlock()
	if p.peekIsKeyword("end") {
		p.advance()
	} else {
		p.errorf("expected 'end' to close for, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
	}

	iterLet := ast.NewLet(tok, "__iter", nil, iterable, false, false)
	cond := ast.NewCall(tok, ast.NewSelector(tok, ast.NewName(tok, "__iter"), "hasNext"), nil, nil)
	elemLet := ast.NewLet(tok, varName, nil, ast.NewCall(tok, ast.NewSelector(tok, ast.NewName(tok, "__iter"), "next"), nil, nil), false, false)

	loopBody := ast.NewBlock(tok)
	loopBody.Statements = append(loopBody.Statements, elemLet)
	loopBody.Statements = append(loopBody.Statements, body.Statements...)

	wrapper := ast.NewBlock(tok)
	wrapper.Statements = []ast.Node{iterLet, ast.NewWhile(tok, cond, loopBody)}
	return wrapper
}

// parseReturn parses `return [value]`.
func (p *Parser) parseReturn() ast.Node {
	tok := p.curTok
	if p.peekIs(token.NEWLINE) || p.peekIs(token.DEINDENT) || p.peekIs(token.EOF) {
		return ast.NewReturn(tok, nil)
	}
	p.advance()
	return ast.NewReturn(tok, p.parseExpression(LOWEST))
}

// parseSpawn parses `spawn call(...)`.
func (p *Parser) parseSpawn() ast.Node {
	tok := p.curTok
	p.advance()
	expr := p.parseExpression(LOWEST)
	call, ok := expr.(*ast.Call)
	if !ok {
		p.errorf("spawn requires a call expression")
		return nil
	}
	return ast.NewSpawn(tok, call)
}

// parseSwitch parses `switch subject (case pattern <block>)* [else <block>] end`.
func (p *Parser) parseSwitch() ast.Node {
	tok := p.curTok
	p.advance()
	subject := p.parseExpression(LOWEST)

	var cases []*ast.Case
	for p.peekIsKeyword("case") {
		p.advance()
		cases = append(cases, p.parseCaseArm())
	}
	var def *ast.Block
	if p.peekIsKeyword("else") {
		p.advance()
		def = p.parseBlock()
	}
	if p.peekIsKeyword("end") {
		p.advance()
	} else {
		p.errorf("expected 'end' to close switch, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
	}
	return ast.NewSwitch(tok, subject, cases, def)
}

func (p *Parser) parseCaseArm() *ast.Case {
	tok := p.curTok
	p.advance()
	pattern := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return ast.NewCase(tok, pattern, body)
}
