package parser

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/pkg/token"
)

// parseCCall parses an FFI call: `ccall name(arg, arg, ...) [as ReturnType]`.
// Parameter types are not declared at the call site (the extern's C
// signature is taken on faith, per SPEC_FULL §4.2a); the optional `as`
// clause gives the expression's result type the same way a cast does.
func (p *Parser) parseCCall() ast.Node {
	tok := p.curTok
	if !p.expect(token.NAME) {
		return nil
	}
	name := p.curTok.Lexeme

	var args []ast.Node
	if p.peekIs(token.LPAREN) {
		p.advance()
		args = p.parsePositionalArgs()
	}

	var ret *ast.TypeName
	if p.peekIsKeyword("as") {
		p.advance()
		p.advance()
		ret = p.parseTypeName()
	}
	return ast.NewCCall(tok, name, nil, ret, args)
}

// parsePositionalArgs parses `(expr, expr, ...)`. curTok is LPAREN on entry.
func (p *Parser) parsePositionalArgs() []ast.Node {
	var args []ast.Node
	if p.peekIs(token.RPAREN) {
		p.advance()
		return args
	}
	p.advance()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		args = append(args, p.parseExpression(LOWEST))
	}
	p.expect(token.RPAREN)
	return args
}
