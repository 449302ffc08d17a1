package parser

import (
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/pkg/token"
)

// parseDeclHolder dispatches on the declaration keyword starting at
// curTok and wraps the parsed declaration in a DeclHolder (spec §3.2;
// the Specialisations slice is populated later, by the reifier).
func (p *Parser) parseDeclHolder() *ast.DeclHolder {
	switch {
	case p.curIsKeyword("let"):
		return ast.NewDeclHolder(p.curTok, p.parseVarDecl())
	case p.curIsKeyword("def"):
		return ast.NewDeclHolder(p.curTok, p.parseDefDecl())
	case p.curIsKeyword("type"):
		return ast.NewDeclHolder(p.curTok, p.parseTypeDecl())
	case p.curIsKeyword("module"):
		return ast.NewDeclHolder(p.curTok, p.parseModuleDecl())
	default:
		p.errorf("expected a declaration, got %s %q", p.curTok.Kind, p.curTok.Lexeme)
		return nil
	}
}

// parseDeclName parses the name introduced by a def/type declaration,
// including an optional `{T, U, ...}` generic type-parameter list.
// curTok is the NAME on entry.
func (p *Parser) parseDeclName() *ast.DeclName {
	tok := p.curTok
	name := p.curTok.Lexeme
	var typeParams []string
	if p.peekIs(token.LBRACE) {
		p.advance()
		p.advance()
		typeParams = append(typeParams, p.curTok.Lexeme)
		for p.peekIs(token.COMMA) {
			p.advance()
			p.advance()
			typeParams = append(typeParams, p.curTok.Lexeme)
		}
		p.expect(token.RBRACE)
	}
	return ast.NewDeclName(tok, name, typeParams...)
}

// parseImport parses `import path/to/unit` (SPEC_FULL §5; the path is
// resolved to a source unit by internal/units, not by the parser).
func (p *Parser) parseImport() *ast.Import {
	tok := p.curTok
	p.advance()
	var path strings.Builder
	path.WriteString(p.curTok.Lexeme)
	for p.peekIs(token.OPERATOR) && p.peekTok.Lexeme == "/" {
		p.advance()
		path.WriteByte('/')
		p.advance()
		path.WriteString(p.curTok.Lexeme)
	}
	return ast.NewImport(tok, path.String())
}

// parseVarDecl parses `let [builtin] [mutable] Name [as Type] [= Value]`.
// Without the `mutable` marker, the declaration is a constant: the
// inferrer rejects any assignment to it (spec §4.4).
func (p *Parser) parseVarDecl() *ast.VarDecl {
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
		return ast.NewVarDecl(tok, ast.NewDeclName(tok, ""), nil, nil, builtin, mutable)
	}
	name := p.parseDeclName()

	var given *ast.TypeName
	if p.peekIsKeyword("as") {
		p.advance()
		p.advance()
		given = p.parseTypeName()
	}

	var value ast.Node
	if p.peekIs(token.ASSIGN) {
		p.advance()
		p.advance()
		value = p.parseExpression(LOWEST)
	}
	return ast.NewVarDecl(tok, name, given, value, builtin, mutable)
}

// parseDefDecl parses `def [builtin] Name{T...}(params) [as Ret] <block>`.
// A builtin def has no body (spec §4.8a: compiler-provided method).
func (p *Parser) parseDefDecl() *ast.DefDecl {
	tok := p.curTok
	builtin := false
	if p.peekIsKeyword("builtin") {
		p.advance()
		builtin = true
	}
	if !p.expect(token.NAME) {
		return ast.NewDefDecl(tok, ast.NewDeclName(tok, ""), nil, nil, nil, builtin)
	}
	name := p.parseDeclName()

	var params []*ast.ParamName
	if p.peekIs(token.LPAREN) {
		p.advance()
		params = p.parseParamList()
	}

	var ret *ast.TypeName
	if p.peekIsKeyword("as") {
		p.advance()
		p.advance()
		ret = p.parseTypeName()
	}

	var body *ast.Block
	if !builtin {
		body = p.parseBlock()
		if p.peekIsKeyword("end") {
			p.advance()
		} else {
			p.errorf("expected 'end' to close def, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
		}
	}
	return ast.NewDefDecl(tok, name, params, ret, body, builtin)
}

// parseParamList parses `(param, param, ...)`. curTok is LPAREN on entry.
func (p *Parser) parseParamList() []*ast.ParamName {
	var params []*ast.ParamName
	if p.peekIs(token.RPAREN) {
		p.advance()
		return params
	}
	p.advance()
	params = append(params, p.parseParam())
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		params = append(params, p.parseParam())
	}
	p.expect(token.RPAREN)
	return params
}

// parseParam parses one `name [as [inout] Type]` formal (spec §4.2a).
func (p *Parser) parseParam() *ast.ParamName {
	tok := p.curTok
	name := p.curTok.Lexeme
	var typ *ast.TypeName
	inout := false
	if p.peekIsKeyword("as") {
		p.advance()
		p.advance()
		if p.curIsKeyword("inout") {
			inout = true
			p.advance()
		}
		typ = p.parseTypeName()
	}
	return ast.NewParamName(tok, name, typ, inout)
}

// parseTypeDecl parses the three TypeDecl shapes (spec §3.2, §4.3):
// builtin (`type Name`), alias (`type Name = Other`), and record
// (`type Name(field as Type, ...)`).
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	tok := p.curTok
	if !p.expect(token.NAME) {
		return ast.NewBuiltinTypeDecl(tok, ast.NewDeclName(tok, ""))
	}
	name := p.parseDeclName()

	switch {
	case p.peekIs(token.ASSIGN):
		p.advance()
		p.advance()
		return ast.NewAliasTypeDecl(tok, name, p.parseTypeName())
	case p.peekIs(token.LPAREN):
		p.advance()
		return ast.NewRecordTypeDecl(tok, name, p.parseParamList())
	default:
		return ast.NewBuiltinTypeDecl(tok, name)
	}
}

// parseModuleDecl parses `module Name <declblock>` (modules nest
// arbitrarily, SPEC_FULL §4.2a).
func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	tok := p.curTok
	if !p.expect(token.NAME) {
		return ast.NewModuleDecl(tok, "", ast.NewBlock(tok))
	}
	name := p.curTok.Lexeme
	body := p.parseDeclBlock()
	if p.peekIsKeyword("end") {
		p.advance()
	} else {
		p.errorf("expected 'end' to close module, got %s %q", p.peekTok.Kind, p.peekTok.Lexeme)
	}
	return ast.NewModuleDecl(tok, name, body)
}

// parseDeclBlock parses an indented sequence of declarations, the body
// of a ModuleDecl.
func (p *Parser) parseDeclBlock() *ast.Block {
	block := ast.NewBlock(p.peekTok)
	for p.peekIs(token.NEWLINE) {
		p.advance()
	}
	if !p.peekIs(token.INDENT) {
		return block
	}
	p.advance() // consume INDENT
	p.advance() // move to first declaration

	for !p.curIs(token.DEINDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		if p.curIsKeyword("import") {
			imp := p.parseImport()
			block.Statements = append(block.Statements, ast.NewDeclHolder(imp.Token(), imp))
		} else if holder := p.parseDeclHolder(); holder != nil {
			block.Statements = append(block.Statements, holder)
		}
		p.advance()
	}
	return block
}
