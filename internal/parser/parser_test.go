package parser

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.SourceFile, *diagnostics.Reporter) {
	t.Helper()
	reporter := diagnostics.NewReporter()
	l := lexer.New("t.acorn", src)
	p := New("t.acorn", src, l, reporter)
	sf := p.Parse("t")
	return sf, reporter
}

func requireNoErrors(t *testing.T, reporter *diagnostics.Reporter) {
	t.Helper()
	if reporter.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", reporter.Format(false))
	}
}

func TestParseVarDecl(t *testing.T) {
	sf, reporter := parse(t, "let x as Integer64 = 42\n")
	requireNoErrors(t, reporter)
	if len(sf.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(sf.Decls))
	}
	v, ok := sf.Decls[0].Main.(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", sf.Decls[0].Main)
	}
	if v.Name.Value != "x" || v.Given.Value != "Integer64" {
		t.Errorf("got name=%q given=%v", v.Name.Value, v.Given)
	}
	if i, ok := v.Value.(*ast.Int); !ok || i.Value != 42 {
		t.Errorf("expected Int(42), got %#v", v.Value)
	}
}

func TestParseDefDeclWithBody(t *testing.T) {
	src := "def add(x as Integer64, y as Integer64) as Integer64\n" +
		"    return x + y\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	if len(sf.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(sf.Decls))
	}
	def, ok := sf.Decls[0].Main.(*ast.DefDecl)
	if !ok {
		t.Fatalf("expected *ast.DefDecl, got %T", sf.Decls[0].Main)
	}
	if def.Name.Value != "add" || len(def.Params) != 2 {
		t.Fatalf("got name=%q params=%d", def.Name.Value, len(def.Params))
	}
	if def.Body == nil || len(def.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %v", def.Body)
	}
	ret, ok := def.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", def.Body.Statements[0])
	}
	call, ok := ret.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected return value to be a Call (binary '+'), got %T", ret.Value)
	}
	if call.MethodIndex != 0 || call.SpecIndex != 0 {
		t.Errorf("expected zero-valued method/spec index after parsing, got %d/%d", call.MethodIndex, call.SpecIndex)
	}
}

func TestParseBuiltinDefHasNoBody(t *testing.T) {
	sf, reporter := parse(t, "def builtin puts(s as String)\n")
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	if !def.Builtin {
		t.Error("expected Builtin = true")
	}
	if def.Body != nil {
		t.Errorf("expected nil body for builtin def, got %v", def.Body)
	}
}

func TestParseGenericDefDecl(t *testing.T) {
	sf, reporter := parse(t, "def id{T}(x as T) as T\n    return x\nend\n")
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	if !def.Name.IsGeneric() || def.Name.TypeParams[0] != "T" {
		t.Errorf("expected generic DeclName with type param T, got %v", def.Name)
	}
}

func TestParseRecordTypeDecl(t *testing.T) {
	sf, reporter := parse(t, "type Point(x as Integer64, y as Integer64)\n")
	requireNoErrors(t, reporter)
	td := sf.Decls[0].Main.(*ast.TypeDecl)
	if td.Shape != ast.TypeDeclRecord || len(td.Fields) != 2 {
		t.Fatalf("got shape=%v fields=%d", td.Shape, len(td.Fields))
	}
}

func TestParseAliasTypeDecl(t *testing.T) {
	sf, reporter := parse(t, "type Name = String\n")
	requireNoErrors(t, reporter)
	td := sf.Decls[0].Main.(*ast.TypeDecl)
	if td.Shape != ast.TypeDeclAlias || td.AliasTarget.Value != "String" {
		t.Fatalf("got shape=%v target=%v", td.Shape, td.AliasTarget)
	}
}

func TestParseBuiltinTypeDecl(t *testing.T) {
	sf, reporter := parse(t, "type Integer64\n")
	requireNoErrors(t, reporter)
	td := sf.Decls[0].Main.(*ast.TypeDecl)
	if td.Shape != ast.TypeDeclBuiltin {
		t.Fatalf("got shape=%v", td.Shape)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "def f(x as Integer64) as Integer64\n" +
		"    if x then\n" +
		"        return 1\n" +
		"    else\n" +
		"        return 0\n" +
		"    end\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	ifNode, ok := def.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", def.Body.Statements[0])
	}
	if len(ifNode.Then.Statements) != 1 || ifNode.Else == nil || len(ifNode.Else.Statements) != 1 {
		t.Fatalf("unexpected if shape: then=%v else=%v", ifNode.Then, ifNode.Else)
	}
}

func TestParseWhile(t *testing.T) {
	src := "def f()\n" +
		"    while true then\n" +
		"        let x = 1\n" +
		"    end\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	w, ok := def.Body.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", def.Body.Statements[0])
	}
	if len(w.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in while body, got %d", len(w.Body.Statements))
	}
}

func TestParseForDesugarsToLetWhile(t *testing.T) {
	src := "def f(xs as List{Integer64})\n" +
		"    for x in xs then\n" +
		"        let y = x\n" +
		"    end\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	wrapper, ok := def.Body.Statements[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected a wrapper *ast.Block for desugared for-loop, got %T", def.Body.Statements[0])
	}
	if len(wrapper.Statements) != 2 {
		t.Fatalf("expected 2 statements (iter let + while), got %d", len(wrapper.Statements))
	}
	if _, ok := wrapper.Statements[0].(*ast.Let); !ok {
		t.Errorf("expected first desugared statement to be *ast.Let, got %T", wrapper.Statements[0])
	}
	if _, ok := wrapper.Statements[1].(*ast.While); !ok {
		t.Errorf("expected second desugared statement to be *ast.While, got %T", wrapper.Statements[1])
	}
}

func TestParseAssignment(t *testing.T) {
	src := "def f()\n" +
		"    let x = 1\n" +
		"    x = 2\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	if len(def.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(def.Body.Statements))
	}
	if _, ok := def.Body.Statements[1].(*ast.Assignment); !ok {
		t.Errorf("expected *ast.Assignment, got %T", def.Body.Statements[1])
	}
}

func TestParseModuleNesting(t *testing.T) {
	src := "module outer\n" +
		"    module inner\n" +
		"        let x = 1\n" +
		"    end\n" +
		"end\n"
	sf, reporter := parse(t, src)
	requireNoErrors(t, reporter)
	outer := sf.Decls[0].Main.(*ast.ModuleDecl)
	if outer.Name != "outer" || len(outer.Body.Statements) != 1 {
		t.Fatalf("got name=%q statements=%d", outer.Name, len(outer.Body.Statements))
	}
	innerHolder, ok := outer.Body.Statements[0].(*ast.DeclHolder)
	if !ok {
		t.Fatalf("expected *ast.DeclHolder, got %T", outer.Body.Statements[0])
	}
	inner, ok := innerHolder.Main.(*ast.ModuleDecl)
	if !ok || inner.Name != "inner" {
		t.Fatalf("expected nested module 'inner', got %#v", innerHolder.Main)
	}
}

func TestParseImport(t *testing.T) {
	sf, reporter := parse(t, "import collections/list\n")
	requireNoErrors(t, reporter)
	imp, ok := sf.Decls[0].Main.(*ast.Import)
	if !ok || imp.Path != "collections/list" {
		t.Fatalf("got %#v", sf.Decls[0].Main)
	}
}

func TestParseCCall(t *testing.T) {
	sf, reporter := parse(t, "def f()\n    ccall puts(\"hi\")\nend\n")
	requireNoErrors(t, reporter)
	_ = sf
}

func TestOperatorPrecedence(t *testing.T) {
	sf, reporter := parse(t, "let x = 1 + 2 * 3\n")
	requireNoErrors(t, reporter)
	v := sf.Decls[0].Main.(*ast.VarDecl)
	call, ok := v.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", v.Value)
	}
	op := call.Operand.(*ast.Name)
	if op.Value != "+" {
		t.Fatalf("expected '+' to bind loosest, got %q", op.Value)
	}
	rhs, ok := call.Positional[1].(*ast.Call)
	if !ok {
		t.Fatalf("expected right side to be the '*' call, got %T", call.Positional[1])
	}
	if rhs.Operand.(*ast.Name).Value != "*" {
		t.Errorf("expected '*' nested under '+', got %q", rhs.Operand.(*ast.Name).Value)
	}
}

func TestComparisonOperatorsShareOnePrecedenceLevel(t *testing.T) {
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		sf, reporter := parse(t, "let x = a "+op+" b\n")
		requireNoErrors(t, reporter)
		v := sf.Decls[0].Main.(*ast.VarDecl)
		call, ok := v.Value.(*ast.Call)
		if !ok {
			t.Fatalf("%s: expected *ast.Call, got %T", op, v.Value)
		}
		if call.Operand.(*ast.Name).Value != op {
			t.Errorf("%s: expected operand %q, got %q", op, op, call.Operand.(*ast.Name).Value)
		}
	}

	sf, reporter := parse(t, "let x = a + b == c + d\n")
	requireNoErrors(t, reporter)
	v := sf.Decls[0].Main.(*ast.VarDecl)
	eq, ok := v.Value.(*ast.Call)
	if !ok || eq.Operand.(*ast.Name).Value != "==" {
		t.Fatalf("expected '==' to bind loosest, got %#v", v.Value)
	}
	if _, ok := eq.Positional[0].(*ast.Call); !ok {
		t.Errorf("expected left side to be the '+' call, got %T", eq.Positional[0])
	}
	if _, ok := eq.Positional[1].(*ast.Call); !ok {
		t.Errorf("expected right side to be the '+' call, got %T", eq.Positional[1])
	}
}

func TestParseGenericTypeName(t *testing.T) {
	sf, reporter := parse(t, "let xs as List{Integer64} = xs\n")
	requireNoErrors(t, reporter)
	v := sf.Decls[0].Main.(*ast.VarDecl)
	if v.Given.Value != "List" || len(v.Given.Parameters) != 1 || v.Given.Parameters[0].Value != "Integer64" {
		t.Fatalf("got %v", v.Given)
	}
}

func TestParseInoutParam(t *testing.T) {
	sf, reporter := parse(t, "def f(x as inout Integer64)\nend\n")
	requireNoErrors(t, reporter)
	def := sf.Decls[0].Main.(*ast.DefDecl)
	if !def.Params[0].Inout {
		t.Error("expected Inout = true")
	}
}
