package ast

import (
	"strings"

	"github.com/acorn-lang/acornc/pkg/token"
)

// Selector is `operand.field`.
type Selector struct {
	base
	Operand Node
	Field   string
}

func NewSelector(tok token.Token, operand Node, field string) *Selector {
	return &Selector{base: newBase(tok), Operand: operand, Field: field}
}

func (n *Selector) Kind() NodeKind { return KindSelector }
func (n *Selector) String() string { return n.Operand.String() + "." + n.Field }
func (n *Selector) Clone() Node {
	return &Selector{base: newBase(n.Token()), Operand: n.Operand.Clone(), Field: n.Field}
}

// KeywordArg is one `name: value` call argument.
type KeywordArg struct {
	Name  string
	Value Node
}

// Call is `operand(positional..., keyword...)`. MethodIndex and
// SpecIndex are 0 after parsing and are set by the type inferrer once
// overload resolution and (if applicable) generic specialisation have
// run (spec §3.2 invariant, §4.4).
type Call struct {
	base
	Operand    Node
	Positional []Node
	Keyword    []KeywordArg

	MethodIndex int
	SpecIndex   int
}

func NewCall(tok token.Token, operand Node, positional []Node, keyword []KeywordArg) *Call {
	return &Call{base: newBase(tok), Operand: operand, Positional: positional, Keyword: keyword}
}

func (n *Call) Kind() NodeKind { return KindCall }
func (n *Call) String() string {
	parts := make([]string, 0, len(n.Positional)+len(n.Keyword))
	for _, p := range n.Positional {
		parts = append(parts, p.String())
	}
	for _, kw := range n.Keyword {
		parts = append(parts, kw.Name+": "+kw.Value.String())
	}
	return n.Operand.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (n *Call) Clone() Node {
	positional := make([]Node, len(n.Positional))
	for i, p := range n.Positional {
		positional[i] = p.Clone()
	}
	keyword := make([]KeywordArg, len(n.Keyword))
	for i, kw := range n.Keyword {
		keyword[i] = KeywordArg{Name: kw.Name, Value: kw.Value.Clone()}
	}
	return &Call{base: newBase(n.Token()), Operand: n.Operand.Clone(), Positional: positional, Keyword: keyword}
}

// CCall is an FFI call naming a C function plus its parameter types and
// return type using acorn's own type names (spec §6).
type CCall struct {
	base
	Name       string
	ParamTypes []*TypeName
	ReturnType *TypeName
	Args       []Node
}

func NewCCall(tok token.Token, name string, paramTypes []*TypeName, returnType *TypeName, args []Node) *CCall {
	return &CCall{base: newBase(tok), Name: name, ParamTypes: paramTypes, ReturnType: returnType, Args: args}
}

func (n *CCall) Kind() NodeKind { return KindCCall }
func (n *CCall) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return "ccall " + n.Name + "(" + strings.Join(args, ", ") + ")"
}
func (n *CCall) Clone() Node {
	params := make([]*TypeName, len(n.ParamTypes))
	for i, p := range n.ParamTypes {
		params[i] = p.Clone().(*TypeName)
	}
	args := make([]Node, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Clone()
	}
	var ret *TypeName
	if n.ReturnType != nil {
		ret = n.ReturnType.Clone().(*TypeName)
	}
	return &CCall{base: newBase(n.Token()), Name: n.Name, ParamTypes: params, ReturnType: ret, Args: args}
}

// Cast is `operand as TypeName`.
type Cast struct {
	base
	Operand Node
	Type    *TypeName
}

func NewCast(tok token.Token, operand Node, typ *TypeName) *Cast {
	return &Cast{base: newBase(tok), Operand: operand, Type: typ}
}

func (n *Cast) Kind() NodeKind { return KindCast }
func (n *Cast) String() string { return n.Operand.String() + " as " + n.Type.String() }
func (n *Cast) Clone() Node {
	return &Cast{base: newBase(n.Token()), Operand: n.Operand.Clone(), Type: n.Type.Clone().(*TypeName)}
}

// Assignment is `target = value`.
type Assignment struct {
	base
	Target Node
	Value  Node
}

func NewAssignment(tok token.Token, target, value Node) *Assignment {
	return &Assignment{base: newBase(tok), Target: target, Value: value}
}

func (n *Assignment) Kind() NodeKind { return KindAssignment }
func (n *Assignment) String() string { return n.Target.String() + " = " + n.Value.String() }
func (n *Assignment) Clone() Node {
	return &Assignment{base: newBase(n.Token()), Target: n.Target.Clone(), Value: n.Value.Clone()}
}

// While is `while cond then body end`. Its type is the type of its body.
type While struct {
	base
	Cond Node
	Body *Block
}

func NewWhile(tok token.Token, cond Node, body *Block) *While {
	return &While{base: newBase(tok), Cond: cond, Body: body}
}

func (n *While) Kind() NodeKind { return KindWhile }
func (n *While) String() string { return "while " + n.Cond.String() + " then " + n.Body.String() + " end" }
func (n *While) Clone() Node {
	return &While{base: newBase(n.Token()), Cond: n.Cond.Clone(), Body: n.Body.Clone().(*Block)}
}

// If is `if cond then trueBranch [else falseBranch] end`. Its type is the
// unification of both branches (spec §4.4).
type If struct {
	base
	Cond Node
	Then *Block
	Else *Block // nil if there is no else clause
}

func NewIf(tok token.Token, cond Node, then, els *Block) *If {
	return &If{base: newBase(tok), Cond: cond, Then: then, Else: els}
}

func (n *If) Kind() NodeKind { return KindIf }
func (n *If) String() string {
	s := "if " + n.Cond.String() + " then " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s + " end"
}
func (n *If) Clone() Node {
	clone := &If{base: newBase(n.Token()), Cond: n.Cond.Clone(), Then: n.Then.Clone().(*Block)}
	if n.Else != nil {
		clone.Else = n.Else.Clone().(*Block)
	}
	return clone
}

// Return is `return [value]`. Must be compatible with the enclosing
// function's declared return type (spec §4.4).
type Return struct {
	base
	Value Node // nil for a bare `return`
}

func NewReturn(tok token.Token, value Node) *Return {
	return &Return{base: newBase(tok), Value: value}
}

func (n *Return) Kind() NodeKind { return KindReturn }
func (n *Return) String() string {
	if n.Value == nil {
		return "return"
	}
	return "return " + n.Value.String()
}
func (n *Return) Clone() Node {
	clone := &Return{base: newBase(n.Token())}
	if n.Value != nil {
		clone.Value = n.Value.Clone()
	}
	return clone
}

// Spawn starts a call concurrently. Parsed but never emitted (spec §9
// open question).
type Spawn struct {
	base
	Call *Call
}

func NewSpawn(tok token.Token, call *Call) *Spawn {
	return &Spawn{base: newBase(tok), Call: call}
}

func (n *Spawn) Kind() NodeKind { return KindSpawn }
func (n *Spawn) String() string { return "spawn " + n.Call.String() }
func (n *Spawn) Clone() Node {
	return &Spawn{base: newBase(n.Token()), Call: n.Call.Clone().(*Call)}
}

// Case is one arm of a Switch.
type Case struct {
	base
	Pattern Node
	Body    *Block
}

func NewCase(tok token.Token, pattern Node, body *Block) *Case {
	return &Case{base: newBase(tok), Pattern: pattern, Body: body}
}

func (n *Case) Kind() NodeKind { return KindCase }
func (n *Case) String() string { return "case " + n.Pattern.String() + " " + n.Body.String() }
func (n *Case) Clone() Node {
	return &Case{base: newBase(n.Token()), Pattern: n.Pattern.Clone(), Body: n.Body.Clone().(*Block)}
}

// Switch dispatches on Subject across Cases, with an optional Default
// block. Parsed but never emitted (spec §9 open question).
type Switch struct {
	base
	Subject Node
	Cases   []*Case
	Default *Block
}

func NewSwitch(tok token.Token, subject Node, cases []*Case, def *Block) *Switch {
	return &Switch{base: newBase(tok), Subject: subject, Cases: cases, Default: def}
}

func (n *Switch) Kind() NodeKind { return KindSwitch }
func (n *Switch) String() string {
	parts := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		parts[i] = c.String()
	}
	return "switch " + n.Subject.String() + " " + strings.Join(parts, " ") + " end"
}
func (n *Switch) Clone() Node {
	cases := make([]*Case, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = c.Clone().(*Case)
	}
	clone := &Switch{base: newBase(n.Token()), Subject: n.Subject.Clone(), Cases: cases}
	if n.Default != nil {
		clone.Default = n.Default.Clone().(*Block)
	}
	return clone
}

// For is `for Var in Iterable ... end`. Never constructed by the parser:
// for-loops are desugared directly into Let+While at parse time (spec §9
// open question). Kept in the closed node set for completeness with the
// AST kinds the reference grammar names.
type For struct {
	base
	Var      string
	Iterable Node
	Body     *Block
}

func NewFor(tok token.Token, v string, iterable Node, body *Block) *For {
	return &For{base: newBase(tok), Var: v, Iterable: iterable, Body: body}
}

func (n *For) Kind() NodeKind { return KindFor }
func (n *For) String() string {
	return "for " + n.Var + " in " + n.Iterable.String() + " " + n.Body.String() + " end"
}
func (n *For) Clone() Node {
	return &For{base: newBase(n.Token()), Var: n.Var, Iterable: n.Iterable.Clone(), Body: n.Body.Clone().(*Block)}
}

// Let introduces a block-local binding: `let [builtin] name [as Type] = value`.
// Shadowing an outer binding of the same name is allowed; redefining one
// in the same scope is not (spec §3.3).
type Let struct {
	base
	Name    string
	Given   *TypeName // nil if the type is to be inferred
	Value   Node
	Builtin bool
	// Mutable marks a `mutable` binding; a plain `let` without it is a
	// constant (spec §4.4's "declaration lacking a mutability marker").
	Mutable bool
}

func NewLet(tok token.Token, name string, given *TypeName, value Node, builtin, mutable bool) *Let {
	return &Let{base: newBase(tok), Name: name, Given: given, Value: value, Builtin: builtin, Mutable: mutable}
}

func (n *Let) Kind() NodeKind { return KindLet }
func (n *Let) String() string {
	s := "let "
	if n.Builtin {
		s += "builtin "
	}
	if n.Mutable {
		s += "mutable "
	}
	s += n.Name
	if n.Given != nil {
		s += " as " + n.Given.String()
	}
	return s + " = " + n.Value.String()
}
func (n *Let) Clone() Node {
	clone := &Let{base: newBase(n.Token()), Name: n.Name, Value: n.Value.Clone(), Builtin: n.Builtin, Mutable: n.Mutable}
	if n.Given != nil {
		clone.Given = n.Given.Clone().(*TypeName)
	}
	return clone
}

// Block is a sequence of statements/expressions, bracketed by Indent and
// Deindent during parsing.
type Block struct {
	base
	Statements []Node
}

func (n *Block) Kind() NodeKind { return KindBlock }
func (n *Block) String() string {
	parts := make([]string, len(n.Statements))
	for i, s := range n.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}
func (n *Block) Clone() Node {
	stmts := make([]Node, len(n.Statements))
	for i, s := range n.Statements {
		stmts[i] = s.Clone()
	}
	return &Block{base: newBase(n.Token()), Statements: stmts}
}

// NewBlock constructs an (initially empty) Block anchored at tok.
func NewBlock(tok token.Token) *Block { return &Block{base: newBase(tok)} }
