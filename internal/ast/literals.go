package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acorn-lang/acornc/pkg/token"
)

// Int is an integer literal.
type Int struct {
	base
	Value int64
}

func NewInt(tok token.Token, value int64) *Int { return &Int{base: newBase(tok), Value: value} }

func (n *Int) Kind() NodeKind { return KindInt }
func (n *Int) String() string { return strconv.FormatInt(n.Value, 10) }
func (n *Int) Clone() Node    { return &Int{base: newBase(n.Token()), Value: n.Value} }

// Float is a floating-point literal.
type Float struct {
	base
	Value float64
}

func NewFloat(tok token.Token, value float64) *Float { return &Float{base: newBase(tok), Value: value} }

func (n *Float) Kind() NodeKind { return KindFloat }
func (n *Float) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Float) Clone() Node    { return &Float{base: newBase(n.Token()), Value: n.Value} }

// Complex is a complex-number literal. Parsed but never emitted (spec §9
// open question); internal/irgen returns InternalError if it reaches one.
type Complex struct {
	base
	Real, Imag float64
}

func (n *Complex) Kind() NodeKind { return KindComplex }
func (n *Complex) String() string { return fmt.Sprintf("%g+%gi", n.Real, n.Imag) }
func (n *Complex) Clone() Node {
	return &Complex{base: newBase(n.Token()), Real: n.Real, Imag: n.Imag}
}

// String is a string literal; the lexer does not unescape, so Value is
// exactly the text between the quotes.
type StringLit struct {
	base
	Value string
}

func NewString(tok token.Token, value string) *StringLit {
	return &StringLit{base: newBase(tok), Value: value}
}

func (n *StringLit) Kind() NodeKind { return KindString }
func (n *StringLit) String() string { return strconv.Quote(n.Value) }
func (n *StringLit) Clone() Node    { return &StringLit{base: newBase(n.Token()), Value: n.Value} }

// List is a literal sequence expression.
type List struct {
	base
	Elements []Node
}

func NewList(tok token.Token, elements []Node) *List {
	return &List{base: newBase(tok), Elements: elements}
}

func (n *List) Kind() NodeKind { return KindList }
func (n *List) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (n *List) Clone() Node {
	elems := make([]Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = e.Clone()
	}
	return &List{base: newBase(n.Token()), Elements: elems}
}

// Tuple is a literal fixed-size heterogeneous grouping.
type Tuple struct {
	base
	Elements []Node
}

func NewTuple(tok token.Token, elements []Node) *Tuple {
	return &Tuple{base: newBase(tok), Elements: elements}
}

func (n *Tuple) Kind() NodeKind { return KindTuple }
func (n *Tuple) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (n *Tuple) Clone() Node {
	elems := make([]Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = e.Clone()
	}
	return &Tuple{base: newBase(n.Token()), Elements: elems}
}

// DictEntry is one key/value pair of a Dictionary literal.
type DictEntry struct {
	Key, Value Node
}

// Dictionary is a literal mapping expression. Parsed but never emitted
// (spec §9 open question).
type Dictionary struct {
	base
	Entries []DictEntry
}

func NewDictionary(tok token.Token, entries []DictEntry) *Dictionary {
	return &Dictionary{base: newBase(tok), Entries: entries}
}

func (n *Dictionary) Kind() NodeKind { return KindDictionary }
func (n *Dictionary) String() string {
	parts := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (n *Dictionary) Clone() Node {
	entries := make([]DictEntry, len(n.Entries))
	for i, e := range n.Entries {
		entries[i] = DictEntry{Key: e.Key.Clone(), Value: e.Value.Clone()}
	}
	return &Dictionary{base: newBase(n.Token()), Entries: entries}
}
