package ast

import (
	"strings"

	"github.com/acorn-lang/acornc/pkg/token"
)

// VarDecl is a module-level variable declaration: `let [builtin] name
// [as Type] = value`. Distinct from Let, which is the same grammar used
// for a block-local binding (spec §3.2).
type VarDecl struct {
	base
	Name    *DeclName
	Given   *TypeName // nil if the type is to be inferred
	Value   Node
	Builtin bool
	// Mutable marks a `mutable` declaration; a plain `let` without it is
	// a constant, and the inferrer rejects any assignment to it with
	// ConstantAssignmentError.
	Mutable bool
}

func NewVarDecl(tok token.Token, name *DeclName, given *TypeName, value Node, builtin, mutable bool) *VarDecl {
	return &VarDecl{base: newBase(tok), Name: name, Given: given, Value: value, Builtin: builtin, Mutable: mutable}
}

func (n *VarDecl) Kind() NodeKind { return KindVarDecl }
func (n *VarDecl) String() string {
	s := "let "
	if n.Builtin {
		s += "builtin "
	}
	if n.Mutable {
		s += "mutable "
	}
	s += n.Name.String()
	if n.Given != nil {
		s += " as " + n.Given.String()
	}
	if n.Value != nil {
		s += " = " + n.Value.String()
	}
	return s
}
func (n *VarDecl) Clone() Node {
	clone := &VarDecl{base: newBase(n.Token()), Name: n.Name.Clone().(*DeclName), Builtin: n.Builtin, Mutable: n.Mutable}
	if n.Given != nil {
		clone.Given = n.Given.Clone().(*TypeName)
	}
	if n.Value != nil {
		clone.Value = n.Value.Clone()
	}
	return clone
}

// DefDecl is a function/method declaration: `def name(params) [as Type]
// ... end`. An empty Body with Builtin set denotes a compiler-provided
// method with no acorn-level implementation (spec §4.8a).
type DefDecl struct {
	base
	Name       *DeclName
	Params     []*ParamName
	ReturnType *TypeName // nil if returning nothing
	Body       *Block
	Builtin    bool
}

func NewDefDecl(tok token.Token, name *DeclName, params []*ParamName, returnType *TypeName, body *Block, builtin bool) *DefDecl {
	return &DefDecl{base: newBase(tok), Name: name, Params: params, ReturnType: returnType, Body: body, Builtin: builtin}
}

func (n *DefDecl) Kind() NodeKind { return KindDefDecl }
func (n *DefDecl) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.String()
	}
	s := "def "
	if n.Builtin {
		s += "builtin "
	}
	s += n.Name.String() + "(" + strings.Join(params, ", ") + ")"
	if n.ReturnType != nil {
		s += " as " + n.ReturnType.String()
	}
	return s
}
func (n *DefDecl) Clone() Node {
	params := make([]*ParamName, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Clone().(*ParamName)
	}
	clone := &DefDecl{base: newBase(n.Token()), Name: n.Name.Clone().(*DeclName), Params: params, Builtin: n.Builtin}
	if n.ReturnType != nil {
		clone.ReturnType = n.ReturnType.Clone().(*TypeName)
	}
	if n.Body != nil {
		clone.Body = n.Body.Clone().(*Block)
	}
	return clone
}

// TypeDeclShape distinguishes the three shapes a TypeDecl can take
// (spec §3.2, §4.3).
type TypeDeclShape int

const (
	// TypeDeclBuiltin introduces an opaque builtin type with no acorn-level
	// representation, e.g. `type Integer64`.
	TypeDeclBuiltin TypeDeclShape = iota
	// TypeDeclAlias introduces a type that stands for another existing type,
	// e.g. `type Name = String`.
	TypeDeclAlias
	// TypeDeclRecord introduces a record type with named, typed fields.
	TypeDeclRecord
)

func (s TypeDeclShape) String() string {
	switch s {
	case TypeDeclBuiltin:
		return "builtin"
	case TypeDeclAlias:
		return "alias"
	case TypeDeclRecord:
		return "record"
	default:
		return "unknown"
	}
}

// TypeDecl is a type declaration, one of three shapes (spec §3.2).
type TypeDecl struct {
	base
	Name        *DeclName
	Shape       TypeDeclShape
	AliasTarget *TypeName    // set iff Shape == TypeDeclAlias
	Fields      []*ParamName // set iff Shape == TypeDeclRecord
}

func NewBuiltinTypeDecl(tok token.Token, name *DeclName) *TypeDecl {
	return &TypeDecl{base: newBase(tok), Name: name, Shape: TypeDeclBuiltin}
}

func NewAliasTypeDecl(tok token.Token, name *DeclName, target *TypeName) *TypeDecl {
	return &TypeDecl{base: newBase(tok), Name: name, Shape: TypeDeclAlias, AliasTarget: target}
}

func NewRecordTypeDecl(tok token.Token, name *DeclName, fields []*ParamName) *TypeDecl {
	return &TypeDecl{base: newBase(tok), Name: name, Shape: TypeDeclRecord, Fields: fields}
}

func (n *TypeDecl) Kind() NodeKind { return KindTypeDecl }
func (n *TypeDecl) String() string {
	switch n.Shape {
	case TypeDeclAlias:
		return "type " + n.Name.String() + " = " + n.AliasTarget.String()
	case TypeDeclRecord:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = f.String()
		}
		return "type " + n.Name.String() + "(" + strings.Join(fields, ", ") + ")"
	default:
		return "type builtin " + n.Name.String()
	}
}
func (n *TypeDecl) Clone() Node {
	clone := &TypeDecl{base: newBase(n.Token()), Name: n.Name.Clone().(*DeclName), Shape: n.Shape}
	if n.AliasTarget != nil {
		clone.AliasTarget = n.AliasTarget.Clone().(*TypeName)
	}
	if n.Fields != nil {
		fields := make([]*ParamName, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = f.Clone().(*ParamName)
		}
		clone.Fields = fields
	}
	return clone
}

// ModuleDecl groups a nested set of declarations under a name (spec §6
// nested modules).
type ModuleDecl struct {
	base
	Name string
	Body *Block
}

func NewModuleDecl(tok token.Token, name string, body *Block) *ModuleDecl {
	return &ModuleDecl{base: newBase(tok), Name: name, Body: body}
}

func (n *ModuleDecl) Kind() NodeKind { return KindModuleDecl }
func (n *ModuleDecl) String() string { return "module " + n.Name }
func (n *ModuleDecl) Clone() Node {
	return &ModuleDecl{base: newBase(n.Token()), Name: n.Name, Body: n.Body.Clone().(*Block)}
}

// Import names another source unit to load transitively (spec §5, §9
// open question). internal/units loads the named file into
// SourceFile.Imports; the Import node itself stays in the declaration
// list, and the later passes, irgen included, skip it.
type Import struct {
	base
	Path string
}

func NewImport(tok token.Token, path string) *Import {
	return &Import{base: newBase(tok), Path: path}
}

func (n *Import) Kind() NodeKind { return KindImport }
func (n *Import) String() string { return "import " + n.Path }
func (n *Import) Clone() Node    { return &Import{base: newBase(n.Token()), Path: n.Path} }

// SpecialisedDecl is one concrete instantiation of a generic VarDecl/
// DefDecl/TypeDecl, produced by the reifier (spec §4.6). Key is the
// mangled substitution key used to deduplicate identical instantiations.
// Substitution carries the same binding the reifier used to re-type
// Decl, keyed by type-parameter label; values are concrete
// internal/types.Type instances boxed as `any` to avoid an import cycle
// (the same trick Node.ResolvedType uses). internal/irgen reuses it to
// re-establish Decl's scope immediately before lowering it, since the
// reifier's own substitution namespace is not itself reachable from the
// tree.
type SpecialisedDecl struct {
	Key          string
	Decl         Node
	Substitution map[string]any
}

// DeclHolder wraps the original (possibly generic) declaration together
// with the concrete specialisations collected during inference and
// materialised by the reifier. For a non-generic declaration,
// Specialisations is always empty and Main is emitted as-is.
type DeclHolder struct {
	base
	Main            Node
	Specialisations []*SpecialisedDecl
}

func NewDeclHolder(tok token.Token, main Node) *DeclHolder {
	return &DeclHolder{base: newBase(tok), Main: main}
}

func (n *DeclHolder) Kind() NodeKind { return KindDeclHolder }
func (n *DeclHolder) String() string { return n.Main.String() }
func (n *DeclHolder) Clone() Node {
	specs := make([]*SpecialisedDecl, len(n.Specialisations))
	for i, s := range n.Specialisations {
		specs[i] = &SpecialisedDecl{Key: s.Key, Decl: s.Decl.Clone(), Substitution: s.Substitution}
	}
	return &DeclHolder{base: newBase(n.Token()), Main: n.Main.Clone(), Specialisations: specs}
}

// SourceFile is one compiled unit: its own declarations plus the
// SourceFiles of everything it transitively imports, already resolved
// by internal/units (spec §5).
type SourceFile struct {
	base
	Name    string
	Imports []*SourceFile
	Decls   []*DeclHolder
}

func (n *SourceFile) Kind() NodeKind { return KindSourceFile }
func (n *SourceFile) String() string { return "sourcefile " + n.Name }
func (n *SourceFile) Clone() Node {
	decls := make([]*DeclHolder, len(n.Decls))
	for i, d := range n.Decls {
		decls[i] = d.Clone().(*DeclHolder)
	}
	// Imports are shared, not deep-copied: cloning a SourceFile (e.g. during
	// reification of one of its declarations) must not duplicate the units
	// it imports.
	return &SourceFile{base: newBase(n.Token()), Name: n.Name, Imports: n.Imports, Decls: decls}
}

// NewSourceFile constructs an (initially empty) SourceFile anchored at tok.
func NewSourceFile(tok token.Token, name string) *SourceFile {
	return &SourceFile{base: newBase(tok), Name: name}
}
