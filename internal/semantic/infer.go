package semantic

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// Inferrer assigns a types.Type to every expression and a types.TypeType
// to every name that denotes a type (spec §4.4). It re-walks the same
// scope structure internal/symboltable.Builder already produced rather
// than building its own, looking each declaration's symbol back up by
// node identity (LookupByNode) or local name (LookupLocal) so both
// passes agree on where names are bound.
type Inferrer struct {
	funcStack []*types.Method // enclosing def, for Return's type check
}

// NewInferrer returns an Inferrer ready to run.
func NewInferrer() *Inferrer { return &Inferrer{} }

func (inf *Inferrer) Name() string { return "infer" }

// Run infers types across every declaration in file, at the root scope.
func (inf *Inferrer) Run(file *ast.SourceFile, ctx *Context) error {
	for _, holder := range file.Decls {
		inf.inferDecl(ctx, ctx.Root, holder.Main)
	}
	return nil
}

func (inf *Inferrer) inferDecl(ctx *Context, ns *symboltable.Namespace, node ast.Node) {
	switch n := node.(type) {
	case *ast.DeclHolder:
		inf.inferDecl(ctx, ns, n.Main)
	case *ast.Import:
		// Resolved to a SourceFile by internal/units before this pass runs.
	case *ast.VarDecl:
		inf.inferVarDecl(ctx, ns, n)
	case *ast.DefDecl:
		inf.inferDefDecl(ctx, ns, n)
	case *ast.TypeDecl:
		inf.inferTypeDecl(ctx, ns, n)
	case *ast.ModuleDecl:
		inf.inferModuleDecl(ctx, ns, n)
	default:
		inf.inferExpr(ctx, ns, node)
	}
}

// InferDecl exposes inferDecl to internal/reifier, which re-types a
// cloned generic declaration at a scope where its type parameters have
// already been rebound to concrete types (spec §4.6a).
func (inf *Inferrer) InferDecl(ctx *Context, ns *symboltable.Namespace, node ast.Node) {
	inf.inferDecl(ctx, ns, node)
}

func (inf *Inferrer) inferVarDecl(ctx *Context, ns *symboltable.Namespace, n *ast.VarDecl) {
	sym, _ := ns.LookupLocal(n.Name.Value)
	scope := ns
	if sym != nil && sym.Namespace != nil {
		scope = sym.Namespace
	}

	var declared types.Type
	if n.Given != nil {
		declared = inf.inferTypeName(ctx, scope, n.Given)
	}
	var actual types.Type
	if n.Value != nil {
		actual = inf.inferExpr(ctx, scope, n.Value)
	}
	result := declared
	if result == nil {
		result = actual
	} else if actual != nil && !declared.IsCompatible(actual) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s: declared type %s is not compatible with assigned type %s", n.Name.Value, declared.Name(), actual.Name())
	}
	n.SetResolvedType(result)
	if sym != nil {
		sym.Type = result
	}
}

func (inf *Inferrer) inferDefDecl(ctx *Context, ns *symboltable.Namespace, n *ast.DefDecl) {
	funcSym, ok := ns.LookupLocal(n.Name.Value)
	if !ok || funcSym.Namespace == nil {
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "missing function symbol for %q", n.Name.Value)
		return
	}
	methodSym := funcSym.Namespace.LookupByNode(n)
	if methodSym == nil || methodSym.Namespace == nil {
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "missing method scope for %q", n.Name.Value)
		return
	}
	scope := methodSym.Namespace

	paramTypes := make([]types.Type, len(n.Params))
	paramNames := make([]string, len(n.Params))
	inout := make([]bool, len(n.Params))
	for i, p := range n.Params {
		if p.Type != nil {
			paramTypes[i] = inf.inferTypeName(ctx, scope, p.Type)
		} else {
			// An untyped parameter introduces its own implicit generic
			// slot, resolved like any other Parameter leaf once the
			// method is called with concrete arguments (spec §3.5).
			paramTypes[i] = &types.Parameter{Constructor: &types.ParameterType{Label: p.Value}}
		}
		paramNames[i] = p.Value
		inout[i] = p.Inout
		if psym := scope.LookupByNode(p); psym != nil {
			psym.Type = paramTypes[i]
		}
	}

	var returnType types.Type = types.Void{}
	if n.ReturnType != nil {
		returnType = inf.inferTypeName(ctx, scope, n.ReturnType)
	}

	method := types.NewMethod(returnType, paramTypes, paramNames, inout)
	methodSym.Type = method

	fn, ok := funcSym.Type.(*types.Function)
	if !ok {
		fn = &types.Function{Constructor: &types.FunctionType{DeclName: n.Name.Value}}
		funcSym.Type = fn
	}
	fn.AddMethod(method)

	if n.Body != nil {
		inf.funcStack = append(inf.funcStack, method)
		inf.inferBlock(ctx, scope, n.Body)
		inf.funcStack = inf.funcStack[:len(inf.funcStack)-1]
	}
}

func (inf *Inferrer) inferTypeDecl(ctx *Context, ns *symboltable.Namespace, n *ast.TypeDecl) {
	sym, _ := ns.LookupLocal(n.Name.Value)
	if sym == nil || sym.Namespace == nil {
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "missing type symbol for %q", n.Name.Value)
		return
	}
	scope := sym.Namespace

	switch n.Shape {
	case ast.TypeDeclAlias:
		target := resolveTypeName(ctx, scope, n.AliasTarget)
		sym.TypeDecl = &types.AliasType{DeclName: n.Name.Value, Target: target}
	case ast.TypeDeclRecord:
		inputs := make([]*types.ParameterType, len(n.Name.TypeParams))
		for i, tp := range n.Name.TypeParams {
			inputs[i] = &types.ParameterType{Label: tp}
		}
		fieldNames := make([]string, len(n.Fields))
		fieldTypes := make([]types.TypeType, len(n.Fields))
		for i, f := range n.Fields {
			fieldNames[i] = f.Value
			if f.Type != nil {
				fieldTypes[i] = resolveTypeName(ctx, scope, f.Type)
			}
		}
		sym.TypeDecl = &types.RecordType{
			DeclName:        n.Name.Value,
			InputParameters: inputs,
			FieldNames:      fieldNames,
			FieldTypes:      fieldTypes,
		}
	default: // TypeDeclBuiltin
		if sym.TypeDecl == nil {
			sym.TypeDecl = &types.AliasType{DeclName: n.Name.Value}
		}
	}
}

func (inf *Inferrer) inferModuleDecl(ctx *Context, ns *symboltable.Namespace, n *ast.ModuleDecl) {
	sym, _ := ns.LookupLocal(n.Name)
	if sym == nil || sym.Namespace == nil {
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "missing module symbol for %q", n.Name)
		return
	}
	sym.TypeDecl = &types.ModuleType{DeclName: n.Name}
	inf.inferBlock(ctx, sym.Namespace, n.Body)
}

func (inf *Inferrer) inferBlock(ctx *Context, ns *symboltable.Namespace, block *ast.Block) {
	for _, stmt := range block.Statements {
		inf.inferStmt(ctx, ns, stmt)
	}
}

func (inf *Inferrer) inferStmt(ctx *Context, ns *symboltable.Namespace, node ast.Node) {
	switch n := node.(type) {
	case *ast.DeclHolder:
		inf.inferDecl(ctx, ns, n.Main)
	case *ast.Import:
		// Resolved to a SourceFile by internal/units before this pass runs.
	case *ast.VarDecl:
		inf.inferVarDecl(ctx, ns, n)
	case *ast.DefDecl:
		inf.inferDefDecl(ctx, ns, n)
	case *ast.TypeDecl:
		inf.inferTypeDecl(ctx, ns, n)
	case *ast.ModuleDecl:
		inf.inferModuleDecl(ctx, ns, n)
	case *ast.Let:
		inf.inferLet(ctx, ns, n)
	default:
		inf.inferExpr(ctx, ns, node)
	}
}

func (inf *Inferrer) inferLet(ctx *Context, ns *symboltable.Namespace, n *ast.Let) {
	sym, _ := ns.LookupLocal(n.Name)
	var declared types.Type
	if n.Given != nil {
		declared = inf.inferTypeName(ctx, ns, n.Given)
	}
	actual := inf.inferExpr(ctx, ns, n.Value)
	result := declared
	if result == nil {
		result = actual
	} else if actual != nil && !declared.IsCompatible(actual) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s: declared type %s is not compatible with assigned type %s", n.Name, declared.Name(), actual.Name())
	}
	n.SetResolvedType(result)
	if sym != nil {
		sym.Type = result
	}
}

// inferExpr assigns a Type to node's expression forms and recurses into
// compound nodes that are themselves statements at the block level
// (If/While/Return/...). It returns the expression's resolved type, or
// Void for statement-shaped nodes with no value (spec §4.4).
func (inf *Inferrer) inferExpr(ctx *Context, ns *symboltable.Namespace, node ast.Node) types.Type {
	if node == nil {
		return nil
	}
	var result types.Type
	switch n := node.(type) {
	case *ast.Int:
		result = lookupConcreteType(ctx, ns, n, "Integer64")
	case *ast.Float:
		result = lookupConcreteType(ctx, ns, n, "Float64")
	case *ast.StringLit:
		result = lookupConcreteType(ctx, ns, n, "String")
	case *ast.Complex:
		ctx.Reporter.Errorf(diagnostics.TypeInferenceError, n.Pos(), "", "complex literals are not supported")
	case *ast.Name:
		result = inf.inferName(ctx, ns, n)
	case *ast.Tuple:
		fieldTypes := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			fieldTypes[i] = inf.inferExpr(ctx, ns, e)
		}
		result = &types.Record{Constructor: &types.RecordType{DeclName: "Tuple"}, FieldNames: indexNames(len(n.Elements)), Fields: fieldTypes}
	case *ast.List:
		for _, e := range n.Elements {
			inf.inferExpr(ctx, ns, e)
		}
		result = types.Void{}
	case *ast.Dictionary:
		for _, e := range n.Entries {
			inf.inferExpr(ctx, ns, e.Key)
			inf.inferExpr(ctx, ns, e.Value)
		}
		result = types.Void{}
	case *ast.Selector:
		result = inf.inferSelector(ctx, ns, n)
	case *ast.Call:
		result = inf.inferCall(ctx, ns, n)
	case *ast.CCall:
		result = inf.inferCCall(ctx, ns, n)
	case *ast.Cast:
		result = inf.inferTypeName(ctx, ns, n.Type)
		inf.inferExpr(ctx, ns, n.Operand)
	case *ast.Assignment:
		result = inf.inferAssignment(ctx, ns, n)
	case *ast.While:
		inf.inferExpr(ctx, ns, n.Cond)
		inf.inferBlock(ctx, ns, n.Body)
		result = types.Void{}
	case *ast.If:
		inf.inferExpr(ctx, ns, n.Cond)
		inf.inferBlock(ctx, ns, n.Then)
		if n.Else != nil {
			inf.inferBlock(ctx, ns, n.Else)
		}
		result = types.Void{}
	case *ast.Return:
		result = inf.inferReturn(ctx, ns, n)
	case *ast.Spawn:
		inf.inferExpr(ctx, ns, n.Call)
		result = types.Void{}
	case *ast.Switch:
		inf.inferExpr(ctx, ns, n.Subject)
		for _, c := range n.Cases {
			inf.inferExpr(ctx, ns, c.Pattern)
			inf.inferBlock(ctx, ns, c.Body)
		}
		if n.Default != nil {
			inf.inferBlock(ctx, ns, n.Default)
		}
		result = types.Void{}
	case *ast.Let:
		inf.inferLet(ctx, ns, n)
		result = types.Void{}
	case *ast.Block:
		inf.inferBlock(ctx, ns, n)
		result = types.Void{}
	default:
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "no inference rule for %s", n.Kind())
	}
	node.SetResolvedType(result)
	return result
}

// inferCCall infers every argument and resolves the declared C parameter/
// return type names; ccall's own typing never depends on the symbol
// table beyond type-name resolution (spec §6: FFI names C functions by
// acorn type names directly, no acorn-level declaration backs it).
func (inf *Inferrer) inferCCall(ctx *Context, ns *symboltable.Namespace, n *ast.CCall) types.Type {
	for _, pt := range n.ParamTypes {
		inf.inferTypeName(ctx, ns, pt)
	}
	for _, a := range n.Args {
		inf.inferExpr(ctx, ns, a)
	}
	if n.ReturnType == nil {
		return types.Void{}
	}
	return inf.inferTypeName(ctx, ns, n.ReturnType)
}

func lookupConcreteType(ctx *Context, ns *symboltable.Namespace, node ast.Node, name string) types.Type {
	sym := ns.Lookup(ctx.Reporter, node, name)
	if sym == nil || sym.TypeDecl == nil {
		return nil
	}
	return sym.TypeDecl.Create(ctx.Reporter, node)
}

func indexNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%d", i)
	}
	return names
}

// inferName resolves a bare identifier through ns. A Name bound to a
// value-carrying symbol evaluates to that value's Type; a Name bound to
// a type symbol instead evaluates to a TypeDescription wrapping it, the
// value `Point` itself denotes before `.new` or a direct call turns it
// into a constructor (spec's selector rule).
func (inf *Inferrer) inferName(ctx *Context, ns *symboltable.Namespace, n *ast.Name) types.Type {
	sym := ns.Lookup(ctx.Reporter, n, n.Value)
	if sym == nil {
		return nil
	}
	if sym.Type != nil {
		return sym.Type
	}
	if sym.TypeDecl != nil {
		return &types.TypeDescription{Of: sym.TypeDecl}
	}
	return nil
}

func (inf *Inferrer) inferSelector(ctx *Context, ns *symboltable.Namespace, n *ast.Selector) types.Type {
	operand := inf.inferExpr(ctx, ns, n.Operand)
	if operand == nil {
		return nil
	}
	switch op := operand.(type) {
	case *types.Record:
		ft := op.FieldType(n.Field)
		if ft == nil {
			ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s has no field %q", op.Name(), n.Field)
		}
		return ft
	case *types.TypeDescription:
		rt, ok := op.Of.(*types.RecordType)
		if !ok || n.Field != "new" {
			ctx.Reporter.Errorf(diagnostics.InvalidTypeConstructor, n.Pos(), "", "%s has no field %q", op.Name(), n.Field)
			return nil
		}
		return recordConstructor(ctx, n, rt)
	default:
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s has no field %q", operand.Name(), n.Field)
		return nil
	}
}

// recordConstructor returns (building and caching it on first use) the
// Function wrapping rt's single generic constructor method: one
// positional parameter per field, returning the record itself (spec:
// "on a record type with field `new` returns the type's canonical
// constructor").
func recordConstructor(ctx *Context, node ast.Node, rt *types.RecordType) *types.Function {
	if rt.Constructor != nil {
		return rt.Constructor
	}
	paramTypes := make([]types.Type, len(rt.FieldTypes))
	for i, ft := range rt.FieldTypes {
		paramTypes[i] = toGenericInstance(ctx, node, ft)
	}
	returnType := &types.Record{Constructor: rt, FieldNames: rt.FieldNames, Fields: paramTypes}
	method := types.NewMethod(returnType, paramTypes, rt.FieldNames, make([]bool, len(paramTypes)))
	fn := &types.Function{Constructor: &types.FunctionType{DeclName: rt.DeclName}}
	fn.AddMethod(method)
	rt.Constructor = fn
	return fn
}

// toGenericInstance turns a field's declared TypeType into the Type a
// generic method signature carries: a ParameterType leaf becomes a
// Parameter instance (unresolved until a call site specialises it);
// anything else is created directly.
func toGenericInstance(ctx *Context, node ast.Node, tt types.TypeType) types.Type {
	if p, ok := tt.(*types.ParameterType); ok {
		return &types.Parameter{Constructor: p}
	}
	if tt == nil {
		return nil
	}
	return tt.Create(ctx.Reporter, node)
}

func (inf *Inferrer) inferAssignment(ctx *Context, ns *symboltable.Namespace, n *ast.Assignment) types.Type {
	target := inf.inferExpr(ctx, ns, n.Target)
	value := inf.inferExpr(ctx, ns, n.Value)
	if name, ok := n.Target.(*ast.Name); ok {
		sym := ns.Lookup(ctx.Reporter, n, name.Value)
		if sym != nil && !declarationIsMutable(sym.Node) {
			ctx.Reporter.Errorf(diagnostics.ConstantAssignmentError, n.Pos(), "", "cannot assign to constant %q", name.Value)
		}
	}
	if target != nil && value != nil && !target.IsCompatible(value) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "cannot assign %s to %s", value.Name(), target.Name())
	}
	return target
}

// declarationIsMutable reports whether the declaration node backing an
// assignment target carries the `mutable` marker (spec §4.4: "writes to
// a declaration lacking a mutability marker report ConstantAssignmentError").
func declarationIsMutable(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.VarDecl:
		return n.Mutable
	case *ast.Let:
		return n.Mutable
	case *ast.ParamName:
		return n.Inout
	default:
		return false
	}
}

func (inf *Inferrer) inferReturn(ctx *Context, ns *symboltable.Namespace, n *ast.Return) types.Type {
	var value types.Type
	if n.Value != nil {
		value = inf.inferExpr(ctx, ns, n.Value)
	} else {
		value = types.Void{}
	}
	if len(inf.funcStack) == 0 {
		ctx.Reporter.Errorf(diagnostics.InternalError, n.Pos(), "", "return outside of a function")
		return value
	}
	enclosing := inf.funcStack[len(inf.funcStack)-1]
	if value != nil && enclosing.ReturnType != nil && !enclosing.ReturnType.IsCompatible(value) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "return type %s is not compatible with declared return type %s", value.Name(), enclosing.ReturnType.Name())
	}
	return types.Void{}
}

// inferCall implements spec §4.4's call resolution: infer operand and
// arguments, ask the Function to find a compatible method, record the
// winning (method, specialisation) index pair on the call node, and
// substitute into the return type.
func (inf *Inferrer) inferCall(ctx *Context, ns *symboltable.Namespace, n *ast.Call) types.Type {
	operand := inf.inferExpr(ctx, ns, n.Operand)

	positional := make([]types.Type, len(n.Positional))
	for i, p := range n.Positional {
		positional[i] = inf.inferExpr(ctx, ns, p)
	}
	keyword := make(map[string]types.Type, len(n.Keyword))
	for _, kw := range n.Keyword {
		keyword[kw.Name] = inf.inferExpr(ctx, ns, kw.Value)
	}

	var fn *types.Function
	switch op := operand.(type) {
	case *types.Function:
		fn = op
	case *types.TypeDescription:
		rt, ok := op.Of.(*types.RecordType)
		if !ok {
			ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s is not callable", operand.Name())
			return nil
		}
		fn = recordConstructor(ctx, n, rt)
	default:
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "operand is not callable")
		return nil
	}

	method := fn.FindMethod(positional, keyword)
	if method == nil {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "no overload of %q accepts the given arguments", operand.Name())
		return nil
	}
	n.MethodIndex = fn.MethodTableIndex(method)

	if !method.IsGeneric() {
		n.SpecIndex = 0
		return method.ReturnType
	}

	ordered, ok := method.OrderArguments(positional, keyword)
	if !ok {
		ctx.Reporter.Errorf(diagnostics.TypeInferenceError, n.Pos(), "", "cannot order arguments for %q", operand.Name())
		return method.ReturnType
	}
	substitution := types.Specialisation{}
	for i, declared := range method.ParameterTypes {
		if i < len(ordered) {
			unifyType(declared, ordered[i], substitution)
		}
	}
	if incompleteSubstitution(method.ReturnType, substitution) {
		ctx.Reporter.Errorf(diagnostics.TypeInferenceError, n.Pos(), "", "could not infer every type parameter of %q", operand.Name())
	}
	specIdx := method.AddSpecialisation(substitution)
	n.SpecIndex = specIdx
	return substituteType(method.ReturnType, substitution)
}

// unifyType performs spec §4.4's structural unification between a
// method's declared parameter type (treating Parameter leaves as
// variables) and the actual argument type, recording bindings into sub.
func unifyType(declared, actual types.Type, sub types.Specialisation) {
	if actual == nil {
		return
	}
	switch d := declared.(type) {
	case *types.Parameter:
		if _, bound := sub[d.Constructor]; !bound {
			sub[d.Constructor] = actual
		}
	case *types.Record:
		if a, ok := actual.(*types.Record); ok {
			for i, df := range d.Fields {
				if i < len(a.Fields) {
					unifyType(df, a.Fields[i], sub)
				}
			}
		}
	case *types.UnsafePointer:
		if a, ok := actual.(*types.UnsafePointer); ok {
			unifyType(d.Element, a.Element, sub)
		}
	}
}

// incompleteSubstitution reports whether t mentions a Parameter leaf
// that sub left unbound, meaning unification failed to pin down every
// type variable the method's return type depends on.
func incompleteSubstitution(t types.Type, sub types.Specialisation) bool {
	switch v := t.(type) {
	case *types.Parameter:
		_, ok := sub[v.Constructor]
		return !ok
	case *types.Record:
		for _, f := range v.Fields {
			if incompleteSubstitution(f, sub) {
				return true
			}
		}
	case *types.UnsafePointer:
		return incompleteSubstitution(v.Element, sub)
	}
	return false
}

// substituteType replaces every Parameter leaf in t with its binding in
// sub, recursing through the compound Type shapes the language has
// (Record, UnsafePointer); anything else is returned unchanged.
func substituteType(t types.Type, sub types.Specialisation) types.Type {
	switch v := t.(type) {
	case *types.Parameter:
		if r, ok := sub[v.Constructor]; ok {
			return r
		}
		return v
	case *types.Record:
		fields := make([]types.Type, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = substituteType(f, sub)
		}
		return &types.Record{Constructor: v.Constructor, FieldNames: v.FieldNames, Fields: fields}
	case *types.UnsafePointer:
		return &types.UnsafePointer{Constructor: v.Constructor, Element: substituteType(v.Element, sub)}
	default:
		return t
	}
}

// resolveTypeName resolves a TypeName to a TypeType constructor (spec
// §4.4's "type-name resolution"): look up the identifier, expect a
// TypeType, recursively resolve children, and substitute them in.
func resolveTypeName(ctx *Context, ns *symboltable.Namespace, tn *ast.TypeName) types.TypeType {
	if tn == nil {
		return nil
	}
	sym := ns.Lookup(ctx.Reporter, tn, tn.Value)
	if sym == nil {
		return nil
	}
	if sym.TypeDecl == nil {
		ctx.Reporter.Errorf(diagnostics.InvalidTypeConstructor, tn.Pos(), "", "%q does not name a type", tn.Value)
		return nil
	}
	base := sym.TypeDecl
	if len(tn.Parameters) == 0 {
		return base
	}
	params := make([]types.TypeType, len(tn.Parameters))
	for i, p := range tn.Parameters {
		params[i] = resolveTypeName(ctx, ns, p)
	}
	if rt, ok := base.(*types.RecordType); ok {
		ctx.RequestRecordInstantiation(rt, params)
	}
	return base.WithParameters(params)
}

// inferTypeName resolves tn to a constructor and instantiates it (spec
// §4.4). Arity mismatches and non-constructor names are reported by
// resolveTypeName/Create and surface as a nil Type here.
func (inf *Inferrer) inferTypeName(ctx *Context, ns *symboltable.Namespace, tn *ast.TypeName) types.Type {
	tt := resolveTypeName(ctx, ns, tn)
	if tt == nil {
		return nil
	}
	return tt.Create(ctx.Reporter, tn)
}
