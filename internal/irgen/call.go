package irgen

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// resolveCallFunction recovers the *types.Function the checker resolved
// for n's operand: either directly (a Name/Selector denoting an
// ordinary function) or via the record type's cached constructor (a
// bare `Point(x, y)` call, internal/semantic's inferCall TypeDescription
// branch).
func resolveCallFunction(n *ast.Call) (*types.Function, error) {
	operandType, ok := resolvedType(n.Operand)
	if !ok {
		return nil, internalErrorf(n, "call operand has no resolved type")
	}
	switch op := operandType.(type) {
	case *types.Function:
		return op, nil
	case *types.TypeDescription:
		rt, ok := op.Of.(*types.RecordType)
		if !ok || rt.Constructor == nil {
			return nil, internalErrorf(n, "call operand is not a constructible record type")
		}
		return rt.Constructor, nil
	default:
		return nil, internalErrorf(n, "call operand is not callable at emission time")
	}
}

// orderCallArguments merges n's positional and keyword arguments into
// method's declared parameter order, mirroring internal/semantic's
// Method.OrderArguments but operating on AST nodes instead of types.
func orderCallArguments(n *ast.Call, method *types.Method) ([]ast.Node, bool) {
	if len(n.Positional)+len(n.Keyword) != len(method.ParameterTypes) {
		return nil, false
	}
	ordered := make([]ast.Node, len(method.ParameterTypes))
	copy(ordered, n.Positional)
	for _, kw := range n.Keyword {
		idx := method.ParameterIndex(kw.Name)
		if idx < 0 || idx < len(n.Positional) {
			return nil, false
		}
		ordered[idx] = kw.Value
	}
	for _, arg := range ordered {
		if arg == nil {
			return nil, false
		}
	}
	return ordered, true
}

// lowerCall dispatches a Call: a call through a declared method table
// (ordinary functions and methods), or a direct record construction for
// a call resolved to a RecordType's synthetic constructor, which the
// emitter never declares as a real IR function (spec's record
// specialisations need no emitter-side codegen of their own).
func (e *Emitter) lowerCall(ns *symboltable.Namespace, n *ast.Call) error {
	fn, err := resolveCallFunction(n)
	if err != nil {
		return err
	}
	methods := fn.Methods()
	if n.MethodIndex < 0 || n.MethodIndex >= len(methods) {
		return internalErrorf(n, "method index %d out of range for %s", n.MethodIndex, fn.Name())
	}
	method := methods[n.MethodIndex]

	if fn.Constructor != nil && isBuiltinOperatorName(fn.Constructor.DeclName) {
		return e.lowerBuiltinCall(ns, n, method)
	}
	if _, declared := e.methodTables[fn]; !declared {
		return e.lowerRecordConstruction(ns, n, method)
	}
	return e.lowerDispatchedCall(ns, n, fn, method)
}

// lowerBuiltinCall inlines a call to one of the fixed root-bound
// operators (+, -, ==, not, to_float, ...): these are never declared as
// real IR functions, so there is no method table to dispatch through
// (spec §4.8's built-in-method rule).
func (e *Emitter) lowerBuiltinCall(ns *symboltable.Namespace, n *ast.Call, method *types.Method) error {
	ordered, ok := orderCallArguments(n, method)
	if !ok {
		return internalErrorf(n, "cannot order arguments for built-in operator")
	}
	args := make([]Value, len(ordered))
	for i, arg := range ordered {
		if err := e.lowerExpr(ns, arg); err != nil {
			return err
		}
		args[i] = e.pop()
	}
	operandType := types.Type(types.Boolean{})
	if len(method.ParameterTypes) > 0 {
		operandType = method.ParameterTypes[0]
	}
	opName, err := builtinCallName(n)
	if err != nil {
		return err
	}
	result, err := e.emitBuiltinOp(opName, operandType, args)
	if err != nil {
		return internalErrorf(n, "%s", err)
	}
	e.push(result)
	return nil
}

// builtinCallName recovers the operator name a Call denotes: the Name
// on a direct `+(a, b)`-shaped operand. Built-in operators are always
// referenced as a bare Name resolving to the root-bound operator
// Function, so any other operand shape is reported as an error.
func builtinCallName(n *ast.Call) (string, error) {
	if name, ok := n.Operand.(*ast.Name); ok {
		return name.Value, nil
	}
	return "", internalErrorf(n, "built-in operator call has no resolvable name")
}

// lowerCCall declares (once, reusing a prior declaration by name) the
// extern C function ccall names and emits a direct call to it. Acorn's
// C interop names parameter and return types by acorn TypeName rather
// than by redeclaring an acorn-level signature (spec §6's FFI rule), so
// the callee is looked up/declared by name alone, matching whatever
// other ccall site in the program already established its signature.
func (e *Emitter) lowerCCall(ns *symboltable.Namespace, n *ast.CCall) error {
	retType, err := e.resolveCTypeName(ns, n.ReturnType)
	if err != nil {
		return err
	}
	retT, err := e.lowerType(retType)
	if err != nil {
		return err
	}
	paramTypes := make([]Type, len(n.ParamTypes))
	for i, pt := range n.ParamTypes {
		t, err := e.resolveCTypeName(ns, pt)
		if err != nil {
			return err
		}
		lt, err := e.lowerType(t)
		if err != nil {
			return err
		}
		paramTypes[i] = lt
	}

	fn, ok := e.module.NamedFunction(n.Name)
	if !ok {
		fnType := e.backend.FunctionType(retT, paramTypes, false)
		fn = e.module.AddFunction(n.Name, fnType)
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		if err := e.lowerExpr(ns, a); err != nil {
			return err
		}
		args[i] = e.pop()
	}

	name := "ccall"
	if _, isVoid := retType.(types.Void); isVoid {
		name = ""
	}
	e.push(e.builder.CreateCall(fn, args, name))
	return nil
}

// resolveCTypeName resolves one of ccall's declared C-ABI type names
// directly against ns, mirroring internal/semantic's resolveTypeName
// but without generic-parameter support: ccall signatures only ever
// name concrete builtin types (spec §6).
func (e *Emitter) resolveCTypeName(ns *symboltable.Namespace, tn *ast.TypeName) (types.Type, error) {
	if tn == nil {
		return types.Void{}, nil
	}
	sym := ns.Lookup(e.ctx.Reporter, tn, tn.Value)
	if sym == nil || sym.TypeDecl == nil {
		return nil, internalErrorf(tn, "ccall type name %q does not resolve", tn.Value)
	}
	return sym.TypeDecl.Create(e.ctx.Reporter, tn), nil
}

// lowerRecordConstruction allocates storage for the constructed record
// and stores each ordered argument into its field, the same shape
// lowerTuple uses for anonymous records.
func (e *Emitter) lowerRecordConstruction(ns *symboltable.Namespace, n *ast.Call, method *types.Method) error {
	rt, ok := method.ReturnType.(*types.Record)
	if !ok {
		return internalErrorf(n, "constructor return type is not a record at emission time")
	}
	ordered, ok := orderCallArguments(n, method)
	if !ok {
		return internalErrorf(n, "cannot order constructor arguments for %s", rt.Name())
	}
	structType, err := e.lowerRecord(rt)
	if err != nil {
		return err
	}
	alloca := e.builder.CreateAlloca(structType, rt.Name())
	for i, arg := range ordered {
		if err := e.lowerExpr(ns, arg); err != nil {
			return err
		}
		v := e.pop()
		gep := e.builder.CreateStructGEP(structType, alloca, i, "")
		e.builder.CreateStore(v, gep)
	}
	e.push(alloca)
	return nil
}

// lowerDispatchedCall loads the function pointer out of fn's method
// table (outer index MethodIndex, inner index SpecIndex, spec §3.5/§9)
// and calls it, passing inout arguments by address rather than by
// value.
func (e *Emitter) lowerDispatchedCall(ns *symboltable.Namespace, n *ast.Call, fn *types.Function, method *types.Method) error {
	table := e.methodTables[fn]

	tableType, err := e.lowerMethodTableType(fn)
	if err != nil {
		return err
	}
	methodStructType, err := e.lowerMethodStructType(fn, n.MethodIndex)
	if err != nil {
		return err
	}

	row := e.builder.CreateStructGEP(tableType, table, n.MethodIndex, "")
	slot := e.builder.CreateStructGEP(methodStructType, row, n.SpecIndex, "")
	fnPtr := e.builder.CreateLoad(slot, "")

	ordered, ok := orderCallArguments(n, method)
	if !ok {
		return internalErrorf(n, "cannot order call arguments for %s", fn.Name())
	}
	args := make([]Value, len(ordered))
	for i, arg := range ordered {
		inout := i < len(method.Inout) && method.Inout[i]
		if inout {
			if err := e.lowerLValue(ns, arg); err != nil {
				return err
			}
		} else if err := e.lowerExpr(ns, arg); err != nil {
			return err
		}
		args[i] = e.pop()
	}

	e.push(e.builder.CreateCall(fnPtr, args, "call"))
	return nil
}
