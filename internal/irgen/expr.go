package irgen

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// resolvedType safely unboxes the types.Type the inferrer left on node,
// via the any-typed ResolvedType/SetResolvedType plumbing (used to avoid
// an import cycle between internal/ast and internal/types).
func resolvedType(node ast.Node) (types.Type, bool) {
	t, ok := node.ResolvedType().(types.Type)
	return t, ok
}

// lowerExpr evaluates node and pushes exactly one Value onto the
// operand stack — the convention every caller in this package relies on
// (spec §4.8).
func (e *Emitter) lowerExpr(ns *symboltable.Namespace, node ast.Node) error {
	switch n := node.(type) {
	case *ast.Int:
		rt, ok := resolvedType(n)
		if !ok {
			return internalErrorf(n, "integer literal has no resolved type")
		}
		t, err := e.lowerType(rt)
		if err != nil {
			return err
		}
		e.push(e.backend.ConstInt(t, uint64(n.Value), true))
		return nil
	case *ast.Float:
		rt, ok := resolvedType(n)
		if !ok {
			return internalErrorf(n, "float literal has no resolved type")
		}
		t, err := e.lowerType(rt)
		if err != nil {
			return err
		}
		e.push(e.backend.ConstFloat(t, n.Value))
		return nil
	case *ast.StringLit:
		return e.lowerStringLit(n)
	case *ast.Name:
		return e.lowerName(ns, n)
	case *ast.Selector:
		return e.lowerSelector(ns, n)
	case *ast.Call:
		return e.lowerCall(ns, n)
	case *ast.CCall:
		return e.lowerCCall(ns, n)
	case *ast.Cast:
		return e.lowerCast(ns, n)
	case *ast.Assignment:
		return e.lowerAssignmentExpr(ns, n)
	case *ast.Tuple:
		return e.lowerTuple(ns, n)
	case *ast.Complex:
		return internalErrorf(n, "complex literals have no IR representation")
	case *ast.List:
		return internalErrorf(n, "list literals have no IR representation")
	case *ast.Dictionary:
		return internalErrorf(n, "dictionary literals have no IR representation")
	case *ast.Switch:
		return internalErrorf(n, "switch has no IR representation")
	case *ast.Spawn:
		return internalErrorf(n, "spawn has no IR representation")
	case *ast.For:
		return internalErrorf(n, "for loops are desugared before the emitter ever sees them")
	default:
		return internalErrorf(node, "no IR lowering rule for %s", node.Kind())
	}
}

// lowerStringLit materialises a string literal as a pointer to a
// private null-terminated global, the same CreateGlobalStringPtr
// shortcut hhramberg-go-vslc's generator uses for its own string
// constants (src/ir/llvm/transform.go).
func (e *Emitter) lowerStringLit(n *ast.StringLit) error {
	e.push(e.builder.CreateGlobalStringPtr(n.Value, ".str"))
	return nil
}

// lowerName loads the current value bound to a Name: a global or local
// variable's storage is always an alloca/global pointer, loaded here;
// a Name denoting a function is never itself loaded (it is only
// meaningful inside a Call's operand position, handled directly there).
func (e *Emitter) lowerName(ns *symboltable.Namespace, n *ast.Name) error {
	sym := ns.Lookup(e.ctx.Reporter, n, n.Value)
	if sym == nil {
		return internalErrorf(n, "undefined name %q reached the emitter", n.Value)
	}
	if _, isFunc := sym.Type.(*types.Function); isFunc {
		return nil
	}
	ptr, ok := sym.Value.(Value)
	if !ok {
		return internalErrorf(n, "%q has no storage at emission time", n.Value)
	}
	e.push(e.builder.CreateLoad(ptr, n.Value))
	return nil
}

// lowerSelector lowers a record field access: load the field out of the
// already-lowered operand struct value (records are passed around by
// pointer so field loads are a GEP, not an extractvalue).
func (e *Emitter) lowerSelector(ns *symboltable.Namespace, n *ast.Selector) error {
	operandType, ok := resolvedType(n.Operand)
	if !ok {
		return internalErrorf(n, "selector operand has no resolved type")
	}
	rt, ok := operandType.(*types.Record)
	if !ok {
		return internalErrorf(n, "selector operand is not a record at emission time")
	}
	if err := e.lowerLValue(ns, n.Operand); err != nil {
		return err
	}
	operandPtr := e.pop()
	idx := rt.FieldIndex(n.Field)
	if idx < 0 {
		return internalErrorf(n, "record %s has no field %q", rt.Name(), n.Field)
	}
	structType, err := e.lowerRecord(rt)
	if err != nil {
		return err
	}
	gep := e.builder.CreateStructGEP(structType, operandPtr, idx, n.Field)
	e.push(e.builder.CreateLoad(gep, n.Field))
	return nil
}

// lowerCast re-interprets an integer/float operand as another primitive
// numeric type (spec §4.4's cast rule); records and pointers cast as a
// no-op bitcast of the already-lowered pointer.
func (e *Emitter) lowerCast(ns *symboltable.Namespace, n *ast.Cast) error {
	if err := e.lowerExpr(ns, n.Operand); err != nil {
		return err
	}
	v := e.pop()
	from, ok := resolvedType(n.Operand)
	if !ok {
		return internalErrorf(n, "cast operand has no resolved type")
	}
	to, ok := resolvedType(n)
	if !ok {
		return internalErrorf(n, "cast has no resolved type")
	}
	toT, err := e.lowerType(to)
	if err != nil {
		return err
	}
	e.push(e.lowerNumericConversion(from, to, v, toT))
	return nil
}

func (e *Emitter) lowerNumericConversion(from, to types.Type, v Value, toT Type) Value {
	_, fromFloat := from.(*types.Float)
	_, toFloat := to.(*types.Float)
	switch {
	case fromFloat && !toFloat:
		return e.builder.CreateFPToSI(v, toT, "cast")
	case !fromFloat && toFloat:
		return e.builder.CreateSIToFP(v, toT, "cast")
	case fromFloat && toFloat:
		return v
	default:
		return v
	}
}

// lowerTuple constructs an anonymous record value, allocating storage
// for it and storing each element (spec's inferrer treats Tuple as a
// Record named "Tuple" with positional field names, internal/semantic's
// inferExpr on *ast.Tuple).
func (e *Emitter) lowerTuple(ns *symboltable.Namespace, n *ast.Tuple) error {
	nt, ok := resolvedType(n)
	if !ok {
		return internalErrorf(n, "tuple has no resolved type")
	}
	rt, ok := nt.(*types.Record)
	if !ok {
		return internalErrorf(n, "tuple has no resolved record type")
	}
	structType, err := e.lowerRecord(rt)
	if err != nil {
		return err
	}
	alloca := e.builder.CreateAlloca(structType, "tuple")
	for i, elem := range n.Elements {
		if err := e.lowerExpr(ns, elem); err != nil {
			return err
		}
		v := e.pop()
		gep := e.builder.CreateStructGEP(structType, alloca, i, "")
		e.builder.CreateStore(v, gep)
	}
	e.push(alloca)
	return nil
}

// lowerLValue evaluates node to a pointer (its storage address) rather
// than its loaded value, used by Selector and Assignment targets.
func (e *Emitter) lowerLValue(ns *symboltable.Namespace, node ast.Node) error {
	switch n := node.(type) {
	case *ast.Name:
		sym := ns.Lookup(e.ctx.Reporter, n, n.Value)
		if sym == nil {
			return internalErrorf(n, "undefined name %q reached the emitter", n.Value)
		}
		ptr, ok := sym.Value.(Value)
		if !ok {
			return internalErrorf(n, "%q has no storage at emission time", n.Value)
		}
		e.push(ptr)
		return nil
	case *ast.Selector:
		operandType, ok := resolvedType(n.Operand)
		if !ok {
			return internalErrorf(n, "selector operand has no resolved type")
		}
		rt, ok := operandType.(*types.Record)
		if !ok {
			return internalErrorf(n, "selector operand is not a record at emission time")
		}
		if err := e.lowerLValue(ns, n.Operand); err != nil {
			return err
		}
		operandPtr := e.pop()
		idx := rt.FieldIndex(n.Field)
		if idx < 0 {
			return internalErrorf(n, "record %s has no field %q", rt.Name(), n.Field)
		}
		structType, err := e.lowerRecord(rt)
		if err != nil {
			return err
		}
		e.push(e.builder.CreateStructGEP(structType, operandPtr, idx, n.Field))
		return nil
	default:
		return internalErrorf(node, "not an assignable expression")
	}
}

// lowerAssignmentExpr stores value into target's storage and leaves the
// stored value on the stack (Assignment is an expression, spec §3.2).
func (e *Emitter) lowerAssignmentExpr(ns *symboltable.Namespace, n *ast.Assignment) error {
	if err := e.lowerExpr(ns, n.Value); err != nil {
		return err
	}
	val := e.pop()
	if err := e.lowerLValue(ns, n.Target); err != nil {
		return err
	}
	ptr := e.pop()
	e.builder.CreateStore(val, ptr)
	e.push(val)
	return nil
}

// lowerLet allocates storage for a new block-local binding and stores
// its initial value, binding the symbol the symbol table already
// created for this Let node (internal/symboltable's visitLet).
func (e *Emitter) lowerLet(ns *symboltable.Namespace, n *ast.Let) error {
	sym := ns.LookupByNode(n)
	if sym == nil {
		return internalErrorf(n, "missing symbol for let %q", n.Name)
	}
	t, err := e.lowerType(sym.Type)
	if err != nil {
		return err
	}
	alloca := e.builder.CreateAlloca(t, n.Name)
	sym.Value = alloca
	if err := e.lowerExpr(ns, n.Value); err != nil {
		return err
	}
	e.builder.CreateStore(e.pop(), alloca)
	return nil
}
