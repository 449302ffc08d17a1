package irgen

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/types"
)

// lowerType maps one acorn Type to its IR representation (spec §4.8's
// type-lowering responsibility): primitives lower directly, UnsafePointer
// becomes a pointer to its lowered element, Record and Tuple (which the
// inferrer already represents as a Record, see internal/semantic's
// inferExpr on *ast.Tuple) become a named IR struct, and Function becomes
// a method table (struct of structs of function pointers, spec §4.8a).
// Struct types are cached by mangled name so two references to the same
// record type share one IR type.
func (e *Emitter) lowerType(t types.Type) (Type, error) {
	switch v := t.(type) {
	case nil:
		return e.backend.VoidType(), nil
	case types.Void:
		return e.backend.VoidType(), nil
	case types.Boolean:
		return e.backend.BoolType(), nil
	case *types.Integer:
		return e.backend.IntType(v.Size), nil
	case *types.UnsignedInteger:
		return e.backend.IntType(v.Size), nil
	case *types.Float:
		return e.backend.FloatType(v.Size), nil
	case *types.UnsafePointer:
		elem, err := e.lowerType(v.Element)
		if err != nil {
			return Type{}, err
		}
		return e.backend.PointerType(elem), nil
	case *types.Record:
		return e.lowerRecord(v)
	case *types.Function:
		return e.lowerMethodTableType(v)
	case *types.Parameter:
		return Type{}, fmt.Errorf("%s: unspecialised generic parameter %q reached the emitter", diagnostics.InternalError, v.Name())
	default:
		return Type{}, fmt.Errorf("%s: no IR representation for type %s", diagnostics.InternalError, t.Name())
	}
}

func (e *Emitter) lowerRecord(r *types.Record) (Type, error) {
	name := "record." + r.MangledName()
	if cached, ok := e.structTypes[name]; ok {
		return cached, nil
	}
	opaque := e.backend.OpaqueStructType(name)
	e.structTypes[name] = opaque

	fields := make([]Type, len(r.Fields))
	for i, f := range r.Fields {
		ft, err := e.lowerType(f)
		if err != nil {
			return Type{}, err
		}
		fields[i] = ft
	}
	e.backend.SetStructBody(opaque, fields)
	return opaque, nil
}

// lowerMethodFunctionType builds the IR function type for one Method:
// inout parameters pass a pointer to the parameter's own type (spec
// §4.8's "Method" lowering rule).
func (e *Emitter) lowerMethodFunctionType(m *types.Method) (Type, error) {
	ret, err := e.lowerType(m.ReturnType)
	if err != nil {
		return Type{}, err
	}
	params := make([]Type, len(m.ParameterTypes))
	for i, pt := range m.ParameterTypes {
		lt, err := e.lowerType(pt)
		if err != nil {
			return Type{}, err
		}
		if i < len(m.Inout) && m.Inout[i] {
			lt = e.backend.PointerType(lt)
		}
		params[i] = lt
	}
	return e.backend.FunctionType(ret, params, false), nil
}

// lowerMethodTableType builds the "struct of structs of function
// pointers" layout spec §3.5/§9 describes: one element per method, each
// element itself a struct with one function-pointer field per
// specialisation (the unspecialised/non-generic case is simply the
// Sᵢ=1 case, since NewMethod seeds a single empty Specialisation).
func (e *Emitter) lowerMethodTableType(f *types.Function) (Type, error) {
	name := e.methodTableTypeName(f)
	if cached, ok := e.structTypes[name]; ok {
		return cached, nil
	}
	methodStructs := make([]Type, len(f.Methods()))
	for i, m := range f.Methods() {
		fnType, err := e.lowerMethodFunctionType(m)
		if err != nil {
			return Type{}, err
		}
		fnPtr := e.backend.PointerType(fnType)
		specCount := len(m.Specialisations())
		if specCount == 0 {
			specCount = 1
		}
		fields := make([]Type, specCount)
		for j := range fields {
			fields[j] = fnPtr
		}
		methodStruct := e.backend.StructType(e.methodStructTypeName(f, i), fields)
		e.structTypes[e.methodStructTypeName(f, i)] = methodStruct
		methodStructs[i] = methodStruct
	}
	table := e.backend.StructType(name, methodStructs)
	e.structTypes[name] = table
	return table, nil
}

func (e *Emitter) methodTableTypeName(f *types.Function) string {
	return "mtable." + f.Name() + "." + f.MangledName()
}

func (e *Emitter) methodStructTypeName(f *types.Function, methodIndex int) string {
	return fmt.Sprintf("%s.method%d", e.methodTableTypeName(f), methodIndex)
}

// lowerMethodStructType returns the IR struct type for one method's row
// in fn's method table (one function-pointer field per specialisation),
// ensuring the whole table has been lowered (and its per-method struct
// types cached) first.
func (e *Emitter) lowerMethodStructType(f *types.Function, methodIndex int) (Type, error) {
	if _, err := e.lowerMethodTableType(f); err != nil {
		return Type{}, err
	}
	t, ok := e.structTypes[e.methodStructTypeName(f, methodIndex)]
	if !ok {
		return Type{}, fmt.Errorf("%s: missing method struct type for %s method %d", diagnostics.InternalError, f.Name(), methodIndex)
	}
	return t, nil
}
