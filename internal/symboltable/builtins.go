package symboltable

import (
	"github.com/acorn-lang/acornc/internal/types"
)

// integerSizes and floatSizes list the concrete bit widths acorn's
// builtin numeric families come in (spec §3.4's Integer(size)/
// UnsignedInteger(size)/Float(size), instantiated once here rather than
// left as bare constructors, since the root namespace binds concrete
// types like "Integer64" directly — see DESIGN.md's note on resolving
// spec §4.4's "looking up Integer in the root namespace").
var integerSizes = []uint{8, 16, 32, 64}
var floatSizes = []uint{32, 64}

// NewRootNamespace builds the namespace every compilation starts from:
// no parent, pre-populated with builtin type constructors, primitive
// instances, and builtin operator functions (spec §3.3).
func NewRootNamespace() *Namespace {
	root := NewNamespace(nil)

	root.symbols["Void"] = &Symbol{Name: "Void", TypeDecl: types.VoidType{}, IsBuiltin: true}
	root.order = append(root.order, "Void")
	root.symbols["Boolean"] = &Symbol{Name: "Boolean", TypeDecl: types.BooleanType{}, IsBuiltin: true}
	root.order = append(root.order, "Boolean")

	integers := make([]*types.IntegerType, len(integerSizes))
	for i, size := range integerSizes {
		integers[i] = &types.IntegerType{Size: size}
		bindBuiltinType(root, integers[i].Name(), integers[i])
	}
	unsigned := make([]*types.UnsignedIntegerType, len(integerSizes))
	for i, size := range integerSizes {
		unsigned[i] = &types.UnsignedIntegerType{Size: size}
		bindBuiltinType(root, unsigned[i].Name(), unsigned[i])
	}
	floats := make([]*types.FloatType, len(floatSizes))
	for i, size := range floatSizes {
		floats[i] = &types.FloatType{Size: size}
		bindBuiltinType(root, floats[i].Name(), floats[i])
	}

	bindBuiltinType(root, "UnsafePointer", &types.UnsafePointerType{})

	// String has no dedicated entry in the TypeType closed set (spec
	// §3.4): it is bound here as an alias for UnsafePointer{Integer8},
	// the representation ccall's C interop needs a string literal to
	// already have (spec §9's open question on string representation,
	// resolved this way — see DESIGN.md).
	bindBuiltinType(root, "String", &types.AliasType{DeclName: "String", Target: &types.UnsafePointerType{Element: integers[0]}})

	numeric := make([]types.Type, 0, len(integers)+len(unsigned)+len(floats))
	for _, it := range integers {
		numeric = append(numeric, &types.Integer{Constructor: it, Size: it.Size})
	}
	for _, ut := range unsigned {
		numeric = append(numeric, &types.UnsignedInteger{Constructor: ut, Size: ut.Size})
	}
	for _, ft := range floats {
		numeric = append(numeric, &types.Float{Constructor: ft, Size: ft.Size})
	}

	for _, arith := range []string{"+", "-", "*", "/", "%"} {
		bindBuiltinOperator(root, arith, numeric, sameTypeMethod)
	}
	for _, cmp := range []string{"==", "!=", "<", "<=", ">", ">="} {
		bindBuiltinOperator(root, cmp, numeric, comparisonMethod)
	}
	bindBuiltinOperator(root, "not", []types.Type{types.Boolean{}}, unaryBooleanMethod)
	bindBuiltinOperator(root, "or", []types.Type{types.Boolean{}}, sameTypeMethod)
	bindBuiltinOperator(root, "and", []types.Type{types.Boolean{}}, sameTypeMethod)

	bindConversion(root, "to_float", &types.Integer{Constructor: integers[len(integers)-1], Size: 64}, &types.Float{Constructor: floats[len(floats)-1], Size: 64})
	bindConversion(root, "to_int", &types.Float{Constructor: floats[len(floats)-1], Size: 64}, &types.Integer{Constructor: integers[len(integers)-1], Size: 64})

	return root
}

func bindBuiltinType(ns *Namespace, name string, constructor types.TypeType) {
	ns.symbols[name] = &Symbol{Name: name, TypeDecl: constructor, IsBuiltin: true}
	ns.order = append(ns.order, name)
}

// sameTypeMethod builds a two-operand method returning the same type as
// its operands (arithmetic and boolean connectives).
func sameTypeMethod(operand types.Type) *types.Method {
	return types.NewMethod(operand, []types.Type{operand, operand}, []string{"lhs", "rhs"}, []bool{false, false})
}

// comparisonMethod builds a two-operand method over operand returning
// Boolean (spec §4.8's builtin comparison operators).
func comparisonMethod(operand types.Type) *types.Method {
	return types.NewMethod(types.Boolean{}, []types.Type{operand, operand}, []string{"lhs", "rhs"}, []bool{false, false})
}

// unaryBooleanMethod builds `not`'s single-operand Boolean->Boolean
// signature.
func unaryBooleanMethod(operand types.Type) *types.Method {
	return types.NewMethod(types.Boolean{}, []types.Type{operand}, []string{"value"}, []bool{false})
}

func bindBuiltinOperator(ns *Namespace, name string, operands []types.Type, build func(types.Type) *types.Method) {
	fn := &types.Function{Constructor: &types.FunctionType{DeclName: name}}
	for _, operand := range operands {
		fn.AddMethod(build(operand))
	}
	ns.symbols[name] = &Symbol{Name: name, Type: fn, IsBuiltin: true}
	ns.order = append(ns.order, name)
}

func bindConversion(ns *Namespace, name string, from, to types.Type) {
	fn := &types.Function{Constructor: &types.FunctionType{DeclName: name}}
	fn.AddMethod(types.NewMethod(to, []types.Type{from}, []string{"value"}, []bool{false}))
	ns.symbols[name] = &Symbol{Name: name, Type: fn, IsBuiltin: true}
	ns.order = append(ns.order, name)
}
