package types

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
)

// ParameterType is the constructor for a generic method/record's type
// parameter leaves (the "T" in `def id{T}(x as T)`); Create yields a
// Parameter instance, which is_compatible with everything (acts like
// Any) until the reifier substitutes a concrete Type for it.
type ParameterType struct{ Label string }

func (t *ParameterType) Name() string               { return t.Label }
func (t *ParameterType) MangledName() string        { return "p" }
func (t *ParameterType) Parameters() []TypeType      { return nil }
func (t *ParameterType) WithParameters(p []TypeType) TypeType {
	if len(p) == 0 {
		return t
	}
	return t
}
func (t *ParameterType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return &Parameter{Constructor: t}
}

// Parameter is the as-yet-unresolved instance of a generic type
// parameter. It is compatible with any other type (spec §3.4 note:
// "acts like Any" until substituted).
type Parameter struct{ Constructor *ParameterType }

func (v *Parameter) Name() string             { return v.Constructor.Label }
func (v *Parameter) MangledName() string      { return "p" }
func (v *Parameter) TypeOf() TypeType         { return v.Constructor }
func (v *Parameter) IsCompatible(Type) bool   { return true }
func (v *Parameter) WithParameters(p []Type) Type {
	return v
}

// VoidType is the nullary constructor for the absence of a value
// (procedures without a return value).
type VoidType struct{}

func (VoidType) Name() string          { return "Void" }
func (VoidType) MangledName() string   { return "u" }
func (VoidType) Parameters() []TypeType { return nil }
func (t VoidType) WithParameters(p []TypeType) TypeType {
	return t
}
func (t VoidType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return Void{}
}

// Void is the single value of type Void.
type Void struct{}

func (Void) Name() string           { return "Void" }
func (Void) MangledName() string    { return "v" }
func (Void) TypeOf() TypeType       { return VoidType{} }
func (Void) IsCompatible(o Type) bool {
	_, ok := o.(Void)
	return ok
}
func (v Void) WithParameters(p []Type) Type { return v }

// BooleanType is the nullary constructor for Boolean.
type BooleanType struct{}

func (BooleanType) Name() string           { return "Boolean" }
func (BooleanType) MangledName() string    { return "u" }
func (BooleanType) Parameters() []TypeType { return nil }
func (t BooleanType) WithParameters(p []TypeType) TypeType {
	return t
}
func (t BooleanType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return Boolean{}
}

// Boolean is acorn's boolean instance type (lowered to a one-word
// integer by the emitter; see internal/parser's true/false lowering).
type Boolean struct{}

func (Boolean) Name() string        { return "Boolean" }
func (Boolean) MangledName() string { return "b" }
func (Boolean) TypeOf() TypeType    { return BooleanType{} }
func (Boolean) IsCompatible(o Type) bool {
	_, ok := o.(Boolean)
	return ok
}
func (b Boolean) WithParameters(p []Type) Type { return b }

// IntegerType is parameterised only by bit size, fixed at construction
// (unlike the generic `with_parameters`, size is not substitutable).
type IntegerType struct{ Size uint }

func (t *IntegerType) Name() string           { return fmt.Sprintf("Integer%d", t.Size) }
func (t *IntegerType) MangledName() string    { return fmt.Sprintf("i%d", t.Size) }
func (t *IntegerType) Parameters() []TypeType { return nil }
func (t *IntegerType) WithParameters(p []TypeType) TypeType {
	return t
}
func (t *IntegerType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return &Integer{Constructor: t, Size: t.Size}
}

type Integer struct {
	Constructor *IntegerType
	Size        uint
}

func (v *Integer) Name() string        { return fmt.Sprintf("Integer%d", v.Size) }
func (v *Integer) MangledName() string { return fmt.Sprintf("i%d", v.Size) }
func (v *Integer) TypeOf() TypeType    { return v.Constructor }
func (v *Integer) IsCompatible(o Type) bool {
	other, ok := o.(*Integer)
	return ok && other.Size == v.Size
}
func (v *Integer) WithParameters(p []Type) Type { return v }

// UnsignedIntegerType mirrors IntegerType for the unsigned family.
type UnsignedIntegerType struct{ Size uint }

func (t *UnsignedIntegerType) Name() string           { return fmt.Sprintf("UnsignedInteger%d", t.Size) }
func (t *UnsignedIntegerType) MangledName() string    { return fmt.Sprintf("ui%d", t.Size) }
func (t *UnsignedIntegerType) Parameters() []TypeType { return nil }
func (t *UnsignedIntegerType) WithParameters(p []TypeType) TypeType {
	return t
}
func (t *UnsignedIntegerType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return &UnsignedInteger{Constructor: t, Size: t.Size}
}

type UnsignedInteger struct {
	Constructor *UnsignedIntegerType
	Size        uint
}

func (v *UnsignedInteger) Name() string        { return fmt.Sprintf("UnsignedInteger%d", v.Size) }
func (v *UnsignedInteger) MangledName() string { return fmt.Sprintf("ui%d", v.Size) }
func (v *UnsignedInteger) TypeOf() TypeType    { return v.Constructor }
func (v *UnsignedInteger) IsCompatible(o Type) bool {
	other, ok := o.(*UnsignedInteger)
	return ok && other.Size == v.Size
}
func (v *UnsignedInteger) WithParameters(p []Type) Type { return v }

// FloatType mirrors IntegerType for IEEE floats.
type FloatType struct{ Size uint }

func (t *FloatType) Name() string           { return fmt.Sprintf("Float%d", t.Size) }
func (t *FloatType) MangledName() string    { return fmt.Sprintf("f%d", t.Size) }
func (t *FloatType) Parameters() []TypeType { return nil }
func (t *FloatType) WithParameters(p []TypeType) TypeType {
	return t
}
func (t *FloatType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return &Float{Constructor: t, Size: t.Size}
}

type Float struct {
	Constructor *FloatType
	Size        uint
}

func (v *Float) Name() string        { return fmt.Sprintf("Float%d", v.Size) }
func (v *Float) MangledName() string { return fmt.Sprintf("f%d", v.Size) }
func (v *Float) TypeOf() TypeType    { return v.Constructor }
func (v *Float) IsCompatible(o Type) bool {
	other, ok := o.(*Float)
	return ok && other.Size == v.Size
}
func (v *Float) WithParameters(p []Type) Type { return v }

// UnsafePointerType is parameterised by its pointee TypeType; Element is
// nil until `with_parameters` substitutes one (spec §3.4, "pX" tag).
type UnsafePointerType struct{ Element TypeType }

func (t *UnsafePointerType) Name() string {
	if t.Element == nil {
		return "UnsafePointer"
	}
	return "UnsafePointer{" + t.Element.Name() + "}"
}
func (t *UnsafePointerType) MangledName() string {
	if t.Element == nil {
		return "p"
	}
	return "p" + t.Element.MangledName()
}
func (t *UnsafePointerType) Parameters() []TypeType {
	if t.Element == nil {
		return nil
	}
	return []TypeType{t.Element}
}
func (t *UnsafePointerType) WithParameters(p []TypeType) TypeType {
	if len(p) != 1 {
		return t
	}
	return &UnsafePointerType{Element: p[0]}
}
func (t *UnsafePointerType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	if t.Element == nil {
		reporter.Errorf(diagnostics.InvalidTypeParameters, node.Pos(), "", "UnsafePointer requires one element type parameter")
		return nil
	}
	return &UnsafePointer{Constructor: t, Element: t.Element.Create(reporter, node)}
}

type UnsafePointer struct {
	Constructor *UnsafePointerType
	Element     Type
}

func (v *UnsafePointer) Name() string        { return "UnsafePointer{" + v.Element.Name() + "}" }
func (v *UnsafePointer) MangledName() string { return "p" + v.Element.MangledName() }
func (v *UnsafePointer) TypeOf() TypeType    { return v.Constructor }
func (v *UnsafePointer) IsCompatible(o Type) bool {
	other, ok := o.(*UnsafePointer)
	return ok && v.Element.IsCompatible(other.Element)
}
func (v *UnsafePointer) WithParameters(p []Type) Type {
	if len(p) != 1 {
		return v
	}
	return &UnsafePointer{Constructor: v.Constructor, Element: p[0]}
}
