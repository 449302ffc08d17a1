package types

import (
	"strconv"
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
)

// RecordType is the constructor for a `type Name(field as Type, ...)`
// declaration: input parameters are the record's own generic type
// parameters (if any), FieldNames/FieldTypes describe its shape.
type RecordType struct {
	DeclName        string
	InputParameters []*ParameterType
	FieldNames      []string
	FieldTypes      []TypeType
	Params          []TypeType
	Constructor     *Function
}

func (t *RecordType) Name() string {
	if len(t.Params) == 0 {
		return t.DeclName
	}
	return t.DeclName + "{" + typeTypeNames(t.Params) + "}"
}
func (t *RecordType) MangledName() string {
	var sb strings.Builder
	sb.WriteByte('r')
	for _, ft := range t.FieldTypes {
		sb.WriteString(ft.MangledName())
	}
	return sb.String()
}
func (t *RecordType) Parameters() []TypeType { return t.Params }
func (t *RecordType) WithParameters(params []TypeType) TypeType {
	substituted := substituteFieldTypes(t.InputParameters, t.FieldTypes, params)
	return &RecordType{
		DeclName:        t.DeclName,
		InputParameters: t.InputParameters,
		FieldNames:      t.FieldNames,
		FieldTypes:      substituted,
		Params:          params,
		Constructor:     t.Constructor,
	}
}
func (t *RecordType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	if len(t.Params) != len(t.InputParameters) {
		reporter.Errorf(diagnostics.InvalidTypeParameters, node.Pos(),
			"", "%s expects %d type parameters, got %d", t.DeclName, len(t.InputParameters), len(t.Params))
		return nil
	}
	fieldTypes := make([]Type, len(t.FieldTypes))
	for i, ft := range t.FieldTypes {
		fieldTypes[i] = ft.Create(reporter, node)
	}
	return &Record{Constructor: t, FieldNames: t.FieldNames, Fields: fieldTypes}
}

// substituteFieldTypes replaces ParameterType leaves among field types
// with the corresponding concrete TypeType in params, by input-parameter
// position (spec §4.6a's specialisation substitution, applied to a
// record's fields instead of a method's parameters).
func substituteFieldTypes(inputs []*ParameterType, fields []TypeType, params []TypeType) []TypeType {
	substitution := map[*ParameterType]TypeType{}
	for i, in := range inputs {
		if i < len(params) {
			substitution[in] = params[i]
		}
	}
	out := make([]TypeType, len(fields))
	for i, f := range fields {
		if p, ok := f.(*ParameterType); ok {
			if sub, ok := substitution[p]; ok {
				out[i] = sub
				continue
			}
		}
		out[i] = f
	}
	return out
}

// Record is a concrete instantiated record value: an ordered list of
// named fields.
type Record struct {
	Constructor *RecordType
	FieldNames  []string
	Fields      []Type
}

func (v *Record) Name() string {
	return "Record{" + typeNames(v.Fields) + "}"
}
func (v *Record) MangledName() string {
	var sb strings.Builder
	sb.WriteByte('r')
	for _, f := range v.Fields {
		sb.WriteString(f.MangledName())
	}
	return sb.String()
}
func (v *Record) TypeOf() TypeType { return v.Constructor }
func (v *Record) IsCompatible(o Type) bool {
	other, ok := o.(*Record)
	if !ok || len(other.Fields) != len(v.Fields) {
		return false
	}
	for i, f := range v.Fields {
		if !f.IsCompatible(other.Fields[i]) {
			return false
		}
	}
	return true
}
func (v *Record) WithParameters(params []Type) Type {
	return &Record{Constructor: v.Constructor, FieldNames: v.FieldNames, Fields: params}
}

// HasField reports whether name is one of the record's fields.
func (v *Record) HasField(name string) bool { return v.FieldIndex(name) >= 0 }

// FieldIndex returns the ordinal of name among the record's fields, or
// -1 if it is not a field.
func (v *Record) FieldIndex(name string) int {
	for i, n := range v.FieldNames {
		if n == name {
			return i
		}
	}
	return -1
}

// FieldType returns the type of the named field, or nil if absent.
func (v *Record) FieldType(name string) Type {
	i := v.FieldIndex(name)
	if i < 0 {
		return nil
	}
	return v.Fields[i]
}

// TupleType is the constructor for a literal `(a, b, ...)` grouping;
// field names are their positional index, as original_source's Tuple
// does ("0", "1", ...).
type TupleType struct{ Params []TypeType }

func (t *TupleType) Name() string {
	return "Tuple{" + typeTypeNames(t.Params) + "}"
}
func (t *TupleType) MangledName() string {
	var sb strings.Builder
	sb.WriteByte('r')
	for _, p := range t.Params {
		sb.WriteString(p.MangledName())
	}
	return sb.String()
}
func (t *TupleType) Parameters() []TypeType { return t.Params }
func (t *TupleType) WithParameters(params []TypeType) TypeType {
	return &TupleType{Params: params}
}
func (t *TupleType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	fields := make([]Type, len(t.Params))
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		fields[i] = p.Create(reporter, node)
		names[i] = strconv.Itoa(i)
	}
	return &Record{Constructor: &RecordType{DeclName: "Tuple", FieldNames: names, FieldTypes: t.Params}, FieldNames: names, Fields: fields}
}

// AliasType is the constructor for `type Name = Other`: Target is the
// aliased constructor; Create and mangled_name both delegate straight
// through to it, so an alias is transparent to the rest of the pipeline.
type AliasType struct {
	DeclName string
	Target   TypeType
}

func (t *AliasType) Name() string           { return t.DeclName }
func (t *AliasType) MangledName() string    { return t.Target.MangledName() }
func (t *AliasType) Parameters() []TypeType { return t.Target.Parameters() }
func (t *AliasType) WithParameters(params []TypeType) TypeType {
	return &AliasType{DeclName: t.DeclName, Target: t.Target.WithParameters(params)}
}
func (t *AliasType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return t.Target.Create(reporter, node)
}

// ModuleType is the constructor for a `module Name` namespace symbol;
// modules are never instantiated as values, so Create always fails.
type ModuleType struct{ DeclName string }

func (t *ModuleType) Name() string           { return t.DeclName }
func (t *ModuleType) MangledName() string    { return "mod" }
func (t *ModuleType) Parameters() []TypeType { return nil }
func (t *ModuleType) WithParameters(params []TypeType) TypeType { return t }
func (t *ModuleType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	reporter.Errorf(diagnostics.InvalidTypeConstructor, node.Pos(), "", "module %q is not a type", t.DeclName)
	return nil
}

// TypeDescriptionType is the constructor for "the type of a type"
// itself — what a bare TypeType's own TypeOf() would report, used only
// by the inferrer when a Name denotes a type rather than a value (spec
// §3.4's "the type of a Name that denotes a type is a TypeType").
type TypeDescriptionType struct{ Of TypeType }

func (t *TypeDescriptionType) Name() string {
	if t.Of == nil {
		return "Type"
	}
	return "Type{" + t.Of.Name() + "}"
}
func (t *TypeDescriptionType) MangledName() string { return "td" }
func (t *TypeDescriptionType) Parameters() []TypeType {
	if t.Of == nil {
		return nil
	}
	return []TypeType{t.Of}
}
func (t *TypeDescriptionType) WithParameters(params []TypeType) TypeType {
	if len(params) != 1 {
		return &TypeDescriptionType{}
	}
	return &TypeDescriptionType{Of: params[0]}
}
func (t *TypeDescriptionType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	reporter.Errorf(diagnostics.InvalidTypeConstructor, node.Pos(), "", "a type description is not itself instantiable")
	return nil
}

// TypeDescription is the instance of TypeDescriptionType: the value a
// Name carries when it denotes a type rather than a value, e.g. the
// bare `Point` in `Point.new(1, 2)` (spec's selector rule, ".new returns
// the type's canonical constructor").
type TypeDescription struct{ Of TypeType }

func (v *TypeDescription) Name() string {
	return (&TypeDescriptionType{Of: v.Of}).Name()
}
func (v *TypeDescription) MangledName() string { return "td" }
func (v *TypeDescription) TypeOf() TypeType     { return &TypeDescriptionType{Of: v.Of} }
func (v *TypeDescription) IsCompatible(o Type) bool {
	other, ok := o.(*TypeDescription)
	return ok && other.Of == v.Of
}
func (v *TypeDescription) WithParameters(params []Type) Type { return v }
