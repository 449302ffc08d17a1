package types

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/diagnostics"
)

func TestRecordFieldLookup(t *testing.T) {
	r := diagnostics.NewReporter()
	rt := &RecordType{
		DeclName:   "Point",
		FieldNames: []string{"x", "y"},
		FieldTypes: []TypeType{&IntegerType{Size: 64}, &IntegerType{Size: 64}},
	}
	rec := rt.Create(r, node()).(*Record)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if !rec.HasField("y") {
		t.Error("expected Point to have field y")
	}
	if rec.FieldIndex("y") != 1 {
		t.Errorf("FieldIndex(y) = %d, want 1", rec.FieldIndex("y"))
	}
	if rec.FieldType("z") != nil {
		t.Error("FieldType(z) should be nil for a nonexistent field")
	}
}

func TestRecordWithParametersSubstitutesGenericFields(t *testing.T) {
	r := diagnostics.NewReporter()
	param := &ParameterType{Label: "T"}
	rt := &RecordType{
		DeclName:        "Box",
		InputParameters: []*ParameterType{param},
		FieldNames:      []string{"value"},
		FieldTypes:      []TypeType{param},
	}
	specialised := rt.WithParameters([]TypeType{&IntegerType{Size: 32}}).(*RecordType)
	box := specialised.Create(r, node())
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if got, want := box.MangledName(), "ri32"; got != want {
		t.Errorf("MangledName() = %q, want %q", got, want)
	}
}

func TestTupleCreateUsesPositionalFieldNames(t *testing.T) {
	r := diagnostics.NewReporter()
	tt := &TupleType{Params: []TypeType{&IntegerType{Size: 64}, &FloatType{Size: 64}}}
	rec := tt.Create(r, node()).(*Record)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if rec.FieldNames[0] != "0" || rec.FieldNames[1] != "1" {
		t.Errorf("FieldNames = %v, want [0 1]", rec.FieldNames)
	}
}

func TestAliasDelegatesToTarget(t *testing.T) {
	r := diagnostics.NewReporter()
	alias := &AliasType{DeclName: "Byte", Target: &UnsignedIntegerType{Size: 8}}
	if got, want := alias.MangledName(), "ui8"; got != want {
		t.Errorf("MangledName() = %q, want %q", got, want)
	}
	v := alias.Create(r, node())
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if got, want := v.MangledName(), "ui8"; got != want {
		t.Errorf("Create().MangledName() = %q, want %q", got, want)
	}
}

func TestModuleTypeIsNotInstantiable(t *testing.T) {
	r := diagnostics.NewReporter()
	mt := &ModuleType{DeclName: "mathlib"}
	if got := mt.Create(r, node()); got != nil {
		t.Errorf("Create() = %v, want nil", got)
	}
	if !r.HasErrors() {
		t.Error("expected an InvalidTypeConstructor diagnostic")
	}
}
