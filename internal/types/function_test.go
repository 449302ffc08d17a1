package types

import "testing"

func TestFunctionFindMethodPicksFirstCompatibleOverload(t *testing.T) {
	i64 := &Integer{Constructor: &IntegerType{Size: 64}, Size: 64}
	f64 := &Float{Constructor: &FloatType{Size: 64}, Size: 64}
	intMethod := NewMethod(Void{}, []Type{i64}, []string{"n"}, []bool{false})
	floatMethod := NewMethod(Void{}, []Type{f64}, []string{"n"}, []bool{false})

	fn := &Function{Constructor: &FunctionType{DeclName: "show"}}
	fn.AddMethod(intMethod)
	fn.AddMethod(floatMethod)

	if got := fn.FindMethod([]Type{i64}, nil); got != intMethod {
		t.Errorf("FindMethod(i64) = %v, want intMethod", got)
	}
	if got := fn.FindMethod([]Type{f64}, nil); got != floatMethod {
		t.Errorf("FindMethod(f64) = %v, want floatMethod", got)
	}
	if got := fn.MethodTableIndex(floatMethod); got != 1 {
		t.Errorf("MethodTableIndex(floatMethod) = %d, want 1", got)
	}
}

func TestMethodOrderArgumentsMergesKeywordsByName(t *testing.T) {
	i64 := &Integer{Constructor: &IntegerType{Size: 64}, Size: 64}
	b := Boolean{}
	m := NewMethod(Void{}, []Type{i64, b}, []string{"count", "flag"}, []bool{false, false})

	ordered, ok := m.OrderArguments([]Type{i64}, map[string]Type{"flag": b})
	if !ok {
		t.Fatal("expected OrderArguments to succeed")
	}
	if ordered[0] != i64 || ordered[1] != b {
		t.Errorf("ordered = %v, want [i64, b]", ordered)
	}
}

func TestMethodOrderArgumentsRejectsWrongArity(t *testing.T) {
	i64 := &Integer{Constructor: &IntegerType{Size: 64}, Size: 64}
	m := NewMethod(Void{}, []Type{i64}, []string{"n"}, []bool{false})
	if _, ok := m.OrderArguments(nil, nil); ok {
		t.Error("expected arity mismatch to fail")
	}
}

func TestMethodIsGenericDetectsParameterLeaves(t *testing.T) {
	param := &ParameterType{Label: "T"}
	pv := &Parameter{Constructor: param}
	generic := NewMethod(pv, []Type{pv}, []string{"x"}, []bool{false})
	if !generic.IsGeneric() {
		t.Error("expected method with a Parameter leaf to be generic")
	}

	i64 := &Integer{Constructor: &IntegerType{Size: 64}, Size: 64}
	concrete := NewMethod(i64, []Type{i64}, []string{"x"}, []bool{false})
	if concrete.IsGeneric() {
		t.Error("expected method with only concrete types to be non-generic")
	}
}

func TestAddSpecialisationDeduplicatesBySubstitution(t *testing.T) {
	param := &ParameterType{Label: "T"}
	pv := &Parameter{Constructor: param}
	m := NewMethod(pv, []Type{pv}, []string{"x"}, []bool{false})

	i64 := &Integer{Constructor: &IntegerType{Size: 64}, Size: 64}
	first := m.AddSpecialisation(Specialisation{param: i64})
	second := m.AddSpecialisation(Specialisation{param: i64})
	if first != second {
		t.Errorf("identical substitutions should share an index: %d != %d", first, second)
	}

	f64 := &Float{Constructor: &FloatType{Size: 64}, Size: 64}
	third := m.AddSpecialisation(Specialisation{param: f64})
	if third == first {
		t.Error("distinct substitutions must get distinct indices")
	}
	if got, want := len(m.Specialisations()), 2; got != want {
		t.Errorf("len(Specialisations()) = %d, want %d", got, want)
	}
}
