package mangle

import (
	"testing"

	"github.com/acorn-lang/acornc/internal/types"
)

func TestMangleMethodIncludesSignature(t *testing.T) {
	i64 := &types.IntegerType{Size: 64}
	arg := &types.Integer{Constructor: i64, Size: 64}
	m := types.NewMethod(arg, []types.Type{arg}, []string{"x"}, []bool{false})

	got := MangleMethod("double", m)
	want := "_A_double_" + m.MangledName()
	if got != want {
		t.Errorf("MangleMethod(%q, m) = %q, want %q", "double", got, want)
	}
}

func TestMangleMethodDistinguishesOverloads(t *testing.T) {
	intArg := &types.Integer{Constructor: &types.IntegerType{Size: 64}, Size: 64}
	floatArg := &types.Float{Constructor: &types.FloatType{Size: 64}, Size: 64}

	onInt := types.NewMethod(intArg, []types.Type{intArg}, []string{"x"}, []bool{false})
	onFloat := types.NewMethod(floatArg, []types.Type{floatArg}, []string{"x"}, []bool{false})

	if MangleMethod("id", onInt) == MangleMethod("id", onFloat) {
		t.Error("expected overloads with different signatures to mangle to different names")
	}
}
