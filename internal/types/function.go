package types

import (
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
)

// FunctionType is the constructor for a function symbol's type: the
// type of the overload set as a whole, not of any one method (spec
// §3.5). It is never parameterised directly — methods carry their own
// parameter/return types.
type FunctionType struct{ DeclName string }

func (t *FunctionType) Name() string                        { return t.DeclName }
func (t *FunctionType) MangledName() string                 { return "fn" }
func (t *FunctionType) Parameters() []TypeType               { return nil }
func (t *FunctionType) WithParameters(params []TypeType) TypeType { return t }
func (t *FunctionType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return &Function{Constructor: t}
}

// MethodType is the constructor for one method signature. Like
// FunctionType it is a bookkeeping constructor only: a Method's real
// shape lives on the Method instance itself (return/parameter types).
type MethodType struct{}

func (t *MethodType) Name() string                        { return "Method" }
func (t *MethodType) MangledName() string                 { return "u" }
func (t *MethodType) Parameters() []TypeType               { return nil }
func (t *MethodType) WithParameters(params []TypeType) TypeType { return t }
func (t *MethodType) Create(reporter *diagnostics.Reporter, node ast.Node) Type {
	return nil
}

// Specialisation is one generic substitution: a map from a method's
// declared ParameterType leaves to the concrete Type supplied by a
// particular call site (spec §3.5, §4.6a).
type Specialisation map[*ParameterType]Type

// Method is one overload of a Function: a concrete callable signature
// plus, if generic, the specialisations requested of it so far.
type Method struct {
	constructor    *MethodType
	ReturnType     Type
	ParameterTypes []Type
	ParameterNames []string        // "" where the parameter was positional-only
	Inout          []bool
	keywordIndex   map[string]int
	specialisations []Specialisation
}

// NewMethod builds a (non-generic by default) Method. Call
// AddSpecialisation for each concrete substitution a generic method
// accumulates as calls are inferred.
func NewMethod(returnType Type, parameterTypes []Type, parameterNames []string, inout []bool) *Method {
	m := &Method{
		constructor:    &MethodType{},
		ReturnType:     returnType,
		ParameterTypes: parameterTypes,
		ParameterNames: parameterNames,
		Inout:          inout,
		keywordIndex:   map[string]int{},
	}
	for i, name := range parameterNames {
		if name != "" {
			m.keywordIndex[name] = i
		}
	}
	if !m.IsGeneric() {
		m.specialisations = []Specialisation{{}}
	}
	return m
}

func (m *Method) Name() string {
	var sb strings.Builder
	sb.WriteString("Method{")
	sb.WriteString(m.ReturnType.Name())
	for _, p := range m.ParameterTypes {
		sb.WriteString(", ")
		sb.WriteString(p.Name())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m *Method) MangledName() string {
	var sb strings.Builder
	sb.WriteByte('m')
	sb.WriteString(m.ReturnType.MangledName())
	for _, p := range m.ParameterTypes {
		sb.WriteString(p.MangledName())
	}
	return sb.String()
}

func (m *Method) TypeOf() TypeType { return m.constructor }
func (m *Method) IsCompatible(o Type) bool {
	other, ok := o.(*Method)
	return ok && SignaturesEqual(m, other)
}
func (m *Method) WithParameters(params []Type) Type { return m }

// ParameterIndex returns the ordinal of a keyword parameter, or -1.
func (m *Method) ParameterIndex(name string) int {
	if i, ok := m.keywordIndex[name]; ok {
		return i
	}
	return -1
}

// IsGeneric reports whether any parameter or the return type mentions
// a ParameterType leaf — such a method requires specialisation before
// it can be emitted.
func (m *Method) IsGeneric() bool {
	if mentionsParameter(m.ReturnType) {
		return true
	}
	for _, p := range m.ParameterTypes {
		if mentionsParameter(p) {
			return true
		}
	}
	return false
}

func mentionsParameter(t Type) bool {
	_, ok := t.(*Parameter)
	return ok
}

// CouldBeCalledWith reports whether positional/keyword argument types
// are pairwise compatible with this method's parameters, honouring the
// keyword-name→index map for out-of-order keyword arguments (spec
// §4.4's call-resolution step 3).
func (m *Method) CouldBeCalledWith(positional []Type, keyword map[string]Type) bool {
	ordered, ok := m.OrderArguments(positional, keyword)
	if !ok {
		return false
	}
	for i, arg := range ordered {
		if arg == nil || !m.ParameterTypes[i].IsCompatible(arg) {
			return false
		}
	}
	return true
}

// OrderArguments merges positional and keyword arguments into
// parameter order. Returns ok=false if arity or keyword names don't
// line up with this method's signature.
func (m *Method) OrderArguments(positional []Type, keyword map[string]Type) ([]Type, bool) {
	if len(positional)+len(keyword) != len(m.ParameterTypes) {
		return nil, false
	}
	ordered := make([]Type, len(m.ParameterTypes))
	copy(ordered, positional)
	for name, arg := range keyword {
		idx := m.ParameterIndex(name)
		if idx < 0 || idx < len(positional) {
			return nil, false
		}
		ordered[idx] = arg
	}
	for _, arg := range ordered {
		if arg == nil {
			return nil, false
		}
	}
	return ordered, true
}

// AddSpecialisation records a new generic substitution, returning its
// index in the specialisation list (spec §3.5; the reifier reads this
// index back from the Call node it annotated, §4.6a).
func (m *Method) AddSpecialisation(sub Specialisation) int {
	for i, existing := range m.specialisations {
		if specialisationsEqual(existing, sub) {
			return i
		}
	}
	m.specialisations = append(m.specialisations, sub)
	return len(m.specialisations) - 1
}

// Specialisations returns every substitution recorded so far, in
// request order (index 0 first).
func (m *Method) Specialisations() []Specialisation { return m.specialisations }

func specialisationsEqual(a, b Specialisation) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || ov.MangledName() != v.MangledName() {
			return false
		}
	}
	return true
}

// SignaturesEqual reports whether two methods accept the same ordered
// parameter types (used to detect duplicate/ambiguous overloads).
func SignaturesEqual(a, b *Method) bool {
	if len(a.ParameterTypes) != len(b.ParameterTypes) {
		return false
	}
	for i := range a.ParameterTypes {
		if a.ParameterTypes[i].MangledName() != b.ParameterTypes[i].MangledName() {
			return false
		}
	}
	return true
}

// Function is the type of a function symbol: an ordered overload set
// plus the method→method-table-index mapping the emitter needs (spec
// §3.5's "llvm index").
type Function struct {
	Constructor *FunctionType
	methods     []*Method
	llvmIndex   map[*Method]int
}

func (f *Function) Name() string {
	if f.Constructor != nil {
		return f.Constructor.DeclName
	}
	return "Function"
}
func (f *Function) MangledName() string {
	var sb strings.Builder
	sb.WriteByte('F')
	for _, m := range f.methods {
		sb.WriteString(m.MangledName())
	}
	return sb.String()
}
func (f *Function) TypeOf() TypeType {
	if f.Constructor != nil {
		return f.Constructor
	}
	return &FunctionType{}
}
func (f *Function) IsCompatible(o Type) bool { _, ok := o.(*Function); return ok }
func (f *Function) WithParameters(params []Type) Type { return f }

// AddMethod appends a new overload, assigning it the next method-table
// index.
func (f *Function) AddMethod(m *Method) {
	if f.llvmIndex == nil {
		f.llvmIndex = map[*Method]int{}
	}
	f.llvmIndex[m] = len(f.methods)
	f.methods = append(f.methods, m)
}

// Methods returns the overload set in declaration order.
func (f *Function) Methods() []*Method { return f.methods }

// MethodTableIndex returns m's position in the method table, or -1.
func (f *Function) MethodTableIndex(m *Method) int {
	if idx, ok := f.llvmIndex[m]; ok {
		return idx
	}
	return -1
}

// FindMethod returns the first overload compatible with the given
// argument types, or nil if none match (spec §4.4 step 3: "accept the
// first whose parameter types pairwise accept the argument types").
func (f *Function) FindMethod(positional []Type, keyword map[string]Type) *Method {
	for _, m := range f.methods {
		if m.CouldBeCalledWith(positional, keyword) {
			return m
		}
	}
	return nil
}
