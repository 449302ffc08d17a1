package irgen

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/types"
)

// builtinOperatorNames is the closed set of operators internal/symboltable's
// NewRootNamespace binds directly as root symbols rather than as
// DefDecls: a call through one of these never reaches a declared
// method table, so the emitter supplies a fixed IR body in place
// (spec §4.8's built-in-method rule).
var builtinOperatorNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"not": true, "or": true, "and": true,
	"to_float": true, "to_int": true,
}

func isBuiltinOperatorName(name string) bool { return builtinOperatorNames[name] }

// emitBuiltinOp computes the result of applying a built-in operator to
// already-lowered operand values, dispatching on the representative
// operand type the way internal/symboltable's builtins.go built each
// operator's method set (one method per numeric family, plus the fixed
// Boolean/conversion methods).
func (e *Emitter) emitBuiltinOp(name string, operandType types.Type, args []Value) (Value, error) {
	switch operandType.(type) {
	case *types.Float:
		return e.emitFloatBuiltin(name, args)
	case *types.UnsignedInteger:
		return e.emitUnsignedBuiltin(name, args)
	case types.Boolean:
		return e.emitBooleanBuiltin(name, args)
	case *types.Integer:
		return e.emitSignedBuiltin(name, args)
	default:
		return Value{}, internalErrorf0("no built-in operator %q for %s", name, operandType.Name())
	}
}

func (e *Emitter) emitSignedBuiltin(name string, args []Value) (Value, error) {
	b := e.builder
	switch name {
	case "+":
		return b.CreateAdd(args[0], args[1], "add"), nil
	case "-":
		return b.CreateSub(args[0], args[1], "sub"), nil
	case "*":
		return b.CreateMul(args[0], args[1], "mul"), nil
	case "/":
		return b.CreateSDiv(args[0], args[1], "div"), nil
	case "%":
		return b.CreateSRem(args[0], args[1], "rem"), nil
	case "==":
		return b.CreateICmp(IntEQ, args[0], args[1], "eq"), nil
	case "!=":
		return b.CreateICmp(IntNE, args[0], args[1], "ne"), nil
	case "<":
		return b.CreateICmp(IntSLT, args[0], args[1], "lt"), nil
	case "<=":
		return b.CreateICmp(IntSLE, args[0], args[1], "le"), nil
	case ">":
		return b.CreateICmp(IntSGT, args[0], args[1], "gt"), nil
	case ">=":
		return b.CreateICmp(IntSGE, args[0], args[1], "ge"), nil
	case "to_float":
		return b.CreateSIToFP(args[0], e.backend.FloatType(64), "conv"), nil
	default:
		return Value{}, internalErrorf0("no built-in integer operator %q", name)
	}
}

func (e *Emitter) emitUnsignedBuiltin(name string, args []Value) (Value, error) {
	b := e.builder
	switch name {
	case "+":
		return b.CreateAdd(args[0], args[1], "add"), nil
	case "-":
		return b.CreateSub(args[0], args[1], "sub"), nil
	case "*":
		return b.CreateMul(args[0], args[1], "mul"), nil
	case "/":
		return b.CreateUDiv(args[0], args[1], "div"), nil
	case "%":
		return b.CreateURem(args[0], args[1], "rem"), nil
	case "==":
		return b.CreateICmp(IntEQ, args[0], args[1], "eq"), nil
	case "!=":
		return b.CreateICmp(IntNE, args[0], args[1], "ne"), nil
	case "<":
		return b.CreateICmp(IntULT, args[0], args[1], "lt"), nil
	case "<=":
		return b.CreateICmp(IntULE, args[0], args[1], "le"), nil
	case ">":
		return b.CreateICmp(IntUGT, args[0], args[1], "gt"), nil
	case ">=":
		return b.CreateICmp(IntUGE, args[0], args[1], "ge"), nil
	default:
		return Value{}, internalErrorf0("no built-in unsigned operator %q", name)
	}
}

func (e *Emitter) emitFloatBuiltin(name string, args []Value) (Value, error) {
	b := e.builder
	switch name {
	case "+":
		return b.CreateFAdd(args[0], args[1], "fadd"), nil
	case "-":
		return b.CreateFSub(args[0], args[1], "fsub"), nil
	case "*":
		return b.CreateFMul(args[0], args[1], "fmul"), nil
	case "/":
		return b.CreateFDiv(args[0], args[1], "fdiv"), nil
	case "==":
		return b.CreateFCmp(FloatOEQ, args[0], args[1], "feq"), nil
	case "!=":
		return b.CreateFCmp(FloatONE, args[0], args[1], "fne"), nil
	case "<":
		return b.CreateFCmp(FloatOLT, args[0], args[1], "flt"), nil
	case "<=":
		return b.CreateFCmp(FloatOLE, args[0], args[1], "fle"), nil
	case ">":
		return b.CreateFCmp(FloatOGT, args[0], args[1], "fgt"), nil
	case ">=":
		return b.CreateFCmp(FloatOGE, args[0], args[1], "fge"), nil
	case "to_int":
		return b.CreateFPToSI(args[0], e.backend.IntType(64), "conv"), nil
	default:
		return Value{}, internalErrorf0("no built-in float operator %q", name)
	}
}

func (e *Emitter) emitBooleanBuiltin(name string, args []Value) (Value, error) {
	b := e.builder
	switch name {
	case "not":
		return b.CreateXor(args[0], b.CreateICmp(IntEQ, args[0], args[0], ""), "not"), nil
	case "or":
		return b.CreateOr(args[0], args[1], "or"), nil
	case "and":
		return b.CreateAnd(args[0], args[1], "and"), nil
	case "==":
		return b.CreateICmp(IntEQ, args[0], args[1], "eq"), nil
	case "!=":
		return b.CreateICmp(IntNE, args[0], args[1], "ne"), nil
	default:
		return Value{}, internalErrorf0("no built-in boolean operator %q", name)
	}
}

// emitBuiltinBody fills in fnVal's body for a `def builtin` declaration
// whose name names one of the fixed operators, binding each formal
// parameter directly (no storage needed; built-ins never take their
// address) and returning the computed value.
func (e *Emitter) emitBuiltinBody(name string, method *types.Method, fnVal Value) error {
	builder := e.module.NewBuilder()
	prevBuilder, prevFn, prevTerminated := e.builder, e.currentFn, e.terminated
	e.builder, e.currentFn = builder, fnVal
	defer func() { e.builder, e.currentFn, e.terminated = prevBuilder, prevFn, prevTerminated; builder.Dispose() }()

	e.setInsertPoint(builder.AppendBasicBlock(fnVal, "entry"))

	args := make([]Value, len(method.ParameterTypes))
	for i := range method.ParameterTypes {
		args[i] = fnVal.Param(i)
	}
	operandType := types.Type(types.Boolean{})
	if len(method.ParameterTypes) > 0 {
		operandType = method.ParameterTypes[0]
	}
	result, err := e.emitBuiltinOp(name, operandType, args)
	if err != nil {
		return err
	}
	e.ret(result)
	return e.module.VerifyFunction(fnVal)
}

// internalErrorf0 builds an error without an anchoring AST node, for
// built-in lowering code that has no single node to blame.
func internalErrorf0(format string, args ...any) error {
	return fmt.Errorf("%s: %s", diagnostics.InternalError, fmt.Sprintf(format, args...))
}
