package irgen

import (
	"fmt"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/mangle"
	"github.com/acorn-lang/acornc/internal/semantic"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// methodKey addresses one declared IR function: a method's overload
// identity plus which of its specialisations (index 0 for a
// non-generic method, since types.NewMethod always seeds one empty
// substitution for those, spec §3.5).
type methodKey struct {
	method *types.Method
	spec   int
}

// Emitter lowers one fully checked and reified SourceFile into a
// Module, following the teacher's internal/bytecode.Compiler shape: a
// direct-emission visitor walking the AST once, rather than building an
// intermediate tree of its own (spec §4.8).
type Emitter struct {
	backend Backend
	module  Module
	ctx     *semantic.Context

	structTypes  map[string]Type
	methodTables map[*types.Function]Value
	methodFns    map[methodKey]Value

	// stack is the operand stack expression lowering pushes onto and
	// pops from, so a visitor method for a compound expression consumes
	// its children's last-pushed value rather than threading return
	// values through every call (spec §4.8's literal requirement).
	stack []Value

	builder   Builder
	currentFn Value

	// terminated tracks whether the block currently being filled in
	// already ends in a ret/br/condbr, so control-flow lowering (If,
	// While) doesn't append a second terminator after a branch that
	// already returned or looped away (LLVM rejects more than one
	// terminator per block).
	terminated bool
}

// NewEmitter returns an Emitter targeting backend.
func NewEmitter(backend Backend) *Emitter {
	return &Emitter{
		backend:      backend,
		structTypes:  map[string]Type{},
		methodTables: map[*types.Function]Value{},
		methodFns:    map[methodKey]Value{},
	}
}

// Run lowers file into a fresh Module: a three-function skeleton
// (_init_variables_, _user_code_, main, spec §4.8), every global
// variable's initializer, every method's body (including each
// materialised generic specialisation), and the method tables calls
// dispatch through.
func (e *Emitter) Run(file *ast.SourceFile, ctx *semantic.Context) (Module, error) {
	e.ctx = ctx
	e.module = e.backend.NewModule(file.Name)

	voidFn := e.backend.FunctionType(e.backend.VoidType(), nil, false)
	initFn := e.module.AddFunction("_init_variables_", voidFn)
	userFn := e.module.AddFunction("_user_code_", voidFn)
	mainFnType := e.backend.FunctionType(e.backend.IntType(32), nil, false)
	mainFn := e.module.AddFunction("main", mainFnType)

	// Declare every global and every method's IR function signature up
	// front so a call lowered before its callee's body is emitted can
	// still resolve the function pointer it needs (spec §4.8's calls:
	// "load the function pointer from the method-table global").
	if err := e.declareHolders(ctx.Root, file.Decls); err != nil {
		return nil, err
	}

	ib := e.module.NewBuilder()
	defer ib.Dispose()
	e.builder = ib
	e.currentFn = initFn
	ib.SetInsertPoint(ib.AppendBasicBlock(initFn, "entry"))
	if err := e.emitGlobalInitializers(ctx.Root, file.Decls); err != nil {
		return nil, err
	}
	e.populateMethodTables()
	ib.CreateRetVoid()
	if err := e.module.VerifyFunction(initFn); err != nil {
		return nil, fmt.Errorf("%s: _init_variables_: %w", diagnostics.InternalError, err)
	}

	// acorn's grammar never produces a loose top-level statement —
	// every top-level construct is a declaration (spec §3.2) — so
	// _user_code_ has nothing of its own to run. It is kept, empty, so
	// the emitted module always carries the three-function skeleton
	// spec §4.8 names, and main still calls it for structural parity
	// with a future grammar extension that does add top-level statements.
	ub := e.module.NewBuilder()
	defer ub.Dispose()
	ub.SetInsertPoint(ub.AppendBasicBlock(userFn, "entry"))
	ub.CreateRetVoid()
	if err := e.module.VerifyFunction(userFn); err != nil {
		return nil, fmt.Errorf("%s: _user_code_: %w", diagnostics.InternalError, err)
	}

	if err := e.emitMethodBodies(ctx.Root, file.Decls); err != nil {
		return nil, err
	}

	mb := e.module.NewBuilder()
	defer mb.Dispose()
	mb.SetInsertPoint(mb.AppendBasicBlock(mainFn, "entry"))
	mb.CreateCall(initFn, nil, "")
	mb.CreateCall(userFn, nil, "")
	mb.CreateRet(e.backend.ConstInt(e.backend.IntType(32), 0, true))
	if err := e.module.VerifyFunction(mainFn); err != nil {
		return nil, fmt.Errorf("%s: main: %w", diagnostics.InternalError, err)
	}

	return e.module, nil
}

func internalErrorf(node ast.Node, format string, args ...any) error {
	return fmt.Errorf("%s at %s: %s", diagnostics.InternalError, node.Pos(), fmt.Sprintf(format, args...))
}

// push and pop drive the operand stack expression lowering uses so a
// compound expression's visitor consumes its children's last-pushed
// value instead of threading return values through every call.
func (e *Emitter) push(v Value) { e.stack = append(e.stack, v) }

func (e *Emitter) pop() Value {
	n := len(e.stack) - 1
	v := e.stack[n]
	e.stack = e.stack[:n]
	return v
}

// setInsertPoint moves the builder to bb and marks it unterminated.
func (e *Emitter) setInsertPoint(bb BasicBlock) {
	e.builder.SetInsertPoint(bb)
	e.terminated = false
}

// br/condBr/ret/retVoid are thin wrappers over the Builder's terminator
// instructions that record the current block as terminated, and are a
// no-op if it already is (a branch already taken inside an if/else arm,
// for instance).
func (e *Emitter) br(bb BasicBlock) {
	if e.terminated {
		return
	}
	e.builder.CreateBr(bb)
	e.terminated = true
}

func (e *Emitter) condBr(cond Value, then, els BasicBlock) {
	if e.terminated {
		return
	}
	e.builder.CreateCondBr(cond, then, els)
	e.terminated = true
}

func (e *Emitter) ret(v Value) {
	if e.terminated {
		return
	}
	e.builder.CreateRet(v)
	e.terminated = true
}

func (e *Emitter) retVoid() {
	if e.terminated {
		return
	}
	e.builder.CreateRetVoid()
	e.terminated = true
}

// declareHolders walks decls, declaring (but not yet emitting the body
// of) every global variable and method it finds, recursing into nested
// modules with their own namespace.
func (e *Emitter) declareHolders(ns *symboltable.Namespace, decls []*ast.DeclHolder) error {
	for _, holder := range decls {
		if err := e.declareHolder(ns, holder); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) declareHolder(ns *symboltable.Namespace, holder *ast.DeclHolder) error {
	switch n := holder.Main.(type) {
	case *ast.VarDecl:
		return e.declareGlobal(ns, n)
	case *ast.DefDecl:
		if !n.Name.IsGeneric() {
			return e.declareMethod(ns, n)
		}
		_, fn, method, err := e.resolveMethodSym(ns, n)
		if err != nil {
			return err
		}
		for specIdx, spec := range holder.Specialisations {
			clone, ok := spec.Decl.(*ast.DefDecl)
			if !ok {
				continue
			}
			scope, err := e.reestablishScope(ns, clone, spec.Substitution)
			if err != nil {
				return err
			}
			if err := e.declareSpecialisation(fn, method, specIdx, scope, clone); err != nil {
				return err
			}
		}
	case *ast.TypeDecl:
		// Record layouts are lowered lazily from the types.Record value
		// an expression resolves to (internal/irgen/types.go); neither a
		// builtin, alias, nor record TypeDecl contributes IR of its own.
	case *ast.ModuleDecl:
		sym, ok := ns.LookupLocal(n.Name)
		if !ok || sym.Namespace == nil {
			return internalErrorf(n, "missing module symbol for %q", n.Name)
		}
		return e.declareHolders(sym.Namespace, moduleHolders(n.Body))
	}
	return nil
}

// reestablishScope rebuilds the namespace a reified clone was typed
// against: the reifier's own substitution namespace is local to its
// call and not reachable from the tree, so the emitter recreates it
// from the Substitution map the reifier left on the SpecialisedDecl,
// then re-types the clone the same way (spec §4.6a's materialisation,
// redone once per specialisation at lowering time instead of kept
// alive as a dangling Namespace).
func (e *Emitter) reestablishScope(ns *symboltable.Namespace, clone *ast.DefDecl, substitution map[string]any) (*symboltable.Namespace, error) {
	scope := symboltable.NewNamespace(ns)
	for label, boxed := range substitution {
		concrete, ok := boxed.(types.Type)
		if !ok {
			return nil, internalErrorf(clone, "substitution for %q is not a concrete type", label)
		}
		scope.Insert(e.ctx.Reporter, clone, label, &symboltable.Symbol{Name: label, TypeDecl: concrete.TypeOf()})
	}
	symboltable.NewSubBuilder(e.ctx.Reporter, scope).Visit(clone)
	semantic.NewInferrer().InferDecl(e.ctx, scope, clone)
	if e.ctx.Reporter.HasErrors() {
		return nil, internalErrorf(clone, "re-typing specialisation of %q failed", clone.Name.Value)
	}
	return scope, nil
}

func (e *Emitter) declareGlobal(ns *symboltable.Namespace, n *ast.VarDecl) error {
	sym, ok := ns.LookupLocal(n.Name.Value)
	if !ok {
		return internalErrorf(n, "missing symbol for global %q", n.Name.Value)
	}
	t, err := e.lowerType(sym.Type)
	if err != nil {
		return err
	}
	global := e.module.AddGlobal("_G_"+n.Name.Value, t)
	e.module.SetGlobalInitializer(global, e.backend.ConstNull(t))
	sym.Value = global
	return nil
}

// resolveMethodSym looks up def's method symbol within ns (without
// following parents, spec §4.3's function-symbol rule) and returns it
// alongside the Function/Method types the inferrer attached to it.
func (e *Emitter) resolveMethodSym(ns *symboltable.Namespace, def *ast.DefDecl) (*symboltable.Symbol, *types.Function, *types.Method, error) {
	funcSym, ok := ns.LookupLocal(def.Name.Value)
	if !ok || funcSym.Namespace == nil {
		return nil, nil, nil, internalErrorf(def, "missing function symbol for %q", def.Name.Value)
	}
	methodSym := funcSym.Namespace.LookupByNode(def)
	if methodSym == nil {
		return nil, nil, nil, internalErrorf(def, "missing method symbol for %q", def.Name.Value)
	}
	method, ok := methodSym.Type.(*types.Method)
	if !ok {
		return nil, nil, nil, internalErrorf(def, "missing method type for %q", def.Name.Value)
	}
	fn, ok := funcSym.Type.(*types.Function)
	if !ok {
		return nil, nil, nil, internalErrorf(def, "missing function type for %q", def.Name.Value)
	}
	return methodSym, fn, method, nil
}

// ensureMethodTable lazily declares the method-table global for fn,
// shared by every one of its overloads and their specialisations.
func (e *Emitter) ensureMethodTable(fn *types.Function) (Value, error) {
	if t, ok := e.methodTables[fn]; ok {
		return t, nil
	}
	tableType, err := e.lowerMethodTableType(fn)
	if err != nil {
		return Value{}, err
	}
	table := e.module.AddGlobal("_MT_"+fn.Name(), tableType)
	e.methodTables[fn] = table
	return table, nil
}

// declareMethod declares a non-generic method's single IR function
// signature (and its Function's method-table global, if not already
// present) without emitting the body — the body is emitted in a second
// pass so calls to functions declared later in the file can already
// resolve a function pointer.
func (e *Emitter) declareMethod(ns *symboltable.Namespace, def *ast.DefDecl) error {
	_, fn, method, err := e.resolveMethodSym(ns, def)
	if err != nil {
		return err
	}
	if _, err := e.ensureMethodTable(fn); err != nil {
		return err
	}
	fnType, err := e.lowerMethodFunctionType(method)
	if err != nil {
		return err
	}
	fnVal := e.module.AddFunction(mangle.MangleMethod(def.Name.Value, method), fnType)
	e.methodFns[methodKey{method, 0}] = fnVal
	return nil
}

// declareSpecialisation declares the IR function for one materialised
// specialisation of a generic method. origMethod/specIdx address the
// slot in the ORIGINAL method's accumulated Specialisations() list (spec
// §3.5) that this clone's body fills in — the clone itself is re-typed
// into its own fresh, already-concrete Function/Method via scope (spec
// §4.6a), which is used only to resolve the clone's own concrete
// signature and parameter symbols, never as a method-table key.
func (e *Emitter) declareSpecialisation(fn *types.Function, origMethod *types.Method, specIdx int, scope *symboltable.Namespace, clone *ast.DefDecl) error {
	if _, err := e.ensureMethodTable(fn); err != nil {
		return err
	}
	_, _, cloneMethod, err := e.resolveMethodSym(scope, clone)
	if err != nil {
		return err
	}
	fnType, err := e.lowerMethodFunctionType(cloneMethod)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%d", mangle.MangleMethod(clone.Name.Value, cloneMethod), specIdx)
	fnVal := e.module.AddFunction(name, fnType)
	e.methodFns[methodKey{origMethod, specIdx}] = fnVal
	return nil
}

// moduleHolders extracts the DeclHolders a module body carries — a
// module's Block is parsed the same way a SourceFile's top level is
// (internal/parser's parseDeclBlock), so its Statements are themselves
// DeclHolder nodes rather than bare statements.
func moduleHolders(body *ast.Block) []*ast.DeclHolder {
	holders := make([]*ast.DeclHolder, 0, len(body.Statements))
	for _, stmt := range body.Statements {
		if h, ok := stmt.(*ast.DeclHolder); ok {
			holders = append(holders, h)
		}
	}
	return holders
}

// emitGlobalInitializers evaluates every global VarDecl's value into
// the already-open _init_variables_ entry block and stores it into the
// global declareGlobal allocated.
func (e *Emitter) emitGlobalInitializers(ns *symboltable.Namespace, decls []*ast.DeclHolder) error {
	for _, holder := range decls {
		switch n := holder.Main.(type) {
		case *ast.VarDecl:
			sym, ok := ns.LookupLocal(n.Name.Value)
			if !ok {
				return internalErrorf(n, "missing symbol for global %q", n.Name.Value)
			}
			global, ok := sym.Value.(Value)
			if !ok {
				return internalErrorf(n, "global %q was never declared", n.Name.Value)
			}
			if n.Value != nil {
				if err := e.lowerExpr(ns, n.Value); err != nil {
					return err
				}
				e.builder.CreateStore(e.pop(), global)
			}
		case *ast.ModuleDecl:
			sym, ok := ns.LookupLocal(n.Name)
			if !ok || sym.Namespace == nil {
				return internalErrorf(n, "missing module symbol for %q", n.Name)
			}
			if err := e.emitGlobalInitializers(sym.Namespace, moduleHolders(n.Body)); err != nil {
				return err
			}
		}
	}
	return nil
}

// populateMethodTables stores every declared method function pointer
// into its slot in the method-table global, in the same order
// internal/types.Function.AddMethod assigned method-table indices and
// AddSpecialisation assigned specialisation indices (spec §4.8's
// definitions responsibility: "storing the function pointer into the
// method-table global during init").
func (e *Emitter) populateMethodTables() {
	for fn, table := range e.methodTables {
		methodStructs := make([]Value, len(fn.Methods()))
		for i, m := range fn.Methods() {
			specs := m.Specialisations()
			n := len(specs)
			if n == 0 {
				n = 1
			}
			fnPtrs := make([]Value, n)
			for specIdx := 0; specIdx < n; specIdx++ {
				if v, ok := e.methodFns[methodKey{m, specIdx}]; ok {
					fnPtrs[specIdx] = v
				}
			}
			methodStructs[i] = e.backend.ConstStruct(fnPtrs, false)
		}
		e.module.SetGlobalInitializer(table, e.backend.ConstStruct(methodStructs, false))
	}
}

// emitMethodBodies walks decls a second time, emitting the IR body for
// every declared method (spec §4.8's definitions: "one IR function per
// method x specialisation").
func (e *Emitter) emitMethodBodies(ns *symboltable.Namespace, decls []*ast.DeclHolder) error {
	for _, holder := range decls {
		switch n := holder.Main.(type) {
		case *ast.DefDecl:
			if !n.Name.IsGeneric() {
				if err := e.emitMethodBody(ns, n); err != nil {
					return err
				}
				continue
			}
			_, _, method, err := e.resolveMethodSym(ns, n)
			if err != nil {
				return err
			}
			for specIdx, spec := range holder.Specialisations {
				clone, ok := spec.Decl.(*ast.DefDecl)
				if !ok {
					continue
				}
				scope, err := e.reestablishScope(ns, clone, spec.Substitution)
				if err != nil {
					return err
				}
				if err := e.emitSpecialisationBody(method, specIdx, scope, clone); err != nil {
					return err
				}
			}
		case *ast.ModuleDecl:
			sym, ok := ns.LookupLocal(n.Name)
			if !ok || sym.Namespace == nil {
				return internalErrorf(n, "missing module symbol for %q", n.Name)
			}
			if err := e.emitMethodBodies(sym.Namespace, moduleHolders(n.Body)); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitMethodBody emits a non-generic method's single IR body.
func (e *Emitter) emitMethodBody(ns *symboltable.Namespace, def *ast.DefDecl) error {
	methodSym, _, method, err := e.resolveMethodSym(ns, def)
	if err != nil {
		return err
	}
	fnVal, ok := e.methodFns[methodKey{method, 0}]
	if !ok {
		return internalErrorf(def, "%q was never declared", def.Name.Value)
	}
	return e.emitOneMethodBody(methodSym.Namespace, def, method, fnVal)
}

// emitSpecialisationBody emits the IR body for one materialised
// specialisation, stored into the slot declareSpecialisation reserved
// for it in the original method's table (methodKey{origMethod, specIdx}).
func (e *Emitter) emitSpecialisationBody(origMethod *types.Method, specIdx int, scope *symboltable.Namespace, clone *ast.DefDecl) error {
	methodSym, _, cloneMethod, err := e.resolveMethodSym(scope, clone)
	if err != nil {
		return err
	}
	fnVal, ok := e.methodFns[methodKey{origMethod, specIdx}]
	if !ok {
		return internalErrorf(clone, "%q specialisation %d was never declared", clone.Name.Value, specIdx)
	}
	return e.emitOneMethodBody(methodSym.Namespace, clone, cloneMethod, fnVal)
}

// emitOneMethodBody emits a single (method, specialisation) IR
// function: builtins get a fixed body (internal/irgen/builtins.go),
// everything else is emitted from its AST body with each formal
// parameter bound to a function argument in the entry block (inout
// parameters are already pointers, so they bind directly without an
// alloca).
func (e *Emitter) emitOneMethodBody(scope *symboltable.Namespace, def *ast.DefDecl, method *types.Method, fnVal Value) error {
	if def.Builtin {
		return e.emitBuiltinBody(def.Name.Value, method, fnVal)
	}
	if def.Body == nil {
		return nil
	}

	b := e.module.NewBuilder()
	defer b.Dispose()
	prevBuilder, prevFn, prevTerminated := e.builder, e.currentFn, e.terminated
	e.builder, e.currentFn = b, fnVal
	defer func() { e.builder, e.currentFn, e.terminated = prevBuilder, prevFn, prevTerminated }()

	e.setInsertPoint(b.AppendBasicBlock(fnVal, "entry"))

	for i, p := range def.Params {
		psym := scope.LookupByNode(p)
		if psym == nil {
			continue
		}
		arg := fnVal.Param(i)
		if p.Inout {
			psym.Value = arg
			continue
		}
		t, err := e.lowerType(psym.Type)
		if err != nil {
			return err
		}
		alloca := b.CreateAlloca(t, p.Value)
		b.CreateStore(arg, alloca)
		psym.Value = alloca
	}

	if err := e.lowerBlock(scope, def.Body); err != nil {
		return err
	}
	e.terminateImplicitly(method)

	if err := e.module.VerifyFunction(fnVal); err != nil {
		return fmt.Errorf("%s: %s: %w", diagnostics.InternalError, def.Name.Value, err)
	}
	return nil
}

// terminateImplicitly closes a body falling off its last statement
// without an explicit return — legal only for a Void-returning method
// (spec §4.4's Return rule only checks explicit returns; a body that
// never executes one still needs a terminator for LLVM's verifier).
func (e *Emitter) terminateImplicitly(method *types.Method) {
	if _, isVoid := method.ReturnType.(types.Void); isVoid {
		e.retVoid()
	}
}
