// Package semantic implements acorn's type inferrer and type checker
// (spec §4.4, §4.5): two tree-walking passes over the AST the symbol
// table builder has already decorated with binding structure.
package semantic

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// Context is the shared state threaded through every pass, following
// the teacher's PassContext idiom (internal/semantic/pass_context.go):
// the root namespace the symbol-table builder already produced, plus
// the reporter every pass writes diagnostics to.
type Context struct {
	Root     *symboltable.Namespace
	Reporter *diagnostics.Reporter

	// RecordInstantiations records, for each generic RecordType, every
	// distinct list of concrete type parameters a TypeName resolution
	// requested (spec §4.6a). internal/reifier reads this back to
	// materialise one specialised record per distinct request, the same
	// way it reads a generic method's accumulated Specialisations.
	RecordInstantiations map[*types.RecordType][][]types.TypeType
}

// RequestRecordInstantiation records that rt was resolved with params,
// if this exact parameter list hasn't been requested before.
func (ctx *Context) RequestRecordInstantiation(rt *types.RecordType, params []types.TypeType) {
	if ctx.RecordInstantiations == nil {
		ctx.RecordInstantiations = map[*types.RecordType][][]types.TypeType{}
	}
	for _, existing := range ctx.RecordInstantiations[rt] {
		if typeTypeListKey(existing) == typeTypeListKey(params) {
			return
		}
	}
	ctx.RecordInstantiations[rt] = append(ctx.RecordInstantiations[rt], params)
}

func typeTypeListKey(params []types.TypeType) string {
	key := ""
	for _, p := range params {
		key += "|" + p.MangledName()
	}
	return key
}

// Pass is one semantic analysis stage over a SourceFile, following the
// teacher's multi-pass architecture (internal/semantic/pass.go):
// passes never mutate AST structure, only annotate it and report
// diagnostics, so a fatal error in one pass never corrupts the tree the
// next pass (or the reifier) walks.
type Pass interface {
	Name() string
	Run(file *ast.SourceFile, ctx *Context) error
}

// PassManager runs a fixed sequence of passes, stopping early if a pass
// reports any diagnostics — later passes assume earlier ones succeeded
// (spec §7: the driver must not run the checker over a tree inference
// never finished typing).
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll executes every pass in order, stopping after the first one
// that leaves diagnostics on reporter.
func (pm *PassManager) RunAll(file *ast.SourceFile, ctx *Context) error {
	for _, pass := range pm.passes {
		if err := pass.Run(file, ctx); err != nil {
			return err
		}
		if ctx.Reporter.HasErrors() {
			break
		}
	}
	return nil
}
