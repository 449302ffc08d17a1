// Package reifier materialises one concrete declaration per generic
// specialisation a call site (or a TypeName resolution) requested
// during inference (spec §4.6). It is the one pass between the checker
// and the IR emitter that changes tree shape: for every generic
// DefDecl/TypeDecl it finds, it clones the declaration once per
// distinct substitution already recorded on its Method or on
// Context.RecordInstantiations, rebinds the clone's type parameters to
// concrete types, and fully re-types the clone at that rebound scope
// so the emitter never sees a Parameter leaf.
//
// Grounded on original_source's reifier pass (compiler/reifier.cpp):
// that implementation splits collection (walking calls during
// inference) from materialisation (a second visitor producing
// SpecialisedDecls) into two passes over the same tree. Here
// collection already happens as a side effect of internal/semantic's
// Inferrer — method.Specialisations() and Context.RecordInstantiations
// are populated by the time this pass runs — so Reifier only needs to
// perform the materialisation half.
package reifier

import (
	"strings"

	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/semantic"
	"github.com/acorn-lang/acornc/internal/symboltable"
	"github.com/acorn-lang/acornc/internal/types"
)

// Reifier materialises every SpecialisedDecl a generic declaration
// needs, in place on the DeclHolder that wraps it.
type Reifier struct{}

// NewReifier returns a Reifier ready to run.
func NewReifier() *Reifier { return &Reifier{} }

func (rf *Reifier) Name() string { return "reify" }

// Run walks file's declarations (recursing into module bodies) and
// materialises any generic specialisation requested of them.
func (rf *Reifier) Run(file *ast.SourceFile, ctx *semantic.Context) error {
	rf.reifyHolders(ctx, ctx.Root, file.Decls)
	return nil
}

func (rf *Reifier) reifyHolders(ctx *semantic.Context, ns *symboltable.Namespace, decls []*ast.DeclHolder) {
	for _, holder := range decls {
		rf.reifyHolder(ctx, ns, holder)
	}
}

func (rf *Reifier) reifyHolder(ctx *semantic.Context, ns *symboltable.Namespace, holder *ast.DeclHolder) {
	switch n := holder.Main.(type) {
	case *ast.DefDecl:
		rf.reifyDef(ctx, ns, holder, n)
	case *ast.TypeDecl:
		rf.reifyRecord(ctx, ns, holder, n)
	case *ast.ModuleDecl:
		sym, ok := ns.LookupLocal(n.Name)
		if !ok || sym.Namespace == nil {
			return
		}
		rf.reifyHolders(ctx, sym.Namespace, moduleHolders(n.Body))
	}
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

// reifyDef materialises one SpecialisedDecl per substitution recorded
// on orig's Method during inference (spec §3.5, §4.6).
func (rf *Reifier) reifyDef(ctx *semantic.Context, ns *symboltable.Namespace, holder *ast.DeclHolder, orig *ast.DefDecl) {
	if !orig.Name.IsGeneric() {
		return
	}
	funcSym, ok := ns.LookupLocal(orig.Name.Value)
	if !ok || funcSym.Namespace == nil {
		return
	}
	methodSym := funcSym.Namespace.LookupByNode(orig)
	if methodSym == nil || methodSym.Namespace == nil {
		return
	}
	method, ok := methodSym.Type.(*types.Method)
	if !ok {
		return
	}

	existing := existingKeys(holder)
	for _, sub := range method.Specialisations() {
		key, ok := defSpecialisationKey(orig.Name.TypeParams, methodSym.Namespace, sub)
		if !ok || existing[key] {
			continue
		}

		clone := orig.Clone().(*ast.DefDecl)
		substNS := symboltable.NewNamespace(ns)
		substitution := make(map[string]any, len(orig.Name.TypeParams))
		for _, tp := range orig.Name.TypeParams {
			_, concrete, bound := paramSubstitution(methodSym.Namespace, tp, sub)
			if !bound {
				continue
			}
			substNS.Insert(ctx.Reporter, clone, tp, &symboltable.Symbol{Name: tp, TypeDecl: concrete.TypeOf()})
			substitution[tp] = concrete
		}

		symboltable.NewSubBuilder(ctx.Reporter, substNS).Visit(clone)
		// Visiting the clone binds its type parameters afresh as
		// ParameterTypes in its own method scope; point those at the
		// concrete types so the clone is typed without Parameter leaves.
		if cloneFn, ok := substNS.LookupLocal(clone.Name.Value); ok && cloneFn.Namespace != nil {
			if cloneMethod := cloneFn.Namespace.LookupByNode(clone); cloneMethod != nil && cloneMethod.Namespace != nil {
				for tp, concrete := range substitution {
					if tpSym, ok := cloneMethod.Namespace.LookupLocal(tp); ok {
						tpSym.TypeDecl = concrete.(types.Type).TypeOf()
					}
				}
			}
		}
		semantic.NewInferrer().InferDecl(ctx, substNS, clone)

		holder.Specialisations = append(holder.Specialisations, &ast.SpecialisedDecl{Key: key, Decl: clone, Substitution: substitution})
		existing[key] = true
	}
}

// reifyRecord materialises one SpecialisedDecl per distinct type
// parameter list a TypeName resolution requested of orig's RecordType
// (spec §4.6a).
func (rf *Reifier) reifyRecord(ctx *semantic.Context, ns *symboltable.Namespace, holder *ast.DeclHolder, orig *ast.TypeDecl) {
	if orig.Shape != ast.TypeDeclRecord || !orig.Name.IsGeneric() {
		return
	}
	sym, ok := ns.LookupLocal(orig.Name.Value)
	if !ok {
		return
	}
	rt, ok := sym.TypeDecl.(*types.RecordType)
	if !ok {
		return
	}
	requests := ctx.RecordInstantiations[rt]
	if len(requests) == 0 {
		return
	}

	existing := existingKeys(holder)
	for _, params := range requests {
		key := recordSpecialisationKey(params)
		if existing[key] {
			continue
		}

		clone := orig.Clone().(*ast.TypeDecl)
		specialised, ok := rt.WithParameters(params).(*types.RecordType)
		if !ok {
			continue
		}

		substNS := symboltable.NewNamespace(ns)
		substitution := make(map[string]any, len(orig.Name.TypeParams))
		for i, tp := range orig.Name.TypeParams {
			if i >= len(params) {
				break
			}
			substNS.Insert(ctx.Reporter, clone, tp, &symboltable.Symbol{Name: tp, TypeDecl: params[i]})
			substitution[tp] = params[i]
		}
		substNS.Insert(ctx.Reporter, clone, clone.Name.Value, &symboltable.Symbol{Name: clone.Name.Value, TypeDecl: specialised})

		holder.Specialisations = append(holder.Specialisations, &ast.SpecialisedDecl{Key: key, Decl: clone, Substitution: substitution})
		existing[key] = true
	}
}

func existingKeys(holder *ast.DeclHolder) map[string]bool {
	keys := make(map[string]bool, len(holder.Specialisations))
	for _, s := range holder.Specialisations {
		keys[s.Key] = true
	}
	return keys
}

// paramSubstitution finds the ParameterType a method scope bound for
// label and looks up its concrete substitution in sub.
func paramSubstitution(methodScope *symboltable.Namespace, label string, sub types.Specialisation) (*types.ParameterType, types.Type, bool) {
	tpSym, ok := methodScope.LookupLocal(label)
	if !ok {
		return nil, nil, false
	}
	pt, ok := tpSym.TypeDecl.(*types.ParameterType)
	if !ok {
		return nil, nil, false
	}
	concrete, ok := sub[pt]
	if !ok {
		return nil, nil, false
	}
	return pt, concrete, true
}

// defSpecialisationKey builds the ordered mangled-name tag for sub,
// following the method's declared type parameter order — the hashing
// key spec §4.6a uses to dedupe identical instantiations.
func defSpecialisationKey(typeParams []string, methodScope *symboltable.Namespace, sub types.Specialisation) (string, bool) {
	var sb strings.Builder
	for _, tp := range typeParams {
		_, concrete, ok := paramSubstitution(methodScope, tp, sub)
		if !ok {
			return "", false
		}
		sb.WriteString(concrete.MangledName())
		sb.WriteByte('_')
	}
	return sb.String(), true
}

func recordSpecialisationKey(params []types.TypeType) string {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteString(p.MangledName())
		sb.WriteByte('_')
	}
	return sb.String()
}
