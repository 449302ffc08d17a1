package semantic

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/diagnostics"
	"github.com/acorn-lang/acornc/internal/types"
)

// Checker re-walks a file the Inferrer has already decorated, asserting
// the invariants inference was supposed to establish (spec §4.5). It
// never mutates the tree; its only output is diagnostics.
type Checker struct{}

// NewChecker returns a Checker ready to run.
func NewChecker() *Checker { return &Checker{} }

func (c *Checker) Name() string { return "check" }

func (c *Checker) Run(file *ast.SourceFile, ctx *Context) error {
	for _, holder := range file.Decls {
		c.checkDecl(ctx, holder.Main)
	}
	return nil
}

func (c *Checker) checkDecl(ctx *Context, node ast.Node) {
	switch n := node.(type) {
	case *ast.DeclHolder:
		c.checkDecl(ctx, n.Main)
	case *ast.Import:
		// Resolved by internal/units before this pass runs.
	case *ast.VarDecl:
		if n.Value != nil {
			c.checkExpr(ctx, n.Value)
		}
	case *ast.DefDecl:
		if n.Body != nil {
			c.checkBlock(ctx, n.Body)
		}
	case *ast.TypeDecl:
		// Field and alias-target type names are checked by the
		// inferrer's own resolution; nothing further to assert here.
	case *ast.ModuleDecl:
		c.checkBlock(ctx, n.Body)
	default:
		c.checkExpr(ctx, node)
	}
}

func (c *Checker) checkBlock(ctx *Context, block *ast.Block) {
	for _, stmt := range block.Statements {
		c.checkStmt(ctx, stmt)
	}
}

func (c *Checker) checkStmt(ctx *Context, node ast.Node) {
	switch n := node.(type) {
	case *ast.DeclHolder, *ast.Import, *ast.VarDecl, *ast.DefDecl, *ast.TypeDecl, *ast.ModuleDecl:
		c.checkDecl(ctx, node)
	case *ast.Let:
		c.checkExpr(ctx, n.Value)
	default:
		c.checkExpr(ctx, node)
	}
}

// checkExpr asserts has_type() on node, then recurses structurally into
// its children, checking assignment compatibility and selector field
// existence along the way (spec §4.5's three invariants).
func (c *Checker) checkExpr(ctx *Context, node ast.Node) {
	if node == nil {
		return
	}
	if node.ResolvedType() == nil {
		ctx.Reporter.Errorf(diagnostics.InternalError, node.Pos(), "", "%s has no resolved type after inference", node.Kind())
	}

	switch n := node.(type) {
	case *ast.Tuple:
		for _, e := range n.Elements {
			c.checkExpr(ctx, e)
		}
	case *ast.List:
		for _, e := range n.Elements {
			c.checkExpr(ctx, e)
		}
	case *ast.Dictionary:
		for _, e := range n.Entries {
			c.checkExpr(ctx, e.Key)
			c.checkExpr(ctx, e.Value)
		}
	case *ast.Selector:
		c.checkExpr(ctx, n.Operand)
		c.checkSelector(ctx, n)
	case *ast.Call:
		c.checkExpr(ctx, n.Operand)
		for _, p := range n.Positional {
			c.checkExpr(ctx, p)
		}
		for _, kw := range n.Keyword {
			c.checkExpr(ctx, kw.Value)
		}
	case *ast.CCall:
		for _, a := range n.Args {
			c.checkExpr(ctx, a)
		}
	case *ast.Cast:
		c.checkExpr(ctx, n.Operand)
	case *ast.Assignment:
		c.checkExpr(ctx, n.Target)
		c.checkExpr(ctx, n.Value)
		c.checkAssignmentCompatible(ctx, n)
	case *ast.While:
		c.checkExpr(ctx, n.Cond)
		c.checkBlock(ctx, n.Body)
	case *ast.If:
		c.checkExpr(ctx, n.Cond)
		c.checkBlock(ctx, n.Then)
		if n.Else != nil {
			c.checkBlock(ctx, n.Else)
		}
	case *ast.Return:
		if n.Value != nil {
			c.checkExpr(ctx, n.Value)
		}
	case *ast.Spawn:
		c.checkExpr(ctx, n.Call)
	case *ast.Switch:
		c.checkExpr(ctx, n.Subject)
		for _, cs := range n.Cases {
			c.checkExpr(ctx, cs.Pattern)
			c.checkBlock(ctx, cs.Body)
		}
		if n.Default != nil {
			c.checkBlock(ctx, n.Default)
		}
	case *ast.Let:
		c.checkExpr(ctx, n.Value)
	case *ast.Block:
		c.checkBlock(ctx, n)
	}
}

// checkSelector re-asserts field existence for a Record operand, the
// same rule the inferrer already applied — defence-in-depth per §4.5.
func (c *Checker) checkSelector(ctx *Context, n *ast.Selector) {
	operandType, _ := n.Operand.ResolvedType().(types.Type)
	rec, ok := operandType.(*types.Record)
	if !ok {
		return
	}
	if !rec.HasField(n.Field) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "%s has no field %q", rec.Name(), n.Field)
	}
}

func (c *Checker) checkAssignmentCompatible(ctx *Context, n *ast.Assignment) {
	target, _ := n.Target.ResolvedType().(types.Type)
	value, _ := n.Value.ResolvedType().(types.Type)
	if target == nil || value == nil {
		return
	}
	if !target.IsCompatible(value) {
		ctx.Reporter.Errorf(diagnostics.TypeMismatchError, n.Pos(), "", "cannot assign %s to %s", value.Name(), target.Name())
	}
}
