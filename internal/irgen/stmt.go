package irgen

import (
	"github.com/acorn-lang/acornc/internal/ast"
	"github.com/acorn-lang/acornc/internal/symboltable"
)

// lowerBlock lowers every statement in n in order. Each statement is
// lowered through lowerStmt rather than lowerExpr directly: control-flow
// statements (While/If/Return/Let) have no operand-stack contract of
// their own, and a bare expression used as a statement (a Call for its
// side effect, a top-level Assignment) has its pushed value discarded.
func (e *Emitter) lowerBlock(ns *symboltable.Namespace, n *ast.Block) error {
	for _, stmt := range n.Statements {
		if err := e.lowerStmt(ns, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) lowerStmt(ns *symboltable.Namespace, node ast.Node) error {
	switch n := node.(type) {
	case *ast.Let:
		return e.lowerLet(ns, n)
	case *ast.While:
		return e.lowerWhile(ns, n)
	case *ast.If:
		return e.lowerIf(ns, n)
	case *ast.Return:
		return e.lowerReturn(ns, n)
	case *ast.Block:
		return e.lowerBlock(ns, n)
	default:
		if err := e.lowerExpr(ns, node); err != nil {
			return err
		}
		e.pop()
		return nil
	}
}

// lowerWhile emits the standard cond/body/exit three-block loop shape.
func (e *Emitter) lowerWhile(ns *symboltable.Namespace, n *ast.While) error {
	fn := e.currentFn
	condBB := e.builder.AppendBasicBlock(fn, "while.cond")
	bodyBB := e.builder.AppendBasicBlock(fn, "while.body")
	exitBB := e.builder.AppendBasicBlock(fn, "while.exit")

	e.br(condBB)

	e.setInsertPoint(condBB)
	if err := e.lowerExpr(ns, n.Cond); err != nil {
		return err
	}
	cond := e.pop()
	e.condBr(cond, bodyBB, exitBB)

	e.setInsertPoint(bodyBB)
	if err := e.lowerBlock(ns, n.Body); err != nil {
		return err
	}
	e.br(condBB)

	e.setInsertPoint(exitBB)
	return nil
}

// lowerIf emits then/else/merge blocks; a missing Else branches straight
// to the merge block.
func (e *Emitter) lowerIf(ns *symboltable.Namespace, n *ast.If) error {
	fn := e.currentFn
	if err := e.lowerExpr(ns, n.Cond); err != nil {
		return err
	}
	cond := e.pop()

	thenBB := e.builder.AppendBasicBlock(fn, "if.then")
	mergeBB := e.builder.AppendBasicBlock(fn, "if.merge")
	elseBB := mergeBB
	if n.Else != nil {
		elseBB = e.builder.AppendBasicBlock(fn, "if.else")
	}
	e.condBr(cond, thenBB, elseBB)

	e.setInsertPoint(thenBB)
	if err := e.lowerBlock(ns, n.Then); err != nil {
		return err
	}
	e.br(mergeBB)

	if n.Else != nil {
		e.setInsertPoint(elseBB)
		if err := e.lowerBlock(ns, n.Else); err != nil {
			return err
		}
		e.br(mergeBB)
	}

	e.setInsertPoint(mergeBB)
	return nil
}

// lowerReturn emits a bare ret void for an empty Return, a ret of the
// lowered value otherwise.
func (e *Emitter) lowerReturn(ns *symboltable.Namespace, n *ast.Return) error {
	if n.Value == nil {
		e.retVoid()
		return nil
	}
	if err := e.lowerExpr(ns, n.Value); err != nil {
		return err
	}
	e.ret(e.pop())
	return nil
}
