package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveBlock opens a Block scope and resolves the elements in order.
// Only the last element is in value position. An empty block is unit.
func (a *Analyzer) resolveBlock(c rctx, n *ast.BlockExpr) val {
	scope := a.symbols.NewScope(c.scope, symbols.ScopeBlock)
	bc := c.in(scope).with(inBlockBody)

	result := a.types.Unit()
	ok := true
	for i, el := range n.Elements {
		ec := bc
		if i < len(n.Elements)-1 {
			ec = bc.without(resolvingAssignment)
		}
		v := a.resolveExpr(ec, el)
		if !v.ok() {
			ok = false
			if a.strict {
				return failed
			}
			continue
		}
		result = v.typ
	}
	if !ok {
		return failed
	}
	return val{typ: result}
}

// resolveLet declares a block local. The declaration itself is unit.
func (a *Analyzer) resolveLet(c rctx, n *ast.LetExpr) val {
	if _, ok := a.resolveLocal(c.without(resolvingAssignment), n.Decl, false); !ok {
		return failed
	}
	return val{typ: a.types.Unit()}
}

// resolveDefer is only legal directly inside a block.
func (a *Analyzer) resolveDefer(c rctx, n *ast.DeferExpr) val {
	if !c.has(inBlockBody) {
		a.errorf(diagnostics.ErrInvalidContext, n.Token, "defer outside of a block")
		return failed
	}
	if v := a.resolveExpr(c.without(resolvingAssignment), n.Expr); !v.ok() {
		return failed
	}
	return val{typ: a.types.Unit()}
}

type branch struct {
	cond ast.Expr // nil for a trailing else
	body ast.Expr
}

// linearize flattens an if/elif/else chain into (condition, body) pairs.
func linearize(n *ast.IfExpr) []branch {
	var out []branch
	for n != nil {
		out = append(out, branch{cond: n.Condition, body: n.Body})
		switch e := n.Else.(type) {
		case *ast.IfExpr:
			n = e
		case nil:
			n = nil
		default:
			out = append(out, branch{body: e})
			n = nil
		}
	}
	return out
}

// resolveIf checks an if chain. As a statement every branch must be unit;
// when its value is consumed every branch must match the first branch.
func (a *Analyzer) resolveIf(c rctx, n *ast.IfExpr) val {
	target := typesystem.NoType
	if !c.has(resolvingAssignment) {
		target = a.types.Unit()
	}

	ok := true
	for _, br := range linearize(n) {
		if br.cond != nil {
			cv := a.resolveExpr(c.without(resolvingAssignment), br.cond)
			if !cv.ok() {
				ok = false
			} else if !a.types.IsBool(cv.typ) {
				a.errorf(diagnostics.ErrTypeMismatch, br.cond.GetToken(), a.typeName(a.types.Bool()), a.typeName(cv.typ))
				ok = false
			}
		}

		bv := a.resolveExpr(c, br.body)
		if !bv.ok() {
			ok = false
			continue
		}
		if !target.IsValid() {
			target = bv.typ
			continue
		}
		if !a.types.Compatible(target, bv.typ, true) {
			a.errorf(diagnostics.ErrTypeMismatch, tailToken(br.body), a.typeName(target), a.typeName(bv.typ))
			ok = false
		}
	}
	if !ok || !target.IsValid() {
		return failed
	}
	return val{typ: target}
}

// resolveWhile checks the condition and resolves the body under the LoopBody marker.
func (a *Analyzer) resolveWhile(c rctx, n *ast.WhileExpr) val {
	c = c.without(resolvingAssignment)
	cv := a.resolveExpr(c, n.Condition)
	ok := cv.ok()
	if ok && !a.types.IsBool(cv.typ) {
		a.errorf(diagnostics.ErrTypeMismatch, n.Condition.GetToken(), a.typeName(a.types.Bool()), a.typeName(cv.typ))
		ok = false
	}
	bv := a.resolveExpr(c.with(inLoopBody), n.Body)
	if !ok || !bv.ok() {
		return failed
	}
	return val{typ: bv.typ}
}

// resolveLoopControl types break and continue.
func (a *Analyzer) resolveLoopControl(c rctx, n ast.Expr, keyword string) val {
	if !c.has(inLoopBody) {
		a.errorf(diagnostics.ErrInvalidContext, n.GetToken(), keyword+" outside of a loop")
		return failed
	}
	return val{typ: a.types.Unit()}
}
