package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveAssign checks a = b and the destructuring form a, b = f().
// Only plain = is supported. The result is unit.
func (a *Analyzer) resolveAssign(c rctx, n *ast.AssignExpr) val {
	if n.Token.Type != token.ASSIGN {
		a.errorf(diagnostics.ErrUnimplementedFeature, n.Token, "compound assignment '"+n.Token.Lexeme+"'")
		return failed
	}
	if len(n.Targets) == 0 {
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, n.Token, "internal error: assignment without targets"))
		return failed
	}

	rhs := a.resolveExpr(c.with(resolvingAssignment), n.Value)

	targets := make([]val, len(n.Targets))
	ok := rhs.ok()
	for i, t := range n.Targets {
		targets[i] = a.resolveLvalue(c.without(resolvingAssignment), t)
		if !targets[i].ok() {
			ok = false
		}
	}
	if !ok {
		return failed
	}

	if len(targets) == 1 {
		if a.types.IsList(rhs.typ) {
			a.errorf(diagnostics.ErrArityMismatch, n.Value.GetToken(), "assignment", 1, len(a.types.Elements(rhs.typ)))
			return failed
		}
		if !a.checkAssignable(targets[0], rhs.typ, n.Value.GetToken()) {
			return failed
		}
		return val{typ: a.types.Unit()}
	}

	if !a.types.IsList(rhs.typ) {
		a.errorf(diagnostics.ErrArityMismatch, n.Value.GetToken(), "assignment", len(targets), 1)
		return failed
	}
	elems := a.types.Elements(rhs.typ)
	if len(elems) != len(targets) {
		a.errorf(diagnostics.ErrArityMismatch, n.Value.GetToken(), "assignment", len(targets), len(elems))
		return failed
	}
	for i, t := range targets {
		if !a.checkAssignable(t, elems[i], n.Targets[i].GetToken()) {
			ok = false
		}
	}
	if !ok {
		return failed
	}
	return val{typ: a.types.Unit()}
}

// resolveLvalue resolves an assignment target. References and compile-time
// constants are never assignable.
func (a *Analyzer) resolveLvalue(c rctx, e ast.Expr) val {
	v := a.resolveExpr(c, e)
	if !v.ok() {
		return failed
	}
	switch {
	case v.isConstant():
		a.errorf(diagnostics.ErrInvalidLvalue, e.GetToken(), "cannot assign to a constant")
		return failed
	case a.types.IsReference(v.typ):
		a.errorf(diagnostics.ErrInvalidLvalue, e.GetToken(), "cannot assign through a reference")
		return failed
	}
	return v
}

func (a *Analyzer) checkAssignable(target val, rhs typesystem.TypeID, rhsTok token.Token) bool {
	if !a.types.IsMutable(target.typ) {
		a.errorf(diagnostics.ErrInvalidLvalue, target.expr.GetToken(), "target of type "+a.typeName(target.typ)+" is not mutable")
		return false
	}
	if !a.types.Compatible(target.typ, rhs, true) {
		a.errorf(diagnostics.ErrTypeMismatch, rhsTok, a.typeName(target.typ), a.typeName(rhs))
		return false
	}
	return true
}
