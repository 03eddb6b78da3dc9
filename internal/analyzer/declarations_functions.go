package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveFunction types a function declaration whose binding id is Resolving.
//
// The binding is resolved with the function type as soon as the signature is
// known, so the body may call the function recursively. The body is then
// resolved under the FunctionBody marker and checked against the declared return.
func (a *Analyzer) resolveFunction(c rctx, id symbols.BindingID, d *ast.FunctionDecl) bool {
	params := a.symbols.NewScope(c.scope, symbols.ScopeParam)
	a.symbols.Binding(id).MemberScope = params
	pc := c.in(params)

	var fields []symbols.Field
	var paramTypes []typesystem.TypeID
	ok := true
	for _, p := range d.Params {
		pid, pok := a.resolveLocal(pc, p, true)
		if !pok {
			ok = false
			continue
		}
		pt := a.symbols.Binding(pid).Type
		fields = append(fields, symbols.Field{Type: pt, Name: p.Name.Value, Default: p.Value, Binding: pid})
		paramTypes = append(paramTypes, pt)
	}
	ret, rok := a.resolveReturns(c, d.Returns)
	if !ok || !rok {
		return false
	}

	fnType := a.types.Function(paramTypes, ret)
	a.symbols.Binding(id).Fields = fields
	if err := a.symbols.Resolve(id, fnType, symbols.AddressAddressing, symbols.FunctionBinding); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, d.Name.Token, err.Error()))
		return false
	}

	if d.Body == nil {
		return true
	}
	body := a.resolveExpr(pc.with(inFunctionBody|resolvingAssignment), d.Body)
	if !body.ok() {
		return false
	}
	return a.checkReturn(d, ret, body)
}

// resolveReturns maps return type specs to unit, a single type or an interned list.
func (a *Analyzer) resolveReturns(c rctx, specs []ast.TypeSpec) (typesystem.TypeID, bool) {
	switch len(specs) {
	case 0:
		return a.types.Unit(), true
	case 1:
		t := a.resolveTypeSpec(c, specs[0])
		return t, t.IsValid()
	}
	elems, ok := a.resolveTypeSpecs(c, specs)
	if !ok {
		return typesystem.NoType, false
	}
	return a.types.List(elems...), true
}

func (a *Analyzer) checkReturn(d *ast.FunctionDecl, ret typesystem.TypeID, body val) bool {
	tok := tailToken(d.Body)
	if a.types.IsList(body.typ) && a.types.IsList(ret) {
		want, got := a.types.Elements(ret), a.types.Elements(body.typ)
		if len(want) != len(got) {
			a.errorf(diagnostics.ErrArityMismatch, tok, "'"+d.Name.Value+"' result", len(want), len(got))
			return false
		}
		for i := range want {
			if !a.types.Compatible(want[i], got[i], true) {
				a.errorf(diagnostics.ErrTypeMismatch, tok, a.typeName(want[i]), a.typeName(got[i]))
				return false
			}
		}
		return true
	}
	if !a.types.Compatible(ret, body.typ, true) {
		a.errorf(diagnostics.ErrTypeMismatch, tok, a.typeName(ret), a.typeName(body.typ))
		return false
	}
	return true
}

// tailToken is the token of the expression that produces a block's value.
func tailToken(e ast.Expr) token.Token {
	for {
		b, ok := e.(*ast.BlockExpr)
		if !ok || len(b.Elements) == 0 {
			return e.GetToken()
		}
		e = b.Elements[len(b.Elements)-1]
	}
}
