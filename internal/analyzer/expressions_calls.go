package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveParen types postfix application: a call when the operand is a
// function, indexing when it is an array.
func (a *Analyzer) resolveParen(c rctx, n *ast.ParenExpr) val {
	c = c.without(resolvingAssignment)
	op := a.resolveExpr(c, n.Operand)
	if !op.ok() {
		return failed
	}
	base := a.types.BaseType(op.typ)
	switch a.types.KindOf(base) {
	case typesystem.KindFunction:
		return a.resolveCall(c, n, base)
	case typesystem.KindArray:
		return a.resolveIndex(c, n, base)
	}
	a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token,
		"invalid operator: cannot apply () to %s", a.typeName(op.typ)))
	return failed
}

// resolveIndex types arr(i). A constant index is bounds-checked.
func (a *Analyzer) resolveIndex(c rctx, n *ast.ParenExpr, arr typesystem.TypeID) val {
	if len(n.Args) != 1 {
		a.errorf(diagnostics.ErrArityMismatch, n.Token, "array index", 1, len(n.Args))
		return failed
	}
	idx := a.resolveExpr(c, n.Args[0])
	if !idx.ok() {
		return failed
	}
	if !a.types.IsInteger(idx.typ) {
		a.errorf(diagnostics.ErrTypeMismatch, n.Args[0].GetToken(), "an integer index", a.typeName(idx.typ))
		return failed
	}
	at := a.types.Get(arr)
	base, length := at.Base, at.Length
	if idx.isConstant() {
		i := idx.constant.Int()
		p, _ := a.types.PrimitiveOf(idx.typ)
		if p.IsUnsigned() {
			if u := idx.constant.Uint(); u >= uint64(length) {
				a.errorf(diagnostics.ErrOutOfBoundsIndex, n.Args[0].GetToken(), int64(u), a.typeName(arr))
				return failed
			}
		} else if i < 0 || i >= int64(length) {
			a.errorf(diagnostics.ErrOutOfBoundsIndex, n.Args[0].GetToken(), i, a.typeName(arr))
			return failed
		}
	}
	return val{typ: base}
}

// resolveCall checks the arguments of a call against the callee's parameters.
// Arguments bind positionally or by name; parameters left unbound must have a default.
func (a *Analyzer) resolveCall(c rctx, n *ast.ParenExpr, fn typesystem.TypeID) val {
	ft := a.types.Get(fn)
	params := a.types.Elements(ft.Params)
	ret := ft.Return

	name := "function"
	callee := symbols.NoBinding
	if ident, ok := n.Operand.(*ast.Identifier); ok {
		name = "'" + ident.Value + "'"
		if id, found := a.symbols.Find(c.scope, ident.Value); found && a.symbols.Binding(id).Kind == symbols.FunctionBinding {
			callee = id
		}
	}
	paramIndex := func(param string) int {
		if callee == symbols.NoBinding {
			return -1
		}
		return a.symbols.Binding(callee).FieldIndex(param)
	}

	bound := make([]bool, len(params))
	next := 0
	ok := true
	for _, arg := range n.Args {
		idx := -1
		expr := arg
		if named, isNamed := arg.(*ast.NamedArg); isNamed {
			idx = paramIndex(named.Name.Value)
			if idx < 0 {
				a.addError(diagnostics.Errorf(diagnostics.ErrUnresolvedName, named.Name.Token,
					"%s has no parameter '%s'", name, named.Name.Value))
				ok = false
				continue
			}
			if bound[idx] {
				a.errorf(diagnostics.ErrDoubleBinding, named.Name.Token, named.Name.Value)
				ok = false
				continue
			}
			expr = named.Value
		} else {
			for next < len(params) && bound[next] {
				next++
			}
			if next >= len(params) {
				a.errorf(diagnostics.ErrArityMismatch, arg.GetToken(), name, len(params), len(n.Args))
				return failed
			}
			idx = next
		}
		bound[idx] = true

		v := a.resolveExpr(c, expr)
		if !v.ok() {
			ok = false
			continue
		}
		if named, isNamed := arg.(*ast.NamedArg); isNamed {
			named.Annotation().Type = expr.Annotation().Type
		}
		if a.types.IsUnit(v.typ) {
			a.errorf(diagnostics.ErrTypeMismatch, expr.GetToken(), a.typeName(params[idx]), a.typeName(v.typ))
			ok = false
			continue
		}
		if !a.types.Equivalent(params[idx], v.typ, true) {
			a.errorf(diagnostics.ErrTypeMismatch, expr.GetToken(), a.typeName(params[idx]), a.typeName(v.typ))
			ok = false
		}
	}
	if !ok {
		return failed
	}

	var fields []symbols.Field
	if callee != symbols.NoBinding {
		fields = a.symbols.Binding(callee).Fields
	}
	for i, isBound := range bound {
		if !isBound && (i >= len(fields) || fields[i].Default == nil) {
			a.errorf(diagnostics.ErrArityMismatch, n.Token, name, len(params), len(n.Args))
			return failed
		}
	}
	return val{typ: ret}
}

// resolveStructLiteral types S { a, name = b }. Named initializers match
// fields by name, the others consume unset fields in order, and fields left
// unset take their declared default.
func (a *Analyzer) resolveStructLiteral(c rctx, n *ast.StructLiteral) val {
	c = c.without(resolvingAssignment)
	id, ok := a.resolveName(c, n.Name.Token, n.Name.Value, false)
	if !ok {
		return failed
	}
	sb := a.symbols.Binding(id)
	if sb.Kind != symbols.TypeBinding {
		a.errorf(diagnostics.ErrNotAType, n.Name.Token, n.Name.Value)
		return failed
	}
	structType := sb.Type
	if k := a.types.KindOf(structType); k != typesystem.KindStruct && k != typesystem.KindClass {
		a.errorf(diagnostics.ErrTypeMismatch, n.Name.Token, "a struct", a.typeName(structType))
		return failed
	}
	fields := sb.Fields

	set := make([]bool, len(fields))
	next := 0
	ok = true
	for _, init := range n.Inits {
		idx := -1
		expr := init
		if named, isNamed := init.(*ast.NamedArg); isNamed {
			idx = a.symbols.Binding(id).FieldIndex(named.Name.Value)
			if idx < 0 {
				a.addError(diagnostics.Errorf(diagnostics.ErrUnresolvedName, named.Name.Token,
					"'%s' has no field '%s'", n.Name.Value, named.Name.Value))
				ok = false
				continue
			}
			if set[idx] {
				a.errorf(diagnostics.ErrDoubleBinding, named.Name.Token, named.Name.Value)
				ok = false
				continue
			}
			expr = named.Value
		} else {
			for next < len(fields) && set[next] {
				next++
			}
			if next >= len(fields) {
				a.errorf(diagnostics.ErrArityMismatch, init.GetToken(), "'"+n.Name.Value+"'", len(fields), len(n.Inits))
				return failed
			}
			idx = next
		}
		set[idx] = true

		v := a.resolveExpr(c, expr)
		if !v.ok() {
			ok = false
			continue
		}
		if named, isNamed := init.(*ast.NamedArg); isNamed {
			named.Annotation().Type = expr.Annotation().Type
		}
		if !a.types.Compatible(fields[idx].Type, v.typ, true) {
			a.errorf(diagnostics.ErrTypeMismatch, expr.GetToken(), a.typeName(fields[idx].Type), a.typeName(v.typ))
			ok = false
		}
	}

	for i, f := range fields {
		if set[i] {
			continue
		}
		if f.Default == nil {
			a.errorf(diagnostics.ErrMissingFieldInitializer, n.Name.Token, f.Name, n.Name.Value)
			ok = false
		}
	}
	if !ok {
		return failed
	}
	return val{typ: structType}
}
