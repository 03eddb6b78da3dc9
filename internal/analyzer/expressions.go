package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

// resolveExpr types e and annotates it with the canonical type and, when
// folded, its constant.
func (a *Analyzer) resolveExpr(c rctx, e ast.Expr) val {
	var v val
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		v = a.resolveIntegerLiteral(n)
	case *ast.FloatLiteral:
		v = a.resolveFloatLiteral(n)
	case *ast.CharLiteral:
		k := value.FromChar(n.Value)
		v = val{typ: a.types.Primitive(typesystem.Char), constant: &k}
	case *ast.BoolLiteral:
		k := value.FromBool(n.Value)
		v = val{typ: a.types.Bool(), constant: &k}
	case *ast.Identifier:
		v = a.resolveIdentifier(c, n)
	case *ast.TupleExpr:
		v = a.resolveTuple(c, n)
	case *ast.ListExpr:
		v = a.resolveList(c, n)
	case *ast.ParenExpr:
		v = a.resolveParen(c, n)
	case *ast.SelectorExpr:
		v = a.resolveSelector(c, n)
	case *ast.TupleIndexExpr:
		v = a.resolveTupleIndex(c, n)
	case *ast.StructLiteral:
		v = a.resolveStructLiteral(c, n)
	case *ast.DeferExpr:
		v = a.resolveDefer(c, n)
	case *ast.IfExpr:
		v = a.resolveIf(c, n)
	case *ast.WhileExpr:
		v = a.resolveWhile(c, n)
	case *ast.BreakExpr:
		v = a.resolveLoopControl(c, n, "break")
	case *ast.ContinueExpr:
		v = a.resolveLoopControl(c, n, "continue")
	case *ast.AssignExpr:
		v = a.resolveAssign(c, n)
	case *ast.BlockExpr:
		v = a.resolveBlock(c, n)
	case *ast.LetExpr:
		v = a.resolveLet(c, n)
	case *ast.BinaryExpr:
		v = a.resolveBinary(c, n)
	case *ast.UnaryExpr:
		v = a.resolveUnary(c, n)
	case *ast.NamedArg:
		a.errorf(diagnostics.ErrInvalidContext, n.Token, "named argument '"+n.Name.Value+"' outside of a call or struct literal")
	default:
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, e.GetToken(), "internal error: unknown expression %T", e))
	}

	if !v.ok() {
		return failed
	}
	v.expr = e
	ann := e.Annotation()
	ann.Type = a.types.Canonical(v.typ)
	ann.Constant = v.constant
	return v
}

// literalKind resolves an optional literal suffix. An empty suffix selects def.
func (a *Analyzer) literalKind(n ast.Expr, suffix, def string, allowed func(typesystem.PrimitiveKind) bool) (typesystem.PrimitiveKind, bool) {
	name := suffix
	if name == "" {
		name = def
	}
	kind, ok := typesystem.PrimitiveByName(name)
	if !ok || !allowed(kind) {
		a.addError(diagnostics.Errorf(diagnostics.ErrTypeMismatch, n.GetToken(), "invalid literal suffix '%s'", suffix))
		return typesystem.PrimInvalid, false
	}
	return kind, true
}

func (a *Analyzer) resolveIntegerLiteral(n *ast.IntegerLiteral) val {
	kind, ok := a.literalKind(n, n.Suffix, config.DefaultIntLiteralType, func(k typesystem.PrimitiveKind) bool {
		return k.IsInteger() || k.IsFloat()
	})
	if !ok {
		return failed
	}
	k := value.FromUint(kind, n.Value)
	return val{typ: a.types.Primitive(kind), constant: &k}
}

func (a *Analyzer) resolveFloatLiteral(n *ast.FloatLiteral) val {
	kind, ok := a.literalKind(n, n.Suffix, config.DefaultFloatLiteralType, typesystem.PrimitiveKind.IsFloat)
	if !ok {
		return failed
	}
	k := value.FromFloat(kind, n.Value)
	return val{typ: a.types.Primitive(kind), constant: &k}
}

// resolveIdentifier reads a variable or function. Reading an immutable global
// or local with a folded initializer yields its constant.
func (a *Analyzer) resolveIdentifier(c rctx, n *ast.Identifier) val {
	id, ok := a.resolveName(c, n.Token, n.Value, false)
	if !ok {
		return failed
	}
	b := a.symbols.Binding(id)
	if !b.Kind.IsValue() {
		a.errorf(diagnostics.ErrNotAValue, n.Token, n.Value)
		return failed
	}
	return val{typ: b.Type, constant: b.Constant}
}

func (a *Analyzer) resolveElements(c rctx, elems []ast.Expr) ([]typesystem.TypeID, bool) {
	types := make([]typesystem.TypeID, 0, len(elems))
	for _, e := range elems {
		v := a.resolveExpr(c, e)
		if !v.ok() {
			return nil, false
		}
		types = append(types, v.typ)
	}
	return types, true
}

// resolveTuple interns a tuple of the element types; () is unit.
func (a *Analyzer) resolveTuple(c rctx, n *ast.TupleExpr) val {
	elems, ok := a.resolveElements(c.without(resolvingAssignment), n.Elements)
	if !ok {
		return failed
	}
	if len(elems) == 0 {
		return val{typ: a.types.Unit()}
	}
	return val{typ: a.types.Tuple(elems...)}
}

// resolveList builds an uninterned list type for a multi-value expression.
// The annotation receives its canonical counterpart.
func (a *Analyzer) resolveList(c rctx, n *ast.ListExpr) val {
	elems, ok := a.resolveElements(c.without(resolvingAssignment), n.Elements)
	if !ok {
		return failed
	}
	return val{typ: a.types.Add(typesystem.Type{Kind: typesystem.KindList, Elems: elems})}
}

// resolveSelector types a.b. The operand must be a struct or class value,
// or a variant type name selecting one of its cases.
func (a *Analyzer) resolveSelector(c rctx, n *ast.SelectorExpr) val {
	c = c.without(resolvingAssignment)
	if ident, ok := n.Operand.(*ast.Identifier); ok {
		if v, handled := a.resolveVariantCase(c, ident, n); handled {
			return v
		}
	}

	op := a.resolveExpr(c, n.Operand)
	if !op.ok() {
		return failed
	}
	typ := a.types.Get(a.types.BaseType(op.typ))
	if typ.Kind != typesystem.KindStruct && typ.Kind != typesystem.KindClass {
		a.errorf(diagnostics.ErrUnimplementedFeature, n.Field.Token,
			"selecting '"+n.Field.Value+"' on "+a.typeName(op.typ)+" (method call syntax)")
		return failed
	}

	structName := typ.Name
	fid, ok := a.symbols.LocalFind(typ.Scope, n.Field.Value)
	if !ok {
		a.addError(diagnostics.Errorf(diagnostics.ErrUnresolvedName, n.Field.Token,
			"'%s' has no field '%s'", structName, n.Field.Value))
		return failed
	}
	field := a.symbols.Binding(fid)
	switch {
	case field.Kind == symbols.FunctionBinding:
		a.errorf(diagnostics.ErrUnimplementedFeature, n.Field.Token, "method call '"+structName+"."+n.Field.Value+"'")
		return failed
	case field.State != symbols.Resolved:
		return failed
	}
	n.Field.Annotation().Type = field.Type
	return val{typ: field.Type}
}

// resolveVariantCase handles V.Member where V names a variant type.
// handled is false when the identifier is not a type name, so the selector
// is resolved as a field access instead.
func (a *Analyzer) resolveVariantCase(c rctx, ident *ast.Identifier, n *ast.SelectorExpr) (val, bool) {
	id, found := a.symbols.Find(c.scope, ident.Value)
	if !found || a.symbols.Binding(id).Decl == nil {
		return failed, false
	}
	switch a.symbols.Binding(id).Decl.(type) {
	case *ast.VariantDecl, *ast.StructDecl, *ast.ClassDecl:
	default:
		return failed, false
	}
	id, ok := a.resolveName(c, ident.Token, ident.Value, false)
	if !ok {
		return failed, true
	}
	b := a.symbols.Binding(id)
	if b.Kind != symbols.TypeBinding {
		return failed, false
	}
	if a.types.KindOf(b.Type) != typesystem.KindVariant {
		a.errorf(diagnostics.ErrNotAValue, ident.Token, ident.Value)
		return failed, true
	}
	if _, ok := a.resolveName(c.in(b.MemberScope), n.Field.Token, n.Field.Value, true); !ok {
		return failed, true
	}
	return val{typ: b.Type}, true
}

// resolveTupleIndex types a.N on a tuple operand.
func (a *Analyzer) resolveTupleIndex(c rctx, n *ast.TupleIndexExpr) val {
	op := a.resolveExpr(c.without(resolvingAssignment), n.Operand)
	if !op.ok() {
		return failed
	}
	base := a.types.BaseType(op.typ)
	if a.types.KindOf(base) != typesystem.KindTuple {
		a.errorf(diagnostics.ErrTypeMismatch, n.Token, "a tuple", a.typeName(op.typ))
		return failed
	}
	elems := a.types.Elements(base)
	if n.Index < 0 || n.Index >= len(elems) {
		a.errorf(diagnostics.ErrOutOfBoundsIndex, n.Token, n.Index, a.typeName(op.typ))
		return failed
	}
	return val{typ: elems[n.Index]}
}
