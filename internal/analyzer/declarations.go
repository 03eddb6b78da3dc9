package analyzer

import (
	"fmt"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

// declareTopLevel registers the name of a top-level declaration as Unresolved.
func (a *Analyzer) declareTopLevel(decl ast.Decl) {
	switch decl.(type) {
	case *ast.GlobalDecl, *ast.StructDecl, *ast.ClassDecl, *ast.VariantDecl, *ast.FunctionDecl:
	default:
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, decl.GetToken(),
			"internal error: %T is not a top-level declaration", decl))
		return
	}
	name := decl.DeclName()
	id, ok := a.symbols.Declare(a.module, name.Value, decl)
	if !ok {
		a.errorf(diagnostics.ErrDuplicateDeclaration, name.Token, name.Value)
		return
	}
	a.order = append(a.order, id)
}

// resolveTopLevel drives one module binding through its state machine.
func (a *Analyzer) resolveTopLevel(id symbols.BindingID) bool {
	b := a.symbols.Binding(id)
	if err := a.symbols.Begin(id); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, b.Decl.GetToken(), err.Error()))
		return false
	}
	name := b.Name
	a.logger.Debug("resolving declaration", "name", name)

	c := rctx{scope: a.module}
	var ok bool
	switch d := b.Decl.(type) {
	case *ast.GlobalDecl:
		ok = a.resolveGlobal(c, id, d)
	case *ast.StructDecl:
		ok = a.resolveStruct(c, id, d)
	case *ast.ClassDecl:
		ok = a.resolveClass(c, id, d)
	case *ast.VariantDecl:
		ok = a.resolveVariant(c, id, d)
	case *ast.FunctionDecl:
		ok = a.resolveFunction(c, id, d)
	default:
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, b.Decl.GetToken(),
			"internal error: cannot resolve %T at module level", b.Decl))
	}

	if !ok {
		// Functions are resolved before their body; a failing body leaves the signature in place.
		if a.symbols.Binding(id).State == symbols.Resolving {
			_ = a.symbols.Invalidate(id)
		}
		return false
	}
	a.logger.Debug("resolved declaration", "name", name, "type", a.typeName(a.symbols.Binding(id).Type))
	return true
}

// resolveName finds name from c.scope outward, or only in c.scope when local is set.
// A module binding or class method that is still Unresolved is resolved on
// demand. Any other
// binding that is not Resolved is part of a cycle.
func (a *Analyzer) resolveName(c rctx, tok token.Token, name string, local bool) (symbols.BindingID, bool) {
	var id symbols.BindingID
	var scope symbols.ScopeID
	var found bool
	if local {
		id, found = a.symbols.LocalFind(c.scope, name)
		scope = c.scope
	} else {
		id, scope, found = a.symbols.FindWithScope(c.scope, name)
	}
	if !found {
		a.errorf(diagnostics.ErrUnresolvedName, tok, name)
		return symbols.NoBinding, false
	}

	switch a.symbols.Binding(id).State {
	case symbols.Resolved:
		return id, true
	case symbols.Invalid:
		// Already reported where the declaration failed.
		return symbols.NoBinding, false
	case symbols.Unresolved:
		if scope == a.module {
			a.logger.Debug("forward reference", "name", name, "pos", tok.Pos())
			before := a.sink.Len()
			if !a.resolveTopLevel(id) {
				return symbols.NoBinding, false
			}
			if a.symbols.Binding(id).State != symbols.Resolved {
				if a.sink.Len() == before {
					a.addError(diagnostics.Errorf(diagnostics.ErrInternal, tok,
						"internal error: '%s' did not resolve", name))
				}
				return symbols.NoBinding, false
			}
			return id, true
		}
		if a.symbols.Scope(scope).Kind == symbols.ScopeMember {
			if _, isMethod := a.symbols.Binding(id).Decl.(*ast.FunctionDecl); isMethod {
				if !a.resolveMethod(scope, id) {
					return symbols.NoBinding, false
				}
				return id, true
			}
		}
	}
	a.errorf(diagnostics.ErrCyclicReference, tok, name)
	return symbols.NoBinding, false
}

// resolveGlobal types a module-level variable.
func (a *Analyzer) resolveGlobal(c rctx, id symbols.BindingID, d *ast.GlobalDecl) bool {
	typ, constant, ok := a.resolveVariable(c, d.Name, d.Type, d.Value)
	if !ok {
		return false
	}
	if err := a.symbols.Resolve(id, typ, symbols.AddressingOf(a.types, typ), symbols.VariableBinding); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, d.Name.Token, err.Error()))
		return false
	}
	a.symbols.Binding(id).Constant = constant
	return true
}

// resolveVariable applies the rule shared by globals and locals: a type
// annotation, an initializer, or both, which must then be compatible ignoring
// mutability. The initializer's type is used, wrapped in mut when the
// annotation is mutable. The folded initializer is returned for immutable types.
func (a *Analyzer) resolveVariable(c rctx, name *ast.Identifier, spec ast.TypeSpec, init ast.Expr) (typesystem.TypeID, *value.Value, bool) {
	if spec == nil && init == nil {
		a.errorf(diagnostics.ErrInvalidDeclaration, name.Token,
			fmt.Sprintf("'%s' needs a type annotation or an initializer", name.Value))
		return typesystem.NoType, nil, false
	}

	declared := typesystem.NoType
	if spec != nil {
		declared = a.resolveTypeSpec(c, spec)
		if !declared.IsValid() {
			return typesystem.NoType, nil, false
		}
	}
	if init == nil {
		return declared, nil, true
	}

	v := a.resolveExpr(c.with(resolvingAssignment), init)
	if !v.ok() {
		return typesystem.NoType, nil, false
	}
	if a.types.IsUnit(v.typ) {
		a.errorf(diagnostics.ErrTypeMismatch, init.GetToken(), "a value", a.typeName(v.typ))
		return typesystem.NoType, nil, false
	}
	if a.types.IsList(v.typ) {
		a.errorf(diagnostics.ErrArityMismatch, init.GetToken(), "initializer of '"+name.Value+"'", 1, len(a.types.Elements(v.typ)))
		return typesystem.NoType, nil, false
	}

	typ := v.typ
	if declared.IsValid() {
		if !a.types.Compatible(declared, v.typ, true) {
			a.errorf(diagnostics.ErrTypeMismatch, init.GetToken(), a.typeName(declared), a.typeName(v.typ))
			return typesystem.NoType, nil, false
		}
		if a.types.IsMutable(declared) {
			typ = a.types.Mutable(v.typ)
		}
	}

	var constant *value.Value
	if v.isConstant() && !a.types.IsMutable(typ) {
		constant = v.constant
	}
	return typ, constant, true
}

// resolveLocal declares and types a block local, struct field or function
// parameter in c.scope. Field and parameter initializers are defaults and do
// not make the binding a constant.
func (a *Analyzer) resolveLocal(c rctx, d *ast.LocalDecl, isDefault bool) (symbols.BindingID, bool) {
	id, ok := a.symbols.Declare(c.scope, d.Name.Value, d)
	if !ok {
		a.errorf(diagnostics.ErrDuplicateDeclaration, d.Name.Token, d.Name.Value)
		return symbols.NoBinding, false
	}
	_ = a.symbols.Begin(id)

	typ, constant, ok := a.resolveVariable(c, d.Name, d.Type, d.Value)
	if !ok {
		_ = a.symbols.Invalidate(id)
		return id, false
	}
	if err := a.symbols.Resolve(id, typ, symbols.AddressingOf(a.types, typ), symbols.VariableBinding); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, d.Name.Token, err.Error()))
		return id, false
	}
	if !isDefault {
		a.symbols.Binding(id).Constant = constant
	}
	return id, true
}
