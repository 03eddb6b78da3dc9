package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveStruct types a struct declaration: fields become Member-scope
// bindings and the interned struct type carries the ordered field list.
func (a *Analyzer) resolveStruct(c rctx, id symbols.BindingID, d *ast.StructDecl) bool {
	typ, ok := a.resolveRecord(c, id, typesystem.KindStruct, d.Name, d.Fields)
	if !ok {
		return false
	}
	return a.finishType(id, d.Name, typ)
}

// resolveClass types a class: a struct whose member scope also holds methods.
// The class binding is resolved before its methods so they can refer to it.
// Every method is declared before any is resolved, so a method body may call
// a sibling declared after it.
func (a *Analyzer) resolveClass(c rctx, id symbols.BindingID, d *ast.ClassDecl) bool {
	typ, ok := a.resolveRecord(c, id, typesystem.KindClass, d.Name, d.Fields)
	if !ok {
		return false
	}
	if !a.finishType(id, d.Name, typ) {
		return false
	}

	members := a.symbols.Binding(id).MemberScope
	var declared []symbols.BindingID
	for _, m := range d.Methods {
		mid, added := a.symbols.Declare(members, m.Name.Value, m)
		if !added {
			a.errorf(diagnostics.ErrDuplicateDeclaration, m.Name.Token, m.Name.Value)
			ok = false
			continue
		}
		declared = append(declared, mid)
	}

	methods := make(map[string]symbols.BindingID, len(declared))
	for _, mid := range declared {
		if a.symbols.Binding(mid).State == symbols.Unresolved && !a.resolveMethod(members, mid) {
			ok = false
		}
		if b := a.symbols.Binding(mid); b.State == symbols.Resolved {
			methods[b.Name] = mid
		} else {
			ok = false
		}
	}
	a.types.SetMethods(typ, methods)
	return ok
}

// resolveMethod drives one method binding of a class member scope through
// its state machine. It runs in declaration order or on demand when a sibling
// method refers to it first.
func (a *Analyzer) resolveMethod(members symbols.ScopeID, id symbols.BindingID) bool {
	b := a.symbols.Binding(id)
	fn, isFn := b.Decl.(*ast.FunctionDecl)
	if !isFn {
		return false
	}
	if err := a.symbols.Begin(id); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, fn.Name.Token, err.Error()))
		return false
	}
	a.logger.Debug("resolving method", "name", fn.Name.Value)
	if !a.resolveFunction(rctx{scope: members}, id, fn) {
		if a.symbols.Binding(id).State == symbols.Resolving {
			_ = a.symbols.Invalidate(id)
		}
		return false
	}
	return true
}

// resolveRecord resolves the fields shared by structs and classes and interns the type.
func (a *Analyzer) resolveRecord(c rctx, id symbols.BindingID, kind typesystem.Kind, name *ast.Identifier, fields []*ast.LocalDecl) (typesystem.TypeID, bool) {
	members := a.symbols.NewScope(c.scope, symbols.ScopeMember)
	// The nominal type exists before its fields so they can point back at it.
	typ := a.types.Intern(typesystem.Type{Kind: kind, Name: name.Value, Scope: members})
	b := a.symbols.Binding(id)
	b.MemberScope = members
	b.Type = typ
	mc := c.in(members)

	var list []symbols.Field
	var refs []typesystem.BindingRef
	size := 0
	ok := true
	for _, f := range fields {
		fid, fok := a.resolveLocal(mc, f, true)
		if !fok {
			ok = false
			continue
		}
		ft := a.symbols.Binding(fid).Type
		list = append(list, symbols.Field{Type: ft, Name: f.Name.Value, Default: f.Value, Binding: fid})
		refs = append(refs, fid)
		size += a.types.Size(ft)
	}
	if !ok {
		return typesystem.NoType, false
	}

	a.symbols.Binding(id).Fields = list
	t := a.types.Get(typ)
	t.Members = refs
	t.Size = size
	return typ, true
}

// resolveVariant types a variant declaration. Each member is a case binding
// in a Variant scope whose type is the variant itself.
func (a *Analyzer) resolveVariant(c rctx, id symbols.BindingID, d *ast.VariantDecl) bool {
	scope := a.symbols.NewScope(c.scope, symbols.ScopeVariant)
	a.symbols.Binding(id).MemberScope = scope

	var cases []string
	var refs []typesystem.BindingRef
	ok := true
	for _, m := range d.Members {
		mid, declared := a.symbols.Declare(scope, m.Value, d)
		if !declared {
			a.errorf(diagnostics.ErrDuplicateDeclaration, m.Token, m.Value)
			ok = false
			continue
		}
		cases = append(cases, m.Value)
		refs = append(refs, mid)
	}
	if !ok {
		return false
	}

	typ := a.types.Intern(typesystem.Type{
		Kind:    typesystem.KindVariant,
		Name:    d.Name.Value,
		Scope:   scope,
		Members: refs,
		Cases:   cases,
		Size:    config.VariantTagSize,
	})
	for _, mid := range refs {
		_ = a.symbols.Begin(mid)
		_ = a.symbols.Resolve(mid, typ, symbols.ValueAddressing, symbols.CaseBinding)
	}
	return a.finishType(id, d.Name, typ)
}

func (a *Analyzer) finishType(id symbols.BindingID, name *ast.Identifier, typ typesystem.TypeID) bool {
	if err := a.symbols.Resolve(id, typ, symbols.ValueAddressing, symbols.TypeBinding); err != nil {
		a.addError(diagnostics.NewError(diagnostics.ErrInternal, name.Token, err.Error()))
		return false
	}
	return true
}
