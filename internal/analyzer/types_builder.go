package analyzer

import (
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// resolveTypeSpec converts a written type to a canonical TypeID.
// Returns NoType after reporting a diagnostic.
func (a *Analyzer) resolveTypeSpec(c rctx, spec ast.TypeSpec) typesystem.TypeID {
	switch s := spec.(type) {
	case *ast.NamedType:
		id, ok := a.resolveName(c, s.Token, s.Name, false)
		if !ok {
			return typesystem.NoType
		}
		b := a.symbols.Binding(id)
		if b.Kind != symbols.TypeBinding {
			a.errorf(diagnostics.ErrNotAType, s.Token, s.Name)
			return typesystem.NoType
		}
		return b.Type

	case *ast.TupleType:
		elems, ok := a.resolveTypeSpecs(c, s.Elems)
		if !ok {
			return typesystem.NoType
		}
		if len(elems) == 0 {
			return a.types.Unit()
		}
		return a.types.Tuple(elems...)

	case *ast.ArrayType:
		if s.Length < 0 {
			a.errorf(diagnostics.ErrInvalidDeclaration, s.Token, "negative array length")
			return typesystem.NoType
		}
		base := a.resolveTypeSpec(c, s.Base)
		if !base.IsValid() {
			return typesystem.NoType
		}
		return a.types.Array(base, s.Length)

	case *ast.PointerType:
		return a.wrapIndirect(c, s.Base, a.types.Pointer)
	case *ast.ReferenceType:
		return a.wrapIndirect(c, s.Base, a.types.Reference)
	case *ast.MutableType:
		return a.wrapTypeSpec(c, s.Base, a.types.Mutable)

	case *ast.FunctionType:
		params, ok := a.resolveTypeSpecs(c, s.Params)
		if !ok {
			return typesystem.NoType
		}
		ret, ok := a.resolveReturns(c, s.Returns)
		if !ok {
			return typesystem.NoType
		}
		return a.types.Function(params, ret)

	case *ast.MapType:
		a.errorf(diagnostics.ErrUnimplementedFeature, s.Token, "map types")
	case *ast.SliceType:
		a.errorf(diagnostics.ErrUnimplementedFeature, s.Token, "dynamic arrays")
	case *ast.GenericType:
		a.errorf(diagnostics.ErrUnimplementedFeature, s.Token, "generic type '"+s.Name+"'")
	default:
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, spec.GetToken(), "internal error: unknown type spec %T", spec))
	}
	return typesystem.NoType
}

func (a *Analyzer) resolveTypeSpecs(c rctx, specs []ast.TypeSpec) ([]typesystem.TypeID, bool) {
	out := make([]typesystem.TypeID, 0, len(specs))
	for _, s := range specs {
		t := a.resolveTypeSpec(c, s)
		if !t.IsValid() {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}

func (a *Analyzer) wrapTypeSpec(c rctx, base ast.TypeSpec, wrap func(typesystem.TypeID) typesystem.TypeID) typesystem.TypeID {
	t := a.resolveTypeSpec(c, base)
	if !t.IsValid() {
		return typesystem.NoType
	}
	return wrap(t)
}

// wrapIndirect is wrapTypeSpec for pointers and references, whose base may
// name a struct or class that is still resolving its own fields.
func (a *Analyzer) wrapIndirect(c rctx, base ast.TypeSpec, wrap func(typesystem.TypeID) typesystem.TypeID) typesystem.TypeID {
	if named, ok := base.(*ast.NamedType); ok {
		if id, found := a.symbols.Find(c.scope, named.Name); found {
			b := a.symbols.Binding(id)
			switch b.Decl.(type) {
			case *ast.StructDecl, *ast.ClassDecl:
				if b.State == symbols.Resolving && b.Type.IsValid() {
					return wrap(b.Type)
				}
			}
		}
	}
	return a.wrapTypeSpec(c, base, wrap)
}
