package typesystem

// BaseType strips a Mutable wrapper.
func (t *Table) BaseType(id TypeID) TypeID {
	if typ := t.Get(id); typ != nil && typ.Kind == KindMutable {
		return typ.Base
	}
	return id
}

// Equivalent decides type equality.
// Nominal kinds compare by name, structural kinds recursively by shape.
// With ignoreMut, Mutable wrappers are stripped from both sides first.
func (t *Table) Equivalent(a, b TypeID, ignoreMut bool) bool {
	if ignoreMut {
		a = t.BaseType(a)
		b = t.BaseType(b)
	}
	if a == b {
		return a != NoType
	}
	ta, tb := t.Get(a), t.Get(b)
	if ta == nil || tb == nil {
		return false
	}
	if ta.Kind != tb.Kind {
		return false
	}

	switch ta.Kind {
	case KindPrimitive:
		// No implicit conversion here.
		return ta.Prim == tb.Prim
	case KindStruct, KindClass, KindVariant:
		return ta.Name == tb.Name
	case KindFunction:
		return t.Equivalent(ta.Params, tb.Params, ignoreMut) &&
			t.Equivalent(ta.Return, tb.Return, ignoreMut)
	case KindTuple, KindList:
		if len(ta.Elems) != len(tb.Elems) {
			return false
		}
		for i := range ta.Elems {
			if !t.Equivalent(ta.Elems[i], tb.Elems[i], ignoreMut) {
				return false
			}
		}
		return true
	case KindArray:
		return ta.Length == tb.Length && t.Equivalent(ta.Base, tb.Base, ignoreMut)
	case KindPointer, KindReference, KindMutable:
		return t.Equivalent(ta.Base, tb.Base, ignoreMut)
	case KindUnit, KindString:
		return true
	case KindMap:
		// TODO: compare key and value types once map literals are typed.
		return false
	default:
		return false
	}
}

// Compatible decides whether a value of type b may be used where a is required.
// It is currently equivalence; call sites use it where subtyping would apply.
func (t *Table) Compatible(a, b TypeID, ignoreMut bool) bool {
	return t.Equivalent(a, b, ignoreMut)
}

// Predicates on the base (mutability-stripped) type.

func (t *Table) PrimitiveOf(id TypeID) (PrimitiveKind, bool) {
	typ := t.Get(t.BaseType(id))
	if typ == nil || typ.Kind != KindPrimitive {
		return PrimInvalid, false
	}
	return typ.Prim, true
}

func (t *Table) IsPrimitive(id TypeID) bool {
	_, ok := t.PrimitiveOf(id)
	return ok
}

func (t *Table) IsBool(id TypeID) bool {
	p, ok := t.PrimitiveOf(id)
	return ok && p.IsBool()
}

func (t *Table) IsInteger(id TypeID) bool {
	p, ok := t.PrimitiveOf(id)
	return ok && p.IsInteger()
}

func (t *Table) IsUnit(id TypeID) bool      { return t.KindOf(t.BaseType(id)) == KindUnit }
func (t *Table) IsMutable(id TypeID) bool   { return t.KindOf(id) == KindMutable }
func (t *Table) IsList(id TypeID) bool      { return t.KindOf(id) == KindList }
func (t *Table) IsPointer(id TypeID) bool   { return t.KindOf(t.BaseType(id)) == KindPointer }
func (t *Table) IsReference(id TypeID) bool { return t.KindOf(t.BaseType(id)) == KindReference }
func (t *Table) IsFunction(id TypeID) bool  { return t.KindOf(t.BaseType(id)) == KindFunction }

// IsNamed reports struct, class and variant types.
func (t *Table) IsNamed(id TypeID) bool {
	return t.KindOf(t.BaseType(id)).IsNominal()
}

// IsAddress reports types whose values denote storage locations.
func (t *Table) IsAddress(id TypeID) bool {
	switch t.KindOf(t.BaseType(id)) {
	case KindPointer, KindReference, KindFunction:
		return true
	}
	return false
}

// Elements returns the element types of a tuple or list.
func (t *Table) Elements(id TypeID) []TypeID {
	typ := t.Get(t.BaseType(id))
	if typ == nil {
		return nil
	}
	switch typ.Kind {
	case KindTuple, KindList:
		return typ.Elems
	}
	return nil
}
