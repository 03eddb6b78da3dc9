package typesystem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/semcore/internal/config"
)

// Table is the type arena. Entries are never freed; a candidate that turns out to
// duplicate an existing shape is simply not stored.
type Table struct {
	types    []Type
	interned map[string]TypeID
	prims    map[PrimitiveKind]TypeID
	unit     TypeID
}

// NewTable creates a table pre-populated with the primitive types and unit.
func NewTable() *Table {
	t := &Table{
		types:    make([]Type, 1, 64), // slot 0 is NoType
		interned: make(map[string]TypeID),
		prims:    make(map[PrimitiveKind]TypeID, len(AllPrimitives)),
	}
	for _, p := range AllPrimitives {
		t.prims[p] = t.Intern(Type{Kind: KindPrimitive, Prim: p})
	}
	t.unit = t.Intern(Type{Kind: KindUnit})
	return t
}

// Len returns the number of stored entries (canonical and uninterned).
func (t *Table) Len() int { return len(t.types) - 1 }

// Get returns the entry for id, or nil for NoType and out-of-range handles.
func (t *Table) Get(id TypeID) *Type {
	if id == NoType || int(id) >= len(t.types) {
		return nil
	}
	return &t.types[id]
}

// KindOf returns the kind of id, KindInvalid for NoType.
func (t *Table) KindOf(id TypeID) Kind {
	if typ := t.Get(id); typ != nil {
		return typ.Kind
	}
	return KindInvalid
}

func (t *Table) Primitive(p PrimitiveKind) TypeID { return t.prims[p] }
func (t *Table) Unit() TypeID                      { return t.unit }
func (t *Table) Bool() TypeID                      { return t.prims[Bool] }

// Intern returns the canonical instance for candidate's shape, storing candidate
// when no instance exists yet. Nominal kinds are keyed by kind and name only.
func (t *Table) Intern(candidate Type) TypeID {
	t.canonicalizeChildren(&candidate)
	t.fillSize(&candidate)
	key := t.key(&candidate)
	if id, ok := t.interned[key]; ok {
		return id
	}
	candidate.interned = true
	id := t.store(candidate)
	t.interned[key] = id
	return id
}

// Add stores candidate without interning it. Multi-value lists built while
// resolving an expression are added this way and canonicalized later.
func (t *Table) Add(candidate Type) TypeID {
	t.fillSize(&candidate)
	return t.store(candidate)
}

// Canonical returns the interned counterpart of id, interning its shape if needed.
func (t *Table) Canonical(id TypeID) TypeID {
	typ := t.Get(id)
	if typ == nil || typ.interned {
		return id
	}
	return t.Intern(*typ)
}

// Interned returns every canonical structural type, in creation order.
func (t *Table) Interned() []TypeID {
	var ids []TypeID
	for i := 1; i < len(t.types); i++ {
		if t.types[i].interned && t.types[i].Kind.IsStructural() {
			ids = append(ids, TypeID(i))
		}
	}
	return ids
}

func (t *Table) store(typ Type) TypeID {
	t.types = append(t.types, typ)
	return TypeID(len(t.types) - 1)
}

func (t *Table) canonicalizeChildren(typ *Type) {
	if !typ.Kind.IsStructural() {
		return
	}
	if len(typ.Elems) > 0 {
		elems := make([]TypeID, len(typ.Elems))
		for i, e := range typ.Elems {
			elems[i] = t.Canonical(e)
		}
		typ.Elems = elems
	}
	typ.Base = t.Canonical(typ.Base)
	typ.Value = t.Canonical(typ.Value)
	typ.Params = t.Canonical(typ.Params)
	typ.Return = t.Canonical(typ.Return)
}

// fillSize computes the size of structural kinds. Nominal sizes are supplied by the caller.
func (t *Table) fillSize(typ *Type) {
	switch typ.Kind {
	case KindPrimitive:
		typ.Size = typ.Prim.Size()
	case KindTuple, KindList:
		size := 0
		for _, e := range typ.Elems {
			size += t.Size(e)
		}
		typ.Size = size
	case KindArray:
		typ.Size = t.Size(typ.Base) * typ.Length
	case KindPointer, KindReference, KindFunction:
		typ.Size = config.PointerSize
	case KindMutable:
		typ.Size = t.Size(typ.Base)
	case KindUnit:
		typ.Size = 0
	}
}

func (t *Table) key(typ *Type) string {
	var sb strings.Builder
	sb.WriteString(typ.Kind.String())
	switch typ.Kind {
	case KindPrimitive:
		sb.WriteString(":" + typ.Prim.String())
	case KindStruct, KindClass, KindVariant:
		sb.WriteString(":" + typ.Name)
	case KindTuple, KindList:
		sb.WriteByte('(')
		for i, e := range typ.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(e)))
		}
		sb.WriteByte(')')
	case KindFunction:
		fmt.Fprintf(&sb, "(%d)->%d", typ.Params, typ.Return)
	case KindArray:
		fmt.Fprintf(&sb, "[%d]%d", typ.Length, typ.Base)
	case KindPointer, KindReference, KindMutable:
		fmt.Fprintf(&sb, "(%d)", typ.Base)
	case KindMap:
		fmt.Fprintf(&sb, "[%d]%d", typ.Base, typ.Value)
	}
	return sb.String()
}

// Size in bytes of id; 0 for NoType.
func (t *Table) Size(id TypeID) int {
	if typ := t.Get(id); typ != nil {
		return typ.Size
	}
	return 0
}

// Constructors for structural kinds. All return canonical instances.

func (t *Table) Tuple(elems ...TypeID) TypeID {
	return t.Intern(Type{Kind: KindTuple, Elems: elems})
}

func (t *Table) List(elems ...TypeID) TypeID {
	return t.Intern(Type{Kind: KindList, Elems: elems})
}

func (t *Table) Array(base TypeID, length int) TypeID {
	return t.Intern(Type{Kind: KindArray, Base: base, Length: length})
}

func (t *Table) Pointer(base TypeID) TypeID {
	return t.Intern(Type{Kind: KindPointer, Base: base})
}

func (t *Table) Reference(base TypeID) TypeID {
	return t.Intern(Type{Kind: KindReference, Base: base})
}

// Mutable wraps base; wrapping an already mutable type returns it unchanged.
func (t *Table) Mutable(base TypeID) TypeID {
	if t.KindOf(base) == KindMutable {
		return base
	}
	return t.Intern(Type{Kind: KindMutable, Base: base})
}

// Function builds a function type from parameter types and a return type.
func (t *Table) Function(params []TypeID, ret TypeID) TypeID {
	return t.Intern(Type{Kind: KindFunction, Params: t.Tuple(params...), Return: ret})
}

// String renders id in source syntax.
func (t *Table) String(id TypeID) string {
	typ := t.Get(id)
	if typ == nil {
		return "<none>"
	}
	switch typ.Kind {
	case KindPrimitive:
		return typ.Prim.String()
	case KindStruct, KindClass, KindVariant:
		return typ.Name
	case KindUnit:
		return config.UnitTypeName
	case KindTuple:
		return "(" + t.join(typ.Elems) + ")"
	case KindList:
		return "[" + t.join(typ.Elems) + "]"
	case KindFunction:
		return "fn" + t.String(typ.Params) + " -> " + t.String(typ.Return)
	case KindArray:
		return fmt.Sprintf("[%d]%s", typ.Length, t.String(typ.Base))
	case KindPointer:
		return "*" + t.String(typ.Base)
	case KindReference:
		return "&" + t.String(typ.Base)
	case KindMutable:
		return "mut " + t.String(typ.Base)
	case KindMap:
		return fmt.Sprintf("map[%s]%s", t.String(typ.Base), t.String(typ.Value))
	case KindString:
		return "string"
	default:
		return "<invalid>"
	}
}

func (t *Table) join(ids []TypeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = t.String(id)
	}
	return strings.Join(parts, ", ")
}

// SetMethods attaches the method map of a class type.
func (t *Table) SetMethods(id TypeID, methods map[string]BindingRef) {
	if typ := t.Get(id); typ != nil && typ.Kind == KindClass {
		typ.Methods = methods
	}
}
