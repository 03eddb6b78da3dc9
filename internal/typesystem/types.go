package typesystem

// TypeID is a handle into a Table. Two interned types are equal iff their handles are equal.
type TypeID uint32

// NoType marks an absent or failed type.
const NoType TypeID = 0

// IsValid returns true for any handle other than NoType.
func (id TypeID) IsValid() bool { return id != NoType }

// ScopeRef and BindingRef are handles owned by the symbols package.
// They live here so nominal types can point at their member scope and bindings
// without an import cycle.
type ScopeRef uint32
type BindingRef uint32

// Kind is the discriminant of the closed Type variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindStruct
	KindClass
	KindVariant
	KindFunction
	KindTuple
	KindList
	KindArray
	KindPointer
	KindReference
	KindMutable
	KindUnit
	KindMap
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindVariant:
		return "variant"
	case KindFunction:
		return "function"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindMutable:
		return "mutable"
	case KindUnit:
		return "unit"
	case KindMap:
		return "map"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// IsNominal reports kinds compared by name rather than shape.
func (k Kind) IsNominal() bool {
	return k == KindStruct || k == KindClass || k == KindVariant
}

// IsStructural reports kinds that are canonicalized by shape.
func (k Kind) IsStructural() bool {
	switch k {
	case KindTuple, KindList, KindFunction, KindArray, KindPointer, KindReference, KindMutable, KindMap:
		return true
	}
	return false
}

// Type is one entry of the type arena. Which fields are meaningful depends on Kind:
//
//	Primitive          Prim
//	Struct/Class       Name, Scope, Members (ordered), Methods (class only)
//	Variant            Name, Scope, Cases
//	Function           Params (a tuple), Return (unit, a single type or a list)
//	Tuple/List         Elems
//	Array              Base, Length
//	Pointer/Reference  Base
//	Mutable            Base
//	Map                Base (key), Value
type Type struct {
	Kind    Kind
	Prim    PrimitiveKind
	Name    string
	Elems   []TypeID
	Base    TypeID
	Value   TypeID
	Params  TypeID
	Return  TypeID
	Length  int
	Size    int
	Scope   ScopeRef
	Members []BindingRef
	Methods map[string]BindingRef
	Cases   []string

	interned bool
}

// Interned reports whether this entry is the canonical instance of its shape.
func (t *Type) Interned() bool { return t.interned }
