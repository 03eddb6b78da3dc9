package typesystem

import "github.com/funvibe/semcore/internal/config"

// PrimitiveKind enumerates the sized scalar types.
type PrimitiveKind uint8

const (
	PrimInvalid PrimitiveKind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	Char
)

// AllPrimitives lists every valid primitive kind in declaration order.
var AllPrimitives = []PrimitiveKind{I8, I16, I32, I64, U8, U16, U32, U64, F32, F64, Bool, Char}

var primitiveNames = map[PrimitiveKind]string{
	I8:   config.I8TypeName,
	I16:  config.I16TypeName,
	I32:  config.I32TypeName,
	I64:  config.I64TypeName,
	U8:   config.U8TypeName,
	U16:  config.U16TypeName,
	U32:  config.U32TypeName,
	U64:  config.U64TypeName,
	F32:  config.F32TypeName,
	F64:  config.F64TypeName,
	Bool: config.BoolTypeName,
	Char: config.CharTypeName,
}

var primitivesByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, name := range primitiveNames {
		m[name] = k
	}
	return m
}()

// PrimitiveByName resolves a built-in type name ("i32", "bool", ...).
func PrimitiveByName(name string) (PrimitiveKind, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}

func (p PrimitiveKind) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return "<invalid>"
}

// Size in bytes.
func (p PrimitiveKind) Size() int {
	switch p {
	case I8, U8, Bool:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64:
		return 8
	case Char:
		return config.CharSize
	default:
		return 0
	}
}

func (p PrimitiveKind) IsInteger() bool {
	switch p {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	}
	return false
}

func (p PrimitiveKind) IsSigned() bool {
	switch p {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

func (p PrimitiveKind) IsUnsigned() bool {
	return p.IsInteger() && !p.IsSigned()
}

func (p PrimitiveKind) IsFloat() bool { return p == F32 || p == F64 }
func (p PrimitiveKind) IsBool() bool  { return p == Bool }
func (p PrimitiveKind) IsChar() bool  { return p == Char }
