// Package value implements the compile-time scalar used for constant folding.
//
// A Value is tagged with a primitive kind and always stores its payload
// normalized to that kind's width, so an i8 holding 300 reads back as 44.
package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/funvibe/semcore/internal/typesystem"
)

type Value struct {
	Kind typesystem.PrimitiveKind
	i    int64   // signed integers and char
	u    uint64  // unsigned integers
	f    float64 // floats
	b    bool
}

// FromInt builds a value of kind from a signed integer.
func FromInt(kind typesystem.PrimitiveKind, x int64) Value {
	return store(kind, x, uint64(x), float64(x), x != 0)
}

// FromUint builds a value of kind from an unsigned integer.
func FromUint(kind typesystem.PrimitiveKind, x uint64) Value {
	return store(kind, int64(x), x, float64(x), x != 0)
}

// FromFloat builds a value of kind from a float.
func FromFloat(kind typesystem.PrimitiveKind, x float64) Value {
	return store(kind, floatToInt(x), floatToUint(x), x, x != 0)
}

func FromBool(x bool) Value {
	return Value{Kind: typesystem.Bool, b: x}
}

func FromChar(r rune) Value {
	return Value{Kind: typesystem.Char, i: int64(r)}
}

// store writes the payload appropriate to kind, narrowing to its width.
func store(kind typesystem.PrimitiveKind, i int64, u uint64, f float64, b bool) Value {
	v := Value{Kind: kind}
	switch kind {
	case typesystem.I8:
		v.i = int64(int8(i))
	case typesystem.I16:
		v.i = int64(int16(i))
	case typesystem.I32:
		v.i = int64(int32(i))
	case typesystem.I64:
		v.i = i
	case typesystem.U8:
		v.u = uint64(uint8(u))
	case typesystem.U16:
		v.u = uint64(uint16(u))
	case typesystem.U32:
		v.u = uint64(uint32(u))
	case typesystem.U64:
		v.u = u
	case typesystem.F32:
		v.f = float64(float32(f))
	case typesystem.F64:
		v.f = f
	case typesystem.Bool:
		v.b = b
	case typesystem.Char:
		v.i = int64(int32(i))
	}
	return v
}

func floatToInt(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	return int64(f)
}

func floatToUint(f float64) uint64 {
	if math.IsNaN(f) || f < 0 {
		return uint64(floatToInt(f))
	}
	return uint64(f)
}

// Cast re-reads v under its own kind and re-stores it under kind.
// Narrowing and widening follow Go conversion rules; overflow is not diagnosed.
func (v Value) Cast(kind typesystem.PrimitiveKind) Value {
	if v.Kind == kind {
		return v
	}
	switch {
	case v.Kind.IsFloat():
		return FromFloat(kind, v.f)
	case v.Kind.IsUnsigned():
		return FromUint(kind, v.u)
	case v.Kind.IsBool():
		if v.b {
			return FromInt(kind, 1)
		}
		return FromInt(kind, 0)
	default:
		// signed integers and char
		return FromInt(kind, v.i)
	}
}

// Int returns the payload as a signed integer.
func (v Value) Int() int64 {
	return v.Cast(typesystem.I64).i
}

// Uint returns the payload as an unsigned integer.
func (v Value) Uint() uint64 {
	return v.Cast(typesystem.U64).u
}

// Float returns the payload as a float64.
func (v Value) Float() float64 {
	return v.Cast(typesystem.F64).f
}

// Bool returns the payload as a boolean (non-zero is true).
func (v Value) Bool() bool {
	return v.Cast(typesystem.Bool).b
}

// IsZero reports a zero payload.
func (v Value) IsZero() bool {
	switch {
	case v.Kind.IsFloat():
		return v.f == 0
	case v.Kind.IsUnsigned():
		return v.u == 0
	case v.Kind.IsBool():
		return !v.b
	default:
		return v.i == 0
	}
}

// Equal compares kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch {
	case v.Kind.IsFloat():
		bits := 64
		if v.Kind == typesystem.F32 {
			bits = 32
		}
		return strconv.FormatFloat(v.f, 'g', -1, bits)
	case v.Kind.IsUnsigned():
		return strconv.FormatUint(v.u, 10)
	case v.Kind.IsBool():
		return strconv.FormatBool(v.b)
	case v.Kind.IsChar():
		return strconv.QuoteRune(rune(v.i))
	case v.Kind.IsSigned():
		return strconv.FormatInt(v.i, 10)
	default:
		return "<invalid>"
	}
}

// GoString includes the kind, for test failure messages.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.Kind, v.String())
}
