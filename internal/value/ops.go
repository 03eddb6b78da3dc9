package value

import (
	"errors"
	"fmt"
	"math"

	"github.com/funvibe/semcore/internal/token"
)

var (
	// ErrDivisionByZero is returned for integer / and % with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupported is returned for operators with no constant semantics.
	ErrUnsupported = errors.New("unsupported constant operation")
)

// Apply folds a binary operator. Both operands must already carry the same kind;
// comparison operators return a Bool value, all others a value of that kind.
func Apply(op token.TokenType, a, b Value) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, fmt.Errorf("%w: operand kinds %s and %s differ", ErrUnsupported, a.Kind, b.Kind)
	}
	kind := a.Kind

	switch op {
	case token.EQ:
		return FromBool(a.Equal(b)), nil
	case token.NOT_EQ:
		return FromBool(!a.Equal(b)), nil
	case token.LT, token.GT, token.LTE, token.GTE:
		return compare(op, a, b)
	case token.POWER:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupported, op)
	}

	switch {
	case kind.IsFloat():
		return applyFloat(op, a, b)
	case kind.IsUnsigned():
		return applyUnsigned(op, a, b)
	case kind.IsSigned(), kind.IsChar():
		return applySigned(op, a, b)
	}
	return Value{}, fmt.Errorf("%w: %s on %s", ErrUnsupported, op, kind)
}

func compare(op token.TokenType, a, b Value) (Value, error) {
	var c int
	switch {
	case a.Kind.IsFloat():
		c = cmp3(a.f < b.f, a.f > b.f)
	case a.Kind.IsUnsigned():
		c = cmp3(a.u < b.u, a.u > b.u)
	case a.Kind.IsBool():
		return Value{}, fmt.Errorf("%w: %s on bool", ErrUnsupported, op)
	default:
		c = cmp3(a.i < b.i, a.i > b.i)
	}
	switch op {
	case token.LT:
		return FromBool(c < 0), nil
	case token.GT:
		return FromBool(c > 0), nil
	case token.LTE:
		return FromBool(c <= 0), nil
	default:
		return FromBool(c >= 0), nil
	}
}

func cmp3(less, greater bool) int {
	if less {
		return -1
	}
	if greater {
		return 1
	}
	return 0
}

func applyFloat(op token.TokenType, a, b Value) (Value, error) {
	var r float64
	switch op {
	case token.PLUS:
		r = a.f + b.f
	case token.MINUS:
		r = a.f - b.f
	case token.ASTERISK:
		r = a.f * b.f
	case token.SLASH:
		r = a.f / b.f
	case token.PERCENT:
		r = math.Mod(a.f, b.f)
	default:
		return Value{}, fmt.Errorf("%w: %s on %s", ErrUnsupported, op, a.Kind)
	}
	return FromFloat(a.Kind, r), nil
}

func applySigned(op token.TokenType, a, b Value) (Value, error) {
	var r int64
	switch op {
	case token.PLUS:
		r = a.i + b.i
	case token.MINUS:
		r = a.i - b.i
	case token.ASTERISK:
		r = a.i * b.i
	case token.SLASH:
		if b.i == 0 {
			return Value{}, ErrDivisionByZero
		}
		r = a.i / b.i
	case token.PERCENT:
		if b.i == 0 {
			return Value{}, ErrDivisionByZero
		}
		r = a.i % b.i
	case token.AMPERSAND:
		r = a.i & b.i
	case token.PIPE:
		r = a.i | b.i
	case token.CARET:
		r = a.i ^ b.i
	case token.LSHIFT:
		r = a.i << uint64(b.i)
	case token.RSHIFT:
		r = a.i >> uint64(b.i)
	default:
		return Value{}, fmt.Errorf("%w: %s on %s", ErrUnsupported, op, a.Kind)
	}
	return FromInt(a.Kind, r), nil
}

func applyUnsigned(op token.TokenType, a, b Value) (Value, error) {
	var r uint64
	switch op {
	case token.PLUS:
		r = a.u + b.u
	case token.MINUS:
		r = a.u - b.u
	case token.ASTERISK:
		r = a.u * b.u
	case token.SLASH:
		if b.u == 0 {
			return Value{}, ErrDivisionByZero
		}
		r = a.u / b.u
	case token.PERCENT:
		if b.u == 0 {
			return Value{}, ErrDivisionByZero
		}
		r = a.u % b.u
	case token.AMPERSAND:
		r = a.u & b.u
	case token.PIPE:
		r = a.u | b.u
	case token.CARET:
		r = a.u ^ b.u
	case token.LSHIFT:
		r = a.u << b.u
	case token.RSHIFT:
		r = a.u >> b.u
	default:
		return Value{}, fmt.Errorf("%w: %s on %s", ErrUnsupported, op, a.Kind)
	}
	return FromUint(a.Kind, r), nil
}

// ApplyUnary folds a prefix operator. The result keeps the operand's kind.
func ApplyUnary(op token.TokenType, a Value) (Value, error) {
	switch op {
	case token.MINUS:
		switch {
		case a.Kind.IsFloat():
			return FromFloat(a.Kind, -a.f), nil
		case a.Kind.IsUnsigned():
			return FromUint(a.Kind, -a.u), nil
		case a.Kind.IsBool():
			// one-bit two's complement negation is the identity
			return a, nil
		default:
			return FromInt(a.Kind, -a.i), nil
		}
	case token.BANG:
		switch {
		case a.Kind.IsBool():
			return FromBool(!a.b), nil
		case a.Kind.IsInteger():
			if a.IsZero() {
				return FromInt(a.Kind, 1), nil
			}
			return FromInt(a.Kind, 0), nil
		}
	case token.TILDE:
		switch {
		case a.Kind.IsUnsigned():
			return FromUint(a.Kind, ^a.u), nil
		case a.Kind.IsSigned():
			return FromInt(a.Kind, ^a.i), nil
		}
	}
	return Value{}, fmt.Errorf("%w: unary %s on %s", ErrUnsupported, op, a.Kind)
}
