package analyzer

import (
	"errors"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

type opClass uint8

const (
	opInvalid    opClass = iota
	opArithmetic         // + - * / % **
	opBitwise            // & | ^ << >>
	opOrdering           // < > <= >=
	opEquality           // == !=
)

func classify(op token.TokenType) opClass {
	switch op {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT, token.POWER:
		return opArithmetic
	case token.AMPERSAND, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT:
		return opBitwise
	case token.LT, token.GT, token.LTE, token.GTE:
		return opOrdering
	case token.EQ, token.NOT_EQ:
		return opEquality
	}
	return opInvalid
}

// integral treats char as an integer of its size when widening.
func integral(p typesystem.PrimitiveKind) bool {
	return p.IsInteger() || p.IsChar()
}

// wider picks the larger of two kinds; on equal sizes the left operand wins.
func wider(l, r typesystem.PrimitiveKind) typesystem.PrimitiveKind {
	if r.Size() > l.Size() {
		return r
	}
	return l
}

// commonKind is the widening rule of arithmetic: identical kinds stay, two
// integers or two floats widen to the larger, and a single float operand wins.
func commonKind(l, r typesystem.PrimitiveKind) typesystem.PrimitiveKind {
	switch {
	case l == r:
		return l
	case l.IsFloat() && r.IsFloat(), integral(l) && integral(r):
		return wider(l, r)
	case l.IsFloat():
		return l
	case r.IsFloat():
		return r
	}
	return typesystem.PrimInvalid
}

// binaryResult applies the operator table to two primitive kinds. It returns
// the result kind and the kind both operands are cast to before folding.
func binaryResult(op token.TokenType, l, r typesystem.PrimitiveKind) (result, operand typesystem.PrimitiveKind, ok bool) {
	switch classify(op) {
	case opArithmetic:
		if l.IsBool() || r.IsBool() {
			return 0, 0, false
		}
		if (op == token.PERCENT || op == token.POWER) && (l.IsChar() || r.IsChar()) {
			return 0, 0, false
		}
		k := commonKind(l, r)
		return k, k, k != typesystem.PrimInvalid
	case opBitwise:
		if !l.IsInteger() || !r.IsInteger() {
			return 0, 0, false
		}
		k := wider(l, r)
		return k, k, true
	case opOrdering:
		if l.IsBool() || r.IsBool() {
			return 0, 0, false
		}
		if l.IsChar() && !integral(r) || r.IsChar() && !integral(l) {
			return 0, 0, false
		}
		return typesystem.Bool, commonKind(l, r), true
	case opEquality:
		if l.IsBool() != r.IsBool() {
			return 0, 0, false
		}
		return typesystem.Bool, commonKind(l, r), true
	}
	return 0, 0, false
}

// resolveBinary types left op right and folds it when both sides are constant.
func (a *Analyzer) resolveBinary(c rctx, n *ast.BinaryExpr) val {
	c = c.without(resolvingAssignment)
	l := a.resolveExpr(c, n.Left)
	r := a.resolveExpr(c, n.Right)
	if !l.ok() || !r.ok() {
		return failed
	}
	op := n.Token.Type
	if classify(op) == opInvalid {
		a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token, "invalid operator: '%s' is not a binary operator", n.Token.Lexeme))
		return failed
	}

	if v, handled := a.pointerArithmetic(n, l, r); handled {
		return v
	}

	lp, lok := a.types.PrimitiveOf(l.typ)
	rp, rok := a.types.PrimitiveOf(r.typ)
	if !lok || !rok {
		if a.types.IsNamed(l.typ) || a.types.IsNamed(r.typ) {
			a.errorf(diagnostics.ErrUnimplementedFeature, n.Token, "operator overloading for '"+n.Token.Lexeme+"'")
			return failed
		}
		a.invalidBinary(n, l.typ, r.typ)
		return failed
	}

	result, operand, ok := binaryResult(op, lp, rp)
	if !ok {
		a.invalidBinary(n, l.typ, r.typ)
		return failed
	}
	v := val{typ: a.types.Primitive(result)}
	if !l.isConstant() || !r.isConstant() {
		return v
	}

	folded, err := value.Apply(op, l.constant.Cast(operand), r.constant.Cast(operand))
	switch {
	case errors.Is(err, value.ErrDivisionByZero):
		a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token, "invalid operator: constant division by zero"))
		return failed
	case err != nil && op == token.POWER:
		a.errorf(diagnostics.ErrUnimplementedFeature, n.Token, "constant exponentiation")
		return failed
	case err != nil:
		a.addError(diagnostics.Errorf(diagnostics.ErrInternal, n.Token, "internal error: folding %s: %v", n.Token.Lexeme, err))
		return failed
	}
	v.constant = &folded
	return v
}

// pointerArithmetic handles ptr + int, int + ptr and ptr - int.
func (a *Analyzer) pointerArithmetic(n *ast.BinaryExpr, l, r val) (val, bool) {
	op := n.Token.Type
	if op != token.PLUS && op != token.MINUS {
		return failed, false
	}
	lptr, rptr := a.types.IsPointer(l.typ), a.types.IsPointer(r.typ)
	switch {
	case lptr && a.types.IsInteger(r.typ):
		return val{typ: a.types.BaseType(l.typ)}, true
	case rptr && op == token.PLUS && a.types.IsInteger(l.typ):
		return val{typ: a.types.BaseType(r.typ)}, true
	case lptr || rptr:
		a.invalidBinary(n, l.typ, r.typ)
		return failed, true
	}
	return failed, false
}

func (a *Analyzer) invalidBinary(n *ast.BinaryExpr, l, r typesystem.TypeID) {
	a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token,
		"invalid operator: %s %s %s", a.typeName(l), n.Token.Lexeme, a.typeName(r)))
}

// resolveUnary types a prefix operator.
func (a *Analyzer) resolveUnary(c rctx, n *ast.UnaryExpr) val {
	c = c.without(resolvingAssignment)
	op := n.Token.Type
	if op == token.AMPERSAND && ast.IsLiteral(n.Operand) {
		a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token, "invalid operator: cannot take the address of a literal"))
		return failed
	}

	v := a.resolveExpr(c, n.Operand)
	if !v.ok() {
		return failed
	}

	switch op {
	case token.AMPERSAND:
		return val{typ: a.types.Pointer(v.typ)}
	case token.ASTERISK:
		if a.types.IsPointer(v.typ) {
			a.errorf(diagnostics.ErrUnimplementedFeature, n.Token, "pointer dereference")
			return failed
		}
		a.invalidUnary(n, v.typ)
		return failed
	case token.MINUS, token.BANG, token.TILDE:
	default:
		a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token, "invalid operator: '%s' is not a unary operator", n.Token.Lexeme))
		return failed
	}

	p, ok := a.types.PrimitiveOf(v.typ)
	if !ok {
		if a.types.IsNamed(v.typ) {
			a.errorf(diagnostics.ErrUnimplementedFeature, n.Token, "operator overloading for '"+n.Token.Lexeme+"'")
			return failed
		}
		a.invalidUnary(n, v.typ)
		return failed
	}
	if !unaryAllowed(op, p) {
		a.invalidUnary(n, v.typ)
		return failed
	}

	res := val{typ: a.types.Primitive(p)}
	if v.isConstant() {
		folded, err := value.ApplyUnary(op, v.constant.Cast(p))
		if err != nil {
			a.addError(diagnostics.Errorf(diagnostics.ErrInternal, n.Token, "internal error: folding %s: %v", n.Token.Lexeme, err))
			return failed
		}
		res.constant = &folded
	}
	return res
}

// unaryAllowed: - on any primitive, ! on integers and bool, ~ on integers.
func unaryAllowed(op token.TokenType, p typesystem.PrimitiveKind) bool {
	switch op {
	case token.MINUS:
		return true
	case token.BANG:
		return p.IsInteger() || p.IsBool()
	case token.TILDE:
		return p.IsInteger()
	}
	return false
}

func (a *Analyzer) invalidUnary(n *ast.UnaryExpr, t typesystem.TypeID) {
	a.addError(diagnostics.Errorf(diagnostics.ErrInvalidOperator, n.Token,
		"invalid operator: %s%s", n.Token.Lexeme, a.typeName(t)))
}
