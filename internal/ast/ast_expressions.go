package ast

import "github.com/funvibe/semcore/internal/token"

// IntegerLiteral: 42, 42u8. Suffix is the optional primitive name.
type IntegerLiteral struct {
	Annotated
	Token  token.Token
	Value  uint64
	Suffix string
}

func (l *IntegerLiteral) exprNode()             {}
func (l *IntegerLiteral) GetToken() token.Token { return l.Token }

// FloatLiteral: 1.5, 1.5f64
type FloatLiteral struct {
	Annotated
	Token  token.Token
	Value  float64
	Suffix string
}

func (l *FloatLiteral) exprNode()             {}
func (l *FloatLiteral) GetToken() token.Token { return l.Token }

type CharLiteral struct {
	Annotated
	Token token.Token
	Value rune
}

func (l *CharLiteral) exprNode()             {}
func (l *CharLiteral) GetToken() token.Token { return l.Token }

type BoolLiteral struct {
	Annotated
	Token token.Token
	Value bool
}

func (l *BoolLiteral) exprNode()             {}
func (l *BoolLiteral) GetToken() token.Token { return l.Token }

// TupleExpr: (a, b, c)
type TupleExpr struct {
	Annotated
	Token    token.Token // The '(' token
	Elements []Expr
}

func (e *TupleExpr) exprNode()             {}
func (e *TupleExpr) GetToken() token.Token { return e.Token }

// ListExpr: [a, b, c]
type ListExpr struct {
	Annotated
	Token    token.Token // The '[' token
	Elements []Expr
}

func (e *ListExpr) exprNode()             {}
func (e *ListExpr) GetToken() token.Token { return e.Token }

// ParenExpr is postfix application: f(a, b), arr(0), (1, 2)(1).
// Its meaning depends on the type of Operand.
type ParenExpr struct {
	Annotated
	Token   token.Token // The '(' token
	Operand Expr
	Args    []Expr
}

func (e *ParenExpr) exprNode()             {}
func (e *ParenExpr) GetToken() token.Token { return e.Token }

// NamedArg: name = value, used in calls and struct literals.
type NamedArg struct {
	Annotated
	Token token.Token
	Name  *Identifier
	Value Expr
}

func (e *NamedArg) exprNode()             {}
func (e *NamedArg) GetToken() token.Token { return e.Token }

// SelectorExpr: operand.field
type SelectorExpr struct {
	Annotated
	Token   token.Token // The '.' token
	Operand Expr
	Field   *Identifier
}

func (e *SelectorExpr) exprNode()             {}
func (e *SelectorExpr) GetToken() token.Token { return e.Token }

// TupleIndexExpr: operand.0
type TupleIndexExpr struct {
	Annotated
	Token   token.Token
	Operand Expr
	Index   int
}

func (e *TupleIndexExpr) exprNode()             {}
func (e *TupleIndexExpr) GetToken() token.Token { return e.Token }

// StructLiteral: Point { 1, y = 2 }
type StructLiteral struct {
	Annotated
	Token token.Token
	Name  *Identifier
	Inits []Expr
}

func (e *StructLiteral) exprNode()             {}
func (e *StructLiteral) GetToken() token.Token { return e.Token }

// DeferExpr: defer expr
type DeferExpr struct {
	Annotated
	Token token.Token
	Expr  Expr
}

func (e *DeferExpr) exprNode()             {}
func (e *DeferExpr) GetToken() token.Token { return e.Token }

// IfExpr: if c { } elif c { } else { }. An elif is an IfExpr in Else.
type IfExpr struct {
	Annotated
	Token     token.Token
	Condition Expr
	Body      *BlockExpr
	Else      Expr // *IfExpr, *BlockExpr or nil
}

func (e *IfExpr) exprNode()             {}
func (e *IfExpr) GetToken() token.Token { return e.Token }

type WhileExpr struct {
	Annotated
	Token     token.Token
	Condition Expr
	Body      *BlockExpr
}

func (e *WhileExpr) exprNode()             {}
func (e *WhileExpr) GetToken() token.Token { return e.Token }

type BreakExpr struct {
	Annotated
	Token token.Token
}

func (e *BreakExpr) exprNode()             {}
func (e *BreakExpr) GetToken() token.Token { return e.Token }

type ContinueExpr struct {
	Annotated
	Token token.Token
}

func (e *ContinueExpr) exprNode()             {}
func (e *ContinueExpr) GetToken() token.Token { return e.Token }

// AssignExpr: a = b, a += b, (a, b) = (c, d).
// Token carries the assignment operator.
type AssignExpr struct {
	Annotated
	Token   token.Token
	Targets []Expr
	Value   Expr
}

func (e *AssignExpr) exprNode()             {}
func (e *AssignExpr) GetToken() token.Token { return e.Token }

// BlockExpr: { e1; e2; e3 }. Its value is the last element.
type BlockExpr struct {
	Annotated
	Token    token.Token // The '{' token
	Elements []Expr
}

func (e *BlockExpr) exprNode()             {}
func (e *BlockExpr) GetToken() token.Token { return e.Token }

// LetExpr wraps a local declaration used as a block element.
type LetExpr struct {
	Annotated
	Token token.Token
	Decl  *LocalDecl
}

func (e *LetExpr) exprNode()             {}
func (e *LetExpr) GetToken() token.Token { return e.Token }

// BinaryExpr: left op right. Token carries the operator.
type BinaryExpr struct {
	Annotated
	Token token.Token
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) exprNode()             {}
func (e *BinaryExpr) GetToken() token.Token { return e.Token }

// UnaryExpr: op operand. Token carries the operator.
type UnaryExpr struct {
	Annotated
	Token   token.Token
	Operand Expr
}

func (e *UnaryExpr) exprNode()             {}
func (e *UnaryExpr) GetToken() token.Token { return e.Token }

// IsLiteral reports whether e is a numeric, char or bool literal.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *IntegerLiteral, *FloatLiteral, *CharLiteral, *BoolLiteral:
		return true
	}
	return false
}
