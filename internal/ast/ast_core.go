package ast

import (
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

// Node is the base interface for all tree nodes. The parser produces the tree;
// the analyzer never changes its shape, it only fills expression annotations.
type Node interface {
	GetToken() token.Token
}

// Decl is a declaration: top-level (global, struct, class, variant, function)
// or local (block let, struct field, function parameter).
type Decl interface {
	Node
	declNode()
	DeclName() *Identifier
}

// Expr is an expression node. Every expression carries an annotation slot.
type Expr interface {
	Node
	exprNode()
	Annotation() *Annotated
}

// TypeSpec is a type as written in source.
type TypeSpec interface {
	Node
	typeNode()
}

// Annotated is embedded in every expression. The resolver sets Type to the
// canonical type of the expression and Constant when it was folded.
type Annotated struct {
	Type     typesystem.TypeID
	Constant *value.Value
}

func (a *Annotated) Annotation() *Annotated { return a }

// IsConstant reports whether the expression folded to a compile-time value.
func (a *Annotated) IsConstant() bool { return a.Constant != nil }

// Module is the root of a parsed file.
type Module struct {
	File  string
	Decls []Decl
}

// Identifier is both a name in declarations and the value (identifier) expression.
type Identifier struct {
	Annotated
	Token token.Token
	Value string
}

func (i *Identifier) exprNode()             {}
func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) String() string        { return i.Value }
