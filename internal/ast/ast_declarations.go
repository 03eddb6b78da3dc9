package ast

import "github.com/funvibe/semcore/internal/token"

// GlobalDecl is a module-level variable.
// x : i32 = 1, x := 1, x : mut i32
type GlobalDecl struct {
	Token token.Token
	Name  *Identifier
	Type  TypeSpec // Optional
	Value Expr     // Optional
}

func (d *GlobalDecl) declNode()             {}
func (d *GlobalDecl) GetToken() token.Token { return d.Token }
func (d *GlobalDecl) DeclName() *Identifier { return d.Name }

// LocalDecl declares a block local, a struct field or a function parameter.
// Value is the initializer for locals and the default for fields and parameters.
type LocalDecl struct {
	Token token.Token
	Name  *Identifier
	Type  TypeSpec // Optional
	Value Expr     // Optional
}

func (d *LocalDecl) declNode()             {}
func (d *LocalDecl) GetToken() token.Token { return d.Token }
func (d *LocalDecl) DeclName() *Identifier { return d.Name }

// StructDecl: Point { x: i32 = 0, y: i32 }
type StructDecl struct {
	Token  token.Token
	Name   *Identifier
	Fields []*LocalDecl
}

func (d *StructDecl) declNode()             {}
func (d *StructDecl) GetToken() token.Token { return d.Token }
func (d *StructDecl) DeclName() *Identifier { return d.Name }

// ClassDecl is a struct with methods.
type ClassDecl struct {
	Token   token.Token
	Name    *Identifier
	Fields  []*LocalDecl
	Methods []*FunctionDecl
}

func (d *ClassDecl) declNode()             {}
func (d *ClassDecl) GetToken() token.Token { return d.Token }
func (d *ClassDecl) DeclName() *Identifier { return d.Name }

// VariantDecl: Color { Red, Green, Blue }
type VariantDecl struct {
	Token   token.Token
	Name    *Identifier
	Members []*Identifier
}

func (d *VariantDecl) declNode()             {}
func (d *VariantDecl) GetToken() token.Token { return d.Token }
func (d *VariantDecl) DeclName() *Identifier { return d.Name }

// FunctionDecl: fn add(a: i32, b: i32 = 1) -> i32 { a + b }
// Several return types declare a multi-value result.
type FunctionDecl struct {
	Token   token.Token
	Name    *Identifier
	Params  []*LocalDecl
	Returns []TypeSpec
	Body    Expr
}

func (d *FunctionDecl) declNode()             {}
func (d *FunctionDecl) GetToken() token.Token { return d.Token }
func (d *FunctionDecl) DeclName() *Identifier { return d.Name }
