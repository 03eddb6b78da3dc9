package ast

import "github.com/funvibe/semcore/internal/token"

// NamedType is a primitive or user type name: i32, Point
type NamedType struct {
	Token token.Token
	Name  string
}

func (t *NamedType) typeNode()             {}
func (t *NamedType) GetToken() token.Token { return t.Token }

// TupleType: (i32, bool)
type TupleType struct {
	Token token.Token
	Elems []TypeSpec
}

func (t *TupleType) typeNode()             {}
func (t *TupleType) GetToken() token.Token { return t.Token }

// ArrayType: [4]i32
type ArrayType struct {
	Token  token.Token
	Base   TypeSpec
	Length int
}

func (t *ArrayType) typeNode()             {}
func (t *ArrayType) GetToken() token.Token { return t.Token }

// PointerType: *i32
type PointerType struct {
	Token token.Token
	Base  TypeSpec
}

func (t *PointerType) typeNode()             {}
func (t *PointerType) GetToken() token.Token { return t.Token }

// ReferenceType: &i32
type ReferenceType struct {
	Token token.Token
	Base  TypeSpec
}

func (t *ReferenceType) typeNode()             {}
func (t *ReferenceType) GetToken() token.Token { return t.Token }

// MutableType: mut i32
type MutableType struct {
	Token token.Token
	Base  TypeSpec
}

func (t *MutableType) typeNode()             {}
func (t *MutableType) GetToken() token.Token { return t.Token }

// FunctionType: fn(i32, i32) -> i32
type FunctionType struct {
	Token   token.Token
	Params  []TypeSpec
	Returns []TypeSpec
}

func (t *FunctionType) typeNode()             {}
func (t *FunctionType) GetToken() token.Token { return t.Token }

// MapType: map[K]V. Parsed but not typed yet.
type MapType struct {
	Token token.Token
	Key   TypeSpec
	Value TypeSpec
}

func (t *MapType) typeNode()             {}
func (t *MapType) GetToken() token.Token { return t.Token }

// SliceType is a dynamic array: []i32. Parsed but not typed yet.
type SliceType struct {
	Token token.Token
	Base  TypeSpec
}

func (t *SliceType) typeNode()             {}
func (t *SliceType) GetToken() token.Token { return t.Token }

// GenericType: Box<i32>. Parsed but not typed yet.
type GenericType struct {
	Token token.Token
	Name  string
	Args  []TypeSpec
}

func (t *GenericType) typeNode()             {}
func (t *GenericType) GetToken() token.Token { return t.Token }
