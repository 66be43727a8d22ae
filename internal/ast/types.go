package ast

import (
	"scriptrust/internal/source"
)

// NamedType is a primitive keyword (string, number, boolean, void, any) or
// an identifier reference.
type NamedType struct {
	Span source.Span
	Name string
}

// ArrayType is `T[]`.
type ArrayType struct {
	Span source.Span
	Elem TypeNode
}

// UnionType is `A | B | C`.
type UnionType struct {
	Span    source.Span
	Members []TypeNode
}

// FuncType is `(A, B) => R`.
type FuncType struct {
	Span   source.Span
	Params []TypeNode
	Return TypeNode
}

// GenericType is `Name<Args...>`; only Promise<T> and Array<T> receive
// special treatment downstream.
type GenericType struct {
	Span source.Span
	Name string
	Args []TypeNode
}

func (t *NamedType) Pos() source.Span   { return t.Span }
func (t *ArrayType) Pos() source.Span   { return t.Span }
func (t *UnionType) Pos() source.Span   { return t.Span }
func (t *FuncType) Pos() source.Span    { return t.Span }
func (t *GenericType) Pos() source.Span { return t.Span }

func (t *NamedType) typeNode()   {}
func (t *ArrayType) typeNode()   {}
func (t *UnionType) typeNode()   {}
func (t *FuncType) typeNode()    {}
func (t *GenericType) typeNode() {}
