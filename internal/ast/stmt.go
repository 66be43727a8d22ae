package ast

import (
	"scriptrust/internal/source"
)

// LetStmt is a `let` or `const` variable declaration.
type LetStmt struct {
	Span        source.Span
	Const       bool
	Name        string
	Type        TypeNode // may be nil
	Init        Expr     // may be nil
	Decorations []Decoration
}

// FunctionDecl is a named `function` declaration.
type FunctionDecl struct {
	Span        source.Span
	Name        string
	Params      []*Param
	Return      TypeNode // may be nil
	Body        *BlockStmt
	Async       bool
	Decorations []Decoration
}

// MemberKind distinguishes the class member flavors.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberConstructor
)

// ClassMember is one ordered member of a class body: a field, a method, or
// the designated constructor.
type ClassMember struct {
	Span        source.Span
	Kind        MemberKind
	Name        string
	Type        TypeNode // field type, may be nil
	Init        Expr     // field initializer, may be nil
	Params      []*Param // method/constructor
	Return      TypeNode // method, may be nil
	Body        *BlockStmt
	Async       bool
	Decorations []Decoration
}

func (m *ClassMember) Pos() source.Span             { return m.Span }
func (m *ClassMember) DecorationList() []Decoration { return m.Decorations }

// ClassDecl is a class declaration with ordered members.
type ClassDecl struct {
	Span        source.Span
	Name        string
	SuperClass  string // empty when the class has no `extends` clause
	Implements  []string
	Members     []*ClassMember
	Decorations []Decoration
}

// InterfaceMember is a field or method signature inside an interface body.
type InterfaceMember struct {
	Span     source.Span
	Name     string
	IsMethod bool
	Type     TypeNode // field type
	Params   []*Param // method signature
	Return   TypeNode // method return, may be nil
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Span        source.Span
	Name        string
	Members     []*InterfaceMember
	Decorations []Decoration
}

// TypeAliasDecl is a `type X = ...` declaration.
type TypeAliasDecl struct {
	Span        source.Span
	Name        string
	Type        TypeNode
	Decorations []Decoration
}

// ExprStmt wraps an expression used in statement position.
type ExprStmt struct {
	Span source.Span
	X    Expr
}

// ReturnStmt is a `return` with an optional value.
type ReturnStmt struct {
	Span  source.Span
	Value Expr // may be nil
}

// IfStmt is an `if` with an optional else branch; Else is either a
// *BlockStmt or another *IfStmt (else-if chain).
type IfStmt struct {
	Span source.Span
	Cond Expr
	Then *BlockStmt
	Else Stmt // may be nil
}

// WhileStmt is a `while` loop.
type WhileStmt struct {
	Span source.Span
	Cond Expr
	Body *BlockStmt
}

// ForStmt is a C-style three-clause `for` loop. Any clause may be nil.
type ForStmt struct {
	Span source.Span
	Init Stmt // LetStmt or ExprStmt
	Cond Expr
	Post Expr
	Body *BlockStmt
}

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Span       source.Span
	Statements []Stmt
}

// ImportDecl is `import { a, b } from "mod"` or `import d from "mod"`.
type ImportDecl struct {
	Span    source.Span
	Names   []string
	Default string
	From    string
}

// ExportDecl wraps an exported declaration.
type ExportDecl struct {
	Span source.Span
	Decl Stmt
}

// TryStmt is `try { } catch (e) { } finally { }`; Catch and Finally may be
// nil, but not both.
type TryStmt struct {
	Span       source.Span
	Block      *BlockStmt
	CatchParam string
	Catch      *BlockStmt
	Finally    *BlockStmt
}

// ThrowStmt is a `throw` statement.
type ThrowStmt struct {
	Span  source.Span
	Value Expr
}

func (s *LetStmt) Pos() source.Span       { return s.Span }
func (s *FunctionDecl) Pos() source.Span  { return s.Span }
func (s *ClassDecl) Pos() source.Span     { return s.Span }
func (s *InterfaceDecl) Pos() source.Span { return s.Span }
func (s *TypeAliasDecl) Pos() source.Span { return s.Span }
func (s *ExprStmt) Pos() source.Span      { return s.Span }
func (s *ReturnStmt) Pos() source.Span    { return s.Span }
func (s *IfStmt) Pos() source.Span        { return s.Span }
func (s *WhileStmt) Pos() source.Span     { return s.Span }
func (s *ForStmt) Pos() source.Span       { return s.Span }
func (s *BlockStmt) Pos() source.Span     { return s.Span }
func (s *ImportDecl) Pos() source.Span    { return s.Span }
func (s *ExportDecl) Pos() source.Span    { return s.Span }
func (s *TryStmt) Pos() source.Span       { return s.Span }
func (s *ThrowStmt) Pos() source.Span     { return s.Span }

func (s *LetStmt) stmtNode()       {}
func (s *FunctionDecl) stmtNode()  {}
func (s *ClassDecl) stmtNode()     {}
func (s *InterfaceDecl) stmtNode() {}
func (s *TypeAliasDecl) stmtNode() {}
func (s *ExprStmt) stmtNode()      {}
func (s *ReturnStmt) stmtNode()    {}
func (s *IfStmt) stmtNode()        {}
func (s *WhileStmt) stmtNode()     {}
func (s *ForStmt) stmtNode()       {}
func (s *BlockStmt) stmtNode()     {}
func (s *ImportDecl) stmtNode()    {}
func (s *ExportDecl) stmtNode()    {}
func (s *TryStmt) stmtNode()       {}
func (s *ThrowStmt) stmtNode()     {}

func (s *LetStmt) DecorationList() []Decoration       { return s.Decorations }
func (s *FunctionDecl) DecorationList() []Decoration  { return s.Decorations }
func (s *ClassDecl) DecorationList() []Decoration     { return s.Decorations }
func (s *InterfaceDecl) DecorationList() []Decoration { return s.Decorations }
func (s *TypeAliasDecl) DecorationList() []Decoration { return s.Decorations }
