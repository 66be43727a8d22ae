package ast

import (
	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

// Ident is a name reference.
type Ident struct {
	Span source.Span
	Name string
}

// NumberLit is a numeric literal. Text preserves the source spelling.
type NumberLit struct {
	Span  source.Span
	Text  string
	Value float64
}

// StringLit is a string literal; Value is the decoded content.
type StringLit struct {
	Span  source.Span
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Span  source.Span
	Value bool
}

// NullLit is `null` or `undefined`.
type NullLit struct {
	Span      source.Span
	Undefined bool
}

// BinaryExpr is a binary operation. Source parenthesization is not recorded;
// the generator re-parenthesizes mixed-operator operands (see rustgen).
type BinaryExpr struct {
	Span  source.Span
	Op    token.Kind
	Left  Expr
	Right Expr
}

// UnaryExpr is a prefix (-x, !x) or postfix (x++, x--) operation.
type UnaryExpr struct {
	Span    source.Span
	Op      token.Kind
	Operand Expr
	Postfix bool
}

// AssignExpr is an assignment, possibly compound (+=, -=, ...).
type AssignExpr struct {
	Span   source.Span
	Op     token.Kind
	Target Expr
	Value  Expr
}

// CallExpr is a function or method invocation.
type CallExpr struct {
	Span   source.Span
	Callee Expr
	Args   []Expr
}

// MemberExpr is a property access `obj.prop`.
type MemberExpr struct {
	Span     source.Span
	Object   Expr
	Property string
}

// IndexExpr is a computed access `obj[index]`.
type IndexExpr struct {
	Span   source.Span
	Object Expr
	Index  Expr
}

// ArrayLit is `[a, b, c]`.
type ArrayLit struct {
	Span     source.Span
	Elements []Expr
}

// ObjectField is one `name: value` pair of an object literal.
type ObjectField struct {
	Span  source.Span
	Name  string
	Value Expr
}

// ObjectLit is `{ a: 1, b: 2 }`.
type ObjectLit struct {
	Span   source.Span
	Fields []ObjectField
}

// ArrowFunc is `(params) => expr` or `(params) => { ... }`.
// Exactly one of Body and ExprBody is set.
type ArrowFunc struct {
	Span     source.Span
	Params   []*Param
	Return   TypeNode // may be nil
	Body     *BlockStmt
	ExprBody Expr
}

// FuncLit is an anonymous `function (params) { ... }` expression.
type FuncLit struct {
	Span   source.Span
	Params []*Param
	Return TypeNode // may be nil
	Body   *BlockStmt
	Async  bool
}

// CondExpr is the ternary `cond ? then : else`.
type CondExpr struct {
	Span source.Span
	Cond Expr
	Then Expr
	Else Expr
}

// NewExpr is a construct expression `new Class(args)`.
type NewExpr struct {
	Span   source.Span
	Callee string
	Args   []Expr
}

// ThisExpr is a `this` reference.
type ThisExpr struct {
	Span source.Span
}

// AwaitExpr is `await expr`.
type AwaitExpr struct {
	Span    source.Span
	Operand Expr
}

func (e *Ident) Pos() source.Span      { return e.Span }
func (e *NumberLit) Pos() source.Span  { return e.Span }
func (e *StringLit) Pos() source.Span  { return e.Span }
func (e *BoolLit) Pos() source.Span    { return e.Span }
func (e *NullLit) Pos() source.Span    { return e.Span }
func (e *BinaryExpr) Pos() source.Span { return e.Span }
func (e *UnaryExpr) Pos() source.Span  { return e.Span }
func (e *AssignExpr) Pos() source.Span { return e.Span }
func (e *CallExpr) Pos() source.Span   { return e.Span }
func (e *MemberExpr) Pos() source.Span { return e.Span }
func (e *IndexExpr) Pos() source.Span  { return e.Span }
func (e *ArrayLit) Pos() source.Span   { return e.Span }
func (e *ObjectLit) Pos() source.Span  { return e.Span }
func (e *ArrowFunc) Pos() source.Span  { return e.Span }
func (e *FuncLit) Pos() source.Span    { return e.Span }
func (e *CondExpr) Pos() source.Span   { return e.Span }
func (e *NewExpr) Pos() source.Span    { return e.Span }
func (e *ThisExpr) Pos() source.Span   { return e.Span }
func (e *AwaitExpr) Pos() source.Span  { return e.Span }

func (e *Ident) exprNode()      {}
func (e *NumberLit) exprNode()  {}
func (e *StringLit) exprNode()  {}
func (e *BoolLit) exprNode()    {}
func (e *NullLit) exprNode()    {}
func (e *BinaryExpr) exprNode() {}
func (e *UnaryExpr) exprNode()  {}
func (e *AssignExpr) exprNode() {}
func (e *CallExpr) exprNode()   {}
func (e *MemberExpr) exprNode() {}
func (e *IndexExpr) exprNode()  {}
func (e *ArrayLit) exprNode()   {}
func (e *ObjectLit) exprNode()  {}
func (e *ArrowFunc) exprNode()  {}
func (e *FuncLit) exprNode()    {}
func (e *CondExpr) exprNode()   {}
func (e *NewExpr) exprNode()    {}
func (e *ThisExpr) exprNode()   {}
func (e *AwaitExpr) exprNode()  {}
