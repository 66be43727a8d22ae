// Package ast defines the syntax tree for ScriptRust sources. Nodes are pure
// data: the parser builds the tree, the generators walk it, nobody mutates it
// after the parse completes.
package ast

import (
	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

// Node is the common interface of every syntax tree node.
type Node interface {
	Pos() source.Span
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// TypeNode is implemented by all type annotation nodes.
type TypeNode interface {
	Node
	typeNode()
}

// Decoration is a structured comment annotation attached to a declaration,
// parameter, or class member. Attachment order is preserved for generation
// order; it carries no semantics.
type Decoration struct {
	Keyword     token.DecorationKeyword
	Description string
	Span        source.Span
}

// Decorated is implemented by nodes that can carry decorations.
type Decorated interface {
	DecorationList() []Decoration
}

// HasDecoration reports whether decos contains kw.
func HasDecoration(decos []Decoration, kw token.DecorationKeyword) bool {
	for _, d := range decos {
		if d.Keyword == kw {
			return true
		}
	}
	return false
}

// FindDecoration returns the first decoration with the given keyword.
func FindDecoration(decos []Decoration, kw token.DecorationKeyword) (Decoration, bool) {
	for _, d := range decos {
		if d.Keyword == kw {
			return d, true
		}
	}
	return Decoration{}, false
}

// Program is the root node of one compiled source file.
type Program struct {
	Span       source.Span
	Statements []Stmt
}

func (p *Program) Pos() source.Span { return p.Span }

// Param is one function, method, or arrow parameter.
type Param struct {
	Span        source.Span
	Name        string
	Type        TypeNode
	Decorations []Decoration
}

func (p *Param) Pos() source.Span             { return p.Span }
func (p *Param) DecorationList() []Decoration { return p.Decorations }
