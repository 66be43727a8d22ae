package parser

import (
	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/token"
)

// parseType parses a type annotation. Unions bind loosest; the "[]" array
// suffix binds tightest.
func (p *Parser) parseType() (ast.TypeNode, bool) {
	first, ok := p.parseTypeAtom()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	union := &ast.UnionType{Span: first.Pos(), Members: []ast.TypeNode{first}}
	for p.eat(token.Pipe) {
		next, ok := p.parseTypeAtom()
		if !ok {
			return nil, false
		}
		union.Members = append(union.Members, next)
		union.Span = union.Span.Cover(next.Pos())
	}
	return union, true
}

func (p *Parser) parseTypeAtom() (ast.TypeNode, bool) {
	base, ok := p.parseTypePrimary()
	if !ok {
		return nil, false
	}
	for p.at(token.LBracket) && p.look(1).Kind == token.RBracket {
		p.advance()
		end := p.advance()
		base = &ast.ArrayType{Span: base.Pos().Cover(end.Span), Elem: base}
	}
	return base, true
}

func (p *Parser) parseTypePrimary() (ast.TypeNode, bool) {
	switch p.peek().Kind {
	case token.Ident:
		name := p.advance()
		if p.at(token.Lt) {
			return p.parseGenericType(name)
		}
		return &ast.NamedType{Span: name.Span, Name: name.Text}, true
	case token.KwNull, token.KwUndefined:
		// null and undefined are usable as union members
		name := p.advance()
		return &ast.NamedType{Span: name.Span, Name: name.Text}, true
	case token.LParen:
		return p.parseFuncType()
	}
	p.err(diag.SynExpectType, "expected type, got \""+p.describe(p.peek())+"\"")
	return nil, false
}

func (p *Parser) parseGenericType(name token.Token) (ast.TypeNode, bool) {
	p.advance() // <
	generic := &ast.GenericType{Span: name.Span, Name: name.Text}
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		generic.Args = append(generic.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.Gt, "expected \">\" to close type arguments")
	if !ok {
		return nil, false
	}
	generic.Span = name.Span.Cover(end.Span)
	return generic, true
}

// parseFuncType parses "(A, B) => R".
func (p *Parser) parseFuncType() (ast.TypeNode, bool) {
	open := p.advance() // (
	fn := &ast.FuncType{Span: open.Span}
	for !p.at(token.RParen) {
		if len(fn.Params) > 0 {
			if _, ok := p.expect(token.Comma, "expected \",\" between parameter types"); !ok {
				return nil, false
			}
		}
		// tolerate "name: type" style parameters inside function types
		if p.at(token.Ident) && p.look(1).Kind == token.Colon {
			p.advance()
			p.advance()
		}
		param, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.Params = append(fn.Params, param)
	}
	p.advance() // )
	if _, ok := p.expect(token.Arrow, "expected \"=>\" in function type"); !ok {
		return nil, false
	}
	ret, ok := p.parseType()
	if !ok {
		return nil, false
	}
	fn.Return = ret
	fn.Span = open.Span.Cover(ret.Pos())
	return fn, true
}
