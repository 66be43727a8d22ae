package parser

import (
	"strconv"

	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/token"
)

// Expression grammar, precedence low to high:
//
//	assignment   =  +=  -=  *=  /=        (right associative)
//	conditional  ?:
//	logical or   ||
//	logical and  &&
//	equality     ==  !=  ===  !==
//	relational   <  <=  >  >=
//	additive     +  -
//	multiplicative  *  /  %
//	unary        !  -  +  ++  --  await   (prefix)
//	postfix      call  .member  [index]  ++  --
//	primary

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseAssign()
}

func (p *Parser) parseAssign() (ast.Expr, bool) {
	left, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case token.Assign, token.PlusAssign, token.MinusAssign,
		token.StarAssign, token.SlashAssign:
		op := p.advance()
		value, ok := p.parseAssign()
		if !ok {
			return nil, false
		}
		return &ast.AssignExpr{
			Span:   left.Pos().Cover(value.Pos()),
			Op:     op.Kind,
			Target: left,
			Value:  value,
		}, true
	}
	return left, true
}

func (p *Parser) parseConditional() (ast.Expr, bool) {
	cond, ok := p.parseOr()
	if !ok {
		return nil, false
	}
	if !p.eat(token.Question) {
		return cond, true
	}
	then, ok := p.parseAssign()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, "expected \":\" in conditional expression"); !ok {
		return nil, false
	}
	els, ok := p.parseAssign()
	if !ok {
		return nil, false
	}
	return &ast.CondExpr{
		Span: cond.Pos().Cover(els.Pos()),
		Cond: cond,
		Then: then,
		Else: els,
	}, true
}

// parseBinary is the shared left-associative loop: while the next token is in
// ops, fold it with the next higher-precedence operand.
func (p *Parser) parseBinary(next func() (ast.Expr, bool), ops ...token.Kind) (ast.Expr, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				matched = true
				break
			}
		}
		if !matched {
			return left, true
		}
		op := p.advance()
		right, ok := next()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{
			Span:  left.Pos().Cover(right.Pos()),
			Op:    op.Kind,
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parseOr() (ast.Expr, bool) {
	return p.parseBinary(p.parseAnd, token.OrOr)
}

func (p *Parser) parseAnd() (ast.Expr, bool) {
	return p.parseBinary(p.parseEquality, token.AndAnd)
}

func (p *Parser) parseEquality() (ast.Expr, bool) {
	return p.parseBinary(p.parseRelational,
		token.EqEq, token.NotEq, token.EqEqEq, token.NotEqEq)
}

func (p *Parser) parseRelational() (ast.Expr, bool) {
	return p.parseBinary(p.parseAdditive,
		token.Lt, token.LtEq, token.Gt, token.GtEq)
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	return p.parseBinary(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	return p.parseBinary(p.parseUnary, token.Star, token.Slash, token.Percent)
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	switch p.peek().Kind {
	case token.Bang, token.Minus, token.Plus, token.PlusPlus, token.MinusMinus:
		op := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{
			Span:    op.Span.Cover(operand.Pos()),
			Op:      op.Kind,
			Operand: operand,
		}, true
	case token.KwAwait:
		kw := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.AwaitExpr{
			Span:    kw.Span.Cover(operand.Pos()),
			Operand: operand,
		}, true
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			end := p.tokens[p.pos-1] // the ")"
			x = &ast.CallExpr{
				Span:   x.Pos().Cover(end.Span),
				Callee: x,
				Args:   args,
			}
		case token.Dot:
			p.advance()
			prop, ok := p.parsePropertyName()
			if !ok {
				return nil, false
			}
			x = &ast.MemberExpr{
				Span:     x.Pos().Cover(prop.Span),
				Object:   x,
				Property: prop.Text,
			}
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			end, ok := p.expect(token.RBracket, "expected \"]\" to close index")
			if !ok {
				return nil, false
			}
			x = &ast.IndexExpr{
				Span:   x.Pos().Cover(end.Span),
				Object: x,
				Index:  index,
			}
		case token.PlusPlus, token.MinusMinus:
			op := p.advance()
			x = &ast.UnaryExpr{
				Span:    x.Pos().Cover(op.Span),
				Op:      op.Kind,
				Operand: x,
				Postfix: true,
			}
		default:
			return x, true
		}
	}
}

// parsePropertyName accepts an identifier or any keyword after a dot, so
// member names like `obj.type` or `list.length` parse.
func (p *Parser) parsePropertyName() (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident || tok.IsKeyword() {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected property name after \".\"")
	return token.Token{}, false
}

func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, "expected \"(\""); !ok {
		return nil, false
	}
	var args []ast.Expr
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, ok := p.expect(token.Comma, "expected \",\" between arguments"); !ok {
				return nil, false
			}
		}
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
	p.advance() // )
	return args, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.peek().Kind {
	case token.Ident, token.KwType, token.KwFrom, token.KwAs, token.KwDefault:
		// contextual keywords read as plain references here
		tok := p.advance()
		return &ast.Ident{Span: tok.Span, Name: tok.Text}, true
	case token.NumberLit:
		tok := p.advance()
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span,
				"invalid number literal \""+tok.Text+"\"")
			return nil, false
		}
		return &ast.NumberLit{Span: tok.Span, Text: tok.Text, Value: value}, true
	case token.StringLit:
		tok := p.advance()
		return &ast.StringLit{Span: tok.Span, Value: unquoteString(tok.Text)}, true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.BoolLit{Span: tok.Span, Value: tok.Kind == token.KwTrue}, true
	case token.KwNull, token.KwUndefined:
		tok := p.advance()
		return &ast.NullLit{Span: tok.Span, Undefined: tok.Kind == token.KwUndefined}, true
	case token.KwThis:
		tok := p.advance()
		return &ast.ThisExpr{Span: tok.Span}, true
	case token.KwNew:
		return p.parseNew()
	case token.LParen:
		return p.parseParenOrArrow()
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	case token.KwFunction:
		return p.parseFuncLit(false)
	case token.KwAsync:
		if p.look(1).Kind == token.KwFunction {
			p.advance()
			return p.parseFuncLit(true)
		}
	}
	p.err(diag.SynExpectExpression, "expected expression, got \""+p.describe(p.peek())+"\"")
	return nil, false
}

func (p *Parser) parseNew() (ast.Expr, bool) {
	kw := p.advance() // new
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	args, ok := p.parseArgs()
	if !ok {
		return nil, false
	}
	end := p.tokens[p.pos-1]
	return &ast.NewExpr{
		Span:   kw.Span.Cover(end.Span),
		Callee: name.Text,
		Args:   args,
	}, true
}

// parseParenOrArrow resolves the one ambiguity in the grammar: "(" begins
// either an arrow function parameter list or a parenthesized expression.
// It speculatively parses a parameter list with diagnostics suppressed; if
// that succeeds and "=>" follows, the arrow interpretation wins. Otherwise
// the position is rewound to the "(" and the tokens re-parse as a grouped
// expression, byte for byte.
func (p *Parser) parseParenOrArrow() (ast.Expr, bool) {
	mark := p.pos

	p.quiet++
	params, ret, ok := p.tryArrowHead()
	p.quiet--
	if ok && p.at(token.Arrow) {
		return p.parseArrowTail(mark, params, ret)
	}

	p.pos = mark
	p.advance() // (
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "expected \")\" to close expression"); !ok {
		return nil, false
	}
	// Source parentheses are not recorded; the generator re-parenthesizes
	// where Rust precedence requires it.
	return x, true
}

// tryArrowHead parses "( params )" with an optional ": type" return
// annotation and leaves the cursor just past it. The caller checks for "=>".
func (p *Parser) tryArrowHead() ([]*ast.Param, ast.TypeNode, bool) {
	if !p.at(token.LParen) {
		return nil, nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, nil, false
	}
	var ret ast.TypeNode
	if p.eat(token.Colon) {
		ret, ok = p.parseType()
		if !ok {
			return nil, nil, false
		}
	}
	return params, ret, true
}

func (p *Parser) parseArrowTail(mark int, params []*ast.Param, ret ast.TypeNode) (ast.Expr, bool) {
	start := p.tokens[mark].Span
	arrow := p.advance() // =>
	fn := &ast.ArrowFunc{Span: start.Cover(arrow.Span), Params: params, Return: ret}
	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		fn.Body = body
		fn.Span = start.Cover(body.Span)
		return fn, true
	}
	body, ok := p.parseAssign()
	if !ok {
		return nil, false
	}
	fn.ExprBody = body
	fn.Span = start.Cover(body.Pos())
	return fn, true
}

func (p *Parser) parseFuncLit(async bool) (ast.Expr, bool) {
	kw := p.advance() // function
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	fn := &ast.FuncLit{Span: kw.Span, Params: params, Async: async}
	if p.eat(token.Colon) {
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.Return = ret
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Span = kw.Span.Cover(body.Span)
	return fn, true
}

func (p *Parser) parseArrayLit() (ast.Expr, bool) {
	open := p.advance() // [
	lit := &ast.ArrayLit{Span: open.Span}
	for !p.at(token.RBracket) {
		if len(lit.Elements) > 0 {
			if _, ok := p.expect(token.Comma, "expected \",\" between array elements"); !ok {
				return nil, false
			}
		}
		elem, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		lit.Elements = append(lit.Elements, elem)
	}
	end, ok := p.expect(token.RBracket, "expected \"]\" to close array literal")
	if !ok {
		return nil, false
	}
	lit.Span = open.Span.Cover(end.Span)
	return lit, true
}

func (p *Parser) parseObjectLit() (ast.Expr, bool) {
	open := p.advance() // {
	lit := &ast.ObjectLit{Span: open.Span}
	for !p.at(token.RBrace) {
		if len(lit.Fields) > 0 {
			if _, ok := p.expect(token.Comma, "expected \",\" between object fields"); !ok {
				return nil, false
			}
			// tolerate a trailing comma
			if p.at(token.RBrace) {
				break
			}
		}
		name, ok := p.parseBindingName()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "expected \":\" after object field name"); !ok {
			return nil, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		lit.Fields = append(lit.Fields, ast.ObjectField{
			Span:  name.Span.Cover(value.Pos()),
			Name:  name.Text,
			Value: value,
		})
	}
	end, ok := p.expect(token.RBrace, "expected \"}\" to close object literal")
	if !ok {
		return nil, false
	}
	lit.Span = open.Span.Cover(end.Span)
	return lit, true
}
