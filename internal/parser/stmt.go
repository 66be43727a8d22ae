package parser

import (
	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/token"
)

// parseStatement dispatches on the next token. It first drains any leading
// decorations; declaration forms take ownership of them, anything else gets a
// decoration-adrift warning and the decorations are dropped.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	decos := p.takeDecorations()

	if p.at(token.EOF) {
		if len(decos) > 0 {
			p.report(diag.LexDanglingDecoration, diag.SevError,
				decos[len(decos)-1].Span,
				"decoration is not followed by a declaration")
			return nil, false
		}
		return nil, true
	}

	switch p.peek().Kind {
	case token.KwLet, token.KwConst:
		return p.parseLet(decos)
	case token.KwFunction:
		return p.parseFunction(decos, false)
	case token.KwAsync:
		if p.look(1).Kind == token.KwFunction {
			p.advance() // async
			return p.parseFunction(decos, true)
		}
	case token.KwClass:
		return p.parseClass(decos)
	case token.KwInterface:
		return p.parseInterface(decos)
	case token.KwType:
		return p.parseTypeAlias(decos)
	case token.KwExport:
		return p.parseExport(decos)
	}

	if len(decos) > 0 {
		p.report(diag.SynDecorationAdrift, diag.SevWarning,
			decos[0].Span,
			"decoration does not precede a declaration and is ignored")
	}

	switch p.peek().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.LBrace:
		return p.parseBlock()
	case token.KwImport:
		return p.parseImport()
	case token.KwTry:
		return p.parseTry()
	case token.KwThrow:
		return p.parseThrow()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLet(decos []ast.Decoration) (ast.Stmt, bool) {
	kw := p.advance() // let or const
	name, ok := p.parseBindingName()
	if !ok {
		return nil, false
	}
	stmt := &ast.LetStmt{
		Span:        kw.Span,
		Const:       kw.Kind == token.KwConst,
		Name:        name.Text,
		Decorations: decos,
	}
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		stmt.Type = typ
	}
	if p.eat(token.Assign) {
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Init = init
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after variable declaration")
	if !ok {
		return nil, false
	}
	stmt.Span = kw.Span.Cover(semi.Span)
	return stmt, true
}

func (p *Parser) parseFunction(decos []ast.Decoration, async bool) (ast.Stmt, bool) {
	kw := p.advance() // function
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	decl := &ast.FunctionDecl{
		Span:        kw.Span,
		Name:        name.Text,
		Params:      params,
		Async:       async,
		Decorations: decos,
	}
	if p.eat(token.Colon) {
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		decl.Return = ret
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	decl.Body = body
	decl.Span = kw.Span.Cover(body.Span)
	return decl, true
}

// parseParams parses a parenthesized, comma-separated parameter list. Each
// parameter may carry its own leading decorations.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LParen, "expected \"(\" to open parameter list"); !ok {
		return nil, false
	}
	var params []*ast.Param
	for !p.at(token.RParen) {
		if len(params) > 0 {
			if _, ok := p.expect(token.Comma, "expected \",\" between parameters"); !ok {
				return nil, false
			}
		}
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	p.advance() // )
	return params, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	decos := p.takeDecorations()
	name, ok := p.parseBindingName()
	if !ok {
		return nil, false
	}
	param := &ast.Param{
		Span:        name.Span,
		Name:        name.Text,
		Decorations: decos,
	}
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		param.Type = typ
		param.Span = name.Span.Cover(typ.Pos())
	}
	return param, true
}

func (p *Parser) parseClass(decos []ast.Decoration) (ast.Stmt, bool) {
	kw := p.advance() // class
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	decl := &ast.ClassDecl{
		Span:        kw.Span,
		Name:        name.Text,
		Decorations: decos,
	}
	if p.eat(token.KwExtends) {
		super, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		decl.SuperClass = super.Text
	}
	if p.eat(token.KwImplements) {
		for {
			iface, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			decl.Implements = append(decl.Implements, iface.Text)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.LBrace, "expected \"{\" to open class body"); !ok {
		return nil, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseClassMember()
		if !ok {
			return nil, false
		}
		decl.Members = append(decl.Members, member)
	}
	end, ok := p.expect(token.RBrace, "expected \"}\" to close class body")
	if !ok {
		return nil, false
	}
	decl.Span = kw.Span.Cover(end.Span)
	return decl, true
}

// parseClassMember parses a field, a method, or the constructor. The member
// drains its own leading decorations, so a decoration written inside a class
// body attaches to the member that follows it, never to the class.
func (p *Parser) parseClassMember() (*ast.ClassMember, bool) {
	decos := p.takeDecorations()

	async := false
	if p.at(token.KwAsync) && memberNameKind(p.look(1).Kind) {
		p.advance()
		async = true
	}

	if !memberNameKind(p.peek().Kind) {
		p.err(diag.SynExpectMember, "expected class member, got \""+p.describe(p.peek())+"\"")
		return nil, false
	}
	name := p.advance()

	member := &ast.ClassMember{
		Span:        name.Span,
		Name:        name.Text,
		Async:       async,
		Decorations: decos,
	}

	// A "(" after the name makes this a method (or the constructor).
	if p.at(token.LParen) {
		params, ok := p.parseParams()
		if !ok {
			return nil, false
		}
		member.Params = params
		if p.eat(token.Colon) {
			ret, ok := p.parseType()
			if !ok {
				return nil, false
			}
			member.Return = ret
		}
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		member.Body = body
		member.Span = name.Span.Cover(body.Span)
		if name.Kind == token.KwConstructor {
			member.Kind = ast.MemberConstructor
		} else {
			member.Kind = ast.MemberMethod
		}
		return member, true
	}

	member.Kind = ast.MemberField
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		member.Type = typ
	}
	if p.eat(token.Assign) {
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		member.Init = init
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after class field")
	if !ok {
		return nil, false
	}
	member.Span = name.Span.Cover(semi.Span)
	return member, true
}

// memberNameKind reports whether k can begin a class member name.
func memberNameKind(k token.Kind) bool {
	return k == token.Ident || k == token.KwConstructor || k.IsContextual()
}

func (p *Parser) parseInterface(decos []ast.Decoration) (ast.Stmt, bool) {
	kw := p.advance() // interface
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	decl := &ast.InterfaceDecl{
		Span:        kw.Span,
		Name:        name.Text,
		Decorations: decos,
	}
	if _, ok := p.expect(token.LBrace, "expected \"{\" to open interface body"); !ok {
		return nil, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseInterfaceMember()
		if !ok {
			return nil, false
		}
		decl.Members = append(decl.Members, member)
	}
	end, ok := p.expect(token.RBrace, "expected \"}\" to close interface body")
	if !ok {
		return nil, false
	}
	decl.Span = kw.Span.Cover(end.Span)
	return decl, true
}

func (p *Parser) parseInterfaceMember() (*ast.InterfaceMember, bool) {
	name, ok := p.parseBindingName()
	if !ok {
		return nil, false
	}
	member := &ast.InterfaceMember{Span: name.Span, Name: name.Text}
	if p.at(token.LParen) {
		member.IsMethod = true
		params, ok := p.parseParams()
		if !ok {
			return nil, false
		}
		member.Params = params
		if p.eat(token.Colon) {
			ret, ok := p.parseType()
			if !ok {
				return nil, false
			}
			member.Return = ret
		}
	} else {
		if _, ok := p.expect(token.Colon, "expected \":\" after interface field name"); !ok {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		member.Type = typ
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after interface member")
	if !ok {
		return nil, false
	}
	member.Span = name.Span.Cover(semi.Span)
	return member, true
}

func (p *Parser) parseTypeAlias(decos []ast.Decoration) (ast.Stmt, bool) {
	kw := p.advance() // type
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, "expected \"=\" in type alias"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after type alias")
	if !ok {
		return nil, false
	}
	return &ast.TypeAliasDecl{
		Span:        kw.Span.Cover(semi.Span),
		Name:        name.Text,
		Type:        typ,
		Decorations: decos,
	}, true
}

// parseExport parses `export <decl>`. Leading decorations flow through to
// the wrapped declaration.
func (p *Parser) parseExport(decos []ast.Decoration) (ast.Stmt, bool) {
	kw := p.advance() // export
	switch p.peek().Kind {
	case token.KwLet, token.KwConst, token.KwFunction, token.KwAsync,
		token.KwClass, token.KwInterface, token.KwType:
	default:
		p.err(diag.SynUnexpectedToken, "expected declaration after \"export\"")
		return nil, false
	}
	decl, ok := p.parseStatement2(decos)
	if !ok {
		return nil, false
	}
	return &ast.ExportDecl{Span: kw.Span.Cover(decl.Pos()), Decl: decl}, true
}

// parseStatement2 parses a declaration with pre-collected decorations; used
// by parseExport so that `/* xxx, ... */ export let x ...` attaches the
// decoration to the inner declaration.
func (p *Parser) parseStatement2(decos []ast.Decoration) (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwLet, token.KwConst:
		return p.parseLet(decos)
	case token.KwFunction:
		return p.parseFunction(decos, false)
	case token.KwAsync:
		p.advance()
		if !p.at(token.KwFunction) {
			p.err(diag.SynUnexpectedToken, "expected \"function\" after \"async\"")
			return nil, false
		}
		return p.parseFunction(decos, true)
	case token.KwClass:
		return p.parseClass(decos)
	case token.KwInterface:
		return p.parseInterface(decos)
	case token.KwType:
		return p.parseTypeAlias(decos)
	default:
		p.err(diag.SynUnexpectedTopLevel, "unexpected token \""+p.describe(p.peek())+"\"")
		return nil, false
	}
}

func (p *Parser) parseImport() (ast.Stmt, bool) {
	kw := p.advance() // import
	decl := &ast.ImportDecl{Span: kw.Span}
	switch {
	case p.at(token.LBrace):
		p.advance()
		for !p.at(token.RBrace) {
			if len(decl.Names) > 0 {
				if _, ok := p.expect(token.Comma, "expected \",\" between import names"); !ok {
					return nil, false
				}
			}
			name, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			decl.Names = append(decl.Names, name.Text)
		}
		p.advance() // }
	case p.at(token.Ident):
		decl.Default = p.advance().Text
	default:
		p.err(diag.SynUnexpectedToken, "expected import specifier")
		return nil, false
	}
	if _, ok := p.expect(token.KwFrom, "expected \"from\" in import"); !ok {
		return nil, false
	}
	mod, ok := p.expect(token.StringLit, "expected module path string")
	if !ok {
		return nil, false
	}
	decl.From = unquoteString(mod.Text)
	semi, ok := p.expect(token.Semicolon, "expected \";\" after import")
	if !ok {
		return nil, false
	}
	decl.Span = kw.Span.Cover(semi.Span)
	return decl, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance() // return
	stmt := &ast.ReturnStmt{Span: kw.Span}
	if !p.at(token.Semicolon) {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = value
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after return")
	if !ok {
		return nil, false
	}
	stmt.Span = kw.Span.Cover(semi.Span)
	return stmt, true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	kw := p.advance() // if
	if _, ok := p.expect(token.LParen, "expected \"(\" after \"if\""); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "expected \")\" after if condition"); !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Span: kw.Span.Cover(then.Span), Cond: cond, Then: then}
	if p.eat(token.KwElse) {
		var els ast.Stmt
		if p.at(token.KwIf) {
			els, ok = p.parseIf()
		} else {
			els, ok = p.parseBlock()
		}
		if !ok {
			return nil, false
		}
		stmt.Else = els
		stmt.Span = kw.Span.Cover(els.Pos())
	}
	return stmt, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	kw := p.advance() // while
	if _, ok := p.expect(token.LParen, "expected \"(\" after \"while\""); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "expected \")\" after while condition"); !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Span: kw.Span.Cover(body.Span), Cond: cond, Body: body}, true
}

func (p *Parser) parseFor() (ast.Stmt, bool) {
	kw := p.advance() // for
	if _, ok := p.expect(token.LParen, "expected \"(\" after \"for\""); !ok {
		return nil, false
	}
	stmt := &ast.ForStmt{Span: kw.Span}
	if !p.at(token.Semicolon) {
		if p.at(token.KwLet) || p.at(token.KwConst) {
			init, ok := p.parseLet(nil) // consumes the ";"
			if !ok {
				return nil, false
			}
			stmt.Init = init
		} else {
			x, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			semi, ok := p.expect(token.Semicolon, "expected \";\" after for initializer")
			if !ok {
				return nil, false
			}
			stmt.Init = &ast.ExprStmt{Span: x.Pos().Cover(semi.Span), X: x}
		}
	} else {
		p.advance() // ;
	}
	if !p.at(token.Semicolon) {
		cond, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Cond = cond
	}
	if _, ok := p.expect(token.Semicolon, "expected \";\" after for condition"); !ok {
		return nil, false
	}
	if !p.at(token.RParen) {
		post, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Post = post
	}
	if _, ok := p.expect(token.RParen, "expected \")\" to close for clauses"); !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt.Body = body
	stmt.Span = kw.Span.Cover(body.Span)
	return stmt, true
}

func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	open, ok := p.expect(token.LBrace, "expected \"{\"")
	if !ok {
		return nil, false
	}
	block := &ast.BlockStmt{Span: open.Span}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	end, ok := p.expect(token.RBrace, "expected \"}\" to close block")
	if !ok {
		return nil, false
	}
	block.Span = open.Span.Cover(end.Span)
	return block, true
}

func (p *Parser) parseTry() (ast.Stmt, bool) {
	kw := p.advance() // try
	block, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt := &ast.TryStmt{Span: kw.Span.Cover(block.Span), Block: block}
	if p.eat(token.KwCatch) {
		if p.eat(token.LParen) {
			name, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			stmt.CatchParam = name.Text
			if _, ok := p.expect(token.RParen, "expected \")\" after catch parameter"); !ok {
				return nil, false
			}
		}
		catch, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		stmt.Catch = catch
		stmt.Span = kw.Span.Cover(catch.Span)
	}
	if p.eat(token.KwFinally) {
		fin, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		stmt.Finally = fin
		stmt.Span = kw.Span.Cover(fin.Span)
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.err(diag.SynUnexpectedToken, "expected \"catch\" or \"finally\" after try block")
		return nil, false
	}
	return stmt, true
}

func (p *Parser) parseThrow() (ast.Stmt, bool) {
	kw := p.advance() // throw
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after throw")
	if !ok {
		return nil, false
	}
	return &ast.ThrowStmt{Span: kw.Span.Cover(semi.Span), Value: value}, true
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, "expected \";\" after expression")
	if !ok {
		return nil, false
	}
	return &ast.ExprStmt{Span: x.Pos().Cover(semi.Span), X: x}, true
}
