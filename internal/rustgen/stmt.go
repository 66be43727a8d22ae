package rustgen

import (
	"strings"

	"scriptrust/internal/ast"
	"scriptrust/internal/token"
)

// emitModuleItem renders one module-level item. pub is driven by the export
// wrapper.
func (g *Generator) emitModuleItem(stmt ast.Stmt) {
	pub := ""
	if exp, ok := stmt.(*ast.ExportDecl); ok {
		pub = "pub "
		stmt = exp.Decl
	}
	switch s := stmt.(type) {
	case *ast.FunctionDecl:
		g.emitFunction(s, pub)
	case *ast.ClassDecl:
		g.emitClass(s, pub)
	case *ast.InterfaceDecl:
		g.emitInterface(s, pub)
	case *ast.TypeAliasDecl:
		g.line(pub + "type " + escapeIdent(s.Name) + " = " + rustType(s.Type) + ";")
	case *ast.LetStmt:
		g.emitConst(s, pub)
	case *ast.ImportDecl:
		g.placeholder("import from \"" + s.From + "\"")
	default:
		g.placeholder("module-level statement")
	}
}

func (g *Generator) emitConst(s *ast.LetStmt, pub string) {
	name := escapeIdent(s.Name)
	switch init := s.Init.(type) {
	case *ast.NumberLit:
		g.line(pub + "const " + name + ": f64 = " + numberText(init) + ";")
	case *ast.StringLit:
		g.line(pub + "const " + name + ": &str = \"" + escapeRustString(init.Value) + "\";")
	case *ast.BoolLit:
		value := "false"
		if init.Value {
			value = "true"
		}
		g.line(pub + "const " + name + ": bool = " + value + ";")
	default:
		g.placeholder("const initializer")
	}
}

func (g *Generator) emitFunction(s *ast.FunctionDecl, pub string) {
	head := pub
	if s.Async {
		head += "async "
	}
	head += "fn " + escapeIdent(s.Name) + "(" + paramList(s.Params) + ")"
	if ret := returnType(s.Return); ret != "" {
		head += " -> " + ret
	}
	g.line(head + " {")
	g.indent++
	for _, stmt := range s.Body.Statements {
		g.emitStmt(stmt)
	}
	g.indent--
	g.line("}")
}

// paramList renders a parameter list. A parameter is mut iff it is decorated
// mut and not immutable; string parameters take &str.
func paramList(params []*ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := escapeIdent(p.Name)
		if wantsMut(p.Decorations) {
			name = "mut " + name
		}
		typ := "f64"
		if p.Type != nil {
			typ = rustParamType(p.Type)
		}
		parts[i] = name + ": " + typ
	}
	return strings.Join(parts, ", ")
}

// returnType maps a return annotation; empty string means omit the arrow.
func returnType(t ast.TypeNode) string {
	if t == nil {
		return ""
	}
	mapped := rustType(t)
	if mapped == "()" {
		return ""
	}
	return mapped
}

/// wantsMut implements the mutability rule: decorated mut and not decorated
// immutable. immutable wins; undecorated defaults to immutable.
func wantsMut(decos []ast.Decoration) bool {
	return ast.HasDecoration(decos, token.DecoMut) &&
		!ast.HasDecoration(decos, token.DecoImmutable)
}

// emitStmt renders one executable statement.
func (g *Generator) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		g.emitLet(s)
	case *ast.ExprStmt:
		g.line(g.expr(s.X) + ";")
	case *ast.ReturnStmt:
		if s.Value == nil {
			g.line("return;")
		} else {
			g.line("return " + g.expr(s.Value) + ";")
		}
	case *ast.IfStmt:
		g.emitIf(s)
	case *ast.WhileStmt:
		g.line("while " + g.expr(s.Cond) + " {")
		g.indent++
		for _, inner := range s.Body.Statements {
			g.emitStmt(inner)
		}
		g.indent--
		g.line("}")
	case *ast.ForStmt:
		g.emitFor(s)
	case *ast.BlockStmt:
		g.line("{")
		g.indent++
		for _, inner := range s.Statements {
			g.emitStmt(inner)
		}
		g.indent--
		g.line("}")
	case *ast.TryStmt:
		g.emitTry(s)
	case *ast.ThrowStmt:
		g.emitThrow(s)
	case *ast.FunctionDecl:
		// nested function declarations are legal in Rust
		g.emitFunction(s, "")
	case *ast.ImportDecl:
		g.placeholder("import from \"" + s.From + "\"")
	case *ast.ExportDecl:
		g.emitStmt(s.Decl)
	case *ast.ClassDecl:
		g.emitClass(s, "")
	case *ast.InterfaceDecl:
		g.emitInterface(s, "")
	case *ast.TypeAliasDecl:
		g.line("type " + escapeIdent(s.Name) + " = " + rustType(s.Type) + ";")
	default:
		g.placeholder("statement")
	}
}

func (g *Generator) emitLet(s *ast.LetStmt) {
	head := "let "
	if !s.Const && wantsMut(s.Decorations) {
		head = "let mut "
	}
	head += escapeIdent(s.Name)
	if s.Type != nil {
		head += ": " + rustType(s.Type)
	}
	if s.Init != nil {
		head += " = " + g.expr(s.Init)
	}
	g.line(head + ";")
}

func (g *Generator) emitIf(s *ast.IfStmt) {
	g.lineNoBreak("")
	g.emitIfChain(s)
}

// emitIfChain renders an if, continuing on the line the caller opened so
// else-if chains stay on one line per branch.
func (g *Generator) emitIfChain(s *ast.IfStmt) {
	g.out.WriteString("if " + g.expr(s.Cond) + " {\n")
	g.indent++
	for _, inner := range s.Then.Statements {
		g.emitStmt(inner)
	}
	g.indent--
	switch els := s.Else.(type) {
	case nil:
		g.line("}")
	case *ast.IfStmt:
		g.lineNoBreak("} else ")
		g.emitIfChain(els)
	case *ast.BlockStmt:
		g.line("} else {")
		g.indent++
		for _, inner := range els.Statements {
			g.emitStmt(inner)
		}
		g.indent--
		g.line("}")
	}
}

// lineNoBreak writes an indented fragment without the trailing newline.
func (g *Generator) lineNoBreak(s string) {
	for i := 0; i < g.indent; i++ {
		g.out.WriteString("    ")
	}
	g.out.WriteString(s)
}

// emitFor degrades the three-clause for loop to a placeholder loop: the
// clauses have no direct Rust spelling without inferring an iterator, so the
// body is preserved and the loop exits after one pass.
func (g *Generator) emitFor(s *ast.ForStmt) {
	g.placeholder("C-style for loop; clauses dropped, body runs once")
	g.line("loop {")
	g.indent++
	for _, inner := range s.Body.Statements {
		g.emitStmt(inner)
	}
	g.line("break;")
	g.indent--
	g.line("}")
}

// emitTry preserves the translated block bodies: the try block runs
// unconditionally, the catch block is unreachable without unwind handling,
// the finally block always runs.
func (g *Generator) emitTry(s *ast.TryStmt) {
	g.placeholder("try block; runs without catch protection")
	g.line("{")
	g.indent++
	for _, inner := range s.Block.Statements {
		g.emitStmt(inner)
	}
	g.indent--
	g.line("}")
	if s.Catch != nil {
		g.placeholder("catch (" + s.CatchParam + ") block; never entered")
	}
	if s.Finally != nil {
		g.line("{")
		g.indent++
		for _, inner := range s.Finally.Statements {
			g.emitStmt(inner)
		}
		g.indent--
		g.line("}")
	}
}

func (g *Generator) emitThrow(s *ast.ThrowStmt) {
	if lit, ok := s.Value.(*ast.StringLit); ok {
		g.line("panic!(\"" + escapeFormatLiteral(lit.Value) + "\");")
		return
	}
	g.line("panic!(\"{:?}\", " + g.expr(s.Value) + ");")
}
