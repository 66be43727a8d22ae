package rustgen

import (
	"strings"

	"scriptrust/internal/ast"
	"scriptrust/internal/token"
)

// emitClass renders a class as a struct plus one impl block. Fields come out
// pub in declaration order; the constructor synthesizes into fn new.
func (g *Generator) emitClass(s *ast.ClassDecl, pub string) {
	name := escapeIdent(s.Name)
	if s.SuperClass != "" {
		g.placeholder("extends " + s.SuperClass)
	}
	for _, iface := range s.Implements {
		g.placeholder("implements " + iface)
	}

	var fields []*ast.ClassMember
	var methods []*ast.ClassMember
	var ctor *ast.ClassMember
	for _, m := range s.Members {
		switch m.Kind {
		case ast.MemberField:
			fields = append(fields, m)
		case ast.MemberConstructor:
			ctor = m
		case ast.MemberMethod:
			methods = append(methods, m)
		}
	}

	g.line(pub + "struct " + name + " {")
	g.indent++
	for _, f := range fields {
		typ := "f64"
		if f.Type != nil {
			typ = rustType(f.Type)
		}
		g.line("pub " + escapeIdent(f.Name) + ": " + typ + ",")
	}
	g.indent--
	g.line("}")

	if ctor == nil && len(methods) == 0 {
		return
	}

	g.line("")
	g.line("impl " + name + " {")
	g.indent++
	if ctor != nil {
		g.emitConstructor(ctor, fields)
	}
	for i, m := range methods {
		if ctor != nil || i > 0 {
			g.line("")
		}
		g.emitMethod(m)
	}
	g.indent--
	g.line("}")
}

// emitConstructor synthesizes `pub fn new(...) -> Self`. The body's
// `this.field = expr` assignments become the Self literal; any other
// constructor statement is emitted before it. Fields never assigned fall
// back to their declared initializer, then to a type-appropriate default.
func (g *Generator) emitConstructor(ctor *ast.ClassMember, fields []*ast.ClassMember) {
	g.line("pub fn new(" + paramList(ctor.Params) + ") -> Self {")
	g.indent++

	assigned := map[string]string{}
	for _, stmt := range ctor.Body.Statements {
		if field, value, ok := g.fieldAssignment(stmt); ok {
			assigned[field] = value
			continue
		}
		g.emitStmt(stmt)
	}

	g.line("Self {")
	g.indent++
	for _, f := range fields {
		value, ok := assigned[f.Name]
		if !ok {
			if f.Init != nil {
				value = g.expr(f.Init)
			} else {
				value = zeroValue(f.Type)
			}
		}
		g.line(escapeIdent(f.Name) + ": " + value + ",")
	}
	g.indent--
	g.line("}")

	g.indent--
	g.line("}")
}

// fieldAssignment recognizes a `this.field = expr;` constructor statement
// and returns the field name with its rendered value.
func (g *Generator) fieldAssignment(stmt ast.Stmt) (string, string, bool) {
	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return "", "", false
	}
	assign, ok := exprStmt.X.(*ast.AssignExpr)
	if !ok || assign.Op != token.Assign {
		return "", "", false
	}
	member, ok := assign.Target.(*ast.MemberExpr)
	if !ok {
		return "", "", false
	}
	if _, ok := member.Object.(*ast.ThisExpr); !ok {
		return "", "", false
	}
	return member.Property, g.expr(assign.Value), true
}

// emitMethod renders one method. The receiver is &mut self unless the method
// is decorated pure, or decorated ownership with a description containing
// "borrowed", in which case &self.
func (g *Generator) emitMethod(m *ast.ClassMember) {
	head := "pub "
	if m.Async {
		head += "async "
	}
	head += "fn " + escapeIdent(m.Name) + "(" + methodReceiver(m.Decorations)
	if len(m.Params) > 0 {
		head += ", " + paramList(m.Params)
	}
	head += ")"
	if ret := returnType(m.Return); ret != "" {
		head += " -> " + ret
	}
	g.line(head + " {")
	g.indent++
	for _, stmt := range m.Body.Statements {
		g.emitStmt(stmt)
	}
	g.indent--
	g.line("}")
}

func methodReceiver(decos []ast.Decoration) string {
	if ast.HasDecoration(decos, token.DecoPure) {
		return "&self"
	}
	if d, ok := ast.FindDecoration(decos, token.DecoOwnership); ok {
		if strings.Contains(strings.ToLower(d.Description), "borrowed") {
			return "&self"
		}
	}
	return "&mut self"
}

// emitInterface renders an interface as a trait. Field members become getter
// signatures since traits carry no state.
func (g *Generator) emitInterface(s *ast.InterfaceDecl, pub string) {
	g.line(pub + "trait " + escapeIdent(s.Name) + " {")
	g.indent++
	for _, m := range s.Members {
		if m.IsMethod {
			sig := "fn " + escapeIdent(m.Name) + "(&self"
			if len(m.Params) > 0 {
				sig += ", " + paramList(m.Params)
			}
			sig += ")"
			if ret := returnType(m.Return); ret != "" {
				sig += " -> " + ret
			}
			g.line(sig + ";")
			continue
		}
		typ := "f64"
		if m.Type != nil {
			typ = rustType(m.Type)
		}
		g.line("fn " + escapeIdent(m.Name) + "(&self) -> " + typ + ";")
	}
	g.indent--
	g.line("}")
}
