package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"scriptrust/internal/ast"
)

// DumpAST writes an indented tree of the program for the parse subcommand.
func DumpAST(w io.Writer, prog *ast.Program) {
	d := &astDumper{w: w}
	d.printf("Program (%d statements)", len(prog.Statements))
	for _, stmt := range prog.Statements {
		d.stmt(stmt, 1)
	}
}

type astDumper struct {
	w io.Writer
}

func (d *astDumper) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format+"\n", args...)
}

func (d *astDumper) node(depth int, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *astDumper) decos(decos []ast.Decoration, depth int) {
	for _, deco := range decos {
		d.node(depth, "@%s: %s", deco.Keyword, deco.Description)
	}
}

func (d *astDumper) params(params []*ast.Param, depth int) {
	for _, p := range params {
		d.decos(p.Decorations, depth)
		if p.Type != nil {
			d.node(depth, "Param %s: %s", p.Name, typeString(p.Type))
		} else {
			d.node(depth, "Param %s", p.Name)
		}
	}
}

func (d *astDumper) stmt(stmt ast.Stmt, depth int) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		d.decos(s.Decorations, depth)
		kw := "let"
		if s.Const {
			kw = "const"
		}
		if s.Type != nil {
			d.node(depth, "%s %s: %s", kw, s.Name, typeString(s.Type))
		} else {
			d.node(depth, "%s %s", kw, s.Name)
		}
		if s.Init != nil {
			d.expr(s.Init, depth+1)
		}
	case *ast.FunctionDecl:
		d.decos(s.Decorations, depth)
		label := "function " + s.Name
		if s.Async {
			label = "async " + label
		}
		d.node(depth, "%s", label)
		d.params(s.Params, depth+1)
		d.block(s.Body, depth+1)
	case *ast.ClassDecl:
		d.decos(s.Decorations, depth)
		label := "class " + s.Name
		if s.SuperClass != "" {
			label += " extends " + s.SuperClass
		}
		if len(s.Implements) > 0 {
			label += " implements " + strings.Join(s.Implements, ", ")
		}
		d.node(depth, "%s", label)
		for _, m := range s.Members {
			d.member(m, depth+1)
		}
	case *ast.InterfaceDecl:
		d.decos(s.Decorations, depth)
		d.node(depth, "interface %s", s.Name)
		for _, m := range s.Members {
			if m.IsMethod {
				d.node(depth+1, "method %s", m.Name)
				d.params(m.Params, depth+2)
			} else {
				d.node(depth+1, "field %s: %s", m.Name, typeString(m.Type))
			}
		}
	case *ast.TypeAliasDecl:
		d.decos(s.Decorations, depth)
		d.node(depth, "type %s = %s", s.Name, typeString(s.Type))
	case *ast.ExprStmt:
		d.node(depth, "expr")
		d.expr(s.X, depth+1)
	case *ast.ReturnStmt:
		d.node(depth, "return")
		if s.Value != nil {
			d.expr(s.Value, depth+1)
		}
	case *ast.IfStmt:
		d.node(depth, "if")
		d.expr(s.Cond, depth+1)
		d.block(s.Then, depth+1)
		if s.Else != nil {
			d.node(depth, "else")
			d.stmt(s.Else, depth+1)
		}
	case *ast.WhileStmt:
		d.node(depth, "while")
		d.expr(s.Cond, depth+1)
		d.block(s.Body, depth+1)
	case *ast.ForStmt:
		d.node(depth, "for")
		if s.Init != nil {
			d.stmt(s.Init, depth+1)
		}
		if s.Cond != nil {
			d.expr(s.Cond, depth+1)
		}
		if s.Post != nil {
			d.expr(s.Post, depth+1)
		}
		d.block(s.Body, depth+1)
	case *ast.BlockStmt:
		d.block(s, depth)
	case *ast.ImportDecl:
		if s.Default != "" {
			d.node(depth, "import %s from %q", s.Default, s.From)
		} else {
			d.node(depth, "import {%s} from %q", strings.Join(s.Names, ", "), s.From)
		}
	case *ast.ExportDecl:
		d.node(depth, "export")
		d.stmt(s.Decl, depth+1)
	case *ast.TryStmt:
		d.node(depth, "try")
		d.block(s.Block, depth+1)
		if s.Catch != nil {
			d.node(depth, "catch (%s)", s.CatchParam)
			d.block(s.Catch, depth+1)
		}
		if s.Finally != nil {
			d.node(depth, "finally")
			d.block(s.Finally, depth+1)
		}
	case *ast.ThrowStmt:
		d.node(depth, "throw")
		d.expr(s.Value, depth+1)
	default:
		d.node(depth, "%T", stmt)
	}
}

func (d *astDumper) member(m *ast.ClassMember, depth int) {
	d.decos(m.Decorations, depth)
	switch m.Kind {
	case ast.MemberField:
		if m.Type != nil {
			d.node(depth, "field %s: %s", m.Name, typeString(m.Type))
		} else {
			d.node(depth, "field %s", m.Name)
		}
		if m.Init != nil {
			d.expr(m.Init, depth+1)
		}
	case ast.MemberConstructor:
		d.node(depth, "constructor")
		d.params(m.Params, depth+1)
		d.block(m.Body, depth+1)
	case ast.MemberMethod:
		label := "method " + m.Name
		if m.Async {
			label = "async " + label
		}
		d.node(depth, "%s", label)
		d.params(m.Params, depth+1)
		d.block(m.Body, depth+1)
	}
}

func (d *astDumper) block(b *ast.BlockStmt, depth int) {
	d.node(depth, "block (%d statements)", len(b.Statements))
	for _, stmt := range b.Statements {
		d.stmt(stmt, depth+1)
	}
}

func (d *astDumper) expr(e ast.Expr, depth int) {
	switch e := e.(type) {
	case *ast.Ident:
		d.node(depth, "ident %s", e.Name)
	case *ast.NumberLit:
		d.node(depth, "number %s", e.Text)
	case *ast.StringLit:
		d.node(depth, "string %q", e.Value)
	case *ast.BoolLit:
		d.node(depth, "bool %v", e.Value)
	case *ast.NullLit:
		if e.Undefined {
			d.node(depth, "undefined")
		} else {
			d.node(depth, "null")
		}
	case *ast.BinaryExpr:
		d.node(depth, "binary %s", e.Op)
		d.expr(e.Left, depth+1)
		d.expr(e.Right, depth+1)
	case *ast.UnaryExpr:
		if e.Postfix {
			d.node(depth, "postfix %s", e.Op)
		} else {
			d.node(depth, "unary %s", e.Op)
		}
		d.expr(e.Operand, depth+1)
	case *ast.AssignExpr:
		d.node(depth, "assign %s", e.Op)
		d.expr(e.Target, depth+1)
		d.expr(e.Value, depth+1)
	case *ast.CallExpr:
		d.node(depth, "call (%d args)", len(e.Args))
		d.expr(e.Callee, depth+1)
		for _, a := range e.Args {
			d.expr(a, depth+1)
		}
	case *ast.MemberExpr:
		d.node(depth, "member .%s", e.Property)
		d.expr(e.Object, depth+1)
	case *ast.IndexExpr:
		d.node(depth, "index")
		d.expr(e.Object, depth+1)
		d.expr(e.Index, depth+1)
	case *ast.ArrayLit:
		d.node(depth, "array (%d elements)", len(e.Elements))
		for _, el := range e.Elements {
			d.expr(el, depth+1)
		}
	case *ast.ObjectLit:
		d.node(depth, "object (%d fields)", len(e.Fields))
		for _, f := range e.Fields {
			d.node(depth+1, "field %s", f.Name)
			d.expr(f.Value, depth+2)
		}
	case *ast.ArrowFunc:
		d.node(depth, "arrow")
		d.params(e.Params, depth+1)
		if e.ExprBody != nil {
			d.expr(e.ExprBody, depth+1)
		} else {
			d.block(e.Body, depth+1)
		}
	case *ast.FuncLit:
		d.node(depth, "function literal")
		d.params(e.Params, depth+1)
		d.block(e.Body, depth+1)
	case *ast.CondExpr:
		d.node(depth, "conditional")
		d.expr(e.Cond, depth+1)
		d.expr(e.Then, depth+1)
		d.expr(e.Else, depth+1)
	case *ast.NewExpr:
		d.node(depth, "new %s (%d args)", e.Callee, len(e.Args))
		for _, a := range e.Args {
			d.expr(a, depth+1)
		}
	case *ast.ThisExpr:
		d.node(depth, "this")
	case *ast.AwaitExpr:
		d.node(depth, "await")
		d.expr(e.Operand, depth+1)
	default:
		d.node(depth, "%T", e)
	}
}

// typeString renders a type annotation in source-like form for dumps.
func typeString(t ast.TypeNode) string {
	switch t := t.(type) {
	case nil:
		return "<none>"
	case *ast.NamedType:
		return t.Name
	case *ast.ArrayType:
		return typeString(t.Elem) + "[]"
	case *ast.UnionType:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = typeString(m)
		}
		return strings.Join(parts, " | ")
	case *ast.FuncType:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = typeString(p)
		}
		return "(" + strings.Join(parts, ", ") + ") => " + typeString(t.Return)
	case *ast.GenericType:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = typeString(a)
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	}
	return "<?>"
}
