package rustgen

import (
	"math"
	"strings"

	"scriptrust/internal/ast"
	"scriptrust/internal/token"
)

// expr renders an expression. Rendering is purely syntactic; no type
// information exists at this stage, so the rules lean on literal shapes and
// decorations collected at parse time.
func (g *Generator) expr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return escapeIdent(e.Name)
	case *ast.NumberLit:
		return numberText(e)
	case *ast.StringLit:
		return "\"" + escapeRustString(e.Value) + "\".to_string()"
	case *ast.BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "None"
	case *ast.BinaryExpr:
		return g.binaryExpr(e)
	case *ast.UnaryExpr:
		return g.unaryExpr(e)
	case *ast.AssignExpr:
		return g.expr(e.Target) + " " + assignOp(e.Op) + " " + g.expr(e.Value)
	case *ast.CallExpr:
		return g.callExpr(e)
	case *ast.MemberExpr:
		return g.memberExpr(e)
	case *ast.IndexExpr:
		return g.expr(e.Object) + "[" + indexText(g, e.Index) + "]"
	case *ast.ArrayLit:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = g.expr(el)
		}
		return "vec![" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLit:
		return "() /* scriptrust: unsupported object literal */"
	case *ast.ArrowFunc:
		return g.closureExpr(e.Params, e.Body, e.ExprBody, false)
	case *ast.FuncLit:
		return g.closureExpr(e.Params, e.Body, nil, e.Async)
	case *ast.CondExpr:
		return "if " + g.expr(e.Cond) + " { " + g.expr(e.Then) + " } else { " + g.expr(e.Else) + " }"
	case *ast.NewExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		return escapeIdent(e.Callee) + "::new(" + strings.Join(args, ", ") + ")"
	case *ast.ThisExpr:
		return "self"
	case *ast.AwaitExpr:
		return g.expr(e.Operand) + ".await"
	}
	return "() /* scriptrust: unsupported expression */"
}

// ----- binary expressions -----

func (g *Generator) binaryExpr(e *ast.BinaryExpr) string {
	if e.Op == token.Plus {
		if chain, hasStr := collectConcat(e); hasStr {
			return g.formatMacro(chain)
		}
	}
	left := g.operand(e.Left, e.Op, false)
	right := g.operand(e.Right, e.Op, true)
	return left + " " + binaryOp(e.Op) + " " + right
}

// operand renders one side of a binary expression. Source parenthesization
// is not recorded in the tree, so a nested binary with a different operator
// is always parenthesized, as is any binary on the right of a
// non-commutative fold.
func (g *Generator) operand(e ast.Expr, parentOp token.Kind, right bool) string {
	if bin, ok := e.(*ast.BinaryExpr); ok {
		if bin.Op != parentOp || right {
			return "(" + g.expr(e) + ")"
		}
	}
	if _, ok := e.(*ast.CondExpr); ok {
		return "(" + g.expr(e) + ")"
	}
	return g.expr(e)
}

// collectConcat flattens a left-leaning + chain iteratively and reports
// whether any operand is a string literal, which turns the whole chain into
// one format! call.
func collectConcat(e *ast.BinaryExpr) ([]ast.Expr, bool) {
	var rev []ast.Expr
	cur := ast.Expr(e)
	for {
		bin, ok := cur.(*ast.BinaryExpr)
		if !ok || bin.Op != token.Plus {
			rev = append(rev, cur)
			break
		}
		rev = append(rev, bin.Right)
		cur = bin.Left
	}
	chain := make([]ast.Expr, len(rev))
	for i, x := range rev {
		chain[len(rev)-1-i] = x
	}
	hasStr := false
	for _, x := range chain {
		if _, ok := x.(*ast.StringLit); ok {
			hasStr = true
			break
		}
	}
	return chain, hasStr
}

// formatMacro renders a concatenation chain as a single format! call:
// string-literal parts go verbatim into the template, everything else
// becomes a positional {} argument in order.
func (g *Generator) formatMacro(chain []ast.Expr) string {
	var template strings.Builder
	var args []string
	for _, part := range chain {
		if lit, ok := part.(*ast.StringLit); ok {
			template.WriteString(escapeFormatLiteral(lit.Value))
			continue
		}
		template.WriteString("{}")
		args = append(args, g.expr(part))
	}
	out := "format!(\"" + template.String() + "\""
	if len(args) > 0 {
		out += ", " + strings.Join(args, ", ")
	}
	return out + ")"
}

// ----- unary, call, member -----

func (g *Generator) unaryExpr(e *ast.UnaryExpr) string {
	switch e.Op {
	case token.PlusPlus:
		return g.expr(e.Operand) + " += 1.0"
	case token.MinusMinus:
		return g.expr(e.Operand) + " -= 1.0"
	case token.Bang:
		return "!" + g.operand(e.Operand, token.Bang, false)
	case token.Minus:
		return "-" + g.operand(e.Operand, token.Minus, false)
	case token.Plus:
		return g.expr(e.Operand)
	}
	return g.expr(e.Operand) + " /* scriptrust: unsupported unary operator */"
}

func (g *Generator) callExpr(e *ast.CallExpr) string {
	if out, ok := g.consoleCall(e); ok {
		return out
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.expr(a)
	}
	return g.expr(e.Callee) + "(" + strings.Join(args, ", ") + ")"
}

// consoleCall maps console.log/error to println!/eprintln!. A lone string
// literal or a string concatenation prints directly; anything else goes
// through the debug formatter.
func (g *Generator) consoleCall(e *ast.CallExpr) (string, bool) {
	member, ok := e.Callee.(*ast.MemberExpr)
	if !ok {
		return "", false
	}
	obj, ok := member.Object.(*ast.Ident)
	if !ok || obj.Name != "console" {
		return "", false
	}
	var macro string
	switch member.Property {
	case "log", "info":
		macro = "println!"
	case "error", "warn":
		macro = "eprintln!"
	default:
		return "", false
	}

	if len(e.Args) == 1 {
		switch arg := e.Args[0].(type) {
		case *ast.StringLit:
			return macro + "(\"" + escapeFormatLiteral(arg.Value) + "\")", true
		case *ast.BinaryExpr:
			if chain, hasStr := collectConcat(arg); hasStr && arg.Op == token.Plus {
				inner := g.formatMacro(chain)
				return macro + inner[len("format!"):], true
			}
		}
	}

	var template []string
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		template = append(template, "{:?}")
		args[i] = g.expr(a)
	}
	out := macro + "(\"" + strings.Join(template, " ") + "\""
	if len(args) > 0 {
		out += ", " + strings.Join(args, ", ")
	}
	return out + ")", true
}

func (g *Generator) memberExpr(e *ast.MemberExpr) string {
	obj := g.expr(e.Object)
	// length reads map to the Vec/String len method
	if e.Property == "length" {
		return obj + ".len() as f64"
	}
	return obj + "." + escapeIdent(e.Property)
}

// indexText renders an index expression; Rust indexes with usize, numbers
// are f64.
func indexText(g *Generator, index ast.Expr) string {
	if lit, ok := index.(*ast.NumberLit); ok {
		if isIntegerValued(lit) {
			return lit.Text
		}
	}
	return "(" + g.expr(index) + ") as usize"
}

func (g *Generator) closureExpr(params []*ast.Param, body *ast.BlockStmt, exprBody ast.Expr, async bool) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = escapeIdent(p.Name)
	}
	head := "|" + strings.Join(names, ", ") + "|"
	if async {
		head = "async " + head
	}
	if exprBody != nil {
		return head + " " + g.expr(exprBody)
	}
	sub := &Generator{indent: g.indent + 1}
	for _, stmt := range body.Statements {
		sub.emitStmt(stmt)
	}
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(" {\n")
	b.WriteString(sub.out.String())
	for i := 0; i < g.indent; i++ {
		b.WriteString("    ")
	}
	b.WriteString("}")
	return b.String()
}

// ----- operator and literal helpers -----

func binaryOp(op token.Kind) string {
	switch op {
	case token.EqEqEq:
		return "=="
	case token.NotEqEq:
		return "!="
	default:
		return op.String()
	}
}

func assignOp(op token.Kind) string {
	return op.String()
}

// numberText renders a numeric literal. Every number position is f64, so
// integer-valued literals carry a ".0" suffix.
func numberText(lit *ast.NumberLit) string {
	if isIntegerValued(lit) {
		return lit.Text + ".0"
	}
	return lit.Text
}

func isIntegerValued(lit *ast.NumberLit) bool {
	if strings.ContainsAny(lit.Text, ".eE") {
		return false
	}
	return lit.Value == math.Trunc(lit.Value)
}

// escapeRustString escapes a decoded string value for a Rust string literal.
func escapeRustString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeFormatLiteral escapes a string for use inside a format!/println!
// template, where braces additionally need doubling.
func escapeFormatLiteral(s string) string {
	s = escapeRustString(s)
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	return s
}
