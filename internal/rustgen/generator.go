// Package rustgen emits Rust source from the syntax tree. Generation is
// best-effort and never fails on a well-formed tree: constructs without a
// Rust translation degrade to "// scriptrust: unsupported ..." placeholder
// comments in the output.
package rustgen

import (
	"strings"

	"scriptrust/internal/ast"
)

const header = "// Generated by scriptrust. Do not edit.\n"

// Generator accumulates the output for one program. Zero value is not usable;
// call Generate.
type Generator struct {
	out    strings.Builder
	indent int
}

// Generate translates the program into Rust source. Compiling the same tree
// twice yields byte-identical output.
func Generate(prog *ast.Program) string {
	g := &Generator{}
	g.out.WriteString(header)

	moduleLevel, executable := partition(prog.Statements)

	for _, stmt := range moduleLevel {
		g.line("")
		g.emitModuleItem(stmt)
	}

	if len(executable) > 0 {
		g.line("")
		g.line("fn main() {")
		g.indent++
		for _, stmt := range executable {
			g.emitStmt(stmt)
		}
		g.indent--
		g.line("}")
	}

	return g.out.String()
}

// partition splits top-level statements into module-level items (functions,
// classes, interfaces, type aliases, foldable consts, imports) and executable
// statements destined for fn main. Source order is preserved within each
// half. export wrappers partition by their inner declaration.
func partition(stmts []ast.Stmt) (moduleLevel, executable []ast.Stmt) {
	for _, stmt := range stmts {
		inner := stmt
		if exp, ok := stmt.(*ast.ExportDecl); ok {
			inner = exp.Decl
		}
		switch s := inner.(type) {
		case *ast.FunctionDecl, *ast.ClassDecl, *ast.InterfaceDecl,
			*ast.TypeAliasDecl, *ast.ImportDecl:
			moduleLevel = append(moduleLevel, stmt)
		case *ast.LetStmt:
			if s.Const && constFoldable(s) {
				moduleLevel = append(moduleLevel, stmt)
			} else {
				executable = append(executable, stmt)
			}
		default:
			executable = append(executable, stmt)
		}
	}
	return moduleLevel, executable
}

// constFoldable reports whether a const declaration can emit as a Rust
// module-level const, which needs a literal initializer of a const-capable
// type. Anything else stays in main as an immutable let.
func constFoldable(s *ast.LetStmt) bool {
	switch s.Init.(type) {
	case *ast.NumberLit, *ast.StringLit, *ast.BoolLit:
		return true
	default:
		return false
	}
}

// ----- output helpers -----

func (g *Generator) line(s string) {
	if s == "" {
		g.out.WriteByte('\n')
		return
	}
	for i := 0; i < g.indent; i++ {
		g.out.WriteString("    ")
	}
	g.out.WriteString(s)
	g.out.WriteByte('\n')
}

func (g *Generator) placeholder(what string) {
	g.line("// scriptrust: unsupported " + what)
}
