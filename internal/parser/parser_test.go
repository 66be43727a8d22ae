package parser_test

import (
	"fmt"
	"testing"

	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/lexer"
	"scriptrust/internal/parser"
	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) Messages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func parseSource(t *testing.T, input string) (*ast.Program, *testReporter, bool) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.srs", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	tokens := lexer.New(file, lexer.Options{Reporter: reporter}).Tokens()
	prog, ok := parser.Parse(tokens, parser.Options{Reporter: reporter})
	return prog, reporter, ok
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, reporter, ok := parseSource(t, input)
	if !ok {
		t.Fatalf("parse failed\ninput: %q\ndiagnostics: %v", input, reporter.Messages())
	}
	return prog
}

func TestLetDeclaration(t *testing.T) {
	prog := mustParse(t, "let count: number = 42;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected LetStmt, got %T", prog.Statements[0])
	}
	if let.Const {
		t.Error("let parsed as const")
	}
	if let.Name != "count" {
		t.Errorf("name = %q, want count", let.Name)
	}
	named, ok := let.Type.(*ast.NamedType)
	if !ok || named.Name != "number" {
		t.Errorf("type = %#v, want NamedType number", let.Type)
	}
	num, ok := let.Init.(*ast.NumberLit)
	if !ok || num.Value != 42 {
		t.Errorf("init = %#v, want NumberLit 42", let.Init)
	}
}

func TestConstDeclaration(t *testing.T) {
	prog := mustParse(t, `const name = "hi";`)
	let := prog.Statements[0].(*ast.LetStmt)
	if !let.Const {
		t.Error("const not recorded")
	}
	str := let.Init.(*ast.StringLit)
	if str.Value != "hi" {
		t.Errorf("init = %q, want hi", str.Value)
	}
}

func TestDecorationAttachesToLet(t *testing.T) {
	prog := mustParse(t, "/* xxx, mut: loop counter */\nlet i = 0;")
	let := prog.Statements[0].(*ast.LetStmt)
	if len(let.Decorations) != 1 {
		t.Fatalf("expected 1 decoration, got %d", len(let.Decorations))
	}
	d := let.Decorations[0]
	if d.Keyword != token.DecoMut {
		t.Errorf("keyword = %q, want mut", d.Keyword)
	}
	if d.Description != "loop counter" {
		t.Errorf("description = %q, want %q", d.Description, "loop counter")
	}
}

func TestDecorationAttachesExactlyOnce(t *testing.T) {
	// Two declarations, one decoration: only the first must carry it.
	prog := mustParse(t, "/* xxx, immutable: fixed */\nlet a = 1;\nlet b = 2;")
	first := prog.Statements[0].(*ast.LetStmt)
	second := prog.Statements[1].(*ast.LetStmt)
	if len(first.Decorations) != 1 {
		t.Fatalf("first: expected 1 decoration, got %d", len(first.Decorations))
	}
	if len(second.Decorations) != 0 {
		t.Fatalf("second: expected 0 decorations, got %d", len(second.Decorations))
	}
}

func TestMultipleDecorationsPreserveOrder(t *testing.T) {
	prog := mustParse(t,
		"/* xxx, mut: changes */\n/* xxx, ownership: owned by caller */\nlet x = 1;")
	let := prog.Statements[0].(*ast.LetStmt)
	if len(let.Decorations) != 2 {
		t.Fatalf("expected 2 decorations, got %d", len(let.Decorations))
	}
	if let.Decorations[0].Keyword != token.DecoMut {
		t.Errorf("first keyword = %q, want mut", let.Decorations[0].Keyword)
	}
	if let.Decorations[1].Keyword != token.DecoOwnership {
		t.Errorf("second keyword = %q, want ownership", let.Decorations[1].Keyword)
	}
}

func TestDecorationOnParameter(t *testing.T) {
	prog := mustParse(t,
		"function greet(/* xxx, ownership: borrowed */ name: string): void {\n}")
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
	param := fn.Params[0]
	if len(param.Decorations) != 1 || param.Decorations[0].Keyword != token.DecoOwnership {
		t.Fatalf("param decorations = %#v", param.Decorations)
	}
	if len(fn.Decorations) != 0 {
		t.Errorf("function must not inherit the parameter decoration")
	}
}

func TestDecorationBeforeNonDeclarationWarns(t *testing.T) {
	prog, reporter, ok := parseSource(t, "/* xxx, pure: no effects */\nfoo();")
	if !ok {
		t.Fatalf("parse failed: %v", reporter.Messages())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	found := false
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynDecorationAdrift && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("expected adrift-decoration warning, got %v", reporter.Messages())
	}
}

func TestDecorationAtEOFIsError(t *testing.T) {
	_, reporter, ok := parseSource(t, "let a = 1;\n/* xxx, mut: dangling */")
	if ok {
		t.Fatal("expected parse failure for dangling decoration")
	}
	found := false
	for _, d := range reporter.diagnostics {
		if d.Code == diag.LexDanglingDecoration && d.Severity == diag.SevError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dangling-decoration error, got %v", reporter.Messages())
	}
}

func TestFunctionDecl(t *testing.T) {
	prog := mustParse(t,
		"function add(a: number, b: number): number {\n  return a + b;\n}")
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Async {
		t.Fatalf("unexpected function shape: %#v", fn)
	}
	ret := prog.Statements[0].(*ast.FunctionDecl).Body.Statements[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinaryExpr)
	if bin.Op != token.Plus {
		t.Errorf("op = %v, want +", bin.Op)
	}
}

func TestAsyncFunctionDecl(t *testing.T) {
	prog := mustParse(t, "async function load(): Promise<string> {\n  return await fetchData();\n}")
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if !fn.Async {
		t.Error("async not recorded")
	}
	gen, ok := fn.Return.(*ast.GenericType)
	if !ok || gen.Name != "Promise" || len(gen.Args) != 1 {
		t.Fatalf("return = %#v, want Promise<string>", fn.Return)
	}
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	if _, ok := ret.Value.(*ast.AwaitExpr); !ok {
		t.Errorf("return value = %T, want AwaitExpr", ret.Value)
	}
}

func TestClassDecl(t *testing.T) {
	src := `
class Point {
  /* xxx, immutable: fixed after construction */
  x: number;
  y: number = 0;
  constructor(x: number, y: number) {
    this.x = x;
    this.y = y;
  }
  /* xxx, pure: reads only */
  norm(): number {
    return this.x * this.x + this.y * this.y;
  }
}`
	prog := mustParse(t, src)
	cls := prog.Statements[0].(*ast.ClassDecl)
	if cls.Name != "Point" || len(cls.Members) != 4 {
		t.Fatalf("unexpected class shape: name=%q members=%d", cls.Name, len(cls.Members))
	}
	if cls.Members[0].Kind != ast.MemberField || len(cls.Members[0].Decorations) != 1 {
		t.Errorf("member 0: kind=%v decorations=%d", cls.Members[0].Kind, len(cls.Members[0].Decorations))
	}
	if cls.Members[1].Kind != ast.MemberField || cls.Members[1].Init == nil {
		t.Errorf("member 1: expected initialized field")
	}
	if cls.Members[2].Kind != ast.MemberConstructor || len(cls.Members[2].Params) != 2 {
		t.Errorf("member 2: expected constructor with 2 params")
	}
	if cls.Members[3].Kind != ast.MemberMethod || !ast.HasDecoration(cls.Members[3].Decorations, token.DecoPure) {
		t.Errorf("member 3: expected pure method")
	}
}

func TestClassExtendsImplements(t *testing.T) {
	prog := mustParse(t, "class Dog extends Animal implements Pet, Named {\n}")
	cls := prog.Statements[0].(*ast.ClassDecl)
	if cls.SuperClass != "Animal" {
		t.Errorf("super = %q, want Animal", cls.SuperClass)
	}
	if len(cls.Implements) != 2 || cls.Implements[0] != "Pet" || cls.Implements[1] != "Named" {
		t.Errorf("implements = %v", cls.Implements)
	}
}

func TestInterfaceDecl(t *testing.T) {
	prog := mustParse(t, "interface Shape {\n  name: string;\n  area(): number;\n}")
	iface := prog.Statements[0].(*ast.InterfaceDecl)
	if iface.Name != "Shape" || len(iface.Members) != 2 {
		t.Fatalf("unexpected interface shape: %#v", iface)
	}
	if iface.Members[0].IsMethod {
		t.Error("member 0 should be a field")
	}
	if !iface.Members[1].IsMethod {
		t.Error("member 1 should be a method")
	}
}

func TestTypeAlias(t *testing.T) {
	prog := mustParse(t, "type ID = string | number;")
	alias := prog.Statements[0].(*ast.TypeAliasDecl)
	union, ok := alias.Type.(*ast.UnionType)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("type = %#v, want 2-member union", alias.Type)
	}
}

func TestArrayTypeSuffix(t *testing.T) {
	prog := mustParse(t, "let xs: number[][] = [];")
	let := prog.Statements[0].(*ast.LetStmt)
	outer, ok := let.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("type = %#v, want ArrayType", let.Type)
	}
	if _, ok := outer.Elem.(*ast.ArrayType); !ok {
		t.Fatalf("elem = %#v, want nested ArrayType", outer.Elem)
	}
}

func TestPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	prog := mustParse(t, "let r = 1 + 2 * 3;")
	bin := prog.Statements[0].(*ast.LetStmt).Init.(*ast.BinaryExpr)
	if bin.Op != token.Plus {
		t.Fatalf("root op = %v, want +", bin.Op)
	}
	right := bin.Right.(*ast.BinaryExpr)
	if right.Op != token.Star {
		t.Errorf("right op = %v, want *", right.Op)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	// (1 + 2) * 3 must parse as (1 + 2) * 3 with + at the left child
	prog := mustParse(t, "let r = (1 + 2) * 3;")
	bin := prog.Statements[0].(*ast.LetStmt).Init.(*ast.BinaryExpr)
	if bin.Op != token.Star {
		t.Fatalf("root op = %v, want *", bin.Op)
	}
	left := bin.Left.(*ast.BinaryExpr)
	if left.Op != token.Plus {
		t.Errorf("left op = %v, want +", left.Op)
	}
}

func TestStrictEquality(t *testing.T) {
	prog := mustParse(t, "let ok = a === b && c !== d;")
	and := prog.Statements[0].(*ast.LetStmt).Init.(*ast.BinaryExpr)
	if and.Op != token.AndAnd {
		t.Fatalf("root op = %v, want &&", and.Op)
	}
	if and.Left.(*ast.BinaryExpr).Op != token.EqEqEq {
		t.Error("left should be ===")
	}
	if and.Right.(*ast.BinaryExpr).Op != token.NotEqEq {
		t.Error("right should be !==")
	}
}

func TestAssignmentRightAssociative(t *testing.T) {
	prog := mustParse(t, "a = b = c;")
	assign := prog.Statements[0].(*ast.ExprStmt).X.(*ast.AssignExpr)
	if _, ok := assign.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("value = %T, want nested AssignExpr", assign.Value)
	}
}

func TestArrowFunction(t *testing.T) {
	prog := mustParse(t, "let f = (x: number) => x * 2;")
	arrow, ok := prog.Statements[0].(*ast.LetStmt).Init.(*ast.ArrowFunc)
	if !ok {
		t.Fatalf("init = %T, want ArrowFunc", prog.Statements[0].(*ast.LetStmt).Init)
	}
	if len(arrow.Params) != 1 || arrow.Params[0].Name != "x" {
		t.Fatalf("params = %#v", arrow.Params)
	}
	if arrow.ExprBody == nil || arrow.Body != nil {
		t.Error("expected expression body")
	}
}

func TestArrowFunctionBlockBody(t *testing.T) {
	prog := mustParse(t, "let f = (a, b) => { return a + b; };")
	arrow := prog.Statements[0].(*ast.LetStmt).Init.(*ast.ArrowFunc)
	if arrow.Body == nil || arrow.ExprBody != nil {
		t.Error("expected block body")
	}
	if len(arrow.Params) != 2 {
		t.Errorf("params = %d, want 2", len(arrow.Params))
	}
}

func TestGroupedExpressionIsNotArrow(t *testing.T) {
	// The speculative arrow parse must rewind cleanly for "(a + b) * c".
	prog := mustParse(t, "let r = (a + b) * c;")
	bin := prog.Statements[0].(*ast.LetStmt).Init.(*ast.BinaryExpr)
	if bin.Op != token.Star {
		t.Fatalf("root op = %v, want *", bin.Op)
	}
}

func TestArrowBacktrackKeepsParamDecorations(t *testing.T) {
	// Decorations consumed during a failed arrow speculation must re-parse
	// identically on the grouped-expression path; and on the arrow path they
	// must land on the parameter.
	prog := mustParse(t, "let f = (/* xxx, ownership: borrowed */ s: string) => s;")
	arrow := prog.Statements[0].(*ast.LetStmt).Init.(*ast.ArrowFunc)
	if len(arrow.Params[0].Decorations) != 1 {
		t.Fatalf("param decorations = %#v", arrow.Params[0].Decorations)
	}
}

func TestTernaryWithParenthesizedBranch(t *testing.T) {
	// "(a)" before the ternary colon must not commit to an arrow parse.
	prog := mustParse(t, "let r = flag ? (a) : b;")
	cond, ok := prog.Statements[0].(*ast.LetStmt).Init.(*ast.CondExpr)
	if !ok {
		t.Fatalf("init = %T, want CondExpr", prog.Statements[0].(*ast.LetStmt).Init)
	}
	if _, ok := cond.Then.(*ast.Ident); !ok {
		t.Errorf("then = %T, want Ident", cond.Then)
	}
}

func TestCallMemberIndexChain(t *testing.T) {
	prog := mustParse(t, "obj.items[0].run(1, 2);")
	call := prog.Statements[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	if len(call.Args) != 2 {
		t.Fatalf("args = %d, want 2", len(call.Args))
	}
	member := call.Callee.(*ast.MemberExpr)
	if member.Property != "run" {
		t.Errorf("property = %q, want run", member.Property)
	}
	if _, ok := member.Object.(*ast.IndexExpr); !ok {
		t.Errorf("object = %T, want IndexExpr", member.Object)
	}
}

func TestKeywordAsPropertyName(t *testing.T) {
	prog := mustParse(t, "let n = config.type;")
	member := prog.Statements[0].(*ast.LetStmt).Init.(*ast.MemberExpr)
	if member.Property != "type" {
		t.Errorf("property = %q, want type", member.Property)
	}
}

func TestNewExpression(t *testing.T) {
	prog := mustParse(t, "let p = new Point(1, 2);")
	n := prog.Statements[0].(*ast.LetStmt).Init.(*ast.NewExpr)
	if n.Callee != "Point" || len(n.Args) != 2 {
		t.Fatalf("new = %#v", n)
	}
}

func TestPostfixIncrement(t *testing.T) {
	prog := mustParse(t, "i++;")
	unary := prog.Statements[0].(*ast.ExprStmt).X.(*ast.UnaryExpr)
	if !unary.Postfix || unary.Op != token.PlusPlus {
		t.Fatalf("unary = %#v", unary)
	}
}

func TestForLoop(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 10; i++) {\n  total += i;\n}")
	loop := prog.Statements[0].(*ast.ForStmt)
	if loop.Init == nil || loop.Cond == nil || loop.Post == nil {
		t.Fatalf("for clauses missing: %#v", loop)
	}
	if _, ok := loop.Init.(*ast.LetStmt); !ok {
		t.Errorf("init = %T, want LetStmt", loop.Init)
	}
}

func TestIfElseChain(t *testing.T) {
	prog := mustParse(t, "if (a) {\n} else if (b) {\n} else {\n}")
	stmt := prog.Statements[0].(*ast.IfStmt)
	elseIf, ok := stmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else = %T, want IfStmt", stmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStmt); !ok {
		t.Errorf("final else = %T, want BlockStmt", elseIf.Else)
	}
}

func TestTryCatchFinally(t *testing.T) {
	prog := mustParse(t, "try {\n  risky();\n} catch (e) {\n  log(e);\n} finally {\n  done();\n}")
	try := prog.Statements[0].(*ast.TryStmt)
	if try.CatchParam != "e" || try.Catch == nil || try.Finally == nil {
		t.Fatalf("try = %#v", try)
	}
}

func TestThrow(t *testing.T) {
	prog := mustParse(t, `throw "boom";`)
	th := prog.Statements[0].(*ast.ThrowStmt)
	if _, ok := th.Value.(*ast.StringLit); !ok {
		t.Fatalf("value = %T, want StringLit", th.Value)
	}
}

func TestImportNamed(t *testing.T) {
	prog := mustParse(t, `import { readFile, writeFile } from "fs";`)
	imp := prog.Statements[0].(*ast.ImportDecl)
	if len(imp.Names) != 2 || imp.From != "fs" {
		t.Fatalf("import = %#v", imp)
	}
}

func TestExportWrapsDeclaration(t *testing.T) {
	prog := mustParse(t, "/* xxx, immutable: public constant */\nexport const LIMIT = 10;")
	exp := prog.Statements[0].(*ast.ExportDecl)
	let, ok := exp.Decl.(*ast.LetStmt)
	if !ok {
		t.Fatalf("decl = %T, want LetStmt", exp.Decl)
	}
	if len(let.Decorations) != 1 {
		t.Errorf("decoration must flow through export to the declaration")
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	prog := mustParse(t, "let o = { a: 1, b: [2, 3] };")
	obj := prog.Statements[0].(*ast.LetStmt).Init.(*ast.ObjectLit)
	if len(obj.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(obj.Fields))
	}
	arr := obj.Fields[1].Value.(*ast.ArrayLit)
	if len(arr.Elements) != 2 {
		t.Errorf("elements = %d, want 2", len(arr.Elements))
	}
}

func TestErrorAbortsParse(t *testing.T) {
	prog, reporter, ok := parseSource(t, "let = 5;")
	if ok || prog != nil {
		t.Fatal("expected parse failure")
	}
	errs := 0
	for _, d := range reporter.diagnostics {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("expected exactly one error, got %d: %v", errs, reporter.Messages())
	}
}

func TestMissingSemicolonReported(t *testing.T) {
	_, reporter, ok := parseSource(t, "let a = 1\nlet b = 2;")
	if ok {
		t.Fatal("expected parse failure")
	}
	found := false
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynExpectToken {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SYN_EXPECT_TOKEN, got %v", reporter.Messages())
	}
}

func TestContextualKeywordNamesBindings(t *testing.T) {
	prog := mustParse(t, "let type = 1;\nlet from = 2;")
	first := prog.Statements[0].(*ast.LetStmt)
	second := prog.Statements[1].(*ast.LetStmt)
	if first.Name != "type" || second.Name != "from" {
		t.Errorf("names = %q, %q, want type, from", first.Name, second.Name)
	}
}

func TestContextualKeywordNamesParam(t *testing.T) {
	prog := mustParse(t, "function tag(type: string): string {\n  return type;\n}")
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if len(fn.Params) != 1 || fn.Params[0].Name != "type" {
		t.Fatalf("params = %#v, want one named type", fn.Params)
	}
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	ident, ok := ret.Value.(*ast.Ident)
	if !ok || ident.Name != "type" {
		t.Errorf("return value = %#v, want Ident type", ret.Value)
	}
}

func TestContextualKeywordNamesClassField(t *testing.T) {
	prog := mustParse(t, "class Shape {\n  type: string;\n  constructor(type: string) {\n    this.type = type;\n  }\n}")
	cls := prog.Statements[0].(*ast.ClassDecl)
	if len(cls.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cls.Members))
	}
	field := cls.Members[0]
	if field.Kind != ast.MemberField || field.Name != "type" {
		t.Errorf("member 0 = %q, want field named type", field.Name)
	}
	ctor := cls.Members[1]
	if ctor.Kind != ast.MemberConstructor {
		t.Fatalf("expected constructor, got member %q", ctor.Name)
	}
	if len(ctor.Params) != 1 || ctor.Params[0].Name != "type" {
		t.Errorf("constructor params = %#v, want one named type", ctor.Params)
	}
}

func TestContextualKeywordNamesInterfaceField(t *testing.T) {
	prog := mustParse(t, "interface Tagged {\n  type: string;\n}")
	decl := prog.Statements[0].(*ast.InterfaceDecl)
	if len(decl.Members) != 1 || decl.Members[0].Name != "type" {
		t.Fatalf("members = %#v, want one field named type", decl.Members)
	}
}
