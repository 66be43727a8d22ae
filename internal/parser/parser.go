// Package parser builds the syntax tree from the token stream. It is a
// recursive-descent parser with a single point of backtracking: the
// arrow-function/grouped-expression ambiguity in primary position.
package parser

import (
	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

// Options configures a parse.
type Options struct {
	Reporter diag.Reporter
}

// Parser holds the state for parsing one token slice. The slice form makes
// the speculative checkpoint an integer save/restore: rewinding the position
// also un-consumes any decoration tokens collected during speculation, so
// speculation cannot leak decorations.
type Parser struct {
	tokens []token.Token
	pos    int
	opts   Options
	quiet  int // >0 while speculating; suppresses reports
}

// Parse consumes the token sequence (which must end in EOF) and produces the
// Program root. The first reported error aborts the parse; ok is false and
// the returned program is nil in that case.
func Parse(tokens []token.Token, opts Options) (*ast.Program, bool) {
	p := &Parser{
		tokens: tokens,
		pos:    0,
		opts:   opts,
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, bool) {
	startSpan := p.peek().Span
	prog := &ast.Program{Span: startSpan}
	for !p.at(token.EOF) {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	prog.Span = startSpan.Cover(p.peek().Span)
	return prog, true
}

// ----- token stream helpers -----

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// look peeks n tokens ahead without consuming.
func (p *Parser) look(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// eat consumes the next token when it matches k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports an error naming the expected
// construct and the offending token's position.
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(diag.SynExpectToken, msg+", got \""+p.describe(p.peek())+"\"")
	return token.Token{}, false
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return tok.Text
}

// ----- diagnostics -----

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.quiet > 0 || p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.peek().Span, msg)
}

// ----- decorations -----

// takeDecorations collects the run of decoration tokens in front of the next
// construct and returns it as an explicit accumulator. Each call drains the
// tokens exactly once; nothing is shared across recursive parse calls.
func (p *Parser) takeDecorations() []ast.Decoration {
	var decos []ast.Decoration
	for p.at(token.Decoration) {
		tok := p.advance()
		decos = append(decos, ast.Decoration{
			Keyword:     tok.Deco.Keyword,
			Description: tok.Deco.Description,
			Span:        tok.Span,
		})
	}
	return decos
}

// parseIdent expects an identifier and returns its text.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.describe(p.peek())+"\"")
	return token.Token{}, false
}

// parseBindingName expects a name in a binding position. Contextual keywords
// (type, from, as, default) only matter where the grammar asks for them, so
// they still name variables, parameters, and members.
func (p *Parser) parseBindingName() (token.Token, bool) {
	if p.at(token.Ident) || p.peek().Kind.IsContextual() {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.describe(p.peek())+"\"")
	return token.Token{}, false
}
