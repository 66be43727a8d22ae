package lexer_test

import (
	"testing"

	"scriptrust/internal/diag"
	"scriptrust/internal/token"
)

func TestDecorationBasic(t *testing.T) {
	lx, rep := makeTestLexer("/* xxx, mut: counter */ let count = 0;")
	tok := lx.Next()
	if tok.Kind != token.Decoration {
		t.Fatalf("first token = %v, want Decoration", tok.Kind)
	}
	if tok.Deco == nil {
		t.Fatal("decoration payload missing")
	}
	if tok.Deco.Keyword != token.DecoMut {
		t.Errorf("keyword = %q, want mut", tok.Deco.Keyword)
	}
	if tok.Deco.Description != "counter" {
		t.Errorf("description = %q, want counter", tok.Deco.Description)
	}
	if rep.ErrorCount() != 0 {
		t.Errorf("unexpected errors: %v", rep.Messages())
	}

	// the rest of the stream is untouched
	rest := lx.Tokens()
	kinds := []token.Kind{token.KwLet, token.Ident, token.Assign, token.NumberLit, token.Semicolon, token.EOF}
	if len(rest) != len(kinds) {
		t.Fatalf("rest = %v", rest)
	}
	for i, k := range kinds {
		if rest[i].Kind != k {
			t.Errorf("rest[%d] = %v, want %v", i, rest[i].Kind, k)
		}
	}
}

func TestDecorationWhitespaceTolerant(t *testing.T) {
	tests := []struct {
		input   string
		keyword token.DecorationKeyword
		desc    string
	}{
		{"/*xxx,immutable:pi*/", token.DecoImmutable, "pi"},
		{"/*  \txxx ,\n ownership : borrowed from caller  */", token.DecoOwnership, "borrowed from caller"},
		{"/* xxx, pure: no side effects */", token.DecoPure, "no side effects"},
		{"/* xxx, lifetime: outlives the request */", token.DecoLifetime, "outlives the request"},
	}
	for _, tt := range tests {
		lx, _ := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != token.Decoration {
			t.Errorf("%q: kind = %v, want Decoration", tt.input, tok.Kind)
			continue
		}
		if tok.Deco.Keyword != tt.keyword || tok.Deco.Description != tt.desc {
			t.Errorf("%q: payload = (%q, %q), want (%q, %q)",
				tt.input, tok.Deco.Keyword, tok.Deco.Description, tt.keyword, tt.desc)
		}
	}
}

func TestMalformedDecorationsAreOrdinaryComments(t *testing.T) {
	// missing tag, wrong tag, missing comma, missing colon: all must re-lex
	// as discarded comments with zero decoration tokens and no stray output.
	inputs := []string{
		"/* mut: counter */ a",
		"/* xx, mut: counter */ a",
		"/* xxxy, mut: c */ a",
		"/* xxx mut: counter */ a",
		"/* xxx, mut counter */ a",
		"/* xxx, */ a",
	}
	for _, input := range inputs {
		lx, rep := makeTestLexer(input)
		tokens := lx.Tokens()
		if len(tokens) != 2 || tokens[0].Kind != token.Ident || tokens[1].Kind != token.EOF {
			t.Errorf("%q: tokens = %v, want [Ident EOF]", input, tokens)
		}
		if rep.ErrorCount() != 0 {
			t.Errorf("%q: unexpected errors %v", input, rep.Messages())
		}
	}
}

func TestMalformedDecorationRewindIsExact(t *testing.T) {
	// After the failed decoration attempt the ordinary comment is skipped
	// and the following token's span still points at the right bytes.
	input := "/* xxx no colon here */ let"
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != token.KwLet {
		t.Fatalf("token = %v, want let", tok.Kind)
	}
	if tok.Span.Start != 24 || tok.Span.End != 27 {
		t.Errorf("span = %v, want 24-27", tok.Span)
	}
}

func TestDecorationUnknownKeywordWarns(t *testing.T) {
	lx, rep := makeTestLexer("/* xxx, borrowed: x */ a")
	tok := lx.Next()
	if tok.Kind != token.Decoration {
		t.Fatalf("kind = %v, want Decoration (unknown keywords still parse)", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownDecorationKeyword {
		t.Errorf("diagnostics = %v", rep.Messages())
	}
	if rep.diagnostics[0].Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", rep.diagnostics[0].Severity)
	}
}

func TestDecorationUnterminated(t *testing.T) {
	// No closing */ after the description: the decoration attempt fails and
	// the ordinary-comment path reports the unterminated comment.
	lx, rep := makeTestLexer("/* xxx, mut: counter")
	tokens := lx.Tokens()
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Errorf("tokens = %v, want [EOF]", tokens)
	}
	if rep.ErrorCount() != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Errorf("diagnostics = %v", rep.Messages())
	}
}

func TestMultipleDecorations(t *testing.T) {
	lx, _ := makeTestLexer("/* xxx, mut: a */ /* xxx, unsafe: raw */ let x = 1;")
	first := lx.Next()
	second := lx.Next()
	if first.Kind != token.Decoration || second.Kind != token.Decoration {
		t.Fatalf("kinds = %v %v", first.Kind, second.Kind)
	}
	if first.Deco.Keyword != token.DecoMut || second.Deco.Keyword != token.DecoUnsafe {
		t.Errorf("keywords = %q %q", first.Deco.Keyword, second.Deco.Keyword)
	}
	if lx.Next().Kind != token.KwLet {
		t.Error("expected let after decorations")
	}
}
