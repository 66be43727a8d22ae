package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"scriptrust/internal/diagfmt"
	"scriptrust/internal/driver"
)

func TestPrettyFormatsPositionAndUnderline(t *testing.T) {
	res := driver.Parse("bad.srs", []byte("let a = 1;\nlet = 2;"), 0)
	if !res.Bag.HasErrors() {
		t.Fatal("expected errors")
	}

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, res.Bag, res.FileSet, diagfmt.PrettyOpts{})
	out := buf.String()

	if !strings.Contains(out, "bad.srs:2:5:") {
		t.Errorf("missing position header:\n%s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("missing severity:\n%s", out)
	}
	if !strings.Contains(out, "let = 2;") {
		t.Errorf("missing source line context:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing underline:\n%s", out)
	}
}

func TestPrettyUnderlineAlignment(t *testing.T) {
	res := driver.Tokenize("bad.srs", []byte("let a = #;"), 0)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, res.Bag, res.FileSet, diagfmt.PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, context, underline:\n%s", buf.String())
	}
	// the caret must sit under the '#' (source col 9, plus 2-space margin)
	underline := lines[2]
	if idx := strings.Index(underline, "^"); idx != 10 {
		t.Errorf("caret at byte %d, want 10:\n%s", idx, buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	res := driver.Parse("bad.srs", []byte("let = 2;"), 0)

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("severity = %q", d.Severity)
	}
	if d.CodeID != "SYN_EXPECT_IDENTIFIER" {
		t.Errorf("code id = %q", d.CodeID)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 5 {
		t.Errorf("location = %d:%d, want 1:5", d.Location.StartLine, d.Location.StartCol)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	res := driver.Tokenize("t.srs", []byte("/* xxx, mut: counter */ let i = 0;"), 0)

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, res.Tokens, res.FileSet); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Decoration") {
		t.Errorf("missing decoration token:\n%s", out)
	}
	if !strings.Contains(out, "[mut: counter]") {
		t.Errorf("missing decoration payload:\n%s", out)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("missing EOF:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	res := driver.Tokenize("t.srs", []byte("let i = 0;"), 0)

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, res.Tokens); err != nil {
		t.Fatal(err)
	}
	var tokens []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &tokens); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(tokens) != 6 {
		t.Errorf("token count = %d, want 6", len(tokens))
	}
	if tokens[0].Kind != "let" {
		t.Errorf("first kind = %q, want let", tokens[0].Kind)
	}
}

func TestDumpAST(t *testing.T) {
	res := driver.Parse("t.srs", []byte("/* xxx, mut: n */\nlet n = 1 + 2;"), 0)
	if res.Bag.HasErrors() {
		t.Fatalf("parse failed: %v", res.Bag.Items())
	}

	var buf bytes.Buffer
	diagfmt.DumpAST(&buf, res.Program)
	out := buf.String()
	for _, want := range []string{"Program (1 statements)", "@mut: n", "let n", "binary +", "number 1", "number 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}
