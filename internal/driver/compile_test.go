package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptrust/internal/driver"
	"scriptrust/internal/observ"
)

const helloSrc = `const GREETING = "Hello";
/* xxx, mut: counter */
let n = 0;
n = n + 1;
console.log(GREETING + ", world!");
`

func TestCompileSuccess(t *testing.T) {
	res := driver.Compile("hello.srs", []byte(helloSrc), driver.CompileOptions{})
	if !res.Ok() {
		t.Fatalf("compile failed: %v", res.Errors())
	}
	if len(res.Errors()) != 0 {
		t.Errorf("Errors() must be empty on success")
	}
	if !strings.Contains(res.Code, "const GREETING: &str = \"Hello\";") {
		t.Errorf("missing const:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "let mut n = 0.0;") {
		t.Errorf("missing mut let:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "fn main()") {
		t.Errorf("missing main:\n%s", res.Code)
	}
}

func TestCompileLexErrorAborts(t *testing.T) {
	res := driver.Compile("bad.srs", []byte("let a = 1 # 2;"), driver.CompileOptions{})
	if res.Ok() {
		t.Fatal("expected failure")
	}
	errs := res.Errors()
	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
	if errs[0].Line != 1 {
		t.Errorf("line = %d, want 1", errs[0].Line)
	}
	if res.Code != "" {
		t.Error("code must be empty after a failed compile")
	}
}

func TestCompileParseErrorPosition(t *testing.T) {
	res := driver.Compile("bad.srs", []byte("let a = 1;\nlet = 2;"), driver.CompileOptions{})
	if res.Ok() {
		t.Fatal("expected failure")
	}
	errs := res.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	if errs[0].Line != 2 || errs[0].Col != 5 {
		t.Errorf("position = %d:%d, want 2:5", errs[0].Line, errs[0].Col)
	}
}

func TestCompileDeterministic(t *testing.T) {
	first := driver.Compile("hello.srs", []byte(helloSrc), driver.CompileOptions{})
	second := driver.Compile("hello.srs", []byte(helloSrc), driver.CompileOptions{})
	if first.Code != second.Code {
		t.Error("same source must compile to byte-identical output")
	}
}

func TestCompileTimings(t *testing.T) {
	timer := observ.NewTimer()
	res := driver.Compile("hello.srs", []byte(helloSrc), driver.CompileOptions{Timer: timer})
	if !res.Ok() {
		t.Fatalf("compile failed: %v", res.Errors())
	}
	report := timer.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("expected 3 timed phases, got %d", len(report.Phases))
	}
	names := []string{report.Phases[0].Name, report.Phases[1].Name, report.Phases[2].Name}
	want := []string{"lex", "parse", "rustgen"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTokenize(t *testing.T) {
	res := driver.Tokenize("t.srs", []byte("let x = 1;"), 0)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	// let, x, =, 1, ;, EOF
	if len(res.Tokens) != 6 {
		t.Errorf("token count = %d, want 6", len(res.Tokens))
	}
}

func TestParseEmptyProgramOnFailure(t *testing.T) {
	res := driver.Parse("t.srs", []byte("let = 1;"), 0)
	if !res.Bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if res.Program == nil || len(res.Program.Statements) != 0 {
		t.Error("failed parse must yield an empty program")
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.srs":        "let a = 1;",
		"b.srs":        "let b = 2;",
		"sub/c.srs":    "let c = 3;",
		"ignored.txt":  "not a source",
		"sub/deep.txt": "also ignored",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := driver.CompileDir(context.Background(), dir, driver.CompileOptions{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// sorted by path
	for i := 1; i < len(results); i++ {
		if results[i-1].Path >= results[i].Path {
			t.Errorf("results not sorted: %q before %q", results[i-1].Path, results[i].Path)
		}
	}
	for _, r := range results {
		if !r.Result.Ok() {
			t.Errorf("%s failed: %v", r.Path, r.Result.Errors())
		}
	}
}

func TestCompileDirEmpty(t *testing.T) {
	results, err := driver.CompileDir(context.Background(), t.TempDir(), driver.CompileOptions{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Errorf("expected nil results for an empty dir")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	src := []byte(helloSrc)
	first, hit := driver.CompileCached(cache, "hello.srs", src, driver.CompileOptions{})
	if hit {
		t.Fatal("first compile must be a miss")
	}
	if !first.Ok() {
		t.Fatalf("compile failed: %v", first.Errors())
	}

	second, hit := driver.CompileCached(cache, "hello.srs", src, driver.CompileOptions{})
	if !hit {
		t.Fatal("second compile must hit the cache")
	}
	if second.Code != first.Code {
		t.Error("cached code differs from compiled code")
	}
}

func TestDiskCacheMissOnChangedSource(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	driver.CompileCached(cache, "a.srs", []byte("let a = 1;"), driver.CompileOptions{})
	_, hit := driver.CompileCached(cache, "a.srs", []byte("let a = 2;"), driver.CompileOptions{})
	if hit {
		t.Error("changed source must miss the cache")
	}
}

func TestDiskCacheSkipsFailedCompiles(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	driver.CompileCached(cache, "bad.srs", []byte("let = 1;"), driver.CompileOptions{})
	_, hit := driver.CompileCached(cache, "bad.srs", []byte("let = 1;"), driver.CompileOptions{})
	if hit {
		t.Error("failed compiles must not be cached")
	}
}
