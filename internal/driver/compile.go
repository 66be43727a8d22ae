// Package driver orchestrates the compile pipeline: lexing, parsing, and
// Rust generation, plus the directory and cache frontends the CLI uses.
package driver

import (
	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/lexer"
	"scriptrust/internal/observ"
	"scriptrust/internal/parser"
	"scriptrust/internal/rustgen"
	"scriptrust/internal/source"
)

// DefaultMaxDiagnostics caps the diagnostics collected per compile.
const DefaultMaxDiagnostics = 256

// CompileOptions tunes one compile.
type CompileOptions struct {
	MaxDiagnostics int
	Timer          *observ.Timer // optional phase timing
}

// CompileResult holds everything one compile produced. Code is only
// meaningful when the bag has no errors.
type CompileResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Program *ast.Program
	Code    string
	Bag     *diag.Bag
}

// CompileError is the flattened error form for external consumers. Line and
// Col are 1-based.
type CompileError struct {
	Message string `json:"message"`
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
}

// Compile runs the full pipeline on one in-memory source. Lex and parse
// errors abort before generation; generation itself never reports.
func Compile(name string, src []byte, opts CompileOptions) *CompileResult {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	file := fs.Get(fileID)

	res := &CompileResult{
		FileSet: fs,
		FileID:  fileID,
		Program: &ast.Program{},
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := &diag.BagReporter{Bag: res.Bag}

	var lexPhase int
	if opts.Timer != nil {
		lexPhase = opts.Timer.Begin("lex")
	}
	tokens := lexer.New(file, lexer.Options{Reporter: reporter}).Tokens()
	if opts.Timer != nil {
		opts.Timer.End(lexPhase, "")
	}
	if res.Bag.HasErrors() {
		res.Bag.Sort()
		return res
	}

	var parsePhase int
	if opts.Timer != nil {
		parsePhase = opts.Timer.Begin("parse")
	}
	prog, ok := parser.Parse(tokens, parser.Options{Reporter: reporter})
	if opts.Timer != nil {
		opts.Timer.End(parsePhase, "")
	}
	if !ok || res.Bag.HasErrors() {
		res.Bag.Sort()
		return res
	}
	res.Program = prog

	var genPhase int
	if opts.Timer != nil {
		genPhase = opts.Timer.Begin("rustgen")
	}
	res.Code = rustgen.Generate(prog)
	if opts.Timer != nil {
		opts.Timer.End(genPhase, "")
	}

	res.Bag.Sort()
	return res
}

// Ok reports whether the compile produced usable code.
func (r *CompileResult) Ok() bool {
	return !r.Bag.HasErrors()
}

// Errors flattens the bag's errors into position-resolved records.
// An empty slice means the compile succeeded.
func (r *CompileResult) Errors() []CompileError {
	var out []CompileError
	for _, d := range r.Bag.Items() {
		if d.Severity < diag.SevError {
			continue
		}
		start, _ := r.FileSet.Resolve(d.Primary)
		out = append(out, CompileError{
			Message: d.Message,
			Line:    start.Line,
			Col:     start.Col,
		})
	}
	return out
}
