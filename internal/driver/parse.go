package driver

import (
	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/lexer"
	"scriptrust/internal/parser"
	"scriptrust/internal/source"
)

// ParseResult holds the syntax tree of one source plus its diagnostics.
// Program is an empty program when the parse failed.
type ParseResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Program *ast.Program
	Bag     *diag.Bag
}

// Parse lexes and parses one in-memory source.
func Parse(name string, src []byte, maxDiagnostics int) *ParseResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)

	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	res := &ParseResult{
		FileSet: fs,
		FileID:  fileID,
		Program: &ast.Program{},
		Bag:     bag,
	}

	tokens := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}).Tokens()
	if bag.HasErrors() {
		bag.Sort()
		return res
	}
	if prog, ok := parser.Parse(tokens, parser.Options{Reporter: reporter}); ok {
		res.Program = prog
	}
	bag.Sort()
	return res
}

// ParseFile loads path from disk and parses it.
func ParseFile(path string, maxDiagnostics int) (*ParseResult, error) {
	content, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content, maxDiagnostics), nil
}
