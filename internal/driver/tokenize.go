package driver

import (
	"scriptrust/internal/diag"
	"scriptrust/internal/lexer"
	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

// TokenizeResult holds the token stream of one source plus its diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one in-memory source to the full token slice, EOF included.
func Tokenize(name string, src []byte, maxDiagnostics int) *TokenizeResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(fs.Get(fileID), lexer.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	}).Tokens()
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
	}
}

// TokenizeFile loads path from disk and tokenizes it.
func TokenizeFile(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(fs.Get(fileID), lexer.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	}).Tokens()
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
