package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"scriptrust/internal/source"
	"scriptrust/internal/token"
)

// TokenOutput is one token in JSON form. Decoration tokens carry their
// parsed keyword/description payload.
type TokenOutput struct {
	Kind        string `json:"kind"`
	Text        string `json:"text,omitempty"`
	StartByte   uint32 `json:"start_byte"`
	EndByte     uint32 `json:"end_byte"`
	Keyword     string `json:"keyword,omitempty"`
	Description string `json:"description,omitempty"`
}

// FormatTokensPretty writes the token stream in human-readable form.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Deco != nil {
			fmt.Fprintf(w, " [%s: %s]", tok.Deco.Keyword, tok.Deco.Description)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:      tok.Kind.String(),
			Text:      tok.Text,
			StartByte: tok.Span.Start,
			EndByte:   tok.Span.End,
		}
		if tok.Deco != nil {
			out.Keyword = string(tok.Deco.Keyword)
			out.Description = tok.Deco.Description
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
