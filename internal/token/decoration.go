package token

// DecorationKeyword is the fixed vocabulary of decoration comments.
// Free-text keywords outside this set are carried through verbatim and
// flagged by the lexer with a warning.
type DecorationKeyword string

const (
	DecoImmutable DecorationKeyword = "immutable"
	DecoMut       DecorationKeyword = "mut"
	DecoOwnership DecorationKeyword = "ownership"
	DecoPure      DecorationKeyword = "pure"
	DecoUnsafe    DecorationKeyword = "unsafe"
	DecoLifetime  DecorationKeyword = "lifetime"
)

// KnownDecorationKeyword reports whether kw belongs to the fixed vocabulary.
func KnownDecorationKeyword(kw DecorationKeyword) bool {
	switch kw {
	case DecoImmutable, DecoMut, DecoOwnership, DecoPure, DecoUnsafe, DecoLifetime:
		return true
	default:
		return false
	}
}

// DecorationPayload is the parsed (keyword, description) pair of a
// decoration comment `/* xxx, <keyword>: <description> */`.
type DecorationPayload struct {
	Keyword     DecorationKeyword
	Description string
}
