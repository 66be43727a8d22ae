package token

import (
	"scriptrust/internal/source"
)

// Token represents a single source token with its location.
// Deco is non-nil iff Kind == Decoration.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Deco *DecorationPayload
}

// IsLiteral reports whether the token is a numeric, boolean, string, or
// null-like literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwLet, KwConst, KwFunction, KwClass, KwInterface, KwType, KwExtends,
		KwImplements, KwConstructor, KwNew, KwReturn, KwIf, KwElse, KwWhile,
		KwFor, KwImport, KwExport, KwFrom, KwAs, KwDefault, KwAsync, KwAwait,
		KwTry, KwCatch, KwFinally, KwThrow, KwThis, KwTrue, KwFalse, KwNull,
		KwUndefined:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether k is a keyword the grammar reserves only in
// specific positions (type aliases, import clauses), leaving it free to name
// a variable, parameter, field, or object key elsewhere.
func (k Kind) IsContextual() bool {
	switch k {
	case KwType, KwFrom, KwAs, KwDefault:
		return true
	default:
		return false
	}
}
