package token

var keywords = map[string]Kind{
	"let":         KwLet,
	"const":       KwConst,
	"function":    KwFunction,
	"class":       KwClass,
	"interface":   KwInterface,
	"type":        KwType,
	"extends":     KwExtends,
	"implements":  KwImplements,
	"constructor": KwConstructor,
	"new":         KwNew,
	"return":      KwReturn,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"for":         KwFor,
	"import":      KwImport,
	"export":      KwExport,
	"from":        KwFrom,
	"as":          KwAs,
	"default":     KwDefault,
	"async":       KwAsync,
	"await":       KwAwait,
	"try":         KwTry,
	"catch":       KwCatch,
	"finally":     KwFinally,
	"throw":       KwThrow,
	"this":        KwThis,
	"true":        KwTrue,
	"false":       KwFalse,
	"null":        KwNull,
	"undefined":   KwUndefined,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only the lowercase spellings are reserved.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
