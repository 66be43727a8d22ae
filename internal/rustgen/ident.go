package rustgen

// rustReserved holds the Rust keywords that must not appear as plain
// identifiers in the output. Most escape as raw identifiers; the few that
// cannot be raw map to a trailing-underscore form instead.
var rustReserved = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true,
	"crate": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "match": true, "mod": true,
	"move": true, "mut": true, "pub": true, "ref": true, "return": true,
	"static": true, "struct": true, "super": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "async": true, "await": true, "self": true, "Self": true,
}

// noRawForm lists reserved words the r# syntax rejects.
var noRawForm = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true,
}

// escapeIdent makes name safe to emit as a Rust identifier. The same escape
// applies at the declaration and every reference, so renamed identifiers
// stay consistent across the output.
func escapeIdent(name string) string {
	if !rustReserved[name] && !noRawForm[name] {
		return name
	}
	if noRawForm[name] {
		return name + "_"
	}
	return "r#" + name
}
