// Package diagfmt renders diagnostics, token streams, and syntax trees in
// human-readable and JSON forms for the CLI.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to locations
	IncludeNotes     bool
}
