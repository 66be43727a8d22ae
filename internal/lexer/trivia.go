package lexer

import (
	"strings"

	"scriptrust/internal/diag"
	"scriptrust/internal/token"
)

// decorationTag is the reserved literal that distinguishes a decoration
// comment from an ordinary block comment.
const decorationTag = "xxx"

// skipTrivia consumes whitespace and comments in front of the next
// significant token. When a block comment matches the decoration grammar it
// is returned as a token instead of being discarded.
func (lx *Lexer) skipTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}

		if b == '/' {
			b0, b1, ok := lx.cursor.Peek2()
			if !ok {
				return token.Token{}, false
			}
			if b0 == '/' && b1 == '/' {
				lx.skipLineComment()
				continue
			}
			if b0 == '/' && b1 == '*' {
				if tok, isDeco := lx.scanBlockCommentOrDecoration(); isDeco {
					return tok, true
				}
				continue
			}
			return token.Token{}, false
		}

		return token.Token{}, false
	}
	return token.Token{}, false
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// scanBlockCommentOrDecoration sits on "/*". It first attempts the
// decoration grammar
//
//	/* xxx , <keyword> : <description> */
//
// and on any mismatch rewinds byte-exactly to the comment opener and
// re-lexes an ordinary discarded block comment. The rewind must be exact:
// every later span and line/column report depends on it.
func (lx *Lexer) scanBlockCommentOrDecoration() (token.Token, bool) {
	start := lx.cursor.Mark()
	if tok, ok := lx.tryScanDecoration(start); ok {
		return tok, true
	}
	lx.cursor.Reset(start)
	lx.skipBlockComment(start)
	return token.Token{}, false
}

// tryScanDecoration parses the decoration grammar from the "/*" opener.
// It returns false without restoring the cursor; the caller owns the rewind.
func (lx *Lexer) tryScanDecoration(start Mark) (token.Token, bool) {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'

	// optional horizontal whitespace before the reserved literal
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}

	for i := 0; i < len(decorationTag); i++ {
		if !lx.cursor.Eat(decorationTag[i]) {
			return token.Token{}, false
		}
	}

	lx.skipDecorationSpace()
	if !lx.cursor.Eat(',') {
		return token.Token{}, false
	}
	lx.skipDecorationSpace()

	// keyword: everything up to ':', trimmed; reaching "*/" or EOF first is
	// a structural mismatch.
	kwStart := lx.cursor.Mark()
	for {
		if lx.cursor.EOF() {
			return token.Token{}, false
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			return token.Token{}, false
		}
		if lx.cursor.Peek() == ':' {
			break
		}
		lx.cursor.Bump()
	}
	keyword := strings.TrimSpace(lx.textFrom(lx.cursor.SpanFrom(kwStart)))
	lx.cursor.Bump() // ':'

	// description: everything up to the closing "*/", trimmed
	descStart := lx.cursor.Mark()
	for {
		if lx.cursor.EOF() {
			return token.Token{}, false
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			break
		}
		lx.cursor.Bump()
	}
	description := strings.TrimSpace(lx.textFrom(lx.cursor.SpanFrom(descStart)))
	lx.cursor.Bump() // '*'
	lx.cursor.Bump() // '/'

	sp := lx.cursor.SpanFrom(start)
	deco := &token.DecorationPayload{
		Keyword:     token.DecorationKeyword(keyword),
		Description: description,
	}
	if !token.KnownDecorationKeyword(deco.Keyword) {
		lx.report(diag.LexUnknownDecorationKeyword, diag.SevWarning, sp,
			"unknown decoration keyword \""+keyword+"\"")
	}
	return token.Token{
		Kind: token.Decoration,
		Span: sp,
		Text: lx.textFrom(sp),
		Deco: deco,
	}, true
}

func (lx *Lexer) skipDecorationSpace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// skipBlockComment discards an ordinary "/* ... */" comment.
func (lx *Lexer) skipBlockComment(start Mark) {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
