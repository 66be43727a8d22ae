package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Lexical errors live in the 1000 range,
// syntax errors in the 2000 range. The generator never reports: constructs it
// cannot translate degrade to inline placeholder comments in the output.
type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexDanglingDecoration       Code = 1005
	LexUnknownDecorationKeyword Code = 1006

	// syntax
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynExpectToken        Code = 2006
	SynExpectMember       Code = 2007
	SynDecorationAdrift   Code = 2008
)

var codeIDs = map[Code]string{
	UnknownCode:                 "UNKNOWN",
	LexUnknownChar:              "LEX_UNKNOWN_CHAR",
	LexUnterminatedString:       "LEX_UNTERMINATED_STRING",
	LexUnterminatedBlockComment: "LEX_UNTERMINATED_BLOCK_COMMENT",
	LexBadNumber:                "LEX_BAD_NUMBER",
	LexDanglingDecoration:       "LEX_DANGLING_DECORATION",
	LexUnknownDecorationKeyword: "LEX_UNKNOWN_DECORATION_KEYWORD",
	SynUnexpectedToken:          "SYN_UNEXPECTED_TOKEN",
	SynUnexpectedTopLevel:       "SYN_UNEXPECTED_TOP_LEVEL",
	SynExpectIdentifier:         "SYN_EXPECT_IDENTIFIER",
	SynExpectExpression:         "SYN_EXPECT_EXPRESSION",
	SynExpectType:               "SYN_EXPECT_TYPE",
	SynExpectToken:              "SYN_EXPECT_TOKEN",
	SynExpectMember:             "SYN_EXPECT_MEMBER",
	SynDecorationAdrift:         "SYN_DECORATION_ADRIFT",
}

// ID returns the stable string identifier of the code.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}

func (c Code) String() string {
	return fmt.Sprintf("SR%04d", uint16(c))
}
