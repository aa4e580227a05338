package lexer

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid    TokenType = iota
	TokenOpenList             // Open parenthesis: "("
	TokenCloseList            // Close parenthesis: ")"
	TokenNewLine              // Newline: "\n"
	TokenQuote                // Double quote: '"'
	TokenBackslash            // Backslash: "\"
	TokenWhitespace           // Space, tab, form feed or carriage return: \s\f\t\r
	TokenString               // Double quoted text, escapes already decoded
	TokenAtom                 // Any other run of characters
	TokenEOF                  // End of file
)

var tokenValues = map[TokenType][]rune{
	TokenOpenList:   {'('},
	TokenCloseList:  {')'},
	TokenNewLine:    {'\n'},
	TokenQuote:      {'"'},
	TokenBackslash:  {'\\'},
	TokenWhitespace: []rune(" \f\t\r"),
}

var tokenNames = map[TokenType]string{
	TokenInvalid:    "invalid",
	TokenOpenList:   "open_list",
	TokenCloseList:  "close_list",
	TokenNewLine:    "newline",
	TokenQuote:      "quote",
	TokenBackslash:  "backslash",
	TokenWhitespace: "separator",
	TokenString:     "string",
	TokenAtom:       "atom",
	TokenEOF:        "EOF",
}

func (tt TokenType) String() string {
	if v, ok := tokenNames[tt]; ok {
		return v
	}
	return tokenNames[TokenInvalid]
}

func isTokenType(tt TokenType) func(r rune) bool {
	return func(r rune) bool {
		for _, v := range tokenValues[tt] {
			if v == r {
				return true
			}
		}
		return false
	}
}

// isAtomBreak reports whether r terminates a bare atom.
func isAtomBreak(r rune) bool {
	return isOpenList(r) || isCloseList(r) || isQuote(r) || isNewLine(r) || isWhitespace(r)
}
