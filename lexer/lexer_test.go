package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	testCases := []string{
		`1`,

		`-1 -2.22`,

		`(line (name segm1:Line) (start 50 2) (end 50 0) (repeat 30) (incrx 50))`,

		`(tbtext "Title: %T" (name "") (pos 109 20) (font bold))`,

		`(page_layout
			(setup (textsize 1.5 1.5) (linewidth 0.15) (textlinewidth 0.15)
			(left_margin 10) (right_margin 10) (top_margin 10) (bottom_margin 10))
			(rect (name "") (start 110 34) (end 2 2) (comment "rect around the title block"))
		)`,

		`(tbtext "😊" (pos 1 1))`,

		``,
	}

	for i := range testCases {
		tokens, err := Tokenize([]byte(testCases[i]))
		t.Logf("tokens: %v", tokens)

		assert.NotNil(t, tokens)
		assert.NoError(t, err)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		In  string
		Out []TokenType
	}{
		{
			``,
			[]TokenType{TokenEOF},
		},
		{
			`1`,
			[]TokenType{TokenAtom, TokenEOF},
		},
		{
			`()`,
			[]TokenType{TokenOpenList, TokenCloseList, TokenEOF},
		},
		{
			`(start 0 0)`,
			[]TokenType{
				TokenOpenList,
				TokenAtom, TokenWhitespace, TokenAtom, TokenWhitespace, TokenAtom,
				TokenCloseList,
				TokenEOF,
			},
		},
		{
			"(a\n\t b)",
			[]TokenType{
				TokenOpenList,
				TokenAtom, TokenNewLine, TokenWhitespace, TokenAtom,
				TokenCloseList,
				TokenEOF,
			},
		},
		{
			`(tbtext "Sheet: %S/%N")`,
			[]TokenType{
				TokenOpenList,
				TokenAtom, TokenWhitespace, TokenString,
				TokenCloseList,
				TokenEOF,
			},
		},
		{
			`""`,
			[]TokenType{TokenString, TokenEOF},
		},
		{
			`a"b"c`,
			[]TokenType{TokenAtom, TokenString, TokenAtom, TokenEOF},
		},
	}

	for i := range testCases {
		tokens, err := Tokenize([]byte(testCases[i].In))
		require.NoError(t, err)

		types := make([]TokenType, 0, len(tokens))
		for _, tok := range tokens {
			types = append(types, tok.Type())
		}
		assert.Equal(t, testCases[i].Out, types, "input: %q", testCases[i].In)
	}
}

func TestTokenizeStrings(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{`"Title: %T"`, `Title: %T`},
		{`"rect around the title block"`, `rect around the title block`},
		{`"say \"hi\""`, `say "hi"`},
		{`"a\\b"`, `a\b`},
		{`"line\nbreak"`, "line\nbreak"},
		{`"keep \d"`, `keep \d`},
		{`"(not a list)"`, `(not a list)`},
		{`""`, ``},
	}

	for i := range testCases {
		tokens, err := Tokenize([]byte(testCases[i].In))
		require.NoError(t, err)
		require.Len(t, tokens, 2)

		assert.True(t, tokens[0].Is(TokenString))
		assert.Equal(t, testCases[i].Out, tokens[0].Text())
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize([]byte("(setup\n  (linewidth 0.15))"))
	require.NoError(t, err)

	var atoms []Token
	for _, tok := range tokens {
		if tok.Is(TokenAtom) {
			atoms = append(atoms, tok)
		}
	}
	require.Len(t, atoms, 3)

	line, col := atoms[0].Pos()
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)

	line, col = atoms[1].Pos()
	assert.Equal(t, 2, line)
	assert.Equal(t, 4, col)

	line, col = atoms[2].Pos()
	assert.Equal(t, 2, line)
	assert.Equal(t, 14, col)
}

func TestTokenizeErrors(t *testing.T) {
	testCases := []string{
		`"`,
		`(tbtext "unterminated`,
		`"trailing escape\`,
	}

	for i := range testCases {
		tokens, err := Tokenize([]byte(testCases[i]))
		assert.Nil(t, tokens)
		assert.ErrorIs(t, err, ErrUnterminatedString)
	}
}

func TestLexerPosOnError(t *testing.T) {
	lx := New(strings.NewReader("(a\n  \"open"))
	err := lx.Scan()
	assert.ErrorIs(t, err, ErrUnterminatedString)

	line, col := lx.Pos()
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
}

func TestTokenizeInvalidInput(t *testing.T) {
	testCases := []string{
		"(line \x00)",
		"(tbtext \"\xff\")",
		"(setup \xc3)",
	}

	for i := range testCases {
		tokens, err := Tokenize([]byte(testCases[i]))
		assert.Nil(t, tokens)
		assert.ErrorIs(t, err, ErrInvalidInput, "%q", testCases[i])
	}
}
