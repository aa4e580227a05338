package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiam/wks2svg/ast"
	"github.com/xiam/wks2svg/lexer"
)

func TestParserBuildTree(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{
			In:  `1`,
			Out: `1`,
		},
		{
			In:  `1 3 3.4 5.6789`,
			Out: `1 3 3.4 5.6789`,
		},
		{
			In:  `()`,
			Out: `()`,
		},
		{
			In:  `(1 2 3)`,
			Out: `(1 2 3)`,
		},
		{
			In:  "(1\n\t 2\n\n3\n)",
			Out: "(1 2 3)",
		},
		{
			In:  `() (1) ()`,
			Out: `() (1) ()`,
		},
		{
			In:  `(1 2 () (3(4(5))) 6 (7))`,
			Out: `(1 2 () (3 (4 (5))) 6 (7))`,
		},
		{
			In: "(a		b c def GHIJ 1 1.23)",
			Out: "(a b c def GHIJ 1 1.23)",
		},
		{
			In:  `(+ -1 55 +6.3 +2 -3.23 4.01 1e3 .5)`,
			Out: `(+ -1 55 6.3 2 -3.23 4.01 1000 0.5)`,
		},
		{
			In:  `(name segm1:Line) (name +inf) (name -)`,
			Out: `(name segm1:Line) (name +inf) (name -)`,
		},
		{
			In:  `(tbtext "Title: %T" (name "") (pos 109 20))`,
			Out: `(tbtext "Title: %T" (name "") (pos 109 20))`,
		},
		{
			In:  `(comment "a (b) \"c\"")`,
			Out: `(comment "a (b) \"c\"")`,
		},
		{
			In:  `(setup (size 210 297)) (line (start 0 0) (end 10 10))`,
			Out: `(setup (size 210 297)) (line (start 0 0) (end 10 10))`,
		},
		{
			In: `(page_layout
  (setup (textsize 1.5 1.5)(linewidth 0.15)(textlinewidth 0.15)
  (left_margin 10)(right_margin 10)(top_margin 10)(bottom_margin 10))
  (rect (name "") (start 110 34) (end 2 2) (comment "rect around the title block"))
)`,
			Out: `(page_layout (setup (textsize 1.5 1.5) (linewidth 0.15) (textlinewidth 0.15) (left_margin 10) (right_margin 10) (top_margin 10) (bottom_margin 10)) (rect (name "") (start 110 34) (end 2 2) (comment "rect around the title block")))`,
		},
	}

	for i := range testCases {
		root, err := Parse([]byte(testCases[i].In))
		require.NoError(t, err, "input: %q", testCases[i].In)
		require.NotNil(t, root)

		s := ast.Encode(root)
		assert.Equal(t, testCases[i].Out, string(s))
	}
}

func TestParserAtomTypes(t *testing.T) {
	root, err := Parse([]byte(`(pos 1 2.5 rbcorner "3")`))
	require.NoError(t, err)

	pos := root.Child(0)
	require.NotNil(t, pos)

	assert.Equal(t, ast.NodeTypeSymbol, pos.Child(0).Type())
	assert.Equal(t, ast.NodeTypeInt, pos.Child(1).Type())
	assert.Equal(t, ast.NodeTypeFloat, pos.Child(2).Type())
	assert.Equal(t, ast.NodeTypeSymbol, pos.Child(3).Type())
	assert.Equal(t, ast.NodeTypeString, pos.Child(4).Type())

	assert.Equal(t, pos, pos.Child(1).Parent())
	assert.Equal(t, root, pos.Parent())
}

func TestParserLeafCount(t *testing.T) {
	testCases := []string{
		`1`,
		`()`,
		`(a b c)`,
		`(tbtext "Sheet: %S/%N" (name "") (pos 1 2) (font (size 2 2) bold))`,
		`(setup (size 210 297)) (line (start 0 0) (end 10 10)) (blob 1 2 3)`,
		"(a\n\t(b (c (d \"e f\" \"\"))))",
	}

	for i := range testCases {
		tokens, err := lexer.Tokenize([]byte(testCases[i]))
		require.NoError(t, err)

		atoms := 0
		for _, tok := range tokens {
			if tok.Is(lexer.TokenAtom) || tok.Is(lexer.TokenString) {
				atoms++
			}
		}

		root, err := Parse([]byte(testCases[i]))
		require.NoError(t, err)

		assert.Equal(t, atoms, root.Leaves(), "input: %q", testCases[i])
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		In  string
		Err error
	}{
		{In: ``, Err: ErrEmptyInput},
		{In: " \n\t ", Err: ErrEmptyInput},
		{In: `(`, Err: ErrUnexpectedEOF},
		{In: `(1`, Err: ErrUnexpectedEOF},
		{In: `(((1 1 1`, Err: ErrUnexpectedEOF},
		{In: `(()`, Err: ErrUnexpectedEOF},
		{In: `)`, Err: ErrUnexpectedToken},
		{In: `1 )`, Err: ErrUnexpectedToken},
		{In: `(a))`, Err: ErrUnexpectedToken},
		{In: `(page_layout (setup (size 210 297))`, Err: ErrUnexpectedEOF},
		{In: `(tbtext "open`, Err: lexer.ErrUnterminatedString},
	}

	for i := range testCases {
		root, err := Parse([]byte(testCases[i].In))
		assert.Nil(t, root)
		require.Error(t, err)

		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "input: %q", testCases[i].In)
		assert.ErrorIs(t, err, testCases[i].Err, "input: %q", testCases[i].In)
	}
}

func TestParserErrorPosition(t *testing.T) {
	testCases := []struct {
		In   string
		Line int
		Col  int
	}{
		{In: "(a\n (b", Line: 2, Col: 2},
		{In: `(a))`, Line: 1, Col: 4},
		{In: "(a\n  \"b", Line: 2, Col: 3},
	}

	for i := range testCases {
		p := New(strings.NewReader(testCases[i].In))
		err := p.Parse()
		require.Error(t, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, testCases[i].Line, perr.Line, "input: %q", testCases[i].In)
		assert.Equal(t, testCases[i].Col, perr.Col, "input: %q", testCases[i].In)
		assert.Contains(t, err.Error(), "parse error at")
	}
}

func TestParserRoot(t *testing.T) {
	p := New(strings.NewReader(`(page_layout (line (start 1 1) (end 2 2)))`))
	require.NoError(t, p.Parse())

	root := p.Root()
	assert.Nil(t, root.Token())
	assert.Nil(t, root.Parent())
	require.Equal(t, 1, root.Len())
	assert.Equal(t, "page_layout", root.Child(0).Head())
}
