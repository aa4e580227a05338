package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"text/scanner"
)

// ErrUnterminatedString is returned when the input ends inside a double
// quoted string.
var ErrUnterminatedString = errors.New("unterminated string")

// ErrInvalidInput is returned when the input holds invalid UTF-8 or NUL
// bytes.
var ErrInvalidInput = errors.New("invalid input")

type lexState func(*Lexer) lexState

var (
	isOpenList  = isTokenType(TokenOpenList)
	isCloseList = isTokenType(TokenCloseList)

	isNewLine    = isTokenType(TokenNewLine)
	isQuote      = isTokenType(TokenQuote)
	isBackslash  = isTokenType(TokenBackslash)
	isWhitespace = isTokenType(TokenWhitespace)
)

// New initializes a Lexer object
func New(r io.Reader) *Lexer {
	s := &scanner.Scanner{}

	lx := &Lexer{
		in:  s.Init(r),
		buf: []rune{},

		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}

	// Init resets the handler, without one the scanner prints to stderr.
	s.Error = func(_ *scanner.Scanner, msg string) {
		if lx.lastErr == nil {
			lx.lastErr = fmt.Errorf("%w: %s", ErrInvalidInput, msg)
		}
	}

	return lx
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in *scanner.Scanner

	tokens  []Token
	lastErr error

	buf []rune
	str []rune

	line, col           int
	startLine, startCol int
}

// Tokens returns the tokens detected by Scan, the last one is always of type
// TokenEOF unless Scan failed.
func (lx *Lexer) Tokens() []Token {
	return lx.tokens
}

// Pos returns the line and column where the token being scanned started.
func (lx *Lexer) Pos() (int, int) {
	return lx.startLine, lx.startCol
}

// Scan reads the whole input and splits it into tokens.
func (lx *Lexer) Scan() error {
	for state := lexDefaultState; state != nil; {
		state = state(lx)
	}

	if lx.lastErr == nil {
		lx.emit(TokenEOF)
	}

	return lx.lastErr
}

func (lx *Lexer) emit(tt TokenType) {
	lx.emitText(tt, string(lx.buf))
}

func (lx *Lexer) emitText(tt TokenType, text string) {
	lx.tokens = append(lx.tokens, Token{
		tt:     tt,
		lexeme: text,

		line: lx.startLine,
		col:  lx.startCol,
	})

	lx.startLine, lx.startCol = lx.line, lx.col
	lx.buf = lx.buf[0:0]
}

func (lx *Lexer) peek() rune {
	return lx.in.Peek()
}

func (lx *Lexer) next() (rune, error) {
	r := lx.in.Next()
	if lx.lastErr != nil {
		return rune(0), lx.lastErr
	}
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	lx.buf = append(lx.buf, r)
	if isNewLine(r) {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r, nil
}

func lexDefaultState(lx *Lexer) lexState {
	r, err := lx.next()
	if err != nil {
		return lexStateError(err)
	}

	switch {
	case isOpenList(r):
		return lexEmit(TokenOpenList)
	case isCloseList(r):
		return lexEmit(TokenCloseList)

	case isNewLine(r):
		return lexEmit(TokenNewLine)
	case isWhitespace(r):
		return lexCollectStream(TokenWhitespace)

	case isQuote(r):
		return lexString
	}

	return lexAtom
}

func lexAtom(lx *Lexer) lexState {
	for p := lx.peek(); p != scanner.EOF && !isAtomBreak(p); p = lx.peek() {
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
	}
	lx.emit(TokenAtom)
	return lexDefaultState
}

func lexString(lx *Lexer) lexState {
	lx.str = lx.str[0:0]

	for {
		r, err := lx.next()
		if err != nil {
			return lexStateError(ErrUnterminatedString)
		}

		switch {
		case isQuote(r):
			lx.emitText(TokenString, string(lx.str))
			return lexDefaultState

		case isBackslash(r):
			e, err := lx.next()
			if err != nil {
				return lexStateError(ErrUnterminatedString)
			}
			lx.str = append(lx.str, unescape(e)...)

		default:
			lx.str = append(lx.str, r)
		}
	}
}

func unescape(r rune) []rune {
	switch r {
	case '"', '\\':
		return []rune{r}
	case 'n':
		return []rune{'\n'}
	}
	return []rune{'\\', r}
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

func lexCollectStream(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		for (isTokenType(tt))(lx.peek()) {
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
		}
		return lexEmit(tt)
	}
}

func lexStateError(err error) lexState {
	if err == io.EOF {
		return nil
	}
	return func(lx *Lexer) lexState {
		if lx.lastErr == nil {
			lx.lastErr = err
		}
		return nil
	}
}

// Tokenize takes an array of bytes and returns all the tokens within it,
// or an error if a token can't be completed.
func Tokenize(in []byte) ([]Token, error) {
	lx := New(bytes.NewReader(in))

	if err := lx.Scan(); err != nil {
		return nil, err
	}

	return lx.Tokens(), nil
}
