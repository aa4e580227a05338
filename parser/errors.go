package parser

import (
	"errors"
	"fmt"

	"github.com/xiam/wks2svg/lexer"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrUnexpectedEOF   = errors.New("unexpected EOF")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// ParseError is returned when the input is not a well-formed s-expression.
type ParseError struct {
	Line int
	Col  int
	Err  error
}

func newParseError(tok *lexer.Token, err error) *ParseError {
	line, col := tok.Pos()
	return &ParseError{Line: line, Col: col, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %v", e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
