package parser

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xiam/wks2svg/ast"
	"github.com/xiam/wks2svg/lexer"
)

var TokenEOF = lexer.NewToken(lexer.TokenEOF, "", 0, 0)

type parserState func(p *Parser) parserState

// Parser builds a tree out of the tokens of an s-expression document.
type Parser struct {
	lx   *lexer.Lexer
	root *ast.Node

	tokens []lexer.Token
	offset int

	lastTok *lexer.Token

	lastErr error
}

// New creates a parser that reads its input from r.
func New(r io.Reader) *Parser {
	p := &Parser{}
	p.root = ast.NewList(nil)
	p.lx = lexer.New(r)
	return p
}

// Parse reads the whole input and builds the tree. The input must hold at
// least one form and every list must be closed.
func (p *Parser) Parse() error {
	if err := p.lx.Scan(); err != nil {
		line, col := p.lx.Pos()
		return &ParseError{Line: line, Col: col, Err: err}
	}
	p.tokens = p.lx.Tokens()

	for state := parserDefaultState; state != nil; {
		state = state(p)
	}

	if p.lastErr != nil {
		return p.lastErr
	}

	if p.root.Len() == 0 {
		return newParseError(p.curr(), ErrEmptyInput)
	}

	return nil
}

// Root returns the document node, a list holding every top-level form.
func (p *Parser) Root() *ast.Node {
	return p.root
}

func (p *Parser) curr() *lexer.Token {
	if p.lastTok == nil {
		return TokenEOF
	}
	return p.lastTok
}

func (p *Parser) read() *lexer.Token {
	if p.offset < len(p.tokens) {
		tok := &p.tokens[p.offset]
		p.offset++
		return tok
	}
	return TokenEOF
}

func (p *Parser) next() *lexer.Token {
	p.lastTok = p.read()
	return p.lastTok
}

func parserDefaultState(p *Parser) parserState {
	tok := p.next()

	switch tok.Type() {
	case lexer.TokenEOF:
		return nil

	default:
		if state := parserStateData(p.root)(p); state != nil {
			return state
		}
	}

	return parserDefaultState
}

func parserErrorState(err error) parserState {
	return func(p *Parser) parserState {
		p.lastErr = err
		return nil
	}
}

func parserStateData(root *ast.Node) parserState {
	return func(p *Parser) parserState {
		tok := p.curr()

		switch tok.Type() {
		case lexer.TokenWhitespace, lexer.TokenNewLine:
			// continue

		case lexer.TokenAtom:
			if _, err := root.PushValue(tok, decodeAtom(tok.Text())); err != nil {
				return parserErrorState(newParseError(tok, err))
			}

		case lexer.TokenString:
			if _, err := root.PushValue(tok, ast.NewStringValue(tok.Text())); err != nil {
				return parserErrorState(newParseError(tok, err))
			}

		case lexer.TokenOpenList:
			list, err := root.PushList(tok)
			if err != nil {
				return parserErrorState(newParseError(tok, err))
			}
			if state := parserStateOpenList(list)(p); state != nil {
				return state
			}

		default:
			return parserErrorState(newParseError(tok, ErrUnexpectedToken))
		}

		return nil
	}
}

func parserStateOpenList(root *ast.Node) parserState {
	return func(p *Parser) parserState {
		for {
			tok := p.next()

			switch tok.Type() {
			case lexer.TokenEOF:
				// report where the unclosed list was opened
				return parserErrorState(newParseError(root.Token(), ErrUnexpectedEOF))

			case lexer.TokenCloseList:
				return nil

			default:
				if state := parserStateData(root)(p); state != nil {
					return state
				}
			}
		}
	}
}

// decodeAtom turns the text of a bare atom into an int, a float or a symbol.
func decodeAtom(text string) ast.Valuer {
	if text == "" || !strings.ContainsRune("0123456789+-.", rune(text[0])) {
		return ast.NewSymbolValue(text)
	}
	if i64, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.NewIntValue(i64)
	}
	if f64, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f64, 0) && !math.IsNaN(f64) {
		return ast.NewFloatValue(f64)
	}
	return ast.NewSymbolValue(text)
}

// Parse builds the tree of the given input and returns its document node.
func Parse(in []byte) (*ast.Node, error) {
	p := New(bytes.NewReader(in))

	err := p.Parse()
	if err != nil {
		return nil, err
	}

	return p.root, nil
}
