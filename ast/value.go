package ast

import (
	"fmt"
	"strconv"
)

// Valuer represents a value interface
type Valuer interface {
	Type() NodeType
	Value() interface{}
	Encode() string
}

type nodeValue struct {
	t NodeType
	v interface{}
}

func newNodeValue(t NodeType, v interface{}) *nodeValue {
	return &nodeValue{
		t: t,
		v: v,
	}
}

func (n *nodeValue) Type() NodeType {
	return n.t
}

func (n *nodeValue) Value() interface{} {
	return n.v
}

func (n *nodeValue) Encode() string {
	switch n.t {
	case NodeTypeInt:
		return fmt.Sprintf("%d", n.v)
	case NodeTypeFloat:
		return strconv.FormatFloat(n.v.(float64), 'f', -1, 64)
	case NodeTypeSymbol:
		return fmt.Sprintf("%s", n.v)
	case NodeTypeString:
		return fmt.Sprintf("%q", n.v)
	}

	panic("unreachable")
}

// NewStringValue creates a value of type string (a quoted atom)
func NewStringValue(v string) Valuer {
	return newNodeValue(NodeTypeString, v)
}

// NewFloatValue creates a value of type float
func NewFloatValue(v float64) Valuer {
	return newNodeValue(NodeTypeFloat, v)
}

// NewIntValue creates a value of type int
func NewIntValue(v int64) Valuer {
	return newNodeValue(NodeTypeInt, v)
}

// NewSymbolValue creates a value of type symbol (a bare atom)
func NewSymbolValue(v string) Valuer {
	return newNodeValue(NodeTypeSymbol, v)
}

var _ = Valuer(&nodeValue{})
