package ast

import (
	"errors"
	"fmt"

	"github.com/xiam/wks2svg/lexer"
)

var errNotAVector = errors.New("nodes of type value can't accept children")

// Node represents leaf of the AST
type Node struct {
	p *Node

	nt  NodeType
	tok *lexer.Token
	v   interface{}
}

func newNode(nt NodeType, tok *lexer.Token, v interface{}) *Node {
	return &Node{
		nt:  nt,
		v:   v,
		tok: tok,
	}
}

// NewNode creates and returns an orphaned node based on the given token
func NewNode(tok *lexer.Token, v Valuer) *Node {
	return newNode(v.Type(), tok, v)
}

// NewList creates and returns a node of type "list"
func NewList(tok *lexer.Token) *Node {
	return newNode(NodeTypeList, tok, []*Node{})
}

// PushValue appends a new value to the node
func (n *Node) PushValue(tok *lexer.Token, v Valuer) (*Node, error) {
	node := NewNode(tok, v)
	if err := n.Push(node); err != nil {
		return nil, err
	}
	return node, nil
}

// PushList appends a new list to the node
func (n *Node) PushList(tok *lexer.Token) (*Node, error) {
	node := NewList(tok)
	if err := n.Push(node); err != nil {
		return nil, err
	}
	return node, nil
}

// Token returns the token associated to the node
func (n Node) Token() *lexer.Token {
	return n.tok
}

// Pos returns the line and column of the token that opened the node, or zeros
// for nodes without a token.
func (n Node) Pos() (int, int) {
	if n.tok == nil {
		return 0, 0
	}
	return n.tok.Pos()
}

// Type returns the type of the node
func (n Node) Type() NodeType {
	return n.nt
}

// Value returns the value of the node
func (n Node) Value() interface{} {
	if n.v == nil {
		return nil
	}
	if _, ok := n.v.(Valuer); ok {
		return n.v.(Valuer).Value()
	}
	return n.v
}

// Encode returns the encoded value of the node
func (n Node) Encode() string {
	if n.v == nil {
		return ""
	}
	if _, ok := n.v.(Valuer); ok {
		return n.v.(Valuer).Encode()
	}
	return ""
}

// List returns all the children elements of the node
func (n *Node) List() []*Node {
	if !n.IsVector() {
		return nil
	}
	return n.v.([]*Node)
}

// Len returns the number of children of a list, zero for values.
func (n *Node) Len() int {
	return len(n.List())
}

// Child returns the i-th child of a list or nil when out of range.
func (n *Node) Child(i int) *Node {
	list := n.List()
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

// Head returns the text of the first element of a list when that element is
// a symbol, as in "(line ...)". It returns an empty string otherwise.
func (n *Node) Head() string {
	head := n.Child(0)
	if head == nil || head.Type() != NodeTypeSymbol {
		return ""
	}
	return head.Text()
}

// Args returns the children of a list that follow its head.
func (n *Node) Args() []*Node {
	list := n.List()
	if len(list) < 1 {
		return nil
	}
	return list[1:]
}

// Find returns the first child list whose head matches name.
func (n *Node) Find(name string) *Node {
	for _, child := range n.Args() {
		if child.IsVector() && child.Head() == name {
			return child
		}
	}
	return nil
}

// Text returns the textual content of a value node. Numbers are returned in
// their encoded form, lists return an empty string.
func (n *Node) Text() string {
	switch n.nt {
	case NodeTypeSymbol, NodeTypeString:
		return n.Value().(string)
	case NodeTypeInt, NodeTypeFloat:
		return n.Encode()
	}
	return ""
}

// Float returns the numeric value of an int or float node.
func (n *Node) Float() (float64, bool) {
	switch n.nt {
	case NodeTypeInt:
		return float64(n.Value().(int64)), true
	case NodeTypeFloat:
		return n.Value().(float64), true
	}
	return 0, false
}

// Int returns the value of an int node, floats are truncated.
func (n *Node) Int() (int64, bool) {
	switch n.nt {
	case NodeTypeInt:
		return n.Value().(int64), true
	case NodeTypeFloat:
		return int64(n.Value().(float64)), true
	}
	return 0, false
}

// Leaves returns the number of value nodes in the subtree rooted at n.
func (n *Node) Leaves() int {
	if n.IsValue() {
		return 1
	}
	count := 0
	for _, child := range n.List() {
		count += child.Leaves()
	}
	return count
}

func (n Node) String() string {
	switch n.nt {
	case NodeTypeList:
		return fmt.Sprintf("(%v)[%d]", nodeTypeName[n.nt], len(n.v.([]*Node)))
	}
	return fmt.Sprintf("(%v): %v", nodeTypeName[n.nt], n.Value())
}

// Push appends a child node to a parent node of type "list".
func (n *Node) Push(node *Node) error {
	if n.IsVector() {
		n.v = append(n.v.([]*Node), node)
		node.p = n
		return nil
	}
	return errNotAVector
}

// IsValue returns true if the node is of type value
func (n *Node) IsValue() bool {
	return n.nt&nodeTypeValue > 0
}

// IsVector returns true if the node is of type vector
func (n *Node) IsVector() bool {
	return n.nt&nodeTypeVector > 0
}

// Parent returns the list holding the node, nil for the root.
func (n *Node) Parent() *Node {
	return n.p
}
