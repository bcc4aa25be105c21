// Package parsetree defines the labeled parse tree handed to the
// transformer. The tree is deliberately untyped: each node carries a
// production label, an ordered child list and, for leaves, the raw token
// text. The concrete grammar that builds it lives elsewhere; nothing in
// this package depends on how the tree was produced.
package parsetree

import (
	"fmt"
	"strings"
)

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is one production in the parse tree. Leaves carry the raw token
// text in Token and have no children.
type Node struct {
	Label    string
	Token    string
	Pos      Position
	Children []*Node
}

// New creates an inner node for a production.
func New(label string, pos Position, children ...*Node) *Node {
	return &Node{Label: label, Pos: pos, Children: children}
}

// Leaf creates a terminal node carrying raw token text.
func Leaf(label, token string, pos Position) *Node {
	return &Node{Label: label, Token: token, Pos: pos}
}

// IsLeaf reports whether the node is a terminal.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && n.Token != ""
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Pretty renders the tree in the indented one-node-per-line layout used
// for debugging dumps and test expectations.
func (n *Node) Pretty() string {
	var b strings.Builder
	n.pretty(&b, 0)
	return b.String()
}

func (n *Node) pretty(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.IsLeaf() {
		b.WriteString(n.Label)
		b.WriteString(" ")
		b.WriteString(n.Token)
		b.WriteString("\n")
		return
	}
	b.WriteString(n.Label)
	b.WriteString("\n")
	for _, c := range n.Children {
		c.pretty(b, depth+1)
	}
}
