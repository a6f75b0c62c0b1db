// Package syntax defines the concrete syntax tree consumed by the analysis
// engine, plus generic utilities over it. The tree itself is produced by an
// external grammar parser (see the Parser contract); nothing in this package
// knows Java grammar.
package syntax

import "fmt"

// Token is a leaf of the tree: the literal source text plus its offsets into
// the original file. Offsets are 0-based and End is inclusive.
type Token struct {
	Image string
	Start int
	End   int
}

// NewToken builds a token with an explicit end offset.
func NewToken(image string, start, end int) *Token {
	return &Token{Image: image, Start: start, End: end}
}

// NewCharToken builds a single-character token whose end equals its start.
func NewCharToken(image string, start int) *Token {
	return &Token{Image: image, Start: start, End: start}
}

// Element is either a child node or a leaf token, never both.
type Element struct {
	Node  *Node
	Token *Token
}

// Slot is a named, ordered group of child elements.
type Slot struct {
	Name     string
	Elements []Element
}

// Node is a named interior node. Slots keep their insertion order, which is
// the grammar's declaration order and not necessarily source order; callers
// that need source order must re-sort collected tokens by offset.
type Node struct {
	Name  string
	Slots []Slot
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) slot(name string) *Slot {
	for i := range n.Slots {
		if n.Slots[i].Name == name {
			return &n.Slots[i]
		}
	}
	n.Slots = append(n.Slots, Slot{Name: name})
	return &n.Slots[len(n.Slots)-1]
}

// AddNode appends a child node to the named slot, creating the slot on first
// use.
func (n *Node) AddNode(slotName string, child *Node) {
	if child == nil {
		return
	}
	s := n.slot(slotName)
	s.Elements = append(s.Elements, Element{Node: child})
}

// AddToken appends a leaf token to the named slot.
func (n *Node) AddToken(slotName string, tok *Token) {
	if tok == nil {
		return
	}
	s := n.slot(slotName)
	s.Elements = append(s.Elements, Element{Token: tok})
}

// Slot returns the elements of the named slot, or nil if absent.
func (n *Node) Slot(name string) []Element {
	for i := range n.Slots {
		if n.Slots[i].Name == name {
			return n.Slots[i].Elements
		}
	}
	return nil
}

// Parser is the external grammar parser contract. Parse returns the root of
// the tree for well-formed input and a *ParseError when the grammar rejects
// the text.
type Parser interface {
	Parse(source []byte) (*Node, error)
}

// ParseError reports grammar-level rejection of the source text.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}
