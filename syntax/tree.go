package syntax

import (
	"sort"
	"strings"
)

// CollectTokens gathers every leaf token under n, depth-first, in slot
// insertion order. The result is not sorted by offset.
func CollectTokens(n *Node) []*Token {
	var out []*Token
	collectTokens(n, &out)
	return out
}

func collectTokens(n *Node, out *[]*Token) {
	if n == nil {
		return
	}
	for i := range n.Slots {
		for _, el := range n.Slots[i].Elements {
			if el.Token != nil {
				*out = append(*out, el.Token)
			} else if el.Node != nil {
				collectTokens(el.Node, out)
			}
		}
	}
}

// FindFirstNode returns the first node named name in a depth-first pre-order
// walk starting at n, or nil if there is none. n itself is a candidate.
func FindFirstNode(n *Node, name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for i := range n.Slots {
		for _, el := range n.Slots[i].Elements {
			if el.Node == nil {
				continue
			}
			if found := FindFirstNode(el.Node, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindAllNodes collects every node named name, pre-order, including matches
// nested inside other matches (so searching for a class declaration also
// yields inner classes).
func FindAllNodes(n *Node, name string) []*Node {
	var out []*Node
	findAllNodes(n, name, &out)
	return out
}

func findAllNodes(n *Node, name string, out *[]*Node) {
	if n == nil {
		return
	}
	if n.Name == name {
		*out = append(*out, n)
	}
	for i := range n.Slots {
		for _, el := range n.Slots[i].Elements {
			if el.Node != nil {
				findAllNodes(el.Node, name, out)
			}
		}
	}
}

// TokensToText reconstructs the source text covered by tokens: the slice of
// source from the earliest token start through the latest token end,
// whitespace-trimmed. Returns "" for an empty token list.
func TokensToText(tokens []*Token, source []byte) string {
	if len(tokens) == 0 {
		return ""
	}
	sorted := make([]*Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	start := sorted[0].Start
	end := sorted[len(sorted)-1].End + 1
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}
