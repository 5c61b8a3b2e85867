package scene

import "github.com/matzehuels/boxscope/pkg/geom"

// NoActiveChild marks a projected node without an active child.
const NoActiveChild = -1

// RawNode is a node as supplied by the external store. Child, active-child
// and parent references are ids and may be dangling. Empty strings mean
// "unset".
type RawNode struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Bounds      geom.Bounds `json:"bounds"`
	Children    []string    `json:"children,omitempty"`
	ActiveChild string      `json:"activeChild,omitempty"`
	Parent      string      `json:"parent,omitempty"`
}

// NodeMap indexes raw nodes by id.
type NodeMap map[string]RawNode

// Node is a projected node. Its children are owned values, never ids, and
// contain no dangling references. A projected tree is never mutated after
// construction.
type Node struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Bounds   geom.Bounds `json:"bounds"`
	Children []*Node     `json:"children,omitempty"`

	// ActiveChild is an index into Children, or NoActiveChild.
	ActiveChild int `json:"activeChildIndex"`
}

// Active returns the active child, if any.
func (n *Node) Active() (*Node, bool) {
	if n.ActiveChild < 0 || n.ActiveChild >= len(n.Children) {
		return nil, false
	}
	return n.Children[n.ActiveChild], true
}

// Visible returns the children that take part in hit testing: only the active
// child when one is set, otherwise all of them.
func (n *Node) Visible() []*Node {
	if c, ok := n.Active(); ok {
		return []*Node{c}
	}
	return n.Children
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	if n == nil {
		return
	}
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Find returns the first node in pre-order whose id is id.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}
