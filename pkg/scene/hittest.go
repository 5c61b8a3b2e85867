package scene

import (
	"slices"
	"sort"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/observability"
)

// HitTest returns the innermost nodes under p, smallest bounding-box area
// first. p is expressed in the same frame as root.Bounds, so for a focused
// root (origin zeroed) it is simply the local pointer position.
//
// A node is a hit when it contains p and none of its visible children does.
// Containers with an active child only consider that child; hidden siblings
// are never hit. Overlapping siblings that both contain p are each searched,
// which is how more than one hit arises. Equal areas keep discovery order.
func HitTest(root *Node, p geom.Coordinate) []*Node {
	if root == nil {
		return nil
	}
	var hits []*Node
	hitTest(root, p, &hits)
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Bounds.Area() < hits[j].Bounds.Area()
	})
	observability.Scene().OnHitTest(len(hits))
	return hits
}

// hitTest reports whether n contains p, where p is in n's parent frame.
func hitTest(n *Node, p geom.Coordinate, hits *[]*Node) bool {
	if !n.Bounds.Contains(p) {
		return false
	}
	local := n.Bounds.Local(p)
	childHit := false
	for _, c := range n.Visible() {
		if hitTest(c, local, hits) {
			childHit = true
		}
	}
	if !childHit {
		*hits = append(*hits, n)
	}
	return true
}

// HitIDs returns the ids of nodes in order.
func HitIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// EqualIDs reports whether two ordered id lists are identical.
func EqualIDs(a, b []string) bool { return slices.Equal(a, b) }
