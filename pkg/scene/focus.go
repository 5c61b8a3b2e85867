package scene

import "github.com/matzehuels/boxscope/pkg/geom"

// FocusState describes which subtree is rendered as the visual root.
//
// FocusedRoot is either ActualRoot itself, with a zero offset, or a copy of a
// descendant whose own origin has been zeroed. The descendant's displacement
// is carried only by FocusedRootGlobalOffset.
type FocusState struct {
	ActualRoot              *Node           `json:"-"`
	FocusedRoot             *Node           `json:"focusedRoot"`
	FocusedRootGlobalOffset geom.Coordinate `json:"focusedRootGlobalOffset"`
}

// IsFocused reports whether a descendant, not the whole tree, is the visual root.
func (s FocusState) IsFocused() bool { return s.FocusedRoot != s.ActualRoot }

// ToFocused converts a coordinate in the actual root's frame into the focused
// root's frame.
func (s FocusState) ToFocused(p geom.Coordinate) geom.Coordinate {
	return p.Sub(s.FocusedRootGlobalOffset)
}

// ResolveFocus computes the focus state for targetID. An empty targetID, or
// one that is not in the tree, yields the whole tree with a zero offset.
//
// The search is pre-order and the first match wins. The returned focused root
// is a shallow copy; root is never modified.
func ResolveFocus(root *Node, targetID string) FocusState {
	whole := FocusState{ActualRoot: root, FocusedRoot: root}
	if root == nil || targetID == "" {
		return whole
	}

	found, offset, ok := findWithOffset(root, targetID, geom.Coordinate{})
	if !ok {
		return whole
	}

	focused := *found
	focused.Bounds = found.Bounds.AtOrigin()
	return FocusState{
		ActualRoot:              root,
		FocusedRoot:             &focused,
		FocusedRootGlobalOffset: offset,
	}
}

// findWithOffset returns the node with id and its origin in the frame that
// running is expressed in.
func findWithOffset(n *Node, id string, running geom.Coordinate) (*Node, geom.Coordinate, bool) {
	offset := running.Add(n.Bounds.Origin())
	if n.ID == id {
		return n, offset, true
	}
	for _, c := range n.Children {
		if found, o, ok := findWithOffset(c, id, offset); ok {
			return found, o, true
		}
	}
	return nil, geom.Coordinate{}, false
}
