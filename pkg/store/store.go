// Package store defines the boundary between the scene engine and the host
// application state.
//
// The engine never mutates host state directly. It reads an immutable [State]
// snapshot and reports changes through the [Store] notification interface.
// [Memory] is an in-process implementation used by the CLI, the explorer and
// the inspection server.
package store

import (
	"github.com/matzehuels/boxscope/pkg/scene"
)

// Selection sources recorded with OnSelectNode.
const (
	SourceVisualizer = "visualizer"
	SourceTree       = "tree"
	SourceAPI        = "api"
)

// Store receives derived updates from the engine.
type Store interface {
	// OnHoverNode replaces the hover id set. Calling it without ids clears it.
	OnHoverNode(ids ...string)

	// OnSelectNode records a selection together with its provenance tag.
	OnSelectNode(id, source string)

	// OnFocusNode sets the focus target. An empty id clears it.
	OnFocusNode(id string)
}

// Snapshot is the captured image of the root node. PixelData is opaque.
type Snapshot struct {
	NodeID    string  `json:"nodeId"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	PixelData []byte  `json:"pixelData,omitempty"`
}

// Selection is the recorded selection.
type Selection struct {
	EventID string `json:"eventId"`
	NodeID  string `json:"nodeId"`
	Source  string `json:"source"`
}

// State is a read-only view of everything the engine consumes.
type State struct {
	Nodes           scene.NodeMap
	Snapshot        *Snapshot
	FocusID         string
	Selection       *Selection
	HoverIDs        []string
	ContextMenuOpen bool
	DisplayWidth    float64

	// Revision increases with every change, so hosts can tell when derived
	// values must be recomputed.
	Revision uint64

	// Generation increases only when the node map or snapshot is replaced.
	// A projected tree stays valid for as long as Generation is unchanged.
	Generation uint64
}

// Ready reports whether there is something to render: a snapshot whose node
// exists in the node map.
func (s State) Ready() bool {
	if s.Snapshot == nil {
		return false
	}
	_, ok := s.Nodes[s.Snapshot.NodeID]
	return ok
}
