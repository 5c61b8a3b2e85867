package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/boxscope/pkg/scene"
)

// Memory is a mutex-protected in-process Store. Every mutation replaces the
// affected fields wholesale and bumps the revision.
type Memory struct {
	mu    sync.RWMutex
	state State
}

// NewMemory creates a store holding nodes and snap.
func NewMemory(nodes scene.NodeMap, snap *Snapshot) *Memory {
	return &Memory{state: State{Nodes: nodes, Snapshot: snap}}
}

// State returns the current snapshot. The returned hover slice is a copy;
// the node map is shared and must be treated as read-only.
func (m *Memory) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.HoverIDs = slices.Clone(m.state.HoverIDs)
	if m.state.Selection != nil {
		sel := *m.state.Selection
		s.Selection = &sel
	}
	return s
}

// OnHoverNode implements Store.
func (m *Memory) OnHoverNode(ids ...string) {
	m.update(func(s *State) {
		if len(ids) == 0 {
			s.HoverIDs = nil
			return
		}
		s.HoverIDs = slices.Clone(ids)
	})
}

// OnSelectNode implements Store. Each selection gets a fresh event id.
func (m *Memory) OnSelectNode(id, source string) {
	m.update(func(s *State) {
		s.Selection = &Selection{EventID: uuid.NewString(), NodeID: id, Source: source}
	})
}

// OnFocusNode implements Store.
func (m *Memory) OnFocusNode(id string) {
	m.update(func(s *State) { s.FocusID = id })
}

// SetNodes replaces the node map and snapshot.
func (m *Memory) SetNodes(nodes scene.NodeMap, snap *Snapshot) {
	m.update(func(s *State) {
		s.Nodes = nodes
		s.Snapshot = snap
		s.Generation++
	})
}

// SetContextMenuOpen records whether a context menu is showing.
func (m *Memory) SetContextMenuOpen(open bool) {
	m.update(func(s *State) { s.ContextMenuOpen = open })
}

// SetDisplayWidth records the width available to the visualization.
func (m *Memory) SetDisplayWidth(w float64) {
	m.update(func(s *State) { s.DisplayWidth = w })
}

func (m *Memory) update(fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
	m.state.Revision++
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
