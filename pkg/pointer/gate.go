package pointer

// Gate tracks whether the pointer is over the visualization surface.
type Gate int

// Gate states.
const (
	Inactive Gate = iota
	Active
)

// GateEvent drives Gate transitions.
type GateEvent int

// Gate events.
const (
	Enter GateEvent = iota
	Leave
	ContextMenuClosed
)

// Next returns the state after e. Closing a context menu deactivates the
// gate until the pointer enters the surface again.
func (g Gate) Next(e GateEvent) Gate {
	switch e {
	case Enter:
		return Active
	case Leave, ContextMenuClosed:
		return Inactive
	}
	return g
}

// Accepts reports whether samples may be processed in this state.
func (g Gate) Accepts() bool { return g == Active }

func (g Gate) String() string {
	if g == Active {
		return "active"
	}
	return "inactive"
}
