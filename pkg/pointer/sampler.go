package pointer

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/observability"
	"github.com/matzehuels/boxscope/pkg/scene"
	"github.com/matzehuels/boxscope/pkg/store"
)

// Event is a raw pointer move in viewport coordinates.
type Event struct {
	Pos geom.Coordinate
	At  time.Time
}

// Frame is the derived state a sample is evaluated against.
type Frame struct {
	Focus           scene.FocusState
	Mapper          Mapper
	ContextMenuOpen bool
}

// NewFrame builds a frame from a store state and its derived view. It
// returns nil when there is nothing to hit test.
func NewFrame(s store.State, v store.View, origin geom.Coordinate, policy ZeroWidthPolicy) *Frame {
	if !v.Ready() || s.Snapshot == nil {
		return nil
	}
	return &Frame{
		Focus: v.Focus,
		Mapper: Mapper{
			Origin:        origin,
			SnapshotWidth: s.Snapshot.Width,
			DisplayWidth:  s.DisplayWidth,
			ZeroWidth:     policy,
		},
		ContextMenuOpen: s.ContextMenuOpen,
	}
}

// Sample is the outcome of a processed event.
type Sample struct {
	// Local is the pointer in the focused root's frame.
	Local geom.Coordinate
	// IDs are the hit node ids, most specific first.
	IDs []string
	// Changed is true when the store was notified.
	Changed bool
}

// Options configures a Sampler.
type Options struct {
	Interval time.Duration
	Logger   *log.Logger
}

// Sampler throttles pointer moves, hit tests them and forwards hover changes.
type Sampler struct {
	Store    store.Store
	Logger   *log.Logger
	Throttle *Throttle

	gate Gate
	last []string
}

// NewSampler creates a sampler notifying st.
func NewSampler(st store.Store, opts Options) *Sampler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Sampler{
		Store:    st,
		Logger:   logger,
		Throttle: NewThrottle(opts.Interval),
	}
}

// Gate returns the current gate state.
func (s *Sampler) Gate() Gate { return s.gate }

// Enter marks the pointer as over the visualization.
func (s *Sampler) Enter() { s.gate = s.gate.Next(Enter) }

// Leave marks the pointer as gone and clears any hover it produced. The
// throttle window is forgotten, so the first move after re-entering is
// processed immediately.
func (s *Sampler) Leave() {
	s.gate = s.gate.Next(Leave)
	s.Throttle.Reset()
	s.clear()
}

// ContextMenuClosed deactivates sampling until the next Enter.
func (s *Sampler) ContextMenuClosed() { s.gate = s.gate.Next(ContextMenuClosed) }

// Last returns the most recently reported hover ids.
func (s *Sampler) Last() []string { return s.last }

// Move processes one raw event against frame. ok is false when the event was
// dropped by the throttle or a precondition gate.
func (s *Sampler) Move(ev Event, frame *Frame) (Sample, bool) {
	if !s.Throttle.Allow(ev.At) {
		return s.drop(observability.DropThrottled)
	}
	if frame == nil || frame.Focus.FocusedRoot == nil {
		return s.drop(observability.DropNoSnapshot)
	}
	if frame.ContextMenuOpen {
		return s.drop(observability.DropContextMenu)
	}
	if !s.gate.Accepts() {
		return s.drop(observability.DropInactive)
	}

	local, ok := frame.Mapper.Map(ev.Pos)
	if !ok {
		s.Logger.Debug("display width is zero, skipping hit test")
		return s.drop(observability.DropZeroWidth)
	}

	ids := scene.HitIDs(scene.HitTest(frame.Focus.FocusedRoot, local))
	sample := Sample{Local: local, IDs: ids}
	if !scene.EqualIDs(ids, s.last) {
		s.last = ids
		s.Store.OnHoverNode(ids...)
		sample.Changed = true
		s.Logger.Debug("hover changed", "ids", ids, "at", local)
	}
	observability.Pointer().OnSampleAccepted(sample.Changed)
	return sample, true
}

func (s *Sampler) clear() {
	if len(s.last) == 0 {
		return
	}
	s.last = nil
	s.Store.OnHoverNode()
}

func (s *Sampler) drop(reason observability.DropReason) (Sample, bool) {
	observability.Pointer().OnSampleDropped(reason)
	return Sample{}, false
}
