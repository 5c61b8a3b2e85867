package scene

import (
	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/observability"
)

// TotalOffset returns the position of node id relative to the actual root of
// the node graph, logging anomalies to log.Default(). See
// [Projector.TotalOffset].
func TotalOffset(id string, nodes NodeMap) geom.Coordinate {
	return NewProjector(nil).TotalOffset(id, nodes)
}

// RelativeOffset is [Projector.RelativeOffset] logging to log.Default().
func RelativeOffset(id string, nodes NodeMap, focus FocusState) geom.Coordinate {
	return NewProjector(nil).RelativeOffset(id, nodes, focus)
}

// OverlayBounds is [Projector.OverlayBounds] logging to log.Default().
func OverlayBounds(id string, nodes NodeMap, focus FocusState) (geom.Bounds, bool) {
	return NewProjector(nil).OverlayBounds(id, nodes, focus)
}

// TotalOffset sums bounds origins along the parent chain of node id in the
// raw map. The walk ends at an empty or unresolved parent. An unknown id
// yields the zero coordinate. Both cases are logged as anomalies.
//
// The result ignores focus; see RelativeOffset.
func (p *Projector) TotalOffset(id string, nodes NodeMap) geom.Coordinate {
	n, ok := nodes[id]
	if !ok {
		p.logger().Warn("offset of unknown node", "node", id)
		observability.Scene().OnAnomaly(observability.AnomalyUnknownNode, id, "")
		return geom.Coordinate{}
	}

	var total geom.Coordinate
	// A parent chain longer than the map is a cycle.
	for steps := 0; steps <= len(nodes); steps++ {
		total = total.Add(n.Bounds.Origin())
		if n.Parent == "" {
			break
		}
		parent, ok := nodes[n.Parent]
		if !ok {
			p.anomaly(observability.AnomalyDanglingParent, n.ID, n.Parent)
			break
		}
		n = parent
	}
	return total
}

// RelativeOffset returns the offset of node id in the frame of the focused
// root described by focus.
func (p *Projector) RelativeOffset(id string, nodes NodeMap, focus FocusState) geom.Coordinate {
	return focus.ToFocused(p.TotalOffset(id, nodes))
}

// OverlayBounds returns the bounds of node id positioned in the focused
// root's frame, ready for drawing a highlight. ok is false for unknown ids,
// which are not reported.
func (p *Projector) OverlayBounds(id string, nodes NodeMap, focus FocusState) (geom.Bounds, bool) {
	n, ok := nodes[id]
	if !ok {
		return geom.Bounds{}, false
	}
	origin := p.RelativeOffset(id, nodes, focus)
	return geom.Bounds{X: origin.X, Y: origin.Y, Width: n.Bounds.Width, Height: n.Bounds.Height}, true
}
