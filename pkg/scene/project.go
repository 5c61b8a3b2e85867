package scene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/observability"
)

// Projector converts a raw node map into a nested tree. Dangling references
// are dropped and reported to Logger and to the registered scene hooks.
type Projector struct {
	Logger *log.Logger
}

// NewProjector returns a projector logging anomalies to logger. A nil logger
// falls back to log.Default().
func NewProjector(logger *log.Logger) *Projector {
	if logger == nil {
		logger = log.Default()
	}
	return &Projector{Logger: logger}
}

// Project builds the tree rooted at rootID. It returns nil when rootID is not
// in nodes.
//
// Children whose ids do not resolve are skipped. The active-child marker is
// resolved against the filtered child list, so an active child that was
// dropped yields NoActiveChild. The input map must be acyclic.
func (p *Projector) Project(rootID string, nodes NodeMap) *Node {
	if _, ok := nodes[rootID]; !ok {
		return nil
	}
	start := time.Now()
	root := p.project(rootID, nodes)
	observability.Scene().OnProject(rootID, Count(root), time.Since(start))
	return root
}

// Project builds the tree with a projector logging to log.Default().
func Project(rootID string, nodes NodeMap) *Node {
	return NewProjector(nil).Project(rootID, nodes)
}

func (p *Projector) project(id string, nodes NodeMap) *Node {
	raw := nodes[id]
	n := &Node{
		ID:          raw.ID,
		Name:        raw.Name,
		Bounds:      raw.Bounds,
		ActiveChild: NoActiveChild,
	}

	activeSeen := false
	for _, childID := range raw.Children {
		if _, ok := nodes[childID]; !ok {
			p.anomaly(observability.AnomalyDanglingChild, id, childID)
			if childID == raw.ActiveChild {
				activeSeen = true
			}
			continue
		}
		if childID == raw.ActiveChild && n.ActiveChild == NoActiveChild {
			n.ActiveChild = len(n.Children)
			activeSeen = true
		}
		n.Children = append(n.Children, p.project(childID, nodes))
	}

	// An active id that is neither a child nor in the map would otherwise go
	// unreported.
	if raw.ActiveChild != "" && !activeSeen {
		if _, ok := nodes[raw.ActiveChild]; !ok {
			p.anomaly(observability.AnomalyDanglingActive, id, raw.ActiveChild)
		}
	}
	return n
}

func (p *Projector) anomaly(kind observability.AnomalyKind, nodeID, ref string) {
	p.logger().Warn("dangling reference", "kind", kind, "node", nodeID, "ref", ref)
	observability.Scene().OnAnomaly(kind, nodeID, ref)
}

func (p *Projector) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}
