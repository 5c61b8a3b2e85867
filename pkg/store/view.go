package store

import (
	"sync"

	"github.com/matzehuels/boxscope/pkg/scene"
)

// View holds the values derived from a State: the projected tree and the
// focus state. The zero View is the idle state with nothing to render.
type View struct {
	Root  *scene.Node
	Focus scene.FocusState
}

// Ready reports whether the view has a tree to render and hit test.
func (v View) Ready() bool { return v.Root != nil }

// Derive projects the snapshot node's subtree and resolves focus. A missing
// snapshot, or a snapshot whose node is absent, yields the idle View.
func Derive(s State, p *scene.Projector) View {
	if !s.Ready() {
		return View{}
	}
	if p == nil {
		p = scene.NewProjector(nil)
	}
	root := p.Project(s.Snapshot.NodeID, s.Nodes)
	return View{Root: root, Focus: scene.ResolveFocus(root, s.FocusID)}
}

// Views derives Views from successive States, projecting the node map once
// per Generation. Focus is resolved on every call since it is cheap and
// changes often. A Views is safe for concurrent use.
type Views struct {
	projector *scene.Projector

	mu     sync.Mutex
	primed bool
	gen    uint64
	rootID string
	root   *scene.Node
}

// NewViews returns a Views projecting with p. A nil projector logs to
// log.Default().
func NewViews(p *scene.Projector) *Views {
	if p == nil {
		p = scene.NewProjector(nil)
	}
	return &Views{projector: p}
}

// Derive is like [Derive] but reuses the projected tree while the state's
// Generation and snapshot node are unchanged.
func (c *Views) Derive(s State) View {
	if !s.Ready() {
		return View{}
	}
	root := c.tree(s)
	return View{Root: root, Focus: scene.ResolveFocus(root, s.FocusID)}
}

func (c *Views) tree(s State) *scene.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.primed || c.gen != s.Generation || c.rootID != s.Snapshot.NodeID {
		c.root = c.projector.Project(s.Snapshot.NodeID, s.Nodes)
		c.gen, c.rootID, c.primed = s.Generation, s.Snapshot.NodeID, true
	}
	return c.root
}
