// Package text renders scene trees as indented terminal trees.
package text

import (
	"strings"

	"github.com/xlab/treeprint"

	"github.com/matzehuels/boxscope/pkg/scene"
)

// Options configures the text tree.
type Options struct {
	// Bounds appends each node's bounds to its label.
	Bounds bool

	// Highlight lists node ids prefixed with a marker.
	Highlight []string

	// MaxDepth limits how deep the tree is printed. Zero means unlimited.
	MaxDepth int
}

const (
	highlightMark = "» "
	hiddenMark    = " (hidden)"
)

// Tree prints root and its descendants. Children that are not their parent's
// active child are suffixed with "(hidden)". A nil root yields "".
func Tree(root *scene.Node, opts Options) string {
	if root == nil {
		return ""
	}
	marked := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		marked[id] = true
	}

	t := treeprint.New()
	t.SetValue(label(root, opts, marked, false))
	add(t, root, 1, opts, marked)
	return strings.TrimRight(t.String(), "\n")
}

func add(t treeprint.Tree, n *scene.Node, depth int, opts Options, marked map[string]bool) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return
	}
	for i, c := range n.Children {
		hidden := n.ActiveChild != scene.NoActiveChild && i != n.ActiveChild
		l := label(c, opts, marked, hidden)
		if len(c.Children) == 0 {
			t.AddNode(l)
			continue
		}
		add(t.AddBranch(l), c, depth+1, opts, marked)
	}
}

func label(n *scene.Node, opts Options, marked map[string]bool, hidden bool) string {
	var b strings.Builder
	if marked[n.ID] {
		b.WriteString(highlightMark)
	}
	b.WriteString(n.ID)
	if n.Name != "" && n.Name != n.ID {
		b.WriteString(" [" + n.Name + "]")
	}
	if opts.Bounds {
		b.WriteString(" " + n.Bounds.String())
	}
	if hidden {
		b.WriteString(hiddenMark)
	}
	return b.String()
}
