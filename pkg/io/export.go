package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/boxscope/pkg/scene"
)

// WriteJSON encodes doc as indented JSON. Nodes are written in doc.Order,
// followed by any remaining nodes sorted by id. The output can be re-imported
// with [ReadJSON].
func WriteJSON(doc *Document, w io.Writer) error {
	out := document{
		Root:     doc.Root,
		Snapshot: doc.Snapshot,
		Nodes:    make([]scene.RawNode, 0, len(doc.Nodes)),
	}

	seen := make(map[string]bool, len(doc.Nodes))
	for _, id := range doc.Order {
		if n, ok := doc.Nodes[id]; ok && !seen[id] {
			out.Nodes = append(out.Nodes, n)
			seen[id] = true
		}
	}
	var rest []string
	for id := range doc.Nodes {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	for _, id := range rest {
		out.Nodes = append(out.Nodes, doc.Nodes[id])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to the file at path.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Prune removes references that do not resolve: child ids missing from the
// node map, an active child that is not among the remaining children, and
// parent links to missing nodes. It returns the number of references
// removed. Nodes themselves are never removed.
func Prune(doc *Document) int {
	removed := 0
	for id, n := range doc.Nodes {
		kept := n.Children[:0:0]
		for _, childID := range n.Children {
			if _, ok := doc.Nodes[childID]; ok {
				kept = append(kept, childID)
				continue
			}
			removed++
		}
		if len(kept) == 0 {
			kept = nil
		}
		if n.ActiveChild != "" && !slices.Contains(kept, n.ActiveChild) {
			n.ActiveChild = ""
			removed++
		}
		if _, ok := doc.Nodes[n.Parent]; n.Parent != "" && !ok {
			n.Parent = ""
			removed++
		}
		n.Children = kept
		doc.Nodes[id] = n
	}
	return removed
}
