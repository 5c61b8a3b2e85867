package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/scene"
	"github.com/matzehuels/boxscope/pkg/store"
)

// Document is a decoded hierarchy dump.
type Document struct {
	Root     string
	Snapshot *store.Snapshot
	Nodes    scene.NodeMap

	// Order lists node ids in file order, for stable export.
	Order []string
}

type document struct {
	Root     string          `json:"root,omitempty"`
	Snapshot *store.Snapshot `json:"snapshot,omitempty"`
	Nodes    []scene.RawNode `json:"nodes"`
}

// ReadJSON decodes a dump from r.
//
// ReadJSON returns an INVALID_SNAPSHOT error if the JSON is malformed, if no
// root can be determined, or if a node fails validation. Errors name the
// offending node.
func ReadJSON(r io.Reader) (*Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode")
	}

	doc := &Document{
		Snapshot: data.Snapshot,
		Nodes:    make(scene.NodeMap, len(data.Nodes)),
		Order:    make([]string, 0, len(data.Nodes)),
	}
	for _, n := range data.Nodes {
		if err := validateNode(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "node %q", n.ID)
		}
		if _, dup := doc.Nodes[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "duplicate node id %q", n.ID)
		}
		doc.Nodes[n.ID] = n
		doc.Order = append(doc.Order, n.ID)
	}
	inferParents(doc)

	doc.Root = pickRoot(data.Root, doc)
	if doc.Root == "" {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "no root node")
	}
	if doc.Snapshot == nil {
		if root, ok := doc.Nodes[doc.Root]; ok {
			doc.Snapshot = &store.Snapshot{NodeID: doc.Root, Width: root.Bounds.Width, Height: root.Bounds.Height}
		}
	}
	return doc, nil
}

// ImportJSON reads a dump file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ImportJSONWithData reads a dump file and also returns its raw bytes, which
// callers hash for cache keys.
func ImportJSONWithData(path string) (*Document, []byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ReadJSON(bytes.NewReader(data))
	return doc, data, err
}

func validateNode(n scene.RawNode) error {
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	b := n.Bounds
	return errors.ValidateCoordinate("bounds", b.X, b.Y, b.Width, b.Height)
}

// inferParents fills empty parent links from child lists. The first parent
// listing a node wins.
func inferParents(doc *Document) {
	for _, id := range doc.Order {
		for _, childID := range doc.Nodes[id].Children {
			child, ok := doc.Nodes[childID]
			if !ok || child.Parent != "" {
				continue
			}
			child.Parent = id
			doc.Nodes[childID] = child
		}
	}
}

func pickRoot(explicit string, doc *Document) string {
	if explicit != "" {
		return explicit
	}
	if doc.Snapshot != nil && doc.Snapshot.NodeID != "" {
		return doc.Snapshot.NodeID
	}
	for _, id := range doc.Order {
		if doc.Nodes[id].Parent == "" {
			return id
		}
	}
	return ""
}
