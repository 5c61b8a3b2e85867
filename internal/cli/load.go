package cli

import (
	"context"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/io"
	"github.com/matzehuels/boxscope/pkg/store"
)

// session is a hierarchy loaded from disk into an in-memory store.
type session struct {
	path  string
	data  []byte
	doc   *io.Document
	store *store.Memory
}

// view derives the current projected tree and focus.
func (s *session) view(c *CLI) store.View {
	return store.Derive(s.store.State(), c.projector())
}

// load reads the dump at path and applies focus. An unknown focus target is
// not an error: the whole tree is shown and a warning is logged.
func (c *CLI) load(ctx context.Context, path, focus string) (*session, error) {
	logger := loggerFromContext(ctx)
	c.anomalies.reset()

	doc, data, err := io.ImportJSONWithData(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded hierarchy", "path", path, "nodes", len(doc.Nodes), "root", doc.Root)

	st := store.NewMemory(doc.Nodes, doc.Snapshot)
	if !st.State().Ready() {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot node is not part of the hierarchy")
	}
	if focus != "" {
		if err := errors.ValidateNodeID(focus); err != nil {
			return nil, err
		}
		if _, ok := doc.Nodes[focus]; !ok {
			logger.Warn("focus target not found, showing the whole tree", "focus", focus)
		}
		st.OnFocusNode(focus)
	}
	st.SetDisplayWidth(c.Config.Display.Width)

	return &session{path: path, data: data, doc: doc, store: st}, nil
}
