package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/pointer"
	"github.com/matzehuels/boxscope/pkg/scene"
	"github.com/matzehuels/boxscope/pkg/store"
)

type stateResponse struct {
	FocusID         string           `json:"focusId"`
	HoverIDs        []string         `json:"hoverIds"`
	Selection       *store.Selection `json:"selection,omitempty"`
	DisplayWidth    float64          `json:"displayWidth"`
	ContextMenuOpen bool             `json:"contextMenuOpen"`
	Revision        uint64           `json:"revision"`
	Ready           bool             `json:"ready"`
}

type treeResponse struct {
	Root         *scene.Node     `json:"root"`
	RootID       string          `json:"rootId"`
	Focused      bool            `json:"focused"`
	GlobalOffset geom.Coordinate `json:"globalOffset"`
	Nodes        int             `json:"nodes"`
	Revision     uint64          `json:"revision"`
}

type hitResponse struct {
	Point geom.Coordinate `json:"point"`
	IDs   []string        `json:"ids"`
}

type offsetResponse struct {
	ID       string          `json:"id"`
	Total    geom.Coordinate `json:"total"`
	Relative geom.Coordinate `json:"relative"`
	Overlay  geom.Bounds     `json:"overlay"`
}

type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type pointerResponse struct {
	Accepted bool            `json:"accepted"`
	Changed  bool            `json:"changed"`
	Local    geom.Coordinate `json:"local"`
	IDs      []string        `json:"ids"`
	Gate     string          `json:"gate"`
}

type displayRequest struct {
	Width float64 `json:"width"`
}

type focusRequest struct {
	ID string `json:"id"`
}

type selectRequest struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) stateResponse() stateResponse {
	st := s.store.State()
	hover := st.HoverIDs
	if hover == nil {
		hover = []string{}
	}
	return stateResponse{
		FocusID:         st.FocusID,
		HoverIDs:        hover,
		Selection:       st.Selection,
		DisplayWidth:    st.DisplayWidth,
		ContextMenuOpen: st.ContextMenuOpen,
		Revision:        st.Revision,
		Ready:           st.Ready(),
	}
}

// view derives the current view. A "focus" query parameter, when present,
// overrides the stored focus target; "focus=" views the whole tree.
func (s *Server) view(r *http.Request) (store.State, store.View, error) {
	st := s.store.State()
	if q := r.URL.Query(); q.Has("focus") {
		st.FocusID = q.Get("focus")
		if st.FocusID != "" {
			if err := errors.ValidateNodeID(st.FocusID); err != nil {
				return st, store.View{}, err
			}
		}
	}
	v := s.views.Derive(st)
	if !v.Ready() {
		return st, v, errors.New(errors.ErrCodeUnsupported, "no scene loaded")
	}
	return st, v, nil
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	st, v, err := s.view(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, treeResponse{
		Root:         v.Focus.FocusedRoot,
		RootID:       v.Focus.FocusedRoot.ID,
		Focused:      v.Focus.IsFocused(),
		GlobalOffset: v.Focus.FocusedRootGlobalOffset,
		Nodes:        scene.Count(v.Focus.FocusedRoot),
		Revision:     st.Revision,
	})
}

// handleHit hit tests a point given in the focused root's frame.
func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	p, err := parsePoint(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	_, v, err := s.view(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ids := scene.HitIDs(scene.HitTest(v.Focus.FocusedRoot, p))
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, hitResponse{Point: p, IDs: ids})
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateNodeID(id); err != nil {
		s.writeError(w, err)
		return
	}
	st, v, err := s.view(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	n, ok := st.Nodes[id]
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "no node %q", id))
		return
	}
	total := s.projector.TotalOffset(id, st.Nodes)
	relative := v.Focus.ToFocused(total)
	s.writeJSON(w, http.StatusOK, offsetResponse{
		ID:       id,
		Total:    total,
		Relative: relative,
		Overlay:  geom.Bounds{X: relative.X, Y: relative.Y, Width: n.Bounds.Width, Height: n.Bounds.Height},
	})
}

// handleDisplay records the width the client draws the visualization at.
// Pointer moves are scaled by snapshot width / display width; zero unsets it.
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := errors.ValidateCoordinate("width", req.Width); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Width < 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "width must not be negative, got %g", req.Width))
		return
	}
	s.store.SetDisplayWidth(req.Width)
	s.logger.Debug("display width set", "width", req.Width)
	s.writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleSetFocus(w http.ResponseWriter, r *http.Request) {
	var req focusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.requireNode(req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	s.store.OnFocusNode(req.ID)
	s.logger.Info("focus set", "id", req.ID)
	s.writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleClearFocus(w http.ResponseWriter, _ *http.Request) {
	s.store.OnFocusNode("")
	s.logger.Info("focus cleared")
	s.writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.requireNode(req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	source := req.Source
	if source == "" {
		source = store.SourceAPI
	}
	s.store.OnSelectNode(req.ID, source)
	s.logger.Info("node selected", "id", req.ID, "source", source)
	s.writeJSON(w, http.StatusOK, s.stateResponse())
}

// handlePointer feeds the server-side sampler. Move coordinates are viewport
// coordinates relative to the visualization's top-left corner.
func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := pointerResponse{IDs: []string{}}
	switch event := chi.URLParam(r, "event"); event {
	case "enter":
		s.sampler.Enter()
	case "leave":
		s.sampler.Leave()
	case "context-menu-open":
		s.store.SetContextMenuOpen(true)
	case "context-menu-closed":
		s.store.SetContextMenuOpen(false)
		s.sampler.ContextMenuClosed()
	case "move":
		var req pointerRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		if err := errors.ValidateCoordinate("pointer", req.X, req.Y); err != nil {
			s.writeError(w, err)
			return
		}
		st := s.store.State()
		frame := pointer.NewFrame(st, s.views.Derive(st), geom.Coordinate{}, s.zeroWidth)
		sample, ok := s.sampler.Move(pointer.Event{Pos: geom.Coordinate{X: req.X, Y: req.Y}, At: s.now()}, frame)
		resp.Accepted, resp.Changed, resp.Local = ok, sample.Changed, sample.Local
		if sample.IDs != nil {
			resp.IDs = sample.IDs
		}
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown pointer event %q", event))
		return
	}
	resp.Gate = s.sampler.Gate().String()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) requireNode(id string) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if _, ok := s.store.State().Nodes[id]; !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "no node %q", id)
	}
	return nil
}

func parsePoint(r *http.Request) (geom.Coordinate, error) {
	q := r.URL.Query()
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		return geom.Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "x")
	}
	y, err := strconv.ParseFloat(q.Get("y"), 64)
	if err != nil {
		return geom.Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "y")
	}
	if err := errors.ValidateCoordinate("point", x, y); err != nil {
		return geom.Coordinate{}, err
	}
	return geom.Coordinate{X: x, Y: y}, nil
}
