package cli

import (
	"context"
	"fmt"
	stdio "io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/pointer"
	"github.com/matzehuels/boxscope/pkg/scene"
	"github.com/matzehuels/boxscope/pkg/store"
)

const (
	// headerRows is the number of lines above the canvas.
	headerRows = 2
	// panelRows is the number of lines reserved below the canvas.
	panelRows = 5
)

var (
	panelKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	menuStyle      = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("237")).Padding(0, 1)
	panelHelpStyle = StyleDim
)

// exploreCommand creates the explore command for the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		focus   string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore the hierarchy interactively",
		Long: `Draw the hierarchy in the terminal and hover it with the mouse.

Moving the pointer highlights the most specific boxes under it. Click to
select, right-click to open the node menu.

Keys: f focus hovered node · u focus parent · esc clear focus · q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], focus, logFile)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "initial focus target")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the explorer runs")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, path, focus, logFile string) error {
	s, err := c.load(ctx, path, focus)
	if err != nil {
		return err
	}
	policy, err := c.Config.ZeroWidthPolicy()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var w stdio.Writer = stdio.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w, c.Logger.GetLevel())

	m := newExplorer(s.store, explorerOptions{
		Path:      path,
		Logger:    logger,
		Interval:  c.Config.Interval(),
		ZeroWidth: policy,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if sel := final.(*explorer).store.State().Selection; sel != nil {
		printSuccess("Selected %s", sel.NodeID)
		printDetail("source: %s · event: %s", sel.Source, sel.EventID)
	}
	return nil
}

// =============================================================================
// Explorer Model
// =============================================================================

type explorerOptions struct {
	Path      string
	Logger    *log.Logger
	Interval  time.Duration
	ZeroWidth pointer.ZeroWidthPolicy
}

// explorer is the bubbletea model behind the explore command. The store is
// the single source of truth; the model keeps only derived values and
// terminal geometry.
type explorer struct {
	store     *store.Memory
	projector *scene.Projector
	views     *store.Views
	sampler   *pointer.Sampler
	logger    *log.Logger
	zeroWidth pointer.ZeroWidthPolicy
	path      string
	now       func() time.Time

	view store.View

	width, height int
	inside        bool

	menuOpen   bool
	menuTarget string
}

func newExplorer(st *store.Memory, opts explorerOptions) *explorer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(stdio.Discard)
	}
	projector := scene.NewProjector(logger)
	m := &explorer{
		store:     st,
		projector: projector,
		views:     store.NewViews(projector),
		sampler:   pointer.NewSampler(st, pointer.Options{Interval: opts.Interval, Logger: logger}),
		logger:    logger,
		zeroWidth: opts.ZeroWidth,
		path:      opts.Path,
		now:       time.Now,
	}
	m.refresh()
	return m
}

// refresh re-derives the view. The tree is only re-projected when the node
// map changes.
func (m *explorer) refresh() {
	m.view = m.views.Derive(m.store.State())
}

func (m *explorer) Init() tea.Cmd {
	return nil
}

func (m *explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.store.SetDisplayWidth(float64(m.canvasWidth()))
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}
	m.refresh()
	return m, nil
}

func (m *explorer) handleMouse(msg tea.MouseMsg) {
	pos := viewportPos(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.track(msg.X, msg.Y)
		if !m.inside {
			return
		}
		st := m.store.State()
		frame := pointer.NewFrame(st, m.view, m.origin(), m.zeroWidth)
		m.sampler.Move(pointer.Event{Pos: pos, At: m.now()}, frame)

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.menuOpen {
				m.closeMenu()
				return
			}
			if id := m.hovered(); id != "" {
				m.store.OnSelectNode(id, store.SourceVisualizer)
				m.logger.Info("selected", "id", id)
			}
		case tea.MouseButtonRight:
			if id := m.hovered(); id != "" {
				m.menuOpen, m.menuTarget = true, id
				m.store.SetContextMenuOpen(true)
			}
		}
	}
}

// track feeds enter and leave transitions into the sampler as the pointer
// crosses the canvas edge.
func (m *explorer) track(col, row int) {
	in := col >= 0 && col < m.canvasWidth() && row >= headerRows && row < headerRows+m.canvasHeight()
	switch {
	case in && !m.inside:
		m.sampler.Enter()
	case !in && m.inside:
		m.sampler.Leave()
	}
	m.inside = in
}

func (m *explorer) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		if m.menuOpen {
			m.closeMenu()
			return nil
		}
		m.store.OnFocusNode("")
	case "f":
		id := m.hovered()
		if m.menuOpen {
			id = m.menuTarget
			m.closeMenu()
		}
		if id != "" {
			m.store.OnFocusNode(id)
			m.logger.Info("focused", "id", id)
		}
	case "s":
		if m.menuOpen {
			m.store.OnSelectNode(m.menuTarget, store.SourceVisualizer)
			m.closeMenu()
		}
	case "u", "backspace":
		m.focusParent()
	}
	return nil
}

func (m *explorer) closeMenu() {
	m.menuOpen, m.menuTarget = false, ""
	m.store.SetContextMenuOpen(false)
	m.sampler.ContextMenuClosed()
}

// focusParent moves focus one level up the raw parent chain. Reaching the
// snapshot root clears focus.
func (m *explorer) focusParent() {
	st := m.store.State()
	if st.FocusID == "" {
		return
	}
	parent := st.Nodes[st.FocusID].Parent
	if parent == "" || (st.Snapshot != nil && parent == st.Snapshot.NodeID) {
		parent = ""
	}
	m.store.OnFocusNode(parent)
}

// hovered returns the most specific hovered node, if any.
func (m *explorer) hovered() string {
	if ids := m.sampler.Last(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// =============================================================================
// Geometry
// =============================================================================

// viewportPos converts a terminal cell to viewport units.
func viewportPos(col, row int) geom.Coordinate {
	return geom.Coordinate{X: float64(col), Y: float64(row * cellAspect)}
}

// origin is the viewport position of the canvas' top-left corner.
func (m *explorer) origin() geom.Coordinate {
	return viewportPos(0, headerRows)
}

func (m *explorer) canvasWidth() int {
	return max(m.width, 0)
}

// canvasHeight fits the focused root's aspect ratio into the rows left over
// by the header and the panel.
func (m *explorer) canvasHeight() int {
	avail := max(m.height-headerRows-panelRows, 0)
	scale, ok := m.scale()
	if !ok || m.view.Focus.FocusedRoot == nil {
		return avail
	}
	rows := int(math.Ceil(m.view.Focus.FocusedRoot.Bounds.Height / scale / cellAspect))
	return min(rows, avail)
}

// scale returns snapshot units per column.
func (m *explorer) scale() (float64, bool) {
	st := m.store.State()
	if st.Snapshot == nil {
		return 0, false
	}
	mapper := pointer.Mapper{SnapshotWidth: st.Snapshot.Width, DisplayWidth: st.DisplayWidth, ZeroWidth: m.zeroWidth}
	s, ok := mapper.Scale()
	return s, ok && s > 0
}

// =============================================================================
// Rendering
// =============================================================================

func (m *explorer) View() string {
	var b strings.Builder
	st := m.store.State()

	b.WriteString(StyleTitle.Render("boxscope") + " " + StyleDim.Render(m.path))
	if m.view.Focus.IsFocused() {
		f := m.view.Focus
		b.WriteString(StyleDim.Render(" › ") + StyleHighlight.Render(f.FocusedRoot.ID) +
			StyleDim.Render(" @ "+f.FocusedRootGlobalOffset.String()))
	}
	b.WriteString("\n\n")

	if !m.view.Ready() {
		b.WriteString(StyleWarning.Render("Nothing to show: the snapshot node is missing."))
		b.WriteString("\n")
		return b.String()
	}

	if scale, ok := m.scale(); ok {
		c := newCanvas(m.canvasWidth(), m.canvasHeight())
		selected := ""
		if st.Selection != nil {
			selected = st.Selection.NodeID
		}
		drawTree(c, m.view.Focus.FocusedRoot, scale, st.HoverIDs, selected)
		b.WriteString(c.String())
	} else {
		b.WriteString(StyleDim.Render("Waiting for the terminal size..."))
	}
	b.WriteString("\n")

	b.WriteString(m.panel(st))
	return b.String()
}

func (m *explorer) panel(st store.State) string {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(panelKeyStyle.Render(key) + " " + value + "\n")
	}

	hover := StyleDim.Render("none")
	if len(st.HoverIDs) > 0 {
		hover = StyleHighlight.Render(strings.Join(st.HoverIDs, ", "))
	}
	line("hover", hover)

	sel := StyleDim.Render("none")
	if st.Selection != nil {
		sel = StyleSuccess.Render(st.Selection.NodeID) + StyleDim.Render(" ("+st.Selection.Source+")")
	}
	line("selected", sel)

	if id := m.hovered(); id != "" {
		overlay, _ := m.projector.OverlayBounds(id, st.Nodes, m.view.Focus)
		line("overlay", StyleValue.Render(overlay.String()))
	} else {
		line("overlay", StyleDim.Render("-"))
	}

	if m.menuOpen {
		b.WriteString(menuStyle.Render(fmt.Sprintf("%s  f focus · s select · esc close", m.menuTarget)))
	} else {
		b.WriteString(panelHelpStyle.Render("click select · right-click menu · f focus · u up · esc unfocus · q quit"))
	}
	return b.String()
}
