package cli

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/boxscope/pkg/io"
	"github.com/matzehuels/boxscope/pkg/pointer"
	"github.com/matzehuels/boxscope/pkg/store"
)

// newTestExplorer loads sampleDump into an explorer sized 100x60 cells, so
// one column spans two snapshot units.
func newTestExplorer(t *testing.T) *explorer {
	t.Helper()
	doc, err := io.ReadJSON(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemory(doc.Nodes, doc.Snapshot)
	m := newExplorer(st, explorerOptions{Path: "dump.json", ZeroWidth: pointer.ZeroWidthSkip})

	clock := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return m
}

func motion(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func press(col, row int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: b}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cellFor returns the terminal cell over snapshot point (x, y).
func cellFor(x, y float64) (int, int) {
	return int(x / 2), headerRows + int(y/2/cellAspect)
}

func TestExplorerHover(t *testing.T) {
	m := newTestExplorer(t)

	if w := m.store.State().DisplayWidth; w != 100 {
		t.Fatalf("display width = %v, want 100", w)
	}

	col, row := cellFor(40, 40)
	m.Update(motion(col, row))
	if hover := m.store.State().HoverIDs; !slices.Equal(hover, []string{"b"}) {
		t.Errorf("hover = %v, want [b]", hover)
	}

	col, row = cellFor(100, 170)
	m.Update(motion(col, row))
	if hover := m.store.State().HoverIDs; !slices.Equal(hover, []string{"footer"}) {
		t.Errorf("hover = %v, want [footer]", hover)
	}

	// Leaving the canvas clears hover.
	m.Update(motion(10, 0))
	if hover := m.store.State().HoverIDs; len(hover) != 0 {
		t.Errorf("hover = %v after leaving, want none", hover)
	}
}

func TestExplorerSelect(t *testing.T) {
	m := newTestExplorer(t)

	col, row := cellFor(40, 40)
	m.Update(motion(col, row))
	m.Update(press(col, row, tea.MouseButtonLeft))

	sel := m.store.State().Selection
	if sel == nil || sel.NodeID != "b" || sel.Source != store.SourceVisualizer {
		t.Fatalf("selection = %+v, want b from visualizer", sel)
	}
	if sel.EventID == "" {
		t.Error("selection should carry an event id")
	}
}

func TestExplorerFocus(t *testing.T) {
	m := newTestExplorer(t)

	col, row := cellFor(40, 40)
	m.Update(motion(col, row))
	m.Update(key("f"))

	if m.store.State().FocusID != "b" {
		t.Fatalf("focus = %q, want b", m.store.State().FocusID)
	}
	if !m.view.Focus.IsFocused() || m.view.Focus.FocusedRoot.ID != "b" {
		t.Errorf("view not re-derived after focus change")
	}

	m.Update(key("u"))
	if m.store.State().FocusID != "tabs" {
		t.Errorf("focus after u = %q, want tabs", m.store.State().FocusID)
	}

	m.Update(key("u"))
	if m.store.State().FocusID != "" {
		t.Errorf("focus after reaching the root = %q, want none", m.store.State().FocusID)
	}

	m.Update(key("f"))
	m.Update(key("esc"))
	if m.store.State().FocusID != "" {
		t.Errorf("esc should clear focus, got %q", m.store.State().FocusID)
	}
}

func TestExplorerContextMenu(t *testing.T) {
	m := newTestExplorer(t)

	col, row := cellFor(40, 40)
	m.Update(motion(col, row))
	m.Update(press(col, row, tea.MouseButtonRight))
	if !m.menuOpen || m.menuTarget != "b" || !m.store.State().ContextMenuOpen {
		t.Fatalf("menu should be open on b")
	}

	// Moves are ignored while the menu is open.
	fcol, frow := cellFor(100, 170)
	m.Update(motion(fcol, frow))
	if hover := m.store.State().HoverIDs; !slices.Equal(hover, []string{"b"}) {
		t.Errorf("hover = %v while menu open, want [b]", hover)
	}

	m.Update(key("s"))
	if m.menuOpen || m.store.State().ContextMenuOpen {
		t.Error("menu should close after an action")
	}
	if sel := m.store.State().Selection; sel == nil || sel.NodeID != "b" {
		t.Errorf("selection = %+v, want b", sel)
	}

	// Sampling stays off until the pointer re-enters the canvas.
	m.Update(motion(fcol, frow))
	if hover := m.store.State().HoverIDs; !slices.Equal(hover, []string{"b"}) {
		t.Errorf("hover = %v before re-entering, want [b]", hover)
	}
	m.Update(motion(10, 0))
	m.Update(motion(fcol, frow))
	if hover := m.store.State().HoverIDs; !slices.Equal(hover, []string{"footer"}) {
		t.Errorf("hover = %v after re-entering, want [footer]", hover)
	}
}

func TestExplorerView(t *testing.T) {
	m := newTestExplorer(t)
	col, row := cellFor(40, 40)
	m.Update(motion(col, row))

	out := m.View()
	// tabs shares the root's top-left corner and is drawn over it.
	for _, want := range []string{"boxscope", "dump.json", "┌tabs", "footer", "hover", "overlay"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "┌a") {
		t.Error("inactive child a should not be drawn")
	}
}

func TestExplorerQuit(t *testing.T) {
	m := newTestExplorer(t)
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}
