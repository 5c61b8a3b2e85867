package scene

import (
	"reflect"
	"testing"

	"github.com/matzehuels/boxscope/pkg/geom"
)

func TestResolveFocusOffset(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())

	fs := ResolveFocus(root, "B")

	if want := (geom.Coordinate{X: 15, Y: 15}); fs.FocusedRootGlobalOffset != want {
		t.Errorf("FocusedRootGlobalOffset = %v, want %v", fs.FocusedRootGlobalOffset, want)
	}
	if want := bounds(0, 0, 20, 20); fs.FocusedRoot.Bounds != want {
		t.Errorf("FocusedRoot.Bounds = %v, want %v", fs.FocusedRoot.Bounds, want)
	}
	if fs.ActualRoot != root {
		t.Error("ActualRoot should be the input root")
	}
	if !fs.IsFocused() {
		t.Error("IsFocused() = false, want true")
	}
}

func TestResolveFocusDoesNotMutateTree(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())

	fs := ResolveFocus(root, "A")

	if a := Find(root, "A"); a.Bounds != bounds(10, 10, 50, 50) {
		t.Errorf("original A bounds = %v, want (10, 10, 50×50)", a.Bounds)
	}
	if fs.FocusedRoot == Find(root, "A") {
		t.Error("FocusedRoot should be a copy, not the tree node")
	}
	if len(fs.FocusedRoot.Children) != 1 || fs.FocusedRoot.Children[0].ID != "B" {
		t.Error("FocusedRoot should keep its children")
	}
}

func TestResolveFocusFallback(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())

	tests := []struct {
		name   string
		target string
	}{
		{"no target", ""},
		{"unknown target", "nonexistent-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := ResolveFocus(root, tt.target)
			if fs.ActualRoot != root || fs.FocusedRoot != root {
				t.Error("fallback should focus the whole tree")
			}
			if fs.FocusedRootGlobalOffset != (geom.Coordinate{}) {
				t.Errorf("offset = %v, want (0, 0)", fs.FocusedRootGlobalOffset)
			}
			if fs.IsFocused() {
				t.Error("IsFocused() = true, want false")
			}
		})
	}
}

func TestResolveFocusNilRoot(t *testing.T) {
	fs := ResolveFocus(nil, "B")
	if fs.ActualRoot != nil || fs.FocusedRoot != nil {
		t.Errorf("ResolveFocus(nil) = %+v, want empty state", fs)
	}
}

func TestResolveFocusIncludesRootOrigin(t *testing.T) {
	nodes := nestedMap()
	r := nodes["R"]
	r.Bounds = bounds(100, 50, 200, 200)
	nodes["R"] = r

	root := quietProjector().Project("R", nodes)
	fs := ResolveFocus(root, "B")
	if want := (geom.Coordinate{X: 115, Y: 65}); fs.FocusedRootGlobalOffset != want {
		t.Errorf("offset = %v, want %v", fs.FocusedRootGlobalOffset, want)
	}
}

func TestResolveFocusFirstMatchWins(t *testing.T) {
	nodes := NodeMap{
		"R":  {ID: "R", Bounds: bounds(0, 0, 100, 100), Children: []string{"P1", "P2"}},
		"P1": {ID: "P1", Bounds: bounds(1, 1, 10, 10), Parent: "R"},
		"P2": {ID: "P2", Bounds: bounds(50, 50, 10, 10), Parent: "R"},
	}
	root := quietProjector().Project("R", nodes)
	// Simulate an id collision in the projected tree.
	root.Children[1].ID = "P1"

	fs := ResolveFocus(root, "P1")
	if want := (geom.Coordinate{X: 1, Y: 1}); fs.FocusedRootGlobalOffset != want {
		t.Errorf("offset = %v, want %v", fs.FocusedRootGlobalOffset, want)
	}
}

func TestResolveFocusIsPure(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())
	a := ResolveFocus(root, "B")
	b := ResolveFocus(root, "B")
	if !reflect.DeepEqual(a, b) {
		t.Error("ResolveFocus() results differ for identical input")
	}
}

func TestFocusStateToFocused(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())
	fs := ResolveFocus(root, "A")
	got := fs.ToFocused(geom.Coordinate{X: 30, Y: 40})
	if want := (geom.Coordinate{X: 20, Y: 30}); got != want {
		t.Errorf("ToFocused() = %v, want %v", got, want)
	}
}
