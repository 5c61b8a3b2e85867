package scene_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/scene"
)

func Example() {
	nodes := scene.NodeMap{
		"window": {ID: "window", Bounds: geom.Bounds{Width: 200, Height: 200}, Children: []string{"tabs"}},
		"tabs": {
			ID:          "tabs",
			Parent:      "window",
			Bounds:      geom.Bounds{X: 10, Y: 10, Width: 100, Height: 100},
			Children:    []string{"home", "settings"},
			ActiveChild: "settings",
		},
		"home":     {ID: "home", Parent: "tabs", Bounds: geom.Bounds{Width: 100, Height: 100}},
		"settings": {ID: "settings", Parent: "tabs", Bounds: geom.Bounds{Width: 100, Height: 100}},
	}

	root := scene.NewProjector(log.New(io.Discard)).Project("window", nodes)
	focus := scene.ResolveFocus(root, "tabs")
	hits := scene.HitTest(focus.FocusedRoot, geom.Coordinate{X: 50, Y: 50})

	fmt.Println("offset:", focus.FocusedRootGlobalOffset)
	fmt.Println("hits:", scene.HitIDs(hits))
	fmt.Println("overlay:", scene.TotalOffset("settings", nodes))
	// Output:
	// offset: (10, 10)
	// hits: [settings]
	// overlay: (10, 10)
}
