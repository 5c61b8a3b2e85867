package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/pointer"
	"github.com/matzehuels/boxscope/pkg/render/text"
	"github.com/matzehuels/boxscope/pkg/scene"
)

// hitOpts holds the command-line flags for the hit command.
type hitOpts struct {
	focus        string
	displayWidth float64
	originX      float64
	originY      float64
	json         bool
	tree         bool
}

// hitResult is the JSON output of the hit command.
type hitResult struct {
	Viewport geom.Coordinate `json:"viewport"`
	Local    geom.Coordinate `json:"local"`
	Hits     []hitNode       `json:"hits"`
}

type hitNode struct {
	ID     string      `json:"id"`
	Bounds geom.Bounds `json:"bounds"`
	Area   float64     `json:"area"`
}

// hitCommand creates the hit command for hit testing a viewport point.
func (c *CLI) hitCommand() *cobra.Command {
	var opts hitOpts

	cmd := &cobra.Command{
		Use:   "hit [file] [x] [y]",
		Short: "Hit test a point against the hierarchy",
		Long: `Report the most specific nodes under a point, smallest first.

The point is given in viewport coordinates. When --display-width is set,
the visualization is assumed to be drawn that wide with its top-left corner
at --origin-x/--origin-y, and the point is scaled into snapshot units.
Without a display width the point is taken as-is in the focused root's frame.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseCoordinate(args[1], args[2])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("display-width") {
				opts.displayWidth = c.Config.Display.Width
			}
			return c.runHit(cmd.Context(), args[0], p, opts)
		},
	}

	cmd.Flags().StringVar(&opts.focus, "focus", "", "node id to use as the visual root")
	cmd.Flags().Float64Var(&opts.displayWidth, "display-width", 0, "width the visualization is drawn at (default from config)")
	cmd.Flags().Float64Var(&opts.originX, "origin-x", 0, "viewport x of the visualization's left edge")
	cmd.Flags().Float64Var(&opts.originY, "origin-y", 0, "viewport y of the visualization's top edge")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print the tree with hits marked")

	return cmd
}

func (c *CLI) runHit(ctx context.Context, path string, p geom.Coordinate, opts hitOpts) error {
	s, err := c.load(ctx, path, opts.focus)
	if err != nil {
		return err
	}
	st := s.store.State()
	v := s.view(c)

	mapper := pointer.Mapper{
		Origin:        geom.Coordinate{X: opts.originX, Y: opts.originY},
		SnapshotWidth: st.Snapshot.Width,
		DisplayWidth:  opts.displayWidth,
		ZeroWidth:     pointer.ZeroWidthUnit,
	}
	local, _ := mapper.Map(p)
	hits := scene.HitTest(v.Focus.FocusedRoot, local)

	result := hitResult{Viewport: p, Local: local, Hits: make([]hitNode, 0, len(hits))}
	for _, n := range hits {
		result.Hits = append(result.Hits, hitNode{ID: n.ID, Bounds: n.Bounds, Area: n.Bounds.Area()})
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printKeyValue("Point", local.String())
	if len(hits) == 0 {
		printInfo("No node contains %s", local)
		return nil
	}
	for _, h := range result.Hits {
		fmt.Printf("%s %s\n", StyleHighlight.Render(h.ID), StyleDim.Render(h.Bounds.String()))
	}
	if opts.tree {
		printNewline()
		fmt.Println(text.Tree(v.Focus.FocusedRoot, text.Options{Highlight: scene.HitIDs(hits)}))
	}
	c.reportAnomalies()
	return nil
}

func parseCoordinate(xs, ys string) (geom.Coordinate, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "x")
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "y")
	}
	if err := errors.ValidateCoordinate("point", x, y); err != nil {
		return geom.Coordinate{}, err
	}
	return geom.Coordinate{X: x, Y: y}, nil
}
