package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/geom"
)

type offsetResult struct {
	ID       string          `json:"id"`
	Total    geom.Coordinate `json:"total"`
	Relative geom.Coordinate `json:"relative"`
	Overlay  geom.Bounds     `json:"overlay"`
}

// offsetCommand creates the offset command for overlay placement.
func (c *CLI) offsetCommand() *cobra.Command {
	var (
		focus  string
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "offset [file] [id]",
		Short: "Compute where a node's overlay is drawn",
		Long: `Sum the node's origin with those of all its ancestors to get its position
relative to the root, then express it in the focused root's frame.

An unknown id resolves to the origin with a warning, unless --strict is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOffset(cmd.Context(), args[0], args[1], focus, asJSON, strict)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "node id to use as the visual root")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on an unknown node id")

	return cmd
}

func (c *CLI) runOffset(ctx context.Context, path, id, focus string, asJSON, strict bool) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	s, err := c.load(ctx, path, focus)
	if err != nil {
		return err
	}
	nodes := s.store.State().Nodes
	v := s.view(c)
	p := c.projector()

	result := offsetResult{ID: id}
	n, known := nodes[id]
	switch {
	case known:
		result.Total = p.TotalOffset(id, nodes)
		result.Relative = v.Focus.ToFocused(result.Total)
		result.Overlay = geom.Bounds{X: result.Relative.X, Y: result.Relative.Y, Width: n.Bounds.Width, Height: n.Bounds.Height}
	case strict:
		return errors.New(errors.ErrCodeNodeNotFound, "no node %q", id)
	default:
		loggerFromContext(ctx).Warn("unknown node, using origin", "node", id)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printKeyValue("Node", result.ID)
	printKeyValue("Total", result.Total.String())
	if v.Focus.IsFocused() {
		printKeyValue("Focus", v.Focus.FocusedRoot.ID)
		printKeyValue("Relative", result.Relative.String())
	}
	printKeyValue("Overlay", result.Overlay.String())
	c.reportAnomalies()
	return nil
}
