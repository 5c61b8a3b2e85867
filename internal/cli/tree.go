package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/render/text"
	"github.com/matzehuels/boxscope/pkg/scene"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	focus     string
	bounds    bool
	depth     int
	highlight string
	json      bool
}

// treeCommand creates the tree command for printing the projected hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the projected hierarchy",
		Long: `Print the hierarchy as the engine sees it: dangling child references are
dropped, and siblings hidden behind an active child are marked.

With --focus the named node becomes the visual root. Its position is
reported as the global offset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.focus, "focus", "", "node id to use as the visual root")
	cmd.Flags().BoolVar(&opts.bounds, "bounds", false, "show node bounds")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "maximum depth to print (0 = unlimited)")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "comma-separated node ids to mark")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the projected tree as JSON")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, path string, opts treeOpts) error {
	s, err := c.load(ctx, path, opts.focus)
	if err != nil {
		return err
	}
	v := s.view(c)
	focus := v.Focus

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(focus)
	}

	printKeyValue("Root", focus.ActualRoot.ID)
	if focus.IsFocused() {
		printKeyValue("Focus", focus.FocusedRoot.ID)
		printKeyValue("Offset", focus.FocusedRootGlobalOffset.String())
	}
	printKeyValue("Nodes", fmt.Sprintf("%d", scene.Count(focus.FocusedRoot)))
	printNewline()

	fmt.Println(text.Tree(focus.FocusedRoot, text.Options{
		Bounds:    opts.bounds,
		Highlight: splitIDs(opts.highlight),
		MaxDepth:  opts.depth,
	}))
	c.reportAnomalies()
	return nil
}

// splitIDs parses a comma-separated id list. Blank entries are skipped.
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
