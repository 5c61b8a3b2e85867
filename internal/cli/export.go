package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/io"
)

// exportCommand creates the export command that rewrites a dump in
// normalized form.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		prune  bool
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the hierarchy back as a normalized dump",
		Long: `Read a dump and write it back with the root, the snapshot and every parent
link spelled out, so other tools do not need to infer them.

With --prune, references that do not resolve are removed: missing child ids,
active children that are not children, and parents that do not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, prune)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file; - for stdout")
	cmd.Flags().BoolVar(&prune, "prune", false, "drop references that do not resolve")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, path, output string, prune bool) error {
	logger := loggerFromContext(ctx)

	s, err := c.load(ctx, path, "")
	if err != nil {
		return err
	}
	if prune {
		n := io.Prune(s.doc)
		logger.Info("pruned dangling references", "count", n)
	}

	if output == "" || output == "-" {
		out, err := openOutput("-")
		if err != nil {
			return err
		}
		defer out.Close()
		return io.WriteJSON(s.doc, out)
	}
	if err := io.ExportJSON(s.doc, output); err != nil {
		return err
	}
	printSuccess("Exported %d nodes", len(s.doc.Nodes))
	printFile(output)
	return nil
}
