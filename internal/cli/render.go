package cli

import (
	"context"
	"encoding/json"
	"fmt"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/cache"
	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/render/dot"
	"github.com/matzehuels/boxscope/pkg/scene"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// validFormats lists the supported output formats.
var validFormats = []string{formatSVG, formatDOT, formatJSON}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple outputs)
	formats   []string // output formats: "svg", "dot", "json"
	layout    string   // diagram layout: "tree" or "nested"
	focus     string   // node id to use as the visual root
	highlight []string // node ids to highlight
	detailed  bool     // include bounds in labels
	depth     int      // maximum depth (0 = unlimited)
	noCache   bool     // bypass the render cache
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, highlightStr string
	opts := renderOpts{layout: dot.Hierarchy.String()}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the hierarchy as a diagram",
		Long: `Render the projected hierarchy with Graphviz.

The tree layout draws parent -> child edges. The nested layout draws every
node with children as a cluster that contains them, mirroring the boxes.
Siblings hidden behind an active child are drawn dashed.

SVG output is cached by snapshot content and options; use --no-cache to
force a fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.highlight = splitIDs(highlightStr)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f, validFormats...); err != nil {
					return err
				}
			}
			if _, err := dot.ParseLayout(opts.layout); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "--layout")
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "diagram layout: tree, nested")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "node id to use as the visual root")
	cmd.Flags().StringVar(&highlightStr, "highlight", "", "comma-separated node ids to highlight")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include bounds in node labels")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "maximum depth to draw (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if errors.ValidateFormat(strings.TrimPrefix(ext, "."), validFormats...) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format honours
// --output verbatim; several formats share a base path.
func outputPath(input, format string, opts *renderOpts) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := c.load(ctx, input, opts.focus)
	if err != nil {
		return err
	}
	v := s.view(c)
	root := v.Focus.FocusedRoot
	logger.Infof("Rendering %s (%d nodes)", root.ID, scene.Count(root))

	rc, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer rc.Close()

	layout, _ := dot.ParseLayout(opts.layout)
	dotOpts := dot.Options{Layout: layout, Detailed: opts.detailed, Highlight: opts.highlight, MaxDepth: opts.depth}
	snapshotHash := cache.Hash(s.data)

	for _, format := range opts.formats {
		var (
			data   []byte
			cached bool
		)
		switch format {
		case formatDOT:
			data = []byte(dot.ToDOT(root, dotOpts))
		case formatJSON:
			data, err = json.MarshalIndent(v.Focus, "", "  ")
		case formatSVG:
			key := cache.RenderKey(snapshotHash, cache.RenderKeyOpts{
				Focus:     opts.focus,
				Format:    format,
				Layout:    opts.layout,
				Detailed:  opts.detailed,
				Highlight: opts.highlight,
				MaxDepth:  opts.depth,
			})
			data, cached, err = renderSVGCached(ctx, rc, key, dot.ToDOT(root, dotOpts))
		}
		if err != nil {
			return err
		}

		path := outputPath(input, format, opts)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		if path != "-" {
			printSuccess("Rendered %s", format)
			printFile(path)
			printStats(scene.Count(root), cached)
		}
	}

	c.reportAnomalies()
	prog.done("Render complete")
	return nil
}

// renderSVGCached returns the SVG for dotSrc from rc, rendering and storing
// it on a miss.
func renderSVGCached(ctx context.Context, rc cache.Cache, key, dotSrc string) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	if data, ok, err := rc.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if ok {
		logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	svg, err := dot.RenderSVG(ctx, dotSrc)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	if err := rc.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return svg, false, nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

func openOutput(path string) (stdio.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return os.Create(path)
}

type nopCloser struct{ stdio.Writer }

func (nopCloser) Close() error { return nil }
