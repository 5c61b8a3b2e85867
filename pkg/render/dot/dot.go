// Package dot renders scene trees as Graphviz diagrams.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxscope/pkg/scene"
)

// Layout selects how the tree is drawn.
type Layout int

const (
	// Hierarchy draws nodes as boxes connected by parent -> child edges.
	Hierarchy Layout = iota
	// Nested draws every node with children as a cluster containing them.
	Nested
)

// ParseLayout parses "tree" or "nested".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "tree", "hierarchy":
		return Hierarchy, nil
	case "nested":
		return Nested, nil
	}
	return Hierarchy, fmt.Errorf("unknown layout %q (want tree or nested)", s)
}

func (l Layout) String() string {
	if l == Nested {
		return "nested"
	}
	return "tree"
}

// Options configures DOT output.
type Options struct {
	Layout Layout

	// Detailed adds bounds to node labels.
	Detailed bool

	// Highlight lists node ids drawn with an accent fill.
	Highlight []string

	// MaxDepth limits how deep the tree is drawn. Zero means unlimited.
	MaxDepth int
}

const highlightFill = "#ffd966"

// ToDOT converts a projected tree to Graphviz DOT. Inactive siblings of an
// active child are drawn dashed. A nil root yields an empty digraph.
func ToDOT(root *scene.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	if opts.Layout == Nested {
		buf.WriteString("  compound=true;\n")
	}
	buf.WriteString("\n")

	if root != nil {
		w := &writer{buf: &buf, opts: opts, highlight: make(map[string]bool, len(opts.Highlight))}
		for _, id := range opts.Highlight {
			w.highlight[id] = true
		}
		switch opts.Layout {
		case Nested:
			w.cluster(root, 1, false, "  ")
		default:
			w.hierarchy(root)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf       *bytes.Buffer
	opts      Options
	highlight map[string]bool
}

func (w *writer) within(depth int) bool {
	return w.opts.MaxDepth <= 0 || depth <= w.opts.MaxDepth
}

func (w *writer) hierarchy(root *scene.Node) {
	var edges []string
	w.node(root, 1, false, &edges)

	w.buf.WriteString("\n")
	for _, e := range edges {
		w.buf.WriteString(e)
	}
}

func (w *writer) node(n *scene.Node, depth int, dimmed bool, edges *[]string) {
	fmt.Fprintf(w.buf, "  %q [%s];\n", n.ID, strings.Join(w.attrs(n, dimmed), ", "))
	if !w.within(depth + 1) {
		return
	}
	for i, c := range n.Children {
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", n.ID, c.ID))
		w.node(c, depth+1, dimmed || offActive(n, i), edges)
	}
}

func (w *writer) cluster(n *scene.Node, depth int, dimmed bool, indent string) {
	if len(n.Children) == 0 || !w.within(depth+1) {
		fmt.Fprintf(w.buf, "%s%q [%s];\n", indent, n.ID, strings.Join(w.attrs(n, dimmed), ", "))
		return
	}

	fmt.Fprintf(w.buf, "%ssubgraph %q {\n", indent, "cluster_"+n.ID)
	inner := indent + "  "
	fmt.Fprintf(w.buf, "%slabel=%q;\n", inner, w.label(n))
	style := "rounded"
	if dimmed {
		style += ",dashed"
	}
	if w.highlight[n.ID] {
		fmt.Fprintf(w.buf, "%sstyle=\"%s,filled\";\n%sfillcolor=%q;\n", inner, style, inner, highlightFill)
	} else {
		fmt.Fprintf(w.buf, "%sstyle=%q;\n", inner, style)
	}
	for i, c := range n.Children {
		w.cluster(c, depth+1, dimmed || offActive(n, i), inner)
	}
	fmt.Fprintf(w.buf, "%s}\n", indent)
}

func (w *writer) label(n *scene.Node) string {
	name := n.ID
	if n.Name != "" && n.Name != n.ID {
		name = n.Name + " (" + n.ID + ")"
	}
	if !w.opts.Detailed {
		return name
	}
	return name + "\n" + n.Bounds.String()
}

func (w *writer) attrs(n *scene.Node, dimmed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", w.label(n))}
	switch {
	case w.highlight[n.ID]:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", highlightFill))
	case dimmed:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// offActive reports whether the i-th child of n is hidden behind another
// active child.
func offActive(n *scene.Node, i int) bool {
	return n.ActiveChild != scene.NoActiveChild && i != n.ActiveChild
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin so the output scales cleanly in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
