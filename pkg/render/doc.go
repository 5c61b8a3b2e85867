// Package render turns projected scene trees into human-readable output.
//
// # Overview
//
// Two renderers are provided:
//
//   - [dot]: Graphviz DOT and SVG, either as a parent/child digraph or as
//     nested clusters that mirror bounding-box containment
//   - [text]: an indented terminal tree with bounds and active-child markers
//
// Both accept a set of highlighted ids, used by the CLI to mark hit-test
// results and the current focus.
//
//	dotSrc := dot.ToDOT(root, dot.Options{Layout: dot.Nested})
//	svg, err := dot.RenderSVG(ctx, dotSrc)
//	fmt.Println(text.Tree(root, text.Options{}))
//
// [dot]: github.com/matzehuels/boxscope/pkg/render/dot
// [text]: github.com/matzehuels/boxscope/pkg/render/text
package render
