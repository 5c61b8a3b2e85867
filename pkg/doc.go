// Package pkg holds the libraries behind boxscope, a spatial scene-graph
// engine for inspecting nested rectangle snapshots.
//
// # Overview
//
// A snapshot is a flat node table: each node has an id, a bounding box
// relative to its parent, an ordered child list and an optional active child
// for tab-like containers. The packages are layered:
//
//  1. [geom] - Bounds and coordinates
//  2. [scene] - Projection, focus, hit testing and offsets
//  3. [pointer] - Throttled pointer sampling into hover updates
//  4. [store] - Hover, selection and focus state with change notification
//  5. [io] - JSON import and export of snapshot documents
//  6. [render] - Graphviz and text renderings of projected trees
//  7. [server] - HTTP API over a store
//
// Supporting packages: [config], [cache], [errors], [observability] and
// [buildinfo].
//
// # Data Flow
//
//	snapshot JSON
//	     ↓
//	[io] (decode node table)
//	     ↓
//	[scene] Projector (tree with anomalies dropped)
//	     ↓
//	[scene] Resolve (focused subtree + global offset)
//	     ↓
//	[scene] HitTest / TotalOffset  ←  [pointer] Sampler
//	     ↓
//	[store] (hover, selection, focus)
//
// # Quick Start
//
//	doc, err := io.ImportJSON("snapshot.json")
//	if err != nil {
//	    return err
//	}
//	root := scene.NewProjector(nil).Project(doc.Root, doc.Nodes)
//	hits := scene.HitTest(root, geom.Coordinate{X: 10, Y: 20})
package pkg
