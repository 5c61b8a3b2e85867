// Package scene implements the spatial model behind the layout inspector.
//
// The external UI hierarchy arrives as a [NodeMap]: a flat, id-indexed map of
// [RawNode] values whose child and parent links are plain ids and may point at
// nodes that are missing from the map. Everything in this package treats that
// map as read-only.
//
// # Pipeline
//
//	NodeMap --Project--> *Node --ResolveFocus--> FocusState --HitTest--> []*Node
//
// [Projector.Project] materializes an owned, strictly nested tree of [Node]
// values, dropping dangling references and resolving the active-child marker to
// an index. [ResolveFocus] picks the subtree used as the visual root and
// records its global offset. [HitTest] resolves a pointer coordinate to the
// innermost nodes beneath it, smallest area first.
//
// [TotalOffset] works on the raw map instead: it walks parent links to place
// overlays (selection and hover highlights) independently of any focus.
//
// # Coordinates
//
// Every [geom.Bounds] is relative to its parent. A focused root has its own
// origin zeroed; its displacement lives only in
// [FocusState.FocusedRootGlobalOffset].
//
// # Preconditions
//
// The node map must be acyclic through child links. Projection performs no
// cycle detection.
package scene
