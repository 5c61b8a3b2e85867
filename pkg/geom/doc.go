// Package geom provides the rectangle and point primitives used by the scene
// engine.
//
// All values are in snapshot units (the native pixel space of the captured
// UI hierarchy). A [Bounds] is positioned relative to its parent's origin;
// [Coordinate] values are likewise always interpreted in some parent frame.
//
// Degenerate rectangles are allowed: a zero-area [Bounds] still contains the
// point that coincides with it, and negative sizes simply contain nothing
// beyond their origin edge.
package geom
