// Package io provides JSON import and export for hierarchy dumps.
//
// # Overview
//
// A dump captures one moment of a UI hierarchy: the flat node map, the id of
// the root, and the snapshot image taken of it. The format is designed for:
//
//   - Feeding captures from external tools into the inspector
//   - Reproducing hit-testing and focus behavior offline
//   - Round-trip preservation: import, export, and re-import identically
//
// # JSON Format
//
//	{
//	  "root": "window",
//	  "snapshot": {"nodeId": "window", "width": 1080, "height": 1920},
//	  "nodes": [
//	    {"id": "window", "bounds": {"x": 0, "y": 0, "width": 1080, "height": 1920},
//	     "children": ["tabs"]},
//	    {"id": "tabs", "parent": "window", "activeChild": "home",
//	     "bounds": {"x": 0, "y": 100, "width": 1080, "height": 1700},
//	     "children": ["home", "settings"]}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - name: Display name (class or component name)
//   - bounds: Rectangle relative to the parent (zero if omitted)
//   - children: Child ids, in paint order; dangling ids are allowed
//   - activeChild: Child that is exclusively visible (e.g. the selected tab)
//   - parent: Parent id; inferred from child lists when omitted
//
// # Root and Snapshot
//
// The root defaults to snapshot.nodeId, then to the first node without a
// parent. A missing snapshot is synthesized from the root's bounds so that
// the scale factor is defined.
//
// # Validation
//
// [ReadJSON] rejects empty or duplicate ids and non-finite bounds. Dangling
// references are kept: they are an expected property of live captures and
// are handled by the scene projector.
package io
