// Package pointer turns raw pointer-move events into hover updates.
//
// Events pass through three gates before reaching the hit tester:
//
//   - [Throttle] lets the first event of a burst through and drops the rest
//     until [DefaultInterval] has elapsed. Nothing is delayed or merged.
//   - [Gate] is a two-state machine ({Inactive, Active}) driven by enter,
//     leave and context-menu-close events.
//   - The [Frame] must carry a focused tree, and no context menu may be open.
//
// Accepted events are mapped by [Mapper] from viewport coordinates into the
// snapshot's native units and hit tested. The [store.Store] is notified only
// when the ordered list of hit ids changes.
//
// A [Sampler] is meant to be driven from a single event loop and is not safe
// for concurrent use.
package pointer
