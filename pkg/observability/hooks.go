// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tree projection, hit testing, pointer sampling, and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    observability.SetPointerHooks(&myPointerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scene().OnAnomaly(observability.AnomalyDanglingChild, parentID, childID)
package observability

import (
	"context"
	"sync"
	"time"
)

// AnomalyKind classifies a non-fatal inconsistency in the raw node map.
type AnomalyKind string

// Anomaly kinds reported through SceneHooks.OnAnomaly.
const (
	AnomalyDanglingChild  AnomalyKind = "dangling_child"
	AnomalyDanglingActive AnomalyKind = "dangling_active_child"
	AnomalyDanglingParent AnomalyKind = "dangling_parent"
	AnomalyUnknownNode    AnomalyKind = "unknown_node"
)

// DropReason explains why a pointer sample was not processed.
type DropReason string

// Drop reasons reported through PointerHooks.OnSampleDropped.
const (
	DropThrottled   DropReason = "throttled"
	DropInactive    DropReason = "inactive"
	DropContextMenu DropReason = "context_menu"
	DropNoSnapshot  DropReason = "no_snapshot"
	DropZeroWidth   DropReason = "zero_width"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from the scene engine.
type SceneHooks interface {
	// OnProject records a completed tree projection.
	OnProject(rootID string, nodeCount int, duration time.Duration)

	// OnAnomaly records a dangling reference or other absorbed inconsistency.
	OnAnomaly(kind AnomalyKind, nodeID, ref string)

	// OnHitTest records a hit test and the number of terminal hits.
	OnHitTest(hits int)
}

// =============================================================================
// Pointer Hooks
// =============================================================================

// PointerHooks receives events from the pointer sampler.
type PointerHooks interface {
	// OnSampleAccepted records a sample that reached the hit tester.
	OnSampleAccepted(changed bool)

	// OnSampleDropped records a sample rejected before hit testing.
	OnSampleDropped(reason DropReason)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnProject(string, int, time.Duration)  {}
func (NoopSceneHooks) OnAnomaly(AnomalyKind, string, string) {}
func (NoopSceneHooks) OnHitTest(int)                         {}

// NoopPointerHooks is a no-op implementation of PointerHooks.
type NoopPointerHooks struct{}

func (NoopPointerHooks) OnSampleAccepted(bool)      {}
func (NoopPointerHooks) OnSampleDropped(DropReason) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks   SceneHooks   = NoopSceneHooks{}
	pointerHooks PointerHooks = NoopPointerHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetPointerHooks registers custom pointer hooks.
func SetPointerHooks(h PointerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pointerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Pointer returns the registered pointer hooks.
func Pointer() PointerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pointerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	pointerHooks = NoopPointerHooks{}
	cacheHooks = NoopCacheHooks{}
}
