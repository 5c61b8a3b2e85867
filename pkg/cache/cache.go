// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a large hierarchy through Graphviz is slow compared to the rest of
// the engine, so the render command keys its output by the hash of the
// snapshot file and the options that affect the picture. [FileCache] keeps
// entries under the user cache directory; [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// RenderKeyOpts are the options that change a rendered artifact.
type RenderKeyOpts struct {
	Focus     string   `json:"focus,omitempty"`
	Format    string   `json:"format"`
	Layout    string   `json:"layout,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Highlight []string `json:"highlight,omitempty"`
	MaxDepth  int      `json:"max_depth,omitempty"`
}

// RenderKey returns the cache key for a rendering of the snapshot whose
// content hash is snapshotHash.
func RenderKey(snapshotHash string, opts RenderKeyOpts) string {
	return hashKey("render", snapshotHash, opts)
}

// NullCache never stores anything. It backs --no-cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

var (
	_ Cache = NullCache{}
	_ Cache = (*FileCache)(nil)
)
