// Package cache stores computed layouts between runs.
//
// A [Cache] is a byte store keyed by string with per-entry expiry. Three
// backends are provided: [FileCache] for the CLI (one JSON file per entry
// under a cache directory), [RedisCache] for shared deployments, and
// [NullCache] when caching is disabled.
//
// Keys are built by a [Keyer] from a content hash of the input transcripts
// and the options that influence the result, so a changed input or option
// never returns a stale layout. [ScopedKeyer] prefixes keys for a shared
// namespace such as a Redis database used by several tools.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or
	// expired; that is not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Gene          string `json:"gene"`
	MinRegionSize int    `json:"min_region_size"`
	MaxClusters   int    `json:"max_clusters"`
	Seed          uint64 `json:"seed"`
	Restarts      int    `json:"restarts"`
	Strand        string `json:"strand"`
	ScopeStart    int    `json:"scope_start"`
	ScopeEnd      int    `json:"scope_end"`
	ShortLabels   bool   `json:"short_labels"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from the transcripts
	// hashed as inputHash with opts.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes key components into "kind:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ScopedKeyer prefixes every key of an inner [Keyer].
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements [Keyer].
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}
