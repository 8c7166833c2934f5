// Package observability lets an application observe pipeline runs without
// the library depending on a metrics or tracing backend.
//
// Hooks are registered once at startup and default to no-ops:
//
//	func main() {
//	    observability.SetPipelineHooks(&metrics{})
//	    // ... run commands
//	}
//
// The pipeline reports every stage it runs:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StagePartition, gene)
//	// ... partition exons ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StagePartition, gene, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names a pipeline stage.
type Stage string

// Pipeline stages in execution order.
const (
	StagePartition Stage = "partition"
	StageRegions   Stage = "regions"
	StageOrdering  Stage = "ordering"
	StageCluster   Stage = "cluster"
)

// PipelineHooks receives stage events from the layout pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage Stage, gene string)
	OnStageComplete(ctx context.Context, stage Stage, gene string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups made by the pipeline.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, Stage, string) {}
func (NoopPipelineHooks) OnStageComplete(context.Context, Stage, string, time.Duration, error) {
}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
