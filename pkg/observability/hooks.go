// Package observability exposes instrumentation hooks for pipeline stages,
// cache operations, and archive lookups.
//
// The package holds one global implementation per hook interface, defaulting
// to no-ops. A backend (OpenTelemetry, Prometheus, plain logging) registers
// itself once in main; emitting packages never import it directly:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The pipeline runner emits through the accessors:
//
//	observability.Pipeline().OnIngestStart(ctx, source)
//	// ... build the graph ...
//	observability.Pipeline().OnIngestComplete(ctx, source, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the decomposition pipeline.
type PipelineHooks interface {
	// Ingest events. Source is the manifest path when one is configured,
	// otherwise the nodes file path.
	OnIngestStart(ctx context.Context, source string)
	OnIngestComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	// Decompose events
	OnDecomposeStart(ctx context.Context, nodeCount int)
	OnDecomposeComplete(ctx context.Context, componentCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, method string, nodeCount int)
	OnLayoutComplete(ctx context.Context, method string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. The key type is one of
// "graph", "layout", or "artifact".
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Archive Hooks
// =============================================================================

// ArchiveHooks receives events from tag-archive lookups.
type ArchiveHooks interface {
	// OnArchiveHit records a lookup served from the archive.
	OnArchiveHit(ctx context.Context, key string)

	// OnArchiveMiss records a lookup the archive could not serve.
	OnArchiveMiss(ctx context.Context, key string)

	// OnArchiveSave records a record write (err is nil on success).
	OnArchiveSave(ctx context.Context, key string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestStart(context.Context, string) {}
func (NoopPipelineHooks) OnIngestComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnDecomposeStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnDecomposeComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                        {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopArchiveHooks is a no-op implementation of ArchiveHooks.
type NoopArchiveHooks struct{}

func (NoopArchiveHooks) OnArchiveHit(context.Context, string)         {}
func (NoopArchiveHooks) OnArchiveMiss(context.Context, string)        {}
func (NoopArchiveHooks) OnArchiveSave(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	archiveHooks  ArchiveHooks  = NoopArchiveHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Call once at startup, before
// the first run; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Call once at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetArchiveHooks registers archive hooks. Call once at startup; nil is
// ignored.
func SetArchiveHooks(h ArchiveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		archiveHooks = h
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

// Archive returns the registered archive hooks.
func Archive() ArchiveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return archiveHooks
}

// Reset restores the no-op defaults. Tests that register hooks defer this.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	archiveHooks = NoopArchiveHooks{}
}
