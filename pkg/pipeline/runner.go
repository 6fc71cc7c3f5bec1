package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"sccmap/pkg/apperr"
	"sccmap/pkg/archive"
	"sccmap/pkg/cache"
	"sccmap/pkg/components"
	"sccmap/pkg/digraph"
	graphio "sccmap/pkg/io"
	"sccmap/pkg/layout"
	"sccmap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching and tag archival.
// Both the CLI and the HTTP server use this to avoid duplicating that logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive archive.Store
	Logger  *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
// If store is nil, a NullStore is used (archival disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, store archive.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = archive.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Archive: store,
		Logger:  logger,
	}
}

// Execute runs the complete ingest → decompose → layout → render pipeline
// with caching. The layout stage runs only when a requested format draws
// from node positions.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Ingest
	ingestStart := time.Now()
	g, ingestHit, err := r.IngestWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.Graph = g
	result.Stats.IngestTime = time.Since(ingestStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.IngestHit = ingestHit

	r.Logger.Info("ingested graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.IngestTime)

	// Stage 2: Decompose
	decomposeStart := time.Now()
	reg, runID, archiveHit, err := r.DecomposeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}
	result.Registry = reg
	result.RunID = runID
	result.Stats.DecomposeTime = time.Since(decomposeStart)
	result.Stats.ComponentCount = reg.Len()
	result.CacheInfo.ArchiveHit = archiveHit

	// The tagged graph's hash keys the layout and artifact caches and
	// identifies the graph in API responses.
	if data, err := graphio.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("decomposed graph",
		"components", reg.Len(),
		"duration", result.Stats.DecomposeTime)

	// Stage 3: Layout (skipped when no requested format needs positions)
	if opts.NeedsLayout() {
		layoutStart := time.Now()
		l, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Layout = l
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.CacheInfo.LayoutHit = layoutHit

		r.Logger.Info("computed layout",
			"method", l.Method,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// IngestWithCacheInfo builds the graph with caching and returns cache hit info.
func (r *Runner) IngestWithCacheInfo(ctx context.Context, opts Options) (g *digraph.Graph, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForIngest(); err != nil {
		return nil, false, err
	}

	source := opts.Manifest
	if source == "" {
		source = opts.Nodes
	}
	observability.Pipeline().OnIngestStart(ctx, source)
	start := time.Now()
	defer func() {
		nodes := 0
		if g != nil {
			nodes = g.NodeCount()
		}
		observability.Pipeline().OnIngestComplete(ctx, source, nodes, time.Since(start), err)
	}()

	in, err := readInputs(opts)
	if err != nil {
		return nil, false, err
	}

	// The key is content-addressed: renaming an input file with the same
	// bytes still hits.
	cacheKey := r.Keyer.GraphKey(cache.GraphKeyOpts{
		NodesHash:    hashOrEmpty(in.nodes),
		LinksHash:    hashOrEmpty(in.links),
		ManifestHash: hashOrEmpty(in.manifest),
		AppendID:     opts.AppendID,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graphio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil // Cache hit
			}
			// Undecodable entries fall through to a rebuild.
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g, err = in.build(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := graphio.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, false, nil // Cache miss
}

// Ingest is a convenience wrapper that calls IngestWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Ingest(ctx context.Context, opts Options) (*digraph.Graph, error) {
	g, _, err := r.IngestWithCacheInfo(ctx, opts)
	return g, err
}

// DecomposeWithCacheInfo partitions g into strongly connected components and
// tags its nodes, consulting the archive for tags assigned by earlier runs.
// It returns the registry, the id of the run that produced the tags, and
// whether the archive served them.
//
// A graph that already carries a complete tag set (for example from a
// manifest) is re-materialized as-is; the archive is not consulted and a
// fresh run id is issued.
func (r *Runner) DecomposeWithCacheInfo(ctx context.Context, g *digraph.Graph, opts Options) (reg *components.Registry, runID string, archiveHit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDecompose(); err != nil {
		return nil, "", false, err
	}

	observability.Pipeline().OnDecomposeStart(ctx, g.NodeCount())
	start := time.Now()
	defer func() {
		count := 0
		if reg != nil {
			count = reg.Len()
		}
		observability.Pipeline().OnDecomposeComplete(ctx, count, time.Since(start), err)
	}()

	method, err := opts.NamingMethod()
	if err != nil {
		return nil, "", false, err
	}

	if tags, ok := g.ExistingComponentTags(); ok {
		return components.FromTags(g, tags), uuid.NewString(), false, nil
	}

	// The archive is keyed by the untagged graph shape, so hash before any
	// tags are written.
	data, err := graphio.Marshal(g)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize graph for archive key: %w", err)
	}
	key := archive.Key(cache.Hash(data), string(method))

	// Try the archive first (unless refresh requested)
	if !opts.Refresh {
		rec, err := r.Archive.Load(ctx, key)
		if err != nil {
			r.Logger.Warn("archive lookup failed", "key", key, "err", err)
		}
		// Tags must cover every node; the content-addressed key guarantees
		// this for records written by Save.
		if rec != nil && len(rec.Tags) == g.NodeCount() {
			observability.Archive().OnArchiveHit(ctx, key)
			g.SetComponentTags(rec.Tags)
			return components.FromTags(g, rec.Tags), rec.RunID, true, nil
		}
		observability.Archive().OnArchiveMiss(ctx, key)
	}

	reg, err = components.Build(g, method)
	if err != nil {
		return nil, "", false, err
	}

	runID = uuid.NewString()
	rec := &archive.Record{
		Key:       key,
		RunID:     runID,
		Naming:    string(method),
		Names:     reg.Names(),
		Tags:      reg.Tags(),
		CreatedAt: time.Now().UTC(),
	}
	saveErr := r.Archive.Save(ctx, rec)
	observability.Archive().OnArchiveSave(ctx, key, saveErr)
	if saveErr != nil {
		r.Logger.Warn("archive save failed", "key", key, "err", saveErr)
	}

	return reg, runID, false, nil
}

// Decompose is a convenience wrapper that calls DecomposeWithCacheInfo and
// discards the run id and archive hit info.
func (r *Runner) Decompose(ctx context.Context, g *digraph.Graph, opts Options) (*components.Registry, error) {
	reg, _, _, err := r.DecomposeWithCacheInfo(ctx, g, opts)
	return reg, err
}

// LayoutWithCacheInfo computes node positions with caching and returns cache
// hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *digraph.Graph, opts Options) (l layout.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Layout, g.NodeCount())
	start := time.Now()
	defer func() {
		method := l.Method
		if method == "" {
			method = opts.Layout
		}
		observability.Pipeline().OnLayoutComplete(ctx, method, time.Since(start), err)
	}()

	// Compute cache key
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// Undecodable entries fall through to a recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err = layout.Compute(ctx, g, layout.Options{
		Method: opts.Layout,
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   opts.Seed,
		Logger: opts.Logger,
	})
	if err != nil {
		return layout.Layout{}, false, apperr.Wrap(apperr.ErrCodeLayoutFailed, err, "compute %s layout", opts.Layout)
	}

	// Cache the result
	if data, err := layout.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *digraph.Graph, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format came from
// cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *digraph.Graph, l layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	// Positionless formats share cache entries across layouts, so their
	// keys carry no layout hash.
	layoutHash := ""
	if opts.NeedsLayout() {
		layoutData, err := layout.Marshal(l)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		layoutHash = cache.Hash(layoutData)
	}

	artifactKey := func(format string) string {
		lh := ""
		if NeedsPositions(format) {
			lh = layoutHash
		}
		return r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format, lh))
	}

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			if data, hit, err := r.Cache.Get(ctx, artifactKey(format)); err == nil && hit {
				cached[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(cached) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return cached, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := RenderArtifacts(g, l, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		_ = r.Cache.Set(ctx, artifactKey(format), data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, g *digraph.Graph, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner's collaborators.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Archive != nil {
		if err := r.Archive.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashOrEmpty hashes input bytes, mapping an unconfigured (nil) input to the
// empty string so the key distinguishes "absent" from "empty file".
func hashOrEmpty(data []byte) string {
	if data == nil {
		return ""
	}
	return cache.Hash(data)
}
