package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/siddlokray/cortica/pkg/cache"
	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete cluster → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, m connectivity.Matrix, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	matrixData, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize matrix")
	}
	result.MatrixHash = cache.Hash(matrixData)

	// Stage 1: Cluster
	clusterStart := time.Now()
	observability.Pipeline().OnClusterStart(ctx, m.Size(), opts.Clusters)
	analysis, clusterHit, err := r.ClusterWithCacheInfo(ctx, m, opts)
	observability.Pipeline().OnClusterComplete(ctx, analysis.Clusters, time.Since(clusterStart), err)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	result.Stats.ClusterTime = time.Since(clusterStart)
	result.Stats.RegionCount = m.Size()
	result.Stats.ClusterCount = analysis.Clusters
	result.CacheInfo.ClusterHit = clusterHit

	r.Logger.Info("clustered regions",
		"regions", m.Size(),
		"clusters", analysis.Clusters,
		"duration", result.Stats.ClusterTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Layout, m.Size())
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, m, analysis.Labels, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Layout, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.EdgeCount = len(layout.Graph.Edges)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	// Compute graph hash for cache keys and API responses
	if graphData, err := graph.MarshalGraph(&layout.Graph); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("computed layout",
		"algorithm", opts.Layout,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, analysis, layout, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered figures",
		"kinds", opts.Kinds,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ClusterWithCacheInfo clusters with caching and returns cache hit info.
func (r *Runner) ClusterWithCacheInfo(ctx context.Context, m connectivity.Matrix, opts Options) (Analysis, bool, error) {
	if err := opts.ValidateForCluster(); err != nil {
		return Analysis{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the matrix content
	matrixData, err := json.Marshal(m)
	if err != nil {
		return Analysis{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize matrix")
	}
	cacheKey := r.Keyer.ClusterKey(cache.Hash(matrixData), opts.ClusterKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "cluster")
				return cached, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "cluster")

	// Cluster
	analysis, err := Cluster(m, opts)
	if err != nil {
		return Analysis{}, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(analysis); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCluster)
			observability.Cache().OnCacheSet(ctx, "cluster", len(data))
		}
	}

	return analysis, false, nil // Cache miss
}

// Cluster is a convenience wrapper that calls ClusterWithCacheInfo and discards the cache hit info.
func (r *Runner) Cluster(ctx context.Context, m connectivity.Matrix, opts Options) (Analysis, error) {
	a, _, err := r.ClusterWithCacheInfo(ctx, m, opts)
	return a, err
}

// LayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, m connectivity.Matrix, labels []int, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	g, err := graph.Build(m, labels, opts.Threshold)
	if err != nil {
		return graph.Layout{}, false, err
	}

	// Compute cache key from the thresholded network
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return graph.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := graph.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute positions
	layout, err := ComputePositions(ctx, g, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}

	// Cache the result
	if data, err := graph.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, m connectivity.Matrix, labels []int, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, m, labels, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m connectivity.Matrix, a Analysis, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The heatmaps depend on matrix entries below the threshold, which the
	// layout graph drops, so the artifact hash covers both inputs.
	matrixData, err := json.Marshal(m)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize matrix")
	}
	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}
	inputHash := cache.Hash(append(matrixData, layoutData...))

	// Try to get every kind and format from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, kind := range opts.Kinds {
		if !allCached {
			break
		}
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(kind, format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[ArtifactName(kind, format)] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Kinds)*len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render everything
	rendered, err := Render(m, a, l, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each artifact
	for _, kind := range opts.Kinds {
		for _, format := range opts.Formats {
			data := rendered[ArtifactName(kind, format)]
			cacheKey := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(kind, format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m connectivity.Matrix, a Analysis, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, a, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
