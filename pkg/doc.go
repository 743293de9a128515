// Package pkg provides the core libraries for Cortica brain connectivity
// analysis.
//
// # Overview
//
// Cortica turns a region-by-region correlation matrix into cluster
// assignments and publication-style figures: correlation heatmaps,
// per-cluster summaries, and thresholded network graphs. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic - [connectivity], [cluster], [graph]
//  2. Rendering - [render] with the heatmap, summary, and netplot sinks
//  3. Orchestration - [pipeline] (cluster → layout → render)
//  4. Infrastructure - [cache], [store], [matio], [httputil], [api]
//
// # Architecture
//
// The typical data flow through Cortica:
//
//	Correlation matrix (CSV/TSV/JSON or time series)
//	         ↓
//	    [connectivity] package (correlation, distance transform)
//	         ↓
//	    [cluster] package (Ward linkage, tree cut, statistics)
//	         ↓
//	    [graph] package (thresholded network + layout types)
//	         ↓
//	    [render] packages (heatmap, summary, network figures)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Cluster a matrix and render the clustered heatmap:
//
//	import (
//	    "github.com/siddlokray/cortica/pkg/matio"
//	    "github.com/siddlokray/cortica/pkg/pipeline"
//	)
//
//	// 1. Load the matrix
//	m, _ := matio.ImportMatrix("matrix.csv")
//
//	// 2. Cluster it
//	analysis, _ := pipeline.Cluster(m, pipeline.Options{})
//
//	// 3. Render figures
//	artifacts, _ := pipeline.Render(m, analysis, graph.Layout{}, pipeline.Options{
//	    Kinds:   []string{pipeline.KindHeatmapClustered},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [connectivity] - Correlation matrices: the Matrix type, Pearson,
// Spearman, and Kendall correlation from raw time series, and the
// distance transform feeding the clustering.
//
// [cluster] - Agglomerative clustering: Ward linkage over condensed
// distances, tree cuts into k groups, automatic k selection, and
// per-cluster correlation statistics.
//
// [graph] - The thresholded connectivity network and its layout types,
// with JSON round-tripping, region display names, and graph metrics
// (density, degree, components).
//
// ## Rendering
//
// [render/heatmap] - Correlation heatmap SVGs, original or cluster
// order, with cluster boundary lines and a diverging colorbar.
//
// [render/summary] - Per-cluster summary panel listing members and
// correlation statistics.
//
// [render/netplot] - Network figures via Graphviz: DOT generation,
// layout computation, and SVG rendering with coloring presets.
//
// [render/colormap] - Diverging and categorical color scales shared by
// the sinks.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Orchestration
//
// [pipeline] - The cluster → layout → render pipeline used by CLI and
// API. Options normalization, figure kinds, and the caching Runner.
//
// ## Infrastructure
//
// [matio] - Matrix and time-series import/export: CSV, TSV, JSON,
// cluster assignment export, and fetching matrices over HTTP.
//
// [cache] - Stage result caching with file, Redis, and null backends.
// Stage keys hash the stage inputs so CLI and API share entries.
//
// [store] - Run records (matrix hash, options, analysis, network stats)
// in JSON files or MongoDB.
//
// [httputil] - HTTP response caching and retry with backoff for matrix
// downloads.
//
// [api] - The HTTP API server: submit an analysis, fetch recorded runs.
//
// [errors] - Coded errors with user-facing messages shared across CLI
// and API.
//
// [observability] - Optional pipeline, cache, and HTTP hooks for
// embedding applications.
//
// # Common Workflows
//
// Correlate raw time series before clustering:
//
//	regions, series, _ := matio.ImportSeries("series.csv")
//	m, _ := connectivity.FromSeries(ctx, regions, series, connectivity.Kendall)
//
// Run the cached pipeline end to end:
//
//	cc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(cc, nil, logger)
//	result, _ := runner.Execute(ctx, m, pipeline.Options{Clusters: 4})
//
// Record a run and serve it over HTTP:
//
//	st, _ := store.NewFileStore("")
//	_ = st.Put(ctx, store.NewRun("matrix.csv", m, opts, result))
//	srv := api.NewServer(api.Config{Addr: ":8080", Runner: runner, Store: st})
//	_ = srv.ListenAndServe(ctx)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/cluster/...         # Specific package
//	go test -run Example              # Examples only
//
// [connectivity]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/connectivity
// [cluster]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/cluster
// [graph]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/graph
// [render]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/render
// [render/heatmap]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/render/heatmap
// [render/summary]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/render/summary
// [render/netplot]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/render/netplot
// [render/colormap]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/render/colormap
// [pipeline]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/pipeline
// [matio]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/matio
// [cache]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/cache
// [store]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/store
// [httputil]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/httputil
// [api]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/api
// [errors]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/errors
// [observability]: https://pkg.go.dev/github.com/siddlokray/cortica/pkg/observability
package pkg
