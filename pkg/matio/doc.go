// Package matio imports and exports connectivity matrices and sample series.
//
// # Overview
//
// This package moves correlation data across the toolkit boundary. The
// format support is designed for:
//
//   - Matrices exported from common analysis stacks (CSV/TSV with region
//     headers, JSON)
//   - Raw per-region sample series, for building a matrix inside the
//     toolkit (see connectivity.FromSeries)
//   - Remote sources: matrices published at stable URLs, fetched with
//     retry and a local HTTP cache
//   - Round-trip preservation: import, analyze, export, and re-import
//     identically
//
// # Matrix Formats
//
// CSV and TSV carry region names in both the header row and the first
// column:
//
//	,lh_insula,rh_insula,lh_precuneus
//	lh_insula,1.0,0.8,0.2
//	rh_insula,0.8,1.0,-0.6
//	lh_precuneus,0.2,-0.6,1.0
//
// JSON carries the same data as two top-level fields:
//
//	{
//	  "regions": ["lh_insula", "rh_insula", "lh_precuneus"],
//	  "matrix": [[1.0, 0.8, 0.2], [0.8, 1.0, -0.6], [0.2, -0.6, 1.0]]
//	}
//
// # Series Format
//
// Series files are sample-by-region tables: one column per region, one row
// per observation, region names in the header. An empty first header cell
// marks a leading index column, which is skipped.
//
// # Import
//
// Use [ImportMatrix] to read from a file path (format chosen by
// extension), or the Read* functions to read a specific format from any
// io.Reader:
//
//	m, err := matio.ImportMatrix("conn.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All imports validate the decoded matrix (square, symmetric, values in
// [-1, 1]). Errors carry structured codes from pkg/errors and name the
// offending row or column.
//
// [FetchMatrix] resolves a URL source with retry and HTTP caching; the
// format is chosen by the URL path extension.
//
// # Export
//
// [ExportMatrixJSON] and [ExportMatrixCSV] write a matrix back out;
// [ExportAssignmentsCSV] writes the region-to-cluster table produced by an
// analysis. Exports are accepted by the corresponding imports for
// round-trip processing.
package matio
