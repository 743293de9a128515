// Package render turns analysis results into figures.
//
// # Overview
//
// This package contains the rendering pipeline that transforms correlation
// matrices, cluster assignments, and thresholded networks into visual
// outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Correlation heatmaps (in [heatmap] subpackage)
//   - Cluster assignment panels (in [summary] subpackage)
//   - Network diagrams (in [netplot] subpackage)
//   - Shared color scales (in [colormap] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). All three renderers emit
// SVG first and go through this path for raster output.
//
//	svg := heatmap.Render(m, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Heatmaps
//
// The [heatmap] subpackage draws the region-by-region correlation matrix as
// a colored grid, either in original region order or reordered by cluster
// with boundary lines between clusters.
//
// # Network Diagrams
//
// The [netplot] subpackage positions the thresholded network with Graphviz
// layout engines and draws nodes, weighted edges, labels, a legend, and a
// statistics box.
//
//	dot := netplot.ToDOT(g, netplot.Options{})
//	l, err := netplot.ComputeLayout(ctx, g, opts)
//	svg := netplot.RenderSVG(l, netplot.WithColorMode(graph.ColorByDegree))
//
// [heatmap]: github.com/siddlokray/cortica/pkg/render/heatmap
// [summary]: github.com/siddlokray/cortica/pkg/render/summary
// [netplot]: github.com/siddlokray/cortica/pkg/render/netplot
// [colormap]: github.com/siddlokray/cortica/pkg/render/colormap
package render
