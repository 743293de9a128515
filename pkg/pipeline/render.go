package pipeline

import (
	"encoding/json"

	"github.com/siddlokray/cortica/pkg/cluster"
	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/render"
	"github.com/siddlokray/cortica/pkg/render/colormap"
	"github.com/siddlokray/cortica/pkg/render/heatmap"
	"github.com/siddlokray/cortica/pkg/render/netplot"
	"github.com/siddlokray/cortica/pkg/render/summary"
)

// pngScale triples the raster resolution of PNG exports, roughly print
// density at the 100 px/inch SVG geometry.
const pngScale = 3.0

// Render generates the requested figure kinds in the requested formats.
// Keys of the returned map are "<kind>.<format>" file names.
func Render(m connectivity.Matrix, a Analysis, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, kind := range opts.Kinds {
		for _, format := range opts.Formats {
			data, err := renderOne(m, a, l, opts, kind, format)
			if err != nil {
				return nil, err
			}
			artifacts[ArtifactName(kind, format)] = data
		}
	}
	return artifacts, nil
}

// renderOne produces a single artifact. SVG is the native output; PNG and
// PDF convert it, JSON emits the data behind the figure instead of the
// drawing.
func renderOne(m connectivity.Matrix, a Analysis, l graph.Layout, opts Options, kind, format string) ([]byte, error) {
	if format == FormatJSON {
		return renderJSON(m, a, l, kind)
	}

	svg, err := renderSVG(m, a, l, opts, kind)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(svg, pngScale)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// renderSVG draws one figure kind.
func renderSVG(m connectivity.Matrix, a Analysis, l graph.Layout, opts Options, kind string) ([]byte, error) {
	switch kind {
	case KindHeatmap:
		colors, err := regionColors(m.Regions, opts)
		if err != nil {
			return nil, err
		}
		return heatmap.Render(m, heatmapOptions(opts, heatmap.TitleOriginal, colors)...), nil

	case KindHeatmapClustered:
		rm, err := m.Permute(a.Order)
		if err != nil {
			return nil, err
		}
		colors, err := regionColors(m.Regions, opts)
		if err != nil {
			return nil, err
		}
		if colors != nil {
			colors = cluster.Reorder(colors, a.Order)
		}
		hopts := heatmapOptions(opts, heatmap.ClusteredTitle(a.Clusters), colors)
		hopts = append(hopts,
			heatmap.WithSize(clusteredWidthIn, clusteredHeightIn),
			heatmap.WithBoundaries(a.Boundaries))
		return heatmap.Render(rm, hopts...), nil

	case KindSummary:
		return summary.Render(a.Stats), nil

	case KindNetwork:
		return netplot.RenderSVG(l, networkOptions(opts)...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown figure kind: %q", kind)
}

// renderJSON emits the figure's underlying data: matrix values for the
// heatmaps, cluster statistics for the summary, the positioned network for
// the network figure.
func renderJSON(m connectivity.Matrix, a Analysis, l graph.Layout, kind string) ([]byte, error) {
	switch kind {
	case KindHeatmap:
		return json.MarshalIndent(m, "", "  ")
	case KindHeatmapClustered:
		rm, err := m.Permute(a.Order)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(rm, "", "  ")
	case KindSummary:
		return json.MarshalIndent(a.Stats, "", "  ")
	case KindNetwork:
		return graph.MarshalLayout(l)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown figure kind: %q", kind)
}

// regionColors resolves the tick label color scheme, nil when none is set.
func regionColors(regions []string, opts Options) ([]string, error) {
	if opts.ColorScheme == "" {
		return nil, nil
	}
	return colormap.SchemeColors(regions, opts.ColorScheme)
}

// heatmapOptions builds the option list both heatmap kinds share.
func heatmapOptions(opts Options, title string, colors []string) []heatmap.Option {
	hopts := []heatmap.Option{
		heatmap.WithTitle(title),
		heatmap.WithLabelInterval(opts.LabelInterval),
	}
	if !opts.ShowLabels() {
		hopts = append(hopts, heatmap.WithoutLabels())
	}
	if colors != nil {
		hopts = append(hopts, heatmap.WithLabelColors(colors))
	}
	if opts.ColorbarLabel != "" {
		hopts = append(hopts, heatmap.WithColorbarLabel(opts.ColorbarLabel))
	}
	return hopts
}

// networkOptions builds the SVG option list for the network figure.
func networkOptions(opts Options) []netplot.SVGOption {
	nopts := []netplot.SVGOption{
		netplot.WithColorMode(opts.ColorBy),
		netplot.WithLabelMode(opts.Labels),
	}
	if len(opts.CustomColors) > 0 {
		nopts = append(nopts, netplot.WithCustomColors(opts.CustomColors))
	}
	return nopts
}
