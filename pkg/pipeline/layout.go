package pipeline

import (
	"context"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/render/netplot"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout builds the thresholded network from the matrix and cluster
// labels and computes node positions with the configured Graphviz engine.
func GenerateLayout(ctx context.Context, m connectivity.Matrix, labels []int, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	g, err := graph.Build(m, labels, opts.Threshold)
	if err != nil {
		return graph.Layout{}, err
	}
	return ComputePositions(ctx, g, opts)
}

// ComputePositions runs the layout engine over an already built network.
// Vertical orientation rotates the arrangement and swaps the canvas.
func ComputePositions(ctx context.Context, g *graph.Graph, opts Options) (graph.Layout, error) {
	return netplot.ComputeLayout(ctx, g, netplot.LayoutOptions{
		Algorithm:   opts.Layout,
		Orientation: opts.Orientation,
		Seed:        opts.Seed,
		Iterations:  opts.Iterations,
		WidthIn:     opts.Width,
		HeightIn:    opts.Height,
	})
}
