package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/pipeline"
)

// heatmapCommand creates the heatmap command for correlation heatmaps.
func (c *CLI) heatmapCommand() *cobra.Command {
	var (
		in         matrixInput
		formatsStr string
		output     string
		noCache    bool
		clustered  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "heatmap [matrix.(csv|tsv|json)]",
		Short: "Render a correlation heatmap",
		Long: `Render the correlation matrix as an SVG heatmap in original region order.

With --clustered, regions are first grouped by hierarchical clustering and
the heatmap shows the reordered matrix with cluster boundary lines.

Examples:
  cortica heatmap connectivity.csv
  cortica heatmap connectivity.csv --clustered -k 5 -o clustered.svg
  cortica heatmap connectivity.csv --color-scheme network --label-interval 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.applyConfig(cmd, &opts)
			return c.runHeatmap(cmd.Context(), args, in, opts, output, noCache, clustered)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().BoolVar(&clustered, "clustered", false, "reorder regions by cluster before rendering")
	cmd.Flags().IntVarP(&opts.Clusters, "clusters", "k", 0, "number of clusters for --clustered (0 = automatic)")
	cmd.Flags().StringVar(&opts.ColorScheme, "color-scheme", "", "tick label color scheme: network, random, gradient, categorical")
	cmd.Flags().StringVar(&opts.ColorbarLabel, "colorbar-label", "", "colorbar label")
	cmd.Flags().IntVar(&opts.LabelInterval, "label-interval", 1, "label every Nth region")
	cmd.Flags().BoolVar(&opts.HideLabels, "hide-labels", false, "hide tick labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute clustering even if cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runHeatmap renders the heatmap, clustering first when requested. Only the
// clustering stage goes through the cache; the figure itself is cheap to
// rebuild from the matrix.
func (c *CLI) runHeatmap(ctx context.Context, args []string, in matrixInput, opts pipeline.Options, output string, noCache, clustered bool) error {
	m, _, err := c.loadMatrix(ctx, args, in, noCache)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	opts.Kinds = []string{pipeline.KindHeatmap}

	var (
		analysis   pipeline.Analysis
		clusterHit bool
	)
	if clustered {
		opts.Kinds = []string{pipeline.KindHeatmapClustered}

		runner, err := c.newRunner(ctx, noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Clustering %d regions...", m.Size()))
		spinner.Start()
		analysis, clusterHit, err = runner.ClusterWithCacheInfo(ctx, m, opts)
		if err != nil {
			spinner.StopWithError("Clustering failed")
			return fmt.Errorf("cluster: %w", err)
		}
		spinner.Stop()
	}

	artifacts, err := pipeline.Render(m, analysis, graph.Layout{}, opts)
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}

	printSuccess("Heatmap complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		input:     inputPath(args),
		output:    output,
	}); err != nil {
		return err
	}
	printStats(m.Size(), analysis.Clusters, 0, clusterHit)

	return nil
}
