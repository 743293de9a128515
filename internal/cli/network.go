package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/pipeline"
)

// networkCommand creates the network command for connectivity network plots.
func (c *CLI) networkCommand() *cobra.Command {
	var (
		in         matrixInput
		formatsStr string
		colorsStr  string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "network [matrix.(csv|tsv|json)]",
		Short: "Render the thresholded connectivity network",
		Long: `Render the connectivity network: regions become nodes, correlations above
the threshold become edges, and Graphviz computes the layout.

Node colors follow cluster membership by default; presets bundle threshold
and labeling choices for common cleanliness levels.

Examples:
  cortica network connectivity.csv
  cortica network connectivity.csv --preset heavy -f png
  cortica network connectivity.csv -t 0.6 --layout circular --color-by degree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.Kinds = []string{pipeline.KindNetwork}
			opts.CustomColors = parseCustomColors(colorsStr)
			c.applyConfig(cmd, &opts)
			return c.runNetwork(cmd.Context(), args, in, opts, output, noCache)
		},
	}

	addInputFlags(cmd, &in)
	addPipelineFlags(cmd, &opts)
	cmd.Flags().StringVar(&colorsStr, "colors", "", "custom node colors as region=hex pairs (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runNetwork executes the pipeline restricted to the network figure.
func (c *CLI) runNetwork(ctx context.Context, args []string, in matrixInput, opts pipeline.Options, output string, noCache bool) error {
	m, _, err := c.loadMatrix(ctx, args, in, noCache)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout))
	spinner.Start()

	result, err := runner.Execute(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Network rendering failed")
		return fmt.Errorf("network: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Network complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		input:     inputPath(args),
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats.RegionCount, result.Stats.ClusterCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	printDetail("Density %.3f at |corr| > %.2f", result.Layout.Graph.Density(), result.Layout.Graph.Threshold)

	return nil
}
