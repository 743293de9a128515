package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/matio"
	"github.com/siddlokray/cortica/pkg/pipeline"
	"github.com/siddlokray/cortica/pkg/store"
)

// analyzeCommand creates the analyze command running the full pipeline.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		in         matrixInput
		formatsStr string
		kindsStr   string
		colorsStr  string
		output     string
		noCache    bool
		save       bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [matrix.(csv|tsv|json)]",
		Short: "Cluster a connectivity matrix and render all figures",
		Long: `Run the full analysis pipeline: cluster regions by correlation distance,
lay out the thresholded network, and render figures.

By default four figures are produced alongside the input: the original-order
heatmap, the clustered heatmap, the cluster summary panel, and the network
plot. Results are cached locally for faster subsequent runs.

Examples:
  cortica analyze connectivity.csv
  cortica analyze connectivity.csv -k 5 --preset labeled -f svg,png
  cortica analyze --url https://example.com/matrix.json --save
  cortica analyze samples.csv --series --method kendall`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.Kinds = parseKinds(kindsStr)
			opts.CustomColors = parseCustomColors(colorsStr)
			c.applyConfig(cmd, &opts)
			return c.runAnalyze(cmd.Context(), args, in, opts, output, noCache, save)
		},
	}

	addInputFlags(cmd, &in)
	addPipelineFlags(cmd, &opts)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&kindsStr, "kinds", "", "figure kind(s): heatmap, heatmap_clustered, summary, network (default all)")
	cmd.Flags().StringVar(&colorsStr, "colors", "", "custom node colors as region=hex pairs (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single figure) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&save, "save", false, "record the run in the run store")

	return cmd
}

// runAnalyze loads the matrix, executes the pipeline, and writes figures.
func (c *CLI) runAnalyze(ctx context.Context, args []string, in matrixInput, opts pipeline.Options, output string, noCache, save bool) error {
	m, source, err := c.loadMatrix(ctx, args, in, noCache)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %d regions...", m.Size()))
	spinner.Start()

	result, err := runner.Execute(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return fmt.Errorf("analyze: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Analysis complete")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		input:     inputPath(args),
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats.RegionCount, result.Stats.ClusterCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	if save {
		return c.saveRun(ctx, source, m, opts, result)
	}
	return nil
}

// saveRun records a completed analysis in the configured run store.
func (c *CLI) saveRun(ctx context.Context, source string, m connectivity.Matrix, opts pipeline.Options, result *pipeline.Result) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	run := store.NewRun(source, m, opts, result)
	if err := st.Put(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	printDetail("Run %s saved", run.ID)
	printNewline()
	printNextStep("Inspect", "cortica runs show "+run.ID)
	return nil
}

// =============================================================================
// Shared Input Handling
// =============================================================================

// matrixInput holds the matrix source flags shared by the analysis
// commands: a URL source and the sample-series correlation path.
type matrixInput struct {
	url    string
	series bool
	method string
}

// addInputFlags registers the matrix source flags.
func addInputFlags(cmd *cobra.Command, in *matrixInput) {
	cmd.Flags().StringVar(&in.url, "url", "", "fetch the matrix from a URL instead of a file")
	cmd.Flags().BoolVar(&in.series, "series", false, "treat input as per-region sample series and correlate them first")
	cmd.Flags().StringVar(&in.method, "method", "kendall", "correlation method for --series: kendall, pearson, spearman")
}

// addPipelineFlags registers the pipeline option flags shared by the
// analysis commands. Flag defaults mirror the pipeline defaults so help
// output shows the effective values.
func addPipelineFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVarP(&opts.Clusters, "clusters", "k", 0, "number of clusters (0 = automatic)")
	cmd.Flags().Float64VarP(&opts.Threshold, "threshold", "t", pipeline.DefaultThreshold, "correlation threshold for network edges")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "cleanliness preset: light, medium, heavy, minimal, labeled")
	cmd.Flags().StringVar(&opts.Layout, "layout", pipeline.DefaultLayout, "layout algorithm: spring, circular, kamada_kawai, force_atlas")
	cmd.Flags().StringVar(&opts.Labels, "labels", pipeline.DefaultLabels, "node label mode: all, selective, hubs, none")
	cmd.Flags().StringVar(&opts.ColorBy, "color-by", pipeline.DefaultColorBy, "node coloring: cluster, degree, betweenness, custom")
	cmd.Flags().StringVar(&opts.ColorScheme, "color-scheme", "", "tick label color scheme: network, random, gradient, categorical")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", pipeline.DefaultOrientation, "figure orientation: horizontal, vertical")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "layout random seed")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", pipeline.DefaultIterations, "layout solver iteration cap")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "figure width in inches")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "figure height in inches")
	cmd.Flags().StringVar(&opts.ColorbarLabel, "colorbar-label", "", "heatmap colorbar label")
	cmd.Flags().IntVar(&opts.LabelInterval, "label-interval", 1, "label every Nth heatmap region")
	cmd.Flags().BoolVar(&opts.HideLabels, "hide-labels", false, "hide heatmap tick labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute clustering even if cached")
}

// loadMatrix resolves the input matrix from the URL flag, stdin, a series
// file, or a matrix file. The returned source string is what saved runs
// record.
func (c *CLI) loadMatrix(ctx context.Context, args []string, in matrixInput, noCache bool) (connectivity.Matrix, string, error) {
	if in.url != "" {
		m, err := matio.FetchMatrix(ctx, in.url, c.newHTTPCache(noCache))
		return m, in.url, err
	}
	if len(args) == 0 {
		return connectivity.Matrix{}, "", errors.New(errors.ErrCodeInvalidInput,
			"no matrix given: pass a file path or --url")
	}

	path := args[0]
	if path == "-" {
		m, err := matio.ReadMatrix(os.Stdin, matio.FormatCSV)
		return m, "stdin", err
	}
	if in.series {
		regions, series, err := matio.ImportSeries(path)
		if err != nil {
			return connectivity.Matrix{}, "", err
		}
		method, err := connectivity.ParseMethod(in.method)
		if err != nil {
			return connectivity.Matrix{}, "", err
		}
		m, err := connectivity.FromSeries(ctx, regions, series, method)
		return m, path, err
	}
	m, err := matio.ImportMatrix(path)
	return m, path, err
}

// inputPath returns the positional input path, or "" when the matrix came
// from a URL or stdin.
func inputPath(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return ""
	}
	return args[0]
}
