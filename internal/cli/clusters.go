package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/matio"
	"github.com/siddlokray/cortica/pkg/pipeline"
	"github.com/siddlokray/cortica/pkg/render/summary"
)

// clustersCommand creates the clusters command for cluster assignments.
func (c *CLI) clustersCommand() *cobra.Command {
	var (
		in          matrixInput
		noCache     bool
		interactive bool
		asJSON      bool
		showRegions bool
		summaryPath string
		exportPath  string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "clusters [matrix.(csv|tsv|json)]",
		Short: "Cluster regions and print the assignments",
		Long: `Group regions by hierarchical clustering and print per-cluster statistics.

The default output is a stats table; --regions adds the member list per
cluster, --interactive opens a browsable cluster view, and --json prints
the full analysis for scripting.

Examples:
  cortica clusters connectivity.csv -k 5
  cortica clusters connectivity.csv --interactive
  cortica clusters connectivity.csv --summary clusters.svg --export assignments.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runClusters(cmd.Context(), args, in, opts, clustersOutput{
				noCache:     noCache,
				interactive: interactive,
				asJSON:      asJSON,
				showRegions: showRegions,
				summaryPath: summaryPath,
				exportPath:  exportPath,
			})
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().IntVarP(&opts.Clusters, "clusters", "k", 0, "number of clusters (0 = automatic)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse clusters interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().BoolVar(&showRegions, "regions", false, "list member regions per cluster")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "write the cluster summary panel SVG to this path")
	cmd.Flags().StringVar(&exportPath, "export", "", "write region-to-cluster assignments CSV to this path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// clustersOutput selects how cluster results are presented.
type clustersOutput struct {
	noCache     bool
	interactive bool
	asJSON      bool
	showRegions bool
	summaryPath string
	exportPath  string
}

// runClusters clusters the matrix and presents the result.
func (c *CLI) runClusters(ctx context.Context, args []string, in matrixInput, opts pipeline.Options, out clustersOutput) error {
	m, _, err := c.loadMatrix(ctx, args, in, out.noCache)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Clustering %d regions...", m.Size()))
	spinner.Start()
	analysis, cacheHit, err := runner.ClusterWithCacheInfo(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Clustering failed")
		return fmt.Errorf("cluster: %w", err)
	}
	spinner.Stop()

	if out.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	if out.interactive {
		model := NewClusterBrowserModel(analysis.Stats)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
	} else {
		printSuccess("Clustered %d regions into %d clusters", m.Size(), analysis.Clusters)
		printStats(m.Size(), analysis.Clusters, 0, cacheHit)
		printNewline()
		fmt.Println(statTable(analysis.Stats))
		if out.showRegions {
			printNewline()
			for _, s := range analysis.Stats {
				printInfo("Cluster %d (%d regions)", s.Label, s.Size)
				printDetail("%s", shortenRegions(s.Regions, 12))
			}
		}
	}

	if out.summaryPath != "" {
		data := summary.Render(analysis.Stats)
		if err := os.WriteFile(out.summaryPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out.summaryPath, err)
		}
		printFile(out.summaryPath)
	}

	if out.exportPath != "" {
		if err := matio.ExportAssignmentsCSV(out.exportPath, m.Regions, analysis.Labels); err != nil {
			return err
		}
		printFile(out.exportPath)
	}

	return nil
}
