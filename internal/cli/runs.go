package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/store"
)

// runsCommand creates the runs command group for recorded analyses.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage recorded analysis runs",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			runs, err := st.List(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				printInfo("No recorded runs")
				printNewline()
				printNextStep("Record one", "cortica analyze matrix.csv --save")
				return nil
			}

			fmt.Println(runsTable(runs))
			printDetail("%d runs", len(runs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print runs as JSON")

	return cmd
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			run, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(run)
			}

			printKeyValue("ID", run.ID)
			printKeyValue("Created", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Source", run.Source)
			printKeyValue("Regions", strconv.Itoa(len(run.Regions)))
			printKeyValue("Matrix", shortHash(run.MatrixHash))
			printKeyValue("Network", fmt.Sprintf("%d edges at |corr| > %.2f, density %.3f",
				run.Network.Edges, run.Network.Threshold, run.Network.Density))
			printNewline()
			fmt.Println(statTable(run.Analysis.Stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")

	return cmd
}

// runsDeleteCommand creates the "runs delete" subcommand.
func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted run %s", args[0])
			return nil
		},
	}
}

// runsTable renders the run listing as a bordered table.
func runsTable(runs []*store.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortHash(r.ID),
			formatRelativeTime(r.CreatedAt),
			r.Source,
			strconv.Itoa(len(r.Regions)),
			strconv.Itoa(r.Analysis.Clusters),
			strconv.Itoa(r.Network.Edges),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("ID", "Created", "Source", "Regions", "Clusters", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// shortHash truncates ids and hashes for display.
func shortHash(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}

// formatRelativeTime renders a timestamp as a short age for listings.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
