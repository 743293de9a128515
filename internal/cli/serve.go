package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/api"
	"github.com/siddlokray/cortica/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		Long: `Serve the analysis pipeline over HTTP.

The server exposes POST /v1/analyze for submitting matrices, GET and
DELETE /v1/runs endpoints for recorded runs, and GET /healthz. Runs are
recorded to the configured store unless --no-store is set.

Examples:
  # Serve on the default address
  cortica serve

  # Serve on a custom port without run history
  cortica serve --addr :9090 --no-store`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var st store.Store
			if !noStore {
				st, err = c.newStore(ctx)
				if err != nil {
					return fmt.Errorf("open run store: %w", err)
				}
				defer st.Close()
			}

			srv := api.NewServer(api.Config{
				Addr:   addr,
				Runner: runner,
				Store:  st,
				Logger: c.Logger,
			})

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable run recording")

	return cmd
}
