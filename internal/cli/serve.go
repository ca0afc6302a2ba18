package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/internal/api"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz
  GET  /v1/screens
  GET  /v1/screens/{name}?width=&format=&style=&images=
  POST /v1/grid

Use --cache redis or --cache mongo to share results between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			c.Logger.Info("starting server", "addr", addr, "cache", c.cacheBackend)
			return api.New(runner).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
