package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pauliflow/pkg/cache"
	"github.com/matzehuels/pauliflow/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve synthesis, checking and graph rendering over HTTP. Cache keys are
prefixed with the configured server scope so API results never collide
with entries written by the CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			ctx := cmd.Context()
			runner := c.newRunner(ctx, cache.NewScopedKeyer(nil, c.cfg.Server.CacheScope))
			defer runner.Close()

			loggerFromContext(ctx).Debug("starting server", "cache", c.cfg.Cache.Backend, "scope", c.cfg.Server.CacheScope)
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
