package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/server"
)

// serveCommand creates the serve command for the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

Endpoints:
  POST /render/{svg|png|pdf|json}  body {"config", "series", "width", "height"}
  GET  /healthz
  GET  /version

Artifacts are cached like the render command's; point several instances at
one Redis (--redis) to share the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisURL, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the artifact cache (default $"+envRedisURL+")")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRenderTimeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisURL string, timeout time.Duration) error {
	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	printKeyValue(c.Out, "listening", addr)
	srv := server.New(runner, server.WithLogger(c.Logger), server.WithRenderTimeout(timeout))
	return srv.ListenAndServe(ctx, addr)
}
