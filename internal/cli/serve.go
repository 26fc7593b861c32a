package cli

import (
	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		opts runnerOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exports, previews and the font over HTTP",
		Long: `Serve starts the HTTP host. The font is fetched once at startup and
served at the configured font path. The server shuts down gracefully on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := *c.config()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, closeCache, err := c.newRunner(ctx, opts)
			if err != nil {
				return err
			}
			defer closeCache()

			runner.Fonts.Start(ctx)
			printStatus(statusInfo, "Serving on %s", StyleLink.Render(cfg.Server.Addr))
			return server.New(&cfg, runner, loggerFromContext(ctx)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.font, "font", "", "font source: URL, file or builtin:<name> (default from config)")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", rasterizerNative, "PNG rasterizer: native, rsvg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the font cache")

	return cmd
}
