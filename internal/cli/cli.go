// Package cli implements the exzellenz command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/pkg/buildinfo"
	"github.com/exzellenz/exzellenz/pkg/cache"
	"github.com/exzellenz/exzellenz/pkg/config"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/measure"
	"github.com/exzellenz/exzellenz/pkg/pipeline"
	"github.com/exzellenz/exzellenz/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "exzellenz"

	rasterizerNative = "native"
	rasterizerRSVG   = "rsvg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Exzellenz fits text to a height and exports it as SVG or PNG",
		Long:         `Exzellenz renders a line of text in a single embedded font, fitted to an exact height, and exports it as a self-contained SVG or PNG. It also offers a live terminal preview and an HTTP host.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.Logger.GetLevel() <= log.DebugLevel {
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/exzellenz/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fontCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts are the per-command overrides of the configured engine.
type runnerOpts struct {
	font       string      // font source; empty uses the configured one
	rasterizer string      // native or rsvg
	noCache    bool        // use a null cache
	logger     *log.Logger // engine logger; nil uses the CLI logger
}

// newRunner creates a pipeline runner for CLI use. The returned function
// closes the font cache.
func (c *CLI) newRunner(ctx context.Context, o runnerOpts) (*pipeline.Runner, func() error, error) {
	cfg := c.config()

	src := cfg.Font.Source
	if o.font != "" {
		src = o.font
	}
	if err := errs.ValidateFontSource(src); err != nil {
		return nil, nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = c.Logger
	}

	store := c.openCache(ctx, o.noCache)
	loader := fontembed.NewLoader(src,
		fontembed.WithCache(store, cfg.Cache.TTL.Duration),
		fontembed.WithKeyer(cfg.Cache.Keyer()),
		fontembed.WithFamily(cfg.Font.Family),
		fontembed.WithLogger(logger))

	reg, err := newRegistry(cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	var rast render.Rasterizer
	switch o.rasterizer {
	case "", rasterizerNative:
		rast = &render.NativeRasterizer{Registry: reg}
	case rasterizerRSVG:
		rast = &render.RSVGRasterizer{}
	default:
		store.Close()
		return nil, nil, errs.New(errs.ErrCodeInvalidInput, "invalid rasterizer %q (must be %s or %s)", o.rasterizer, rasterizerNative, rasterizerRSVG)
	}

	return pipeline.NewRunner(loader, measure.New(reg), rast, logger), store.Close, nil
}

// newRegistry creates a font registry holding the preview fallback family.
func newRegistry(cfg *config.Config) (*measure.Registry, error) {
	reg := measure.NewRegistry()
	data, err := fonts.Lookup(fonts.Default)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(cfg.Preview.FallbackFamily, data); err != nil {
		return nil, err
	}
	return reg, nil
}

// openCache opens the configured font cache. A cache that cannot be opened
// is replaced by a null cache; fetching still works without it.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	store, err := c.config().Cache.Open(ctx)
	if err != nil {
		c.Logger.Warn("font cache unavailable", "backend", c.config().Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return store
}
