package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/pkg/config"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/measure"
)

// fontCommand creates the font inspection command.
func (c *CLI) fontCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "font",
		Short: "Inspect and fetch the configured font",
	}

	cmd.AddCommand(c.fontInfoCommand())
	cmd.AddCommand(c.fontFetchCommand())

	return cmd
}

// fontInfoCommand creates the "font info" subcommand.
func (c *CLI) fontInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured font source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			remote := fontembed.IsRemote(cfg.Font.Source)
			uncached := remote && cfg.Cache.Backend == config.CacheNone
			kind := "local"
			switch {
			case uncached:
				kind = "remote"
			case remote:
				kind = "remote (cached)"
			}

			printKeyValue("Source", cfg.Font.Source)
			printKeyValue("Kind", kind)
			printKeyValue("Family", cfg.Font.Family)
			printKeyValue("Fallback", cfg.Preview.FallbackFamily)
			printKeyValue("Cache key", cfg.Cache.Keyer().FontKey(cfg.Font.Source))
			printKeyValue("Builtin", strings.Join(fonts.Names(), ", "))
			if uncached {
				printStatus(statusWarning, "Cache is disabled; the font is downloaded on every run")
			}
			printNextStep("Fetch it", appName+" font fetch")
			return nil
		},
	}
}

// fontFetchCommand creates the "font fetch" subcommand.
func (c *CLI) fontFetchCommand() *cobra.Command {
	var (
		output string
		opts   runnerOpts
	)

	cmd := &cobra.Command{
		Use:   "fetch [source]",
		Short: "Load a font and print its details",
		Long: `Fetch loads the configured font, or the given source, the same way an
export does. Remote fonts are stored in the font cache.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				opts.font = args[0]
			}

			runner, closeCache, err := c.newRunner(ctx, opts)
			if err != nil {
				return err
			}
			defer closeCache()

			res, err := whileLoading(ctx, uiErr, fontembed.IsRemote(runner.Fonts.Source()), func() (*fontembed.Resource, error) {
				return runner.Fonts.Load(ctx)
			})
			if err != nil {
				printStatus(statusFailed, "Font could not be loaded")
				return err
			}
			printStatus(statusOK, "Font loaded")

			sfnt, err := res.SFNT()
			if err != nil {
				return err
			}
			name, err := measure.FamilyName(sfnt)
			if err != nil {
				return err
			}

			printKeyValue("Source", runner.Fonts.Source())
			printKeyValue("Family", res.Family)
			if name != "" {
				printKeyValue("Name", name)
			}
			printKeyValue("Format", fmt.Sprintf("%s (%s)", res.MIMEType, fontembed.CSSFormat(res.MIMEType)))
			printKeyValue("Size", formatBytes(len(res.Data)))

			if output != "" {
				if err := os.WriteFile(output, res.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the font bytes to a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the font cache")

	return cmd
}
