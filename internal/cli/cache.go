package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exzellenz/exzellenz/pkg/cache"
	"github.com/exzellenz/exzellenz/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the font byte cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cached font bytes",
		Long: `Clear removes every entry of the file cache. With the redis backend only
the entry of the configured font source is removed, since the instance may be
shared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			switch cfg.Cache.Backend {
			case config.CacheNone:
				printStatus(statusInfo, "Cache is disabled")
				return nil
			case config.CacheRedis:
				store, err := cfg.Cache.Open(cmd.Context())
				if err != nil {
					return err
				}
				defer store.Close()
				key := cfg.Cache.Keyer().FontKey(cfg.Font.Source)
				if err := store.Delete(cmd.Context(), key); err != nil {
					return fmt.Errorf("delete %s: %w", key, err)
				}
				printStatus(statusOK, "Removed cached font")
				printDetail("Key: %s", key)
				return nil
			}

			dir, err := cacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			printStatus(statusOK, "Cleared font cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if cfg.Cache.Backend == config.CacheRedis {
				fmt.Println("redis://" + cfg.Cache.RedisAddr)
				return nil
			}
			dir, err := cacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheDir returns the configured cache directory, defaulting to
// $XDG_CACHE_HOME/exzellenz.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
