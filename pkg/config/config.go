// Package config loads exzellenz settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. The file
// lives at $XDG_CONFIG_HOME/exzellenz/config.toml (or ~/.config/exzellenz/
// config.toml). Command-line flags override file values.
//
//	[font]
//	source = "https://example.com/fonts/exzellenz.woff"
//
//	[export]
//	format = "png"
//	padding = 12
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/fontembed"
	"github.com/exzellenz/exzellenz/pkg/fonts"
	"github.com/exzellenz/exzellenz/pkg/pipeline"
	"github.com/exzellenz/exzellenz/pkg/preview"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultFontPath is the fixed path the HTTP host serves the font at.
const DefaultFontPath = "/fonts/exzellenz/exzellenz.woff"

// Config is the complete configuration.
type Config struct {
	Font    FontConfig    `toml:"font"`
	Export  ExportConfig  `toml:"export"`
	Preview PreviewConfig `toml:"preview"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// FontConfig selects the font that is embedded in exports.
type FontConfig struct {
	Source string `toml:"source"`
	Family string `toml:"family"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format      string  `toml:"format"`
	Height      float64 `toml:"height"`
	Padding     float64 `toml:"padding"`
	Transparent bool    `toml:"transparent"`
	Color       string  `toml:"color"`
}

// PreviewConfig configures the live preview.
type PreviewConfig struct {
	ViewBoxWidth   float64 `toml:"viewbox_width"`
	FallbackFamily string  `toml:"fallback_family"`
}

// CacheConfig configures the font byte cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"` // Prepended to every key
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	FontPath string `toml:"font_path"`
}

// Duration is a time.Duration written as a string such as "720h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Font: FontConfig{
			Source: "builtin:" + fonts.Default,
			Family: fontembed.DefaultFamily,
		},
		Export: ExportConfig{
			Format:  pipeline.DefaultFormat,
			Height:  pipeline.DefaultHeight,
			Padding: pipeline.DefaultPadding,
			Color:   compose.DefaultTextColor,
		},
		Preview: PreviewConfig{
			ViewBoxWidth:   preview.DefaultViewBoxWidth,
			FallbackFamily: fonts.FallbackFamily,
		},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{fontembed.DefaultCacheTTL},
		},
		Server: ServerConfig{
			Addr:     ":8080",
			FontPath: DefaultFontPath,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exzellenz", "config.toml"), nil
}

// Load reads the config file at path over the defaults. An empty path
// selects DefaultPath, which may be absent; an explicit path must exist.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := errs.ValidateFontSource(c.Font.Source); err != nil {
		return err
	}
	if err := errs.ValidateFamily(c.Font.Family); err != nil {
		return fmt.Errorf("font.family: %w", err)
	}
	if err := errs.ValidateFamily(c.Preview.FallbackFamily); err != nil {
		return fmt.Errorf("preview.fallback_family: %w", err)
	}
	if err := pipeline.ValidateFormat(c.Export.Format); err != nil {
		return err
	}
	if err := errs.ValidateHeight(c.Export.Height); err != nil {
		return err
	}
	if err := errs.ValidatePadding(c.Export.Padding); err != nil {
		return err
	}
	if err := errs.ValidateColor(c.Export.Color); err != nil {
		return err
	}
	if c.Preview.ViewBoxWidth <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "preview.viewbox_width must be positive, got %v", c.Preview.ViewBoxWidth)
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if !strings.HasPrefix(c.Server.FontPath, "/") {
		return errs.New(errs.ErrCodeInvalidInput, "server.font_path must start with /, got %q", c.Server.FontPath)
	}
	return nil
}

// ExportRequest builds an export request for text from the export defaults.
func (c *Config) ExportRequest(text string) pipeline.ExportRequest {
	return pipeline.ExportRequest{
		Text:        text,
		Format:      c.Export.Format,
		Height:      c.Export.Height,
		Padding:     c.Export.Padding,
		Transparent: c.Export.Transparent,
		Color:       c.Export.Color,
	}
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
