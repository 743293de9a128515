package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/pipeline"
)

// Config holds settings loaded from the TOML config file. Zero values mean
// "not set"; pointer fields distinguish an explicit zero from absence where
// zero is a legal setting.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
}

// DefaultsConfig overrides built-in pipeline defaults for flags the user
// did not set on the command line.
type DefaultsConfig struct {
	Clusters    *int     `toml:"clusters"`
	Threshold   *float64 `toml:"threshold"`
	Preset      string   `toml:"preset"`
	Layout      string   `toml:"layout"`
	Labels      string   `toml:"labels"`
	ColorBy     string   `toml:"color_by"`
	ColorScheme string   `toml:"color_scheme"`
	Formats     []string `toml:"formats"`
}

// CacheConfig selects and locates the pipeline result cache.
type CacheConfig struct {
	Dir           string `toml:"dir"`
	Disabled      bool   `toml:"disabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and locates the run store. With a mongo_uri set the
// store is Mongo-backed; otherwise runs live as JSON files under dir.
type StoreConfig struct {
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// DefaultConfigPath returns the config file path using XDG standard
// (~/.config/cortica/config.toml).
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero Config; an unreadable or
// malformed file is an error so typos do not silently fall back to
// defaults.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return Config{}, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig overlays [defaults] values from the config file onto opts for
// flags the user did not set. Flags registered under the canonical names
// (threshold, clusters, preset, ...) take precedence via Changed; commands
// that do not register a flag pick the config value up unconditionally.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	d := c.Config.Defaults
	flags := cmd.Flags()

	if d.Clusters != nil && !flags.Changed("clusters") {
		opts.Clusters = *d.Clusters
	}
	if d.Threshold != nil && !flags.Changed("threshold") {
		opts.Threshold = *d.Threshold
	}
	if d.Preset != "" && !flags.Changed("preset") {
		opts.Preset = d.Preset
	}
	if d.Layout != "" && !flags.Changed("layout") {
		opts.Layout = d.Layout
	}
	if d.Labels != "" && !flags.Changed("labels") {
		opts.Labels = d.Labels
	}
	if d.ColorBy != "" && !flags.Changed("color-by") {
		opts.ColorBy = d.ColorBy
	}
	if d.ColorScheme != "" && !flags.Changed("color-scheme") {
		opts.ColorScheme = d.ColorScheme
	}
	if len(d.Formats) > 0 && !flags.Changed("format") {
		opts.Formats = d.Formats
	}
}
