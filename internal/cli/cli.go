// Package cli implements the cortica command-line interface.
//
// The CLI wraps the analysis pipeline in commands for clustering
// connectivity matrices, rendering figures, and serving the HTTP API.
// Commands share a cached pipeline runner, styled terminal output, and an
// optional TOML config file.
//
// # Commands
//
// The main commands are:
//   - analyze: run the full cluster → layout → render pipeline
//   - heatmap: render the original-order correlation heatmap
//   - network: render the thresholded connectivity network
//   - clusters: print cluster assignments and statistics
//   - runs: list, show, and delete recorded analysis runs
//   - serve: start the HTTP API
//   - cache: manage the local result cache
//
// # Configuration
//
// Values resolve in order: command-line flags, then the TOML config file
// (~/.config/cortica/config.toml by default), then built-in defaults. All
// commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/siddlokray/cortica/pkg/buildinfo"
	"github.com/siddlokray/cortica/pkg/cache"
	"github.com/siddlokray/cortica/pkg/httputil"
	"github.com/siddlokray/cortica/pkg/pipeline"
	"github.com/siddlokray/cortica/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cortica"

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
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cortica",
		Short:        "Cortica clusters and visualizes brain connectivity matrices",
		Long:         `Cortica is a CLI tool for analyzing region-by-region correlation matrices: it groups regions by hierarchical clustering, renders correlation heatmaps and cluster summaries, and draws thresholded connectivity networks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/cortica/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.heatmapCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the cache backend: disabled, redis when configured, file
// otherwise. A missing cache directory degrades to no caching rather than
// failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newHTTPCache returns the file-backed cache for fetched matrices, or nil
// when caching is off.
func (c *CLI) newHTTPCache(noCache bool) *httputil.Cache {
	if noCache || c.Config.Cache.Disabled {
		return nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return nil
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "http"), cache.TTLArtifact)
	if err != nil {
		return nil
	}
	return hc
}

// newStore opens the run store: mongo when configured, file otherwise.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.MongoURI != "" {
		db := c.Config.Store.MongoDB
		if db == "" {
			db = appName
		}
		return store.NewMongoStore(ctx, c.Config.Store.MongoURI, db)
	}
	return store.NewFileStore(c.Config.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, preferring the config file value,
// then XDG standard (~/.cache/cortica/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return defaultCacheDir()
}

// defaultCacheDir returns the cache directory using XDG standard.
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Parsing Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return splitList(s)
}

// parseKinds parses a comma-separated figure kind string into a slice.
// An empty string selects all kinds via the pipeline defaults.
func parseKinds(s string) []string {
	if s == "" {
		return nil
	}
	return splitList(s)
}

// parseCustomColors parses "region=color" pairs into a name-to-color map.
// Malformed pairs are dropped; the renderer falls back to cluster colors
// for regions without an entry.
func parseCustomColors(s string) map[string]string {
	if s == "" {
		return nil
	}
	colors := make(map[string]string)
	for _, pair := range splitList(s) {
		region, color, ok := strings.Cut(pair, "=")
		if !ok || region == "" || color == "" {
			continue
		}
		colors[region] = color
	}
	if len(colors) == 0 {
		return nil
	}
	return colors
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
