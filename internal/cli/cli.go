// Package cli implements the flexgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/buildinfo"
	"github.com/matzehuels/flexgrid/pkg/cache"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flexgrid"

	envRedisAddr = "FLEXGRID_REDIS_ADDR"
	envMongoURI  = "FLEXGRID_MONGO_URI"
	envScope     = "FLEXGRID_CACHE_SCOPE"
)

// Cache backends selectable with --cache.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
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

	cacheBackend string
	redisAddr    string
	mongoURI     string
	cacheScope   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		cacheBackend: backendFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flexgrid lays out mobile screens as responsive card grids",
		Long: `Flexgrid computes responsive grid layouts for card-based mobile screens.

It resolves column counts, item sizes and positions for a viewport width,
composes them into a presentation tree and renders the result as SVG, JSON,
terminal text or a Graphviz diagram of the tree.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerDebugHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.cacheBackend, "cache", c.cacheBackend, "cache backend: file (default), redis, mongo, none")
	pf.StringVar(&c.redisAddr, "redis-addr", os.Getenv(envRedisAddr), "redis address for --cache redis (env "+envRedisAddr+")")
	pf.StringVar(&c.mongoURI, "mongo-uri", os.Getenv(envMongoURI), "mongodb URI for --cache mongo (env "+envMongoURI+")")
	pf.StringVar(&c.cacheScope, "cache-scope", os.Getenv(envScope), "key prefix isolating entries in a shared cache (env "+envScope+")")

	// Register all subcommands
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.screensCommand())
	root.AddCommand(c.previewCommand())
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
	backend := c.cacheBackend
	if noCache {
		backend = backendNone
	}
	cc, err := c.newCache(ctx, backend)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.newKeyer(), c.Logger), nil
}

// newKeyer returns nil (the pipeline default) unless a scope is set.
func (c *CLI) newKeyer() cache.Keyer {
	if c.cacheScope == "" {
		return nil
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cacheScope+":")
}

// newCache opens the selected cache backend. A missing home directory
// degrades the file backend to no caching.
func (c *CLI) newCache(ctx context.Context, backend string) (cache.Cache, error) {
	switch backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
	case backendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: c.mongoURI})
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be file, redis, mongo or none)", backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flexgrid/).
func cacheDir() (string, error) {
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
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
