// Package cli implements the sccmap command-line interface.
//
// The CLI wraps the pipeline runner with terminal ergonomics: layered
// configuration (sccmap.toml, SCCMAP_* environment variables, flags),
// spinners and styled status output, a component browser TUI, and an HTTP
// server with optional input watching. All commands support --verbose (-v)
// for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sccmap/pkg/archive"
	"sccmap/pkg/buildinfo"
	"sccmap/pkg/cache"
	"sccmap/pkg/config"
	"sccmap/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "sccmap"

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
}

// New creates a new CLI instance logging to w at the given level.
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
		Use:          "sccmap",
		Short:        "sccmap decomposes directed graphs into strongly connected components",
		Long: `sccmap ingests a directed graph from CSV or TOML input, partitions it into
strongly connected components, assigns each component a deterministic name,
and writes the tagged graph as GEXF or renders it as a chart.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner wired to the configured cache and
// archive backends. The --no-cache and --no-archive flags override the
// configuration with null backends.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache, noArchive bool) (*pipeline.Runner, error) {
	cch, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	store, err := newArchive(ctx, cfg, noArchive)
	if err != nil {
		_ = cch.Close()
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, store, c.Logger), nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.CacheBackend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(cfg.RedisAddr)
	case config.CacheFile:
		dir := cfg.CacheDir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.CacheBackend)
	}
}

func newArchive(ctx context.Context, cfg *config.Config, noArchive bool) (archive.Store, error) {
	if noArchive {
		return archive.NewNullStore(), nil
	}
	switch cfg.ArchiveBackend {
	case config.ArchiveNone:
		return archive.NewNullStore(), nil
	case config.ArchiveMongo:
		return archive.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.ArchiveFile:
		dir := cfg.ArchiveDir
		if dir == "" {
			d, err := archiveDir()
			if err != nil {
				return archive.NewNullStore(), nil
			}
			dir = d
		}
		return archive.NewFileStore(dir)
	default:
		return nil, fmt.Errorf("unknown archive backend: %q", cfg.ArchiveBackend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sccmap/).
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

// archiveDir returns the archive directory using XDG standard
// (~/.local/share/sccmap/). Archived runs are data, not cache: they survive
// a cache clear.
func archiveDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// buildOptions maps the resolved configuration onto pipeline options.
// Formats are chosen per command.
func (c *CLI) buildOptions(cfg *config.Config, refresh bool) pipeline.Options {
	return pipeline.Options{
		Nodes:    cfg.Nodes,
		Links:    cfg.Links,
		Manifest: cfg.Manifest,
		AppendID: cfg.Number,
		Refresh:  refresh,
		Naming:   cfg.Naming,
		Layout:   cfg.Layout,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Seed:     cfg.Seed,
		Logger:   c.Logger,
	}
}

// defaultInputs falls back to ./nodes.csv and ./links.csv when no input is
// configured, matching the conventional file names.
func defaultInputs(cfg *config.Config) {
	if cfg.Nodes == "" && cfg.Links == "" && cfg.Manifest == "" {
		cfg.Nodes = "nodes.csv"
		cfg.Links = "links.csv"
	}
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// "-" (or an empty path) means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeArtifact writes rendered bytes to path ("-" means stdout).
func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
