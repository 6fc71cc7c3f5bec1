// Package config loads sccmap configuration from layered sources.
// Priority: flags > environment > config file > defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"sccmap/pkg/pipeline"
)

// File is the optional config file read from the working directory.
const File = "sccmap.toml"

// EnvPrefix scopes environment overrides, e.g. SCCMAP_CACHE_BACKEND.
const EnvPrefix = "SCCMAP_"

// Cache backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Archive backend names.
const (
	ArchiveFile  = "file"
	ArchiveMongo = "mongo"
	ArchiveNone  = "none"
)

// Serve defaults.
const (
	DefaultAddr     = ":8080"
	DefaultDebounce = 500 * time.Millisecond
	DefaultMaxWait  = 2 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	// Inputs
	Nodes    string `koanf:"nodes"`
	Links    string `koanf:"links"`
	Manifest string `koanf:"manifest"`

	// Decomposition
	Naming string `koanf:"naming"`
	Number bool   `koanf:"number"`

	// Layout and rendering
	Layout string `koanf:"layout"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
	Seed   int64  `koanf:"seed"`
	Format string `koanf:"format"`

	// Cache
	CacheBackend string `koanf:"cache-backend"`
	CacheDir     string `koanf:"cache-dir"`
	RedisAddr    string `koanf:"redis-addr"`

	// Archive
	ArchiveBackend string `koanf:"archive-backend"`
	ArchiveDir     string `koanf:"archive-dir"`
	MongoURI       string `koanf:"mongo-uri"`
	MongoDB        string `koanf:"mongo-db"`

	// Serve
	Addr     string        `koanf:"addr"`
	Watch    bool          `koanf:"watch"`
	Debounce time.Duration `koanf:"debounce"`
	MaxWait  time.Duration `koanf:"max-wait"`
}

// Load loads configuration from defaults, config file, environment variables,
// and flags. Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"nodes":    "",
		"links":    "",
		"manifest": "",

		"naming": pipeline.DefaultNaming,
		"number": false,

		"layout": pipeline.DefaultLayout,
		"width":  pipeline.DefaultWidth,
		"height": pipeline.DefaultHeight,
		"seed":   pipeline.DefaultSeed,
		"format": "",

		"cache-backend": CacheFile,
		"cache-dir":     "",
		"redis-addr":    "localhost:6379",

		"archive-backend": ArchiveFile,
		"archive-dir":     "",
		"mongo-uri":       "mongodb://localhost:27017",
		"mongo-db":        "sccmap",

		"addr":     DefaultAddr,
		"watch":    false,
		"debounce": DefaultDebounce,
		"max-wait": DefaultMaxWait,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - sccmap.toml
	// Errors are ignored as the file might not exist
	_ = k.Load(file.Provider(File), toml.Parser())

	// 3. Environment Variables
	// SCCMAP_CACHE_BACKEND=redis becomes cache-backend=redis
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
