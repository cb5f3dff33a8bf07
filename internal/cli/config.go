package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/mindgrove/mindgrove/pkg/cache"
	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/store"
)

// Config is the TOML configuration loaded from ~/.config/mindgrove/config.toml.
// Every field has a working default; the file is optional.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Store  StoreConfig   `toml:"store"`
	Expand ExpandConfig  `toml:"expand"`
	Render RenderConfig  `toml:"render"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "null".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and configures the map store backend.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ExpandConfig configures the suggestion service client.
type ExpandConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	Limit    int    `toml:"limit"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "file"},
		Expand: ExpandConfig{Limit: 5},
		Render: RenderConfig{Width: 1280, Height: 800},
	}
}

// configDir returns the mindgrove configuration directory.
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindgrove"), nil
}

// loadConfig reads the config file, merged over defaults. A missing file is
// not an error. The MINDGROVE_EXPAND_API_KEY environment variable overrides
// the file so the key can stay out of dotfiles.
func loadConfig(logger *log.Logger) Config {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		logger.Debug("no user config dir", "err", err)
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to parse config file", "path", path, "err", err)
		}
	} else {
		logger.Debug("loaded config", "path", path)
	}

	if key := os.Getenv("MINDGROVE_EXPAND_API_KEY"); key != "" {
		cfg.Expand.APIKey = key
	}
	return cfg
}

// openCache creates the configured cache backend.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = filepath.Join(base, "mindgrove")
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "null":
		return cache.NewNullCache(), nil
	}
	return nil, errBadBackend("cache", cfg.Backend)
}

// openStore creates the configured store backend.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			confDir, err := configDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(confDir, "maps")
		}
		return store.NewFileStore(dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	}
	return nil, errBadBackend("store", cfg.Backend)
}

func errBadBackend(kind, name string) error {
	return fmt.Errorf("unknown %s backend %q", kind, name)
}
