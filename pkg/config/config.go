// Package config loads pauliflow settings from a TOML file.
//
//	[synthesis]
//	metric = "depth"
//	preserve_order = true
//	shuffles = 8
//	seed = 7
//	check = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//
// Missing keys keep their defaults. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pauliflow/pkg/cache"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "pauliflow"

// Config is the full configuration file.
type Config struct {
	Synthesis Synthesis `toml:"synthesis"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Synthesis holds default synthesis options.
type Synthesis struct {
	Metric        string `toml:"metric"`
	PreserveOrder bool   `toml:"preserve_order"`
	SkipSort      bool   `toml:"skip_sort"`
	Shuffles      int    `toml:"shuffles"`
	Seed          uint64 `toml:"seed"`
	Check         bool   `toml:"check"`
}

// Cache selects the result cache backend.
type Cache struct {
	Backend         string        `toml:"backend"`
	Dir             string        `toml:"dir"`
	TTL             time.Duration `toml:"ttl"`
	Timeout         time.Duration `toml:"timeout"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisPassword   string        `toml:"redis_password"`
	RedisDB         int           `toml:"redis_db"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
	// CacheScope prefixes every cache key written by the server.
	CacheScope string `toml:"cache_scope"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Synthesis: Synthesis{
			Metric: pipeline.DefaultMetric,
			Seed:   pipeline.DefaultSeed,
		},
		Cache: Cache{
			Backend:         cache.BackendFile,
			TTL:             cache.TTLCircuit,
			Timeout:         5 * time.Second,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   cache.DefaultMongoDatabase,
			MongoCollection: cache.DefaultMongoCollection,
		},
		Server: Server{
			Addr:       ":8080",
			CacheScope: "api:",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pauliflow/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/pauliflow, falling back to
// ~/.cache.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path on top of [Default]. An empty path loads the default file
// if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return finished(cfg)
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return finished(cfg)
	}
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return cfg, perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return finished(cfg)
}

func finished(cfg Config) (Config, error) {
	err := cfg.finish()
	return cfg, err
}

// finish validates values and fills in derived defaults.
func (c *Config) finish() error {
	if err := perrors.ValidateMetric(c.Synthesis.Metric); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendFile && c.Cache.Dir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "resolve cache directory")
		}
		c.Cache.Dir = dir
	}
	return nil
}

// CacheOptions converts the [cache] section for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisAddr:       c.Cache.RedisAddr,
		RedisPassword:   c.Cache.RedisPassword,
		RedisDB:         c.Cache.RedisDB,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
		Timeout:         c.Cache.Timeout,
	}
}

// PipelineOptions returns pipeline options seeded from the [synthesis]
// section.
func (c Config) PipelineOptions(ops []string) pipeline.Options {
	return pipeline.Options{
		Operators:     ops,
		Metric:        c.Synthesis.Metric,
		PreserveOrder: c.Synthesis.PreserveOrder,
		SkipSort:      c.Synthesis.SkipSort,
		Shuffles:      c.Synthesis.Shuffles,
		Seed:          c.Synthesis.Seed,
		Check:         c.Synthesis.Check,
	}
}
