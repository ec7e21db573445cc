package cache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pixel-cache/internal/cacheinfra"
)

// DefaultMaxEntries is the default capacity of a BoundedCache, the maximum
// number of digests held before LRU eviction kicks in.
const DefaultMaxEntries = 100

// EnvMaxEntries overrides the configured capacity when set.
const EnvMaxEntries = "PIXEL_CACHE_MAX_ENTRIES"

// Config holds BoundedCache configuration. The capacity is read once at
// construction and fixed for the cache's lifetime.
type Config struct {
	// MaxEntries is the maximum entry count. Must be greater than 0.
	MaxEntries int `yaml:"max_entries"`

	// Logger receives hit/miss/eviction events at debug level. Nil discards
	// them; the cache never depends on the logger being present.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxEntries: DefaultMaxEntries}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.MaxEntries <= 0 {
		return &ConfigError{Field: "MaxEntries", Message: "must be greater than 0"}
	}
	return nil
}

// LoadConfig reads a YAML config file, applies environment overrides and
// validates the result.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cache: read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("cache: parse config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides config values from the process environment.
func (c *Config) ApplyEnv() error {
	v := os.Getenv(EnvMaxEntries)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Field: "MaxEntries", Message: "invalid " + EnvMaxEntries + " value " + strconv.Quote(v)}
	}
	c.MaxEntries = n
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return nopLogger
}

// ConfigError represents a cache configuration error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "cache: config error in field " + e.Field + ": " + e.Message
}

// CropConfig exposes crop store configuration options for consumers of the
// cache package.
type CropConfig struct {
	Capacity           int           `yaml:"capacity"`
	NumShards          int           `yaml:"num_shards"`
	TTL                time.Duration `yaml:"ttl"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"`
}

// DefaultCropConfig returns a CropConfig populated with sensible defaults.
func DefaultCropConfig() CropConfig {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c CropConfig) Validate() error {
	return c.toInternal().Validate()
}

func (c CropConfig) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) CropConfig {
	return CropConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}

// nopHandler discards all log events. Used when no logger is injected so
// logging stays purely observational.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var nopLogger = slog.New(nopHandler{})
