// Package cacheinfra adapts the sturdyc client into the string-keyed,
// TTL-based store backing crop materialization. The primary digest-keyed
// bounded cache does not live here; it has strict single-entry LRU semantics
// sturdyc does not provide.
package cacheinfra

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc store.
type Config struct {
	// Capacity defines the maximum number of entries the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Must be greater than 0.
	NumShards int

	// TTL is the time-to-live for stored entries. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict when
	// the store reaches capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the store checks for expired entries.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults. Materialized crops
// are derived data, so a short TTL keeps memory bounded without hurting
// correctness.
func DefaultConfig() Config {
	return Config{
		Capacity:           1000,
		NumShards:          64,
		TTL:                10 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the Config to sturdyc options. Capacity,
// NumShards, TTL and EvictionPercentage are passed directly to sturdyc.New
// and are not included.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Store wraps a sturdyc client providing read-through caching behaviour.
type Store struct {
	client *sturdyc.Client[any]
}

// NewStore validates the configuration and initializes a sturdyc client.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	return &Store{client: client}, nil
}

// GetOrFetch returns the value for key, invoking fetch on a miss and caching
// the result until it expires.
func (s *Store) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	return s.client.GetOrFetch(ctx, key, fetch)
}

// Delete removes a single entry.
func (s *Store) Delete(key string) {
	s.client.Delete(key)
}

// DeleteByPrefix removes all entries whose keys start with prefix.
func (s *Store) DeleteByPrefix(prefix string) {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
}

// Keys returns all keys currently held.
func (s *Store) Keys() []string {
	return s.client.ScanKeys()
}
