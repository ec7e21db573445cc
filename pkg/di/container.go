// Package di provides dependency injection for the pixel cache components.
// The container holds explicitly constructed singletons so call sites share
// one hasher and one cache without reaching for ambient globals, and tests
// can build a fresh, isolated container per case.
package di

import (
	"log/slog"

	"github.com/goliatone/go-pixel-cache/cache"
	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/pixel"
)

// Container manages singleton instances of the hasher and the stores.
type Container struct {
	hasher *hash.Hasher
	images *cache.BoundedCache[*pixel.Image]
	crops  *cache.CropStore
	config cache.Config
	logger *slog.Logger
}

// New creates a DI container with the provided configuration. The logger may
// be nil, in which case cache events are discarded.
func New(cfg cache.Config, cropCfg cache.CropConfig, logger *slog.Logger) (*Container, error) {
	if logger != nil && cfg.Logger == nil {
		cfg.Logger = logger
	}

	images, err := cache.New[*pixel.Image](cfg)
	if err != nil {
		return nil, err
	}

	crops, err := cache.NewCropStore(cropCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		hasher: hash.New(),
		images: images,
		crops:  crops,
		config: cfg,
		logger: logger,
	}, nil
}

// NewWithDefaults creates a DI container using default configuration.
func NewWithDefaults() (*Container, error) {
	return New(cache.DefaultConfig(), cache.DefaultCropConfig(), nil)
}

// Hasher returns the singleton content hasher.
func (c *Container) Hasher() *hash.Hasher {
	return c.hasher
}

// Images returns the singleton bounded cache for derived image buffers.
func (c *Container) Images() *cache.BoundedCache[*pixel.Image] {
	return c.images
}

// Crops returns the singleton crop materialization store.
func (c *Container) Crops() *cache.CropStore {
	return c.crops
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewBoundedCache creates an additional bounded cache for a custom value
// type, sharing the container's configuration and logger. Go methods cannot
// have type parameters, so this is a package-level function.
func NewBoundedCache[V any](c *Container, opts ...cache.Option[V]) (*cache.BoundedCache[V], error) {
	return cache.New[V](c.config, opts...)
}
