package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-pixel-cache/hashable"
	"github.com/goliatone/go-pixel-cache/internal/cacheinfra"
	"github.com/goliatone/go-pixel-cache/pixel"
)

// cropKeyPrefix namespaces crop entries so source-wide invalidation can use
// a prefix scan.
const cropKeyPrefix = "crop::"

// CropStore memoizes materialized crop buffers. Entries are keyed by
// (source digest, crop box) so identical crops of pixel-identical images
// share one buffer regardless of which wrapper requested them. Unlike the
// primary bounded cache, entries carry a TTL: materialized buffers are
// derived data and safe to age out.
type CropStore struct {
	store *cacheinfra.Store
	log   *slog.Logger
}

// NewCropStore constructs a crop store from the configuration. Logger may be
// nil.
func NewCropStore(cfg CropConfig, logger *slog.Logger) (*CropStore, error) {
	store, err := cacheinfra.NewStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = nopLogger
	}
	return &CropStore{store: store, log: logger}, nil
}

// Materialize returns the pixel buffer for the crop, copying it out of the
// source image on first request and serving the cached buffer afterwards.
func (s *CropStore) Materialize(ctx context.Context, crop *hashable.ImageCrop) (*pixel.Image, error) {
	key, err := crop.Key()
	if err != nil {
		return nil, err
	}

	v, err := s.store.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		s.log.Debug("materializing crop", "key", key)
		return crop.Materialize()
	})
	if err != nil {
		return nil, err
	}

	img, ok := v.(*pixel.Image)
	if !ok {
		return nil, fmt.Errorf("cache: unexpected crop store value of type %T", v)
	}
	return img, nil
}

// Invalidate drops the cached buffer for a single crop.
func (s *CropStore) Invalidate(crop *hashable.ImageCrop) error {
	key, err := crop.Key()
	if err != nil {
		return err
	}
	s.store.Delete(key)
	return nil
}

// InvalidateSource drops every cached crop of the given source image.
func (s *CropStore) InvalidateSource(src *hashable.Image) error {
	digest, err := src.Digest()
	if err != nil {
		return err
	}
	s.store.DeleteByPrefix(cropKeyPrefix + digest.String())
	return nil
}

// Keys returns the keys currently held by the store, for diagnostics.
func (s *CropStore) Keys() []string {
	return s.store.Keys()
}
