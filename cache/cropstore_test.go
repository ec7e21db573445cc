package cache_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-pixel-cache/cache"
	"github.com/goliatone/go-pixel-cache/geometry"
	"github.com/goliatone/go-pixel-cache/hashable"
	"github.com/goliatone/go-pixel-cache/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCropStore(t *testing.T) *cache.CropStore {
	t.Helper()
	s, err := cache.NewCropStore(cache.DefaultCropConfig(), nil)
	require.NoError(t, err)
	return s
}

func testCrop(t *testing.T, seed byte) *hashable.ImageCrop {
	t.Helper()
	data := make([]byte, 64)
	for i := range data {
		data[i] = seed + byte(i)
	}
	img, err := pixel.NewImage(data, pixel.ImageSize{Width: 8, Height: 8}, 1, pixel.DTypeUint8)
	require.NoError(t, err)
	src, err := hashable.NewImage(img)
	require.NoError(t, err)
	box, err := geometry.NewBoundingBox(2, 2, 6, 6, geometry.SpacePixel)
	require.NoError(t, err)
	crop, err := hashable.NewImageCrop(src, box)
	require.NoError(t, err)
	return crop
}

func TestCropStore_MaterializeServesCachedBuffer(t *testing.T) {
	s := newCropStore(t)
	crop := testCrop(t, 0)

	first, err := s.Materialize(context.Background(), crop)
	require.NoError(t, err)
	second, err := s.Materialize(context.Background(), crop)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, pixel.ImageSize{Width: 4, Height: 4}, first.Size())
}

func TestCropStore_EquivalentCropsShareAnEntry(t *testing.T) {
	s := newCropStore(t)
	a := testCrop(t, 0)
	b := testCrop(t, 0)

	imgA, err := s.Materialize(context.Background(), a)
	require.NoError(t, err)
	imgB, err := s.Materialize(context.Background(), b)
	require.NoError(t, err)

	assert.Same(t, imgA, imgB)
	assert.Len(t, s.Keys(), 1)
}

func TestCropStore_DistinctSourcesDoNotCollide(t *testing.T) {
	s := newCropStore(t)

	_, err := s.Materialize(context.Background(), testCrop(t, 0))
	require.NoError(t, err)
	_, err = s.Materialize(context.Background(), testCrop(t, 100))
	require.NoError(t, err)

	assert.Len(t, s.Keys(), 2)
}

func TestCropStore_Invalidate(t *testing.T) {
	s := newCropStore(t)
	crop := testCrop(t, 0)

	first, err := s.Materialize(context.Background(), crop)
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(crop))

	second, err := s.Materialize(context.Background(), crop)
	require.NoError(t, err)

	// re-materialized into a fresh buffer with the same content
	assert.NotSame(t, first, second)
	assert.True(t, first.EqualContent(second))
}

func TestCropStore_InvalidateSource(t *testing.T) {
	s := newCropStore(t)

	keep := testCrop(t, 100)
	dropA := testCrop(t, 0)

	// a second crop of dropA's source
	box, err := geometry.NewBoundingBox(0, 0, 2, 2, geometry.SpacePixel)
	require.NoError(t, err)
	dropB, err := hashable.NewImageCrop(dropA.Source(), box)
	require.NoError(t, err)

	for _, c := range []*hashable.ImageCrop{keep, dropA, dropB} {
		_, err := s.Materialize(context.Background(), c)
		require.NoError(t, err)
	}
	require.Len(t, s.Keys(), 3)

	require.NoError(t, s.InvalidateSource(dropA.Source()))

	keys := s.Keys()
	assert.Len(t, keys, 1)
	keepKey, err := keep.Key()
	require.NoError(t, err)
	assert.Contains(t, keys, keepKey)
}
