package hashable_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-pixel-cache/geometry"
	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/hashable"
	"github.com/goliatone/go-pixel-cache/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampImage is an 8x8 single-channel image whose byte at (x, y) is y*8+x,
// so region contents are easy to assert.
func rampImage(t *testing.T) *hashable.Image {
	t.Helper()
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	return mustImage(t, data, pixel.ImageSize{Width: 8, Height: 8}, 1)
}

func pixelBox(t *testing.T, xmin, ymin, xmax, ymax float64) geometry.BoundingBox {
	t.Helper()
	box, err := geometry.NewBoundingBox(xmin, ymin, xmax, ymax, geometry.SpacePixel)
	require.NoError(t, err)
	return box
}

func TestNewImageCrop_NilSource(t *testing.T) {
	_, err := hashable.NewImageCrop(nil, pixelBox(t, 0, 0, 1, 1))

	var uerr *hash.UnsupportedPayloadTypeError
	require.ErrorAs(t, err, &uerr)
}

func TestNewImageCrop_OutOfBounds(t *testing.T) {
	src := rampImage(t)

	_, err := hashable.NewImageCrop(src, pixelBox(t, 0, 0, 9, 4))

	var oob *hashable.OutOfBoundsCropError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, pixel.ImageSize{Width: 8, Height: 8}, oob.Size)
	assert.Contains(t, oob.Error(), "exceeds source bounds")
}

func TestNewImageCrop_NormalizedBoxIsDenormalized(t *testing.T) {
	src := rampImage(t)
	box, err := geometry.NewBoundingBox(0.25, 0.25, 0.75, 0.75, geometry.SpaceNormalized)
	require.NoError(t, err)

	crop, err := hashable.NewImageCrop(src, box)
	require.NoError(t, err)

	got := crop.Box()
	assert.Equal(t, geometry.SpacePixel, got.Space)
	assert.InDelta(t, 2, got.XMin, 1e-9)
	assert.InDelta(t, 6, got.XMax, 1e-9)
}

func TestImageCrop_DigestDiffersFromSource(t *testing.T) {
	src := rampImage(t)

	crop, err := hashable.NewImageCrop(src, pixelBox(t, 0, 0, 8, 8))
	require.NoError(t, err)

	srcDigest, err := src.Digest()
	require.NoError(t, err)
	cropDigest, err := crop.Digest()
	require.NoError(t, err)

	assert.NotEqual(t, srcDigest, cropDigest)
}

func TestImageCrop_DigestIsFunctionOfSourceAndBox(t *testing.T) {
	a, err := hashable.NewImageCrop(rampImage(t), pixelBox(t, 1, 1, 5, 5))
	require.NoError(t, err)
	b, err := hashable.NewImageCrop(rampImage(t), pixelBox(t, 1, 1, 5, 5))
	require.NoError(t, err)
	c, err := hashable.NewImageCrop(rampImage(t), pixelBox(t, 2, 1, 5, 5))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestImageCrop_Materialize(t *testing.T) {
	crop, err := hashable.NewImageCrop(rampImage(t), pixelBox(t, 1, 2, 3, 4))
	require.NoError(t, err)

	out, err := crop.Materialize()
	require.NoError(t, err)

	assert.Equal(t, pixel.ImageSize{Width: 2, Height: 2}, out.Size())
	// rows 2..3, cols 1..2 of the ramp
	assert.Equal(t, []byte{17, 18, 25, 26}, out.Bytes())
}

func TestImageCrop_Key(t *testing.T) {
	src := rampImage(t)
	crop, err := hashable.NewImageCrop(src, pixelBox(t, 1, 2, 3, 4))
	require.NoError(t, err)

	key, err := crop.Key()
	require.NoError(t, err)

	srcDigest, err := src.Digest()
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("crop::%s::1,2,3,4", srcDigest), key)
}

func TestImageCrop_Accessors(t *testing.T) {
	src := rampImage(t)
	crop, err := hashable.NewImageCrop(src, pixelBox(t, 0, 0, 4, 4))
	require.NoError(t, err)

	assert.Same(t, src, crop.Source())
	assert.Equal(t, 4.0, crop.Box().XMax)
}
