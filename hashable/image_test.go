package hashable_test

import (
	"testing"

	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/hashable"
	"github.com/goliatone/go-pixel-cache/pixel"
	"github.com/goliatone/go-pixel-cache/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustImage(t *testing.T, data []byte, size pixel.ImageSize, channels int) *hashable.Image {
	t.Helper()
	img, err := pixel.NewImage(data, size, channels, pixel.DTypeUint8)
	require.NoError(t, err)
	wrapped, err := hashable.NewImage(img)
	require.NoError(t, err)
	return wrapped
}

func TestNewImage_NilSource(t *testing.T) {
	_, err := hashable.NewImage(nil)

	var uerr *hash.UnsupportedPayloadTypeError
	require.ErrorAs(t, err, &uerr)
}

func TestImage_DigestIsStable(t *testing.T) {
	rng, _ := testsupport.SeedFromEnv(t)
	img := testsupport.RandomImage(t, rng, pixel.ImageSize{Width: 8, Height: 8}, 3)

	wrapped, err := hashable.NewImage(img)
	require.NoError(t, err)

	first, err := wrapped.Digest()
	require.NoError(t, err)
	second, err := wrapped.Digest()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestImage_EqualAcrossAllocations(t *testing.T) {
	size := pixel.ImageSize{Width: 4, Height: 4}
	data := make([]byte, size.Pixels()*3)
	for i := range data {
		data[i] = byte(i)
	}

	a := mustImage(t, append([]byte(nil), data...), size, 3)
	b := mustImage(t, append([]byte(nil), data...), size, 3)

	assert.True(t, a.Equal(b))
	assert.True(t, a.DeepEqual(b))
}

func TestImage_ContentChangeChangesDigest(t *testing.T) {
	size := pixel.ImageSize{Width: 4, Height: 4}
	data := make([]byte, size.Pixels())

	a := mustImage(t, append([]byte(nil), data...), size, 1)

	data[7] = 1
	b := mustImage(t, data, size, 1)

	assert.False(t, a.Equal(b))
}

// A 4x4 all-zero grayscale image and a 4x4 all-zero RGB image carry the same
// raw bytes only up to length; structurally they are different payloads and
// must not collide.
func TestImage_ChannelCountIsStructural(t *testing.T) {
	size := pixel.ImageSize{Width: 4, Height: 4}

	gray := mustImage(t, make([]byte, size.Pixels()), size, 1)
	rgb := mustImage(t, make([]byte, size.Pixels()*3), size, 3)

	grayDigest, err := gray.Digest()
	require.NoError(t, err)
	rgbDigest, err := rgb.Digest()
	require.NoError(t, err)

	assert.NotEqual(t, grayDigest, rgbDigest)
}

func TestImage_ShapeIsStructural(t *testing.T) {
	wide := mustImage(t, make([]byte, 32), pixel.ImageSize{Width: 8, Height: 4}, 1)
	tall := mustImage(t, make([]byte, 32), pixel.ImageSize{Width: 4, Height: 8}, 1)

	assert.False(t, wide.Equal(tall))
}

func TestImage_EqualNil(t *testing.T) {
	img := mustImage(t, make([]byte, 16), pixel.ImageSize{Width: 4, Height: 4}, 1)

	assert.False(t, img.Equal(nil))
}

func TestImage_Accessors(t *testing.T) {
	size := pixel.ImageSize{Width: 6, Height: 2}
	img := mustImage(t, make([]byte, size.Pixels()*4), size, 4)

	assert.Equal(t, size, img.Size())
	assert.NotNil(t, img.Image())
	assert.Equal(t, []int{2, 6, 4}, img.Image().Shape())
}
