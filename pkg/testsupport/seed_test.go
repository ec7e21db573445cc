package testsupport_test

import (
	"testing"

	"github.com/goliatone/go-pixel-cache/pixel"
	"github.com/goliatone/go-pixel-cache/pkg/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsDeterministic(t *testing.T) {
	a := testsupport.RandomBytes(testsupport.Seed(42), 32)
	b := testsupport.RandomBytes(testsupport.Seed(42), 32)
	c := testsupport.RandomBytes(testsupport.Seed(43), 32)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSeedFromEnv(t *testing.T) {
	t.Setenv(testsupport.EnvSeed, "1234")

	_, seed := testsupport.SeedFromEnv(t)
	assert.Equal(t, int64(1234), seed)
}

func TestSeedFromEnv_FallsBackToZero(t *testing.T) {
	for name, value := range map[string]string{
		"unset":        "",
		"unparseable":  "not-a-number",
		"negative":     "-1",
		"beyond range": "4294967296",
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(testsupport.EnvSeed, value)

			_, seed := testsupport.SeedFromEnv(t)
			assert.Equal(t, int64(0), seed)
		})
	}
}

func TestRandomImage(t *testing.T) {
	rng := testsupport.Seed(7)
	size := pixel.ImageSize{Width: 5, Height: 3}

	img := testsupport.RandomImage(t, rng, size, 4)

	assert.Equal(t, size, img.Size())
	assert.Equal(t, 4, img.Channels())
	assert.Len(t, img.Bytes(), size.Pixels()*4)
}

func TestRandomPoints(t *testing.T) {
	rng := testsupport.Seed(7)
	size := pixel.ImageSize{Width: 10, Height: 10}

	pts := testsupport.RandomPoints(rng, 6, size)

	require.Equal(t, 6, pts.Len())
	for i := 0; i < pts.Len(); i++ {
		p := pts.At(i)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 10.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 10.0)
	}
}

func TestRandomScalarMap(t *testing.T) {
	m := testsupport.RandomScalarMap(testsupport.Seed(7), 9)

	assert.Len(t, m, 9)
}
