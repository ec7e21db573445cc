package testsupport

import (
	"math"
	"math/rand"
	"os"
	"strconv"
	"testing"

	"github.com/goliatone/go-pixel-cache/geometry"
	"github.com/goliatone/go-pixel-cache/pixel"
)

// EnvSeed is read by SeedFromEnv so randomized tests can be replayed with a
// fixed seed.
const EnvSeed = "PIXELCACHE_SEED"

// Seed returns a deterministic random source for the given seed. Tests that
// generate random payloads should take their source here so failures
// reproduce.
func Seed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SeedFromEnv resolves the seed from the environment. Unset, unparseable or
// out-of-range (beyond uint32) values fall back to seed 0. The resolved seed
// is logged so a failing run can be replayed.
func SeedFromEnv(t *testing.T) (*rand.Rand, int64) {
	t.Helper()

	seed := int64(0)
	if v := os.Getenv(EnvSeed); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		}
	}
	if seed < 0 || seed > math.MaxUint32 {
		seed = 0
	}
	t.Logf("seed set to %d", seed)
	return Seed(seed), seed
}

// RandomBytes fills a new slice of length n from rng.
func RandomBytes(rng *rand.Rand, n int) []byte {
	out := make([]byte, n)
	rng.Read(out)
	return out
}

// RandomImage builds a random uint8 image payload of the given geometry.
func RandomImage(t *testing.T, rng *rand.Rand, size pixel.ImageSize, channels int) *pixel.Image {
	t.Helper()

	data := RandomBytes(rng, size.Pixels()*channels)
	img, err := pixel.NewImage(data, size, channels, pixel.DTypeUint8)
	if err != nil {
		t.Fatalf("failed to build random image: %v", err)
	}
	return img
}

// RandomPoints builds n random points within the given size.
func RandomPoints(rng *rand.Rand, n int, size pixel.ImageSize) geometry.Points {
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Point{
			X: rng.Float64() * float64(size.Width),
			Y: rng.Float64() * float64(size.Height),
		}
	}
	return geometry.NewPoints(pts...)
}

// RandomScalarMap builds a map payload of n random scalar entries.
func RandomScalarMap(rng *rand.Rand, n int) map[string]any {
	out := make(map[string]any, n)
	for i := 0; i < n; i++ {
		key := "k" + strconv.Itoa(i)
		switch i % 3 {
		case 0:
			out[key] = rng.Int63()
		case 1:
			out[key] = rng.Float64()
		default:
			out[key] = strconv.Itoa(rng.Int())
		}
	}
	return out
}
