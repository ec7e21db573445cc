package hashable

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-pixel-cache/geometry"
	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/pixel"
)

// OutOfBoundsCropError is returned when a crop box extends beyond its source
// image's declared dimensions.
type OutOfBoundsCropError struct {
	Box  geometry.BoundingBox
	Size pixel.ImageSize
}

// Error implements the error interface.
func (e *OutOfBoundsCropError) Error() string {
	return fmt.Sprintf("hashable: crop %s exceeds source bounds %s", e.Box, e.Size)
}

// ImageCrop is a derived region of a source image: a bounding box plus the
// source wrapper. Construction validates bounds only; no pixels are copied
// until Materialize. The crop digest is a pure function of (source digest,
// box), so pixel-identical crops of pixel-identical images share cache
// entries.
type ImageCrop struct {
	src *Image
	box geometry.BoundingBox

	once   sync.Once
	digest hash.Digest
	err    error
}

// NewImageCrop validates the box against the source dimensions. Normalized
// boxes are converted to pixel space against the source size first. A box
// extending beyond the source fails with *OutOfBoundsCropError.
func NewImageCrop(src *Image, box geometry.BoundingBox) (*ImageCrop, error) {
	if src == nil {
		return nil, &hash.UnsupportedPayloadTypeError{Type: "(*hashable.Image)(nil)"}
	}

	size := src.Size()
	pb, err := box.Denormalize(size)
	if err != nil {
		return nil, err
	}
	if pb.XMax > float64(size.Width) || pb.YMax > float64(size.Height) {
		return nil, &OutOfBoundsCropError{Box: box, Size: size}
	}

	return &ImageCrop{src: src, box: pb}, nil
}

// Source returns the wrapped source image.
func (c *ImageCrop) Source() *Image {
	return c.src
}

// Box returns the crop rectangle in pixel space.
func (c *ImageCrop) Box() geometry.BoundingBox {
	return c.box
}

// Digest returns the memoized digest of (source digest, box). It differs
// from the source digest even for a full-image crop.
func (c *ImageCrop) Digest() (hash.Digest, error) {
	c.once.Do(func() {
		srcDigest, err := c.src.Digest()
		if err != nil {
			c.err = err
			return
		}
		c.digest, c.err = defaultHasher.Hash([]any{srcDigest, c.box})
	})
	return c.digest, c.err
}

// Key renders the stable string key used by the crop materialization store:
// the source digest plus the pixel-space box.
func (c *ImageCrop) Key() (string, error) {
	srcDigest, err := c.src.Digest()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("crop::%s::%g,%g,%g,%g",
		srcDigest, c.box.XMin, c.box.YMin, c.box.XMax, c.box.YMax), nil
}

// Materialize copies the crop region into a new pixel buffer. This is the
// side-effecting, lazily invoked counterpart to construction; callers that
// materialize repeatedly should go through the crop store.
func (c *ImageCrop) Materialize() (*pixel.Image, error) {
	x0, y0, x1, y1, err := c.box.PixelRect(c.src.Size())
	if err != nil {
		return nil, err
	}
	return c.src.Image().Region(x0, y0, x1, y1)
}

// Equal reports digest equality.
func (c *ImageCrop) Equal(other *ImageCrop) bool {
	if other == nil {
		return false
	}
	a, err := c.Digest()
	if err != nil {
		return false
	}
	b, err := other.Digest()
	if err != nil {
		return false
	}
	return a == b
}
