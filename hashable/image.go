package hashable

import (
	"sync"

	"github.com/goliatone/go-pixel-cache/hash"
	"github.com/goliatone/go-pixel-cache/pixel"
)

// defaultHasher serves all wrappers in this package. The hasher is stateless
// and safe for concurrent use.
var defaultHasher = hash.New()

// Image gives a pixel buffer stable content-based hash and equality. The
// digest is computed once on first use; the wrapper must be treated as
// immutable afterwards.
type Image struct {
	img    *pixel.Image
	once   sync.Once
	digest hash.Digest
	err    error
}

// NewImage wraps an image. The buffer is shared, not copied; mutating it
// after wrapping violates the wrapper contract.
func NewImage(img *pixel.Image) (*Image, error) {
	if img == nil {
		return nil, &hash.UnsupportedPayloadTypeError{Type: "(*pixel.Image)(nil)"}
	}
	return &Image{img: img}, nil
}

// Digest returns the memoized content digest. The first call hashes the
// buffer; subsequent calls are O(1).
func (h *Image) Digest() (hash.Digest, error) {
	h.once.Do(func() {
		h.digest, h.err = defaultHasher.Hash(h.img)
	})
	return h.digest, h.err
}

// Image returns the wrapped buffer, read-only by contract.
func (h *Image) Image() *pixel.Image {
	return h.img
}

// Size returns the wrapped image's dimensions.
func (h *Image) Size() pixel.ImageSize {
	return h.img.Size()
}

// Equal reports digest equality. Two independently allocated buffers with
// identical content and structural metadata compare equal.
func (h *Image) Equal(other *Image) bool {
	if other == nil {
		return false
	}
	a, err := h.Digest()
	if err != nil {
		return false
	}
	b, err := other.Digest()
	if err != nil {
		return false
	}
	return a == b
}

// DeepEqual is the collision-safe fallback: digest equality confirmed by a
// byte-for-byte comparison of the buffers.
func (h *Image) DeepEqual(other *Image) bool {
	return h.Equal(other) && h.img.EqualContent(other.img)
}
