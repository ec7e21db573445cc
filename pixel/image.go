// Package pixel provides the raw array-backed image type used as hashing and
// caching payload. An Image is a byte buffer plus its declared shape, channel
// count and element type; the buffer is shared with the caller, never copied,
// and must not be mutated after construction.
package pixel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// ErrInvalidImage is wrapped by every image construction failure.
var ErrInvalidImage = errors.New("pixel: invalid image")

// ImageSize is the width and height of an image in pixels.
type ImageSize struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Pixels returns the number of pixels in the image.
func (s ImageSize) Pixels() int {
	return s.Width * s.Height
}

// Valid reports whether both dimensions are positive.
func (s ImageSize) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// String renders the size as "WxH".
func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Image is an array-backed image buffer with explicit structural metadata.
// The zero value is not usable; construct with NewImage. Post-construction
// mutation of the underlying buffer is a contract violation: wrappers and
// caches key on content computed at wrap time.
type Image struct {
	data     []byte
	size     ImageSize
	channels int
	dtype    DType
}

// NewImage wraps data as an image of the given size, channel count and
// element type. The buffer is retained without copying; its length must be
// exactly height * width * channels * dtype.Size().
func NewImage(data []byte, size ImageSize, channels int, dtype DType) (*Image, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: size %s", ErrInvalidImage, size)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidImage, channels)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: dtype %s", ErrInvalidImage, dtype)
	}
	want := size.Pixels() * channels * dtype.Size()
	if len(data) != want {
		return nil, fmt.Errorf("%w: buffer has %d bytes, shape %s x%d %s needs %d",
			ErrInvalidImage, len(data), size, channels, dtype, want)
	}
	return &Image{data: data, size: size, channels: channels, dtype: dtype}, nil
}

// FromImage converts a stdlib image to an 8-bit buffer. Grayscale sources
// keep a single channel; everything else converts to 4-channel RGBA.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	size := ImageSize{Width: bounds.Dx(), Height: bounds.Dy()}

	if gray, ok := src.(*image.Gray); ok {
		data := make([]byte, size.Pixels())
		for y := 0; y < size.Height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+size.Width]
			copy(data[y*size.Width:], row)
		}
		img, _ := NewImage(data, size, 1, DTypeUint8)
		return img
	}

	data := make([]byte, size.Pixels()*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			data[i] = byte(r >> 8)
			data[i+1] = byte(g >> 8)
			data[i+2] = byte(b >> 8)
			data[i+3] = byte(a >> 8)
			i += 4
		}
	}
	img, _ := NewImage(data, size, 4, DTypeUint8)
	return img
}

// Bytes returns the underlying buffer. Shared, not copied; read-only by
// contract.
func (im *Image) Bytes() []byte {
	return im.data
}

// Size returns the image dimensions.
func (im *Image) Size() ImageSize {
	return im.size
}

// Channels returns the channel count.
func (im *Image) Channels() int {
	return im.channels
}

// DType returns the element type.
func (im *Image) DType() DType {
	return im.dtype
}

// Shape returns [height, width, channels].
func (im *Image) Shape() []int {
	return []int{im.size.Height, im.size.Width, im.channels}
}

// PixelStride returns the bytes per pixel.
func (im *Image) PixelStride() int {
	return im.channels * im.dtype.Size()
}

// RowStride returns the bytes per row.
func (im *Image) RowStride() int {
	return im.size.Width * im.PixelStride()
}

// NumBytes returns the buffer length.
func (im *Image) NumBytes() int {
	return len(im.data)
}

// String renders a short description, e.g. "image 64x48 x3 u8".
func (im *Image) String() string {
	return fmt.Sprintf("image %s x%d %s", im.size, im.channels, im.dtype)
}

// BufferShape implements the hasher's Buffer interface.
func (im *Image) BufferShape() []int {
	return im.Shape()
}

// BufferElem implements the hasher's Buffer interface.
func (im *Image) BufferElem() string {
	return im.dtype.String()
}

// BufferWidth implements the hasher's Buffer interface.
func (im *Image) BufferWidth() int {
	return im.dtype.Size()
}

// BufferBytes implements the hasher's Buffer interface.
func (im *Image) BufferBytes() []byte {
	return im.data
}

// Region copies the half-open pixel rectangle [x0,x1) x [y0,y1) into a new
// image with the same channel count and element type.
func (im *Image) Region(x0, y0, x1, y1 int) (*Image, error) {
	if x0 < 0 || y0 < 0 || x1 > im.size.Width || y1 > im.size.Height || x0 >= x1 || y0 >= y1 {
		return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d) of %s",
			ErrInvalidImage, x0, y0, x1, y1, im.size)
	}

	out := ImageSize{Width: x1 - x0, Height: y1 - y0}
	px := im.PixelStride()
	rowStride := im.RowStride()
	data := make([]byte, out.Pixels()*px)

	for y := y0; y < y1; y++ {
		src := im.data[y*rowStride+x0*px : y*rowStride+x1*px]
		copy(data[(y-y0)*out.Width*px:], src)
	}
	return NewImage(data, out, im.channels, im.dtype)
}

// Clone copies the image, buffer included.
func (im *Image) Clone() *Image {
	data := make([]byte, len(im.data))
	copy(data, im.data)
	out, _ := NewImage(data, im.size, im.channels, im.dtype)
	return out
}

// EqualContent reports byte-for-byte equality of two images with the same
// structural metadata. This is the O(size) deep comparison; callers that
// only need probable equality should compare digests instead.
func (im *Image) EqualContent(other *Image) bool {
	if other == nil {
		return false
	}
	if im.size != other.size || im.channels != other.channels || im.dtype != other.dtype {
		return false
	}
	return bytes.Equal(im.data, other.data)
}
