package geometry

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pixel-cache/pixel"
)

// BoundingBox is an axis-aligned rectangle with min/max coordinates on both
// axes and a declared coordinate space. Two boxes are equal iff their
// coordinates are numerically equal in the same space.
type BoundingBox struct {
	XMin, YMin, XMax, YMax float64
	Space                  Space
}

// NewBoundingBox validates and returns a bounding box. Violations (min > max
// on either axis, coordinates outside the declared space, NaN) fail with
// *InvalidGeometryError.
func NewBoundingBox(xmin, ymin, xmax, ymax float64, space Space) (BoundingBox, error) {
	b := BoundingBox{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax, Space: space}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, &InvalidGeometryError{Kind: "bounding box", Reason: err}
	}
	return b, nil
}

// Validate checks the box invariants and returns the accumulated per-field
// errors, nil when the box is well formed.
func (b BoundingBox) Validate() error {
	errs := validation.Errors{}

	if !b.Space.Valid() {
		errs["space"] = fmt.Errorf("unknown coordinate space %d", uint8(b.Space))
	}

	coords := map[string]float64{
		"xmin": b.XMin, "ymin": b.YMin, "xmax": b.XMax, "ymax": b.YMax,
	}
	for name, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			errs[name] = fmt.Errorf("must be a finite number")
		}
	}
	if len(errs) > 0 {
		return errs.Filter()
	}

	if b.XMax < b.XMin {
		errs["xmax"] = fmt.Errorf("must be >= xmin (%v < %v)", b.XMax, b.XMin)
	}
	if b.YMax < b.YMin {
		errs["ymax"] = fmt.Errorf("must be >= ymin (%v < %v)", b.YMax, b.YMin)
	}

	switch b.Space {
	case SpaceNormalized:
		for name, c := range coords {
			if c < 0 || c > 1 {
				errs[name] = fmt.Errorf("must be within [0,1] in normalized space, got %v", c)
			}
		}
	case SpacePixel:
		for name, c := range coords {
			if c < 0 {
				errs[name] = fmt.Errorf("must be non-negative in pixel space, got %v", c)
			}
		}
	}

	return errs.Filter()
}

// Width returns XMax - XMin.
func (b BoundingBox) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns YMax - YMin.
func (b BoundingBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns Width * Height.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// IsNormalized reports whether the box is declared in [0,1] space.
func (b BoundingBox) IsNormalized() bool {
	return b.Space == SpaceNormalized
}

// Equal reports value equality: same space, numerically equal coordinates.
func (b BoundingBox) Equal(o BoundingBox) bool {
	return b == o
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Intersect returns the overlap of two boxes in the same space. ok is false
// when the spaces differ or the boxes are disjoint.
func (b BoundingBox) Intersect(o BoundingBox) (BoundingBox, bool) {
	if b.Space != o.Space {
		return BoundingBox{}, false
	}
	out := BoundingBox{
		XMin:  math.Max(b.XMin, o.XMin),
		YMin:  math.Max(b.YMin, o.YMin),
		XMax:  math.Min(b.XMax, o.XMax),
		YMax:  math.Min(b.YMax, o.YMax),
		Space: b.Space,
	}
	if out.XMax < out.XMin || out.YMax < out.YMin {
		return BoundingBox{}, false
	}
	return out, true
}

// Union returns the smallest box covering both. Boxes in different spaces
// cannot be combined.
func (b BoundingBox) Union(o BoundingBox) (BoundingBox, error) {
	if b.Space != o.Space {
		return BoundingBox{}, &InvalidGeometryError{
			Kind:   "bounding box",
			Reason: fmt.Errorf("cannot union %s-space and %s-space boxes", b.Space, o.Space),
		}
	}
	return BoundingBox{
		XMin:  math.Min(b.XMin, o.XMin),
		YMin:  math.Min(b.YMin, o.YMin),
		XMax:  math.Max(b.XMax, o.XMax),
		YMax:  math.Max(b.YMax, o.YMax),
		Space: b.Space,
	}, nil
}

// Normalize converts a pixel-space box to [0,1] space relative to size.
// A box that is already normalized is returned unchanged.
func (b BoundingBox) Normalize(size pixel.ImageSize) (BoundingBox, error) {
	if b.Space == SpaceNormalized {
		return b, nil
	}
	if !size.Valid() {
		return BoundingBox{}, &InvalidGeometryError{
			Kind:   "bounding box",
			Reason: fmt.Errorf("cannot normalize against size %s", size),
		}
	}
	return NewBoundingBox(
		b.XMin/float64(size.Width),
		b.YMin/float64(size.Height),
		b.XMax/float64(size.Width),
		b.YMax/float64(size.Height),
		SpaceNormalized,
	)
}

// Denormalize converts a normalized box to pixel space for size. A box that
// is already in pixel space is returned unchanged.
func (b BoundingBox) Denormalize(size pixel.ImageSize) (BoundingBox, error) {
	if b.Space == SpacePixel {
		return b, nil
	}
	if !size.Valid() {
		return BoundingBox{}, &InvalidGeometryError{
			Kind:   "bounding box",
			Reason: fmt.Errorf("cannot denormalize against size %s", size),
		}
	}
	return NewBoundingBox(
		b.XMin*float64(size.Width),
		b.YMin*float64(size.Height),
		b.XMax*float64(size.Width),
		b.YMax*float64(size.Height),
		SpacePixel,
	)
}

// PixelRect returns the half-open integer rectangle covering the box within
// an image of the given size: outer bounds rounded outward and clamped.
func (b BoundingBox) PixelRect(size pixel.ImageSize) (x0, y0, x1, y1 int, err error) {
	pb, err := b.Denormalize(size)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	x0 = int(math.Floor(pb.XMin))
	y0 = int(math.Floor(pb.YMin))
	x1 = int(math.Ceil(pb.XMax))
	y1 = int(math.Ceil(pb.YMax))
	if x1 > size.Width {
		x1 = size.Width
	}
	if y1 > size.Height {
		y1 = size.Height
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1, nil
}

// String renders the box for logs, e.g. "bbox pixel (1,2)-(3,4)".
func (b BoundingBox) String() string {
	return fmt.Sprintf("bbox %s (%g,%g)-(%g,%g)", b.Space, b.XMin, b.YMin, b.XMax, b.YMax)
}

// TupleTag implements the hasher's Tuple interface.
func (b BoundingBox) TupleTag() string {
	return "bbox"
}

// TupleScalars implements the hasher's Tuple interface. The space is part of
// the content: a pixel box and a normalized box with equal coordinates hash
// differently.
func (b BoundingBox) TupleScalars() []float64 {
	return []float64{float64(b.Space), b.XMin, b.YMin, b.XMax, b.YMax}
}
