package geometry

import (
	"errors"
	"math"
)

// Point is a single 2D coordinate.
type Point struct {
	X, Y float64
}

// Points is an ordered sequence of 2D coordinates. Equality and hashing are
// order-sensitive; the sequence is treated as immutable after construction.
type Points []Point

// NewPoints copies the given coordinates into a new sequence. Zero points is
// a valid sequence.
func NewPoints(pts ...Point) Points {
	out := make(Points, len(pts))
	copy(out, pts)
	return out
}

// Len returns the number of points.
func (p Points) Len() int {
	return len(p)
}

// At returns the i-th point.
func (p Points) At(i int) Point {
	return p[i]
}

// Equal reports order-sensitive value equality.
func (p Points) Equal(o Points) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Bounds returns the tight bounding box of the points, declared in the given
// space. An empty sequence has no bounds.
func (p Points) Bounds(space Space) (BoundingBox, error) {
	if len(p) == 0 {
		return BoundingBox{}, &InvalidGeometryError{
			Kind:   "points",
			Reason: errors.New("cannot bound an empty point sequence"),
		}
	}
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		xmin = math.Min(xmin, pt.X)
		ymin = math.Min(ymin, pt.Y)
		xmax = math.Max(xmax, pt.X)
		ymax = math.Max(ymax, pt.Y)
	}
	return NewBoundingBox(xmin, ymin, xmax, ymax, space)
}

// TupleTag implements the hasher's Tuple interface.
func (p Points) TupleTag() string {
	return "points"
}

// TupleScalars implements the hasher's Tuple interface: coordinates
// flattened in sequence order.
func (p Points) TupleScalars() []float64 {
	out := make([]float64, 0, len(p)*2)
	for _, pt := range p {
		out = append(out, pt.X, pt.Y)
	}
	return out
}
