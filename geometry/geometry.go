// Package geometry provides validated coordinate value types. BoundingBox
// and Points are immutable values with content-based equality; both
// participate in content hashing as scalar tuples.
package geometry

import "fmt"

// Space declares the coordinate space a geometry value lives in.
type Space uint8

const (
	// SpacePixel means coordinates are absolute pixel positions.
	SpacePixel Space = iota
	// SpaceNormalized means coordinates lie in [0,1] relative to the image.
	SpaceNormalized
)

// String returns "pixel" or "normalized".
func (s Space) String() string {
	switch s {
	case SpacePixel:
		return "pixel"
	case SpaceNormalized:
		return "normalized"
	default:
		return fmt.Sprintf("space(%d)", uint8(s))
	}
}

// Valid reports whether s is a declared coordinate space.
func (s Space) Valid() bool {
	return s == SpacePixel || s == SpaceNormalized
}

// InvalidGeometryError is returned when a geometry value fails construction
// validation. Reason carries the per-field validation errors.
type InvalidGeometryError struct {
	Kind   string
	Reason error
}

// Error implements the error interface.
func (e *InvalidGeometryError) Error() string {
	return "geometry: invalid " + e.Kind + ": " + e.Reason.Error()
}

// Unwrap exposes the underlying validation errors.
func (e *InvalidGeometryError) Unwrap() error {
	return e.Reason
}
