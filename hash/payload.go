package hash

// Digester is implemented by values that carry their own content digest,
// typically the hashable wrapper types. The hasher mixes the reported digest
// instead of re-walking the wrapped content.
type Digester interface {
	Digest() (Digest, error)
}

// Buffer is implemented by raw array-backed payloads such as pixel images.
// The structural signature (shape, element kind, element width) is hashed
// ahead of the content bytes so two buffers with identical bytes but
// different declared geometry never collide.
type Buffer interface {
	// BufferShape returns the logical dimensions, e.g. [height, width,
	// channels] for an image.
	BufferShape() []int

	// BufferElem returns a short element type tag such as "u8" or "f32".
	BufferElem() string

	// BufferWidth returns the element width in bytes.
	BufferWidth() int

	// BufferBytes returns the raw content. The slice is read, never retained.
	BufferBytes() []byte
}

// Tuple is implemented by geometry value types whose content is a fixed,
// ordered set of scalars (bounding boxes, point sequences). The tag
// discriminates between tuple kinds so a box and a four-point sequence with
// the same coordinates hash differently.
type Tuple interface {
	TupleTag() string
	TupleScalars() []float64
}

// UnsupportedPayloadTypeError is returned when a payload cannot be
// canonically serialized. It is never coerced into a partial digest.
type UnsupportedPayloadTypeError struct {
	// Type is the Go type of the offending payload.
	Type string
}

// Error implements the error interface.
func (e *UnsupportedPayloadTypeError) Error() string {
	return "hash: unsupported payload type " + e.Type
}
