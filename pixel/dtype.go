package pixel

// DType identifies the element type of an image buffer. It is part of the
// buffer's structural signature: two buffers with identical bytes but
// different element types hash differently.
type DType uint8

const (
	// DTypeInvalid is the zero value and never valid for a constructed image.
	DTypeInvalid DType = iota
	DTypeUint8
	DTypeUint16
	DTypeUint32
	DTypeInt8
	DTypeInt16
	DTypeInt32
	DTypeFloat32
	DTypeFloat64
)

// Size returns the element width in bytes, or 0 for an invalid DType.
func (d DType) Size() int {
	switch d {
	case DTypeUint8, DTypeInt8:
		return 1
	case DTypeUint16, DTypeInt16:
		return 2
	case DTypeUint32, DTypeInt32, DTypeFloat32:
		return 4
	case DTypeFloat64:
		return 8
	default:
		return 0
	}
}

// String returns the short element tag used in structural signatures.
func (d DType) String() string {
	switch d {
	case DTypeUint8:
		return "u8"
	case DTypeUint16:
		return "u16"
	case DTypeUint32:
		return "u32"
	case DTypeInt8:
		return "i8"
	case DTypeInt16:
		return "i16"
	case DTypeInt32:
		return "i32"
	case DTypeFloat32:
		return "f32"
	case DTypeFloat64:
		return "f64"
	default:
		return "invalid"
	}
}

// Valid reports whether d is one of the defined element types.
func (d DType) Valid() bool {
	return d.Size() > 0
}
