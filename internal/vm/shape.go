package vm

// Shape is the lane interpretation a primitive applies to its operands. Scalar shapes are one lane of their type.
type Shape byte

const (
	ShapeI32 Shape = iota + 1
	ShapeI64
	ShapeF32
	ShapeF64
	ShapeV128
	ShapeI8x16
	ShapeI16x8
	ShapeI32x4
	ShapeI64x2
	ShapeF32x4
	ShapeF64x2
)

var shapeNames = [...]string{
	ShapeI32:   "i32",
	ShapeI64:   "i64",
	ShapeF32:   "f32",
	ShapeF64:   "f64",
	ShapeV128:  "v128",
	ShapeI8x16: "i8x16",
	ShapeI16x8: "i16x8",
	ShapeI32x4: "i32x4",
	ShapeI64x2: "i64x2",
	ShapeF32x4: "f32x4",
	ShapeF64x2: "f64x2",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) && shapeNames[s] != "" {
		return shapeNames[s]
	}
	return "shape?"
}

// IsVector returns true for ShapeV128 and the lane shapes.
func (s Shape) IsVector() bool {
	return s >= ShapeV128
}

// Type returns the type of an operand of this shape.
func (s Shape) Type() Type {
	switch s {
	case ShapeI32:
		return TypeI32
	case ShapeI64:
		return TypeI64
	case ShapeF32:
		return TypeF32
	case ShapeF64:
		return TypeF64
	}
	return TypeV128
}

// LaneType returns the type one lane is read as or written from, i8 and i16 lanes being widened to i32.
func (s Shape) LaneType() Type {
	switch s {
	case ShapeI8x16, ShapeI16x8, ShapeI32x4:
		return TypeI32
	case ShapeI64x2:
		return TypeI64
	case ShapeF32x4:
		return TypeF32
	case ShapeF64x2:
		return TypeF64
	}
	return s.Type()
}

// Lanes returns the lane count of a vector shape, or 1.
func (s Shape) Lanes() int {
	switch s {
	case ShapeI8x16:
		return 16
	case ShapeI16x8:
		return 8
	case ShapeI32x4, ShapeF32x4:
		return 4
	case ShapeI64x2, ShapeF64x2:
		return 2
	}
	return 1
}

// LaneBits returns the lane width in bits.
func (s Shape) LaneBits() uint {
	switch s {
	case ShapeI32, ShapeF32:
		return 32
	case ShapeI64, ShapeF64:
		return 64
	}
	return 128 / uint(s.Lanes())
}
