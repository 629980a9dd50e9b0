package vm

import (
	"math"

	"github.com/wasmlower/wasmlower/internal/moremath"
)

func registerVector(r registry) {
	registerBitwise(r)
	registerIntShape[int8, uint8](r, ShapeI8x16)
	registerIntShape[int16, uint16](r, ShapeI16x8)
	registerIntShape[int32, uint32](r, ShapeI32x4)
	registerIntShape[int64, uint64](r, ShapeI64x2)
	registerFloatShape[float32, uint32](r, ShapeF32x4, moremath.WasmCompatMin32, moremath.WasmCompatMax32, moremath.WasmCompatNearestF32)
	registerFloatShape[float64, uint64](r, ShapeF64x2, moremath.WasmCompatMin, moremath.WasmCompatMax, moremath.WasmCompatNearestF64)

	registerWiden[int8, uint8, int16, uint16](r, ShapeI16x8)
	registerWiden[int16, uint16, int32, uint32](r, ShapeI32x4)
	registerWiden[int32, uint32, int64, uint64](r, ShapeI64x2)

	v2 := binaryOf(TypeV128)
	r.add(PrimNarrowS, ShapeI8x16, v2, TypeV128, func(a []Value) Value {
		return narrow[int16, int8](a[0], a[1], math.MinInt8, math.MaxInt8)
	})
	r.add(PrimNarrowU, ShapeI8x16, v2, TypeV128, func(a []Value) Value {
		return narrow[int16, uint8](a[0], a[1], 0, math.MaxUint8)
	})
	r.add(PrimNarrowWrap, ShapeI8x16, v2, TypeV128, func(a []Value) Value {
		return narrowWrap[uint16, uint8](a[0], a[1])
	})
	r.add(PrimNarrowS, ShapeI16x8, v2, TypeV128, func(a []Value) Value {
		return narrow[int32, int16](a[0], a[1], math.MinInt16, math.MaxInt16)
	})
	r.add(PrimNarrowU, ShapeI16x8, v2, TypeV128, func(a []Value) Value {
		return narrow[int32, uint16](a[0], a[1], 0, math.MaxUint16)
	})
	r.add(PrimNarrowWrap, ShapeI16x8, v2, TypeV128, func(a []Value) Value {
		return narrowWrap[uint32, uint16](a[0], a[1])
	})
	r.add(PrimNarrowWrap, ShapeI32x4, v2, TypeV128, func(a []Value) Value {
		return narrowWrap[uint64, uint32](a[0], a[1])
	})

	r.add(PrimShuffle, ShapeI8x16, v2, TypeV128, func(a []Value) Value {
		src, ctrl := a[0].Bytes(), a[1].Bytes()
		var out [16]byte
		for i, c := range ctrl {
			if c < 16 {
				out[i] = src[c]
			}
		}
		return V128FromBytes(out)
	})

	registerVectorConversions(r)
}

func registerBitwise(r registry) {
	v1, v2 := unaryOf(TypeV128), binaryOf(TypeV128)
	bin := func(op PrimOp, f func(x, y uint64) uint64) {
		r.add(op, ShapeV128, v2, TypeV128, func(a []Value) Value {
			return V128(f(a[0].Lo, a[1].Lo), f(a[0].Hi, a[1].Hi))
		})
	}
	bin(PrimAnd, func(x, y uint64) uint64 { return x & y })
	bin(PrimOr, func(x, y uint64) uint64 { return x | y })
	bin(PrimXor, func(x, y uint64) uint64 { return x ^ y })
	bin(PrimAndNot, func(x, y uint64) uint64 { return x &^ y })
	r.add(PrimNot, ShapeV128, v1, TypeV128, func(a []Value) Value {
		return V128(^a[0].Lo, ^a[0].Hi)
	})
	r.add(PrimSelect, ShapeV128, []Type{TypeV128, TypeV128, TypeV128}, TypeV128, func(a []Value) Value {
		m := a[2]
		return V128(a[0].Lo&m.Lo|a[1].Lo&^m.Lo, a[0].Hi&m.Hi|a[1].Hi&^m.Hi)
	})
}

// registerIntShape registers the lane-wise integer primitives of shape, whose lanes are S when signed and U when
// unsigned.
func registerIntShape[S, U intLane](r registry, shape Shape) {
	bits := shape.LaneBits()
	laneType := shape.LaneType()
	v1, v2 := unaryOf(TypeV128), binaryOf(TypeV128)

	binU := func(op PrimOp, f func(x, y U) U) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return zipLanes(a[0], a[1], f) })
	}
	binS := func(op PrimOp, f func(x, y S) S) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return zipLanes(a[0], a[1], f) })
	}
	cmpU := func(op PrimOp, f func(x, y U) bool) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return compareLanes(a[0], a[1], f) })
	}
	cmpS := func(op PrimOp, f func(x, y S) bool) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return compareLanes(a[0], a[1], f) })
	}
	shift := func(op PrimOp, f func(v Value, n uint) Value) {
		r.add(op, shape, []Type{TypeV128, TypeI32}, TypeV128, func(a []Value) Value {
			return f(a[0], uint(a[1].I32())%bits)
		})
	}

	binU(PrimAdd, func(x, y U) U { return x + y })
	binU(PrimSub, func(x, y U) U { return x - y })
	if shape != ShapeI8x16 {
		binU(PrimMul, func(x, y U) U { return x * y })
	}
	binS(PrimMin, minOf[S])
	binU(PrimMinU, minOf[U])
	binS(PrimMax, maxOf[S])
	binU(PrimMaxU, maxOf[U])

	cmpU(PrimEq, func(x, y U) bool { return x == y })
	cmpS(PrimLt, func(x, y S) bool { return x < y })
	cmpU(PrimLtU, func(x, y U) bool { return x < y })
	cmpS(PrimGt, func(x, y S) bool { return x > y })
	cmpU(PrimGtU, func(x, y U) bool { return x > y })
	cmpS(PrimLe, func(x, y S) bool { return x <= y })
	cmpU(PrimLeU, func(x, y U) bool { return x <= y })
	cmpS(PrimGe, func(x, y S) bool { return x >= y })
	cmpU(PrimGeU, func(x, y U) bool { return x >= y })

	r.add(PrimAbs, shape, v1, TypeV128, func(a []Value) Value {
		return mapLanes(a[0], func(x S) S {
			if x < 0 {
				return -x
			}
			return x
		})
	})
	r.add(PrimNeg, shape, v1, TypeV128, func(a []Value) Value {
		return mapLanes(a[0], func(x S) S { return -x })
	})

	shift(PrimShl, func(v Value, n uint) Value { return mapLanes(v, func(x U) U { return x << n }) })
	shift(PrimShrS, func(v Value, n uint) Value { return mapLanes(v, func(x S) S { return x >> n }) })
	shift(PrimShrU, func(v Value, n uint) Value { return mapLanes(v, func(x U) U { return x >> n }) })

	r.add(PrimExtractMSB, shape, v1, TypeI32, func(a []Value) Value {
		var mask uint32
		for i, x := range lanesOf[U](a[0]) {
			mask |= uint32(x>>(bits-1)&1) << i
		}
		return I32(mask)
	})

	r.add(PrimSplat, shape, unaryOf(laneType), TypeV128, func(a []Value) Value {
		ls := make([]U, shape.Lanes())
		for i := range ls {
			ls[i] = U(a[0].Lo)
		}
		return fromLanes(ls)
	})

	toScalar := func(x int64) Value {
		if laneType == TypeI64 {
			return I64(uint64(x))
		}
		return I32(uint32(x))
	}
	r.add(PrimExtractLane, shape, []Type{TypeV128, TypeI32}, laneType, func(a []Value) Value {
		return toScalar(int64(lanesOf[S](a[0])[a[1].I32()]))
	})
	if bits < 32 {
		r.add(PrimExtractLaneU, shape, []Type{TypeV128, TypeI32}, laneType, func(a []Value) Value {
			return I32(uint32(lanesOf[U](a[0])[a[1].I32()]))
		})
	}
	r.add(PrimReplaceLane, shape, []Type{TypeV128, TypeI32, laneType}, TypeV128, func(a []Value) Value {
		ls := lanesOf[U](a[0])
		ls[a[1].I32()] = U(a[2].Lo)
		return fromLanes(ls)
	})
}

// registerFloatShape registers the lane-wise float primitives of shape, whose lanes are F, or U for sign bit
// manipulation.
func registerFloatShape[F float32 | float64, U uint32 | uint64](r registry, shape Shape, fmin, fmax func(x, y F) F, nearest func(F) F) {
	laneType := shape.LaneType()
	v1, v2 := unaryOf(TypeV128), binaryOf(TypeV128)
	sign := U(1) << (shape.LaneBits() - 1)

	bin := func(op PrimOp, f func(x, y F) F) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return zipLanes(a[0], a[1], f) })
	}
	cmp := func(op PrimOp, f func(x, y F) bool) {
		r.add(op, shape, v2, TypeV128, func(a []Value) Value { return compareLanes(a[0], a[1], f) })
	}
	un := func(op PrimOp, f func(x float64) float64) {
		r.add(op, shape, v1, TypeV128, func(a []Value) Value {
			return mapLanes(a[0], func(x F) F { return F(f(float64(x))) })
		})
	}

	bin(PrimAdd, func(x, y F) F { return x + y })
	bin(PrimSub, func(x, y F) F { return x - y })
	bin(PrimMul, func(x, y F) F { return x * y })
	bin(PrimDiv, func(x, y F) F { return x / y })
	bin(PrimMin, fmin)
	bin(PrimMax, fmax)

	cmp(PrimEq, func(x, y F) bool { return x == y })
	cmp(PrimLt, func(x, y F) bool { return x < y })
	cmp(PrimGt, func(x, y F) bool { return x > y })
	cmp(PrimLe, func(x, y F) bool { return x <= y })
	cmp(PrimGe, func(x, y F) bool { return x >= y })

	r.add(PrimAbs, shape, v1, TypeV128, func(a []Value) Value {
		return mapLanes(a[0], func(x U) U { return x &^ sign })
	})
	r.add(PrimNeg, shape, v1, TypeV128, func(a []Value) Value {
		return mapLanes(a[0], func(x U) U { return x ^ sign })
	})
	un(PrimSqrt, math.Sqrt)
	un(PrimCeil, math.Ceil)
	un(PrimFloor, math.Floor)
	un(PrimTrunc, math.Trunc)
	r.add(PrimNearest, shape, v1, TypeV128, func(a []Value) Value { return mapLanes(a[0], nearest) })

	r.add(PrimSplat, shape, unaryOf(laneType), TypeV128, func(a []Value) Value {
		ls := make([]U, shape.Lanes())
		for i := range ls {
			ls[i] = U(a[0].Lo)
		}
		return fromLanes(ls)
	})
	r.add(PrimExtractLane, shape, []Type{TypeV128, TypeI32}, laneType, func(a []Value) Value {
		return I64(uint64(lanesOf[U](a[0])[a[1].I32()]))
	})
	r.add(PrimReplaceLane, shape, []Type{TypeV128, TypeI32, laneType}, TypeV128, func(a []Value) Value {
		ls := lanesOf[U](a[0])
		ls[a[1].I32()] = U(a[2].Lo)
		return fromLanes(ls)
	})
}

// registerWiden registers the widening primitives producing shape from lanes half as wide.
func registerWiden[FromS, FromU, ToS, ToU lane](r registry, shape Shape) {
	v1 := unaryOf(TypeV128)
	r.add(PrimWidenLowS, shape, v1, TypeV128, func(a []Value) Value { return widen[FromS, ToS](a[0], false) })
	r.add(PrimWidenHighS, shape, v1, TypeV128, func(a []Value) Value { return widen[FromS, ToS](a[0], true) })
	r.add(PrimWidenLowU, shape, v1, TypeV128, func(a []Value) Value { return widen[FromU, ToU](a[0], false) })
	r.add(PrimWidenHighU, shape, v1, TypeV128, func(a []Value) Value { return widen[FromU, ToU](a[0], true) })
}

func narrowWrap[From, To intLane](a, b Value) Value {
	xs := append(lanesOf[From](a), lanesOf[From](b)...)
	out := make([]To, len(xs))
	for i, x := range xs {
		out[i] = To(x)
	}
	return fromLanes(out)
}

func registerVectorConversions(r registry) {
	v1 := unaryOf(TypeV128)
	conv := func(op PrimOp, shape Shape, f func(a Value) Value) {
		r.add(op, shape, v1, TypeV128, func(a []Value) Value { return f(a[0]) })
	}

	conv(PrimTruncSatF32S, ShapeI32x4, func(a Value) Value {
		return convertLanes(lanesOf[float32](a), func(x float32) int32 { return moremath.TruncSatI32(float64(x)) })
	})
	conv(PrimTruncSatF32U, ShapeI32x4, func(a Value) Value {
		return convertLanes(lanesOf[float32](a), func(x float32) uint32 { return moremath.TruncSatU32(float64(x)) })
	})
	conv(PrimTruncSatF64S, ShapeI64x2, func(a Value) Value {
		return convertLanes(lanesOf[float64](a), moremath.TruncSatI64)
	})
	conv(PrimTruncSatF64U, ShapeI64x2, func(a Value) Value {
		return convertLanes(lanesOf[float64](a), moremath.TruncSatU64)
	})
	conv(PrimConvertI32S, ShapeF32x4, func(a Value) Value {
		return convertLanes(lanesOf[int32](a), func(x int32) float32 { return float32(x) })
	})
	conv(PrimConvertI32U, ShapeF32x4, func(a Value) Value {
		return convertLanes(lanesOf[uint32](a), func(x uint32) float32 { return float32(x) })
	})
	// The f64x2 results only have room for the low two i32 lanes.
	conv(PrimConvertI32S, ShapeF64x2, func(a Value) Value {
		return convertLanes(lanesOf[int32](a)[:2], func(x int32) float64 { return float64(x) })
	})
	conv(PrimConvertI32U, ShapeF64x2, func(a Value) Value {
		return convertLanes(lanesOf[uint32](a)[:2], func(x uint32) float64 { return float64(x) })
	})
	conv(PrimDemote, ShapeF32x4, func(a Value) Value {
		return convertLanes(lanesOf[float64](a), func(x float64) float32 { return float32(x) })
	})
	conv(PrimPromote, ShapeF64x2, func(a Value) Value {
		return convertLanes(lanesOf[float32](a)[:2], func(x float32) float64 { return float64(x) })
	})
}

func convertLanes[From, To lane](xs []From, f func(From) To) Value {
	out := make([]To, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return fromLanes(out)
}

// SplatValue returns the vector with every lane of shape holding the low bits of x.
func SplatValue(shape Shape, x uint64) Value {
	var b [16]byte
	size := int(shape.LaneBits() / 8)
	for i := 0; i < 16; i += size {
		for j := 0; j < size; j++ {
			b[i+j] = byte(x >> (8 * j))
		}
	}
	return V128FromBytes(b)
}
