package vm

import (
	"math"
	"math/bits"

	"github.com/wasmlower/wasmlower/internal/moremath"
	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

type registry map[PrimKey]*Primitive

func (r registry) add(op PrimOp, shape Shape, params []Type, result Type, fn func(args []Value) Value) {
	key := PrimKey{Op: op, Shape: shape}
	if _, ok := r[key]; ok {
		panic("BUG: duplicate primitive " + key.String())
	}
	r[key] = &Primitive{PrimKey: key, Params: params, Result: result, fn: fn}
}

func unaryOf(t Type) []Type  { return []Type{t} }
func binaryOf(t Type) []Type { return []Type{t, t} }

const (
	f32SignBit = uint32(1) << 31
	f64SignBit = uint64(1) << 63
)

func registerScalar(r registry) {
	registerI32(r)
	registerI64(r)
	registerF32(r)
	registerF64(r)
	registerConversions(r)

	r.add(PrimAddU32Checked, ShapeI32, binaryOf(TypeI32), TypeI32, func(a []Value) Value {
		sum := uint64(a[0].I32()) + uint64(a[1].I32())
		if sum > math.MaxUint32 {
			trap(wasmruntime.ErrRuntimeOutOfBoundsMemoryAccess)
		}
		return I32(uint32(sum))
	})
}

func registerI32(r registry) {
	bin := func(op PrimOp, f func(x, y uint32) uint32) {
		r.add(op, ShapeI32, binaryOf(TypeI32), TypeI32, func(a []Value) Value {
			return I32(f(a[0].I32(), a[1].I32()))
		})
	}
	cmp := func(op PrimOp, f func(x, y uint32) bool) {
		r.add(op, ShapeI32, binaryOf(TypeI32), TypeI32, func(a []Value) Value {
			return Bool(f(a[0].I32(), a[1].I32()))
		})
	}
	un := func(op PrimOp, f func(x uint32) uint32) {
		r.add(op, ShapeI32, unaryOf(TypeI32), TypeI32, func(a []Value) Value {
			return I32(f(a[0].I32()))
		})
	}

	bin(PrimAdd, func(x, y uint32) uint32 { return x + y })
	bin(PrimSub, func(x, y uint32) uint32 { return x - y })
	bin(PrimMul, func(x, y uint32) uint32 { return x * y })
	bin(PrimDiv, func(x, y uint32) uint32 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		if int32(x) == math.MinInt32 && int32(y) == -1 {
			trap(wasmruntime.ErrRuntimeIntegerOverflow)
		}
		return uint32(int32(x) / int32(y))
	})
	bin(PrimDivU, func(x, y uint32) uint32 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x / y
	})
	bin(PrimRem, func(x, y uint32) uint32 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return uint32(int32(x) % int32(y))
	})
	bin(PrimRemU, func(x, y uint32) uint32 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x % y
	})
	bin(PrimAnd, func(x, y uint32) uint32 { return x & y })
	bin(PrimOr, func(x, y uint32) uint32 { return x | y })
	bin(PrimXor, func(x, y uint32) uint32 { return x ^ y })
	bin(PrimShl, func(x, y uint32) uint32 { return x << (y & 31) })
	bin(PrimShrS, func(x, y uint32) uint32 { return uint32(int32(x) >> (y & 31)) })
	bin(PrimShrU, func(x, y uint32) uint32 { return x >> (y & 31) })
	bin(PrimRotl, func(x, y uint32) uint32 { return bits.RotateLeft32(x, int(y&31)) })
	bin(PrimRotr, func(x, y uint32) uint32 { return bits.RotateLeft32(x, -int(y&31)) })

	cmp(PrimEq, func(x, y uint32) bool { return x == y })
	cmp(PrimNe, func(x, y uint32) bool { return x != y })
	cmp(PrimLt, func(x, y uint32) bool { return int32(x) < int32(y) })
	cmp(PrimLtU, func(x, y uint32) bool { return x < y })
	cmp(PrimGt, func(x, y uint32) bool { return int32(x) > int32(y) })
	cmp(PrimGtU, func(x, y uint32) bool { return x > y })
	cmp(PrimLe, func(x, y uint32) bool { return int32(x) <= int32(y) })
	cmp(PrimLeU, func(x, y uint32) bool { return x <= y })
	cmp(PrimGe, func(x, y uint32) bool { return int32(x) >= int32(y) })
	cmp(PrimGeU, func(x, y uint32) bool { return x >= y })

	un(PrimEqz, func(x uint32) uint32 { return b2u32(x == 0) })
	un(PrimClz, func(x uint32) uint32 { return uint32(bits.LeadingZeros32(x)) })
	un(PrimCtz, func(x uint32) uint32 { return uint32(bits.TrailingZeros32(x)) })
	un(PrimPopcnt, func(x uint32) uint32 { return uint32(bits.OnesCount32(x)) })
	un(PrimExtend8S, func(x uint32) uint32 { return uint32(int32(int8(x))) })
	un(PrimExtend16S, func(x uint32) uint32 { return uint32(int32(int16(x))) })
}

func registerI64(r registry) {
	bin := func(op PrimOp, f func(x, y uint64) uint64) {
		r.add(op, ShapeI64, binaryOf(TypeI64), TypeI64, func(a []Value) Value {
			return I64(f(a[0].I64(), a[1].I64()))
		})
	}
	cmp := func(op PrimOp, f func(x, y uint64) bool) {
		r.add(op, ShapeI64, binaryOf(TypeI64), TypeI32, func(a []Value) Value {
			return Bool(f(a[0].I64(), a[1].I64()))
		})
	}
	un := func(op PrimOp, f func(x uint64) uint64) {
		r.add(op, ShapeI64, unaryOf(TypeI64), TypeI64, func(a []Value) Value {
			return I64(f(a[0].I64()))
		})
	}

	bin(PrimAdd, func(x, y uint64) uint64 { return x + y })
	bin(PrimSub, func(x, y uint64) uint64 { return x - y })
	bin(PrimMul, func(x, y uint64) uint64 { return x * y })
	bin(PrimDiv, func(x, y uint64) uint64 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		if int64(x) == math.MinInt64 && int64(y) == -1 {
			trap(wasmruntime.ErrRuntimeIntegerOverflow)
		}
		return uint64(int64(x) / int64(y))
	})
	bin(PrimDivU, func(x, y uint64) uint64 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x / y
	})
	bin(PrimRem, func(x, y uint64) uint64 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return uint64(int64(x) % int64(y))
	})
	bin(PrimRemU, func(x, y uint64) uint64 {
		if y == 0 {
			trap(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x % y
	})
	bin(PrimAnd, func(x, y uint64) uint64 { return x & y })
	bin(PrimOr, func(x, y uint64) uint64 { return x | y })
	bin(PrimXor, func(x, y uint64) uint64 { return x ^ y })
	bin(PrimShl, func(x, y uint64) uint64 { return x << (y & 63) })
	bin(PrimShrS, func(x, y uint64) uint64 { return uint64(int64(x) >> (y & 63)) })
	bin(PrimShrU, func(x, y uint64) uint64 { return x >> (y & 63) })
	bin(PrimRotl, func(x, y uint64) uint64 { return bits.RotateLeft64(x, int(y&63)) })
	bin(PrimRotr, func(x, y uint64) uint64 { return bits.RotateLeft64(x, -int(y&63)) })

	cmp(PrimEq, func(x, y uint64) bool { return x == y })
	cmp(PrimNe, func(x, y uint64) bool { return x != y })
	cmp(PrimLt, func(x, y uint64) bool { return int64(x) < int64(y) })
	cmp(PrimLtU, func(x, y uint64) bool { return x < y })
	cmp(PrimGt, func(x, y uint64) bool { return int64(x) > int64(y) })
	cmp(PrimGtU, func(x, y uint64) bool { return x > y })
	cmp(PrimLe, func(x, y uint64) bool { return int64(x) <= int64(y) })
	cmp(PrimLeU, func(x, y uint64) bool { return x <= y })
	cmp(PrimGe, func(x, y uint64) bool { return int64(x) >= int64(y) })
	cmp(PrimGeU, func(x, y uint64) bool { return x >= y })

	r.add(PrimEqz, ShapeI64, unaryOf(TypeI64), TypeI32, func(a []Value) Value { return Bool(a[0].I64() == 0) })
	un(PrimClz, func(x uint64) uint64 { return uint64(bits.LeadingZeros64(x)) })
	un(PrimCtz, func(x uint64) uint64 { return uint64(bits.TrailingZeros64(x)) })
	un(PrimPopcnt, func(x uint64) uint64 { return uint64(bits.OnesCount64(x)) })
	un(PrimExtend8S, func(x uint64) uint64 { return uint64(int64(int8(x))) })
	un(PrimExtend16S, func(x uint64) uint64 { return uint64(int64(int16(x))) })
	un(PrimExtend32S, func(x uint64) uint64 { return uint64(int64(int32(x))) })
}

func registerF32(r registry) {
	bin := func(op PrimOp, f func(x, y float32) float32) {
		r.add(op, ShapeF32, binaryOf(TypeF32), TypeF32, func(a []Value) Value {
			return F32(f(a[0].F32(), a[1].F32()))
		})
	}
	cmp := func(op PrimOp, f func(x, y float32) bool) {
		r.add(op, ShapeF32, binaryOf(TypeF32), TypeI32, func(a []Value) Value {
			return Bool(f(a[0].F32(), a[1].F32()))
		})
	}
	un := func(op PrimOp, f func(x float32) float32) {
		r.add(op, ShapeF32, unaryOf(TypeF32), TypeF32, func(a []Value) Value {
			return F32(f(a[0].F32()))
		})
	}
	// Sign manipulation works on the bits so that NaN payloads are kept.
	bitsUn := func(op PrimOp, f func(x uint32) uint32) {
		r.add(op, ShapeF32, unaryOf(TypeF32), TypeF32, func(a []Value) Value {
			return I32(f(a[0].F32Bits()))
		})
	}

	bin(PrimAdd, func(x, y float32) float32 { return x + y })
	bin(PrimSub, func(x, y float32) float32 { return x - y })
	bin(PrimMul, func(x, y float32) float32 { return x * y })
	bin(PrimDiv, func(x, y float32) float32 { return x / y })
	bin(PrimMin, moremath.WasmCompatMin32)
	bin(PrimMax, moremath.WasmCompatMax32)
	r.add(PrimCopysign, ShapeF32, binaryOf(TypeF32), TypeF32, func(a []Value) Value {
		return I32(a[0].F32Bits()&^f32SignBit | a[1].F32Bits()&f32SignBit)
	})

	cmp(PrimEq, func(x, y float32) bool { return x == y })
	cmp(PrimNe, func(x, y float32) bool { return x != y })
	cmp(PrimLt, func(x, y float32) bool { return x < y })
	cmp(PrimGt, func(x, y float32) bool { return x > y })
	cmp(PrimLe, func(x, y float32) bool { return x <= y })
	cmp(PrimGe, func(x, y float32) bool { return x >= y })

	bitsUn(PrimAbs, func(x uint32) uint32 { return x &^ f32SignBit })
	bitsUn(PrimNeg, func(x uint32) uint32 { return x ^ f32SignBit })
	un(PrimCeil, func(x float32) float32 { return float32(math.Ceil(float64(x))) })
	un(PrimFloor, func(x float32) float32 { return float32(math.Floor(float64(x))) })
	un(PrimTrunc, func(x float32) float32 { return float32(math.Trunc(float64(x))) })
	un(PrimNearest, moremath.WasmCompatNearestF32)
	un(PrimSqrt, func(x float32) float32 { return float32(math.Sqrt(float64(x))) })
}

func registerF64(r registry) {
	bin := func(op PrimOp, f func(x, y float64) float64) {
		r.add(op, ShapeF64, binaryOf(TypeF64), TypeF64, func(a []Value) Value {
			return F64(f(a[0].F64(), a[1].F64()))
		})
	}
	cmp := func(op PrimOp, f func(x, y float64) bool) {
		r.add(op, ShapeF64, binaryOf(TypeF64), TypeI32, func(a []Value) Value {
			return Bool(f(a[0].F64(), a[1].F64()))
		})
	}
	un := func(op PrimOp, f func(x float64) float64) {
		r.add(op, ShapeF64, unaryOf(TypeF64), TypeF64, func(a []Value) Value {
			return F64(f(a[0].F64()))
		})
	}
	bitsUn := func(op PrimOp, f func(x uint64) uint64) {
		r.add(op, ShapeF64, unaryOf(TypeF64), TypeF64, func(a []Value) Value {
			return I64(f(a[0].I64()))
		})
	}

	bin(PrimAdd, func(x, y float64) float64 { return x + y })
	bin(PrimSub, func(x, y float64) float64 { return x - y })
	bin(PrimMul, func(x, y float64) float64 { return x * y })
	bin(PrimDiv, func(x, y float64) float64 { return x / y })
	bin(PrimMin, moremath.WasmCompatMin)
	bin(PrimMax, moremath.WasmCompatMax)
	r.add(PrimCopysign, ShapeF64, binaryOf(TypeF64), TypeF64, func(a []Value) Value {
		return I64(a[0].I64()&^f64SignBit | a[1].I64()&f64SignBit)
	})

	cmp(PrimEq, func(x, y float64) bool { return x == y })
	cmp(PrimNe, func(x, y float64) bool { return x != y })
	cmp(PrimLt, func(x, y float64) bool { return x < y })
	cmp(PrimGt, func(x, y float64) bool { return x > y })
	cmp(PrimLe, func(x, y float64) bool { return x <= y })
	cmp(PrimGe, func(x, y float64) bool { return x >= y })

	bitsUn(PrimAbs, func(x uint64) uint64 { return x &^ f64SignBit })
	bitsUn(PrimNeg, func(x uint64) uint64 { return x ^ f64SignBit })
	un(PrimCeil, math.Ceil)
	un(PrimFloor, math.Floor)
	un(PrimTrunc, math.Trunc)
	un(PrimNearest, moremath.WasmCompatNearestF64)
	un(PrimSqrt, math.Sqrt)
}

// truncChecked traps on NaN, and on a value whose truncation doesn't fit the destination.
func truncChecked(x float64, inRange func(float64) bool) float64 {
	if math.IsNaN(x) {
		trap(wasmruntime.ErrRuntimeInvalidConversionToInteger)
	}
	if !inRange(x) {
		trap(wasmruntime.ErrRuntimeIntegerOverflow)
	}
	return math.Trunc(x)
}

func registerConversions(r registry) {
	conv := func(op PrimOp, shape Shape, from Type, f func(a Value) Value) {
		r.add(op, shape, unaryOf(from), shape.Type(), func(a []Value) Value { return f(a[0]) })
	}
	// fromFloat reads the operand of a float source type as float64, which is exact for f32.
	fromFloat := func(t Type) func(Value) float64 {
		if t == TypeF32 {
			return func(v Value) float64 { return float64(v.F32()) }
		}
		return Value.F64
	}

	conv(PrimWrap, ShapeI32, TypeI64, func(a Value) Value { return I32(uint32(a.I64())) })
	conv(PrimExtendI32S, ShapeI64, TypeI32, func(a Value) Value { return I64(uint64(int64(int32(a.I32())))) })
	conv(PrimExtendI32U, ShapeI64, TypeI32, func(a Value) Value { return I64(uint64(a.I32())) })

	for _, src := range []struct {
		t                Type
		s, u, satS, satU PrimOp
	}{
		{TypeF32, PrimTruncF32S, PrimTruncF32U, PrimTruncSatF32S, PrimTruncSatF32U},
		{TypeF64, PrimTruncF64S, PrimTruncF64U, PrimTruncSatF64S, PrimTruncSatF64U},
	} {
		get := fromFloat(src.t)
		conv(src.s, ShapeI32, src.t, func(a Value) Value {
			return I32(uint32(int32(truncChecked(get(a), moremath.InRangeI32))))
		})
		conv(src.u, ShapeI32, src.t, func(a Value) Value {
			return I32(uint32(truncChecked(get(a), moremath.InRangeU32)))
		})
		conv(src.s, ShapeI64, src.t, func(a Value) Value {
			return I64(uint64(int64(truncChecked(get(a), moremath.InRangeI64))))
		})
		conv(src.u, ShapeI64, src.t, func(a Value) Value {
			return I64(uint64(truncChecked(get(a), moremath.InRangeU64)))
		})
		conv(src.satS, ShapeI32, src.t, func(a Value) Value { return I32(uint32(moremath.TruncSatI32(get(a)))) })
		conv(src.satU, ShapeI32, src.t, func(a Value) Value { return I32(moremath.TruncSatU32(get(a))) })
		conv(src.satS, ShapeI64, src.t, func(a Value) Value { return I64(uint64(moremath.TruncSatI64(get(a)))) })
		conv(src.satU, ShapeI64, src.t, func(a Value) Value { return I64(moremath.TruncSatU64(get(a))) })
	}

	conv(PrimConvertI32S, ShapeF32, TypeI32, func(a Value) Value { return F32(float32(int32(a.I32()))) })
	conv(PrimConvertI32U, ShapeF32, TypeI32, func(a Value) Value { return F32(float32(a.I32())) })
	conv(PrimConvertI64S, ShapeF32, TypeI64, func(a Value) Value { return F32(float32(int64(a.I64()))) })
	conv(PrimConvertI64U, ShapeF32, TypeI64, func(a Value) Value { return F32(float32(a.I64())) })
	conv(PrimConvertI32S, ShapeF64, TypeI32, func(a Value) Value { return F64(float64(int32(a.I32()))) })
	conv(PrimConvertI32U, ShapeF64, TypeI32, func(a Value) Value { return F64(float64(a.I32())) })
	conv(PrimConvertI64S, ShapeF64, TypeI64, func(a Value) Value { return F64(float64(int64(a.I64()))) })
	conv(PrimConvertI64U, ShapeF64, TypeI64, func(a Value) Value { return F64(float64(a.I64())) })
	conv(PrimDemote, ShapeF32, TypeF64, func(a Value) Value { return F32(float32(a.F64())) })
	conv(PrimPromote, ShapeF64, TypeF32, func(a Value) Value { return F64(float64(a.F32())) })

	// Reinterpretation is free: every scalar is held as its zero-extended bits.
	same := func(a Value) Value { return a }
	conv(PrimReinterpret, ShapeI32, TypeF32, same)
	conv(PrimReinterpret, ShapeI64, TypeF64, same)
	conv(PrimReinterpret, ShapeF32, TypeI32, same)
	conv(PrimReinterpret, ShapeF64, TypeI64, same)
}
