package simd

import (
	"math"

	"github.com/wasmlower/wasmlower/internal/vm"
)

// Two's complement bits of the lower clamp bounds.
const (
	minInt16 = 0xffff8000
	minInt32 = 0xffffffff80000000
)

// maxUnsigned and maxSigned return the largest lane value of shape.
func maxUnsigned(shape vm.Shape) uint64 {
	return math.MaxUint64 >> (64 - shape.LaneBits())
}

func maxSigned(shape vm.Shape) uint64 {
	return maxUnsigned(shape) >> 1
}

// saturated returns, per lane of x, the signed minimum of shape when x is negative and the maximum otherwise.
func saturated(o ops, shape vm.Shape, x Ref) Ref {
	return o.xor(o.signMask(shape, x), o.splat(shape, maxSigned(shape)))
}

// AddSaturate adds x and y lane-wise, clamping instead of wrapping.
//
// An unsigned lane overflowed when the wrapped sum is below x. A signed lane overflowed when x and y have the same
// sign and the sum has the other one.
func AddSaturate(b Builder, shape vm.Shape, signed bool, x, y Ref) Ref {
	o := ops{b}
	sum := o.Apply(vm.PrimAdd, shape, x, y)
	if !signed {
		overflow := o.Apply(vm.PrimLtU, shape, sum, x)
		return o.sel(o.splat(shape, maxUnsigned(shape)), sum, overflow)
	}
	overflow := o.signMask(shape, o.andNot(o.xor(x, sum), o.xor(x, y)))
	return o.sel(saturated(o, shape, x), sum, overflow)
}

// SubSaturate subtracts y from x lane-wise, clamping instead of wrapping.
//
// An unsigned lane underflowed when x is below y. A signed lane overflowed when x and y have different signs and the
// difference has the sign of y.
func SubSaturate(b Builder, shape vm.Shape, signed bool, x, y Ref) Ref {
	o := ops{b}
	diff := o.Apply(vm.PrimSub, shape, x, y)
	if !signed {
		underflow := o.Apply(vm.PrimLtU, shape, x, y)
		return o.sel(o.zero(), diff, underflow)
	}
	overflow := o.signMask(shape, o.and(o.xor(x, y), o.xor(x, diff)))
	return o.sel(saturated(o, shape, x), diff, overflow)
}

// AverageUnsigned returns (x + y + 1) >> 1 per unsigned lane, computed without widening as
// (x & y) + ((x ^ y) >> 1) + ((x ^ y) & 1).
func AverageUnsigned(b Builder, shape vm.Shape, x, y Ref) Ref {
	o := ops{b}
	diff := o.xor(x, y)
	half := o.Apply(vm.PrimShrU, shape, diff, o.i32(1))
	carry := o.and(diff, o.splat(shape, 1))
	return o.Apply(vm.PrimAdd, shape, o.Apply(vm.PrimAdd, shape, o.and(x, y), half), carry)
}

// PopCount counts the set bits of each byte of x.
func PopCount(b Builder, x Ref) Ref {
	o := ops{b}
	shr := func(v Ref, n uint32) Ref { return o.Apply(vm.PrimShrU, vm.ShapeI8x16, v, o.i32(n)) }
	add := func(v, w Ref) Ref { return o.Apply(vm.PrimAdd, vm.ShapeI8x16, v, w) }
	m55, m33, m0f := o.splat(vm.ShapeI8x16, 0x55), o.splat(vm.ShapeI8x16, 0x33), o.splat(vm.ShapeI8x16, 0x0f)

	pairs := o.Apply(vm.PrimSub, vm.ShapeI8x16, x, o.and(shr(x, 1), m55))
	nibbles := add(o.and(pairs, m33), o.and(shr(pairs, 2), m33))
	return o.and(add(nibbles, shr(nibbles, 4)), m0f)
}

// Shuffle selects each byte of the result from the 32 bytes of x then y, by the matching byte of ctrl.
//
// Indices 16 to 31 select from y. Any larger index selects byte zero of y.
func Shuffle(b Builder, x, y, ctrl Ref) Ref {
	o := ops{b}
	c15, c16 := o.splat(vm.ShapeI8x16, 15), o.splat(vm.ShapeI8x16, 16)

	fromY := o.Apply(vm.PrimGtU, vm.ShapeI8x16, ctrl, c15)
	ctrlX := o.and(ctrl, c15)
	// ctrl-16 is negative as a signed byte for indices below 16 and from 144 up. Those, and any index left at 16 or
	// above, select byte zero.
	ctrlY := o.Apply(vm.PrimMax, vm.ShapeI8x16, o.Apply(vm.PrimSub, vm.ShapeI8x16, ctrl, c16), o.zero())
	ctrlY = o.and(ctrlY, o.Apply(vm.PrimLtU, vm.ShapeI8x16, ctrlY, c16))

	return o.sel(
		o.Apply(vm.PrimShuffle, vm.ShapeI8x16, y, ctrlY),
		o.Apply(vm.PrimShuffle, vm.ShapeI8x16, x, ctrlX),
		fromY,
	)
}

// pairControls returns the byte shuffles gathering the even and the odd lanes of laneBytes wide lanes into the low
// half of a vector, zeroing the high half.
func pairControls(laneBytes int) (even, odd [16]byte) {
	for i := range even {
		even[i], odd[i] = 0x80, 0x80
	}
	for lane := 0; lane < 16/laneBytes/2; lane++ {
		for j := 0; j < laneBytes; j++ {
			even[lane*laneBytes+j] = byte(2*lane*laneBytes + j)
			odd[lane*laneBytes+j] = byte((2*lane+1)*laneBytes + j)
		}
	}
	return
}

func widenLow(signed bool) vm.PrimOp {
	if signed {
		return vm.PrimWidenLowS
	}
	return vm.PrimWidenLowU
}

func widenHigh(signed bool) vm.PrimOp {
	if signed {
		return vm.PrimWidenHighS
	}
	return vm.PrimWidenHighU
}

// ExtAddPairwise adds each pair of adjacent lanes of x into one lane twice as wide. shape is the result shape.
func ExtAddPairwise(b Builder, shape vm.Shape, signed bool, x Ref) Ref {
	o := ops{b}
	even, odd := pairControls(int(shape.LaneBits() / 16))
	widen := widenLow(signed)
	return o.Apply(vm.PrimAdd, shape,
		o.Apply(widen, shape, o.shuffle(x, even)),
		o.Apply(widen, shape, o.shuffle(x, odd)),
	)
}

// ExtMul multiplies the low or high halves of x and y into lanes twice as wide. shape is the result shape.
func ExtMul(b Builder, shape vm.Shape, signed, high bool, x, y Ref) Ref {
	widen := widenLow(signed)
	if high {
		widen = widenHigh(signed)
	}
	return b.Apply(vm.PrimMul, shape, b.Apply(widen, shape, x), b.Apply(widen, shape, y))
}

// Q15MulrSat multiplies signed Q15 fixed-point lanes, rounding to nearest and saturating.
func Q15MulrSat(b Builder, x, y Ref) Ref {
	o := ops{b}
	bias := o.splat(vm.ShapeI32x4, 1<<14)
	lo, hi := o.splat(vm.ShapeI32x4, minInt16), o.splat(vm.ShapeI32x4, math.MaxInt16)
	half := func(widen vm.PrimOp) Ref {
		p := o.Apply(vm.PrimMul, vm.ShapeI32x4, o.Apply(widen, vm.ShapeI32x4, x), o.Apply(widen, vm.ShapeI32x4, y))
		p = o.Apply(vm.PrimShrS, vm.ShapeI32x4, o.Apply(vm.PrimAdd, vm.ShapeI32x4, p, bias), o.i32(15))
		return o.Apply(vm.PrimMin, vm.ShapeI32x4, o.Apply(vm.PrimMax, vm.ShapeI32x4, p, lo), hi)
	}
	return o.Apply(vm.PrimNarrowWrap, vm.ShapeI16x8, half(vm.PrimWidenLowS), half(vm.PrimWidenHighS))
}

// Dot multiplies the signed i16 lanes of x and y and adds each adjacent pair of products into an i32 lane.
func Dot(b Builder, x, y Ref) Ref {
	o := ops{b}
	even, odd := pairControls(4)
	sumPairs := func(widen vm.PrimOp) Ref {
		p := o.Apply(vm.PrimMul, vm.ShapeI32x4, o.Apply(widen, vm.ShapeI32x4, x), o.Apply(widen, vm.ShapeI32x4, y))
		return o.Apply(vm.PrimAdd, vm.ShapeI32x4, o.shuffle(p, even), o.shuffle(p, odd))
	}
	var toHigh [16]byte
	for i := range toHigh {
		toHigh[i] = 0x80
		if i >= 8 {
			toHigh[i] = byte(i - 8)
		}
	}
	return o.or(sumPairs(vm.PrimWidenLowS), o.shuffle(sumPairs(vm.PrimWidenHighS), toHigh))
}

// TruncSatF64x2Zero truncates the two f64 lanes of x into the low i32 lanes of the result, saturating, and zeroes the
// high lanes.
func TruncSatF64x2Zero(b Builder, signed bool, x Ref) Ref {
	o := ops{b}
	var t Ref
	if signed {
		t = o.Apply(vm.PrimTruncSatF64S, vm.ShapeI64x2, x)
		t = o.Apply(vm.PrimMax, vm.ShapeI64x2, t, o.splat(vm.ShapeI64x2, minInt32))
		t = o.Apply(vm.PrimMin, vm.ShapeI64x2, t, o.splat(vm.ShapeI64x2, math.MaxInt32))
	} else {
		t = o.Apply(vm.PrimTruncSatF64U, vm.ShapeI64x2, x)
		t = o.Apply(vm.PrimMinU, vm.ShapeI64x2, t, o.splat(vm.ShapeI64x2, math.MaxUint32))
	}
	return o.Apply(vm.PrimNarrowWrap, vm.ShapeI32x4, t, o.zero())
}

// PseudoMin returns y < x ? y : x per lane. Unlike a float minimum, a NaN in x is returned as is.
func PseudoMin(b Builder, shape vm.Shape, x, y Ref) Ref {
	return b.Apply(vm.PrimSelect, vm.ShapeV128, y, x, b.Apply(vm.PrimLt, shape, y, x))
}

// PseudoMax returns x < y ? y : x per lane.
func PseudoMax(b Builder, shape vm.Shape, x, y Ref) Ref {
	return b.Apply(vm.PrimSelect, vm.ShapeV128, y, x, b.Apply(vm.PrimLt, shape, x, y))
}

// nonZeroMask returns the i32 whose bit i is set when lane i of x is nonzero.
func nonZeroMask(o ops, shape vm.Shape, x Ref) Ref {
	return o.Apply(vm.PrimExtractMSB, shape, o.not(o.Apply(vm.PrimEq, shape, x, o.zero())))
}

// AllTrue returns 1 if every lane of x is nonzero, otherwise 0.
func AllTrue(b Builder, shape vm.Shape, x Ref) Ref {
	o := ops{b}
	full := o.i32(uint32(1)<<shape.Lanes() - 1)
	return o.Apply(vm.PrimEq, vm.ShapeI32, nonZeroMask(o, shape, x), full)
}

// AnyTrue returns 1 if any bit of x is set, otherwise 0.
func AnyTrue(b Builder, x Ref) Ref {
	o := ops{b}
	return o.Apply(vm.PrimGtU, vm.ShapeI32, nonZeroMask(o, vm.ShapeI32x4, x), o.i32(0))
}

// Bitmask gathers the sign bit of each lane of x into an i32.
func Bitmask(b Builder, shape vm.Shape, x Ref) Ref {
	return b.Apply(vm.PrimExtractMSB, shape, x)
}

// NotEqual sets every bit of each lane where x and y differ.
func NotEqual(b Builder, shape vm.Shape, x, y Ref) Ref {
	return b.Apply(vm.PrimNot, vm.ShapeV128, b.Apply(vm.PrimEq, shape, x, y))
}
