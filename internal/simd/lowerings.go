package simd

import (
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
)

// Lowering is the expansion of one vector instruction. Its operands are the instruction's stack operands, deepest
// first, except for i8x16.shuffle, which takes its lane immediates as a third v128 operand.
type Lowering struct {
	Params []vm.Type
	Result vm.Type
	Build  func(b Builder, args []Ref) Ref
}

// LaneShape returns the primitive Shape of a vector lane shape.
func LaneShape(s wasm.Shape) vm.Shape {
	switch s {
	case wasm.ShapeI8x16:
		return vm.ShapeI8x16
	case wasm.ShapeI16x8:
		return vm.ShapeI16x8
	case wasm.ShapeI32x4:
		return vm.ShapeI32x4
	case wasm.ShapeI64x2:
		return vm.ShapeI64x2
	case wasm.ShapeF32x4:
		return vm.ShapeF32x4
	case wasm.ShapeF64x2:
		return vm.ShapeF64x2
	}
	return vm.ShapeV128
}

var (
	v128x1 = []vm.Type{vm.TypeV128}
	v128x2 = []vm.Type{vm.TypeV128, vm.TypeV128}
	v128x3 = []vm.Type{vm.TypeV128, vm.TypeV128, vm.TypeV128}
)

func unary(f func(b Builder, x Ref) Ref) *Lowering {
	return &Lowering{Params: v128x1, Result: vm.TypeV128, Build: func(b Builder, a []Ref) Ref { return f(b, a[0]) }}
}

func binaryLowering(f func(b Builder, x, y Ref) Ref) *Lowering {
	return &Lowering{Params: v128x2, Result: vm.TypeV128, Build: func(b Builder, a []Ref) Ref { return f(b, a[0], a[1]) }}
}

func reduce(f func(b Builder, x Ref) Ref) *Lowering {
	return &Lowering{Params: v128x1, Result: vm.TypeI32, Build: func(b Builder, a []Ref) Ref { return f(b, a[0]) }}
}

func addSat(shape vm.Shape, signed bool) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return AddSaturate(b, shape, signed, x, y) })
}

func subSat(shape vm.Shape, signed bool) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return SubSaturate(b, shape, signed, x, y) })
}

func avgr(shape vm.Shape) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return AverageUnsigned(b, shape, x, y) })
}

func notEqual(shape vm.Shape) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return NotEqual(b, shape, x, y) })
}

func extAddPairwise(shape vm.Shape, signed bool) *Lowering {
	return unary(func(b Builder, x Ref) Ref { return ExtAddPairwise(b, shape, signed, x) })
}

func extMul(shape vm.Shape, signed, high bool) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return ExtMul(b, shape, signed, high, x, y) })
}

func allTrue(shape vm.Shape) *Lowering {
	return reduce(func(b Builder, x Ref) Ref { return AllTrue(b, shape, x) })
}

func bitmask(shape vm.Shape) *Lowering {
	return reduce(func(b Builder, x Ref) Ref { return Bitmask(b, shape, x) })
}

func pmin(shape vm.Shape) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return PseudoMin(b, shape, x, y) })
}

func pmax(shape vm.Shape) *Lowering {
	return binaryLowering(func(b Builder, x, y Ref) Ref { return PseudoMax(b, shape, x, y) })
}

// Lowerings holds the expansion of every vector instruction marked Lowered in the opcode table.
var Lowerings = map[wasm.OpcodeVec]*Lowering{
	wasm.OpcodeVecI8x16Shuffle: {Params: v128x3, Result: vm.TypeV128, Build: func(b Builder, a []Ref) Ref {
		return Shuffle(b, a[0], a[1], a[2])
	}},

	wasm.OpcodeVecI8x16Ne: notEqual(vm.ShapeI8x16),
	wasm.OpcodeVecI16x8Ne: notEqual(vm.ShapeI16x8),
	wasm.OpcodeVecI32x4Ne: notEqual(vm.ShapeI32x4),
	wasm.OpcodeVecI64x2Ne: notEqual(vm.ShapeI64x2),
	wasm.OpcodeVecF32x4Ne: notEqual(vm.ShapeF32x4),
	wasm.OpcodeVecF64x2Ne: notEqual(vm.ShapeF64x2),

	wasm.OpcodeVecV128AnyTrue:  reduce(AnyTrue),
	wasm.OpcodeVecI8x16AllTrue: allTrue(vm.ShapeI8x16),
	wasm.OpcodeVecI16x8AllTrue: allTrue(vm.ShapeI16x8),
	wasm.OpcodeVecI32x4AllTrue: allTrue(vm.ShapeI32x4),
	wasm.OpcodeVecI64x2AllTrue: allTrue(vm.ShapeI64x2),
	wasm.OpcodeVecI8x16Bitmask: bitmask(vm.ShapeI8x16),
	wasm.OpcodeVecI16x8Bitmask: bitmask(vm.ShapeI16x8),
	wasm.OpcodeVecI32x4Bitmask: bitmask(vm.ShapeI32x4),
	wasm.OpcodeVecI64x2Bitmask: bitmask(vm.ShapeI64x2),

	wasm.OpcodeVecI8x16Popcnt: unary(PopCount),

	wasm.OpcodeVecI8x16AddSatS: addSat(vm.ShapeI8x16, true),
	wasm.OpcodeVecI8x16AddSatU: addSat(vm.ShapeI8x16, false),
	wasm.OpcodeVecI8x16SubSatS: subSat(vm.ShapeI8x16, true),
	wasm.OpcodeVecI8x16SubSatU: subSat(vm.ShapeI8x16, false),
	wasm.OpcodeVecI16x8AddSatS: addSat(vm.ShapeI16x8, true),
	wasm.OpcodeVecI16x8AddSatU: addSat(vm.ShapeI16x8, false),
	wasm.OpcodeVecI16x8SubSatS: subSat(vm.ShapeI16x8, true),
	wasm.OpcodeVecI16x8SubSatU: subSat(vm.ShapeI16x8, false),
	wasm.OpcodeVecI8x16AvgrU:   avgr(vm.ShapeI8x16),
	wasm.OpcodeVecI16x8AvgrU:   avgr(vm.ShapeI16x8),

	wasm.OpcodeVecI16x8ExtaddPairwiseI8x16S: extAddPairwise(vm.ShapeI16x8, true),
	wasm.OpcodeVecI16x8ExtaddPairwiseI8x16U: extAddPairwise(vm.ShapeI16x8, false),
	wasm.OpcodeVecI32x4ExtaddPairwiseI16x8S: extAddPairwise(vm.ShapeI32x4, true),
	wasm.OpcodeVecI32x4ExtaddPairwiseI16x8U: extAddPairwise(vm.ShapeI32x4, false),

	wasm.OpcodeVecI16x8ExtmulLowI8x16S:  extMul(vm.ShapeI16x8, true, false),
	wasm.OpcodeVecI16x8ExtmulHighI8x16S: extMul(vm.ShapeI16x8, true, true),
	wasm.OpcodeVecI16x8ExtmulLowI8x16U:  extMul(vm.ShapeI16x8, false, false),
	wasm.OpcodeVecI16x8ExtmulHighI8x16U: extMul(vm.ShapeI16x8, false, true),
	wasm.OpcodeVecI32x4ExtmulLowI16x8S:  extMul(vm.ShapeI32x4, true, false),
	wasm.OpcodeVecI32x4ExtmulHighI16x8S: extMul(vm.ShapeI32x4, true, true),
	wasm.OpcodeVecI32x4ExtmulLowI16x8U:  extMul(vm.ShapeI32x4, false, false),
	wasm.OpcodeVecI32x4ExtmulHighI16x8U: extMul(vm.ShapeI32x4, false, true),
	wasm.OpcodeVecI64x2ExtmulLowI32x4S:  extMul(vm.ShapeI64x2, true, false),
	wasm.OpcodeVecI64x2ExtmulHighI32x4S: extMul(vm.ShapeI64x2, true, true),
	wasm.OpcodeVecI64x2ExtmulLowI32x4U:  extMul(vm.ShapeI64x2, false, false),
	wasm.OpcodeVecI64x2ExtmulHighI32x4U: extMul(vm.ShapeI64x2, false, true),

	wasm.OpcodeVecI16x8Q15mulrSatS: binaryLowering(Q15MulrSat),
	wasm.OpcodeVecI32x4DotI16x8S:   binaryLowering(Dot),

	wasm.OpcodeVecI32x4TruncSatF64x2SZero: unary(func(b Builder, x Ref) Ref { return TruncSatF64x2Zero(b, true, x) }),
	wasm.OpcodeVecI32x4TruncSatF64x2UZero: unary(func(b Builder, x Ref) Ref { return TruncSatF64x2Zero(b, false, x) }),

	wasm.OpcodeVecF32x4Pmin: pmin(vm.ShapeF32x4),
	wasm.OpcodeVecF32x4Pmax: pmax(vm.ShapeF32x4),
	wasm.OpcodeVecF64x2Pmin: pmin(vm.ShapeF64x2),
	wasm.OpcodeVecF64x2Pmax: pmax(vm.ShapeF64x2),
}
