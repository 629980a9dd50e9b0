package compiler

import (
	"github.com/wasmlower/wasmlower/internal/simd"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
)

// NumericInfo is how a primary or misc numeric instruction reaches the target: the kinds it pops, deepest first,
// the kind it pushes, and the primitive computing it.
type NumericInfo struct {
	Name   string
	Params []wasm.ValueKind
	Result wasm.ValueKind
	Prim   vm.PrimKey
}

var primaryNumeric, miscNumeric [256]*NumericInfo

// NumericInfoOf returns the NumericInfo of a unary or binary primary or misc instruction, or false for any other
// instruction.
func NumericInfoOf(in wasm.Instruction) (*NumericInfo, bool) {
	var info *NumericInfo
	switch v := in.(type) {
	case wasm.Simple:
		info = primaryNumeric[v.Op]
	case wasm.Misc:
		info = miscNumeric[v.Op]
	}
	return info, info != nil
}

func init() {
	primary := func(code wasm.Opcode, op vm.PrimOp, shape vm.Shape) {
		info, _ := wasm.PrimaryInfo(code)
		primaryNumeric[code] = &NumericInfo{
			Name: info.Name, Params: info.Params, Result: info.Results[0], Prim: vm.PrimKey{Op: op, Shape: shape},
		}
	}

	intCompares := []vm.PrimOp{vm.PrimEq, vm.PrimNe, vm.PrimLt, vm.PrimLtU, vm.PrimGt, vm.PrimGtU, vm.PrimLe, vm.PrimLeU, vm.PrimGe, vm.PrimGeU}
	intArith := []vm.PrimOp{
		vm.PrimAdd, vm.PrimSub, vm.PrimMul, vm.PrimDiv, vm.PrimDivU, vm.PrimRem, vm.PrimRemU,
		vm.PrimAnd, vm.PrimOr, vm.PrimXor, vm.PrimShl, vm.PrimShrS, vm.PrimShrU, vm.PrimRotl, vm.PrimRotr,
	}
	for _, t := range []struct {
		eqz, clz, add wasm.Opcode
		shape         vm.Shape
	}{
		{wasm.OpcodeI32Eqz, wasm.OpcodeI32Clz, wasm.OpcodeI32Add, vm.ShapeI32},
		{wasm.OpcodeI64Eqz, wasm.OpcodeI64Clz, wasm.OpcodeI64Add, vm.ShapeI64},
	} {
		primary(t.eqz, vm.PrimEqz, t.shape)
		for i, op := range intCompares {
			primary(t.eqz+1+wasm.Opcode(i), op, t.shape)
		}
		for i, op := range []vm.PrimOp{vm.PrimClz, vm.PrimCtz, vm.PrimPopcnt} {
			primary(t.clz+wasm.Opcode(i), op, t.shape)
		}
		for i, op := range intArith {
			primary(t.add+wasm.Opcode(i), op, t.shape)
		}
	}

	floatCompares := []vm.PrimOp{vm.PrimEq, vm.PrimNe, vm.PrimLt, vm.PrimGt, vm.PrimLe, vm.PrimGe}
	floatArith := []vm.PrimOp{
		vm.PrimAbs, vm.PrimNeg, vm.PrimCeil, vm.PrimFloor, vm.PrimTrunc, vm.PrimNearest, vm.PrimSqrt,
		vm.PrimAdd, vm.PrimSub, vm.PrimMul, vm.PrimDiv, vm.PrimMin, vm.PrimMax, vm.PrimCopysign,
	}
	for _, t := range []struct {
		eq, abs wasm.Opcode
		shape   vm.Shape
	}{
		{wasm.OpcodeF32Eq, wasm.OpcodeF32Abs, vm.ShapeF32},
		{wasm.OpcodeF64Eq, wasm.OpcodeF64Abs, vm.ShapeF64},
	} {
		for i, op := range floatCompares {
			primary(t.eq+wasm.Opcode(i), op, t.shape)
		}
		for i, op := range floatArith {
			primary(t.abs+wasm.Opcode(i), op, t.shape)
		}
	}

	// Conversions are keyed by the shape of their result.
	primary(wasm.OpcodeI32WrapI64, vm.PrimWrap, vm.ShapeI32)
	primary(wasm.OpcodeI32TruncF32S, vm.PrimTruncF32S, vm.ShapeI32)
	primary(wasm.OpcodeI32TruncF32U, vm.PrimTruncF32U, vm.ShapeI32)
	primary(wasm.OpcodeI32TruncF64S, vm.PrimTruncF64S, vm.ShapeI32)
	primary(wasm.OpcodeI32TruncF64U, vm.PrimTruncF64U, vm.ShapeI32)
	primary(wasm.OpcodeI64ExtendI32S, vm.PrimExtendI32S, vm.ShapeI64)
	primary(wasm.OpcodeI64ExtendI32U, vm.PrimExtendI32U, vm.ShapeI64)
	primary(wasm.OpcodeI64TruncF32S, vm.PrimTruncF32S, vm.ShapeI64)
	primary(wasm.OpcodeI64TruncF32U, vm.PrimTruncF32U, vm.ShapeI64)
	primary(wasm.OpcodeI64TruncF64S, vm.PrimTruncF64S, vm.ShapeI64)
	primary(wasm.OpcodeI64TruncF64U, vm.PrimTruncF64U, vm.ShapeI64)
	primary(wasm.OpcodeF32ConvertI32S, vm.PrimConvertI32S, vm.ShapeF32)
	primary(wasm.OpcodeF32ConvertI32U, vm.PrimConvertI32U, vm.ShapeF32)
	primary(wasm.OpcodeF32ConvertI64S, vm.PrimConvertI64S, vm.ShapeF32)
	primary(wasm.OpcodeF32ConvertI64U, vm.PrimConvertI64U, vm.ShapeF32)
	primary(wasm.OpcodeF32DemoteF64, vm.PrimDemote, vm.ShapeF32)
	primary(wasm.OpcodeF64ConvertI32S, vm.PrimConvertI32S, vm.ShapeF64)
	primary(wasm.OpcodeF64ConvertI32U, vm.PrimConvertI32U, vm.ShapeF64)
	primary(wasm.OpcodeF64ConvertI64S, vm.PrimConvertI64S, vm.ShapeF64)
	primary(wasm.OpcodeF64ConvertI64U, vm.PrimConvertI64U, vm.ShapeF64)
	primary(wasm.OpcodeF64PromoteF32, vm.PrimPromote, vm.ShapeF64)
	primary(wasm.OpcodeI32ReinterpretF32, vm.PrimReinterpret, vm.ShapeI32)
	primary(wasm.OpcodeI64ReinterpretF64, vm.PrimReinterpret, vm.ShapeI64)
	primary(wasm.OpcodeF32ReinterpretI32, vm.PrimReinterpret, vm.ShapeF32)
	primary(wasm.OpcodeF64ReinterpretI64, vm.PrimReinterpret, vm.ShapeF64)
	primary(wasm.OpcodeI32Extend8S, vm.PrimExtend8S, vm.ShapeI32)
	primary(wasm.OpcodeI32Extend16S, vm.PrimExtend16S, vm.ShapeI32)
	primary(wasm.OpcodeI64Extend8S, vm.PrimExtend8S, vm.ShapeI64)
	primary(wasm.OpcodeI64Extend16S, vm.PrimExtend16S, vm.ShapeI64)
	primary(wasm.OpcodeI64Extend32S, vm.PrimExtend32S, vm.ShapeI64)

	for i, op := range []vm.PrimOp{vm.PrimTruncSatF32S, vm.PrimTruncSatF32U, vm.PrimTruncSatF64S, vm.PrimTruncSatF64U} {
		for _, t := range []struct {
			base  wasm.OpcodeMisc
			shape vm.Shape
		}{
			{wasm.OpcodeMiscI32TruncSatF32S, vm.ShapeI32},
			{wasm.OpcodeMiscI64TruncSatF32S, vm.ShapeI64},
		} {
			code := t.base + wasm.OpcodeMisc(i)
			info, _ := wasm.MiscInfo(code)
			miscNumeric[code] = &NumericInfo{
				Name: info.Name, Params: info.Params, Result: info.Results[0], Prim: vm.PrimKey{Op: op, Shape: t.shape},
			}
		}
	}
}

// VecPrimitive returns the primitive computing a vector instruction directly, or false if there is none and the
// instruction is either lowered or handled by its own compile routine.
func VecPrimitive(op wasm.OpcodeVec) (vm.PrimKey, bool) {
	p, ok := vecPrimOps[op]
	if !ok {
		return vm.PrimKey{}, false
	}
	info, _ := wasm.VecInfoOf(op)
	return vm.PrimKey{Op: p, Shape: simd.LaneShape(info.Shape)}, true
}

// vecPrimOps are keyed with the lane shape of the instruction, or its destination shape for conversions.
var vecPrimOps = map[wasm.OpcodeVec]vm.PrimOp{
	wasm.OpcodeVecI8x16Swizzle:          vm.PrimShuffle,
	wasm.OpcodeVecI8x16Splat:            vm.PrimSplat,
	wasm.OpcodeVecI16x8Splat:            vm.PrimSplat,
	wasm.OpcodeVecI32x4Splat:            vm.PrimSplat,
	wasm.OpcodeVecI64x2Splat:            vm.PrimSplat,
	wasm.OpcodeVecF32x4Splat:            vm.PrimSplat,
	wasm.OpcodeVecF64x2Splat:            vm.PrimSplat,
	wasm.OpcodeVecI8x16Eq:               vm.PrimEq,
	wasm.OpcodeVecI8x16Ne:               vm.PrimNe,
	wasm.OpcodeVecI8x16LtS:              vm.PrimLt,
	wasm.OpcodeVecI8x16LtU:              vm.PrimLtU,
	wasm.OpcodeVecI8x16GtS:              vm.PrimGt,
	wasm.OpcodeVecI8x16GtU:              vm.PrimGtU,
	wasm.OpcodeVecI8x16LeS:              vm.PrimLe,
	wasm.OpcodeVecI8x16LeU:              vm.PrimLeU,
	wasm.OpcodeVecI8x16GeS:              vm.PrimGe,
	wasm.OpcodeVecI8x16GeU:              vm.PrimGeU,
	wasm.OpcodeVecI16x8Eq:               vm.PrimEq,
	wasm.OpcodeVecI16x8Ne:               vm.PrimNe,
	wasm.OpcodeVecI16x8LtS:              vm.PrimLt,
	wasm.OpcodeVecI16x8LtU:              vm.PrimLtU,
	wasm.OpcodeVecI16x8GtS:              vm.PrimGt,
	wasm.OpcodeVecI16x8GtU:              vm.PrimGtU,
	wasm.OpcodeVecI16x8LeS:              vm.PrimLe,
	wasm.OpcodeVecI16x8LeU:              vm.PrimLeU,
	wasm.OpcodeVecI16x8GeS:              vm.PrimGe,
	wasm.OpcodeVecI16x8GeU:              vm.PrimGeU,
	wasm.OpcodeVecI32x4Eq:               vm.PrimEq,
	wasm.OpcodeVecI32x4Ne:               vm.PrimNe,
	wasm.OpcodeVecI32x4LtS:              vm.PrimLt,
	wasm.OpcodeVecI32x4LtU:              vm.PrimLtU,
	wasm.OpcodeVecI32x4GtS:              vm.PrimGt,
	wasm.OpcodeVecI32x4GtU:              vm.PrimGtU,
	wasm.OpcodeVecI32x4LeS:              vm.PrimLe,
	wasm.OpcodeVecI32x4LeU:              vm.PrimLeU,
	wasm.OpcodeVecI32x4GeS:              vm.PrimGe,
	wasm.OpcodeVecI32x4GeU:              vm.PrimGeU,
	wasm.OpcodeVecF32x4Eq:               vm.PrimEq,
	wasm.OpcodeVecF32x4Ne:               vm.PrimNe,
	wasm.OpcodeVecF32x4Lt:               vm.PrimLt,
	wasm.OpcodeVecF32x4Gt:               vm.PrimGt,
	wasm.OpcodeVecF32x4Le:               vm.PrimLe,
	wasm.OpcodeVecF32x4Ge:               vm.PrimGe,
	wasm.OpcodeVecF64x2Eq:               vm.PrimEq,
	wasm.OpcodeVecF64x2Ne:               vm.PrimNe,
	wasm.OpcodeVecF64x2Lt:               vm.PrimLt,
	wasm.OpcodeVecF64x2Gt:               vm.PrimGt,
	wasm.OpcodeVecF64x2Le:               vm.PrimLe,
	wasm.OpcodeVecF64x2Ge:               vm.PrimGe,
	wasm.OpcodeVecV128Not:               vm.PrimNot,
	wasm.OpcodeVecV128And:               vm.PrimAnd,
	wasm.OpcodeVecV128Andnot:            vm.PrimAndNot,
	wasm.OpcodeVecV128Or:                vm.PrimOr,
	wasm.OpcodeVecV128Xor:               vm.PrimXor,
	wasm.OpcodeVecV128Bitselect:         vm.PrimSelect,
	wasm.OpcodeVecF32x4DemoteF64x2Zero:  vm.PrimDemote,
	wasm.OpcodeVecF64x2PromoteLowF32x4:  vm.PrimPromote,
	wasm.OpcodeVecI8x16Abs:              vm.PrimAbs,
	wasm.OpcodeVecI8x16Neg:              vm.PrimNeg,
	wasm.OpcodeVecI8x16Popcnt:           vm.PrimPopcnt,
	wasm.OpcodeVecI8x16NarrowI16x8S:     vm.PrimNarrowS,
	wasm.OpcodeVecI8x16NarrowI16x8U:     vm.PrimNarrowU,
	wasm.OpcodeVecF32x4Ceil:             vm.PrimCeil,
	wasm.OpcodeVecF32x4Floor:            vm.PrimFloor,
	wasm.OpcodeVecF32x4Trunc:            vm.PrimTrunc,
	wasm.OpcodeVecF32x4Nearest:          vm.PrimNearest,
	wasm.OpcodeVecI8x16Shl:              vm.PrimShl,
	wasm.OpcodeVecI8x16ShrS:             vm.PrimShrS,
	wasm.OpcodeVecI8x16ShrU:             vm.PrimShrU,
	wasm.OpcodeVecI8x16Add:              vm.PrimAdd,
	wasm.OpcodeVecI8x16Sub:              vm.PrimSub,
	wasm.OpcodeVecF64x2Ceil:             vm.PrimCeil,
	wasm.OpcodeVecF64x2Floor:            vm.PrimFloor,
	wasm.OpcodeVecI8x16MinS:             vm.PrimMin,
	wasm.OpcodeVecI8x16MinU:             vm.PrimMinU,
	wasm.OpcodeVecI8x16MaxS:             vm.PrimMax,
	wasm.OpcodeVecI8x16MaxU:             vm.PrimMaxU,
	wasm.OpcodeVecF64x2Trunc:            vm.PrimTrunc,
	wasm.OpcodeVecI16x8Abs:              vm.PrimAbs,
	wasm.OpcodeVecI16x8Neg:              vm.PrimNeg,
	wasm.OpcodeVecI16x8NarrowI32x4S:     vm.PrimNarrowS,
	wasm.OpcodeVecI16x8NarrowI32x4U:     vm.PrimNarrowU,
	wasm.OpcodeVecI16x8ExtendLowI8x16S:  vm.PrimWidenLowS,
	wasm.OpcodeVecI16x8ExtendHighI8x16S: vm.PrimWidenHighS,
	wasm.OpcodeVecI16x8ExtendLowI8x16U:  vm.PrimWidenLowU,
	wasm.OpcodeVecI16x8ExtendHighI8x16U: vm.PrimWidenHighU,
	wasm.OpcodeVecI16x8Shl:              vm.PrimShl,
	wasm.OpcodeVecI16x8ShrS:             vm.PrimShrS,
	wasm.OpcodeVecI16x8ShrU:             vm.PrimShrU,
	wasm.OpcodeVecI16x8Add:              vm.PrimAdd,
	wasm.OpcodeVecI16x8Sub:              vm.PrimSub,
	wasm.OpcodeVecF64x2Nearest:          vm.PrimNearest,
	wasm.OpcodeVecI16x8Mul:              vm.PrimMul,
	wasm.OpcodeVecI16x8MinS:             vm.PrimMin,
	wasm.OpcodeVecI16x8MinU:             vm.PrimMinU,
	wasm.OpcodeVecI16x8MaxS:             vm.PrimMax,
	wasm.OpcodeVecI16x8MaxU:             vm.PrimMaxU,
	wasm.OpcodeVecI32x4Abs:              vm.PrimAbs,
	wasm.OpcodeVecI32x4Neg:              vm.PrimNeg,
	wasm.OpcodeVecI32x4ExtendLowI16x8S:  vm.PrimWidenLowS,
	wasm.OpcodeVecI32x4ExtendHighI16x8S: vm.PrimWidenHighS,
	wasm.OpcodeVecI32x4ExtendLowI16x8U:  vm.PrimWidenLowU,
	wasm.OpcodeVecI32x4ExtendHighI16x8U: vm.PrimWidenHighU,
	wasm.OpcodeVecI32x4Shl:              vm.PrimShl,
	wasm.OpcodeVecI32x4ShrS:             vm.PrimShrS,
	wasm.OpcodeVecI32x4ShrU:             vm.PrimShrU,
	wasm.OpcodeVecI32x4Add:              vm.PrimAdd,
	wasm.OpcodeVecI32x4Sub:              vm.PrimSub,
	wasm.OpcodeVecI32x4Mul:              vm.PrimMul,
	wasm.OpcodeVecI32x4MinS:             vm.PrimMin,
	wasm.OpcodeVecI32x4MinU:             vm.PrimMinU,
	wasm.OpcodeVecI32x4MaxS:             vm.PrimMax,
	wasm.OpcodeVecI32x4MaxU:             vm.PrimMaxU,
	wasm.OpcodeVecI64x2Abs:              vm.PrimAbs,
	wasm.OpcodeVecI64x2Neg:              vm.PrimNeg,
	wasm.OpcodeVecI64x2ExtendLowI32x4S:  vm.PrimWidenLowS,
	wasm.OpcodeVecI64x2ExtendHighI32x4S: vm.PrimWidenHighS,
	wasm.OpcodeVecI64x2ExtendLowI32x4U:  vm.PrimWidenLowU,
	wasm.OpcodeVecI64x2ExtendHighI32x4U: vm.PrimWidenHighU,
	wasm.OpcodeVecI64x2Shl:              vm.PrimShl,
	wasm.OpcodeVecI64x2ShrS:             vm.PrimShrS,
	wasm.OpcodeVecI64x2ShrU:             vm.PrimShrU,
	wasm.OpcodeVecI64x2Add:              vm.PrimAdd,
	wasm.OpcodeVecI64x2Sub:              vm.PrimSub,
	wasm.OpcodeVecI64x2Mul:              vm.PrimMul,
	wasm.OpcodeVecI64x2Eq:               vm.PrimEq,
	wasm.OpcodeVecI64x2Ne:               vm.PrimNe,
	wasm.OpcodeVecI64x2LtS:              vm.PrimLt,
	wasm.OpcodeVecI64x2GtS:              vm.PrimGt,
	wasm.OpcodeVecI64x2LeS:              vm.PrimLe,
	wasm.OpcodeVecI64x2GeS:              vm.PrimGe,
	wasm.OpcodeVecF32x4Abs:              vm.PrimAbs,
	wasm.OpcodeVecF32x4Neg:              vm.PrimNeg,
	wasm.OpcodeVecF32x4Sqrt:             vm.PrimSqrt,
	wasm.OpcodeVecF32x4Add:              vm.PrimAdd,
	wasm.OpcodeVecF32x4Sub:              vm.PrimSub,
	wasm.OpcodeVecF32x4Mul:              vm.PrimMul,
	wasm.OpcodeVecF32x4Div:              vm.PrimDiv,
	wasm.OpcodeVecF32x4Min:              vm.PrimMin,
	wasm.OpcodeVecF32x4Max:              vm.PrimMax,
	wasm.OpcodeVecF64x2Abs:              vm.PrimAbs,
	wasm.OpcodeVecF64x2Neg:              vm.PrimNeg,
	wasm.OpcodeVecF64x2Sqrt:             vm.PrimSqrt,
	wasm.OpcodeVecF64x2Add:              vm.PrimAdd,
	wasm.OpcodeVecF64x2Sub:              vm.PrimSub,
	wasm.OpcodeVecF64x2Mul:              vm.PrimMul,
	wasm.OpcodeVecF64x2Div:              vm.PrimDiv,
	wasm.OpcodeVecF64x2Min:              vm.PrimMin,
	wasm.OpcodeVecF64x2Max:              vm.PrimMax,
	wasm.OpcodeVecI32x4TruncSatF32x4S:   vm.PrimTruncSatF32S,
	wasm.OpcodeVecI32x4TruncSatF32x4U:   vm.PrimTruncSatF32U,
	wasm.OpcodeVecF32x4ConvertI32x4S:    vm.PrimConvertI32S,
	wasm.OpcodeVecF32x4ConvertI32x4U:    vm.PrimConvertI32U,
	wasm.OpcodeVecF64x2ConvertLowI32x4S: vm.PrimConvertI32S,
	wasm.OpcodeVecF64x2ConvertLowI32x4U: vm.PrimConvertI32U,
}
