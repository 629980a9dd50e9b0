package vm

import (
	"fmt"

	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// PrimOp is an operation the target implements directly. Together with a Shape it identifies a Primitive.
//
// Signed and floating point variants share the unsuffixed op (PrimLt, PrimMin, PrimDiv); unsigned integer variants
// carry a U suffix. Conversions are keyed by the Shape of their result.
type PrimOp uint16

const (
	PrimNone PrimOp = iota

	PrimAdd
	PrimSub
	PrimMul
	PrimDiv
	PrimDivU
	PrimRem
	PrimRemU
	PrimAnd
	PrimOr
	PrimXor
	// PrimAndNot is x &^ y.
	PrimAndNot
	PrimNot
	PrimShl
	PrimShrS
	PrimShrU
	PrimRotl
	PrimRotr
	PrimClz
	PrimCtz
	PrimPopcnt
	PrimEqz

	PrimEq
	PrimNe
	PrimLt
	PrimLtU
	PrimGt
	PrimGtU
	PrimLe
	PrimLeU
	PrimGe
	PrimGeU

	PrimAbs
	PrimNeg
	PrimCeil
	PrimFloor
	PrimTrunc
	PrimNearest
	PrimSqrt
	PrimMin
	PrimMinU
	PrimMax
	PrimMaxU
	PrimCopysign

	PrimWrap
	PrimExtendI32S
	PrimExtendI32U
	PrimExtend8S
	PrimExtend16S
	PrimExtend32S
	PrimTruncF32S
	PrimTruncF32U
	PrimTruncF64S
	PrimTruncF64U
	PrimTruncSatF32S
	PrimTruncSatF32U
	PrimTruncSatF64S
	PrimTruncSatF64U
	PrimConvertI32S
	PrimConvertI32U
	PrimConvertI64S
	PrimConvertI64U
	PrimDemote
	PrimPromote
	PrimReinterpret

	// PrimNarrowS and PrimNarrowU saturate the lanes of two vectors into one of half-width lanes.
	PrimNarrowS
	PrimNarrowU
	// PrimNarrowWrap keeps the low half of each lane.
	PrimNarrowWrap
	PrimWidenLowS
	PrimWidenLowU
	PrimWidenHighS
	PrimWidenHighU
	// PrimShuffle selects bytes of its first operand by the bytes of its second. An index above 15 selects zero.
	PrimShuffle
	// PrimSelect takes the bits of its first operand where the third is set, and of the second elsewhere.
	PrimSelect
	// PrimExtractMSB gathers the most significant bit of each lane into an i32, lane zero in bit zero.
	PrimExtractMSB
	PrimSplat
	PrimExtractLane
	PrimExtractLaneU
	PrimReplaceLane

	// PrimAddU32Checked adds two i32 as unsigned, trapping with an out of bounds memory access on overflow.
	PrimAddU32Checked

	primOpCount
)

var primOpNames = [primOpCount]string{
	PrimNone:          "none",
	PrimAdd:           "add",
	PrimSub:           "sub",
	PrimMul:           "mul",
	PrimDiv:           "div",
	PrimDivU:          "div_u",
	PrimRem:           "rem",
	PrimRemU:          "rem_u",
	PrimAnd:           "and",
	PrimOr:            "or",
	PrimXor:           "xor",
	PrimAndNot:        "andnot",
	PrimNot:           "not",
	PrimShl:           "shl",
	PrimShrS:          "shr_s",
	PrimShrU:          "shr_u",
	PrimRotl:          "rotl",
	PrimRotr:          "rotr",
	PrimClz:           "clz",
	PrimCtz:           "ctz",
	PrimPopcnt:        "popcnt",
	PrimEqz:           "eqz",
	PrimEq:            "eq",
	PrimNe:            "ne",
	PrimLt:            "lt",
	PrimLtU:           "lt_u",
	PrimGt:            "gt",
	PrimGtU:           "gt_u",
	PrimLe:            "le",
	PrimLeU:           "le_u",
	PrimGe:            "ge",
	PrimGeU:           "ge_u",
	PrimAbs:           "abs",
	PrimNeg:           "neg",
	PrimCeil:          "ceil",
	PrimFloor:         "floor",
	PrimTrunc:         "trunc",
	PrimNearest:       "nearest",
	PrimSqrt:          "sqrt",
	PrimMin:           "min",
	PrimMinU:          "min_u",
	PrimMax:           "max",
	PrimMaxU:          "max_u",
	PrimCopysign:      "copysign",
	PrimWrap:          "wrap_i64",
	PrimExtendI32S:    "extend_i32_s",
	PrimExtendI32U:    "extend_i32_u",
	PrimExtend8S:      "extend8_s",
	PrimExtend16S:     "extend16_s",
	PrimExtend32S:     "extend32_s",
	PrimTruncF32S:     "trunc_f32_s",
	PrimTruncF32U:     "trunc_f32_u",
	PrimTruncF64S:     "trunc_f64_s",
	PrimTruncF64U:     "trunc_f64_u",
	PrimTruncSatF32S:  "trunc_sat_f32_s",
	PrimTruncSatF32U:  "trunc_sat_f32_u",
	PrimTruncSatF64S:  "trunc_sat_f64_s",
	PrimTruncSatF64U:  "trunc_sat_f64_u",
	PrimConvertI32S:   "convert_i32_s",
	PrimConvertI32U:   "convert_i32_u",
	PrimConvertI64S:   "convert_i64_s",
	PrimConvertI64U:   "convert_i64_u",
	PrimDemote:        "demote",
	PrimPromote:       "promote",
	PrimReinterpret:   "reinterpret",
	PrimNarrowS:       "narrow_s",
	PrimNarrowU:       "narrow_u",
	PrimNarrowWrap:    "narrow_wrap",
	PrimWidenLowS:     "widen_low_s",
	PrimWidenLowU:     "widen_low_u",
	PrimWidenHighS:    "widen_high_s",
	PrimWidenHighU:    "widen_high_u",
	PrimShuffle:       "shuffle",
	PrimSelect:        "select",
	PrimExtractMSB:    "extract_msb",
	PrimSplat:         "splat",
	PrimExtractLane:   "extract_lane",
	PrimExtractLaneU:  "extract_lane_u",
	PrimReplaceLane:   "replace_lane",
	PrimAddU32Checked: "add_u32_checked",
}

func (op PrimOp) String() string {
	if op < primOpCount {
		return primOpNames[op]
	}
	return fmt.Sprintf("prim(%d)", uint16(op))
}

// PrimKey identifies a Primitive in Capabilities.
type PrimKey struct {
	Op    PrimOp
	Shape Shape
}

func (k PrimKey) String() string {
	return k.Shape.String() + "." + k.Op.String()
}

// Primitive is one target operation. It pops len(Params) operands, the first param deepest, and pushes Result.
type Primitive struct {
	PrimKey
	Params []Type
	Result Type
	fn     func(args []Value) Value
}

// Call applies the primitive. A trap panics with a *wasmruntime.Error, as the machine does.
func (p *Primitive) Call(args ...Value) Value {
	if len(args) != len(p.Params) {
		panic(fmt.Errorf("BUG: %s takes %d operands, but was given %d", p.PrimKey, len(p.Params), len(args)))
	}
	return p.fn(args)
}

func (p *Primitive) String() string {
	return p.PrimKey.String()
}

func trap(err *wasmruntime.Error) {
	panic(err)
}
