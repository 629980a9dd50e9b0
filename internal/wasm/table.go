package wasm

import "fmt"

// Category groups instructions that share one compile routine: the same operand stack effect and the same way of
// reaching the target. The concrete kinds and the target operation come from the per-opcode tables.
type Category byte

const (
	CategoryInvalid Category = iota
	CategoryControl
	CategoryParametric
	CategoryVariable
	CategoryMemoryControl
	CategoryPrefix
	// CategoryConst pushes an immediate.
	CategoryConst
	// CategoryUnary pops one operand and pushes one result.
	CategoryUnary
	// CategoryBinary pops two operands and pushes one result.
	CategoryBinary
	// CategoryTernary pops three vectors and pushes one, e.g. v128.bitselect.
	CategoryTernary
	// CategoryCompareNot is a lane-wise equality followed by a complement, e.g. i8x16.ne.
	CategoryCompareNot
	// CategoryShift pops an i32 shift count and a vector, and pushes a vector.
	CategoryShift
	// CategorySplat pops a lane scalar and pushes a vector with it in every lane.
	CategorySplat
	// CategoryExtractLane pops a vector and pushes the lane scalar selected by the lane immediate.
	CategoryExtractLane
	// CategoryReplaceLane pops a lane scalar and a vector, and pushes the vector with one lane replaced.
	CategoryReplaceLane
	// CategoryReduce pops a vector and pushes an i32, e.g. v128.any_true or i8x16.bitmask.
	CategoryReduce
	CategoryMemoryRead
	CategoryMemoryWrite
	CategoryMemoryLaneRead
	CategoryMemoryLaneWrite
	// CategoryShuffle is i8x16.shuffle with its sixteen lane immediates.
	CategoryShuffle
)

var categoryNames = [...]string{
	CategoryInvalid:         "invalid",
	CategoryControl:         "control",
	CategoryParametric:      "parametric",
	CategoryVariable:        "variable",
	CategoryMemoryControl:   "memory_control",
	CategoryPrefix:          "prefix",
	CategoryConst:           "const",
	CategoryUnary:           "unary",
	CategoryBinary:          "binary",
	CategoryTernary:         "ternary",
	CategoryCompareNot:      "compare_not",
	CategoryShift:           "shift",
	CategorySplat:           "splat",
	CategoryExtractLane:     "extract_lane",
	CategoryReplaceLane:     "replace_lane",
	CategoryReduce:          "reduce",
	CategoryMemoryRead:      "memory_read",
	CategoryMemoryWrite:     "memory_write",
	CategoryMemoryLaneRead:  "memory_lane_read",
	CategoryMemoryLaneWrite: "memory_lane_write",
	CategoryShuffle:         "shuffle",
}

// String implements fmt.Stringer.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", byte(c))
}

// Shape is the lane interpretation an instruction applies to a 128-bit vector.
type Shape byte

const (
	ShapeNone Shape = iota
	// ShapeV128 is the whole vector, for bitwise operations and untyped loads and stores.
	ShapeV128
	ShapeI8x16
	ShapeI16x8
	ShapeI32x4
	ShapeI64x2
	ShapeF32x4
	ShapeF64x2
)

// Lanes returns the lane count, or 1 for ShapeV128 and 0 for ShapeNone.
func (s Shape) Lanes() int {
	switch s {
	case ShapeV128:
		return 1
	case ShapeI8x16:
		return 16
	case ShapeI16x8:
		return 8
	case ShapeI32x4, ShapeF32x4:
		return 4
	case ShapeI64x2, ShapeF64x2:
		return 2
	}
	return 0
}

// LaneBytes returns the width of one lane in bytes.
func (s Shape) LaneBytes() int {
	if l := s.Lanes(); l != 0 {
		return 16 / l
	}
	return 0
}

// LaneKind returns the kind of one lane as seen on the operand stack: i8 and i16 lanes are carried as i32.
func (s Shape) LaneKind() ValueKind {
	switch s {
	case ShapeI8x16, ShapeI16x8, ShapeI32x4:
		return ValueKindI32
	case ShapeI64x2:
		return ValueKindI64
	case ShapeF32x4:
		return ValueKindF32
	case ShapeF64x2:
		return ValueKindF64
	case ShapeV128:
		return ValueKindV128
	}
	return ValueKindUnknown
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeV128:
		return "v128"
	case ShapeI8x16:
		return "i8x16"
	case ShapeI16x8:
		return "i16x8"
	case ShapeI32x4:
		return "i32x4"
	case ShapeI64x2:
		return "i64x2"
	case ShapeF32x4:
		return "f32x4"
	case ShapeF64x2:
		return "f64x2"
	}
	return "none"
}

// LoadKind distinguishes the vector loads sharing CategoryMemoryRead.
type LoadKind byte

const (
	LoadPlain LoadKind = iota
	// LoadExtend reads a 64-bit half and widens it into Shape.
	LoadExtend
	// LoadSplat reads one lane and broadcasts it into every lane of Shape.
	LoadSplat
	// LoadZero reads one lane into lane zero and zeroes the rest.
	LoadZero
)

// VecInfo is the table row of one OpcodeVec.
type VecInfo struct {
	Name     string
	Category Category
	// Shape is the lane interpretation of the result. For narrowing, widening and extended multiplies this is the
	// destination shape.
	Shape Shape
	// Width is the byte width of a memory access.
	Width uint32
	Load  LoadKind
	// Signed is set on the _s variants of lane extraction, comparisons, min/max, shifts and conversions.
	Signed bool
	// High is set on operations reading the high half of their operands.
	High bool
	// Lowered is set when the operation has no single target primitive and is expanded from smaller ones.
	Lowered bool
}

// NaturalAlignment returns log2(Width), the largest alignment exponent a memory access may declare.
func (i *VecInfo) NaturalAlignment() uint32 {
	return alignmentOf(i.Width)
}

func alignmentOf(width uint32) (exp uint32) {
	for width > 1 {
		width >>= 1
		exp++
	}
	return
}

// VecInfoOf returns the table row of the OpcodeVec, or false if it is unassigned.
func VecInfoOf(op OpcodeVec) (*VecInfo, bool) {
	info := &vecTable[op]
	return info, info.Name != ""
}

// VecInstructionName returns the instruction corresponding to this vector Opcode.
func VecInstructionName(op OpcodeVec) string {
	return vecTable[op].Name
}

// OpInfo is the table row of one primary or miscellaneous Opcode.
type OpInfo struct {
	Name     string
	Category Category
	// Params are popped with the first element deepest. Empty for instructions whose stack effect depends on
	// immediates, such as calls and control instructions.
	Params  []ValueKind
	Results []ValueKind
	// Width is the byte width of a memory access, and Signed whether a narrow load sign-extends.
	Width  uint32
	Signed bool
	// Feature is the feature that must be enabled for the opcode to decode, or zero.
	Feature Features
}

// NaturalAlignment returns log2(Width).
func (i *OpInfo) NaturalAlignment() uint32 {
	return alignmentOf(i.Width)
}

var (
	kindsI32  = []ValueKind{ValueKindI32}
	kindsI64  = []ValueKind{ValueKindI64}
	kindsF32  = []ValueKind{ValueKindF32}
	kindsF64  = []ValueKind{ValueKindF64}
	kindsV128 = []ValueKind{ValueKindV128}
)

func kinds(k ValueKind) []ValueKind {
	switch k {
	case ValueKindI32:
		return kindsI32
	case ValueKindI64:
		return kindsI64
	case ValueKindF32:
		return kindsF32
	case ValueKindF64:
		return kindsF64
	case ValueKindV128:
		return kindsV128
	}
	return nil
}

var primaryTable, miscTable [256]OpInfo

func init() {
	op := func(code Opcode, name string, cat Category) {
		primaryTable[code] = OpInfo{Name: name, Category: cat}
	}
	unary := func(code Opcode, name string, in, out ValueKind) {
		primaryTable[code] = OpInfo{Name: name, Category: CategoryUnary, Params: kinds(in), Results: kinds(out)}
	}
	binary := func(code Opcode, name string, in, out ValueKind) {
		primaryTable[code] = OpInfo{Name: name, Category: CategoryBinary, Params: []ValueKind{in, in}, Results: kinds(out)}
	}
	load := func(code Opcode, name string, out ValueKind, width uint32, signed bool) {
		primaryTable[code] = OpInfo{Name: name, Category: CategoryMemoryRead, Params: kindsI32, Results: kinds(out), Width: width, Signed: signed}
	}
	store := func(code Opcode, name string, in ValueKind, width uint32) {
		primaryTable[code] = OpInfo{Name: name, Category: CategoryMemoryWrite, Params: []ValueKind{ValueKindI32, in}, Width: width}
	}

	op(OpcodeUnreachable, "unreachable", CategoryControl)
	op(OpcodeNop, "nop", CategoryControl)
	op(OpcodeBlock, "block", CategoryControl)
	op(OpcodeLoop, "loop", CategoryControl)
	op(OpcodeIf, "if", CategoryControl)
	op(OpcodeElse, "else", CategoryControl)
	op(OpcodeEnd, "end", CategoryControl)
	op(OpcodeBr, "br", CategoryControl)
	op(OpcodeBrIf, "br_if", CategoryControl)
	op(OpcodeBrTable, "br_table", CategoryControl)
	op(OpcodeReturn, "return", CategoryControl)
	op(OpcodeCall, "call", CategoryControl)
	op(OpcodeCallIndirect, "call_indirect", CategoryControl)
	op(OpcodeDrop, "drop", CategoryParametric)
	op(OpcodeSelect, "select", CategoryParametric)
	op(OpcodeLocalGet, "local.get", CategoryVariable)
	op(OpcodeLocalSet, "local.set", CategoryVariable)
	op(OpcodeLocalTee, "local.tee", CategoryVariable)
	op(OpcodeGlobalGet, "global.get", CategoryVariable)
	op(OpcodeGlobalSet, "global.set", CategoryVariable)

	load(OpcodeI32Load, "i32.load", ValueKindI32, 4, false)
	load(OpcodeI64Load, "i64.load", ValueKindI64, 8, false)
	load(OpcodeF32Load, "f32.load", ValueKindF32, 4, false)
	load(OpcodeF64Load, "f64.load", ValueKindF64, 8, false)
	load(OpcodeI32Load8S, "i32.load8_s", ValueKindI32, 1, true)
	load(OpcodeI32Load8U, "i32.load8_u", ValueKindI32, 1, false)
	load(OpcodeI32Load16S, "i32.load16_s", ValueKindI32, 2, true)
	load(OpcodeI32Load16U, "i32.load16_u", ValueKindI32, 2, false)
	load(OpcodeI64Load8S, "i64.load8_s", ValueKindI64, 1, true)
	load(OpcodeI64Load8U, "i64.load8_u", ValueKindI64, 1, false)
	load(OpcodeI64Load16S, "i64.load16_s", ValueKindI64, 2, true)
	load(OpcodeI64Load16U, "i64.load16_u", ValueKindI64, 2, false)
	load(OpcodeI64Load32S, "i64.load32_s", ValueKindI64, 4, true)
	load(OpcodeI64Load32U, "i64.load32_u", ValueKindI64, 4, false)
	store(OpcodeI32Store, "i32.store", ValueKindI32, 4)
	store(OpcodeI64Store, "i64.store", ValueKindI64, 8)
	store(OpcodeF32Store, "f32.store", ValueKindF32, 4)
	store(OpcodeF64Store, "f64.store", ValueKindF64, 8)
	store(OpcodeI32Store8, "i32.store8", ValueKindI32, 1)
	store(OpcodeI32Store16, "i32.store16", ValueKindI32, 2)
	store(OpcodeI64Store8, "i64.store8", ValueKindI64, 1)
	store(OpcodeI64Store16, "i64.store16", ValueKindI64, 2)
	store(OpcodeI64Store32, "i64.store32", ValueKindI64, 4)
	primaryTable[OpcodeMemorySize] = OpInfo{Name: "memory.size", Category: CategoryMemoryControl, Results: kindsI32}
	primaryTable[OpcodeMemoryGrow] = OpInfo{Name: "memory.grow", Category: CategoryMemoryControl, Params: kindsI32, Results: kindsI32}

	primaryTable[OpcodeI32Const] = OpInfo{Name: "i32.const", Category: CategoryConst, Results: kindsI32}
	primaryTable[OpcodeI64Const] = OpInfo{Name: "i64.const", Category: CategoryConst, Results: kindsI64}
	primaryTable[OpcodeF32Const] = OpInfo{Name: "f32.const", Category: CategoryConst, Results: kindsF32}
	primaryTable[OpcodeF64Const] = OpInfo{Name: "f64.const", Category: CategoryConst, Results: kindsF64}

	// Integer comparisons and arithmetic share their layout between i32 (0x45-0x4f, 0x67-0x78) and
	// i64 (0x50-0x5a, 0x79-0x8a).
	intCompares := []string{"eq", "ne", "lt_s", "lt_u", "gt_s", "gt_u", "le_s", "le_u", "ge_s", "ge_u"}
	intArith := []string{"add", "sub", "mul", "div_s", "div_u", "rem_s", "rem_u", "and", "or", "xor", "shl", "shr_s", "shr_u", "rotl", "rotr"}
	for _, t := range []struct {
		prefix             string
		kind               ValueKind
		eqz, arith, unary0 Opcode
	}{
		{"i32", ValueKindI32, OpcodeI32Eqz, OpcodeI32Add, OpcodeI32Clz},
		{"i64", ValueKindI64, OpcodeI64Eqz, OpcodeI64Add, OpcodeI64Clz},
	} {
		unary(t.eqz, t.prefix+".eqz", t.kind, ValueKindI32)
		for i, name := range intCompares {
			binary(t.eqz+1+Opcode(i), t.prefix+"."+name, t.kind, ValueKindI32)
		}
		for i, name := range []string{"clz", "ctz", "popcnt"} {
			unary(t.unary0+Opcode(i), t.prefix+"."+name, t.kind, t.kind)
		}
		for i, name := range intArith {
			binary(t.arith+Opcode(i), t.prefix+"."+name, t.kind, t.kind)
		}
	}

	floatCompares := []string{"eq", "ne", "lt", "gt", "le", "ge"}
	floatUnary := []string{"abs", "neg", "ceil", "floor", "trunc", "nearest", "sqrt"}
	floatBinary := []string{"add", "sub", "mul", "div", "min", "max", "copysign"}
	for _, t := range []struct {
		prefix       string
		kind         ValueKind
		eq, unaryOps Opcode
	}{
		{"f32", ValueKindF32, OpcodeF32Eq, OpcodeF32Abs},
		{"f64", ValueKindF64, OpcodeF64Eq, OpcodeF64Abs},
	} {
		for i, name := range floatCompares {
			binary(t.eq+Opcode(i), t.prefix+"."+name, t.kind, ValueKindI32)
		}
		for i, name := range floatUnary {
			unary(t.unaryOps+Opcode(i), t.prefix+"."+name, t.kind, t.kind)
		}
		for i, name := range floatBinary {
			binary(t.unaryOps+Opcode(len(floatUnary)+i), t.prefix+"."+name, t.kind, t.kind)
		}
	}

	unary(OpcodeI32WrapI64, "i32.wrap_i64", ValueKindI64, ValueKindI32)
	unary(OpcodeI32TruncF32S, "i32.trunc_f32_s", ValueKindF32, ValueKindI32)
	unary(OpcodeI32TruncF32U, "i32.trunc_f32_u", ValueKindF32, ValueKindI32)
	unary(OpcodeI32TruncF64S, "i32.trunc_f64_s", ValueKindF64, ValueKindI32)
	unary(OpcodeI32TruncF64U, "i32.trunc_f64_u", ValueKindF64, ValueKindI32)
	unary(OpcodeI64ExtendI32S, "i64.extend_i32_s", ValueKindI32, ValueKindI64)
	unary(OpcodeI64ExtendI32U, "i64.extend_i32_u", ValueKindI32, ValueKindI64)
	unary(OpcodeI64TruncF32S, "i64.trunc_f32_s", ValueKindF32, ValueKindI64)
	unary(OpcodeI64TruncF32U, "i64.trunc_f32_u", ValueKindF32, ValueKindI64)
	unary(OpcodeI64TruncF64S, "i64.trunc_f64_s", ValueKindF64, ValueKindI64)
	unary(OpcodeI64TruncF64U, "i64.trunc_f64_u", ValueKindF64, ValueKindI64)
	unary(OpcodeF32ConvertI32S, "f32.convert_i32_s", ValueKindI32, ValueKindF32)
	unary(OpcodeF32ConvertI32U, "f32.convert_i32_u", ValueKindI32, ValueKindF32)
	unary(OpcodeF32ConvertI64S, "f32.convert_i64_s", ValueKindI64, ValueKindF32)
	unary(OpcodeF32ConvertI64U, "f32.convert_i64_u", ValueKindI64, ValueKindF32)
	unary(OpcodeF32DemoteF64, "f32.demote_f64", ValueKindF64, ValueKindF32)
	unary(OpcodeF64ConvertI32S, "f64.convert_i32_s", ValueKindI32, ValueKindF64)
	unary(OpcodeF64ConvertI32U, "f64.convert_i32_u", ValueKindI32, ValueKindF64)
	unary(OpcodeF64ConvertI64S, "f64.convert_i64_s", ValueKindI64, ValueKindF64)
	unary(OpcodeF64ConvertI64U, "f64.convert_i64_u", ValueKindI64, ValueKindF64)
	unary(OpcodeF64PromoteF32, "f64.promote_f32", ValueKindF32, ValueKindF64)
	unary(OpcodeI32ReinterpretF32, "i32.reinterpret_f32", ValueKindF32, ValueKindI32)
	unary(OpcodeI64ReinterpretF64, "i64.reinterpret_f64", ValueKindF64, ValueKindI64)
	unary(OpcodeF32ReinterpretI32, "f32.reinterpret_i32", ValueKindI32, ValueKindF32)
	unary(OpcodeF64ReinterpretI64, "f64.reinterpret_i64", ValueKindI64, ValueKindF64)

	for _, code := range []Opcode{OpcodeI32Extend8S, OpcodeI32Extend16S, OpcodeI64Extend8S, OpcodeI64Extend16S, OpcodeI64Extend32S} {
		kind, name := ValueKindI32, "i32.extend"
		if code >= OpcodeI64Extend8S {
			kind, name = ValueKindI64, "i64.extend"
		}
		bits := map[Opcode]string{OpcodeI32Extend8S: "8", OpcodeI32Extend16S: "16", OpcodeI64Extend8S: "8", OpcodeI64Extend16S: "16", OpcodeI64Extend32S: "32"}[code]
		unary(code, name+bits+"_s", kind, kind)
		primaryTable[code].Feature = FeatureSignExtensionOps
	}

	// Prefixed opcodes are gated by the feature of their sub-opcode.
	op(OpcodeMiscPrefix, "misc_prefix", CategoryPrefix)
	op(OpcodeVecPrefix, "vec_prefix", CategoryPrefix)

	for i, src := range []struct {
		in   ValueKind
		name string
	}{
		{ValueKindF32, "f32_s"}, {ValueKindF32, "f32_u"}, {ValueKindF64, "f64_s"}, {ValueKindF64, "f64_u"},
	} {
		miscTable[OpcodeMiscI32TruncSatF32S+OpcodeMisc(i)] = OpInfo{
			Name: "i32.trunc_sat_" + src.name, Category: CategoryUnary, Params: kinds(src.in), Results: kindsI32,
			Feature: FeatureNonTrappingFloatToIntConversion,
		}
		miscTable[OpcodeMiscI64TruncSatF32S+OpcodeMisc(i)] = OpInfo{
			Name: "i64.trunc_sat_" + src.name, Category: CategoryUnary, Params: kinds(src.in), Results: kindsI64,
			Feature: FeatureNonTrappingFloatToIntConversion,
		}
	}
}

// PrimaryInfo returns the table row of the Opcode, or false if it is unassigned.
func PrimaryInfo(op Opcode) (*OpInfo, bool) {
	info := &primaryTable[op]
	return info, info.Name != ""
}

// MiscInfo returns the table row of the OpcodeMisc, or false if it is unassigned.
func MiscInfo(op OpcodeMisc) (*OpInfo, bool) {
	info := &miscTable[op]
	return info, info.Name != ""
}

// InstructionName returns the instruction corresponding to this binary Opcode.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#a7-index-of-instructions
func InstructionName(oc Opcode) string {
	return primaryTable[oc].Name
}

// MiscInstructionName returns the instruction corresponding to this miscellaneous Opcode.
func MiscInstructionName(oc OpcodeMisc) string {
	return miscTable[oc].Name
}
