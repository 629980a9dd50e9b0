package wasm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Instruction is one decoded instruction. The concrete types below are the only implementations; each carries
// only the immediates its opcode needs and is immutable once decoded.
type Instruction interface {
	// Opcode returns the primary opcode, which is OpcodeMiscPrefix or OpcodeVecPrefix for prefixed instructions.
	Opcode() Opcode
	// String returns the instruction in the text format.
	String() string
	// appendTo appends the binary encoding.
	appendTo(buf []byte) []byte
}

// MemoryImmediate is the memarg of a load or store: the alignment exponent and the static offset.
type MemoryImmediate struct {
	Align  uint32
	Offset uint32
}

// String returns the text format of the immediate given the natural alignment of the access.
func (m MemoryImmediate) String(natural uint32) string {
	var parts []string
	if m.Offset != 0 {
		parts = append(parts, "offset="+strconv.FormatUint(uint64(m.Offset), 10))
	}
	if m.Align != natural {
		parts = append(parts, "align="+strconv.FormatUint(1<<m.Align, 10))
	}
	return strings.Join(parts, " ")
}

// BlockType is the signature of a block, loop or if: empty, a single result kind, or a function type index when
// FeatureMultiValue is enabled.
type BlockType struct {
	// Result is the single result kind, or zero.
	Result ValueKind
	// TypeIndex is valid when Indexed is true.
	TypeIndex uint32
	Indexed   bool
}

// blockTypeEmpty is the encoding of a block type with no params and no results.
const blockTypeEmpty = 0x40

// Signature resolves the block type to params and results against the module's types.
func (b BlockType) Signature(types []*FunctionType) (*FunctionType, bool) {
	switch {
	case b.Indexed:
		if int(b.TypeIndex) >= len(types) {
			return nil, false
		}
		return types[b.TypeIndex], true
	case b.Result == 0:
		return &FunctionType{}, true
	default:
		return &FunctionType{Results: kinds(b.Result)}, true
	}
}

func (b BlockType) String() string {
	switch {
	case b.Indexed:
		return fmt.Sprintf("(type %d)", b.TypeIndex)
	case b.Result == 0:
		return ""
	default:
		return "(result " + ValueKindName(b.Result) + ")"
	}
}

type (
	// Simple is an instruction without immediates, such as i32.add, drop or end.
	Simple struct{ Op Opcode }
	// Block is block, loop or if.
	Block struct {
		Op   Opcode
		Type BlockType
	}
	// Branch is br or br_if.
	Branch struct {
		Op    Opcode
		Depth uint32
	}
	BranchTable struct {
		Targets []uint32
		Default uint32
	}
	Call         struct{ Func uint32 }
	CallIndirect struct{ Type, Table uint32 }
	// Variable is local.get, local.set, local.tee, global.get or global.set.
	Variable struct {
		Op    Opcode
		Index uint32
	}
	// Memory is a scalar load or store.
	Memory struct {
		Op  Opcode
		Arg MemoryImmediate
	}
	// MemoryControl is memory.size or memory.grow, on memory zero.
	MemoryControl struct{ Op Opcode }
	I32Const      struct{ Value int32 }
	I64Const      struct{ Value int64 }
	// F32Const keeps the raw bits so that NaN payloads survive a round trip.
	F32Const struct{ Bits uint32 }
	F64Const struct{ Bits uint64 }
	Misc     struct{ Op OpcodeMisc }
	// Vec is a vector instruction without immediates.
	Vec       struct{ Op OpcodeVec }
	VecMemory struct {
		Op  OpcodeVec
		Arg MemoryImmediate
	}
	VecMemoryLane struct {
		Op   OpcodeVec
		Arg  MemoryImmediate
		Lane byte
	}
	// VecLane is extract_lane or replace_lane.
	VecLane struct {
		Op   OpcodeVec
		Lane byte
	}
	// VecConst is v128.const, little-endian.
	VecConst struct{ Value [16]byte }
	// VecShuffle is i8x16.shuffle. Each lane selects a byte of the concatenated operands, so it is in 0-31.
	VecShuffle struct{ Lanes [16]byte }
)

func (i Simple) Opcode() Opcode        { return i.Op }
func (i Block) Opcode() Opcode         { return i.Op }
func (i Branch) Opcode() Opcode        { return i.Op }
func (BranchTable) Opcode() Opcode     { return OpcodeBrTable }
func (Call) Opcode() Opcode            { return OpcodeCall }
func (CallIndirect) Opcode() Opcode    { return OpcodeCallIndirect }
func (i Variable) Opcode() Opcode      { return i.Op }
func (i Memory) Opcode() Opcode        { return i.Op }
func (i MemoryControl) Opcode() Opcode { return i.Op }
func (I32Const) Opcode() Opcode        { return OpcodeI32Const }
func (I64Const) Opcode() Opcode        { return OpcodeI64Const }
func (F32Const) Opcode() Opcode        { return OpcodeF32Const }
func (F64Const) Opcode() Opcode        { return OpcodeF64Const }
func (Misc) Opcode() Opcode            { return OpcodeMiscPrefix }
func (Vec) Opcode() Opcode             { return OpcodeVecPrefix }
func (VecMemory) Opcode() Opcode       { return OpcodeVecPrefix }
func (VecMemoryLane) Opcode() Opcode   { return OpcodeVecPrefix }
func (VecLane) Opcode() Opcode         { return OpcodeVecPrefix }
func (VecConst) Opcode() Opcode        { return OpcodeVecPrefix }
func (VecShuffle) Opcode() Opcode      { return OpcodeVecPrefix }

// VecOpcode returns the vector sub-opcode of in, or false if in isn't a vector instruction.
func VecOpcode(in Instruction) (OpcodeVec, bool) {
	switch v := in.(type) {
	case Vec:
		return v.Op, true
	case VecMemory:
		return v.Op, true
	case VecMemoryLane:
		return v.Op, true
	case VecLane:
		return v.Op, true
	case VecConst:
		return OpcodeVecV128Const, true
	case VecShuffle:
		return OpcodeVecI8x16Shuffle, true
	}
	return 0, false
}

// Name returns the canonical name of the instruction, for error messages.
func Name(in Instruction) string {
	if op, ok := VecOpcode(in); ok {
		return VecInstructionName(op)
	}
	if m, ok := in.(Misc); ok {
		return MiscInstructionName(m.Op)
	}
	return InstructionName(in.Opcode())
}

// Equal returns true if a and b have the same opcode and immediates.
func Equal(a, b Instruction) bool {
	at, aIsTable := a.(BranchTable)
	bt, bIsTable := b.(BranchTable)
	if aIsTable || bIsTable {
		return aIsTable && bIsTable && at.Default == bt.Default && slices.Equal(at.Targets, bt.Targets)
	}
	return a == b
}

func (i Simple) String() string { return InstructionName(i.Op) }

func (i Block) String() string {
	if t := i.Type.String(); t != "" {
		return InstructionName(i.Op) + " " + t
	}
	return InstructionName(i.Op)
}

func (i Branch) String() string {
	return InstructionName(i.Op) + " " + strconv.FormatUint(uint64(i.Depth), 10)
}

func (i BranchTable) String() string {
	var b strings.Builder
	b.WriteString("br_table")
	for _, t := range i.Targets {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(t), 10))
	}
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(uint64(i.Default), 10))
	return b.String()
}

func (i Call) String() string { return "call " + strconv.FormatUint(uint64(i.Func), 10) }

func (i CallIndirect) String() string {
	if i.Table != 0 {
		return fmt.Sprintf("call_indirect %d (type %d)", i.Table, i.Type)
	}
	return fmt.Sprintf("call_indirect (type %d)", i.Type)
}

func (i Variable) String() string {
	return InstructionName(i.Op) + " " + strconv.FormatUint(uint64(i.Index), 10)
}

func (i Memory) String() string {
	info, _ := PrimaryInfo(i.Op)
	return withImmediate(info.Name, i.Arg.String(info.NaturalAlignment()))
}

func (i MemoryControl) String() string { return InstructionName(i.Op) }

func (i I32Const) String() string { return "i32.const " + strconv.FormatInt(int64(i.Value), 10) }
func (i I64Const) String() string { return "i64.const " + strconv.FormatInt(i.Value, 10) }

func (i F32Const) String() string {
	return "f32.const " + formatFloat(float64(math.Float32frombits(i.Bits)), uint64(i.Bits&0x7fffff), 32)
}

func (i F64Const) String() string {
	return "f64.const " + formatFloat(math.Float64frombits(i.Bits), i.Bits&0xfffffffffffff, 64)
}

func formatFloat(f float64, mantissa uint64, bitSize int) string {
	if math.IsNaN(f) {
		sign := ""
		if math.Signbit(f) {
			sign = "-"
		}
		return fmt.Sprintf("%snan:0x%x", sign, mantissa)
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}

func (i Misc) String() string { return MiscInstructionName(i.Op) }
func (i Vec) String() string  { return VecInstructionName(i.Op) }

func (i VecMemory) String() string {
	info, _ := VecInfoOf(i.Op)
	return withImmediate(info.Name, i.Arg.String(info.NaturalAlignment()))
}

func (i VecMemoryLane) String() string {
	info, _ := VecInfoOf(i.Op)
	return withImmediate(info.Name, i.Arg.String(info.NaturalAlignment())) + " " + strconv.Itoa(int(i.Lane))
}

func (i VecLane) String() string {
	return VecInstructionName(i.Op) + " " + strconv.Itoa(int(i.Lane))
}

func (i VecConst) String() string {
	var b strings.Builder
	b.WriteString("v128.const i8x16")
	for _, v := range i.Value {
		b.WriteString(" 0x")
		b.WriteString(strconv.FormatUint(uint64(v), 16))
	}
	return b.String()
}

func (i VecShuffle) String() string {
	var b strings.Builder
	b.WriteString("i8x16.shuffle")
	for _, l := range i.Lanes {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(l)))
	}
	return b.String()
}

func withImmediate(name, imm string) string {
	if imm == "" {
		return name
	}
	return name + " " + imm
}
