package wasm

import (
	"io"

	"github.com/wasmlower/wasmlower/internal/ieee754"
	"github.com/wasmlower/wasmlower/internal/leb128"
)

// AppendInstruction appends the binary encoding of in to buf. Immediates are encoded in their canonical (shortest)
// LEB128 form, so decoding then appending reproduces canonical input byte for byte.
func AppendInstruction(buf []byte, in Instruction) []byte {
	return in.appendTo(buf)
}

// Encode writes the binary encoding of every instruction to w.
func Encode(w io.Writer, instructions []Instruction) error {
	var buf []byte
	for _, in := range instructions {
		buf = in.appendTo(buf)
	}
	_, err := w.Write(buf)
	return err
}

func (m MemoryImmediate) appendTo(buf []byte) []byte {
	buf = append(buf, leb128.EncodeUint32(m.Align)...)
	return append(buf, leb128.EncodeUint32(m.Offset)...)
}

func (b BlockType) appendTo(buf []byte) []byte {
	switch {
	case b.Indexed:
		return append(buf, leb128.EncodeInt64(int64(b.TypeIndex))...)
	case b.Result == 0:
		return append(buf, blockTypeEmpty)
	default:
		return append(buf, b.Result)
	}
}

func (i Simple) appendTo(buf []byte) []byte { return append(buf, i.Op) }

func (i Block) appendTo(buf []byte) []byte { return i.Type.appendTo(append(buf, i.Op)) }

func (i Branch) appendTo(buf []byte) []byte {
	return append(append(buf, i.Op), leb128.EncodeUint32(i.Depth)...)
}

func (i BranchTable) appendTo(buf []byte) []byte {
	buf = append(buf, OpcodeBrTable)
	buf = append(buf, leb128.EncodeUint32(uint32(len(i.Targets)))...)
	for _, t := range i.Targets {
		buf = append(buf, leb128.EncodeUint32(t)...)
	}
	return append(buf, leb128.EncodeUint32(i.Default)...)
}

func (i Call) appendTo(buf []byte) []byte {
	return append(append(buf, OpcodeCall), leb128.EncodeUint32(i.Func)...)
}

func (i CallIndirect) appendTo(buf []byte) []byte {
	buf = append(append(buf, OpcodeCallIndirect), leb128.EncodeUint32(i.Type)...)
	return append(buf, leb128.EncodeUint32(i.Table)...)
}

func (i Variable) appendTo(buf []byte) []byte {
	return append(append(buf, i.Op), leb128.EncodeUint32(i.Index)...)
}

func (i Memory) appendTo(buf []byte) []byte { return i.Arg.appendTo(append(buf, i.Op)) }

// The memory index of memory.size and memory.grow is always zero.
func (i MemoryControl) appendTo(buf []byte) []byte { return append(buf, i.Op, 0) }

func (i I32Const) appendTo(buf []byte) []byte {
	return append(append(buf, OpcodeI32Const), leb128.EncodeInt32(i.Value)...)
}

func (i I64Const) appendTo(buf []byte) []byte {
	return append(append(buf, OpcodeI64Const), leb128.EncodeInt64(i.Value)...)
}

func (i F32Const) appendTo(buf []byte) []byte {
	return ieee754.AppendFloat32Bits(append(buf, OpcodeF32Const), i.Bits)
}

func (i F64Const) appendTo(buf []byte) []byte {
	return ieee754.AppendFloat64Bits(append(buf, OpcodeF64Const), i.Bits)
}

func (i Misc) appendTo(buf []byte) []byte {
	return append(append(buf, OpcodeMiscPrefix), leb128.EncodeUint32(uint32(i.Op))...)
}

func appendVec(buf []byte, op OpcodeVec) []byte {
	return append(append(buf, OpcodeVecPrefix), leb128.EncodeUint32(uint32(op))...)
}

func (i Vec) appendTo(buf []byte) []byte { return appendVec(buf, i.Op) }

func (i VecMemory) appendTo(buf []byte) []byte { return i.Arg.appendTo(appendVec(buf, i.Op)) }

func (i VecMemoryLane) appendTo(buf []byte) []byte {
	return append(i.Arg.appendTo(appendVec(buf, i.Op)), i.Lane)
}

func (i VecLane) appendTo(buf []byte) []byte { return append(appendVec(buf, i.Op), i.Lane) }

func (i VecConst) appendTo(buf []byte) []byte {
	return append(appendVec(buf, OpcodeVecV128Const), i.Value[:]...)
}

func (i VecShuffle) appendTo(buf []byte) []byte {
	return append(appendVec(buf, OpcodeVecI8x16Shuffle), i.Lanes[:]...)
}
