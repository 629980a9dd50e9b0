package wasm

import (
	"errors"
	"io"

	"github.com/wasmlower/wasmlower/internal/ieee754"
	"github.com/wasmlower/wasmlower/internal/leb128"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// Decoder lazily decodes the instructions of one code body or initializer expression.
type Decoder struct {
	r        Reader
	features Features
	// depth is the count of open blocks, including the implicit block of the body itself.
	depth int
	// initializer restricts the grammar to constant expressions.
	initializer bool
}

// NewDecoder returns a Decoder reading a code body from r.
func NewDecoder(r Reader, features Features) *Decoder {
	return &Decoder{r: r, features: features, depth: 1}
}

// NewInitializerDecoder returns a Decoder reading a constant initializer expression from r.
func NewInitializerDecoder(r Reader, features Features) *Decoder {
	return &Decoder{r: r, features: features, depth: 1, initializer: true}
}

// Depth returns the count of blocks open after the last decoded instruction.
func (d *Decoder) Depth() int {
	return d.depth
}

// Next returns the next instruction, or io.EOF after the end that closes the body has been returned.
// Any other error is a *wasmerr.Error.
func (d *Decoder) Next() (Instruction, error) {
	if d.depth == 0 {
		return nil, io.EOF
	}
	start := d.r.Offset()
	op, err := d.r.ReadByte()
	if err != nil {
		return nil, wasmerr.Decode(wasmerr.KindMalformedImmediate, start, "unexpected end of code")
	}

	info, ok := PrimaryInfo(op)
	if !ok {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "invalid opcode 0x%x", op)
	}
	if info.Feature != 0 {
		if err = d.features.Require(info.Feature); err != nil {
			return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "%s: %v", info.Name, err)
		}
	}
	if d.initializer && !initializerOpcode(op) {
		return nil, wasmerr.Decode(wasmerr.KindDisallowedInitializerOpcode, start, "%s", info.Name)
	}

	in, err := d.decode(op, start)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpcodeBlock, OpcodeLoop, OpcodeIf:
		d.depth++
	case OpcodeEnd:
		d.depth--
	}
	return in, nil
}

func initializerOpcode(op Opcode) bool {
	switch op {
	case OpcodeI32Const, OpcodeI64Const, OpcodeF32Const, OpcodeF64Const, OpcodeGlobalGet, OpcodeEnd, OpcodeVecPrefix:
		return true
	}
	return false
}

func (d *Decoder) decode(op Opcode, start int64) (Instruction, error) {
	switch op {
	case OpcodeBlock, OpcodeLoop, OpcodeIf:
		bt, err := d.blockType()
		if err != nil {
			return nil, err
		}
		return Block{Op: op, Type: bt}, nil
	case OpcodeBr, OpcodeBrIf:
		depth, err := d.u32()
		if err != nil {
			return nil, err
		}
		return Branch{Op: op, Depth: depth}, nil
	case OpcodeBrTable:
		return d.branchTable()
	case OpcodeCall:
		idx, err := d.u32()
		if err != nil {
			return nil, err
		}
		return Call{Func: idx}, nil
	case OpcodeCallIndirect:
		typeIdx, err := d.u32()
		if err != nil {
			return nil, err
		}
		tableIdx, err := d.u32()
		if err != nil {
			return nil, err
		}
		return CallIndirect{Type: typeIdx, Table: tableIdx}, nil
	case OpcodeLocalGet, OpcodeLocalSet, OpcodeLocalTee, OpcodeGlobalGet, OpcodeGlobalSet:
		idx, err := d.u32()
		if err != nil {
			return nil, err
		}
		return Variable{Op: op, Index: idx}, nil
	case OpcodeMemorySize, OpcodeMemoryGrow:
		at := d.r.Offset()
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, d.truncated(at)
		}
		if b != 0 {
			return nil, wasmerr.Decode(wasmerr.KindMalformedImmediate, at, "memory index must be zero, but was %d", b)
		}
		return MemoryControl{Op: op}, nil
	case OpcodeI32Const:
		at := d.r.Offset()
		v, _, err := leb128.DecodeInt32(d.r)
		if err != nil {
			return nil, d.malformed(at, err)
		}
		return I32Const{Value: v}, nil
	case OpcodeI64Const:
		at := d.r.Offset()
		v, _, err := leb128.DecodeInt64(d.r)
		if err != nil {
			return nil, d.malformed(at, err)
		}
		return I64Const{Value: v}, nil
	case OpcodeF32Const:
		at := d.r.Offset()
		buf, err := d.r.ReadBytes(4)
		if err != nil {
			return nil, d.truncated(at)
		}
		bits, _ := ieee754.DecodeFloat32Bits(buf)
		return F32Const{Bits: bits}, nil
	case OpcodeF64Const:
		at := d.r.Offset()
		buf, err := d.r.ReadBytes(8)
		if err != nil {
			return nil, d.truncated(at)
		}
		bits, _ := ieee754.DecodeFloat64Bits(buf)
		return F64Const{Bits: bits}, nil
	case OpcodeMiscPrefix:
		return d.misc()
	case OpcodeVecPrefix:
		return d.vec()
	}

	if info := &primaryTable[op]; info.Category == CategoryMemoryRead || info.Category == CategoryMemoryWrite {
		arg, err := d.memoryImmediate()
		if err != nil {
			return nil, err
		}
		return Memory{Op: op, Arg: arg}, nil
	}
	return Simple{Op: op}, nil
}

func (d *Decoder) misc() (Instruction, error) {
	start := d.r.Offset()
	sub, err := d.r.ReadVarUint32()
	if err != nil {
		return nil, d.malformed(start, err)
	}
	if sub > 0xff {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "invalid misc opcode 0x%x", sub)
	}
	info, ok := MiscInfo(OpcodeMisc(sub))
	if !ok {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "invalid misc opcode 0x%x", sub)
	}
	if err = d.features.Require(info.Feature); err != nil {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "%s: %v", info.Name, err)
	}
	return Misc{Op: OpcodeMisc(sub)}, nil
}

func (d *Decoder) vec() (Instruction, error) {
	start := d.r.Offset()
	sub, err := d.r.ReadVarUint32()
	if err != nil {
		return nil, d.malformed(start, err)
	}
	if sub > 0xff {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "invalid vector opcode 0x%x", sub)
	}
	op := OpcodeVec(sub)
	info, ok := VecInfoOf(op)
	if !ok {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "invalid vector opcode 0x%x", sub)
	}
	if err = d.features.Require(FeatureSIMD); err != nil {
		return nil, wasmerr.Decode(wasmerr.KindUnknownOpcode, start, "%s: %v", info.Name, err)
	}
	if d.initializer && op != OpcodeVecV128Const {
		return nil, wasmerr.Decode(wasmerr.KindDisallowedInitializerOpcode, start, "%s", info.Name)
	}

	switch info.Category {
	case CategoryConst:
		at := d.r.Offset()
		buf, err := d.r.ReadBytes(16)
		if err != nil {
			return nil, d.truncated(at)
		}
		var c VecConst
		copy(c.Value[:], buf)
		return c, nil
	case CategoryShuffle:
		at := d.r.Offset()
		buf, err := d.r.ReadBytes(16)
		if err != nil {
			return nil, wasmerr.DecodeCause(wasmerr.KindMalformedShuffle, at, io.ErrUnexpectedEOF)
		}
		// Lanes from 32 up are kept. The shuffle clamps them to lane 0 of the second operand.
		var s VecShuffle
		copy(s.Lanes[:], buf)
		return s, nil
	case CategoryExtractLane, CategoryReplaceLane:
		at := d.r.Offset()
		lane, err := d.r.ReadByte()
		if err != nil {
			return nil, d.truncated(at)
		}
		return VecLane{Op: op, Lane: lane}, nil
	case CategoryMemoryRead, CategoryMemoryWrite:
		arg, err := d.memoryImmediate()
		if err != nil {
			return nil, err
		}
		return VecMemory{Op: op, Arg: arg}, nil
	case CategoryMemoryLaneRead, CategoryMemoryLaneWrite:
		arg, err := d.memoryImmediate()
		if err != nil {
			return nil, err
		}
		at := d.r.Offset()
		lane, err := d.r.ReadByte()
		if err != nil {
			return nil, d.truncated(at)
		}
		return VecMemoryLane{Op: op, Arg: arg, Lane: lane}, nil
	}
	return Vec{Op: op}, nil
}

func (d *Decoder) blockType() (BlockType, error) {
	at := d.r.Offset()
	raw, _, err := leb128.DecodeInt33AsInt64(d.r)
	if err != nil {
		return BlockType{}, d.malformed(at, err)
	}
	if raw >= 0 {
		if err = d.features.Require(FeatureMultiValue); err != nil {
			return BlockType{}, wasmerr.Decode(wasmerr.KindMalformedImmediate, at, "block type index %d: %v", raw, err)
		}
		return BlockType{TypeIndex: uint32(raw), Indexed: true}, nil
	}
	// Negative values are the single byte encodings of the empty type or a value kind.
	b := byte(raw & 0x7f)
	if b == blockTypeEmpty {
		return BlockType{}, nil
	}
	if k, ok := ValueKindFromByte(b, d.features); ok {
		return BlockType{Result: k}, nil
	}
	return BlockType{}, wasmerr.Decode(wasmerr.KindMalformedImmediate, at, "invalid block type 0x%x", b)
}

func (d *Decoder) branchTable() (Instruction, error) {
	at := d.r.Offset()
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	// Each target takes at least one byte, so a count larger than what is left is malformed. This keeps a
	// corrupt count from allocating.
	if sr, ok := d.r.(*SliceReader); ok && int(n) > sr.Len() {
		return nil, wasmerr.Decode(wasmerr.KindMalformedImmediate, at, "br_table has %d targets, but only %d bytes remain", n, sr.Len())
	}
	targets := make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		t, err := d.u32()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	def, err := d.u32()
	if err != nil {
		return nil, err
	}
	return BranchTable{Targets: targets, Default: def}, nil
}

func (d *Decoder) memoryImmediate() (MemoryImmediate, error) {
	align, err := d.u32()
	if err != nil {
		return MemoryImmediate{}, err
	}
	offset, err := d.u32()
	if err != nil {
		return MemoryImmediate{}, err
	}
	return MemoryImmediate{Align: align, Offset: offset}, nil
}

func (d *Decoder) u32() (uint32, error) {
	at := d.r.Offset()
	v, err := d.r.ReadVarUint32()
	if err != nil {
		return 0, d.malformed(at, err)
	}
	return v, nil
}

func (d *Decoder) truncated(at int64) error {
	return wasmerr.DecodeCause(wasmerr.KindMalformedImmediate, at, io.ErrUnexpectedEOF)
}

func (d *Decoder) malformed(at int64, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return wasmerr.DecodeCause(wasmerr.KindMalformedImmediate, at, err)
}

// DecodeBody decodes a whole code body, up to and including the end that closes it.
func DecodeBody(r Reader, features Features) ([]Instruction, error) {
	return decodeAll(NewDecoder(r, features))
}

// DecodeInitializer decodes a constant expression: i32.const, i64.const, f32.const, f64.const, global.get and, with
// FeatureSIMD, v128.const, terminated by end. Any other opcode fails with wasmerr.KindDisallowedInitializerOpcode.
func DecodeInitializer(r Reader, features Features) ([]Instruction, error) {
	return decodeAll(NewInitializerDecoder(r, features))
}

func decodeAll(d *Decoder) (ret []Instruction, err error) {
	for {
		var in Instruction
		if in, err = d.Next(); err == io.EOF {
			return ret, nil
		} else if err != nil {
			return nil, err
		}
		ret = append(ret, in)
	}
}
