package wasm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func TestDecodeBody_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{
			name: "empty",
			body: []byte{OpcodeEnd},
		},
		{
			name: "i32.add",
			body: []byte{OpcodeI32Const, 1, OpcodeI32Const, 2, OpcodeI32Add, OpcodeEnd},
		},
		{
			name: "negative consts",
			body: []byte{
				OpcodeI32Const, 0x7f, OpcodeDrop, // -1
				OpcodeI64Const, 0x80, 0x7f, OpcodeDrop, // -128
				OpcodeEnd,
			},
		},
		{
			name: "float consts keep NaN payloads",
			body: []byte{
				OpcodeF32Const, 0x01, 0x00, 0xc0, 0x7f, OpcodeDrop,
				OpcodeF64Const, 0x01, 0, 0, 0, 0, 0, 0xf8, 0x7f, OpcodeDrop,
				OpcodeEnd,
			},
		},
		{
			name: "blocks",
			body: []byte{
				OpcodeBlock, blockTypeEmpty,
				OpcodeLoop, ValueKindI32,
				OpcodeI32Const, 0, OpcodeBrIf, 1,
				OpcodeI32Const, 0,
				OpcodeEnd,
				OpcodeIf, 0x00, // type index zero
				OpcodeElse,
				OpcodeEnd,
				OpcodeEnd,
				OpcodeEnd,
			},
		},
		{
			name: "br_table",
			body: []byte{
				OpcodeBlock, blockTypeEmpty,
				OpcodeLocalGet, 0, OpcodeBrTable, 3, 0, 1, 0, 0,
				OpcodeEnd,
				OpcodeEnd,
			},
		},
		{
			name: "calls and variables",
			body: []byte{
				OpcodeLocalGet, 0x81, 0x01, // 129
				OpcodeLocalTee, 1, OpcodeGlobalSet, 2, OpcodeGlobalGet, 0,
				OpcodeCall, 5,
				OpcodeI32Const, 0, OpcodeCallIndirect, 1, 0,
				OpcodeReturn,
				OpcodeEnd,
			},
		},
		{
			name: "memory",
			body: []byte{
				OpcodeI32Const, 0, OpcodeI64Load32S, 2, 0x10, OpcodeDrop,
				OpcodeI32Const, 0, OpcodeF64Const, 0, 0, 0, 0, 0, 0, 0, 0, OpcodeF64Store, 3, 0x80, 0x01,
				OpcodeMemorySize, 0, OpcodeMemoryGrow, 0, OpcodeDrop,
				OpcodeEnd,
			},
		},
		{
			name: "misc",
			body: []byte{
				OpcodeF32Const, 0, 0, 0, 0, OpcodeMiscPrefix, OpcodeMiscI64TruncSatF32U, OpcodeDrop,
				OpcodeEnd,
			},
		},
		{
			name: "vectors",
			body: []byte{
				OpcodeVecPrefix, OpcodeVecV128Const, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
				OpcodeVecPrefix, OpcodeVecV128Const, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
				OpcodeVecPrefix, OpcodeVecI8x16Shuffle, 0, 17, 2, 19, 4, 21, 6, 23, 8, 25, 10, 27, 12, 29, 32, 255,
				OpcodeVecPrefix, 0x80, 0x01, // i16x8.abs: sub-opcodes above 0x7f take two bytes.
				OpcodeVecPrefix, OpcodeVecI16x8ExtractLaneS, 7,
				OpcodeDrop,
				OpcodeI32Const, 0,
				OpcodeVecPrefix, OpcodeVecV128Load32Splat, 2, 4,
				OpcodeI32Const, 0,
				OpcodeVecPrefix, OpcodeVecV128Load16Lane, 1, 0, 3,
				OpcodeDrop, OpcodeDrop,
				OpcodeEnd,
			},
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			instructions, err := DecodeBody(NewReader(tc.body, 0), FeaturesAll)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, instructions))
			require.Equal(t, tc.body, buf.Bytes())

			// AppendInstruction agrees with Encode instruction by instruction.
			var appended []byte
			for _, in := range instructions {
				appended = AppendInstruction(appended, in)
			}
			require.Equal(t, tc.body, appended)
		})
	}
}

func TestDecoder_Next(t *testing.T) {
	body := []byte{
		OpcodeBlock, blockTypeEmpty,
		OpcodeNop,
		OpcodeEnd,
		OpcodeEnd,
		OpcodeUnreachable, // trailing bytes are never read
	}
	d := NewDecoder(NewReader(body, 0), FeaturesAll)

	var got []Instruction
	for {
		in, err := d.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, in)
	}
	require.Equal(t, []Instruction{
		Block{Op: OpcodeBlock},
		Simple{Op: OpcodeNop},
		Simple{Op: OpcodeEnd},
		Simple{Op: OpcodeEnd},
	}, got)
	require.Zero(t, d.Depth())

	// io.EOF is sticky.
	_, err := d.Next()
	require.Equal(t, io.EOF, err)
}

func TestDecodeBody_Errors(t *testing.T) {
	const base = 100
	tests := []struct {
		name     string
		body     []byte
		features Features
		kind     wasmerr.Kind
		offset   int64
	}{
		{
			name:   "unknown opcode",
			body:   []byte{OpcodeI32Const, 1, 0x06, OpcodeEnd},
			kind:   wasmerr.KindUnknownOpcode,
			offset: base + 2,
		},
		{
			name:   "unknown misc opcode",
			body:   []byte{OpcodeNop, OpcodeMiscPrefix, 0x40, OpcodeEnd},
			kind:   wasmerr.KindUnknownOpcode,
			offset: base + 2,
		},
		{
			name:   "unassigned vector opcode",
			body:   []byte{OpcodeVecPrefix, 0x9a, 0x01, OpcodeEnd},
			kind:   wasmerr.KindUnknownOpcode,
			offset: base + 1,
		},
		{
			name:   "vector opcode out of range",
			body:   []byte{OpcodeVecPrefix, 0x80, 0x02, OpcodeEnd},
			kind:   wasmerr.KindUnknownOpcode,
			offset: base + 1,
		},
		{
			name:     "sign extension disabled",
			body:     []byte{OpcodeI32Const, 1, OpcodeI32Extend8S, OpcodeEnd},
			features: FeaturesAll.Set(FeatureSignExtensionOps, false),
			kind:     wasmerr.KindUnknownOpcode,
			offset:   base + 2,
		},
		{
			name:     "trunc_sat disabled",
			body:     []byte{OpcodeNop, OpcodeMiscPrefix, OpcodeMiscI32TruncSatF32S, OpcodeEnd},
			features: FeaturesAll.Set(FeatureNonTrappingFloatToIntConversion, false),
			kind:     wasmerr.KindUnknownOpcode,
			offset:   base + 2,
		},
		{
			name:     "simd disabled",
			body:     []byte{OpcodeVecPrefix, OpcodeVecI8x16Add, OpcodeEnd},
			features: FeaturesAll.Set(FeatureSIMD, false),
			kind:     wasmerr.KindUnknownOpcode,
			offset:   base + 1,
		},
		{
			name:     "block type index without multi-value",
			body:     []byte{OpcodeBlock, 0x00, OpcodeEnd, OpcodeEnd},
			features: FeaturesAll.Set(FeatureMultiValue, false),
			kind:     wasmerr.KindMalformedImmediate,
			offset:   base + 1,
		},
		{
			name:   "truncated shuffle lanes",
			body:   []byte{OpcodeVecPrefix, OpcodeVecI8x16Shuffle, 0, 1, 2, 3},
			kind:   wasmerr.KindMalformedShuffle,
			offset: base + 2,
		},
		{
			name:   "truncated const",
			body:   []byte{OpcodeI32Const},
			kind:   wasmerr.KindMalformedImmediate,
			offset: base + 1,
		},
		{
			name:   "overlong leb128",
			body:   []byte{OpcodeLocalGet, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00, OpcodeEnd},
			kind:   wasmerr.KindMalformedImmediate,
			offset: base + 1,
		},
		{
			name:   "missing end",
			body:   []byte{OpcodeNop},
			kind:   wasmerr.KindMalformedImmediate,
			offset: base + 1,
		},
		{
			name:   "memory index",
			body:   []byte{OpcodeMemorySize, 1, OpcodeEnd},
			kind:   wasmerr.KindMalformedImmediate,
			offset: base + 1,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			features := tc.features
			if features == 0 {
				features = FeaturesAll
			}
			_, err := DecodeBody(NewReader(tc.body, base), features)
			require.Error(t, err)

			var werr *wasmerr.Error
			require.True(t, errors.As(err, &werr))
			require.Equal(t, tc.kind, werr.Kind)
			require.Equal(t, wasmerr.PhaseDecode, werr.Phase)
			require.Equal(t, tc.offset, werr.Offset)
		})
	}
}

func TestDecodeInitializer(t *testing.T) {
	tests := []struct {
		name     string
		expr     []byte
		expected []Instruction
	}{
		{
			name:     "i32.const",
			expr:     []byte{OpcodeI32Const, 0x2a, OpcodeEnd},
			expected: []Instruction{I32Const{Value: 42}, Simple{Op: OpcodeEnd}},
		},
		{
			name:     "global.get",
			expr:     []byte{OpcodeGlobalGet, 3, OpcodeEnd},
			expected: []Instruction{Variable{Op: OpcodeGlobalGet, Index: 3}, Simple{Op: OpcodeEnd}},
		},
		{
			name: "v128.const",
			expr: []byte{OpcodeVecPrefix, OpcodeVecV128Const, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, OpcodeEnd},
			expected: []Instruction{
				VecConst{Value: [16]byte{1, 15: 2}},
				Simple{Op: OpcodeEnd},
			},
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, err := DecodeInitializer(NewReader(tc.expr, 0), FeaturesAll)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecodeInitializer_Disallowed(t *testing.T) {
	tests := []struct {
		name   string
		expr   []byte
		offset int64
	}{
		{name: "i32.add", expr: []byte{OpcodeI32Const, 1, OpcodeI32Const, 2, OpcodeI32Add, OpcodeEnd}, offset: 4},
		{name: "local.get", expr: []byte{OpcodeLocalGet, 0, OpcodeEnd}, offset: 0},
		{name: "block", expr: []byte{OpcodeBlock, blockTypeEmpty, OpcodeEnd, OpcodeEnd}, offset: 0},
		{name: "i8x16.splat", expr: []byte{OpcodeI32Const, 1, OpcodeVecPrefix, OpcodeVecI8x16Splat, OpcodeEnd}, offset: 3},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeInitializer(NewReader(tc.expr, 0), FeaturesAll)
			require.ErrorIs(t, err, wasmerr.ErrDisallowedInitializerOpcode)

			var werr *wasmerr.Error
			require.True(t, errors.As(err, &werr))
			require.Equal(t, tc.offset, werr.Offset)
		})
	}
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		in       Instruction
		expected string
	}{
		{in: Simple{Op: OpcodeI32Add}, expected: "i32.add"},
		{in: Block{Op: OpcodeBlock, Type: BlockType{Result: ValueKindI64}}, expected: "block (result i64)"},
		{in: Block{Op: OpcodeLoop, Type: BlockType{TypeIndex: 2, Indexed: true}}, expected: "loop (type 2)"},
		{in: Branch{Op: OpcodeBrIf, Depth: 1}, expected: "br_if 1"},
		{in: BranchTable{Targets: []uint32{0, 2}, Default: 1}, expected: "br_table 0 2 1"},
		{in: Call{Func: 3}, expected: "call 3"},
		{in: CallIndirect{Type: 1}, expected: "call_indirect (type 1)"},
		{in: Variable{Op: OpcodeLocalTee, Index: 4}, expected: "local.tee 4"},
		{in: Memory{Op: OpcodeI32Load, Arg: MemoryImmediate{Align: 2}}, expected: "i32.load"},
		{in: Memory{Op: OpcodeI64Store8, Arg: MemoryImmediate{Offset: 8}}, expected: "i64.store8 offset=8"},
		{in: Memory{Op: OpcodeI32Load, Arg: MemoryImmediate{Align: 0, Offset: 1}}, expected: "i32.load offset=1 align=1"},
		{in: I32Const{Value: -1}, expected: "i32.const -1"},
		{in: I64Const{Value: 1 << 40}, expected: "i64.const 1099511627776"},
		{in: F32Const{Bits: 0x3fc00000}, expected: "f32.const 1.5"},
		{in: F64Const{Bits: 0x7ff8000000000001}, expected: "f64.const nan:0x8000000000001"},
		{in: Misc{Op: OpcodeMiscI32TruncSatF64U}, expected: "i32.trunc_sat_f64_u"},
		{in: Vec{Op: OpcodeVecI8x16AddSatU}, expected: "i8x16.add_sat_u"},
		{in: VecLane{Op: OpcodeVecF32x4ReplaceLane, Lane: 3}, expected: "f32x4.replace_lane 3"},
		{in: VecMemory{Op: OpcodeVecV128Load, Arg: MemoryImmediate{Align: 4, Offset: 16}}, expected: "v128.load offset=16"},
		{in: VecMemoryLane{Op: OpcodeVecV128Store8Lane, Lane: 15}, expected: "v128.store8_lane 15"},
		{in: VecShuffle{Lanes: [16]byte{0, 1, 2, 3, 4, 5, 6, 7, 16, 17, 18, 19, 20, 21, 22, 23}}, expected: "i8x16.shuffle 0 1 2 3 4 5 6 7 16 17 18 19 20 21 22 23"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.in.String())
		})
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(I32Const{Value: 1}, I32Const{Value: 1}))
	require.False(t, Equal(I32Const{Value: 1}, I32Const{Value: 2}))
	require.False(t, Equal(I32Const{Value: 1}, I64Const{Value: 1}))
	require.True(t, Equal(
		BranchTable{Targets: []uint32{1, 2}, Default: 0},
		BranchTable{Targets: []uint32{1, 2}, Default: 0},
	))
	require.False(t, Equal(
		BranchTable{Targets: []uint32{1, 2}, Default: 0},
		BranchTable{Targets: []uint32{1}, Default: 0},
	))
	require.False(t, Equal(BranchTable{}, Simple{Op: OpcodeBrTable}))
	require.True(t, Equal(VecShuffle{Lanes: [16]byte{1}}, VecShuffle{Lanes: [16]byte{1}}))
}
