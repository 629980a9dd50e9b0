package compiler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func splatBytes(b byte) (ret [16]byte) {
	for i := range ret {
		ret[i] = b
	}
	return
}

func TestCompileFunction_vector(t *testing.T) {
	var iota, upper, reversedHigh [16]byte
	for i := range iota {
		iota[i] = byte(i)
		upper[i] = byte(0x20 + i)
		reversedHigh[i] = byte(31 - i)
	}

	tests := []struct {
		name     string
		result   wasm.ValueKind
		body     []wasm.Instruction
		expected vm.Value
	}{
		{
			name:   "lowered add_sat_u",
			result: i32,
			body: []wasm.Instruction{
				wasm.VecConst{Value: splatBytes(200)}, wasm.VecConst{Value: splatBytes(100)},
				wasm.Vec{Op: wasm.OpcodeVecI8x16AddSatU},
				wasm.VecLane{Op: wasm.OpcodeVecI8x16ExtractLaneU, Lane: 3},
			},
			expected: vm.I32(255),
		},
		{
			name:   "direct add",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{Value: v128Bytes(1|2<<32, 3|4<<32)}, wasm.VecConst{Value: v128Bytes(10|20<<32, 30|40<<32)},
				wasm.Vec{Op: wasm.OpcodeVecI32x4Add},
			},
			expected: vm.V128(11|22<<32, 33|44<<32),
		},
		{
			name:   "shuffle",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{Value: iota}, wasm.VecConst{Value: splatBytes(0x10)},
				wasm.VecShuffle{Lanes: [16]byte{0, 16, 1, 16, 2, 16, 3, 16, 4, 16, 5, 16, 6, 16, 7, 16}},
			},
			expected: vm.V128(0x1003_1002_1001_1000, 0x1007_1006_1005_1004),
		},
		{
			name:   "shuffle high lanes",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{}, wasm.VecConst{Value: iota},
				wasm.VecShuffle{Lanes: reversedHigh},
			},
			expected: vm.V128(0x08090a0b_0c0d0e0f, 0x00010203_04050607),
		},
		{
			name:   "shuffle clamps lanes from 32",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{Value: iota}, wasm.VecConst{Value: upper},
				wasm.VecShuffle{Lanes: [16]byte{32, 1, 255, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
			},
			expected: vm.V128(0x07060504_03200120, 0x0f0e0d0c_0b0a0908),
		},
		{
			name:   "extract_lane_s",
			result: i32,
			body: []wasm.Instruction{
				wasm.VecConst{Value: splatBytes(0xff)}, wasm.VecLane{Op: wasm.OpcodeVecI8x16ExtractLaneS, Lane: 15},
			},
			expected: vm.I32(0xffffffff),
		},
		{
			name:   "f64x2.extract_lane",
			result: wasm.ValueKindF64,
			body: []wasm.Instruction{
				wasm.VecConst{Value: v128Bytes(0, math.Float64bits(1.5))}, wasm.VecLane{Op: wasm.OpcodeVecF64x2ExtractLane, Lane: 1},
			},
			expected: vm.F64(1.5),
		},
		{
			name:   "replace_lane",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{}, wasm.I32Const{Value: 7}, wasm.VecLane{Op: wasm.OpcodeVecI32x4ReplaceLane, Lane: 1},
			},
			expected: vm.V128(7<<32, 0),
		},
		{
			name:     "splat",
			result:   wasm.ValueKindV128,
			body:     []wasm.Instruction{wasm.I32Const{Value: 5}, wasm.Vec{Op: wasm.OpcodeVecI32x4Splat}},
			expected: vm.V128(5|5<<32, 5|5<<32),
		},
		{
			name:   "lowered ne",
			result: wasm.ValueKindV128,
			body: []wasm.Instruction{
				wasm.VecConst{Value: v128Bytes(1, 0)}, wasm.VecConst{Value: v128Bytes(0, 0)}, wasm.Vec{Op: wasm.OpcodeVecI8x16Ne},
			},
			expected: vm.V128(0xff, 0),
		},
		{
			name:   "any_true",
			result: i32,
			body: []wasm.Instruction{
				wasm.VecConst{Value: v128Bytes(0, 1<<40)}, wasm.Vec{Op: wasm.OpcodeVecV128AnyTrue},
			},
			expected: vm.I32(1),
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			cfg := newConfig(vm.Default())
			module := singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{tc.result}})
			r, err := CompileFunction(cfg, module, 0, nil, append(tc.body, end))
			require.NoError(t, err)

			results, err := run(t, r, nil)
			require.NoError(t, err)
			require.Equal(t, []vm.Value{tc.expected}, results)
		})
	}
}

func TestCompileFunction_vectorHelpers(t *testing.T) {
	cfg := newConfig(vm.Default())
	module := singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{wasm.ValueKindV128}})
	body := []wasm.Instruction{
		wasm.VecConst{}, wasm.VecConst{}, wasm.Vec{Op: wasm.OpcodeVecI8x16AddSatU},
		wasm.VecConst{}, wasm.Vec{Op: wasm.OpcodeVecI8x16AddSatU},
		end,
	}
	r, err := CompileFunction(cfg, module, 0, nil, body)
	require.NoError(t, err)

	var calls []*vm.Routine
	for i := range r.Code {
		if in := &r.Code[i]; in.Kind == vm.OpCallHelper {
			calls = append(calls, in.Routine)
		}
	}
	require.Equal(t, 2, len(calls))
	require.Same(t, calls[0], calls[1], "one helper per operation")
	require.Equal(t, "i8x16.add_sat_u", calls[0].Name)
	require.Equal(t, 1, cfg.Helpers.Len())
}

func TestCompileFunction_vectorErrors(t *testing.T) {
	module := singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{wasm.ValueKindV128}})
	addSat := []wasm.Instruction{wasm.VecConst{}, wasm.VecConst{}, wasm.Vec{Op: wasm.OpcodeVecI8x16AddSatU}, end}

	t.Run("simd disabled", func(t *testing.T) {
		cfg := newConfig(vm.Default())
		cfg.Features = cfg.Features.Set(wasm.FeatureSIMD, false)
		_, err := CompileFunction(cfg, module, 0, nil, addSat)
		require.True(t, errors.Is(err, wasmerr.ErrUnknownOpcode))
	})

	t.Run("lowering needs a missing primitive", func(t *testing.T) {
		cfg := newConfig(vm.Default().Without(vm.PrimKey{Op: vm.PrimAdd, Shape: vm.ShapeI8x16}))
		_, err := CompileFunction(cfg, module, 0, nil, addSat)
		require.True(t, errors.Is(err, wasmerr.ErrMissingPrimitive))
		require.EqualError(t, err, "[emit] missing_primitive in i8x16.add_sat_u: target has no i8x16.add")
	})

	t.Run("direct primitive missing", func(t *testing.T) {
		cfg := newConfig(vm.Default().Without(vm.PrimKey{Op: vm.PrimAdd, Shape: vm.ShapeI32x4}))
		_, err := CompileFunction(cfg, module, 0, nil,
			[]wasm.Instruction{wasm.VecConst{}, wasm.VecConst{}, wasm.Vec{Op: wasm.OpcodeVecI32x4Add}, end})
		require.EqualError(t, err, "[emit] missing_primitive in i32x4.add: target has no i32x4.add")
	})

	t.Run("lane out of range", func(t *testing.T) {
		_, err := compileBody(t, singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}}), nil,
			wasm.VecConst{}, wasm.VecLane{Op: wasm.OpcodeVecI32x4ExtractLane, Lane: 4}, end)
		require.True(t, errors.Is(err, wasmerr.ErrInvalidLaneIndex))
		require.EqualError(t, err,
			"[validate] invalid_lane_index in i32x4.extract_lane: lane 4 is out of range, as i32x4 has 4 lanes")
	})

	t.Run("splat of the wrong kind", func(t *testing.T) {
		_, err := compileBody(t, module, nil, wasm.I64Const{}, wasm.Vec{Op: wasm.OpcodeVecI32x4Splat}, end)
		require.True(t, errors.Is(err, wasmerr.ErrStackTypeMismatch))
	})
}
