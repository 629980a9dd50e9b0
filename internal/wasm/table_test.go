package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstructionName(t *testing.T) {
	require.Equal(t, "i32.add", InstructionName(OpcodeI32Add))
	require.Equal(t, "f64.copysign", InstructionName(OpcodeF64Copysign))
	require.Equal(t, "i64.rotr", InstructionName(OpcodeI64Rotr))
	require.Equal(t, "f32.ge", InstructionName(OpcodeF32Ge))
	require.Equal(t, "i64.extend32_s", InstructionName(OpcodeI64Extend32S))
	require.Equal(t, "i64.trunc_sat_f64_u", MiscInstructionName(OpcodeMiscI64TruncSatF64U))
	require.Equal(t, "", InstructionName(0x06))
}

func TestPrimaryInfo(t *testing.T) {
	info, ok := PrimaryInfo(OpcodeI64LtU)
	require.True(t, ok)
	require.Equal(t, CategoryBinary, info.Category)
	require.Equal(t, []ValueKind{ValueKindI64, ValueKindI64}, info.Params)
	require.Equal(t, []ValueKind{ValueKindI32}, info.Results)

	info, ok = PrimaryInfo(OpcodeI32Load16S)
	require.True(t, ok)
	require.Equal(t, CategoryMemoryRead, info.Category)
	require.Equal(t, uint32(2), info.Width)
	require.Equal(t, uint32(1), info.NaturalAlignment())
	require.True(t, info.Signed)

	info, ok = PrimaryInfo(OpcodeF64ConvertI64U)
	require.True(t, ok)
	require.Equal(t, []ValueKind{ValueKindI64}, info.Params)
	require.Equal(t, []ValueKind{ValueKindF64}, info.Results)

	info, _ = PrimaryInfo(OpcodeI32Extend16S)
	require.Equal(t, FeatureSignExtensionOps, info.Feature)

	_, ok = PrimaryInfo(0xd0)
	require.False(t, ok)
}

func TestVecInfoOf(t *testing.T) {
	assigned := 0
	for i := 0; i < 256; i++ {
		if _, ok := VecInfoOf(OpcodeVec(i)); ok {
			assigned++
		}
	}
	require.Equal(t, 236, assigned)

	info, ok := VecInfoOf(OpcodeVecV128Load64Lane)
	require.True(t, ok)
	require.Equal(t, CategoryMemoryLaneRead, info.Category)
	require.Equal(t, ShapeI64x2, info.Shape)
	require.Equal(t, uint32(3), info.NaturalAlignment())

	info, _ = VecInfoOf(OpcodeVecI32x4ExtmulHighI16x8U)
	require.Equal(t, ShapeI32x4, info.Shape)
	require.True(t, info.High)
	require.False(t, info.Signed)
	require.True(t, info.Lowered)

	info, _ = VecInfoOf(OpcodeVecI8x16Swizzle)
	require.False(t, info.Lowered)

	for _, unassigned := range []OpcodeVec{0x9a, 0xa2, 0xa5, 0xa6, 0xaf, 0xb0, 0xb2, 0xb3, 0xb4, 0xbb, 0xc2, 0xc5, 0xc6, 0xcf, 0xd0, 0xd2, 0xd3, 0xd4, 0xe2, 0xee} {
		_, ok := VecInfoOf(unassigned)
		require.False(t, ok, "0x%x", unassigned)
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		shape     Shape
		lanes     int
		laneBytes int
		laneKind  ValueKind
	}{
		{ShapeI8x16, 16, 1, ValueKindI32},
		{ShapeI16x8, 8, 2, ValueKindI32},
		{ShapeI32x4, 4, 4, ValueKindI32},
		{ShapeI64x2, 2, 8, ValueKindI64},
		{ShapeF32x4, 4, 4, ValueKindF32},
		{ShapeF64x2, 2, 8, ValueKindF64},
		{ShapeV128, 1, 16, ValueKindV128},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.shape.String(), func(t *testing.T) {
			require.Equal(t, tc.lanes, tc.shape.Lanes())
			require.Equal(t, tc.laneBytes, tc.shape.LaneBytes())
			require.Equal(t, tc.laneKind, tc.shape.LaneKind())
		})
	}
}

func TestFeatures(t *testing.T) {
	f := Features(0).Set(FeatureSIMD, true).Set(FeatureMultiValue, true)
	require.True(t, f.IsEnabled(FeatureSIMD))
	require.False(t, f.IsEnabled(FeatureSignExtensionOps))
	require.NoError(t, f.Require(FeatureMultiValue))
	require.EqualError(t, f.Require(FeatureSignExtensionOps), `feature "sign-extension-ops" is disabled`)
	require.Equal(t, "multi-value|simd", f.String())
	require.Equal(t, "sign-extension-ops|nontrapping-float-to-int-conversion|multi-value|simd", FeaturesAll.String())
}

func TestValueKindFromByte(t *testing.T) {
	k, ok := ValueKindFromByte(0x7b, FeaturesAll)
	require.True(t, ok)
	require.Equal(t, ValueKindV128, k)

	_, ok = ValueKindFromByte(0x7b, FeaturesAll.Set(FeatureSIMD, false))
	require.False(t, ok)

	_, ok = ValueKindFromByte(0x70, FeaturesAll)
	require.False(t, ok)
}
