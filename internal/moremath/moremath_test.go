package moremath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWasmCompatMin(t *testing.T) {
	require.Equal(t, -1.1, WasmCompatMin(-1.1, 123))
	require.Equal(t, math.Inf(-1), WasmCompatMin(math.Inf(-1), 123))
	require.True(t, math.Signbit(WasmCompatMin(0, math.Copysign(0, -1))))

	// NaN cannot be compared with themselves, so we have to use IsNaN
	require.True(t, math.IsNaN(WasmCompatMin(math.NaN(), 1.0)))
	require.True(t, math.IsNaN(WasmCompatMin(math.Inf(-1), math.NaN())))
}

func TestWasmCompatMax(t *testing.T) {
	require.Equal(t, 123.1, WasmCompatMax(-1.1, 123.1))
	require.Equal(t, math.Inf(1), WasmCompatMax(-1.1, math.Inf(1)))
	require.False(t, math.Signbit(WasmCompatMax(math.Copysign(0, -1), 0)))
	require.True(t, math.IsNaN(WasmCompatMax(math.Inf(1), math.NaN())))
	require.True(t, math.IsNaN(float64(WasmCompatMax32(float32(math.NaN()), 1))))
}

func TestWasmCompatNearest(t *testing.T) {
	require.Equal(t, float32(-2.0), WasmCompatNearestF32(-1.5))
	// This is the diff from math.Round.
	require.Equal(t, float32(-4.0), WasmCompatNearestF32(-4.5))
	require.Equal(t, 4.0, WasmCompatNearestF64(4.5))
	require.True(t, math.Signbit(WasmCompatNearestF64(-0.4)))
}

func TestTruncSat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		i32  int32
		u32  uint32
		i64  int64
		u64  uint64
	}{
		{name: "nan", in: math.NaN()},
		{name: "negative fraction", in: -0.9},
		{name: "positive", in: 42.9, i32: 42, u32: 42, i64: 42, u64: 42},
		{name: "negative", in: -42.9, i32: -42, i64: -42},
		{name: "+inf", in: math.Inf(1), i32: math.MaxInt32, u32: math.MaxUint32, i64: math.MaxInt64, u64: math.MaxUint64},
		{name: "-inf", in: math.Inf(-1), i32: math.MinInt32, i64: math.MinInt64},
		{name: "2^32", in: 1 << 32, i32: math.MaxInt32, u32: math.MaxUint32, i64: 1 << 32, u64: 1 << 32},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.i32, TruncSatI32(tc.in))
			require.Equal(t, tc.u32, TruncSatU32(tc.in))
			require.Equal(t, tc.i64, TruncSatI64(tc.in))
			require.Equal(t, tc.u64, TruncSatU64(tc.in))
		})
	}
}

func TestInRange(t *testing.T) {
	require.True(t, InRangeI32(-2147483648.9))
	require.False(t, InRangeI32(-2147483649))
	require.True(t, InRangeI32(2147483647.9))
	require.False(t, InRangeI32(2147483648))
	require.True(t, InRangeU32(-0.9))
	require.False(t, InRangeU32(-1))
	require.False(t, InRangeU32(4294967296))
	require.True(t, InRangeI64(-9223372036854775808))
	require.False(t, InRangeI64(9223372036854775808))
	require.False(t, InRangeU64(18446744073709551616))
	require.False(t, InRangeU64(math.NaN()))
}
