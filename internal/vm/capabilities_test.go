package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapabilities_Without(t *testing.T) {
	c := Default()
	key := PrimKey{Op: PrimAdd, Shape: ShapeI8x16}

	restricted := c.Without(key)
	_, ok := restricted.Lookup(PrimAdd, ShapeI8x16)
	require.False(t, ok)
	require.Equal(t, c.Len()-1, restricted.Len())

	// The original is untouched.
	_, ok = c.Lookup(PrimAdd, ShapeI8x16)
	require.True(t, ok)
}

func TestCapabilities_Keys(t *testing.T) {
	keys := Default().Keys()
	require.Equal(t, Default().Len(), len(keys))
	for i := 1; i < len(keys); i++ {
		prev, cur := keys[i-1], keys[i]
		require.True(t, prev.Shape < cur.Shape || (prev.Shape == cur.Shape && prev.Op < cur.Op), "%s before %s", prev, cur)
	}
	require.Equal(t, PrimKey{Op: PrimAdd, Shape: ShapeI32}, keys[0])
}

func TestCapabilities_Lookup(t *testing.T) {
	tests := []struct {
		name   string
		key    PrimKey
		exp    bool
		params []Type
		result Type
	}{
		{name: "scalar", key: PrimKey{PrimAdd, ShapeI64}, exp: true, params: []Type{TypeI64, TypeI64}, result: TypeI64},
		{name: "comparison", key: PrimKey{PrimLt, ShapeF32}, exp: true, params: []Type{TypeF32, TypeF32}, result: TypeI32},
		{name: "vector shift", key: PrimKey{PrimShrU, ShapeI16x8}, exp: true, params: []Type{TypeV128, TypeI32}, result: TypeV128},
		{name: "replace lane", key: PrimKey{PrimReplaceLane, ShapeF64x2}, exp: true, params: []Type{TypeV128, TypeI32, TypeF64}, result: TypeV128},
		{name: "no i8x16 mul", key: PrimKey{PrimMul, ShapeI8x16}},
		{name: "no vector ne", key: PrimKey{PrimNe, ShapeI32x4}},
		{name: "no i32x4 extract_lane_u", key: PrimKey{PrimExtractLaneU, ShapeI32x4}},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			p, ok := Default().Lookup(tc.key.Op, tc.key.Shape)
			require.Equal(t, tc.exp, ok)
			if tc.exp {
				require.Equal(t, tc.params, p.Params)
				require.Equal(t, tc.result, p.Result)
			}
		})
	}
}

func TestHostProfile(t *testing.T) {
	p := HostProfile()
	require.NotEmpty(t, p.Arch)
}
