package ieee754

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFloat32(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input []byte
		exp   float32
	}{
		{name: "zero", input: []byte{0, 0, 0, 0}, exp: 0},
		{name: "one", input: []byte{0, 0, 0x80, 0x3f}, exp: 1},
		{name: "negative", input: []byte{0, 0, 0x80, 0xbf}, exp: -1},
		{name: "inf", input: []byte{0, 0, 0x80, 0x7f}, exp: float32(math.Inf(1))},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			actual, err := DecodeFloat32(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.exp, actual)
			require.Equal(t, tc.input, AppendFloat32Bits(nil, math.Float32bits(actual)))
		})
	}
}

func TestDecodeFloat64(t *testing.T) {
	actual, err := DecodeFloat64([]byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f})
	require.NoError(t, err)
	require.Equal(t, float64(1), actual)
}

func TestDecodeBits_KeepsNaNPayload(t *testing.T) {
	in := []byte{0x01, 0x00, 0xc0, 0x7f}
	bits, err := DecodeFloat32Bits(in)
	require.NoError(t, err)
	require.Equal(t, uint32(0x7fc00001), bits)
	require.Equal(t, in, AppendFloat32Bits(nil, bits))

	in64 := []byte{0x01, 0, 0, 0, 0, 0, 0xf8, 0x7f}
	bits64, err := DecodeFloat64Bits(in64)
	require.NoError(t, err)
	require.Equal(t, in64, AppendFloat64Bits(nil, bits64))
}

func TestDecode_Short(t *testing.T) {
	_, err := DecodeFloat32([]byte{0, 0})
	require.EqualError(t, err, "need 4 bytes for f32, but have 2")
	_, err = DecodeFloat64([]byte{0})
	require.EqualError(t, err, "need 8 bytes for f64, but have 1")
}
