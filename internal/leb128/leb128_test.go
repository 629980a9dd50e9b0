package leb128

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeInt32_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		input    int32
		expected []byte
	}{
		{input: -165675008, expected: []byte{0x80, 0x80, 0x80, 0xb1, 0x7f}},
		{input: -624485, expected: []byte{0x9b, 0xf1, 0x59}},
		{input: -16256, expected: []byte{0x80, 0x81, 0x7f}},
		{input: -4, expected: []byte{0x7c}},
		{input: -1, expected: []byte{0x7f}},
		{input: 0, expected: []byte{0x00}},
		{input: 1, expected: []byte{0x01}},
		{input: 63, expected: []byte{0x3f}},
		{input: 64, expected: []byte{0xc0, 0x00}},
		{input: 16256, expected: []byte{0x80, 0xff, 0x0}},
		{input: 624485, expected: []byte{0xe5, 0x8e, 0x26}},
		{input: math.MaxInt32, expected: []byte{0xff, 0xff, 0xff, 0xff, 0x7}},
		{input: math.MinInt32, expected: []byte{0x80, 0x80, 0x80, 0x80, 0x78}},
	} {
		require.Equal(t, tc.expected, EncodeInt32(tc.input))
		decoded, num, err := LoadInt32(tc.expected)
		require.NoError(t, err)
		require.Equal(t, tc.input, decoded)
		require.Equal(t, uint64(len(tc.expected)), num)
	}
}

func TestEncodeInt64_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		input    int64
		expected []byte
	}{
		{input: -math.MaxInt32, expected: []byte{0x81, 0x80, 0x80, 0x80, 0x78}},
		{input: -624485, expected: []byte{0x9b, 0xf1, 0x59}},
		{input: -1, expected: []byte{0x7f}},
		{input: 0, expected: []byte{0x00}},
		{input: 16256, expected: []byte{0x80, 0xff, 0x0}},
		{input: math.MaxInt64, expected: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x0}},
		{input: math.MinInt64, expected: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f}},
	} {
		require.Equal(t, tc.expected, EncodeInt64(tc.input))
		decoded, num, err := LoadInt64(tc.expected)
		require.NoError(t, err)
		require.Equal(t, tc.input, decoded)
		require.Equal(t, uint64(len(tc.expected)), num)
	}
}

func TestEncodeUint_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		input    uint64
		expected []byte
	}{
		{input: 0, expected: []byte{0x00}},
		{input: 4, expected: []byte{0x04}},
		{input: 0x7f, expected: []byte{0x7f}},
		{input: 0x80, expected: []byte{0x80, 0x01}},
		{input: 16256, expected: []byte{0x80, 0x7f}},
		{input: 165675008, expected: []byte{0x80, 0x80, 0x80, 0x4f}},
		{input: math.MaxUint32, expected: []byte{0xff, 0xff, 0xff, 0xff, 0xf}},
		{input: math.MaxUint64, expected: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x1}},
	} {
		require.Equal(t, tc.expected, EncodeUint64(tc.input))
		decoded, num, err := LoadUint64(tc.expected)
		require.NoError(t, err)
		require.Equal(t, tc.input, decoded)
		require.Equal(t, uint64(len(tc.expected)), num)
		if tc.input <= math.MaxUint32 {
			require.Equal(t, tc.expected, EncodeUint32(uint32(tc.input)))
		}
	}
}

func TestLoadUint32(t *testing.T) {
	tests := []struct {
		name   string
		bytes  []byte
		exp    uint32
		expErr bool
	}{
		{name: "zero", bytes: []byte{0x00}, exp: 0},
		{name: "overlong zero", bytes: []byte{0x80, 0}, exp: 0},
		{name: "three bytes", bytes: []byte{0xe5, 0x8e, 0x26}, exp: 624485},
		{name: "max", bytes: []byte{0xff, 0xff, 0xff, 0xff, 0xf}, exp: math.MaxUint32},
		{name: "too long", bytes: []byte{0x83, 0x80, 0x80, 0x80, 0x80, 0x00}, expErr: true},
		{name: "unused bits set", bytes: []byte{0x82, 0x80, 0x80, 0x80, 0x70}, expErr: true},
		{name: "continuation at limit", bytes: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, expErr: true},
		{name: "truncated", bytes: []byte{0x80, 0x80}, expErr: true},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, num, err := LoadUint32(tc.bytes)
			if tc.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.exp, actual)
			require.Equal(t, uint64(len(tc.bytes)), num)
		})
	}
}

func TestLoadInt32_Overflow(t *testing.T) {
	for _, b := range [][]byte{
		{0xff, 0xff, 0xff, 0xff, 0x0f},
		{0xff, 0xff, 0xff, 0xff, 0x4f},
		{0x80, 0x80, 0x80, 0x80, 0x70},
	} {
		_, _, err := LoadInt32(b)
		require.ErrorIs(t, err, errOverflow32)
	}
}

func TestLoadUint64_Overflow(t *testing.T) {
	_, _, err := LoadUint64([]byte{0x89, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x71})
	require.ErrorIs(t, err, errOverflow64)
}

func TestDecodeInt33AsInt64(t *testing.T) {
	for _, tc := range []struct {
		bytes []byte
		exp   int64
	}{
		{bytes: []byte{0x00}, exp: 0},
		{bytes: []byte{0x40}, exp: -64},
		{bytes: []byte{0x7f}, exp: -1},
		{bytes: []byte{0x7c}, exp: -4},
		{bytes: []byte{0xFF, 0x00}, exp: 127},
		{bytes: []byte{0x81, 0x7f}, exp: -127},
		{bytes: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, exp: math.MaxUint32},
	} {
		actual, num, err := DecodeInt33AsInt64(bytes.NewReader(tc.bytes))
		require.NoError(t, err)
		require.Equal(t, tc.exp, actual)
		require.Equal(t, uint64(len(tc.bytes)), num)
	}
}

func TestDecodeUint32_EOF(t *testing.T) {
	_, num, err := DecodeUint32(bytes.NewReader([]byte{0x81}))
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, uint64(1), num)
}
