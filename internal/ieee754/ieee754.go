// Package ieee754 reads and writes the little-endian float immediates of the WebAssembly binary format.
package ieee754

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeFloat32 decodes a float32 in IEEE 754 binary representation.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#floating-point%E2%91%A2
func DecodeFloat32(buf []byte) (float32, error) {
	raw, err := DecodeFloat32Bits(buf)
	return math.Float32frombits(raw), err
}

// DecodeFloat32Bits is like DecodeFloat32, but leaves the value as raw bits so NaN payloads survive.
func DecodeFloat32Bits(buf []byte) (uint32, error) {
	if len(buf) < 4 {
		return 0, fmt.Errorf("need 4 bytes for f32, but have %d", len(buf))
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// DecodeFloat64 decodes a float64 in IEEE 754 binary representation.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#floating-point%E2%91%A2
func DecodeFloat64(buf []byte) (float64, error) {
	raw, err := DecodeFloat64Bits(buf)
	return math.Float64frombits(raw), err
}

// DecodeFloat64Bits is like DecodeFloat64, but leaves the value as raw bits so NaN payloads survive.
func DecodeFloat64Bits(buf []byte) (uint64, error) {
	if len(buf) < 8 {
		return 0, fmt.Errorf("need 8 bytes for f64, but have %d", len(buf))
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// AppendFloat32Bits appends the little-endian encoding of the raw f32 bits.
func AppendFloat32Bits(buf []byte, bits uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, bits)
}

// AppendFloat64Bits appends the little-endian encoding of the raw f64 bits.
func AppendFloat64Bits(buf []byte, bits uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, bits)
}
