// Package leb128 decodes and encodes the variable-length integers of the WebAssembly binary format.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#integers%E2%91%A4
package leb128

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	maxVarintLen32 = 5
	maxVarintLen33 = 5
	maxVarintLen64 = 10
)

var (
	errOverflow32 = errors.New("overflows a 32-bit integer")
	errOverflow33 = errors.New("overflows a 33-bit integer")
	errOverflow64 = errors.New("overflows a 64-bit integer")
)

// DecodeUint32 reads an unsigned LEB128 value from r and returns it with the count of bytes consumed.
func DecodeUint32(r io.ByteReader) (ret uint32, num uint64, err error) {
	var v uint64
	v, num, err = decodeUnsigned(r, 32, maxVarintLen32, errOverflow32)
	return uint32(v), num, err
}

// DecodeUint64 is like DecodeUint32, but for 64-bit values.
func DecodeUint64(r io.ByteReader) (ret uint64, num uint64, err error) {
	return decodeUnsigned(r, 64, maxVarintLen64, errOverflow64)
}

// DecodeInt32 reads a signed LEB128 value from r.
func DecodeInt32(r io.ByteReader) (ret int32, num uint64, err error) {
	var v int64
	v, num, err = decodeSigned(r, 32, maxVarintLen32, errOverflow32)
	return int32(v), num, err
}

// DecodeInt33AsInt64 reads the signed 33-bit value used for block types, sign-extended to int64.
func DecodeInt33AsInt64(r io.ByteReader) (ret int64, num uint64, err error) {
	return decodeSigned(r, 33, maxVarintLen33, errOverflow33)
}

// DecodeInt64 reads a signed LEB128 value from r.
func DecodeInt64(r io.ByteReader) (ret int64, num uint64, err error) {
	return decodeSigned(r, 64, maxVarintLen64, errOverflow64)
}

// LoadUint32 is DecodeUint32 over a byte slice.
func LoadUint32(buf []byte) (ret uint32, num uint64, err error) {
	return DecodeUint32(bytes.NewReader(buf))
}

// LoadUint64 is DecodeUint64 over a byte slice.
func LoadUint64(buf []byte) (ret uint64, num uint64, err error) {
	return DecodeUint64(bytes.NewReader(buf))
}

// LoadInt32 is DecodeInt32 over a byte slice.
func LoadInt32(buf []byte) (ret int32, num uint64, err error) {
	return DecodeInt32(bytes.NewReader(buf))
}

// LoadInt64 is DecodeInt64 over a byte slice.
func LoadInt64(buf []byte) (ret int64, num uint64, err error) {
	return DecodeInt64(bytes.NewReader(buf))
}

func decodeUnsigned(r io.ByteReader, size uint, maxLen uint64, overflow error) (ret uint64, num uint64, err error) {
	var shift uint
	for num < maxLen {
		var b byte
		if b, err = r.ReadByte(); err != nil {
			return 0, num, fmt.Errorf("readByte failed: %w", err)
		}
		num++
		if num == maxLen {
			// The final byte may only carry the bits left over and no continuation.
			if b&0x80 != 0 || b>>(size-shift) != 0 {
				return 0, num, overflow
			}
		}
		ret |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return ret, num, nil
		}
		shift += 7
	}
	return 0, num, overflow
}

func decodeSigned(r io.ByteReader, size uint, maxLen uint64, overflow error) (ret int64, num uint64, err error) {
	var shift uint
	for num < maxLen {
		var b byte
		if b, err = r.ReadByte(); err != nil {
			return 0, num, fmt.Errorf("readByte failed: %w", err)
		}
		num++
		if num == maxLen {
			if b&0x80 != 0 {
				return 0, num, overflow
			}
			// Unused high bits of the final byte must all repeat the sign bit.
			mask := byte(0x7f) &^ (byte(1)<<(size-shift-1) - 1)
			if v := b & mask; v != 0 && v != mask {
				return 0, num, overflow
			}
		}
		ret |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				ret |= -1 << shift
			}
			return ret, num, nil
		}
	}
	return 0, num, overflow
}

// EncodeInt32 encodes the signed value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_signed_integer
func EncodeInt32(value int32) []byte {
	return EncodeInt64(int64(value))
}

// EncodeInt64 encodes the signed value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_signed_integer
func EncodeInt64(value int64) (buf []byte) {
	for {
		// Take 7 remaining low-order bits from the value into b.
		b := uint8(value & 0x7f)
		// Extract the sign bit.
		s := uint8(value & 0x40)
		value >>= 7

		// The encoding unit is the last one when the remaining value is all sign bits.
		if (value != -1 || s == 0) && (value != 0 || s != 0) {
			b |= 0x80
		}
		buf = append(buf, b)
		if b&0x80 == 0 {
			break
		}
	}
	return buf
}

// EncodeUint32 encodes the value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_unsigned_integer
func EncodeUint32(value uint32) []byte {
	return EncodeUint64(uint64(value))
}

// EncodeUint64 encodes the value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_unsigned_integer
func EncodeUint64(value uint64) (buf []byte) {
	for {
		b := uint8(value & 0x7f)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if b&0x80 == 0 {
			return buf
		}
	}
}
