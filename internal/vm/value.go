package vm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Type is the type of a local, a temporary or an operand of the target.
type Type byte

const (
	TypeI32 Type = iota + 1
	TypeI64
	TypeF32
	TypeF64
	TypeV128
	// TypePtr is an absolute address into linear memory, produced by OpMemPointer.
	TypePtr
)

func (t Type) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeV128:
		return "v128"
	case TypePtr:
		return "ptr"
	}
	return fmt.Sprintf("type(%d)", byte(t))
}

// Value is a value of any Type. Scalars are held zero-extended in Lo; a v128 is Lo (bytes 0-7) and Hi (bytes 8-15).
type Value struct {
	Lo, Hi uint64
}

func I32(v uint32) Value        { return Value{Lo: uint64(v)} }
func I64(v uint64) Value        { return Value{Lo: v} }
func F32(v float32) Value       { return Value{Lo: uint64(math.Float32bits(v))} }
func F64(v float64) Value       { return Value{Lo: math.Float64bits(v)} }
func V128(lo, hi uint64) Value  { return Value{Lo: lo, Hi: hi} }
func Bool(b bool) Value         { return I32(b2u32(b)) }
func Ptr(addr uint64) Value     { return Value{Lo: addr} }
func (v Value) I32() uint32     { return uint32(v.Lo) }
func (v Value) I64() uint64     { return v.Lo }
func (v Value) F32() float32    { return math.Float32frombits(uint32(v.Lo)) }
func (v Value) F64() float64    { return math.Float64frombits(v.Lo) }
func (v Value) F32Bits() uint32 { return uint32(v.Lo) }

// V128FromBytes returns the vector with the given little-endian bytes.
func V128FromBytes(b [16]byte) Value {
	return Value{Lo: binary.LittleEndian.Uint64(b[:8]), Hi: binary.LittleEndian.Uint64(b[8:])}
}

// Bytes returns the little-endian bytes of a vector.
func (v Value) Bytes() (b [16]byte) {
	binary.LittleEndian.PutUint64(b[:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:], v.Hi)
	return
}

// Format returns the value as a literal of type t.
func (v Value) Format(t Type) string {
	switch t {
	case TypeI32:
		return fmt.Sprintf("%d", int32(v.I32()))
	case TypeI64:
		return fmt.Sprintf("%d", int64(v.I64()))
	case TypeF32:
		return fmt.Sprintf("%v", v.F32())
	case TypeF64:
		return fmt.Sprintf("%v", v.F64())
	case TypeV128:
		return fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo)
	}
	return fmt.Sprintf("%#x", v.Lo)
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
