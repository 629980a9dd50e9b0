package vm

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// lane is the Go type of one lane of a vector.
type lane interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// intLane is a lane of integer type.
type intLane interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

func laneSize[T lane]() int {
	switch any(*new(T)).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	}
	return 8
}

func laneAt[T lane](b []byte) T {
	var ret any
	switch any(*new(T)).(type) {
	case int8:
		ret = int8(b[0])
	case uint8:
		ret = b[0]
	case int16:
		ret = int16(binary.LittleEndian.Uint16(b))
	case uint16:
		ret = binary.LittleEndian.Uint16(b)
	case int32:
		ret = int32(binary.LittleEndian.Uint32(b))
	case uint32:
		ret = binary.LittleEndian.Uint32(b)
	case float32:
		ret = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case int64:
		ret = int64(binary.LittleEndian.Uint64(b))
	case uint64:
		ret = binary.LittleEndian.Uint64(b)
	case float64:
		ret = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return ret.(T)
}

func putLane[T lane](b []byte, x T) {
	switch v := any(x).(type) {
	case int8:
		b[0] = byte(v)
	case uint8:
		b[0] = v
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case uint16:
		binary.LittleEndian.PutUint16(b, v)
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case uint32:
		binary.LittleEndian.PutUint32(b, v)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(v))
	case uint64:
		binary.LittleEndian.PutUint64(b, v)
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

// lanesOf splits v into lanes of type T, lane zero first.
func lanesOf[T lane](v Value) []T {
	b := v.Bytes()
	size := laneSize[T]()
	ret := make([]T, 16/size)
	for i := range ret {
		ret[i] = laneAt[T](b[i*size:])
	}
	return ret
}

// fromLanes is the inverse of lanesOf. Lanes beyond the given ones are zero.
func fromLanes[T lane](lanes []T) Value {
	var b [16]byte
	size := laneSize[T]()
	for i, l := range lanes {
		putLane(b[i*size:], l)
	}
	return V128FromBytes(b)
}

func mapLanes[T lane](a Value, f func(x T) T) Value {
	ls := lanesOf[T](a)
	for i, x := range ls {
		ls[i] = f(x)
	}
	return fromLanes(ls)
}

func zipLanes[T lane](a, b Value, f func(x, y T) T) Value {
	xs, ys := lanesOf[T](a), lanesOf[T](b)
	for i := range xs {
		xs[i] = f(xs[i], ys[i])
	}
	return fromLanes(xs)
}

// compareLanes sets every bit of a lane whose operands satisfy f, and clears it otherwise.
func compareLanes[T lane](a, b Value, f func(x, y T) bool) Value {
	xs, ys := lanesOf[T](a), lanesOf[T](b)
	size := laneSize[T]()
	var out [16]byte
	for i := range xs {
		if f(xs[i], ys[i]) {
			for j := 0; j < size; j++ {
				out[i*size+j] = 0xff
			}
		}
	}
	return V128FromBytes(out)
}

// widen converts the low or high half of the lanes of a into lanes twice as wide.
func widen[From, To lane](a Value, high bool) Value {
	xs := lanesOf[From](a)
	half := len(xs) / 2
	if high {
		xs = xs[half:]
	}
	out := make([]To, half)
	for i := range out {
		out[i] = To(xs[i])
	}
	return fromLanes(out)
}

// narrow converts the lanes of a then b into lanes half as wide, clamping each to [lo, hi].
func narrow[From intLane, To lane](a, b Value, lo, hi From) Value {
	xs := append(lanesOf[From](a), lanesOf[From](b)...)
	out := make([]To, len(xs))
	for i, x := range xs {
		out[i] = To(clamp(x, lo, hi))
	}
	return fromLanes(out)
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	return minOf(maxOf(x, lo), hi)
}

func minOf[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func maxOf[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}
