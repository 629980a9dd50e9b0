// Package moremath holds float helpers whose results must follow WebAssembly rather than Go's math package.
package moremath

import "math"

// WasmCompatMin is math.Min, except either one of NaN results in NaN even if another is -Inf.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L74-L91
func WasmCompatMin(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, -1) || math.IsInf(y, -1):
		return math.Inf(-1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return x
		}
		return y
	}
	if x < y {
		return x
	}
	return y
}

// WasmCompatMax is math.Max, except either one of NaN results in NaN even if another is Inf.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L42-L59
func WasmCompatMax(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, 1) || math.IsInf(y, 1):
		return math.Inf(1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return y
		}
		return x
	}
	if x > y {
		return x
	}
	return y
}

// WasmCompatMin32 is WasmCompatMin for float32. Widening is exact, so the result is too.
func WasmCompatMin32(x, y float32) float32 {
	return float32(WasmCompatMin(float64(x), float64(y)))
}

// WasmCompatMax32 is WasmCompatMax for float32.
func WasmCompatMax32(x, y float32) float32 {
	return float32(WasmCompatMax(float64(x), float64(y)))
}

// WasmCompatNearestF32 rounds half to even, keeping the sign of zero.
func WasmCompatNearestF32(f float32) float32 {
	return float32(math.RoundToEven(float64(f)))
}

// WasmCompatNearestF64 rounds half to even, keeping the sign of zero.
func WasmCompatNearestF64(f float64) float64 {
	return math.RoundToEven(f)
}

// InRangeI32 reports whether truncating x yields a value representable as int32.
func InRangeI32(x float64) bool {
	return x > math.MinInt32-1 && x < math.MaxInt32+1
}

// InRangeU32 reports whether truncating x yields a value representable as uint32.
func InRangeU32(x float64) bool {
	return x > -1 && x < math.MaxUint32+1
}

// InRangeI64 reports whether truncating x yields a value representable as int64.
func InRangeI64(x float64) bool {
	return x >= math.MinInt64 && x < math.MaxInt64
}

// InRangeU64 reports whether truncating x yields a value representable as uint64.
func InRangeU64(x float64) bool {
	return x > -1 && x < math.MaxUint64
}

// TruncSatI32 truncates x toward zero, clamping to the int32 range. NaN becomes zero.
func TruncSatI32(x float64) int32 {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= math.MinInt32:
		return math.MinInt32
	case x >= math.MaxInt32:
		return math.MaxInt32
	}
	return int32(x)
}

// TruncSatU32 truncates x toward zero, clamping to the uint32 range. NaN becomes zero.
func TruncSatU32(x float64) uint32 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(x)
}

// TruncSatI64 truncates x toward zero, clamping to the int64 range. NaN becomes zero.
func TruncSatI64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= math.MinInt64:
		return math.MinInt64
	case x >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(x)
}

// TruncSatU64 truncates x toward zero, clamping to the uint64 range. NaN becomes zero.
func TruncSatU64(x float64) uint64 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(x)
}
