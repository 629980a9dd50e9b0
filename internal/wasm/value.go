package wasm

// ValueKind is the kind of a value on the operand stack, encoded with its binary type byte.
//
// Vectors are a single untyped kind: lane interpretation is chosen by each instruction.
type ValueKind = byte

const (
	ValueKindI32  ValueKind = 0x7f
	ValueKindI64  ValueKind = 0x7e
	ValueKindF32  ValueKind = 0x7d
	ValueKindF64  ValueKind = 0x7c
	ValueKindV128 ValueKind = 0x7b

	// ValueKindUnknown is the kind popped from the polymorphic stack of unreachable code. It matches any kind.
	ValueKindUnknown ValueKind = 0x00
)

// ValueKindName returns the type name of the given ValueKind as a string.
// These type names match the names used in the WebAssembly text format.
func ValueKindName(k ValueKind) string {
	switch k {
	case ValueKindI32:
		return "i32"
	case ValueKindI64:
		return "i64"
	case ValueKindF32:
		return "f32"
	case ValueKindF64:
		return "f64"
	case ValueKindV128:
		return "v128"
	case ValueKindUnknown:
		return "unknown"
	}
	return "invalid"
}

// ValueKindFromByte validates b as a value type byte, rejecting v128 unless SIMD is enabled.
func ValueKindFromByte(b byte, features Features) (ValueKind, bool) {
	switch b {
	case ValueKindI32, ValueKindI64, ValueKindF32, ValueKindF64:
		return b, true
	case ValueKindV128:
		return b, features.IsEnabled(FeatureSIMD)
	}
	return 0, false
}

// FunctionType is a possibly empty function signature.
type FunctionType struct {
	Params  []ValueKind
	Results []ValueKind
}

// String returns the signature in the text format, for example "(i32,i32)->(i64)".
func (t *FunctionType) String() string {
	return kindsString(t.Params) + "->" + kindsString(t.Results)
}

func kindsString(kinds []ValueKind) string {
	ret := []byte{'('}
	for i, k := range kinds {
		if i > 0 {
			ret = append(ret, ',')
		}
		ret = append(ret, ValueKindName(k)...)
	}
	return string(append(ret, ')'))
}

// EqualsSignature returns true if the function type has the same parameters and results.
func (t *FunctionType) EqualsSignature(params []ValueKind, results []ValueKind) bool {
	return string(t.Params) == string(params) && string(t.Results) == string(results)
}
