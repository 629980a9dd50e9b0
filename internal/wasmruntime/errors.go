// Package wasmruntime contains the errors raised by compiled code at execution time.
package wasmruntime

var (
	// ErrRuntimeStackOverflow indicates that there are too many function calls,
	// and the engine terminated the execution.
	ErrRuntimeStackOverflow = New("stack overflow")
	// ErrRuntimeInvalidConversionToInteger indicates the Wasm function tries to
	// convert NaN floating point value into integers during trunc variant instructions.
	ErrRuntimeInvalidConversionToInteger = New("invalid conversion to integer")
	// ErrRuntimeIntegerOverflow indicates that an integer arithmetic resulted in
	// overflow value. For example, when the program tried to truncate a float value
	// which doesn't fit in the range of target integer.
	ErrRuntimeIntegerOverflow = New("integer overflow")
	// ErrRuntimeIntegerDivideByZero indicates that an integer div or rem instructions
	// was executed with 0 as the divisor.
	ErrRuntimeIntegerDivideByZero = New("integer divide by zero")
	// ErrRuntimeUnreachable means "unreachable" instruction was executed by the program.
	ErrRuntimeUnreachable = New("unreachable")
	// ErrRuntimeOutOfBoundsMemoryAccess indicates that the program tried to access the
	// region beyond the linear memory.
	ErrRuntimeOutOfBoundsMemoryAccess = New("out of bounds memory access")
	// ErrRuntimeInvalidTableAccess means either offset to the table was out of bounds of table, or
	// the target element in the table was uninitialized during call_indirect instruction.
	ErrRuntimeInvalidTableAccess = New("invalid table access")
	// ErrRuntimeIndirectCallTypeMismatch indicates that the type check failed during call_indirect.
	ErrRuntimeIndirectCallTypeMismatch = New("indirect call type mismatch")
)

// Error is returned by a wasm function when it trapped.
type Error struct {
	s string
}

// New returns a new Error with the given text.
func New(text string) *Error {
	return &Error{s: text}
}

// Error implements error.
func (e *Error) Error() string {
	return e.s
}

// ByCode returns the trap identified by code, as stored in a compiled trap instruction.
func ByCode(code uint64) *Error {
	if int(code) < len(byCode) {
		return byCode[code]
	}
	return ErrRuntimeUnreachable
}

// Code is the inverse of ByCode.
func Code(e *Error) uint64 {
	for i, t := range byCode {
		if t == e {
			return uint64(i)
		}
	}
	return 0
}

var byCode = []*Error{
	ErrRuntimeUnreachable,
	ErrRuntimeOutOfBoundsMemoryAccess,
	ErrRuntimeIntegerOverflow,
	ErrRuntimeIntegerDivideByZero,
	ErrRuntimeInvalidConversionToInteger,
	ErrRuntimeInvalidTableAccess,
	ErrRuntimeIndirectCallTypeMismatch,
	ErrRuntimeStackOverflow,
}
