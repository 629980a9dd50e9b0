// Package wasmerr defines the errors raised while decoding, validating and emitting a code body.
//
// Every error carries a Kind from a closed enumeration. Callers match a kind with errors.Is against the
// sentinel for that kind, for example:
//
//	if errors.Is(err, wasmerr.ErrStackTooSmall) {
//		...
//	}
package wasmerr

import (
	"fmt"
	"strings"
)

// Phase indicates where in the compilation pipeline the error occurred.
type Phase string

const (
	PhaseDecode   Phase = "decode"
	PhaseValidate Phase = "validate"
	PhaseEmit     Phase = "emit"
)

// Kind categorizes the error.
type Kind string

const (
	// KindUnknownOpcode is raised for unrecognized primary or prefixed opcodes, and for opcodes that exist
	// but are disabled or have no implementation.
	KindUnknownOpcode Kind = "unknown_opcode"
	// KindDisallowedInitializerOpcode is raised for an opcode outside the constant expression grammar.
	KindDisallowedInitializerOpcode Kind = "disallowed_initializer_opcode"
	// KindMalformedShuffle is raised when the 16 shuffle lane bytes are cut short.
	KindMalformedShuffle Kind = "malformed_shuffle"
	// KindMalformedImmediate is raised for truncated input or an immediate that doesn't fit its type.
	KindMalformedImmediate Kind = "malformed_immediate"

	KindStackTooSmall      Kind = "stack_too_small"
	KindStackTypeMismatch  Kind = "stack_type_mismatch"
	KindLabelTypeMismatch  Kind = "label_type_mismatch"
	KindBlockExitStackSize Kind = "block_exit_stack_size"
	KindInvalidLaneIndex   Kind = "invalid_lane_index"
	KindInvalidAlignment   Kind = "invalid_alignment"
	// KindInvalidIndex is raised for an out of range local, global, function, type or label index, or a
	// reference to a memory or table the module doesn't have.
	KindInvalidIndex    Kind = "invalid_index"
	KindImmutableGlobal Kind = "immutable_global"

	// KindMissingPrimitive means the target has no primitive for an operation and nothing lowers it.
	KindMissingPrimitive Kind = "missing_primitive"
)

// Category separates malformed input from gaps in the implementation.
type Category int

const (
	CategoryMalformed Category = iota
	CategoryUnsupported
)

func (c Category) String() string {
	if c == CategoryUnsupported {
		return "unsupported"
	}
	return "malformed"
}

// Category returns CategoryUnsupported for emission kinds and CategoryMalformed otherwise.
func (k Kind) Category() Category {
	if k == KindMissingPrimitive {
		return CategoryUnsupported
	}
	return CategoryMalformed
}

// Phase returns the pipeline phase that raises this kind.
func (k Kind) Phase() Phase {
	switch k {
	case KindUnknownOpcode, KindDisallowedInitializerOpcode, KindMalformedShuffle, KindMalformedImmediate:
		return PhaseDecode
	case KindMissingPrimitive:
		return PhaseEmit
	default:
		return PhaseValidate
	}
}

// Error is the structured error raised by the decoder, the validating stack and the emitter.
type Error struct {
	Kind  Kind
	Phase Phase
	// Offset is the byte offset that triggered a decode error, or -1.
	Offset int64
	// Instruction is the canonical name of the instruction that triggered a validation or emission error.
	Instruction string
	// Expected and Actual name the value kinds of a type mismatch.
	Expected, Actual string
	Detail           string
	Cause            error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %#x", e.Offset)
	}
	if e.Instruction != "" {
		b.WriteString(" in ")
		b.WriteString(e.Instruction)
	}
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&b, ": expected %s, but was %s", e.Expected, e.Actual)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func sentinel(k Kind) *Error {
	return &Error{Kind: k, Phase: k.Phase(), Offset: -1}
}

// Sentinels for use with errors.Is.
var (
	ErrUnknownOpcode               = sentinel(KindUnknownOpcode)
	ErrDisallowedInitializerOpcode = sentinel(KindDisallowedInitializerOpcode)
	ErrMalformedShuffle            = sentinel(KindMalformedShuffle)
	ErrMalformedImmediate          = sentinel(KindMalformedImmediate)
	ErrStackTooSmall               = sentinel(KindStackTooSmall)
	ErrStackTypeMismatch           = sentinel(KindStackTypeMismatch)
	ErrLabelTypeMismatch           = sentinel(KindLabelTypeMismatch)
	ErrBlockExitStackSize          = sentinel(KindBlockExitStackSize)
	ErrInvalidLaneIndex            = sentinel(KindInvalidLaneIndex)
	ErrInvalidAlignment            = sentinel(KindInvalidAlignment)
	ErrInvalidIndex                = sentinel(KindInvalidIndex)
	ErrImmutableGlobal             = sentinel(KindImmutableGlobal)
	ErrMissingPrimitive            = sentinel(KindMissingPrimitive)
)

// Decode returns a decode-phase error positioned at offset.
func Decode(kind Kind, offset int64, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Phase: PhaseDecode, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// DecodeCause is like Decode, but wraps the error that stopped decoding.
func DecodeCause(kind Kind, offset int64, cause error) *Error {
	return &Error{Kind: kind, Phase: PhaseDecode, Offset: offset, Cause: cause}
}

// Validate returns a validation error attributed to the named instruction.
func Validate(kind Kind, instruction string, format string, args ...interface{}) *Error {
	e := &Error{Kind: kind, Phase: PhaseValidate, Offset: -1, Instruction: instruction}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

// TypeMismatch returns a KindStackTypeMismatch error naming the expected and actual value kinds.
func TypeMismatch(instruction, expected, actual string) *Error {
	return &Error{
		Kind:        KindStackTypeMismatch,
		Phase:       PhaseValidate,
		Offset:      -1,
		Instruction: instruction,
		Expected:    expected,
		Actual:      actual,
	}
}

// MissingPrimitive returns an emission error for the named instruction.
func MissingPrimitive(instruction string, format string, args ...interface{}) *Error {
	return &Error{
		Kind:        KindMissingPrimitive,
		Phase:       PhaseEmit,
		Offset:      -1,
		Instruction: instruction,
		Detail:      fmt.Sprintf(format, args...),
	}
}
