package wasmerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "decode",
			err:      Decode(KindUnknownOpcode, 0x12, "opcode %#x", 0xd7),
			expected: "[decode] unknown_opcode at offset 0x12: opcode 0xd7",
		},
		{
			name:     "decode cause",
			err:      DecodeCause(KindMalformedImmediate, 3, io.ErrUnexpectedEOF),
			expected: "[decode] malformed_immediate at offset 0x3: unexpected EOF",
		},
		{
			name:     "type mismatch",
			err:      TypeMismatch("i32.add", "i32", "f64"),
			expected: "[validate] stack_type_mismatch in i32.add: expected i32, but was f64",
		},
		{
			name:     "validate without detail",
			err:      Validate(KindStackTooSmall, "drop", ""),
			expected: "[validate] stack_too_small in drop",
		},
		{
			name:     "missing primitive",
			err:      MissingPrimitive("i8x16.popcnt", "no %s", "shr_u"),
			expected: "[emit] missing_primitive in i8x16.popcnt: no shr_u",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, tc.err, tc.expected)
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("function[3]: %w", Validate(KindBlockExitStackSize, "end", "want 1 got 2"))
	require.True(t, errors.Is(err, ErrBlockExitStackSize))
	require.False(t, errors.Is(err, ErrStackTooSmall))

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, PhaseValidate, e.Phase)
	require.Equal(t, int64(-1), e.Offset)
}

func TestError_Unwrap(t *testing.T) {
	err := DecodeCause(KindMalformedImmediate, 0, io.EOF)
	require.ErrorIs(t, err, io.EOF)
	require.ErrorIs(t, err, ErrMalformedImmediate)
}

func TestKind_Category(t *testing.T) {
	require.Equal(t, CategoryUnsupported, KindMissingPrimitive.Category())
	require.Equal(t, PhaseEmit, KindMissingPrimitive.Phase())
	for _, k := range []Kind{KindUnknownOpcode, KindMalformedShuffle, KindStackTypeMismatch, KindInvalidAlignment} {
		require.Equal(t, CategoryMalformed, k.Category(), k)
	}
	require.Equal(t, PhaseDecode, KindDisallowedInitializerOpcode.Phase())
	require.Equal(t, PhaseValidate, KindInvalidLaneIndex.Phase())
	require.Equal(t, "unsupported", CategoryUnsupported.String())
}
