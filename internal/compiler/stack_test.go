package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func TestOperandStack_Pop(t *testing.T) {
	var s OperandStack
	s.Push(wasm.ValueKindI64, wasm.ValueKindI32)

	actual, err := s.Pop("i32.add", wasm.ValueKindI32)
	require.NoError(t, err)
	require.Equal(t, []wasm.ValueKind{wasm.ValueKindI32}, actual)
	require.Equal(t, 1, s.Len())

	_, err = s.Pop("i32.add", wasm.ValueKindI32)
	require.True(t, errors.Is(err, wasmerr.ErrStackTypeMismatch))
	require.EqualError(t, err, "[validate] stack_type_mismatch in i32.add: expected i32, but was i64")
	require.Equal(t, 1, s.Len(), "nothing is popped on a mismatch")

	_, err = s.Pop("i64.add", wasm.ValueKindI64, wasm.ValueKindI64)
	require.True(t, errors.Is(err, wasmerr.ErrStackTooSmall))
	require.EqualError(t, err, "[validate] stack_too_small in i64.add: need 2 values, but the stack has 1")
	require.Equal(t, 1, s.Len())
}

func TestOperandStack_Pop_unknownMatchesAny(t *testing.T) {
	var s OperandStack
	s.Push(wasm.ValueKindF64, wasm.ValueKindV128)

	actual, err := s.Pop("select", wasm.ValueKindUnknown, wasm.ValueKindUnknown)
	require.NoError(t, err)
	require.Equal(t, []wasm.ValueKind{wasm.ValueKindV128, wasm.ValueKindF64}, actual)
	require.Zero(t, s.Len())
}

func TestOperandStack_floor(t *testing.T) {
	var s OperandStack
	s.Push(wasm.ValueKindI32)
	s.enter(1, false)

	_, err := s.PopOne("drop", wasm.ValueKindUnknown)
	require.True(t, errors.Is(err, wasmerr.ErrStackTooSmall), "values below the floor belong to an outer frame")

	_, ok := s.Peek(0)
	require.False(t, ok)
}

func TestOperandStack_polymorphic(t *testing.T) {
	var s OperandStack
	s.Push(wasm.ValueKindI32)
	s.enter(1, true)
	s.Push(wasm.ValueKindF32)

	actual, err := s.Pop("f32.add", wasm.ValueKindF32, wasm.ValueKindF32)
	require.NoError(t, err)
	require.Equal(t, []wasm.ValueKind{wasm.ValueKindF32, wasm.ValueKindUnknown}, actual)
	require.Equal(t, 1, s.Len(), "the floor is never popped")

	_, err = s.Pop("i64.eqz", wasm.ValueKindI64)
	require.NoError(t, err)

	k, ok := s.Peek(3)
	require.True(t, ok)
	require.Equal(t, wasm.ValueKindUnknown, k)
}

func TestOperandStack_String(t *testing.T) {
	var s OperandStack
	require.Equal(t, "[]", s.String())
	s.Push(wasm.ValueKindI32, wasm.ValueKindV128)
	require.Equal(t, "[i32, v128]", s.String())
}

func TestReversed(t *testing.T) {
	require.Equal(t, []wasm.ValueKind{wasm.ValueKindF64, wasm.ValueKindI64, wasm.ValueKindI32},
		reversed([]wasm.ValueKind{wasm.ValueKindI32, wasm.ValueKindI64, wasm.ValueKindF64}))
	require.Empty(t, reversed(nil))
}
