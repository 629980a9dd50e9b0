package compiler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/testing/hammer"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func TestHelperKey_String(t *testing.T) {
	require.Equal(t, "range_check_8", HelperKey{Kind: HelperRangeCheck, Width: 8}.String())
	require.Equal(t, "trap_out_of_bounds", HelperKey{Kind: HelperTrapOutOfBounds}.String())
	require.Equal(t, "i8x16.popcnt", HelperKey{Kind: HelperVector, Op: wasm.OpcodeVecI8x16Popcnt}.String())
}

func TestHelperCache_Resolve(t *testing.T) {
	h := NewHelperCache(vm.Default(), nil)

	var builds int
	failing := errors.New("no")
	build := func() (*vm.Routine, error) {
		builds++
		return nil, failing
	}
	key := HelperKey{Kind: HelperVector, Op: wasm.OpcodeVecI8x16Popcnt}
	_, err := h.Resolve(key, build)
	require.Equal(t, failing, err)
	_, err = h.Resolve(key, build)
	require.Equal(t, failing, err, "the error is kept")
	require.Equal(t, 1, builds)
	require.Equal(t, 1, h.Len())
	require.Empty(t, h.Routines())
}

func TestHelperCache_RangeCheck(t *testing.T) {
	h := NewHelperCache(vm.Default(), nil)
	r, err := h.RangeCheck(4)
	require.NoError(t, err)
	require.Equal(t, "range_check_4", r.Name)
	require.Equal(t, 2, h.Len(), "the trap helper is shared")

	again, err := h.RangeCheck(4)
	require.NoError(t, err)
	require.Same(t, r, again)

	mem, err := vm.NewMemory(1, 1)
	require.NoError(t, err)
	m := vm.NewMachine(&vm.Module{Memory: mem}, 0)

	results, err := m.Call(testCtx, r, vm.I32(65532))
	require.NoError(t, err)
	require.Equal(t, []vm.Value{vm.I32(65532)}, results)

	_, err = m.Call(testCtx, r, vm.I32(65533))
	require.Error(t, err)

	h = NewHelperCache(vm.Default().Without(vm.PrimKey{Op: vm.PrimGtU, Shape: vm.ShapeI64}), nil)
	_, err = h.RangeCheck(4)
	require.True(t, errors.Is(err, wasmerr.ErrMissingPrimitive))
}

func TestHelperCache_concurrency(t *testing.T) {
	P, N := 8, 50
	if testing.Short() {
		P, N = 4, 10
	}
	h := NewHelperCache(vm.Default(), nil)
	widths := []uint32{1, 2, 4, 8, 16}
	ops := []wasm.OpcodeVec{wasm.OpcodeVecI8x16AddSatU, wasm.OpcodeVecI8x16Popcnt, wasm.OpcodeVecV128AnyTrue}

	var firstRange [17]atomic.Value
	hammer.NewHammer(t, P, N).Run(func(p, n int) {
		width := widths[(p+n)%len(widths)]
		r, err := h.RangeCheck(width)
		require.NoError(t, err)
		if !firstRange[width].CompareAndSwap(nil, r) {
			require.Same(t, firstRange[width].Load(), r)
		}
		_, err = h.Vector(ops[(p*n)%len(ops)])
		require.NoError(t, err)
	}, nil)
	if t.Failed() {
		return
	}
	require.Equal(t, 1+len(widths)+len(ops), h.Len())
	require.Equal(t, h.Len(), len(h.Routines()))
}

// TestCompileFunction_sharedHelpers compiles bodies of one module concurrently.
func TestCompileFunction_sharedHelpers(t *testing.T) {
	P, N := 8, 20
	if testing.Short() {
		P, N = 4, 5
	}
	cfg := newConfig(vm.Default())
	module := withMemory(&wasm.FunctionType{Params: []wasm.ValueKind{i32}, Results: []wasm.ValueKind{wasm.ValueKindV128}})
	body := []wasm.Instruction{
		localGet(0), wasm.VecMemory{Op: wasm.OpcodeVecV128Load},
		wasm.Vec{Op: wasm.OpcodeVecI8x16Popcnt},
		end,
	}

	var routines int64
	hammer.NewHammer(t, P, N).Run(func(p, n int) {
		r, err := CompileFunction(cfg, module, 0, nil, body)
		require.NoError(t, err)
		require.NotNil(t, r)
		atomic.AddInt64(&routines, 1)
	}, nil)
	if t.Failed() {
		return
	}
	require.Equal(t, int64(P*N), routines)
	// range_check_16, trap_out_of_bounds and i8x16.popcnt
	require.Equal(t, 3, cfg.Helpers.Len())
}
