package vm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

func prim(t *testing.T, op PrimOp, shape Shape) Instr {
	return Instr{Kind: OpCallPrimitive, Prim: mustLookup(t, op, shape)}
}

func i32Sig(params, results int) *Signature {
	sig := &Signature{}
	for i := 0; i < params; i++ {
		sig.Params = append(sig.Params, TypeI32)
	}
	for i := 0; i < results; i++ {
		sig.Results = append(sig.Results, TypeI32)
	}
	return sig
}

func TestMachine_Call(t *testing.T) {
	add := &Routine{Name: "add", Sig: i32Sig(2, 1), Code: []Instr{
		{Kind: OpLocalGet, Index: 0},
		{Kind: OpLocalGet, Index: 1},
		prim(t, PrimAdd, ShapeI32),
	}}
	m := NewMachine(&Module{Functions: []*Routine{add}}, 0)

	results, err := m.Call(context.Background(), add, I32(1), I32(2))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(3)}, results)

	_, err = m.Call(context.Background(), add, I32(1))
	require.EqualError(t, err, "expected 2 params, but passed 1")
}

// TestMachine_Loop sums 1..n with a backward branch.
func TestMachine_Loop(t *testing.T) {
	b := NewRoutineBuilder("sum", i32Sig(1, 1), []Type{TypeI32})
	loop, exit := b.NewLabel(), b.NewLabel()
	b.MarkLabel(loop)
	b.Emit(Instr{Kind: OpLocalGet, Index: 0})
	b.Emit(Instr{Kind: OpBrIfNot, Target: BranchTarget{Label: exit}})
	b.Emit(Instr{Kind: OpLocalGet, Index: 1})
	b.Emit(Instr{Kind: OpLocalGet, Index: 0})
	b.Emit(prim(t, PrimAdd, ShapeI32))
	b.Emit(Instr{Kind: OpLocalSet, Index: 1})
	b.Emit(Instr{Kind: OpLocalGet, Index: 0})
	b.EmitConst(TypeI32, I32(1))
	b.Emit(prim(t, PrimSub, ShapeI32))
	b.Emit(Instr{Kind: OpLocalSet, Index: 0})
	b.Emit(Instr{Kind: OpBr, Target: BranchTarget{Label: loop}})
	b.MarkLabel(exit)
	b.Emit(Instr{Kind: OpLocalGet, Index: 1})
	r, err := b.Finish()
	require.NoError(t, err)

	results, err := NewMachine(&Module{}, 0).Call(context.Background(), r, I32(10))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(55)}, results)
}

func TestMachine_BranchKeepsValues(t *testing.T) {
	b := NewRoutineBuilder("keep", i32Sig(0, 1), nil)
	out := b.NewLabel()
	b.EmitConst(TypeI32, I32(1))
	b.EmitConst(TypeI32, I32(2))
	b.EmitConst(TypeI32, I32(3))
	b.Emit(Instr{Kind: OpBr, Keep: 1, Target: BranchTarget{Label: out, Height: 0}})
	b.EmitConst(TypeI32, I32(4))
	b.MarkLabel(out)
	r, err := b.Finish()
	require.NoError(t, err)

	results, err := NewMachine(&Module{}, 0).Call(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, []Value{I32(3)}, results)
}

func TestMachine_BrTable(t *testing.T) {
	b := NewRoutineBuilder("table", i32Sig(1, 1), nil)
	l0, l1, def := b.NewLabel(), b.NewLabel(), b.NewLabel()
	b.Emit(Instr{Kind: OpLocalGet, Index: 0})
	b.Emit(Instr{Kind: OpBrTable, Targets: []BranchTarget{{Label: l0}, {Label: l1}, {Label: def}}})
	b.MarkLabel(l0)
	b.EmitConst(TypeI32, I32(100))
	b.Emit(Instr{Kind: OpReturn})
	b.MarkLabel(l1)
	b.EmitConst(TypeI32, I32(101))
	b.Emit(Instr{Kind: OpReturn})
	b.MarkLabel(def)
	b.EmitConst(TypeI32, I32(999))
	r, err := b.Finish()
	require.NoError(t, err)

	m := NewMachine(&Module{}, 0)
	for in, exp := range map[uint32]uint32{0: 100, 1: 101, 2: 999, 1000: 999} {
		results, err := m.Call(context.Background(), r, I32(in))
		require.NoError(t, err)
		require.Equal(t, []Value{I32(exp)}, results)
	}
}

func TestMachine_Traps(t *testing.T) {
	div := &Routine{Name: "div", Sig: i32Sig(2, 1), Code: []Instr{
		{Kind: OpLocalGet, Index: 0},
		{Kind: OpLocalGet, Index: 1},
		prim(t, PrimDivU, ShapeI32),
	}}
	caller := &Routine{Name: "caller", Sig: i32Sig(0, 1), Code: []Instr{
		{Kind: OpConst, Type: TypeI32, Value: I32(1)},
		{Kind: OpConst, Type: TypeI32, Value: I32(0)},
		{Kind: OpCall, Index: 0},
	}}
	m := NewMachine(&Module{Functions: []*Routine{div, caller}}, 0)

	_, err := m.Call(context.Background(), caller)
	require.ErrorIs(t, err, wasmruntime.ErrRuntimeIntegerDivideByZero)
	require.EqualError(t, err, `wasm runtime error: integer divide by zero
wasm backtrace:
	0: div
	1: caller`)

	// The machine is reusable after a trap.
	results, err := m.Call(context.Background(), div, I32(6), I32(3))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(2)}, results)
}

func TestMachine_StackOverflow(t *testing.T) {
	rec := &Routine{Name: "rec", Sig: i32Sig(0, 0), Code: []Instr{{Kind: OpCall, Index: 0}}}
	m := NewMachine(&Module{Functions: []*Routine{rec}}, 100)
	_, err := m.Call(context.Background(), rec)
	require.ErrorIs(t, err, wasmruntime.ErrRuntimeStackOverflow)
}

func TestMachine_Canceled(t *testing.T) {
	b := NewRoutineBuilder("spin", i32Sig(0, 0), nil)
	l := b.NewLabel()
	b.MarkLabel(l)
	b.Emit(Instr{Kind: OpBr, Target: BranchTarget{Label: l}})
	r, err := b.Finish()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewMachine(&Module{}, 0).Call(ctx, r)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestMachine_CallIndirect(t *testing.T) {
	one := &Routine{Name: "one", Sig: i32Sig(0, 1), Code: []Instr{{Kind: OpConst, Type: TypeI32, Value: I32(1)}}}
	other := &Routine{Name: "other", Sig: i32Sig(1, 1), Code: []Instr{{Kind: OpLocalGet, Index: 0}}}
	caller := &Routine{Name: "caller", Sig: i32Sig(1, 1), Code: []Instr{
		{Kind: OpLocalGet, Index: 0},
		{Kind: OpCallIndirect, Sig: i32Sig(0, 1)},
	}}
	m := NewMachine(&Module{Table: []*Routine{one, other, nil}}, 0)

	results, err := m.Call(context.Background(), caller, I32(0))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(1)}, results)

	_, err = m.Call(context.Background(), caller, I32(1))
	require.ErrorIs(t, err, wasmruntime.ErrRuntimeIndirectCallTypeMismatch)
	_, err = m.Call(context.Background(), caller, I32(2))
	require.ErrorIs(t, err, wasmruntime.ErrRuntimeInvalidTableAccess)
	_, err = m.Call(context.Background(), caller, I32(3))
	require.ErrorIs(t, err, wasmruntime.ErrRuntimeInvalidTableAccess)
}

func TestMachine_Memory(t *testing.T) {
	mem, err := NewMemory(1, 2)
	require.NoError(t, err)
	r := &Routine{Name: "mem", Sig: &Signature{Results: []Type{TypeI64, TypeI32, TypeI32}}, Code: []Instr{
		{Kind: OpConst, Type: TypeI32, Value: I32(8)},
		{Kind: OpMemPointer},
		{Kind: OpConst, Type: TypeI32, Value: I32(0xfffe)},
		{Kind: OpStore, Type: TypeI32, Width: 2},
		{Kind: OpConst, Type: TypeI32, Value: I32(1)},
		{Kind: OpMemGrow},
		{Kind: OpDrop},
		{Kind: OpMemSize},
		{Kind: OpConst, Type: TypeI32, Value: I32(8)},
		{Kind: OpMemPointer},
		{Kind: OpLoad, Type: TypeI32, Width: 2, Signed: true},
		{Kind: OpConst, Type: TypeI32, Value: I32(5)},
		{Kind: OpMemGrow},
	}}

	results, err := NewMachine(&Module{Memory: mem}, 0).Call(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, []Value{I64(2 * uint64(MemoryPageSize)), I32(0xfffffffe), I32(0xffffffff)}, results)
}

func TestMachine_GlobalsAndSelect(t *testing.T) {
	r := &Routine{Name: "g", Sig: i32Sig(1, 1), Code: []Instr{
		{Kind: OpGlobalGet, Index: 0},
		{Kind: OpConst, Type: TypeI32, Value: I32(7)},
		{Kind: OpLocalGet, Index: 0},
		{Kind: OpSelect},
		{Kind: OpLocalTee, Index: 0},
		{Kind: OpGlobalSet, Index: 0},
		{Kind: OpLocalGet, Index: 0},
	}}
	mod := &Module{Globals: []Value{I32(42)}}
	m := NewMachine(mod, 0)

	results, err := m.Call(context.Background(), r, I32(0))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(7)}, results)
	require.Equal(t, I32(7), mod.Globals[0])

	results, err = m.Call(context.Background(), r, I32(1))
	require.NoError(t, err)
	require.Equal(t, []Value{I32(7)}, results)
}

func TestRoutineBuilder_Finish(t *testing.T) {
	b := NewRoutineBuilder("f", i32Sig(1, 0), []Type{TypeI64})
	require.Equal(t, Temp(2), b.DeclareTemp(TypeV128))
	b.NewLabel()
	_, err := b.Finish()
	require.EqualError(t, err, "f: label L0 is never marked")
}

func TestRoutine_Disassemble(t *testing.T) {
	b := NewRoutineBuilder("f", i32Sig(1, 1), nil)
	tmp := b.DeclareTemp(TypeI32)
	l := b.NewLabel()
	b.Emit(Instr{Kind: OpLocalGet, Index: 0})
	b.Emit(Instr{Kind: OpLocalTee, Index: uint32(tmp)})
	b.Emit(Instr{Kind: OpBrIf, Keep: 0, Target: BranchTarget{Label: l}})
	b.Emit(Instr{Kind: OpTrap, Trap: wasmruntime.ErrRuntimeUnreachable})
	b.MarkLabel(l)
	b.Emit(Instr{Kind: OpMemPointer})
	b.Emit(Instr{Kind: OpLoad, Type: TypeI64, Width: 1, Signed: true, Align: 0})
	b.EmitConst(TypeI32, I32(0xffffffff))
	b.EmitCallPrimitive(mustLookup(t, PrimAdd, ShapeI32))
	r, err := b.Finish()
	require.NoError(t, err)

	require.Equal(t, `f (i32) -> (i32)
  locals (i32)
  0000 local.get 0
  0001 local.tee 1
  0002 br_if L0 keep=0 height=0
  0003 trap unreachable
L0:
  0004 mem.pointer
  0005 i64.load8_s align=1
  0006 const.i32 -1
  0007 prim i32.add
`, r.Disassemble())
}
