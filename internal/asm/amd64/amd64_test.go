package amd64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/vm"
)

func addRoutine(t *testing.T, shape vm.Shape, op vm.PrimOp) *vm.Routine {
	typ := shape.Type()
	b := vm.NewRoutineBuilder("add", &vm.Signature{Params: []vm.Type{typ, typ}, Results: []vm.Type{typ}}, nil)
	b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: 0})
	b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: 1})
	p, ok := vm.Default().Lookup(op, shape)
	require.True(t, ok)
	b.EmitCallPrimitive(p)
	r, err := b.Finish()
	require.NoError(t, err)
	return r
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		shape    vm.Shape
		op       vm.PrimOp
		expected string
	}{
		{name: "i32.add", shape: vm.ShapeI32, op: vm.PrimAdd, expected: "ADDL CX, AX"},
		{name: "i64.sub", shape: vm.ShapeI64, op: vm.PrimSub, expected: "SUBQ CX, AX"},
		{name: "i32.xor", shape: vm.ShapeI32, op: vm.PrimXor, expected: "XORL CX, AX"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			r := addRoutine(t, tc.shape, tc.op)
			require.True(t, Supported(r))

			l, err := Assemble(r)
			require.NoError(t, err)
			require.Equal(t, "add", l.Name)
			require.NotEmpty(t, l.Code)

			text := l.Disassemble()
			require.Contains(t, text, tc.expected)
			require.Contains(t, text, "RET")
			require.NotContains(t, text, "db 0x")
		})
	}
}

func TestAssemble_Unsupported(t *testing.T) {
	b := vm.NewRoutineBuilder("f", &vm.Signature{}, nil)
	b.EmitConst(vm.TypeF64, vm.F64(1.5))
	b.Emit(vm.Instr{Kind: vm.OpDrop})
	r, err := b.Finish()
	require.NoError(t, err)

	require.False(t, Supported(r))
	_, err = Assemble(r)
	require.EqualError(t, err, "f: 0000: const of type f64 is outside the amd64 subset")
}
