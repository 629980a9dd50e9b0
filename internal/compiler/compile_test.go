package compiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

var (
	i32 = wasm.ValueKindI32
	i64 = wasm.ValueKindI64

	end    = wasm.Simple{Op: wasm.OpcodeEnd}
	i32Add = wasm.Simple{Op: wasm.OpcodeI32Add}
	i32Sub = wasm.Simple{Op: wasm.OpcodeI32Sub}

	blockI32 = wasm.BlockType{Result: wasm.ValueKindI32}
)

func localGet(i uint32) wasm.Instruction { return wasm.Variable{Op: wasm.OpcodeLocalGet, Index: i} }
func localSet(i uint32) wasm.Instruction { return wasm.Variable{Op: wasm.OpcodeLocalSet, Index: i} }

// singleFunction describes a module whose only function has type ft.
func singleFunction(ft *wasm.FunctionType) *ModuleInfo {
	return &ModuleInfo{Types: []*wasm.FunctionType{ft}, Functions: []uint32{0}}
}

func newConfig(caps *vm.Capabilities) *Config {
	return &Config{Features: wasm.FeaturesAll, Helpers: NewHelperCache(caps, nil)}
}

func compileBody(t *testing.T, module *ModuleInfo, locals []wasm.ValueKind, body ...wasm.Instruction) (*vm.Routine, error) {
	return CompileFunction(newConfig(vm.Default()), module, 0, locals, body)
}

func run(t *testing.T, r *vm.Routine, mem *vm.Memory, args ...vm.Value) ([]vm.Value, error) {
	m := vm.NewMachine(&vm.Module{Functions: []*vm.Routine{r}, Memory: mem}, 0)
	return m.Call(context.Background(), r, args...)
}

func TestCompileFunction_add(t *testing.T) {
	r, err := compileBody(t, singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}}), nil,
		wasm.I32Const{Value: 1}, wasm.I32Const{Value: 2}, i32Add, end)
	require.NoError(t, err)
	require.Equal(t, "function[0]", r.Name)

	results, err := run(t, r, nil)
	require.NoError(t, err)
	require.Equal(t, []vm.Value{vm.I32(3)}, results)
}

func TestCompileFunction_control(t *testing.T) {
	unary := singleFunction(&wasm.FunctionType{Params: []wasm.ValueKind{i32}, Results: []wasm.ValueKind{i32}})

	tests := []struct {
		name     string
		locals   []wasm.ValueKind
		body     []wasm.Instruction
		in, want uint32
	}{
		{
			name: "if then",
			body: []wasm.Instruction{
				localGet(0), wasm.Block{Op: wasm.OpcodeIf, Type: blockI32},
				wasm.I32Const{Value: 10}, wasm.Simple{Op: wasm.OpcodeElse}, wasm.I32Const{Value: 20}, end, end,
			},
			in: 1, want: 10,
		},
		{
			name: "if else",
			body: []wasm.Instruction{
				localGet(0), wasm.Block{Op: wasm.OpcodeIf, Type: blockI32},
				wasm.I32Const{Value: 10}, wasm.Simple{Op: wasm.OpcodeElse}, wasm.I32Const{Value: 20}, end, end,
			},
			in: 0, want: 20,
		},
		{
			name:   "loop",
			locals: []wasm.ValueKind{i32},
			body: []wasm.Instruction{
				wasm.Block{Op: wasm.OpcodeBlock},
				wasm.Block{Op: wasm.OpcodeLoop},
				localGet(0), wasm.Simple{Op: wasm.OpcodeI32Eqz}, wasm.Branch{Op: wasm.OpcodeBrIf, Depth: 1},
				localGet(1), localGet(0), i32Add, localSet(1),
				localGet(0), wasm.I32Const{Value: 1}, i32Sub, localSet(0),
				wasm.Branch{Op: wasm.OpcodeBr, Depth: 0},
				end,
				end,
				localGet(1),
				end,
			},
			in: 10, want: 55,
		},
		{
			name: "br keeps the label values",
			body: []wasm.Instruction{
				wasm.Block{Op: wasm.OpcodeBlock, Type: blockI32},
				wasm.I32Const{Value: 1}, wasm.I32Const{Value: 2}, wasm.Branch{Op: wasm.OpcodeBr, Depth: 0},
				end,
				end,
			},
			want: 2,
		},
		{
			name: "return",
			body: []wasm.Instruction{
				wasm.I32Const{Value: 5},
				wasm.Block{Op: wasm.OpcodeBlock},
				wasm.I32Const{Value: 7}, wasm.Simple{Op: wasm.OpcodeReturn},
				end,
				wasm.Simple{Op: wasm.OpcodeDrop}, wasm.I32Const{Value: 9},
				end,
			},
			want: 7,
		},
		{
			name: "select",
			body: []wasm.Instruction{
				wasm.I32Const{Value: 3}, wasm.I32Const{Value: 4}, localGet(0), wasm.Simple{Op: wasm.OpcodeSelect}, end,
			},
			in: 0, want: 4,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			r, err := compileBody(t, unary, tc.locals, tc.body...)
			require.NoError(t, err)

			results, err := run(t, r, nil, vm.I32(tc.in))
			require.NoError(t, err)
			require.Equal(t, []vm.Value{vm.I32(tc.want)}, results)
		})
	}
}

func TestCompileFunction_brTable(t *testing.T) {
	unary := singleFunction(&wasm.FunctionType{Params: []wasm.ValueKind{i32}, Results: []wasm.ValueKind{i32}})
	r, err := compileBody(t, unary, nil,
		wasm.Block{Op: wasm.OpcodeBlock},
		wasm.Block{Op: wasm.OpcodeBlock},
		wasm.Block{Op: wasm.OpcodeBlock},
		localGet(0), wasm.BranchTable{Targets: []uint32{0, 1}, Default: 2},
		end,
		wasm.I32Const{Value: 100}, wasm.Simple{Op: wasm.OpcodeReturn},
		end,
		wasm.I32Const{Value: 200}, wasm.Simple{Op: wasm.OpcodeReturn},
		end,
		wasm.I32Const{Value: 300},
		end,
	)
	require.NoError(t, err)

	for in, want := range map[uint32]uint32{0: 100, 1: 200, 2: 300, 0xffffffff: 300} {
		results, err := run(t, r, nil, vm.I32(in))
		require.NoError(t, err)
		require.Equal(t, []vm.Value{vm.I32(want)}, results, in)
	}
}

func TestCompileFunction_unreachable(t *testing.T) {
	r, err := compileBody(t, singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}}), nil,
		wasm.Simple{Op: wasm.OpcodeUnreachable}, i32Add, end)
	require.NoError(t, err, "the stack is polymorphic after unreachable")

	_, err = run(t, r, nil)
	require.True(t, errors.Is(err, wasmruntime.ErrRuntimeUnreachable))
}

func TestCompileFunction_deadCodeIsNotEmitted(t *testing.T) {
	r, err := compileBody(t, singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}}), nil,
		wasm.I32Const{Value: 1},
		wasm.Simple{Op: wasm.OpcodeReturn},
		wasm.Block{Op: wasm.OpcodeBlock},
		wasm.I32Const{Value: 2}, wasm.Simple{Op: wasm.OpcodeDrop},
		end,
		end,
	)
	require.NoError(t, err)
	require.Equal(t, 2, len(r.Code), r.Disassemble())
}

func TestCompileFunction_errors(t *testing.T) {
	nullary := singleFunction(&wasm.FunctionType{})
	returnsI32 := singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}})

	tests := []struct {
		name        string
		module      *ModuleInfo
		body        []wasm.Instruction
		expectedErr *wasmerr.Error
		message     string
	}{
		{
			name:        "stack too small",
			module:      returnsI32,
			body:        []wasm.Instruction{i32Add, end},
			expectedErr: wasmerr.ErrStackTooSmall,
			message:     "[validate] stack_too_small in i32.add: need 2 values, but the stack has 0",
		},
		{
			name:        "type mismatch",
			module:      returnsI32,
			body:        []wasm.Instruction{wasm.I32Const{Value: 1}, wasm.I64Const{Value: 2}, i32Add, end},
			expectedErr: wasmerr.ErrStackTypeMismatch,
			message:     "[validate] stack_type_mismatch in i32.add: expected i32, but was i64",
		},
		{
			name:        "value left at the end",
			module:      nullary,
			body:        []wasm.Instruction{wasm.I32Const{Value: 1}, end},
			expectedErr: wasmerr.ErrBlockExitStackSize,
			message:     "[validate] block_exit_stack_size in end: expected 0 values at the end of the block, but the stack has 1",
		},
		{
			name:        "missing result",
			module:      returnsI32,
			body:        []wasm.Instruction{end},
			expectedErr: wasmerr.ErrBlockExitStackSize,
		},
		{
			name:   "branch value of the wrong kind",
			module: returnsI32,
			body: []wasm.Instruction{
				wasm.Block{Op: wasm.OpcodeBlock, Type: blockI32},
				wasm.I64Const{Value: 1}, wasm.Branch{Op: wasm.OpcodeBr, Depth: 0},
				end, end,
			},
			expectedErr: wasmerr.ErrLabelTypeMismatch,
			message:     "[validate] label_type_mismatch in br: expected i32, but was i64",
		},
		{
			name:        "label out of range",
			module:      nullary,
			body:        []wasm.Instruction{wasm.Branch{Op: wasm.OpcodeBr, Depth: 1}, end},
			expectedErr: wasmerr.ErrInvalidIndex,
		},
		{
			name:   "br_table arity",
			module: nullary,
			body: []wasm.Instruction{
				wasm.Block{Op: wasm.OpcodeBlock, Type: blockI32},
				wasm.I32Const{Value: 1}, wasm.I32Const{Value: 0}, wasm.BranchTable{Targets: []uint32{1}, Default: 0},
				end, wasm.Simple{Op: wasm.OpcodeDrop}, end,
			},
			expectedErr: wasmerr.ErrLabelTypeMismatch,
		},
		{
			name:   "if without else changes the stack",
			module: returnsI32,
			body: []wasm.Instruction{
				wasm.I32Const{Value: 1}, wasm.Block{Op: wasm.OpcodeIf, Type: blockI32}, wasm.I32Const{Value: 1}, end, end,
			},
			expectedErr: wasmerr.ErrLabelTypeMismatch,
		},
		{
			name:        "else outside of if",
			module:      nullary,
			body:        []wasm.Instruction{wasm.Simple{Op: wasm.OpcodeElse}, end},
			expectedErr: wasmerr.ErrBlockExitStackSize,
		},
		{
			name:        "local out of range",
			module:      returnsI32,
			body:        []wasm.Instruction{localGet(0), end},
			expectedErr: wasmerr.ErrInvalidIndex,
			message:     "[validate] invalid_index in local.get: local 0 is out of range",
		},
		{
			name: "immutable global",
			module: &ModuleInfo{
				Types: []*wasm.FunctionType{{}}, Functions: []uint32{0}, Globals: []GlobalType{{Kind: i64}},
			},
			body:        []wasm.Instruction{wasm.I64Const{Value: 1}, wasm.Variable{Op: wasm.OpcodeGlobalSet, Index: 0}, end},
			expectedErr: wasmerr.ErrImmutableGlobal,
		},
		{
			name:        "call_indirect without a table",
			module:      nullary,
			body:        []wasm.Instruction{wasm.I32Const{Value: 0}, wasm.CallIndirect{}, end},
			expectedErr: wasmerr.ErrInvalidIndex,
		},
		{
			name:        "select of different kinds",
			module:      returnsI32,
			body:        []wasm.Instruction{wasm.I32Const{}, wasm.I64Const{}, wasm.I32Const{}, wasm.Simple{Op: wasm.OpcodeSelect}, end},
			expectedErr: wasmerr.ErrStackTypeMismatch,
		},
		{
			name:        "missing end",
			module:      nullary,
			body:        []wasm.Instruction{wasm.Simple{Op: wasm.OpcodeNop}},
			expectedErr: wasmerr.ErrBlockExitStackSize,
		},
		{
			name:        "instruction after end",
			module:      nullary,
			body:        []wasm.Instruction{end, wasm.Simple{Op: wasm.OpcodeNop}},
			expectedErr: wasmerr.ErrBlockExitStackSize,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, err := compileBody(t, tc.module, nil, tc.body...)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.expectedErr), err.Error())
			if tc.message != "" {
				require.EqualError(t, err, tc.message)
			}
		})
	}
}

func TestCompileFunction_call(t *testing.T) {
	module := &ModuleInfo{
		Types: []*wasm.FunctionType{
			{Results: []wasm.ValueKind{i32}},
			{Params: []wasm.ValueKind{i32, i32}, Results: []wasm.ValueKind{i32}},
		},
		Functions: []uint32{0, 1},
	}
	cfg := newConfig(vm.Default())
	caller, err := CompileFunction(cfg, module, 0, nil, []wasm.Instruction{
		wasm.I32Const{Value: 10}, wasm.I32Const{Value: 3}, wasm.Call{Func: 1}, end,
	})
	require.NoError(t, err)
	callee, err := CompileFunction(cfg, module, 1, nil, []wasm.Instruction{localGet(0), localGet(1), i32Sub, end})
	require.NoError(t, err)

	m := vm.NewMachine(&vm.Module{Functions: []*vm.Routine{caller, callee}}, 0)
	results, err := m.Call(context.Background(), caller)
	require.NoError(t, err)
	require.Equal(t, []vm.Value{vm.I32(7)}, results)

	_, err = CompileFunction(cfg, module, 0, nil, []wasm.Instruction{wasm.Call{Func: 2}, end})
	require.True(t, errors.Is(err, wasmerr.ErrInvalidIndex))
}

func TestCompileFunction_missingPrimitive(t *testing.T) {
	caps := vm.Default().Without(vm.PrimKey{Op: vm.PrimAdd, Shape: vm.ShapeI32})
	_, err := CompileFunction(newConfig(caps), singleFunction(&wasm.FunctionType{Results: []wasm.ValueKind{i32}}), 0, nil,
		[]wasm.Instruction{wasm.I32Const{Value: 1}, wasm.I32Const{Value: 2}, i32Add, end})
	require.True(t, errors.Is(err, wasmerr.ErrMissingPrimitive))
	require.EqualError(t, err, "[emit] missing_primitive in i32.add: target has no i32.add")
}

var testCtx = context.Background()

func TestContext_failedCheckKeepsStack(t *testing.T) {
	module := &ModuleInfo{
		Types:     []*wasm.FunctionType{{}, {Params: []wasm.ValueKind{i64}}},
		Functions: []uint32{0},
	}
	ifI64 := wasm.Block{Op: wasm.OpcodeIf, Type: wasm.BlockType{TypeIndex: 1, Indexed: true}}
	selectOp := wasm.Simple{Op: wasm.OpcodeSelect}

	tests := []struct {
		name        string
		operands    []wasm.Instruction
		in          wasm.Instruction
		expectedErr error
		expected    string
	}{
		{
			name:        "select of different kinds",
			operands:    []wasm.Instruction{wasm.I32Const{}, wasm.I64Const{}, wasm.I32Const{}},
			in:          selectOp,
			expectedErr: wasmerr.ErrStackTypeMismatch,
			expected:    "[i32, i64, i32]",
		},
		{
			name:        "select with an i64 condition",
			operands:    []wasm.Instruction{wasm.I32Const{}, wasm.I32Const{}, wasm.I64Const{}},
			in:          selectOp,
			expectedErr: wasmerr.ErrStackTypeMismatch,
			expected:    "[i32, i32, i64]",
		},
		{
			name:        "select missing an operand",
			operands:    []wasm.Instruction{wasm.I32Const{}, wasm.I32Const{}},
			in:          selectOp,
			expectedErr: wasmerr.ErrStackTooSmall,
			expected:    "[i32, i32]",
		},
		{
			name:        "if param of the wrong kind",
			operands:    []wasm.Instruction{wasm.I32Const{}, wasm.I32Const{}},
			in:          ifI64,
			expectedErr: wasmerr.ErrStackTypeMismatch,
			expected:    "[i32, i32]",
		},
		{
			name:        "if missing its param",
			operands:    []wasm.Instruction{wasm.I32Const{}},
			in:          ifI64,
			expectedErr: wasmerr.ErrStackTooSmall,
			expected:    "[i32]",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewContext(newConfig(vm.Default()), module, 0, nil)
			require.NoError(t, err)
			for _, in := range tc.operands {
				require.NoError(t, c.compile(in))
			}

			err = c.compile(tc.in)
			require.True(t, errors.Is(err, tc.expectedErr), err)
			require.Equal(t, tc.expected, c.Stack().String())
		})
	}
}
