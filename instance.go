package wasmlower

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// CompiledModule is a validated module whose bodies are compiled. It can be instantiated any number of times.
type CompiledModule struct {
	config   *CompilerConfig
	log      *logging.Scoped
	module   *validatedModule
	desc     *ModuleDescription
	bodies   [][]wasm.Instruction
	routines []*vm.Routine
}

// Function returns the routine compiled from function index, or nil if out of range.
func (m *CompiledModule) Function(index uint32) *vm.Routine {
	if int(index) >= len(m.routines) {
		return nil
	}
	return m.routines[index]
}

// ExportedFunctions returns the export names, sorted.
func (m *CompiledModule) ExportedFunctions() []string {
	ret := maps.Keys(m.module.exports)
	slices.Sort(ret)
	return ret
}

// ExportedFunction returns the routine exported as name, or nil.
func (m *CompiledModule) ExportedFunction(name string) *vm.Routine {
	index, ok := m.module.exports[name]
	if !ok {
		return nil
	}
	return m.routines[index]
}

// Disassemble returns, for each function, the decoded instructions followed by the routine they compiled to, then
// the helper routines those call.
func (m *CompiledModule) Disassemble() string {
	var b strings.Builder
	for i, body := range m.bodies {
		fmt.Fprintf(&b, ";; function[%d]", i)
		if export := m.desc.Functions[i].Export; export != "" {
			fmt.Fprintf(&b, " %q", export)
		}
		b.WriteByte('\n')
		writeBody(&b, body)
		b.WriteString(m.routines[i].Disassemble())
		b.WriteByte('\n')
	}

	helpers := map[string]*vm.Routine{}
	for _, r := range m.routines {
		collectHelpers(r, helpers)
	}
	names := maps.Keys(helpers)
	slices.Sort(names)
	for _, name := range names {
		b.WriteString(helpers[name].Disassemble())
		b.WriteByte('\n')
	}
	return b.String()
}

func writeBody(b *strings.Builder, body []wasm.Instruction) {
	depth := 1
	for _, in := range body {
		op, simple := in.(wasm.Simple)
		closes := simple && (op.Op == wasm.OpcodeEnd || op.Op == wasm.OpcodeElse)
		if closes {
			depth--
		}
		fmt.Fprintf(b, "%s;; %s\n", strings.Repeat("  ", depth), in)
		if _, block := in.(wasm.Block); block || (simple && op.Op == wasm.OpcodeElse) {
			depth++
		}
	}
}

func collectHelpers(r *vm.Routine, into map[string]*vm.Routine) {
	for i := range r.Code {
		in := &r.Code[i]
		if in.Kind != vm.OpCallHelper {
			continue
		}
		if _, ok := into[in.Routine.Name]; ok {
			continue
		}
		into[in.Routine.Name] = in.Routine
		collectHelpers(in.Routine, into)
	}
}

// Instantiate evaluates the initializers of the module and writes its data and element segments into new memory
// and table instances. A segment out of range fails with the trap it would raise at runtime.
func (m *CompiledModule) Instantiate(ctx context.Context) (*Instance, error) {
	state := &vm.Module{Functions: m.routines}

	for _, g := range m.module.globals {
		state.Globals = append(state.Globals, g.eval(state.Globals))
	}

	if d := m.desc.Memory; d != nil {
		mem, err := vm.NewMemory(d.Min, m.module.memoryMax)
		if err != nil {
			return nil, err
		}
		state.Memory = mem
	}

	if d := m.desc.Table; d != nil {
		state.Table = make([]*vm.Routine, d.Min)
	}
	for i, init := range m.module.elements {
		offset := uint64(init.eval(state.Globals).I32())
		functions := m.desc.Elements[i].Functions
		if offset+uint64(len(functions)) > uint64(len(state.Table)) {
			return nil, fmt.Errorf("element[%d]: %w", i, wasmruntime.ErrRuntimeInvalidTableAccess)
		}
		for j, f := range functions {
			state.Table[offset+uint64(j)] = m.routines[f]
		}
	}

	for i, init := range m.module.data {
		offset := uint64(init.eval(state.Globals).I32())
		if !state.Memory.Write(offset, m.desc.Data[i].Bytes) {
			return nil, fmt.Errorf("data[%d]: %w", i, wasmruntime.ErrRuntimeOutOfBoundsMemoryAccess)
		}
	}

	return &Instance{
		module:  m,
		state:   state,
		machine: vm.NewMachine(state, m.config.callStackCeiling),
		log:     m.log,
	}, nil
}

// Instance is an instantiated CompiledModule. Calls are serialized, as they share the memory and globals.
type Instance struct {
	module  *CompiledModule
	state   *vm.Module
	mux     sync.Mutex
	machine *vm.Machine
	log     *logging.Scoped
}

// Memory returns the memory of the instance, or nil if the module has none.
func (i *Instance) Memory() *vm.Memory {
	return i.state.Memory
}

// Global returns the current value of global index, or false if out of range.
func (i *Instance) Global(index uint32) (vm.Value, bool) {
	i.mux.Lock()
	defer i.mux.Unlock()
	if int(index) >= len(i.state.Globals) {
		return vm.Value{}, false
	}
	return i.state.Globals[index], true
}

// Call invokes the function exported as name.
//
// Params and results are encoded as in the WebAssembly JavaScript API: an i32 or f32 in the low 32 bits, an i64 or
// f64 in all 64 bits, and a v128 in two values, the low half first.
func (i *Instance) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := i.module.ExportedFunction(name)
	if r == nil {
		return nil, fmt.Errorf("%q is not exported", name)
	}

	args, err := decodeValues(r.Sig.Params, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	i.mux.Lock()
	results, err := i.machine.Call(ctx, r, args...)
	i.mux.Unlock()
	if err != nil {
		i.log.Debug(logging.LogScopeExec, "trap", zap.String("function", name), zap.Error(err))
		return nil, err
	}
	return encodeValues(r.Sig.Results, results), nil
}

func decodeValues(types []vm.Type, params []uint64) ([]vm.Value, error) {
	expected := 0
	for _, t := range types {
		expected++
		if t == vm.TypeV128 {
			expected++
		}
	}
	if expected != len(params) {
		return nil, fmt.Errorf("expected %d params, but passed %d", expected, len(params))
	}

	ret := make([]vm.Value, len(types))
	for j, t := range types {
		switch t {
		case vm.TypeV128:
			ret[j] = vm.V128(params[0], params[1])
			params = params[2:]
		case vm.TypeI32, vm.TypeF32:
			ret[j] = vm.Value{Lo: uint64(uint32(params[0]))}
			params = params[1:]
		default:
			ret[j] = vm.Value{Lo: params[0]}
			params = params[1:]
		}
	}
	return ret, nil
}

func encodeValues(types []vm.Type, values []vm.Value) []uint64 {
	ret := make([]uint64, 0, len(values))
	for j, t := range types {
		v := values[j]
		if t == vm.TypeV128 {
			ret = append(ret, v.Lo, v.Hi)
		} else {
			ret = append(ret, v.Lo)
		}
	}
	return ret
}
