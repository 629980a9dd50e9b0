package vm

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// DefaultCallStackCeiling is the call depth at which a Machine traps with a stack overflow.
const DefaultCallStackCeiling = 2000

// Module is the runtime state compiled routines execute against.
type Module struct {
	Functions []*Routine
	Globals   []Value
	// Memory is nil when the module declares none.
	Memory *Memory
	// Table holds the routines call_indirect may reach. A nil element is uninitialized.
	Table []*Routine
}

// Machine executes routines of one Module. It is not safe for concurrent use.
type Machine struct {
	module  *Module
	stack   []Value
	frames  []*frame
	ceiling int
}

type frame struct {
	r      *Routine
	locals []Value
	// base is the stack height on entry, after the params were popped.
	base int
	pc   int
}

// NewMachine returns a Machine for m. A ceiling below one selects DefaultCallStackCeiling.
func NewMachine(m *Module, ceiling int) *Machine {
	if ceiling < 1 {
		ceiling = DefaultCallStackCeiling
	}
	return &Machine{module: m, ceiling: ceiling}
}

// Call runs r with args and returns its results. A trap is returned as an error wrapping the *wasmruntime.Error,
// with a backtrace of the routines active when it happened.
func (m *Machine) Call(ctx context.Context, r *Routine, args ...Value) (results []Value, err error) {
	if len(args) != len(r.Sig.Params) {
		return nil, fmt.Errorf("expected %d params, but passed %d", len(r.Sig.Params), len(args))
	}
	defer func() {
		if v := recover(); v != nil {
			traces := make([]string, 0, len(m.frames))
			for i := len(m.frames) - 1; i >= 0; i-- {
				traces = append(traces, fmt.Sprintf("\t%d: %s", len(m.frames)-1-i, m.frames[i].r.Name))
			}
			m.frames, m.stack = m.frames[:0], m.stack[:0]

			switch e := v.(type) {
			case *wasmruntime.Error:
				err = fmt.Errorf("wasm runtime error: %w", e)
			case runtime.Error:
				// A fault inside a primitive is a bug of this target, not a trap.
				panic(e)
			case error:
				err = fmt.Errorf("wasm runtime error: %w", e)
			default:
				err = fmt.Errorf("wasm runtime error: %v", v)
			}
			if len(traces) > 0 {
				err = fmt.Errorf("%w\nwasm backtrace:\n%s", err, strings.Join(traces, "\n"))
			}
		}
	}()

	m.stack = append(m.stack[:0], args...)
	m.call(ctx, r)
	results = make([]Value, len(r.Sig.Results))
	copy(results, m.stack)
	m.stack = m.stack[:0]
	return results, nil
}

func (m *Machine) push(v Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() Value {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

// popN pops n values, returning them deepest first.
func (m *Machine) popN(n int) []Value {
	top := len(m.stack) - n
	vs := make([]Value, n)
	copy(vs, m.stack[top:])
	m.stack = m.stack[:top]
	return vs
}

func (m *Machine) call(ctx context.Context, r *Routine) {
	if len(m.frames) >= m.ceiling {
		panic(wasmruntime.ErrRuntimeStackOverflow)
	}
	if err := ctx.Err(); err != nil {
		panic(err)
	}
	f := &frame{r: r, locals: make([]Value, r.NumLocals())}
	n := len(r.Sig.Params)
	f.base = len(m.stack) - n
	copy(f.locals, m.stack[f.base:])
	m.stack = m.stack[:f.base]
	m.frames = append(m.frames, f)
	m.run(ctx, f)
	m.frames = m.frames[:len(m.frames)-1]
}

// branch keeps the top keep values at height and jumps to t.
func (m *Machine) branch(ctx context.Context, f *frame, keep uint32, t BranchTarget) {
	dst := f.base + int(t.Height)
	src := len(m.stack) - int(keep)
	if dst != src {
		copy(m.stack[dst:], m.stack[src:])
		m.stack = m.stack[:dst+int(keep)]
	}
	pc := f.r.Labels[t.Label]
	if pc <= f.pc {
		if err := ctx.Err(); err != nil {
			panic(err)
		}
	}
	f.pc = pc
}

func (m *Machine) ret(f *frame) {
	n := len(f.r.Sig.Results)
	src := len(m.stack) - n
	copy(m.stack[f.base:], m.stack[src:])
	m.stack = m.stack[:f.base+n]
}

func (m *Machine) run(ctx context.Context, f *frame) {
	code := f.r.Code
	for f.pc < len(code) {
		in := &code[f.pc]
		f.pc++
		switch in.Kind {
		case OpConst:
			m.push(in.Value)
		case OpLocalGet:
			m.push(f.locals[in.Index])
		case OpLocalSet:
			f.locals[in.Index] = m.pop()
		case OpLocalTee:
			f.locals[in.Index] = m.stack[len(m.stack)-1]
		case OpGlobalGet:
			m.push(m.module.Globals[in.Index])
		case OpGlobalSet:
			m.module.Globals[in.Index] = m.pop()
		case OpDrop:
			m.pop()
		case OpSelect:
			c, y := m.pop(), m.pop()
			if c.I32() == 0 {
				m.stack[len(m.stack)-1] = y
			}
		case OpCallPrimitive:
			args := m.popN(len(in.Prim.Params))
			m.push(in.Prim.fn(args))
		case OpCallHelper:
			m.call(ctx, in.Routine)
		case OpCall:
			m.call(ctx, m.module.Functions[in.Index])
		case OpCallIndirect:
			i := m.pop().I32()
			if int(i) >= len(m.module.Table) || m.module.Table[i] == nil {
				panic(wasmruntime.ErrRuntimeInvalidTableAccess)
			}
			target := m.module.Table[i]
			if !target.Sig.Equal(in.Sig) {
				panic(wasmruntime.ErrRuntimeIndirectCallTypeMismatch)
			}
			m.call(ctx, target)
		case OpBr:
			m.branch(ctx, f, in.Keep, in.Target)
		case OpBrIf:
			if m.pop().I32() != 0 {
				m.branch(ctx, f, in.Keep, in.Target)
			}
		case OpBrIfNot:
			if m.pop().I32() == 0 {
				m.branch(ctx, f, in.Keep, in.Target)
			}
		case OpBrTable:
			i := int(m.pop().I32())
			if i >= len(in.Targets)-1 {
				i = len(in.Targets) - 1
			}
			m.branch(ctx, f, in.Keep, in.Targets[i])
		case OpReturn:
			m.ret(f)
			return
		case OpTrap:
			panic(in.Trap)
		case OpMemSize:
			m.push(I64(m.module.Memory.Size()))
		case OpMemPages:
			m.push(I32(m.module.Memory.Pages()))
		case OpMemGrow:
			prev, ok := m.module.Memory.Grow(m.pop().I32())
			if !ok {
				prev = 0xffffffff
			}
			m.push(I32(prev))
		case OpMemPointer:
			m.push(Ptr(uint64(m.pop().I32())))
		case OpLoad:
			ptr := m.pop().Lo
			m.push(m.module.Memory.load(ptr, in.Type, in.Width, in.Signed))
		case OpStore:
			v, ptr := m.pop(), m.pop().Lo
			m.module.Memory.store(ptr, v, in.Width)
		default:
			panic(fmt.Errorf("BUG: invalid op %s", in.Kind))
		}
	}
	m.ret(f)
}
