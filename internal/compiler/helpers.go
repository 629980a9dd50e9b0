package compiler

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/simd"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// HelperKind is the family of a shared helper routine.
type HelperKind byte

const (
	// HelperRangeCheck traps unless an access of Width bytes at its i32 address fits in memory, then returns the
	// address.
	HelperRangeCheck HelperKind = iota + 1
	// HelperTrapOutOfBounds traps with an out of bounds memory access.
	HelperTrapOutOfBounds
	// HelperVector is the lowering of the vector instruction Op.
	HelperVector
)

// HelperKey identifies a helper routine.
type HelperKey struct {
	Kind  HelperKind
	Width uint32
	Op    wasm.OpcodeVec
}

func (k HelperKey) String() string {
	switch k.Kind {
	case HelperRangeCheck:
		return fmt.Sprintf("range_check_%d", k.Width)
	case HelperTrapOutOfBounds:
		return "trap_out_of_bounds"
	case HelperVector:
		return wasm.VecInstructionName(k.Op)
	}
	return fmt.Sprintf("helper(%d)", k.Kind)
}

type helperEntry struct {
	once sync.Once
	// done is closed once routine and err are set.
	done    chan struct{}
	routine *vm.Routine
	err     error
}

// HelperCache holds the helper routines built for one Capabilities. It is safe for concurrent use: each helper is
// built at most once, and the routine or the error building it returned is shared by every caller.
type HelperCache struct {
	caps    *vm.Capabilities
	log     *logging.Scoped
	mux     sync.Mutex
	entries map[HelperKey]*helperEntry
}

// NewHelperCache returns an empty HelperCache building helpers from the primitives of caps.
func NewHelperCache(caps *vm.Capabilities, log *logging.Scoped) *HelperCache {
	if log == nil {
		log = logging.Nop
	}
	return &HelperCache{caps: caps, log: log, entries: map[HelperKey]*helperEntry{}}
}

// Capabilities returns the primitives helpers are built from.
func (h *HelperCache) Capabilities() *vm.Capabilities {
	return h.caps
}

// Resolve returns the helper of key, calling build if no caller did yet.
func (h *HelperCache) Resolve(key HelperKey, build func() (*vm.Routine, error)) (*vm.Routine, error) {
	h.mux.Lock()
	e, ok := h.entries[key]
	if !ok {
		e = &helperEntry{done: make(chan struct{})}
		h.entries[key] = e
	}
	h.mux.Unlock()

	e.once.Do(func() {
		h.log.Debug(logging.LogScopeHelper, "building helper", zap.Stringer("helper", key))
		e.routine, e.err = build()
		close(e.done)
	})
	return e.routine, e.err
}

// Len returns the count of helpers resolved so far, including those that failed to build.
func (h *HelperCache) Len() int {
	h.mux.Lock()
	defer h.mux.Unlock()
	return len(h.entries)
}

// Routines returns the helpers built successfully so far.
func (h *HelperCache) Routines() []*vm.Routine {
	h.mux.Lock()
	entries := make([]*helperEntry, 0, len(h.entries))
	for _, e := range h.entries {
		entries = append(entries, e)
	}
	h.mux.Unlock()

	var ret []*vm.Routine
	for _, e := range entries {
		<-e.done
		if e.routine != nil {
			ret = append(ret, e.routine)
		}
	}
	return ret
}

var (
	sigAddress = &vm.Signature{Params: []vm.Type{vm.TypeI32}, Results: []vm.Type{vm.TypeI32}}
	sigNone    = &vm.Signature{}
)

// TrapOutOfBounds returns the helper trapping with an out of bounds memory access.
func (h *HelperCache) TrapOutOfBounds() (*vm.Routine, error) {
	key := HelperKey{Kind: HelperTrapOutOfBounds}
	return h.Resolve(key, func() (*vm.Routine, error) {
		b := vm.NewRoutineBuilder(key.String(), sigNone, nil)
		b.Emit(vm.Instr{Kind: vm.OpTrap, Trap: wasmruntime.ErrRuntimeOutOfBoundsMemoryAccess})
		return b.Finish()
	})
}

// RangeCheck returns the helper checking an access of width bytes.
func (h *HelperCache) RangeCheck(width uint32) (*vm.Routine, error) {
	key := HelperKey{Kind: HelperRangeCheck, Width: width}
	return h.Resolve(key, func() (*vm.Routine, error) {
		trap, err := h.TrapOutOfBounds()
		if err != nil {
			return nil, err
		}
		extend, err := h.primitive(key.String(), vm.PrimExtendI32U, vm.ShapeI64)
		if err != nil {
			return nil, err
		}
		add, err := h.primitive(key.String(), vm.PrimAdd, vm.ShapeI64)
		if err != nil {
			return nil, err
		}
		gt, err := h.primitive(key.String(), vm.PrimGtU, vm.ShapeI64)
		if err != nil {
			return nil, err
		}

		// Computed in 64 bits, so that addr+width can't wrap.
		b := vm.NewRoutineBuilder(key.String(), sigAddress, nil)
		inBounds := b.NewLabel()
		b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: 0})
		b.EmitCallPrimitive(extend)
		b.EmitConst(vm.TypeI64, vm.I64(uint64(width)))
		b.EmitCallPrimitive(add)
		b.Emit(vm.Instr{Kind: vm.OpMemSize})
		b.EmitCallPrimitive(gt)
		b.Emit(vm.Instr{Kind: vm.OpBrIfNot, Target: vm.BranchTarget{Label: inBounds}})
		b.EmitCallHelper(trap)
		b.MarkLabel(inBounds)
		b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: 0})
		return b.Finish()
	})
}

// Vector returns the helper lowering op.
func (h *HelperCache) Vector(op wasm.OpcodeVec) (*vm.Routine, error) {
	key := HelperKey{Kind: HelperVector, Op: op}
	return h.Resolve(key, func() (*vm.Routine, error) {
		l, ok := simd.Lowerings[op]
		if !ok {
			return nil, wasmerr.MissingPrimitive(key.String(), "no lowering")
		}
		sig := &vm.Signature{Params: l.Params, Results: []vm.Type{l.Result}}
		b := newEmitBuilder(key.String(), sig, h.caps)
		args := make([]simd.Ref, len(l.Params))
		for i := range args {
			args[i] = simd.Ref(i)
		}
		return b.finish(l.Build(b, args))
	})
}

func (h *HelperCache) primitive(instruction string, op vm.PrimOp, shape vm.Shape) (*vm.Primitive, error) {
	p, ok := h.caps.Lookup(op, shape)
	if !ok {
		return nil, wasmerr.MissingPrimitive(instruction, "target has no %s", vm.PrimKey{Op: op, Shape: shape})
	}
	return p, nil
}

// emitBuilder is a simd.Builder emitting into a helper routine. Refs are locals: the params first, then one
// temporary per constant and result.
type emitBuilder struct {
	name string
	caps *vm.Capabilities
	b    *vm.RoutineBuilder
	err  error
}

var _ simd.Builder = (*emitBuilder)(nil)

func newEmitBuilder(name string, sig *vm.Signature, caps *vm.Capabilities) *emitBuilder {
	return &emitBuilder{name: name, caps: caps, b: vm.NewRoutineBuilder(name, sig, nil)}
}

// Const implements simd.Builder.Const
func (e *emitBuilder) Const(t vm.Type, v vm.Value) simd.Ref {
	tmp := e.b.DeclareTemp(t)
	e.b.EmitConst(t, v)
	e.b.Emit(vm.Instr{Kind: vm.OpLocalSet, Index: uint32(tmp)})
	return simd.Ref(tmp)
}

// Apply implements simd.Builder.Apply
func (e *emitBuilder) Apply(op vm.PrimOp, shape vm.Shape, args ...simd.Ref) simd.Ref {
	if e.err != nil {
		return -1
	}
	p, ok := e.caps.Lookup(op, shape)
	if !ok {
		e.err = wasmerr.MissingPrimitive(e.name, "target has no %s", vm.PrimKey{Op: op, Shape: shape})
		return -1
	}
	for _, a := range args {
		e.b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: uint32(a)})
	}
	e.b.EmitCallPrimitive(p)
	tmp := e.b.DeclareTemp(p.Result)
	e.b.Emit(vm.Instr{Kind: vm.OpLocalSet, Index: uint32(tmp)})
	return simd.Ref(tmp)
}

// Err implements simd.Builder.Err
func (e *emitBuilder) Err() error {
	return e.err
}

func (e *emitBuilder) finish(result simd.Ref) (*vm.Routine, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.b.Emit(vm.Instr{Kind: vm.OpLocalGet, Index: uint32(result)})
	return e.b.Finish()
}
