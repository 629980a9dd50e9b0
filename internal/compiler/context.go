// Package compiler validates decoded function bodies and emits them as target routines.
//
// A Context compiles one body. The Contexts of a module share a HelperCache, so each helper routine, such as a
// memory range check or a vector lowering, is built once no matter how many bodies call it or how many goroutines
// compile them.
package compiler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// ModuleInfo is what the function bodies of a module may reference.
type ModuleInfo struct {
	Types []*wasm.FunctionType
	// Functions holds the type index of each function.
	Functions []uint32
	Globals   []GlobalType
	Memory    bool
	Table     bool
}

// GlobalType is the kind and mutability of a global.
type GlobalType struct {
	Kind    wasm.ValueKind
	Mutable bool
}

// FunctionType returns the type of function index, or false if either index is out of range.
func (m *ModuleInfo) FunctionType(index uint32) (*wasm.FunctionType, bool) {
	if int(index) >= len(m.Functions) {
		return nil, false
	}
	typeIndex := m.Functions[index]
	if int(typeIndex) >= len(m.Types) {
		return nil, false
	}
	return m.Types[typeIndex], true
}

// Config is shared by the Contexts compiling one module.
type Config struct {
	Features wasm.Features
	Helpers  *HelperCache
	Log      *logging.Scoped
}

// Context is the state of compiling one function body. It is not safe for concurrent use.
type Context struct {
	cfg    *Config
	caps   *vm.Capabilities
	log    *logging.Scoped
	module *ModuleInfo
	index  uint32
	// locals are the kinds of the params then of the declared locals.
	locals  []wasm.ValueKind
	stack   OperandStack
	frames  controlFrames
	em      vm.Emitter
	scratch map[vm.Type]vm.Temp
}

// NewContext returns a Context compiling function index of module, whose declared locals, after the params, are
// locals.
func NewContext(cfg *Config, module *ModuleInfo, index uint32, locals []wasm.ValueKind) (*Context, error) {
	ft, ok := module.FunctionType(index)
	if !ok {
		return nil, wasmerr.Validate(wasmerr.KindInvalidIndex, "", "function[%d] has no type", index)
	}
	log := cfg.Log
	if log == nil {
		log = logging.Nop
	}
	all := make([]wasm.ValueKind, 0, len(ft.Params)+len(locals))
	all = append(append(all, ft.Params...), locals...)

	localTypes := make([]vm.Type, len(locals))
	for i, k := range locals {
		localTypes[i] = kindType(k)
	}
	c := &Context{
		cfg:     cfg,
		caps:    cfg.Helpers.Capabilities(),
		log:     log,
		module:  module,
		index:   index,
		locals:  all,
		em:      vm.NewRoutineBuilder(fmt.Sprintf("function[%d]", index), signature(ft), localTypes),
		scratch: map[vm.Type]vm.Temp{},
	}
	c.frames.push(&controlFrame{kind: controlFrameKindFunction, results: ft.Results, end: c.em.NewLabel()})
	return c, nil
}

// CompileFunction compiles body, the instructions of function index of module up to and including its final end.
func CompileFunction(cfg *Config, module *ModuleInfo, index uint32, locals []wasm.ValueKind, body []wasm.Instruction) (*vm.Routine, error) {
	c, err := NewContext(cfg, module, index, locals)
	if err != nil {
		return nil, err
	}
	return c.Compile(body)
}

// Stack returns the operand stack.
func (c *Context) Stack() *OperandStack {
	return &c.stack
}

// Scratch returns the temporary of type t shared by every instruction of the body. Its value does not survive the
// instruction that set it.
func (c *Context) Scratch(t vm.Type) vm.Temp {
	tmp, ok := c.scratch[t]
	if !ok {
		tmp = c.em.DeclareTemp(t)
		c.scratch[t] = tmp
	}
	return tmp
}

// Temp returns a new temporary of type t.
func (c *Context) Temp(t vm.Type) vm.Temp {
	return c.em.DeclareTemp(t)
}

// Compile validates body and emits it. On error, nothing of the body is kept.
func (c *Context) Compile(body []wasm.Instruction) (*vm.Routine, error) {
	c.log.Debug(logging.LogScopeEmit, "compiling function",
		zap.Uint32("index", c.index), zap.Int("instructions", len(body)))

	for _, in := range body {
		if c.frames.empty() {
			return nil, wasmerr.Validate(wasmerr.KindBlockExitStackSize, wasm.Name(in), "instruction after the end of the function")
		}
		if err := c.compile(in); err != nil {
			c.log.Debug(logging.LogScopeValidate, "invalid function",
				zap.Uint32("index", c.index), zap.Stringer("stack", &c.stack), zap.Error(err))
			return nil, err
		}
	}
	if !c.frames.empty() {
		return nil, wasmerr.Validate(wasmerr.KindBlockExitStackSize, "end", "function body is not terminated by end")
	}

	r, err := c.em.Finish()
	if err != nil {
		return nil, err
	}
	c.log.Debug(logging.LogScopeEmit, "compiled function",
		zap.Uint32("index", c.index), zap.Int("instructions", len(body)), zap.Int("ops", len(r.Code)))
	return r, nil
}

// dead reports whether the current instruction is unreachable, so that nothing is emitted for it.
func (c *Context) dead() bool {
	top := c.frames.top()
	return top.unreachable || top.dead
}

func (c *Context) emit(in vm.Instr) {
	if !c.dead() {
		c.em.Emit(in)
	}
}

func (c *Context) emitConst(t vm.Type, v vm.Value) {
	if !c.dead() {
		c.em.EmitConst(t, v)
	}
}

func (c *Context) emitLocal(kind vm.OpKind, tmp vm.Temp) {
	c.emit(vm.Instr{Kind: kind, Index: uint32(tmp)})
}

// emitPrimitive emits a call to the primitive key, failing if the target lacks it.
func (c *Context) emitPrimitive(instruction string, key vm.PrimKey) error {
	if c.dead() {
		return nil
	}
	p, ok := c.caps.Lookup(key.Op, key.Shape)
	if !ok {
		return wasmerr.MissingPrimitive(instruction, "target has no %s", key)
	}
	c.em.EmitCallPrimitive(p)
	return nil
}

// emitHelper emits a call to the helper returned by resolve.
func (c *Context) emitHelper(resolve func() (*vm.Routine, error)) error {
	if c.dead() {
		return nil
	}
	r, err := resolve()
	if err != nil {
		return err
	}
	c.em.EmitCallHelper(r)
	return nil
}

func kindType(k wasm.ValueKind) vm.Type {
	switch k {
	case wasm.ValueKindI32:
		return vm.TypeI32
	case wasm.ValueKindI64:
		return vm.TypeI64
	case wasm.ValueKindF32:
		return vm.TypeF32
	case wasm.ValueKindF64:
		return vm.TypeF64
	case wasm.ValueKindV128:
		return vm.TypeV128
	}
	panic(fmt.Sprintf("BUG: no type for value kind 0x%x", k))
}

// KindType returns the target type holding values of kind k.
func KindType(k wasm.ValueKind) vm.Type {
	return kindType(k)
}

func kindTypes(kinds []wasm.ValueKind) []vm.Type {
	ret := make([]vm.Type, len(kinds))
	for i, k := range kinds {
		ret[i] = kindType(k)
	}
	return ret
}

// Signature returns the target signature of a function type.
func Signature(ft *wasm.FunctionType) *vm.Signature {
	return signature(ft)
}

func signature(ft *wasm.FunctionType) *vm.Signature {
	return &vm.Signature{Params: kindTypes(ft.Params), Results: kindTypes(ft.Results)}
}
