package compiler

import (
	"errors"
	"math"
	"strings"

	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// compile validates one instruction against the operand stack and emits it.
func (c *Context) compile(in wasm.Instruction) error {
	if _, ok := wasm.VecOpcode(in); ok && !c.cfg.Features.IsEnabled(wasm.FeatureSIMD) {
		return wasmerr.Validate(wasmerr.KindUnknownOpcode, wasm.Name(in), "feature %s is disabled", wasm.FeatureSIMD)
	}
	switch v := in.(type) {
	case wasm.Simple:
		return c.compileSimple(v)
	case wasm.Block:
		return c.compileBlock(v)
	case wasm.Branch:
		return c.compileBranch(v)
	case wasm.BranchTable:
		return c.compileBranchTable(v)
	case wasm.Call:
		return c.compileCall(v)
	case wasm.CallIndirect:
		return c.compileCallIndirect(v)
	case wasm.Variable:
		return c.compileVariable(v)
	case wasm.Memory:
		return c.compileMemory(v)
	case wasm.MemoryControl:
		return c.compileMemoryControl(v)
	case wasm.I32Const:
		c.pushConst(wasm.ValueKindI32, vm.I32(uint32(v.Value)))
	case wasm.I64Const:
		c.pushConst(wasm.ValueKindI64, vm.I64(uint64(v.Value)))
	case wasm.F32Const:
		c.pushConst(wasm.ValueKindF32, vm.F32(math.Float32frombits(v.Bits)))
	case wasm.F64Const:
		c.pushConst(wasm.ValueKindF64, vm.F64(math.Float64frombits(v.Bits)))
	case wasm.Misc:
		return c.compileNumeric(in)
	case wasm.Vec:
		return c.compileVec(v)
	case wasm.VecMemory:
		return c.compileVecMemory(v)
	case wasm.VecMemoryLane:
		return c.compileVecMemoryLane(v)
	case wasm.VecLane:
		return c.compileVecLane(v)
	case wasm.VecConst:
		c.pushConst(wasm.ValueKindV128, vm.V128FromBytes(v.Value))
	case wasm.VecShuffle:
		return c.compileVecShuffle(v)
	default:
		return wasmerr.Validate(wasmerr.KindUnknownOpcode, wasm.Name(in), "no compile routine")
	}
	return nil
}

func (c *Context) pushConst(kind wasm.ValueKind, v vm.Value) {
	c.stack.Push(kind)
	c.emitConst(kindType(kind), v)
}

func (c *Context) compileSimple(v wasm.Simple) error {
	name := wasm.InstructionName(v.Op)
	switch v.Op {
	case wasm.OpcodeNop:
		return nil
	case wasm.OpcodeUnreachable:
		c.emit(vm.Instr{Kind: vm.OpTrap, Trap: wasmruntime.ErrRuntimeUnreachable})
		c.setUnreachable()
		return nil
	case wasm.OpcodeElse:
		return c.compileElse()
	case wasm.OpcodeEnd:
		return c.compileEnd()
	case wasm.OpcodeReturn:
		f := c.frames.functionFrame()
		if err := c.checkLabel(name, f.results); err != nil {
			return err
		}
		c.emit(vm.Instr{Kind: vm.OpReturn})
		c.setUnreachable()
		return nil
	case wasm.OpcodeDrop:
		if _, err := c.stack.PopOne(name, wasm.ValueKindUnknown); err != nil {
			return err
		}
		c.emit(vm.Instr{Kind: vm.OpDrop})
		return nil
	case wasm.OpcodeSelect:
		return c.compileSelect(name)
	}
	return c.compileNumeric(v)
}

func (c *Context) compileNumeric(in wasm.Instruction) error {
	info, ok := NumericInfoOf(in)
	if !ok {
		return wasmerr.Validate(wasmerr.KindUnknownOpcode, wasm.Name(in), "no compile routine")
	}
	if _, err := c.stack.Pop(info.Name, reversed(info.Params)...); err != nil {
		return err
	}
	c.stack.Push(info.Result)
	return c.emitPrimitive(info.Name, info.Prim)
}

func (c *Context) compileSelect(name string) error {
	operands, err := c.stack.Pop(name, wasm.ValueKindI32, wasm.ValueKindUnknown, wasm.ValueKindUnknown)
	if err != nil {
		return err
	}
	second, first := operands[1], operands[2]
	if first != wasm.ValueKindUnknown && second != wasm.ValueKindUnknown && first != second {
		// Both operands were above the floor, so restoring them leaves the stack as it was.
		c.stack.Push(first, second, operands[0])
		return wasmerr.TypeMismatch(name, wasm.ValueKindName(first), wasm.ValueKindName(second))
	}
	if first == wasm.ValueKindUnknown {
		first = second
	}
	c.stack.Push(first)
	c.emit(vm.Instr{Kind: vm.OpSelect})
	return nil
}

// setUnreachable marks the rest of the innermost frame as unreachable. Its operand stack becomes polymorphic.
func (c *Context) setUnreachable() {
	top := c.frames.top()
	top.unreachable = true
	c.stack.Truncate(top.height)
	c.stack.enter(top.height, true)
}

func (c *Context) compileBlock(v wasm.Block) error {
	name := wasm.InstructionName(v.Op)
	ft, ok := v.Type.Signature(c.module.Types)
	if !ok {
		return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "block type %s is out of range", v.Type)
	}
	operands := reversed(ft.Params)
	if v.Op == wasm.OpcodeIf {
		operands = append([]wasm.ValueKind{wasm.ValueKindI32}, operands...)
	}
	if _, err := c.stack.Pop(name, operands...); err != nil {
		return err
	}

	parent := c.frames.top()
	f := &controlFrame{
		params:  ft.Params,
		results: ft.Results,
		height:  c.stack.Len(),
		end:     c.em.NewLabel(),
		dead:    parent.unreachable || parent.dead,
	}
	switch v.Op {
	case wasm.OpcodeBlock:
		f.kind = controlFrameKindBlock
	case wasm.OpcodeLoop:
		f.kind = controlFrameKindLoop
		f.start = c.em.NewLabel()
		c.em.MarkLabel(f.start)
	case wasm.OpcodeIf:
		f.kind = controlFrameKindIf
		f.elseLabel = c.em.NewLabel()
		c.emit(vm.Instr{
			Kind:   vm.OpBrIfNot,
			Keep:   uint32(len(ft.Params)),
			Target: vm.BranchTarget{Label: f.elseLabel, Height: uint32(f.height)},
		})
	}
	c.frames.push(f)
	c.stack.Push(ft.Params...)
	c.stack.enter(f.height, false)
	return nil
}

// checkExit checks the operand stack holds exactly the results of f above its height.
func (c *Context) checkExit(f *controlFrame, name string) error {
	n := c.stack.Len() - f.height
	if n > len(f.results) || (n < len(f.results) && !f.unreachable) {
		return wasmerr.Validate(wasmerr.KindBlockExitStackSize, name,
			"expected %d values at the end of the block, but the stack has %d", len(f.results), n)
	}
	_, err := c.stack.Pop(name, reversed(f.results)...)
	return err
}

func (c *Context) compileElse() error {
	f := c.frames.top()
	if f.kind != controlFrameKindIf {
		return wasmerr.Validate(wasmerr.KindBlockExitStackSize, "else", "else outside of an if")
	}
	if err := c.checkExit(f, "else"); err != nil {
		return err
	}
	c.emit(vm.Instr{
		Kind:   vm.OpBr,
		Keep:   uint32(len(f.results)),
		Target: vm.BranchTarget{Label: f.end, Height: uint32(f.height)},
	})
	c.em.MarkLabel(f.elseLabel)
	f.kind = controlFrameKindElse
	f.unreachable = false
	c.stack.Truncate(f.height)
	c.stack.Push(f.params...)
	c.stack.enter(f.height, false)
	return nil
}

func (c *Context) compileEnd() error {
	f := c.frames.top()
	if err := c.checkExit(f, "end"); err != nil {
		return err
	}
	if f.kind == controlFrameKindIf && !kindsEqual(f.params, f.results) {
		return wasmerr.Validate(wasmerr.KindLabelTypeMismatch, "end",
			"if without else must leave its params, %s, as its results, %s",
			kindsName(f.params), kindsName(f.results))
	}
	c.frames.pop()
	if f.kind == controlFrameKindIf {
		c.em.MarkLabel(f.elseLabel)
	}
	c.em.MarkLabel(f.end)
	c.stack.Truncate(f.height)
	c.stack.Push(f.results...)
	if !c.frames.empty() {
		parent := c.frames.top()
		c.stack.enter(parent.height, parent.unreachable)
	}
	return nil
}

// checkLabel checks the top of the operand stack carries kinds to a branch, leaving the stack as it was.
func (c *Context) checkLabel(name string, kinds []wasm.ValueKind) error {
	if _, err := c.stack.Pop(name, reversed(kinds)...); err != nil {
		return asLabelMismatch(err)
	}
	c.stack.Push(kinds...)
	return nil
}

// asLabelMismatch reports a stack error raised at a branch as a label error.
func asLabelMismatch(err error) error {
	var e *wasmerr.Error
	if errors.As(err, &e) && (e.Kind == wasmerr.KindStackTooSmall || e.Kind == wasmerr.KindStackTypeMismatch) {
		ret := *e
		ret.Kind = wasmerr.KindLabelTypeMismatch
		return &ret
	}
	return err
}

func (c *Context) label(name string, depth uint32) (*controlFrame, error) {
	f, ok := c.frames.get(depth)
	if !ok {
		return nil, wasmerr.Validate(wasmerr.KindInvalidIndex, name, "label %d is out of range", depth)
	}
	return f, nil
}

func (c *Context) compileBranch(v wasm.Branch) error {
	name := wasm.InstructionName(v.Op)
	if v.Op == wasm.OpcodeBrIf {
		if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
			return err
		}
	}
	target, err := c.label(name, v.Depth)
	if err != nil {
		return err
	}
	kinds := target.labelKinds()
	if err = c.checkLabel(name, kinds); err != nil {
		return err
	}
	if v.Op == wasm.OpcodeBrIf {
		c.emit(vm.Instr{Kind: vm.OpBrIf, Keep: uint32(len(kinds)), Target: target.asBranchTarget()})
		return nil
	}
	c.emit(vm.Instr{Kind: vm.OpBr, Keep: uint32(len(kinds)), Target: target.asBranchTarget()})
	c.setUnreachable()
	return nil
}

func (c *Context) compileBranchTable(v wasm.BranchTable) error {
	const name = "br_table"
	if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
		return err
	}
	def, err := c.label(name, v.Default)
	if err != nil {
		return err
	}
	arity := len(def.labelKinds())

	depths := make([]uint32, 0, len(v.Targets)+1)
	depths = append(append(depths, v.Targets...), v.Default)
	targets := make([]vm.BranchTarget, 0, len(depths))
	for _, depth := range depths {
		f, err := c.label(name, depth)
		if err != nil {
			return err
		}
		kinds := f.labelKinds()
		if len(kinds) != arity {
			return wasmerr.Validate(wasmerr.KindLabelTypeMismatch, name,
				"label %d carries %d values, but the default label carries %d", depth, len(kinds), arity)
		}
		if err = c.checkLabel(name, kinds); err != nil {
			return err
		}
		targets = append(targets, f.asBranchTarget())
	}
	c.emit(vm.Instr{Kind: vm.OpBrTable, Keep: uint32(arity), Targets: targets})
	c.setUnreachable()
	return nil
}

func (c *Context) compileCall(v wasm.Call) error {
	const name = "call"
	ft, ok := c.module.FunctionType(v.Func)
	if !ok {
		return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "function %d is out of range", v.Func)
	}
	if _, err := c.stack.Pop(name, reversed(ft.Params)...); err != nil {
		return err
	}
	c.stack.Push(ft.Results...)
	c.emit(vm.Instr{Kind: vm.OpCall, Index: v.Func})
	return nil
}

func (c *Context) compileCallIndirect(v wasm.CallIndirect) error {
	const name = "call_indirect"
	if !c.module.Table || v.Table != 0 {
		return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "table %d is out of range", v.Table)
	}
	if int(v.Type) >= len(c.module.Types) {
		return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "type %d is out of range", v.Type)
	}
	ft := c.module.Types[v.Type]
	if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
		return err
	}
	if _, err := c.stack.Pop(name, reversed(ft.Params)...); err != nil {
		return err
	}
	c.stack.Push(ft.Results...)
	c.emit(vm.Instr{Kind: vm.OpCallIndirect, Sig: signature(ft)})
	return nil
}

func (c *Context) compileVariable(v wasm.Variable) error {
	name := wasm.InstructionName(v.Op)
	switch v.Op {
	case wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeLocalTee:
		if int(v.Index) >= len(c.locals) {
			return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "local %d is out of range", v.Index)
		}
		kind := c.locals[v.Index]
		switch v.Op {
		case wasm.OpcodeLocalGet:
			c.stack.Push(kind)
			c.emit(vm.Instr{Kind: vm.OpLocalGet, Index: v.Index})
		case wasm.OpcodeLocalSet:
			if _, err := c.stack.PopOne(name, kind); err != nil {
				return err
			}
			c.emit(vm.Instr{Kind: vm.OpLocalSet, Index: v.Index})
		default:
			if _, err := c.stack.PopOne(name, kind); err != nil {
				return err
			}
			c.stack.Push(kind)
			c.emit(vm.Instr{Kind: vm.OpLocalTee, Index: v.Index})
		}
	default:
		if int(v.Index) >= len(c.module.Globals) {
			return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "global %d is out of range", v.Index)
		}
		g := c.module.Globals[v.Index]
		if v.Op == wasm.OpcodeGlobalGet {
			c.stack.Push(g.Kind)
			c.emit(vm.Instr{Kind: vm.OpGlobalGet, Index: v.Index})
			return nil
		}
		if !g.Mutable {
			return wasmerr.Validate(wasmerr.KindImmutableGlobal, name, "global %d is immutable", v.Index)
		}
		if _, err := c.stack.PopOne(name, g.Kind); err != nil {
			return err
		}
		c.emit(vm.Instr{Kind: vm.OpGlobalSet, Index: v.Index})
	}
	return nil
}

func kindsEqual(a, b []wasm.ValueKind) bool {
	return string(a) == string(b)
}

func kindsName(kinds []wasm.ValueKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = wasm.ValueKindName(k)
	}
	return "[" + strings.Join(names, " ") + "]"
}
