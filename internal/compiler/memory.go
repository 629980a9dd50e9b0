package compiler

import (
	"github.com/wasmlower/wasmlower/internal/simd"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func (c *Context) requireMemory(name string) error {
	if !c.module.Memory {
		return wasmerr.Validate(wasmerr.KindInvalidIndex, name, "memory 0 is out of range")
	}
	return nil
}

func checkAlignment(name string, arg wasm.MemoryImmediate, natural uint32) error {
	if arg.Align > natural {
		return wasmerr.Validate(wasmerr.KindInvalidAlignment, name,
			"alignment 2**%d is larger than natural alignment 2**%d", arg.Align, natural)
	}
	return nil
}

// emitAddress turns the i32 address on top of the stack into a pointer to width bytes at arg.Offset past it,
// trapping unless they are all inside memory.
func (c *Context) emitAddress(name string, arg wasm.MemoryImmediate, width uint32) error {
	if c.dead() {
		return nil
	}
	if arg.Offset != 0 {
		c.emitConst(vm.TypeI32, vm.I32(arg.Offset))
		if err := c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimAddU32Checked, Shape: vm.ShapeI32}); err != nil {
			return err
		}
	}
	if err := c.emitHelper(func() (*vm.Routine, error) { return c.cfg.Helpers.RangeCheck(width) }); err != nil {
		return err
	}
	c.emit(vm.Instr{Kind: vm.OpMemPointer})
	return nil
}

func (c *Context) compileMemory(v wasm.Memory) error {
	info, _ := wasm.PrimaryInfo(v.Op)
	name := info.Name
	if err := c.requireMemory(name); err != nil {
		return err
	}
	if err := checkAlignment(name, v.Arg, info.NaturalAlignment()); err != nil {
		return err
	}

	if info.Category == wasm.CategoryMemoryRead {
		if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
			return err
		}
		result := info.Results[0]
		c.stack.Push(result)
		if err := c.emitAddress(name, v.Arg, info.Width); err != nil {
			return err
		}
		c.emit(vm.Instr{
			Kind: vm.OpLoad, Type: kindType(result), Width: byte(info.Width), Signed: info.Signed, Align: v.Arg.Align,
		})
		return nil
	}

	kind := info.Params[1]
	if _, err := c.stack.Pop(name, kind, wasm.ValueKindI32); err != nil {
		return err
	}
	return c.emitStore(name, v.Arg, kindType(kind), info.Width)
}

// emitStore stores the value on top of the stack to the address below it.
func (c *Context) emitStore(name string, arg wasm.MemoryImmediate, t vm.Type, width uint32) error {
	value := c.Scratch(t)
	c.emitLocal(vm.OpLocalSet, value)
	if err := c.emitAddress(name, arg, width); err != nil {
		return err
	}
	c.emitLocal(vm.OpLocalGet, value)
	c.emit(vm.Instr{Kind: vm.OpStore, Type: t, Width: byte(width), Align: arg.Align})
	return nil
}

func (c *Context) compileMemoryControl(v wasm.MemoryControl) error {
	name := wasm.InstructionName(v.Op)
	if err := c.requireMemory(name); err != nil {
		return err
	}
	if v.Op == wasm.OpcodeMemoryGrow {
		if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
			return err
		}
		c.stack.Push(wasm.ValueKindI32)
		c.emit(vm.Instr{Kind: vm.OpMemGrow})
		return nil
	}
	c.stack.Push(wasm.ValueKindI32)
	c.emit(vm.Instr{Kind: vm.OpMemPages})
	return nil
}

func (c *Context) compileVecMemory(v wasm.VecMemory) error {
	info, _ := wasm.VecInfoOf(v.Op)
	name := info.Name
	if err := c.requireMemory(name); err != nil {
		return err
	}
	if err := checkAlignment(name, v.Arg, info.NaturalAlignment()); err != nil {
		return err
	}

	if info.Category == wasm.CategoryMemoryWrite {
		if _, err := c.stack.Pop(name, wasm.ValueKindV128, wasm.ValueKindI32); err != nil {
			return err
		}
		return c.emitStore(name, v.Arg, vm.TypeV128, info.Width)
	}

	if _, err := c.stack.PopOne(name, wasm.ValueKindI32); err != nil {
		return err
	}
	c.stack.Push(wasm.ValueKindV128)
	if err := c.emitAddress(name, v.Arg, info.Width); err != nil {
		return err
	}

	shape := simd.LaneShape(info.Shape)
	switch info.Load {
	case wasm.LoadPlain:
		c.emit(vm.Instr{Kind: vm.OpLoad, Type: vm.TypeV128, Width: 16, Align: v.Arg.Align})
	case wasm.LoadExtend:
		// Read the 64-bit half into both lanes of an i64x2, then widen its low half.
		c.emit(vm.Instr{Kind: vm.OpLoad, Type: vm.TypeI64, Width: 8, Align: v.Arg.Align})
		if err := c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimSplat, Shape: vm.ShapeI64x2}); err != nil {
			return err
		}
		widen := vm.PrimWidenLowU
		if info.Signed {
			widen = vm.PrimWidenLowS
		}
		return c.emitPrimitive(name, vm.PrimKey{Op: widen, Shape: shape})
	case wasm.LoadSplat:
		c.emit(vm.Instr{Kind: vm.OpLoad, Type: shape.LaneType(), Width: byte(info.Width), Align: v.Arg.Align})
		return c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimSplat, Shape: shape})
	case wasm.LoadZero:
		laneType := shape.LaneType()
		c.emit(vm.Instr{Kind: vm.OpLoad, Type: laneType, Width: byte(info.Width), Align: v.Arg.Align})
		lane := c.Scratch(laneType)
		c.emitLocal(vm.OpLocalSet, lane)
		c.emitConst(vm.TypeV128, vm.V128(0, 0))
		c.emitConst(vm.TypeI32, vm.I32(0))
		c.emitLocal(vm.OpLocalGet, lane)
		return c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimReplaceLane, Shape: shape})
	}
	return nil
}

func (c *Context) compileVecMemoryLane(v wasm.VecMemoryLane) error {
	info, _ := wasm.VecInfoOf(v.Op)
	name := info.Name
	if err := c.requireMemory(name); err != nil {
		return err
	}
	if lanes := 16 / info.Width; uint32(v.Lane) >= lanes {
		return wasmerr.Validate(wasmerr.KindInvalidLaneIndex, name, "lane %d is out of range, as %s has %d lanes",
			v.Lane, info.Shape, lanes)
	}
	if err := checkAlignment(name, v.Arg, info.NaturalAlignment()); err != nil {
		return err
	}
	if _, err := c.stack.Pop(name, wasm.ValueKindV128, wasm.ValueKindI32); err != nil {
		return err
	}

	shape := simd.LaneShape(info.Shape)
	laneType := shape.LaneType()
	vec := c.Scratch(vm.TypeV128)
	c.emitLocal(vm.OpLocalSet, vec)
	if err := c.emitAddress(name, v.Arg, info.Width); err != nil {
		return err
	}

	if info.Category == wasm.CategoryMemoryLaneRead {
		c.stack.Push(wasm.ValueKindV128)
		c.emit(vm.Instr{Kind: vm.OpLoad, Type: laneType, Width: byte(info.Width), Align: v.Arg.Align})
		lane := c.Scratch(laneType)
		c.emitLocal(vm.OpLocalSet, lane)
		c.emitLocal(vm.OpLocalGet, vec)
		c.emitConst(vm.TypeI32, vm.I32(uint32(v.Lane)))
		c.emitLocal(vm.OpLocalGet, lane)
		return c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimReplaceLane, Shape: shape})
	}

	c.emitLocal(vm.OpLocalGet, vec)
	c.emitConst(vm.TypeI32, vm.I32(uint32(v.Lane)))
	extract := vm.PrimExtractLane
	if info.Width < 4 {
		extract = vm.PrimExtractLaneU
	}
	if err := c.emitPrimitive(name, vm.PrimKey{Op: extract, Shape: shape}); err != nil {
		return err
	}
	c.emit(vm.Instr{Kind: vm.OpStore, Type: laneType, Width: byte(info.Width), Align: v.Arg.Align})
	return nil
}
