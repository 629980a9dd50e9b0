package compiler

import (
	"github.com/wasmlower/wasmlower/internal/simd"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// emitVector emits op as a call to its target primitive, or else to the helper lowering it.
func (c *Context) emitVector(name string, op wasm.OpcodeVec) error {
	if c.dead() {
		return nil
	}
	key, direct := VecPrimitive(op)
	if direct {
		if p, ok := c.caps.Lookup(key.Op, key.Shape); ok {
			c.em.EmitCallPrimitive(p)
			return nil
		}
	}
	if info, _ := wasm.VecInfoOf(op); info.Lowered {
		return c.emitHelper(func() (*vm.Routine, error) { return c.cfg.Helpers.Vector(op) })
	}
	if !direct {
		return wasmerr.MissingPrimitive(name, "no primitive or lowering")
	}
	return wasmerr.MissingPrimitive(name, "target has no %s", key)
}

func (c *Context) compileVec(v wasm.Vec) error {
	info, ok := wasm.VecInfoOf(v.Op)
	if !ok {
		return wasmerr.Validate(wasmerr.KindUnknownOpcode, "", "vector opcode 0x%x", v.Op)
	}
	name := info.Name

	var pops []wasm.ValueKind
	result := wasm.ValueKindV128
	switch info.Category {
	case wasm.CategoryUnary:
		pops = []wasm.ValueKind{wasm.ValueKindV128}
	case wasm.CategoryBinary, wasm.CategoryCompareNot:
		pops = []wasm.ValueKind{wasm.ValueKindV128, wasm.ValueKindV128}
	case wasm.CategoryTernary:
		pops = []wasm.ValueKind{wasm.ValueKindV128, wasm.ValueKindV128, wasm.ValueKindV128}
	case wasm.CategoryShift:
		pops = []wasm.ValueKind{wasm.ValueKindI32, wasm.ValueKindV128}
	case wasm.CategorySplat:
		pops = []wasm.ValueKind{info.Shape.LaneKind()}
	case wasm.CategoryReduce:
		pops = []wasm.ValueKind{wasm.ValueKindV128}
		result = wasm.ValueKindI32
	default:
		return wasmerr.Validate(wasmerr.KindUnknownOpcode, name, "no compile routine for %s", info.Category)
	}
	if _, err := c.stack.Pop(name, pops...); err != nil {
		return err
	}
	c.stack.Push(result)
	return c.emitVector(name, v.Op)
}

func (c *Context) compileVecLane(v wasm.VecLane) error {
	info, _ := wasm.VecInfoOf(v.Op)
	name := info.Name
	if lanes := info.Shape.Lanes(); int(v.Lane) >= lanes {
		return wasmerr.Validate(wasmerr.KindInvalidLaneIndex, name, "lane %d is out of range, as %s has %d lanes",
			v.Lane, info.Shape, lanes)
	}
	shape := simd.LaneShape(info.Shape)
	laneKind := info.Shape.LaneKind()

	if info.Category == wasm.CategoryExtractLane {
		if _, err := c.stack.PopOne(name, wasm.ValueKindV128); err != nil {
			return err
		}
		c.stack.Push(laneKind)
		c.emitConst(vm.TypeI32, vm.I32(uint32(v.Lane)))
		op := vm.PrimExtractLane
		if !info.Signed && info.Shape.LaneBytes() < 4 {
			op = vm.PrimExtractLaneU
		}
		return c.emitPrimitive(name, vm.PrimKey{Op: op, Shape: shape})
	}

	if _, err := c.stack.Pop(name, laneKind, wasm.ValueKindV128); err != nil {
		return err
	}
	c.stack.Push(wasm.ValueKindV128)
	lane := c.Scratch(kindType(laneKind))
	c.emitLocal(vm.OpLocalSet, lane)
	c.emitConst(vm.TypeI32, vm.I32(uint32(v.Lane)))
	c.emitLocal(vm.OpLocalGet, lane)
	return c.emitPrimitive(name, vm.PrimKey{Op: vm.PrimReplaceLane, Shape: shape})
}

// compileVecShuffle passes the lane immediates to the shuffle lowering as a third vector.
func (c *Context) compileVecShuffle(v wasm.VecShuffle) error {
	const name = "i8x16.shuffle"
	if _, err := c.stack.Pop(name, wasm.ValueKindV128, wasm.ValueKindV128); err != nil {
		return err
	}
	c.stack.Push(wasm.ValueKindV128)
	c.emitConst(vm.TypeV128, vm.V128FromBytes(v.Lanes))
	return c.emitVector(name, wasm.OpcodeVecI8x16Shuffle)
}
