// Package simd expands the 128-bit vector operations that have no single target primitive into sequences of the
// lane-wise primitives the target does have.
//
// Every expansion is written against Builder, so that the same algorithm can either be emitted as a shared helper
// routine or evaluated directly over concrete values.
package simd

import "github.com/wasmlower/wasmlower/internal/vm"

// Ref is a value produced by a Builder.
type Ref int

// Builder is the algebra the lowerings are written in.
//
// Errors are sticky: once an operation fails, e.g. because the target lacks a primitive, every following call returns
// a meaningless Ref and Err reports the first failure.
type Builder interface {
	Const(t vm.Type, v vm.Value) Ref
	Apply(op vm.PrimOp, shape vm.Shape, args ...Ref) Ref
	Err() error
}

// ops wraps a Builder with shorthands for the operations the lowerings use most.
type ops struct {
	Builder
}

func (o ops) vec(v vm.Value) Ref {
	return o.Const(vm.TypeV128, v)
}

func (o ops) splat(shape vm.Shape, x uint64) Ref {
	return o.vec(vm.SplatValue(shape, x))
}

func (o ops) i32(x uint32) Ref {
	return o.Const(vm.TypeI32, vm.I32(x))
}

func (o ops) zero() Ref {
	return o.vec(vm.V128(0, 0))
}

func (o ops) and(x, y Ref) Ref { return o.Apply(vm.PrimAnd, vm.ShapeV128, x, y) }
func (o ops) or(x, y Ref) Ref  { return o.Apply(vm.PrimOr, vm.ShapeV128, x, y) }
func (o ops) xor(x, y Ref) Ref { return o.Apply(vm.PrimXor, vm.ShapeV128, x, y) }
func (o ops) not(x Ref) Ref    { return o.Apply(vm.PrimNot, vm.ShapeV128, x) }

// andNot returns x &^ y.
func (o ops) andNot(x, y Ref) Ref { return o.Apply(vm.PrimAndNot, vm.ShapeV128, x, y) }

// sel takes the bits of x where mask is set, and of y elsewhere.
func (o ops) sel(x, y, mask Ref) Ref { return o.Apply(vm.PrimSelect, vm.ShapeV128, x, y, mask) }

func (o ops) shuffle(x Ref, ctrl [16]byte) Ref {
	return o.Apply(vm.PrimShuffle, vm.ShapeI8x16, x, o.vec(vm.V128FromBytes(ctrl)))
}

// signMask sets every bit of a lane of x whose sign bit is set.
func (o ops) signMask(shape vm.Shape, x Ref) Ref {
	return o.Apply(vm.PrimShrS, shape, x, o.i32(uint32(shape.LaneBits()-1)))
}
