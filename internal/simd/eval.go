package simd

import (
	"fmt"

	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// Evaluator is a Builder computing over concrete values with the primitives of a vm.Capabilities.
type Evaluator struct {
	caps        *vm.Capabilities
	instruction string
	vals        []vm.Value
	err         error
}

var _ Builder = (*Evaluator)(nil)

// NewEvaluator returns an Evaluator using caps. instruction names the operation in errors.
func NewEvaluator(caps *vm.Capabilities, instruction string) *Evaluator {
	return &Evaluator{caps: caps, instruction: instruction}
}

// Const implements Builder.Const
func (e *Evaluator) Const(_ vm.Type, v vm.Value) Ref {
	e.vals = append(e.vals, v)
	return Ref(len(e.vals) - 1)
}

// Apply implements Builder.Apply
func (e *Evaluator) Apply(op vm.PrimOp, shape vm.Shape, args ...Ref) Ref {
	if e.err != nil {
		return -1
	}
	p, ok := e.caps.Lookup(op, shape)
	if !ok {
		e.err = wasmerr.MissingPrimitive(e.instruction, "target has no %s", vm.PrimKey{Op: op, Shape: shape})
		return -1
	}
	vs := make([]vm.Value, len(args))
	for i, a := range args {
		vs[i] = e.vals[a]
	}
	return e.Const(p.Result, p.Call(vs...))
}

// Err implements Builder.Err
func (e *Evaluator) Err() error {
	return e.err
}

// Value returns the value of r.
func (e *Evaluator) Value(r Ref) vm.Value {
	return e.vals[r]
}

// Eval runs the lowering of op over args.
func Eval(caps *vm.Capabilities, op wasm.OpcodeVec, args ...vm.Value) (vm.Value, error) {
	l, ok := Lowerings[op]
	if !ok {
		return vm.Value{}, fmt.Errorf("%s is not lowered", wasm.VecInstructionName(op))
	}
	if len(args) != len(l.Params) {
		return vm.Value{}, fmt.Errorf("%s takes %d operands, but was given %d", wasm.VecInstructionName(op), len(l.Params), len(args))
	}
	e := NewEvaluator(caps, wasm.VecInstructionName(op))
	refs := make([]Ref, len(args))
	for i, a := range args {
		refs[i] = e.Const(l.Params[i], a)
	}
	r := l.Build(e, refs)
	if err := e.Err(); err != nil {
		return vm.Value{}, err
	}
	return e.Value(r), nil
}
