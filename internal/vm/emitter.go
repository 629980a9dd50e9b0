package vm

import "fmt"

// Emitter appends target code to a routine under construction.
type Emitter interface {
	// DeclareTemp returns a new local of type t.
	DeclareTemp(t Type) Temp
	Emit(in Instr)
	EmitConst(t Type, v Value)
	EmitCallPrimitive(p *Primitive)
	EmitCallHelper(r *Routine)
	NewLabel() Label
	// MarkLabel binds l to the position of the next emitted instruction.
	MarkLabel(l Label)
	// Len returns the count of emitted instructions.
	Len() int
	// Finish returns the routine. The Emitter must not be used after.
	Finish() (*Routine, error)
}

// NewRoutineBuilder returns an Emitter building a routine of signature sig with the given declared locals.
func NewRoutineBuilder(name string, sig *Signature, locals []Type) *RoutineBuilder {
	return &RoutineBuilder{r: &Routine{Name: name, Sig: sig, Locals: append([]Type(nil), locals...)}}
}

// RoutineBuilder is the Emitter of this target.
type RoutineBuilder struct {
	r *Routine
}

var _ Emitter = (*RoutineBuilder)(nil)

// DeclareTemp implements Emitter.DeclareTemp
func (b *RoutineBuilder) DeclareTemp(t Type) Temp {
	b.r.Locals = append(b.r.Locals, t)
	return Temp(b.r.NumLocals() - 1)
}

// Emit implements Emitter.Emit
func (b *RoutineBuilder) Emit(in Instr) {
	b.r.Code = append(b.r.Code, in)
}

// EmitConst implements Emitter.EmitConst
func (b *RoutineBuilder) EmitConst(t Type, v Value) {
	b.Emit(Instr{Kind: OpConst, Type: t, Value: v})
}

// EmitCallPrimitive implements Emitter.EmitCallPrimitive
func (b *RoutineBuilder) EmitCallPrimitive(p *Primitive) {
	b.Emit(Instr{Kind: OpCallPrimitive, Prim: p})
}

// EmitCallHelper implements Emitter.EmitCallHelper
func (b *RoutineBuilder) EmitCallHelper(r *Routine) {
	b.Emit(Instr{Kind: OpCallHelper, Routine: r})
}

// NewLabel implements Emitter.NewLabel
func (b *RoutineBuilder) NewLabel() Label {
	b.r.Labels = append(b.r.Labels, -1)
	return Label(len(b.r.Labels) - 1)
}

// MarkLabel implements Emitter.MarkLabel
func (b *RoutineBuilder) MarkLabel(l Label) {
	b.r.Labels[l] = len(b.r.Code)
}

// Len implements Emitter.Len
func (b *RoutineBuilder) Len() int {
	return len(b.r.Code)
}

// Finish implements Emitter.Finish
func (b *RoutineBuilder) Finish() (*Routine, error) {
	for l, pc := range b.r.Labels {
		if pc < 0 {
			return nil, fmt.Errorf("%s: label L%d is never marked", b.r.Name, l)
		}
	}
	r := b.r
	b.r = nil
	return r, nil
}
