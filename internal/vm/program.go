package vm

import (
	"fmt"
	"strings"

	"github.com/wasmlower/wasmlower/internal/wasmruntime"
)

// OpKind is the kind of an Instr.
type OpKind byte

const (
	// OpConst pushes Value of Type.
	OpConst OpKind = iota
	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet
	OpDrop
	// OpSelect pops a condition and two operands, pushing the first when the condition is nonzero.
	OpSelect
	OpCallPrimitive
	OpCallHelper
	OpCall
	// OpCallIndirect pops a table index and calls that element, which must have signature Sig.
	OpCallIndirect
	// OpBr moves the top Keep values to Target.Height and jumps to Target.Label.
	OpBr
	// OpBrIf pops a condition and branches as OpBr when it is nonzero.
	OpBrIf
	// OpBrIfNot pops a condition and branches as OpBr when it is zero.
	OpBrIfNot
	// OpBrTable pops an index into Targets, whose last element is the default.
	OpBrTable
	OpReturn
	OpTrap
	// OpMemSize pushes the memory size in bytes as an i64.
	OpMemSize
	// OpMemPages pushes the memory size in pages as an i32.
	OpMemPages
	// OpMemGrow pops a page delta and pushes the previous page count, or -1.
	OpMemGrow
	// OpMemPointer converts an i32 address, already range checked, into a pointer.
	OpMemPointer
	// OpLoad pops a pointer and pushes Width bytes read there as Type.
	OpLoad
	// OpStore pops a value, then a pointer, and writes the low Width bytes of the value there.
	OpStore
)

var opKindNames = [...]string{
	OpConst:         "const",
	OpLocalGet:      "local.get",
	OpLocalSet:      "local.set",
	OpLocalTee:      "local.tee",
	OpGlobalGet:     "global.get",
	OpGlobalSet:     "global.set",
	OpDrop:          "drop",
	OpSelect:        "select",
	OpCallPrimitive: "prim",
	OpCallHelper:    "call_helper",
	OpCall:          "call",
	OpCallIndirect:  "call_indirect",
	OpBr:            "br",
	OpBrIf:          "br_if",
	OpBrIfNot:       "br_if_not",
	OpBrTable:       "br_table",
	OpReturn:        "return",
	OpTrap:          "trap",
	OpMemSize:       "mem.size",
	OpMemPages:      "mem.pages",
	OpMemGrow:       "mem.grow",
	OpMemPointer:    "mem.pointer",
	OpLoad:          "load",
	OpStore:         "store",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("op(%d)", byte(k))
}

// Label identifies a position in the code of a Routine.
type Label uint32

// Temp is the local index of a temporary declared through an Emitter.
type Temp uint32

// BranchTarget is where a branch jumps to, and the stack height, relative to the routine's frame, it leaves below
// the kept values.
type BranchTarget struct {
	Label  Label
	Height uint32
}

// Signature is the parameter and result types of a Routine.
type Signature struct {
	Params, Results []Type
}

// Equal returns true if s and o have the same parameter and result types.
func (s *Signature) Equal(o *Signature) bool {
	return typesEqual(s.Params, o.Params) && typesEqual(s.Results, o.Results)
}

func (s *Signature) String() string {
	return "(" + typesString(s.Params) + ") -> (" + typesString(s.Results) + ")"
}

func typesEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typesString(ts []Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Instr is one target instruction. Only the fields its Kind uses are set.
type Instr struct {
	Kind  OpKind
	Type  Type
	Value Value
	// Index is a local, global or function index.
	Index   uint32
	Prim    *Primitive
	Routine *Routine
	Sig     *Signature
	Target  BranchTarget
	Targets []BranchTarget
	Keep    uint32
	Trap    *wasmruntime.Error
	// Width is the byte width of a load or store, Signed whether a narrow load sign extends, and Align the
	// alignment exponent hint.
	Width  byte
	Signed bool
	Align  uint32
}

func (in *Instr) String() string {
	switch in.Kind {
	case OpConst:
		return fmt.Sprintf("const.%s %s", in.Type, in.Value.Format(in.Type))
	case OpLocalGet, OpLocalSet, OpLocalTee, OpGlobalGet, OpGlobalSet, OpCall:
		return fmt.Sprintf("%s %d", in.Kind, in.Index)
	case OpCallPrimitive:
		return "prim " + in.Prim.String()
	case OpCallHelper:
		return "call_helper " + in.Routine.Name
	case OpCallIndirect:
		return "call_indirect " + in.Sig.String()
	case OpBr, OpBrIf, OpBrIfNot:
		return fmt.Sprintf("%s L%d keep=%d height=%d", in.Kind, in.Target.Label, in.Keep, in.Target.Height)
	case OpBrTable:
		var b strings.Builder
		fmt.Fprintf(&b, "br_table keep=%d", in.Keep)
		for _, t := range in.Targets {
			fmt.Fprintf(&b, " L%d@%d", t.Label, t.Height)
		}
		return b.String()
	case OpTrap:
		return "trap " + in.Trap.Error()
	case OpLoad, OpStore:
		sign := ""
		if in.Signed {
			sign = "_s"
		}
		return fmt.Sprintf("%s.%s%d%s align=%d", in.Type, in.Kind, int(in.Width)*8, sign, uint32(1)<<in.Align)
	}
	return in.Kind.String()
}

// Routine is a compiled function or shared helper.
type Routine struct {
	Name string
	Sig  *Signature
	// Locals are the types of the locals after the params, including temporaries.
	Locals []Type
	Code   []Instr
	// Labels maps each Label to its position in Code.
	Labels []int
}

// NumLocals returns the count of params and locals.
func (r *Routine) NumLocals() int {
	return len(r.Sig.Params) + len(r.Locals)
}

// Disassemble returns a listing of r, one instruction per line.
func (r *Routine) Disassemble() string {
	at := map[int][]Label{}
	for l, pc := range r.Labels {
		at[pc] = append(at[pc], Label(l))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.Name, r.Sig)
	if len(r.Locals) > 0 {
		fmt.Fprintf(&b, "  locals (%s)\n", typesString(r.Locals))
	}
	for pc := range r.Code {
		for _, l := range at[pc] {
			fmt.Fprintf(&b, "L%d:\n", l)
		}
		fmt.Fprintf(&b, "  %04d %s\n", pc, r.Code[pc].String())
	}
	for _, l := range at[len(r.Code)] {
		fmt.Fprintf(&b, "L%d:\n", l)
	}
	return b.String()
}
