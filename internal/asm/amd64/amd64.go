// Package amd64 assembles the straight-line scalar integer subset of a target routine into amd64 machine code, for
// listings. The code is never executed.
//
// Locals live in 8-byte slots at R14, and the operand stack in 8-byte slots growing up from R15. Each instruction
// pops its operands into AX and CX and pushes its result from AX, so the listing follows the routine one
// instruction at a time.
package amd64

import (
	"encoding/hex"
	"fmt"
	"strings"

	goasm "github.com/twitchyliquid64/golang-asm"
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/x86"
	"golang.org/x/arch/x86/x86asm"

	"github.com/wasmlower/wasmlower/internal/vm"
)

const (
	regLocals = x86.REG_R14
	regStack  = x86.REG_R15
	slotSize  = 8
)

// binaryOps are the primitives with a two-operand amd64 encoding. Shifts take their count in CX.
var binaryOps = map[vm.PrimKey]obj.As{
	{Op: vm.PrimAdd, Shape: vm.ShapeI32}:  x86.AADDL,
	{Op: vm.PrimAdd, Shape: vm.ShapeI64}:  x86.AADDQ,
	{Op: vm.PrimSub, Shape: vm.ShapeI32}:  x86.ASUBL,
	{Op: vm.PrimSub, Shape: vm.ShapeI64}:  x86.ASUBQ,
	{Op: vm.PrimMul, Shape: vm.ShapeI32}:  x86.AIMULL,
	{Op: vm.PrimMul, Shape: vm.ShapeI64}:  x86.AIMULQ,
	{Op: vm.PrimAnd, Shape: vm.ShapeI32}:  x86.AANDL,
	{Op: vm.PrimAnd, Shape: vm.ShapeI64}:  x86.AANDQ,
	{Op: vm.PrimOr, Shape: vm.ShapeI32}:   x86.AORL,
	{Op: vm.PrimOr, Shape: vm.ShapeI64}:   x86.AORQ,
	{Op: vm.PrimXor, Shape: vm.ShapeI32}:  x86.AXORL,
	{Op: vm.PrimXor, Shape: vm.ShapeI64}:  x86.AXORQ,
	{Op: vm.PrimShl, Shape: vm.ShapeI32}:  x86.ASHLL,
	{Op: vm.PrimShl, Shape: vm.ShapeI64}:  x86.ASHLQ,
	{Op: vm.PrimShrS, Shape: vm.ShapeI32}: x86.ASARL,
	{Op: vm.PrimShrS, Shape: vm.ShapeI64}: x86.ASARQ,
	{Op: vm.PrimShrU, Shape: vm.ShapeI32}: x86.ASHRL,
	{Op: vm.PrimShrU, Shape: vm.ShapeI64}: x86.ASHRQ,
}

// Supported returns true if Assemble accepts r.
func Supported(r *vm.Routine) bool {
	for i := range r.Code {
		if checkInstr(&r.Code[i]) != nil {
			return false
		}
	}
	return true
}

func checkInstr(in *vm.Instr) error {
	switch in.Kind {
	case vm.OpConst:
		if in.Type != vm.TypeI32 && in.Type != vm.TypeI64 {
			return fmt.Errorf("const of type %s", in.Type)
		}
	case vm.OpLocalGet, vm.OpLocalSet, vm.OpLocalTee, vm.OpDrop, vm.OpReturn:
	case vm.OpCallPrimitive:
		if _, ok := binaryOps[in.Prim.PrimKey]; !ok {
			return fmt.Errorf("primitive %s", in.Prim.PrimKey)
		}
	default:
		return fmt.Errorf("%s", in.Kind)
	}
	return nil
}

// Listing is the machine code of one routine.
type Listing struct {
	Name string
	Code []byte
}

type assembler struct {
	b *goasm.Builder
}

func (a *assembler) add(as obj.As, from, to obj.Addr) {
	p := a.b.NewProg()
	p.As = as
	p.From = from
	p.To = to
	a.b.AddInstruction(p)
}

func reg(r int16) obj.Addr {
	return obj.Addr{Type: obj.TYPE_REG, Reg: r}
}

func mem(base int16, offset int64) obj.Addr {
	return obj.Addr{Type: obj.TYPE_MEM, Reg: base, Offset: offset}
}

func constant(v int64) obj.Addr {
	return obj.Addr{Type: obj.TYPE_CONST, Offset: v}
}

func (a *assembler) push(r int16) {
	a.add(x86.AMOVQ, reg(r), mem(regStack, 0))
	a.add(x86.AADDQ, constant(slotSize), reg(regStack))
}

func (a *assembler) pop(r int16) {
	a.add(x86.ASUBQ, constant(slotSize), reg(regStack))
	a.add(x86.AMOVQ, mem(regStack, 0), reg(r))
}

// Assemble returns the machine code of r, or an error naming the first instruction outside the subset.
func Assemble(r *vm.Routine) (*Listing, error) {
	b, err := goasm.NewBuilder("amd64", 1024)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new assembly builder: %w", err)
	}
	a := &assembler{b: b}

	for pc := range r.Code {
		in := &r.Code[pc]
		if err := checkInstr(in); err != nil {
			return nil, fmt.Errorf("%s: %04d: %v is outside the amd64 subset", r.Name, pc, err)
		}
		local := mem(regLocals, int64(in.Index)*slotSize)
		switch in.Kind {
		case vm.OpConst:
			v := int64(in.Value.I64())
			if in.Type == vm.TypeI32 {
				v = int64(in.Value.I32())
			}
			a.add(x86.AMOVQ, constant(v), reg(x86.REG_AX))
			a.push(x86.REG_AX)
		case vm.OpLocalGet:
			a.add(x86.AMOVQ, local, reg(x86.REG_AX))
			a.push(x86.REG_AX)
		case vm.OpLocalSet:
			a.pop(x86.REG_AX)
			a.add(x86.AMOVQ, reg(x86.REG_AX), local)
		case vm.OpLocalTee:
			a.add(x86.AMOVQ, mem(regStack, -slotSize), reg(x86.REG_AX))
			a.add(x86.AMOVQ, reg(x86.REG_AX), local)
		case vm.OpDrop:
			a.add(x86.ASUBQ, constant(slotSize), reg(regStack))
		case vm.OpCallPrimitive:
			a.pop(x86.REG_CX)
			a.pop(x86.REG_AX)
			a.add(binaryOps[in.Prim.PrimKey], reg(x86.REG_CX), reg(x86.REG_AX))
			a.push(x86.REG_AX)
		case vm.OpReturn:
			a.add(obj.ARET, obj.Addr{}, obj.Addr{})
		}
	}
	a.add(obj.ARET, obj.Addr{}, obj.Addr{})
	return &Listing{Name: r.Name, Code: b.Assemble()}, nil
}

// Disassemble decodes the machine code back into Go assembler syntax, one instruction per line.
func (l *Listing) Disassemble() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", l.Name)
	for offset := 0; offset < len(l.Code); {
		inst, err := x86asm.Decode(l.Code[offset:], 64)
		if err != nil {
			fmt.Fprintf(&sb, "0x%04x: db 0x%02x\n", offset, l.Code[offset])
			offset++
			continue
		}
		fmt.Fprintf(&sb, "0x%04x: %-24s %s\n", offset,
			hex.EncodeToString(l.Code[offset:offset+inst.Len]), x86asm.GoSyntax(inst, uint64(offset), nil))
		offset += inst.Len
	}
	return sb.String()
}
