package wasmlower

import (
	"fmt"

	"github.com/wasmlower/wasmlower/internal/compiler"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// ValueKind is a WebAssembly value type, encoded as its binary type byte.
type ValueKind = wasm.ValueKind

const (
	ValueKindI32  = wasm.ValueKindI32
	ValueKindI64  = wasm.ValueKindI64
	ValueKindF32  = wasm.ValueKindF32
	ValueKindF64  = wasm.ValueKindF64
	ValueKindV128 = wasm.ValueKindV128
)

// FunctionType is a function signature.
type FunctionType = wasm.FunctionType

// ModuleDescription is a module whose sections were already parsed from a container. Code bytes and initializer
// expressions are still in the binary format.
type ModuleDescription struct {
	Types     []*FunctionType
	Functions []FunctionDescription
	Globals   []GlobalDescription
	// Memory is nil when the module has no memory.
	Memory *MemoryDescription
	Data   []DataSegment
	// Table is nil when the module has no table.
	Table    *TableDescription
	Elements []ElementSegment
}

// FunctionDescription is one function of a ModuleDescription.
type FunctionDescription struct {
	// Type is an index into ModuleDescription.Types.
	Type uint32
	// Locals are the declared locals, after the params.
	Locals []ValueKind
	// Code is the body, up to and including its final end.
	Code []byte
	// Export is the name Instance.Call finds this function by, or empty.
	Export string
}

// GlobalDescription is one global of a ModuleDescription.
type GlobalDescription struct {
	Kind    ValueKind
	Mutable bool
	// Init is a constant expression, which may only read earlier globals.
	Init []byte
}

// MemoryDescription is the limits of memory zero, in pages of 64KiB.
type MemoryDescription struct {
	Min uint32
	// Max is nil when there is no max, in which case CompilerConfig.WithMemoryLimitPages applies.
	Max *uint32
}

// DataSegment is written into memory when a module is instantiated.
type DataSegment struct {
	// Offset is an i32 constant expression.
	Offset []byte
	Bytes  []byte
}

// TableDescription is the size of table zero.
type TableDescription struct {
	Min uint32
}

// ElementSegment is written into the table when a module is instantiated.
type ElementSegment struct {
	// Offset is an i32 constant expression.
	Offset    []byte
	Functions []uint32
}

// initializer is a validated constant expression.
type initializer struct {
	// global is the index of the global read, or -1 for a constant.
	global int
	value  vm.Value
}

func (i initializer) eval(globals []vm.Value) vm.Value {
	if i.global >= 0 {
		return globals[i.global]
	}
	return i.value
}

// decodeInitializer validates expr as a constant of kind, which may read the first globals globals.
func decodeInitializer(expr []byte, kind ValueKind, globals []GlobalDescription, features Features) (initializer, error) {
	body, err := wasm.DecodeInitializer(wasm.NewReader(expr, 0), features)
	if err != nil {
		return initializer{}, err
	}
	if len(body) != 2 {
		return initializer{}, wasmerr.Validate(wasmerr.KindBlockExitStackSize, "end",
			"expected 1 value at the end of the initializer, but the stack has %d", len(body)-1)
	}

	ret := initializer{global: -1}
	var actual ValueKind
	switch in := body[0].(type) {
	case wasm.I32Const:
		actual, ret.value = ValueKindI32, vm.I32(uint32(in.Value))
	case wasm.I64Const:
		actual, ret.value = ValueKindI64, vm.I64(uint64(in.Value))
	case wasm.F32Const:
		actual, ret.value = ValueKindF32, vm.Value{Lo: uint64(in.Bits)}
	case wasm.F64Const:
		actual, ret.value = ValueKindF64, vm.Value{Lo: in.Bits}
	case wasm.VecConst:
		actual, ret.value = ValueKindV128, vm.V128FromBytes(in.Value)
	case wasm.Variable:
		if int(in.Index) >= len(globals) {
			return initializer{}, wasmerr.Validate(wasmerr.KindInvalidIndex, wasm.Name(in), "global %d is out of range", in.Index)
		}
		actual, ret.global = globals[in.Index].Kind, int(in.Index)
	default:
		return initializer{}, wasmerr.Validate(wasmerr.KindBlockExitStackSize, wasm.Name(in),
			"expected 1 value at the end of the initializer, but the stack has 0")
	}
	if actual != kind {
		return initializer{}, wasmerr.TypeMismatch(wasm.Name(body[0]), wasm.ValueKindName(kind), wasm.ValueKindName(actual))
	}
	return ret, nil
}

// validatedModule is a ModuleDescription after the checks that don't need a function body.
type validatedModule struct {
	info        *compiler.ModuleInfo
	globals     []initializer
	data        []initializer
	elements    []initializer
	memoryMax   uint32
	exports     map[string]uint32
	exportNames []string
}

func (d *ModuleDescription) validate(features Features, memoryLimitPages uint32) (*validatedModule, error) {
	ret := &validatedModule{
		info:    &compiler.ModuleInfo{Types: d.Types, Memory: d.Memory != nil, Table: d.Table != nil},
		exports: map[string]uint32{},
	}

	for i, ft := range d.Types {
		if ft == nil {
			return nil, fmt.Errorf("type[%d] is nil", i)
		}
		if err := validateKinds(ft.Params, features); err != nil {
			return nil, fmt.Errorf("type[%d]: %w", i, err)
		}
		if err := validateKinds(ft.Results, features); err != nil {
			return nil, fmt.Errorf("type[%d]: %w", i, err)
		}
		if len(ft.Results) > 1 && !features.IsEnabled(FeatureMultiValue) {
			return nil, fmt.Errorf("type[%d]: multiple results: %w", i, features.Require(FeatureMultiValue))
		}
	}

	ret.info.Functions = make([]uint32, len(d.Functions))
	for i := range d.Functions {
		f := &d.Functions[i]
		if int(f.Type) >= len(d.Types) {
			return nil, fmt.Errorf("function[%d]: %w", i,
				wasmerr.Validate(wasmerr.KindInvalidIndex, "", "type %d is out of range", f.Type))
		}
		if err := validateKinds(f.Locals, features); err != nil {
			return nil, fmt.Errorf("function[%d]: %w", i, err)
		}
		ret.info.Functions[i] = f.Type
		if f.Export == "" {
			continue
		}
		if prev, ok := ret.exports[f.Export]; ok {
			return nil, fmt.Errorf("function[%d]: export %q is already function[%d]", i, f.Export, prev)
		}
		ret.exports[f.Export] = uint32(i)
		ret.exportNames = append(ret.exportNames, f.Export)
	}

	for i := range d.Globals {
		g := &d.Globals[i]
		if err := validateKinds([]ValueKind{g.Kind}, features); err != nil {
			return nil, fmt.Errorf("global[%d]: %w", i, err)
		}
		init, err := decodeInitializer(g.Init, g.Kind, d.Globals[:i], features)
		if err != nil {
			return nil, fmt.Errorf("global[%d]: %w", i, err)
		}
		ret.globals = append(ret.globals, init)
		ret.info.Globals = append(ret.info.Globals, compiler.GlobalType{Kind: g.Kind, Mutable: g.Mutable})
	}

	if m := d.Memory; m != nil {
		ret.memoryMax = memoryLimitPages
		if m.Max != nil {
			if *m.Max > memoryLimitPages {
				return nil, fmt.Errorf("memory max %d pages is over the limit of %d pages", *m.Max, memoryLimitPages)
			}
			ret.memoryMax = *m.Max
		}
		if m.Min > ret.memoryMax {
			return nil, fmt.Errorf("memory min %d pages is over the max of %d pages", m.Min, ret.memoryMax)
		}
	}

	for i := range d.Data {
		if d.Memory == nil {
			return nil, fmt.Errorf("data[%d]: %w", i, wasmerr.Validate(wasmerr.KindInvalidIndex, "", "memory 0 is out of range"))
		}
		init, err := decodeInitializer(d.Data[i].Offset, ValueKindI32, d.Globals, features)
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		ret.data = append(ret.data, init)
	}

	for i := range d.Elements {
		e := &d.Elements[i]
		if d.Table == nil {
			return nil, fmt.Errorf("element[%d]: %w", i, wasmerr.Validate(wasmerr.KindInvalidIndex, "", "table 0 is out of range"))
		}
		for _, f := range e.Functions {
			if int(f) >= len(d.Functions) {
				return nil, fmt.Errorf("element[%d]: %w", i,
					wasmerr.Validate(wasmerr.KindInvalidIndex, "", "function %d is out of range", f))
			}
		}
		init, err := decodeInitializer(e.Offset, ValueKindI32, d.Globals, features)
		if err != nil {
			return nil, fmt.Errorf("element[%d]: %w", i, err)
		}
		ret.elements = append(ret.elements, init)
	}
	return ret, nil
}

func validateKinds(kinds []ValueKind, features Features) error {
	for _, k := range kinds {
		if _, ok := wasm.ValueKindFromByte(k, features); !ok {
			return fmt.Errorf("invalid value type: %#x", k)
		}
	}
	return nil
}

// fingerprint identifies what a body may reference, so that two bodies with the same bytes only share a compiled
// routine when they validate the same way.
func (v *validatedModule) fingerprint() []byte {
	var b []byte
	for _, ft := range v.info.Types {
		b = appendKinds(b, ft.Params)
		b = appendKinds(b, ft.Results)
	}
	b = append(b, 0xff)
	for _, t := range v.info.Functions {
		b = appendUint32(b, t)
	}
	b = append(b, 0xff)
	for _, g := range v.info.Globals {
		b = append(b, g.Kind, boolByte(g.Mutable))
	}
	return append(b, boolByte(v.info.Memory), boolByte(v.info.Table))
}

func appendKinds(b []byte, kinds []ValueKind) []byte {
	b = appendUint32(b, uint32(len(kinds)))
	return append(b, kinds...)
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
