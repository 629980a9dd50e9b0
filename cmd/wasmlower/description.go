package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode"

	"sigs.k8s.io/yaml"

	"github.com/wasmlower/wasmlower"
)

// descriptionFile is the YAML or JSON form of a wasmlower.ModuleDescription. Value kinds are type names, and code
// and initializers are hex, ignoring whitespace.
type descriptionFile struct {
	Types []struct {
		Params  []string `json:"params"`
		Results []string `json:"results"`
	} `json:"types"`
	Functions []struct {
		Type   uint32   `json:"type"`
		Export string   `json:"export"`
		Locals []string `json:"locals"`
		Code   string   `json:"code"`
	} `json:"functions"`
	Globals []struct {
		Kind    string `json:"kind"`
		Mutable bool   `json:"mutable"`
		Init    string `json:"init"`
	} `json:"globals"`
	Memory *struct {
		Min uint32  `json:"min"`
		Max *uint32 `json:"max"`
	} `json:"memory"`
	Data []struct {
		Offset string `json:"offset"`
		Bytes  string `json:"bytes"`
	} `json:"data"`
	Table *struct {
		Min uint32 `json:"min"`
	} `json:"table"`
	Elements []struct {
		Offset    string   `json:"offset"`
		Functions []uint32 `json:"functions"`
	} `json:"elements"`
}

func loadDescription(path string) (*wasmlower.ModuleDescription, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDescription(b)
}

func parseDescription(b []byte) (*wasmlower.ModuleDescription, error) {
	var f descriptionFile
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, err
	}

	desc := &wasmlower.ModuleDescription{}
	var err error
	for i, t := range f.Types {
		ft := &wasmlower.FunctionType{}
		if ft.Params, err = parseKinds(t.Params); err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		if ft.Results, err = parseKinds(t.Results); err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		desc.Types = append(desc.Types, ft)
	}

	for i, fn := range f.Functions {
		d := wasmlower.FunctionDescription{Type: fn.Type, Export: fn.Export}
		if d.Locals, err = parseKinds(fn.Locals); err != nil {
			return nil, fmt.Errorf("functions[%d]: %w", i, err)
		}
		if d.Code, err = parseHex(fn.Code); err != nil {
			return nil, fmt.Errorf("functions[%d]: code: %w", i, err)
		}
		desc.Functions = append(desc.Functions, d)
	}

	for i, g := range f.Globals {
		d := wasmlower.GlobalDescription{Mutable: g.Mutable}
		if d.Kind, err = parseKind(g.Kind); err != nil {
			return nil, fmt.Errorf("globals[%d]: %w", i, err)
		}
		if d.Init, err = parseHex(g.Init); err != nil {
			return nil, fmt.Errorf("globals[%d]: init: %w", i, err)
		}
		desc.Globals = append(desc.Globals, d)
	}

	if f.Memory != nil {
		desc.Memory = &wasmlower.MemoryDescription{Min: f.Memory.Min, Max: f.Memory.Max}
	}
	for i, s := range f.Data {
		d := wasmlower.DataSegment{}
		if d.Offset, err = parseHex(s.Offset); err != nil {
			return nil, fmt.Errorf("data[%d]: offset: %w", i, err)
		}
		if d.Bytes, err = parseHex(s.Bytes); err != nil {
			return nil, fmt.Errorf("data[%d]: bytes: %w", i, err)
		}
		desc.Data = append(desc.Data, d)
	}

	if f.Table != nil {
		desc.Table = &wasmlower.TableDescription{Min: f.Table.Min}
	}
	for i, s := range f.Elements {
		d := wasmlower.ElementSegment{Functions: s.Functions}
		if d.Offset, err = parseHex(s.Offset); err != nil {
			return nil, fmt.Errorf("elements[%d]: offset: %w", i, err)
		}
		desc.Elements = append(desc.Elements, d)
	}
	return desc, nil
}

func parseKind(name string) (wasmlower.ValueKind, error) {
	switch name {
	case "i32":
		return wasmlower.ValueKindI32, nil
	case "i64":
		return wasmlower.ValueKindI64, nil
	case "f32":
		return wasmlower.ValueKindF32, nil
	case "f64":
		return wasmlower.ValueKindF64, nil
	case "v128":
		return wasmlower.ValueKindV128, nil
	}
	return 0, fmt.Errorf("invalid value type: %q", name)
}

func parseKinds(names []string) ([]wasmlower.ValueKind, error) {
	var ret []wasmlower.ValueKind
	for _, name := range names {
		k, err := parseKind(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, k)
	}
	return ret, nil
}

func parseHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
