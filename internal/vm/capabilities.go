package vm

import (
	"runtime"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/cpu"
)

// Capabilities is the set of primitives a target implements. It is immutable, so one value may be shared by any
// number of concurrent compilations.
type Capabilities struct {
	prims registry
}

var defaultCapabilities = func() *Capabilities {
	r := registry{}
	registerScalar(r)
	registerVector(r)
	return &Capabilities{prims: r}
}()

// Default returns the full primitive set of this target.
func Default() *Capabilities {
	return defaultCapabilities
}

// Lookup returns the primitive for op at shape, or false when the target has none.
func (c *Capabilities) Lookup(op PrimOp, shape Shape) (*Primitive, bool) {
	p, ok := c.prims[PrimKey{Op: op, Shape: shape}]
	return p, ok
}

// Without returns a copy of c lacking the given primitives.
func (c *Capabilities) Without(keys ...PrimKey) *Capabilities {
	r := make(registry, len(c.prims))
	maps.Copy(r, c.prims)
	for _, k := range keys {
		delete(r, k)
	}
	return &Capabilities{prims: r}
}

// Keys returns the keys of every primitive, ordered by shape then op.
func (c *Capabilities) Keys() []PrimKey {
	keys := maps.Keys(c.prims)
	slices.SortFunc(keys, func(a, b PrimKey) bool {
		if a.Shape != b.Shape {
			return a.Shape < b.Shape
		}
		return a.Op < b.Op
	})
	return keys
}

// Len returns the number of primitives.
func (c *Capabilities) Len() int {
	return len(c.prims)
}

// HostInfo describes the vector extensions of the machine running this process.
type HostInfo struct {
	Arch       string
	Extensions []string
}

// HostProfile returns the HostInfo of the current machine.
func HostProfile() HostInfo {
	p := HostInfo{Arch: runtime.GOARCH}
	add := func(name string, has bool) {
		if has {
			p.Extensions = append(p.Extensions, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse2", cpu.X86.HasSSE2)
		add("sse3", cpu.X86.HasSSE3)
		add("ssse3", cpu.X86.HasSSSE3)
		add("sse4.1", cpu.X86.HasSSE41)
		add("sse4.2", cpu.X86.HasSSE42)
		add("popcnt", cpu.X86.HasPOPCNT)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("avx512f", cpu.X86.HasAVX512F)
		add("avx512bw", cpu.X86.HasAVX512BW)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("fp", cpu.ARM64.HasFP)
		add("atomics", cpu.ARM64.HasATOMICS)
	}
	return p
}
