package vm

import (
	"encoding/binary"
	"fmt"
)

const (
	// MemoryPageSize is the unit of memory length, 2^16 bytes.
	MemoryPageSize = uint32(65536)
	// MemoryMaxPages is the largest page count a 32-bit address space can hold.
	MemoryMaxPages = uint32(65536)
	// MemoryPageSizeInBits satisfies "1 << MemoryPageSizeInBits == MemoryPageSize".
	MemoryPageSizeInBits = 16
)

// Memory is the linear memory of an instance.
type Memory struct {
	Buffer   []byte
	Min, Max uint32
}

// NewMemory returns a memory of min pages, which grows up to max pages.
func NewMemory(min, max uint32) (*Memory, error) {
	if max > MemoryMaxPages {
		return nil, fmt.Errorf("max %d pages (%s) over limit of %d pages (%s)",
			max, PagesToUnitOfBytes(max), MemoryMaxPages, PagesToUnitOfBytes(MemoryMaxPages))
	}
	if min > max {
		return nil, fmt.Errorf("min %d pages (%s) > max %d pages (%s)", min, PagesToUnitOfBytes(min), max, PagesToUnitOfBytes(max))
	}
	return &Memory{Buffer: make([]byte, MemoryPagesToBytesNum(min)), Min: min, Max: max}, nil
}

// Size returns the length of the memory in bytes.
func (m *Memory) Size() uint64 {
	return uint64(len(m.Buffer))
}

// Pages returns the length of the memory in pages.
func (m *Memory) Pages() uint32 {
	return memoryBytesNumToPages(m.Size())
}

// hasSize returns true if Len is sufficient for byteCount at the given offset.
func (m *Memory) hasSize(offset, byteCount uint64) bool {
	return offset+byteCount <= m.Size()
}

// Grow extends the memory by delta pages and returns the previous page count, or false when that would exceed Max.
func (m *Memory) Grow(delta uint32) (uint32, bool) {
	current := m.Pages()
	if uint64(current)+uint64(delta) > uint64(m.Max) {
		return 0, false
	}
	m.Buffer = append(m.Buffer, make([]byte, MemoryPagesToBytesNum(delta))...)
	return current, true
}

// Read returns a view of byteCount bytes at offset, or false when out of range.
func (m *Memory) Read(offset uint64, byteCount uint32) ([]byte, bool) {
	if !m.hasSize(offset, uint64(byteCount)) {
		return nil, false
	}
	return m.Buffer[offset : offset+uint64(byteCount)], true
}

// Write copies val to offset, or returns false when out of range.
func (m *Memory) Write(offset uint64, val []byte) bool {
	if !m.hasSize(offset, uint64(len(val))) {
		return false
	}
	copy(m.Buffer[offset:], val)
	return true
}

// ReadUint32Le reads a little-endian uint32 at offset.
func (m *Memory) ReadUint32Le(offset uint64) (uint32, bool) {
	if !m.hasSize(offset, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.Buffer[offset:]), true
}

// WriteUint32Le writes v little-endian at offset.
func (m *Memory) WriteUint32Le(offset uint64, v uint32) bool {
	if !m.hasSize(offset, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.Buffer[offset:], v)
	return true
}

// load reads width bytes at ptr into a value of type t, sign extending when signed. The caller checked the range.
func (m *Memory) load(ptr uint64, t Type, width byte, signed bool) Value {
	b := m.Buffer[ptr : ptr+uint64(width)]
	switch width {
	case 1:
		v := uint64(b[0])
		if signed {
			v = uint64(int64(int8(b[0])))
		}
		return narrowTo(t, v)
	case 2:
		v := uint64(binary.LittleEndian.Uint16(b))
		if signed {
			v = uint64(int64(int16(v)))
		}
		return narrowTo(t, v)
	case 4:
		v := uint64(binary.LittleEndian.Uint32(b))
		if signed {
			v = uint64(int64(int32(v)))
		}
		return narrowTo(t, v)
	case 8:
		return narrowTo(t, binary.LittleEndian.Uint64(b))
	}
	var v [16]byte
	copy(v[:], b)
	return V128FromBytes(v)
}

// narrowTo keeps the bits of v that a value of type t holds.
func narrowTo(t Type, v uint64) Value {
	if t == TypeI32 || t == TypeF32 {
		return I32(uint32(v))
	}
	return I64(v)
}

// store writes the low width bytes of v at ptr. The caller checked the range.
func (m *Memory) store(ptr uint64, v Value, width byte) {
	b := v.Bytes()
	copy(m.Buffer[ptr:ptr+uint64(width)], b[:width])
}

// MemoryPagesToBytesNum converts the given pages into the number of bytes contained in these pages.
func MemoryPagesToBytesNum(pages uint32) uint64 {
	return uint64(pages) << MemoryPageSizeInBits
}

func memoryBytesNumToPages(bytesNum uint64) uint32 {
	return uint32(bytesNum >> MemoryPageSizeInBits)
}

// PagesToUnitOfBytes converts the pages to a human-readable form. Ex. 1 -> "64 Ki"
func PagesToUnitOfBytes(pages uint32) string {
	k := uint64(pages) * 64
	if k < 1024 {
		return fmt.Sprintf("%d Ki", k)
	}
	m := k / 1024
	if m < 1024 {
		return fmt.Sprintf("%d Mi", m)
	}
	g := m / 1024
	if g < 1024 {
		return fmt.Sprintf("%d Gi", g)
	}
	return fmt.Sprintf("%d Ti", g/1024)
}
