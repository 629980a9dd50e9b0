package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryPagesToBytesNum(t *testing.T) {
	for _, numPage := range []uint32{0, 1, 5, 10} {
		require.Equal(t, uint64(numPage*MemoryPageSize), MemoryPagesToBytesNum(numPage))
	}
}

func TestNewMemory(t *testing.T) {
	m, err := NewMemory(1, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(MemoryPageSize), m.Size())
	require.Equal(t, uint32(1), m.Pages())

	_, err = NewMemory(2, 1)
	require.EqualError(t, err, "min 2 pages (128 Ki) > max 1 pages (64 Ki)")

	_, err = NewMemory(0, MemoryMaxPages+1)
	require.EqualError(t, err, "max 65537 pages (4 Gi) over limit of 65536 pages (4 Gi)")
}

func TestMemory_Grow(t *testing.T) {
	m := &Memory{Max: 10}

	prev, ok := m.Grow(5)
	require.True(t, ok)
	require.Equal(t, uint32(0), prev)
	require.Equal(t, uint32(5), m.Pages())

	prev, ok = m.Grow(0)
	require.True(t, ok)
	require.Equal(t, uint32(5), prev)

	_, ok = m.Grow(6)
	require.False(t, ok)
	require.Equal(t, uint32(5), m.Pages())

	prev, ok = m.Grow(5)
	require.True(t, ok)
	require.Equal(t, uint32(5), prev)
	require.Equal(t, uint32(10), m.Pages())
}

func TestMemory_ReadWrite(t *testing.T) {
	m := &Memory{Buffer: make([]byte, 16), Max: 1}

	require.True(t, m.WriteUint32Le(12, 0xdeadbeef))
	v, ok := m.ReadUint32Le(12)
	require.True(t, ok)
	require.Equal(t, uint32(0xdeadbeef), v)

	require.False(t, m.WriteUint32Le(13, 1))
	_, ok = m.ReadUint32Le(13)
	require.False(t, ok)

	require.True(t, m.Write(0, []byte{1, 2, 3}))
	b, ok := m.Read(1, 2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 3}, b)
	_, ok = m.Read(15, 2)
	require.False(t, ok)
}

func TestMemory_loadStore(t *testing.T) {
	m := &Memory{Buffer: make([]byte, 32), Max: 1}
	m.store(0, V128(0x8877665544332211, 0x100f0e0d0c0b0a99), 16)

	tests := []struct {
		name   string
		t      Type
		width  byte
		signed bool
		exp    Value
	}{
		{name: "i32 load8_u", t: TypeI32, width: 1, exp: I32(0x11)},
		{name: "i32 load8_s", t: TypeI32, width: 1, signed: true, exp: I32(0x11)},
		{name: "i64 load32_u", t: TypeI64, width: 4, exp: I64(0x44332211)},
		{name: "i64 load", t: TypeI64, width: 8, exp: I64(0x8877665544332211)},
		{name: "f32 load", t: TypeF32, width: 4, exp: I32(0x44332211)},
		{name: "v128 load", t: TypeV128, width: 16, exp: V128(0x8877665544332211, 0x100f0e0d0c0b0a99)},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, m.load(0, tc.t, tc.width, tc.signed))
		})
	}

	// Sign extension of a negative byte at offset 8.
	require.Equal(t, I32(0xffffff99), m.load(8, TypeI32, 1, true))
	require.Equal(t, I64(0xffffffffffffff99), m.load(8, TypeI64, 1, true))

	m.store(20, I64(0xaabbccdd), 2)
	require.Equal(t, []byte{0xdd, 0xcc, 0}, m.Buffer[20:23])
}

func TestPagesToUnitOfBytes(t *testing.T) {
	tests := []struct {
		name  string
		pages uint32
		exp   string
	}{
		{name: "zero", pages: 0, exp: "0 Ki"},
		{name: "one", pages: 1, exp: "64 Ki"},
		{name: "megs", pages: 100, exp: "6 Mi"},
		{name: "max", pages: MemoryMaxPages, exp: "4 Gi"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, PagesToUnitOfBytes(tc.pages))
		})
	}
}
