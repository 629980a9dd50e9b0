package wasm

import (
	"fmt"
	"io"

	"github.com/wasmlower/wasmlower/internal/leb128"
)

// Reader is the cursor the decoder consumes. The container parser hands one out positioned at the start of a code
// body or an initializer expression.
type Reader interface {
	io.ByteReader
	// ReadBytes returns the next n bytes or io.ErrUnexpectedEOF.
	ReadBytes(n int) ([]byte, error)
	// ReadVarUint32 reads an unsigned LEB128 of at most 32 bits.
	ReadVarUint32() (uint32, error)
	// Offset is the absolute position of the next byte in the enclosing binary.
	Offset() int64
}

// SliceReader is a Reader over a byte slice.
type SliceReader struct {
	buf  []byte
	pos  int
	base int64
}

// NewReader returns a Reader over buf. base is the absolute offset of buf[0], so that errors point into the
// enclosing binary.
func NewReader(buf []byte, base int64) *SliceReader {
	return &SliceReader{buf: buf, base: base}
}

// ReadByte implements io.ByteReader.
func (r *SliceReader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes implements Reader.ReadBytes
func (r *SliceReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.pos < n {
		return nil, io.ErrUnexpectedEOF
	}
	ret := r.buf[r.pos : r.pos+n]
	r.pos += n
	return ret, nil
}

// ReadVarUint32 implements Reader.ReadVarUint32
func (r *SliceReader) ReadVarUint32() (uint32, error) {
	v, n, err := leb128.LoadUint32(r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += int(n)
	return v, nil
}

// Offset implements Reader.Offset
func (r *SliceReader) Offset() int64 {
	return r.base + int64(r.pos)
}

// Len returns the count of unread bytes.
func (r *SliceReader) Len() int {
	return len(r.buf) - r.pos
}

// String implements fmt.Stringer.
func (r *SliceReader) String() string {
	return fmt.Sprintf("reader at 0x%x (%d bytes left)", r.Offset(), r.Len())
}
