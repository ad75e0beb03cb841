// Package binary provides a sequential seek+read primitive over an
// io.ReadSeeker, tracking a logical stream position the way a cursor into a
// binary file naturally would.
package binary

import (
	"encoding/binary"
	"io"
)

// Reader wraps an io.ReadSeeker and tracks the logical position of the next
// read. Reads continue from the underlying stream's own cursor; SeekTo and
// Skip move the tracked position and seek the underlying stream immediately,
// keeping the two in step.
type Reader struct {
	r     io.ReadSeeker
	order binary.ByteOrder
	pos   int64
}

// NewReader creates a stream reader starting at position 0.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r, order: binary.LittleEndian}
}

// Pos returns the current logical position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// SeekTo moves the logical position to an absolute offset and seeks the
// underlying stream to match.
func (r *Reader) SeekTo(offset int64) error {
	if _, err := r.r.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	r.pos = offset
	return nil
}

// Skip advances the logical position by n bytes without reading, seeking the
// underlying stream to match.
func (r *Reader) Skip(n int64) error {
	return r.SeekTo(r.pos + n)
}

// ReadBytes reads exactly n bytes from the current position, advancing it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadInto reads exactly len(buf) bytes into buf from the current position,
// advancing it. Used by the patch reader to fill directly into the caller's
// output buffer without an intermediate allocation.
func (r *Reader) ReadInto(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return err
	}
	r.pos += int64(len(buf))
	return nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}
