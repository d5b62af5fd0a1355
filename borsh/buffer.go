package borsh

import (
	"encoding/binary"

	"github.com/wippyai/idl-codec/errors"
)

// writer appends little-endian values to a fixed-capacity scratch buffer.
type writer struct {
	buf []byte
	off int
}

func newWriter(capacity int) *writer {
	return &writer{buf: make([]byte, capacity)}
}

func (w *writer) reserve(n int, path []string) ([]byte, error) {
	if n < 0 || w.off+n > len(w.buf) {
		return nil, errors.OutOfBounds(errors.PhaseEncode, path, w.off, n, len(w.buf))
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b, nil
}

func (w *writer) Write(p []byte, path []string) error {
	b, err := w.reserve(len(p), path)
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

func (w *writer) WriteU8(v uint8, path []string) error {
	b, err := w.reserve(1, path)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (w *writer) WriteU16(v uint16, path []string) error {
	b, err := w.reserve(2, path)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

func (w *writer) WriteU32(v uint32, path []string) error {
	b, err := w.reserve(4, path)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

func (w *writer) WriteU64(v uint64, path []string) error {
	b, err := w.reserve(8, path)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}

// Zero skips n bytes, leaving them zeroed.
func (w *writer) Zero(n int, path []string) error {
	_, err := w.reserve(n, path)
	return err
}

func (w *writer) Bytes() []byte {
	return w.buf[:w.off]
}

// reader consumes little-endian values from a byte slice.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) next(n int, path []string) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, r.off, n, len(r.data))
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) Read(n int, path []string) ([]byte, error) {
	b, err := r.next(n, path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *reader) ReadU8(path []string) (uint8, error) {
	b, err := r.next(1, path)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) ReadU16(path []string) (uint16, error) {
	b, err := r.next(2, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) ReadU32(path []string) (uint32, error) {
	b, err := r.next(4, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) ReadU64(path []string) (uint64, error) {
	b, err := r.next(8, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) Skip(n int, path []string) error {
	_, err := r.next(n, path)
	return err
}

func (r *reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *reader) Offset() int {
	return r.off
}
