package binary

import (
	"encoding/binary"
	"io"
)

// Writer is a big-endian sink over an io.Writer. It counts accepted bytes
// and never closes the underlying writer.
type Writer struct {
	w   io.Writer
	n   int
	buf [4]byte
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.n
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.n += n
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

// WriteU1 writes a single byte.
func (w *Writer) WriteU1(v uint8) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

// WriteU2 writes a big-endian uint16.
func (w *Writer) WriteU2(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

// WriteU4 writes a big-endian uint32.
func (w *Writer) WriteU4(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	return w.write(w.buf[:4])
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	return w.write(p)
}
