package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrLimit is returned when a read would cross the active limit.
var ErrLimit = errors.New("read past structure limit")

// Reader wraps an io.Reader with position tracking and big-endian read methods.
type Reader struct {
	r     io.Reader
	pos   int
	limit int // absolute position reads may not cross; -1 when unbounded
	buf   [4]byte
}

// NewReader creates a new Reader wrapping the given io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, limit: -1}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Limit bounds subsequent reads to n more bytes and returns the previous
// limit so callers can restore it with Restore.
func (r *Reader) Limit(n int) int {
	prev := r.limit
	r.limit = r.pos + n
	return prev
}

// Restore reinstates a limit previously returned by Limit.
func (r *Reader) Restore(prev int) {
	r.limit = prev
}

// Remaining returns the number of bytes left before the active limit,
// or -1 when no limit is set.
func (r *Reader) Remaining() int {
	if r.limit < 0 {
		return -1
	}
	return r.limit - r.pos
}

func (r *Reader) fill(p []byte) error {
	if r.limit >= 0 && r.pos+len(p) > r.limit {
		return r.wrapError(ErrLimit)
	}
	n, err := io.ReadFull(r.r, p)
	r.pos += n
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ReadU1 reads a single unsigned byte.
func (r *Reader) ReadU1() (uint8, error) {
	if err := r.fill(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadU2 reads a big-endian uint16.
func (r *Reader) ReadU2() (uint16, error) {
	if err := r.fill(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadU4 reads a big-endian uint32.
func (r *Reader) ReadU4() (uint32, error) {
	if err := r.fill(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, r.wrapError(fmt.Errorf("negative length %d", n))
	}
	if r.limit >= 0 && r.pos+n > r.limit {
		return nil, r.wrapError(ErrLimit)
	}
	if n <= chunkSize {
		buf := make([]byte, n)
		if err := r.fill(buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	// Grow with the data actually read so a bogus length cannot force a
	// large allocation up front.
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.pos += int(copied)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

const chunkSize = 64 << 10

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during binary parsing with position information.
type ParseError struct {
	Err       error
	Structure string
	Position  int
}

func (e *ParseError) Error() string {
	if e.Structure != "" {
		return fmt.Sprintf("classfile: %s at position %d: %v", e.Structure, e.Position, e.Err)
	}
	return fmt.Sprintf("classfile: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position. Errors that
// already carry a position are returned unchanged.
func (r *Reader) WrapError(structure string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{
		Position:  r.pos,
		Structure: structure,
		Err:       err,
	}
}
