package classfile

import (
	"bytes"
	stderrors "errors"
	"io"

	jvmclassfile "github.com/wippyai/jvm-classfile"
	"github.com/wippyai/jvm-classfile/classfile/internal/binary"
	"github.com/wippyai/jvm-classfile/errors"
)

// Node is implemented by every class-file structure in this package.
// Length reports exactly the number of bytes Write emits.
type Node interface {
	Length() int
	Write(s jvmclassfile.Sink) error
}

// NewSink returns a big-endian sink over w. The sink never closes w.
func NewSink(w io.Writer) jvmclassfile.Sink {
	return binary.NewWriter(w)
}

// Encode serializes n into a new byte slice. Zero values that did not come
// from a constructor are rejected before anything is written.
func Encode(n Node) ([]byte, error) {
	if err := checkNode(n); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(n.Length())
	if err := n.Write(binary.NewWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encoder carries the first sink failure so write routines stay linear.
type encoder struct {
	s   jvmclassfile.Sink
	err error
}

func newEncoder(s jvmclassfile.Sink) *encoder {
	return &encoder{s: s}
}

func (e *encoder) u1(v uint8) {
	if e.err == nil {
		e.err = e.s.WriteU1(v)
	}
}

func (e *encoder) u2(v uint16) {
	if e.err == nil {
		e.err = e.s.WriteU2(v)
	}
}

func (e *encoder) u4(v uint32) {
	if e.err == nil {
		e.err = e.s.WriteU4(v)
	}
}

func (e *encoder) raw(p []byte) {
	if e.err == nil {
		e.err = e.s.WriteBytes(p)
	}
}

func (e *encoder) node(n Node) {
	switch {
	case e.err != nil:
	case n == nil:
		e.err = errors.NilValue(errors.PhaseEncode, nil, "Node")
	default:
		e.err = n.Write(e.s)
	}
}

// lengthOf is Length with a missing child counted as empty.
func lengthOf(n Node) int {
	if n == nil {
		return 0
	}
	return n.Length()
}

// done returns the first failure as an encode I/O error. Failures already
// wrapped by a nested node are passed through untouched.
func (e *encoder) done() error {
	if e.err == nil {
		return nil
	}
	var ce *errors.Error
	if stderrors.As(e.err, &ce) && ce.Phase == errors.PhaseEncode {
		return e.err
	}
	return errors.IO(e.err)
}

// header writes attribute_name_index and attribute_length.
func (e *encoder) header(a Attribute) {
	e.u2(a.AttributeNameIndex())
	e.u4(uint32(a.AttributeLength()))
}
