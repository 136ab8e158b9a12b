package classfile_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wippyai/jvm-classfile/classfile"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// encode writes n and checks that Length matches the bytes emitted.
func encode(t *testing.T, n classfile.Node) []byte {
	t.Helper()
	data, err := classfile.Encode(n)
	if err != nil {
		t.Fatalf("Encode(%s): %v", classfile.NodeName(n), err)
	}
	if len(data) != n.Length() {
		t.Fatalf("%s: Length() = %d, wrote %d bytes", classfile.NodeName(n), n.Length(), len(data))
	}
	return data
}

func decoder(data []byte) *classfile.Decoder {
	return classfile.NewDecoder(bytes.NewReader(data), classfile.MapNames(testNames))
}

var testNames = map[uint16]string{
	1:  classfile.AttrDeprecated,
	2:  classfile.AttrSynthetic,
	3:  classfile.AttrSourceFile,
	4:  classfile.AttrStackMapTable,
	5:  classfile.AttrLineNumberTable,
	6:  classfile.AttrMethodParameters,
	7:  classfile.AttrRuntimeVisibleAnnotations,
	8:  classfile.AttrRuntimeInvisibleAnnotations,
	9:  classfile.AttrRuntimeVisibleParameterAnnotations,
	10: classfile.AttrRuntimeInvisibleParameterAnnotations,
	11: classfile.AttrAnnotationDefault,
	12: "Signature",
}

// failingSink accepts limit bytes and then fails every write.
type failingSink struct {
	limit int
	n     int
}

var errSinkFull = errors.New("sink full")

func (s *failingSink) take(n int) error {
	if s.n+n > s.limit {
		return errSinkFull
	}
	s.n += n
	return nil
}

func (s *failingSink) WriteU1(uint8) error       { return s.take(1) }
func (s *failingSink) WriteU2(uint16) error      { return s.take(2) }
func (s *failingSink) WriteU4(uint32) error      { return s.take(4) }
func (s *failingSink) WriteBytes(p []byte) error { return s.take(len(p)) }

func intValue(idx int) classfile.ElementValue {
	return must(classfile.NewConstElementValue(classfile.TagInt, idx))
}
