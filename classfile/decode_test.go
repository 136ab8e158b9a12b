package classfile_test

import (
	"bytes"
	stderrors "errors"
	"runtime"
	"testing"

	"github.com/wippyai/jvm-classfile/classfile"
	"github.com/wippyai/jvm-classfile/classfile/internal/binary"
	"github.com/wippyai/jvm-classfile/errors"
)

func TestDecodeVerificationTypes(t *testing.T) {
	values := []classfile.VerificationTypeInfo{
		classfile.TopVariableInfo{},
		classfile.IntegerVariableInfo{},
		classfile.FloatVariableInfo{},
		classfile.DoubleVariableInfo{},
		classfile.LongVariableInfo{},
		classfile.NullVariableInfo{},
		classfile.UninitializedThisVariableInfo{},
		must(classfile.NewObjectVariableInfo(65535)),
		must(classfile.NewUninitializedVariableInfo(12)),
	}

	var buf bytes.Buffer
	for _, v := range values {
		buf.Write(encode(t, v))
	}
	dec := decoder(buf.Bytes())
	for _, want := range values {
		got, err := dec.VerificationTypeInfo()
		if err != nil {
			t.Fatalf("decode %s: %v", classfile.NodeName(want), err)
		}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if dec.Position() != buf.Len() {
		t.Errorf("Position() = %d, want %d", dec.Position(), buf.Len())
	}
}

func TestDecodeFrames(t *testing.T) {
	for _, a := range sampleAttributes(t) {
		table, ok := a.(classfile.StackMapTableAttribute)
		if !ok {
			continue
		}
		for _, f := range table.Entries() {
			got, err := decoder(encode(t, f)).StackMapFrame()
			if err != nil {
				t.Fatalf("decode %s: %v", f.Kind(), err)
			}
			if !got.Equal(f) {
				t.Errorf("%s did not round-trip", f.Kind())
			}
		}
	}

	extended := must(classfile.NewSameLocals1StackItemFrameExtended(7, classfile.NullVariableInfo{}))
	got, err := decoder(encode(t, extended)).StackMapFrame()
	if err != nil || !got.Equal(extended) {
		t.Errorf("same_locals_1_stack_item_frame_extended: %v, %v", got, err)
	}
}

func TestDecodeStructures(t *testing.T) {
	ann := must(classfile.NewAnnotation(1,
		must(classfile.NewElementValuePair(2, must(classfile.NewAnnotationElementValue(
			must(classfile.NewAnnotation(3, must(classfile.NewElementValuePair(4, intValue(5))))),
		)))),
	))

	t.Run("element value", func(t *testing.T) {
		v := must(classfile.NewArrayElementValue(intValue(1), must(classfile.NewAnnotationElementValue(ann))))
		got, err := decoder(encode(t, v)).ElementValue()
		if err != nil || !got.Equal(v) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
	t.Run("element value pair", func(t *testing.T) {
		p := must(classfile.NewElementValuePair(9, must(classfile.NewEnumElementValue(1, 2))))
		got, err := decoder(encode(t, p)).ElementValuePair()
		if err != nil || !got.Equal(p) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
	t.Run("annotation", func(t *testing.T) {
		got, err := decoder(encode(t, ann)).Annotation()
		if err != nil || !got.Equal(ann) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
	t.Run("parameter annotation", func(t *testing.T) {
		p := must(classfile.NewParameterAnnotation(ann, ann))
		got, err := decoder(encode(t, p)).ParameterAnnotation()
		if err != nil || !got.Equal(p) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
	t.Run("line number", func(t *testing.T) {
		l := must(classfile.NewLineNumber(1, 2))
		got, err := decoder(encode(t, l)).LineNumber()
		if err != nil || !got.Equal(l) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
	t.Run("parameter", func(t *testing.T) {
		p := must(classfile.NewParameter(3, int(classfile.ParamFinal)))
		got, err := decoder(encode(t, p)).Parameter()
		if err != nil || !got.Equal(p) {
			t.Fatalf("got %v, %v", got, err)
		}
	})
}

func TestDecodeAttributes(t *testing.T) {
	attrs := sampleAttributes(t)

	var buf bytes.Buffer
	for _, a := range attrs {
		buf.Write(encode(t, a))
	}

	got, err := decoder(buf.Bytes()).Attributes(len(attrs))
	if err != nil {
		t.Fatalf("Attributes: %v", err)
	}
	for i, want := range attrs {
		if !classfile.Equal(got[i], want) {
			t.Errorf("attribute %d (%s) did not round-trip: got %#v", i, want.Name(), got[i])
		}
		if got[i].Name() != want.Name() {
			t.Errorf("attribute %d: Name() = %q, want %q", i, got[i].Name(), want.Name())
		}
	}
}

func TestDecodeUnknownAttribute(t *testing.T) {
	data := []byte{0, 99, 0, 0, 0, 4, 0xde, 0xad, 0xbe, 0xef}

	for _, names := range []classfile.NameResolver{nil, classfile.MapNames(testNames)} {
		a, err := classfile.NewDecoder(bytes.NewReader(data), names).Attribute()
		if err != nil {
			t.Fatalf("Attribute: %v", err)
		}
		u, ok := a.(*classfile.UnimplementedAttribute)
		if !ok {
			t.Fatalf("got %T, want *UnimplementedAttribute", a)
		}
		if !bytes.Equal(u.Info(), data[6:]) {
			t.Errorf("Info() = % x", u.Info())
		}
		if !bytes.Equal(encode(t, a), data) {
			t.Error("unknown attribute did not re-encode byte for byte")
		}
	}

	// A resolved name this package does not model keeps its name.
	a, err := decoder([]byte{0, 12, 0, 0, 0, 2, 0, 7}).Attribute()
	if err != nil {
		t.Fatalf("Attribute: %v", err)
	}
	if a.Name() != "Signature" {
		t.Errorf("Name() = %q, want Signature", a.Name())
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		// SourceFile declaring 3 bytes but holding a 2-byte index.
		{"long", []byte{0, 3, 0, 0, 0, 3, 0, 1, 0}},
		// SourceFile declaring 1 byte.
		{"short", []byte{0, 3, 0, 0, 0, 1, 0, 1}},
		// Deprecated with a payload.
		{"deprecated payload", []byte{0, 1, 0, 0, 0, 1, 0}},
		// StackMapTable whose frame runs past attribute_length.
		{"frame overrun", []byte{0, 4, 0, 0, 0, 3, 0, 1, 255, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder(tt.data).Attribute()
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != errors.KindSizeMismatch || ce.Phase != errors.PhaseDecode {
				t.Fatalf("expected decode size_mismatch, got %v", err)
			}
			var pe *binary.ParseError
			if !stderrors.As(err, &pe) {
				t.Errorf("expected position information, got %v", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		decode func(*classfile.Decoder) error
		data   []byte
		kind   errors.Kind
	}{
		{
			"bad verification tag",
			func(d *classfile.Decoder) error { _, err := d.VerificationTypeInfo(); return err },
			[]byte{9},
			errors.KindInvalidTag,
		},
		{
			"object index zero",
			func(d *classfile.Decoder) error { _, err := d.VerificationTypeInfo(); return err },
			[]byte{7, 0, 0},
			errors.KindOutOfRange,
		},
		{
			"reserved frame",
			func(d *classfile.Decoder) error { _, err := d.StackMapFrame(); return err },
			[]byte{200},
			errors.KindReserved,
		},
		{
			"truncated frame",
			func(d *classfile.Decoder) error { _, err := d.StackMapFrame(); return err },
			[]byte{255, 0},
			errors.KindTruncated,
		},
		{
			"bad element tag",
			func(d *classfile.Decoder) error { _, err := d.ElementValue(); return err },
			[]byte{'x', 0, 1},
			errors.KindInvalidTag,
		},
		{
			"truncated array",
			func(d *classfile.Decoder) error { _, err := d.ElementValue(); return err },
			[]byte{'[', 0, 2, 'I', 0, 1},
			errors.KindTruncated,
		},
		{
			"annotation type zero",
			func(d *classfile.Decoder) error { _, err := d.Annotation(); return err },
			[]byte{0, 0, 0, 0},
			errors.KindOutOfRange,
		},
		{
			"truncated header",
			func(d *classfile.Decoder) error { _, err := d.Attribute(); return err },
			[]byte{0, 1, 0},
			errors.KindTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(decoder(tt.data))
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != tt.kind {
				t.Fatalf("expected %s error, got %v", tt.kind, err)
			}
		})
	}
}

func TestDecodeNestingLimit(t *testing.T) {
	var data []byte
	for range 1000 {
		data = append(data, '[', 0, 1)
	}
	data = append(data, 'I', 0, 1)

	_, err := decoder(data).ElementValue()
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Kind != errors.KindInvalidData {
		t.Fatalf("expected invalid_data error, got %v", err)
	}
}

func TestDecodeCountsDoNotPreallocate(t *testing.T) {
	// Every level claims 65535 elements but only the first is present.
	var data []byte
	for range 256 {
		data = append(data, '[', 0xff, 0xff)
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err := decoder(data).ElementValue()
	runtime.ReadMemStats(&after)

	if err == nil {
		t.Fatal("expected error for truncated input")
	}
	if grown := after.TotalAlloc - before.TotalAlloc; grown > 16<<20 {
		t.Errorf("decoding %d bytes allocated %d bytes", len(data), grown)
	}
}

func TestDecodeCountsUnderLimit(t *testing.T) {
	// RuntimeVisibleAnnotations claiming 65535 annotations in a 2-byte body.
	data := []byte{0, 7, 0, 0, 0, 2, 0xff, 0xff}
	if _, err := decoder(data).Attribute(); err == nil {
		t.Fatal("expected error for missing annotations")
	}
}
