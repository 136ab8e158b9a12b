package classfile_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/jvm-classfile/classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

func TestZeroValuePayloadsRejected(t *testing.T) {
	zeroObject := classfile.ObjectVariableInfo{}

	tests := []struct {
		name    string
		build   func() error
		errKind errors.Kind
	}{
		{"const union", func() error {
			_, err := classfile.NewElementValue(classfile.TagInt, classfile.ConstValueIndexUnion{})
			return err
		}, errors.KindOutOfRange},
		{"class union", func() error {
			_, err := classfile.NewElementValue(classfile.TagClass, classfile.ClassInfoIndexUnion{})
			return err
		}, errors.KindOutOfRange},
		{"enum union", func() error {
			_, err := classfile.NewElementValue(classfile.TagEnum, classfile.EnumConstValueUnion{})
			return err
		}, errors.KindOutOfRange},
		{"annotation union", func() error {
			_, err := classfile.NewElementValue(classfile.TagAnnotation, classfile.AnnotationValueUnion{})
			return err
		}, errors.KindNilValue},
		{"array of zero element value", func() error {
			_, err := classfile.NewArrayElementValue(classfile.ElementValue{})
			return err
		}, errors.KindNilValue},
		{"pair with zero element value", func() error {
			_, err := classfile.NewElementValuePair(2, classfile.ElementValue{})
			return err
		}, errors.KindNilValue},
		{"full frame local", func() error {
			_, err := classfile.NewFullFrame(0, []classfile.VerificationTypeInfo{zeroObject}, nil)
			return err
		}, errors.KindOutOfRange},
		{"full frame stack", func() error {
			_, err := classfile.NewFullFrame(0, nil, []classfile.VerificationTypeInfo{zeroObject})
			return err
		}, errors.KindOutOfRange},
		{"append frame local", func() error {
			_, err := classfile.NewAppendFrame(252, 0, zeroObject)
			return err
		}, errors.KindOutOfRange},
		{"same locals 1 stack item", func() error {
			_, err := classfile.NewSameLocals1StackItemFrame(64, zeroObject)
			return err
		}, errors.KindOutOfRange},
		{"same locals 1 stack item extended", func() error {
			_, err := classfile.NewSameLocals1StackItemFrameExtended(0, zeroObject)
			return err
		}, errors.KindOutOfRange},
		{"table with zero same locals 1 frame", func() error {
			_, err := classfile.NewStackMapTableAttribute(4, classfile.SameLocals1StackItemFrame{})
			return err
		}, errors.KindOutOfRange},
		{"table with zero extended frame", func() error {
			_, err := classfile.NewStackMapTableAttribute(4, classfile.SameLocals1StackItemFrameExtended{})
			return err
		}, errors.KindNilValue},
		{"table with zero chop frame", func() error {
			_, err := classfile.NewStackMapTableAttribute(4, classfile.ChopFrame{})
			return err
		}, errors.KindOutOfRange},
		{"table with zero append frame", func() error {
			_, err := classfile.NewStackMapTableAttribute(4, classfile.AppendFrame{})
			return err
		}, errors.KindOutOfRange},
		{"table with nil frame", func() error {
			_, err := classfile.NewStackMapTableAttribute(4, nil)
			return err
		}, errors.KindNilValue},
		{"annotation default", func() error {
			_, err := classfile.NewAnnotationDefaultAttribute(11, classfile.ElementValue{})
			return err
		}, errors.KindNilValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != tt.errKind {
				t.Fatalf("expected %s error, got %v", tt.errKind, err)
			}
			if !errors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestEncodeZeroValuesReturnsError(t *testing.T) {
	tests := []struct {
		name    string
		node    classfile.Node
		errKind errors.Kind
	}{
		{"element value", classfile.ElementValue{}, errors.KindNilValue},
		{"element value pair", classfile.ElementValuePair{}, errors.KindOutOfRange},
		{"annotation", classfile.Annotation{}, errors.KindNilValue},
		{"object variable info", classfile.ObjectVariableInfo{}, errors.KindOutOfRange},
		{"const union", classfile.ConstValueIndexUnion{}, errors.KindOutOfRange},
		{"annotation union", classfile.AnnotationValueUnion{}, errors.KindNilValue},
		{"same locals 1 frame", classfile.SameLocals1StackItemFrame{}, errors.KindOutOfRange},
		{"extended frame", classfile.SameLocals1StackItemFrameExtended{}, errors.KindNilValue},
		{"nil line number", (*classfile.LineNumber)(nil), errors.KindNilValue},
		{"nil parameter", (*classfile.Parameter)(nil), errors.KindNilValue},
		{"nil source file", (*classfile.SourceFileAttribute)(nil), errors.KindNilValue},
		{"deprecated", classfile.DeprecatedAttribute{}, errors.KindOutOfRange},
		{"annotation default", classfile.AnnotationDefaultAttribute{}, errors.KindNilValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := classfile.Encode(tt.node)
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != tt.errKind {
				t.Fatalf("expected %s error, got %v", tt.errKind, err)
			}
			if data != nil {
				t.Errorf("expected no output, got % x", data)
			}
			if _, err := classfile.Fingerprint(tt.node); err == nil {
				t.Error("expected Fingerprint error")
			}
		})
	}
}

func TestWriteZeroFrameReturnsError(t *testing.T) {
	frames := []classfile.StackMapFrame{
		classfile.SameLocals1StackItemFrame{},
		classfile.SameLocals1StackItemFrameExtended{},
	}
	for _, f := range frames {
		t.Run(classfile.NodeName(f), func(t *testing.T) {
			if got := f.Length(); got < 1 {
				t.Errorf("Length() = %d", got)
			}
			var buf bytes.Buffer
			err := f.Write(classfile.NewSink(&buf))
			var ce *errors.Error
			if !stderrors.As(err, &ce) || ce.Kind != errors.KindNilValue {
				t.Fatalf("expected nil_value error, got %v", err)
			}
			if ce.Phase != errors.PhaseEncode {
				t.Errorf("Phase = %s, want encode", ce.Phase)
			}
			if children := classfile.Children(f); len(children) != 0 {
				t.Errorf("Children = %v, want none", children)
			}
		})
	}
}
