package classfile_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/jvm-classfile/classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

func TestVerificationTypeEncoding(t *testing.T) {
	tests := []struct {
		name string
		v    classfile.VerificationTypeInfo
		want []byte
	}{
		{"top", classfile.TopVariableInfo{}, []byte{0}},
		{"integer", classfile.IntegerVariableInfo{}, []byte{1}},
		{"float", classfile.FloatVariableInfo{}, []byte{2}},
		{"double", classfile.DoubleVariableInfo{}, []byte{3}},
		{"long", classfile.LongVariableInfo{}, []byte{4}},
		{"null", classfile.NullVariableInfo{}, []byte{5}},
		{"uninitialized_this", classfile.UninitializedThisVariableInfo{}, []byte{6}},
		{"object", must(classfile.NewObjectVariableInfo(0x1234)), []byte{7, 0x12, 0x34}},
		{"uninitialized", must(classfile.NewUninitializedVariableInfo(0)), []byte{8, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode(t, tt.v)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
			if tt.v.Tag().String() != tt.name {
				t.Errorf("Tag().String() = %q", tt.v.Tag().String())
			}
		})
	}
}

func TestVerificationTypeRanges(t *testing.T) {
	if _, err := classfile.NewObjectVariableInfo(0); !errors.IsValidation(err) {
		t.Errorf("cpool_index 0: expected validation error, got %v", err)
	}
	if _, err := classfile.NewObjectVariableInfo(65536); !errors.IsValidation(err) {
		t.Errorf("cpool_index 65536: expected validation error, got %v", err)
	}
	if _, err := classfile.NewUninitializedVariableInfo(-1); !errors.IsValidation(err) {
		t.Errorf("offset -1: expected validation error, got %v", err)
	}
	if _, err := classfile.NewUninitializedVariableInfo(65535); err != nil {
		t.Errorf("offset 65535: %v", err)
	}

	if _, ok := classfile.VerificationTypeOf(classfile.ItemObject); ok {
		t.Error("VerificationTypeOf(Object) should need a payload")
	}
	v, ok := classfile.VerificationTypeOf(classfile.ItemLong)
	if !ok || v != (classfile.LongVariableInfo{}) {
		t.Errorf("VerificationTypeOf(Long) = %v, %v", v, ok)
	}
}

func TestFrameTypeRanges(t *testing.T) {
	obj := must(classfile.NewObjectVariableInfo(3))
	i := classfile.IntegerVariableInfo{}

	tests := []struct {
		name  string
		build func() error
		ok    bool
	}{
		{"same 0", func() error { _, err := classfile.NewSameFrame(0); return err }, true},
		{"same 63", func() error { _, err := classfile.NewSameFrame(63); return err }, true},
		{"same 64", func() error { _, err := classfile.NewSameFrame(64); return err }, false},
		{"same -1", func() error { _, err := classfile.NewSameFrame(-1); return err }, false},
		{"locals1 64", func() error { _, err := classfile.NewSameLocals1StackItemFrame(64, i); return err }, true},
		{"locals1 127", func() error { _, err := classfile.NewSameLocals1StackItemFrame(127, i); return err }, true},
		{"locals1 63", func() error { _, err := classfile.NewSameLocals1StackItemFrame(63, i); return err }, false},
		{"locals1 128", func() error { _, err := classfile.NewSameLocals1StackItemFrame(128, i); return err }, false},
		{"locals1 nil", func() error { _, err := classfile.NewSameLocals1StackItemFrame(64, nil); return err }, false},
		{"chop 247", func() error { _, err := classfile.NewChopFrame(247, 1); return err }, false},
		{"chop 248", func() error { _, err := classfile.NewChopFrame(248, 1); return err }, true},
		{"chop 250", func() error { _, err := classfile.NewChopFrame(250, 1); return err }, true},
		{"chop 251", func() error { _, err := classfile.NewChopFrame(251, 1); return err }, false},
		{"chop delta", func() error { _, err := classfile.NewChopFrame(248, 65536); return err }, false},
		{"append 251", func() error { _, err := classfile.NewAppendFrame(251, 0); return err }, false},
		{"append 252", func() error { _, err := classfile.NewAppendFrame(252, 0, i); return err }, true},
		{"append 253 two", func() error { _, err := classfile.NewAppendFrame(253, 0, i, obj); return err }, true},
		{"append 253 three", func() error { _, err := classfile.NewAppendFrame(253, 0, i, obj, i); return err }, false},
		{"append 253 one", func() error { _, err := classfile.NewAppendFrame(253, 0, i); return err }, false},
		{"append 254 three", func() error { _, err := classfile.NewAppendFrame(254, 0, i, i, i); return err }, true},
		{"append nil local", func() error { _, err := classfile.NewAppendFrame(252, 0, nil); return err }, false},
		{"full delta", func() error { _, err := classfile.NewFullFrame(65536, nil, nil); return err }, false},
		{"full nil stack", func() error {
			_, err := classfile.NewFullFrame(0, nil, []classfile.VerificationTypeInfo{nil})
			return err
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFrameEncoding(t *testing.T) {
	obj := must(classfile.NewObjectVariableInfo(12))
	uninit := must(classfile.NewUninitializedVariableInfo(0x0102))

	tests := []struct {
		name  string
		frame classfile.StackMapFrame
		want  []byte
	}{
		{"same", must(classfile.NewSameFrame(5)), []byte{5}},
		{"locals1", must(classfile.NewSameLocals1StackItemFrame(70, classfile.IntegerVariableInfo{})), []byte{70, 1}},
		{"locals1 extended", must(classfile.NewSameLocals1StackItemFrameExtended(300, obj)), []byte{247, 0x01, 0x2c, 7, 0, 12}},
		{"chop", must(classfile.NewChopFrame(249, 9)), []byte{249, 0, 9}},
		{"same extended", must(classfile.NewSameFrameExtended(1000)), []byte{251, 0x03, 0xe8}},
		{"append", must(classfile.NewAppendFrame(252, 7, obj)), []byte{0xfc, 0, 7, 7, 0, 12}},
		{"append two", must(classfile.NewAppendFrame(253, 1, classfile.LongVariableInfo{}, uninit)), []byte{253, 0, 1, 4, 8, 1, 2}},
		{
			"full",
			must(classfile.NewFullFrame(2,
				[]classfile.VerificationTypeInfo{obj, classfile.IntegerVariableInfo{}},
				[]classfile.VerificationTypeInfo{classfile.NullVariableInfo{}})),
			[]byte{255, 0, 2, 0, 2, 7, 0, 12, 1, 0, 1, 5},
		},
		{"full empty", must(classfile.NewFullFrame(0, nil, nil)), []byte{255, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode(t, tt.frame)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
			if tt.frame.FrameType() != tt.want[0] {
				t.Errorf("FrameType() = %d, want %d", tt.frame.FrameType(), tt.want[0])
			}
			if classfile.FrameKindOf(tt.frame.FrameType()) != tt.frame.Kind() {
				t.Errorf("Kind() = %v, FrameKindOf = %v", tt.frame.Kind(), classfile.FrameKindOf(tt.frame.FrameType()))
			}
		})
	}
}

func TestFrameAccessors(t *testing.T) {
	same := must(classfile.NewSameFrame(17))
	if same.OffsetDelta() != 17 {
		t.Errorf("SameFrame.OffsetDelta() = %d, want 17", same.OffsetDelta())
	}
	locals1 := must(classfile.NewSameLocals1StackItemFrame(64+9, classfile.FloatVariableInfo{}))
	if locals1.OffsetDelta() != 9 {
		t.Errorf("SameLocals1StackItemFrame.OffsetDelta() = %d, want 9", locals1.OffsetDelta())
	}
	chop := must(classfile.NewChopFrame(248, 4))
	if chop.Chopped() != 3 {
		t.Errorf("Chopped() = %d, want 3", chop.Chopped())
	}

	locals := []classfile.VerificationTypeInfo{classfile.IntegerVariableInfo{}, classfile.FloatVariableInfo{}}
	full := must(classfile.NewFullFrame(0, locals, nil))
	locals[0] = classfile.TopVariableInfo{}
	if full.Locals()[0] != (classfile.IntegerVariableInfo{}) {
		t.Error("FullFrame shares its locals with the caller")
	}
	out := full.Locals()
	out[1] = classfile.TopVariableInfo{}
	if full.Locals()[1] != (classfile.FloatVariableInfo{}) {
		t.Error("Locals() exposes internal storage")
	}
	if full.Stack() != nil {
		t.Errorf("Stack() = %v, want nil", full.Stack())
	}
}

func TestNewStackMapFrame(t *testing.T) {
	i := classfile.IntegerVariableInfo{}
	tests := []struct {
		name      string
		frameType int
		delta     int
		locals    []classfile.VerificationTypeInfo
		stack     []classfile.VerificationTypeInfo
		kind      classfile.FrameKind
		errKind   errors.Kind
	}{
		{name: "same", frameType: 3, kind: classfile.FrameSame},
		{name: "locals1", frameType: 65, stack: []classfile.VerificationTypeInfo{i}, kind: classfile.FrameSameLocals1StackItem},
		{name: "locals1 extended", frameType: 247, delta: 500, stack: []classfile.VerificationTypeInfo{i}, kind: classfile.FrameSameLocals1StackItemExtended},
		{name: "chop", frameType: 250, delta: 2, kind: classfile.FrameChop},
		{name: "same extended", frameType: 251, delta: 64, kind: classfile.FrameSameExtended},
		{name: "append", frameType: 254, locals: []classfile.VerificationTypeInfo{i, i, i}, kind: classfile.FrameAppend},
		{name: "full", frameType: 255, locals: []classfile.VerificationTypeInfo{i}, stack: []classfile.VerificationTypeInfo{i}, kind: classfile.FrameFull},
		{name: "reserved low", frameType: 128, errKind: errors.KindReserved},
		{name: "reserved high", frameType: 246, errKind: errors.KindReserved},
		{name: "out of byte", frameType: 256, errKind: errors.KindOutOfRange},
		{name: "locals1 no stack", frameType: 64, errKind: errors.KindSizeMismatch},
		{name: "same with stack", frameType: 0, stack: []classfile.VerificationTypeInfo{i}, errKind: errors.KindSizeMismatch},
		{name: "chop with locals", frameType: 248, locals: []classfile.VerificationTypeInfo{i}, errKind: errors.KindSizeMismatch},
		{name: "append wrong count", frameType: 252, errKind: errors.KindSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := classfile.NewStackMapFrame(tt.frameType, tt.delta, tt.locals, tt.stack)
			if tt.errKind != "" {
				var ce *errors.Error
				if !stderrors.As(err, &ce) || ce.Kind != tt.errKind {
					t.Fatalf("expected %s error, got %v", tt.errKind, err)
				}
				if f != nil {
					t.Errorf("expected nil frame on error, got %v", f)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", f.Kind(), tt.kind)
			}
			if int(f.FrameType()) != tt.frameType {
				t.Errorf("FrameType() = %d, want %d", f.FrameType(), tt.frameType)
			}
		})
	}
}

func TestFrameEquality(t *testing.T) {
	obj := must(classfile.NewObjectVariableInfo(4))
	a := must(classfile.NewAppendFrame(253, 10, obj, classfile.IntegerVariableInfo{}))
	b := must(classfile.NewAppendFrame(253, 10, obj, classfile.IntegerVariableInfo{}))
	c := must(classfile.NewAppendFrame(253, 11, obj, classfile.IntegerVariableInfo{}))
	d := must(classfile.NewAppendFrame(253, 10, obj, classfile.FloatVariableInfo{}))

	if !a.Equal(b) {
		t.Error("identical append frames should be equal")
	}
	if a.Equal(c) {
		t.Error("frames differing in offset_delta should not be equal")
	}
	if a.Equal(d) {
		t.Error("frames differing in a local should not be equal")
	}
	if a.Equal(must(classfile.NewSameFrameExtended(10))) {
		t.Error("frames of different kinds should not be equal")
	}
	if a.Equal(nil) {
		t.Error("frame should not equal nil")
	}

	full1 := must(classfile.NewFullFrame(1, []classfile.VerificationTypeInfo{obj}, nil))
	full2 := must(classfile.NewFullFrame(1, nil, []classfile.VerificationTypeInfo{obj}))
	if full1.Equal(full2) {
		t.Error("locals and stack must not be interchangeable")
	}

	same := must(classfile.NewSameFrame(3))
	if same != must(classfile.NewSameFrame(3)) {
		t.Error("same frames should compare equal with ==")
	}
}
