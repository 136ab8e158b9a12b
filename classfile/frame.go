package classfile

import (
	jvmclassfile "github.com/wippyai/jvm-classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

// StackMapFrame is one entry of a StackMapTable. The interface is sealed;
// the frame_type byte selects the variant and every constructor rejects a
// frame_type outside its variant's range.
type StackMapFrame interface {
	Node
	FrameType() uint8
	Kind() FrameKind
	// OffsetDelta is the explicit offset_delta, or the one implied by
	// frame_type for the compact variants.
	OffsetDelta() uint16
	// Locals returns a copy of the frame's locals, nil when it has none.
	Locals() []VerificationTypeInfo
	// Stack returns a copy of the frame's stack items, nil when it has none.
	Stack() []VerificationTypeInfo
	Equal(other StackMapFrame) bool
	stackMapFrame()
}

// SameFrame has the same locals as the previous frame and an empty stack.
type SameFrame struct {
	frameType uint8
}

// SameLocals1StackItemFrame has the same locals as the previous frame and
// exactly one stack item.
type SameLocals1StackItemFrame struct {
	stack     VerificationTypeInfo
	frameType uint8
}

// SameLocals1StackItemFrameExtended is SameLocals1StackItemFrame with
// an explicit offset_delta.
type SameLocals1StackItemFrameExtended struct {
	stack       VerificationTypeInfo
	offsetDelta uint16
}

// ChopFrame drops the last 251-frame_type locals and has an empty stack.
type ChopFrame struct {
	offsetDelta uint16
	frameType   uint8
}

// SameFrameExtended is SameFrame with an explicit offset_delta.
type SameFrameExtended struct {
	offsetDelta uint16
}

// AppendFrame adds frame_type-251 locals and has an empty stack.
type AppendFrame struct {
	locals      []VerificationTypeInfo
	offsetDelta uint16
	frameType   uint8
}

// FullFrame lists every local and stack item explicitly.
type FullFrame struct {
	locals      []VerificationTypeInfo
	stack       []VerificationTypeInfo
	offsetDelta uint16
}

func checkFrameType(frameType, min, max int) error {
	return checkRange("frame_type", frameType, min, max)
}

func checkStackItem(v VerificationTypeInfo) error {
	return checkVerificationType("stack", v)
}

// NewSameFrame creates a same_frame. frameType must be in [0, 63].
func NewSameFrame(frameType int) (SameFrame, error) {
	if err := checkFrameType(frameType, SameFrameMin, SameFrameMax); err != nil {
		return SameFrame{}, err
	}
	return SameFrame{frameType: uint8(frameType)}, nil
}

// NewSameLocals1StackItemFrame creates a same_locals_1_stack_item_frame.
// frameType must be in [64, 127].
func NewSameLocals1StackItemFrame(frameType int, stack VerificationTypeInfo) (SameLocals1StackItemFrame, error) {
	if err := checkFrameType(frameType, SameLocals1StackItemFrameMin, SameLocals1StackItemFrameMax); err != nil {
		return SameLocals1StackItemFrame{}, err
	}
	if err := checkStackItem(stack); err != nil {
		return SameLocals1StackItemFrame{}, err
	}
	return SameLocals1StackItemFrame{frameType: uint8(frameType), stack: stack}, nil
}

// NewSameLocals1StackItemFrameExtended creates a
// same_locals_1_stack_item_frame_extended (frame_type 247).
func NewSameLocals1StackItemFrameExtended(offsetDelta int, stack VerificationTypeInfo) (SameLocals1StackItemFrameExtended, error) {
	if err := checkU2("offset_delta", offsetDelta); err != nil {
		return SameLocals1StackItemFrameExtended{}, err
	}
	if err := checkStackItem(stack); err != nil {
		return SameLocals1StackItemFrameExtended{}, err
	}
	return SameLocals1StackItemFrameExtended{offsetDelta: uint16(offsetDelta), stack: stack}, nil
}

// NewChopFrame creates a chop_frame. frameType must be in [248, 250].
func NewChopFrame(frameType, offsetDelta int) (ChopFrame, error) {
	if err := checkFrameType(frameType, ChopFrameMin, ChopFrameMax); err != nil {
		return ChopFrame{}, err
	}
	if err := checkU2("offset_delta", offsetDelta); err != nil {
		return ChopFrame{}, err
	}
	return ChopFrame{frameType: uint8(frameType), offsetDelta: uint16(offsetDelta)}, nil
}

// NewSameFrameExtended creates a same_frame_extended (frame_type 251).
func NewSameFrameExtended(offsetDelta int) (SameFrameExtended, error) {
	if err := checkU2("offset_delta", offsetDelta); err != nil {
		return SameFrameExtended{}, err
	}
	return SameFrameExtended{offsetDelta: uint16(offsetDelta)}, nil
}

// NewAppendFrame creates an append_frame. frameType must be in [252, 254]
// and exactly frameType-251 locals must be given.
func NewAppendFrame(frameType, offsetDelta int, locals ...VerificationTypeInfo) (AppendFrame, error) {
	if err := checkFrameType(frameType, AppendFrameMin, AppendFrameMax); err != nil {
		return AppendFrame{}, err
	}
	if err := checkU2("offset_delta", offsetDelta); err != nil {
		return AppendFrame{}, err
	}
	if want := frameType - SameFrameExtendedType; len(locals) != want {
		return AppendFrame{}, errors.New(errors.PhaseValidate, errors.KindSizeMismatch).
			Path("locals").
			Node("AppendFrame").
			Value(len(locals)).
			Detail("frame_type %d requires %d locals, got %d", frameType, want, len(locals)).
			Build()
	}
	if err := checkVerificationTypes("locals", locals); err != nil {
		return AppendFrame{}, err
	}
	return AppendFrame{
		frameType:   uint8(frameType),
		offsetDelta: uint16(offsetDelta),
		locals:      cloneVerificationTypes(locals),
	}, nil
}

// NewFullFrame creates a full_frame (frame_type 255).
func NewFullFrame(offsetDelta int, locals, stack []VerificationTypeInfo) (FullFrame, error) {
	if err := checkU2("offset_delta", offsetDelta); err != nil {
		return FullFrame{}, err
	}
	if err := checkVerificationTypes("locals", locals); err != nil {
		return FullFrame{}, err
	}
	if err := checkVerificationTypes("stack", stack); err != nil {
		return FullFrame{}, err
	}
	return FullFrame{
		offsetDelta: uint16(offsetDelta),
		locals:      cloneVerificationTypes(locals),
		stack:       cloneVerificationTypes(stack),
	}, nil
}

// NewStackMapFrame creates the variant frameType selects. offsetDelta is
// ignored by the compact variants, whose delta is implied by frameType.
// For same_locals_1_stack_item frames, stack must hold exactly one item.
func NewStackMapFrame(frameType, offsetDelta int, locals, stack []VerificationTypeInfo) (StackMapFrame, error) {
	if err := checkRange("frame_type", frameType, 0, MaxU1); err != nil {
		return nil, err
	}
	kind := FrameKindOf(uint8(frameType))
	if kind == FrameReserved {
		return nil, errors.Reserved(errors.PhaseValidate, []string{"frame_type"}, frameType, "stack_map_frame")
	}

	switch kind {
	case FrameSameLocals1StackItem, FrameSameLocals1StackItemExtended:
		if len(stack) != 1 {
			return nil, errors.SizeMismatch(errors.PhaseValidate, []string{"stack"}, len(stack), 1)
		}
	case FrameFull:
	default:
		if len(stack) != 0 {
			return nil, errors.SizeMismatch(errors.PhaseValidate, []string{"stack"}, len(stack), 0)
		}
	}
	if kind != FrameAppend && kind != FrameFull && len(locals) != 0 {
		return nil, errors.SizeMismatch(errors.PhaseValidate, []string{"locals"}, len(locals), 0)
	}

	switch kind {
	case FrameSame:
		return asFrame(NewSameFrame(frameType))
	case FrameSameLocals1StackItem:
		return asFrame(NewSameLocals1StackItemFrame(frameType, stack[0]))
	case FrameSameLocals1StackItemExtended:
		return asFrame(NewSameLocals1StackItemFrameExtended(offsetDelta, stack[0]))
	case FrameChop:
		return asFrame(NewChopFrame(frameType, offsetDelta))
	case FrameSameExtended:
		return asFrame(NewSameFrameExtended(offsetDelta))
	case FrameAppend:
		return asFrame(NewAppendFrame(frameType, offsetDelta, locals...))
	default:
		return asFrame(NewFullFrame(offsetDelta, locals, stack))
	}
}

func asFrame[F StackMapFrame](f F, err error) (StackMapFrame, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// SameFrame

func (f SameFrame) FrameType() uint8               { return f.frameType }
func (SameFrame) Kind() FrameKind                  { return FrameSame }
func (f SameFrame) OffsetDelta() uint16            { return uint16(f.frameType) }
func (SameFrame) Locals() []VerificationTypeInfo   { return nil }
func (SameFrame) Stack() []VerificationTypeInfo    { return nil }
func (SameFrame) Length() int                      { return 1 }
func (f SameFrame) Equal(other StackMapFrame) bool { return other != nil && StackMapFrame(f) == other }
func (SameFrame) stackMapFrame()                   {}

func (f SameFrame) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(f.frameType)
	return e.done()
}

// SameLocals1StackItemFrame

func (f SameLocals1StackItemFrame) FrameType() uint8 { return f.frameType }
func (SameLocals1StackItemFrame) Kind() FrameKind    { return FrameSameLocals1StackItem }
func (f SameLocals1StackItemFrame) OffsetDelta() uint16 {
	return uint16(f.frameType - SameLocals1StackItemFrameMin)
}
func (SameLocals1StackItemFrame) Locals() []VerificationTypeInfo { return nil }
func (f SameLocals1StackItemFrame) Stack() []VerificationTypeInfo {
	return []VerificationTypeInfo{f.stack}
}

// StackItem returns the single stack entry.
func (f SameLocals1StackItemFrame) StackItem() VerificationTypeInfo { return f.stack }
func (f SameLocals1StackItemFrame) Length() int                     { return 1 + lengthOf(f.stack) }
func (f SameLocals1StackItemFrame) Equal(other StackMapFrame) bool {
	return other != nil && StackMapFrame(f) == other
}
func (SameLocals1StackItemFrame) stackMapFrame() {}

func (f SameLocals1StackItemFrame) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(f.frameType)
	e.node(f.stack)
	return e.done()
}

// SameLocals1StackItemFrameExtended

func (SameLocals1StackItemFrameExtended) FrameType() uint8 {
	return SameLocals1StackItemFrameExtendedType
}
func (SameLocals1StackItemFrameExtended) Kind() FrameKind {
	return FrameSameLocals1StackItemExtended
}
func (f SameLocals1StackItemFrameExtended) OffsetDelta() uint16 { return f.offsetDelta }
func (SameLocals1StackItemFrameExtended) Locals() []VerificationTypeInfo {
	return nil
}
func (f SameLocals1StackItemFrameExtended) Stack() []VerificationTypeInfo {
	return []VerificationTypeInfo{f.stack}
}

// StackItem returns the single stack entry.
func (f SameLocals1StackItemFrameExtended) StackItem() VerificationTypeInfo { return f.stack }
func (f SameLocals1StackItemFrameExtended) Length() int {
	return 3 + lengthOf(f.stack)
}
func (f SameLocals1StackItemFrameExtended) Equal(other StackMapFrame) bool {
	return other != nil && StackMapFrame(f) == other
}
func (SameLocals1StackItemFrameExtended) stackMapFrame() {}

func (f SameLocals1StackItemFrameExtended) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(SameLocals1StackItemFrameExtendedType)
	e.u2(f.offsetDelta)
	e.node(f.stack)
	return e.done()
}

// ChopFrame

func (f ChopFrame) FrameType() uint8               { return f.frameType }
func (ChopFrame) Kind() FrameKind                  { return FrameChop }
func (f ChopFrame) OffsetDelta() uint16            { return f.offsetDelta }
func (ChopFrame) Locals() []VerificationTypeInfo   { return nil }
func (ChopFrame) Stack() []VerificationTypeInfo    { return nil }
func (ChopFrame) Length() int                      { return 3 }
func (f ChopFrame) Equal(other StackMapFrame) bool { return other != nil && StackMapFrame(f) == other }
func (ChopFrame) stackMapFrame()                   {}

// Chopped returns how many trailing locals the frame removes.
func (f ChopFrame) Chopped() int {
	return SameFrameExtendedType - int(f.frameType)
}

func (f ChopFrame) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(f.frameType)
	e.u2(f.offsetDelta)
	return e.done()
}

// SameFrameExtended

func (SameFrameExtended) FrameType() uint8               { return SameFrameExtendedType }
func (SameFrameExtended) Kind() FrameKind                { return FrameSameExtended }
func (f SameFrameExtended) OffsetDelta() uint16          { return f.offsetDelta }
func (SameFrameExtended) Locals() []VerificationTypeInfo { return nil }
func (SameFrameExtended) Stack() []VerificationTypeInfo  { return nil }
func (SameFrameExtended) Length() int                    { return 3 }
func (f SameFrameExtended) Equal(other StackMapFrame) bool {
	return other != nil && StackMapFrame(f) == other
}
func (SameFrameExtended) stackMapFrame() {}

func (f SameFrameExtended) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(SameFrameExtendedType)
	e.u2(f.offsetDelta)
	return e.done()
}

// AppendFrame

func (f AppendFrame) FrameType() uint8               { return f.frameType }
func (AppendFrame) Kind() FrameKind                  { return FrameAppend }
func (f AppendFrame) OffsetDelta() uint16            { return f.offsetDelta }
func (f AppendFrame) Locals() []VerificationTypeInfo { return cloneVerificationTypes(f.locals) }
func (AppendFrame) Stack() []VerificationTypeInfo    { return nil }
func (f AppendFrame) Length() int                    { return 3 + verificationTypesLength(f.locals) }
func (AppendFrame) stackMapFrame()                   {}

func (f AppendFrame) Equal(other StackMapFrame) bool {
	o, ok := other.(AppendFrame)
	return ok && f.frameType == o.frameType && f.offsetDelta == o.offsetDelta &&
		verificationTypesEqual(f.locals, o.locals)
}

// Write emits the locals without a count; frame_type implies it.
func (f AppendFrame) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(f.frameType)
	e.u2(f.offsetDelta)
	for _, local := range f.locals {
		e.node(local)
	}
	return e.done()
}

// FullFrame

func (FullFrame) FrameType() uint8                 { return FullFrameType }
func (FullFrame) Kind() FrameKind                  { return FrameFull }
func (f FullFrame) OffsetDelta() uint16            { return f.offsetDelta }
func (f FullFrame) Locals() []VerificationTypeInfo { return cloneVerificationTypes(f.locals) }
func (f FullFrame) Stack() []VerificationTypeInfo  { return cloneVerificationTypes(f.stack) }
func (FullFrame) stackMapFrame()                   {}

// Length counts frame_type, offset_delta, both u2 counts and every entry.
func (f FullFrame) Length() int {
	return 7 + verificationTypesLength(f.locals) + verificationTypesLength(f.stack)
}

func (f FullFrame) Equal(other StackMapFrame) bool {
	o, ok := other.(FullFrame)
	return ok && f.offsetDelta == o.offsetDelta &&
		verificationTypesEqual(f.locals, o.locals) &&
		verificationTypesEqual(f.stack, o.stack)
}

func (f FullFrame) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(FullFrameType)
	e.u2(f.offsetDelta)
	e.u2(uint16(len(f.locals)))
	for _, local := range f.locals {
		e.node(local)
	}
	e.u2(uint16(len(f.stack)))
	for _, item := range f.stack {
		e.node(item)
	}
	return e.done()
}

func framesEqual(a, b []StackMapFrame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
