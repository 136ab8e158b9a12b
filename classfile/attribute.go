package classfile

import (
	"bytes"

	jvmclassfile "github.com/wippyai/jvm-classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

// Attribute is an attribute_info structure. Length is the full encoded
// size including the six header bytes; AttributeLength is the value of the
// attribute_length field.
type Attribute interface {
	Node
	Name() string
	AttributeNameIndex() uint16
	AttributeLength() int
}

// DeprecatedAttribute marks a class, field or method as deprecated.
type DeprecatedAttribute struct {
	nameIndex uint16
}

// NewDeprecatedAttribute creates a Deprecated attribute.
func NewDeprecatedAttribute(nameIndex int) (DeprecatedAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return DeprecatedAttribute{}, err
	}
	return DeprecatedAttribute{nameIndex: uint16(nameIndex)}, nil
}

func (a DeprecatedAttribute) Name() string               { return AttrDeprecated }
func (a DeprecatedAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a DeprecatedAttribute) AttributeLength() int       { return 0 }
func (a DeprecatedAttribute) Length() int                { return attributeHeaderLength }

func (a DeprecatedAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	return e.done()
}

// SyntheticAttribute marks a member that does not appear in source.
type SyntheticAttribute struct {
	nameIndex uint16
}

// NewSyntheticAttribute creates a Synthetic attribute.
func NewSyntheticAttribute(nameIndex int) (SyntheticAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return SyntheticAttribute{}, err
	}
	return SyntheticAttribute{nameIndex: uint16(nameIndex)}, nil
}

func (a SyntheticAttribute) Name() string               { return AttrSynthetic }
func (a SyntheticAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a SyntheticAttribute) AttributeLength() int       { return 0 }
func (a SyntheticAttribute) Length() int                { return attributeHeaderLength }

func (a SyntheticAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	return e.done()
}

// SourceFileAttribute names the source file of a class.
//
// SourceFileAttribute is mutable and NOT safe for concurrent use.
type SourceFileAttribute struct {
	nameIndex       uint16
	sourceFileIndex uint16
}

// NewSourceFileAttribute creates a SourceFile attribute.
func NewSourceFileAttribute(nameIndex, sourceFileIndex int) (*SourceFileAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return nil, err
	}
	a := &SourceFileAttribute{nameIndex: uint16(nameIndex)}
	if err := a.SetSourceFileIndex(sourceFileIndex); err != nil {
		return nil, err
	}
	return a, nil
}

// SourceFileIndex returns the constant-pool index of the file name.
func (a *SourceFileAttribute) SourceFileIndex() uint16 { return a.sourceFileIndex }

// SetSourceFileIndex updates the file name index. On error a is unchanged.
func (a *SourceFileAttribute) SetSourceFileIndex(sourceFileIndex int) error {
	if err := checkIndex("sourcefile_index", sourceFileIndex); err != nil {
		return err
	}
	a.sourceFileIndex = uint16(sourceFileIndex)
	return nil
}

// Copy returns an independent copy.
func (a *SourceFileAttribute) Copy() *SourceFileAttribute {
	c := *a
	return &c
}

func (a *SourceFileAttribute) Name() string               { return AttrSourceFile }
func (a *SourceFileAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a *SourceFileAttribute) AttributeLength() int       { return 2 }
func (a *SourceFileAttribute) Length() int                { return attributeHeaderLength + 2 }

func (a *SourceFileAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u2(a.sourceFileIndex)
	return e.done()
}

// Equal compares by value.
func (a *SourceFileAttribute) Equal(other *SourceFileAttribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}

// UnimplementedAttribute keeps the raw info bytes of an attribute this
// package does not model. It re-encodes byte for byte.
type UnimplementedAttribute struct {
	name      string
	info      []byte
	nameIndex uint16
}

// NewUnimplementedAttribute creates an opaque attribute. name is
// informational and may be empty; info is copied.
func NewUnimplementedAttribute(nameIndex int, name string, info []byte) (*UnimplementedAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return nil, err
	}
	if uint64(len(info)) > MaxU4 {
		return nil, errors.New(errors.PhaseValidate, errors.KindOutOfRange).
			Path("info").
			Value(len(info)).
			Detail("attribute_length %d exceeds u4", len(info)).
			Build()
	}
	return &UnimplementedAttribute{
		nameIndex: uint16(nameIndex),
		name:      name,
		info:      bytes.Clone(info),
	}, nil
}

// Info returns a copy of the raw attribute payload.
func (a *UnimplementedAttribute) Info() []byte { return bytes.Clone(a.info) }

// Copy returns a deep copy.
func (a *UnimplementedAttribute) Copy() *UnimplementedAttribute {
	return &UnimplementedAttribute{nameIndex: a.nameIndex, name: a.name, info: bytes.Clone(a.info)}
}

func (a *UnimplementedAttribute) Name() string               { return a.name }
func (a *UnimplementedAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a *UnimplementedAttribute) AttributeLength() int       { return len(a.info) }
func (a *UnimplementedAttribute) Length() int                { return attributeHeaderLength + len(a.info) }

func (a *UnimplementedAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.raw(a.info)
	return e.done()
}

// Equal compares name index and payload. The informational name is ignored.
func (a *UnimplementedAttribute) Equal(other *UnimplementedAttribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.nameIndex == other.nameIndex && bytes.Equal(a.info, other.info)
}

// StackMapTableAttribute holds the stack map frames of a Code attribute.
type StackMapTableAttribute struct {
	entries   []StackMapFrame
	nameIndex uint16
}

// NewStackMapTableAttribute creates a StackMapTable attribute.
func NewStackMapTableAttribute(nameIndex int, entries ...StackMapFrame) (StackMapTableAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return StackMapTableAttribute{}, err
	}
	if err := checkCount("entries", len(entries), MaxU2); err != nil {
		return StackMapTableAttribute{}, err
	}
	for _, f := range entries {
		if err := checkFrame("entries", f); err != nil {
			return StackMapTableAttribute{}, err
		}
	}
	a := StackMapTableAttribute{nameIndex: uint16(nameIndex)}
	if len(entries) > 0 {
		a.entries = make([]StackMapFrame, len(entries))
		copy(a.entries, entries)
	}
	return a, nil
}

// Entries returns a copy of the frames in order.
func (a StackMapTableAttribute) Entries() []StackMapFrame {
	if len(a.entries) == 0 {
		return nil
	}
	out := make([]StackMapFrame, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a StackMapTableAttribute) Name() string               { return AttrStackMapTable }
func (a StackMapTableAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a StackMapTableAttribute) Length() int                { return attributeHeaderLength + a.AttributeLength() }

func (a StackMapTableAttribute) AttributeLength() int {
	n := 2
	for _, f := range a.entries {
		n += f.Length()
	}
	return n
}

func (a StackMapTableAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u2(uint16(len(a.entries)))
	for _, f := range a.entries {
		e.node(f)
	}
	return e.done()
}

// Equal reports whether both tables hold equal frames in order.
func (a StackMapTableAttribute) Equal(other StackMapTableAttribute) bool {
	return a.nameIndex == other.nameIndex && framesEqual(a.entries, other.entries)
}

// LineNumberTableAttribute maps bytecode offsets to source lines.
//
// LineNumberTableAttribute is mutable and NOT safe for concurrent use. The
// entries it holds are owned by it.
type LineNumberTableAttribute struct {
	lines     []*LineNumber
	nameIndex uint16
}

// NewLineNumberTableAttribute creates a LineNumberTable attribute.
func NewLineNumberTableAttribute(nameIndex int, lines ...*LineNumber) (*LineNumberTableAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return nil, err
	}
	a := &LineNumberTableAttribute{nameIndex: uint16(nameIndex)}
	for _, l := range lines {
		if err := a.AddLineNumber(l); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// AddLineNumber appends l. The attribute takes ownership of l.
func (a *LineNumberTableAttribute) AddLineNumber(l *LineNumber) error {
	if l == nil {
		return errors.NilValue(errors.PhaseValidate, []string{"line_number_table"}, "LineNumber")
	}
	if err := checkCount("line_number_table", len(a.lines)+1, MaxU2); err != nil {
		return err
	}
	a.lines = append(a.lines, l)
	return nil
}

// LineNumbers returns the entries in order.
func (a *LineNumberTableAttribute) LineNumbers() []*LineNumber {
	out := make([]*LineNumber, len(a.lines))
	copy(out, a.lines)
	return out
}

// Copy returns a deep copy.
func (a *LineNumberTableAttribute) Copy() *LineNumberTableAttribute {
	c := &LineNumberTableAttribute{nameIndex: a.nameIndex, lines: make([]*LineNumber, len(a.lines))}
	for i, l := range a.lines {
		c.lines[i] = l.Copy()
	}
	return c
}

func (a *LineNumberTableAttribute) Name() string               { return AttrLineNumberTable }
func (a *LineNumberTableAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a *LineNumberTableAttribute) AttributeLength() int       { return 2 + 4*len(a.lines) }
func (a *LineNumberTableAttribute) Length() int                { return attributeHeaderLength + a.AttributeLength() }

func (a *LineNumberTableAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u2(uint16(len(a.lines)))
	for _, l := range a.lines {
		e.node(l)
	}
	return e.done()
}

// Equal compares entries by value.
func (a *LineNumberTableAttribute) Equal(other *LineNumberTableAttribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.nameIndex != other.nameIndex || len(a.lines) != len(other.lines) {
		return false
	}
	for i := range a.lines {
		if !a.lines[i].Equal(other.lines[i]) {
			return false
		}
	}
	return true
}

// MethodParametersAttribute describes the formal parameters of a method.
//
// MethodParametersAttribute is mutable and NOT safe for concurrent use.
type MethodParametersAttribute struct {
	parameters []*Parameter
	nameIndex  uint16
}

// NewMethodParametersAttribute creates a MethodParameters attribute.
func NewMethodParametersAttribute(nameIndex int, parameters ...*Parameter) (*MethodParametersAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return nil, err
	}
	a := &MethodParametersAttribute{nameIndex: uint16(nameIndex)}
	for _, p := range parameters {
		if err := a.AddParameter(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// AddParameter appends p. The attribute takes ownership of p.
func (a *MethodParametersAttribute) AddParameter(p *Parameter) error {
	if p == nil {
		return errors.NilValue(errors.PhaseValidate, []string{"parameters"}, "Parameter")
	}
	if err := checkCount("parameters", len(a.parameters)+1, MaxU1); err != nil {
		return err
	}
	a.parameters = append(a.parameters, p)
	return nil
}

// Parameters returns the entries in order.
func (a *MethodParametersAttribute) Parameters() []*Parameter {
	out := make([]*Parameter, len(a.parameters))
	copy(out, a.parameters)
	return out
}

// Copy returns a deep copy.
func (a *MethodParametersAttribute) Copy() *MethodParametersAttribute {
	c := &MethodParametersAttribute{nameIndex: a.nameIndex, parameters: make([]*Parameter, len(a.parameters))}
	for i, p := range a.parameters {
		c.parameters[i] = p.Copy()
	}
	return c
}

func (a *MethodParametersAttribute) Name() string               { return AttrMethodParameters }
func (a *MethodParametersAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a *MethodParametersAttribute) AttributeLength() int       { return 1 + 4*len(a.parameters) }
func (a *MethodParametersAttribute) Length() int                { return attributeHeaderLength + a.AttributeLength() }

func (a *MethodParametersAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u1(uint8(len(a.parameters)))
	for _, p := range a.parameters {
		e.node(p)
	}
	return e.done()
}

// Equal compares entries by value.
func (a *MethodParametersAttribute) Equal(other *MethodParametersAttribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.nameIndex != other.nameIndex || len(a.parameters) != len(other.parameters) {
		return false
	}
	for i := range a.parameters {
		if !a.parameters[i].Equal(other.parameters[i]) {
			return false
		}
	}
	return true
}

// AnnotationsAttribute is a RuntimeVisibleAnnotations or
// RuntimeInvisibleAnnotations attribute.
type AnnotationsAttribute struct {
	annotations []Annotation
	nameIndex   uint16
	visible     bool
}

// NewAnnotationsAttribute creates a RuntimeVisibleAnnotations attribute when
// visible is true and a RuntimeInvisibleAnnotations attribute otherwise.
func NewAnnotationsAttribute(nameIndex int, visible bool, annotations ...Annotation) (AnnotationsAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return AnnotationsAttribute{}, err
	}
	if err := checkCount("annotations", len(annotations), MaxU2); err != nil {
		return AnnotationsAttribute{}, err
	}
	for _, an := range annotations {
		if err := checkAnnotation("annotations", an); err != nil {
			return AnnotationsAttribute{}, err
		}
	}
	a := AnnotationsAttribute{nameIndex: uint16(nameIndex), visible: visible}
	if len(annotations) > 0 {
		a.annotations = make([]Annotation, len(annotations))
		copy(a.annotations, annotations)
	}
	return a, nil
}

// Visible reports whether the annotations are visible at run time.
func (a AnnotationsAttribute) Visible() bool { return a.visible }

// Annotations returns a copy of the annotations in order.
func (a AnnotationsAttribute) Annotations() []Annotation {
	if len(a.annotations) == 0 {
		return nil
	}
	out := make([]Annotation, len(a.annotations))
	copy(out, a.annotations)
	return out
}

func (a AnnotationsAttribute) Name() string {
	if a.visible {
		return AttrRuntimeVisibleAnnotations
	}
	return AttrRuntimeInvisibleAnnotations
}

func (a AnnotationsAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a AnnotationsAttribute) AttributeLength() int       { return 2 + annotationsLength(a.annotations) }
func (a AnnotationsAttribute) Length() int                { return attributeHeaderLength + a.AttributeLength() }

func (a AnnotationsAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u2(uint16(len(a.annotations)))
	for _, an := range a.annotations {
		e.node(an)
	}
	return e.done()
}

// Equal reports whether both attributes have the same kind and annotations.
func (a AnnotationsAttribute) Equal(other AnnotationsAttribute) bool {
	return a.nameIndex == other.nameIndex && a.visible == other.visible &&
		annotationsEqual(a.annotations, other.annotations)
}

// ParameterAnnotationsAttribute is a RuntimeVisibleParameterAnnotations or
// RuntimeInvisibleParameterAnnotations attribute.
//
// ParameterAnnotationsAttribute is mutable through its ParameterAnnotation
// entries and NOT safe for concurrent use.
type ParameterAnnotationsAttribute struct {
	parameters []*ParameterAnnotation
	nameIndex  uint16
	visible    bool
}

// NewParameterAnnotationsAttribute creates a parameter annotations
// attribute. The attribute takes ownership of parameters.
func NewParameterAnnotationsAttribute(nameIndex int, visible bool, parameters ...*ParameterAnnotation) (*ParameterAnnotationsAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return nil, err
	}
	if err := checkCount("parameter_annotations", len(parameters), MaxU1); err != nil {
		return nil, err
	}
	for _, p := range parameters {
		if p == nil {
			return nil, errors.NilValue(errors.PhaseValidate, []string{"parameter_annotations"}, "ParameterAnnotation")
		}
	}
	a := &ParameterAnnotationsAttribute{nameIndex: uint16(nameIndex), visible: visible}
	a.parameters = make([]*ParameterAnnotation, len(parameters))
	copy(a.parameters, parameters)
	return a, nil
}

// Visible reports whether the annotations are visible at run time.
func (a *ParameterAnnotationsAttribute) Visible() bool { return a.visible }

// Parameters returns the per-parameter entries in order.
func (a *ParameterAnnotationsAttribute) Parameters() []*ParameterAnnotation {
	out := make([]*ParameterAnnotation, len(a.parameters))
	copy(out, a.parameters)
	return out
}

// Copy returns a deep copy.
func (a *ParameterAnnotationsAttribute) Copy() *ParameterAnnotationsAttribute {
	c := &ParameterAnnotationsAttribute{
		nameIndex:  a.nameIndex,
		visible:    a.visible,
		parameters: make([]*ParameterAnnotation, len(a.parameters)),
	}
	for i, p := range a.parameters {
		c.parameters[i] = p.Copy()
	}
	return c
}

func (a *ParameterAnnotationsAttribute) Name() string {
	if a.visible {
		return AttrRuntimeVisibleParameterAnnotations
	}
	return AttrRuntimeInvisibleParameterAnnotations
}

func (a *ParameterAnnotationsAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a *ParameterAnnotationsAttribute) Length() int {
	return attributeHeaderLength + a.AttributeLength()
}

func (a *ParameterAnnotationsAttribute) AttributeLength() int {
	n := 1
	for _, p := range a.parameters {
		n += p.Length()
	}
	return n
}

func (a *ParameterAnnotationsAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.u1(uint8(len(a.parameters)))
	for _, p := range a.parameters {
		e.node(p)
	}
	return e.done()
}

// Equal compares entries by value.
func (a *ParameterAnnotationsAttribute) Equal(other *ParameterAnnotationsAttribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.nameIndex != other.nameIndex || a.visible != other.visible || len(a.parameters) != len(other.parameters) {
		return false
	}
	for i := range a.parameters {
		if !a.parameters[i].Equal(other.parameters[i]) {
			return false
		}
	}
	return true
}

// AnnotationDefaultAttribute holds the default value of an annotation
// interface element.
type AnnotationDefaultAttribute struct {
	value     ElementValue
	nameIndex uint16
}

// NewAnnotationDefaultAttribute creates an AnnotationDefault attribute.
func NewAnnotationDefaultAttribute(nameIndex int, value ElementValue) (AnnotationDefaultAttribute, error) {
	if err := checkIndex("attribute_name_index", nameIndex); err != nil {
		return AnnotationDefaultAttribute{}, err
	}
	if err := checkElementValue("default_value", value); err != nil {
		return AnnotationDefaultAttribute{}, err
	}
	return AnnotationDefaultAttribute{nameIndex: uint16(nameIndex), value: value}, nil
}

// DefaultValue returns the default element value.
func (a AnnotationDefaultAttribute) DefaultValue() ElementValue { return a.value }

func (a AnnotationDefaultAttribute) Name() string               { return AttrAnnotationDefault }
func (a AnnotationDefaultAttribute) AttributeNameIndex() uint16 { return a.nameIndex }
func (a AnnotationDefaultAttribute) AttributeLength() int       { return a.value.Length() }
func (a AnnotationDefaultAttribute) Length() int                { return attributeHeaderLength + a.AttributeLength() }

func (a AnnotationDefaultAttribute) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.header(a)
	e.node(a.value)
	return e.done()
}

// Equal compares by value.
func (a AnnotationDefaultAttribute) Equal(other AnnotationDefaultAttribute) bool {
	return a.nameIndex == other.nameIndex && a.value.Equal(other.value)
}
