package classfile

import (
	stderrors "errors"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/jvm-classfile/classfile/internal/binary"
	"github.com/wippyai/jvm-classfile/errors"
)

const (
	// maxNesting bounds element_value recursion through arrays and nested
	// annotations.
	maxNesting = 256

	maxAttributeLength = int(^uint(0) >> 1)

	maxPrealloc = 256
)

// NameResolver maps an attribute_name_index to the attribute name stored
// in the constant pool.
type NameResolver func(index uint16) (string, bool)

// MapNames returns a resolver backed by names. The map is not copied.
func MapNames(names map[uint16]string) NameResolver {
	return func(index uint16) (string, bool) {
		name, ok := names[index]
		return name, ok
	}
}

// Decoder reads class-file structures from a big-endian stream. Every
// structure goes through its validating constructor, so decoded values
// satisfy the same invariants as constructed ones.
//
// A Decoder is NOT safe for concurrent use.
type Decoder struct {
	r     *binary.Reader
	names NameResolver
	depth int
}

// NewDecoder returns a decoder reading from r. names may be nil, in which
// case every attribute decodes as an UnimplementedAttribute.
func NewDecoder(r io.Reader, names NameResolver) *Decoder {
	return &Decoder{r: binary.NewReader(r), names: names}
}

// Position returns the number of bytes consumed so far.
func (d *Decoder) Position() int {
	return d.r.Position()
}

func (d *Decoder) VerificationTypeInfo() (VerificationTypeInfo, error) {
	v, err := d.verificationTypeInfo()
	return v, d.wrap("verification_type_info", err)
}

func (d *Decoder) StackMapFrame() (StackMapFrame, error) {
	f, err := d.stackMapFrame()
	return f, d.wrap("stack_map_frame", err)
}

func (d *Decoder) ElementValue() (ElementValue, error) {
	v, err := d.elementValue()
	return v, d.wrap("element_value", err)
}

func (d *Decoder) ElementValuePair() (ElementValuePair, error) {
	p, err := d.elementValuePair()
	return p, d.wrap("element_value_pair", err)
}

func (d *Decoder) Annotation() (Annotation, error) {
	a, err := d.annotation()
	return a, d.wrap("annotation", err)
}

func (d *Decoder) ParameterAnnotation() (*ParameterAnnotation, error) {
	p, err := d.parameterAnnotation()
	return p, d.wrap("parameter_annotation", err)
}

func (d *Decoder) LineNumber() (*LineNumber, error) {
	l, err := d.lineNumber()
	return l, d.wrap("line_number", err)
}

func (d *Decoder) Parameter() (*Parameter, error) {
	p, err := d.parameter()
	return p, d.wrap("parameter", err)
}

// Attribute reads one attribute_info. Names the resolver does not know, and
// known names this package does not model, decode to UnimplementedAttribute.
func (d *Decoder) Attribute() (Attribute, error) {
	a, err := d.attribute()
	return a, d.wrap("attribute_info", err)
}

// Attributes reads count consecutive attribute_info structures.
func (d *Decoder) Attributes(count int) ([]Attribute, error) {
	if err := checkRange("attributes_count", count, 0, MaxU2); err != nil {
		return nil, err
	}
	out := make([]Attribute, 0, count)
	for range count {
		a, err := d.Attribute()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// wrap classifies raw read failures and attaches the byte position.
func (d *Decoder) wrap(structure string, err error) error {
	if err == nil {
		return nil
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) {
		switch {
		case stderrors.Is(err, binary.ErrLimit):
			err = errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
				Path(structure).
				Cause(err).
				Detail("structure overruns attribute_length").
				Build()
		case stderrors.Is(err, io.ErrUnexpectedEOF):
			err = errors.Truncated([]string{structure}, err)
		default:
			err = errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "read "+structure)
		}
	}
	return d.r.WrapError(structure, err)
}

func (d *Decoder) u2() (int, error) {
	v, err := d.r.ReadU2()
	return int(v), err
}

func (d *Decoder) verificationTypeInfo() (VerificationTypeInfo, error) {
	tag, err := d.r.ReadU1()
	if err != nil {
		return nil, err
	}
	if v, ok := VerificationTypeOf(VerificationTag(tag)); ok {
		return v, nil
	}

	switch VerificationTag(tag) {
	case ItemObject:
		idx, err := d.u2()
		if err != nil {
			return nil, err
		}
		v, err := NewObjectVariableInfo(idx)
		if err != nil {
			return nil, err
		}
		return v, nil
	case ItemUninitialized:
		off, err := d.u2()
		if err != nil {
			return nil, err
		}
		v, err := NewUninitializedVariableInfo(off)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, errors.InvalidTag(errors.PhaseDecode, []string{"tag"}, int(tag), "verification_type_info")
	}
}

func (d *Decoder) verificationTypes(n int) ([]VerificationTypeInfo, error) {
	if n == 0 {
		return nil, nil
	}
	return readList(d, n, 1, d.verificationTypeInfo)
}

// readList decodes n entries. The count comes from the input, so the
// preallocation is bounded by the bytes left under the active limit and by
// maxPrealloc; the slice grows past that only as entries actually decode.
func readList[T any](d *Decoder, n, minSize int, read func() (T, error)) ([]T, error) {
	size := min(n, maxPrealloc)
	if rem := d.r.Remaining(); rem >= 0 {
		size = min(size, rem/minSize)
	}
	out := make([]T, 0, size)
	for range n {
		v, err := read()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *Decoder) stackMapFrame() (StackMapFrame, error) {
	ft, err := d.r.ReadU1()
	if err != nil {
		return nil, err
	}

	var (
		delta         int
		locals, stack []VerificationTypeInfo
	)
	switch kind := FrameKindOf(ft); kind {
	case FrameSame:
	case FrameSameLocals1StackItem:
		if stack, err = d.verificationTypes(1); err != nil {
			return nil, err
		}
	case FrameReserved:
		return nil, errors.Reserved(errors.PhaseDecode, []string{"frame_type"}, int(ft), "stack_map_frame")
	default:
		if delta, err = d.u2(); err != nil {
			return nil, err
		}
		switch kind {
		case FrameSameLocals1StackItemExtended:
			stack, err = d.verificationTypes(1)
		case FrameAppend:
			locals, err = d.verificationTypes(int(ft) - SameFrameExtendedType)
		case FrameFull:
			var n int
			if n, err = d.u2(); err != nil {
				return nil, err
			}
			if locals, err = d.verificationTypes(n); err != nil {
				return nil, err
			}
			if n, err = d.u2(); err != nil {
				return nil, err
			}
			stack, err = d.verificationTypes(n)
		}
		if err != nil {
			return nil, err
		}
	}
	return NewStackMapFrame(int(ft), delta, locals, stack)
}

func (d *Decoder) elementValue() (ElementValue, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxNesting {
		return ElementValue{}, errors.InvalidData(errors.PhaseDecode, []string{"element_value"}, "element values nested too deeply")
	}

	b, err := d.r.ReadU1()
	if err != nil {
		return ElementValue{}, err
	}
	tag := ElementTag(b)

	switch {
	case tag.IsConst():
		idx, err := d.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return NewConstElementValue(tag, idx)
	case tag == TagEnum:
		typeName, err := d.u2()
		if err != nil {
			return ElementValue{}, err
		}
		constName, err := d.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return NewEnumElementValue(typeName, constName)
	case tag == TagClass:
		idx, err := d.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return NewClassElementValue(idx)
	case tag == TagAnnotation:
		a, err := d.annotation()
		if err != nil {
			return ElementValue{}, err
		}
		return NewAnnotationElementValue(a)
	case tag == TagArray:
		n, err := d.u2()
		if err != nil {
			return ElementValue{}, err
		}
		values, err := readList(d, n, 3, d.elementValue)
		if err != nil {
			return ElementValue{}, err
		}
		return NewArrayElementValue(values...)
	default:
		return ElementValue{}, errors.InvalidTag(errors.PhaseDecode, []string{"tag"}, int(b), "element_value")
	}
}

func (d *Decoder) elementValuePair() (ElementValuePair, error) {
	name, err := d.u2()
	if err != nil {
		return ElementValuePair{}, err
	}
	v, err := d.elementValue()
	if err != nil {
		return ElementValuePair{}, err
	}
	return NewElementValuePair(name, v)
}

func (d *Decoder) annotation() (Annotation, error) {
	typeIndex, err := d.u2()
	if err != nil {
		return Annotation{}, err
	}
	n, err := d.u2()
	if err != nil {
		return Annotation{}, err
	}
	pairs, err := readList(d, n, 5, d.elementValuePair)
	if err != nil {
		return Annotation{}, err
	}
	return NewAnnotation(typeIndex, pairs...)
}

func (d *Decoder) annotations(n int) ([]Annotation, error) {
	return readList(d, n, 4, d.annotation)
}

func (d *Decoder) parameterAnnotation() (*ParameterAnnotation, error) {
	n, err := d.u2()
	if err != nil {
		return nil, err
	}
	as, err := d.annotations(n)
	if err != nil {
		return nil, err
	}
	return NewParameterAnnotation(as...)
}

func (d *Decoder) lineNumber() (*LineNumber, error) {
	pc, err := d.u2()
	if err != nil {
		return nil, err
	}
	line, err := d.u2()
	if err != nil {
		return nil, err
	}
	return NewLineNumber(pc, line)
}

func (d *Decoder) parameter() (*Parameter, error) {
	name, err := d.u2()
	if err != nil {
		return nil, err
	}
	flags, err := d.u2()
	if err != nil {
		return nil, err
	}
	return NewParameter(name, flags)
}

func (d *Decoder) attribute() (Attribute, error) {
	nameIndex, err := d.u2()
	if err != nil {
		return nil, err
	}
	length, err := d.r.ReadU4()
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(maxAttributeLength) {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"attribute_length"}, "attribute_length exceeds addressable size")
	}

	var name string
	known := false
	if d.names != nil {
		name, known = d.names(uint16(nameIndex))
	}

	prev := d.r.Limit(int(length))
	defer d.r.Restore(prev)
	start := d.r.Position()

	var a Attribute
	if known {
		a, err = d.attributeBody(nameIndex, name, int(length))
	} else {
		Logger().Debug("unresolved attribute name",
			zap.Int("name_index", nameIndex),
			zap.Uint32("length", length),
			zap.Int("position", start))
		a, err = d.unimplemented(nameIndex, "", int(length))
	}
	if err != nil {
		return nil, err
	}

	if consumed := d.r.Position() - start; consumed != int(length) {
		return nil, errors.SizeMismatch(errors.PhaseDecode, []string{name, "attribute_length"}, consumed, int(length))
	}
	return a, nil
}

func (d *Decoder) attributeBody(nameIndex int, name string, length int) (Attribute, error) {
	switch name {
	case AttrDeprecated:
		return asAttribute(NewDeprecatedAttribute(nameIndex))
	case AttrSynthetic:
		return asAttribute(NewSyntheticAttribute(nameIndex))

	case AttrSourceFile:
		idx, err := d.u2()
		if err != nil {
			return nil, err
		}
		return asAttribute(NewSourceFileAttribute(nameIndex, idx))

	case AttrStackMapTable:
		n, err := d.u2()
		if err != nil {
			return nil, err
		}
		frames, err := readList(d, n, 1, d.stackMapFrame)
		if err != nil {
			return nil, err
		}
		return asAttribute(NewStackMapTableAttribute(nameIndex, frames...))

	case AttrLineNumberTable:
		n, err := d.u2()
		if err != nil {
			return nil, err
		}
		lines, err := readList(d, n, 4, d.lineNumber)
		if err != nil {
			return nil, err
		}
		return asAttribute(NewLineNumberTableAttribute(nameIndex, lines...))

	case AttrMethodParameters:
		n, err := d.r.ReadU1()
		if err != nil {
			return nil, err
		}
		params, err := readList(d, int(n), 4, d.parameter)
		if err != nil {
			return nil, err
		}
		return asAttribute(NewMethodParametersAttribute(nameIndex, params...))

	case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations:
		n, err := d.u2()
		if err != nil {
			return nil, err
		}
		as, err := d.annotations(n)
		if err != nil {
			return nil, err
		}
		return asAttribute(NewAnnotationsAttribute(nameIndex, name == AttrRuntimeVisibleAnnotations, as...))

	case AttrRuntimeVisibleParameterAnnotations, AttrRuntimeInvisibleParameterAnnotations:
		n, err := d.r.ReadU1()
		if err != nil {
			return nil, err
		}
		params, err := readList(d, int(n), 2, d.parameterAnnotation)
		if err != nil {
			return nil, err
		}
		return asAttribute(NewParameterAnnotationsAttribute(nameIndex, name == AttrRuntimeVisibleParameterAnnotations, params...))

	case AttrAnnotationDefault:
		v, err := d.elementValue()
		if err != nil {
			return nil, err
		}
		return asAttribute(NewAnnotationDefaultAttribute(nameIndex, v))
	}

	Logger().Debug("keeping attribute opaque",
		zap.String("name", name),
		zap.Int("name_index", nameIndex),
		zap.Int("length", length))
	return d.unimplemented(nameIndex, name, length)
}

func (d *Decoder) unimplemented(nameIndex int, name string, length int) (Attribute, error) {
	info, err := d.r.ReadBytes(length)
	if err != nil {
		return nil, err
	}
	return asAttribute(NewUnimplementedAttribute(nameIndex, name, info))
}

func asAttribute[A Attribute](a A, err error) (Attribute, error) {
	if err != nil {
		return nil, err
	}
	return a, nil
}
