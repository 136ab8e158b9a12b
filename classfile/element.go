package classfile

import (
	jvmclassfile "github.com/wippyai/jvm-classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

// Union is the payload of an element_value. The interface is sealed; which
// variant an ElementValue may carry is fixed by its tag.
type Union interface {
	Node
	Equal(other Union) bool
	union()
}

// ConstValueIndexUnion points at the constant of a primitive or String
// element value.
type ConstValueIndexUnion struct {
	constValueIndex uint16
}

// EnumConstValueUnion names an enum constant by its type descriptor and
// simple name.
type EnumConstValueUnion struct {
	typeNameIndex  uint16
	constNameIndex uint16
}

// ClassInfoIndexUnion points at the return descriptor of a class literal.
type ClassInfoIndexUnion struct {
	classInfoIndex uint16
}

// AnnotationValueUnion nests an annotation.
type AnnotationValueUnion struct {
	annotation Annotation
}

// ArrayValueUnion is an ordered list of element values. Order is the order
// of the array elements in source and is preserved by every operation.
type ArrayValueUnion struct {
	values []ElementValue
}

// NewConstValueIndexUnion creates a const_value_index payload.
func NewConstValueIndexUnion(constValueIndex int) (ConstValueIndexUnion, error) {
	if err := checkIndex("const_value_index", constValueIndex); err != nil {
		return ConstValueIndexUnion{}, err
	}
	return ConstValueIndexUnion{constValueIndex: uint16(constValueIndex)}, nil
}

// NewEnumConstValueUnion creates an enum_const_value payload.
func NewEnumConstValueUnion(typeNameIndex, constNameIndex int) (EnumConstValueUnion, error) {
	if err := checkIndex("type_name_index", typeNameIndex); err != nil {
		return EnumConstValueUnion{}, err
	}
	if err := checkIndex("const_name_index", constNameIndex); err != nil {
		return EnumConstValueUnion{}, err
	}
	return EnumConstValueUnion{
		typeNameIndex:  uint16(typeNameIndex),
		constNameIndex: uint16(constNameIndex),
	}, nil
}

// NewClassInfoIndexUnion creates a class_info_index payload.
func NewClassInfoIndexUnion(classInfoIndex int) (ClassInfoIndexUnion, error) {
	if err := checkIndex("class_info_index", classInfoIndex); err != nil {
		return ClassInfoIndexUnion{}, err
	}
	return ClassInfoIndexUnion{classInfoIndex: uint16(classInfoIndex)}, nil
}

// NewAnnotationValueUnion creates an annotation_value payload.
func NewAnnotationValueUnion(a Annotation) (AnnotationValueUnion, error) {
	if err := checkAnnotation("annotation_value", a); err != nil {
		return AnnotationValueUnion{}, err
	}
	return AnnotationValueUnion{annotation: a}, nil
}

// NewArrayValueUnion creates an array_value payload holding values in order.
func NewArrayValueUnion(values ...ElementValue) (ArrayValueUnion, error) {
	return ArrayValueUnion{}.Append(values...)
}

// ConstValueIndex returns the constant-pool index of the constant.
func (u ConstValueIndexUnion) ConstValueIndex() uint16 { return u.constValueIndex }

// TypeNameIndex returns the constant-pool index of the enum type descriptor.
func (u EnumConstValueUnion) TypeNameIndex() uint16 { return u.typeNameIndex }

// ConstNameIndex returns the constant-pool index of the constant's name.
func (u EnumConstValueUnion) ConstNameIndex() uint16 { return u.constNameIndex }

// ClassInfoIndex returns the constant-pool index of the return descriptor.
func (u ClassInfoIndexUnion) ClassInfoIndex() uint16 { return u.classInfoIndex }

// Annotation returns the nested annotation.
func (u AnnotationValueUnion) Annotation() Annotation { return u.annotation }

// NumValues returns the number of array elements.
func (u ArrayValueUnion) NumValues() int { return len(u.values) }

// Values returns a copy of the array elements in order.
func (u ArrayValueUnion) Values() []ElementValue {
	if len(u.values) == 0 {
		return nil
	}
	out := make([]ElementValue, len(u.values))
	copy(out, u.values)
	return out
}

// Append returns a new array with values added after the existing elements.
// The receiver is left unchanged.
func (u ArrayValueUnion) Append(values ...ElementValue) (ArrayValueUnion, error) {
	if err := checkCount("values", len(u.values)+len(values), MaxU2); err != nil {
		return ArrayValueUnion{}, err
	}
	for _, v := range values {
		if err := checkElementValue("values", v); err != nil {
			return ArrayValueUnion{}, err
		}
	}
	out := make([]ElementValue, 0, len(u.values)+len(values))
	out = append(out, u.values...)
	out = append(out, values...)
	return ArrayValueUnion{values: out}, nil
}

// Map returns a new array holding fn applied to each element, in order.
func (u ArrayValueUnion) Map(fn func(ElementValue) (ElementValue, error)) (ArrayValueUnion, error) {
	out := make([]ElementValue, len(u.values))
	for i, v := range u.values {
		mapped, err := fn(v)
		if err != nil {
			return ArrayValueUnion{}, err
		}
		if err := checkElementValue("values", mapped); err != nil {
			return ArrayValueUnion{}, err
		}
		out[i] = mapped
	}
	return ArrayValueUnion{values: out}, nil
}

func (ConstValueIndexUnion) Length() int   { return 2 }
func (EnumConstValueUnion) Length() int    { return 4 }
func (ClassInfoIndexUnion) Length() int    { return 2 }
func (u AnnotationValueUnion) Length() int { return u.annotation.Length() }

// Length counts num_values and every element.
func (u ArrayValueUnion) Length() int {
	n := 2
	for _, v := range u.values {
		n += v.Length()
	}
	return n
}

func (u ConstValueIndexUnion) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(u.constValueIndex)
	return e.done()
}

func (u EnumConstValueUnion) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(u.typeNameIndex)
	e.u2(u.constNameIndex)
	return e.done()
}

func (u ClassInfoIndexUnion) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(u.classInfoIndex)
	return e.done()
}

func (u AnnotationValueUnion) Write(s jvmclassfile.Sink) error {
	return u.annotation.Write(s)
}

func (u ArrayValueUnion) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(uint16(len(u.values)))
	for _, v := range u.values {
		e.node(v)
	}
	return e.done()
}

func (u ConstValueIndexUnion) Equal(other Union) bool {
	o, ok := other.(ConstValueIndexUnion)
	return ok && u == o
}

func (u EnumConstValueUnion) Equal(other Union) bool {
	o, ok := other.(EnumConstValueUnion)
	return ok && u == o
}

func (u ClassInfoIndexUnion) Equal(other Union) bool {
	o, ok := other.(ClassInfoIndexUnion)
	return ok && u == o
}

func (u AnnotationValueUnion) Equal(other Union) bool {
	o, ok := other.(AnnotationValueUnion)
	return ok && u.annotation.Equal(o.annotation)
}

func (u ArrayValueUnion) Equal(other Union) bool {
	o, ok := other.(ArrayValueUnion)
	if !ok || len(u.values) != len(o.values) {
		return false
	}
	for i := range u.values {
		if !u.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

func (ConstValueIndexUnion) union() {}
func (EnumConstValueUnion) union()  {}
func (ClassInfoIndexUnion) union()  {}
func (AnnotationValueUnion) union() {}
func (ArrayValueUnion) union()      {}

// ElementValue is a tagged annotation element value. The zero value is not
// valid; use NewElementValue or one of the typed constructors.
type ElementValue struct {
	value Union
	tag   ElementTag
}

// NewElementValue pairs tag with value. The tag decides which Union variant
// is legal:
//
//	@                    AnnotationValueUnion
//	[                    ArrayValueUnion
//	B C D F I J S Z s    ConstValueIndexUnion
//	c                    ClassInfoIndexUnion
//	e                    EnumConstValueUnion
func NewElementValue(tag ElementTag, value Union) (ElementValue, error) {
	if err := checkUnion("value", value); err != nil {
		return ElementValue{}, err
	}
	if !tag.IsValid() {
		return ElementValue{}, errors.InvalidTag(errors.PhaseValidate, []string{"tag"}, int(tag), "element_value")
	}

	var ok bool
	switch value.(type) {
	case ConstValueIndexUnion:
		ok = tag.IsConst()
	case EnumConstValueUnion:
		ok = tag == TagEnum
	case ClassInfoIndexUnion:
		ok = tag == TagClass
	case AnnotationValueUnion:
		ok = tag == TagAnnotation
	case ArrayValueUnion:
		ok = tag == TagArray
	}
	if !ok {
		return ElementValue{}, errors.TagMismatch(errors.PhaseValidate, []string{"tag"}, byte(tag), unionName(value))
	}
	return ElementValue{tag: tag, value: value}, nil
}

// NewConstElementValue creates a primitive or String element value.
func NewConstElementValue(tag ElementTag, constValueIndex int) (ElementValue, error) {
	u, err := NewConstValueIndexUnion(constValueIndex)
	if err != nil {
		return ElementValue{}, err
	}
	return NewElementValue(tag, u)
}

// NewEnumElementValue creates an enum constant element value.
func NewEnumElementValue(typeNameIndex, constNameIndex int) (ElementValue, error) {
	u, err := NewEnumConstValueUnion(typeNameIndex, constNameIndex)
	if err != nil {
		return ElementValue{}, err
	}
	return NewElementValue(TagEnum, u)
}

// NewClassElementValue creates a class literal element value.
func NewClassElementValue(classInfoIndex int) (ElementValue, error) {
	u, err := NewClassInfoIndexUnion(classInfoIndex)
	if err != nil {
		return ElementValue{}, err
	}
	return NewElementValue(TagClass, u)
}

// NewAnnotationElementValue creates a nested annotation element value.
func NewAnnotationElementValue(a Annotation) (ElementValue, error) {
	u, err := NewAnnotationValueUnion(a)
	if err != nil {
		return ElementValue{}, err
	}
	return NewElementValue(TagAnnotation, u)
}

// NewArrayElementValue creates an array element value.
func NewArrayElementValue(values ...ElementValue) (ElementValue, error) {
	u, err := NewArrayValueUnion(values...)
	if err != nil {
		return ElementValue{}, err
	}
	return NewElementValue(TagArray, u)
}

// Tag returns the element_value tag.
func (v ElementValue) Tag() ElementTag { return v.tag }

// Value returns the payload.
func (v ElementValue) Value() Union { return v.value }

// Length counts the tag byte and the payload.
func (v ElementValue) Length() int { return 1 + lengthOf(v.value) }

func (v ElementValue) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(uint8(v.tag))
	e.node(v.value)
	return e.done()
}

// Equal reports whether both values have the same tag and equal payloads.
func (v ElementValue) Equal(other ElementValue) bool {
	if v.tag != other.tag {
		return false
	}
	if v.value == nil || other.value == nil {
		return v.value == nil && other.value == nil
	}
	return v.value.Equal(other.value)
}

func checkElementValue(field string, v ElementValue) error {
	if v.value == nil {
		return errors.NilValue(errors.PhaseValidate, []string{field}, "ElementValue")
	}
	return nil
}

func unionName(u Union) string {
	switch u.(type) {
	case ConstValueIndexUnion:
		return "ConstValueIndexUnion"
	case EnumConstValueUnion:
		return "EnumConstValueUnion"
	case ClassInfoIndexUnion:
		return "ClassInfoIndexUnion"
	case AnnotationValueUnion:
		return "AnnotationValueUnion"
	case ArrayValueUnion:
		return "ArrayValueUnion"
	default:
		return "Union"
	}
}

// ElementValuePair is one name=value entry of an annotation.
type ElementValuePair struct {
	value            ElementValue
	elementNameIndex uint16
}

// NewElementValuePair creates an element_value_pair.
func NewElementValuePair(elementNameIndex int, value ElementValue) (ElementValuePair, error) {
	if err := checkIndex("element_name_index", elementNameIndex); err != nil {
		return ElementValuePair{}, err
	}
	if err := checkElementValue("value", value); err != nil {
		return ElementValuePair{}, err
	}
	return ElementValuePair{elementNameIndex: uint16(elementNameIndex), value: value}, nil
}

// ElementNameIndex returns the constant-pool index of the element name.
func (p ElementValuePair) ElementNameIndex() uint16 { return p.elementNameIndex }

// Value returns the element value.
func (p ElementValuePair) Value() ElementValue { return p.value }

// Length counts element_name_index and the value.
func (p ElementValuePair) Length() int { return 2 + p.value.Length() }

func (p ElementValuePair) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(p.elementNameIndex)
	e.node(p.value)
	return e.done()
}

// Equal reports whether both pairs have the same name and equal values.
func (p ElementValuePair) Equal(other ElementValuePair) bool {
	return p.elementNameIndex == other.elementNameIndex && p.value.Equal(other.value)
}
