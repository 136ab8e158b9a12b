package classfile

import (
	jvmclassfile "github.com/wippyai/jvm-classfile"
)

// VerificationTypeInfo describes the type of one local variable or operand
// stack slot. The interface is sealed; the variants below are the only
// implementations, and all of them are comparable with ==.
type VerificationTypeInfo interface {
	Node
	Tag() VerificationTag
	verificationTypeInfo()
}

// TopVariableInfo is the top type.
type TopVariableInfo struct{}

// IntegerVariableInfo is the int type.
type IntegerVariableInfo struct{}

// FloatVariableInfo is the float type.
type FloatVariableInfo struct{}

// DoubleVariableInfo is the double type.
type DoubleVariableInfo struct{}

// LongVariableInfo is the long type.
type LongVariableInfo struct{}

// NullVariableInfo is the null type.
type NullVariableInfo struct{}

// UninitializedThisVariableInfo is the type of this before the super
// constructor has run.
type UninitializedThisVariableInfo struct{}

// ObjectVariableInfo is a class type named by a CONSTANT_Class_info entry.
type ObjectVariableInfo struct {
	cpoolIndex uint16
}

// UninitializedVariableInfo is an object created by the new instruction at
// Offset that has not been initialized yet.
type UninitializedVariableInfo struct {
	offset uint16
}

// NewObjectVariableInfo creates an Object_variable_info. cpoolIndex must be
// a valid constant-pool index.
func NewObjectVariableInfo(cpoolIndex int) (ObjectVariableInfo, error) {
	if err := checkIndex("cpool_index", cpoolIndex); err != nil {
		return ObjectVariableInfo{}, err
	}
	return ObjectVariableInfo{cpoolIndex: uint16(cpoolIndex)}, nil
}

// NewUninitializedVariableInfo creates an Uninitialized_variable_info.
func NewUninitializedVariableInfo(offset int) (UninitializedVariableInfo, error) {
	if err := checkU2("offset", offset); err != nil {
		return UninitializedVariableInfo{}, err
	}
	return UninitializedVariableInfo{offset: uint16(offset)}, nil
}

// VerificationTypeOf returns the payload-free variant for tag. It reports
// false for Object, Uninitialized and unknown tags.
func VerificationTypeOf(tag VerificationTag) (VerificationTypeInfo, bool) {
	switch tag {
	case ItemTop:
		return TopVariableInfo{}, true
	case ItemInteger:
		return IntegerVariableInfo{}, true
	case ItemFloat:
		return FloatVariableInfo{}, true
	case ItemDouble:
		return DoubleVariableInfo{}, true
	case ItemLong:
		return LongVariableInfo{}, true
	case ItemNull:
		return NullVariableInfo{}, true
	case ItemUninitializedThis:
		return UninitializedThisVariableInfo{}, true
	}
	return nil, false
}

// CPoolIndex returns the constant-pool index of the class.
func (v ObjectVariableInfo) CPoolIndex() uint16 { return v.cpoolIndex }

// Offset returns the bytecode offset of the new instruction.
func (v UninitializedVariableInfo) Offset() uint16 { return v.offset }

func (TopVariableInfo) Tag() VerificationTag               { return ItemTop }
func (IntegerVariableInfo) Tag() VerificationTag           { return ItemInteger }
func (FloatVariableInfo) Tag() VerificationTag             { return ItemFloat }
func (DoubleVariableInfo) Tag() VerificationTag            { return ItemDouble }
func (LongVariableInfo) Tag() VerificationTag              { return ItemLong }
func (NullVariableInfo) Tag() VerificationTag              { return ItemNull }
func (UninitializedThisVariableInfo) Tag() VerificationTag { return ItemUninitializedThis }
func (ObjectVariableInfo) Tag() VerificationTag            { return ItemObject }
func (UninitializedVariableInfo) Tag() VerificationTag     { return ItemUninitialized }

func (TopVariableInfo) Length() int               { return 1 }
func (IntegerVariableInfo) Length() int           { return 1 }
func (FloatVariableInfo) Length() int             { return 1 }
func (DoubleVariableInfo) Length() int            { return 1 }
func (LongVariableInfo) Length() int              { return 1 }
func (NullVariableInfo) Length() int              { return 1 }
func (UninitializedThisVariableInfo) Length() int { return 1 }
func (ObjectVariableInfo) Length() int            { return 3 }
func (UninitializedVariableInfo) Length() int     { return 3 }

func (v TopVariableInfo) Write(s jvmclassfile.Sink) error     { return writeTag(s, v) }
func (v IntegerVariableInfo) Write(s jvmclassfile.Sink) error { return writeTag(s, v) }
func (v FloatVariableInfo) Write(s jvmclassfile.Sink) error   { return writeTag(s, v) }
func (v DoubleVariableInfo) Write(s jvmclassfile.Sink) error  { return writeTag(s, v) }
func (v LongVariableInfo) Write(s jvmclassfile.Sink) error    { return writeTag(s, v) }
func (v NullVariableInfo) Write(s jvmclassfile.Sink) error    { return writeTag(s, v) }

func (v UninitializedThisVariableInfo) Write(s jvmclassfile.Sink) error {
	return writeTag(s, v)
}

func (v ObjectVariableInfo) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(uint8(ItemObject))
	e.u2(v.cpoolIndex)
	return e.done()
}

func (v UninitializedVariableInfo) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u1(uint8(ItemUninitialized))
	e.u2(v.offset)
	return e.done()
}

func writeTag(s jvmclassfile.Sink, v VerificationTypeInfo) error {
	e := newEncoder(s)
	e.u1(uint8(v.Tag()))
	return e.done()
}

func (TopVariableInfo) verificationTypeInfo()               {}
func (IntegerVariableInfo) verificationTypeInfo()           {}
func (FloatVariableInfo) verificationTypeInfo()             {}
func (DoubleVariableInfo) verificationTypeInfo()            {}
func (LongVariableInfo) verificationTypeInfo()              {}
func (NullVariableInfo) verificationTypeInfo()              {}
func (UninitializedThisVariableInfo) verificationTypeInfo() {}
func (ObjectVariableInfo) verificationTypeInfo()            {}
func (UninitializedVariableInfo) verificationTypeInfo()     {}

func verificationTypesLength(items []VerificationTypeInfo) int {
	n := 0
	for _, item := range items {
		n += item.Length()
	}
	return n
}

func verificationTypesEqual(a, b []VerificationTypeInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneVerificationTypes(items []VerificationTypeInfo) []VerificationTypeInfo {
	if len(items) == 0 {
		return nil
	}
	out := make([]VerificationTypeInfo, len(items))
	copy(out, items)
	return out
}
