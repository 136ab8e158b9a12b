package classfile

import (
	"github.com/wippyai/jvm-classfile/errors"
)

func checkRange(field string, v, min, max int) error {
	if v < min || v > max {
		return errors.OutOfRange(errors.PhaseValidate, []string{field}, v, min, max)
	}
	return nil
}

// checkIndex validates a constant-pool index.
func checkIndex(field string, v int) error {
	return checkRange(field, v, 1, MaxU2)
}

func checkU2(field string, v int) error {
	return checkRange(field, v, 0, MaxU2)
}

func checkCount(field string, n, max int) error {
	if n > max {
		return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
			Path(field).
			Value(n).
			Detail("%d entries exceed count limit %d", n, max).
			Build()
	}
	return nil
}

func checkVerificationTypes(field string, items []VerificationTypeInfo) error {
	if err := checkCount(field, len(items), MaxU2); err != nil {
		return err
	}
	for _, item := range items {
		if err := checkVerificationType(field, item); err != nil {
			return err
		}
	}
	return nil
}

func checkVerificationType(field string, v VerificationTypeInfo) error {
	switch v := v.(type) {
	case nil:
		return errors.NilValue(errors.PhaseValidate, []string{field}, "VerificationTypeInfo")
	case ObjectVariableInfo:
		return checkIndex("cpool_index", int(v.cpoolIndex))
	}
	return nil
}

// checkUnion validates the payload itself. Composite payloads only exist
// through validating constructors, so a shallow check covers them.
func checkUnion(field string, u Union) error {
	switch u := u.(type) {
	case nil:
		return errors.NilValue(errors.PhaseValidate, []string{field}, "Union")
	case ConstValueIndexUnion:
		return checkIndex("const_value_index", int(u.constValueIndex))
	case EnumConstValueUnion:
		if err := checkIndex("type_name_index", int(u.typeNameIndex)); err != nil {
			return err
		}
		return checkIndex("const_name_index", int(u.constNameIndex))
	case ClassInfoIndexUnion:
		return checkIndex("class_info_index", int(u.classInfoIndex))
	case AnnotationValueUnion:
		return checkAnnotation("annotation_value", u.annotation)
	}
	return nil
}

func checkFrame(field string, f StackMapFrame) error {
	switch f := f.(type) {
	case nil:
		return errors.NilValue(errors.PhaseValidate, []string{field}, "StackMapFrame")
	case SameFrame:
		return checkFrameType(int(f.frameType), SameFrameMin, SameFrameMax)
	case SameLocals1StackItemFrame:
		if err := checkFrameType(int(f.frameType), SameLocals1StackItemFrameMin, SameLocals1StackItemFrameMax); err != nil {
			return err
		}
		return checkStackItem(f.stack)
	case SameLocals1StackItemFrameExtended:
		return checkStackItem(f.stack)
	case ChopFrame:
		return checkFrameType(int(f.frameType), ChopFrameMin, ChopFrameMax)
	case AppendFrame:
		if err := checkFrameType(int(f.frameType), AppendFrameMin, AppendFrameMax); err != nil {
			return err
		}
		if want := int(f.frameType) - SameFrameExtendedType; len(f.locals) != want {
			return errors.SizeMismatch(errors.PhaseValidate, []string{"locals"}, len(f.locals), want)
		}
	}
	return nil
}

// checkNode rejects zero values and nil pointers that did not come from a
// constructor. Children of a valid node were validated when it was built.
func checkNode(n Node) error {
	switch n := n.(type) {
	case nil:
		return errors.NilValue(errors.PhaseValidate, nil, "Node")
	case VerificationTypeInfo:
		return checkVerificationType("node", n)
	case StackMapFrame:
		return checkFrame("node", n)
	case Union:
		return checkUnion("node", n)
	case ElementValue:
		return checkElementValue("node", n)
	case ElementValuePair:
		if err := checkIndex("element_name_index", int(n.elementNameIndex)); err != nil {
			return err
		}
		return checkElementValue("value", n.value)
	case Annotation:
		return checkAnnotation("node", n)
	case *ParameterAnnotation:
		return checkNotNilPointer(n == nil, "ParameterAnnotation")
	case *LineNumber:
		return checkNotNilPointer(n == nil, "LineNumber")
	case *Parameter:
		return checkNotNilPointer(n == nil, "Parameter")
	case *SourceFileAttribute:
		if n == nil {
			return checkNotNilPointer(true, "SourceFileAttribute")
		}
		if err := checkIndex("sourcefile_index", int(n.sourceFileIndex)); err != nil {
			return err
		}
	case *UnimplementedAttribute:
		if err := checkNotNilPointer(n == nil, "UnimplementedAttribute"); err != nil {
			return err
		}
	case *LineNumberTableAttribute:
		if err := checkNotNilPointer(n == nil, "LineNumberTableAttribute"); err != nil {
			return err
		}
	case *MethodParametersAttribute:
		if err := checkNotNilPointer(n == nil, "MethodParametersAttribute"); err != nil {
			return err
		}
	case *ParameterAnnotationsAttribute:
		if err := checkNotNilPointer(n == nil, "ParameterAnnotationsAttribute"); err != nil {
			return err
		}
	case AnnotationDefaultAttribute:
		if err := checkElementValue("default_value", n.value); err != nil {
			return err
		}
	}
	if a, ok := n.(Attribute); ok {
		return checkIndex("attribute_name_index", int(a.AttributeNameIndex()))
	}
	return nil
}

func checkNotNilPointer(isNil bool, typ string) error {
	if isNil {
		return errors.NilValue(errors.PhaseValidate, nil, typ)
	}
	return nil
}
