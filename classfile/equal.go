package classfile

import (
	"github.com/zeebo/blake3"

	"github.com/wippyai/jvm-classfile/classfile/internal/binary"
)

// Equal reports whether a and b are the same kind of node with equal
// content. Mutable nodes are compared by value, not identity.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case VerificationTypeInfo:
		return a == b
	case StackMapFrame:
		o, ok := b.(StackMapFrame)
		return ok && a.Equal(o)
	case Union:
		o, ok := b.(Union)
		return ok && a.Equal(o)
	case ElementValue:
		o, ok := b.(ElementValue)
		return ok && a.Equal(o)
	case ElementValuePair:
		o, ok := b.(ElementValuePair)
		return ok && a.Equal(o)
	case Annotation:
		o, ok := b.(Annotation)
		return ok && a.Equal(o)
	case *ParameterAnnotation:
		o, ok := b.(*ParameterAnnotation)
		return ok && a.Equal(o)
	case *LineNumber:
		o, ok := b.(*LineNumber)
		return ok && a.Equal(o)
	case *Parameter:
		o, ok := b.(*Parameter)
		return ok && a.Equal(o)
	case DeprecatedAttribute, SyntheticAttribute:
		return a == b
	case *SourceFileAttribute:
		o, ok := b.(*SourceFileAttribute)
		return ok && a.Equal(o)
	case *UnimplementedAttribute:
		o, ok := b.(*UnimplementedAttribute)
		return ok && a.Equal(o)
	case StackMapTableAttribute:
		o, ok := b.(StackMapTableAttribute)
		return ok && a.Equal(o)
	case *LineNumberTableAttribute:
		o, ok := b.(*LineNumberTableAttribute)
		return ok && a.Equal(o)
	case *MethodParametersAttribute:
		o, ok := b.(*MethodParametersAttribute)
		return ok && a.Equal(o)
	case AnnotationsAttribute:
		o, ok := b.(AnnotationsAttribute)
		return ok && a.Equal(o)
	case *ParameterAnnotationsAttribute:
		o, ok := b.(*ParameterAnnotationsAttribute)
		return ok && a.Equal(o)
	case AnnotationDefaultAttribute:
		o, ok := b.(AnnotationDefaultAttribute)
		return ok && a.Equal(o)
	}
	return false
}

// Fingerprint returns a BLAKE3 digest of the node kind and its encoding.
// Nodes for which Equal holds share a fingerprint.
func Fingerprint(n Node) ([32]byte, error) {
	var sum [32]byte
	if err := checkNode(n); err != nil {
		return sum, err
	}

	h := blake3.New()
	_, _ = h.Write(append([]byte(NodeName(n)), 0))
	if err := n.Write(binary.NewWriter(h)); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
