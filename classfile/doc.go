// Package classfile models the attribute substructures of the JVM
// class-file format (JVMS §4.7): verification types, stack map frames,
// annotation element values and the attributes that carry them.
//
// # Construction
//
// Every structure is built through a validating constructor that takes
// plain ints and rejects out-of-range values, reserved tags and tag/payload
// combinations the format forbids:
//
//	obj, err := classfile.NewObjectVariableInfo(12)
//	frame, err := classfile.NewAppendFrame(252, 7, obj)
//
//	v, err := classfile.NewConstElementValue(classfile.TagInt, 4)
//	pair, err := classfile.NewElementValuePair(5, v)
//	ann, err := classfile.NewAnnotation(3, pair)
//
// A constructor that fails returns the zero value and an *errors.Error in
// the validate phase.
//
// # Encoding
//
// Every structure implements Node. Length reports exactly the number of
// bytes Write emits:
//
//	data, err := classfile.Encode(frame)
//
//	sink := classfile.NewSink(w)
//	err = ann.Write(sink)
//
// # Decoding
//
// A Decoder reads any structure back. Attributes need a NameResolver to
// map attribute_name_index to a name; unknown names are kept as
// UnimplementedAttribute and re-encode byte for byte:
//
//	dec := classfile.NewDecoder(r, classfile.MapNames(map[uint16]string{
//	    9: classfile.AttrStackMapTable,
//	}))
//	attr, err := dec.Attribute()
//
// # Traversal
//
// Walk visits a tree depth-first with Enter/Leave callbacks:
//
//	classfile.Walk(classfile.VisitorFuncs{
//	    EnterFunc: func(n classfile.Node) bool {
//	        fmt.Println(classfile.NodeName(n))
//	        return true
//	    },
//	}, attr)
//
// # Mutability
//
// Verification types, frames, element values, annotations and the
// immutable attributes are values; assignment copies them and they may be
// shared between goroutines. LineNumber, Parameter, ParameterAnnotation,
// SourceFileAttribute, LineNumberTableAttribute, MethodParametersAttribute,
// ParameterAnnotationsAttribute and UnimplementedAttribute are pointers
// with a Copy method and are not safe for concurrent use.
package classfile
