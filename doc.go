// Package jvmclassfile provides a Go codec for the attribute substructures of
// the JVM class-file format.
//
// The library models each structure as an in-memory value, validates it at
// construction time, reports its exact serialized length and writes it to a
// big-endian Sink. Encoding and decoding are lossless, so round-tripping
// through bytes is safe.
//
// # Architecture Overview
//
//	jvmclassfile/        Root package with the Sink interface
//	├── classfile/       Structures, validators, encoder, decoder, tree walk
//	├── dump/            Document model and text/YAML/CBOR renderers
//	├── errors/          Structured error types for debugging
//	└── cmd/classattr/   Command-line inspector
//
// # Quick Start
//
// Build and encode a stack map frame:
//
//	obj, err := classfile.NewObjectVariableInfo(12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frame, err := classfile.NewAppendFrame(252, 7, obj)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := classfile.Encode(frame) // fc 00 07 07 00 0c
//
// Decode it back:
//
//	dec := classfile.NewDecoder(bytes.NewReader(data), nil)
//	frame2, err := dec.StackMapFrame()
//
// # Structure Families
//
//   - verification_type_info: Top, Integer, Float, Double, Long, Null,
//     UninitializedThis, Object, Uninitialized
//   - stack_map_frame: same, same_locals_1_stack_item(_extended), chop,
//     same_frame_extended, append, full
//   - element_value: const, enum, class, annotation and array payloads
//   - annotations, parameter annotations and the attributes that hold them
//
// # Thread Safety
//
// Immutable structures (verification types, frames, element values,
// annotations) may be shared freely between goroutines. LineNumber,
// Parameter, SourceFileAttribute, ParameterAnnotation and the mutable
// container attributes are NOT thread-safe and should be owned by a single
// goroutine, or access must be synchronized.
package jvmclassfile
