package classfile

// Field limits
const (
	MaxU1 = 0xFF
	MaxU2 = 0xFFFF
	MaxU4 = 0xFFFFFFFF
)

// VerificationTag is the discriminant of a verification_type_info.
type VerificationTag uint8

// verification_type_info tags (JVMS §4.7.4)
const (
	ItemTop               VerificationTag = 0
	ItemInteger           VerificationTag = 1
	ItemFloat             VerificationTag = 2
	ItemDouble            VerificationTag = 3
	ItemLong              VerificationTag = 4
	ItemNull              VerificationTag = 5
	ItemUninitializedThis VerificationTag = 6
	ItemObject            VerificationTag = 7
	ItemUninitialized     VerificationTag = 8
)

func (t VerificationTag) String() string {
	switch t {
	case ItemTop:
		return "top"
	case ItemInteger:
		return "integer"
	case ItemFloat:
		return "float"
	case ItemDouble:
		return "double"
	case ItemLong:
		return "long"
	case ItemNull:
		return "null"
	case ItemUninitializedThis:
		return "uninitialized_this"
	case ItemObject:
		return "object"
	case ItemUninitialized:
		return "uninitialized"
	default:
		return "unknown"
	}
}

// stack_map_frame frame_type ranges
const (
	SameFrameMin                          = 0
	SameFrameMax                          = 63
	SameLocals1StackItemFrameMin          = 64
	SameLocals1StackItemFrameMax          = 127
	ReservedFrameMin                      = 128
	ReservedFrameMax                      = 246
	SameLocals1StackItemFrameExtendedType = 247
	ChopFrameMin                          = 248
	ChopFrameMax                          = 250
	SameFrameExtendedType                 = 251
	AppendFrameMin                        = 252
	AppendFrameMax                        = 254
	FullFrameType                         = 255
)

// FrameKind names the variant a frame_type selects.
type FrameKind uint8

const (
	FrameSame FrameKind = iota
	FrameSameLocals1StackItem
	FrameReserved
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

func (k FrameKind) String() string {
	switch k {
	case FrameSame:
		return "same_frame"
	case FrameSameLocals1StackItem:
		return "same_locals_1_stack_item_frame"
	case FrameReserved:
		return "reserved"
	case FrameSameLocals1StackItemExtended:
		return "same_locals_1_stack_item_frame_extended"
	case FrameChop:
		return "chop_frame"
	case FrameSameExtended:
		return "same_frame_extended"
	case FrameAppend:
		return "append_frame"
	case FrameFull:
		return "full_frame"
	default:
		return "unknown"
	}
}

// FrameKindOf maps a frame_type byte to its variant.
func FrameKindOf(frameType uint8) FrameKind {
	switch {
	case frameType <= SameFrameMax:
		return FrameSame
	case frameType <= SameLocals1StackItemFrameMax:
		return FrameSameLocals1StackItem
	case frameType <= ReservedFrameMax:
		return FrameReserved
	case frameType == SameLocals1StackItemFrameExtendedType:
		return FrameSameLocals1StackItemExtended
	case frameType <= ChopFrameMax:
		return FrameChop
	case frameType == SameFrameExtendedType:
		return FrameSameExtended
	case frameType <= AppendFrameMax:
		return FrameAppend
	default:
		return FrameFull
	}
}

// ElementTag is the discriminant character of an element_value.
type ElementTag byte

// element_value tags (JVMS §4.7.16.1)
const (
	TagByte       ElementTag = 'B'
	TagChar       ElementTag = 'C'
	TagDouble     ElementTag = 'D'
	TagFloat      ElementTag = 'F'
	TagInt        ElementTag = 'I'
	TagLong       ElementTag = 'J'
	TagShort      ElementTag = 'S'
	TagBoolean    ElementTag = 'Z'
	TagString     ElementTag = 's'
	TagEnum       ElementTag = 'e'
	TagClass      ElementTag = 'c'
	TagAnnotation ElementTag = '@'
	TagArray      ElementTag = '['
)

func (t ElementTag) String() string {
	return string(rune(t))
}

// IsConst reports whether the tag carries a const_value_index.
func (t ElementTag) IsConst() bool {
	switch t {
	case TagByte, TagChar, TagDouble, TagFloat, TagInt, TagLong, TagShort, TagBoolean, TagString:
		return true
	}
	return false
}

// IsValid reports whether the tag is one of the legal element_value tags.
func (t ElementTag) IsValid() bool {
	switch t {
	case TagEnum, TagClass, TagAnnotation, TagArray:
		return true
	}
	return t.IsConst()
}

// Attribute names handled by the decoder
const (
	AttrDeprecated                           = "Deprecated"
	AttrSynthetic                            = "Synthetic"
	AttrSourceFile                           = "SourceFile"
	AttrStackMapTable                        = "StackMapTable"
	AttrLineNumberTable                      = "LineNumberTable"
	AttrMethodParameters                     = "MethodParameters"
	AttrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	AttrAnnotationDefault                    = "AnnotationDefault"
)

// attributeHeaderLength is attribute_name_index (u2) plus attribute_length (u4).
const attributeHeaderLength = 6
