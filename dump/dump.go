package dump

import (
	"encoding/hex"

	"github.com/wippyai/jvm-classfile/classfile"
)

// Field is one named scalar of a structure. Value is a uint64, bool or
// string.
type Field struct {
	Name  string `cbor:"name" yaml:"name"`
	Value any    `cbor:"value" yaml:"value"`
}

// Doc is the rendered form of one structure and its children.
type Doc struct {
	Kind     string  `cbor:"kind" yaml:"kind"`
	Fields   []Field `cbor:"fields,omitempty" yaml:"fields,omitempty"`
	Children []*Doc  `cbor:"children,omitempty" yaml:"children,omitempty"`
	Length   int     `cbor:"length" yaml:"length"`
}

// Field returns the value of the named field.
func (d *Doc) Field(name string) (any, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Count returns the number of docs in the tree rooted at d.
func (d *Doc) Count() int {
	n := 1
	for _, c := range d.Children {
		n += c.Count()
	}
	return n
}

// Build converts the tree rooted at n into a Doc. Children appear in the
// order classfile.Walk visits them.
func Build(n classfile.Node) (*Doc, error) {
	var (
		root  *Doc
		stack []*Doc
	)
	_, err := classfile.Walk(classfile.VisitorFuncs{
		EnterFunc: func(n classfile.Node) bool {
			d := &Doc{
				Kind:   classfile.NodeName(n),
				Length: n.Length(),
				Fields: fieldsOf(n),
			}
			if len(stack) == 0 {
				root = d
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, d)
			}
			stack = append(stack, d)
			return true
		},
		LeaveFunc: func(classfile.Node) bool {
			stack = stack[:len(stack)-1]
			return true
		},
	}, n)
	if err != nil {
		return nil, err
	}
	return root, nil
}

type fields []Field

func (f *fields) add(name string, v any) {
	switch v := v.(type) {
	case uint8:
		*f = append(*f, Field{name, uint64(v)})
	case uint16:
		*f = append(*f, Field{name, uint64(v)})
	case int:
		*f = append(*f, Field{name, uint64(v)})
	default:
		*f = append(*f, Field{name, v})
	}
}

func fieldsOf(n classfile.Node) []Field {
	var f fields

	switch n := n.(type) {
	case classfile.VerificationTypeInfo:
		f.add("tag", uint8(n.Tag()))
		switch v := n.(type) {
		case classfile.ObjectVariableInfo:
			f.add("cpool_index", v.CPoolIndex())
		case classfile.UninitializedVariableInfo:
			f.add("offset", v.Offset())
		}

	case classfile.StackMapFrame:
		f.add("frame_type", n.FrameType())
		f.add("offset_delta", n.OffsetDelta())
		switch v := n.(type) {
		case classfile.ChopFrame:
			f.add("chopped", v.Chopped())
		case classfile.FullFrame:
			f.add("number_of_locals", len(v.Locals()))
			f.add("number_of_stack_items", len(v.Stack()))
		}

	case classfile.ConstValueIndexUnion:
		f.add("const_value_index", n.ConstValueIndex())
	case classfile.EnumConstValueUnion:
		f.add("type_name_index", n.TypeNameIndex())
		f.add("const_name_index", n.ConstNameIndex())
	case classfile.ClassInfoIndexUnion:
		f.add("class_info_index", n.ClassInfoIndex())
	case classfile.ArrayValueUnion:
		f.add("num_values", n.NumValues())
	case classfile.ElementValue:
		f.add("tag", n.Tag().String())
	case classfile.ElementValuePair:
		f.add("element_name_index", n.ElementNameIndex())
	case classfile.Annotation:
		f.add("type_index", n.TypeIndex())
		f.add("num_element_value_pairs", n.NumElementValuePairs())
	case *classfile.ParameterAnnotation:
		f.add("num_annotations", n.NumAnnotations())
	case *classfile.LineNumber:
		f.add("start_pc", n.StartPC())
		f.add("line_number", n.LineNumber())
	case *classfile.Parameter:
		f.add("name_index", n.NameIndex())
		f.add("access_flags", n.AccessFlags())

	case classfile.Attribute:
		f.add("attribute_name_index", n.AttributeNameIndex())
		f.add("attribute_length", n.AttributeLength())
		attributeFields(&f, n)
	}
	return f
}

func attributeFields(f *fields, a classfile.Attribute) {
	switch a := a.(type) {
	case *classfile.SourceFileAttribute:
		f.add("sourcefile_index", a.SourceFileIndex())
	case *classfile.UnimplementedAttribute:
		if a.Name() != "" {
			f.add("name", a.Name())
		}
		f.add("info", hex.EncodeToString(a.Info()))
	case classfile.StackMapTableAttribute:
		f.add("number_of_entries", len(a.Entries()))
	case *classfile.LineNumberTableAttribute:
		f.add("line_number_table_length", len(a.LineNumbers()))
	case *classfile.MethodParametersAttribute:
		f.add("parameters_count", len(a.Parameters()))
	case classfile.AnnotationsAttribute:
		f.add("visible", a.Visible())
		f.add("num_annotations", len(a.Annotations()))
	case *classfile.ParameterAnnotationsAttribute:
		f.add("visible", a.Visible())
		f.add("num_parameters", len(a.Parameters()))
	}
}
