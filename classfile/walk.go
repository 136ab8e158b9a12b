package classfile

import (
	"fmt"
	"iter"

	"github.com/wippyai/jvm-classfile/errors"
)

// Visitor receives every node of a tree in depth-first order. Enter is
// called before a node's children and Leave after them. Returning false
// from either stops the walk after the current node is left.
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node) bool
}

// VisitorFuncs adapts plain functions to Visitor. A nil func continues.
type VisitorFuncs struct {
	EnterFunc func(Node) bool
	LeaveFunc func(Node) bool
}

func (f VisitorFuncs) Enter(n Node) bool {
	if f.EnterFunc == nil {
		return true
	}
	return f.EnterFunc(n)
}

func (f VisitorFuncs) Leave(n Node) bool {
	if f.LeaveFunc == nil {
		return true
	}
	return f.LeaveFunc(n)
}

// Walk traverses the tree rooted at n. If Enter returns false the node's
// children and its remaining siblings are skipped; Leave is still called
// for every entered node. Walk reports whether the traversal ran to
// completion.
//
// A panic raised by a visitor callback is recovered and returned as a
// traversal error naming the node being visited.
func Walk(v Visitor, n Node) (completed bool, err error) {
	if v == nil {
		return false, errors.NilValue(errors.PhaseTraverse, []string{"visitor"}, "Visitor")
	}
	if n == nil {
		return false, errors.NilValue(errors.PhaseTraverse, []string{"node"}, "Node")
	}

	w := &walker{v: v}
	defer func() {
		if r := recover(); r != nil {
			completed = false
			err = errors.Traversal(NodeName(w.current), panicCause(r))
		}
	}()
	return w.walk(n), nil
}

type walker struct {
	v       Visitor
	current Node
}

func (w *walker) walk(n Node) bool {
	w.current = n
	cont := w.v.Enter(n)
	if cont {
		for _, child := range Children(n) {
			if !w.walk(child) {
				cont = false
				break
			}
		}
	}
	w.current = n
	return w.v.Leave(n) && cont
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

// Inspect calls f for every node in depth-first preorder. If f returns
// false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Preorder returns an iterator over all nodes rooted at root in
// depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		if root != nil {
			visit(root)
		}
	}
}

// Children returns the direct children of n in encoding order. Leaf nodes
// return nil.
func Children(n Node) []Node {
	switch n := n.(type) {
	case SameLocals1StackItemFrame:
		return stackNode(n.stack)
	case SameLocals1StackItemFrameExtended:
		return stackNode(n.stack)
	case AppendFrame:
		return nodesOf(n.locals)
	case FullFrame:
		out := make([]Node, 0, len(n.locals)+len(n.stack))
		out = append(out, nodesOf(n.locals)...)
		return append(out, nodesOf(n.stack)...)

	case ElementValue:
		if n.value == nil {
			return nil
		}
		return []Node{n.value}
	case AnnotationValueUnion:
		return []Node{n.annotation}
	case ArrayValueUnion:
		return nodesOf(n.values)
	case ElementValuePair:
		return []Node{n.value}
	case Annotation:
		return nodesOf(n.pairs)
	case *ParameterAnnotation:
		return nodesOf(n.annotations)

	case StackMapTableAttribute:
		return nodesOf(n.entries)
	case *LineNumberTableAttribute:
		return nodesOf(n.lines)
	case *MethodParametersAttribute:
		return nodesOf(n.parameters)
	case AnnotationsAttribute:
		return nodesOf(n.annotations)
	case *ParameterAnnotationsAttribute:
		return nodesOf(n.parameters)
	case AnnotationDefaultAttribute:
		return []Node{n.value}
	}
	return nil
}

func stackNode(v VerificationTypeInfo) []Node {
	if v == nil {
		return nil
	}
	return []Node{v}
}

func nodesOf[T Node](items []T) []Node {
	if len(items) == 0 {
		return nil
	}
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// NodeName returns the class-file structure name of n, such as
// "append_frame" or "element_value".
func NodeName(n Node) string {
	switch n := n.(type) {
	case VerificationTypeInfo:
		return n.Tag().String() + "_variable_info"
	case StackMapFrame:
		return n.Kind().String()
	case ConstValueIndexUnion:
		return "const_value_index"
	case EnumConstValueUnion:
		return "enum_const_value"
	case ClassInfoIndexUnion:
		return "class_info_index"
	case AnnotationValueUnion:
		return "annotation_value"
	case ArrayValueUnion:
		return "array_value"
	case ElementValue:
		return "element_value"
	case ElementValuePair:
		return "element_value_pair"
	case Annotation:
		return "annotation"
	case *ParameterAnnotation:
		return "parameter_annotation"
	case *LineNumber:
		return "line_number"
	case *Parameter:
		return "parameter"
	case *UnimplementedAttribute:
		return "unimplemented_attribute"
	case Attribute:
		return n.Name()
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", n)
	}
}
