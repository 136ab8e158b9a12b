package classfile

import (
	jvmclassfile "github.com/wippyai/jvm-classfile"
	"github.com/wippyai/jvm-classfile/errors"
)

// Annotation is a single annotation: a type and its element-value pairs.
// The zero value is not valid; use NewAnnotation.
type Annotation struct {
	pairs     []ElementValuePair
	typeIndex uint16
}

// NewAnnotation creates an annotation of the type at typeIndex.
func NewAnnotation(typeIndex int, pairs ...ElementValuePair) (Annotation, error) {
	if err := checkIndex("type_index", typeIndex); err != nil {
		return Annotation{}, err
	}
	if err := checkCount("element_value_pairs", len(pairs), MaxU2); err != nil {
		return Annotation{}, err
	}
	for _, p := range pairs {
		if p.elementNameIndex == 0 {
			return Annotation{}, errors.NilValue(errors.PhaseValidate, []string{"element_value_pairs"}, "ElementValuePair")
		}
	}
	a := Annotation{typeIndex: uint16(typeIndex)}
	if len(pairs) > 0 {
		a.pairs = make([]ElementValuePair, len(pairs))
		copy(a.pairs, pairs)
	}
	return a, nil
}

// TypeIndex returns the constant-pool index of the annotation type descriptor.
func (a Annotation) TypeIndex() uint16 { return a.typeIndex }

// NumElementValuePairs returns the number of pairs.
func (a Annotation) NumElementValuePairs() int { return len(a.pairs) }

// ElementValuePairs returns a copy of the pairs in order.
func (a Annotation) ElementValuePairs() []ElementValuePair {
	if len(a.pairs) == 0 {
		return nil
	}
	out := make([]ElementValuePair, len(a.pairs))
	copy(out, a.pairs)
	return out
}

// Length counts type_index, num_element_value_pairs and every pair.
func (a Annotation) Length() int {
	n := 4
	for _, p := range a.pairs {
		n += p.Length()
	}
	return n
}

func (a Annotation) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(a.typeIndex)
	e.u2(uint16(len(a.pairs)))
	for _, p := range a.pairs {
		e.node(p)
	}
	return e.done()
}

// Equal reports whether both annotations have the same type and equal pairs
// in the same order.
func (a Annotation) Equal(other Annotation) bool {
	if a.typeIndex != other.typeIndex || len(a.pairs) != len(other.pairs) {
		return false
	}
	for i := range a.pairs {
		if !a.pairs[i].Equal(other.pairs[i]) {
			return false
		}
	}
	return true
}

func checkAnnotation(field string, a Annotation) error {
	if a.typeIndex == 0 {
		return errors.NilValue(errors.PhaseValidate, []string{field}, "Annotation")
	}
	return nil
}

func annotationsLength(as []Annotation) int {
	n := 0
	for _, a := range as {
		n += a.Length()
	}
	return n
}

func annotationsEqual(a, b []Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ParameterAnnotation holds the annotations of one method parameter.
//
// ParameterAnnotation is mutable and NOT safe for concurrent use.
type ParameterAnnotation struct {
	annotations []Annotation
}

// NewParameterAnnotation creates a parameter entry holding annotations.
func NewParameterAnnotation(annotations ...Annotation) (*ParameterAnnotation, error) {
	p := &ParameterAnnotation{}
	for _, a := range annotations {
		if err := p.AddAnnotation(a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddAnnotation appends a.
func (p *ParameterAnnotation) AddAnnotation(a Annotation) error {
	if err := checkAnnotation("annotations", a); err != nil {
		return err
	}
	if err := checkCount("annotations", len(p.annotations)+1, MaxU2); err != nil {
		return err
	}
	p.annotations = append(p.annotations, a)
	return nil
}

// RemoveAnnotation removes the first annotation equal to a and reports
// whether one was found.
func (p *ParameterAnnotation) RemoveAnnotation(a Annotation) (bool, error) {
	if err := checkAnnotation("annotation", a); err != nil {
		return false, err
	}
	for i := range p.annotations {
		if p.annotations[i].Equal(a) {
			p.annotations = append(p.annotations[:i], p.annotations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Annotations returns a copy of the annotations in order.
func (p *ParameterAnnotation) Annotations() []Annotation {
	if len(p.annotations) == 0 {
		return nil
	}
	out := make([]Annotation, len(p.annotations))
	copy(out, p.annotations)
	return out
}

// NumAnnotations returns the number of annotations.
func (p *ParameterAnnotation) NumAnnotations() int { return len(p.annotations) }

// Copy returns an independent copy. Annotations themselves are immutable
// and are shared.
func (p *ParameterAnnotation) Copy() *ParameterAnnotation {
	return &ParameterAnnotation{annotations: p.Annotations()}
}

// Length counts num_annotations and every annotation.
func (p *ParameterAnnotation) Length() int {
	return 2 + annotationsLength(p.annotations)
}

func (p *ParameterAnnotation) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(uint16(len(p.annotations)))
	for _, a := range p.annotations {
		e.node(a)
	}
	return e.done()
}

// Equal reports whether both entries hold equal annotations in order.
func (p *ParameterAnnotation) Equal(other *ParameterAnnotation) bool {
	if p == nil || other == nil {
		return p == other
	}
	return annotationsEqual(p.annotations, other.annotations)
}
