package classfile

import (
	jvmclassfile "github.com/wippyai/jvm-classfile"
)

// LineNumber maps a bytecode offset to a source line.
//
// LineNumber is mutable and NOT safe for concurrent use.
type LineNumber struct {
	startPC    uint16
	lineNumber uint16
}

// NewLineNumber creates a line_number_table entry.
func NewLineNumber(startPC, lineNumber int) (*LineNumber, error) {
	l := &LineNumber{}
	if err := l.SetStartPC(startPC); err != nil {
		return nil, err
	}
	if err := l.SetLineNumber(lineNumber); err != nil {
		return nil, err
	}
	return l, nil
}

// StartPC returns the bytecode offset where the line begins.
func (l *LineNumber) StartPC() uint16 { return l.startPC }

// LineNumber returns the source line.
func (l *LineNumber) LineNumber() uint16 { return l.lineNumber }

// SetStartPC updates the bytecode offset. On error l is unchanged.
func (l *LineNumber) SetStartPC(startPC int) error {
	if err := checkU2("start_pc", startPC); err != nil {
		return err
	}
	l.startPC = uint16(startPC)
	return nil
}

// SetLineNumber updates the source line. On error l is unchanged.
func (l *LineNumber) SetLineNumber(lineNumber int) error {
	if err := checkU2("line_number", lineNumber); err != nil {
		return err
	}
	l.lineNumber = uint16(lineNumber)
	return nil
}

// Copy returns an independent copy.
func (l *LineNumber) Copy() *LineNumber {
	c := *l
	return &c
}

func (l *LineNumber) Length() int { return 4 }

func (l *LineNumber) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(l.startPC)
	e.u2(l.lineNumber)
	return e.done()
}

// Equal compares by value.
func (l *LineNumber) Equal(other *LineNumber) bool {
	if l == nil || other == nil {
		return l == other
	}
	return *l == *other
}

// Parameter describes one formal parameter in a MethodParameters attribute.
// A name index of 0 marks a parameter without a name.
//
// Parameter is mutable and NOT safe for concurrent use.
type Parameter struct {
	nameIndex   uint16
	accessFlags uint16
}

// Parameter access flags (JVMS §4.7.24)
const (
	ParamFinal     uint16 = 0x0010
	ParamSynthetic uint16 = 0x1000
	ParamMandated  uint16 = 0x8000
)

// NewParameter creates a parameters entry.
func NewParameter(nameIndex, accessFlags int) (*Parameter, error) {
	p := &Parameter{}
	if err := p.SetNameIndex(nameIndex); err != nil {
		return nil, err
	}
	if err := p.SetAccessFlags(accessFlags); err != nil {
		return nil, err
	}
	return p, nil
}

// NameIndex returns the constant-pool index of the name, or 0.
func (p *Parameter) NameIndex() uint16 { return p.nameIndex }

// AccessFlags returns the parameter's access flags.
func (p *Parameter) AccessFlags() uint16 { return p.accessFlags }

// SetNameIndex updates the name index. On error p is unchanged.
func (p *Parameter) SetNameIndex(nameIndex int) error {
	if err := checkU2("name_index", nameIndex); err != nil {
		return err
	}
	p.nameIndex = uint16(nameIndex)
	return nil
}

// SetAccessFlags updates the access flags. On error p is unchanged.
func (p *Parameter) SetAccessFlags(accessFlags int) error {
	if err := checkU2("access_flags", accessFlags); err != nil {
		return err
	}
	p.accessFlags = uint16(accessFlags)
	return nil
}

func (p *Parameter) IsFinal() bool     { return p.accessFlags&ParamFinal != 0 }
func (p *Parameter) IsSynthetic() bool { return p.accessFlags&ParamSynthetic != 0 }
func (p *Parameter) IsMandated() bool  { return p.accessFlags&ParamMandated != 0 }

// Copy returns an independent copy.
func (p *Parameter) Copy() *Parameter {
	c := *p
	return &c
}

func (p *Parameter) Length() int { return 4 }

func (p *Parameter) Write(s jvmclassfile.Sink) error {
	e := newEncoder(s)
	e.u2(p.nameIndex)
	e.u2(p.accessFlags)
	return e.done()
}

// Equal compares by value.
func (p *Parameter) Equal(other *Parameter) bool {
	if p == nil || other == nil {
		return p == other
	}
	return *p == *other
}
