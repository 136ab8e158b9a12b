package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // construction and setters
	PhaseEncode   Phase = "encode"   // structure to sink
	PhaseDecode   Phase = "decode"   // bytes to structure
	PhaseTraverse Phase = "traverse" // visitor callbacks
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfRange   Kind = "out_of_range"
	KindSizeMismatch Kind = "size_mismatch"
	KindTagMismatch  Kind = "tag_mismatch"
	KindInvalidTag   Kind = "invalid_tag"
	KindReserved     Kind = "reserved"
	KindNilValue     Kind = "nil_value"
	KindIO           Kind = "io"
	KindVisitor      Kind = "visitor"
	KindInvalidData  Kind = "invalid_data"
	KindTruncated    Kind = "truncated"
	KindUnsupported  Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Node != "" {
		b.WriteString(": ")
		b.WriteString(e.Node)
	}

	if e.Detail != "" {
		if e.Node != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Node sets the structure name
func (b *Builder) Node(name string) *Builder {
	b.err.Node = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfRange creates an error for a numeric field outside [min, max]
func OutOfRange(phase Phase, path []string, value, min, max int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("value %d out of range [%d, %d]", value, min, max),
		Value:  value,
	}
}

// SizeMismatch creates an error for a list or payload whose size disagrees
// with the count that describes it
func SizeMismatch(phase Phase, path []string, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("size %d, expected %d", got, want),
		Value:  got,
	}
}

// TagMismatch creates an error for a tag paired with the wrong variant
func TagMismatch(phase Phase, path []string, tag byte, node string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTagMismatch,
		Path:   path,
		Node:   node,
		Detail: fmt.Sprintf("tag %q cannot carry this value", tag),
		Value:  tag,
	}
}

// InvalidTag creates an error for a discriminant that names no variant
func InvalidTag(phase Phase, path []string, tag int, family string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidTag,
		Path:   path,
		Node:   family,
		Detail: fmt.Sprintf("unknown tag %d", tag),
		Value:  tag,
	}
}

// Reserved creates an error for a discriminant in a reserved range
func Reserved(phase Phase, path []string, tag int, family string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReserved,
		Path:   path,
		Node:   family,
		Detail: fmt.Sprintf("tag %d is reserved", tag),
		Value:  tag,
	}
}

// NilValue creates an error for a missing child value
func NilValue(phase Phase, path []string, node string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilValue,
		Path:   path,
		Node:   node,
		Detail: "nil value",
	}
}

// IO wraps a sink failure
func IO(cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindIO,
		Detail: "write to sink",
		Cause:  cause,
	}
}

// Traversal wraps a fault raised inside a visitor callback
func Traversal(node string, cause error) *Error {
	return &Error{
		Phase:  PhaseTraverse,
		Kind:   KindVisitor,
		Node:   node,
		Detail: "visitor callback failed",
		Cause:  cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Truncated creates an error for input that ended early
func Truncated(path []string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Path:   path,
		Detail: "unexpected end of input",
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Category predicates

// IsValidation reports whether err (or anything it wraps) is a validation error.
func IsValidation(err error) bool {
	return hasPhase(err, PhaseValidate)
}

// IsIO reports whether err (or anything it wraps) is a sink failure.
func IsIO(err error) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == KindIO {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsTraversal reports whether err (or anything it wraps) came from a visitor.
func IsTraversal(err error) bool {
	return hasPhase(err, PhaseTraverse)
}

func hasPhase(err error, phase Phase) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Phase == phase {
			return true
		}
		err = e.Cause
	}
	return false
}
