package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindSizeMismatch,
				Path:   []string{"append_frame", "locals"},
				Node:   "AppendFrame",
				Detail: "size 3, expected 2",
			},
			contains: []string{"[validate]", "size_mismatch", "append_frame.locals", "AppendFrame", " - size 3"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindTruncated,
			},
			contains: []string{"[decode]", "truncated"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindIO,
				Detail: "write to sink",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[encode]", "io", "write to sink", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseValidate,
		Kind:  KindTagMismatch,
		Path:  []string{"element_value"},
	}

	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindTagMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTagMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseValidate, Kind: KindOutOfRange}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseValidate, Kind: KindTagMismatch}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindSizeMismatch).
		Path("append_frame", "locals").
		Node("AppendFrame").
		Value(3).
		Cause(cause).
		Detail("frame_type %d requires %d locals", 253, 2).
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindSizeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSizeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "append_frame" || err.Path[1] != "locals" {
		t.Errorf("Path = %v, want [append_frame locals]", err.Path)
	}
	if err.Node != "AppendFrame" {
		t.Errorf("Node = %v, want AppendFrame", err.Node)
	}
	if err.Value != 3 {
		t.Errorf("Value = %v, want 3", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "frame_type 253 requires 2 locals" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseValidate, []string{"frame_type"}, 64, 0, 63)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if err.Value != 64 {
			t.Errorf("Value = %v, want 64", err.Value)
		}
		if !strings.Contains(err.Detail, "[0, 63]") {
			t.Errorf("Detail = %q, should contain range", err.Detail)
		}
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		err := SizeMismatch(PhaseDecode, []string{"attribute_length"}, 5, 2)
		if err.Kind != KindSizeMismatch || err.Phase != PhaseDecode {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("TagMismatch", func(t *testing.T) {
		err := TagMismatch(PhaseValidate, nil, 'I', "ClassInfoIndexUnion")
		if err.Kind != KindTagMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTagMismatch)
		}
		if !strings.Contains(err.Error(), "'I'") {
			t.Errorf("message %q should quote the tag", err.Error())
		}
	})

	t.Run("InvalidTag", func(t *testing.T) {
		err := InvalidTag(PhaseDecode, nil, 9, "verification_type_info")
		if err.Kind != KindInvalidTag || err.Value != 9 {
			t.Errorf("got %v value %v", err.Kind, err.Value)
		}
	})

	t.Run("Reserved", func(t *testing.T) {
		err := Reserved(PhaseValidate, nil, 200, "stack_map_frame")
		if err.Kind != KindReserved {
			t.Errorf("Kind = %v, want %v", err.Kind, KindReserved)
		}
	})

	t.Run("NilValue", func(t *testing.T) {
		err := NilValue(PhaseValidate, []string{"stack"}, "VerificationTypeInfo")
		if err.Kind != KindNilValue || err.Node != "VerificationTypeInfo" {
			t.Errorf("got %v %v", err.Kind, err.Node)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Truncated([]string{"annotation"}, errors.New("EOF"))
		if err.Phase != PhaseDecode || err.Kind != KindTruncated {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseEncode, "streaming")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}

func TestCategoryPredicates(t *testing.T) {
	validation := OutOfRange(PhaseValidate, nil, -1, 0, 65535)
	io := IO(errors.New("broken pipe"))
	traversal := Traversal("FullFrame", errors.New("boom"))

	tests := []struct {
		name      string
		err       error
		valid     bool
		isIO      bool
		traversal bool
	}{
		{"validation", validation, true, false, false},
		{"io", io, false, true, false},
		{"traversal", traversal, false, false, true},
		{"wrapped validation", fmt.Errorf("decode: %w", validation), true, false, false},
		{"validation under decode", Wrap(PhaseDecode, KindInvalidData, validation, "frame"), true, false, false},
		{"plain", errors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.valid {
				t.Errorf("IsValidation = %v, want %v", got, tt.valid)
			}
			if got := IsIO(tt.err); got != tt.isIO {
				t.Errorf("IsIO = %v, want %v", got, tt.isIO)
			}
			if got := IsTraversal(tt.err); got != tt.traversal {
				t.Errorf("IsTraversal = %v, want %v", got, tt.traversal)
			}
		})
	}
}
