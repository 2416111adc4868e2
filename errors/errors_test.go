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
		excludes []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseTokenize,
				Kind:     KindUnexpectedEOF,
				Path:     []string{"stage", "media"},
				Position: 812,
				ClassID:  11,
				Detail:   "need 4 bytes, have 1",
			},
			contains: []string{"[tokenize]", "unexpected_eof", "stage.media", "at byte 812", "class 11", "need 4 bytes"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindOutOfBounds,
				Position: NoPosition,
			},
			contains: []string{"[decode]", "out_of_bounds"},
			excludes: []string{"at byte"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:    PhaseLoad,
				Kind:     KindInvalidData,
				Position: NoPosition,
				Detail:   "bad signature",
				Cause:    errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "bad signature", "caused by", "underlying error"},
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
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("error message %q should not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:    PhaseTokenize,
		Kind:     KindUnexpectedEOF,
		Position: 4,
	}

	if !err.Is(&Error{Phase: PhaseTokenize, Kind: KindUnexpectedEOF}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseCodec, Kind: KindUnexpectedEOF}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseTokenize, Kind: KindAssertion}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Error("errors.Is should match the phase-less sentinel")
	}
	if errors.Is(err, ErrAssertion) {
		t.Error("errors.Is should not match a different sentinel")
	}

	wrapped := fmt.Errorf("decode: %w", err)
	if !errors.Is(wrapped, ErrUnexpectedEOF) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestIsKind(t *testing.T) {
	inner := UnexpectedEOF(PhaseTokenize, 10, 4, 2)
	outer := Wrap(PhaseLoad, KindInvalidData, inner, "data block")

	if !IsKind(outer, KindInvalidData) {
		t.Error("IsKind should match outer kind")
	}
	if !IsKind(outer, KindUnexpectedEOF) {
		t.Error("IsKind should match kind in cause chain")
	}
	if IsKind(outer, KindUnsupported) {
		t.Error("IsKind should not match absent kind")
	}
	if IsKind(errors.New("plain"), KindUnexpectedEOF) {
		t.Error("IsKind should not match plain errors")
	}
	if IsKind(nil, KindUnexpectedEOF) {
		t.Error("IsKind(nil) should be false")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCodec, KindAssertion).
		Path("sound", "data").
		Position(99).
		ClassID(164).
		Value(42).
		Cause(cause).
		Detail("ran out of bits after %d of %d samples", 3, 8).
		Build()

	if err.Phase != PhaseCodec {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCodec)
	}
	if err.Kind != KindAssertion {
		t.Errorf("Kind = %v, want %v", err.Kind, KindAssertion)
	}
	if len(err.Path) != 2 || err.Path[0] != "sound" || err.Path[1] != "data" {
		t.Errorf("Path = %v, want [sound data]", err.Path)
	}
	if err.Position != 99 {
		t.Errorf("Position = %v, want 99", err.Position)
	}
	if err.ClassID != 164 {
		t.Errorf("ClassID = %v, want 164", err.ClassID)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "ran out of bits after 3 of 8 samples" {
		t.Errorf("Detail = %q", err.Detail)
	}

	if New(PhaseDecode, KindInvalidData).Build().Position != NoPosition {
		t.Error("builder should default to NoPosition")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("UnexpectedEOF", func(t *testing.T) {
		err := UnexpectedEOF(PhaseTokenize, 7, 4, 1)
		if err.Kind != KindUnexpectedEOF {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnexpectedEOF)
		}
		if err.Position != 7 {
			t.Errorf("Position = %v, want 7", err.Position)
		}
		if !strings.Contains(err.Detail, "need 4") {
			t.Errorf("Detail = %v, should contain wanted size", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCodec, "bitmap depth 24")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
		if err.Position != NoPosition {
			t.Errorf("Position = %v, want NoPosition", err.Position)
		}
	})

	t.Run("Assertion", func(t *testing.T) {
		err := Assertion(PhaseTokenize, 3, "bytes too big")
		if err.Kind != KindAssertion {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAssertion)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseDecode, []string{"width"}, "number", "abc")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if !strings.Contains(err.Detail, "string") {
			t.Errorf("Detail = %q, should name the Go type", err.Detail)
		}
	})
}
