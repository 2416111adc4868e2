package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseTokenize Phase = "tokenize" // class-id grammar
	PhaseDecode   Phase = "decode"   // object graph construction
	PhaseCodec    Phase = "codec"    // bitmap and sound decompression
	PhaseEncode   Phase = "encode"   // PNG/WAV/archive output
	PhaseLoad     Phase = "load"     // project file framing
)

// Kind categorizes the error
type Kind string

const (
	KindUnexpectedEOF Kind = "unexpected_eof"
	KindInvalidData   Kind = "invalid_data"
	KindUnsupported   Kind = "unsupported"
	KindAssertion     Kind = "assertion"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindTypeMismatch  Kind = "type_mismatch"
)

// NoPosition marks an error that is not tied to a byte offset.
const NoPosition = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Path     []string
	Position int
	ClassID  int
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

	if e.Position >= 0 {
		b.WriteString(" at byte ")
		fmt.Fprintf(&b, "%d", e.Position)
	}

	if e.ClassID > 0 {
		fmt.Fprintf(&b, " (class %d)", e.ClassID)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Sentinels that match any phase. Use with errors.Is.
var (
	ErrUnexpectedEOF = &Error{Kind: KindUnexpectedEOF, Position: NoPosition}
	ErrInvalidData   = &Error{Kind: KindInvalidData, Position: NoPosition}
	ErrUnsupported   = &Error{Kind: KindUnsupported, Position: NoPosition}
	ErrAssertion     = &Error{Kind: KindAssertion, Position: NoPosition}
)

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		return false
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
			Phase:    phase,
			Kind:     kind,
			Position: NoPosition,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Position sets the byte offset in the input
func (b *Builder) Position(pos int) *Builder {
	b.err.Position = pos
	return b
}

// ClassID sets the class id of the token being processed
func (b *Builder) ClassID(id int) *Builder {
	b.err.ClassID = id
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

// UnexpectedEOF creates a truncation error for a read of want bytes at pos
// when only have bytes remain.
func UnexpectedEOF(phase Phase, pos, want, have int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnexpectedEOF,
		Position: pos,
		Detail:   fmt.Sprintf("need %d bytes, have %d", want, have),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnsupported,
		Position: NoPosition,
		Detail:   what,
	}
}

// Assertion creates a strict-mode assertion failure
func Assertion(phase Phase, pos int, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindAssertion,
		Position: pos,
		Detail:   detail,
	}
}

// TypeMismatch creates an error for a field holding an unexpected value
func TypeMismatch(phase Phase, path []string, want string, got any) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Position: NoPosition,
		Detail:   fmt.Sprintf("want %s, got %T", want, got),
		Value:    got,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, pos int, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidData,
		Position: pos,
		Detail:   detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Position: NoPosition,
		Detail:   detail,
		Cause:    cause,
	}
}
