package squeak

import (
	"fmt"
	"math"
	"math/big"
)

// Value is a decoded node of the object graph: *Scalar, *Reference,
// *Array, *Record, or one of the typed record views.
type Value interface {
	Class() ClassID
	Position() int
	squeakValue()
}

// Color is a packed ARGB word.
type Color uint32

// RGB drops the alpha channel.
func (c Color) RGB() uint32 { return uint32(c) & 0xFFFFFF }

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

func (c Color) String() string { return fmt.Sprintf("#%08x", uint32(c)) }

// Scalar is an inline value. V holds nil, bool, int32, int16, *big.Int,
// float64, string, []byte (bytes and sound), []uint32 (bitmap) or Color.
type Scalar struct {
	V   any
	ID  ClassID
	Pos int
}

func (s *Scalar) Class() ClassID { return s.ID }
func (s *Scalar) Position() int  { return s.Pos }
func (*Scalar) squeakValue()     {}

func (s *Scalar) String() string {
	if s.V == nil {
		return "nil"
	}
	return fmt.Sprint(s.V)
}

// Reference is an unresolved 1-based index into the decode table. The
// reference fixer replaces every Reference it can reach.
type Reference struct {
	Index int
	Pos   int
}

func (r *Reference) Class() ClassID { return ClassObjectRef }
func (r *Reference) Position() int  { return r.Pos }
func (*Reference) squeakValue()     {}

func (r *Reference) String() string { return fmt.Sprintf("Ref(%d)", r.Index) }

// Array is a builtin collection without a typed view: arrays, ordered
// collections, sets and dictionaries (flattened key, value pairs).
type Array struct {
	Items []Value
	ID    ClassID
	Pos   int
}

func (a *Array) Class() ClassID { return a.ID }
func (a *Array) Position() int  { return a.Pos }
func (*Array) squeakValue()     {}

// Len returns the number of items.
func (a *Array) Len() int { return len(a.Items) }

// At returns item i, or nil when i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= len(a.Items) {
		return nil
	}
	return a.Items[i]
}

// Record is an object with positional fields. Unknown versioned classes
// decode to a bare *Record; known classes embed it in a typed view.
type Record struct {
	Fields  []Value
	ID      ClassID
	Version uint8
	Pos     int
}

func (r *Record) Class() ClassID { return r.ID }
func (r *Record) Position() int  { return r.Pos }
func (*Record) squeakValue()     {}

// Base returns the record itself. Typed views promote it so callers can
// reach the field array of any record.
func (r *Record) Base() *Record { return r }

// Field returns field i, or nil when i is out of range.
func (r *Record) Field(i int) Value {
	if i < 0 || i >= len(r.Fields) {
		return nil
	}
	return r.Fields[i]
}

func (r *Record) String() string {
	return fmt.Sprintf("%s v%d (%d fields)", r.ID, r.Version, len(r.Fields))
}

// Object is implemented by *Record and every typed view.
type Object interface {
	Value
	Base() *Record
}

// IsNull reports whether v is absent or an explicit nil.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	s, ok := v.(*Scalar)
	return ok && s.V == nil
}

// Number converts numeric scalars to float64. Other values give 0, false.
func Number(v Value) (float64, bool) {
	s, ok := v.(*Scalar)
	if !ok {
		return 0, false
	}
	switch n := s.V.(type) {
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case float64:
		return n, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	default:
		return 0, false
	}
}

// Float returns Number(v) or 0.
func Float(v Value) float64 {
	f, _ := Number(v)
	return f
}

// Int returns Number(v) truncated toward zero, or 0.
func Int(v Value) int {
	f, _ := Number(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// IsIntegral reports whether v is a finite number without a fractional part.
func IsIntegral(v Value) bool {
	f, ok := Number(v)
	return ok && !math.IsInf(f, 0) && math.Floor(f) == f
}

// Str returns the text of string, symbol and utf8 scalars, or "".
func Str(v Value) string {
	if s, ok := v.(*Scalar); ok {
		if str, ok := s.V.(string); ok {
			return str
		}
	}
	return ""
}

// Bool returns the value of a boolean scalar, or false.
func Bool(v Value) bool {
	if s, ok := v.(*Scalar); ok {
		if b, ok := s.V.(bool); ok {
			return b
		}
	}
	return false
}

// Bytes returns the buffer of a bytes or sound scalar, or nil.
func Bytes(v Value) []byte {
	if s, ok := v.(*Scalar); ok {
		if b, ok := s.V.([]byte); ok {
			return b
		}
	}
	return nil
}

// Items returns the elements of an array, or nil.
func Items(v Value) []Value {
	if a, ok := v.(*Array); ok {
		return a.Items
	}
	return nil
}

// ColorOf returns the color of a color scalar.
func ColorOf(v Value) (Color, bool) {
	if s, ok := v.(*Scalar); ok {
		c, ok := s.V.(Color)
		return c, ok
	}
	return 0, false
}
