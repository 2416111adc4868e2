package binary

import (
	"math/bits"

	"github.com/wippyai/sb1/errors"
)

// Stream is a byte buffer with a read/write cursor. Reads past the end
// return an unexpected_eof error; writes past the end grow the buffer to
// the next power of two.
type Stream struct {
	buf   []byte
	pos   int
	phase errors.Phase
}

// NewStream wraps buf with the cursor at pos. Errors carry the given phase.
func NewStream(buf []byte, pos int, phase errors.Phase) *Stream {
	return &Stream{buf: buf, pos: pos, phase: phase}
}

// NewWriteStream returns an empty stream with room for size bytes.
func NewWriteStream(size int) *Stream {
	return &Stream{buf: make([]byte, 0, size), phase: errors.PhaseEncode}
}

// Position returns the current byte position.
func (s *Stream) Position() int { return s.pos }

// Seek moves the cursor.
func (s *Stream) Seek(pos int) { s.pos = pos }

// Len returns the length of the underlying buffer.
func (s *Stream) Len() int { return len(s.buf) }

// Remaining returns the number of bytes after the cursor.
func (s *Stream) Remaining() int {
	if s.pos >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.pos
}

// Bytes returns the underlying buffer up to its written length.
func (s *Stream) Bytes() []byte { return s.buf }

// Need returns an unexpected_eof error unless n bytes are readable.
func (s *Stream) Need(n int) error {
	if n < 0 || s.Remaining() < n {
		return errors.UnexpectedEOF(s.phase, s.pos, n, s.Remaining())
	}
	return nil
}

// ReadByte reads a single byte and advances the position.
func (s *Stream) ReadByte() (byte, error) {
	if err := s.Need(1); err != nil {
		return 0, err
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadBytes returns the next n bytes without copying them.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if err := s.Need(n); err != nil {
		return nil, err
	}
	out := s.buf[s.pos : s.pos+n : s.pos+n]
	s.pos += n
	return out, nil
}

// Read decodes one value with c and advances the cursor by c.Size().
func Read[T any](s *Stream, c Codec[T]) (T, error) {
	var zero T
	if err := s.Need(c.Size()); err != nil {
		return zero, err
	}
	v := c.Read(s.buf, s.pos)
	s.pos += c.Size()
	return v, nil
}

// Write encodes v with c at the cursor, growing the buffer as needed.
func Write[T any](s *Stream, c Codec[T], v T) {
	s.grow(s.pos + c.Size())
	c.Write(s.buf, s.pos, v)
	s.pos += c.Size()
}

// ReadStruct decodes every member of st at the cursor.
func (s *Stream) ReadStruct(st *Struct) (Values, error) {
	if err := s.Need(st.Size()); err != nil {
		return nil, err
	}
	v := st.decode(s.buf, s.pos)
	s.pos += st.Size()
	return v, nil
}

// WriteStruct encodes v as st at the cursor and returns the struct's start
// position so callers can patch members later with Struct.Set.
func (s *Stream) WriteStruct(st *Struct, v Values) int {
	start := s.pos
	s.grow(s.pos + st.Size())
	st.encode(s.buf, s.pos, v)
	s.pos += st.Size()
	return start
}

// WriteBytes copies b at the cursor.
func (s *Stream) WriteBytes(b []byte) {
	s.grow(s.pos + len(b))
	copy(s.buf[s.pos:], b)
	s.pos += len(b)
}

// Patch gives direct access to the struct written at start.
func (s *Stream) Patch(st *Struct, start int, member string, v any) {
	st.Set(s.buf, start, member, v)
}

// grow extends the buffer so that needed bytes are addressable. Capacity
// is rounded up to a power of two; existing bytes are preserved.
func (s *Stream) grow(needed int) {
	if needed <= len(s.buf) {
		return
	}
	if needed > cap(s.buf) {
		next := make([]byte, len(s.buf), nextPow2(needed))
		copy(next, s.buf)
		s.buf = next
	}
	s.buf = s.buf[:needed]
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
