package squeak

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
	"go.uber.org/zap"
)

// MaxStrictLength bounds every length prefix in strict mode.
const MaxStrictLength = 10 * 1024 * 1024

// Config controls decoding.
type Config struct {
	// Strict turns impossible lengths and exhausted sound data into
	// assertion errors instead of best-effort results.
	Strict bool
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	Next() (Token, error)
}

// Tokenizer reads field tokens from a byte buffer. It stops with io.EOF
// at the end of the buffer; pass a sub-slice to stop earlier.
type Tokenizer struct {
	s   *binary.Stream
	cfg Config
}

// NewTokenizer starts reading at pos.
func NewTokenizer(buf []byte, pos int, cfg Config) *Tokenizer {
	return &Tokenizer{
		s:   binary.NewStream(buf, pos, errors.PhaseTokenize),
		cfg: cfg,
	}
}

// Position returns the offset of the next class id byte.
func (t *Tokenizer) Position() int { return t.s.Position() }

// Next returns the next token or io.EOF.
func (t *Tokenizer) Next() (Token, error) {
	if t.s.Remaining() == 0 {
		return Token{}, io.EOF
	}

	pos := t.s.Position()
	b, _ := t.s.ReadByte()
	tok := Token{Class: ClassID(b), Position: pos}

	var err error
	switch tok.Class {
	case ClassNull:
	case ClassTrue:
		tok.Value = true
	case ClassFalse:
		tok.Value = false
	case ClassSmallInt:
		tok.Value, err = binary.Read(t.s, binary.Int32BE)
	case ClassSmallInt16:
		tok.Value, err = binary.Read(t.s, binary.Int16BE)
	case ClassLargeIntPositive, ClassLargeIntNegative:
		tok.Value, err = t.largeInt(tok.Class == ClassLargeIntNegative)
	case ClassFloat:
		tok.Value, err = binary.Read(t.s, binary.DoubleBE)
	case ClassString, ClassSymbol:
		var raw []byte
		if raw, err = t.sized(1, "string"); err == nil {
			tok.Value = latin1(raw)
		}
	case ClassBytes:
		tok.Value, err = t.sized(1, "bytes")
	case ClassSound:
		tok.Value, err = t.sized(2, "sound")
	case ClassBitmap:
		tok.Value, err = t.bitmap()
	case ClassUTF8:
		var raw []byte
		if raw, err = t.sized(1, "utf8"); err == nil {
			tok.Value = strings.ToValidUTF8(string(raw), string(utf8.RuneError))
		}
	case ClassArray, ClassOrderedCollection, ClassSet, ClassIdentitySet:
		tok.Kind = TokenHeader
		tok.Size, err = t.count(1)
	case ClassDictionary, ClassIdentityDictionary:
		tok.Kind = TokenHeader
		tok.Size, err = t.count(2)
	case ClassColor:
		tok.Value, err = t.color(false)
	case ClassTranslucentColor:
		tok.Value, err = t.color(true)
	case ClassPoint:
		tok.Kind, tok.Size = TokenHeader, 2
	case ClassRectangle:
		tok.Kind, tok.Size = TokenHeader, 4
	case ClassForm:
		tok.Kind, tok.Size = TokenHeader, 5
	case ClassSqueak:
		tok.Kind, tok.Size = TokenHeader, 6
	case ClassObjectRef:
		var idx uint32
		tok.Kind = TokenReference
		idx, err = binary.Read(t.s, binary.Uint24BE)
		tok.Index = int(idx)
	default:
		if tok.Class < ClassObjectRef {
			Logger().Debug("reserved class id", zap.Uint8("class", uint8(tok.Class)), zap.Int("position", pos))
			tok.Kind = TokenHeader
			break
		}
		var version, size uint8
		tok.Kind = TokenRecordHeader
		if version, err = t.s.ReadByte(); err == nil {
			size, err = t.s.ReadByte()
		}
		tok.Version, tok.Size = version, int(size)
	}

	if err != nil {
		return Token{}, annotate(err, tok.Class)
	}
	return tok, nil
}

// count reads an int32 element count for a collection header. Negative
// counts yield an empty collection.
func (t *Tokenizer) count(scale int) (int, error) {
	n, err := binary.Read(t.s, binary.Int32BE)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nil
	}
	if err := t.checkLength(int64(n), "collection"); err != nil {
		return 0, err
	}
	return int(n) * scale, nil
}

// sized reads a uint32 length and that many units of unitSize bytes.
// The returned slice aliases the input buffer.
func (t *Tokenizer) sized(unitSize int, what string) ([]byte, error) {
	n, err := binary.Read(t.s, binary.Uint32BE)
	if err != nil {
		return nil, err
	}
	if err := t.checkLength(int64(n), what); err != nil {
		return nil, err
	}
	size := int64(n) * int64(unitSize)
	if size > int64(t.s.Remaining()) {
		return nil, errors.UnexpectedEOF(errors.PhaseTokenize, t.s.Position(), int(size), t.s.Remaining())
	}
	return t.s.ReadBytes(int(size))
}

func (t *Tokenizer) bitmap() ([]uint32, error) {
	n, err := binary.Read(t.s, binary.Uint32BE)
	if err != nil {
		return nil, err
	}
	if err := t.checkLength(int64(n), "bitmap"); err != nil {
		return nil, err
	}
	if int64(n)*4 > int64(t.s.Remaining()) {
		return nil, errors.UnexpectedEOF(errors.PhaseTokenize, t.s.Position(), int(n)*4, t.s.Remaining())
	}
	words := make([]uint32, n)
	for i := range words {
		words[i], _ = binary.Read(t.s, binary.Uint32BE)
	}
	return words, nil
}

// largeInt reads a 16-bit byte count followed by a little-endian magnitude.
func (t *Tokenizer) largeInt(negative bool) (*big.Int, error) {
	n, err := binary.Read(t.s, binary.Uint16BE)
	if err != nil {
		return nil, err
	}
	le, err := t.s.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if negative {
		v.Neg(v)
	}
	return v, nil
}

// color unpacks 10-bit channels into an ARGB word. Translucent colors
// carry alpha in a trailing byte.
func (t *Tokenizer) color(translucent bool) (Color, error) {
	rgb, err := binary.Read(t.s, binary.Uint32BE)
	if err != nil {
		return 0, err
	}
	a := uint32(0xFF)
	if translucent {
		b, err := t.s.ReadByte()
		if err != nil {
			return 0, err
		}
		a = uint32(b)
	}
	r := (rgb >> 22) & 0xFF
	g := (rgb >> 12) & 0xFF
	b := (rgb >> 2) & 0xFF
	return Color(a<<24 | r<<16 | g<<8 | b), nil
}

func (t *Tokenizer) checkLength(n int64, what string) error {
	if t.cfg.Strict && n >= MaxStrictLength {
		return errors.Assertion(errors.PhaseTokenize, t.s.Position(), fmt.Sprintf("%s too big: %d", what, n))
	}
	return nil
}

// annotate attaches the class id to a structured error.
func annotate(err error, class ClassID) error {
	if e, ok := err.(*errors.Error); ok && e.ClassID == 0 {
		e.ClassID = int(class)
	}
	return err
}

// latin1 maps each byte to the code point of the same value.
func latin1(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// TakeTokens limits src to n top-level objects. A header token counts
// together with all of its nested children.
func TakeTokens(src TokenSource, n int) TokenSource {
	return &takeTokens{src: src, max: n}
}

type takeTokens struct {
	src   TokenSource
	max   int
	taken int
	queue []Token
	err   error
}

func (t *takeTokens) Next() (Token, error) {
	if len(t.queue) == 0 {
		if t.err != nil {
			return Token{}, t.err
		}
		if t.taken >= t.max {
			return Token{}, io.EOF
		}
		t.taken++
		t.err = t.fill()
		if len(t.queue) == 0 {
			if t.err == nil {
				t.err = io.EOF
			}
			return Token{}, t.err
		}
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	return tok, nil
}

// fill queues one complete object. Errors are deferred until the queued
// tokens are drained.
func (t *takeTokens) fill() error {
	pending := 1
	for pending > 0 {
		tok, err := t.src.Next()
		if err != nil {
			return err
		}
		pending--
		t.queue = append(t.queue, tok)
		if tok.IsHeader() {
			pending += tok.Size
		}
	}
	return nil
}
