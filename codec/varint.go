package codec

import (
	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
)

// Squeak bitmap integers use a self-describing 1/2/5-byte encoding:
//
//	0..223          one byte
//	224..254, b     (first-224)*256 + b, values up to 7935
//	255, b0..b3     big-endian uint32 payload
const (
	varintOneByteMax = 223
	varintTwoByteMax = 254
	varintEscape     = 255
	varintBias       = 224

	// VarintTwoByteLimit is the largest value the two-byte form can hold.
	VarintTwoByteLimit = (varintTwoByteMax-varintBias)*256 + 0xFF
)

// ReadVarint decodes one integer at pos and returns it with its encoded width.
func ReadVarint(b []byte, pos int) (uint32, int, error) {
	if pos >= len(b) {
		return 0, 0, errors.UnexpectedEOF(errors.PhaseCodec, pos, 1, 0)
	}
	first := b[pos]
	switch {
	case first <= varintOneByteMax:
		return uint32(first), 1, nil
	case first <= varintTwoByteMax:
		if pos+1 >= len(b) {
			return 0, 0, errors.UnexpectedEOF(errors.PhaseCodec, pos, 2, len(b)-pos)
		}
		return uint32(first-varintBias)*256 + uint32(b[pos+1]), 2, nil
	default:
		if pos+5 > len(b) {
			return 0, 0, errors.UnexpectedEOF(errors.PhaseCodec, pos, 5, len(b)-pos)
		}
		return binary.Uint32BE.Read(b, pos+1), 5, nil
	}
}

// AppendVarint appends the shortest encoding of v.
func AppendVarint(dst []byte, v uint32) []byte {
	switch {
	case v <= varintOneByteMax:
		return append(dst, byte(v))
	case v <= VarintTwoByteLimit:
		return append(dst, byte(v/256)+varintBias, byte(v))
	default:
		return append(dst, varintEscape, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}
