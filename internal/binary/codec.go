// Package binary provides the fixed-width primitive codecs, byte-offset
// struct descriptors and the growable cursor used by the sb1 decoders and
// the PNG/WAV writers.
package binary

import (
	"encoding/binary"
	"math"
)

// Field is the type-erased view of a Codec used by Struct.
type Field interface {
	Size() int
	get(b []byte, pos int) any
	put(b []byte, pos int, v any)
}

// Codec reads and writes one fixed-width value at a byte position.
// Callers are responsible for bounds; Stream checks them.
type Codec[T any] struct {
	name  string
	size  int
	read  func(b []byte, pos int) T
	write func(b []byte, pos int, v T)
}

// Size returns the encoded width in bytes.
func (c Codec[T]) Size() int { return c.size }

// Name returns the codec's name, used in error details.
func (c Codec[T]) Name() string { return c.name }

// Read decodes a value at pos.
func (c Codec[T]) Read(b []byte, pos int) T { return c.read(b, pos) }

// Write encodes v at pos.
func (c Codec[T]) Write(b []byte, pos int, v T) {
	if c.write == nil {
		panic("binary: " + c.name + " write not implemented")
	}
	c.write(b, pos, v)
}

func (c Codec[T]) get(b []byte, pos int) any { return c.read(b, pos) }

func (c Codec[T]) put(b []byte, pos int, v any) { c.Write(b, pos, v.(T)) }

var (
	Uint8 = Codec[uint8]{
		name:  "uint8",
		size:  1,
		read:  func(b []byte, pos int) uint8 { return b[pos] },
		write: func(b []byte, pos int, v uint8) { b[pos] = v },
	}

	Uint16BE = Codec[uint16]{
		name:  "uint16be",
		size:  2,
		read:  func(b []byte, pos int) uint16 { return binary.BigEndian.Uint16(b[pos:]) },
		write: func(b []byte, pos int, v uint16) { binary.BigEndian.PutUint16(b[pos:], v) },
	}

	Uint16LE = Codec[uint16]{
		name:  "uint16le",
		size:  2,
		read:  func(b []byte, pos int) uint16 { return binary.LittleEndian.Uint16(b[pos:]) },
		write: func(b []byte, pos int, v uint16) { binary.LittleEndian.PutUint16(b[pos:], v) },
	}

	Int16BE = Codec[int16]{
		name:  "int16be",
		size:  2,
		read:  func(b []byte, pos int) int16 { return int16(binary.BigEndian.Uint16(b[pos:])) },
		write: func(b []byte, pos int, v int16) { binary.BigEndian.PutUint16(b[pos:], uint16(v)) },
	}

	Int16LE = Codec[int16]{
		name:  "int16le",
		size:  2,
		read:  func(b []byte, pos int) int16 { return int16(binary.LittleEndian.Uint16(b[pos:])) },
		write: func(b []byte, pos int, v int16) { binary.LittleEndian.PutUint16(b[pos:], uint16(v)) },
	}

	Uint32BE = Codec[uint32]{
		name:  "uint32be",
		size:  4,
		read:  func(b []byte, pos int) uint32 { return binary.BigEndian.Uint32(b[pos:]) },
		write: func(b []byte, pos int, v uint32) { binary.BigEndian.PutUint32(b[pos:], v) },
	}

	Uint32LE = Codec[uint32]{
		name:  "uint32le",
		size:  4,
		read:  func(b []byte, pos int) uint32 { return binary.LittleEndian.Uint32(b[pos:]) },
		write: func(b []byte, pos int, v uint32) { binary.LittleEndian.PutUint32(b[pos:], v) },
	}

	Int32BE = Codec[int32]{
		name:  "int32be",
		size:  4,
		read:  func(b []byte, pos int) int32 { return int32(binary.BigEndian.Uint32(b[pos:])) },
		write: func(b []byte, pos int, v int32) { binary.BigEndian.PutUint32(b[pos:], uint32(v)) },
	}

	Int32LE = Codec[int32]{
		name:  "int32le",
		size:  4,
		read:  func(b []byte, pos int) int32 { return int32(binary.LittleEndian.Uint32(b[pos:])) },
		write: func(b []byte, pos int, v int32) { binary.LittleEndian.PutUint32(b[pos:], uint32(v)) },
	}

	// DoubleBE is read-only.
	DoubleBE = Codec[float64]{
		name: "float64be",
		size: 8,
		read: func(b []byte, pos int) float64 { return math.Float64frombits(binary.BigEndian.Uint64(b[pos:])) },
	}
)

// Uint24BE reads the 3-byte big-endian integer used by object references.
// It is not part of any Struct and has no writer.
var Uint24BE = Codec[uint32]{
	name: "uint24be",
	size: 3,
	read: func(b []byte, pos int) uint32 {
		return uint32(b[pos])<<16 | uint32(b[pos+1])<<8 | uint32(b[pos+2])
	},
}

// FixedASCII returns a codec for an n-byte ASCII string. Writing a shorter
// string pads with zero bytes; a longer one is truncated.
func FixedASCII(n int) Codec[string] {
	return Codec[string]{
		name: "ascii",
		size: n,
		read: func(b []byte, pos int) string {
			return string(b[pos : pos+n])
		},
		write: func(b []byte, pos int, v string) {
			for i := 0; i < n; i++ {
				if i < len(v) {
					b[pos+i] = v[i]
				} else {
					b[pos+i] = 0
				}
			}
		},
	}
}
