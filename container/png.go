// Package container writes the two output formats for decoded assets:
// uncompressed PNG and 16-bit PCM WAV. Both writers are pure functions over
// byte slices and lay out every header with internal/binary structs.
package container

import (
	"github.com/wippyai/sb1/checksum"
	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
)

const (
	// MaxStoredBlock is the largest payload of one stored deflate block.
	MaxStoredBlock = 0xFFFF

	// MaxPixels bounds width*height of an encoded image, and each side on
	// its own.
	MaxPixels = 1 << 24
)

var (
	pngSignature = binary.NewStruct("png signature",
		binary.Member{Name: "support8Bit", Codec: binary.Uint8},
		binary.Member{Name: "png", Codec: binary.FixedASCII(3)},
		binary.Member{Name: "dosLineEnding", Codec: binary.FixedASCII(2)},
		binary.Member{Name: "dosEndOfFile", Codec: binary.FixedASCII(1)},
		binary.Member{Name: "unixLineEnding", Codec: binary.FixedASCII(1)},
	)

	pngChunkStart = binary.NewStruct("png chunk start",
		binary.Member{Name: "length", Codec: binary.Uint32BE},
		binary.Member{Name: "chunkType", Codec: binary.FixedASCII(4)},
	)

	pngChunkEnd = binary.NewStruct("png chunk end",
		binary.Member{Name: "checksum", Codec: binary.Uint32BE},
	)

	pngIHDR = binary.NewStruct("png IHDR",
		binary.Member{Name: "width", Codec: binary.Uint32BE},
		binary.Member{Name: "height", Codec: binary.Uint32BE},
		binary.Member{Name: "bitDepth", Codec: binary.Uint8},
		binary.Member{Name: "colorType", Codec: binary.Uint8},
		binary.Member{Name: "compressionMethod", Codec: binary.Uint8},
		binary.Member{Name: "filterMethod", Codec: binary.Uint8},
		binary.Member{Name: "interlaceMethod", Codec: binary.Uint8},
	)

	deflateHeader = binary.NewStruct("zlib header",
		binary.Member{Name: "cmf", Codec: binary.Uint8},
		binary.Member{Name: "flag", Codec: binary.Uint8},
	)

	storedBlockStart = binary.NewStruct("stored block",
		binary.Member{Name: "lastBlock", Codec: binary.Uint8},
		binary.Member{Name: "length", Codec: binary.Uint16LE},
		binary.Member{Name: "lengthCheck", Codec: binary.Uint16LE},
	)

	deflateEnd = binary.NewStruct("zlib trailer",
		binary.Member{Name: "checksum", Codec: binary.Uint32BE},
	)
)

const (
	colorTypeRGBA = 6
	filterNone    = 0
)

// EncodePNG writes width x height RGBA pixels as an 8-bit truecolor PNG
// with a single IDAT of stored (uncompressed) deflate blocks. Missing
// trailing pixel bytes are written as zero.
func EncodePNG(width, height int, rgba []byte) ([]byte, error) {
	if width < 0 || height < 0 || width > MaxPixels || height > MaxPixels ||
		(width > 0 && height > MaxPixels/width) {
		return nil, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
			Value([2]int{width, height}).
			Detail("%dx%d image exceeds %d pixels", width, height, MaxPixels).
			Build()
	}

	rowSize := width*4 + 1
	bodySize := rowSize * height
	blocks := max(1, (bodySize+MaxStoredBlock-1)/MaxStoredBlock)
	size := pngSignature.Size() +
		3*(pngChunkStart.Size()+pngChunkEnd.Size()) +
		pngIHDR.Size() +
		deflateHeader.Size() + blocks*storedBlockStart.Size() + bodySize + deflateEnd.Size()

	s := binary.NewWriteStream(size)
	s.WriteStruct(pngSignature, binary.Values{
		"support8Bit":    uint8(0x89),
		"png":            "PNG",
		"dosLineEnding":  "\r\n",
		"dosEndOfFile":   "\x1a",
		"unixLineEnding": "\n",
	})

	ihdr := beginChunk(s, "IHDR")
	s.WriteStruct(pngIHDR, binary.Values{
		"width":             uint32(width),
		"height":            uint32(height),
		"bitDepth":          uint8(8),
		"colorType":         uint8(colorTypeRGBA),
		"compressionMethod": uint8(0),
		"filterMethod":      uint8(0),
		"interlaceMethod":   uint8(0),
	})
	ihdr.finish()

	idat := beginChunk(s, "IDAT")
	z := newStoredDeflate(s)
	row := make([]byte, rowSize)
	for y := 0; y < height; y++ {
		row[0] = filterNone
		start := y * (rowSize - 1)
		n := 0
		if start < len(rgba) {
			n = copy(row[1:], rgba[start:])
		}
		clear(row[1+n:])
		z.Write(row)
	}
	z.finish()
	idat.finish()

	beginChunk(s, "IEND").finish()

	return s.Bytes(), nil
}

// chunk tracks an open PNG chunk so its length and CRC can be filled in
// once the body is written.
type chunk struct {
	s     *binary.Stream
	start int
}

func beginChunk(s *binary.Stream, chunkType string) chunk {
	start := s.WriteStruct(pngChunkStart, binary.Values{
		"length":    uint32(0),
		"chunkType": chunkType,
	})
	return chunk{s: s, start: start}
}

// finish patches the chunk length and appends CRC-32 over type and body.
func (c chunk) finish() {
	typeStart := c.start + pngChunkStart.Offset("chunkType")
	bodyStart := c.start + pngChunkStart.Size()
	length := c.s.Position() - bodyStart
	c.s.Patch(pngChunkStart, c.start, "length", uint32(length))

	crc := checksum.NewCRC32().Update(c.s.Bytes(), typeStart, length+4).Digest()
	c.s.WriteStruct(pngChunkEnd, binary.Values{"checksum": crc})
}

// storedDeflate is a zlib stream made of stored blocks. A block header is
// opened eagerly and patched as bytes arrive, so at least one block is
// always present.
type storedDeflate struct {
	s      *binary.Stream
	adler  *checksum.Adler32
	block  int
	length int
}

func newStoredDeflate(s *binary.Stream) *storedDeflate {
	s.WriteStruct(deflateHeader, binary.Values{
		"cmf":  uint8(0x08),
		"flag": uint8(0x1D),
	})
	z := &storedDeflate{s: s, adler: checksum.NewAdler32()}
	z.openBlock()
	return z
}

func (z *storedDeflate) openBlock() {
	z.block = z.s.WriteStruct(storedBlockStart, binary.Values{
		"lastBlock":   uint8(0),
		"length":      uint16(0),
		"lengthCheck": uint16(0xFFFF),
	})
	z.length = 0
}

func (z *storedDeflate) Write(p []byte) {
	z.adler.Update(p, 0, len(p))
	for len(p) > 0 {
		if z.length == MaxStoredBlock {
			z.openBlock()
		}
		n := min(len(p), MaxStoredBlock-z.length)
		z.s.WriteBytes(p[:n])
		z.length += n
		z.s.Patch(storedBlockStart, z.block, "length", uint16(z.length))
		z.s.Patch(storedBlockStart, z.block, "lengthCheck", uint16(z.length)^0xFFFF)
		p = p[n:]
	}
}

func (z *storedDeflate) finish() {
	z.s.Patch(storedBlockStart, z.block, "lastBlock", uint8(1))
	z.s.WriteStruct(deflateEnd, binary.Values{"checksum": z.adler.Digest()})
}
