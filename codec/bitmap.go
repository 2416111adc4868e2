package codec

import (
	"fmt"

	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
)

// BitmapSource is either compressed bytes ([]byte) or raw 32-bit words
// ([]uint32) as stored by the bitmap token.
type BitmapSource any

// Run-length opcodes.
const (
	opSkip      = 0
	opByteFill  = 1
	opWordFill  = 2
	opWordsCopy = 3
)

// DefaultColormap is the 256-entry Squeak system palette used for depths
// 2, 4 and 8 when the form carries no palette.
var DefaultColormap = [256]uint32{
	0x00000000, 0xFF000000, 0xFFFFFFFF, 0xFF808080, 0xFFFF0000, 0xFF00FF00, 0xFF0000FF, 0xFF00FFFF,
	0xFFFFFF00, 0xFFFF00FF, 0xFF202020, 0xFF404040, 0xFF606060, 0xFF9F9F9F, 0xFFBFBFBF, 0xFFDFDFDF,
	0xFF080808, 0xFF101010, 0xFF181818, 0xFF282828, 0xFF303030, 0xFF383838, 0xFF484848, 0xFF505050,
	0xFF585858, 0xFF686868, 0xFF707070, 0xFF787878, 0xFF878787, 0xFF8F8F8F, 0xFF979797, 0xFFA7A7A7,
	0xFFAFAFAF, 0xFFB7B7B7, 0xFFC7C7C7, 0xFFCFCFCF, 0xFFD7D7D7, 0xFFE7E7E7, 0xFFEFEFEF, 0xFFF7F7F7,
	0xFF000000, 0xFF003300, 0xFF006600, 0xFF009900, 0xFF00CC00, 0xFF00FF00, 0xFF000033, 0xFF003333,
	0xFF006633, 0xFF009933, 0xFF00CC33, 0xFF00FF33, 0xFF000066, 0xFF003366, 0xFF006666, 0xFF009966,
	0xFF00CC66, 0xFF00FF66, 0xFF000099, 0xFF003399, 0xFF006699, 0xFF009999, 0xFF00CC99, 0xFF00FF99,
	0xFF0000CC, 0xFF0033CC, 0xFF0066CC, 0xFF0099CC, 0xFF00CCCC, 0xFF00FFCC, 0xFF0000FF, 0xFF0033FF,
	0xFF0066FF, 0xFF0099FF, 0xFF00CCFF, 0xFF00FFFF, 0xFF330000, 0xFF333300, 0xFF336600, 0xFF339900,
	0xFF33CC00, 0xFF33FF00, 0xFF330033, 0xFF333333, 0xFF336633, 0xFF339933, 0xFF33CC33, 0xFF33FF33,
	0xFF330066, 0xFF333366, 0xFF336666, 0xFF339966, 0xFF33CC66, 0xFF33FF66, 0xFF330099, 0xFF333399,
	0xFF336699, 0xFF339999, 0xFF33CC99, 0xFF33FF99, 0xFF3300CC, 0xFF3333CC, 0xFF3366CC, 0xFF3399CC,
	0xFF33CCCC, 0xFF33FFCC, 0xFF3300FF, 0xFF3333FF, 0xFF3366FF, 0xFF3399FF, 0xFF33CCFF, 0xFF33FFFF,
	0xFF660000, 0xFF663300, 0xFF666600, 0xFF669900, 0xFF66CC00, 0xFF66FF00, 0xFF660033, 0xFF663333,
	0xFF666633, 0xFF669933, 0xFF66CC33, 0xFF66FF33, 0xFF660066, 0xFF663366, 0xFF666666, 0xFF669966,
	0xFF66CC66, 0xFF66FF66, 0xFF660099, 0xFF663399, 0xFF666699, 0xFF669999, 0xFF66CC99, 0xFF66FF99,
	0xFF6600CC, 0xFF6633CC, 0xFF6666CC, 0xFF6699CC, 0xFF66CCCC, 0xFF66FFCC, 0xFF6600FF, 0xFF6633FF,
	0xFF6666FF, 0xFF6699FF, 0xFF66CCFF, 0xFF66FFFF, 0xFF990000, 0xFF993300, 0xFF996600, 0xFF999900,
	0xFF99CC00, 0xFF99FF00, 0xFF990033, 0xFF993333, 0xFF996633, 0xFF999933, 0xFF99CC33, 0xFF99FF33,
	0xFF990066, 0xFF993366, 0xFF996666, 0xFF999966, 0xFF99CC66, 0xFF99FF66, 0xFF990099, 0xFF993399,
	0xFF996699, 0xFF999999, 0xFF99CC99, 0xFF99FF99, 0xFF9900CC, 0xFF9933CC, 0xFF9966CC, 0xFF9999CC,
	0xFF99CCCC, 0xFF99FFCC, 0xFF9900FF, 0xFF9933FF, 0xFF9966FF, 0xFF9999FF, 0xFF99CCFF, 0xFF99FFFF,
	0xFFCC0000, 0xFFCC3300, 0xFFCC6600, 0xFFCC9900, 0xFFCCCC00, 0xFFCCFF00, 0xFFCC0033, 0xFFCC3333,
	0xFFCC6633, 0xFFCC9933, 0xFFCCCC33, 0xFFCCFF33, 0xFFCC0066, 0xFFCC3366, 0xFFCC6666, 0xFFCC9966,
	0xFFCCCC66, 0xFFCCFF66, 0xFFCC0099, 0xFFCC3399, 0xFFCC6699, 0xFFCC9999, 0xFFCCCC99, 0xFFCCFF99,
	0xFFCC00CC, 0xFFCC33CC, 0xFFCC66CC, 0xFFCC99CC, 0xFFCCCCCC, 0xFFCCFFCC, 0xFFCC00FF, 0xFFCC33FF,
	0xFFCC66FF, 0xFFCC99FF, 0xFFCCCCFF, 0xFFCCFFFF, 0xFFFF0000, 0xFFFF3300, 0xFFFF6600, 0xFFFF9900,
	0xFFFFCC00, 0xFFFFFF00, 0xFFFF0033, 0xFFFF3333, 0xFFFF6633, 0xFFFF9933, 0xFFFFCC33, 0xFFFFFF33,
	0xFFFF0066, 0xFFFF3366, 0xFFFF6666, 0xFFFF9966, 0xFFFFCC66, 0xFFFFFF66, 0xFFFF0099, 0xFFFF3399,
	0xFFFF6699, 0xFFFF9999, 0xFFFFCC99, 0xFFFFFF99, 0xFFFF00CC, 0xFFFF33CC, 0xFFFF66CC, 0xFFFF99CC,
	0xFFFFCCCC, 0xFFFFFFCC, 0xFFFF00FF, 0xFFFF33FF, 0xFFFF66FF, 0xFFFF99FF, 0xFFFFCCFF, 0xFFFFFFFF,
}

// DefaultOneBitColormap maps 0 to white and 1 to black.
var DefaultOneBitColormap = [2]uint32{0xFFFFFFFF, 0xFF000000}

// MaxPixels bounds width*height of a decodable form.
const MaxPixels = 1 << 24

// FormWords returns how many 32-bit words a width x height form of the given
// depth occupies. Each row starts on a word boundary. ok is false when the
// form has more than MaxPixels pixels.
func FormWords(width, height, depth int) (n int, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, true
	}
	if height > MaxPixels/width {
		return 0, false
	}
	return height * ((width*depth + 31) / 32), true
}

// DecodeBitmap expands a Squeak form into width*height ARGB pixels.
// A nil colormap selects the default palette for the depth. Pixel values
// with no colormap entry decode as transparent.
func DecodeBitmap(width, height, depth int, src BitmapSource, colormap []uint32) ([]uint32, error) {
	if width < 0 || height < 0 {
		return nil, errors.New(errors.PhaseCodec, errors.KindInvalidData).
			Detail("negative bitmap size %dx%d", width, height).Build()
	}

	switch depth {
	case 1, 2, 4, 8, 16, 32:
	default:
		return nil, errors.Unsupported(errors.PhaseCodec, fmt.Sprintf("bitmap depth %d", depth))
	}

	need, ok := FormWords(width, height, depth)
	if !ok {
		return nil, errors.New(errors.PhaseCodec, errors.KindOutOfBounds).
			Value([2]int{width, height}).
			Detail("%dx%d form exceeds %d pixels", width, height, MaxPixels).
			Build()
	}

	words, err := DecodeWords(src, depth == 32, need)
	if err != nil {
		return nil, err
	}
	if len(words) < need {
		return nil, errors.UnexpectedEOF(errors.PhaseCodec, 4*len(words), 4*need, 4*len(words))
	}

	switch {
	case depth <= 8:
		if colormap == nil {
			if depth == 1 {
				colormap = DefaultOneBitColormap[:]
			} else {
				colormap = DefaultColormap[:]
			}
		}
		return unpackPixels(words, width, height, depth, colormap), nil
	case depth == 16:
		return raster16To32(words, width, height), nil
	default:
		return words, nil
	}
}

// DecodeWords undoes the run-length compression of a bitmap and returns at
// most limit words. Raw word sources are copied. When withAlpha is set every
// non-zero word has its alpha byte forced to 0xFF.
func DecodeWords(src BitmapSource, withAlpha bool, limit int) ([]uint32, error) {
	limit = max(limit, 0)
	switch s := src.(type) {
	case []uint32:
		out := make([]uint32, min(len(s), limit))
		copy(out, s)
		if withAlpha {
			for i, w := range out {
				if w != 0 {
					out[i] = 0xFF000000 | w
				}
			}
		}
		return out, nil
	case []byte:
		return decompressWords(s, withAlpha, limit)
	case nil:
		return nil, nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseCodec, nil, "[]byte or []uint32", src)
	}
}

// decompressWords fills min(count, limit) words. Runs that reach past the end
// of the output still consume their input but write nothing further.
func decompressWords(b []byte, withAlpha bool, limit int) ([]uint32, error) {
	count, n, err := ReadVarint(b, 0)
	if err != nil {
		return nil, err
	}
	pos := n
	out := make([]uint32, min(int64(count), int64(limit)))

	alpha := func(w uint32) uint32 {
		if withAlpha && w != 0 {
			return w | 0xFF000000
		}
		return w
	}

	i := 0
	for i < len(out) {
		header, n, err := ReadVarint(b, pos)
		if err != nil {
			return nil, err
		}
		pos += n
		run := int(header >> 2)
		fit := min(run, len(out)-i)

		switch header & 3 {
		case opSkip:
			i += fit

		case opByteFill:
			if pos >= len(b) {
				return nil, errors.UnexpectedEOF(errors.PhaseCodec, pos, 1, 0)
			}
			v := uint32(b[pos])
			pos++
			w := alpha(v<<24 | v<<16 | v<<8 | v)
			for j := 0; j < fit; j++ {
				out[i] = w
				i++
			}

		case opWordFill:
			if pos+4 > len(b) {
				return nil, errors.UnexpectedEOF(errors.PhaseCodec, pos, 4, len(b)-pos)
			}
			w := alpha(binary.Uint32BE.Read(b, pos))
			pos += 4
			for j := 0; j < fit; j++ {
				out[i] = w
				i++
			}

		case opWordsCopy:
			if pos+4*run > len(b) {
				return nil, errors.UnexpectedEOF(errors.PhaseCodec, pos, 4*run, len(b)-pos)
			}
			for j := 0; j < fit; j++ {
				out[i] = alpha(binary.Uint32BE.Read(b, pos+4*j))
				i++
			}
			pos += 4 * run
		}
	}

	return out, nil
}

// unpackPixels extracts depth-bit palette indices, most significant lane
// first. Each row starts on a word boundary; words holds at least
// FormWords(width, height, depth) entries.
func unpackPixels(words []uint32, width, height, depth int, colormap []uint32) []uint32 {
	out := make([]uint32, width*height)
	mask := uint32(1)<<depth - 1
	perWord := 32 / depth

	src, dst := 0, 0
	for y := 0; y < height; y++ {
		var word uint32
		shift := -1
		for x := 0; x < width; x++ {
			if shift < 0 {
				shift = depth * (perWord - 1)
				word = words[src]
				src++
			}
			idx := (word >> shift) & mask
			if int(idx) < len(colormap) {
				out[dst] = colormap[idx]
			}
			dst++
			shift -= depth
		}
	}
	return out
}

// raster16To32 expands 5-5-5 pixels, two per word. Pixel 0 stays transparent.
func raster16To32(words []uint32, width, height int) []uint32 {
	out := make([]uint32, width*height)

	src, dst := 0, 0
	for y := 0; y < height; y++ {
		var word uint32
		shift := -1
		for x := 0; x < width; x++ {
			if shift < 0 {
				shift = 16
				word = words[src]
				src++
			}
			pix := (word >> shift) & 0xFFFF
			if pix != 0 {
				r := (pix >> 7) & 0xF8
				g := (pix >> 2) & 0xF8
				b := (pix << 3) & 0xF8
				pix = 0xFF000000 | r<<16 | g<<8 | b
			}
			out[dst] = pix
			dst++
			shift -= 16
		}
	}
	return out
}

// ToRGBA converts ARGB words to the R, G, B, A byte order PNG expects.
func ToRGBA(pixels []uint32) []byte {
	out := make([]byte, 4*len(pixels))
	for i, p := range pixels {
		out[4*i+0] = byte(p >> 16)
		out[4*i+1] = byte(p >> 8)
		out[4*i+2] = byte(p)
		out[4*i+3] = byte(p >> 24)
	}
	return out
}
