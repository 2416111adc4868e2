package codec

import (
	"fmt"

	"github.com/wippyai/sb1/errors"
	"go.uber.org/zap"
)

var stepSizeTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34, 37, 41,
	45, 50, 55, 60, 66, 73, 80, 88, 97, 107, 118, 130, 143, 157, 173, 190, 209,
	230, 253, 279, 307, 337, 371, 408, 449, 494, 544, 598, 658, 724, 796, 876,
	963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066, 2272, 2499, 2749,
	3024, 3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630,
	9493, 10442, 11487, 12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623,
	27086, 29794, 32767,
}

// indexTables adjust the step index per code, keyed by bits per sample.
var indexTables = map[int][]int32{
	2: {-1, 2, -1, 2},
	3: {-1, -1, 2, 4, -1, -1, 2, 4},
	4: {-1, -1, -1, -1, 2, 4, 6, 8, -1, -1, -1, -1, 2, 4, 6, 8},
	5: {
		-1, -1, -1, -1, -1, -1, -1, -1, 1, 2, 4, 6, 8, 10, 13, 16,
		-1, -1, -1, -1, -1, -1, -1, -1, 1, 2, 4, 6, 8, 10, 13, 16,
	},
}

const maxStepIndex = len(stepSizeTable) - 1

// SoundDecoder expands Squeak ADPCM into 16-bit PCM. A decoder is not safe
// for concurrent use; each Decode call resets its bit reader.
type SoundDecoder struct {
	bits   int
	strict bool

	indexTable   []int32
	signMask     int32
	valueHighBit int32

	bitPos int
	cur    int32
	pos    int
}

// NewSoundDecoder returns a decoder for 2, 3, 4 or 5 bits per sample.
// In strict mode running out of input is an assertion error; otherwise the
// remaining samples are left at zero.
func NewSoundDecoder(bitsPerSample int, strict bool) (*SoundDecoder, error) {
	table, ok := indexTables[bitsPerSample]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseCodec, fmt.Sprintf("%d bits per sample", bitsPerSample))
	}
	sign := int32(1) << (bitsPerSample - 1)
	return &SoundDecoder{
		bits:         bitsPerSample,
		strict:       strict,
		indexTable:   table,
		signMask:     sign,
		valueHighBit: sign >> 1,
	}, nil
}

// BitsPerSample returns the code width.
func (d *SoundDecoder) BitsPerSample() int { return d.bits }

// SampleCount returns how many whole codes fit in n bytes.
func (d *SoundDecoder) SampleCount(n int) int {
	return n * 8 / d.bits
}

// Decode expands every whole code in data.
func (d *SoundDecoder) Decode(data []byte) ([]int16, error) {
	return d.DecodeCount(data, d.SampleCount(len(data)))
}

// DecodeCount expands exactly count codes from data.
func (d *SoundDecoder) DecodeCount(data []byte, count int) ([]int16, error) {
	d.bitPos, d.cur, d.pos = 0, 0, 0
	if count < 0 {
		count = 0
	}
	out := make([]int16, count)

	var sample, index int32
	for i := 0; i < count; i++ {
		code := d.nextCode(data)
		if code < 0 {
			if d.strict {
				return out[:i], errors.Assertion(errors.PhaseCodec, d.pos,
					fmt.Sprintf("ran out of bits after %d of %d samples", i, count))
			}
			Logger().Debug("sound data exhausted", zap.Int("decoded", i), zap.Int("want", count))
			return out, nil
		}

		step := stepSizeTable[index]
		var delta int32
		for bit := d.valueHighBit; bit > 0; bit >>= 1 {
			if code&bit != 0 {
				delta += step
			}
			step >>= 1
		}
		delta += step

		if code&d.signMask != 0 {
			sample -= delta
		} else {
			sample += delta
		}

		index += d.indexTable[code]
		index = max(0, min(index, int32(maxStepIndex)))
		sample = max(-32768, min(sample, 32767))

		out[i] = int16(sample)
	}
	return out, nil
}

// nextCode reads bits most significant first, spanning byte boundaries.
// It returns -1 when data runs out.
func (d *SoundDecoder) nextCode(data []byte) int32 {
	var result int32
	remaining := d.bits
	for {
		shift := remaining - d.bitPos
		if shift < 0 {
			result += d.cur >> -shift
		} else {
			result += d.cur << shift
		}
		if shift > 0 {
			remaining -= d.bitPos
			if d.pos >= len(data) {
				d.cur, d.bitPos = 0, 0
				return -1
			}
			d.cur = int32(data[d.pos])
			d.pos++
			d.bitPos = 8
			continue
		}
		d.bitPos -= remaining
		d.cur &= 0xFF >> (8 - d.bitPos)
		return result
	}
}
