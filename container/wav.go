package container

import (
	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
)

// WAV defaults used when WAVOptions fields are zero.
const (
	DefaultChannels   = 1
	DefaultSampleRate = 22050
)

var (
	waveSignature = binary.NewStruct("wave signature",
		binary.Member{Name: "riff", Codec: binary.FixedASCII(4)},
		binary.Member{Name: "length", Codec: binary.Uint32LE},
		binary.Member{Name: "wave", Codec: binary.FixedASCII(4)},
	)

	waveChunkStart = binary.NewStruct("wave chunk start",
		binary.Member{Name: "chunkType", Codec: binary.FixedASCII(4)},
		binary.Member{Name: "length", Codec: binary.Uint32LE},
	)

	waveFmtBody = binary.NewStruct("wave fmt",
		binary.Member{Name: "format", Codec: binary.Uint16LE},
		binary.Member{Name: "channels", Codec: binary.Uint16LE},
		binary.Member{Name: "sampleRate", Codec: binary.Uint32LE},
		binary.Member{Name: "bytesPerSec", Codec: binary.Uint32LE},
		binary.Member{Name: "blockAlignment", Codec: binary.Uint16LE},
		binary.Member{Name: "bitsPerSample", Codec: binary.Uint16LE},
	)
)

// WAVOptions describes the PCM stream. Zero fields take the defaults.
type WAVOptions struct {
	Channels   int
	SampleRate int
}

// EncodeWAV writes 16-bit little-endian PCM samples as a RIFF WAVE file.
func EncodeWAV(samples []int16, opts WAVOptions) []byte {
	if opts.Channels <= 0 {
		opts.Channels = DefaultChannels
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}

	dataSize := 2 * len(samples)
	size := waveSignature.Size() + 2*waveChunkStart.Size() + waveFmtBody.Size() + dataSize

	s := binary.NewWriteStream(size)
	s.WriteStruct(waveSignature, binary.Values{
		"riff":   "RIFF",
		"length": uint32(size - 8),
		"wave":   "WAVE",
	})
	s.WriteStruct(waveChunkStart, binary.Values{
		"chunkType": "fmt ",
		"length":    uint32(waveFmtBody.Size()),
	})
	s.WriteStruct(waveFmtBody, binary.Values{
		"format":         uint16(1),
		"channels":       uint16(opts.Channels),
		"sampleRate":     uint32(opts.SampleRate),
		"bytesPerSec":    uint32(opts.SampleRate * 2 * opts.Channels),
		"blockAlignment": uint16(opts.Channels * 2),
		"bitsPerSample":  uint16(16),
	})
	s.WriteStruct(waveChunkStart, binary.Values{
		"chunkType": "data",
		"length":    uint32(dataSize),
	})
	for _, v := range samples {
		binary.Write(s, binary.Int16LE, v)
	}
	return s.Bytes()
}

// WAVSampleCount reads the data chunk length of a file written by
// EncodeWAV and returns the number of 16-bit samples it holds.
func WAVSampleCount(b []byte) (int, error) {
	r := binary.NewStream(b, waveSignature.Size(), errors.PhaseDecode)
	fmtChunk, err := r.ReadStruct(waveChunkStart)
	if err != nil {
		return 0, err
	}
	r.Seek(r.Position() + int(fmtChunk["length"].(uint32)))
	dataChunk, err := r.ReadStruct(waveChunkStart)
	if err != nil {
		return 0, err
	}
	if dataChunk["chunkType"] != "data" {
		return 0, errors.InvalidData(errors.PhaseDecode, r.Position()-waveChunkStart.Size(),
			"expected data chunk, found "+dataChunk["chunkType"].(string))
	}
	return int(dataChunk["length"].(uint32)) / 2, nil
}
