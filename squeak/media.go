package squeak

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/sb1/checksum"
	"github.com/wippyai/sb1/codec"
	"github.com/wippyai/sb1/container"
	"github.com/wippyai/sb1/errors"
)

// Image is a Squeak Form (class 34) or ColorForm (class 35).
type Image struct {
	Record

	pngOnce sync.Once
	png     []byte
	pngErr  error
}

const (
	imageWidth     = 0
	imageHeight    = 1
	imageDepth     = 2
	imageSomething = 3
	imageBytes     = 4
	imageColormap  = 5
)

func (i *Image) Width() int  { return Int(i.Field(imageWidth)) }
func (i *Image) Height() int { return Int(i.Field(imageHeight)) }
func (i *Image) Depth() int  { return Int(i.Field(imageDepth)) }

// Offset is the unused fourth form field, usually nil.
func (i *Image) Offset() Value { return i.Field(imageSomething) }

// Data returns the scalar holding the pixel data.
func (i *Image) Data() Value { return i.Field(imageBytes) }

// Source returns the compressed bytes or raw words of the form.
func (i *Image) Source() codec.BitmapSource {
	s, ok := i.Data().(*Scalar)
	if !ok {
		return nil
	}
	switch v := s.V.(type) {
	case []byte:
		return v
	case []uint32:
		return v
	}
	return nil
}

// RawBytes returns the stored pixel data as bytes. Raw word bitmaps are
// serialized big-endian.
func (i *Image) RawBytes() []byte {
	switch v := i.Source().(type) {
	case []byte:
		return v
	case []uint32:
		out := make([]byte, 4*len(v))
		for k, w := range v {
			binary.BigEndian.PutUint32(out[4*k:], w)
		}
		return out
	}
	return nil
}

// Colormap returns the palette of a ColorForm, or nil for a plain Form.
func (i *Image) Colormap() []uint32 {
	items := Items(i.Field(imageColormap))
	if items == nil {
		return nil
	}
	out := make([]uint32, len(items))
	for k, v := range items {
		c, _ := ColorOf(v)
		out[k] = uint32(c)
	}
	return out
}

// Pixels decodes the form into Width*Height ARGB words.
func (i *Image) Pixels() ([]uint32, error) {
	return codec.DecodeBitmap(i.Width(), i.Height(), i.Depth(), i.Source(), i.Colormap())
}

// PNG encodes the form. The result is computed once.
func (i *Image) PNG() ([]byte, error) {
	i.pngOnce.Do(func() {
		pixels, err := i.Pixels()
		if err != nil {
			i.pngErr = errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "decode form for png")
			return
		}
		i.png, i.pngErr = container.EncodePNG(i.Width(), i.Height(), codec.ToRGBA(pixels))
	})
	return i.png, i.pngErr
}

// ImageMedia is a costume or background.
type ImageMedia struct {
	Record

	fpOnce sync.Once
	fp     uint32
}

const (
	imageMediaCostumeName    = 0
	imageMediaBitmap         = 1
	imageMediaRotationCenter = 2
	imageMediaTextDetails    = 3
	imageMediaBaseLayerData  = 4
	imageMediaOldComposite   = 5
)

func (m *ImageMedia) Name() string            { return Str(m.Field(imageMediaCostumeName)) }
func (m *ImageMedia) RotationCenter() *Point  { return asPoint(m.Field(imageMediaRotationCenter)) }
func (m *ImageMedia) BaseLayerData() []byte   { return Bytes(m.Field(imageMediaBaseLayerData)) }
func (m *ImageMedia) Bitmap() *Image          { return asImage(m.Field(imageMediaBitmap)) }
func (m *ImageMedia) OldComposite() *Image    { return asImage(m.Field(imageMediaOldComposite)) }
func (m *ImageMedia) hasBaseLayer() bool      { return len(m.BaseLayerData()) > 0 }
func (m *ImageMedia) String() string          { return "ImageMedia " + m.Name() }
func (m *ImageMedia) TextDetailsValue() Value { return m.Field(imageMediaTextDetails) }

// TextDetails views the embedded text layer record, or nil.
func (m *ImageMedia) TextDetails() *TextDetails {
	o, ok := m.Field(imageMediaTextDetails).(Object)
	if !ok {
		return nil
	}
	return &TextDetails{Record: *o.Base()}
}

// RawBytes returns the stored data of the asset: the composite form, the
// JPEG base layer, or the bitmap form, in that order of preference.
func (m *ImageMedia) RawBytes() []byte {
	if c := m.OldComposite(); c != nil {
		return c.RawBytes()
	}
	if m.hasBaseLayer() {
		return m.BaseLayerData()
	}
	if b := m.Bitmap(); b != nil {
		return b.RawBytes()
	}
	return nil
}

// Bytes returns the encoded file for the asset: PNG for forms, the JPEG
// base layer as stored.
func (m *ImageMedia) Bytes() ([]byte, error) {
	if c := m.OldComposite(); c != nil {
		return c.PNG()
	}
	if m.hasBaseLayer() {
		return m.BaseLayerData(), nil
	}
	if b := m.Bitmap(); b != nil {
		return b.PNG()
	}
	return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
		Position(m.Pos).
		ClassID(int(ClassImageMedia)).
		Detail("costume %q has no bitmap", m.Name()).
		Build()
}

// Extension is "jpg" for base-layer costumes and "png" otherwise.
func (m *ImageMedia) Extension() string {
	if m.OldComposite() == nil && m.hasBaseLayer() {
		return "jpg"
	}
	return "png"
}

// Source returns the scalar backing the asset's bytes, used to detect
// costumes that share data.
func (m *ImageMedia) Source() Value {
	if m.hasBaseLayer() {
		return m.Field(imageMediaBaseLayerData)
	}
	if b := m.Bitmap(); b != nil {
		return b.Data()
	}
	return nil
}

// Fingerprint is the CRC-32 of the bitmap's little-endian width, height
// and depth followed by RawBytes. It is computed once.
func (m *ImageMedia) Fingerprint() uint32 {
	m.fpOnce.Do(func() {
		var w, h, d int
		if b := m.Bitmap(); b != nil {
			w, h, d = b.Width(), b.Height(), b.Depth()
		}
		var hdr [12]byte
		binary.LittleEndian.PutUint32(hdr[0:], uint32(w))
		binary.LittleEndian.PutUint32(hdr[4:], uint32(h))
		binary.LittleEndian.PutUint32(hdr[8:], uint32(d))
		raw := m.RawBytes()
		m.fp = checksum.NewCRC32().Update(hdr[:], 0, len(hdr)).Update(raw, 0, len(raw)).Digest()
	})
	return m.fp
}

// SampledSound holds big-endian 16-bit PCM.
type SampledSound struct{ Record }

const (
	sampledSoundData = 3
	sampledSoundRate = 4
)

func (s *SampledSound) Data() []byte { return Bytes(s.Field(sampledSoundData)) }
func (s *SampledSound) Rate() int    { return Int(s.Field(sampledSoundRate)) }

// SoundMedia is a named sound, either ADPCM compressed or raw PCM.
type SoundMedia struct {
	Record
	strict bool

	wavOnce sync.Once
	wav     []byte
	wavErr  error

	fpOnce sync.Once
	fp     uint32
}

const (
	soundMediaName          = 0
	soundMediaUncompressed  = 1
	soundMediaRate          = 4
	soundMediaBitsPerSample = 5
	soundMediaData          = 6
)

func (m *SoundMedia) Name() string       { return Str(m.Field(soundMediaName)) }
func (m *SoundMedia) BitsPerSample() int { return Int(m.Field(soundMediaBitsPerSample)) }
func (m *SoundMedia) String() string     { return "SoundMedia " + m.Name() }

// Uncompressed returns the raw PCM sound, or nil.
func (m *SoundMedia) Uncompressed() *SampledSound {
	s, _ := m.Field(soundMediaUncompressed).(*SampledSound)
	return s
}

func (m *SoundMedia) uncompressedData() []byte {
	if u := m.Uncompressed(); u != nil {
		return u.Data()
	}
	return nil
}

// Compressed reports whether the sound carries ADPCM data.
func (m *SoundMedia) Compressed() bool {
	s, ok := m.Field(soundMediaData).(*Scalar)
	if !ok {
		return false
	}
	_, ok = s.V.([]byte)
	return ok
}

// Data returns the ADPCM bytes, or nil for raw sounds.
func (m *SoundMedia) Data() []byte { return Bytes(m.Field(soundMediaData)) }

// Rate prefers the raw sound's rate when it has samples.
func (m *SoundMedia) Rate() int {
	if u := m.Uncompressed(); u != nil && len(u.Data()) != 0 {
		return u.Rate()
	}
	return Int(m.Field(soundMediaRate))
}

// RawBytes returns the stored sample data.
func (m *SoundMedia) RawBytes() []byte {
	if m.Compressed() {
		return m.Data()
	}
	return m.uncompressedData()
}

// Source returns the scalar backing RawBytes.
func (m *SoundMedia) Source() Value {
	if m.Compressed() {
		return m.Field(soundMediaData)
	}
	if u := m.Uncompressed(); u != nil {
		return u.Field(sampledSoundData)
	}
	return nil
}

// Samples decodes the sound to 16-bit PCM.
func (m *SoundMedia) Samples() ([]int16, error) {
	if m.Compressed() {
		d, err := codec.NewSoundDecoder(m.BitsPerSample(), m.strict)
		if err != nil {
			return nil, err
		}
		return d.Decode(m.Data())
	}
	raw := m.uncompressedData()
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(raw[2*i:]))
	}
	return out, nil
}

// WAV encodes the sound as a mono WAV file. The result is computed once.
func (m *SoundMedia) WAV() ([]byte, error) {
	m.wavOnce.Do(func() {
		samples, err := m.Samples()
		if err != nil {
			m.wavErr = err
			return
		}
		rate := m.Rate()
		if rate == 0 {
			if u := m.Uncompressed(); u != nil {
				rate = u.Rate()
			}
		}
		m.wav = container.EncodeWAV(samples, container.WAVOptions{SampleRate: rate})
	})
	return m.wav, m.wavErr
}

// SampleCount returns the number of samples without decoding them.
func (m *SoundMedia) SampleCount() int {
	if m.Compressed() {
		bits := m.BitsPerSample()
		if bits <= 0 {
			return 0
		}
		return len(m.Data()) * 8 / bits
	}
	return len(m.uncompressedData()) / 2
}

// Fingerprint is the CRC-32 of the little-endian rate followed by
// RawBytes. It is computed once.
func (m *SoundMedia) Fingerprint() uint32 {
	m.fpOnce.Do(func() {
		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], uint32(m.Rate()))
		raw := m.RawBytes()
		m.fp = checksum.NewCRC32().Update(hdr[:], 0, len(hdr)).Update(raw, 0, len(raw)).Digest()
	})
	return m.fp
}

func asImage(v Value) *Image {
	i, _ := v.(*Image)
	return i
}
