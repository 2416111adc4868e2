package squeak

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/png"
	"testing"

	"github.com/wippyai/sb1/container"
	sberrors "github.com/wippyai/sb1/errors"
)

func form(w, h, depth int32, data any) *Image {
	return &Image{Record: Record{ID: ClassForm, Fields: []Value{
		integer(w), integer(h), integer(depth), null(), &Scalar{ID: ClassBitmap, V: data},
	}}}
}

func imageMedia(set map[int]Value) *ImageMedia {
	return &ImageMedia{Record: Record{ID: ClassImageMedia, Fields: fields(6, set)}}
}

func TestImageMediaPNG(t *testing.T) {
	m := imageMedia(map[int]Value{
		imageMediaCostumeName: str("dot"),
		imageMediaBitmap:      form(1, 1, 32, []uint32{0x00112233}),
	})
	if m.Extension() != "png" {
		t.Errorf("Extension: got %q", m.Extension())
	}

	data, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 0x11 || g>>8 != 0x22 || b>>8 != 0x33 || a>>8 != 0xFF {
		t.Errorf("pixel: got %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}

	again, _ := m.Bytes()
	if &again[0] != &data[0] {
		t.Error("PNG should be computed once")
	}
}

func TestImageMediaFingerprint(t *testing.T) {
	m := imageMedia(map[int]Value{imageMediaBitmap: form(1, 1, 32, []uint32{0x00112233})})

	var hdr []byte
	for _, v := range []uint32{1, 1, 32} {
		hdr = binary.LittleEndian.AppendUint32(hdr, v)
	}
	want := crc32.ChecksumIEEE(append(hdr, 0x00, 0x11, 0x22, 0x33))
	if got := m.Fingerprint(); got != want || got != 0x25861a8c {
		t.Errorf("got %#x, want %#x", got, want)
	}

	same := imageMedia(map[int]Value{imageMediaBitmap: form(1, 1, 32, []uint32{0x00112233})})
	other := imageMedia(map[int]Value{imageMediaBitmap: form(1, 1, 16, []uint32{0x00112233})})
	if same.Fingerprint() != m.Fingerprint() || other.Fingerprint() == m.Fingerprint() {
		t.Error("fingerprint should cover dimensions, depth and data")
	}
}

func TestImageMediaBaseLayer(t *testing.T) {
	jpeg := &Scalar{ID: ClassBytes, V: []byte{0xFF, 0xD8, 0xFF}}
	bitmap := form(1, 1, 32, []uint32{0})
	m := imageMedia(map[int]Value{
		imageMediaBitmap:        bitmap,
		imageMediaBaseLayerData: jpeg,
	})
	if m.Extension() != "jpg" {
		t.Errorf("Extension: got %q, want jpg", m.Extension())
	}
	data, err := m.Bytes()
	if err != nil || !bytes.Equal(data, jpeg.V.([]byte)) {
		t.Errorf("Bytes: got %v, %v", data, err)
	}
	if m.Source() != Value(jpeg) {
		t.Error("Source should be the base layer scalar")
	}

	empty := imageMedia(map[int]Value{
		imageMediaBitmap:        bitmap,
		imageMediaBaseLayerData: &Scalar{ID: ClassBytes, V: []byte{}},
	})
	if empty.Extension() != "png" || empty.Source() != bitmap.Data() {
		t.Errorf("empty base layer: got %q", empty.Extension())
	}
}

func TestImageMediaOldComposite(t *testing.T) {
	composite := form(1, 1, 32, []uint32{0xAABBCCDD})
	m := imageMedia(map[int]Value{
		imageMediaBitmap:        form(1, 1, 32, []uint32{0}),
		imageMediaBaseLayerData: &Scalar{ID: ClassBytes, V: []byte{0xFF, 0xD8}},
		imageMediaOldComposite:  composite,
	})
	if m.Extension() != "png" {
		t.Errorf("Extension: got %q, want png", m.Extension())
	}
	if !bytes.Equal(m.RawBytes(), []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("RawBytes: got %x", m.RawBytes())
	}
}

func TestImageMediaErrors(t *testing.T) {
	_, err := imageMedia(map[int]Value{imageMediaCostumeName: str("none")}).Bytes()
	if !sberrors.IsKind(err, sberrors.KindInvalidData) {
		t.Errorf("no bitmap: got %v", err)
	}

	_, err = imageMedia(map[int]Value{imageMediaBitmap: form(1, 1, 3, []uint32{0})}).Bytes()
	if !errors.Is(err, sberrors.ErrUnsupported) {
		t.Errorf("bad depth: got %v, want unsupported cause", err)
	}
}

func TestImagePNGOversizedForm(t *testing.T) {
	tests := []struct {
		name string
		img  *Image
		kind sberrors.Kind
	}{
		{"compressed", form(0x7FFFFFFF, 0x7FFFFFFF, 8, []byte{0}), sberrors.KindOutOfBounds},
		{"raw words", form(0x7FFFFFFF, 0x7FFFFFFF, 32, []uint32{1}), sberrors.KindOutOfBounds},
		{"short data", form(2048, 2048, 32, []uint32{1}), sberrors.KindUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.img.PNG()
			if !sberrors.IsKind(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestImageColormap(t *testing.T) {
	img := &Image{Record: Record{ID: ClassSqueak, Fields: []Value{
		integer(2), integer(1), integer(1), null(),
		&Scalar{ID: ClassBitmap, V: []uint32{0x40000000}},
		&Array{ID: ClassArray, Items: []Value{
			&Scalar{ID: ClassColor, V: Color(0xFF0000FF)},
			&Scalar{ID: ClassColor, V: Color(0xFF00FF00)},
		}},
	}}}
	px, err := img.Pixels()
	if err != nil {
		t.Fatalf("Pixels: %v", err)
	}
	if len(px) != 2 || px[0] != 0xFF0000FF || px[1] != 0xFF00FF00 {
		t.Errorf("got %#x", px)
	}
}

func soundMedia(set map[int]Value) *SoundMedia {
	return &SoundMedia{Record: Record{ID: ClassSoundMedia, Fields: fields(7, set)}}
}

func TestSoundMediaRaw(t *testing.T) {
	raw := &SampledSound{Record{ID: ClassSampledSound, Fields: fields(5, map[int]Value{
		sampledSoundData: &Scalar{ID: ClassSound, V: []byte{0x00, 0x01, 0xFF, 0xFE}},
		sampledSoundRate: integer(11025),
	})}}
	m := soundMedia(map[int]Value{
		soundMediaName:         str("pop"),
		soundMediaUncompressed: raw,
		soundMediaRate:         integer(22050),
	})

	if m.Compressed() {
		t.Error("Compressed: got true")
	}
	if m.Rate() != 11025 {
		t.Errorf("Rate: got %d, want 11025", m.Rate())
	}
	samples, err := m.Samples()
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(samples) != 2 || samples[0] != 1 || samples[1] != -2 {
		t.Errorf("Samples: got %v", samples)
	}
	if m.SampleCount() != 2 {
		t.Errorf("SampleCount: got %d", m.SampleCount())
	}
	if m.Source() != raw.Field(sampledSoundData) {
		t.Error("Source should be the raw sound scalar")
	}

	wav, err := m.WAV()
	if err != nil {
		t.Fatalf("WAV: %v", err)
	}
	if n, err := container.WAVSampleCount(wav); err != nil || n != 2 {
		t.Errorf("WAVSampleCount: got %d, %v", n, err)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:]); rate != 11025 {
		t.Errorf("wav rate: got %d", rate)
	}
}

func TestSoundMediaCompressed(t *testing.T) {
	m := soundMedia(map[int]Value{
		soundMediaRate:          integer(22050),
		soundMediaBitsPerSample: integer(4),
		soundMediaData:          &Scalar{ID: ClassBytes, V: []byte{0x12, 0x34, 0xAB}},
	})
	if !m.Compressed() {
		t.Fatal("Compressed: got false")
	}
	samples, err := m.Samples()
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	want := []int16{1, 4, 8, 15, 10, 3}
	if len(samples) != len(want) {
		t.Fatalf("got %v, want %v", samples, want)
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, samples[i], want[i])
		}
	}
	if m.SampleCount() != 6 {
		t.Errorf("SampleCount: got %d", m.SampleCount())
	}

	hdr := binary.LittleEndian.AppendUint32(nil, 22050)
	fp := crc32.ChecksumIEEE(append(hdr, 0x12, 0x34, 0xAB))
	if m.Fingerprint() != fp || fp != 0xfa15e2a8 {
		t.Errorf("Fingerprint: got %#x, want %#x", m.Fingerprint(), fp)
	}
}

func TestSoundMediaEmptyCompressedData(t *testing.T) {
	m := soundMedia(map[int]Value{
		soundMediaBitsPerSample: integer(4),
		soundMediaData:          &Scalar{ID: ClassBytes, V: []byte{}},
	})
	if !m.Compressed() {
		t.Error("an empty data buffer still marks the sound compressed")
	}
	if s, err := m.Samples(); err != nil || len(s) != 0 {
		t.Errorf("Samples: got %v, %v", s, err)
	}
}

func TestSoundMediaBadBits(t *testing.T) {
	m := soundMedia(map[int]Value{
		soundMediaBitsPerSample: integer(7),
		soundMediaData:          &Scalar{ID: ClassBytes, V: []byte{1}},
	})
	if _, err := m.Samples(); !errors.Is(err, sberrors.ErrUnsupported) {
		t.Errorf("Samples: got %v, want unsupported", err)
	}
	if _, err := m.WAV(); !errors.Is(err, sberrors.ErrUnsupported) {
		t.Errorf("WAV: got %v, want unsupported", err)
	}
}
