package archive

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/wippyai/sb1/container"
	sberrors "github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/squeak"
	"sigs.k8s.io/yaml"
)

func scalar(id squeak.ClassID, v any) *squeak.Scalar { return &squeak.Scalar{ID: id, V: v} }

func costume(name string, words []uint32, jpeg []byte) *squeak.ImageMedia {
	form := &squeak.Image{Record: squeak.Record{ID: squeak.ClassForm, Fields: []squeak.Value{
		scalar(squeak.ClassSmallInt, int32(1)),
		scalar(squeak.ClassSmallInt, int32(1)),
		scalar(squeak.ClassSmallInt, int32(32)),
		scalar(squeak.ClassNull, nil),
		scalar(squeak.ClassBitmap, words),
	}}}
	var base squeak.Value = scalar(squeak.ClassNull, nil)
	if jpeg != nil {
		base = scalar(squeak.ClassBytes, jpeg)
	}
	null := scalar(squeak.ClassNull, nil)
	return &squeak.ImageMedia{Record: squeak.Record{ID: squeak.ClassImageMedia, Fields: []squeak.Value{
		scalar(squeak.ClassString, name), form, null, null, base, null,
	}}}
}

func sound(name string, bits int32, data []byte) *squeak.SoundMedia {
	null := scalar(squeak.ClassNull, nil)
	return &squeak.SoundMedia{Record: squeak.Record{ID: squeak.ClassSoundMedia, Fields: []squeak.Value{
		scalar(squeak.ClassString, name), null, null, null,
		scalar(squeak.ClassSmallInt, int32(22050)),
		scalar(squeak.ClassSmallInt, bits),
		scalar(squeak.ClassBytes, data),
	}}}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	out := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = b
	}
	return out
}

func TestManifestNames(t *testing.T) {
	entries := Manifest(
		[]*squeak.ImageMedia{costume("a", []uint32{1}, nil), costume("b", []uint32{2}, []byte{0xFF, 0xD8})},
		[]*squeak.SoundMedia{sound("pop", 4, []byte{0x12})},
	)
	want := []string{"0.png", "1.jpg", "0.wav"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Name != w {
			t.Errorf("entry %d: got %q, want %q", i, entries[i].Name, w)
		}
	}
	if entries[0].Kind != "image" || entries[2].Kind != "sound" || entries[2].Asset != "pop" {
		t.Errorf("got %+v", entries)
	}
	if len(entries[0].Fingerprint) != 8 {
		t.Errorf("fingerprint: got %q", entries[0].Fingerprint)
	}
}

func TestWrite(t *testing.T) {
	for _, method := range []Method{Deflate, Zstd, Store} {
		t.Run(string(method), func(t *testing.T) {
			var buf bytes.Buffer
			images := []*squeak.ImageMedia{costume("a", []uint32{0x00112233}, nil), costume("b", []uint32{0}, []byte{0xFF, 0xD8, 0xFF})}
			sounds := []*squeak.SoundMedia{sound("pop", 4, []byte{0x12, 0x34, 0xAB})}
			if err := Write(&buf, images, sounds, WithMethod(method)); err != nil {
				t.Fatalf("Write: %v", err)
			}

			files := readZip(t, buf.Bytes())
			if len(files) != 4 {
				t.Fatalf("got %d files, want 4", len(files))
			}
			if png := files["0.png"]; !bytes.HasPrefix(png, []byte("\x89PNG")) {
				t.Errorf("0.png: got %x", png)
			}
			if !bytes.Equal(files["1.jpg"], []byte{0xFF, 0xD8, 0xFF}) {
				t.Errorf("1.jpg: got %x", files["1.jpg"])
			}
			if n, err := container.WAVSampleCount(files["0.wav"]); err != nil || n != 6 {
				t.Errorf("0.wav: got %d samples, %v", n, err)
			}

			var manifest []map[string]string
			if err := yaml.Unmarshal(files[ManifestName], &manifest); err != nil {
				t.Fatalf("manifest: %v", err)
			}
			if len(manifest) != 3 || manifest[1]["name"] != "1.jpg" || manifest[1]["asset"] != "b" {
				t.Errorf("manifest: got %v", manifest)
			}
		})
	}
}

func TestWriteEncodeError(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, []*squeak.SoundMedia{sound("bad", 9, []byte{1})})
	if !sberrors.IsKind(err, sberrors.KindUnsupported) {
		t.Fatalf("got %v, want unsupported cause", err)
	}
	if !strings.Contains(err.Error(), "0.wav") {
		t.Errorf("error should name the entry: %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
		ok   bool
	}{
		{"", Deflate, true},
		{"deflate", Deflate, true},
		{"zstd", Zstd, true},
		{"store", Store, true},
		{"lzma", "", false},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMethod(%q): got %q, %v", tt.in, got, err)
		}
	}
}
