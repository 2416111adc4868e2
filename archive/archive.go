// Package archive bundles decoded project assets into a zip file.
package archive

import (
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/squeak"
	"sigs.k8s.io/yaml"
)

// ManifestName is the entry listing every asset in the bundle.
const ManifestName = "manifest.yaml"

// Method selects how entries are compressed.
type Method string

const (
	Deflate Method = "deflate"
	Zstd    Method = "zstd"
	Store   Method = "store"
)

// ParseMethod maps a method name to a Method. The empty string is Deflate.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case "", Deflate:
		return Deflate, nil
	case Zstd, Store:
		return Method(name), nil
	}
	return "", errors.Unsupported(errors.PhaseEncode, "archive method "+strconv.Quote(name))
}

func (m Method) zipMethod() uint16 {
	switch m {
	case Zstd:
		return zstd.ZipMethodWinZip
	case Store:
		return zip.Store
	default:
		return zip.Deflate
	}
}

// Entry describes one asset file in the bundle.
type Entry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Asset       string `json:"asset"`
	Fingerprint string `json:"fingerprint"`

	image *squeak.ImageMedia
	sound *squeak.SoundMedia
}

// Bytes encodes the asset.
func (e Entry) Bytes() ([]byte, error) {
	if e.image != nil {
		return e.image.Bytes()
	}
	return e.sound.WAV()
}

// Manifest names every asset: images as N.png or N.jpg and sounds as
// N.wav, numbered from zero within each kind.
func Manifest(images []*squeak.ImageMedia, sounds []*squeak.SoundMedia) []Entry {
	out := make([]Entry, 0, len(images)+len(sounds))
	for i, m := range images {
		out = append(out, Entry{
			Name:        fmt.Sprintf("%d.%s", i, m.Extension()),
			Kind:        "image",
			Asset:       m.Name(),
			Fingerprint: fmt.Sprintf("%08x", m.Fingerprint()),
			image:       m,
		})
	}
	for i, m := range sounds {
		out = append(out, Entry{
			Name:        fmt.Sprintf("%d.wav", i),
			Kind:        "sound",
			Asset:       m.Name(),
			Fingerprint: fmt.Sprintf("%08x", m.Fingerprint()),
			sound:       m,
		})
	}
	return out
}

// Option configures Write.
type Option func(*options)

type options struct {
	method Method
}

// WithMethod sets the compression method. The default is Deflate.
func WithMethod(m Method) Option {
	return func(o *options) { o.method = m }
}

// Write encodes every asset and the manifest into a zip written to w.
func Write(w io.Writer, images []*squeak.ImageMedia, sounds []*squeak.SoundMedia, opts ...Option) error {
	o := options{method: Deflate}
	for _, opt := range opts {
		opt(&o)
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor(zstd.WithEncoderConcurrency(1)))

	entries := Manifest(images, sounds)
	for _, e := range entries {
		data, err := e.Bytes()
		if err != nil {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(e.Name).
				Cause(err).
				Detail("encode %s %q", e.Kind, e.Asset).
				Build()
		}
		if err := writeEntry(zw, e.Name, o.method, data); err != nil {
			return err
		}
		Logger().Debug("archived asset", zapEntry(e, len(data))...)
	}

	manifest, err := yaml.Marshal(entries)
	if err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal manifest")
	}
	if err := writeEntry(zw, ManifestName, o.method, manifest); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "close archive")
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, method Method, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method.zipMethod()})
	if err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "create "+name)
	}
	if _, err := fw.Write(data); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "write "+name)
	}
	return nil
}
