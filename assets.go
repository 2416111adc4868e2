package sb1

import (
	"github.com/wippyai/sb1/squeak"
	"go.uber.org/zap"
)

// Images returns every costume and background in object table order.
// Costumes backed by the same data, or with equal fingerprints, are
// returned once.
func (f *File) Images() ([]*squeak.ImageMedia, error) {
	if err := f.collectAssets(); err != nil {
		return nil, err
	}
	return f.images, nil
}

// Sounds returns every sound in object table order. Sounds backed by the
// same data are returned once.
func (f *File) Sounds() ([]*squeak.SoundMedia, error) {
	if err := f.collectAssets(); err != nil {
		return nil, err
	}
	return f.sounds, nil
}

func (f *File) collectAssets() error {
	objs, err := f.Objects()
	if err != nil {
		return err
	}
	f.assetOnce.Do(func() {
		f.images = uniqueImages(objs)
		f.sounds = uniqueSounds(objs)
		f.opts.logger.Debug("collected assets",
			zap.Int("images", len(f.images)),
			zap.Int("sounds", len(f.sounds)))
	})
	return nil
}

func uniqueImages(objs []squeak.Value) []*squeak.ImageMedia {
	var out []*squeak.ImageMedia
	sources := make(map[squeak.Value]bool)
	prints := make(map[uint32]bool)
	for _, v := range objs {
		m, ok := v.(*squeak.ImageMedia)
		if !ok {
			continue
		}
		src := m.Source()
		if src != nil && sources[src] {
			continue
		}
		fp := m.Fingerprint()
		if prints[fp] {
			continue
		}
		if src != nil {
			sources[src] = true
		}
		prints[fp] = true
		out = append(out, m)
	}
	return out
}

func uniqueSounds(objs []squeak.Value) []*squeak.SoundMedia {
	var out []*squeak.SoundMedia
	sources := make(map[squeak.Value]bool)
	for _, v := range objs {
		m, ok := v.(*squeak.SoundMedia)
		if !ok {
			continue
		}
		if src := m.Source(); src != nil {
			if sources[src] {
				continue
			}
			sources[src] = true
		}
		out = append(out, m)
	}
	return out
}
