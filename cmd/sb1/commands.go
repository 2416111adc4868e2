package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/sb1"
	"github.com/wippyai/sb1/archive"
	"github.com/wippyai/sb1/container"
	"github.com/wippyai/sb1/squeak"
	"gopkg.in/urfave/cli.v1"
	"sigs.k8s.io/yaml"
)

// openProject reads the file named by the first argument.
func openProject(c *cli.Context) (*sb1.File, string, error) {
	path := c.Args().First()
	if path == "" {
		return nil, "", fmt.Errorf("missing FILE argument")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	f, err := sb1.Open(data, sb1.WithStrict(c.GlobalBool(strictFlag.Name)), sb1.WithLogger(sb1.Logger()))
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, path, nil
}

func infoCommand(c *cli.Context) error {
	f, path, err := openProject(c)
	if err != nil {
		return err
	}
	return printInfo(c.App.Writer, path, f)
}

func printInfo(w io.Writer, path string, f *sb1.File) error {
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Signature: %s\n", f.Signature())
	fmt.Fprintf(w, "Objects: %d info, %d data\n", f.InfoObjectCount(), f.ObjectCount())

	if fields, err := f.InfoFields(); err == nil {
		for _, key := range []string{"author", "comment", "scratch-version", "os-version", "platform", "language"} {
			if s := squeak.Str(fields[key]); s != "" {
				fmt.Fprintf(w, "%s: %s\n", key, strings.TrimSpace(s))
			}
		}
	} else {
		fmt.Fprintf(w, "Info: %v\n", err)
	}

	objs, err := f.Objects()
	if err != nil {
		return fmt.Errorf("decode objects: %w", err)
	}
	var sprites, watchers int
	for _, v := range objs {
		switch v.(type) {
		case *squeak.Sprite:
			sprites++
		case *squeak.Watcher, *squeak.ListWatcher:
			watchers++
		}
	}
	stage, err := f.Stage()
	if err != nil {
		return err
	}
	images, err := f.Images()
	if err != nil {
		return err
	}
	sounds, err := f.Sounds()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Stage: %s\n", stage.ObjName())
	fmt.Fprintf(w, "Sprites: %d\n", sprites)
	fmt.Fprintf(w, "Watchers: %d\n", watchers)
	fmt.Fprintf(w, "Images: %d\n", len(images))
	fmt.Fprintf(w, "Sounds: %d\n", len(sounds))
	return nil
}

func dumpCommand(c *cli.Context) error {
	f, _, err := openProject(c)
	if err != nil {
		return err
	}
	return dump(c.App.Writer, f, c.String(formatFlag.Name), c.Bool(rawFlag.Name))
}

func dump(w io.Writer, f *sb1.File, format string, raw bool) error {
	info, err := f.InfoTable()
	if err != nil {
		return fmt.Errorf("decode info: %w", err)
	}
	objs, err := f.Objects()
	if err != nil {
		return fmt.Errorf("decode objects: %w", err)
	}

	opts := squeak.ExportOptions{Raw: raw}
	doc := map[string]any{
		"signature": f.Signature(),
		"info":      squeak.Export(info, opts),
		"objects":   squeak.Export(objs, opts),
	}

	var out []byte
	switch format {
	case "", "json":
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshal %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

func extractCommand(c *cli.Context) error {
	f, path, err := openProject(c)
	if err != nil {
		return err
	}
	method, err := archive.ParseMethod(c.String(methodFlag.Name))
	if err != nil {
		return err
	}
	out := c.String(outFlag.Name)
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".zip"
	}

	images, err := f.Images()
	if err != nil {
		return err
	}
	sounds, err := f.Sounds()
	if err != nil {
		return err
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	if err := archive.Write(file, images, sounds, archive.WithMethod(method)); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	samples, err := archivedSamples(sounds)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %d images and %d sounds (%d samples) to %s\n", len(images), len(sounds), samples, out)
	return nil
}

// archivedSamples totals the samples of every sound, read back from the
// data chunk of its WAV encoding.
func archivedSamples(sounds []*squeak.SoundMedia) (int, error) {
	total := 0
	for _, s := range sounds {
		wav, err := s.WAV()
		if err != nil {
			return 0, fmt.Errorf("encode sound %q: %w", s.Name(), err)
		}
		n, err := container.WAVSampleCount(wav)
		if err != nil {
			return 0, fmt.Errorf("read back sound %q: %w", s.Name(), err)
		}
		total += n
	}
	return total, nil
}
