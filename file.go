package sb1

import (
	"fmt"
	"sync"

	"github.com/wippyai/sb1/errors"
	"github.com/wippyai/sb1/internal/binary"
	"github.com/wippyai/sb1/squeak"
	"go.uber.org/zap"
)

// Signatures of the two known project versions.
const (
	SignatureV01 = "ScratchV01"
	SignatureV02 = "ScratchV02"
)

var fileHeader = binary.NewStruct("file header",
	binary.Member{Name: "signature", Codec: binary.FixedASCII(10)},
	binary.Member{Name: "infoByteLength", Codec: binary.Uint32BE},
)

// Every object block opens with ObjS 1 Stch 1 and its object count.
var blockHeader = binary.NewStruct("block header",
	binary.Member{Name: "objs", Codec: binary.FixedASCII(4)},
	binary.Member{Name: "objsVersion", Codec: binary.Uint8},
	binary.Member{Name: "stch", Codec: binary.FixedASCII(4)},
	binary.Member{Name: "stchVersion", Codec: binary.Uint8},
	binary.Member{Name: "numObjects", Codec: binary.Uint32BE},
)

// block is one validated object block.
type block struct {
	start      int // offset of the block header
	end        int // end of the block's bytes
	numObjects int
}

func (b block) body() int { return b.start + blockHeader.Size() }

// File is an opened project.
type File struct {
	data      []byte
	signature string
	info      block
	objects   block
	opts      options

	infoOnce  sync.Once
	infoTable []squeak.Value
	infoErr   error

	objOnce  sync.Once
	objTable []squeak.Value
	objErr   error

	assetOnce sync.Once
	images    []*squeak.ImageMedia
	sounds    []*squeak.SoundMedia
}

// Open validates the framing of a project file. The object blocks are
// decoded on first use. data must not be modified while the File is in use.
func Open(data []byte, opts ...Option) (*File, error) {
	o := newOptions(opts)

	s := binary.NewStream(data, 0, errors.PhaseLoad)
	hdr, err := s.ReadStruct(fileHeader)
	if err != nil {
		return nil, err
	}
	sig := hdr["signature"].(string)
	if sig != SignatureV01 && sig != SignatureV02 {
		return nil, errors.InvalidData(errors.PhaseLoad, 0, fmt.Sprintf("bad signature %q", sig))
	}

	infoStart := s.Position()
	infoEnd := infoStart + int(hdr["infoByteLength"].(uint32))
	if infoEnd > len(data) {
		return nil, errors.UnexpectedEOF(errors.PhaseLoad, infoStart, infoEnd-infoStart, len(data)-infoStart)
	}

	info, err := readBlock(data, infoStart, infoEnd)
	if err != nil {
		return nil, err
	}
	objects, err := readBlock(data, infoEnd, len(data))
	if err != nil {
		return nil, err
	}

	o.logger.Debug("opened project",
		zap.String("signature", sig),
		zap.Int("info_objects", info.numObjects),
		zap.Int("objects", objects.numObjects),
		zap.Int("size", len(data)))

	return &File{
		data:      data,
		signature: sig,
		info:      info,
		objects:   objects,
		opts:      o,
	}, nil
}

func readBlock(data []byte, start, end int) (block, error) {
	s := binary.NewStream(data[:end], start, errors.PhaseLoad)
	v, err := s.ReadStruct(blockHeader)
	if err != nil {
		return block{}, err
	}
	if v["objs"] != "ObjS" || v["objsVersion"] != uint8(1) || v["stch"] != "Stch" || v["stchVersion"] != uint8(1) {
		return block{}, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Position(start).
			Detail("bad block header %q %v %q %v", v["objs"], v["objsVersion"], v["stch"], v["stchVersion"]).
			Build()
	}
	return block{start: start, end: end, numObjects: int(v["numObjects"].(uint32))}, nil
}

// Signature returns ScratchV01 or ScratchV02.
func (f *File) Signature() string { return f.signature }

// Version returns 1 or 2.
func (f *File) Version() int {
	if f.signature == SignatureV02 {
		return 2
	}
	return 1
}

// InfoObjectCount is the object count declared by the info block header.
func (f *File) InfoObjectCount() int { return f.info.numObjects }

// ObjectCount is the object count declared by the data block header.
func (f *File) ObjectCount() int { return f.objects.numObjects }

// InfoTable returns the fixed object table of the info block.
func (f *File) InfoTable() ([]squeak.Value, error) {
	f.infoOnce.Do(func() {
		f.infoTable, f.infoErr = f.decode(f.info, "info")
	})
	return f.infoTable, f.infoErr
}

// Info returns the first info object: a dictionary of flattened key, value
// pairs holding the author, comment, thumbnail and similar metadata.
func (f *File) Info() (squeak.Value, error) {
	table, err := f.InfoTable()
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Position(f.info.start).
			Detail("info block is empty").
			Build()
	}
	return table[0], nil
}

// InfoFields returns the string-keyed entries of the info dictionary.
func (f *File) InfoFields() (map[string]squeak.Value, error) {
	info, err := f.Info()
	if err != nil {
		return nil, err
	}
	items := squeak.Items(info)
	out := make(map[string]squeak.Value, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		if key := squeak.Str(items[i]); key != "" {
			out[key] = items[i+1]
		}
	}
	return out, nil
}

// Objects returns the reference-fixed object table of the data block.
func (f *File) Objects() ([]squeak.Value, error) {
	f.objOnce.Do(func() {
		f.objTable, f.objErr = f.decode(f.objects, "objects")
	})
	return f.objTable, f.objErr
}

// Stage returns the first data object, the project's stage.
func (f *File) Stage() (*squeak.Stage, error) {
	objs, err := f.Objects()
	if err != nil {
		return nil, err
	}
	if len(objs) > 0 {
		if st, ok := objs[0].(*squeak.Stage); ok {
			return st, nil
		}
	}
	var got squeak.Value
	if len(objs) > 0 {
		got = objs[0]
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
		Position(f.objects.body()).
		Value(got).
		Detail("first object is not a stage").
		Build()
}

func (f *File) decode(b block, name string) ([]squeak.Value, error) {
	table, err := squeak.Decode(f.data[:b.end], b.body(), f.opts.config())
	if err != nil {
		return nil, err
	}
	if len(table) != b.numObjects {
		f.opts.logger.Debug("object count differs from block header",
			zap.String("block", name),
			zap.Int("declared", b.numObjects),
			zap.Int("decoded", len(table)))
	}
	return table, nil
}
