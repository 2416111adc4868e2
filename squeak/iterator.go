package squeak

import (
	"io"

	"github.com/wippyai/sb1/errors"
)

// TypeIterator assembles tokens into values: each header collects its
// children, and classes with a typed view are wrapped in it.
type TypeIterator struct {
	src TokenSource
	cfg Config
}

// NewTypeIterator reads from src.
func NewTypeIterator(src TokenSource, cfg Config) *TypeIterator {
	return &TypeIterator{src: src, cfg: cfg}
}

// Next returns the next complete top-level value or io.EOF.
func (it *TypeIterator) Next() (Value, error) {
	tok, err := it.src.Next()
	if err != nil {
		return nil, err
	}
	return it.build(tok)
}

func (it *TypeIterator) build(tok Token) (Value, error) {
	switch tok.Kind {
	case TokenValue:
		return &Scalar{ID: tok.Class, Pos: tok.Position, V: tok.Value}, nil
	case TokenReference:
		return &Reference{Index: tok.Index, Pos: tok.Position}, nil
	}

	children := make([]Value, 0, min(tok.Size, 64))
	for i := 0; i < tok.Size; i++ {
		child, err := it.src.Next()
		if err == io.EOF {
			return nil, errors.New(errors.PhaseDecode, errors.KindUnexpectedEOF).
				Position(tok.Position).
				ClassID(int(tok.Class)).
				Detail("%s declares %d children, found %d", tok.Class, tok.Size, i).
				Build()
		}
		if err != nil {
			return nil, err
		}
		v, err := it.build(child)
		if err != nil {
			return nil, err
		}
		children = append(children, v)
	}

	if v := newObject(tok.Class, tok.Version, tok.Position, children, it.cfg); v != nil {
		return v, nil
	}
	if tok.Kind == TokenRecordHeader {
		return &Record{ID: tok.Class, Version: tok.Version, Pos: tok.Position, Fields: children}, nil
	}
	return &Array{ID: tok.Class, Pos: tok.Position, Items: children}, nil
}

// newObject wraps fields in the typed view for class, or returns nil when
// the class has none.
func newObject(class ClassID, version uint8, pos int, fields []Value, cfg Config) Value {
	rec := Record{ID: class, Version: version, Pos: pos, Fields: fields}
	switch class {
	case ClassPoint:
		return &Point{Record: rec}
	case ClassRectangle:
		return &Rectangle{Record: rec}
	case ClassForm, ClassSqueak:
		return &Image{Record: rec}
	case ClassMorph:
		return &Morph{Record: rec}
	case ClassAlignment:
		return &Alignment{Record: rec}
	case ClassStaticString:
		return &StaticString{Record: rec}
	case ClassUpdatingString:
		return &UpdatingString{Record: rec}
	case ClassSampledSound:
		return &SampledSound{Record: rec}
	case ClassSprite:
		return &Sprite{scriptable{Record: rec}}
	case ClassStage:
		return &Stage{scriptable{Record: rec}}
	case ClassWatcher:
		return &Watcher{Record: rec}
	case ClassImageMedia:
		return &ImageMedia{Record: rec}
	case ClassSoundMedia:
		return &SoundMedia{Record: rec, strict: cfg.Strict}
	case ClassWatcherReadoutFrame:
		return &WatcherReadoutFrame{Record: rec}
	case ClassListWatcher:
		return &ListWatcher{Record: rec}
	}
	return nil
}
