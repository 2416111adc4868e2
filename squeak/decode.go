package squeak

import (
	"io"

	"go.uber.org/zap"
)

// ReadTable collects every top-level value from src without resolving
// references.
func ReadTable(src TokenSource, cfg Config) ([]Value, error) {
	it := NewTypeIterator(src, cfg)
	var table []Value
	for {
		v, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table = append(table, v)
	}
	return table, nil
}

// Decode tokenizes buf from pos to the end, builds the object table and
// resolves its references.
func Decode(buf []byte, pos int, cfg Config) ([]Value, error) {
	table, err := ReadTable(NewTokenizer(buf, pos, cfg), cfg)
	if err != nil {
		return nil, err
	}
	Logger().Debug("decoded object table", zap.Int("position", pos), zap.Int("objects", len(table)))
	return FixReferences(table, nil), nil
}
