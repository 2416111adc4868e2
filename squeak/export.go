package squeak

import (
	"math"
	"math/big"
	"strconv"
)

// ExportOptions controls Export.
type ExportOptions struct {
	// Raw includes byte buffers and bitmap words instead of their sizes.
	Raw bool
}

// Ref marks a table entry referenced from another value.
type Ref struct {
	Ref int `json:"$ref"`
}

// Export renders the table as plain maps, slices and scalars suitable for
// JSON or YAML. Each entry is written once at its own index; anywhere else
// a table entry is written as a 1-based Ref, which keeps cyclic graphs finite.
func Export(table []Value, opts ExportOptions) []any {
	e := exporter{index: make(map[Value]int, len(table)), opts: opts}
	for i, v := range table {
		if v == nil {
			continue
		}
		if _, seen := e.index[v]; !seen {
			e.index[v] = i + 1
		}
	}
	out := make([]any, len(table))
	for i, v := range table {
		out[i] = e.value(v, true)
	}
	return out
}

type exporter struct {
	index map[Value]int
	opts  ExportOptions
}

func (e *exporter) value(v Value, top bool) any {
	if v == nil {
		return nil
	}
	if !top {
		if n, ok := e.index[v]; ok {
			return Ref{Ref: n}
		}
	}
	switch x := v.(type) {
	case *Scalar:
		return e.scalar(x)
	case *Reference:
		return map[string]any{"unresolved": x.Index}
	case *Array:
		return e.slice(x.Items)
	case Object:
		r := x.Base()
		return map[string]any{
			"class":    r.ID.String(),
			"version":  int(r.Version),
			"position": r.Pos,
			"fields":   e.slice(r.Fields),
		}
	}
	return nil
}

func (e *exporter) slice(values []Value) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = e.value(v, false)
	}
	return out
}

func (e *exporter) scalar(s *Scalar) any {
	switch v := s.V.(type) {
	case nil, bool, int32, int16, string:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case *big.Int:
		return v.String()
	case Color:
		return v.String()
	case []byte:
		if e.opts.Raw {
			return v
		}
		return map[string]any{s.ID.String(): len(v)}
	case []uint32:
		if e.opts.Raw {
			return v
		}
		return map[string]any{"words": len(v)}
	}
	return nil
}
