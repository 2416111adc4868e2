package squeak

import "go.uber.org/zap"

// FixReferences resolves every Reference held by the table's records and
// arrays to table[index-1], in place. Indexes outside the table resolve
// to nil. Values nested inline are fixed too; resolved targets are not
// descended into since they are fixed as table entries themselves.
//
// It returns the items for which filter is true, or the whole table when
// filter is nil.
func FixReferences(table []Value, filter func(Value) bool) []Value {
	f := fixer{table: table}
	visible := make([]Value, 0, len(table))
	for _, item := range table {
		f.fixItem(item)
		if filter == nil || filter(item) {
			visible = append(visible, item)
		}
	}
	if f.unresolved > 0 {
		Logger().Debug("unresolved references", zap.Int("count", f.unresolved), zap.Int("table", len(table)))
	}
	return visible
}

type fixer struct {
	table      []Value
	unresolved int
}

func (f *fixer) fixItem(item Value) {
	switch v := item.(type) {
	case *Array:
		f.fixSlice(v.Items)
	case Object:
		f.fixSlice(v.Base().Fields)
	}
}

func (f *fixer) fixSlice(values []Value) {
	for i, v := range values {
		if ref, ok := v.(*Reference); ok {
			values[i] = f.deref(ref)
			continue
		}
		f.fixItem(v)
	}
}

func (f *fixer) deref(ref *Reference) Value {
	if ref.Index < 1 || ref.Index > len(f.table) {
		f.unresolved++
		return nil
	}
	return f.table[ref.Index-1]
}
