package squeak

import "encoding/binary"

// Builders for hand-assembled field streams.

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func u32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func nullField() []byte { return []byte{byte(ClassNull)} }

func intField(v int32) []byte {
	return cat([]byte{byte(ClassSmallInt)}, u32(uint32(v)))
}

func int16Field(v int16) []byte {
	return []byte{byte(ClassSmallInt16), byte(uint16(v) >> 8), byte(v)}
}

func stringField(s string) []byte {
	return cat([]byte{byte(ClassString)}, u32(uint32(len(s))), []byte(s))
}

func bytesField(b []byte) []byte {
	return cat([]byte{byte(ClassBytes)}, u32(uint32(len(b))), b)
}

func headerField(class ClassID, n int32) []byte {
	return cat([]byte{byte(class)}, u32(uint32(n)))
}

func recordField(class ClassID, version, n uint8) []byte {
	return []byte{byte(class), version, n}
}

func refField(index int) []byte {
	return []byte{byte(ClassObjectRef), byte(index >> 16), byte(index >> 8), byte(index)}
}

// Builders for values that skip the tokenizer.

func num(v float64) Value { return &Scalar{ID: ClassFloat, V: v} }

func integer(v int32) Value { return &Scalar{ID: ClassSmallInt, V: v} }

func str(s string) Value { return &Scalar{ID: ClassString, V: s} }

func null() Value { return &Scalar{ID: ClassNull} }

func fields(n int, set map[int]Value) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = null()
	}
	for i, v := range set {
		out[i] = v
	}
	return out
}

func rect(x, y, x2, y2 float64) *Rectangle {
	return &Rectangle{Record{ID: ClassRectangle, Fields: []Value{num(x), num(y), num(x2), num(y2)}}}
}

func point(x, y float64) *Point {
	return &Point{Record{ID: ClassPoint, Fields: []Value{num(x), num(y)}}}
}
