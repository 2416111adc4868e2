package binary

import "fmt"

// Member is one named field of a Struct.
type Member struct {
	Name  string
	Codec Field
}

// Struct is an ordered list of fixed-width members laid out back to back.
// Variable-length members are not allowed.
type Struct struct {
	name    string
	members []Member
	offsets map[string]int
	size    int
}

// Values holds member values by name for ReadStruct/WriteStruct.
type Values map[string]any

// NewStruct builds a struct descriptor. It panics if a member has zero size
// or a name repeats, since both are programming errors in a static layout.
func NewStruct(name string, members ...Member) *Struct {
	s := &Struct{
		name:    name,
		members: members,
		offsets: make(map[string]int, len(members)),
	}
	for _, m := range members {
		if m.Codec.Size() == 0 {
			panic(fmt.Sprintf("binary: struct %s cannot be defined with variable sized member %q", name, m.Name))
		}
		if _, dup := s.offsets[m.Name]; dup {
			panic(fmt.Sprintf("binary: struct %s has duplicate member %q", name, m.Name))
		}
		s.offsets[m.Name] = s.size
		s.size += m.Codec.Size()
	}
	return s
}

// Name returns the struct's name.
func (s *Struct) Name() string { return s.name }

// Size returns the sum of member sizes.
func (s *Struct) Size() int { return s.size }

// Offset returns the byte offset of the named member within the struct.
func (s *Struct) Offset(member string) int {
	off, ok := s.offsets[member]
	if !ok {
		panic(fmt.Sprintf("binary: struct %s has no member %q", s.name, member))
	}
	return off
}

// Get reads the named member of a struct laid out at base.
func (s *Struct) Get(b []byte, base int, member string) any {
	for _, m := range s.members {
		if m.Name == member {
			return m.Codec.get(b, base+s.offsets[member])
		}
	}
	panic(fmt.Sprintf("binary: struct %s has no member %q", s.name, member))
}

// Set writes the named member of a struct laid out at base.
func (s *Struct) Set(b []byte, base int, member string, v any) {
	for _, m := range s.members {
		if m.Name == member {
			m.Codec.put(b, base+s.offsets[member], v)
			return
		}
	}
	panic(fmt.Sprintf("binary: struct %s has no member %q", s.name, member))
}

// decode reads every member at base.
func (s *Struct) decode(b []byte, base int) Values {
	out := make(Values, len(s.members))
	pos := base
	for _, m := range s.members {
		out[m.Name] = m.Codec.get(b, pos)
		pos += m.Codec.Size()
	}
	return out
}

// encode writes the given members at base. Members missing from v are left
// untouched.
func (s *Struct) encode(b []byte, base int, v Values) {
	pos := base
	for _, m := range s.members {
		if val, ok := v[m.Name]; ok {
			m.Codec.put(b, pos, val)
		}
		pos += m.Codec.Size()
	}
}

// Equal reports whether every member named in want has the given value.
func (v Values) Equal(want Values) bool {
	for k, w := range want {
		if v[k] != w {
			return false
		}
	}
	return true
}
