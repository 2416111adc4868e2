package squeak

import "fmt"

// TokenKind distinguishes the four token shapes of the field grammar.
type TokenKind uint8

const (
	// TokenValue carries a fully decoded scalar or buffer.
	TokenValue TokenKind = iota
	// TokenHeader announces Size child tokens of a builtin class.
	TokenHeader
	// TokenReference points at a decode table entry.
	TokenReference
	// TokenRecordHeader announces Size fields of a versioned record.
	TokenRecordHeader
)

func (k TokenKind) String() string {
	switch k {
	case TokenValue:
		return "value"
	case TokenHeader:
		return "header"
	case TokenReference:
		return "reference"
	case TokenRecordHeader:
		return "record"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is one unit produced by the Tokenizer.
type Token struct {
	Value    any
	Kind     TokenKind
	Class    ClassID
	Version  uint8
	Position int
	Size     int
	Index    int
}

// IsHeader reports whether the token is followed by Size children.
func (t Token) IsHeader() bool {
	return t.Kind == TokenHeader || t.Kind == TokenRecordHeader
}

func (t Token) String() string {
	switch t.Kind {
	case TokenHeader:
		return fmt.Sprintf("%s header(%d) @%d", t.Class, t.Size, t.Position)
	case TokenRecordHeader:
		return fmt.Sprintf("%s v%d record(%d) @%d", t.Class, t.Version, t.Size, t.Position)
	case TokenReference:
		return fmt.Sprintf("Ref(%d) @%d", t.Index, t.Position)
	default:
		return fmt.Sprintf("%s %v @%d", t.Class, t.Value, t.Position)
	}
}
