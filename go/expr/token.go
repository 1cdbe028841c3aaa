package expr

import "fmt"

// Word is the machine word every literal and result is held in. Arithmetic
// on it wraps.
type Word uint32

// Kind is the type of a Token.
type Kind int

const (
	// space is only produced by the whitespace rule and never reaches a Tokens slice.
	space Kind = iota
	Number
	Equal
	Multiply
	Divide
	Plus
	Minus
	LParen
	RParen
)

var kindNames = map[Kind]string{
	space:    "space",
	Number:   "Number",
	Equal:    "==",
	Multiply: "*",
	Divide:   "/",
	Plus:     "+",
	Minus:    "-",
	LParen:   "(",
	RParen:   ")",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) isAdditive() bool {
	return k == Plus || k == Minus
}

func (k Kind) isMultiplicative() bool {
	return k == Multiply || k == Divide
}

// Token is a single lexical unit. Text is only set for Number tokens.
type Token struct {
	Kind   Kind
	Text   string
	Offset int // Byte offset of the token in the input.
}

// End returns the offset just past the token.
func (t Token) End() int {
	switch t.Kind {
	case Number:
		return t.Offset + len(t.Text)
	case Equal:
		return t.Offset + 2
	default:
		return t.Offset + 1
	}
}

func (t Token) String() string {
	if t.Kind == Number {
		return t.Text
	}
	return t.Kind.String()
}

// Tokens is the output of a single Lex call. It is never modified after
// lexing; evaluation works on index ranges into it.
type Tokens []Token
