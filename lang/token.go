package lang

import (
	"fmt"
	"strconv"
)

// Kind classifies a lexical token.
type Kind int

const (
	// KindEnd marks the end of input. It is returned on every call to
	// [Scanner.Next] once the input is exhausted.
	KindEnd Kind = iota
	KindIdentifier
	KindNumber
	KindLParen
	KindRParen
	KindPlus
	KindMinus
	KindAsterisk
	KindSlash
	KindDot
	// KindUnexpected carries a single character that starts no other token.
	KindUnexpected
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "END"

	case KindIdentifier:
		return "IDENTIFIER"

	case KindNumber:
		return "NUMBER"

	case KindLParen:
		return "LPAREN"

	case KindRParen:
		return "RPAREN"

	case KindPlus:
		return "PLUS"

	case KindMinus:
		return "MINUS"

	case KindAsterisk:
		return "ASTERISK"

	case KindSlash:
		return "SLASH"

	case KindDot:
		return "DOT"

	case KindUnexpected:
		return "UNEXPECTED"

	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Position identifies a location in source text.
// Line and Column are 1-based; the zero Position is invalid.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether p refers to an actual source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line L, column C".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a classified lexical unit. Lexeme is the exact text matched, and
// is empty for [KindEnd].
type Token struct {
	Lexeme string
	Kind   Kind
	Pos    Position
}

// String returns a debugging representation of the token.
func (t Token) String() string {
	if t.Kind == KindEnd {
		return t.Kind.String()
	}

	return t.Kind.String() + "(" + strconv.Quote(t.Lexeme) + ")"
}

// describe returns a short human-readable name for t used in error messages.
func (t Token) describe() string {
	if t.Kind == KindEnd {
		return "end of input"
	}

	return strconv.Quote(t.Lexeme)
}
