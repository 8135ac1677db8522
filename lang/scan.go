package lang

import (
	"iter"
	"unicode/utf8"
)

// Scanner converts source text into a stream of tokens on demand.
//
// Tokens are produced one at a time by [Scanner.Next]; the scanner never
// rewinds. Once the input is exhausted every call returns a [KindEnd] token.
type Scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{
		input: []byte(src),
		pos:   0,
		line:  1,
		col:   1,
	}
}

// Next scans and returns the next token.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	pos := s.position()

	if s.eof() {
		return Token{Kind: KindEnd, Pos: pos}
	}

	ch := s.peek()

	switch {
	case isLetter(ch):
		return s.scanRun(KindIdentifier, pos, isIdentifierContinue)

	case isDigit(ch):
		return s.scanRun(KindNumber, pos, isDigit)
	}

	start := s.pos
	s.advance()

	return Token{
		Kind:   atomKind(ch),
		Lexeme: string(s.input[start:s.pos]),
		Pos:    pos,
	}
}

// All returns an iterator over the remaining tokens, ending with (and
// including) the first [KindEnd] token.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := s.Next()
			if !yield(tok) || tok.Kind == KindEnd {
				return
			}
		}
	}
}

// scanRun consumes the first character and every following character
// accepted by cont (maximal munch).
func (s *Scanner) scanRun(kind Kind, pos Position, cont func(rune) bool) Token {
	start := s.pos

	s.advance()

	for !s.eof() && cont(s.peek()) {
		s.advance()
	}

	return Token{
		Kind:   kind,
		Lexeme: string(s.input[start:s.pos]),
		Pos:    pos,
	}
}

// atomKind classifies a single-character token.
func atomKind(ch rune) Kind {
	switch ch {
	case '(':
		return KindLParen

	case ')':
		return KindRParen

	case '+':
		return KindPlus

	case '-':
		return KindMinus

	case '*':
		return KindAsterisk

	case '/':
		return KindSlash

	case '.':
		return KindDot

	default:
		return KindUnexpected
	}
}

// Helper methods

func (s *Scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

func (s *Scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func (s *Scanner) skipWhitespace() {
	for !s.eof() && isSpace(s.peek()) {
		s.advance()
	}
}

// IsIdentifier reports whether s is exactly one identifier token.
func IsIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isLetter(r) || !isIdentifierContinue(r) {
			return false
		}
	}

	return s != ""
}

// Character classification

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierContinue(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}
