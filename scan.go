package ferricalc

import (
	"math/big"
	"strconv"
)

// PrecBits is the mantissa precision, in bits, of every number the
// calculator computes with. Display precision is a separate concern; see
// FormatFloat.
const PrecBits = 256

// TokenKind classifies a scanned token.
type TokenKind int8

const (
	LParen TokenKind = iota
	RParen
	Comma
	Dot
	Minus
	Plus
	Slash
	Star
	Caret
	Equal
	Ident
	Number
	EOF
	Unknown
)

var kindNames = [...]string{
	LParen:  "LParen",
	RParen:  "RParen",
	Comma:   "Comma",
	Dot:     "Dot",
	Minus:   "Minus",
	Plus:    "Plus",
	Slash:   "Slash",
	Star:    "Star",
	Caret:   "Caret",
	Equal:   "Equal",
	Ident:   "Ident",
	Number:  "Number",
	EOF:     "EOF",
	Unknown: "Unknown",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical unit. Start and End are byte offsets into the
// source text, forming a half-open range. Literal is non-nil only for
// Number tokens and holds the eagerly parsed value.
type Token struct {
	Kind    TokenKind
	Literal *big.Float
	Start   int
	End     int
}

// Text returns the token's slice of the source it was scanned from.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

func (t Token) String() string {
	return t.Kind.String() + "@" + strconv.Itoa(t.Start) + ":" + strconv.Itoa(t.End)
}

// Scan converts source text into tokens. Scanning never fails: a byte that
// matches no rule becomes an Unknown token, and rejecting it is deferred to
// the parser, which only complains if it actually needs a valid token
// there. The returned sequence always ends with an EOF token whose span is
// empty.
func Scan(src string) []Token {
	s := scanner{src: src}
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Kind: EOF, Start: s.current, End: s.current})
	return s.tokens
}

type scanner struct {
	src     string
	tokens  []Token
	start   int
	current int
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.src)
}

func (s *scanner) add(kind TokenKind) {
	s.tokens = append(s.tokens, Token{Kind: kind, Start: s.start, End: s.current})
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch {
	case c == '(':
		s.add(LParen)
	case c == ')':
		s.add(RParen)
	case c == ',':
		s.add(Comma)
	case c == '.':
		s.add(Dot)
	case c == '-':
		s.add(Minus)
	case c == '+':
		s.add(Plus)
	case c == '/':
		s.add(Slash)
	case c == '*':
		s.add(Star)
	case c == '^':
		s.add(Caret)
	case c == '=':
		s.add(Equal)
	case c == ' ':
		// Spaces separate tokens and are otherwise ignored.
	case isDigit(c):
		s.number()
	case isAlpha(c):
		s.ident()
	default:
		s.add(Unknown)
	}
}

// number scans a run of digits, optionally followed by a dot and more
// digits. The dot is consumed only when a digit follows it, so "1." scans
// as a Number and a Dot. The literal value is parsed here, at full
// precision.
func (s *scanner) number() {
	s.advanceWhile(isDigit)
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		s.advanceWhile(isDigit)
	}
	text := s.src[s.start:s.current]
	lit, _, err := big.ParseFloat(text, 10, PrecBits, big.ToNearestEven)
	if err != nil {
		panic("ferricalc: invalid number " + strconv.Quote(text) + ": " + err.Error())
	}
	s.tokens = append(s.tokens, Token{Kind: Number, Literal: lit, Start: s.start, End: s.current})
}

func (s *scanner) ident() {
	s.advanceWhile(isAlphaNumeric)
	s.add(Ident)
}

func (s *scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *scanner) advanceWhile(pred func(byte) bool) {
	for !s.atEnd() && pred(s.src[s.current]) {
		s.current++
	}
}

// peek returns the next byte without consuming it, or 0 at end of input.
func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
