package ferricalc

import (
	"math/big"
	"testing"
)

func tok(kind TokenKind, start, end int) Token {
	return Token{Kind: kind, Start: start, End: end}
}

func num(lit string, start, end int) Token {
	v, _, err := big.ParseFloat(lit, 10, PrecBits, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return Token{Kind: Number, Literal: v, Start: start, End: end}
}

func TestScan(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{"   ", nil},
		// numbers
		{"0", []Token{num("0", 0, 1)}},
		{"9876543210", []Token{num("9876543210", 0, 10)}},
		{"12.34", []Token{num("12.34", 0, 5)}},
		// the dot is consumed only when a digit follows
		{"1.", []Token{num("1", 0, 1), tok(Dot, 1, 2)}},
		{"1.2.3", []Token{num("1.2", 0, 3), tok(Dot, 3, 4), num("3", 4, 5)}},
		{".5", []Token{tok(Dot, 0, 1), num("5", 1, 2)}},
		// no exponent syntax in literals
		{"1e3", []Token{num("1", 0, 1), tok(Ident, 1, 3)}},
		// identifiers start with a letter
		{"foo1 bar", []Token{tok(Ident, 0, 4), tok(Ident, 5, 8)}},
		{"1x", []Token{num("1", 0, 1), tok(Ident, 1, 2)}},
		// operators and punctuation
		{"2+3*4", []Token{num("2", 0, 1), tok(Plus, 1, 2), num("3", 2, 3), tok(Star, 3, 4), num("4", 4, 5)}},
		{"2^-3", []Token{num("2", 0, 1), tok(Caret, 1, 2), tok(Minus, 2, 3), num("3", 3, 4)}},
		{"x=5", []Token{tok(Ident, 0, 1), tok(Equal, 1, 2), num("5", 2, 3)}},
		{"f(x, y)/2", []Token{tok(Ident, 0, 1), tok(LParen, 1, 2), tok(Ident, 2, 3), tok(Comma, 3, 4), tok(Ident, 5, 6), tok(RParen, 6, 7), tok(Slash, 7, 8), num("2", 8, 9)}},
		// anything else is Unknown, never an error
		{"#", []Token{tok(Unknown, 0, 1)}},
		{"a$b", []Token{tok(Ident, 0, 1), tok(Unknown, 1, 2), tok(Ident, 2, 3)}},
		// non-ASCII bytes come out as Unknown, byte by byte
		{"π", []Token{tok(Unknown, 0, 1), tok(Unknown, 1, 2)}},
	}
	for _, c := range cases {
		got := Scan(c.src)
		want := append(append([]Token(nil), c.tokens...), tok(EOF, len(c.src), len(c.src)))
		if len(got) != len(want) {
			t.Errorf("scanning %q: want %d tokens, got %d: %v", c.src, len(want), len(got), got)
			continue
		}
		for i := range want {
			g, w := got[i], want[i]
			if g.Kind != w.Kind || g.Start != w.Start || g.End != w.End {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, w, g)
			}
			switch {
			case w.Literal == nil && g.Literal != nil:
				t.Errorf("scanning %q: token %d: unexpected literal %v", c.src, i, g.Literal)
			case w.Literal != nil && (g.Literal == nil || g.Literal.Cmp(w.Literal) != 0):
				t.Errorf("scanning %q: token %d: want literal %v, got %v", c.src, i, w.Literal, g.Literal)
			}
		}
	}
}

func TestScanLiteralPrecision(t *testing.T) {
	toks := Scan("0.1")
	if toks[0].Kind != Number {
		t.Fatalf("want Number, got %v", toks[0])
	}
	if p := toks[0].Literal.Prec(); p != PrecBits {
		t.Errorf("literal precision: want %d, got %d", PrecBits, p)
	}
	want, _, _ := big.ParseFloat("0.1", 10, PrecBits, big.ToNearestEven)
	if toks[0].Literal.Cmp(want) != 0 {
		t.Errorf("literal value: want %v, got %v", want, toks[0].Literal)
	}
}

func TestTokenText(t *testing.T) {
	src := "avg(1, 22)"
	for _, tk := range Scan(src) {
		if tk.Kind == EOF {
			if tk.Text(src) != "" {
				t.Errorf("EOF text: want empty, got %q", tk.Text(src))
			}
			continue
		}
		if got := tk.Text(src); got != src[tk.Start:tk.End] {
			t.Errorf("token %v: want %q, got %q", tk, src[tk.Start:tk.End], got)
		}
	}
}
