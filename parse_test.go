package ferricalc_test

import (
	"errors"
	"testing"

	calc "github.com/aatukaj/ferricalc"
)

func parse(src string) (calc.Stmt, error) {
	return calc.Parse(calc.Scan(src), src)
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "5", "5"},
		{"var", "x", "x"},
		{"precedence", "2+3*4", "(+ 2 (* 3 4))"},
		{"group", "(2+3)*4", "(* (group (+ 2 3)) 4)"},
		{"sub-chain", "4-5-6", "(- (- 4 5) 6)"},
		{"div-chain", "4/5/6", "(/ (/ 4 5) 6)"},
		// exponentiation folds left, unlike the usual math reading
		{"pow-left", "2^3^2", "(^ (^ 2 3) 2)"},
		{"pow-left-chain", "2^3^2^2", "(^ (^ (^ 2 3) 2) 2)"},
		{"neg-pow", "-2^2", "(- (^ 2 2))"},
		{"pow-neg-rhs", "2^-3", "(^ 2 (- 3))"},
		{"pow-neg-mid-chain", "2^-3^2", "(^ (^ 2 (- 3)) 2)"},
		{"mul-neg-rhs", "2*-3", "(* 2 (- 3))"},
		{"unary-plus", "+x", "(+ x)"},
		{"unary-stack", "--x", "(- (- x))"},
		{"call", "f(1,2)", "(f 1 2)"},
		{"call-nested", "f(g(1), 2+3)", "(f (g 1) (+ 2 3))"},
		{"var-assign", "x=5", "x = 5"},
		{"var-assign-expr", "x=2+3", "x = (+ 2 3)"},
		{"fn-assign", "f(x)=x^2", "(f x) = (^ x 2)"},
		{"fn-assign-two", "g(a,b)=a*b", "(g a b) = (* a b)"},
		{"ans", "ans*2", "(* ans 2)"},
		{"spaces", " 1 + 2 ", "(+ 1 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := calc.PrintStmt(s, c.src); got != c.want {
				t.Errorf("%q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		as   any
	}{
		{"empty", "", new(*calc.SyntaxError)},
		{"operand", "1+", new(*calc.SyntaxError)},
		{"unknown-rune", "$", new(*calc.SyntaxError)},
		{"unclosed-group", "(1", new(*calc.BracketError)},
		{"unclosed-call", "f(1", new(*calc.BracketError)},
		{"empty-call", "f()", new(*calc.SyntaxError)},
		{"dangling-comma", "f(1,)", new(*calc.SyntaxError)},
		{"bad-target", "1+2=3", new(*calc.AssignTargetError)},
		{"bad-target-num", "5=1", new(*calc.AssignTargetError)},
		{"bad-params", "f(1)=2", new(*calc.ParamError)},
		{"bad-params-expr", "f(x+1)=2", new(*calc.ParamError)},
		{"trailing", "1 2", new(*calc.TrailingError)},
		{"trailing-close", "(1+2))", new(*calc.TrailingError)},
		{"trailing-unknown", "2$", new(*calc.TrailingError)},
		{"double-equal", "x=1=2", new(*calc.TrailingError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %s; want error", c.src, calc.PrintStmt(s, c.src))
			}
			if !errors.As(err, c.as) {
				t.Errorf("%q gave wrong error type: %#v", c.src, err)
			}
			var ie calc.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q error is not an InputError: %#v", c.src, err)
			}
			if p := ie.Pos(); p < 0 || p > len(c.src) {
				t.Errorf("%q error position %d out of range", c.src, p)
			}
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"1+", 2},
		{"1 2", 2},
		{"1+2=3", 3},
		{"f(1)=2", 4},
	}
	for _, c := range cases {
		_, err := parse(c.src)
		if err == nil {
			t.Errorf("%q parsed; want error", c.src)
			continue
		}
		var ie calc.InputError
		if !errors.As(err, &ie) {
			t.Errorf("%q error is not an InputError: %#v", c.src, err)
			continue
		}
		if ie.Pos() != c.pos {
			t.Errorf("%q error at %d, want %d (%v)", c.src, ie.Pos(), c.pos, err)
		}
	}
}
