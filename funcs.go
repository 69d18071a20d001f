package ferricalc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// registerBuiltins installs the native math functions into an environment.
// Builtins share the namespace with everything else, so a later assignment
// to the same name replaces them.
func registerBuiltins(e *Env) {
	for name, f := range builtins {
		e.SetFunc(name, &Builtin{Name: name, Call: f})
	}
}

var builtins = map[string]func([]*big.Float) (*big.Float, error){
	"sum":  sum,
	"avg":  avg,
	"min":  minOf,
	"max":  maxOf,
	"sqrt": sqrt,
	"sin":  sin,
}

// sum folds + over the arguments with identity 0.
func sum(args []*big.Float) (*big.Float, error) {
	r := new(big.Float).SetPrec(PrecBits)
	for _, a := range args {
		r.Add(r, a)
	}
	return r, nil
}

func avg(args []*big.Float) (*big.Float, error) {
	if len(args) == 0 {
		return nil, &EmptyArgsError{Func: "avg"}
	}
	r, _ := sum(args)
	n := new(big.Float).SetPrec(PrecBits).SetInt64(int64(len(args)))
	return r.Quo(r, n), nil
}

// minOf returns the smallest argument; ties keep the first occurrence.
func minOf(args []*big.Float) (*big.Float, error) {
	if len(args) == 0 {
		return nil, &EmptyArgsError{Func: "min"}
	}
	r := args[0]
	for _, a := range args[1:] {
		if a.Cmp(r) < 0 {
			r = a
		}
	}
	return new(big.Float).SetPrec(PrecBits).Set(r), nil
}

// maxOf returns the largest argument; ties keep the first occurrence.
func maxOf(args []*big.Float) (*big.Float, error) {
	if len(args) == 0 {
		return nil, &EmptyArgsError{Func: "max"}
	}
	r := args[0]
	for _, a := range args[1:] {
		if a.Cmp(r) > 0 {
			r = a
		}
	}
	return new(big.Float).SetPrec(PrecBits).Set(r), nil
}

// sqrt takes the square root of its first argument; extra arguments are
// ignored.
func sqrt(args []*big.Float) (*big.Float, error) {
	if len(args) == 0 {
		return nil, &EmptyArgsError{Func: "sqrt"}
	}
	x := args[0]
	if x.Sign() < 0 {
		return nil, &DomainError{X: x, Func: "sqrt"}
	}
	return new(big.Float).SetPrec(PrecBits).Sqrt(x), nil
}

// sin takes the sine of its first argument; extra arguments are ignored.
func sin(args []*big.Float) (*big.Float, error) {
	if len(args) == 0 {
		return nil, &EmptyArgsError{Func: "sin"}
	}
	if args[0].IsInf() {
		return nil, &DomainError{X: args[0], Func: "sin"}
	}
	return sinFloat(args[0]), nil
}

// sinFloat computes sin(x) to PrecBits of precision. The bigfloat package
// has no trig, so the argument is reduced into [-π, π] and the Taylor
// series summed directly; 64 guard bits keep the reduction and the series
// from contaminating the rounded result.
func sinFloat(x *big.Float) *big.Float {
	const guard = 64
	work := uint(PrecBits + guard)

	pi := bigfloat.Pi(new(big.Float).SetPrec(work))
	tau := new(big.Float).SetPrec(work).Add(pi, pi)
	z := new(big.Float).SetPrec(work).Set(x)
	if new(big.Float).Abs(z).Cmp(pi) > 0 {
		// z -= round(z/tau) * tau, rounding half away from zero.
		q := new(big.Float).SetPrec(work).Quo(z, tau)
		half := big.NewFloat(0.5)
		if q.Sign() >= 0 {
			q.Add(q, half)
		} else {
			q.Sub(q, half)
		}
		n, _ := q.Int(nil)
		if n.Sign() != 0 {
			m := new(big.Float).SetPrec(work).SetInt(n)
			z.Sub(z, m.Mul(m, tau))
		}
	}

	// sin z = z - z^3/3! + z^5/5! - ...; each term is the previous times
	// -z^2/((2k)(2k+1)). With |z| <= π the terms decay factorially.
	z2 := new(big.Float).SetPrec(work).Mul(z, z)
	term := new(big.Float).SetPrec(work).Set(z)
	r := new(big.Float).SetPrec(work).Set(z)
	k := new(big.Float).SetPrec(work)
	for i := int64(1); term.Sign() != 0; i++ {
		term.Mul(term, z2)
		term.Quo(term, k.SetInt64(2*i*(2*i+1)))
		term.Neg(term)
		r.Add(r, term)
		if term.MantExp(nil) < r.MantExp(nil)-int(work) {
			break
		}
	}
	return new(big.Float).SetPrec(PrecBits).Set(r)
}

// EmptyArgsError is an error from calling a builtin that requires at least
// one argument with none.
type EmptyArgsError struct {
	// Func is the builtin's name.
	Func string
}

func (err *EmptyArgsError) Error() string {
	return "Function '" + err.Func + "' needs at least 1 arg"
}

// DomainError is an error from applying a function or operator to an
// argument outside its domain.
type DomainError struct {
	// X is the out-of-domain operand, if one can be singled out.
	X *big.Float
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	if err.X == nil {
		return "argument outside domain of " + err.Func
	}
	return err.X.String() + " outside domain of " + err.Func
}
