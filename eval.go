package ferricalc

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// maxCallDepth bounds nesting of user-function calls. Unbounded recursion
// would otherwise exhaust the host stack fatally; exceeding the limit is a
// reported error instead.
const maxCallDepth = 1000

// Interp evaluates statements against a session environment. It is not
// safe for concurrent use: the calculator is single-writer by design, and
// any concurrent adaptation must serialize access to the Interp.
type Interp struct {
	env *Env
	ans *big.Float
	// scopes is the stack of call-local parameter frames. One frame is
	// pushed per user-function call and popped on every exit path, so
	// nested and recursive calls each see their own bindings. Variable
	// lookup consults only the innermost frame; there is no lexical
	// nesting in this language.
	scopes []map[string]*big.Float
}

// NewInterp creates an interpreter with a fresh environment and a zero
// last-result register.
func NewInterp() *Interp {
	return &Interp{
		env: NewEnv(),
		ans: new(big.Float).SetPrec(PrecBits),
	}
}

// Env returns the session environment, e.g. for completion searches.
func (in *Interp) Env() *Env {
	return in.env
}

// Ans returns a copy of the last-result register.
func (in *Interp) Ans() *big.Float {
	return new(big.Float).Copy(in.ans)
}

// SetAns stores a statement result into the last-result register. The host
// calls this after each successful committed evaluation.
func (in *Interp) SetAns(v *big.Float) {
	in.ans.Copy(v)
}

// Eval evaluates one statement. With persist true, assignments mutate the
// environment; with persist false the statement is evaluated as a preview
// and the environment is left untouched. Either way the assigned value (or
// 1, for a function definition) is returned. An assignment persists only
// if evaluating its value succeeds, so a failed statement never mutates
// state partially.
func (in *Interp) Eval(s Stmt, persist bool) (*big.Float, error) {
	switch s := s.(type) {
	case *VarAssign:
		v, err := in.eval(s.Value)
		if err != nil {
			return nil, err
		}
		if persist {
			in.env.SetVar(s.Name, v)
		}
		return v, nil
	case *FuncAssign:
		// The body is stored unevaluated and shared across future calls.
		if persist {
			in.env.SetFunc(s.Name, &UserFunc{Params: s.Params, Body: s.Body})
		}
		return new(big.Float).SetPrec(PrecBits).SetInt64(1), nil
	case *ExprStmt:
		return in.eval(s.X)
	default:
		panic("ferricalc: unknown statement type")
	}
}

func (in *Interp) eval(e Expr) (*big.Float, error) {
	switch e := e.(type) {
	case *Literal:
		return new(big.Float).SetPrec(PrecBits).Set(e.Value), nil
	case *Grouping:
		return in.eval(e.Inner)
	case *Var:
		return in.lookup(e.Name)
	case *Unary:
		v, err := in.eval(e.Rhs)
		if err != nil {
			return nil, err
		}
		switch e.Op.Kind {
		case Minus:
			v.Neg(v)
		case Plus:
			// Identity.
		default:
			panic("ferricalc: unexpected unary operator " + e.Op.Kind.String())
		}
		return v, nil
	case *Binary:
		l, err := in.eval(e.Lhs)
		if err != nil {
			return nil, err
		}
		r, err := in.eval(e.Rhs)
		if err != nil {
			return nil, err
		}
		return binary(e.Op, l, r)
	case *Call:
		return in.call(e)
	default:
		panic("ferricalc: unknown expression type")
	}
}

// lookup resolves a variable reference: the reserved register first, then
// the innermost call frame, then the environment.
func (in *Interp) lookup(name string) (*big.Float, error) {
	if name == "ans" {
		// ans is reserved. Assigning a variable named ans is legal syntax
		// but never shadows the register.
		return in.Ans(), nil
	}
	if k := len(in.scopes); k > 0 {
		if v, ok := in.scopes[k-1][name]; ok {
			return new(big.Float).Copy(v), nil
		}
	}
	if v, ok := in.env.Var(name); ok {
		return new(big.Float).Copy(v), nil
	}
	return nil, &UndeclaredError{Name: name}
}

// nanGuard converts a big.ErrNaN panic into a DomainError. math/big and
// bigfloat signal indeterminate operations (inf-inf, 0*inf, log of a
// non-positive number) by panicking with ErrNaN; any other panic is
// re-raised.
func nanGuard(res **big.Float, err *error, x *big.Float, fn string) {
	p := recover()
	if p == nil {
		return
	}
	e, ok := p.(error)
	if !ok || !errors.As(e, new(big.ErrNaN)) {
		panic(p)
	}
	*res, *err = nil, &DomainError{X: x, Func: fn}
}

func opSymbol(k TokenKind) string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Caret:
		return "^"
	default:
		return k.String()
	}
}

func binary(op Token, l, r *big.Float) (res *big.Float, err error) {
	defer nanGuard(&res, &err, r, opSymbol(op.Kind))
	switch op.Kind {
	case Plus:
		l.Add(l, r)
	case Minus:
		l.Sub(l, r)
	case Star:
		l.Mul(l, r)
	case Slash:
		// big.Float panics on 0/0 and inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case Caret:
		return pow(l, r)
	default:
		panic("ferricalc: unexpected binary operator " + op.Kind.String())
	}
	return l, nil
}

// pow computes l^r in place of l. bigfloat.Pow is exp/log based and cannot
// take a negative base, so integer exponents of negative bases are
// computed on |l| with the sign restored by parity; a fractional exponent
// of a negative base is a domain error. ErrNaN panics from the remaining
// edge cases (infinite operands) are caught by binary's guard.
func pow(l, r *big.Float) (*big.Float, error) {
	switch {
	case r.Sign() == 0:
		return l.SetInt64(1), nil
	case l.Sign() == 0:
		if r.Sign() < 0 {
			return l.SetInf(false), nil
		}
		return l, nil
	}
	if l.Signbit() {
		if !r.IsInt() {
			return nil, &DomainError{X: l, Func: "^"}
		}
		odd := false
		if ri, acc := r.Int(nil); acc == big.Exact {
			odd = ri.Bit(0) == 1
		}
		l.Neg(l)
		bigfloat.Pow(l, l, r)
		if odd {
			l.Neg(l)
		}
		return l, nil
	}
	bigfloat.Pow(l, l, r)
	return l, nil
}

// call evaluates a function call. Arguments evaluate left to right against
// the caller's scope, before any new frame is installed.
func (in *Interp) call(e *Call) (*big.Float, error) {
	args := make([]*big.Float, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	f, ok := in.env.Func(e.Name)
	if !ok {
		return nil, &UnknownFuncError{Name: e.Name}
	}
	switch f := f.(type) {
	case *Builtin:
		return callBuiltin(f, args)
	case *UserFunc:
		if len(args) != len(f.Params) {
			return nil, &ArityError{Name: e.Name, Want: len(f.Params)}
		}
		if len(in.scopes) >= maxCallDepth {
			return nil, &RecursionError{Depth: maxCallDepth}
		}
		frame := make(map[string]*big.Float, len(f.Params))
		for i, p := range f.Params {
			frame[p] = args[i]
		}
		in.scopes = append(in.scopes, frame)
		// Pop on every exit path so an error inside the body cannot leak
		// the frame.
		defer func() { in.scopes = in.scopes[:len(in.scopes)-1] }()
		return in.eval(f.Body)
	default:
		panic("ferricalc: unknown function kind")
	}
}

// callBuiltin dispatches to a native function, converting any ErrNaN panic
// from indeterminate operands (e.g. summing opposite infinities) into a
// DomainError.
func callBuiltin(f *Builtin, args []*big.Float) (res *big.Float, err error) {
	var x *big.Float
	if len(args) > 0 {
		x = args[0]
	}
	defer nanGuard(&res, &err, x, f.Name)
	return f.Call(args)
}

// UndeclaredError is an error from referencing a name that is neither a
// call parameter nor an environment variable.
type UndeclaredError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UndeclaredError) Error() string {
	return "Undeclared variable '" + err.Name + "'"
}

// UnknownFuncError is an error from calling a name with no function bound
// to it.
type UnknownFuncError struct {
	// Name is the name that was called.
	Name string
}

func (err *UnknownFuncError) Error() string {
	return "No function named '" + err.Name + "'"
}

// ArityError is an error from calling a user-defined function with the
// wrong number of arguments.
type ArityError struct {
	// Name is the function's name.
	Name string
	// Want is the function's declared parameter count.
	Want int
}

func (err *ArityError) Error() string {
	return "Function '" + err.Name + "' takes " + strconv.Itoa(err.Want) + " args"
}

// RecursionError is an error from exceeding the call-depth limit.
type RecursionError struct {
	// Depth is the limit that was exceeded.
	Depth int
}

func (err *RecursionError) Error() string {
	return "recursion limit of " + strconv.Itoa(err.Depth) + " calls exceeded"
}
