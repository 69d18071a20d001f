package ferricalc

import (
	"math/big"
	"strings"

	"github.com/google/btree"
)

// MemberKind distinguishes the two kinds of environment entries.
type MemberKind int8

const (
	KindVar MemberKind = iota
	KindFunc
)

func (k MemberKind) String() string {
	switch k {
	case KindVar:
		return "Var"
	case KindFunc:
		return "Func"
	default:
		return "MemberKind(" + string(rune('0'+k)) + ")"
	}
}

// Func is a callable environment member: a native builtin or a
// user-defined single-expression function. The set is closed.
type Func interface {
	fn()
}

// Builtin is a native function over an ordered argument list.
type Builtin struct {
	Name string
	Call func(args []*big.Float) (*big.Float, error)
}

// UserFunc is a function defined by an assignment like "f(x) = x^2". Body
// is shared by reference across every future call and never mutated.
type UserFunc struct {
	Params []string
	Body   Expr
}

func (*Builtin) fn()  {}
func (*UserFunc) fn() {}

type member struct {
	name string
	val  *big.Float // non-nil iff the member is a variable
	fn   Func       // non-nil iff the member is a function
}

func (m member) kind() MemberKind {
	if m.fn != nil {
		return KindFunc
	}
	return KindVar
}

// Env is the per-session mapping from names to variables and functions.
// Both kinds share one ordered namespace, so assigning either kind over an
// existing name replaces the entry, whatever its kind was. Env is not safe
// for concurrent use: the calculator evaluates one statement at a time,
// and any concurrent adaptation must serialize access.
type Env struct {
	members *btree.BTreeG[member]
}

// NewEnv creates an environment with the builtin math functions
// registered.
func NewEnv() *Env {
	e := &Env{
		members: btree.NewG(2, func(a, b member) bool { return a.name < b.name }),
	}
	registerBuiltins(e)
	return e
}

// SetVar binds name to a variable holding v, replacing any existing member
// under that name.
func (e *Env) SetVar(name string, v *big.Float) {
	e.members.ReplaceOrInsert(member{name: name, val: v})
}

// Var returns the variable bound to name. The second result is false if
// name is unbound or bound to a function.
func (e *Env) Var(name string) (*big.Float, bool) {
	m, ok := e.members.Get(member{name: name})
	if !ok || m.val == nil {
		return nil, false
	}
	return m.val, true
}

// SetFunc binds name to a function, replacing any existing member under
// that name.
func (e *Env) SetFunc(name string, f Func) {
	e.members.ReplaceOrInsert(member{name: name, fn: f})
}

// Func returns the function bound to name. The second result is false if
// name is unbound or bound to a variable.
func (e *Env) Func(name string) (Func, bool) {
	m, ok := e.members.Get(member{name: name})
	if !ok || m.fn == nil {
		return nil, false
	}
	return m.fn, true
}

// Search visits every member whose name starts with prefix, in
// lexicographic order, until yield returns false. The empty prefix visits
// everything. Iteration descends directly to the prefixed range of the
// tree, so the cost is O(log n + matches) rather than a full scan; the
// host calls this per keystroke for completion.
func (e *Env) Search(prefix string, yield func(name string, kind MemberKind) bool) {
	e.members.AscendGreaterOrEqual(member{name: prefix}, func(m member) bool {
		if !strings.HasPrefix(m.name, prefix) {
			return false
		}
		return yield(m.name, m.kind())
	})
}
