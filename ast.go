package ferricalc

import (
	"math/big"
	"strings"
)

// Expr is a node in the abstract syntax tree of an expression. The set of
// implementations is closed; the evaluator and printer switch over all of
// them and panic on anything else, so adding a node kind means updating
// every consumer.
//
// Nodes are immutable once constructed. A function body is shared by
// pointer across every future call of the function.
type Expr interface {
	expr()
}

type (
	// Literal is a number literal carrying its parsed value.
	Literal struct {
		Value *big.Float
	}

	// Binary applies the operator token Op to Lhs and Rhs.
	Binary struct {
		Lhs Expr
		Op  Token
		Rhs Expr
	}

	// Unary applies the operator token Op to Rhs.
	Unary struct {
		Op  Token
		Rhs Expr
	}

	// Grouping is a parenthesized expression.
	Grouping struct {
		Inner Expr
	}

	// Var is a reference to a name.
	Var struct {
		Name string
	}

	// Call is a function call with ordered arguments.
	Call struct {
		Name string
		Args []Expr
	}
)

func (*Literal) expr()  {}
func (*Binary) expr()   {}
func (*Unary) expr()    {}
func (*Grouping) expr() {}
func (*Var) expr()      {}
func (*Call) expr()     {}

// Stmt is a complete parsed statement: a bare expression, a variable
// assignment, or a function assignment. Like Expr, the set is closed.
type Stmt interface {
	stmt()
}

type (
	// VarAssign is "name = value".
	VarAssign struct {
		Name  string
		Value Expr
	}

	// FuncAssign is "name(params...) = body". The body is not evaluated at
	// definition time.
	FuncAssign struct {
		Name   string
		Params []string
		Body   Expr
	}

	// ExprStmt is a bare expression statement.
	ExprStmt struct {
		X Expr
	}
)

func (*VarAssign) stmt()  {}
func (*FuncAssign) stmt() {}
func (*ExprStmt) stmt()   {}

// PrintStmt renders a statement as fully parenthesized prefix text, e.g.
// "2+3*4" prints as "(+ 2 (* 3 4))" and "f(x)=x^2" as "(f x) = (^ x 2)".
// src must be the source the statement was parsed from; operator tokens
// render as their source text. The output is for debugging and tests.
func PrintStmt(s Stmt, src string) string {
	var b strings.Builder
	switch s := s.(type) {
	case *VarAssign:
		b.WriteString(s.Name)
		b.WriteString(" = ")
		fmtExpr(&b, s.Value, src)
	case *FuncAssign:
		b.WriteByte('(')
		b.WriteString(s.Name)
		for _, p := range s.Params {
			b.WriteByte(' ')
			b.WriteString(p)
		}
		b.WriteString(") = ")
		fmtExpr(&b, s.Body, src)
	case *ExprStmt:
		fmtExpr(&b, s.X, src)
	default:
		panic("ferricalc: unknown statement type")
	}
	return b.String()
}

// PrintExpr is PrintStmt for a bare expression node.
func PrintExpr(e Expr, src string) string {
	var b strings.Builder
	fmtExpr(&b, e, src)
	return b.String()
}

func fmtExpr(b *strings.Builder, e Expr, src string) {
	switch e := e.(type) {
	case *Literal:
		b.WriteString(e.Value.String())
	case *Binary:
		b.WriteByte('(')
		b.WriteString(e.Op.Text(src))
		b.WriteByte(' ')
		fmtExpr(b, e.Lhs, src)
		b.WriteByte(' ')
		fmtExpr(b, e.Rhs, src)
		b.WriteByte(')')
	case *Unary:
		b.WriteByte('(')
		b.WriteString(e.Op.Text(src))
		b.WriteByte(' ')
		fmtExpr(b, e.Rhs, src)
		b.WriteByte(')')
	case *Grouping:
		b.WriteString("(group ")
		fmtExpr(b, e.Inner, src)
		b.WriteByte(')')
	case *Var:
		b.WriteString(e.Name)
	case *Call:
		b.WriteByte('(')
		b.WriteString(e.Name)
		for _, a := range e.Args {
			b.WriteByte(' ')
			fmtExpr(b, a, src)
		}
		b.WriteByte(')')
	default:
		panic("ferricalc: unknown expression type")
	}
}
