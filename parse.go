package ferricalc

// Grammar, lowest to highest binding:
//
//	statement  := assignment | expression
//	assignment := (identifier | call) '=' expression
//	expression := term
//	term       := factor (('+'|'-') factor)*
//	factor     := unary (('*'|'/') unary)*
//	unary      := ('-'|'+') unary | exponent
//	exponent   := primary ('^' signed)*
//	signed     := ('-'|'+') signed | primary
//	primary    := number | '(' expression ')'
//	            | identifier ['(' expression (',' expression)* ')']
//
// Exponentiation folds left like addition, so 2^3^2 parses as (2^3)^2.
// That is a language rule, not an accident; eval tests pin it. The right
// operand of '^' is signed, not unary: unary would recurse back into
// exponent and swallow the rest of the chain, folding it right. Unary sign
// binds looser than '^', so -2^2 is -(2^2), and unary is reachable from
// factor's right operand, so 2*-3 parses.

// Parse turns a scanned token sequence into a single statement. tokens
// must be the result of Scan(src). The statement must consume the entire
// input; a leftover token is an error. All failures are reported as
// InputError values.
func Parse(tokens []Token, src string) (Stmt, error) {
	p := parser{tokens: tokens, src: src}
	s, err := p.statement()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, &TrailingError{Col: t.Start, Got: t.Text(src)}
	}
	return s, nil
}

type parser struct {
	tokens  []Token
	src     string
	current int
}

// match consumes the next token if its kind is one of kinds.
func (p *parser) match(kinds ...TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(kind TokenKind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) atEnd() bool {
	return p.peek().Kind == EOF
}

func (p *parser) statement() (Stmt, error) {
	ex, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.match(Equal) {
		return &ExprStmt{X: ex}, nil
	}
	eq := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	switch lhs := ex.(type) {
	case *Var:
		return &VarAssign{Name: lhs.Name, Value: value}, nil
	case *Call:
		// The call arguments become the parameter names, so each must be a
		// bare identifier.
		params := make([]string, len(lhs.Args))
		for i, a := range lhs.Args {
			v, ok := a.(*Var)
			if !ok {
				return nil, &ParamError{Col: eq.Start}
			}
			params[i] = v.Name
		}
		return &FuncAssign{Name: lhs.Name, Params: params, Body: value}, nil
	default:
		return nil, &AssignTargetError{Col: eq.Start}
	}
}

func (p *parser) expression() (Expr, error) {
	return p.term()
}

func (p *parser) term() (Expr, error) {
	ex, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(Plus, Minus) {
		op := p.previous()
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		ex = &Binary{Lhs: ex, Op: op, Rhs: rhs}
	}
	return ex, nil
}

func (p *parser) factor() (Expr, error) {
	ex, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(Slash, Star) {
		op := p.previous()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		ex = &Binary{Lhs: ex, Op: op, Rhs: rhs}
	}
	return ex, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(Minus, Plus) {
		op := p.previous()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Rhs: rhs}, nil
	}
	return p.exponent()
}

func (p *parser) exponent() (Expr, error) {
	ex, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(Caret) {
		op := p.previous()
		rhs, err := p.signed()
		if err != nil {
			return nil, err
		}
		ex = &Binary{Lhs: ex, Op: op, Rhs: rhs}
	}
	return ex, nil
}

// signed parses an optionally signed primary. It is the right operand of
// '^' and must not re-enter exponent; see the grammar note above.
func (p *parser) signed() (Expr, error) {
	if p.match(Minus, Plus) {
		op := p.previous()
		rhs, err := p.signed()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Rhs: rhs}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	if p.match(Number) {
		return &Literal{Value: p.previous().Literal}, nil
	}
	if p.match(LParen) {
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.match(RParen) {
			return nil, &BracketError{Col: p.peek().Start}
		}
		return &Grouping{Inner: inner}, nil
	}
	if p.match(Ident) {
		name := p.previous().Text(p.src)
		if !p.match(LParen) {
			return &Var{Name: name}, nil
		}
		var args []Expr
		for {
			a, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(Comma) {
				break
			}
		}
		if !p.match(RParen) {
			return nil, &BracketError{Col: p.peek().Start}
		}
		return &Call{Name: name, Args: args}, nil
	}
	t := p.peek()
	return nil, &SyntaxError{Col: t.Start, Got: t.Text(p.src)}
}
