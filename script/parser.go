package script

import "fmt"

// AST node types. Expressions and statements are separate closed sets;
// the evaluator switches over them exhaustively.
type (
	expr interface{ isExpr() }
	stmt interface{ isStmt() }

	numberLit struct{ value float64 }
	stringLit struct{ value string }
	boolLit   struct{ value bool }
	nullLit   struct{}
	identExpr struct {
		name string
		line int
		col  int
	}
	unaryExpr struct {
		op    tokenType
		right expr
	}
	binaryExpr struct {
		op    tokenType
		left  expr
		right expr
	}
	condExpr struct {
		test expr
		then expr
		alt  expr
	}
	callExpr struct {
		callee expr
		args   []expr
		line   int
		col    int
	}

	varStmt struct {
		name string
		init expr // nil when declared without initializer
	}
	assignStmt struct {
		name  string
		value expr
		line  int
		col   int
	}
	returnStmt struct {
		value expr // nil for bare return
	}
	ifStmt struct {
		test expr
		then []stmt
		alt  []stmt // nil when no else branch
	}
	whileStmt struct {
		test expr
		body []stmt
	}
	exprStmt struct {
		value expr
	}
)

func (numberLit) isExpr()  {}
func (stringLit) isExpr()  {}
func (boolLit) isExpr()    {}
func (nullLit) isExpr()    {}
func (identExpr) isExpr()  {}
func (unaryExpr) isExpr()  {}
func (binaryExpr) isExpr() {}
func (condExpr) isExpr()   {}
func (callExpr) isExpr()   {}

func (varStmt) isStmt()    {}
func (assignStmt) isStmt() {}
func (returnStmt) isStmt() {}
func (ifStmt) isStmt()     {}
func (whileStmt) isStmt()  {}
func (exprStmt) isStmt()   {}

// parser consumes the token stream produced by lex.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) check(tt tokenType) bool { return p.peek().typ == tt }

func (p *parser) match(tt tokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(tt tokenType, what string) (token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	t := p.peek()
	return token{}, &Error{Line: t.line, Col: t.col, Msg: fmt.Sprintf("expected %s", what)}
}

func (p *parser) errHere(format string, args ...any) error {
	t := p.peek()
	return &Error{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

// parseFunction parses a complete function or arrow-function source.
// This is the only entry point; free-standing statements are not a valid
// top-level form.
func (p *parser) parseFunction() (*Function, error) {
	var fn *Function
	var err error
	switch {
	case p.check(tokFunction):
		fn, err = p.functionLiteral()
	default:
		fn, err = p.arrowLiteral()
	}
	if err != nil {
		return nil, err
	}
	if !p.check(tokEOF) {
		return nil, p.errHere("unexpected trailing input after function body")
	}
	return fn, nil
}

// functionLiteral parses "function name?(params) { body }".
func (p *parser) functionLiteral() (*Function, error) {
	p.advance() // function
	name := ""
	if p.check(tokIdent) {
		name = p.advance().text
	}
	if _, err := p.expect(tokLParen, "parameter list"); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "function body"); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &Function{name: name, params: params, body: body}, nil
}

// arrowLiteral parses "(a, b) => expr", "a => expr" and the block-bodied
// variants. A single-expression body desugars to a return statement.
func (p *parser) arrowLiteral() (*Function, error) {
	var params []string
	switch {
	case p.check(tokIdent):
		params = []string{p.advance().text}
	case p.match(tokLParen):
		var err error
		params, err = p.paramList()
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.errHere("expected function or arrow parameter list")
	}
	if _, err := p.expect(tokArrow, "\"=>\""); err != nil {
		return nil, err
	}
	if p.match(tokLBrace) {
		body, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return &Function{params: params, body: body}, nil
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &Function{params: params, body: []stmt{returnStmt{value: value}}}, nil
}

// paramList parses identifiers up to the closing paren. The opening paren
// has already been consumed.
func (p *parser) paramList() ([]string, error) {
	params := []string{}
	if p.match(tokRParen) {
		return params, nil
	}
	for {
		t, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, t.text)
		if p.match(tokRParen) {
			return params, nil
		}
		if _, err := p.expect(tokComma, "\",\" or \")\""); err != nil {
			return nil, err
		}
	}
}

// blockBody parses statements until the closing brace. The opening brace
// has already been consumed.
func (p *parser) blockBody() ([]stmt, error) {
	var body []stmt
	for !p.check(tokRBrace) {
		if p.check(tokEOF) {
			return nil, p.errHere("unexpected end of input, expected \"}\"")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	p.advance() // }
	return body, nil
}

func (p *parser) statement() (stmt, error) {
	switch p.peek().typ {
	case tokVar, tokLet, tokConst:
		p.advance()
		name, err := p.expect(tokIdent, "variable name")
		if err != nil {
			return nil, err
		}
		var init expr
		if p.match(tokAssign) {
			init, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		p.match(tokSemi)
		return varStmt{name: name.text, init: init}, nil

	case tokReturn:
		p.advance()
		if p.match(tokSemi) || p.check(tokRBrace) {
			return returnStmt{}, nil
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.match(tokSemi)
		return returnStmt{value: value}, nil

	case tokIf:
		return p.ifStatement()

	case tokWhile:
		p.advance()
		if _, err := p.expect(tokLParen, "\"(\""); err != nil {
			return nil, err
		}
		test, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "\")\""); err != nil {
			return nil, err
		}
		body, err := p.branchBody()
		if err != nil {
			return nil, err
		}
		return whileStmt{test: test, body: body}, nil

	default:
		// Assignment is a statement form, not an expression, which keeps
		// "=" out of condition positions entirely.
		if p.check(tokIdent) && p.toks[p.pos+1].typ == tokAssign {
			name := p.advance()
			p.advance() // =
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			p.match(tokSemi)
			return assignStmt{name: name.text, value: value, line: name.line, col: name.col}, nil
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.match(tokSemi)
		return exprStmt{value: value}, nil
	}
}

func (p *parser) ifStatement() (stmt, error) {
	p.advance() // if
	if _, err := p.expect(tokLParen, "\"(\""); err != nil {
		return nil, err
	}
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "\")\""); err != nil {
		return nil, err
	}
	then, err := p.branchBody()
	if err != nil {
		return nil, err
	}
	var alt []stmt
	if p.match(tokElse) {
		if p.check(tokIf) {
			s, err := p.ifStatement()
			if err != nil {
				return nil, err
			}
			alt = []stmt{s}
		} else {
			alt, err = p.branchBody()
			if err != nil {
				return nil, err
			}
		}
	}
	return ifStmt{test: test, then: then, alt: alt}, nil
}

// branchBody parses either a braced block or a single statement.
func (p *parser) branchBody() ([]stmt, error) {
	if p.match(tokLBrace) {
		return p.blockBody()
	}
	s, err := p.statement()
	if err != nil {
		return nil, err
	}
	return []stmt{s}, nil
}

// Binary operator precedence, loosest first.
var binaryPrec = map[tokenType]int{
	tokOr:        1,
	tokAnd:       2,
	tokEq:        3,
	tokStrictEq:  3,
	tokNeq:       3,
	tokStrictNeq: 3,
	tokLess:      4,
	tokLessEq:    4,
	tokGreater:   4,
	tokGreaterEq: 4,
	tokPlus:      5,
	tokMinus:     5,
	tokStar:      6,
	tokSlash:     6,
	tokPercent:   6,
}

func (p *parser) expression() (expr, error) {
	return p.conditional()
}

func (p *parser) conditional() (expr, error) {
	test, err := p.binary(1)
	if err != nil {
		return nil, err
	}
	if !p.match(tokQuestion) {
		return test, nil
	}
	then, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "\":\""); err != nil {
		return nil, err
	}
	alt, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return condExpr{test: test, then: then, alt: alt}, nil
}

func (p *parser) binary(minPrec int) (expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrec[p.peek().typ]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := p.advance().typ
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
}

func (p *parser) unary() (expr, error) {
	switch p.peek().typ {
	case tokMinus, tokBang:
		op := p.advance().typ
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryExpr{op: op, right: right}, nil
	}
	return p.call()
}

func (p *parser) call() (expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.check(tokLParen) {
		open := p.advance()
		var args []expr
		if !p.match(tokRParen) {
			for {
				a, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.match(tokRParen) {
					break
				}
				if _, err := p.expect(tokComma, "\",\" or \")\""); err != nil {
					return nil, err
				}
			}
		}
		e = callExpr{callee: e, args: args, line: open.line, col: open.col}
	}
	return e, nil
}

func (p *parser) primary() (expr, error) {
	t := p.peek()
	switch t.typ {
	case tokNumber:
		p.advance()
		v, err := parseNumber(t.text)
		if err != nil {
			return nil, &Error{Line: t.line, Col: t.col, Msg: "malformed number"}
		}
		return numberLit{value: v}, nil
	case tokString:
		p.advance()
		return stringLit{value: t.text}, nil
	case tokTrue:
		p.advance()
		return boolLit{value: true}, nil
	case tokFalse:
		p.advance()
		return boolLit{value: false}, nil
	case tokNull:
		p.advance()
		return nullLit{}, nil
	case tokIdent:
		p.advance()
		return identExpr{name: t.text, line: t.line, col: t.col}, nil
	case tokLParen:
		p.advance()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "\")\""); err != nil {
			return nil, err
		}
		return e, nil
	case tokFunction:
		fn, err := p.functionLiteral()
		if err != nil {
			return nil, err
		}
		return funcLit{fn: fn}, nil
	default:
		return nil, p.errHere("unexpected token")
	}
}

// funcLit is a nested function literal expression.
type funcLit struct{ fn *Function }

func (funcLit) isExpr() {}
