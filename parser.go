// parser.go — recursive-descent parser for PHP-JS.
//
// OVERVIEW
// --------
// The parser consumes the token stream produced by the lexer (see lexer.go)
// and builds the statement/expression sums of ast.go. Precedence is encoded
// directly in the descent: each binary level parses the next-tighter level
// and folds left, assignment recurses on itself for right-associativity.
//
// Grammar (low → high precedence):
//
//	program    := declaration*
//	declaration:= funcDecl | varDecl | statement
//	funcDecl   := 'function' IDENT '(' params? ')' block
//	varDecl    := ('var'|'let'|'const') VARIABLE ('=' expression)? ';'
//	statement  := ifStmt | echoStmt | returnStmt | whileStmt
//	             | forStmt | foreachStmt | block | exprStmt
//	expression := assignment
//	assignment := logicOr ( '=' assignment )?
//	logicOr    := logicAnd ( '||' logicAnd )*
//	logicAnd   := equality ( '&&' equality )*
//	equality   := comparison ( ('!='|'=='|'!=='|'===') comparison )*
//	comparison := term ( ('<'|'<='|'>'|'>=') term )*
//	term       := factor ( ('+'|'-'|'.') factor )*
//	factor     := unary ( ('*'|'/'|'%'|'**') unary )*
//	unary      := ('!'|'-') unary | call
//	call       := primary ( '(' args? ')' )*
//	primary    := literal | VARIABLE | IDENT | arrayLit | '(' expression ')'
//
// A for-loop is desugared at parse time into a block wrapping its initializer
// around a while-loop whose body appends the step statement; a missing
// condition becomes the literal true. foreach stays a distinct node because
// its per-iteration scoping differs from a plain block.
//
// ERROR RECOVERY
// --------------
// Parsing a declaration that fails records the diagnostic, then the parser
// resynchronizes: it advances until just past a ';' or until the next token
// is one of {function, var, for, if, while, echo, return}, and continues with
// the following declaration. The returned program therefore always parses;
// the interpreter may then fail at runtime. The REPL surfaces the first
// diagnostic; `phpjs run` prints all of them.
package phpjs

import "fmt"

// Parse scans and parses a complete source string. The statement list covers
// every declaration that parsed; diagnostics cover every one that did not.
func Parse(src string) ([]Stmt, []*ParseError) {
	toks := NewLexer(src).Scan()
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	i    int
	errs []*ParseError
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.i++
	}
	return p.prev()
}

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.check(t) {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of type t or fails with a diagnostic at the current
// token's line.
func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return Token{}, &ParseError{Line: p.peek().Line, Msg: msg}
}

// ───────────────────────────── program / recovery ───────────────────────────

func (p *parser) program() ([]Stmt, []*ParseError) {
	var stmts []Stmt
	for !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	return stmts, p.errs
}

func (p *parser) declaration() Stmt {
	var s Stmt
	var err error
	switch {
	case p.match(FUNCTION):
		s, err = p.funcDecl()
	case p.match(VAR, LET, CONST):
		s, err = p.varDecl()
	default:
		s, err = p.statement()
	}
	if err != nil {
		p.errs = append(p.errs, err.(*ParseError))
		p.synchronize()
		return nil
	}
	return s
}

// synchronize discards tokens until a likely declaration boundary.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.prev().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case FUNCTION, VAR, FOR, IF, WHILE, ECHO, RETURN:
			return
		}
		p.advance()
	}
}

// ─────────────────────────────── declarations ───────────────────────────────

func (p *parser) funcDecl() (Stmt, error) {
	name, err := p.need(IDENTIFIER, "Expected function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LEFT_PAREN, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			param, err := p.need(VARIABLE, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RIGHT_PAREN, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.need(LEFT_BRACE, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *parser) varDecl() (Stmt, error) {
	name, err := p.need(VARIABLE, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(EQUAL) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init}, nil
}

// ──────────────────────────────── statements ────────────────────────────────

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(IF):
		return p.ifStatement()
	case p.match(ECHO):
		return p.echoStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(FOR):
		return p.forStatement()
	case p.match(FOREACH):
		return p.foreachStatement()
	case p.match(LEFT_BRACE):
		body, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Stmts: body}, nil
	default:
		return p.exprStatement()
	}
}

func (p *parser) ifStatement() (Stmt, error) {
	if _, err := p.need(LEFT_PAREN, "Expected '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RIGHT_PAREN, "Expected ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSEIF) {
		// 'elseif' continues the chain as a nested if.
		if els, err = p.ifStatement(); err != nil {
			return nil, err
		}
	} else if p.match(ELSE) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) echoStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after echo value."); err != nil {
		return nil, err
	}
	return &EchoStmt{Expr: e}, nil
}

func (p *parser) returnStatement() (Stmt, error) {
	keyword := p.prev()
	var value Expr
	var err error
	if !p.check(SEMICOLON) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *parser) whileStatement() (Stmt, error) {
	if _, err := p.need(LEFT_PAREN, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RIGHT_PAREN, "Expected ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// forStatement desugars for(init; cond; step) body into
// { init; while(cond) { body; step; } }.
func (p *parser) forStatement() (Stmt, error) {
	if _, err := p.need(LEFT_PAREN, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(VAR, LET, CONST):
		if init, err = p.varDecl(); err != nil {
			return nil, err
		}
	default:
		if init, err = p.exprStatement(); err != nil {
			return nil, err
		}
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	var step Expr
	if !p.check(RIGHT_PAREN) {
		if step, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RIGHT_PAREN, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if step != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: step}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: Bool(true)}
	}
	var loop Stmt = &WhileStmt{Cond: cond, Body: body}
	if init != nil {
		loop = &BlockStmt{Stmts: []Stmt{init, loop}}
	}
	return loop, nil
}

func (p *parser) foreachStatement() (Stmt, error) {
	if _, err := p.need(LEFT_PAREN, "Expected '(' after 'foreach'."); err != nil {
		return nil, err
	}
	arr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(AS, "Expected 'as' after foreach array."); err != nil {
		return nil, err
	}
	item, err := p.need(VARIABLE, "Expected item variable after 'as'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RIGHT_PAREN, "Expected ')' after foreach clause."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ForeachStmt{Array: arr, Item: item, Body: body}, nil
}

// blockBody parses declarations up to the closing '}' (already past '{').
func (p *parser) blockBody() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RIGHT_BRACE) && !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	if _, err := p.need(RIGHT_BRACE, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) exprStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: e}, nil
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *parser) expression() (Expr, error) { return p.assignment() }

func (p *parser) assignment() (Expr, error) {
	e, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.match(EQUAL) {
		equals := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := e.(*VariableExpr); ok {
			return &AssignExpr{Name: v.Name, Value: value}, nil
		}
		return nil, &ParseError{Line: equals.Line, Msg: "Invalid assignment target."}
	}
	return e, nil
}

func (p *parser) logicOr() (Expr, error) {
	e, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		e = &LogicalExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) logicAnd() (Expr, error) {
	e, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		e = &LogicalExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) equality() (Expr, error) {
	e, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(BANG_EQUAL, EQUAL_EQUAL, BANG_EQUAL_EQUAL, EQUAL_EQUAL_EQUAL) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) comparison() (Expr, error) {
	e, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQUAL, GREATER, GREATER_EQUAL) {
		op := p.prev()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) term() (Expr, error) {
	e, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS, DOT) {
		op := p.prev()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) factor() (Expr, error) {
	e, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(STAR, SLASH, PERCENT, STAR_STAR) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		e = &BinaryExpr{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Right: right}, nil
	}
	return p.call()
}

func (p *parser) call() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(LEFT_PAREN) {
		if e, err = p.finishCall(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			a, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.need(RIGHT_PAREN, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true)}, nil
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false)}, nil
	case p.match(NULL):
		return &LiteralExpr{Value: Null}, nil
	case p.match(NUMBER):
		return &LiteralExpr{Value: Num(p.prev().Literal.(float64))}, nil
	case p.match(STRING):
		return &LiteralExpr{Value: Str(p.prev().Literal.(string))}, nil
	case p.match(VARIABLE, IDENTIFIER):
		return &VariableExpr{Name: p.prev()}, nil
	case p.match(LEFT_BRACKET):
		var elems []Expr
		if !p.check(RIGHT_BRACKET) {
			for {
				e, err := p.expression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				if !p.match(COMMA) {
					break
				}
			}
		}
		if _, err := p.need(RIGHT_BRACKET, "Expected ']' after array elements."); err != nil {
			return nil, err
		}
		return &ArrayExpr{Elements: elems}, nil
	case p.match(LEFT_PAREN):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RIGHT_PAREN, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: inner}, nil
	}
	return nil, &ParseError{Line: p.peek().Line, Msg: fmt.Sprintf("Expected expression, got '%s'.", describeToken(p.peek()))}
}

func describeToken(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return t.Lexeme
}
