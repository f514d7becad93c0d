package parser

import "nib/lexer"

type (
	unaryParser  func() Expr
	binaryParser func(Expr) Expr
)

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST  = iota
	PREC_ASSIGN  // =
	PREC_EQ      // ==, !=
	PREC_CMP     // <=, <, >, >=
	PREC_SUM     // +, -
	PREC_PRODUCT // *
	PREC_CALL    // (), ., []
)

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN:   p.grouping,
		lexer.IDENTIFIER:   p.identifier,
		lexer.NUMBER:       p.literal,
		lexer.STRING:       p.literal,
		lexer.TRUE:         p.literal,
		lexer.FALSE:        p.literal,
		lexer.LEFT_BRACKET: p.array,
		lexer.LEFT_BRACE:   p.record,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.EQUAL:         p.assign,
		lexer.EQUAL_EQUAL:   p.binary,
		lexer.BANG_EQUAL:    p.binary,
		lexer.GREATER:       p.binary,
		lexer.GREATER_EQUAL: p.binary,
		lexer.LESS:          p.binary,
		lexer.LESS_EQUAL:    p.binary,
		lexer.PLUS:          p.binary,
		lexer.MINUS:         p.binary,
		lexer.STAR:          p.binary,
		lexer.DOT:           p.dot,
		lexer.LEFT_BRACKET:  p.index,
		lexer.LEFT_PAREN:    p.call,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.EQUAL:         PREC_ASSIGN,
		lexer.EQUAL_EQUAL:   PREC_EQ,
		lexer.BANG_EQUAL:    PREC_EQ,
		lexer.GREATER:       PREC_CMP,
		lexer.GREATER_EQUAL: PREC_CMP,
		lexer.LESS:          PREC_CMP,
		lexer.LESS_EQUAL:    PREC_CMP,
		lexer.PLUS:          PREC_SUM,
		lexer.MINUS:         PREC_SUM,
		lexer.STAR:          PREC_PRODUCT,
		lexer.DOT:           PREC_CALL,
		lexer.LEFT_BRACKET:  PREC_CALL,
		lexer.LEFT_PAREN:    PREC_CALL,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

func (p *Parser) Parse() *Module {
	module := &Module{Filename: p.filename, Stmts: []Stmt{}}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			module.Stmts = append(module.Stmts, stmt)
		}
	}
	return module
}

// =================
// statement parsing
// =================
//
// declarations are only allowed where a whole statement is expected,
// so e.g. `if (c) var x = 1;` does not parse. the grammar:
//
//   declaration → var | fun | statement
//   statement   → print | while | for | if | return | block | exprStmt
//   var      → "var" IDENT ( "=" expression )? ";"
//   fun      → "fun" IDENT "(" ( IDENT ( "," IDENT )* )? ")" block
//   print    → "print" expression ";"
//   while    → "while" "(" expression ")" statement
//   for      → "for" "(" ( var | exprStmt | ";" ) expression? ";" expression? ")" statement
//   if       → "if" "(" expression ")" statement ( "else" statement )?
//   return   → "return" expression? ";"
//   block    → "{" declaration* "}"
//   exprStmt → expression ";"

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize(). We have to make
		// sure that all top-level calls to parse statements/expressions
		// have a recover.
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	switch {
	case p.check(lexer.VAR):
		stmt = p.varStmt()
	case p.check(lexer.FUN):
		stmt = p.funStmt()
	default:
		stmt = p.statement()
	}
	return
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.FOR):
		return p.forStmt()
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.RETURN):
		return p.returnStmt()
	case p.check(lexer.LEFT_BRACE):
		return p.blockStmt()
	}
	return p.exprStmt()
}

func (p *Parser) varStmt() Stmt {
	token := p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected an identifier after var")
	var value Expr
	if p.match(lexer.EQUAL) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after variable declaration")
	return &Var{Token: token, Name: name, Value: value}
}

func (p *Parser) funStmt() Stmt {
	token := p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected a function name")
	p.expect(lexer.LEFT_PAREN, "expected ( after function name")
	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			params = append(params, p.expect(lexer.IDENTIFIER, "expected a parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	if !p.check(lexer.LEFT_BRACE) {
		p.error("expected { before function body")
	}
	body := p.blockStmt().(*Block)
	return &Fun{Token: token, Name: name, Params: params, Body: body}
}

func (p *Parser) printStmt() Stmt {
	token := p.consume()
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after print")
	return &Print{Token: token, Expr: expr}
}

func (p *Parser) whileStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &While{Token: token, Cond: cond, Body: body}
}

func (p *Parser) forStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	var init Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		init = nil
	case p.check(lexer.VAR):
		init = p.varStmt()
	default:
		init = p.exprStmt()
	}
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after loop condition")
	var step Expr
	if !p.check(lexer.RIGHT_PAREN) {
		step = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	body := p.statement()
	return &For{Token: token, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) ifStmt() Stmt {
	token := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected (")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.statement()
	var elseStmt Stmt
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return &If{Token: token, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) returnStmt() Stmt {
	token := p.consume()
	var expr Expr
	if !p.check(lexer.SEMICOLON) {
		expr = p.expression()
	}
	p.expect(lexer.SEMICOLON, "expected ; after return")
	return &Return{Token: token, Expr: expr}
}

func (p *Parser) blockStmt() Stmt {
	token := p.consume()
	stmts := []Stmt{}
	for !p.isAtEnd() && !p.check(lexer.RIGHT_BRACE) {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return &Block{Token: token, Stmts: stmts}
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "expected ; after expression statement")
	return &ExprStmt{Token: expr.Tok(), Expr: expr}
}

// ==================
// expression parsing
// ==================

// expression matches a single expression.
func (p *Parser) expression() Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		p.error("not an expression: %s", p.peek().Type)
	}
	expr := unary()
	for !p.check(lexer.SEMICOLON) && prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) grouping() Expr {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return expr
}

func (p *Parser) identifier() Expr {
	return &Identifier{Token: p.consume()}
}

func (p *Parser) literal() Expr {
	return &Literal{Token: p.consume()}
}

func (p *Parser) array() Expr {
	token := p.consume()
	exprs := []Expr{}
	if !p.check(lexer.RIGHT_BRACKET) {
		for {
			exprs = append(exprs, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_BRACKET, "unmatched [")
	return &Array{Token: token, Exprs: exprs}
}

func (p *Parser) record() Expr {
	token := p.consume()
	pairs := []Pair{}
	if !p.check(lexer.RIGHT_BRACE) {
		for {
			var key lexer.Token
			switch {
			case p.check(lexer.IDENTIFIER), p.check(lexer.STRING):
				key = p.consume()
			default:
				p.error("expected a field name")
			}
			p.expect(lexer.COLON, "expected : after field name")
			pairs = append(pairs, Pair{Key: key, Value: p.expression()})
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return &Record{Token: token, Pairs: pairs}
}

// assign handles `name = expr`, `base.name = expr` and `base[key] = expr`.
func (p *Parser) assign(left Expr) Expr {
	tok := p.consume()
	right := p.precedence(PREC_ASSIGN - 1)
	switch left := left.(type) {
	case *Identifier:
		return &Assign{Token: tok, Name: left.Token, Right: right}
	case *Get:
		return &Set{Token: tok, Base: left.Base, Key: left.Key, Value: right}
	}
	p.error("invalid assignment target")
	return nil
}

func (p *Parser) binary(left Expr) Expr {
	tok := p.consume()
	return &Binary{Op: tok, Left: left, Right: p.precedence(p.precedences[tok.Type])}
}

// dot parses `base.name` as a get with a string key, so the evaluator
// only ever sees one kind of member access.
func (p *Parser) dot(left Expr) Expr {
	tok := p.consume()
	name := p.expect(lexer.IDENTIFIER, "expected an identifier after .")
	key := &Literal{Token: lexer.Token{
		Type:    lexer.STRING,
		Lexeme:  name.Lexeme,
		Literal: name.Lexeme,
		Line:    name.Line,
		Column:  name.Column,
	}}
	return &Get{Token: tok, Base: left, Key: key}
}

func (p *Parser) index(left Expr) Expr {
	tok := p.consume()
	key := p.expression()
	p.expect(lexer.RIGHT_BRACKET, "unmatched [")
	return &Get{Token: tok, Base: left, Key: key}
}

// call parses a call; a call on a get expression becomes a method call
// so the receiver is only evaluated once.
func (p *Parser) call(left Expr) Expr {
	tok := p.consume()
	args := []Expr{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	if get, ok := left.(*Get); ok {
		return &MethodCall{LParen: tok, Base: get.Base, Key: get.Key, Args: args}
	}
	return &Call{LParen: tok, Callee: left, Args: args}
}
