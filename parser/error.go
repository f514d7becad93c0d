package parser

import (
	"fmt"

	"nib/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some expression/statement.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (e ParserError) Error() string { return e.String() }
func (e ParserError) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Token.Line, e.Token.Column, e.Message)
}

func (p *Parser) error(s string, args ...interface{}) {
	tok := p.peek()
	if p.curr > 0 {
		tok = p.previous()
	}
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	panic(err)
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.match(typ) {
		p.error(s, args...)
	}
	return p.previous()
}

// synchronize synchronizes the parser by discarding tokens
// until we reach a token which starts a statement. This means
// that cascading errors are discarded, and we still report as
// many errors as possible.
func (p *Parser) synchronize() {
	p.consume()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.VAR, lexer.FUN, lexer.PRINT, lexer.IF, lexer.RETURN, lexer.FOR, lexer.WHILE:
			return
		}
		p.consume()
	}
}
