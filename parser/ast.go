package parser

import "nib/lexer"

// The AST consumed by the evaluator. Every node carries the token it
// was parsed from, so runtime errors can report a position.

type Node interface {
	Tok() lexer.Token
	String() string
}

type Stmt interface {
	Node
	stmt()
}

type Expr interface {
	Node
	expr()
}

// Statements

// Module is the root statement sequence of a file (or a REPL line).
type Module struct {
	Filename string
	Stmts    []Stmt
}

type ExprStmt struct {
	Token lexer.Token // first token of the expression
	Expr  Expr
}

type Block struct {
	Token lexer.Token // the '{' token
	Stmts []Stmt
}

type Var struct {
	Token lexer.Token // the 'var' token
	Name  lexer.Token
	Value Expr // nil when declared without an initializer
}

type Fun struct {
	Token  lexer.Token // the 'fun' token
	Name   lexer.Token
	Params []lexer.Token
	Body   *Block
}

type Return struct {
	Token lexer.Token // the 'return' token
	Expr  Expr        // nil for a bare `return;`
}

type Print struct {
	Token lexer.Token // the 'print' token
	Expr  Expr
}

type While struct {
	Token lexer.Token // the 'while' token
	Cond  Expr
	Body  Stmt
}

type If struct {
	Token lexer.Token // the 'if' token
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when no else was given
}

type For struct {
	Token lexer.Token // the 'for' token
	Init  Stmt        // nil, a Var, or an ExprStmt
	Cond  Expr        // nil means loop forever
	Step  Expr        // nil when omitted
	Body  Stmt
}

// Expressions

type Literal struct {
	Token lexer.Token // NUMBER, STRING, TRUE or FALSE
}

type Identifier struct {
	Token lexer.Token
}

type Assign struct {
	Token lexer.Token // the '=' token
	Name  lexer.Token
	Right Expr
}

type Binary struct {
	Op    lexer.Token
	Left  Expr
	Right Expr
}

type Array struct {
	Token lexer.Token // the '[' token
	Exprs []Expr
}

type Pair struct {
	Key   lexer.Token // IDENTIFIER or STRING
	Value Expr
}

type Record struct {
	Token lexer.Token // the '{' token
	Pairs []Pair
}

type Call struct {
	LParen lexer.Token
	Callee Expr
	Args   []Expr
}

// MethodCall is `base.name(args)` or `base[key](args)`: the base is
// evaluated once and passed to the callee as its receiver.
type MethodCall struct {
	LParen lexer.Token
	Base   Expr
	Key    Expr
	Args   []Expr
}

type Get struct {
	Token lexer.Token // the '.' or '[' token
	Base  Expr
	Key   Expr
}

type Set struct {
	Token lexer.Token // the '=' token
	Base  Expr
	Key   Expr
	Value Expr
}

func (n *Module) Tok() lexer.Token {
	if len(n.Stmts) > 0 {
		return n.Stmts[0].Tok()
	}
	return lexer.Token{Type: lexer.EOF}
}

func (n *ExprStmt) Tok() lexer.Token   { return n.Token }
func (n *Block) Tok() lexer.Token      { return n.Token }
func (n *Var) Tok() lexer.Token        { return n.Token }
func (n *Fun) Tok() lexer.Token        { return n.Token }
func (n *Return) Tok() lexer.Token     { return n.Token }
func (n *Print) Tok() lexer.Token      { return n.Token }
func (n *While) Tok() lexer.Token      { return n.Token }
func (n *If) Tok() lexer.Token         { return n.Token }
func (n *For) Tok() lexer.Token        { return n.Token }
func (n *Literal) Tok() lexer.Token    { return n.Token }
func (n *Identifier) Tok() lexer.Token { return n.Token }
func (n *Assign) Tok() lexer.Token     { return n.Token }
func (n *Binary) Tok() lexer.Token     { return n.Op }
func (n *Array) Tok() lexer.Token      { return n.Token }
func (n *Record) Tok() lexer.Token     { return n.Token }
func (n *Call) Tok() lexer.Token       { return n.LParen }
func (n *MethodCall) Tok() lexer.Token { return n.LParen }
func (n *Get) Tok() lexer.Token        { return n.Token }
func (n *Set) Tok() lexer.Token        { return n.Token }

func (n *Module) stmt()   {}
func (n *ExprStmt) stmt() {}
func (n *Block) stmt()    {}
func (n *Var) stmt()      {}
func (n *Fun) stmt()      {}
func (n *Return) stmt()   {}
func (n *Print) stmt()    {}
func (n *While) stmt()    {}
func (n *If) stmt()       {}
func (n *For) stmt()      {}

func (n *Literal) expr()    {}
func (n *Identifier) expr() {}
func (n *Assign) expr()     {}
func (n *Binary) expr()     {}
func (n *Array) expr()      {}
func (n *Record) expr()     {}
func (n *Call) expr()       {}
func (n *MethodCall) expr() {}
func (n *Get) expr()        {}
func (n *Set) expr()        {}
