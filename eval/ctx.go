package eval

import (
	"fmt"
	"io"

	"nib/lexer"
	"nib/parser"
)

// maxCallDepth bounds language-level recursion; blowing past it is a
// resource-exhausted failure instead of a host stack overflow.
const maxCallDepth = 10000

// Context is the evaluator. It walks the AST produced by the parser,
// reading and writing the environment chain. Control transfer (return)
// and failures both travel as values (Return, *Error); every statement
// executor re-raises them, and only the call boundary consumes Return.
type Context struct {
	out     io.Writer    // sink for the print statement
	globals *Environment // root node, where the host installs natives
	env     *Environment // current executing environment
	frames  []string     // call context strings, for error traces
	depth   int          // current call depth
}

// NewContext builds an evaluator whose print statement writes to out.
// Host bindings go into Globals() before Execute is called.
func NewContext(out io.Writer) *Context {
	globals := NewEnvironment(nil)
	return &Context{
		out:     out,
		globals: globals,
		env:     globals,
		frames:  []string{"[module]"},
	}
}

// Globals returns the root environment node.
func (ctx *Context) Globals() *Environment { return ctx.globals }

func (ctx *Context) pushEnv() { ctx.env = NewEnvironment(ctx.env) }
func (ctx *Context) popEnv()  { ctx.env = ctx.env.outer }

func (ctx *Context) pushFrame(s string) { ctx.frames = append(ctx.frames, s) }
func (ctx *Context) popFrame()          { ctx.frames = ctx.frames[:len(ctx.frames)-1] }

// Execute runs a whole module against the root environment and returns
// its value, or the single terminal error that aborted it. A stray
// top-level return simply yields its carried value.
func (ctx *Context) Execute(module *parser.Module) (Value, *Error) {
	rv := ctx.evalStmts(module.Stmts)
	switch rv := rv.(type) {
	case *Error:
		return nil, rv
	case Return:
		return rv.value, nil
	}
	return rv, nil
}

func (ctx *Context) EvalStmt(node parser.Stmt) Value {
	switch node := node.(type) {
	case *parser.Module:
		return ctx.evalStmts(node.Stmts)
	case *parser.ExprStmt:
		return ctx.EvalExpr(node.Expr)
	case *parser.Block:
		return ctx.evalBlock(node)
	case *parser.Var:
		return ctx.evalVar(node)
	case *parser.Fun:
		return ctx.evalFun(node)
	case *parser.Return:
		return ctx.evalReturn(node)
	case *parser.Print:
		return ctx.evalPrint(node)
	case *parser.While:
		return ctx.evalWhile(node)
	case *parser.If:
		return ctx.evalIf(node)
	case *parser.For:
		return ctx.evalFor(node)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

func (ctx *Context) EvalExpr(node parser.Expr) Value {
	switch node := node.(type) {
	case *parser.Literal:
		return ctx.evalLiteral(node)
	case *parser.Identifier:
		return ctx.evalIdentifier(node)
	case *parser.Assign:
		return ctx.evalAssign(node)
	case *parser.Binary:
		return ctx.evalBinary(node)
	case *parser.Array:
		return ctx.evalArray(node)
	case *parser.Record:
		return ctx.evalRecord(node)
	case *parser.Call:
		return ctx.evalCall(node)
	case *parser.MethodCall:
		return ctx.evalMethodCall(node)
	case *parser.Get:
		return ctx.evalGet(node)
	case *parser.Set:
		return ctx.evalSet(node)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// ==========
// Statements
// ==========

// evalStmts runs a statement sequence in the current environment; its
// value is the last statement's value, NOTHING when empty. The first
// signal (error or return) short-circuits the rest.
func (ctx *Context) evalStmts(stmts []parser.Stmt) Value {
	var rv = Value(NOTHING)
	for _, stmt := range stmts {
		rv = ctx.EvalStmt(stmt)
		if isSignal(rv) {
			return rv
		}
	}
	return rv
}

func (ctx *Context) evalBlock(node *parser.Block) Value {
	ctx.pushEnv()
	rv := ctx.evalStmts(node.Stmts)
	ctx.popEnv()
	return rv
}

func (ctx *Context) evalVar(node *parser.Var) Value {
	value := Value(NOTHING)
	if node.Value != nil {
		value = ctx.EvalExpr(node.Value)
		if isError(value) {
			return value
		}
	}
	ctx.env.Define(node.Name.Lexeme, value)
	return value
}

// evalFun captures the current environment node by reference, so the
// function can see itself (and later siblings) once defined.
func (ctx *Context) evalFun(node *parser.Fun) Value {
	ctx.env.Define(node.Name.Lexeme, newFunction(node, ctx.env))
	return NOTHING
}

func (ctx *Context) evalReturn(node *parser.Return) Value {
	value := Value(NOTHING)
	if node.Expr != nil {
		value = ctx.EvalExpr(node.Expr)
		if isError(value) {
			return value
		}
	}
	return Return{value}
}

func (ctx *Context) evalPrint(node *parser.Print) Value {
	value := ctx.EvalExpr(node.Expr)
	if isError(value) {
		return value
	}
	fmt.Fprintln(ctx.out, value.(Stringer).String())
	return value
}

func (ctx *Context) evalWhile(node *parser.While) Value {
	for {
		cond := ctx.EvalExpr(node.Cond)
		if isError(cond) {
			return cond
		}
		b, ok := cond.(Boolean)
		if !ok {
			return ctx.err(ERR_TYPE_MISMATCH, node.Token,
				"while condition must be a boolean, got %s", typeName(cond))
		}
		if !bool(b) {
			return NOTHING
		}
		rv := ctx.EvalStmt(node.Body)
		if isSignal(rv) {
			return rv
		}
	}
}

func (ctx *Context) evalIf(node *parser.If) Value {
	cond := ctx.EvalExpr(node.Cond)
	if isError(cond) {
		return cond
	}
	b, ok := cond.(Boolean)
	if !ok {
		return ctx.err(ERR_TYPE_MISMATCH, node.Token,
			"if condition must be a boolean, got %s", typeName(cond))
	}
	if bool(b) {
		return ctx.EvalStmt(node.Then)
	}
	if node.Else != nil {
		return ctx.EvalStmt(node.Else)
	}
	return NOTHING
}

// evalFor runs a three-clause loop; the init declaration lives in its
// own scope so the loop variable does not leak outward.
func (ctx *Context) evalFor(node *parser.For) Value {
	ctx.pushEnv()
	defer ctx.popEnv()
	if node.Init != nil {
		rv := ctx.EvalStmt(node.Init)
		if isSignal(rv) {
			return rv
		}
	}
	for {
		if node.Cond != nil {
			cond := ctx.EvalExpr(node.Cond)
			if isError(cond) {
				return cond
			}
			b, ok := cond.(Boolean)
			if !ok {
				return ctx.err(ERR_TYPE_MISMATCH, node.Token,
					"for condition must be a boolean, got %s", typeName(cond))
			}
			if !bool(b) {
				return NOTHING
			}
		}
		rv := ctx.EvalStmt(node.Body)
		if isSignal(rv) {
			return rv
		}
		if node.Step != nil {
			step := ctx.EvalExpr(node.Step)
			if isError(step) {
				return step
			}
		}
	}
}

// ===========
// Expressions
// ===========

func (ctx *Context) evalLiteral(node *parser.Literal) Value {
	switch node.Token.Type {
	case lexer.NUMBER:
		return Number(node.Token.Literal.(int32))
	case lexer.STRING:
		return String(node.Token.Literal.(string))
	case lexer.TRUE:
		return TRUE
	case lexer.FALSE:
		return FALSE
	}
	panic(fmt.Sprintf("unhandled literal %#+v", node.Token))
}

func (ctx *Context) evalIdentifier(node *parser.Identifier) Value {
	name := node.Token.Lexeme
	value, ok := ctx.env.Get(name)
	if !ok {
		return ctx.err(ERR_UNKNOWN_NAME, node.Token, "%q is not defined", name)
	}
	return value
}

// evalAssign rebinds an already-declared name; it never creates a
// binding, so assigning to an undeclared name is a failure rather
// than an implicit global.
func (ctx *Context) evalAssign(node *parser.Assign) Value {
	right := ctx.EvalExpr(node.Right)
	if isError(right) {
		return right
	}
	name := node.Name.Lexeme
	if !ctx.env.Set(name, right) {
		return ctx.err(ERR_UNKNOWN_NAME, node.Name, "%q is not defined", name)
	}
	return right
}

func (ctx *Context) evalBinary(node *parser.Binary) Value {
	left := ctx.EvalExpr(node.Left)
	if isError(left) {
		return left
	}
	right := ctx.EvalExpr(node.Right)
	if isError(right) {
		return right
	}
	a, aok := left.(Number)
	b, bok := right.(Number)
	if !aok || !bok {
		return ctx.err(ERR_TYPE_MISMATCH, node.Op,
			"operator %s expects number operands, got %s and %s",
			node.Op.Lexeme, typeName(left), typeName(right))
	}
	switch node.Op.Type {
	case lexer.EQUAL_EQUAL:
		return Boolean(a == b)
	case lexer.BANG_EQUAL:
		return Boolean(a != b)
	case lexer.GREATER:
		return Boolean(a > b)
	case lexer.GREATER_EQUAL:
		return Boolean(a >= b)
	case lexer.LESS:
		return Boolean(a < b)
	case lexer.LESS_EQUAL:
		return Boolean(a <= b)
	case lexer.PLUS:
		return a + b
	case lexer.MINUS:
		return a - b
	case lexer.STAR:
		return a * b
	}
	panic(fmt.Sprintf("unhandled operator %s", node.Op.Type))
}

func (ctx *Context) evalArray(node *parser.Array) Value {
	values := make([]Value, len(node.Exprs))
	for i, expr := range node.Exprs {
		value := ctx.EvalExpr(expr)
		if isError(value) {
			return value
		}
		values[i] = value
	}
	return NewArray(values)
}

// evalRecord evaluates fields in declaration order; a duplicate key
// overwrites the earlier one.
func (ctx *Context) evalRecord(node *parser.Record) Value {
	record := NewRecord()
	for _, pair := range node.Pairs {
		value := ctx.EvalExpr(pair.Value)
		if isError(value) {
			return value
		}
		record.fields[fieldName(pair.Key)] = value
	}
	return record
}

func fieldName(tok lexer.Token) string {
	if s, ok := tok.Literal.(string); ok {
		return s
	}
	return tok.Lexeme
}

func (ctx *Context) evalCall(node *parser.Call) Value {
	callee := ctx.EvalExpr(node.Callee)
	if isError(callee) {
		return callee
	}
	args, err := ctx.evalArgs(node.Args)
	if err != nil {
		return err
	}
	return ctx.call(callee, nil, args, node.LParen)
}

// evalMethodCall evaluates the receiver once, looks up the member, and
// calls it with the receiver attached.
func (ctx *Context) evalMethodCall(node *parser.MethodCall) Value {
	base := ctx.EvalExpr(node.Base)
	if isError(base) {
		return base
	}
	key := ctx.EvalExpr(node.Key)
	if isError(key) {
		return key
	}
	callee := ctx.getMember(base, key, node.LParen)
	if isError(callee) {
		return callee
	}
	args, err := ctx.evalArgs(node.Args)
	if err != nil {
		return err
	}
	return ctx.call(callee, base, args, node.LParen)
}

// evalArgs evaluates argument expressions left-to-right in the caller's
// environment, before any callee-scope binding exists.
func (ctx *Context) evalArgs(exprs []parser.Expr) ([]Value, *Error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		value := ctx.EvalExpr(expr)
		if isError(value) {
			return nil, value.(*Error)
		}
		args[i] = value
	}
	return args, nil
}

func (ctx *Context) evalGet(node *parser.Get) Value {
	base := ctx.EvalExpr(node.Base)
	if isError(base) {
		return base
	}
	key := ctx.EvalExpr(node.Key)
	if isError(key) {
		return key
	}
	return ctx.getMember(base, key, node.Token)
}

func (ctx *Context) evalSet(node *parser.Set) Value {
	base := ctx.EvalExpr(node.Base)
	if isError(base) {
		return base
	}
	key := ctx.EvalExpr(node.Key)
	if isError(key) {
		return key
	}
	value := ctx.EvalExpr(node.Value)
	if isError(value) {
		return value
	}
	return ctx.setMember(base, key, value, node.Token)
}

// =============
// Call protocol
// =============

// call invokes a callee with an optional receiver. For functions, a
// fresh environment node encloses the *captured* environment, never the
// caller's; missing trailing arguments bind to NOTHING and extras are
// ignored. A function body that finishes without a return yields
// NOTHING: there is no implicit final-expression return.
func (ctx *Context) call(callee Value, this Value, args []Value, tok lexer.Token) Value {
	if ctx.depth >= maxCallDepth {
		return ctx.err(ERR_RESOURCE_EXHAUSTED, tok, "call depth limit (%d) exceeded", maxCallDepth)
	}
	ctx.depth++
	defer func() { ctx.depth-- }()
	switch fn := callee.(type) {
	case *Native:
		if this == nil {
			this = fn.this
		}
		ctx.pushFrame(fmt.Sprintf("[native %s]", fn.name))
		rv := fn.fn(ctx, this, args)
		ctx.popFrame()
		if isError(rv) {
			return ctx.addTrace(rv.(*Error), tok)
		}
		return rv
	case *Function:
		local := NewEnvironment(fn.closure)
		for i, name := range fn.params {
			if i < len(args) {
				local.Define(name, args[i])
			} else {
				local.Define(name, NOTHING)
			}
		}
		saved := ctx.env
		ctx.env = local
		ctx.pushFrame(fmt.Sprintf("[fun %s]", fn.name))
		rv := ctx.EvalStmt(fn.body)
		ctx.popFrame()
		ctx.env = saved
		switch rv := rv.(type) {
		case Return:
			return rv.value
		case *Error:
			return ctx.addTrace(rv, tok)
		}
		return NOTHING
	}
	return ctx.err(ERR_NOT_CALLABLE, tok, "%s is not callable", typeName(callee))
}

// =========
// Utilities
// =========

func isError(v Value) bool  { return v.Type() == VT_ERROR }
func isReturn(v Value) bool { return v.Type() == VT_RETURN }
func isSignal(v Value) bool { return isError(v) || isReturn(v) }
