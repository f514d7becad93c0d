package eval

import (
	"io"

	"nib/lexer"
	"nib/parser"
)

// InteractiveContext wraps a Context for line-at-a-time use: bindings
// persist across lines, and errors do not tear the session down.
type InteractiveContext struct {
	Filename string
	ctx      *Context
}

func NewInteractiveContext(out io.Writer) *InteractiveContext {
	ctx := NewContext(out)
	Install(ctx)
	return &InteractiveContext{Filename: "<stdin>", ctx: ctx}
}

// Inspect renders a value the way the REPL shows results: quoted
// strings, expanded composites.
func (ic *InteractiveContext) Inspect(v Value) string { return inspect(v) }

// Run lexes, parses and evaluates one line of input. It returns the
// value of the last statement, or the lex/parse errors, or the single
// evaluation error.
func (ic *InteractiveContext) Run(input string) (Value, []error) {
	l := lexer.New(ic.Filename, input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		errs := make([]error, len(l.Errors))
		for i, e := range l.Errors {
			errs[i] = e
		}
		return nil, errs
	}
	p := parser.New(ic.Filename, l.Tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		errs := make([]error, len(p.Errors))
		for i, e := range p.Errors {
			errs[i] = e
		}
		return nil, errs
	}
	rv, err := ic.ctx.Execute(module)
	if err != nil {
		return nil, []error{err}
	}
	return rv, nil
}
