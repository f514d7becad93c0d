package eval

import (
	"bytes"
	"fmt"

	"nib/lexer"
)

//go:generate stringer -type=ErrorKind

// ErrorKind classifies an evaluation failure. The taxonomy is flat:
// every failure aborts the whole execution and reaches the host as a
// single terminal error.
type ErrorKind uint8

const (
	_ = ErrorKind(iota)
	ERR_UNKNOWN_NAME
	ERR_TYPE_MISMATCH
	ERR_NOT_CALLABLE
	ERR_INDEX_OUT_OF_RANGE
	ERR_INVALID_INDEX
	ERR_NO_SUCH_PROPERTY
	ERR_INVALID_ACCESS
	ERR_RESOURCE_EXHAUSTED
)

func (k ErrorKind) label() string {
	switch k {
	case ERR_UNKNOWN_NAME:
		return "unknown name"
	case ERR_TYPE_MISMATCH:
		return "type mismatch"
	case ERR_NOT_CALLABLE:
		return "not callable"
	case ERR_INDEX_OUT_OF_RANGE:
		return "index out of range"
	case ERR_INVALID_INDEX:
		return "invalid index"
	case ERR_NO_SUCH_PROPERTY:
		return "no such property"
	case ERR_INVALID_ACCESS:
		return "invalid access"
	case ERR_RESOURCE_EXHAUSTED:
		return "resource exhausted"
	}
	return k.String()
}

// TraceEntry records one position the error unwound through.
type TraceEntry struct {
	Line    int
	Column  int
	Context string // e.g. [module] or [fun fib]
}

// Error is an evaluation failure. It doubles as a control value inside
// the evaluator (VT_ERROR) and as a Go error at the host boundary.
type Error struct {
	Kind   ErrorKind
	Reason string
	Trace  []TraceEntry
}

func (e *Error) Type() ValueType { return VT_ERROR }
func (e *Error) Error() string   { return e.String() }

func (e *Error) String() string {
	var buf bytes.Buffer
	buf.WriteString(e.Kind.label())
	buf.WriteString(": ")
	buf.WriteString(e.Reason)
	for _, entry := range e.Trace {
		buf.WriteString(fmt.Sprintf("\n  at %d:%d: %s", entry.Line, entry.Column, entry.Context))
	}
	return buf.String()
}

// err builds a failure positioned at the given token, in the context
// of whatever the evaluator is currently executing.
func (ctx *Context) err(kind ErrorKind, tok lexer.Token, s string, args ...interface{}) *Error {
	e := &Error{
		Kind:   kind,
		Reason: fmt.Sprintf(s, args...),
		Trace:  []TraceEntry{},
	}
	return ctx.addTrace(e, tok)
}

// addTrace appends the current position to an error unwinding through
// the evaluator; call boundaries use it to build the stack trace.
func (ctx *Context) addTrace(e *Error, tok lexer.Token) *Error {
	e.Trace = append(e.Trace, TraceEntry{
		Line:    tok.Line,
		Column:  tok.Column,
		Context: ctx.frames[len(ctx.frames)-1],
	})
	return e
}
