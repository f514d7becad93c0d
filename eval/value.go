package eval

import (
	"nib/parser"
)

//go:generate stringer -type=ValueType

type ValueType uint8

const (
	_ = ValueType(iota)
	// Real values
	VT_NOTHING
	VT_NUMBER
	VT_STRING
	VT_BOOLEAN
	VT_NATIVE
	VT_FUNCTION
	VT_ARRAY
	VT_RECORD
	// Runtime Control
	VT_RETURN
	VT_ERROR
)

type Value interface {
	Type() ValueType
}

// ======
// Values
// ======
//
// When we speak of values, they refer to the `real' values in the runtime,
// not control values. Nothing, Number, String and Boolean are plain Go
// values and copy independently; Array and Record are handles to shared
// storage, so copies alias the same backing data. All `real' values need
// to additionally implement the Stringer protocol.

type Nothing struct{}
type Number int32
type String string
type Boolean bool

// NativeFunc is the host-binding contract: a native receives the
// evaluating context, an optional receiver (nil when called without
// one), and the evaluated arguments. It always returns a Value,
// NOTHING when there is no meaningful result.
type NativeFunc func(ctx *Context, this Value, args []Value) Value

// Native is a host-provided callable, possibly bound to a receiver.
type Native struct {
	name string
	this Value // non-nil when bound, e.g. array.push
	fn   NativeFunc
}

func NewNative(name string, fn NativeFunc) *Native {
	return &Native{name: name, fn: fn}
}

// Function is a closure: parameter names, a body node, and the
// environment chain that was active at its definition site.
type Function struct {
	name    string
	params  []string
	body    *parser.Block
	closure *Environment
}

func newFunction(node *parser.Fun, env *Environment) *Function {
	params := make([]string, len(node.Params))
	for i, tok := range node.Params {
		params[i] = tok.Lexeme
	}
	return &Function{
		name:    node.Name.Lexeme,
		params:  params,
		body:    node.Body,
		closure: env,
	}
}

type Array struct {
	values []Value
}

func NewArray(values []Value) *Array { return &Array{values: values} }

// Values returns the backing storage; mutations through it are
// visible to every alias of the array.
func (v *Array) Values() []Value { return v.values }

type Record struct {
	fields map[string]Value
}

func NewRecord() *Record { return &Record{fields: map[string]Value{}} }

func (v Nothing) Type() ValueType   { return VT_NOTHING }
func (v Number) Type() ValueType    { return VT_NUMBER }
func (v String) Type() ValueType    { return VT_STRING }
func (v Boolean) Type() ValueType   { return VT_BOOLEAN }
func (v *Native) Type() ValueType   { return VT_NATIVE }
func (v *Function) Type() ValueType { return VT_FUNCTION }
func (v *Array) Type() ValueType    { return VT_ARRAY }
func (v *Record) Type() ValueType   { return VT_RECORD }

// ==========
// Singletons
// ==========

var (
	NOTHING = Nothing{}
	TRUE    = Boolean(true)
	FALSE   = Boolean(false)
)

// ===============
// Runtime Control
// ===============

// Return is the control-transfer signal raised by a return statement.
// It unwinds statement execution and is consumed at the nearest
// function-call boundary; it is not an error and must never escape
// to the host as one.
type Return struct{ value Value }

func (v Return) Type() ValueType { return VT_RETURN }

// typeName returns the user-facing name of a value's type, for
// error messages.
func typeName(v Value) string {
	switch v.Type() {
	case VT_NOTHING:
		return "nothing"
	case VT_NUMBER:
		return "number"
	case VT_STRING:
		return "string"
	case VT_BOOLEAN:
		return "boolean"
	case VT_NATIVE:
		return "native function"
	case VT_FUNCTION:
		return "function"
	case VT_ARRAY:
		return "array"
	case VT_RECORD:
		return "record"
	}
	return v.Type().String()
}
