package eval

import (
	"fmt"
	"strings"
)

// =================
// Builtin functions
// =================
//
// Builtins are Native values the host installs into the root
// environment before execution; the evaluator consumes them through
// the ordinary call protocol and never defines any itself.

// -------
// println
// -------
func biPrintln(ctx *Context, this Value, args []Value) Value {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.(Stringer).String()
	}
	fmt.Fprintln(ctx.out, strings.Join(parts, " "))
	return NOTHING
}

// ----
// repr
// ----
func biRepr(ctx *Context, this Value, args []Value) Value {
	if len(args) != 1 {
		return &Error{Kind: ERR_TYPE_MISMATCH, Reason: "repr expects exactly one argument"}
	}
	return String(inspect(args[0]))
}

// Builtins returns the native bindings a host should Define in the
// root environment. The output primitive is the minimum contract;
// repr is a convenience on top of it.
func Builtins() map[string]*Native {
	return map[string]*Native{
		"println": NewNative("println", biPrintln),
		"repr":    NewNative("repr", biRepr),
	}
}

// Install defines every builtin into the context's root environment.
func Install(ctx *Context) {
	for name, fn := range Builtins() {
		ctx.Globals().Define(name, fn)
	}
}
