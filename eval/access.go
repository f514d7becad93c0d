package eval

import (
	"nib/lexer"
)

// Member access on composite values. `base.name` and `base[key]` are
// the same operation by the time they reach the evaluator: a base
// value and a key value.

// nativePush appends its arguments, in order, to the array it is bound
// to. Mutation happens through the shared backing storage, so every
// alias of the array observes it.
func nativePush(ctx *Context, this Value, args []Value) Value {
	if array, ok := this.(*Array); ok {
		array.values = append(array.values, args...)
	}
	return NOTHING
}

func (ctx *Context) getMember(base Value, key Value, tok lexer.Token) Value {
	switch base := base.(type) {
	case *Array:
		switch key := key.(type) {
		case Number:
			n := int(key)
			if n < 0 {
				return ctx.err(ERR_INVALID_INDEX, tok, "negative array index %d", n)
			}
			if n >= len(base.values) {
				return ctx.err(ERR_INDEX_OUT_OF_RANGE, tok,
					"index %d out of range for array of length %d", n, len(base.values))
			}
			return base.values[n]
		case String:
			// reserved pseudo-members
			switch string(key) {
			case "length":
				return Number(len(base.values))
			case "push":
				return &Native{name: "push", this: base, fn: nativePush}
			}
			return ctx.err(ERR_INVALID_ACCESS, tok, "arrays have no member %q", string(key))
		}
		return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index an array with a %s", typeName(key))
	case *Record:
		name, ok := key.(String)
		if !ok {
			return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index a record with a %s", typeName(key))
		}
		value, found := base.fields[string(name)]
		if !found {
			return ctx.err(ERR_NO_SUCH_PROPERTY, tok, "no property named %q", string(name))
		}
		return value
	}
	return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index into a %s", typeName(base))
}

// setMember mutates in place: array element replacement requires the
// index to already exist (no auto-extension), record fields upsert.
// The assigned value is the operation's result.
func (ctx *Context) setMember(base Value, key Value, value Value, tok lexer.Token) Value {
	switch base := base.(type) {
	case *Array:
		n, ok := key.(Number)
		if !ok {
			return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index an array with a %s", typeName(key))
		}
		if n < 0 {
			return ctx.err(ERR_INVALID_INDEX, tok, "negative array index %d", int(n))
		}
		if int(n) >= len(base.values) {
			return ctx.err(ERR_INDEX_OUT_OF_RANGE, tok,
				"index %d out of range for array of length %d", int(n), len(base.values))
		}
		base.values[int(n)] = value
		return value
	case *Record:
		name, ok := key.(String)
		if !ok {
			return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index a record with a %s", typeName(key))
		}
		base.fields[string(name)] = value
		return value
	}
	return ctx.err(ERR_INVALID_ACCESS, tok, "cannot index into a %s", typeName(base))
}
