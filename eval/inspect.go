package eval

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// This file implements value rendering.
// Most of the complication comes from ensuring that recursive values,
// e.g. an array containing itself, do not crash the process -- with
// reference semantics a program can build such cycles freely.

type valueInspector func(v Value) string

type inspectable interface {
	inspect(valueInspector) string
}

// inspect renders a value for display: strings are quoted, composite
// values render their contents, and cycles come out as "(...)".
func inspect(v Value) string {
	seen := map[inspectable]bool{}
	var visit valueInspector
	visit = func(v Value) string {
		switch v := v.(type) {
		case inspectable:
			if seen[v] {
				return "(...)"
			}
			seen[v] = true
			rv := v.inspect(visit)
			delete(seen, v)
			return rv
		case Stringer:
			return v.String()
		}
		panic(fmt.Sprintf("cannot inspect: %#+v", v))
	}
	return visit(v)
}

// Container types (or String -- which needs quoting when nested).

func (v String) inspect(f valueInspector) string {
	return strconv.Quote(string(v))
}

func (v *Array) inspect(f valueInspector) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, x := range v.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(f(x))
	}
	buf.WriteString("]")
	return buf.String()
}

func (v *Record) inspect(f valueInspector) string {
	// insertion order is irrelevant for records, so render fields
	// sorted to keep the output stable.
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(f(v.fields[k]))
	}
	buf.WriteString("}")
	return buf.String()
}

// =========
// Stringify
// =========

type Stringer interface {
	String() string
}

func (v Nothing) String() string { return "nothing" }
func (v Number) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v String) String() string  { return string(v) }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v *Function) String() string {
	return fmt.Sprintf("[fun %s]", v.name)
}

func (v *Native) String() string {
	bound := ""
	if v.this != nil {
		bound = " bound"
	}
	return fmt.Sprintf("[native%s %s]", bound, v.name)
}

func (v *Array) String() string  { return inspect(v) }
func (v *Record) String() string { return inspect(v) }
