package eval

// Environment is one node of the lexical scope chain: a binding table
// plus a link to the enclosing node. Closures hold on to their defining
// node, so a node can outlive the block that created it; the chain only
// points outward, and the Go runtime reclaims nodes once no closure or
// inner scope references them.

type Environment struct {
	store map[string]Value
	outer *Environment
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// Define binds the given name to the given value in this node only.
// Declarations and parameter binding use this; it never searches
// outward, which is what makes shadowing work.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get returns the value bound to name, searching this node first and
// then walking the enclosing chain outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set rebinds name in the innermost node of the chain that already
// contains it. It never creates a binding: assigning to an undeclared
// name reports false.
func (e *Environment) Set(name string, value Value) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = value
			return true
		}
	}
	return false
}
