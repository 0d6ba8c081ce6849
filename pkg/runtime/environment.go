package runtime

import (
	"sort"

	"imp/interpreter-go/pkg/diagnostics"
)

// Environment provides lexical scoping for runtime values. Each block
// execution owns a fresh child environment that is discarded when the block
// exits; the root environment lives for one program run.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts a binding in the current scope. Re-declaring a name in the
// same scope replaces the prior binding (last declaration wins).
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears,
// walking outward. It never creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return diagnostics.Newf(diagnostics.CodeUndefinedVariable, "undefined variable '%s'", name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, diagnostics.Newf(diagnostics.CodeUndefinedVariable, "undefined variable '%s'", name)
}

// Keys returns the bindings of this scope in sorted order (useful for
// determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Extend creates a new child scope under the current environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
