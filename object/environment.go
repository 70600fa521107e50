package object

import "github.com/lagerfeuer/golox/value"

// Environment is a scope frame. Frames are shared by pointer between nested
// blocks, closures and bound methods, so every holder sees assignments.
type Environment struct {
	enclosing *Environment
	values    map[string]value.Value
}

const initialEnvSize int = 4

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]value.Value, initialEnvSize),
		enclosing: enclosing,
	}
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this frame, replacing any previous binding.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name in this frame only.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Assign rebinds an existing name in this frame only.
func (e *Environment) Assign(name string, v value.Value) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = v
	return true
}

// Return the value of name in the frame distance number of enclosing scopes
// away. The resolver guarantees the variable exists in that scope.
func (e *Environment) GetAt(distance int, name string) (value.Value, bool) {
	return e.Ancestor(distance).Get(name)
}

// Assign to name in the frame distance number of enclosing scopes away.
func (e *Environment) AssignAt(distance int, name string, v value.Value) bool {
	return e.Ancestor(distance).Assign(name, v)
}

func (e *Environment) Ancestor(distance int) *Environment {
	ret := e

	for i := 0; i < distance; i++ {
		ret = ret.enclosing
	}

	return ret
}
