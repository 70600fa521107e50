package object

import (
	"fmt"

	"github.com/lagerfeuer/golox/value"
)

type Instance struct {
	Fields map[string]value.Value
	Class  *Class
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*Instance) LoxValueMarkerFunc() {}

func (i *Instance) String() string {
	return fmt.Sprintf("%v instance", i.Class.Name)
}

// --------------------------------------------------------

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: map[string]value.Value{}}
}

func (i *Instance) Get(name string) (value.Value, bool) {
	// Fields take precedence over methods
	if value, ok := i.Fields[name]; ok {
		return value, true
	}

	method := i.Class.FindMethod(name)
	switch {
	case method == nil:
		return nil, false
	case method.IsStatic():
		return method, true
	default:
		// Puts 'this' so that the method can access it.
		return method.Bind(i), true
	}
}

func (i *Instance) Set(name string, value value.Value) {
	i.Fields[name] = value
}

func (i *Instance) Delete(name string) bool {
	if _, ok := i.Fields[name]; !ok {
		return false
	}
	delete(i.Fields, name)
	return true
}
