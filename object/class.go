package object

import (
	"fmt"

	"github.com/lagerfeuer/golox/value"
)

type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class // Can be nil
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*Class) LoxValueMarkerFunc() {}

func (c *Class) String() string {
	return fmt.Sprintf("<class %v>", c.Name)
}

// --------------------------------------------------------

func NewClass(name string, methods map[string]*Function, superclass *Class) *Class {
	return &Class{
		Name:       name,
		Methods:    methods,
		Superclass: superclass,
	}
}

func (c *Class) Arity() int {
	if init := c.initializer(); init != nil {
		return init.Arity()
	} else {
		return 0
	}
}

// Call allocates an instance and runs the initializer on it, if any.
func (c *Class) Call(exec Executor, args []value.Value) (value.Value, error) {
	instance := NewInstance(c)

	if init := c.initializer(); init != nil {
		if _, err := init.Bind(instance).Call(exec, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// FindMethod searches the class and then its superclass chain.
func (c *Class) FindMethod(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if fun, ok := class.Methods[name]; ok {
			return fun
		}
	}

	return nil
}

// A static 'init' is an ordinary static method, not a constructor.
func (c *Class) initializer() *Function {
	for class := c; class != nil; class = class.Superclass {
		if fun, ok := class.Methods["init"]; ok && !fun.IsStatic() {
			return fun
		}
	}

	return nil
}

// Get reads a static method through the class value.
func (c *Class) Get(name string) (*Function, bool) {
	if fun := c.FindMethod(name); fun != nil && fun.IsStatic() {
		return fun, true
	}
	return nil, false
}

// IsSubclassOf reports if other is c or one of its ancestors.
func (c *Class) IsSubclassOf(other *Class) bool {
	for class := c; class != nil; class = class.Superclass {
		if class == other {
			return true
		}
	}
	return false
}
