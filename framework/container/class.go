package container

import (
	"fmt"
	"reflect"
)

// Primitive marks a parameter that is filled from defaults or caller
// arguments rather than resolved from the container. An empty Param.Type
// means the same thing.
const Primitive = "primitive"

// constructorName is reported as the method name in errors raised while
// resolving constructor parameters.
const constructorName = "New"

// Param describes one constructor or method parameter.
type Param struct {
	Name string
	// Type is the identifier to resolve for object parameters.
	Type     string
	Optional bool
	Default  any
}

func (p Param) isObject() bool { return p.Type != "" && p.Type != Primitive }

// Dep declares an object parameter resolved from the container as id.
func Dep(name, id string) Param { return Param{Name: name, Type: id} }

// Arg declares a required scalar parameter.
func Arg(name string) Param { return Param{Name: name, Type: Primitive} }

// Opt declares a scalar parameter that falls back to def.
func Opt(name string, def any) Param {
	return Param{Name: name, Type: Primitive, Optional: true, Default: def}
}

// Method is a callable registered on a class descriptor. Fn receives the
// target and the resolved arguments in Params order; it may wrap an
// unexported Go method.
type Method struct {
	Params []Param
	Fn     func(target any, args []any) (any, error)
}

// Class is the hand-registered descriptor of a constructible type: its
// ordered constructor parameters, how to instantiate it and which methods
// Call may invoke on its instances.
//
// A class without New has no constructor. It must then carry a Type and is
// instantiated as that type's zero value (a fresh pointer for pointer types).
type Class struct {
	Name    string
	Type    reflect.Type
	Params  []Param
	New     func(args []any) (any, error)
	Methods map[string]*Method
}

// ClassOf starts a descriptor for T. With nothing else set it describes a
// constructor-less type.
//
//	c.Define(container.ClassOf[*Clock]("Clock"))
func ClassOf[T any](name string) *Class {
	return &Class{Name: name, Type: typeOf[T]()}
}

// WithMethod registers a callable under name and returns the class.
func (cl *Class) WithMethod(name string, m *Method) *Class {
	if cl.Methods == nil {
		cl.Methods = make(map[string]*Method)
	}
	cl.Methods[name] = m
	return cl
}

func (cl *Class) method(name string) (*Method, bool) {
	m, ok := cl.Methods[name]
	return m, ok && m != nil && m.Fn != nil
}

func (cl *Class) instantiate(args []any) (any, error) {
	if cl.New != nil {
		return cl.New(args)
	}
	if cl.Type == nil {
		return nil, fmt.Errorf("container: class [%s] has neither a constructor nor a type", cl.Name)
	}
	if cl.Type.Kind() == reflect.Ptr {
		return reflect.New(cl.Type.Elem()).Interface(), nil
	}
	return reflect.Zero(cl.Type).Interface(), nil
}
