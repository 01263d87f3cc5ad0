package container

import (
	"fmt"
	"reflect"
)

// Call invokes method on target with parameters resolved like constructor
// parameters. Methods registered on the target's class descriptor are tried
// first, so a descriptor can expose an unexported Go method; otherwise an
// exported Go method of that name is called through reflection.
//
// A string target is treated as an identifier, loaded first and called
// through its own class. For any other target the class is found by Go type;
// when several classes share a type the first one defined wins.
func (c *Container) Call(target any, method string, args ...Args) (any, error) {
	if id, ok := target.(string); ok {
		instance, err := c.Load(id)
		if err != nil {
			return nil, err
		}
		cl, ok := c.classOf(id)
		if !ok {
			cl, _ = c.classFor(instance)
		}
		return c.invokeOn(cl, instance, method, mergeArgs(args))
	}
	return c.invoke(target, method, mergeArgs(args))
}

// classOf returns the class an identifier builds through, following a class
// binding or alias.
func (c *Container) classOf(id string) (*Class, bool) {
	if b, ok := c.bindings.lookup(id); ok {
		if b.kind != bindClass {
			return nil, false
		}
		id = b.class
	}
	return c.class(id)
}

func (c *Container) invoke(target any, method string, args Args) (any, error) {
	cl, _ := c.classFor(target)
	return c.invokeOn(cl, target, method, args)
}

// invokeOn calls method on target using cl's registered methods, then
// reflection. cl may be nil.
func (c *Container) invokeOn(cl *Class, target any, method string, args Args) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("container: cannot call %s on a nil target", method)
	}
	owner := ownerName(cl, target)

	if cl != nil {
		if m, ok := cl.method(method); ok {
			values, err := c.resolveParams(owner, method, m.Params, args)
			if err != nil {
				return nil, err
			}
			return m.Fn(target, values)
		}
	}

	fn := reflect.ValueOf(target).MethodByName(method)
	if !fn.IsValid() {
		return nil, fmt.Errorf("container: method %s::%s does not exist", owner, method)
	}
	params := paramsOf(fn.Type(), nil, nil)
	values, err := c.resolveParams(owner, method, params, args)
	if err != nil {
		return nil, err
	}
	return callFunc(fn, values)
}

// hasMethod reports whether invokeOn can find method on instance.
func hasMethod(cl *Class, instance any, method string) bool {
	if cl != nil {
		if _, ok := cl.method(method); ok {
			return true
		}
	}
	if instance == nil {
		return false
	}
	return reflect.ValueOf(instance).MethodByName(method).IsValid()
}

func ownerName(cl *Class, target any) string {
	if cl != nil {
		return cl.Name
	}
	return fmt.Sprintf("%T", target)
}
