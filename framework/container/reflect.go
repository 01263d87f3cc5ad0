package container

import (
	"fmt"
	"reflect"
)

var errorType = typeOf[error]()

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// identifier for interfaces and struct pointers. It is also the identifier
// FromFunc assigns to object parameters.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	return typeKey(reflect.TypeOf(v))
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// objectKey maps a Go parameter type to the identifier it resolves as.
// Pointers to named structs and named interfaces are objects; everything
// else is a scalar.
func objectKey(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		if e := t.Elem(); e.Kind() == reflect.Struct && e.Name() != "" {
			return typeKey(t)
		}
	case reflect.Interface:
		if t.Name() != "" && t.PkgPath() != "" {
			return typeKey(t)
		}
	}
	return Primitive
}

// paramsOf derives descriptors from a function type. Unnamed parameters are
// called arg0, arg1, ...
func paramsOf(ft reflect.Type, names []string, defaults map[string]any) []Param {
	params := make([]Param, ft.NumIn())
	for i := range params {
		name := fmt.Sprintf("arg%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		p := Param{Name: name, Type: objectKey(ft.In(i))}
		if d, ok := defaults[name]; ok && !p.isObject() {
			p.Optional = true
			p.Default = d
		}
		params[i] = p
	}
	return params
}

// callFunc calls fn with values converted to its parameter types. A trailing
// error result is returned as the error; the first other result is the value.
func callFunc(fn reflect.Value, values []any) (any, error) {
	ft := fn.Type()
	if len(values) != ft.NumIn() {
		return nil, fmt.Errorf("container: %v expects %d arguments, got %d", ft, ft.NumIn(), len(values))
	}

	in := make([]reflect.Value, len(values))
	for i, v := range values {
		arg, err := argValue(v, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("container: argument %d of %v: %w", i, ft, err)
		}
		in[i] = arg
	}

	var out []reflect.Value
	if ft.IsVariadic() {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}

	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if last := out[n-1]; !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func argValue(v any, want reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(want):
		return rv, nil
	case isNumeric(rv.Kind()) && isNumeric(want.Kind()):
		return rv.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("%T is not assignable to %v", v, want)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ── Constructor functions ─────────────────────────────────────────────────────

type funcOptions struct {
	names    []string
	defaults map[string]any
}

// FuncOption adjusts the descriptor FromFunc derives.
type FuncOption func(*funcOptions)

// ParamNames names the constructor parameters in order. Go keeps no
// parameter names at run time, so named Args need this.
func ParamNames(names ...string) FuncOption {
	return func(o *funcOptions) { o.names = names }
}

// Default makes the scalar parameter called name optional with value v.
func Default(name string, v any) FuncOption {
	return func(o *funcOptions) {
		if o.defaults == nil {
			o.defaults = make(map[string]any)
		}
		o.defaults[name] = v
	}
}

// FromFunc derives a class descriptor from a Go constructor. fn must return
// the instance and optionally an error. Parameters that are pointers to
// named structs or named interfaces are resolved from the container under
// their TypeKey; all others are scalars.
//
//	cl, err := container.FromFunc(container.TypeKey((*Service)(nil)), NewService,
//	    container.ParamNames("logger", "name"))
func FromFunc(name string, fn any, opts ...FuncOption) (*Class, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("container: constructor of [%s] is not a function", name)
	}
	ft := fv.Type()
	if n := ft.NumOut(); n == 0 || n > 2 || (n == 2 && ft.Out(1) != errorType) {
		return nil, fmt.Errorf("container: constructor of [%s] must return a value and an optional error", name)
	}

	var o funcOptions
	for _, opt := range opts {
		opt(&o)
	}

	cl := &Class{
		Name:   name,
		Params: paramsOf(ft, o.names, o.defaults),
		New: func(args []any) (any, error) {
			return callFunc(fv, args)
		},
	}
	if out := ft.Out(0); out.Kind() != reflect.Interface {
		cl.Type = out
	}
	return cl, nil
}

// MustFromFunc is like FromFunc but panics on error.
func MustFromFunc(name string, fn any, opts ...FuncOption) *Class {
	cl, err := FromFunc(name, fn, opts...)
	if err != nil {
		panic(err)
	}
	return cl
}
