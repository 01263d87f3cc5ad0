package container

import "fmt"

type bindingKind uint8

const (
	bindClass bindingKind = iota
	bindFactory
	bindInstance
)

// Binding decides how an abstract identifier resolves. Build one with
// BindClass, BindFactory or BindInstance.
type Binding struct {
	kind     bindingKind
	class    string
	factory  func() (any, error)
	instance any
}

// BindClass redirects an identifier to a concrete class. The built instance
// is cached under the concrete name, not the abstract one.
//
//	container.BindClass("ConsoleLogger")
func BindClass(concrete string) Binding {
	return Binding{kind: bindClass, class: concrete}
}

// BindFactory resolves an identifier by calling fn. The result is cached
// under the abstract identifier.
func BindFactory(fn func() (any, error)) Binding {
	return Binding{kind: bindFactory, factory: fn}
}

// BindInstance resolves an identifier to a pre-built value.
func BindInstance(v any) Binding {
	return Binding{kind: bindInstance, instance: v}
}

func (b Binding) String() string {
	switch b.kind {
	case bindFactory:
		return "factory"
	case bindInstance:
		return fmt.Sprintf("instance(%T)", b.instance)
	default:
		return "class(" + b.class + ")"
	}
}

// bindingTable is frozen once the container is constructed.
type bindingTable map[string]Binding

// newBindingTable folds aliases in as class bindings. An explicit binding
// for the same identifier wins over an alias.
func newBindingTable(bindings map[string]Binding, aliases map[string]string) bindingTable {
	t := make(bindingTable, len(bindings)+len(aliases))
	for alias, concrete := range aliases {
		t[alias] = BindClass(concrete)
	}
	for id, b := range bindings {
		t[id] = b
	}
	return t
}

func (t bindingTable) lookup(id string) (Binding, bool) {
	b, ok := t[id]
	return b, ok
}
