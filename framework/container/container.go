package container

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// DefaultSetter is the post-construction hook name used when Config.Setter
// is empty.
const DefaultSetter = "__onConstruct"

// SelfID is the identifier the container caches itself under.
var SelfID = TypeKey((*Container)(nil))

// Config is the construction-time configuration record.
type Config struct {
	// Setter names the method invoked right after an instance is built.
	Setter string
	// Aliases maps alias identifier → concrete class.
	Aliases map[string]string
	// Bindings maps abstract identifier → resolution strategy.
	Bindings map[string]Binding
}

// Option configures a Container.
type Option func(*Container)

// WithLogger routes resolution diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container.
//
// It resolves an identifier by consulting the binding table, then the
// singleton cache, then the class descriptor for the concrete type, whose
// constructor parameters are resolved recursively. Every identifier resolves
// to at most one cached instance.
type Container struct {
	setter   string
	bindings bindingTable
	registry *registry

	mu      sync.RWMutex
	classes map[string]*Class
	types   map[reflect.Type]*Class

	// identifiers currently under construction, innermost last
	buildStack []string

	logger *zap.Logger
}

// New creates a container from cfg. The binding table is frozen here; the
// container caches itself under SelfID.
func New(cfg Config, opts ...Option) *Container {
	setter := cfg.Setter
	if setter == "" {
		setter = DefaultSetter
	}
	c := &Container{
		setter:   setter,
		bindings: newBindingTable(cfg.Bindings, cfg.Aliases),
		registry: newRegistry(),
		classes:  make(map[string]*Class),
		types:    make(map[reflect.Type]*Class),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.CacheClass(SelfID, c)
	return c
}

// Setter returns the configured post-construction hook name.
func (c *Container) Setter() string { return c.setter }

// ── Class descriptors ─────────────────────────────────────────────────────────

// Define registers class descriptors. A later descriptor with the same name
// replaces the earlier one.
func (c *Container) Define(classes ...*Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cl := range classes {
		if cl == nil {
			continue
		}
		c.classes[cl.Name] = cl
		if cl.Type == nil {
			continue
		}
		// the first class for a type keeps it unless redefined by name
		if prev, ok := c.types[cl.Type]; !ok || prev.Name == cl.Name {
			c.types[cl.Type] = cl
		}
	}
}

// Classes returns the names of all defined classes.
func (c *Container) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.classes))
	for name := range c.classes {
		out = append(out, name)
	}
	return out
}

func (c *Container) class(name string) (*Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cl, ok := c.classes[name]
	return cl, ok
}

func (c *Container) classFor(target any) (*Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cl, ok := c.types[reflect.TypeOf(target)]
	return cl, ok
}

// remember indexes the dynamic type of an instance built from cl so Call can
// find the class's methods.
func (c *Container) remember(instance any, cl *Class) {
	t := reflect.TypeOf(instance)
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.types[t]; !ok {
		c.types[t] = cl
	}
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Set caches value under id, replacing whatever was cached.
func (c *Container) Set(id string, value any) {
	c.registry.set(id, value)
}

// CacheClass caches value under id. It is Set under the name the
// construction path uses.
func (c *Container) CacheClass(id string, value any) {
	c.registry.set(id, value)
}

// Get returns the value cached under id. A value cached as nil is reported
// as missing.
func (c *Container) Get(id string) (any, error) {
	v, ok := c.registry.lookup(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return v, nil
}

// Has reports whether id holds a truthy cached value. A cached false, zero,
// empty string or empty collection reports false.
func (c *Container) Has(id string) bool {
	v, ok := c.registry.lookup(id)
	return ok && truthy(v)
}

// Dump returns a snapshot of the whole cache.
func (c *Container) Dump() map[string]any {
	return c.registry.snapshot()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve loads id and type-asserts the result.
//
//	svc, err := container.Resolve[*Service](c, "Service")
func Resolve[T any](c *Container, id string, args ...Args) (T, error) {
	var zero T
	instance, err := c.Load(id, args...)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%v]: [%s] resolved to %T", typeOf[T](), id, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, id string, args ...Args) T {
	v, err := Resolve[T](c, id, args...)
	if err != nil {
		panic(err)
	}
	return v
}
