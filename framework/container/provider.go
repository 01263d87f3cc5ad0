package container

import (
	"fmt"

	"github.com/km-arc/go-container/framework/validation"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider contributes bindings, aliases and classes to a Builder.
//
// Register runs before the container exists, while the binding table can
// still change. Boot runs after the container is built, in registration
// order, and may resolve anything.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(b *container.Builder) {
//	    b.Bind("Logger", container.BindFactory(func() (any, error) {
//	        return &ConsoleLogger{}, nil
//	    }))
//	}
type ServiceProvider interface {
	Register(b *Builder)
	Boot(c *Container) error
}

// BaseProvider is an embeddable no-op Boot.
type BaseProvider struct{}

func (BaseProvider) Boot(*Container) error { return nil }

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder collects the configuration record before the container is
// constructed. Once Build returns, the binding table is fixed.
type Builder struct {
	setter     string
	bindings   map[string]Binding
	aliases    map[string]string
	classes    []*Class
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	opts       []Option
}

// NewBuilder starts from cfg.
func NewBuilder(cfg Config, opts ...Option) *Builder {
	b := &Builder{
		setter:     cfg.Setter,
		bindings:   make(map[string]Binding, len(cfg.Bindings)),
		aliases:    make(map[string]string, len(cfg.Aliases)),
		registered: make(map[ServiceProvider]bool),
		opts:       opts,
	}
	for id, bind := range cfg.Bindings {
		b.bindings[id] = bind
	}
	for alias, concrete := range cfg.Aliases {
		b.aliases[alias] = concrete
	}
	return b
}

// Bind adds or replaces the binding for id.
func (b *Builder) Bind(id string, binding Binding) *Builder {
	b.bindings[id] = binding
	return b
}

// Alias redirects alias to the concrete class.
func (b *Builder) Alias(alias, concrete string) *Builder {
	b.aliases[alias] = concrete
	return b
}

// Define queues class descriptors for the container.
func (b *Builder) Define(classes ...*Class) *Builder {
	b.classes = append(b.classes, classes...)
	return b
}

// Register queues providers. A provider registered twice runs once.
func (b *Builder) Register(providers ...ServiceProvider) *Builder {
	for _, p := range providers {
		if b.registered[p] {
			continue
		}
		b.registered[p] = true
		b.providers = append(b.providers, p)
	}
	return b
}

// Build runs every provider's Register, validates the collected
// configuration, constructs the container, defines the queued classes and
// boots the providers.
func (b *Builder) Build() (*Container, error) {
	// providers may register further providers
	for i := 0; i < len(b.providers); i++ {
		b.providers[i].Register(b)
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	c := New(Config{
		Setter:   b.setter,
		Aliases:  b.aliases,
		Bindings: b.bindings,
	}, b.opts...)
	c.Define(b.classes...)

	for _, p := range b.providers {
		if err := p.Boot(c); err != nil {
			return nil, fmt.Errorf("container: booting %T: %w", p, err)
		}
	}
	return c, nil
}

func (b *Builder) validate() error {
	data := map[string]string{}
	rules := validation.Rules{}

	if b.setter != "" {
		data["setter"] = b.setter
		rules["setter"] = "required|identifier|max:128"
	}

	// an alias may hold rule separators, so self-aliases are checked here
	var selfAliased []string
	for alias, concrete := range b.aliases {
		field := "aliases." + alias
		data[field] = concrete
		rules[field] = "required|qualified"
		if alias == concrete {
			selfAliased = append(selfAliased, field)
		}
	}

	for id, bind := range b.bindings {
		field := "bindings." + id
		if bind.kind == bindClass {
			data[field] = bind.class
			rules[field] = "required|qualified"
			continue
		}
		if bind.kind == bindFactory && bind.factory == nil {
			data[field] = ""
		} else {
			data[field] = id
		}
		rules[field] = "required"
	}

	v := validation.Make(data, rules)
	errs := v.Errors()
	v.Fails()
	for _, field := range selfAliased {
		if errs.First(field) == "" {
			errs.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
		}
	}
	if errs.Has() {
		return fmt.Errorf("container: invalid configuration: %w", errs)
	}
	return nil
}
