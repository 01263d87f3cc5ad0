// Package container provides a small IoC (Inversion of Control) container
// keyed by string identifiers.
//
// # Overview
//
// Asking the container for an identifier produces a fully constructed
// value: the identifier's declared constructor parameters are resolved
// recursively, abstract identifiers may be redirected to concrete classes,
// and every result is cached so an identifier resolves to at most one
// instance.
//
// Go has no runtime constructor reflection, so constructible types are
// described explicitly with a Class: its ordered parameters, a New function
// and the methods Call may invoke. FromFunc derives a Class from an ordinary
// constructor function.
//
// # Container Lifecycle
//
//  1. Configure: b := container.NewBuilder(container.Config{...})
//  2. Register providers: b.Register(&AppServiceProvider{})
//  3. Build: c, err := b.Build()  (binding table is frozen here)
//  4. Resolve: svc, err := c.Load("Service")
//
// # Bindings
//
//	// Redirect an abstract identifier to a concrete class
//	b.Bind("Cache", container.BindClass("RedisCache"))
//
//	// Build with a factory, cached under "Logger"
//	b.Bind("Logger", container.BindFactory(func() (any, error) {
//	    return &ConsoleLogger{}, nil
//	}))
//
//	// Pre-built value
//	b.Bind("config", container.BindInstance(cfg))
//
//	// Alias (same effect as BindClass, overridden by an explicit binding)
//	b.Alias("LoggerInterface", "ConsoleLogger")
//
// # Classes
//
//	b.Define(&container.Class{
//	    Name: "Service",
//	    Params: []container.Param{
//	        container.Dep("logger", "Logger"),
//	        container.Arg("name"),
//	        container.Opt("retries", 3),
//	    },
//	    New: func(args []any) (any, error) {
//	        return &Service{Logger: args[0].(Logger), Name: args[1].(string)}, nil
//	    },
//	})
//
// Object parameters (Dep) are always resolved from the container, even when
// the caller supplied a value at their position. Scalar parameters take
// their default, then the positional argument, then the named argument;
// otherwise Load fails with an *EmptyArgsError.
//
// # Resolving
//
//	svc, err := c.Load("Service", container.Positional(nil, "svc1"))
//	svc, err := container.Resolve[*Service](c, "Service")
//
// # Post-construction hook
//
// When a freshly built instance has a method named Config.Setter
// (default "__onConstruct") on its class descriptor, or an exported Go
// method of that name, it is called once with no arguments before Load
// returns.
//
// # Limitations
//
// There is no cycle detection: A needing B needing A recurses until the
// goroutine stack overflows. Load and Call are meant for one goroutine at a
// time; concurrent Load of the same identifier can construct it twice. A
// failed resolution keeps whatever dependencies it already cached.
package container
