package container

import "go.uber.org/zap"

// Load resolves id to a fully constructed value.
//
// Scalar constructor parameters of the class are filled from args; when
// several Args are passed, later ones override earlier ones. Object
// parameters are always resolved from the container.
//
// Load has no cycle detection: a class that depends on itself, directly or
// through other classes, recurses until the goroutine stack is exhausted.
// A failure part-way through a dependency graph leaves the dependencies
// already built in the cache.
func (c *Container) Load(id string, args ...Args) (any, error) {
	return c.load(id, mergeArgs(args), true)
}

func (c *Container) load(id string, args Args, topLevel bool) (any, error) {
	concrete := id

	if b, ok := c.bindings.lookup(id); ok {
		switch b.kind {
		case bindFactory:
			if v, ok := c.registry.lookup(id); ok {
				return v, nil
			}
			v, err := b.factory()
			if err != nil {
				return nil, err
			}
			c.logger.Debug("factory binding resolved", zap.String("id", id))
			c.registry.set(id, v)
			return v, nil

		case bindInstance:
			if v, ok := c.registry.lookup(id); ok {
				return v, nil
			}
			c.registry.set(id, b.instance)
			return b.instance, nil

		default:
			concrete = b.class
		}
	}

	if v, ok := c.registry.lookup(concrete); ok {
		c.logger.Debug("cache hit", zap.String("id", id), zap.String("concrete", concrete))
		return v, nil
	}

	return c.build(concrete, args, topLevel)
}

// build constructs concrete from its class descriptor, caches it and runs
// the post-construction hook.
func (c *Container) build(concrete string, args Args, topLevel bool) (any, error) {
	cl, ok := c.class(concrete)
	if !ok {
		err := &NotFoundError{ID: concrete}
		if !topLevel {
			err.Caller = c.caller()
		}
		return nil, err
	}

	c.buildStack = append(c.buildStack, concrete)
	defer func() { c.buildStack = c.buildStack[:len(c.buildStack)-1] }()

	values, err := c.resolveParams(concrete, constructorName, cl.Params, args)
	if err != nil {
		return nil, err
	}

	instance, err := cl.instantiate(values)
	if err != nil {
		return nil, err
	}
	c.registry.set(concrete, instance)
	c.remember(instance, cl)
	c.logger.Debug("constructed", zap.String("id", concrete), zap.Int("params", len(cl.Params)))

	if hasMethod(cl, instance, c.setter) {
		c.logger.Debug("post-construction hook", zap.String("id", concrete), zap.String("method", c.setter))
		if _, err := c.invokeOn(cl, instance, c.setter, Args{}); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Container) caller() string {
	if len(c.buildStack) == 0 {
		return ""
	}
	return c.buildStack[len(c.buildStack)-1]
}
