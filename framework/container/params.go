package container

// Args carries caller-supplied replacement values, addressed either by
// zero-based parameter position or by parameter name. The zero value is
// empty. A nil value counts as not supplied.
//
//	container.Positional(nil, "svc1")          // index 1 only
//	container.Named(map[string]any{"name": "svc1"})
//	container.Positional("a").With("name", "svc1")
type Args struct {
	pos   map[int]any
	names map[string]any
}

// Positional builds Args from values in parameter order.
func Positional(values ...any) Args {
	var a Args
	for i, v := range values {
		a = a.At(i, v)
	}
	return a
}

// Named builds Args keyed by parameter name.
func Named(values map[string]any) Args {
	var a Args
	for k, v := range values {
		a = a.With(k, v)
	}
	return a
}

// At returns a copy of a with the value for position i set.
func (a Args) At(i int, v any) Args {
	out := a.clone()
	if out.pos == nil {
		out.pos = make(map[int]any)
	}
	out.pos[i] = v
	return out
}

// With returns a copy of a with the value for parameter name set.
func (a Args) With(name string, v any) Args {
	out := a.clone()
	if out.names == nil {
		out.names = make(map[string]any)
	}
	out.names[name] = v
	return out
}

// Len is the number of supplied values.
func (a Args) Len() int { return len(a.pos) + len(a.names) }

func (a Args) clone() Args {
	var out Args
	if a.pos != nil {
		out.pos = make(map[int]any, len(a.pos))
		for k, v := range a.pos {
			out.pos[k] = v
		}
	}
	if a.names != nil {
		out.names = make(map[string]any, len(a.names))
		for k, v := range a.names {
			out.names[k] = v
		}
	}
	return out
}

func (a Args) byIndex(i int) (any, bool) {
	v, ok := a.pos[i]
	return v, ok && v != nil
}

func (a Args) byName(name string) (any, bool) {
	v, ok := a.names[name]
	return v, ok && v != nil
}

func mergeArgs(all []Args) Args {
	switch len(all) {
	case 0:
		return Args{}
	case 1:
		return all[0]
	}
	out := all[0].clone()
	for _, a := range all[1:] {
		for i, v := range a.pos {
			out = out.At(i, v)
		}
		for k, v := range a.names {
			out = out.With(k, v)
		}
	}
	return out
}

// resolveParams turns a parameter list into concrete arguments. Object
// parameters are always resolved from the container, even when the caller
// supplied a replacement for them; scalars come from the default, then the
// positional value, then the named value.
func (c *Container) resolveParams(owner, method string, params []Param, args Args) ([]any, error) {
	values := make([]any, 0, len(params))
	for i, p := range params {
		if p.isObject() {
			dep, err := c.load(p.Type, Args{}, false)
			if err != nil {
				return nil, err
			}
			values = append(values, dep)
			continue
		}
		if p.Optional {
			values = append(values, p.Default)
			continue
		}
		if v, ok := args.byIndex(i); ok {
			values = append(values, v)
			continue
		}
		if v, ok := args.byName(p.Name); ok {
			values = append(values, v)
			continue
		}
		return nil, &EmptyArgsError{Owner: owner, Method: method, Param: p.Name}
	}
	return values, nil
}
